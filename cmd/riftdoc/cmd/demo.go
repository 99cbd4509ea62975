package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tidwall/pretty"

	"github.com/hackerwins/riftdoc/pkg/document"
	"github.com/hackerwins/riftdoc/pkg/document/json"
	"github.com/hackerwins/riftdoc/pkg/document/key"
	"github.com/hackerwins/riftdoc/pkg/document/presence"
	"github.com/hackerwins/riftdoc/pkg/document/time"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run a scripted local-edit and remote-sync scenario",
	RunE:  runDemo,
}

func runDemo(cmd *cobra.Command, args []string) error {
	docKey := key.Key("demo-doc")
	if err := docKey.Validate(); err != nil {
		return err
	}

	local := document.New(docKey)
	local.SetActor(time.NewActorID())
	remote := document.New(docKey)
	remote.SetActor(time.NewActorID())

	if err := local.Update(func(root *json.Object, p *presence.Presence) error {
		root.SetString("title", "Q3 roadmap")
		p.Set("color", "#f4a261")
		todos := root.SetNewArray("todos")
		todos.AddString("draft outline")
		todos.AddString("circulate for review")
		return nil
	}, "seed document"); err != nil {
		return err
	}

	fmt.Println("== local after seeding ==")
	printMarshal(local)

	if err := remote.ApplyChangePack(local.CreateChangePack()); err != nil {
		return fmt.Errorf("remote apply local pack: %w", err)
	}
	drainEvents("remote", remote)

	if err := remote.Update(func(root *json.Object, p *presence.Presence) error {
		root.GetArray("todos").AddString("ship v1")
		p.Set("color", "#2a9d8f")
		return nil
	}, "remote adds a todo"); err != nil {
		return err
	}

	if err := local.ApplyChangePack(remote.CreateChangePack()); err != nil {
		return fmt.Errorf("local apply remote pack: %w", err)
	}
	drainEvents("local", local)

	fmt.Println("\n== local after remote sync ==")
	printMarshal(local)

	if err := local.Undo(); err != nil {
		return fmt.Errorf("undo: %w", err)
	}
	fmt.Println("\n== local after undo ==")
	printMarshal(local)

	fmt.Printf("\nlocal garbage len: %d, doc size: %+v\n", local.GarbageLen(), local.DocSize())
	return nil
}

func printMarshal(d *document.Document) {
	fmt.Println(string(pretty.Pretty([]byte(d.Marshal()))))
}

func drainEvents(label string, d *document.Document) {
	for {
		select {
		case e := <-d.Events():
			fmt.Printf("[%s event] %s presences=%v\n", label, e.Type, e.Presences)
		default:
			return
		}
	}
}
