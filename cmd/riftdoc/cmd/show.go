package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tidwall/pretty"

	"github.com/hackerwins/riftdoc/pkg/document"
	"github.com/hackerwins/riftdoc/pkg/document/crdt"
	"github.com/hackerwins/riftdoc/pkg/document/json"
	"github.com/hackerwins/riftdoc/pkg/document/key"
	"github.com/hackerwins/riftdoc/pkg/document/presence"
	"github.com/hackerwins/riftdoc/pkg/document/time"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Build a small scripted document and pretty-print its JSON",
	RunE:  runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	d := document.New(key.Key("show-doc"))
	d.SetActor(time.NewActorID())

	if err := d.Update(func(root *json.Object, p *presence.Presence) error {
		root.SetString("title", "Untitled")
		body := root.SetNewText("body")
		body.Edit(0, 0, "Hello, world!", nil)
		counter := root.SetNewCounter("views", crdt.IntegerCnt, 0)
		counter.Increase(1)
		p.Set("cursor", "body:0")
		return nil
	}, "build sample document"); err != nil {
		return err
	}

	fmt.Println(string(pretty.Pretty([]byte(d.Marshal()))))
	return nil
}
