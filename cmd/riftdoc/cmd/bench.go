package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/hackerwins/riftdoc/pkg/document/crdt"
	doctime "github.com/hackerwins/riftdoc/pkg/document/time"
)

var benchOps int

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Measure sequential text-edit throughput of a single Text",
	RunE:  runBench,
}

func init() {
	benchCmd.Flags().IntVar(&benchOps, "ops", 20000, "number of single-character appends to perform")
}

func runBench(cmd *cobra.Command, args []string) error {
	actor := doctime.NewActorID()
	lamport := uint64(0)
	nextTicket := func() *doctime.Ticket {
		lamport++
		return doctime.NewTicket(lamport, 0, actor)
	}

	text := crdt.NewText(crdt.NewRGATreeSplit(), nextTicket())
	vector := doctime.NewVersionVector()

	start := time.Now()
	for i := 0; i < benchOps; i++ {
		pos := text.Len()
		from, to := text.CreateRange(pos, pos)
		if _, _, _, _, err := text.Edit(from, to, vector, "x", nil, nextTicket()); err != nil {
			return fmt.Errorf("edit %d: %w", i, err)
		}
	}
	elapsed := time.Since(start)

	fmt.Printf("%d single-character appends in %s (%.0f ops/sec), final length %d\n",
		benchOps, elapsed, float64(benchOps)/elapsed.Seconds(), text.Len())
	return nil
}
