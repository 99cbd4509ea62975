// Package cmd holds the riftdoc CLI's subcommands.
package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "riftdoc",
	Short: "Exercise the riftdoc document core from the command line",
	Long: `riftdoc drives the document core in-process, without any network
transport: demo simulates a local actor and a remote peer exchanging change
packs, bench measures raw text-edit throughput, and show pretty-prints a
scripted document's marshaled JSON.`,
	SilenceUsage: true,
}

// Execute runs the riftdoc CLI, returning any error the selected subcommand
// produced.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(demoCmd)
	rootCmd.AddCommand(benchCmd)
	rootCmd.AddCommand(showCmd)
}
