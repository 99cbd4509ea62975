// Command riftdoc is a small local harness for exercising the document
// core: a scripted local/remote sync demo, an edit-throughput benchmark, and
// a pretty-printer for a document's marshaled JSON.
package main

import (
	"fmt"
	"os"

	"github.com/hackerwins/riftdoc/cmd/riftdoc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
