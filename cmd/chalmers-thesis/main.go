// Command chalmers-thesis is a ModMark plugin implementing the Chalmers
// thesis elements: numbered headings, labels, references, fancy figures and
// tables, notes and citations.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/chalmers-thesis/internal/cli"
)

func main() {
	err := cli.NewRootCommand().Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	os.Exit(cli.GetExitCode(err))
}
