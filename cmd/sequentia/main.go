// Command sequentia is the CLI driver for the Sequentia compiler: a REPL
// when invoked with no file, a batch-mode compile+dump+execute when given
// one, plus lex/parse/compile/run subcommands for inspecting individual
// pipeline stages.
package main

import (
	"fmt"
	"os"

	"github.com/sequentia-lang/sequentia/cmd/sequentia/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
