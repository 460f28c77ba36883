package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/sequentia-lang/sequentia/internal/lexer"
	"github.com/sequentia-lang/sequentia/internal/printer"
	"github.com/spf13/cobra"
)

var lexEval string

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a Sequentia program and print the resulting tokens",
	Long: `Tokenize (lex) a Sequentia program and print the resulting tokens.

This command is useful for debugging the lexer and understanding how
Sequentia source code is tokenized.

Examples:
  # Tokenize a script file
  sequentia lex script.seq

  # Tokenize inline source
  sequentia lex -e $'n = 5\nprint n\n'`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLex,
}

func init() {
	rootCmd.AddCommand(lexCmd)
	lexCmd.Flags().StringVarP(&lexEval, "eval", "e", "", "tokenize inline source instead of reading from file")
}

func runLex(_ *cobra.Command, args []string) error {
	source, _, err := readSource(lexEval, args)
	if err != nil {
		return err
	}

	toks, err := lexer.Tokenize(source)
	if err != nil {
		return fmt.Errorf("lex error: %w", err)
	}
	fmt.Print(printer.Tokens(toks))
	return nil
}

// readSource resolves the CLI's common "inline source, or file argument, or
// stdin" input convention shared by lex/parse/compile/run.
func readSource(eval string, args []string) (source, filename string, err error) {
	if eval != "" {
		return eval, "<eval>", nil
	}
	if len(args) == 1 {
		content, rerr := os.ReadFile(args[0])
		if rerr != nil {
			return "", "", fmt.Errorf("failed to read file %s: %w", args[0], rerr)
		}
		return string(content), args[0], nil
	}
	content, rerr := io.ReadAll(os.Stdin)
	if rerr != nil {
		return "", "", fmt.Errorf("failed to read stdin: %w", rerr)
	}
	return string(content), "<stdin>", nil
}
