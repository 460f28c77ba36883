package cmd

import (
	"fmt"

	"github.com/sequentia-lang/sequentia/internal/parser"
	"github.com/sequentia-lang/sequentia/internal/printer"
	"github.com/spf13/cobra"
)

var parseEval string

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse Sequentia source code and display the AST",
	Long: `Parse Sequentia source code and display the Abstract Syntax Tree.

If no file is provided, reads from stdin. Use -e to parse inline source.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().StringVarP(&parseEval, "eval", "e", "", "parse inline source instead of reading from file")
}

func runParse(_ *cobra.Command, args []string) error {
	source, _, err := readSource(parseEval, args)
	if err != nil {
		return err
	}

	prog, err := parser.Parse(source)
	if err != nil {
		return fmt.Errorf("parse error: %w", err)
	}

	fmt.Println("======================================================================")
	fmt.Println("ABSTRACT SYNTAX TREE (AST)")
	fmt.Println("======================================================================")
	fmt.Println(printer.AST(prog))
	return nil
}
