package cmd

import (
	"fmt"

	"github.com/sequentia-lang/sequentia/internal/printer"
	"github.com/sequentia-lang/sequentia/pkg/sequentia"
	"github.com/spf13/cobra"
)

var (
	compileEval      string
	compileShowLower bool
)

var compileCmd = &cobra.Command{
	Use:   "compile [file]",
	Short: "Run the full pipeline and print every diagnostic block, without executing",
	Long: `Compile runs a Sequentia program through every pipeline stage (lexer,
parser, semantic analysis, TAC generation, and optimization) and prints
the tokens, AST, symbol table, original TAC, optimization summary, and
optimized TAC. Unlike "run", it does not execute the program.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCompile,
}

func init() {
	rootCmd.AddCommand(compileCmd)
	compileCmd.Flags().StringVarP(&compileEval, "eval", "e", "", "compile inline source instead of reading from file")
	compileCmd.Flags().BoolVar(&compileShowLower, "show-lowered", false, "also print the lowered Go source")
}

func runCompile(_ *cobra.Command, args []string) error {
	source, filename, err := readSource(compileEval, args)
	if err != nil {
		return err
	}

	result, compileErr := sequentia.Compile(source)
	if compileErr != nil {
		reportCompileError(compileErr, source, filename)
		return fmt.Errorf("compilation failed")
	}

	fmt.Print(printer.Tokens(result.Tokens))
	fmt.Println("======================================================================")
	fmt.Println("ABSTRACT SYNTAX TREE (AST)")
	fmt.Println("======================================================================")
	fmt.Println(printer.AST(result.Program))
	fmt.Println()
	fmt.Print(printer.SymbolTable(result.Symbols))
	fmt.Print(printer.TAC(result.TACOriginal))
	fmt.Print(printer.Optimizations(result.TACOriginal, result.TACOptimized))
	fmt.Print(printer.OptimizedTAC(result.TACOptimized))

	if compileShowLower {
		fmt.Println("======================================================================")
		fmt.Println("LOWERED SOURCE")
		fmt.Println("======================================================================")
		fmt.Println(result.LoweredText)
	}

	return nil
}
