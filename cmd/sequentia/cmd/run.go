package cmd

import (
	"fmt"
	"os"

	"github.com/sequentia-lang/sequentia/pkg/sequentia"
	"github.com/spf13/cobra"
)

var (
	runEval    string
	runDumpAST bool
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Compile and execute a Sequentia program",
	Long: `Run compiles a Sequentia program through the full pipeline and then
executes it, writing whatever its print statements produce to stdout.

Examples:
  # Run a script file
  sequentia run script.seq

  # Evaluate inline source
  sequentia run -e "print 1 + 2"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRunCmd,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVarP(&runEval, "eval", "e", "", "execute inline source instead of reading from file")
	runCmd.Flags().BoolVar(&runDumpAST, "dump-ast", false, "print the parsed AST before executing")
}

func runRunCmd(_ *cobra.Command, args []string) error {
	source, filename, err := readSource(runEval, args)
	if err != nil {
		return err
	}

	result, compileErr := sequentia.Compile(source)
	if compileErr != nil {
		reportCompileError(compileErr, source, filename)
		return fmt.Errorf("compilation failed")
	}

	if runDumpAST {
		fmt.Println(result.Program.String())
	}

	if err := result.Execute(os.Stdout); err != nil {
		return fmt.Errorf("execution failed: %w", err)
	}
	return nil
}
