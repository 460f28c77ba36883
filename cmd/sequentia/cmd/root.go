package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/sequentia-lang/sequentia/internal/errors"
	"github.com/sequentia-lang/sequentia/internal/lexer"
	"github.com/sequentia-lang/sequentia/internal/parser"
	"github.com/sequentia-lang/sequentia/internal/printer"
	"github.com/sequentia-lang/sequentia/internal/semantic"
	"github.com/sequentia-lang/sequentia/internal/token"
	"github.com/sequentia-lang/sequentia/pkg/sequentia"
	"github.com/spf13/cobra"
)

// Version is set by build flags.
var Version = "0.1.0-dev"

var rootCmd = &cobra.Command{
	Use:   "sequentia [file]",
	Short: "Sequentia compiler: lexer, parser, semantic analysis, TAC, optimizer",
	Long: `sequentia compiles and runs Sequentia programs: small scripts that
declare integer sequences (fibonacci, factorial, squares, cubes, triangular,
arithmetic, geometric) and print scalars or arrays derived from them.

With no arguments, sequentia enters an interactive batch mode: type lines of
source, then a blank line compiles and runs everything typed so far. With one
argument, it treats that argument as a source file, compiling and dumping it
once.`,
	Version: Version,
	Args:    cobra.MaximumNArgs(1),
	RunE:    runRoot,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate("sequentia version {{.Version}}\n")
}

func runRoot(_ *cobra.Command, args []string) error {
	if len(args) == 0 {
		repl()
		return nil
	}
	return runFile(args[0])
}

// dumpAll renders every diagnostic block spec.md §6 names, in a fixed
// order, followed by the program's captured output.
func dumpAll(result *sequentia.Result, programOutput string) string {
	var b strings.Builder
	b.WriteString(printer.Tokens(result.Tokens))
	b.WriteString("======================================================================\n")
	b.WriteString("ABSTRACT SYNTAX TREE (AST)\n")
	b.WriteString("======================================================================\n")
	b.WriteString(printer.AST(result.Program))
	b.WriteString("\n\n")
	b.WriteString(printer.SymbolTable(result.Symbols))
	b.WriteString(printer.TAC(result.TACOriginal))
	b.WriteString(printer.Optimizations(result.TACOriginal, result.TACOptimized))
	b.WriteString(printer.OptimizedTAC(result.TACOptimized))
	b.WriteString(printer.ProgramOutput(programOutput))
	return b.String()
}

// runFile implements spec.md §6's one-argument batch mode: compile a source
// file and dump every diagnostic block plus its program output, or (on a
// compile error) print the formatted error and its pipeline trace and
// return a non-zero exit status.
func runFile(filename string) error {
	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	source := string(content)

	result, compileErr := sequentia.Compile(source)
	if compileErr != nil {
		fmt.Println("Compilation / execution error:")
		reportCompileError(compileErr, source, filename)
		return fmt.Errorf("compilation failed")
	}

	var out strings.Builder
	if execErr := result.Execute(&out); execErr != nil {
		fmt.Println("Compilation / execution error:")
		fmt.Println(execErr.Error())
		return fmt.Errorf("execution failed")
	}

	fmt.Print(dumpAll(result, out.String()))
	return nil
}

// repl implements spec.md §6's no-argument interactive batch mode:
// accumulate non-blank lines, and on a blank line compile and run
// everything accumulated so far, printing every diagnostic block (or, on
// failure, the error and its pipeline trace) before resetting for the next
// block.
func repl() {
	fmt.Println("======================================================================")
	fmt.Println("SEQUENTIA COMPILER - Interactive Mode")
	fmt.Println("======================================================================")
	fmt.Println("Parser Type: Recursive Descent (Top-Down Parser)")
	fmt.Println("Features: Lexer -> Parser -> Semantic Analysis -> TAC -> Optimization")
	fmt.Println()
	fmt.Println("Enter lines, empty line to execute block. Ctrl-D to exit.")
	fmt.Println("Note: use 'print x' to display variable values")
	fmt.Println("======================================================================")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	var lines []string
	for {
		fmt.Print(">>> ")
		if !scanner.Scan() {
			fmt.Println()
			fmt.Println("Exiting.")
			return
		}
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			if len(lines) == 0 {
				continue
			}
			source := strings.Join(lines, "\n") + "\n"
			runBlock(source)
			lines = nil
			continue
		}
		lines = append(lines, line)
	}
}

func runBlock(source string) {
	result, compileErr := sequentia.Compile(source)
	if compileErr != nil {
		fmt.Println("Error:")
		reportCompileError(compileErr, source, "<repl>")
		return
	}

	var out strings.Builder
	if execErr := result.Execute(&out); execErr != nil {
		fmt.Println("Error:", execErr)
		return
	}

	fmt.Print(dumpAll(result, out.String()))
}

// reportCompileError prints a *sequentia.CompileError as a formatted
// CompilerError (source snippet + caret) followed by the pipeline's
// StackTrace up to the failing stage, matching spec.md §7's "in batch mode,
// a stack trace" requirement.
func reportCompileError(err error, source, filename string) {
	compileErr, ok := err.(*sequentia.CompileError)
	if !ok {
		fmt.Println(err.Error())
		return
	}

	pos, message := positionAndMessage(compileErr.Err)
	cerr := errors.NewCompilerError(pos, message, source, filename)
	fmt.Println(cerr.Format(false))
	fmt.Println()
	fmt.Println(errors.NewPipelineTrace(compileErr.Stage, pos).String())
}

// positionAndMessage extracts the byte position and message from whichever
// of the three fatal-boundary error types underlies a *sequentia.CompileError.
// semantic.Error carries no position (semantic errors are reported against
// the whole program, not a single token), so it contributes the zero
// position.
func positionAndMessage(err error) (token.Position, string) {
	switch e := err.(type) {
	case *lexer.Error:
		return e.Pos, e.Message
	case *parser.Error:
		return e.Pos, e.Message
	case *semantic.Error:
		return token.Position{}, e.Message
	default:
		return token.Position{}, err.Error()
	}
}
