// Package sequentia is the collaborator-facing facade over Sequentia's
// compiler pipeline: lexer -> parser -> semantic analysis -> TAC generation
// -> optimization -> lowering, plus execution via internal/interp. It
// exposes a single entry point returning a structured, stage-tagged error.
package sequentia

import (
	"fmt"
	"io"

	"github.com/sequentia-lang/sequentia/internal/ast"
	"github.com/sequentia-lang/sequentia/internal/interp"
	"github.com/sequentia-lang/sequentia/internal/lexer"
	"github.com/sequentia-lang/sequentia/internal/lowering"
	"github.com/sequentia-lang/sequentia/internal/optimizer"
	"github.com/sequentia-lang/sequentia/internal/parser"
	"github.com/sequentia-lang/sequentia/internal/semantic"
	"github.com/sequentia-lang/sequentia/internal/tac"
	"github.com/sequentia-lang/sequentia/internal/token"
)

// CompileError tags the pipeline stage a compile failed at (lexing,
// parsing, or semantic analysis) alongside the underlying error, so
// collaborators can report LexError/ParseError/SemanticError distinctly
// without type-switching on the underlying error's concrete type.
type CompileError struct {
	Stage string
	Err   error
}

func (e *CompileError) Error() string { return fmt.Sprintf("%s error: %s", e.Stage, e.Err) }
func (e *CompileError) Unwrap() error { return e.Err }

// Result holds everything a single compile produced: every intermediate
// artifact the pipeline's stages emit, per §6's compile contract.
type Result struct {
	Tokens       []token.Token
	Program      *ast.Program
	Symbols      *semantic.Table
	TACOriginal  []tac.Instruction
	TACOptimized []tac.Instruction
	LoweredText  string
}

// Compile runs source through the full pipeline and returns every
// intermediate artifact, or the first LexError/ParseError/SemanticError
// encountered, wrapped in a *CompileError naming the failing stage.
func Compile(source string) (*Result, error) {
	toks, err := lexer.Tokenize(source)
	if err != nil {
		return nil, &CompileError{Stage: "lexing", Err: err}
	}

	prog, err := parser.New(toks).ParseProgram()
	if err != nil {
		return nil, &CompileError{Stage: "parsing", Err: err}
	}

	symbols, err := semantic.Analyze(prog)
	if err != nil {
		return nil, &CompileError{Stage: "semantic analysis", Err: err}
	}

	original := tac.Generate(prog)
	optimized := optimizer.Optimize(original)
	lowered := lowering.Lower(prog)

	return &Result{
		Tokens:       toks,
		Program:      prog,
		Symbols:      symbols,
		TACOriginal:  original,
		TACOptimized: optimized,
		LoweredText:  lowered,
	}, nil
}

// Execute runs the compiled program's AST against a fresh interpreter,
// writing its Print output to out.
func (r *Result) Execute(out io.Writer) error {
	return interp.New(out).Run(r.Program)
}
