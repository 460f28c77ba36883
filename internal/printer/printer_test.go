package printer

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/sequentia-lang/sequentia/internal/lexer"
	"github.com/sequentia-lang/sequentia/internal/optimizer"
	"github.com/sequentia-lang/sequentia/internal/parser"
	"github.com/sequentia-lang/sequentia/internal/semantic"
	"github.com/sequentia-lang/sequentia/internal/tac"
)

func TestTokensRendersNewlineAndEOFSpecially(t *testing.T) {
	toks, err := lexer.Tokenize("a = 1\n")
	if err != nil {
		t.Fatalf("lex error: %v", err)
	}
	out := Tokens(toks)
	snaps.MatchSnapshot(t, "tokens_simple_assign", out)
}

func TestASTRendersPatternAssignAndPrint(t *testing.T) {
	prog, err := parser.Parse("xs = pattern fibonacci 5\nprint xs\n")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	snaps.MatchSnapshot(t, "ast_pattern_and_print", AST(prog))
}

func TestSymbolTableShowsDashForScalarLength(t *testing.T) {
	prog, err := parser.Parse("a = 1\nxs = pattern square 4\n")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	table, err := semantic.Analyze(prog)
	if err != nil {
		t.Fatalf("semantic error: %v", err)
	}
	snaps.MatchSnapshot(t, "symbol_table_scalar_and_array", SymbolTable(table))
}

func TestOptimizationsReportsReduction(t *testing.T) {
	prog, err := parser.Parse("a = 1 + 2\nprint a\n")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	original := tac.Generate(prog)
	optimized := optimizer.Optimize(original)
	if len(optimized) >= len(original) {
		t.Fatalf("expected optimization to reduce instruction count: %d -> %d", len(original), len(optimized))
	}
	snaps.MatchSnapshot(t, "optimizations_summary", Optimizations(original, optimized))
}

func TestProgramOutputAddsTrailingNewline(t *testing.T) {
	out := ProgramOutput("5")
	if out[len(out)-1] != '\n' {
		t.Fatal("expected ProgramOutput to end with a newline")
	}
}
