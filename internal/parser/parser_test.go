package parser

import (
	"testing"

	"github.com/sequentia-lang/sequentia/internal/ast"
)

func mustParse(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, err := Parse(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return prog
}

func TestParseAssignNumber(t *testing.T) {
	prog := mustParse(t, "n = 5\n")
	if len(prog.Statements) != 1 {
		t.Fatalf("got %d statements", len(prog.Statements))
	}
	assign, ok := prog.Statements[0].(*ast.Assign)
	if !ok {
		t.Fatalf("expected *ast.Assign, got %T", prog.Statements[0])
	}
	num, ok := assign.Expr.(*ast.Number)
	if !ok || num.Value != 5 {
		t.Fatalf("expected Number(5), got %#v", assign.Expr)
	}
}

func TestParsePatternAssign(t *testing.T) {
	prog := mustParse(t, "xs = pattern arithmetic 2, 3, 4\n")
	assign := prog.Statements[0].(*ast.Assign)
	pat, ok := assign.Expr.(*ast.Pattern)
	if !ok {
		t.Fatalf("expected *ast.Pattern, got %T", assign.Expr)
	}
	if pat.Name != "arithmetic" || len(pat.Args) != 3 {
		t.Fatalf("unexpected pattern: %+v", pat)
	}
}

func TestParsePrintVariants(t *testing.T) {
	prog := mustParse(t, "print xs\nprint xs[2]\nprint xs + 1\n")
	if len(prog.Statements) != 3 {
		t.Fatalf("got %d statements", len(prog.Statements))
	}

	p0 := prog.Statements[0].(*ast.Print)
	if name, ok := p0.IsSimpleName(); !ok || name != "xs" {
		t.Errorf("expected simple name print, got %+v", p0)
	}

	p1 := prog.Statements[1].(*ast.Print)
	if _, ok := p1.IsIndexed(); !ok {
		t.Errorf("expected indexed print, got %+v", p1)
	}

	p2 := prog.Statements[2].(*ast.Print)
	if _, ok := p2.Expr.(*ast.BinOp); !ok {
		t.Errorf("expected BinOp print expr, got %#v", p2.Expr)
	}
}

func TestParseComparisonIsNonAssociative(t *testing.T) {
	_, err := Parse("a = 1 < 2 < 3\n")
	if err == nil {
		t.Fatal("expected a parse error for chained comparison")
	}
}

func TestParseIfElse(t *testing.T) {
	prog := mustParse(t, "if a < b {\nprint a\n} else {\nprint b\n}\n")
	ifStmt, ok := prog.Statements[0].(*ast.If)
	if !ok {
		t.Fatalf("expected *ast.If, got %T", prog.Statements[0])
	}
	if len(ifStmt.Then) != 1 || len(ifStmt.Else) != 1 {
		t.Fatalf("unexpected block sizes: then=%d else=%d", len(ifStmt.Then), len(ifStmt.Else))
	}
}

func TestParseForBindsBareSourceName(t *testing.T) {
	prog := mustParse(t, "for v in xs {\nprint v\n}\n")
	forStmt := prog.Statements[0].(*ast.For)
	name, ok := forStmt.SourceName()
	if !ok || name != "xs" {
		t.Fatalf("expected bare source name xs, got %+v", forStmt.Source)
	}
}

func TestParseSliceOpenBounds(t *testing.T) {
	prog := mustParse(t, "ys = xs[1:4]\nzs = xs[:5]\nws = xs[2:]\n")
	s0 := prog.Statements[0].(*ast.Assign).Expr.(*ast.Slice)
	if s0.Start == nil || s0.End == nil {
		t.Errorf("expected both bounds set: %+v", s0)
	}
	s1 := prog.Statements[1].(*ast.Assign).Expr.(*ast.Slice)
	if s1.Start != nil || s1.End == nil {
		t.Errorf("expected only end set: %+v", s1)
	}
	s2 := prog.Statements[2].(*ast.Assign).Expr.(*ast.Slice)
	if s2.Start == nil || s2.End != nil {
		t.Errorf("expected only start set: %+v", s2)
	}
}

func TestParseInvalidStatementStart(t *testing.T) {
	_, err := Parse("123\n")
	if err == nil {
		t.Fatal("expected an error")
	}
}

func TestParseInvalidPatternKeyword(t *testing.T) {
	_, err := Parse("xs = pattern print 5\n")
	if err == nil {
		t.Fatal("expected an error for invalid pattern keyword")
	}
}
