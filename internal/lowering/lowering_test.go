package lowering

import (
	"strings"
	"testing"

	"github.com/sequentia-lang/sequentia/internal/parser"
)

func lower(t *testing.T, src string) string {
	t.Helper()
	prog, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	return Lower(prog)
}

func TestLowerIncludesRuntimePrelude(t *testing.T) {
	out := lower(t, "n = 5\n")
	if !strings.Contains(out, "func patAdd") {
		t.Fatal("expected runtime prelude in lowered output")
	}
}

func TestLowerPatternAssign(t *testing.T) {
	out := lower(t, "xs = pattern fibonacci 5\n")
	if !strings.Contains(out, "xs := fibInline(5)") {
		t.Errorf("unexpected lowering: %s", out)
	}
}

func TestLowerBroadcastArithmeticUsesRuntimeHelpers(t *testing.T) {
	out := lower(t, "xs = pattern square 4\nys = xs + 10\n")
	if !strings.Contains(out, "patAdd(xs, 10)") {
		t.Errorf("expected patAdd call, got: %s", out)
	}
}

func TestLowerForUsesRangeOverSourceName(t *testing.T) {
	out := lower(t, "xs = pattern cube 4\nfor v in xs {\nprint v\n}\n")
	if !strings.Contains(out, "for _, v := range xs {") {
		t.Errorf("expected range-over-xs loop, got: %s", out)
	}
}

func TestLowerIfOmitsElseBraceWithoutElseBlock(t *testing.T) {
	out := lower(t, "a = 1\nb = 2\nif a < b {\nprint a\n}\n")
	if strings.Contains(out, "} else {") {
		t.Errorf("did not expect an else clause: %s", out)
	}
	if !strings.Contains(out, "if seqTruthy(") {
		t.Errorf("expected a seqTruthy-guarded if: %s", out)
	}
}

func TestLowerComparisonUsesPatCmpNotNativeBool(t *testing.T) {
	// seqTruthy/printSeqValue only know int and []int; a native Go bool
	// would make every comparison-guarded if false and every printed
	// comparison panic, so comparisons must lower through patCmp.
	out := lower(t, "a = 1\nb = 2\nif a < b {\nprint a\n}\n")
	if !strings.Contains(out, `patCmp(a, b, "<")`) {
		t.Errorf("expected a patCmp call for the comparison, got: %s", out)
	}
	if strings.Contains(out, "(a < b)") {
		t.Errorf("did not expect a native Go bool comparison, got: %s", out)
	}
}

func TestLowerComparisonAssignedThenPrinted(t *testing.T) {
	out := lower(t, "a = 1\nb = 2\nc = a < b\nprint c\n")
	if !strings.Contains(out, `c := patCmp(a, b, "<")`) {
		t.Errorf("expected comparison result assigned via patCmp, got: %s", out)
	}
	if !strings.Contains(out, "printSeqValue(c)") {
		t.Errorf("expected c to be printed via printSeqValue, got: %s", out)
	}
}
