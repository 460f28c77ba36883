// Package lowering implements Sequentia's lowering backend (C6): it emits
// Go source text that reproduces a program's observable behavior, plus the
// runtime prelude (broadcasting arithmetic, fibonacci/factorial helpers)
// that text depends on. This text is a diagnostic/inspection artifact (the
// "lowered_text" of the collaborator-facing API); the CLI's `run` command
// actually executes programs via internal/interp, a tree-walking evaluator,
// rather than compiling and running this emitted text; see DESIGN.md's
// Open Question on execution path vs. LoweredText.
package lowering

import (
	"fmt"
	"strings"

	"github.com/sequentia-lang/sequentia/internal/ast"
)

// RuntimePrelude is the Go source text defining the broadcasting
// arithmetic helpers and the fibonacci/factorial sequence generators that
// every lowered program depends on.
const RuntimePrelude = `// Runtime helpers for scalar/sequence arithmetic with broadcasting.
func patAdd(a, b any) any { return patBinOp(a, b, func(x, y int) int { return x + y }) }
func patSub(a, b any) any { return patBinOp(a, b, func(x, y int) int { return x - y }) }
func patMul(a, b any) any { return patBinOp(a, b, func(x, y int) int { return x * y }) }
func patDiv(a, b any) any { return patBinOp(a, b, func(x, y int) int { return x / y }) }

// patCmp evaluates a comparison and returns the scalar 1/0 Sequentia uses
// for truthiness, never a native bool.
func patCmp(a, b any, op string) int {
	av, bv := a.(int), b.(int)
	var result bool
	switch op {
	case "==":
		result = av == bv
	case "!=":
		result = av != bv
	case "<":
		result = av < bv
	case ">":
		result = av > bv
	case "<=":
		result = av <= bv
	case ">=":
		result = av >= bv
	}
	if result {
		return 1
	}
	return 0
}

func patBinOp(a, b any, op func(int, int) int) any {
	as, aIsSeq := a.([]int)
	bs, bIsSeq := b.([]int)
	switch {
	case aIsSeq && bIsSeq:
		n := len(as)
		if len(bs) < n {
			n = len(bs)
		}
		out := make([]int, n)
		for i := 0; i < n; i++ {
			out[i] = op(as[i], bs[i])
		}
		return out
	case aIsSeq:
		bv := b.(int)
		out := make([]int, len(as))
		for i, x := range as {
			out[i] = op(x, bv)
		}
		return out
	case bIsSeq:
		av := a.(int)
		out := make([]int, len(bs))
		for i, x := range bs {
			out[i] = op(av, x)
		}
		return out
	default:
		return op(a.(int), b.(int))
	}
}

func fibInline(n int) []int {
	a, b := 0, 1
	out := make([]int, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, a)
		a, b = b, a+b
	}
	return out
}

func factInline(n int) []int {
	out := make([]int, 0, n)
	f := 1
	for i := 1; i <= n; i++ {
		f *= i
		out = append(out, f)
	}
	return out
}

func patSquare(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = (i + 1) * (i + 1)
	}
	return out
}

func patCube(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = (i + 1) * (i + 1) * (i + 1)
	}
	return out
}

func patTriangular(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = (i + 1) * (i + 2) / 2
	}
	return out
}

func patArithmetic(start, step, n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = start + step*i
	}
	return out
}

func patGeometric(start, ratio, n int) []int {
	out := make([]int, n)
	v := 1
	for i := range out {
		out[i] = start * v
		v *= ratio
	}
	return out
}

func seqTruthy(v any) bool {
	if n, ok := v.(int); ok {
		return n != 0
	}
	if s, ok := v.([]int); ok {
		return len(s) != 0
	}
	return false
}

func printSeqValue(v any) {
	if n, ok := v.(int); ok {
		fmt.Println(n)
		return
	}
	s := v.([]int)
	parts := make([]string, len(s))
	for i, x := range s {
		parts[i] = strconv.Itoa(x)
	}
	fmt.Println(strings.Join(parts, " "))
}
`

// Lower renders prog as a complete Go source file: a package clause, the
// imports the runtime prelude and generated statements depend on, the
// prelude itself, and a main function running the statements in order.
func Lower(prog *ast.Program) string {
	var sb strings.Builder
	sb.WriteString("// Generated Go code\n")
	sb.WriteString("package main\n\n")
	sb.WriteString("import (\n\t\"fmt\"\n\t\"strconv\"\n\t\"strings\"\n)\n\n")
	sb.WriteString(RuntimePrelude)
	sb.WriteString("\nfunc main() {\n")
	for _, stmt := range prog.Statements {
		sb.WriteString(genStmt(stmt, 1))
	}
	sb.WriteString("}\n")
	return sb.String()
}

func indent(level int) string { return strings.Repeat("\t", level) }

// exprText renders expr as Go source text, routing arithmetic through the
// broadcasting runtime helpers and comparisons through patCmp, which yields
// the 1/0 scalar §4.6 requires (not a native Go bool, which seqTruthy and
// printSeqValue have no case for).
func exprText(e ast.Expression) string {
	switch expr := e.(type) {
	case *ast.Number:
		return fmt.Sprintf("%d", expr.Value)
	case *ast.Id:
		return expr.Name
	case *ast.ArrayAccess:
		return fmt.Sprintf("%s[%s]", expr.Name, exprText(expr.Index))
	case *ast.Slice:
		start := ""
		if expr.Start != nil {
			start = exprText(expr.Start)
		}
		end := ""
		if expr.End != nil {
			end = exprText(expr.End)
		}
		return fmt.Sprintf("%s[%s:%s]", expr.Name, start, end)
	case *ast.BinOp:
		left, right := exprText(expr.Left), exprText(expr.Right)
		switch expr.Op {
		case "+":
			return fmt.Sprintf("patAdd(%s, %s)", left, right)
		case "-":
			return fmt.Sprintf("patSub(%s, %s)", left, right)
		case "*":
			return fmt.Sprintf("patMul(%s, %s)", left, right)
		case "/":
			return fmt.Sprintf("patDiv(%s, %s)", left, right)
		default:
			return fmt.Sprintf("patCmp(%s, %s, %q)", left, right, expr.Op)
		}
	case *ast.Pattern:
		return patternInline(expr.Name, expr.Args)
	default:
		return "nil"
	}
}

// patternInline renders a pattern call as a call to its runtime helper,
// wherever the pattern appears (assignment right-hand side or nested
// inside another expression), matching §4.6's per-pattern expansion contract.
func patternInline(pattern string, args []ast.Expression) string {
	values := make([]string, len(args))
	for i, a := range args {
		values[i] = exprText(a)
	}
	switch pattern {
	case "square":
		return fmt.Sprintf("patSquare(%s)", values[0])
	case "cube":
		return fmt.Sprintf("patCube(%s)", values[0])
	case "triangular":
		return fmt.Sprintf("patTriangular(%s)", values[0])
	case "arithmetic":
		return fmt.Sprintf("patArithmetic(%s, %s, %s)", values[0], values[1], values[2])
	case "geometric":
		return fmt.Sprintf("patGeometric(%s, %s, %s)", values[0], values[1], values[2])
	case "fibonacci":
		return fmt.Sprintf("fibInline(%s)", values[0])
	case "factorial":
		return fmt.Sprintf("factInline(%s)", values[0])
	default:
		return "nil"
	}
}

func genStmt(s ast.Statement, level int) string {
	pad := indent(level)
	var sb strings.Builder

	switch stmt := s.(type) {
	case *ast.Assign:
		sb.WriteString(fmt.Sprintf("%s%s := %s\n", pad, stmt.Name, exprText(stmt.Expr)))

	case *ast.Print:
		if name, ok := stmt.IsSimpleName(); ok {
			sb.WriteString(fmt.Sprintf("%sprintSeqValue(%s)\n", pad, name))
		} else if aa, ok := stmt.IsIndexed(); ok {
			sb.WriteString(fmt.Sprintf("%sprintSeqValue(%s[%s])\n", pad, aa.Name, exprText(aa.Index)))
		} else {
			sb.WriteString(fmt.Sprintf("%sprintSeqValue(%s)\n", pad, exprText(stmt.Expr)))
		}

	case *ast.If:
		sb.WriteString(fmt.Sprintf("%sif seqTruthy(%s) {\n", pad, exprText(stmt.Condition)))
		for _, s := range stmt.Then {
			sb.WriteString(genStmt(s, level+1))
		}
		if stmt.Else != nil {
			sb.WriteString(fmt.Sprintf("%s} else {\n", pad))
			for _, s := range stmt.Else {
				sb.WriteString(genStmt(s, level+1))
			}
		}
		sb.WriteString(fmt.Sprintf("%s}\n", pad))

	case *ast.For:
		source := exprText(stmt.Source)
		if name, ok := stmt.SourceName(); ok {
			source = name
		}
		sb.WriteString(fmt.Sprintf("%sfor _, %s := range %s {\n", pad, stmt.Iterator, source))
		for _, s := range stmt.Body {
			sb.WriteString(genStmt(s, level+1))
		}
		sb.WriteString(fmt.Sprintf("%s}\n", pad))
	}

	return sb.String()
}
