// Package interp implements Sequentia's tree-walking executor: the actual
// execution path for `run` and for the "PROGRAM OUTPUT" section of
// diagnostic dumps. It evaluates the AST directly rather than running the
// text internal/lowering emits (see that package's doc comment and
// DESIGN.md's Open Question on execution path).
package interp

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sequentia-lang/sequentia/internal/ast"
)

// Value is either a scalar int or a sequence of ints, Sequentia's only two
// runtime value shapes, mirroring its two-kind type system.
type Value any

// Error is raised for a runtime fault that semantic analysis cannot catch
// statically (e.g. out-of-range indexing at run time).
type Error struct {
	Message string
}

func (e *Error) Error() string { return e.Message }

func errf(format string, args ...any) error {
	return &Error{Message: fmt.Sprintf(format, args...)}
}

// Interpreter executes a Program's statements against a flat environment of
// bound values, writing Print output to Output.
type Interpreter struct {
	env    map[string]Value
	Output io.Writer
}

// New creates an Interpreter writing program output to output.
func New(output io.Writer) *Interpreter {
	return &Interpreter{env: make(map[string]Value), Output: output}
}

// Run executes every top-level statement of prog in order.
func (i *Interpreter) Run(prog *ast.Program) error {
	for _, stmt := range prog.Statements {
		if err := i.execStmt(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (i *Interpreter) execStmt(s ast.Statement) error {
	switch stmt := s.(type) {
	case *ast.Assign:
		v, err := i.eval(stmt.Expr)
		if err != nil {
			return err
		}
		i.env[stmt.Name] = v
		return nil

	case *ast.Print:
		v, err := i.eval(stmt.Expr)
		if err != nil {
			return err
		}
		i.printValue(v)
		return nil

	case *ast.If:
		cond, err := i.eval(stmt.Condition)
		if err != nil {
			return err
		}
		if truthy(cond) {
			return i.execStmts(stmt.Then)
		}
		return i.execStmts(stmt.Else)

	case *ast.For:
		src, err := i.eval(stmt.Source)
		if err != nil {
			return err
		}
		seq, ok := src.([]int)
		if !ok {
			return errf("for loop source is not a sequence")
		}
		for _, elem := range seq {
			i.env[stmt.Iterator] = elem
			if err := i.execStmts(stmt.Body); err != nil {
				return err
			}
		}
		return nil

	default:
		return errf("unknown statement type %T", s)
	}
}

func (i *Interpreter) execStmts(stmts []ast.Statement) error {
	for _, s := range stmts {
		if err := i.execStmt(s); err != nil {
			return err
		}
	}
	return nil
}

func truthy(v Value) bool {
	switch val := v.(type) {
	case int:
		return val != 0
	case []int:
		return len(val) != 0
	default:
		return false
	}
}

func (i *Interpreter) printValue(v Value) {
	switch val := v.(type) {
	case int:
		fmt.Fprintln(i.Output, val)
	case []int:
		parts := make([]string, len(val))
		for idx, x := range val {
			parts[idx] = strconv.Itoa(x)
		}
		fmt.Fprintln(i.Output, strings.Join(parts, " "))
	}
}

func (i *Interpreter) eval(e ast.Expression) (Value, error) {
	switch expr := e.(type) {
	case *ast.Number:
		return int(expr.Value), nil

	case *ast.Id:
		v, ok := i.env[expr.Name]
		if !ok {
			return nil, errf("undefined variable %s", expr.Name)
		}
		return v, nil

	case *ast.ArrayAccess:
		src, err := i.lookupSeq(expr.Name)
		if err != nil {
			return nil, err
		}
		idx, err := i.evalInt(expr.Index)
		if err != nil {
			return nil, err
		}
		if idx < 0 || idx >= len(src) {
			return nil, errf("index %d out of range for %s (length %d)", idx, expr.Name, len(src))
		}
		return src[idx], nil

	case *ast.Slice:
		src, err := i.lookupSeq(expr.Name)
		if err != nil {
			return nil, err
		}
		start, end := 0, len(src)
		if expr.Start != nil {
			start, err = i.evalInt(expr.Start)
			if err != nil {
				return nil, err
			}
		}
		if expr.End != nil {
			end, err = i.evalInt(expr.End)
			if err != nil {
				return nil, err
			}
		}
		if start < 0 {
			start = 0
		}
		if end > len(src) {
			end = len(src)
		}
		if start > end {
			start = end
		}
		out := make([]int, end-start)
		copy(out, src[start:end])
		return out, nil

	case *ast.BinOp:
		return i.evalBinOp(expr)

	case *ast.Pattern:
		return i.evalPattern(expr)

	default:
		return nil, errf("unknown expression type %T", e)
	}
}

func (i *Interpreter) lookupSeq(name string) ([]int, error) {
	v, ok := i.env[name]
	if !ok {
		return nil, errf("undefined variable %s", name)
	}
	seq, ok := v.([]int)
	if !ok {
		return nil, errf("%s is not a sequence", name)
	}
	return seq, nil
}

func (i *Interpreter) evalInt(e ast.Expression) (int, error) {
	v, err := i.eval(e)
	if err != nil {
		return 0, err
	}
	n, ok := v.(int)
	if !ok {
		return 0, errf("expected a scalar integer")
	}
	return n, nil
}

// evalBinOp evaluates a BinOp, broadcasting arithmetic across sequences per
// §4.4: array+array zips truncating to the shorter length; array+scalar
// broadcasts the scalar; comparisons always yield a scalar int (1 or 0).
func (i *Interpreter) evalBinOp(expr *ast.BinOp) (Value, error) {
	left, err := i.eval(expr.Left)
	if err != nil {
		return nil, err
	}
	right, err := i.eval(expr.Right)
	if err != nil {
		return nil, err
	}

	if isComparison(expr.Op) {
		l, ok := left.(int)
		if !ok {
			return nil, errf("comparison operands must be scalar integers")
		}
		r, ok := right.(int)
		if !ok {
			return nil, errf("comparison operands must be scalar integers")
		}
		if compare(l, r, expr.Op) {
			return 1, nil
		}
		return 0, nil
	}

	op, err := arithOp(expr.Op)
	if err != nil {
		return nil, err
	}
	return broadcast(left, right, op)
}

func isComparison(op string) bool {
	switch op {
	case "==", "!=", "<", ">", "<=", ">=":
		return true
	default:
		return false
	}
}

func compare(l, r int, op string) bool {
	switch op {
	case "==":
		return l == r
	case "!=":
		return l != r
	case "<":
		return l < r
	case ">":
		return l > r
	case "<=":
		return l <= r
	case ">=":
		return l >= r
	}
	return false
}

func arithOp(op string) (func(a, b int) int, error) {
	switch op {
	case "+":
		return func(a, b int) int { return a + b }, nil
	case "-":
		return func(a, b int) int { return a - b }, nil
	case "*":
		return func(a, b int) int { return a * b }, nil
	case "/":
		return func(a, b int) int { return a / b }, nil
	default:
		return nil, errf("unknown operator %s", op)
	}
}

func broadcast(left, right Value, op func(a, b int) int) (Value, error) {
	ls, lIsSeq := left.([]int)
	rs, rIsSeq := right.([]int)

	switch {
	case lIsSeq && rIsSeq:
		n := len(ls)
		if len(rs) < n {
			n = len(rs)
		}
		out := make([]int, n)
		for idx := 0; idx < n; idx++ {
			out[idx] = op(ls[idx], rs[idx])
		}
		return out, nil
	case lIsSeq:
		rv, ok := right.(int)
		if !ok {
			return nil, errf("invalid right operand")
		}
		out := make([]int, len(ls))
		for idx, x := range ls {
			out[idx] = op(x, rv)
		}
		return out, nil
	case rIsSeq:
		lv, ok := left.(int)
		if !ok {
			return nil, errf("invalid left operand")
		}
		out := make([]int, len(rs))
		for idx, x := range rs {
			out[idx] = op(lv, x)
		}
		return out, nil
	default:
		lv, ok := left.(int)
		if !ok {
			return nil, errf("invalid left operand")
		}
		rv, ok := right.(int)
		if !ok {
			return nil, errf("invalid right operand")
		}
		return op(lv, rv), nil
	}
}

// evalPattern materializes one of the seven built-in sequence generators.
func (i *Interpreter) evalPattern(expr *ast.Pattern) (Value, error) {
	args := make([]int, len(expr.Args))
	for idx, a := range expr.Args {
		v, err := i.evalInt(a)
		if err != nil {
			return nil, err
		}
		args[idx] = v
	}

	switch expr.Name {
	case "fibonacci":
		return fibonacci(args[0]), nil
	case "factorial":
		return factorial(args[0]), nil
	case "square":
		return generate(args[0], func(k int) int { return (k + 1) * (k + 1) }), nil
	case "cube":
		return generate(args[0], func(k int) int { return (k + 1) * (k + 1) * (k + 1) }), nil
	case "triangular":
		return generate(args[0], func(k int) int { return (k + 1) * (k + 2) / 2 }), nil
	case "arithmetic":
		start, step, n := args[0], args[1], args[2]
		return generate(n, func(k int) int { return start + step*k }), nil
	case "geometric":
		start, ratio, n := args[0], args[1], args[2]
		v := 1
		out := make([]int, n)
		for k := range out {
			out[k] = start * v
			v *= ratio
		}
		return out, nil
	default:
		return nil, errf("unknown pattern %s", expr.Name)
	}
}

func generate(n int, f func(k int) int) []int {
	out := make([]int, n)
	for k := range out {
		out[k] = f(k)
	}
	return out
}

func fibonacci(n int) []int {
	out := make([]int, 0, n)
	a, b := 0, 1
	for k := 0; k < n; k++ {
		out = append(out, a)
		a, b = b, a+b
	}
	return out
}

func factorial(n int) []int {
	out := make([]int, 0, n)
	f := 1
	for k := 1; k <= n; k++ {
		f *= k
		out = append(out, f)
	}
	return out
}
