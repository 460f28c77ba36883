// Package semantic implements Sequentia's type-aware semantic analyzer (C3):
// AST -> symbol table, with kind-checking and static length inference.
package semantic

import (
	"fmt"

	"github.com/sequentia-lang/sequentia/internal/ast"
)

// Kind is a symbol's type: Sequentia has exactly two.
type Kind string

const (
	ScalarInt Kind = "int"
	ArrayInt  Kind = "array"
)

// Symbol records everything known about a name at compile time: its kind,
// an optional statically-derived length, and (for arrays produced by a
// pattern, directly or through an identifier copy) the originating pattern
// name and argument expressions, kept for informational propagation.
type Symbol struct {
	Name        string
	Kind        Kind
	Length      *int // nil means unknown/dynamic
	Pattern     string
	PatternArgs []ast.Expression
}

// Table is Sequentia's single flat (unscoped) symbol table: bindings
// introduced inside If/For bodies remain visible to subsequent statements,
// matching §3's "flat scope, no true lexical shadowing" invariant. Order
// is preserved for diagnostic rendering (the pretty printer shows symbols
// in definition order).
type Table struct {
	byName map[string]*Symbol
	order  []string
}

// NewTable returns an empty symbol table.
func NewTable() *Table {
	return &Table{byName: make(map[string]*Symbol)}
}

func (t *Table) set(sym *Symbol) {
	if _, exists := t.byName[sym.Name]; !exists {
		t.order = append(t.order, sym.Name)
	}
	t.byName[sym.Name] = sym
}

// Lookup returns the symbol bound to name, if any.
func (t *Table) Lookup(name string) (*Symbol, bool) {
	sym, ok := t.byName[name]
	return sym, ok
}

// InOrder returns symbols in the order they were first defined.
func (t *Table) InOrder() []*Symbol {
	syms := make([]*Symbol, len(t.order))
	for i, name := range t.order {
		syms[i] = t.byName[name]
	}
	return syms
}

// Error is raised for an undefined reference, a kind mismatch, a
// non-integer index, an invalid pattern argument, or a non-array `for`
// source. It is a fatal boundary: analysis never resumes after one.
type Error struct {
	Message string
}

func (e *Error) Error() string { return e.Message }

func errf(format string, args ...any) error {
	return &Error{Message: fmt.Sprintf(format, args...)}
}

// Analyzer walks a Program in order, building a Table.
type Analyzer struct {
	Table *Table
}

// NewAnalyzer constructs an Analyzer with a fresh symbol table.
func NewAnalyzer() *Analyzer {
	return &Analyzer{Table: NewTable()}
}

// Analyze is the convenience entry point: analyze a program and return its
// symbol table, or the first SemanticError encountered.
func Analyze(prog *ast.Program) (*Table, error) {
	a := NewAnalyzer()
	if err := a.Check(prog); err != nil {
		return nil, err
	}
	return a.Table, nil
}

// Check walks every top-level statement of prog.
func (a *Analyzer) Check(prog *ast.Program) error {
	return a.checkStmts(prog.Statements)
}

func (a *Analyzer) checkStmts(stmts []ast.Statement) error {
	for _, s := range stmts {
		if err := a.checkStmt(s); err != nil {
			return err
		}
	}
	return nil
}

func (a *Analyzer) checkStmt(s ast.Statement) error {
	switch stmt := s.(type) {
	case *ast.Assign:
		return a.checkAssign(stmt)
	case *ast.Print:
		return a.checkPrint(stmt)
	case *ast.If:
		return a.checkIf(stmt)
	case *ast.For:
		return a.checkFor(stmt)
	default:
		return errf("Invalid statement")
	}
}

func intPtr(v int) *int { return &v }

// patternTargetLength mirrors the Python reference's `lengths[-1]`: the
// target array's static length is the last pattern argument's literal
// value, if that argument is a number literal; otherwise unknown.
func patternTargetLength(args []ast.Expression) *int {
	if len(args) == 0 {
		return nil
	}
	if num, ok := args[len(args)-1].(*ast.Number); ok {
		return intPtr(int(num.Value))
	}
	return nil
}

func (a *Analyzer) checkAssign(stmt *ast.Assign) error {
	switch expr := stmt.Expr.(type) {
	case *ast.Number:
		a.Table.set(&Symbol{Name: stmt.Name, Kind: ScalarInt})
		return nil

	case *ast.ArrayAccess:
		src, ok := a.Table.Lookup(expr.Name)
		if !ok {
			return errf("Undefined array %s", expr.Name)
		}
		if src.Kind != ArrayInt {
			return errf("%s is not an array", expr.Name)
		}
		if _, err := a.checkExprType(expr.Index, ScalarInt); err != nil {
			return err
		}
		a.Table.set(&Symbol{Name: stmt.Name, Kind: ScalarInt})
		return nil

	case *ast.Slice:
		src, ok := a.Table.Lookup(expr.Name)
		if !ok {
			return errf("Undefined array %s", expr.Name)
		}
		if src.Kind != ArrayInt {
			return errf("%s is not an array", expr.Name)
		}
		if expr.Start != nil {
			if _, err := a.checkExprType(expr.Start, ScalarInt); err != nil {
				return err
			}
		}
		if expr.End != nil {
			if _, err := a.checkExprType(expr.End, ScalarInt); err != nil {
				return err
			}
		}

		var length *int
		startNum, startIsNum := expr.Start.(*ast.Number)
		endNum, endIsNum := expr.End.(*ast.Number)
		switch {
		case startIsNum && endIsNum:
			length = intPtr(int(endNum.Value - startNum.Value))
		case expr.Start == nil && endIsNum:
			length = intPtr(int(endNum.Value))
		case startIsNum && expr.End == nil:
			if src.Length != nil {
				length = intPtr(*src.Length - int(startNum.Value))
			}
		}

		a.Table.set(&Symbol{Name: stmt.Name, Kind: ArrayInt, Length: length})
		return nil

	case *ast.Id:
		src, ok := a.Table.Lookup(expr.Name)
		if !ok {
			return errf("Undefined source variable %s", expr.Name)
		}
		if src.Kind == ScalarInt {
			a.Table.set(&Symbol{Name: stmt.Name, Kind: ScalarInt})
		} else {
			a.Table.set(&Symbol{
				Name: stmt.Name, Kind: ArrayInt,
				Length: src.Length, Pattern: src.Pattern, PatternArgs: src.PatternArgs,
			})
		}
		return nil

	case *ast.BinOp:
		resultKind, err := a.checkBinOp(expr)
		if err != nil {
			return err
		}
		var length *int
		if resultKind == ArrayInt {
			if leftID, ok := expr.Left.(*ast.Id); ok {
				if leftSym, ok := a.Table.Lookup(leftID.Name); ok && leftSym.Kind == ArrayInt {
					length = leftSym.Length
				}
			} else if rightID, ok := expr.Right.(*ast.Id); ok {
				if rightSym, ok := a.Table.Lookup(rightID.Name); ok && rightSym.Kind == ArrayInt {
					length = rightSym.Length
				}
			}
		}
		a.Table.set(&Symbol{Name: stmt.Name, Kind: resultKind, Length: length})
		return nil

	case *ast.Pattern:
		if err := a.checkPatternArgs(expr.Args); err != nil {
			return err
		}
		a.Table.set(&Symbol{
			Name: stmt.Name, Kind: ArrayInt, Length: patternTargetLength(expr.Args),
			Pattern: expr.Name, PatternArgs: expr.Args,
		})
		return nil

	default:
		return errf("Invalid assignment expression")
	}
}

// checkPatternArgs validates each pattern argument per §4.3: numbers are
// accepted; identifiers must be scalar-int; array accesses must be on known
// arrays with a scalar-int index.
func (a *Analyzer) checkPatternArgs(args []ast.Expression) error {
	for _, arg := range args {
		switch v := arg.(type) {
		case *ast.Number:
			// always fine
		case *ast.Id:
			sym, ok := a.Table.Lookup(v.Name)
			if !ok {
				return errf("Undefined scalar variable %s", v.Name)
			}
			if sym.Kind != ScalarInt {
				return errf("Pattern argument must be integer variable")
			}
		case *ast.ArrayAccess:
			sym, ok := a.Table.Lookup(v.Name)
			if !ok {
				return errf("Undefined array %s", v.Name)
			}
			if sym.Kind != ArrayInt {
				return errf("%s is not an array", v.Name)
			}
			if idxID, ok := v.Index.(*ast.Id); ok {
				idxSym, ok := a.Table.Lookup(idxID.Name)
				if !ok {
					return errf("Undefined index variable %s", idxID.Name)
				}
				if idxSym.Kind != ScalarInt {
					return errf("Index must be integer")
				}
			} else if _, err := a.checkExprType(v.Index, ScalarInt); err != nil {
				return err
			}
		default:
			return errf("Invalid pattern argument")
		}
	}
	return nil
}

func (a *Analyzer) checkPrint(stmt *ast.Print) error {
	if name, ok := stmt.IsSimpleName(); ok {
		if _, ok := a.Table.Lookup(name); !ok {
			return errf("Undefined variable in print %s", name)
		}
		return nil
	}
	if aa, ok := stmt.IsIndexed(); ok {
		if _, ok := a.Table.Lookup(aa.Name); !ok {
			return errf("Undefined variable in print %s", aa.Name)
		}
		_, err := a.checkExprType(aa.Index, ScalarInt)
		return err
	}
	_, err := a.checkExprType(stmt.Expr, "")
	return err
}

// checkExprType recursively derives the Kind of expr, raising a
// SemanticError("Type mismatch: expected X, got Y") if expected is
// non-empty and doesn't match. Passing "" means "no constraint", matching
// the Python reference's expected_type=None.
func (a *Analyzer) checkExprType(expr ast.Expression, expected Kind) (Kind, error) {
	var actual Kind

	switch e := expr.(type) {
	case *ast.Number:
		actual = ScalarInt
	case *ast.Id:
		sym, ok := a.Table.Lookup(e.Name)
		if !ok {
			return "", errf("Undefined variable %s", e.Name)
		}
		actual = sym.Kind
	case *ast.ArrayAccess:
		sym, ok := a.Table.Lookup(e.Name)
		if !ok {
			return "", errf("Undefined array %s", e.Name)
		}
		if sym.Kind != ArrayInt {
			return "", errf("%s is not an array", e.Name)
		}
		if _, err := a.checkExprType(e.Index, ScalarInt); err != nil {
			return "", err
		}
		actual = ScalarInt
	case *ast.Slice:
		sym, ok := a.Table.Lookup(e.Name)
		if !ok {
			return "", errf("Undefined array %s", e.Name)
		}
		if sym.Kind != ArrayInt {
			return "", errf("%s is not an array", e.Name)
		}
		if e.Start != nil {
			if _, err := a.checkExprType(e.Start, ScalarInt); err != nil {
				return "", err
			}
		}
		if e.End != nil {
			if _, err := a.checkExprType(e.End, ScalarInt); err != nil {
				return "", err
			}
		}
		actual = ArrayInt
	case *ast.BinOp:
		kind, err := a.checkBinOp(e)
		if err != nil {
			return "", err
		}
		actual = kind
	case *ast.Pattern:
		for _, arg := range e.Args {
			if _, err := a.checkExprType(arg, ""); err != nil {
				return "", err
			}
		}
		actual = ArrayInt
	default:
		return "", errf("Unknown expression type")
	}

	if expected != "" && actual != expected {
		return "", errf("Type mismatch: expected %s, got %s", expected, actual)
	}
	return actual, nil
}

// checkBinOp types a BinOp: comparisons always yield scalar-int; arithmetic
// yields array-of-int if either side is an array (broadcast), else
// scalar-int.
func (a *Analyzer) checkBinOp(expr *ast.BinOp) (Kind, error) {
	leftKind, err := a.checkExprType(expr.Left, "")
	if err != nil {
		return "", err
	}
	rightKind, err := a.checkExprType(expr.Right, "")
	if err != nil {
		return "", err
	}

	switch expr.Op {
	case "==", "!=", "<", ">", "<=", ">=":
		return ScalarInt, nil
	}

	if leftKind == ArrayInt || rightKind == ArrayInt {
		return ArrayInt, nil
	}
	return ScalarInt, nil
}

func (a *Analyzer) checkIf(stmt *ast.If) error {
	if _, err := a.checkExprType(stmt.Condition, ""); err != nil {
		return err
	}
	if err := a.checkStmts(stmt.Then); err != nil {
		return err
	}
	return a.checkStmts(stmt.Else)
}

func (a *Analyzer) checkFor(stmt *ast.For) error {
	var sourceKind Kind
	if name, ok := stmt.SourceName(); ok {
		sym, ok := a.Table.Lookup(name)
		if !ok {
			return errf("Undefined variable in for loop: %s", name)
		}
		sourceKind = sym.Kind
	} else {
		kind, err := a.checkExprType(stmt.Source, "")
		if err != nil {
			return err
		}
		sourceKind = kind
	}
	if sourceKind != ArrayInt {
		return errf("For loop source must be an array")
	}

	a.Table.set(&Symbol{Name: stmt.Iterator, Kind: ScalarInt})
	return a.checkStmts(stmt.Body)
}
