// Package tac generates Sequentia's three-address code (C4): a flat
// sequence of (op, arg1, arg2, result) instructions lowered from the AST.
package tac

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sequentia-lang/sequentia/internal/ast"
)

// Op identifies an instruction kind.
type Op string

const (
	Assign       Op = "ASSIGN"
	ArrayAccess  Op = "ARRAY_ACCESS"
	Slice        Op = "SLICE"
	PatternCall  Op = "PATTERN_CALL"
	Print        Op = "PRINT"
	Label        Op = "LABEL"
	Goto         Op = "GOTO"
	IfFalse      Op = "IF_FALSE"
	Add          Op = "+"
	Sub          Op = "-"
	Mul          Op = "*"
	Div          Op = "/"
	CmpEq        Op = "=="
	CmpNeq       Op = "!="
	CmpLt        Op = "<"
	CmpGt        Op = ">"
	CmpLeq       Op = "<="
	CmpGeq       Op = ">="
)

// arithmeticOps and comparisonOps classify ops that carry a binary
// operation across arg1/arg2 into result.
var arithmeticOps = map[Op]bool{Add: true, Sub: true, Mul: true, Div: true}
var comparisonOps = map[Op]bool{CmpEq: true, CmpNeq: true, CmpLt: true, CmpGt: true, CmpLeq: true, CmpGeq: true}

// IsBinary reports whether op carries arg1 OP arg2 → result.
func (op Op) IsBinary() bool { return arithmeticOps[op] || comparisonOps[op] }

// IsArithmetic reports whether op is +, -, *, or /.
func (op Op) IsArithmetic() bool { return arithmeticOps[op] }

// Instruction is a single three-address instruction. Not every field is
// used by every op; String renders the op-specific shape the original
// compiler used.
type Instruction struct {
	Op     Op
	Arg1   string
	Arg2   string
	Result string
}

// String renders an instruction exactly as Sequentia's diagnostic dumps
// expect, one shape per op family.
func (i Instruction) String() string {
	switch {
	case i.Op == PatternCall:
		return fmt.Sprintf("%s = CALL %s(%s)", i.Result, i.Arg1, i.Arg2)
	case i.Op == ArrayAccess || i.Op == Slice:
		return fmt.Sprintf("%s = %s[%s]", i.Result, i.Arg1, i.Arg2)
	case i.Op == Assign:
		return fmt.Sprintf("%s = %s", i.Result, i.Arg1)
	case i.Op == Print:
		return fmt.Sprintf("PRINT %s", i.Arg1)
	case i.Op == Label:
		return fmt.Sprintf("%s:", i.Arg1)
	case i.Op == Goto:
		return fmt.Sprintf("GOTO %s", i.Arg1)
	case i.Op == IfFalse:
		return fmt.Sprintf("IF_FALSE %s GOTO %s", i.Arg1, i.Result)
	case i.Op.IsBinary():
		return fmt.Sprintf("%s = %s %s %s", i.Result, i.Arg1, i.Op, i.Arg2)
	default:
		return fmt.Sprintf("%s %s %s %s", i.Op, i.Arg1, i.Arg2, i.Result)
	}
}

// Generator lowers an *ast.Program into a flat instruction sequence, using
// monotone temporary and label counters (t1, t2, ... / L1, L2, ...).
type Generator struct {
	instructions []Instruction
	tempCounter  int
	labelCounter int
}

// NewGenerator returns an empty Generator.
func NewGenerator() *Generator {
	return &Generator{}
}

// Generate lowers prog and returns its TAC.
func Generate(prog *ast.Program) []Instruction {
	g := NewGenerator()
	for _, stmt := range prog.Statements {
		g.genStmt(stmt)
	}
	return g.instructions
}

func (g *Generator) newTemp() string {
	g.tempCounter++
	return fmt.Sprintf("t%d", g.tempCounter)
}

func (g *Generator) newLabel() string {
	g.labelCounter++
	return fmt.Sprintf("L%d", g.labelCounter)
}

func (g *Generator) emit(instr Instruction) {
	g.instructions = append(g.instructions, instr)
}

func (g *Generator) genStmt(s ast.Statement) {
	switch stmt := s.(type) {
	case *ast.Assign:
		if pat, ok := stmt.Expr.(*ast.Pattern); ok {
			args := make([]string, len(pat.Args))
			for i, arg := range pat.Args {
				args[i] = g.genExpr(arg)
			}
			g.emit(Instruction{Op: PatternCall, Arg1: pat.Name, Arg2: strings.Join(args, ", "), Result: stmt.Name})
			return
		}
		temp := g.genExpr(stmt.Expr)
		g.emit(Instruction{Op: Assign, Arg1: temp, Result: stmt.Name})

	case *ast.Print:
		if name, ok := stmt.IsSimpleName(); ok {
			g.emit(Instruction{Op: Print, Arg1: name})
			return
		}
		if aa, ok := stmt.IsIndexed(); ok {
			idx := g.genExpr(aa.Index)
			temp := g.newTemp()
			g.emit(Instruction{Op: ArrayAccess, Arg1: aa.Name, Arg2: idx, Result: temp})
			g.emit(Instruction{Op: Print, Arg1: temp})
			return
		}
		temp := g.genExpr(stmt.Expr)
		g.emit(Instruction{Op: Print, Arg1: temp})

	case *ast.If:
		condTemp := g.genExpr(stmt.Condition)
		elseLabel := g.newLabel()
		endLabel := g.newLabel()

		g.emit(Instruction{Op: IfFalse, Arg1: condTemp, Result: elseLabel})
		for _, s := range stmt.Then {
			g.genStmt(s)
		}
		g.emit(Instruction{Op: Goto, Arg1: endLabel})
		g.emit(Instruction{Op: Label, Arg1: elseLabel})
		for _, s := range stmt.Else {
			g.genStmt(s)
		}
		g.emit(Instruction{Op: Label, Arg1: endLabel})

	case *ast.For:
		// Deliberately simplified, matching the ground-truth compiler this
		// pipeline is grounded on: no iterator/bounds machinery appears at
		// this IR level. The lowering backend and interpreter independently
		// re-materialize real iteration; see DESIGN.md's Open Question on
		// for-loop TAC elision.
		loopLabel := g.newLabel()
		endLabel := g.newLabel()
		g.emit(Instruction{Op: Label, Arg1: loopLabel})
		for _, s := range stmt.Body {
			g.genStmt(s)
		}
		g.emit(Instruction{Op: Label, Arg1: endLabel})
	}
}

func (g *Generator) genExpr(e ast.Expression) string {
	switch expr := e.(type) {
	case *ast.Number:
		return strconv.FormatInt(expr.Value, 10)

	case *ast.Id:
		return expr.Name

	case *ast.ArrayAccess:
		idx := g.genExpr(expr.Index)
		temp := g.newTemp()
		g.emit(Instruction{Op: ArrayAccess, Arg1: expr.Name, Arg2: idx, Result: temp})
		return temp

	case *ast.Slice:
		start := "0"
		if expr.Start != nil {
			start = g.genExpr(expr.Start)
		}
		end := "None"
		if expr.End != nil {
			end = g.genExpr(expr.End)
		}
		temp := g.newTemp()
		g.emit(Instruction{Op: Slice, Arg1: expr.Name, Arg2: start + ":" + end, Result: temp})
		return temp

	case *ast.BinOp:
		left := g.genExpr(expr.Left)
		right := g.genExpr(expr.Right)
		temp := g.newTemp()
		g.emit(Instruction{Op: Op(expr.Op), Arg1: left, Arg2: right, Result: temp})
		return temp

	case *ast.Pattern:
		args := make([]string, len(expr.Args))
		for i, arg := range expr.Args {
			args[i] = g.genExpr(arg)
		}
		temp := g.newTemp()
		g.emit(Instruction{Op: PatternCall, Arg1: expr.Name, Arg2: strings.Join(args, ", "), Result: temp})
		return temp

	default:
		return "unknown"
	}
}
