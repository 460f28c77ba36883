// Package ast defines the Abstract Syntax Tree node types for Sequentia.
package ast

import (
	"strings"

	"github.com/sequentia-lang/sequentia/internal/token"
)

// Node is the base interface for all AST nodes.
type Node interface {
	TokenLiteral() string
	String() string
	Pos() token.Position
}

// Expression is any node that produces a value.
type Expression interface {
	Node
	expressionNode()
}

// Statement is any node that performs an action but produces no value.
type Statement interface {
	Node
	statementNode()
}

// Program is the root node: an ordered sequence of statements.
type Program struct {
	Statements []Statement
}

func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}

func (p *Program) String() string {
	var sb strings.Builder
	for _, s := range p.Statements {
		sb.WriteString(s.String())
		sb.WriteString("\n")
	}
	return sb.String()
}

func (p *Program) Pos() token.Position {
	if len(p.Statements) > 0 {
		return p.Statements[0].Pos()
	}
	return token.Position{}
}

// Number is an integer literal.
type Number struct {
	Token token.Token
	Value int64
}

func (n *Number) expressionNode()        {}
func (n *Number) TokenLiteral() string   { return n.Token.Literal }
func (n *Number) Pos() token.Position    { return n.Token.Pos }
func (n *Number) String() string         { return n.Token.Literal }

// Id is a bare identifier reference.
type Id struct {
	Token token.Token
	Name  string
}

func (i *Id) expressionNode()      {}
func (i *Id) TokenLiteral() string { return i.Token.Literal }
func (i *Id) Pos() token.Position  { return i.Token.Pos }
func (i *Id) String() string       { return i.Name }

// ArrayAccess indexes a named array by a scalar expression.
type ArrayAccess struct {
	Token token.Token // the identifier token
	Name  string
	Index Expression
}

func (a *ArrayAccess) expressionNode()      {}
func (a *ArrayAccess) TokenLiteral() string { return a.Token.Literal }
func (a *ArrayAccess) Pos() token.Position  { return a.Token.Pos }
func (a *ArrayAccess) String() string {
	return a.Name + "[" + a.Index.String() + "]"
}

// Slice takes a (possibly open-ended) sub-range of a named array.
type Slice struct {
	Token token.Token // the identifier token
	Name  string
	Start Expression // nil means "from the beginning"
	End   Expression // nil means "to the end"
}

func (s *Slice) expressionNode()      {}
func (s *Slice) TokenLiteral() string { return s.Token.Literal }
func (s *Slice) Pos() token.Position  { return s.Token.Pos }
func (s *Slice) String() string {
	var sb strings.Builder
	sb.WriteString(s.Name)
	sb.WriteString("[")
	if s.Start != nil {
		sb.WriteString(s.Start.String())
	}
	sb.WriteString(":")
	if s.End != nil {
		sb.WriteString(s.End.String())
	}
	sb.WriteString("]")
	return sb.String()
}

// BinOp is a binary arithmetic or comparison expression.
type BinOp struct {
	Token token.Token // the operator token
	Left  Expression
	Op    string
	Right Expression
}

func (b *BinOp) expressionNode()      {}
func (b *BinOp) TokenLiteral() string { return b.Token.Literal }
func (b *BinOp) Pos() token.Position  { return b.Token.Pos }
func (b *BinOp) String() string {
	return "(" + b.Left.String() + " " + b.Op + " " + b.Right.String() + ")"
}

// Pattern is a call to one of the seven built-in sequence generators.
type Pattern struct {
	Token token.Token // the PATTERN_KW token
	Name  string      // e.g. "fibonacci", "arithmetic"
	Args  []Expression
}

func (p *Pattern) expressionNode()      {}
func (p *Pattern) TokenLiteral() string { return p.Token.Literal }
func (p *Pattern) Pos() token.Position  { return p.Token.Pos }
func (p *Pattern) String() string {
	var sb strings.Builder
	sb.WriteString("pattern ")
	sb.WriteString(p.Name)
	for i, a := range p.Args {
		if i > 0 {
			sb.WriteString(", ")
		} else {
			sb.WriteString(" ")
		}
		sb.WriteString(a.String())
	}
	return sb.String()
}

// Assign binds the value of Expr to Name.
type Assign struct {
	Token token.Token // the identifier token
	Name  string
	Expr  Expression
}

func (a *Assign) statementNode()      {}
func (a *Assign) TokenLiteral() string { return a.Token.Literal }
func (a *Assign) Pos() token.Position  { return a.Token.Pos }
func (a *Assign) String() string       { return a.Name + " = " + a.Expr.String() }

// Print renders a value to standard output. Per §9's Print-unification
// design note, every Print carries its printed expression uniformly: a bare
// `print x` is represented as Print{Expr: &Id{Name: "x"}}, and an indexed
// `print x[i]` as Print{Expr: &ArrayAccess{...}}; there is no separate
// synthetic-marker variant. IsSimpleName reports the rendering shortcut.
type Print struct {
	Token token.Token // the 'print' token
	Expr  Expression
}

func (p *Print) statementNode()      {}
func (p *Print) TokenLiteral() string { return p.Token.Literal }
func (p *Print) Pos() token.Position  { return p.Token.Pos }
func (p *Print) String() string       { return "print " + p.Expr.String() }

// IsSimpleName reports whether Expr is a bare identifier, letting printers
// render "Print: name" instead of the general expression form.
func (p *Print) IsSimpleName() (string, bool) {
	if id, ok := p.Expr.(*Id); ok {
		return id.Name, true
	}
	return "", false
}

// IsIndexed reports whether Expr is a single-element array access, letting
// printers render "Print: name[index]".
func (p *Print) IsIndexed() (*ArrayAccess, bool) {
	aa, ok := p.Expr.(*ArrayAccess)
	return aa, ok
}

// If is a conditional; Else may be nil.
type If struct {
	Token     token.Token // the 'if' token
	Condition Expression
	Then      []Statement
	Else      []Statement
}

func (i *If) statementNode()      {}
func (i *If) TokenLiteral() string { return i.Token.Literal }
func (i *If) Pos() token.Position  { return i.Token.Pos }
func (i *If) String() string       { return "if " + i.Condition.String() + " { ... }" }

// For iterates Iterator over Source, running Body once per element. Source
// is carried as an Expression uniformly (parser.parseFor stores it as
// parsed); SourceName extracts the bare name when the source is a plain
// identifier, matching §4.2's "for extracts the source's variable name when
// bare" rule.
type For struct {
	Token    token.Token // the 'for' token
	Iterator string
	Source   Expression
	Body     []Statement
}

func (f *For) statementNode()      {}
func (f *For) TokenLiteral() string { return f.Token.Literal }
func (f *For) Pos() token.Position  { return f.Token.Pos }
func (f *For) String() string {
	return "for " + f.Iterator + " in " + f.Source.String() + " { ... }"
}

// SourceName reports the bare identifier name when Source is a plain Id,
// which is how the semantic analyzer, the lowering backend and the AST
// printer recognize the common "for x in arr" case without re-deriving it from the expression each time.
func (f *For) SourceName() (string, bool) {
	if id, ok := f.Source.(*Id); ok {
		return id.Name, true
	}
	return "", false
}
