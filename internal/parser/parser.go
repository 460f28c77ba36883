// Package parser implements Sequentia's recursive-descent parser (C2),
// turning a token stream into an *ast.Program.
package parser

import (
	"fmt"

	"github.com/sequentia-lang/sequentia/internal/ast"
	"github.com/sequentia-lang/sequentia/internal/lexer"
	"github.com/sequentia-lang/sequentia/internal/token"
)

// Error is raised for a malformed token sequence: a mismatched expectation,
// an illegal statement start, an illegal primary, or an invalid pattern
// keyword. It is a fatal boundary: parsing never resumes after one.
type Error struct {
	Message string
	Pos     token.Position
}

func (e *Error) Error() string { return e.Message }

// Parser consumes a fully-lexed token slice and builds an *ast.Program.
type Parser struct {
	toks []token.Token
	pos  int
}

// New constructs a Parser from a pre-lexed token slice.
func New(toks []token.Token) *Parser {
	return &Parser{toks: toks}
}

// Parse lexes source directly and parses it, the common case for callers
// that don't need the intermediate token slice.
func Parse(source string) (*ast.Program, error) {
	toks, err := lexer.Tokenize(source)
	if err != nil {
		return nil, err
	}
	return New(toks).ParseProgram()
}

func (p *Parser) peek() token.Token {
	return p.toks[p.pos]
}

func (p *Parser) advance() token.Token {
	tok := p.peek()
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return tok
}

func (p *Parser) expect(tt token.Type) (token.Token, error) {
	tok := p.peek()
	if tok.Type != tt {
		return token.Token{}, &Error{
			Message: fmt.Sprintf("Expected %s, got %s", tt, tok.Type),
			Pos:     tok.Pos,
		}
	}
	return p.advance(), nil
}

// ParseProgram parses the entire token stream into a Program.
//
//	program := (NEWLINE | stmt NEWLINE?)* EOF
func (p *Parser) ParseProgram() (*ast.Program, error) {
	prog := &ast.Program{}
	for p.peek().Type != token.EOF {
		if p.peek().Type == token.NEWLINE {
			p.advance()
			continue
		}
		stmt, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		prog.Statements = append(prog.Statements, stmt)
		if p.peek().Type == token.NEWLINE {
			p.advance()
		}
	}
	return prog, nil
}

func (p *Parser) parseStmt() (ast.Statement, error) {
	tok := p.peek()
	switch tok.Type {
	case token.ID:
		return p.parseAssign()
	case token.PRINT_KW:
		return p.parsePrint()
	case token.IF_KW:
		return p.parseIf()
	case token.FOR_KW:
		return p.parseFor()
	default:
		return nil, &Error{
			Message: fmt.Sprintf("Invalid statement start %s %q", tok.Type, tok.Literal),
			Pos:     tok.Pos,
		}
	}
}

func (p *Parser) parseAssign() (ast.Statement, error) {
	nameTok, err := p.expect(token.ID)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.ASSIGN); err != nil {
		return nil, err
	}
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.Assign{Token: nameTok, Name: nameTok.Literal, Expr: expr}, nil
}

func (p *Parser) parsePrint() (ast.Statement, error) {
	printTok, err := p.expect(token.PRINT_KW)
	if err != nil {
		return nil, err
	}
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.Print{Token: printTok, Expr: expr}, nil
}

func (p *Parser) parseBlock() ([]ast.Statement, error) {
	if _, err := p.expect(token.LBRACE); err != nil {
		return nil, err
	}
	for p.peek().Type == token.NEWLINE {
		p.advance()
	}
	var stmts []ast.Statement
	for p.peek().Type != token.RBRACE {
		if p.peek().Type == token.NEWLINE {
			p.advance()
			continue
		}
		stmt, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	if _, err := p.expect(token.RBRACE); err != nil {
		return nil, err
	}
	return stmts, nil
}

func (p *Parser) parseIf() (ast.Statement, error) {
	ifTok, err := p.expect(token.IF_KW)
	if err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	thenBlock, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	var elseBlock []ast.Statement
	if p.peek().Type == token.ELSE_KW {
		p.advance()
		elseBlock, err = p.parseBlock()
		if err != nil {
			return nil, err
		}
	}

	return &ast.If{Token: ifTok, Condition: cond, Then: thenBlock, Else: elseBlock}, nil
}

func (p *Parser) parseFor() (ast.Statement, error) {
	forTok, err := p.expect(token.FOR_KW)
	if err != nil {
		return nil, err
	}
	iterTok, err := p.expect(token.ID)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.IN_KW); err != nil {
		return nil, err
	}
	source, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.For{Token: forTok, Iterator: iterTok.Literal, Source: source, Body: body}, nil
}

// parseExpr := comparison
func (p *Parser) parseExpr() (ast.Expression, error) {
	return p.parseComparison()
}

// parseComparison: additive ((== | != | < | > | <= | >=) additive)?, at
// most one comparison per expression, i.e. non-associative.
func (p *Parser) parseComparison() (ast.Expression, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	tok := p.peek()
	if token.IsComparison(tok.Type) {
		p.advance()
		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		return &ast.BinOp{Token: tok, Left: left, Op: tok.Literal, Right: right}, nil
	}
	return left, nil
}

// parseAdditive: multiplicative ((+ | -) multiplicative)*, left-folded.
func (p *Parser) parseAdditive() (ast.Expression, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for token.IsAdditive(p.peek().Type) {
		opTok := p.advance()
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = &ast.BinOp{Token: opTok, Left: left, Op: opTok.Literal, Right: right}
	}
	return left, nil
}

// parseMultiplicative: primary ((* | /) primary)*, left-folded.
func (p *Parser) parseMultiplicative() (ast.Expression, error) {
	left, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for token.IsMultiplicative(p.peek().Type) {
		opTok := p.advance()
		right, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		left = &ast.BinOp{Token: opTok, Left: left, Op: opTok.Literal, Right: right}
	}
	return left, nil
}

func (p *Parser) parsePrimary() (ast.Expression, error) {
	tok := p.peek()

	switch tok.Type {
	case token.LPAREN:
		p.advance()
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RPAREN); err != nil {
			return nil, err
		}
		return expr, nil

	case token.PATTERN_KW:
		p.advance()
		name, err := p.expectAnyPattern()
		if err != nil {
			return nil, err
		}
		first, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		args := []ast.Expression{first}
		for p.peek().Type == token.COMMA {
			p.advance()
			arg, err := p.parseAdditive()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
		}
		return &ast.Pattern{Token: tok, Name: name, Args: args}, nil

	case token.NUMBER:
		p.advance()
		var value int64
		fmt.Sscanf(tok.Literal, "%d", &value)
		return &ast.Number{Token: tok, Value: value}, nil

	case token.ID:
		p.advance()
		if p.peek().Type == token.LBRACKET {
			p.advance()
			var startExpr ast.Expression
			if p.peek().Type != token.COLON {
				var err error
				startExpr, err = p.parseAdditive()
				if err != nil {
					return nil, err
				}
			}
			if p.peek().Type == token.COLON {
				p.advance()
				var endExpr ast.Expression
				if p.peek().Type != token.RBRACKET {
					var err error
					endExpr, err = p.parseAdditive()
					if err != nil {
						return nil, err
					}
				}
				if _, err := p.expect(token.RBRACKET); err != nil {
					return nil, err
				}
				return &ast.Slice{Token: tok, Name: tok.Literal, Start: startExpr, End: endExpr}, nil
			}
			if _, err := p.expect(token.RBRACKET); err != nil {
				return nil, err
			}
			return &ast.ArrayAccess{Token: tok, Name: tok.Literal, Index: startExpr}, nil
		}
		return &ast.Id{Token: tok, Name: tok.Literal}, nil

	default:
		return nil, &Error{
			Message: fmt.Sprintf("Invalid expression start %s %q", tok.Type, tok.Literal),
			Pos:     tok.Pos,
		}
	}
}

func (p *Parser) expectAnyPattern() (string, error) {
	tok := p.peek()
	if token.PatternKeywords[tok.Type] {
		p.advance()
		return tok.Literal, nil
	}
	return "", &Error{Message: "Invalid pattern keyword", Pos: tok.Pos}
}
