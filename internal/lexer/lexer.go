// Package lexer turns Sequentia source text into a token stream.
package lexer

import (
	"fmt"

	"github.com/sequentia-lang/sequentia/internal/token"
)

// Error is raised for a byte the lexer does not recognize. It is a fatal
// boundary for the current compile: the caller never resumes lexing after
// one is produced.
type Error struct {
	Message string
	Pos     token.Position
}

func (e *Error) Error() string {
	return e.Message
}

// Option configures a Lexer at construction time.
type Option func(*Lexer)

// WithTracing makes the lexer record every token it emits into Trace, handy
// for debugging the lexer itself rather than the compiled program.
func WithTracing() Option {
	return func(l *Lexer) { l.tracing = true }
}

// Lexer is a stateless cursor over a source string; per §4.1 it tracks no
// line/column, only a byte offset.
type Lexer struct {
	input   string
	pos     int
	tracing bool
	Trace   []token.Token
}

// New constructs a Lexer over the given source text.
func New(input string, opts ...Option) *Lexer {
	l := &Lexer{input: input}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Lexer) peek() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

func (l *Lexer) peekAt(offset int) byte {
	if l.pos+offset >= len(l.input) {
		return 0
	}
	return l.input[l.pos+offset]
}

func (l *Lexer) advance() byte {
	ch := l.peek()
	if ch != 0 {
		l.pos++
	}
	return ch
}

func isDigit(ch byte) bool { return ch >= '0' && ch <= '9' }

func isLetter(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isAlnum(ch byte) bool { return isLetter(ch) || isDigit(ch) }

var doubleCharOps = map[string]token.Type{
	"==": token.EQ,
	"!=": token.NEQ,
	"<=": token.LEQ,
	">=": token.GEQ,
}

var singleCharOps = map[byte]token.Type{
	'=': token.ASSIGN,
	',': token.COMMA,
	'[': token.LBRACKET,
	']': token.RBRACKET,
	'{': token.LBRACE,
	'}': token.RBRACE,
	':': token.COLON,
	'+': token.PLUS,
	'-': token.MINUS,
	'*': token.STAR,
	'/': token.SLASH,
	'(': token.LPAREN,
	')': token.RPAREN,
}

var comparisonOps = map[byte]token.Type{
	'<': token.LT,
	'>': token.GT,
}

// NextToken scans and returns the next token, skipping comments and
// horizontal whitespace. It returns an *Error for an unrecognized byte.
func (l *Lexer) NextToken() (token.Token, error) {
	for {
		ch := l.peek()
		if ch == 0 {
			return l.emit(token.EOF, ""), nil
		}

		if ch == '#' {
			for l.peek() != 0 && l.peek() != '\n' {
				l.advance()
			}
			continue
		}

		if ch == ' ' || ch == '\t' || ch == '\r' {
			l.advance()
			continue
		}

		if ch == '\n' {
			l.advance()
			return l.emit(token.NEWLINE, "\n"), nil
		}

		if isDigit(ch) {
			return l.lexNumber(), nil
		}

		if isLetter(ch) {
			return l.lexIdentifier(), nil
		}

		if two := string([]byte{ch, l.peekAt(1)}); l.peekAt(1) != 0 {
			if tt, ok := doubleCharOps[two]; ok {
				l.advance()
				l.advance()
				return l.emit(tt, two), nil
			}
		}

		if tt, ok := comparisonOps[ch]; ok {
			l.advance()
			return l.emit(tt, string(ch)), nil
		}

		if tt, ok := singleCharOps[ch]; ok {
			l.advance()
			return l.emit(tt, string(ch)), nil
		}

		return token.Token{}, &Error{
			Message: fmt.Sprintf("Unknown character %c", ch),
			Pos:     token.Position{Offset: l.pos},
		}
	}
}

func (l *Lexer) lexNumber() token.Token {
	start := l.pos
	for isDigit(l.peek()) {
		l.advance()
	}
	return l.emit(token.NUMBER, l.input[start:l.pos])
}

func (l *Lexer) lexIdentifier() token.Token {
	start := l.pos
	for isAlnum(l.peek()) {
		l.advance()
	}
	word := l.input[start:l.pos]
	if kw, ok := token.Keywords[word]; ok {
		return l.emit(kw, word)
	}
	return l.emit(token.ID, word)
}

func (l *Lexer) emit(tt token.Type, literal string) token.Token {
	tok := token.Token{Type: tt, Literal: literal, Pos: token.Position{Offset: l.pos - len(literal)}}
	if l.tracing {
		l.Trace = append(l.Trace, tok)
	}
	return tok
}

// Tokenize runs the lexer to completion, returning the full token sequence
// (always EOF-terminated) or the first Error encountered.
func Tokenize(input string) ([]token.Token, error) {
	l := New(input)
	var tokens []token.Token
	for {
		tok, err := l.NextToken()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Type == token.EOF {
			return tokens, nil
		}
	}
}
