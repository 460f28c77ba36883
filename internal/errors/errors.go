// Package errors formats Sequentia's three fatal-boundary diagnostics
// (LexError, ParseError, SemanticError) with a source snippet and a caret.
// Sequentia's lexer tracks no line/column (diagnostics are message-only,
// per the language spec), so the snippet here is anchored on a byte offset
// rather than a line number.
package errors

import (
	"fmt"
	"strings"

	"github.com/sequentia-lang/sequentia/internal/token"
)

// CompilerError represents a single compilation error with a message and,
// when the source text is available, a window of surrounding source.
type CompilerError struct {
	Message string
	Source  string
	File    string
	Pos     token.Position
}

// NewCompilerError creates a new compiler error.
func NewCompilerError(pos token.Position, message, source, file string) *CompilerError {
	return &CompilerError{Pos: pos, Message: message, Source: source, File: file}
}

// Error implements the error interface.
func (e *CompilerError) Error() string { return e.Format(false) }

// Format formats the error message with a source snippet and caret. If
// color is true, ANSI color codes are used for terminal output.
func (e *CompilerError) Format(color bool) string {
	var sb strings.Builder

	if e.File != "" {
		sb.WriteString(fmt.Sprintf("Error in %s (byte %d)\n", e.File, e.Pos.Offset))
	} else {
		sb.WriteString(fmt.Sprintf("Error at byte %d\n", e.Pos.Offset))
	}

	if snippet, caret, ok := e.sourceWindow(); ok {
		sb.WriteString(snippet)
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat(" ", caret))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteString("\n")
	}

	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(e.Message)
	if color {
		sb.WriteString("\033[0m")
	}

	return sb.String()
}

// sourceWindow extracts the line containing Pos.Offset and the caret column
// within it, by scanning back to the preceding newline and forward to the
// next one.
func (e *CompilerError) sourceWindow() (snippet string, caret int, ok bool) {
	if e.Source == "" || e.Pos.Offset < 0 || e.Pos.Offset > len(e.Source) {
		return "", 0, false
	}
	start := strings.LastIndexByte(e.Source[:e.Pos.Offset], '\n') + 1
	end := len(e.Source)
	if rel := strings.IndexByte(e.Source[e.Pos.Offset:], '\n'); rel >= 0 {
		end = e.Pos.Offset + rel
	}
	return e.Source[start:end], e.Pos.Offset - start, true
}

// FormatErrors formats multiple compiler errors, each with its own snippet.
func FormatErrors(errs []*CompilerError, color bool) string {
	if len(errs) == 0 {
		return ""
	}
	if len(errs) == 1 {
		return errs[0].Format(color)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Compilation failed with %d error(s):\n\n", len(errs)))
	for i, err := range errs {
		sb.WriteString(fmt.Sprintf("[Error %d of %d]\n", i+1, len(errs)))
		sb.WriteString(err.Format(color))
		if i < len(errs)-1 {
			sb.WriteString("\n\n")
		}
	}
	return sb.String()
}

// FromStringErrors wraps plain error-message strings (no position
// information) as CompilerErrors, for callers that only have a message.
func FromStringErrors(messages []string, source, file string) []*CompilerError {
	errs := make([]*CompilerError, 0, len(messages))
	for _, msg := range messages {
		errs = append(errs, NewCompilerError(token.Position{}, msg, source, file))
	}
	return errs
}
