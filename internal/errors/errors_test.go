package errors

import (
	"strings"
	"testing"

	"github.com/sequentia-lang/sequentia/internal/token"
)

func TestFormatIncludesSourceSnippetAndCaret(t *testing.T) {
	src := "a = 1\nb = @\n"
	offset := strings.Index(src, "@")
	err := NewCompilerError(token.Position{Offset: offset}, "Unknown character @", src, "")
	out := err.Format(false)
	if !strings.Contains(out, "b = @") {
		t.Errorf("expected the offending line in the snippet, got:\n%s", out)
	}
	if !strings.Contains(out, "b = @\n    ^\n") {
		t.Errorf("expected a caret under the offending byte, got:\n%s", out)
	}
	if !strings.Contains(out, "Unknown character @") {
		t.Errorf("expected the message, got:\n%s", out)
	}
}

func TestFormatWithoutSourceOmitsSnippet(t *testing.T) {
	err := NewCompilerError(token.Position{Offset: 3}, "Undefined variable x", "", "")
	out := err.Format(false)
	if !strings.Contains(out, "Undefined variable x") {
		t.Errorf("expected the message, got:\n%s", out)
	}
	if strings.Contains(out, "^") {
		t.Errorf("expected no snippet or caret without source, got:\n%s", out)
	}
}

func TestFormatErrorsSingleDelegatesToFormat(t *testing.T) {
	err := NewCompilerError(token.Position{}, "boom", "", "")
	if FormatErrors([]*CompilerError{err}, false) != err.Format(false) {
		t.Error("expected single-error FormatErrors to delegate to Format")
	}
}

func TestFormatErrorsMultipleNumbersEach(t *testing.T) {
	errs := []*CompilerError{
		NewCompilerError(token.Position{}, "first", "", ""),
		NewCompilerError(token.Position{}, "second", "", ""),
	}
	out := FormatErrors(errs, false)
	if !strings.Contains(out, "[Error 1 of 2]") || !strings.Contains(out, "[Error 2 of 2]") {
		t.Errorf("expected numbered error headers, got:\n%s", out)
	}
}

func TestFromStringErrorsWrapsMessages(t *testing.T) {
	errs := FromStringErrors([]string{"a", "b"}, "src", "file.seq")
	if len(errs) != 2 || errs[0].Message != "a" || errs[1].Message != "b" {
		t.Fatalf("unexpected wrapping: %v", errs)
	}
}

func TestNewPipelineTraceStopsAtFailedStage(t *testing.T) {
	trace := NewPipelineTrace("semantic analysis", token.Position{Offset: 7})
	if trace.Depth() != 3 {
		t.Fatalf("expected 3 frames (lexing, parsing, semantic analysis), got %d", trace.Depth())
	}
	if top := trace.Top(); top == nil || top.Stage != "semantic analysis" || top.Pos.Offset != 7 {
		t.Fatalf("unexpected top frame: %+v", top)
	}
}

func TestStackTraceStringIsMostRecentFirst(t *testing.T) {
	trace := NewPipelineTrace("parsing", token.Position{Offset: 2})
	out := trace.String()
	lines := strings.Split(out, "\n")
	if len(lines) != 2 || !strings.HasPrefix(lines[0], "parsing") || !strings.HasPrefix(lines[1], "lexing") {
		t.Fatalf("expected parsing before lexing, got:\n%s", out)
	}
}
