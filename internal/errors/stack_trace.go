package errors

import (
	"fmt"
	"strings"

	"github.com/sequentia-lang/sequentia/internal/token"
)

// pipelineStages lists Compile's stages in the order they run, mirroring
// pkg/sequentia.Compile. Sequentia has no user-defined functions to call, so
// there is no call stack in the usual sense; what fails instead is always
// one of these fixed pipeline stages, and the "stack trace" spec.md §7 asks
// batch mode to print is the chain of stages that ran before the one that
// failed.
var pipelineStages = []string{
	"lexing",
	"parsing",
	"semantic analysis",
	"tac generation",
	"optimization",
	"lowering",
}

// StackFrame is a single pipeline stage, tagged with the position the
// failure was reported at.
type StackFrame struct {
	Stage string
	Pos   token.Position
}

// String formats a frame as "stage [byte: N]".
func (sf StackFrame) String() string {
	return fmt.Sprintf("%s [byte: %d]", sf.Stage, sf.Pos.Offset)
}

// StackTrace is an ordered sequence of pipeline stages, oldest first,
// ending at the stage that failed.
type StackTrace []StackFrame

// String renders the trace most-recent-first, one frame per line.
func (st StackTrace) String() string {
	if len(st) == 0 {
		return ""
	}
	var sb strings.Builder
	for i := len(st) - 1; i >= 0; i-- {
		sb.WriteString(st[i].String())
		if i > 0 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// Top returns the failing (most recent) frame, or nil if the trace is empty.
func (st StackTrace) Top() *StackFrame {
	if len(st) == 0 {
		return nil
	}
	return &st[len(st)-1]
}

// Depth returns the number of frames in the stack.
func (st StackTrace) Depth() int {
	return len(st)
}

// NewPipelineTrace builds the StackTrace for a compile that failed at
// failedStage: every stage up to and including failedStage, each tagged
// with pos (the position the failure was reported at; only the top frame's
// position is meaningful, since earlier stages completed without error).
func NewPipelineTrace(failedStage string, pos token.Position) StackTrace {
	var trace StackTrace
	for _, stage := range pipelineStages {
		trace = append(trace, StackFrame{Stage: stage, Pos: pos})
		if stage == failedStage {
			break
		}
	}
	return trace
}
