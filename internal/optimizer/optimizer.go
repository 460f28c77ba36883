// Package optimizer implements Sequentia's optimizer (C5): four passes over
// a TAC sequence, run in the fixed order the language's compiler uses.
package optimizer

import (
	"strconv"
	"strings"

	"github.com/sequentia-lang/sequentia/internal/tac"
)

// Pass names one of the optimizer's toggleable stages, mirroring the
// teacher compiler's named-bytecode-pass pattern adapted to TAC.
type Pass string

const (
	PassConstantFolding    Pass = "constant-folding"
	PassCopyPropagation    Pass = "copy-propagation"
	PassDeadCodeElim       Pass = "dead-code-elimination"
	PassRedundantConstTemp Pass = "redundant-constant-temp-cleanup"
)

type config struct {
	enabled map[Pass]bool
}

func defaultConfig() *config {
	return &config{enabled: map[Pass]bool{
		PassConstantFolding:    true,
		PassCopyPropagation:    true,
		PassDeadCodeElim:       true,
		PassRedundantConstTemp: true,
	}}
}

// Option configures which passes Optimize runs.
type Option func(*config)

// WithPass toggles a single named pass on or off, for debugging/testing the
// optimizer in isolation.
func WithPass(pass Pass, enabled bool) Option {
	return func(c *config) { c.enabled[pass] = enabled }
}

// Optimize runs the optimizer's passes, in order, over instrs and returns a
// new optimized sequence. The default pass order (matching the reference
// compiler exactly) is:
//
//	constant folding -> copy propagation -> dead-code elimination ->
//	copy propagation (again) -> redundant-constant-temp cleanup
//
// Every pass preserves the sequence of observable effects (PRINT order,
// reachable control-flow labels) of the input.
func Optimize(instrs []tac.Instruction, opts ...Option) []tac.Instruction {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	out := append([]tac.Instruction(nil), instrs...)
	if cfg.enabled[PassConstantFolding] {
		out = constantFolding(out)
	}
	if cfg.enabled[PassCopyPropagation] {
		out = copyPropagation(out)
	}
	if cfg.enabled[PassDeadCodeElim] {
		out = deadCodeElimination(out)
	}
	if cfg.enabled[PassCopyPropagation] {
		out = copyPropagation(out)
	}
	if cfg.enabled[PassRedundantConstTemp] {
		out = removeRedundantConstantAssigns(out)
	}
	return out
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// constantFolding folds any arithmetic instruction whose both operands are
// non-negative decimal-integer literals into a plain ASSIGN, with division
// truncating (Go's native integer division; see DESIGN.md's Open Question
// on negative-operand semantics: both operands here are always
// non-negative literals, so truncation and floor division coincide).
func constantFolding(instrs []tac.Instruction) []tac.Instruction {
	out := make([]tac.Instruction, 0, len(instrs))
	for _, in := range instrs {
		if in.Op.IsArithmetic() && isDigits(in.Arg1) && isDigits(in.Arg2) {
			v1, _ := strconv.Atoi(in.Arg1)
			v2, _ := strconv.Atoi(in.Arg2)
			var result int
			switch in.Op {
			case tac.Add:
				result = v1 + v2
			case tac.Sub:
				result = v1 - v2
			case tac.Mul:
				result = v1 * v2
			case tac.Div:
				result = v1 / v2
			}
			out = append(out, tac.Instruction{Op: tac.Assign, Arg1: strconv.Itoa(result), Result: in.Result})
			continue
		}
		out = append(out, in)
	}
	return out
}

func isSliceRange(s string) bool {
	return strings.Contains(s, ":")
}

// copyPropagation maintains a map from temp name to the value it holds
// (literal or name) and substitutes known temps wherever they're used,
// including rewriting `var = temp` into `var = temp's underlying value`.
// Slice ranges (arg2 values containing ':') are never substituted.
func copyPropagation(instrs []tac.Instruction) []tac.Instruction {
	out := make([]tac.Instruction, 0, len(instrs))
	tempToValue := map[string]string{}

	for _, in := range instrs {
		instr := in

		if instr.Op == tac.Assign && strings.HasPrefix(instr.Result, "t") && isDigits(instr.Result[1:]) {
			tempToValue[instr.Result] = instr.Arg1
		}

		if instr.Op == tac.Assign {
			if v, ok := tempToValue[instr.Arg1]; ok {
				instr.Arg1 = v
			}
		}

		if v, ok := tempToValue[instr.Arg1]; ok {
			instr.Arg1 = v
		}
		if v, ok := tempToValue[instr.Arg2]; ok && !isSliceRange(instr.Arg2) {
			instr.Arg2 = v
		}

		out = append(out, instr)
	}
	return out
}

// deadCodeElimination keeps only instructions with an observable effect and
// those whose result is (transitively) required by one, per §4.5's live-set
// fixpoint.
func deadCodeElimination(instrs []tac.Instruction) []tac.Instruction {
	used := map[string]bool{}

	markUse := func(v string) {
		if v != "" && !isDigits(v) {
			used[v] = true
		}
	}

	// markArgs marks an instruction's operands live. PATTERN_CALL packs
	// several comma-joined argument names into Arg2 (see tac.Generator),
	// so each is marked individually rather than as one opaque string.
	// Slice ranges (Arg2 containing ':') are never marked, matching §4.5's
	// explicit carve-out.
	markArgs := func(in tac.Instruction) bool {
		before := len(used)
		markUse(in.Arg1)
		if in.Op == tac.PatternCall {
			for _, part := range strings.Split(in.Arg2, ",") {
				markUse(strings.TrimSpace(part))
			}
		} else if !isSliceRange(in.Arg2) {
			markUse(in.Arg2)
		}
		return len(used) != before
	}

	// Seed the live set from instructions with an observable effect per
	// §4.5: PRINT, IF_FALSE, and PATTERN_CALL (a pattern call always
	// executes and always needs its arguments, independent of whether its
	// result is later used). LABEL/GOTO carry no data operands.
	for _, in := range instrs {
		switch in.Op {
		case tac.Print, tac.IfFalse, tac.PatternCall:
			markArgs(in)
		}
	}

	changed := true
	for changed {
		changed = false
		for _, in := range instrs {
			if in.Result == "" || !used[in.Result] {
				continue
			}
			if markArgs(in) {
				changed = true
			}
		}
	}

	out := make([]tac.Instruction, 0, len(instrs))
	for _, in := range instrs {
		switch in.Op {
		case tac.Print, tac.Label, tac.Goto, tac.IfFalse, tac.PatternCall:
			out = append(out, in)
		default:
			if in.Result != "" && used[in.Result] {
				out = append(out, in)
			}
		}
	}
	return out
}

// removeRedundantConstantAssigns drops a `t_i = K` instruction immediately
// followed by `var = K` with the same literal K, keeping only the variable
// assignment.
func removeRedundantConstantAssigns(instrs []tac.Instruction) []tac.Instruction {
	out := make([]tac.Instruction, 0, len(instrs))
	for i := 0; i < len(instrs); i++ {
		in := instrs[i]
		if in.Op == tac.Assign && strings.HasPrefix(in.Result, "t") && isDigits(in.Result[1:]) && isDigits(in.Arg1) {
			if i+1 < len(instrs) {
				next := instrs[i+1]
				nextIsTemp := strings.HasPrefix(next.Result, "t") && isDigits(next.Result[1:])
				if next.Op == tac.Assign && next.Arg1 == in.Arg1 && !nextIsTemp {
					continue
				}
			}
		}
		out = append(out, in)
	}
	return out
}
