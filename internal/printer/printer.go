// Package printer implements Sequentia's diagnostic pretty-printers (C7):
// the token dump, AST dump, symbol table, TAC listing and optimization
// summary shown by the CLI's diagnostic/batch modes. Every format here is
// grounded verbatim in the reference compiler's format_tokens/format_ast/
// format_symbol_table/format_tac/format_optimizations (not
// format_syntax_tree, which is dead code unreachable from the reference
// compiler's own driver).
package printer

import (
	"fmt"
	"strings"

	"github.com/sequentia-lang/sequentia/internal/ast"
	"github.com/sequentia-lang/sequentia/internal/semantic"
	"github.com/sequentia-lang/sequentia/internal/tac"
	"github.com/sequentia-lang/sequentia/internal/token"
)

const rule = "======================================================================"

// Tokens renders a lexer token stream as the "LEXER OUTPUT (Tokens)" block.
func Tokens(toks []token.Token) string {
	var b strings.Builder
	b.WriteString(rule + "\n")
	b.WriteString("LEXER OUTPUT (Tokens)\n")
	b.WriteString(rule + "\n")
	for i, tok := range toks {
		switch tok.Type {
		case token.NEWLINE:
			fmt.Fprintf(&b, "%3d. %-15s '\\n'\n", i, tok.Type.String())
		case token.EOF:
			fmt.Fprintf(&b, "%3d. %-15s (end of file)\n", i, tok.Type.String())
		default:
			fmt.Fprintf(&b, "%3d. %-15s '%s'\n", i, tok.Type.String(), tok.Literal)
		}
	}
	b.WriteString("\n")
	return b.String()
}

// AST renders prog as the "ABSTRACT SYNTAX TREE (AST)" block's body (the
// header/rule lines are printed by the caller, matching the reference
// driver's own layout where format_ast's output is framed by print calls
// rather than baked into the function itself).
func AST(prog *ast.Program) string {
	return strings.Join(formatAST(prog, 0), "\n")
}

func formatAST(n ast.Node, indent int) []string {
	prefix := strings.Repeat("  ", indent)
	var lines []string

	switch node := n.(type) {
	case *ast.Program:
		lines = append(lines, prefix+"Program:")
		for _, stmt := range node.Statements {
			lines = append(lines, formatAST(stmt, indent+1)...)
		}
	case *ast.Assign:
		lines = append(lines, fmt.Sprintf("%sAssign: %s =", prefix, node.Name))
		lines = append(lines, formatAST(node.Expr, indent+1)...)
	case *ast.Print:
		if name, ok := node.IsSimpleName(); ok {
			lines = append(lines, fmt.Sprintf("%sPrint: %s", prefix, name))
		} else if aa, ok := node.IsIndexed(); ok {
			lines = append(lines, fmt.Sprintf("%sPrint: %s[index]", prefix, aa.Name))
			lines = append(lines, formatAST(aa.Index, indent+1)...)
		} else {
			lines = append(lines, prefix+"Print:")
			lines = append(lines, formatAST(node.Expr, indent+1)...)
		}
	case *ast.Pattern:
		lines = append(lines, fmt.Sprintf("%sPatternExpr: %s", prefix, node.Name))
		for _, a := range node.Args {
			lines = append(lines, formatAST(a, indent+1)...)
		}
	case *ast.Number:
		lines = append(lines, fmt.Sprintf("%sNumber: %d", prefix, node.Value))
	case *ast.Id:
		lines = append(lines, fmt.Sprintf("%sID: %s", prefix, node.Name))
	case *ast.ArrayAccess:
		lines = append(lines, fmt.Sprintf("%sArrayAccess: %s[index]", prefix, node.Name))
		lines = append(lines, formatAST(node.Index, indent+1)...)
	case *ast.Slice:
		start, end := "None", "None"
		if node.Start != nil {
			start = node.Start.String()
		}
		if node.End != nil {
			end = node.End.String()
		}
		lines = append(lines, fmt.Sprintf("%sSlice: %s[%s:%s]", prefix, node.Name, start, end))
		if node.Start != nil {
			lines = append(lines, prefix+"  Start:")
			lines = append(lines, formatAST(node.Start, indent+2)...)
		}
		if node.End != nil {
			lines = append(lines, prefix+"  End:")
			lines = append(lines, formatAST(node.End, indent+2)...)
		}
	case *ast.BinOp:
		lines = append(lines, fmt.Sprintf("%sBinOp: %s", prefix, node.Op))
		lines = append(lines, prefix+"  Left:")
		lines = append(lines, formatAST(node.Left, indent+2)...)
		lines = append(lines, prefix+"  Right:")
		lines = append(lines, formatAST(node.Right, indent+2)...)
	case *ast.If:
		lines = append(lines, prefix+"If:")
		lines = append(lines, prefix+"  Condition:")
		lines = append(lines, formatAST(node.Condition, indent+2)...)
		lines = append(lines, prefix+"  Then:")
		for _, stmt := range node.Then {
			lines = append(lines, formatAST(stmt, indent+2)...)
		}
		if node.Else != nil {
			lines = append(lines, prefix+"  Else:")
			for _, stmt := range node.Else {
				lines = append(lines, formatAST(stmt, indent+2)...)
			}
		}
	case *ast.For:
		if name, ok := node.SourceName(); ok {
			lines = append(lines, fmt.Sprintf("%sFor: %s in %s", prefix, node.Iterator, name))
		} else {
			lines = append(lines, fmt.Sprintf("%sFor: %s in %s", prefix, node.Iterator, node.Source.String()))
		}
		lines = append(lines, prefix+"  Body:")
		for _, stmt := range node.Body {
			lines = append(lines, formatAST(stmt, indent+2)...)
		}
	default:
		lines = append(lines, fmt.Sprintf("%s%T: %s", prefix, n, n.String()))
	}
	return lines
}

// SymbolTable renders the "SYMBOL TABLE" block.
func SymbolTable(t *semantic.Table) string {
	var b strings.Builder
	b.WriteString(rule + "\n")
	b.WriteString("SYMBOL TABLE\n")
	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "%-15s %-10s %-10s %-15s\n", "Variable", "Type", "Length", "Pattern")
	b.WriteString(strings.Repeat("-", 70) + "\n")

	for _, sym := range t.InOrder() {
		name := sym.Name
		lengthStr := "-"
		if sym.Kind == semantic.ArrayInt {
			if sym.Length != nil {
				lengthStr = fmt.Sprintf("%d", *sym.Length)
			} else {
				lengthStr = "dynamic"
			}
		}
		patternStr := "-"
		if sym.Pattern != "" {
			patternStr = sym.Pattern
		}
		fmt.Fprintf(&b, "%-15s %-10s %-10s %-15s\n", name, string(sym.Kind), lengthStr, patternStr)
	}
	b.WriteString("\n")
	return b.String()
}

// TAC renders an instruction sequence as the "THREE-ADDRESS CODE (TAC)"
// block, or (via TACBody) as the bare numbered listing the optimized-TAC
// section reuses without a repeated title.
func TAC(instrs []tac.Instruction) string {
	var b strings.Builder
	b.WriteString(rule + "\n")
	b.WriteString("THREE-ADDRESS CODE (TAC)\n")
	b.WriteString(rule + "\n")
	b.WriteString(TACBody(instrs))
	b.WriteString("\n")
	return b.String()
}

// TACBody renders only the numbered instruction lines, with no title or
// trailing blank line, for reuse in the optimized-TAC section.
func TACBody(instrs []tac.Instruction) string {
	var b strings.Builder
	for i, in := range instrs {
		fmt.Fprintf(&b, "%3d. %s\n", i, in.String())
	}
	return b.String()
}

// Optimizations renders the "CODE OPTIMIZATION" summary block.
func Optimizations(original, optimized []tac.Instruction) string {
	var b strings.Builder
	b.WriteString(rule + "\n")
	b.WriteString("CODE OPTIMIZATION\n")
	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "Original TAC instructions: %d\n", len(original))
	fmt.Fprintf(&b, "Optimized TAC instructions: %d\n", len(optimized))
	fmt.Fprintf(&b, "Reduction: %d instructions\n", len(original)-len(optimized))
	b.WriteString("\n")
	return b.String()
}

// OptimizedTAC renders the "OPTIMIZED THREE-ADDRESS CODE" block.
func OptimizedTAC(instrs []tac.Instruction) string {
	var b strings.Builder
	b.WriteString(rule + "\n")
	b.WriteString("OPTIMIZED THREE-ADDRESS CODE\n")
	b.WriteString(rule + "\n")
	b.WriteString(TACBody(instrs))
	b.WriteString("\n")
	return b.String()
}

// ProgramOutput renders the "PROGRAM OUTPUT" block around a program's
// captured stdout text.
func ProgramOutput(out string) string {
	var b strings.Builder
	b.WriteString(rule + "\n")
	b.WriteString("PROGRAM OUTPUT\n")
	b.WriteString(rule + "\n")
	b.WriteString(out)
	if !strings.HasSuffix(out, "\n") {
		b.WriteString("\n")
	}
	return b.String()
}
