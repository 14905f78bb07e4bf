package jit

import (
	"fmt"
	"io"
	"strings"
)

// ============================================================================
// Debug dumps
// ============================================================================

// blockName returns a short printable name for a block.
func (f *Function) blockName(b *Block) string {
	switch b {
	case f.entry:
		return "entry"
	case f.exit:
		return "exit"
	}
	if b.label != UndefinedLabel {
		return fmt.Sprintf("L%d", b.label)
	}
	return fmt.Sprintf("block%d", b.id)
}

// String returns a readable description of the function's blocks, labels,
// instructions and edges, in layout order.
func (f *Function) String() string {
	var sb strings.Builder
	sb.WriteString("function:\n")
	for b := f.entry; b != nil; b = b.next {
		fmt.Fprintf(&sb, "  %s (id %d)", f.blockName(b), b.id)
		if b.endsInDead {
			sb.WriteString(" [dead-end]")
		}
		sb.WriteString(":\n")

		labels := ""
		for l := b.NextLabel(UndefinedLabel); l != UndefinedLabel; l = b.NextLabel(l) {
			if labels != "" {
				labels += " "
			}
			labels += fmt.Sprintf("L%d", l)
		}
		if labels != "" {
			fmt.Fprintf(&sb, "    labels: %s\n", labels)
		}

		for i := range b.insns {
			insn := &b.insns[i]
			fmt.Fprintf(&sb, "    %s", insn.Opcode)
			if insn.Dest != UndefinedLabel {
				fmt.Fprintf(&sb, " L%d", insn.Dest)
			}
			for _, t := range insn.Targets {
				fmt.Fprintf(&sb, " L%d", t)
			}
			sb.WriteString("\n")
		}

		for _, e := range b.succs {
			fmt.Fprintf(&sb, "    -> %s (%s)\n", f.blockName(e.dst), e.kind)
		}
	}
	return sb.String()
}

// WriteDOT renders the function's CFG as a Graphviz digraph. Each block is a
// node labeled with its instructions; edge styles follow the edge kind, and
// blocks that no path from the entry reaches are dimmed.
func (f *Function) WriteDOT(w io.Writer) error {
	reachable := f.ReachableBlocks()

	if _, err := fmt.Fprintf(w, "digraph cfg {\n  node [shape=rect, fontname=\"monospace\"];\n"); err != nil {
		return err
	}
	for b := f.entry; b != nil; b = b.next {
		var lines []string
		lines = append(lines, f.blockName(b))
		for i := range b.insns {
			lines = append(lines, b.insns[i].Opcode.String())
		}
		attrs := ""
		if !reachable.Test(uint(b.id)) {
			attrs = ", style=dotted"
		}
		if _, err := fmt.Fprintf(w, "  b%d [label=\"%s\\l\"%s];\n", b.id, strings.Join(lines, `\l`), attrs); err != nil {
			return err
		}
	}
	for b := f.entry; b != nil; b = b.next {
		for _, e := range b.succs {
			style := "solid"
			switch e.kind {
			case EdgeFallthru:
				style = "bold"
			case EdgeExcept:
				style = "dashed"
			case EdgeReturn:
				style = "dotted"
			}
			if _, err := fmt.Fprintf(w, "  b%d -> b%d [style=%s, label=%q];\n", b.id, e.dst.id, style, e.kind); err != nil {
				return err
			}
		}
	}
	_, err := fmt.Fprintf(w, "}\n")
	return err
}
