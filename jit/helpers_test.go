package jit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Helper to append an instruction with the given opcode
func emit(b *Block, op Opcode) *Insn {
	insn := b.AddInsn()
	insn.Opcode = op
	return insn
}

// Helper to append a branch; unconditional branches kill fall-through
func emitBranch(b *Block, op Opcode, dest Label) *Insn {
	insn := emit(b, op)
	insn.Dest = dest
	if op == OpBr {
		b.SetEndsInDead(true)
	}
	return insn
}

// Helper to append a return terminator
func emitReturn(b *Block) *Insn {
	insn := emit(b, OpReturn)
	b.SetEndsInDead(true)
	return insn
}

// Helper to append a labeled block at the end of the function body
func appendLabeled(t *testing.T, f *Function, labels ...Label) *Block {
	t.Helper()
	b := f.AppendBlock()
	for _, l := range labels {
		require.NoError(t, b.RecordLabel(l))
	}
	return b
}

// Helper to collect the live block list in layout order
func liveBlocks(f *Function) []*Block {
	var blocks []*Block
	for b := f.NextBlock(nil); b != nil; b = f.NextBlock(b) {
		blocks = append(blocks, b)
	}
	return blocks
}

// Helper to collect the labels bound to a block as a set
func labelSet(b *Block) map[Label]bool {
	set := map[Label]bool{}
	for l := b.NextLabel(UndefinedLabel); l != UndefinedLabel; l = b.NextLabel(l) {
		if set[l] {
			break
		}
		set[l] = true
	}
	return set
}

// Helper to count the edges of a given kind in a slice
func countKind(edges []*Edge, kind EdgeKind) int {
	count := 0
	for _, e := range edges {
		if e.Kind() == kind {
			count++
		}
	}
	return count
}

func countOccurrences(edges []*Edge, e *Edge) int {
	count := 0
	for _, other := range edges {
		if other == e {
			count++
		}
	}
	return count
}

func containsBlock(blocks []*Block, b *Block) bool {
	for _, other := range blocks {
		if other == b {
			return true
		}
	}
	return false
}

// checkCFGInvariants verifies edge symmetry, fall-through uniqueness,
// dead-end consistency and label soundness over the live block list.
func checkCFGInvariants(t *testing.T, f *Function) {
	t.Helper()
	for b := f.NextBlock(nil); b != nil; b = f.NextBlock(b) {
		for _, e := range b.Succs() {
			assert.Same(t, b, e.Src())
			assert.Equal(t, 1, countOccurrences(b.Succs(), e), "edge duplicated in succs")
			assert.Equal(t, 1, countOccurrences(e.Dst().Preds(), e), "edge missing from dst preds")
		}
		for _, e := range b.Preds() {
			assert.Same(t, b, e.Dst())
			assert.Equal(t, 1, countOccurrences(b.Preds(), e), "edge duplicated in preds")
			assert.Equal(t, 1, countOccurrences(e.Src().Succs(), e), "edge missing from src succs")
		}

		assert.LessOrEqual(t, countKind(b.Succs(), EdgeFallthru), 1, "more than one outgoing fall-through")
		assert.LessOrEqual(t, countKind(b.Preds(), EdgeFallthru), 1, "more than one incoming fall-through")
		if b.EndsInDead() {
			assert.Equal(t, 0, countKind(b.Succs(), EdgeFallthru), "dead-end block with fall-through edge")
		}

		seen := map[Label]int{}
		for l := b.NextLabel(UndefinedLabel); l != UndefinedLabel; l = b.NextLabel(l) {
			seen[l]++
			require.LessOrEqual(t, seen[l], 1, "label chain revisits a label")
			assert.Same(t, b, f.BlockFromLabel(l))
		}
	}
}
