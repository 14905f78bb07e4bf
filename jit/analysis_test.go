package jit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReachableBlocks(t *testing.T) {
	f := NewFunction()
	b0 := f.AppendBlock()
	orphan := f.AppendBlock()
	b2 := appendLabeled(t, f, 2)
	emitBranch(b0, OpBr, 2)
	emitReturn(orphan)
	emitReturn(b2)
	require.NoError(t, f.BuildCFG())

	reachable := f.ReachableBlocks()
	assert.True(t, reachable.Test(uint(f.Entry().ID())))
	assert.True(t, reachable.Test(uint(b0.ID())))
	assert.True(t, reachable.Test(uint(b2.ID())))
	assert.True(t, reachable.Test(uint(f.Exit().ID())))
	assert.False(t, reachable.Test(uint(orphan.ID())))
}

func TestReachableBlocksLeavesVisitedAlone(t *testing.T) {
	f := NewFunction()
	b := f.AppendBlock()
	emit(b, OpAdd)
	require.NoError(t, f.BuildCFG())

	f.ReachableBlocks()
	for blk := f.NextBlock(nil); blk != nil; blk = f.NextBlock(blk) {
		assert.False(t, blk.visited)
	}
}

func TestReachableBlocksBeforeBuild(t *testing.T) {
	f := NewFunction()
	b := f.AppendBlock()

	// Without edges only the entry block is reachable.
	reachable := f.ReachableBlocks()
	assert.True(t, reachable.Test(uint(f.Entry().ID())))
	assert.False(t, reachable.Test(uint(b.ID())))
	assert.False(t, reachable.Test(uint(f.Exit().ID())))
}
