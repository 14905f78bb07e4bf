package jit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFunctionHasEntryAndExit(t *testing.T) {
	f := NewFunction()

	require.NotNil(t, f.Entry())
	require.NotNil(t, f.Exit())
	assert.Same(t, f.Exit(), f.NextBlock(f.Entry()))
	assert.Same(t, f.Entry(), f.PreviousBlock(f.Exit()))
	assert.Same(t, f.Entry(), f.NextBlock(nil))
	assert.Same(t, f.Exit(), f.PreviousBlock(nil))

	assert.Equal(t, 0, f.Exit().InsnCount())
	assert.Empty(t, f.Exit().Succs())
}

func TestAppendBlockOrdering(t *testing.T) {
	f := NewFunction()
	b1 := f.AppendBlock()
	b2 := f.AppendBlock()
	b3 := f.AppendBlock()

	assert.Equal(t, []*Block{f.Entry(), b1, b2, b3, f.Exit()}, liveBlocks(f))
}

func TestInsertAndDetach(t *testing.T) {
	f := NewFunction()
	b1 := f.AppendBlock()

	b2 := f.CreateBlock()
	b2.InsertAfter(f.Entry())
	assert.Equal(t, []*Block{f.Entry(), b2, b1, f.Exit()}, liveBlocks(f))

	b3 := f.CreateBlock()
	b3.InsertBefore(b1)
	assert.Equal(t, []*Block{f.Entry(), b2, b3, b1, f.Exit()}, liveBlocks(f))

	b3.Detach()
	assert.Equal(t, []*Block{f.Entry(), b2, b1, f.Exit()}, liveBlocks(f))
}

func TestContextBackReference(t *testing.T) {
	f := NewFunction()
	b := f.AppendBlock()

	assert.Nil(t, b.Context())
	ctx := &struct{ name string }{name: "driver"}
	f.SetContext(ctx)
	assert.Same(t, f, b.Function())
	assert.Equal(t, ctx, b.Context())
	assert.Equal(t, ctx, f.Context())
}

func TestBlockIDsAreUnique(t *testing.T) {
	f := NewFunction()
	b1 := f.AppendBlock()
	b2 := f.AppendBlock()

	ids := map[int]bool{
		f.Entry().ID(): true,
		f.Exit().ID():  true,
		b1.ID():        true,
		b2.ID():        true,
	}
	assert.Len(t, ids, 4)
}

func TestAddInsnAndLast(t *testing.T) {
	f := NewFunction()
	b := f.AppendBlock()

	assert.Nil(t, b.Last())

	for i := 0; i < 9; i++ {
		insn := b.AddInsn()
		require.NotNil(t, insn)
		assert.Equal(t, OpNop, insn.Opcode)
		assert.Equal(t, UndefinedLabel, insn.Dest)
		insn.Opcode = OpAdd
	}
	assert.Equal(t, 9, b.InsnCount())

	last := b.AddInsn()
	last.Opcode = OpReturn
	assert.Same(t, b.Last(), b.Insn(b.InsnCount()-1))
	assert.Equal(t, OpReturn, b.Last().Opcode)
	assert.Equal(t, OpAdd, b.Insn(0).Opcode)
}

func TestIsFinal(t *testing.T) {
	f := NewFunction()
	b1 := f.AppendBlock()
	b2 := f.AppendBlock()
	b3 := f.AppendBlock()

	emit(b1, OpAdd)
	assert.True(t, b1.IsFinal())
	assert.True(t, b3.IsFinal())

	emit(b3, OpAdd)
	assert.False(t, b1.IsFinal())
	assert.False(t, b2.IsFinal())
	assert.True(t, b3.IsFinal())
}

func TestIsReachable(t *testing.T) {
	f := NewFunction()
	b1 := f.AppendBlock()
	b2 := f.AppendBlock()
	b3 := appendLabeled(t, f, 7)

	// Fall-through path from the entry block.
	emit(b1, OpAdd)
	assert.True(t, b1.IsReachable())
	assert.True(t, b2.IsReachable())

	// A dead-end block cuts the fall-through path; only the labeled block
	// after it stays reachable.
	emitReturn(b1)
	assert.False(t, b2.IsReachable())
	assert.True(t, b3.IsReachable())
}

func TestCurrentIsDead(t *testing.T) {
	f := NewFunction()
	assert.False(t, f.CurrentIsDead())

	b1 := f.AppendBlock()
	emitReturn(b1)
	assert.True(t, f.CurrentIsDead())

	// A labeled block after the return revives the current point.
	appendLabeled(t, f, 3)
	assert.False(t, f.CurrentIsDead())
}

func TestFreeTearsDownAllBlocks(t *testing.T) {
	f := NewFunction()
	b1 := f.AppendBlock()
	emitReturn(b1)
	b2 := f.AppendBlock() // unreachable
	emit(b2, OpAdd)

	freed := 0
	b1.SetMeta(1, "live", func(any) { freed++ })
	b2.SetMeta(2, "doomed", func(any) { freed++ })

	require.NoError(t, f.BuildCFG())
	f.CleanCFG()
	require.Len(t, f.DeletedBlocks(), 1)

	f.Free()
	assert.Equal(t, 2, freed, "destructors must run on live and deleted blocks")
	assert.Nil(t, f.Entry())
	assert.Nil(t, f.Exit())
	assert.Empty(t, f.DeletedBlocks())
}
