package jit

// ============================================================================
// Basic blocks
// ============================================================================

// Block is a basic block: a straight-line instruction sequence entered at
// the top and left at the bottom. Blocks live on the function's doubly-linked
// list in layout order; the list order defines fall-through control flow.
type Block struct {
	fn *Function

	// Unique id within the function, assigned at creation, never reused.
	id int

	// Head of the alias chain of labels bound to this block.
	label Label

	insns []Insn

	preds []*Edge
	succs []*Edge

	// Edge counters for the counting pass of the CFG builder.
	numPreds int
	numSuccs int

	// The terminator guarantees control cannot fall out of this block.
	endsInDead bool

	// Transient DFS mark, owned by postorder computation.
	visited bool

	next *Block
	prev *Block

	meta map[int]metaEntry
}

// CreateBlock allocates a new block owned by the function. The block is not
// attached to the block list; use InsertBefore/InsertAfter or AppendBlock.
func (f *Function) CreateBlock() *Block {
	b := &Block{
		fn:    f,
		id:    f.nextBlockID,
		label: UndefinedLabel,
	}
	f.nextBlockID++
	return b
}

// AppendBlock creates a new block and attaches it at the end of the function
// body, immediately before the exit block.
func (f *Function) AppendBlock() *Block {
	b := f.CreateBlock()
	b.InsertBefore(f.exit)
	return b
}

// Destroy releases everything the block owns and runs its metadata
// destructors. Edges are pool-owned and freed separately; only the pred and
// succ arrays holding references to them are dropped here.
func (b *Block) Destroy() {
	b.destroyMeta()
	b.succs = nil
	b.preds = nil
	b.insns = nil
}

// Detach unlinks the block from the function's block list. The block keeps
// its instructions, labels and edges.
func (b *Block) Detach() {
	b.next.prev = b.prev
	b.prev.next = b.next
	b.next = nil
	b.prev = nil
}

// InsertAfter links the block into the list immediately after pivot.
func (b *Block) InsertAfter(pivot *Block) {
	b.prev = pivot
	b.next = pivot.next
	pivot.next.prev = b
	pivot.next = b
}

// InsertBefore links the block into the list immediately before pivot.
func (b *Block) InsertBefore(pivot *Block) {
	b.prev = pivot.prev
	b.next = pivot
	pivot.prev.next = b
	pivot.prev = b
}

// Function returns the function the block belongs to.
func (b *Block) Function() *Function {
	return b.fn
}

// Context returns the compilation context the block's function belongs to.
func (b *Block) Context() any {
	return b.fn.context
}

// ID returns the block's function-unique id.
func (b *Block) ID() int {
	return b.id
}

// EndsInDead reports whether control cannot fall out through the end of the
// block (return, throw or unconditional branch terminator).
func (b *Block) EndsInDead() bool {
	return b.endsInDead
}

// SetEndsInDead records whether the block's terminator kills fall-through.
// Front ends set this as they emit terminators; the cleaner updates it when
// it rewrites them.
func (b *Block) SetEndsInDead(dead bool) {
	b.endsInDead = dead
}

// Succs returns the block's outgoing edges. Callers must not modify the
// returned slice.
func (b *Block) Succs() []*Edge {
	return b.succs
}

// Preds returns the block's incoming edges. Callers must not modify the
// returned slice.
func (b *Block) Preds() []*Edge {
	return b.preds
}

// IsFinal reports whether no block after this one carries any instruction.
func (b *Block) IsFinal() bool {
	for b = b.next; b != nil; b = b.next {
		if len(b.insns) > 0 {
			return false
		}
	}
	return true
}

// NextBlock iterates over the blocks of the function in layout order. Pass
// nil to start at the entry block; returns nil past the exit block.
func (f *Function) NextBlock(prev *Block) *Block {
	if prev != nil {
		return prev.next
	}
	return f.entry
}

// PreviousBlock iterates over the blocks of the function in reverse layout
// order. Pass nil to start at the exit block; returns nil before the entry
// block.
func (f *Function) PreviousBlock(prev *Block) *Block {
	if prev != nil {
		return prev.prev
	}
	return f.exit
}

// IsReachable conservatively determines whether the block can be reached.
// It only bothers with fall-through flow: the block counts as reachable if
// it is the entry block, carries a label, or a fall-through path from one of
// those leads to it. When in doubt it errs towards reachable.
func (b *Block) IsReachable() bool {
	entry := b.fn.entry
	for b != entry && b.label == UndefinedLabel {
		b = b.prev
		if b.endsInDead {
			return false
		}
	}
	return true
}

// CurrentIsDead reports whether the current point of the function, after the
// last block, cannot be reached: there is no branch to it and no live
// fall-through path.
func (f *Function) CurrentIsDead() bool {
	b := f.PreviousBlock(nil)
	return b == nil || b.EndsInDead() || !b.IsReachable()
}

// deleteBlock moves a block that left the CFG onto the deleted list. The
// block may still be referenced from outside, so its storage survives until
// the function is freed; its graph-bearing arrays are dropped now.
func (f *Function) deleteBlock(b *Block) {
	b.succs = nil
	b.preds = nil
	b.insns = nil

	b.next = f.deletedBlocks
	b.prev = nil
	f.deletedBlocks = b
}

// clearVisited resets the DFS mark on every live block.
func (f *Function) clearVisited() {
	for b := f.entry; b != nil; b = b.next {
		b.visited = false
	}
}
