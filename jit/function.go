package jit

// ============================================================================
// Function builder
// ============================================================================

// labelInfo is one entry of the label registry: the block a label is bound
// to and the next label bound to the same block. A zero entry (nil block)
// means the label is unbound.
type labelInfo struct {
	block *Block
	alias Label
}

// Function owns every block of one function under compilation: the live
// doubly-linked block list between entry and exit, the deleted-block list,
// the label registry, the edge pool and the current postorder.
//
// A Function must only be used from one goroutine at a time.
type Function struct {
	entry *Block
	exit  *Block

	// Blocks removed from the CFG but still referenced from outside. Linked
	// through Block.next; reclaimed only by Free.
	deletedBlocks *Block

	labelInfo []labelInfo

	edgePool edgePool

	// Postorder of the last ComputePostorder run. Entry is last.
	blockOrder []*Block

	// Label of the innermost active catcher, or UndefinedLabel when call and
	// throw instructions unwind straight out of the function.
	//
	// TODO: model nested catch/finally/filter regions with an explicit scope
	// stack instead of a single label.
	catcherLabel Label

	// Opaque back-reference to the compilation context owning this
	// function; the subsystem only carries it for its callers.
	context any

	nextBlockID int
}

// SetContext attaches the owning compilation context to the function.
func (f *Function) SetContext(ctx any) {
	f.context = ctx
}

// Context returns the compilation context the function belongs to.
func (f *Function) Context() any {
	return f.context
}

// NewFunction creates an empty function builder holding just the entry and
// exit blocks joined by the block list.
func NewFunction() *Function {
	fn := &Function{
		catcherLabel: UndefinedLabel,
	}
	fn.entry = fn.CreateBlock()
	fn.exit = fn.CreateBlock()
	fn.entry.next = fn.exit
	fn.exit.prev = fn.entry
	return fn
}

// Entry returns the function's entry block.
func (f *Function) Entry() *Block {
	return f.entry
}

// Exit returns the function's exit block. The exit block carries no
// instructions and no successors.
func (f *Function) Exit() *Block {
	return f.exit
}

// SetCatcherLabel installs the label of the currently active catcher block.
// Call and throw terminators gain exception edges to it; pass UndefinedLabel
// to route them to the exit block instead.
func (f *Function) SetCatcherLabel(label Label) {
	f.catcherLabel = label
}

// CatcherLabel returns the label of the currently active catcher block.
func (f *Function) CatcherLabel() Label {
	return f.catcherLabel
}

// SetEdgeLimit bounds the number of live CFG edges the function may hold.
// BuildCFG surfaces an ErrOutOfMemory build error when the limit is hit.
// A limit of zero (the default) means unbounded.
func (f *Function) SetEdgeLimit(limit int) {
	f.edgePool.limit = limit
}

// Postorder returns the block order computed by the last ComputePostorder
// run, or nil if none was computed yet.
func (f *Function) Postorder() []*Block {
	return f.blockOrder
}

// DeletedBlocks returns the blocks that were removed from the CFG but whose
// storage is retained until Free.
func (f *Function) DeletedBlocks() []*Block {
	var blocks []*Block
	for b := f.deletedBlocks; b != nil; b = b.next {
		blocks = append(blocks, b)
	}
	return blocks
}

// Free tears down the function builder: every live and deleted block is
// destroyed, running all registered metadata destructors. The Function must
// not be used afterwards.
func (f *Function) Free() {
	f.blockOrder = nil

	b := f.entry
	for b != nil {
		next := b.next
		b.Destroy()
		b = next
	}

	b = f.deletedBlocks
	for b != nil {
		next := b.next
		b.Destroy()
		b = next
	}

	f.entry = nil
	f.exit = nil
	f.deletedBlocks = nil
	f.labelInfo = nil
}

// countBlocks returns the number of blocks on the live list.
func (f *Function) countBlocks() int {
	count := 0
	for b := f.entry; b != nil; b = b.next {
		count++
	}
	return count
}
