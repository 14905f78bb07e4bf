package jit

// Insn is one instruction in a block's linear instruction buffer.
//
// The CFG builder only interprets the fields below; front ends are free to
// hang any further operand encoding off Value1/Value2.
type Insn struct {
	// Opcode selects the operation; see the classification ranges in opcode.go.
	Opcode Opcode

	// Dest is the target label of branch and call_finally/call_filter
	// instructions. UndefinedLabel otherwise.
	Dest Label

	// Targets holds the destination labels of a jump_table instruction,
	// one entry per table slot. Duplicate labels are allowed.
	Targets []Label

	// Value1, Value2 are opaque operand slots for non-control instructions.
	Value1 int64
	Value2 int64
}

// AddInsn appends a fresh instruction to the block and returns it for the
// caller to fill in. The instruction starts as a nop with no target label.
// The returned pointer stays valid until the next append to the same block.
func (b *Block) AddInsn() *Insn {
	if len(b.insns) == cap(b.insns) {
		maxInsns := 4
		if cap(b.insns) > 0 {
			maxInsns = cap(b.insns) * 2
		}
		insns := make([]Insn, len(b.insns), maxInsns)
		copy(insns, b.insns)
		b.insns = insns
	}
	b.insns = append(b.insns, Insn{Dest: UndefinedLabel})
	return &b.insns[len(b.insns)-1]
}

// Last returns the block's last instruction, or nil if the block is empty.
func (b *Block) Last() *Insn {
	if len(b.insns) > 0 {
		return &b.insns[len(b.insns)-1]
	}
	return nil
}

// InsnCount returns the number of instructions in the block.
func (b *Block) InsnCount() int {
	return len(b.insns)
}

// Insn returns the instruction at the given index.
func (b *Block) Insn(index int) *Insn {
	return &b.insns[index]
}
