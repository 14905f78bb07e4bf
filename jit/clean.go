package jit

// ============================================================================
// CFG cleanup
// ============================================================================
//
// CleanCFG is based on the Clean algorithm described in "Engineering a
// Compiler" by Keith D. Cooper and Linda Torczon, section 10.3.1
// "Eliminating Useless and Unreachable Code" (originally presented by Rob
// Shillner and John Lu). The IR here is not ILOC, so the rewrites differ in
// the details.

// CleanCFG normalizes the function's CFG: unreachable blocks are removed,
// useless branches are rewritten and empty blocks are merged into their
// successors, repeating until a full pass changes nothing. The CFG must have
// been built with BuildCFG.
//
// CleanCFG only frees and redirects existing edges, so it cannot fail.
func (f *Function) CleanCFG() {
	f.ComputePostorder()
	f.eliminateUnreachable()

	for {
		changed := false

		// Walk the interior of the postorder; the entry and exit blocks are
		// never rewritten.
		for _, b := range f.blockOrder {
			if b == f.entry || b == f.exit {
				continue
			}
			if len(b.succs) == 0 {
				continue
			}
			if b.succs[0].kind == EdgeBranch {
				if b.succs[0].dst == b.next {
					// The branch target is the next block in layout order,
					// so the branch itself is useless.
					changed = true
					insn := b.Last()
					insn.Opcode = OpNop
					if len(b.succs) == 1 {
						// Unconditional: the branch edge becomes the
						// fall-through edge.
						b.endsInDead = false
						b.succs[0].kind = EdgeFallthru
					} else {
						// Conditional: drop the branch edge, keep the
						// fall-through edge.
						f.deleteEdge(b.succs[0])
					}
				} else if len(b.succs) == 2 && len(b.next.succs) == 1 &&
					b.next.succs[0].kind == EdgeBranch &&
					b.succs[0].dst == b.next.succs[0].dst &&
					isEmptyBlock(b.next) {
					// Both arms reach the same block and the fall-through
					// arm is empty: the conditional branch might as well be
					// unconditional.
					changed = true
					insn := b.Last()
					insn.Opcode = OpBr
					b.endsInDead = true
					f.deleteEdge(b.succs[1])
				}
			}
			// A block whose single branch targets itself is an (empty)
			// infinite loop; it has no successor to merge into.
			if len(b.succs) == 1 && b.succs[0].dst != b &&
				(b.succs[0].kind == EdgeBranch || b.succs[0].kind == EdgeFallthru) &&
				isEmptyBlock(b) {
				f.mergeEmpty(b, &changed)
			}

			// TODO: the "combine blocks" and "hoist branch" rewrites of the
			// Clean algorithm.
		}

		if !changed {
			return
		}

		// A rewrite can orphan a block (its last predecessor edge went
		// away), so each restart prunes unreachable blocks again before the
		// next rules pass.
		f.ComputePostorder()
		f.eliminateUnreachable()
	}
}

// isEmptyBlock reports whether the block contains nothing but nops, offset
// marks and an unconditional branch.
func isEmptyBlock(b *Block) bool {
	for i := range b.insns {
		switch b.insns[i].Opcode {
		case OpNop, OpMarkOffset, OpBr:
		default:
			return false
		}
	}
	return true
}

// mergeEmpty merges an empty block with a single outgoing edge into its
// successor: labels migrate to the successor and incoming edges are
// retargeted to it. An incoming fall-through edge is special: it can only be
// retargeted when the outgoing edge is a fall-through too, otherwise the
// block survives as a trampoline carrying just that one edge.
func (f *Function) mergeEmpty(b *Block, changed *bool) {
	succEdge := b.succs[0]
	succBlock := succEdge.dst

	f.mergeLabels(succBlock, b.label)
	b.label = UndefinedLabel

	var fallthruEdge *Edge
	for _, predEdge := range append([]*Edge(nil), b.preds...) {
		if predEdge.kind == EdgeFallthru {
			fallthruEdge = predEdge
		} else {
			*changed = true
			detachEdgeDst(predEdge)
			attachEdgeDst(predEdge, succBlock)
		}
	}

	if fallthruEdge != nil {
		if succEdge.kind == EdgeFallthru {
			// Fall-through in and fall-through out: the incoming edge can
			// reach the successor directly once the block leaves the layout.
			*changed = true
			detachEdgeDst(fallthruEdge)
			attachEdgeDst(fallthruEdge, succBlock)
			fallthruEdge = nil
		}
	}

	if fallthruEdge == nil {
		// No incoming edge left; drop the outgoing edge and the block.
		detachEdgeSrc(succEdge)
		detachEdgeDst(succEdge)
		f.edgePool.dealloc(succEdge)
		b.Detach()
		f.deleteBlock(b)
	}
}

// eliminateBlock removes an unreachable block: it leaves the layout list,
// every incident edge is freed, and the block moves to the deleted list.
func (f *Function) eliminateBlock(b *Block) {
	b.Detach()

	for _, e := range b.succs {
		detachEdgeDst(e)
		f.edgePool.dealloc(e)
	}
	for _, e := range b.preds {
		detachEdgeSrc(e)
		f.edgePool.dealloc(e)
	}

	f.deleteBlock(b)
}

// eliminateUnreachable removes every live block the last postorder walk did
// not visit, consuming the visited marks it left behind.
func (f *Function) eliminateUnreachable() {
	b := f.entry
	for b != f.exit {
		next := b.next
		if b.visited {
			b.visited = false
		} else {
			f.eliminateBlock(b)
		}
		b = next
	}
	f.exit.visited = false
}
