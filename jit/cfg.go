package jit

// ============================================================================
// CFG construction
// ============================================================================

// BuildCFG derives the control-flow edges of the function from each block's
// terminator. It runs in two passes: the first only counts edges so that the
// per-block successor and predecessor arrays can be sized exactly, the
// second allocates and installs them.
//
// A branch or call terminator naming an unbound label yields an
// ErrUndefinedLabel build error; an armed edge limit can yield
// ErrOutOfMemory. Either is fatal to the function build.
func (f *Function) BuildCFG() error {
	for b := f.entry; b != nil; b = b.next {
		b.numSuccs = 0
		b.numPreds = 0
	}
	if err := f.buildEdges(false); err != nil {
		return err
	}
	f.allocEdges()
	return f.buildEdges(true)
}

// createEdge installs (or, during the counting pass, merely counts) one edge
// from src to dst.
func (f *Function) createEdge(src, dst *Block, kind EdgeKind, create bool) error {
	if create {
		e, err := f.edgePool.alloc()
		if err != nil {
			return err
		}
		e.src = src
		e.dst = dst
		e.kind = kind
		src.succs = append(src.succs, e)
		dst.preds = append(dst.preds, e)
	}
	src.numSuccs++
	dst.numPreds++
	return nil
}

// buildEdges classifies every non-exit block's terminator and derives its
// outgoing edges. With create false it only counts them.
//
// TODO: derive edges for catch, finally and filter blocks once exception
// regions carry an explicit scope stack.
func (f *Function) buildEdges(create bool) error {
	for src := f.entry; src != f.exit; src = src.next {
		insn := src.Last()
		opcode := OpNop
		if insn != nil {
			opcode = insn.Opcode
		}

		var kind EdgeKind
		var dst *Block
		switch {
		case opcode.IsReturn():
			kind = EdgeReturn
			dst = f.exit

		case opcode == OpBr || opcode.IsCondBranch():
			kind = EdgeBranch
			dst = f.BlockFromLabel(insn.Dest)
			if dst == nil {
				return NewBuildError(ErrUndefinedLabel, PhaseCFGConstruction, insn.Dest,
					"branch to unbound label")
			}

		case opcode == OpThrow || opcode == OpRethrow:
			kind = EdgeExcept
			dst = f.BlockFromLabel(f.catcherLabel)
			if dst == nil {
				dst = f.exit
			}

		case opcode == OpCallFinally || opcode == OpCallFilter:
			kind = EdgeExcept
			dst = f.BlockFromLabel(insn.Dest)
			if dst == nil {
				return NewBuildError(ErrUndefinedLabel, PhaseCFGConstruction, insn.Dest,
					"exception-region call to unbound label")
			}

		case opcode.IsCall():
			kind = EdgeExcept
			dst = f.BlockFromLabel(f.catcherLabel)
			if dst == nil {
				dst = f.exit
			}

		case opcode == OpJumpTable:
			for _, target := range insn.Targets {
				tdst := f.BlockFromLabel(target)
				if tdst == nil {
					return NewBuildError(ErrUndefinedLabel, PhaseCFGConstruction, target,
						"jump table entry to unbound label")
				}
				if err := f.createEdge(src, tdst, EdgeBranch, create); err != nil {
					return err
				}
			}
		}

		// The explicit edge goes first so that succs[0] is always the branch
		// edge of a conditional branch; the cleaner relies on this.
		if dst != nil {
			if err := f.createEdge(src, dst, kind, create); err != nil {
				return err
			}
		}
		if !src.endsInDead {
			if err := f.createEdge(src, src.next, EdgeFallthru, create); err != nil {
				return err
			}
		}
	}
	return nil
}

// allocEdges sizes each block's successor and predecessor arrays to the
// exact counts of the counting pass and resets the counters for the
// populating pass.
func (f *Function) allocEdges() {
	for b := f.entry; b != nil; b = b.next {
		if b.numSuccs > 0 {
			b.succs = make([]*Edge, 0, b.numSuccs)
			b.numSuccs = 0
		} else {
			b.succs = nil
		}
		if b.numPreds > 0 {
			b.preds = make([]*Edge, 0, b.numPreds)
			b.numPreds = 0
		} else {
			b.preds = nil
		}
	}
}
