package jit

// ============================================================================
// CFG edges
// ============================================================================

// EdgeKind classifies a control-flow edge.
type EdgeKind uint8

const (
	// EdgeFallthru is the implicit transfer to the next block in layout
	// order. A block has at most one incoming and one outgoing fall-through.
	EdgeFallthru EdgeKind = iota

	// EdgeBranch is an explicit conditional or unconditional branch.
	EdgeBranch

	// EdgeReturn leads from a returning block to the exit block.
	EdgeReturn

	// EdgeExcept leads from a raising instruction to the active catcher, or
	// to the exit block when there is none.
	EdgeExcept
)

// String returns the name of the edge kind.
func (k EdgeKind) String() string {
	switch k {
	case EdgeFallthru:
		return "fallthru"
	case EdgeBranch:
		return "branch"
	case EdgeReturn:
		return "return"
	case EdgeExcept:
		return "except"
	default:
		return "unknown"
	}
}

// Edge is a directed CFG edge. Edges are owned by the function's edge pool
// and referenced from both src.succs and dst.preds; they never change after
// creation except for the destination redirect used when empty blocks merge
// and the branch-to-fall-through conversion of a useless branch.
type Edge struct {
	src  *Block
	dst  *Block
	kind EdgeKind

	// Free-list link while the edge sits in the pool.
	poolNext *Edge
}

// Src returns the edge's source block.
func (e *Edge) Src() *Block {
	return e.src
}

// Dst returns the edge's destination block.
func (e *Edge) Dst() *Block {
	return e.dst
}

// Kind returns the edge's classification.
func (e *Edge) Kind() EdgeKind {
	return e.kind
}

// edgePool hands out edges from a free list. An optional limit bounds the
// number of edges in use so that CFG construction can surface allocation
// failure the way the rest of the build does.
type edgePool struct {
	free  *Edge
	inUse int
	limit int
}

func (p *edgePool) alloc() (*Edge, error) {
	if p.limit > 0 && p.inUse >= p.limit {
		return nil, NewBuildError(ErrOutOfMemory, PhaseCFGConstruction, UndefinedLabel,
			"edge pool limit reached")
	}
	p.inUse++
	if e := p.free; e != nil {
		p.free = e.poolNext
		*e = Edge{}
		return e, nil
	}
	return &Edge{}, nil
}

func (p *edgePool) dealloc(e *Edge) {
	*e = Edge{poolNext: p.free}
	p.free = e
	p.inUse--
}

// detachEdgeSrc removes the edge from its source block's successor array,
// keeping the array compact.
func detachEdgeSrc(e *Edge) {
	succs := e.src.succs
	for i, s := range succs {
		if s == e {
			copy(succs[i:], succs[i+1:])
			succs[len(succs)-1] = nil
			e.src.succs = succs[:len(succs)-1]
			return
		}
	}
}

// detachEdgeDst removes the edge from its destination block's predecessor
// array, keeping the array compact.
func detachEdgeDst(e *Edge) {
	preds := e.dst.preds
	for i, p := range preds {
		if p == e {
			copy(preds[i:], preds[i+1:])
			preds[len(preds)-1] = nil
			e.dst.preds = preds[:len(preds)-1]
			return
		}
	}
}

// attachEdgeDst redirects the edge to a new destination block. It does not
// detach the edge from the old destination; callers detach first when the
// old block stays live.
func attachEdgeDst(e *Edge, b *Block) {
	b.preds = append(b.preds, e)
	e.dst = b
}

// deleteEdge detaches the edge from both end blocks and returns it to the
// pool.
func (f *Function) deleteEdge(e *Edge) {
	detachEdgeSrc(e)
	detachEdgeDst(e)
	f.edgePool.dealloc(e)
}
