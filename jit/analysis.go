package jit

import (
	"github.com/bits-and-blooms/bitset"
)

// ReachableBlocks computes the set of blocks reachable from the entry block
// along CFG edges, as a bitset keyed by block id. Unlike the conservative
// per-block IsReachable test this follows the real edge graph, and unlike
// ComputePostorder it leaves the blocks' visited marks alone, so it is safe
// to call at any point between passes.
func (f *Function) ReachableBlocks() *bitset.BitSet {
	reachable := bitset.New(uint(f.nextBlockID))

	worklist := []*Block{f.entry}
	reachable.Set(uint(f.entry.id))
	for len(worklist) > 0 {
		b := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]
		for _, e := range b.succs {
			if !reachable.Test(uint(e.dst.id)) {
				reachable.Set(uint(e.dst.id))
				worklist = append(worklist, e.dst)
			}
		}
	}
	return reachable
}
