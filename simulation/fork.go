package simulation

import (
	mapset "github.com/deckarep/golang-set/v2"
	lru "github.com/hashicorp/golang-lru/v2"
)

// ForkPoint describes one block with two or more children. Depth and span
// are measured over the losing branches below it, the ones that do not lead
// to the canonical tip.
type ForkPoint struct {
	Base      *Block
	Depth     uint64 // longest losing branch, in blocks
	SpanStart uint64 // first height covered by the fork
	SpanEnd   uint64 // height of the deepest losing tip
}

// ForkStats aggregates the fork geometry of a finished chain.
type ForkStats struct {
	Points          []ForkPoint
	Count           int
	MaxDepth        uint64
	Abandoned       int     // mined blocks off the canonical path
	AbandonedPct    float64 // of all mined blocks
	CanonicalLength int     // canonical path length, excluding genesis
}

// ForkAnalyzer walks a finished chain once and reports its fork geometry.
type ForkAnalyzer struct {
	chain  *Chain
	depths *lru.Cache[uint64, uint64] // block id -> deepest height in its subtree
}

func NewForkAnalyzer(chain *Chain) *ForkAnalyzer {
	// Sized to the chain so the memo survives the whole walk.
	depths, _ := lru.New[uint64, uint64](chain.Len())
	return &ForkAnalyzer{chain: chain, depths: depths}
}

func (a *ForkAnalyzer) Analyze() ForkStats {
	path := a.chain.CanonicalPath()
	canonical := mapset.NewSetWithSize[uint64](len(path))
	for _, b := range path {
		canonical.Add(b.ID())
	}

	stats := ForkStats{
		Abandoned:       a.chain.Len() - len(path),
		CanonicalLength: len(path) - 1,
	}
	if mined := a.chain.Len() - 1; mined > 0 {
		stats.AbandonedPct = float64(stats.Abandoned) / float64(mined) * 100
	}

	for id := uint64(0); id < uint64(a.chain.Len()); id++ {
		children := a.chain.Children(id)
		if len(children) < 2 {
			continue
		}
		base, _ := a.chain.Block(id)

		var depth uint64
		for _, child := range children {
			if canonical.Contains(child) {
				continue
			}
			if d := a.deepest(child) - base.Height(); d > depth {
				depth = d
			}
		}

		stats.Points = append(stats.Points, ForkPoint{
			Base:      base,
			Depth:     depth,
			SpanStart: base.Height() + 1,
			SpanEnd:   base.Height() + depth,
		})
		if depth > stats.MaxDepth {
			stats.MaxDepth = depth
		}
	}
	stats.Count = len(stats.Points)
	return stats
}

// deepest returns the greatest height reached in the subtree rooted at id,
// memoized across fork points since losing branches can nest.
func (a *ForkAnalyzer) deepest(id uint64) uint64 {
	if d, ok := a.depths.Get(id); ok {
		return d
	}

	type frame struct {
		id   uint64
		next int
	}
	stack := []frame{{id: id}}
	for len(stack) > 0 {
		f := &stack[len(stack)-1]
		children := a.chain.Children(f.id)
		if f.next < len(children) {
			child := children[f.next]
			f.next++
			if _, ok := a.depths.Get(child); !ok {
				stack = append(stack, frame{id: child})
			}
			continue
		}

		best, _ := a.chain.HeightOf(f.id)
		for _, child := range children {
			if d, ok := a.depths.Get(child); ok && d > best {
				best = d
			}
		}
		a.depths.Add(f.id, best)
		stack = stack[:len(stack)-1]
	}

	d, _ := a.depths.Get(id)
	return d
}
