package simulation

// Strategy decides which existing block a winning miner builds on.
//
// SelectParent returns the chosen parent and whether the strategy abandoned
// a private fork to make that choice. Observe is called with the block the
// miner produced, letting stateful strategies follow their own work.
type Strategy interface {
	SelectParent(chain *Chain) (parent *Block, capitulated bool)
	Observe(b *Block)
}

// honestStrategy always extends the current longest chain.
type honestStrategy struct{}

func (honestStrategy) SelectParent(chain *Chain) (*Block, bool) {
	return chain.CanonicalTip(), false
}

func (honestStrategy) Observe(*Block) {}

// colludingStrategy holds the single fork pointer shared by the whole
// colluding group. The group keeps extending its own fork until the public
// chain pulls more than gap blocks ahead, at which point it capitulates and
// re-adopts the canonical tip.
type colludingStrategy struct {
	gap     uint64
	forkTip *Block
}

func newColludingStrategy(gap int) *colludingStrategy {
	return &colludingStrategy{gap: uint64(gap)}
}

func (s *colludingStrategy) SelectParent(chain *Chain) (*Block, bool) {
	tip := chain.CanonicalTip()
	if s.forkTip == nil {
		s.forkTip = tip
		return tip, false
	}
	if s.forkTip.Height()+s.gap >= tip.Height() {
		return s.forkTip, false
	}
	// The public chain has outrun the fork; further withholding is wasted
	// work, so the group folds back onto the canonical tip.
	s.forkTip = tip
	return tip, true
}

// Observe moves the fork pointer onto the block the group just mined.
func (s *colludingStrategy) Observe(b *Block) {
	s.forkTip = b
}
