package simulation

import (
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/pkg/errors"
)

const genesisMiner = "genesis"

// Chain is the append-only tree of all mined blocks. One block per round is
// added by the simulator; nothing is ever removed or rewritten.
type Chain struct {
	blocks   map[uint64]*Block
	children map[uint64][]uint64
	tips     mapset.Set[uint64]

	genesis   *Block
	canonical *Block // cached canonical tip, maintained on every append
	nextID    uint64
}

// NewChain creates a chain holding only the genesis block.
func NewChain() *Chain {
	genesis := newBlock(0, Hash{}, NoParent, 0, genesisMiner, GroupNone)
	c := &Chain{
		blocks:    map[uint64]*Block{0: genesis},
		children:  make(map[uint64][]uint64),
		tips:      mapset.NewSet[uint64](),
		genesis:   genesis,
		canonical: genesis,
		nextID:    1,
	}
	c.tips.Add(genesis.id)
	return c
}

// AddBlock appends a new block as a child of parentID. The parent must
// already be in the chain.
func (c *Chain) AddBlock(parentID uint64, miner string, group Group) (*Block, error) {
	parent, ok := c.blocks[parentID]
	if !ok {
		return nil, errors.Wrapf(ErrInvalidParent, "block %d", parentID)
	}

	b := newBlock(c.nextID, parent.digest, parent.id, parent.height+1, miner, group)
	c.nextID++

	c.blocks[b.id] = b
	c.children[parent.id] = append(c.children[parent.id], b.id)
	c.tips.Remove(parent.id)
	c.tips.Add(b.id)

	// Earlier-created blocks win height ties, so only a strictly higher
	// block displaces the canonical tip.
	if b.height > c.canonical.height {
		c.canonical = b
		b.becameTip = true
	}

	return b, nil
}

// Genesis returns the height-zero block.
func (c *Chain) Genesis() *Block {
	return c.genesis
}

// Block returns the block with the given id.
func (c *Chain) Block(id uint64) (*Block, bool) {
	b, ok := c.blocks[id]
	return b, ok
}

// Len returns the total number of blocks, including genesis.
func (c *Chain) Len() int {
	return len(c.blocks)
}

// HeightOf returns the stored height of a block.
func (c *Chain) HeightOf(id uint64) (uint64, bool) {
	b, ok := c.blocks[id]
	if !ok {
		return 0, false
	}
	return b.height, true
}

// Tips returns every block that currently has no children. Never empty.
func (c *Chain) Tips() []*Block {
	tips := make([]*Block, 0, c.tips.Cardinality())
	for id := range c.tips.Iter() {
		tips = append(tips, c.blocks[id])
	}
	return tips
}

// Children returns the ids of the direct children of a block.
func (c *Chain) Children(id uint64) []uint64 {
	return c.children[id]
}

// CanonicalTip returns the tip with the greatest height. Height ties are
// broken by the earliest-created block.
func (c *Chain) CanonicalTip() *Block {
	return c.canonical
}

// CanonicalPath returns the blocks from genesis to the canonical tip, in
// chain order.
func (c *Chain) CanonicalPath() []*Block {
	path := make([]*Block, 0, c.canonical.height+1)
	for b := c.canonical; ; {
		path = append(path, b)
		if b.parentID == NoParent {
			break
		}
		b = c.blocks[b.parentID]
	}
	// Reverse into genesis-first order.
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// Node is the read-only view of one block, exported for rendering.
type Node struct {
	ID        uint64
	ParentID  uint64
	Digest    Hash
	Height    uint64
	Miner     string
	Group     Group
	Canonical bool
	BecameTip bool
}

// Export returns the full tree in creation order, with canonical-path
// membership resolved against the current canonical tip.
func (c *Chain) Export() []Node {
	canonical := mapset.NewSetWithSize[uint64](int(c.canonical.height) + 1)
	for b := c.canonical; ; {
		canonical.Add(b.id)
		if b.parentID == NoParent {
			break
		}
		b = c.blocks[b.parentID]
	}

	nodes := make([]Node, 0, len(c.blocks))
	for id := uint64(0); id < c.nextID; id++ {
		b := c.blocks[id]
		nodes = append(nodes, Node{
			ID:        b.id,
			ParentID:  b.parentID,
			Digest:    b.digest,
			Height:    b.height,
			Miner:     b.miner,
			Group:     b.group,
			Canonical: canonical.Contains(b.id),
			BecameTip: b.becameTip,
		})
	}
	return nodes
}
