package simulation

import (
	"bytes"
	"encoding/gob"
	"encoding/hex"
	"fmt"

	"lukechampine.com/blake3"
)

const HashLength = 32

type Hash [HashLength]byte

// SetBytes sets the hash to the value of b.
// If b is larger than len(h), b will be cropped from the left.
func (h *Hash) SetBytes(b []byte) {
	if len(b) > len(h) {
		b = b[len(b)-HashLength:]
	}

	copy(h[HashLength-len(b):], b)
}

func (h Hash) String() string {
	enc := make([]byte, len(h[:])*2+2)
	copy(enc, "0x")
	hex.Encode(enc[2:], h[:])
	return string(enc)
}

func (h Hash) Bytes() []byte {
	return h[:]
}

// Group identifies which mining population a block or miner belongs to.
type Group uint8

const (
	GroupNone Group = iota // genesis only
	GroupHonest
	GroupColluding
)

func (g Group) String() string {
	switch g {
	case GroupHonest:
		return "honest"
	case GroupColluding:
		return "colluding"
	default:
		return "none"
	}
}

// NoParent marks the genesis block, which has no parent id.
const NoParent = ^uint64(0)

// Block is one mined unit. Blocks are created by the chain when a round is
// won and are never modified afterwards.
type Block struct {
	id        uint64
	digest    Hash
	parentID  uint64
	height    uint64
	miner     string
	group     Group
	becameTip bool
}

// newBlock seals the block's digest over its identity fields. Only the chain
// constructs blocks.
func newBlock(id uint64, parentDigest Hash, parentID, height uint64, miner string, group Group) *Block {
	b := &Block{
		id:       id,
		parentID: parentID,
		height:   height,
		miner:    miner,
		group:    group,
	}
	b.digest = b.sealDigest(parentDigest)
	return b
}

func (b *Block) sealDigest(parentDigest Hash) (hash Hash) {
	sealData := struct {
		ParentDigest Hash
		ID           uint64
		Height       uint64
		Miner        string
	}{
		ParentDigest: parentDigest,
		ID:           b.id,
		Height:       b.height,
		Miner:        b.miner,
	}
	buf := bytes.Buffer{}
	e := gob.NewEncoder(&buf)
	if err := e.Encode(sealData); err != nil {
		panic(fmt.Sprintf("failed gob Encode: %v", err))
	}
	data := buf.Bytes()
	sum := blake3.Sum256(data[:])
	hash.SetBytes(sum[:])
	return hash
}

func (b *Block) ID() uint64 {
	return b.id
}

func (b *Block) Digest() Hash {
	return b.digest
}

// ParentID returns the parent block id, or NoParent for genesis.
func (b *Block) ParentID() uint64 {
	return b.parentID
}

func (b *Block) Height() uint64 {
	return b.height
}

func (b *Block) Miner() string {
	return b.miner
}

func (b *Block) Group() Group {
	return b.group
}

// BecameTip reports whether this block was the canonical tip at the moment
// it was mined.
func (b *Block) BecameTip() bool {
	return b.becameTip
}

func (b *Block) String() string {
	return fmt.Sprintf("{ ID: %d, Parent: %d, Height: %d, Miner: %s, Group: %s }",
		b.id, b.parentID, b.height, b.miner, b.group)
}
