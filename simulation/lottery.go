package simulation

import (
	crand "crypto/rand"
	"math"
	"math/big"
	"math/rand"
)

// Lottery is the seedable randomness behind the per-round winner draw. Each
// round every miner holds an equal ticket, which stands in for the actual
// proof-of-work race.
type Lottery struct {
	seed int64
	rand *rand.Rand
}

// NewLottery seeds the draw. A zero seed is replaced with one drawn from
// entropy so that unseeded runs still differ from each other.
func NewLottery(seed int64) *Lottery {
	if seed == 0 {
		n, err := crand.Int(crand.Reader, big.NewInt(math.MaxInt64))
		if err != nil {
			panic(err)
		}
		seed = n.Int64()
	}
	return &Lottery{
		seed: seed,
		rand: rand.New(rand.NewSource(seed)),
	}
}

// Pick returns a uniform draw from [0, n).
func (l *Lottery) Pick(n int) int {
	return l.rand.Intn(n)
}

// Seed returns the seed actually in use, for reporting and replay.
func (l *Lottery) Seed() int64 {
	return l.seed
}
