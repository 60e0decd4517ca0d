package simulation

import (
	"github.com/dominant-strategies/go-quai/event"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("prefix", "simulation")

// BlockEvent is broadcast once per round, after the round's block has been
// appended to the chain.
type BlockEvent struct {
	Round       int
	Block       *Block
	Miner       *Miner
	Capitulated bool // the colluding group abandoned its fork this round
}

// Simulator drives the run: each round it draws the winning miner, asks the
// miner's group strategy for a parent, and appends one block to the chain.
// Rounds execute strictly sequentially.
type Simulator struct {
	cfg     Config
	chain   *Chain
	pool    *MinerPool
	lottery *Lottery

	broadcastFeed event.Feed
}

// NewSimulator validates the configuration and sets up the chain and miner
// pool. Any configuration error surfaces here, before the first round.
func NewSimulator(cfg Config) (*Simulator, error) {
	lottery := NewLottery(cfg.Seed)
	pool, err := NewMinerPool(cfg, lottery)
	if err != nil {
		return nil, err
	}
	return &Simulator{
		cfg:     cfg,
		chain:   NewChain(),
		pool:    pool,
		lottery: lottery,
	}, nil
}

// SubscribeBlocks delivers one BlockEvent per round to ch for the lifetime
// of the subscription.
func (sim *Simulator) SubscribeBlocks(ch chan<- BlockEvent) event.Subscription {
	return sim.broadcastFeed.Subscribe(ch)
}

// Run executes the configured number of rounds. Every round succeeds by
// construction; an error here means a strategy handed back a block that is
// not in the chain, which is a bug.
func (sim *Simulator) Run() error {
	log.WithFields(logrus.Fields{
		"honest":    sim.cfg.Honest,
		"colluding": sim.cfg.Colluding,
		"rounds":    sim.cfg.Rounds,
		"gap":       sim.cfg.Gap,
		"seed":      sim.lottery.Seed(),
	}).Info("Starting simulation")

	for round := 0; round < sim.cfg.Rounds; round++ {
		winner := sim.pool.Draw()
		strategy := sim.pool.StrategyFor(winner.group)

		parent, capitulated := strategy.SelectParent(sim.chain)
		block, err := sim.chain.AddBlock(parent.ID(), winner.label, winner.group)
		if err != nil {
			return errors.Wrapf(err, "round %d: strategy for %s returned an unknown parent", round, winner.label)
		}
		strategy.Observe(block)
		winner.mined++

		blocksMinedTotal.WithLabelValues(winner.group.String()).Inc()
		if capitulated {
			capitulationsTotal.Inc()
		}
		chainHeight.Set(float64(sim.chain.CanonicalTip().Height()))

		sim.broadcastFeed.Send(BlockEvent{
			Round:       round,
			Block:       block,
			Miner:       winner,
			Capitulated: capitulated,
		})
	}

	log.WithFields(logrus.Fields{
		"blocks": sim.chain.Len(),
		"height": sim.chain.CanonicalTip().Height(),
	}).Info("Simulation finished")
	return nil
}

func (sim *Simulator) Chain() *Chain {
	return sim.chain
}

func (sim *Simulator) Pool() *MinerPool {
	return sim.pool
}

// Seed returns the seed the run is using, including one drawn from entropy
// when the configuration left it unset.
func (sim *Simulator) Seed() int64 {
	return sim.lottery.Seed()
}
