package simulation

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSimulatorRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"no miners", Config{Rounds: 10}},
		{"negative rounds", Config{Honest: 1, Rounds: -1}},
		{"negative gap", Config{Honest: 1, Rounds: 10, Gap: -1}},
		{"negative honest", Config{Honest: -1, Colluding: 2, Rounds: 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSimulator(tt.cfg)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidConfiguration))
		})
	}
}

func TestSingleHonestMinerMinesStraightChain(t *testing.T) {
	sim, err := NewSimulator(Config{Honest: 1, Rounds: 10, Gap: 5, Seed: 1})
	require.NoError(t, err)
	require.NoError(t, sim.Run())

	chain := sim.Chain()
	assert.Equal(t, 11, chain.Len())
	assert.Equal(t, uint64(10), chain.CanonicalTip().Height())
	assert.Len(t, chain.Tips(), 1)

	summary := Summarize(sim)
	assert.Equal(t, 0, summary.Forks.Count)
	assert.Equal(t, 0, summary.Forks.Abandoned)
	assert.Equal(t, 100.0, summary.Confirmations.Honest.Rate)
	require.Len(t, summary.Confirmations.Miners, 1)
	assert.Equal(t, 100.0, summary.Confirmations.Miners[0].Rate)
}

func TestSingleColludingMinerMinesStraightChain(t *testing.T) {
	// With no honest chain to diverge from, the gap never matters.
	sim, err := NewSimulator(Config{Colluding: 1, Rounds: 5, Gap: 5, Seed: 1})
	require.NoError(t, err)
	require.NoError(t, sim.Run())

	chain := sim.Chain()
	assert.Equal(t, 6, chain.Len())
	assert.Equal(t, uint64(5), chain.CanonicalTip().Height())

	summary := Summarize(sim)
	assert.Equal(t, 0, summary.Forks.Count)
	assert.Equal(t, 100.0, summary.Confirmations.Colluding.Rate)
}

func TestRunConservationProperties(t *testing.T) {
	cfg := Config{Honest: 3, Colluding: 2, Rounds: 500, Gap: 5, Seed: 42}
	sim, err := NewSimulator(cfg)
	require.NoError(t, err)
	require.NoError(t, sim.Run())

	chain := sim.Chain()
	assert.Equal(t, cfg.Rounds+1, chain.Len())

	summary := Summarize(sim)
	totalMined := 0
	for _, m := range sim.Pool().Miners() {
		totalMined += m.Mined()
		assert.LessOrEqual(t, m.Included(), m.Mined())
	}
	assert.Equal(t, cfg.Rounds, totalMined)
	assert.Equal(t, cfg.Rounds, summary.Forks.Abandoned+summary.Forks.CanonicalLength)

	// Every non-genesis block has a parent already in the chain, at one
	// height below it, and exactly one block sits at height zero.
	genesisCount := 0
	for _, n := range chain.Export() {
		if n.Height == 0 {
			genesisCount++
			continue
		}
		parent, ok := chain.Block(n.ParentID)
		require.True(t, ok)
		assert.Equal(t, parent.Height()+1, n.Height)
	}
	assert.Equal(t, 1, genesisCount)
}

func TestRunIsDeterministicForFixedSeed(t *testing.T) {
	cfg := Config{Honest: 3, Colluding: 2, Rounds: 100, Gap: 5, Seed: 7}

	run := func() ([]Node, Summary) {
		sim, err := NewSimulator(cfg)
		require.NoError(t, err)
		require.NoError(t, sim.Run())
		return sim.Chain().Export(), Summarize(sim)
	}

	nodes1, summary1 := run()
	nodes2, summary2 := run()
	assert.Equal(t, nodes1, nodes2)
	assert.Equal(t, summary1, summary2)
}

func TestHugeGapNeverCapitulates(t *testing.T) {
	cfg := Config{Honest: 3, Colluding: 2, Rounds: 500, Gap: 1 << 30, Seed: 3}
	sim, err := NewSimulator(cfg)
	require.NoError(t, err)

	events := make(chan BlockEvent, cfg.Rounds)
	sub := sim.SubscribeBlocks(events)
	defer sub.Unsubscribe()

	require.NoError(t, sim.Run())

	capitulations := 0
	for len(events) > 0 {
		if ev := <-events; ev.Capitulated {
			capitulations++
		}
	}
	assert.Zero(t, capitulations)
}

func TestSubscribeBlocksDeliversOneEventPerRound(t *testing.T) {
	cfg := Config{Honest: 2, Colluding: 1, Rounds: 50, Gap: 2, Seed: 11}
	sim, err := NewSimulator(cfg)
	require.NoError(t, err)

	events := make(chan BlockEvent, cfg.Rounds)
	sub := sim.SubscribeBlocks(events)
	defer sub.Unsubscribe()

	require.NoError(t, sim.Run())
	require.Len(t, events, cfg.Rounds)

	for round := 0; round < cfg.Rounds; round++ {
		ev := <-events
		assert.Equal(t, round, ev.Round)
		assert.Equal(t, uint64(round+1), ev.Block.ID())
		assert.Equal(t, ev.Miner.Label(), ev.Block.Miner())
	}
}

func TestZeroRoundsLeavesGenesisOnly(t *testing.T) {
	sim, err := NewSimulator(Config{Honest: 1, Colluding: 1, Seed: 1})
	require.NoError(t, err)
	require.NoError(t, sim.Run())

	assert.Equal(t, 1, sim.Chain().Len())
	summary := Summarize(sim)
	assert.Equal(t, 0.0, summary.Confirmations.Honest.Rate)
	assert.Equal(t, 0.0, summary.Confirmations.Colluding.Rate)
	assert.Equal(t, 0.0, summary.Forks.AbandonedPct)
}
