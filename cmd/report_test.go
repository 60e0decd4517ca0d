package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"minersim/simulation"
)

func testSummary() simulation.Summary {
	return simulation.Summary{
		Seed:   7,
		Rounds: 10,
		Blocks: 11,
		Height: 8,
		Forks: simulation.ForkStats{
			Points: []simulation.ForkPoint{
				{Depth: 2, SpanStart: 3, SpanEnd: 4},
			},
			Count:           1,
			MaxDepth:        2,
			Abandoned:       2,
			AbandonedPct:    20,
			CanonicalLength: 8,
		},
		Confirmations: simulation.ConfirmationStats{
			Miners: []simulation.MinerStats{
				{Label: "H1", Group: simulation.GroupHonest, Mined: 6, Included: 6, Rate: 100},
				{Label: "C1", Group: simulation.GroupColluding, Mined: 4, Included: 2, Rate: 50},
			},
			Honest:    simulation.GroupStats{Group: simulation.GroupHonest, Miners: 1, Mined: 6, Included: 6, Rate: 100},
			Colluding: simulation.GroupStats{Group: simulation.GroupColluding, Miners: 1, Mined: 4, Included: 2, Rate: 50},
		},
	}
}

func TestPrintStatistics(t *testing.T) {
	var buf bytes.Buffer
	printStatistics(&buf, testSummary(), false)
	out := buf.String()

	assert.Contains(t, out, "Num forks: 1")
	assert.Contains(t, out, "Max depth: 2")
	assert.Contains(t, out, "Abandoned blocks: 2/10 (20.00%)")
	assert.Contains(t, out, "Honest miners:    100.00% confirmed")
	assert.Contains(t, out, "Colluding miners: 50.00% confirmed")
	// Per-miner and per-fork lines only appear in verbose mode.
	assert.NotContains(t, out, "H1")
	assert.NotContains(t, out, "From height")
}

func TestPrintStatisticsVerbose(t *testing.T) {
	var buf bytes.Buffer
	printStatistics(&buf, testSummary(), true)
	out := buf.String()

	assert.Contains(t, out, "* From height 3 to 4")
	assert.Contains(t, out, "* H1:    6 blocks mined,    6 blocks included: 100.00% confirmed")
	assert.Contains(t, out, "* C1:    4 blocks mined,    2 blocks included: 50.00% confirmed")
}
