package simulation

import "github.com/jinzhu/copier"

// MinerStats is one miner's final score.
type MinerStats struct {
	Label    string
	Group    Group
	Mined    int
	Included int
	Rate     float64 // percent of mined blocks confirmed
}

// GroupStats aggregates one group's score.
type GroupStats struct {
	Group    Group
	Miners   int
	Mined    int
	Included int
	Rate     float64
}

// ConfirmationStats reports, per miner and per group, the share of mined
// blocks that ended up on the canonical chain.
type ConfirmationStats struct {
	Miners    []MinerStats
	Honest    GroupStats
	Colluding GroupStats
}

// ConfirmationAnalyzer scores the miner population against the canonical
// path of a finished chain.
type ConfirmationAnalyzer struct {
	chain *Chain
	pool  *MinerPool
}

func NewConfirmationAnalyzer(chain *Chain, pool *MinerPool) *ConfirmationAnalyzer {
	return &ConfirmationAnalyzer{chain: chain, pool: pool}
}

// Analyze walks the canonical path once, credits each miner's included
// count, and builds the per-miner and per-group rates. A miner with no
// blocks scores 0%, not an error.
func (a *ConfirmationAnalyzer) Analyze() ConfirmationStats {
	included := make(map[string]int, len(a.pool.Miners()))
	for _, b := range a.chain.CanonicalPath() {
		if b.Group() == GroupNone {
			continue
		}
		included[b.Miner()]++
	}

	stats := ConfirmationStats{
		Honest:    GroupStats{Group: GroupHonest},
		Colluding: GroupStats{Group: GroupColluding},
	}
	for _, m := range a.pool.Miners() {
		m.included = included[m.label]

		var row MinerStats
		if err := copier.Copy(&row, m); err != nil {
			panic(err)
		}
		row.Rate = rate(row.Included, row.Mined)
		stats.Miners = append(stats.Miners, row)

		group := &stats.Honest
		if m.group == GroupColluding {
			group = &stats.Colluding
		}
		group.Miners++
		group.Mined += m.mined
		group.Included += m.included
	}
	stats.Honest.Rate = rate(stats.Honest.Included, stats.Honest.Mined)
	stats.Colluding.Rate = rate(stats.Colluding.Included, stats.Colluding.Mined)
	return stats
}

func rate(included, mined int) float64 {
	if mined == 0 {
		return 0
	}
	return float64(included) / float64(mined) * 100
}
