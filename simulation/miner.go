package simulation

import "fmt"

// Miner is one participant. Counters are written only by the round that
// selects the miner; included is filled in by the confirmation analyzer
// once the run is over.
type Miner struct {
	label    string
	group    Group
	mined    int
	included int
}

func (m *Miner) Label() string {
	return m.label
}

func (m *Miner) Group() Group {
	return m.group
}

// Mined returns how many blocks this miner produced.
func (m *Miner) Mined() int {
	return m.mined
}

// Included returns how many of this miner's blocks sit on the canonical
// chain. Meaningful only after the run completes.
func (m *Miner) Included() int {
	return m.included
}

// MinerPool holds the miner population, partitioned into the honest and
// colluding groups, and draws one winner per round.
type MinerPool struct {
	miners     []*Miner
	lottery    *Lottery
	strategies map[Group]Strategy
}

// NewMinerPool builds H1..Hn then C1..Cm, wiring each group to its
// parent-selection strategy. The colluding strategy is one shared object,
// modeling the group's aligned incentives.
func NewMinerPool(cfg Config, lottery *Lottery) (*MinerPool, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	miners := make([]*Miner, 0, cfg.Honest+cfg.Colluding)
	for i := 1; i <= cfg.Honest; i++ {
		miners = append(miners, &Miner{label: fmt.Sprintf("H%d", i), group: GroupHonest})
	}
	for i := 1; i <= cfg.Colluding; i++ {
		miners = append(miners, &Miner{label: fmt.Sprintf("C%d", i), group: GroupColluding})
	}

	return &MinerPool{
		miners:  miners,
		lottery: lottery,
		strategies: map[Group]Strategy{
			GroupHonest:    honestStrategy{},
			GroupColluding: newColludingStrategy(cfg.Gap),
		},
	}, nil
}

// Draw selects the round winner uniformly across all miners.
func (p *MinerPool) Draw() *Miner {
	return p.miners[p.lottery.Pick(len(p.miners))]
}

// Miners returns the population in creation order (honest first).
func (p *MinerPool) Miners() []*Miner {
	return p.miners
}

// StrategyFor returns the shared strategy object of a group.
func (p *MinerPool) StrategyFor(g Group) Strategy {
	return p.strategies[g]
}

// GroupCounts returns the sizes of the honest and colluding groups.
func (p *MinerPool) GroupCounts() (honest, colluding int) {
	for _, m := range p.miners {
		switch m.group {
		case GroupHonest:
			honest++
		case GroupColluding:
			colluding++
		}
	}
	return honest, colluding
}
