package simulation

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	blocksMinedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "minersim_blocks_mined_total",
		Help: "Blocks mined per miner group.",
	}, []string{"group"})

	capitulationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "minersim_fork_capitulations_total",
		Help: "Times the colluding group abandoned its private fork.",
	})

	chainHeight = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "minersim_chain_height",
		Help: "Height of the canonical tip.",
	})
)
