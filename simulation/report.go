package simulation

// Summary is the full statistics record of one finished run, the read-only
// surface consumed by the reporting layer.
type Summary struct {
	Seed   int64
	Rounds int
	Blocks int
	Height uint64

	Forks         ForkStats
	Confirmations ConfirmationStats
}

// Summarize runs both analyzers over the simulator's final chain.
func Summarize(sim *Simulator) Summary {
	chain := sim.Chain()
	return Summary{
		Seed:          sim.Seed(),
		Rounds:        sim.cfg.Rounds,
		Blocks:        chain.Len(),
		Height:        chain.CanonicalTip().Height(),
		Forks:         NewForkAnalyzer(chain).Analyze(),
		Confirmations: NewConfirmationAnalyzer(chain, sim.Pool()).Analyze(),
	}
}
