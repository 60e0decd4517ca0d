package simulation

import "github.com/pkg/errors"

// Config holds the parameters of one simulation run. All validation happens
// here, before the first round.
type Config struct {
	Honest    int   // number of honest miners
	Colluding int   // number of colluding miners
	Rounds    int   // mining rounds to simulate
	Gap       int   // height gap tolerated on the colluding fork
	Seed      int64 // PRNG seed; 0 draws one from entropy

	Verbose     bool
	Graph       bool
	GraphOutput string
}

// DefaultConfig mirrors the simulator's stock scenario.
func DefaultConfig() Config {
	return Config{
		Honest:      3,
		Colluding:   2,
		Rounds:      10000,
		Gap:         5,
		GraphOutput: "blockchain_simulation.dot",
	}
}

func (c Config) Validate() error {
	if c.Honest < 0 {
		return errors.Wrap(ErrInvalidConfiguration, "honest miner count must be >= 0")
	}
	if c.Colluding < 0 {
		return errors.Wrap(ErrInvalidConfiguration, "colluding miner count must be >= 0")
	}
	if c.Honest+c.Colluding == 0 {
		return errors.Wrap(ErrInvalidConfiguration, "at least one miner is required")
	}
	if c.Rounds < 0 {
		return errors.Wrap(ErrInvalidConfiguration, "rounds must be >= 0")
	}
	if c.Gap < 0 {
		return errors.Wrap(ErrInvalidConfiguration, "gap must be >= 0")
	}
	return nil
}
