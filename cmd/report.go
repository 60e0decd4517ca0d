package cmd

import (
	"fmt"
	"io"

	"minersim/simulation"
)

const divider = "--------------------"

// printStatistics writes the final fork and miner statistics in the
// simulator's classic console format. Verbose adds per-fork spans and
// per-miner lines.
func printStatistics(w io.Writer, s simulation.Summary, verbose bool) {
	fmt.Fprintln(w, "Fork statistics:")
	fmt.Fprintln(w, divider)
	fmt.Fprintf(w, "  Num forks: %d\n", s.Forks.Count)
	if verbose {
		for _, fp := range s.Forks.Points {
			fmt.Fprintf(w, "  * From height %d to %d\n", fp.SpanStart, fp.SpanEnd)
		}
	}
	fmt.Fprintf(w, "  Max depth: %d\n", s.Forks.MaxDepth)
	fmt.Fprintf(w, "  Abandoned blocks: %d/%d (%.2f%%)\n",
		s.Forks.Abandoned, s.Blocks-1, s.Forks.AbandonedPct)
	fmt.Fprintln(w, divider)

	fmt.Fprintln(w, "Miner statistics:")
	if verbose {
		for _, m := range s.Confirmations.Miners {
			fmt.Fprintf(w, "  * %s: %4d blocks mined, %4d blocks included: %.2f%% confirmed\n",
				m.Label, m.Mined, m.Included, m.Rate)
		}
	}
	fmt.Fprintln(w, divider)
	fmt.Fprintf(w, "  Honest miners:    %.2f%% confirmed\n", s.Confirmations.Honest.Rate)
	fmt.Fprintf(w, "  Colluding miners: %.2f%% confirmed\n", s.Confirmations.Colluding.Rate)
}
