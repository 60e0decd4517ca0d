package cmd

import (
	"os"
	"sync"

	"github.com/dominant-strategies/go-quai/event"
	"github.com/pkg/errors"
	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"minersim/graph"
	"minersim/simulation"
)

var log = logrus.WithField("prefix", "cmd")

var rootCmd = &cobra.Command{
	Use:          "minersim",
	Short:        "Simulate a mining scenario with honest and colluding miners",
	Long:         "minersim runs a round-based proof-of-work simulation in which a colluding subset of miners withholds work on a private fork, and reports how collusion shifts fork rates and confirmed-block shares.",
	RunE:         run,
	SilenceUsage: true,
}

func init() {
	flags := rootCmd.Flags()
	flags.Int("honest", 3, "Number of honest miners")
	flags.Int("colluding", 2, "Number of colluding miners")
	flags.Int("rounds", 10000, "Number of mining rounds to simulate")
	flags.Int("gap", 5, "Gap allowed on colluding fork")
	flags.Int64("seed", 0, "Random seed; 0 draws one from entropy")
	flags.Bool("verbose", false, "Print more information")
	flags.Bool("graph", false, "Generate a graph of the blockchain")
	flags.String("graph-output", "blockchain_simulation.dot", "Path of the generated graph")

	viper.SetEnvPrefix("MINERSIM")
	viper.AutomaticEnv()
	if err := viper.BindPFlags(flags); err != nil {
		log.WithError(err).Fatal("Failed to bind flags")
	}
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func configFromFlags() simulation.Config {
	return simulation.Config{
		Honest:      viper.GetInt("honest"),
		Colluding:   viper.GetInt("colluding"),
		Rounds:      viper.GetInt("rounds"),
		Gap:         viper.GetInt("gap"),
		Seed:        viper.GetInt64("seed"),
		Verbose:     viper.GetBool("verbose"),
		Graph:       viper.GetBool("graph"),
		GraphOutput: viper.GetString("graph-output"),
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg := configFromFlags()
	if cfg.Verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	sim, err := simulation.NewSimulator(cfg)
	if err != nil {
		return err
	}

	events := make(chan simulation.BlockEvent, 128)
	sub := sim.SubscribeBlocks(events)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		consumeEvents(cfg, events, sub)
	}()

	if err := sim.Run(); err != nil {
		return err
	}
	sub.Unsubscribe()
	wg.Wait()

	summary := simulation.Summarize(sim)
	printStatistics(cmd.OutOrStdout(), summary, cfg.Verbose)

	if cfg.Graph {
		if err := graph.WriteFile(cfg.GraphOutput, sim.Chain().Export()); err != nil {
			return errors.Wrap(err, "failed to generate graph")
		}
		log.WithField("path", cfg.GraphOutput).Info("Graph written")
	}
	return nil
}

// consumeEvents drains the per-round block feed: verbose runs log every
// block, quiet runs drive a progress bar.
func consumeEvents(cfg simulation.Config, events <-chan simulation.BlockEvent, sub event.Subscription) {
	var bar *progressbar.ProgressBar
	if !cfg.Verbose && cfg.Rounds > 0 {
		bar = progressbar.NewOptions64(
			int64(cfg.Rounds),
			progressbar.OptionClearOnFinish(),
			progressbar.OptionSetDescription("Simulating rounds..."),
			progressbar.OptionShowCount(),
			progressbar.OptionShowIts(),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "=",
				SaucerHead:    ">",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}),
		)
		if err := bar.RenderBlank(); err != nil {
			log.WithError(err).Warn("Failed to render progress bar")
		}
	}

	handle := func(ev simulation.BlockEvent) {
		if bar != nil {
			if err := bar.Add(1); err != nil {
				log.WithError(err).Warn("Failed to update progress bar")
			}
			return
		}
		log.WithFields(logrus.Fields{
			"round":       ev.Round,
			"miner":       ev.Miner.Label(),
			"block":       ev.Block.ID(),
			"parent":      ev.Block.ParentID(),
			"height":      ev.Block.Height(),
			"capitulated": ev.Capitulated,
		}).Debug("Mined a new block")
	}

	for {
		select {
		case ev := <-events:
			handle(ev)
		case <-sub.Err():
			// Subscription closed; drain whatever is still buffered.
			for {
				select {
				case ev := <-events:
					handle(ev)
				default:
					if bar != nil {
						if err := bar.Finish(); err != nil {
							log.WithError(err).Warn("Failed to finish progress bar")
						}
					}
					return
				}
			}
		}
	}
}
