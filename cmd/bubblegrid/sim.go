package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/bubblegrid/internal/registry"
	"github.com/vovakirdan/bubblegrid/internal/sim"
)

var (
	flagSimGames    int
	flagSimWorkers  int
	flagSimMaxTicks int
	flagSimBotStep  float64
	flagSimQuiet    bool
)

var simCmd = &cobra.Command{
	Use:   "sim [mode]",
	Short: "Autoplay a batch of games and print statistics",
	Long: `Play many games headlessly with the built-in bot and summarize
win rate, scores and board activity. Game i uses seed --seed + i, so a
batch is reproducible regardless of the worker count.

Examples:
  bubblegrid sim
  bubblegrid sim bubbles_endless --games 200 --max-ticks 20000
  bubblegrid sim --seed 7 --workers 4 --difficulty hard`,
	Args: cobra.MaximumNArgs(1),
	Run:  runSim,
}

func init() {
	def := sim.DefaultOptions()
	simCmd.Flags().IntVar(&flagSimGames, "games", def.Games, "Number of games to play")
	simCmd.Flags().IntVar(&flagSimWorkers, "workers", 0, "Parallel workers (0 = one per CPU)")
	simCmd.Flags().IntVar(&flagSimMaxTicks, "max-ticks", def.MaxTicks, "Ticks before a game times out")
	simCmd.Flags().Float64Var(&flagSimBotStep, "bot-step", def.BotStep, "Degrees between the angles the bot tries")
	simCmd.Flags().BoolVar(&flagSimQuiet, "quiet", false, "Hide the progress bar")
}

func runSim(cmd *cobra.Command, args []string) {
	opt := sim.DefaultOptions()
	if len(args) == 1 {
		opt.GameID = args[0]
	}
	if !registry.Exists(opt.GameID) {
		fail("unknown game %q", opt.GameID)
	}

	opt.Games = flagSimGames
	opt.Workers = flagSimWorkers
	opt.MaxTicks = flagSimMaxTicks
	opt.BotStep = flagSimBotStep
	opt.TickRate = flagFPS
	opt.Config = loadConfig()
	opt.Logger = stderrLogger()
	if flagSeed != 0 {
		opt.Seed = flagSeed
	}
	if !flagSimQuiet {
		opt.Progress = os.Stderr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	report, err := sim.Run(ctx, opt)
	if err != nil {
		stop()
		fail("%v", err)
	}
	fmt.Print(report.Format())
}
