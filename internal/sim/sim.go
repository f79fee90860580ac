// Package sim plays batches of autoplayed games headlessly and reports on
// the results. Each worker goroutine owns its game, so nothing is shared
// between them except the job queue and the progress bar.
package sim

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"sync"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/bubblegrid/internal/config"
	"github.com/vovakirdan/bubblegrid/internal/core"
	"github.com/vovakirdan/bubblegrid/internal/games/bubbles"
	"github.com/vovakirdan/bubblegrid/internal/grid"
	"github.com/vovakirdan/bubblegrid/internal/registry"
	"github.com/vovakirdan/bubblegrid/internal/storage"
)

// Options controls a batch.
type Options struct {
	GameID   string
	Games    int
	Workers  int   // defaults to GOMAXPROCS
	Seed     int64 // game i is seeded with Seed+i
	MaxTicks int   // games still running after this many ticks time out
	TickRate int
	BotStep  float64 // degrees between the angles the bot tries
	Config   config.BubblesConfig
	Progress io.Writer // progress bar destination; nil hides it
	Logger   *log.Logger
}

// DefaultOptions returns options for 100 classic games.
func DefaultOptions() Options {
	return Options{
		GameID:   "bubbles",
		Games:    100,
		Seed:     1,
		MaxTicks: 60 * 60 * 30, // half an hour of play at 60 fps
		TickRate: 60,
		BotStep:  2,
		Config:   config.DefaultBubblesConfig(),
	}
}

// OutcomeTimeout marks games that hit MaxTicks.
const OutcomeTimeout storage.Outcome = "timeout"

// GameResult is the outcome of one simulated game.
type GameResult struct {
	Index   int
	Seed    int64
	Outcome storage.Outcome
	Score   int
	Stats   bubbles.Stats
	Ticks   uint64
}

// Run plays opt.Games games and summarizes them. Results are ordered by game
// index regardless of which worker played them.
func Run(ctx context.Context, opt Options) (*Report, error) {
	if opt.Games <= 0 {
		return nil, errors.New("sim: games must be positive")
	}
	if opt.MaxTicks <= 0 {
		return nil, errors.New("sim: max ticks must be positive")
	}
	if err := opt.Config.Validate(); err != nil {
		return nil, fmt.Errorf("sim: %w", err)
	}
	if _, err := newGame(opt); err != nil {
		return nil, err
	}
	if opt.Workers <= 0 {
		opt.Workers = runtime.GOMAXPROCS(0)
	}
	opt.Workers = min(opt.Workers, opt.Games)
	if opt.TickRate <= 0 {
		opt.TickRate = 60
	}
	if opt.Logger == nil {
		opt.Logger = log.New(io.Discard)
	}

	bar := pb.New(opt.Games)
	if opt.Progress != nil {
		bar.SetWriter(opt.Progress)
	} else {
		bar.SetWriter(io.Discard)
	}
	bar.Start()

	opt.Logger.Info("simulation started", "game", opt.GameID, "games", opt.Games, "workers", opt.Workers, "seed", opt.Seed)

	results := make([]GameResult, opt.Games)
	jobs := make(chan int)
	wg := new(sync.WaitGroup)
	wg.Add(opt.Workers)
	for w := 0; w < opt.Workers; w++ {
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = play(ctx, opt, i)
				bar.Increment()
			}
		}()
	}

	start := time.Now()
feed:
	for i := 0; i < opt.Games; i++ {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()
	bar.Finish()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("sim: interrupted: %w", err)
	}

	report := Summarize(opt.GameID, results)
	report.Duration = time.Since(start)
	opt.Logger.Info("simulation finished", "duration", report.Duration, "wins", report.Wins)
	return report, nil
}

// newGame builds a game for opt.GameID using opt.Config.
func newGame(opt Options) (*bubbles.Game, error) {
	g, err := registry.Create(opt.GameID)
	if err != nil {
		return nil, fmt.Errorf("sim: %w", err)
	}
	bg, ok := g.(*bubbles.Game)
	if !ok {
		return nil, fmt.Errorf("sim: %s cannot be autoplayed", opt.GameID)
	}
	return bg.WithConfig(opt.Config), nil
}

// play runs game i to completion with the bot.
func play(ctx context.Context, opt Options, i int) GameResult {
	seed := opt.Seed + int64(i)
	g, _ := newGame(opt) // checked in Run
	g.Reset(core.RuntimeConfig{
		ScreenW:  200,
		ScreenH:  200,
		TickRate: opt.TickRate,
		Seed:     seed,
	})

	bot := bubbles.Bot{Step: opt.BotStep}
	outcome := OutcomeTimeout
	for t := 0; t < opt.MaxTicks; t++ {
		if t%512 == 0 && ctx.Err() != nil {
			outcome = storage.OutcomeAborted
			break
		}
		st := g.Step(bot.Autoplay(g)).State
		if st.GameOver {
			outcome = storage.OutcomeDefeat
			if st.Won {
				outcome = storage.OutcomeWin
			}
			break
		}
	}

	r := GameResult{
		Index:   i,
		Seed:    seed,
		Outcome: outcome,
		Score:   g.State().Score,
		Stats:   g.Stats(),
		Ticks:   g.Tick(),
	}
	// Finished games tear their board down, so only timeouts have one to show.
	if outcome == OutcomeTimeout && opt.Logger.GetLevel() <= log.DebugLevel {
		opt.Logger.Debug("game timed out", "index", i, "seed", seed,
			"score", r.Score, "board", "\n"+grid.RenderASCII(g.Board()))
	} else {
		opt.Logger.Debug("game finished", "index", i, "seed", seed, "outcome", outcome, "score", r.Score)
	}
	return r
}
