package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/bubblegrid/internal/config"
	"github.com/vovakirdan/bubblegrid/internal/core"
	"github.com/vovakirdan/bubblegrid/internal/games/bubbles"
	"github.com/vovakirdan/bubblegrid/internal/platform/tui"
	"github.com/vovakirdan/bubblegrid/internal/storage"
)

// fail prints an error the way every command reports one and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// runtimeConfig builds the runtime config from the terminal size and flags.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     seed(),
	}
}

func seed() int64 {
	if flagSeed != 0 {
		return flagSeed
	}
	return time.Now().UnixNano()
}

// preset parses --difficulty.
func preset() config.DifficultyPreset {
	p, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		fail("%v", err)
	}
	return p
}

// applyGameFlags hands the config flags to the game package before a game
// is created. An empty preset keeps the config file's difficulty.
func applyGameFlags(p config.DifficultyPreset) {
	bubbles.SetConfigPath(flagConfig)
	bubbles.SetDifficultyPreset(p)
}

// loadConfig reads --config and applies --difficulty for non-interactive
// commands.
func loadConfig() config.BubblesConfig {
	cfg, err := config.LoadBubbles(flagConfig)
	if err != nil {
		fail("%v", err)
	}
	if flagDifficulty != "" {
		config.ApplyBubblesPreset(&cfg, preset())
	}
	if err := cfg.Validate(); err != nil {
		fail("%v", err)
	}
	return cfg
}

// openStore opens the score database. Interactive play continues without
// one, so failures are only warned about.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("scores database unavailable", "path", flagDBPath, "err", err)
		return nil
	}
	return store
}

// fileLogger logs to --log-file, since the terminal belongs to the game
// while it runs. The returned closer is always safe to call.
func fileLogger() (*log.Logger, func()) {
	path := flagLogFile
	if path == "" {
		path = config.UserPath("bubblegrid.log")
	}

	var w io.Writer = io.Discard
	closer := func() {}
	if path != "" {
		f, err := tui.OpenLogFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		} else {
			w = f
			closer = func() { f.Close() }
		}
	}

	logger, err := tui.NewLogger(w, flagLogLevel)
	if err != nil {
		closer()
		fail("%v", err)
	}
	return logger, closer
}

// stderrLogger logs to stderr for commands that do not take over the screen.
func stderrLogger() *log.Logger {
	logger, err := tui.NewLogger(os.Stderr, flagLogLevel)
	if err != nil {
		fail("%v", err)
	}
	return logger
}
