// bubblegrid is a bubble shooter for the terminal.
//
// Usage:
//
//	bubblegrid list              - List game modes and puzzle layouts
//	bubblegrid play <mode>       - Play a mode
//	bubblegrid menu              - Pick modes interactively
//	bubblegrid scores <mode>     - Show high scores for a mode
//	bubblegrid sim               - Autoplay a batch of games and report
//	bubblegrid export <out.png>  - Draw a starting board as an image
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.bubblegrid/scores.db)
//	--config <path>       - Custom bubbles.yaml
//	--difficulty <preset> - easy, normal, hard or fixed
//	--log-level <level>   - debug, info, warn or error
//	--log-file <path>     - Log destination (default: ~/.bubblegrid/bubblegrid.log)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
	flagLogFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "bubblegrid",
	Short: "Bubblegrid - a bubble shooter in your terminal",
	Long: `Bubblegrid is a bubble shooter played on a hexagonal grid.
Aim the launcher, match three or more bubbles of one color to pop them,
and cut loose whatever hangs from them before the ceiling comes down.

Available commands:
  list     - Show game modes and puzzle layouts
  play     - Play a mode directly
  menu     - Interactive mode picker
  scores   - View high scores
  sim      - Autoplay a batch of games and print statistics
  export   - Render a starting board to PNG

Examples:
  bubblegrid play bubbles
  bubblegrid play bubbles_puzzle --layout pyramid
  bubblegrid menu --difficulty hard
  bubblegrid sim --games 500 --workers 8
  bubblegrid export board.png --layout checker`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.bubblegrid/scores.db", "Path to scores database")
	pf.StringVar(&flagConfig, "config", "", "Path to custom bubbles.yaml")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.StringVar(&flagLogFile, "log-file", "", "Log file (default ~/.bubblegrid/bubblegrid.log)")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(exportCmd)
}
