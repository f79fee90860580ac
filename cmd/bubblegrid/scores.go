package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/bubblegrid/internal/registry"
	"github.com/vovakirdan/bubblegrid/internal/storage"
)

var (
	flagScoresLimit  int
	flagScoresRecent bool
	flagScoresClear  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores <mode>",
	Short: "Show high scores for a mode",
	Long: `Display the top high scores for the specified mode, or the most
recent games with --recent. --clear deletes the mode's scores and game
history.

Examples:
  bubblegrid scores bubbles
  bubblegrid scores bubbles_endless --limit 20
  bubblegrid scores bubbles_puzzle --recent
  bubblegrid scores bubbles --clear`,
	Args: cobra.ExactArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of rows to show")
	scoresCmd.Flags().BoolVar(&flagScoresRecent, "recent", false, "Show recent games instead of top scores")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all scores and results for the mode")
}

func runScores(cmd *cobra.Command, args []string) {
	gameID := args[0]

	info, ok := registry.Lookup(gameID)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'bubblegrid list' to see available modes.")
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening scores database: %v", err)
	}
	defer store.Close()

	if flagScoresClear {
		if err := clearScores(os.Stdout, store, info); err != nil {
			store.Close()
			fail("%v", err)
		}
		return
	}

	if flagScoresRecent {
		err = printRecent(store, info)
	} else {
		err = printTop(store, info)
	}
	if err != nil {
		store.Close()
		fail("retrieving scores: %v", err)
	}
}

func clearScores(w io.Writer, store *storage.Store, info registry.Info) error {
	if err := store.ClearScores(info.ID); err != nil {
		return err
	}
	fmt.Fprintf(w, "Cleared scores and game history for %s.\n", info.Title)
	return nil
}

func printTop(store *storage.Store, info registry.Info) error {
	scores, err := store.TopScores(info.ID, flagScoresLimit)
	if err != nil {
		return err
	}

	fmt.Printf("High Scores - %s\n", info.Title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'bubblegrid play %s' to set the first high score!\n", info.ID)
		return nil
	}

	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")
	for i, entry := range scores {
		fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.GetGameStats(info.ID)
	if err == nil && stats.GamesCount > 0 {
		fmt.Println()
		fmt.Printf("Best: %d   Games: %d   Wins: %d   Average: %.0f\n",
			stats.HighScore, stats.GamesCount, stats.Wins, stats.AvgScore)
	}
	return nil
}

func printRecent(store *storage.Store, info registry.Info) error {
	results, err := store.RecentResults(info.ID, flagScoresLimit)
	if err != nil {
		return err
	}

	fmt.Printf("Recent Games - %s\n", info.Title)
	fmt.Println()

	if len(results) == 0 {
		fmt.Println("No games recorded yet.")
		return nil
	}

	fmt.Printf("  %-8s  %-8s  %-5s  %-6s  %-7s  %s\n", "Outcome", "Score", "Shots", "Popped", "Dropped", "Date")
	fmt.Printf("  %-8s  %-8s  %-5s  %-6s  %-7s  %s\n", "-------", "-----", "-----", "------", "-------", "----")
	for _, r := range results {
		fmt.Printf("  %-8s  %-8d  %-5d  %-6d  %-7d  %s\n",
			r.Outcome, r.Score, r.Shots, r.Popped, r.Dropped, r.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}
