package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/bubblegrid/internal/layout"
	"github.com/vovakirdan/bubblegrid/internal/registry"
)

var flagListLayoutDir string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List game modes and puzzle layouts",
	Long:  `Shows the registered game modes and the layouts puzzle mode plays.`,
	Run:   runList,
}

func init() {
	listCmd.Flags().StringVar(&flagListLayoutDir, "layout-dir", "", "Also list layouts from this directory")
}

func runList(cmd *cobra.Command, args []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No games available.")
		return
	}

	fmt.Println("Game modes:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")
	for _, g := range games {
		fmt.Printf("  %-*s  %s\n", maxIDLen, g.ID, g.Title)
	}

	layouts, err := layout.Builtin()
	if err != nil {
		fail("%v", err)
	}
	if flagListLayoutDir != "" {
		fromDir, err := layout.NewLoader(flagListLayoutDir).LoadAll()
		if err != nil {
			fail("%v", err)
		}
		layouts = append(fromDir, layouts...)
	}

	fmt.Println()
	fmt.Println("Puzzle layouts:")
	fmt.Println()
	maxIDLen = 2
	for _, l := range layouts {
		maxIDLen = max(maxIDLen, len(l.ID))
	}
	fmt.Printf("  %-*s  %-6s  %s\n", maxIDLen, "ID", "Rows", "Name")
	fmt.Printf("  %-*s  %-6s  %s\n", maxIDLen, "--", "----", "----")
	for _, l := range layouts {
		fmt.Printf("  %-*s  %-6d  %s\n", maxIDLen, l.ID, l.Height, l.Name)
	}

	fmt.Println()
	fmt.Println("Run 'bubblegrid play <id>' to play a mode.")
}
