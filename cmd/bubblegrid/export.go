package main

import (
	"fmt"
	"math/rand"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/bubblegrid/internal/export"
	"github.com/vovakirdan/bubblegrid/internal/grid"
	"github.com/vovakirdan/bubblegrid/internal/layout"
)

var (
	flagExportLayout string
	flagExportCell   float64
	flagExportPlain  bool
)

var exportCmd = &cobra.Command{
	Use:   "export <out.png>",
	Short: "Render a starting board to PNG",
	Long: `Draw a board as an image: a puzzle layout when --layout is given,
otherwise the random opening board for --seed.

Examples:
  bubblegrid export pyramid.png --layout pyramid
  bubblegrid export opening.png --seed 42 --cell 48`,
	Args: cobra.ExactArgs(1),
	Run:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&flagExportLayout, "layout", "", "Layout id or file to draw")
	exportCmd.Flags().StringVar(&flagLayoutDir, "layout-dir", "", "Directory with extra puzzle layouts")
	exportCmd.Flags().Float64Var(&flagExportCell, "cell", export.DefaultOptions().CellSize, "Cell size in pixels")
	exportCmd.Flags().BoolVar(&flagExportPlain, "plain", false, "Omit color letters")
}

func runExport(cmd *cobra.Command, args []string) {
	out := args[0]

	cfg := loadConfig()
	gc, err := cfg.GridConfig()
	if err != nil {
		fail("%v", err)
	}
	s := seed()
	rng := rand.New(rand.NewSource(s))

	var (
		board *grid.Grid
		title string
	)
	if flagExportLayout != "" {
		l, err := layout.Find(flagExportLayout, flagLayoutDir)
		if err != nil {
			fail("%v", err)
		}
		if board, err = l.NewGrid(gc, rng); err != nil {
			fail("%v", err)
		}
		title = l.Name
	} else {
		if board, err = grid.New(gc, rng); err != nil {
			fail("%v", err)
		}
		title = fmt.Sprintf("seed %d", s)
	}

	opt := export.DefaultOptions()
	opt.CellSize = flagExportCell
	opt.Letters = !flagExportPlain
	opt.Title = title
	if err := export.SavePNG(out, board, opt); err != nil {
		fail("%v", err)
	}
	fmt.Printf("Wrote %s\n", out)
}
