package export

import (
	"bytes"
	"image/png"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/bubblegrid/internal/grid"
)

func testGrid(t *testing.T) *grid.Grid {
	t.Helper()
	cfg := grid.DefaultConfig()
	cfg.Columns = 4
	cfg.Rows = 5
	cfg.InitialRows = 0
	g, err := grid.NewFromBoard(cfg, rand.New(rand.NewSource(1)), grid.Board{
		Cells: map[grid.Pos]grid.Color{
			grid.P(0, 0): grid.ColorRed,
			grid.P(1, 0): grid.ColorGreen,
		},
	})
	if err != nil {
		t.Fatalf("NewFromBoard: %v", err)
	}
	return g
}

func TestRender(t *testing.T) {
	g := testGrid(t)
	opt := Options{CellSize: 20}

	img, err := Render(g, opt)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	w, h := Size(g, opt)
	if b := img.Bounds(); b.Dx() != w || b.Dy() != h {
		t.Fatalf("bounds = %v, want %dx%d", b, w, h)
	}

	// (0,0) is on a shifted row: world x 0.5, pixel (2*20, 1*20)
	r, gr, b, _ := img.At(40, 20).RGBA()
	want := ColorOf(grid.ColorRed)
	if uint8(r>>8) != want.R || uint8(gr>>8) != want.G || uint8(b>>8) != want.B {
		t.Errorf("center of (0,0) = %d,%d,%d, want red", r>>8, gr>>8, b>>8)
	}

	titled := opt
	titled.Title = "Pyramid"
	if _, th := Size(g, titled); th != h+20 {
		t.Errorf("title height = %d, want %d", th, h+20)
	}
}

func TestRenderErrors(t *testing.T) {
	if _, err := Render(nil, DefaultOptions()); err == nil {
		t.Error("nil grid should fail")
	}
	if _, err := Render(testGrid(t), Options{CellSize: 1}); err == nil {
		t.Error("tiny cells should fail")
	}
}

func TestWriteAndSavePNG(t *testing.T) {
	g := testGrid(t)

	var buf bytes.Buffer
	if err := WritePNG(&buf, g, DefaultOptions()); err != nil {
		t.Fatalf("WritePNG: %v", err)
	}
	if _, err := png.Decode(&buf); err != nil {
		t.Fatalf("decode: %v", err)
	}

	path := filepath.Join(t.TempDir(), "board.png")
	if err := SavePNG(path, g, DefaultOptions()); err != nil {
		t.Fatalf("SavePNG: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatalf("DecodeConfig: %v", err)
	}
	if w, h := Size(g, DefaultOptions()); cfg.Width != w || cfg.Height != h {
		t.Errorf("saved %dx%d, want %dx%d", cfg.Width, cfg.Height, w, h)
	}
}
