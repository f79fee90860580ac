// Package export draws boards as PNG images.
package export

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/vovakirdan/bubblegrid/internal/grid"
)

// Options controls the image layout.
type Options struct {
	CellSize float64 // pixels per cell; bubbles are drawn slightly smaller
	Title    string  // drawn above the board when set
	Letters  bool    // print each cell's color letter inside it
}

// DefaultOptions returns 32px cells with letters.
func DefaultOptions() Options {
	return Options{CellSize: 32, Letters: true}
}

var palette = [grid.ColorCount]color.RGBA{
	grid.ColorBrown:  {0x8b, 0x5a, 0x2b, 0xff},
	grid.ColorViolet: {0x8a, 0x2b, 0xe2, 0xff},
	grid.ColorRust:   {0xb7, 0x41, 0x0e, 0xff},
	grid.ColorRed:    {0xdc, 0x14, 0x3c, 0xff},
	grid.ColorBlue:   {0x1e, 0x90, 0xff, 0xff},
	grid.ColorGreen:  {0x32, 0xcd, 0x32, 0xff},
}

var (
	background = color.RGBA{0x1c, 0x1c, 0x24, 0xff}
	slotColor  = color.RGBA{0x30, 0x30, 0x3c, 0xff}
	textColor  = color.RGBA{0xee, 0xee, 0xee, 0xff}
)

// ColorOf returns the fill used for c.
func ColorOf(c grid.Color) color.RGBA {
	if !c.Valid() {
		return textColor
	}
	return palette[c]
}

// Size returns the image dimensions Render produces for g.
func Size(g *grid.Grid, opt Options) (w, h int) {
	header := 0.0
	if opt.Title != "" {
		header = opt.CellSize
	}
	// one cell of margin on each side, plus a bullet row below the board
	w = int((g.Width() + 3) * opt.CellSize)
	h = int(header + float64(g.Rows()+3)*opt.CellSize)
	return w, h
}

// Render draws g: occupied slots as colored bubbles, empty ones as faint
// rings, and the current and next bullets under the board.
func Render(g *grid.Grid, opt Options) (image.Image, error) {
	if g == nil {
		return nil, errors.New("export: nil grid")
	}
	if opt.CellSize < 4 {
		return nil, fmt.Errorf("export: cell size %.1f is too small", opt.CellSize)
	}

	w, h := Size(g, opt)
	dc := gg.NewContext(w, h)
	dc.SetColor(background)
	dc.Clear()

	face, err := newFace(opt.CellSize * 0.45)
	if err != nil {
		return nil, err
	}
	dc.SetFontFace(face)

	top := 0.0
	if opt.Title != "" {
		dc.SetColor(textColor)
		dc.DrawStringAnchored(opt.Title, float64(w)/2, opt.CellSize/2, 0.5, 0.5)
		top = opt.CellSize
	}

	toPixel := func(x, y float64) (float64, float64) {
		return (x + 1.5) * opt.CellSize, top + (y+1)*opt.CellSize
	}
	radius := opt.CellSize * 0.45

	for row := 0; row < g.Rows(); row++ {
		for col := 0; col < g.Columns(); col++ {
			p := grid.P(col, row)
			px, py := toPixel(g.CellCenter(p))
			c, ok := g.At(p)
			if !ok {
				dc.SetColor(slotColor)
				dc.SetLineWidth(1)
				dc.DrawCircle(px, py, radius)
				dc.Stroke()
				continue
			}
			drawBubble(dc, px, py, radius, c.Color(), opt.Letters)
		}
	}

	// bullets sit on the launcher row
	by := float64(g.Rows()) + 0.5
	if c, ok := g.CurrentBullet(); ok {
		px, py := toPixel(g.Width()/2, by)
		drawBubble(dc, px, py, radius, c.Color(), opt.Letters)
	}
	if c, ok := g.NextBullet(); ok {
		px, py := toPixel(g.Width()/2+2, by)
		drawBubble(dc, px, py, radius*0.7, c.Color(), false)
	}

	return dc.Image(), nil
}

func drawBubble(dc *gg.Context, x, y, r float64, c grid.Color, letter bool) {
	dc.SetColor(ColorOf(c))
	dc.DrawCircle(x, y, r)
	dc.Fill()
	if letter {
		dc.SetColor(textColor)
		dc.DrawStringAnchored(string(c.Char()), x, y, 0.5, 0.35)
	}
}

func newFace(size float64) (font.Face, error) {
	f, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("export: parse font: %w", err)
	}
	return truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}

// WritePNG renders g and encodes it to w.
func WritePNG(w io.Writer, g *grid.Grid, opt Options) error {
	img, err := Render(g, opt)
	if err != nil {
		return err
	}
	dc := gg.NewContextForImage(img)
	return dc.EncodePNG(w)
}

// SavePNG renders g into the file at path.
func SavePNG(path string, g *grid.Grid, opt Options) error {
	img, err := Render(g, opt)
	if err != nil {
		return err
	}
	if err := gg.SavePNG(path, img); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	return nil
}
