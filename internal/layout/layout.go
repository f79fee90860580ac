// Package layout loads hand-built starting boards from YAML.
//
// A layout lists its rows top to bottom as color letters (see grid.Color.Char);
// '.' or '_' marks an empty slot and spaces are ignored, so rows may be
// written with the hex stagger for readability:
//
//	id: pyramid
//	name: Pyramid
//	anchored_left: true
//	current: green
//	rows:
//	  - "N N N N N N N N N N"
//	  - ". U U U U U U U U ."
package layout

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/bubblegrid/internal/grid"
	"gopkg.in/yaml.v3"
)

// ValidationError reports why a layout cannot be used.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// YAMLLayout is the on-disk format.
type YAMLLayout struct {
	ID           string   `yaml:"id"`
	Name         string   `yaml:"name"`
	Description  string   `yaml:"description,omitempty"`
	AnchoredLeft bool     `yaml:"anchored_left"`
	Current      string   `yaml:"current,omitempty"`
	Next         string   `yaml:"next,omitempty"`
	Rows         []string `yaml:"rows"`
}

// Layout is a parsed board.
type Layout struct {
	ID           string
	Name         string
	Description  string
	Columns      int
	Height       int // number of rows the layout fills
	AnchoredLeft bool
	Cells        map[grid.Pos]grid.Color
	Current      *grid.Color
	Next         *grid.Color
	FilePath     string
}

// Parse decodes and checks a YAML layout.
func Parse(data []byte) (Layout, error) {
	var yl YAMLLayout
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Layout{}, fmt.Errorf("layout: yaml unmarshal: %w", err)
	}
	if yl.ID == "" {
		return Layout{}, ValidationError{Code: "MISSING_ID", Message: "layout has no id"}
	}
	if len(yl.Rows) == 0 {
		return Layout{}, ValidationError{Code: "EMPTY", Message: fmt.Sprintf("layout %s has no rows", yl.ID)}
	}

	l := Layout{
		ID:           yl.ID,
		Name:         yl.Name,
		Description:  yl.Description,
		Height:       len(yl.Rows),
		AnchoredLeft: yl.AnchoredLeft,
		Cells:        make(map[grid.Pos]grid.Color),
	}
	if l.Name == "" {
		l.Name = l.ID
	}

	for row, line := range yl.Rows {
		line = strings.ReplaceAll(line, " ", "")
		width := len([]rune(line))
		if row == 0 {
			l.Columns = width
		} else if width != l.Columns {
			return Layout{}, ValidationError{
				Code:    "RAGGED",
				Message: fmt.Sprintf("layout %s: row %d has %d cells, row 0 has %d", l.ID, row, width, l.Columns),
			}
		}
		for col, ch := range []rune(line) {
			if ch == '.' || ch == '_' {
				continue
			}
			c, ok := grid.ParseColor(string(ch))
			if !ok {
				return Layout{}, ValidationError{
					Code:    "BAD_CELL",
					Message: fmt.Sprintf("layout %s: unknown color %q at row %d col %d", l.ID, ch, row, col),
				}
			}
			l.Cells[grid.P(col, row)] = c
		}
	}

	var err error
	if l.Current, err = parseBullet(l.ID, "current", yl.Current); err != nil {
		return Layout{}, err
	}
	if l.Next, err = parseBullet(l.ID, "next", yl.Next); err != nil {
		return Layout{}, err
	}
	return l, nil
}

func parseBullet(id, field, s string) (*grid.Color, error) {
	if s == "" {
		return nil, nil
	}
	c, ok := grid.ParseColor(s)
	if !ok {
		return nil, ValidationError{
			Code:    "BAD_BULLET",
			Message: fmt.Sprintf("layout %s: unknown %s color %q", id, field, s),
		}
	}
	return &c, nil
}

// Validate checks that the layout fits cfg and that every cell hangs from
// the ceiling.
func (l Layout) Validate(cfg grid.Config) error {
	if l.Columns != cfg.Columns {
		return ValidationError{
			Code:    "WIDTH",
			Message: fmt.Sprintf("layout %s is %d columns wide, board has %d", l.ID, l.Columns, cfg.Columns),
		}
	}
	if l.Height >= cfg.Rows {
		return ValidationError{
			Code:    "HEIGHT",
			Message: fmt.Sprintf("layout %s fills %d rows, board has only %d", l.ID, l.Height, cfg.Rows),
		}
	}
	g, err := grid.NewFromBoard(cfg, zeroSource{}, l.Board())
	if err != nil {
		return fmt.Errorf("layout %s: %w", l.ID, err)
	}
	if f := g.FindFloatingCells(); len(f) > 0 {
		return ValidationError{
			Code:    "FLOATING",
			Message: fmt.Sprintf("layout %s: %d cells hang from nothing, first at %s", l.ID, len(f), f[0].Pos()),
		}
	}
	return nil
}

// Board converts the layout for grid.NewFromBoard.
func (l Layout) Board() grid.Board {
	cells := make(map[grid.Pos]grid.Color, len(l.Cells))
	for p, c := range l.Cells {
		cells[p] = c
	}
	return grid.Board{
		AnchoredLeft: l.AnchoredLeft,
		Cells:        cells,
		Current:      l.Current,
		Next:         l.Next,
	}
}

// NewGrid validates the layout against cfg and builds a grid from it.
func (l Layout) NewGrid(cfg grid.Config, rng grid.Source) (*grid.Grid, error) {
	if err := l.Validate(cfg); err != nil {
		return nil, err
	}
	return grid.NewFromBoard(cfg, rng, l.Board())
}

type zeroSource struct{}

func (zeroSource) Intn(int) int { return 0 }
