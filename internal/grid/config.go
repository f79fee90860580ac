package grid

import (
	"errors"
	"fmt"
)

// Errors returned by grid operations. Callers match them with errors.Is.
var (
	ErrInvalidConfig = errors.New("invalid grid config")
	ErrOutOfBounds   = errors.New("position out of bounds")
	ErrOccupied      = errors.New("position occupied")
	ErrNoBullet      = errors.New("no pending bullet")
)

// Config holds the board dimensions and rules.
type Config struct {
	Columns      int   // Cells per row
	Rows         int   // Total rows, including the empty play area
	InitialRows  int   // Rows filled at Initialize
	MinMatch     int   // Smallest same-color cluster that pops
	DefaultColor Color // Bullet color when no colors remain on the board
}

// DefaultConfig returns the classic 10x24 board with five filled rows.
func DefaultConfig() Config {
	return Config{
		Columns:      10,
		Rows:         24,
		InitialRows:  5,
		MinMatch:     3,
		DefaultColor: ColorBlue,
	}
}

// Validate checks the config for values the grid cannot work with.
func (c Config) Validate() error {
	switch {
	case c.Columns <= 0:
		return fmt.Errorf("grid: columns must be positive, got %d: %w", c.Columns, ErrInvalidConfig)
	case c.Rows <= 0:
		return fmt.Errorf("grid: rows must be positive, got %d: %w", c.Rows, ErrInvalidConfig)
	case c.InitialRows < 0 || c.InitialRows >= c.Rows:
		return fmt.Errorf("grid: initial rows must be in [0,%d), got %d: %w", c.Rows, c.InitialRows, ErrInvalidConfig)
	case c.MinMatch < 1:
		return fmt.Errorf("grid: min match must be at least 1, got %d: %w", c.MinMatch, ErrInvalidConfig)
	case !c.DefaultColor.Valid():
		return fmt.Errorf("grid: default color %d is not a color: %w", c.DefaultColor, ErrInvalidConfig)
	}
	return nil
}

// Source is the random source the grid draws colors from.
// *math/rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
}
