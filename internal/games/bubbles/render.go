package bubbles

import (
	"fmt"
	"math"

	"github.com/vovakirdan/bubblegrid/internal/core"
	"github.com/vovakirdan/bubblegrid/internal/grid"
)

const (
	bubbleRune = '●'
	popRune    = '*'
	guideRune  = '·'
	hudHeight  = 2
	minWidth   = 40
)

// cellColors maps board colors to screen colors.
var cellColors = [grid.ColorCount]core.Color{
	grid.ColorBrown:  core.ColorBrown,
	grid.ColorViolet: core.ColorViolet,
	grid.ColorRust:   core.ColorRust,
	grid.ColorRed:    core.ColorRed,
	grid.ColorBlue:   core.ColorBlue,
	grid.ColorGreen:  core.ColorGreen,
}

// ScreenColor returns the screen color used for a board color.
func ScreenColor(c grid.Color) core.Color {
	if !c.Valid() {
		return core.ColorDefault
	}
	return cellColors[c]
}

// boxSize is the board frame: two screen columns per cell plus the half-cell
// stagger, and one row per board row plus the launcher row.
func (g *Game) boxSize() (w, h int) {
	return g.board.Columns()*2 + 3, g.board.Rows() + 3
}

func (g *Game) requiredSize() (w, h int) {
	bw, bh := g.boxSize()
	return max(bw, minWidth), hudHeight + bh + 1
}

// Render draws the game to the screen buffer.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	boxW, boxH := g.boxSize()
	boxX := (dst.Width() - boxW) / 2
	boxY := hudHeight
	if boxX < 0 {
		boxX = 0
	}

	g.renderHUD(dst)
	g.renderBoard(dst, boxX, boxY, boxW, boxH)

	hint := "←/→ aim  space fire  p pause  q quit"
	dst.DrawTextCentered(boxY+boxH, hint, core.ColorGray)

	g.renderOverlays(dst, boxX+boxW/2, boxY+boxH/2)
}

func (g *Game) renderTooSmall(dst *core.Screen) {
	msg := "Window too small"
	y := dst.Height() / 2
	dst.DrawTextCentered(y, msg, core.ColorDefault)

	w, h := g.requiredSize()
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need %dx%d", w, h), core.ColorGray)
}

func (g *Game) renderHUD(dst *core.Screen) {
	title := g.Title()
	if name := g.LayoutName(); name != "" {
		title = fmt.Sprintf("%s: %d. %s", title, g.Level(), name)
	}
	x := dst.DrawTextColored(1, 0, title, core.ColorBrightWhite)
	score := fmt.Sprintf("Score: %d", g.score)
	if sx := dst.Width() - core.TextWidth(score) - 1; sx > x {
		dst.DrawTextColored(sx, 0, score, core.ColorYellow)
	}

	x = dst.DrawText(1, 1, "Next ")
	if next, ok := g.board.NextBullet(); ok {
		dst.SetColored(x, 1, bubbleRune, ScreenColor(next.Color()))
	}
	x += 3
	x = dst.DrawTextColored(x, 1, fmt.Sprintf("Shots %d", g.stats.Shots), core.ColorGray)

	left := g.DropCountdown()
	drop := fmt.Sprintf("Drop %.0fs", math.Ceil(left))
	color := core.ColorGray
	if g.dropWarning() {
		drop = fmt.Sprintf("DROP IN %.1f", left)
		color = core.ColorRed
	}
	if dx := dst.Width() - core.TextWidth(drop) - 1; dx > x+1 {
		dst.DrawTextColored(dx, 1, drop, color)
	}
}

// dropWarning reports whether the ceiling is about to come down.
func (g *Game) dropWarning() bool {
	return !g.gameOver && !g.levelClear && g.DropCountdown() <= g.cfg.Timing.WarningSeconds
}

// toScreen converts world coordinates to a screen cell inside the frame.
func toScreen(boxX, boxY int, x, y float64) (int, int) {
	return boxX + 1 + int(math.Round(x*2)), boxY + 1 + int(math.Round(y))
}

func (g *Game) renderBoard(dst *core.Screen, boxX, boxY, boxW, boxH int) {
	frame := core.ColorWhite
	if g.dropWarning() && (g.tick/15)%2 == 0 {
		frame = core.ColorRed
	}
	dst.DrawBox(core.Rect{X: boxX, Y: boxY, W: boxW, H: boxH}, frame)

	b := g.board
	last := b.Rows() - 1
	for col := 0; col < b.Columns(); col++ {
		p := grid.P(col, last)
		if b.IsEmpty(p) {
			x, y := b.CellCenter(p)
			sx, sy := toScreen(boxX, boxY, x, y)
			dst.SetColored(sx, sy, '-', core.ColorGray)
		}
	}

	for _, c := range b.Cells() {
		x, y := b.CellCenter(c.Pos())
		sx, sy := toScreen(boxX, boxY, x, y)
		dst.SetColored(sx, sy, bubbleRune, ScreenColor(c.Color()))
	}

	if g.flashLeft > 0 {
		for _, c := range g.lastTurn.Popped {
			x, y := b.CellCenter(c.Pos())
			sx, sy := toScreen(boxX, boxY, x, y)
			dst.SetColored(sx, sy, popRune, ScreenColor(c.Color()))
		}
	}

	if !g.gameOver && g.shot == nil {
		for _, pt := range tracePath(b, g.aim, 0.5, 10) {
			sx, sy := toScreen(boxX, boxY, pt.X, pt.Y)
			if dst.Get(sx, sy) == ' ' {
				dst.SetColored(sx, sy, guideRune, core.ColorGray)
			}
		}
	}

	if g.shot != nil {
		sx, sy := toScreen(boxX, boxY, g.shot.pos.X, g.shot.pos.Y)
		dst.SetColored(sx, sy, bubbleRune, ScreenColor(g.shot.color))
	}

	o := Origin(b)
	sx, sy := toScreen(boxX, boxY, o.X, o.Y)
	if cur, ok := b.CurrentBullet(); ok && g.shot == nil {
		dst.SetColored(sx, sy, bubbleRune, ScreenColor(cur.Color()))
	} else {
		dst.SetColored(sx, sy, '^', core.ColorGray)
	}
}

func (g *Game) renderOverlays(dst *core.Screen, centerX, centerY int) {
	switch {
	case g.won:
		g.drawOverlay(dst, centerX, centerY, core.ColorGreen,
			"YOU WIN!",
			fmt.Sprintf("Score: %d", g.score),
			"",
			"R to play again")
	case g.gameOver:
		g.drawOverlay(dst, centerX, centerY, core.ColorRed,
			"GAME OVER",
			fmt.Sprintf("Score: %d", g.score),
			"",
			"R to restart")
	case g.levelClear:
		g.drawOverlay(dst, centerX, centerY, core.ColorGreen,
			"BOARD CLEAR",
			fmt.Sprintf("Score: %d", g.score))
	case g.paused:
		g.drawOverlay(dst, centerX, centerY, core.ColorYellow,
			"PAUSED",
			"P to resume")
	}
}

func (g *Game) drawOverlay(dst *core.Screen, centerX, centerY int, color core.Color, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, core.TextWidth(line))
	}

	box := core.Rect{W: maxLen + 4, H: len(lines) + 2}
	box.X = centerX - box.W/2
	box.Y = centerY - box.H/2

	dst.FillRect(box)
	dst.DrawBox(box, color)
	for i, line := range lines {
		x := centerX - core.TextWidth(line)/2
		dst.DrawTextColored(x, box.Y+1+i, line, color)
	}
}
