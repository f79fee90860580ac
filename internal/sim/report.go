package sim

import (
	"sort"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/vovakirdan/bubblegrid/internal/storage"
)

var lang = language.English

// Summary describes one measured quantity across a batch.
type Summary struct {
	Mean   float64
	Std    float64
	Median float64
	P90    float64
	Min    float64
	Max    float64
}

// Describe computes a Summary. An empty sample gives the zero Summary.
func Describe(x []float64) Summary {
	if len(x) == 0 {
		return Summary{}
	}
	sorted := append([]float64(nil), x...)
	sort.Float64s(sorted)

	mean, std := stat.MeanStdDev(sorted, nil)
	if len(sorted) == 1 {
		std = 0
	}
	return Summary{
		Mean:   mean,
		Std:    std,
		Median: stat.Quantile(0.5, stat.Empirical, sorted, nil),
		P90:    stat.Quantile(0.9, stat.Empirical, sorted, nil),
		Min:    floats.Min(sorted),
		Max:    floats.Max(sorted),
	}
}

// Report is the outcome of a batch.
type Report struct {
	GameID   string
	Games    int
	Wins     int
	Defeats  int
	Timeouts int
	Score    Summary
	Shots    Summary
	Popped   Summary
	Dropped  Summary
	Ticks    Summary
	Duration time.Duration
	Results  []GameResult
}

// Summarize builds a report from per-game results.
func Summarize(gameID string, results []GameResult) *Report {
	r := &Report{GameID: gameID, Games: len(results), Results: results}

	var score, shots, popped, dropped, ticks []float64
	for _, g := range results {
		switch g.Outcome {
		case storage.OutcomeWin:
			r.Wins++
		case storage.OutcomeDefeat:
			r.Defeats++
		case OutcomeTimeout:
			r.Timeouts++
		}
		score = append(score, float64(g.Score))
		shots = append(shots, float64(g.Stats.Shots))
		popped = append(popped, float64(g.Stats.Popped))
		dropped = append(dropped, float64(g.Stats.Dropped))
		ticks = append(ticks, float64(g.Ticks))
	}

	r.Score = Describe(score)
	r.Shots = Describe(shots)
	r.Popped = Describe(popped)
	r.Dropped = Describe(dropped)
	r.Ticks = Describe(ticks)
	return r
}

// WinRate returns the fraction of games won.
func (r *Report) WinRate() float64 {
	if r.Games == 0 {
		return 0
	}
	return float64(r.Wins) / float64(r.Games)
}

// Format renders the report as a plain-text table.
func (r *Report) Format() string {
	p := message.NewPrinter(lang)

	keys := []string{
		"Mode", "Games", "Wins", "Defeats", "Timeouts", "Win rate",
		"Score mean ± std", "Score median / p90", "Score min / max",
		"Shots mean", "Popped mean", "Dropped mean", "Ticks mean", "Elapsed",
	}
	vals := map[string]string{
		"Mode":               r.GameID,
		"Games":              p.Sprintf("%d", r.Games),
		"Wins":               p.Sprintf("%d", r.Wins),
		"Defeats":            p.Sprintf("%d", r.Defeats),
		"Timeouts":           p.Sprintf("%d", r.Timeouts),
		"Win rate":           p.Sprintf("%.1f %%", 100*r.WinRate()),
		"Score mean ± std":   p.Sprintf("%.0f ± %.0f", r.Score.Mean, r.Score.Std),
		"Score median / p90": p.Sprintf("%.0f / %.0f", r.Score.Median, r.Score.P90),
		"Score min / max":    p.Sprintf("%.0f / %.0f", r.Score.Min, r.Score.Max),
		"Shots mean":         p.Sprintf("%.1f", r.Shots.Mean),
		"Popped mean":        p.Sprintf("%.1f", r.Popped.Mean),
		"Dropped mean":       p.Sprintf("%.1f", r.Dropped.Mean),
		"Ticks mean":         p.Sprintf("%.0f", r.Ticks.Mean),
		"Elapsed":            r.Duration.Round(time.Millisecond).String(),
	}
	return fmtTable("Simulation", keys, vals)
}

func fmtTable(title string, keys []string, vals map[string]string) string {
	keyW, valW := 0, 0
	for _, k := range keys {
		keyW = max(keyW, runewidth.StringWidth(k))
		valW = max(valW, runewidth.StringWidth(vals[k]))
	}
	keyW += 2
	valW += 2
	inner := keyW + valW + 1

	var sb strings.Builder
	top := "+" + strings.Repeat("-", inner) + "+\n"
	divider := "+" + strings.Repeat("-", keyW) + "+" + strings.Repeat("-", valW) + "+\n"

	left := (inner - runewidth.StringWidth(title)) / 2
	sb.WriteString(top)
	sb.WriteString("|" + runewidth.FillLeft("", left) + runewidth.FillRight(title, inner-left) + "|\n")
	sb.WriteString(divider)
	for _, k := range keys {
		sb.WriteString("| " + runewidth.FillRight(k, keyW-2) + " | " + runewidth.FillRight(vals[k], valW-2) + " |\n")
	}
	sb.WriteString(divider)
	return sb.String()
}
