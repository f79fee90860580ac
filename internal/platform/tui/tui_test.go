package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/bubblegrid/internal/config"
	"github.com/vovakirdan/bubblegrid/internal/core"
	"github.com/vovakirdan/bubblegrid/internal/games/bubbles"
	"github.com/vovakirdan/bubblegrid/internal/storage"
)

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		name   string
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{"left arrow", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft, false},
		{"right letter", keyRunes("d"), core.ActionRight, false},
		{"fine left", tea.KeyMsg{Type: tea.KeyShiftLeft}, core.ActionFineLeft, false},
		{"space fires", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionFire, false},
		{"pause", keyRunes("p"), core.ActionPause, false},
		{"restart", keyRunes("r"), core.ActionRestart, false},
		{"quit", keyRunes("q"), core.ActionQuit, true},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"unbound", keyRunes("z"), core.ActionNone, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, quit := km.MapKey(tt.msg)
			if action != tt.action || quit != tt.quit {
				t.Errorf("MapKey(%q) = %v, %v; want %v, %v", tt.msg.String(), action, quit, tt.action, tt.quit)
			}
		})
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		msg  tea.KeyMsg
		want MenuAction
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, MenuActionUp},
		{keyRunes("j"), MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyLeft}, MenuActionLeft},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionScoreboard},
		{tea.KeyMsg{Type: tea.KeyEsc}, MenuActionBack},
		{keyRunes("q"), MenuActionQuit},
	}
	for _, tt := range tests {
		if got := km.MapKeyToMenuAction(tt.msg); got != tt.want {
			t.Errorf("MapKeyToMenuAction(%q) = %v, want %v", tt.msg.String(), got, tt.want)
		}
	}
}

func TestMenuPresetCycles(t *testing.T) {
	m := NewMenuModel(nil, core.RuntimeConfig{ScreenW: 100, ScreenH: 30}, config.DifficultyHard)
	if m.Preset() != config.DifficultyHard {
		t.Fatalf("Preset() = %s, want hard", m.Preset())
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m = next.(MenuModel)
	if m.Preset() != config.DifficultyFixed {
		t.Errorf("after right: %s, want fixed", m.Preset())
	}
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m = next.(MenuModel)
	if m.Preset() != config.DifficultyEasy {
		t.Errorf("after wrap: %s, want easy", m.Preset())
	}

	if !strings.Contains(m.View(), "Bubbles") {
		t.Error("menu should list the bubbles modes")
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(MenuModel)
	if m.Selected() == nil || !strings.HasPrefix(m.Selected().GameID, "bubbles") {
		t.Errorf("Selected() = %+v", m.Selected())
	}
}

func TestModelRecordsResultOnce(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	cfg := config.DefaultBubblesConfig()
	cfg.Grid.Rows = 8
	cfg.Grid.InitialRows = 5
	cfg.Timing.DropInterval = 0.1
	game := bubbles.New().WithConfig(cfg)

	m := NewModel(game, store, nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 40, TickRate: 60, Seed: 3})
	m.Init()

	var model tea.Model = m
	for i := 0; i < 200; i++ {
		model, _ = model.Update(TickMsg{})
	}
	if !model.(Model).gameState.GameOver {
		t.Fatal("expected the ceiling to win")
	}

	results, err := store.RecentResults(game.ID(), 10)
	if err != nil {
		t.Fatalf("RecentResults: %v", err)
	}
	if len(results) != 1 || results[0].Outcome != storage.OutcomeDefeat || results[0].RowsAdded != 3 {
		t.Errorf("results = %+v", results)
	}
	if results[0].Seed != 3 {
		t.Errorf("seed = %d, want 3", results[0].Seed)
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(10, 2)
	s.DrawTextColored(0, 0, "hi", core.ColorRed)
	s.DrawText(0, 1, "there")

	out := RenderScreen(s)
	if !strings.Contains(out, "hi") || !strings.Contains(out, "there") {
		t.Errorf("RenderScreen lost text: %q", out)
	}
}
