package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/bubblegrid/internal/registry"
	"github.com/vovakirdan/bubblegrid/internal/storage"
)

func TestClearScores(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	for _, id := range []string{"bubbles", "bubbles_endless"} {
		if _, err := store.SaveScore(id, 500); err != nil {
			t.Fatalf("SaveScore(%s) failed: %v", id, err)
		}
		if _, err := store.SaveResult(storage.Result{GameID: id, Outcome: storage.OutcomeWin, Score: 500}); err != nil {
			t.Fatalf("SaveResult(%s) failed: %v", id, err)
		}
	}

	var out bytes.Buffer
	info := registry.Info{ID: "bubbles", Title: "Bubbles"}
	if err := clearScores(&out, store, info); err != nil {
		t.Fatalf("clearScores() failed: %v", err)
	}
	if !strings.Contains(out.String(), "Bubbles") {
		t.Errorf("output %q does not name the mode", out.String())
	}

	tests := []struct {
		id   string
		want int
	}{
		{"bubbles", 0},
		{"bubbles_endless", 1},
	}
	for _, tt := range tests {
		scores, err := store.TopScores(tt.id, 10)
		if err != nil {
			t.Fatalf("TopScores(%s) failed: %v", tt.id, err)
		}
		if len(scores) != tt.want {
			t.Errorf("TopScores(%s) = %d rows, want %d", tt.id, len(scores), tt.want)
		}
		results, err := store.RecentResults(tt.id, 10)
		if err != nil {
			t.Fatalf("RecentResults(%s) failed: %v", tt.id, err)
		}
		if len(results) != tt.want {
			t.Errorf("RecentResults(%s) = %d rows, want %d", tt.id, len(results), tt.want)
		}
	}
}
