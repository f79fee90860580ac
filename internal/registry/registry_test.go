package registry

import (
	"strings"
	"testing"

	"github.com/vovakirdan/bubblegrid/internal/core"
)

type stubGame struct{ id string }

func (s stubGame) ID() string                           { return s.id }
func (s stubGame) Title() string                        { return strings.ToUpper(s.id) }
func (s stubGame) Reset(core.RuntimeConfig)             {}
func (s stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (s stubGame) Render(*core.Screen)                  {}
func (s stubGame) State() core.GameState                { return core.GameState{} }
func (s stubGame) Controls() string                     { return "" }

func TestRegisterAndCreate(t *testing.T) {
	Register(Info{ID: "zz_stub_b", Title: "B"}, func() Game { return stubGame{"zz_stub_b"} })
	Register(Info{ID: "zz_stub_a", Title: "A", Description: "first"}, func() Game { return stubGame{"zz_stub_a"} })

	if !Exists("zz_stub_a") || Exists("zz_missing") {
		t.Error("Exists mismatch")
	}

	info, ok := Lookup("zz_stub_a")
	if !ok || info.Description != "first" {
		t.Errorf("Lookup = %+v, %v", info, ok)
	}

	g, err := Create("zz_stub_b")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if g.ID() != "zz_stub_b" {
		t.Errorf("Create returned %q", g.ID())
	}

	if _, err := Create("zz_missing"); err == nil {
		t.Error("Create of unknown id should fail")
	}

	list := List()
	ia, ib := -1, -1
	for i, in := range list {
		switch in.ID {
		case "zz_stub_a":
			ia = i
		case "zz_stub_b":
			ib = i
		}
	}
	if ia < 0 || ib < 0 || ia > ib {
		t.Errorf("List() should contain both stubs sorted by id: %+v", list)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register(Info{ID: "zz_dup"}, func() Game { return stubGame{"zz_dup"} })

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	Register(Info{ID: "zz_dup"}, func() Game { return stubGame{"zz_dup"} })
}

func TestRegisterEmptyPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("empty id should panic")
		}
	}()
	Register(Info{}, nil)
}
