package core

import (
	"math"
	"testing"
)

func TestFromAngle(t *testing.T) {
	tests := []struct {
		name string
		deg  float64
		want Vec
	}{
		{"straight up", 0, Vec{X: 0, Y: -1}},
		{"right", 90, Vec{X: 1, Y: 0}},
		{"left", -90, Vec{X: -1, Y: 0}},
		{"diagonal", 45, Vec{X: math.Sqrt2 / 2, Y: -math.Sqrt2 / 2}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := FromAngle(tc.deg)
			if math.Abs(got.X-tc.want.X) > 1e-9 || math.Abs(got.Y-tc.want.Y) > 1e-9 {
				t.Errorf("FromAngle(%v) = %+v, expected %+v", tc.deg, got, tc.want)
			}
		})
	}
}

func TestVecOps(t *testing.T) {
	v := Vec{X: 1, Y: 2}.Add(Vec{X: 2, Y: 2}).Scale(2)
	if v != (Vec{X: 6, Y: 8}) {
		t.Errorf("Add/Scale = %+v, expected {6 8}", v)
	}
	if d := v.Dist2(Vec{}); d != 100 {
		t.Errorf("Dist2 = %v, expected 100", d)
	}
}

func TestRectEdges(t *testing.T) {
	r := Rect{X: 5, Y: 10, W: 20, H: 15}
	if r.Right() != 25 || r.Bottom() != 25 {
		t.Errorf("Right/Bottom = %d/%d, expected 25/25", r.Right(), r.Bottom())
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, lo, hi, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
		{0, 0, 10, 0},
		{10, 0, 10, 10},
	}
	for _, tc := range tests {
		if got := Clamp(tc.val, tc.lo, tc.hi); got != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.lo, tc.hi, got, tc.expected)
		}
	}

	if got := ClampF(95, -80, 80); got != 80 {
		t.Errorf("ClampF(95, -80, 80) = %v, expected 80", got)
	}
}

func TestInputFrame(t *testing.T) {
	f := InputOf(ActionFire, ActionLeft)
	if !f.Has(ActionFire) || !f.Has(ActionLeft) || f.Has(ActionRight) {
		t.Errorf("InputOf flags wrong: %v", f.Actions)
	}
	if f.Empty() {
		t.Error("frame with actions should not be empty")
	}
	f.Clear()
	if !f.Empty() {
		t.Error("cleared frame should be empty")
	}

	var zero InputFrame
	if zero.Has(ActionFire) {
		t.Error("zero frame should have no actions")
	}
	zero.Set(ActionPause)
	if !zero.Has(ActionPause) {
		t.Error("Set on zero frame should work")
	}
	if ActionFire.String() != "Fire" || Action(999).String() != "Unknown" {
		t.Error("Action.String mismatch")
	}
}
