// SPDX-License-Identifier: Unlicense OR MIT

package f32

import "testing"

func TestPointInInclusive(t *testing.T) {
	sz := Pt(100, 50)
	tests := []struct {
		p    Point
		want bool
	}{
		{Pt(0, 0), true},
		{Pt(100, 50), true},
		{Pt(50, 25), true},
		{Pt(100.5, 25), false},
		{Pt(-0.1, 25), false},
		{Pt(50, 50.01), false},
	}
	for _, tc := range tests {
		if got := tc.p.In(sz); got != tc.want {
			t.Errorf("%v.In(%v) = %v, want %v", tc.p, sz, got, tc.want)
		}
	}
}

func TestAbuttingRectanglesShareEdge(t *testing.T) {
	left := Rect(0, 0, 100, 100)
	right := Rect(100, 0, 200, 100)
	edge := Pt(100, 40)
	if !left.Contains(edge) || !right.Contains(edge) {
		t.Errorf("edge point %v not contained in both %v and %v", edge, left, right)
	}
}

func TestScale(t *testing.T) {
	got := Pt(300, 200).Scale(Pt(0.5, 0.25))
	if want := Pt(150, 50); got != want {
		t.Errorf("Scale = %v, want %v", got, want)
	}
}

func TestRectangleIntersect(t *testing.T) {
	r := Rect(-5, 10, 50, 80).Intersect(Rect(0, 0, 40, 30))
	if want := Rect(0, 10, 40, 30); r != want {
		t.Errorf("Intersect = %v, want %v", r, want)
	}
	if r.Empty() {
		t.Errorf("%v reported empty", r)
	}
	if d := Rect(0, 0, 10, 10).Intersect(Rect(20, 0, 30, 10)); !d.Empty() {
		t.Errorf("disjoint intersection %v not empty", d)
	}
}

func TestRectangleAdd(t *testing.T) {
	if got, want := Rect(0, 0, 4, 2).Add(Pt(1, 3)), Rect(1, 3, 5, 5); got != want {
		t.Errorf("Add = %v, want %v", got, want)
	}
}
