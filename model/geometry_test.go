package model

import "testing"

func TestNewBBoxNormalizes(t *testing.T) {
	b := NewBBox(10, 20, 5, 8)
	if b.X0 != 5 || b.X1 != 10 || b.Y0 != 8 || b.Y1 != 20 {
		t.Errorf("expected normalized corners, got %+v", b)
	}
}

func TestBBoxDimensions(t *testing.T) {
	b := BBox{X0: 10, Y0: 20, X1: 40, Y1: 50}

	if got := b.Width(); got != 30 {
		t.Errorf("expected width 30, got %f", got)
	}
	if got := b.Height(); got != 30 {
		t.Errorf("expected height 30, got %f", got)
	}
	if got := b.CenterX(); got != 25 {
		t.Errorf("expected center x 25, got %f", got)
	}
	if got := b.CenterY(); got != 35 {
		t.Errorf("expected center y 35, got %f", got)
	}
	if got := b.Area(); got != 900 {
		t.Errorf("expected area 900, got %f", got)
	}
}

func TestBBoxUnion(t *testing.T) {
	a := BBox{X0: 10, Y0: 10, X1: 20, Y1: 20}
	b := BBox{X0: 15, Y0: 5, X1: 30, Y1: 18}

	u := a.Union(b)
	want := BBox{X0: 10, Y0: 5, X1: 30, Y1: 20}
	if u != want {
		t.Errorf("expected %+v, got %+v", want, u)
	}

	// union with an empty box returns the other box unchanged
	if got := (BBox{}).Union(a); got != a {
		t.Errorf("expected union with empty box to be %+v, got %+v", a, got)
	}
	if got := a.Union(BBox{}); got != a {
		t.Errorf("expected union with empty box to be %+v, got %+v", a, got)
	}
}

func TestBBoxHOverlap(t *testing.T) {
	a := BBox{X0: 0, X1: 10, Y1: 1}
	b := BBox{X0: 5, X1: 20, Y1: 1}

	if got := a.HOverlap(b); got != 5 {
		t.Errorf("expected overlap 5, got %f", got)
	}
	if got := b.HOverlap(a); got != 5 {
		t.Errorf("expected symmetric overlap 5, got %f", got)
	}

	c := BBox{X0: 50, X1: 60, Y1: 1}
	if got := a.HOverlap(c); got != 0 {
		t.Errorf("expected no overlap, got %f", got)
	}
}

func TestBBoxContains(t *testing.T) {
	b := BBox{X0: 10, Y0: 10, X1: 20, Y1: 20}
	if !b.Contains(15, 15) {
		t.Error("expected center point to be contained")
	}
	if b.Contains(5, 15) {
		t.Error("expected outside point not to be contained")
	}
}

func TestBBoxIntersects(t *testing.T) {
	a := BBox{X0: 0, Y0: 0, X1: 10, Y1: 10}
	b := BBox{X0: 5, Y0: 5, X1: 15, Y1: 15}
	c := BBox{X0: 20, Y0: 20, X1: 30, Y1: 30}

	if !a.Intersects(b) {
		t.Error("expected overlapping boxes to intersect")
	}
	if a.Intersects(c) {
		t.Error("expected disjoint boxes not to intersect")
	}
}
