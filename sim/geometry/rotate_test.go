package geometry

import "testing"

func TestRotateXY_Identity(t *testing.T) {
	c := NewCoordinate(2, 1, 3)
	got := RotateXY(c, 0)
	if got != c {
		t.Errorf("rot=0: got %v, want %v", got, c)
	}
}

func TestRotateXY_90(t *testing.T) {
	c := NewCoordinate(1, 0, 3)
	got := RotateXY(c, 1)
	want := NewCoordinate(0, 1, 3)
	if got != want {
		t.Errorf("rot=1: got %v, want %v", got, want)
	}
}

func TestRotateXY_180(t *testing.T) {
	c := NewCoordinate(1, 2, 3)
	got := RotateXY(c, 2)
	want := NewCoordinate(-1, -2, 3)
	if got != want {
		t.Errorf("rot=2: got %v, want %v", got, want)
	}
}

func TestFlipX(t *testing.T) {
	c := NewCoordinate(3, 4, 5)
	got := FlipX(c)
	want := NewCoordinate(-3, 4, 5)
	if got != want {
		t.Errorf("FlipX: got %v, want %v", got, want)
	}
}
