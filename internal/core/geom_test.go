package core

import (
	"math"
	"testing"
)

func TestRectIntersects(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Rect
		expected bool
	}{
		{
			name:     "overlapping rects",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(5, 5, 10, 10),
			expected: true,
		},
		{
			name:     "non-overlapping horizontal",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(15, 0, 10, 10),
			expected: false,
		},
		{
			name:     "adjacent edges do not overlap",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(10, 0, 10, 10),
			expected: false,
		},
		{
			name:     "fractional overlap",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(9.9, 9.9, 10, 10),
			expected: true,
		},
		{
			name:     "player box inside obstacle",
			a:        RectAround(50, 50, 3),
			b:        NewRect(40, 40, 25, 15),
			expected: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Intersects(tc.b); got != tc.expected {
				t.Errorf("Intersects() = %v, expected %v", got, tc.expected)
			}
			if got := tc.b.Intersects(tc.a); got != tc.expected {
				t.Errorf("Intersects() (reversed) = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		x, y     float64
		expected bool
	}{
		{"inside", 15, 15, true},
		{"top-left corner", 10, 10, true},
		{"bottom-right edge (exclusive)", 30, 25, false},
		{"outside left", 9.5, 15, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Contains(tc.x, tc.y); got != tc.expected {
				t.Errorf("Contains(%v, %v) = %v, expected %v", tc.x, tc.y, got, tc.expected)
			}
		})
	}
}

func TestRectAroundAndCenter(t *testing.T) {
	r := RectAround(20, 30, 3)
	if r.X != 17 || r.Y != 27 || r.W != 6 || r.H != 6 {
		t.Errorf("RectAround() = %+v, expected {17 27 6 6}", r)
	}
	if c := r.Center(); c.X != 20 || c.Y != 30 {
		t.Errorf("Center() = %+v, expected {20 30}", c)
	}
}

func TestVecNormalize(t *testing.T) {
	v := Vec{X: 3, Y: 4}.Normalize()
	if math.Abs(v.Len()-1) > 1e-9 {
		t.Errorf("Normalize().Len() = %v, expected 1", v.Len())
	}
	if math.Abs(v.X-0.6) > 1e-9 || math.Abs(v.Y-0.8) > 1e-9 {
		t.Errorf("Normalize() = %+v, expected {0.6 0.8}", v)
	}

	zero := Vec{}.Normalize()
	if zero.X != 0 || zero.Y != 0 {
		t.Errorf("Normalize() of zero = %+v, expected zero", zero)
	}
}

func TestCirclesOverlap(t *testing.T) {
	tests := []struct {
		name     string
		dist     float64
		expected bool
	}{
		{"touching is not overlap", 5, false},
		{"just inside", 4.99, true},
		{"far apart", 20, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := CirclesOverlap(0, 0, 3, tc.dist, 0, 2); got != tc.expected {
				t.Errorf("CirclesOverlap() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
	}

	for _, tc := range tests {
		if got := Clamp(tc.val, tc.min, tc.max); got != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, got, tc.expected)
		}
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		val, min, max, expected float64
	}{
		{55.5, 0, 100, 55.5},
		{-0.1, 0, 100, 0},
		{100.4, 0, 100, 100},
	}

	for _, tc := range tests {
		if got := ClampF(tc.val, tc.min, tc.max); got != tc.expected {
			t.Errorf("ClampF(%f, %f, %f) = %f, expected %f", tc.val, tc.min, tc.max, got, tc.expected)
		}
	}
}

func TestLerp(t *testing.T) {
	if got := Lerp(0, 100, 0.1); math.Abs(got-10) > 1e-9 {
		t.Errorf("Lerp(0, 100, 0.1) = %v, expected 10", got)
	}
}
