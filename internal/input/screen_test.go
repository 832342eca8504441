package input

import "testing"

func TestScreenToGrid(t *testing.T) {
	cases := []struct {
		x, y   int
		gx, gy float64
	}{
		{0, 0, 0.5, 599.5},
		{0, 599, 0.5, 0.5},
		{750, 590, 750.5, 9.5},
	}
	for _, tc := range cases {
		gx, gy := ScreenToGrid(tc.x, tc.y, 600)
		if gx != tc.gx || gy != tc.gy {
			t.Fatalf("(%d,%d): expected (%v,%v), got (%v,%v)", tc.x, tc.y, tc.gx, tc.gy, gx, gy)
		}
	}
}

func TestScreenToGridMatchesLayout(t *testing.T) {
	l := testLayout(t)
	// the top-left window pixel sits in the header band
	if _, ok := l.Locate(ScreenToGrid(5, 5, 600)); ok {
		t.Fatalf("expected header pixel outside the grid")
	}
	// a pixel near the bottom-right corner lands in the last cell of the bottom row
	if i, ok := l.Locate(ScreenToGrid(797, 599, 600)); !ok || i != 3 {
		t.Fatalf("expected cell 3, got %d %v", i, ok)
	}
}
