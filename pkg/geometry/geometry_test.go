package geometry

import "testing"

func TestPositionString(t *testing.T) {
	p := Position{X: 3, Y: 5}
	if got := p.String(); got != "(3,5)" {
		t.Errorf("expected (3,5), got %s", got)
	}
}

func TestInBounds(t *testing.T) {
	tests := []struct {
		name     string
		p        Position
		expected bool
	}{
		{"origin", Position{0, 0}, true},
		{"bottom right", Position{2, 2}, true},
		{"negative x", Position{-1, 0}, false},
		{"negative y", Position{0, -1}, false},
		{"x too big", Position{3, 0}, false},
		{"y too big", Position{0, 3}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := InBounds(3, 3, tt.p); got != tt.expected {
				t.Errorf("InBounds(%v) = %v, want %v", tt.p, got, tt.expected)
			}
		})
	}
}

func TestNeighborsStandardCorner(t *testing.T) {
	neighbors := Neighbors(Standard, 3, 3, Position{0, 0})
	if len(neighbors) != 3 {
		t.Fatalf("expected 3 neighbors for corner, got %d: %v", len(neighbors), neighbors)
	}
	for _, n := range neighbors {
		if n == (Position{0, 0}) {
			t.Error("a tile must never be its own neighbor")
		}
	}
}

func TestNeighborsStandardCenter(t *testing.T) {
	neighbors := Neighbors(Standard, 3, 3, Position{1, 1})
	if len(neighbors) != 8 {
		t.Fatalf("expected 8 neighbors for center of 3x3, got %d", len(neighbors))
	}
}

func TestNeighborsKnight(t *testing.T) {
	neighbors := Neighbors(Knight, 5, 5, Position{2, 2})
	if len(neighbors) != 8 {
		t.Fatalf("expected 8 knight-move neighbors from center of 5x5, got %d", len(neighbors))
	}
	for _, n := range neighbors {
		dx, dy := n.X-2, n.Y-2
		if !((abs(dx) == 1 && abs(dy) == 2) || (abs(dx) == 2 && abs(dy) == 1)) {
			t.Errorf("neighbor %v is not a knight move from (2,2)", n)
		}
	}
}

func TestNeighborsKnightCorner(t *testing.T) {
	neighbors := Neighbors(Knight, 5, 5, Position{0, 0})
	if len(neighbors) != 2 {
		t.Fatalf("expected 2 knight-move neighbors from corner of 5x5, got %d: %v", len(neighbors), neighbors)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
