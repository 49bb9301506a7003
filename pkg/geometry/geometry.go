package geometry

import "fmt"

// Position is a cell coordinate on the board. The zero value is the
// top-left cell.
type Position struct {
	X int
	Y int
}

// String renders the position as "(x,y)".
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Kind selects which offsets count as adjacent to a cell.
type Kind string

const (
	// Standard is the usual eight-neighbor king-move adjacency.
	Standard Kind = "standard"
	// Knight is chess-knight-move adjacency.
	Knight Kind = "knight"
)

// offsets returns the (dx, dy) pairs that define adjacency for kind. The
// Standard set tolerates a degenerate (0,0) self-offset; Neighbors is
// responsible for never reporting a tile as its own neighbor regardless of
// how the offset set is built.
func offsets(kind Kind) [][2]int {
	switch kind {
	case Knight:
		return [][2]int{
			{1, 2}, {1, -2}, {-1, 2}, {-1, -2},
			{2, 1}, {2, -1}, {-2, 1}, {-2, -1},
		}
	default:
		return [][2]int{
			{-1, -1}, {-1, 0}, {-1, 1},
			{0, -1}, {0, 1},
			{1, -1}, {1, 0}, {1, 1},
		}
	}
}

// InBounds reports whether p lies within a width x height board.
func InBounds(width, height int, p Position) bool {
	return p.X >= 0 && p.X < width && p.Y >= 0 && p.Y < height
}

// Neighbors returns every position reachable from p via one adjacency
// offset that lands inside a width x height board. Order is randomized by
// nothing here — callers that need randomized order (the constraint
// builder) shuffle the result themselves, since most callers want stable
// order for iteration.
func Neighbors(kind Kind, width, height int, p Position) []Position {
	offs := offsets(kind)
	neighbors := make([]Position, 0, len(offs))
	for _, off := range offs {
		if off[0] == 0 && off[1] == 0 {
			continue // degenerate self-offset: never a neighbor of itself
		}
		n := Position{X: p.X + off[0], Y: p.Y + off[1]}
		if n == p {
			continue
		}
		if InBounds(width, height, n) {
			neighbors = append(neighbors, n)
		}
	}
	return neighbors
}
