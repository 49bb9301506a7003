package tile

import "github.com/pbmines/engine/pkg/geometry"

// Tile is the mutable state of a single cell. See spec §3 for the
// invariants governing these fields; Store never violates them internally,
// but it does not enforce them either — that is the action processor's
// job (pkg/board).
type Tile struct {
	// Mine is whether this tile currently holds a mine in the active
	// assignment. Meaningful only once Determined, or after the game has
	// ended; otherwise it is a transient sample refreshed by the board's
	// replaceMines.
	Mine bool

	// Revealed is true once the player has opened this tile. Never
	// reverts except via a full board reset.
	Revealed bool

	// Marked is the player's flag. Only toggles while the tile is
	// unrevealed.
	Marked bool

	// Determined is true once this tile's mine-ness is locked and will
	// never be resampled. Monotonic within a game.
	Determined bool

	// AdjacentMines is set exactly once, when a non-mine tile is first
	// revealed: the count of mines among its neighbors at that moment.
	// nil until then.
	AdjacentMines *int
}

// Store owns every tile on a board, indexed by position.
type Store struct {
	width  int
	height int
	kind   geometry.Kind
	cells  map[geometry.Position]*Tile
}

// NewStore allocates a width x height store of fresh, undetermined tiles.
func NewStore(width, height int, kind geometry.Kind) *Store {
	s := &Store{width: width, height: height, kind: kind}
	s.Reset()
	return s
}

// Reset discards all tile state and re-allocates every cell as fresh and
// undetermined. Used by Store construction and by the board's New().
func (s *Store) Reset() {
	cells := make(map[geometry.Position]*Tile, s.width*s.height)
	for y := 0; y < s.height; y++ {
		for x := 0; x < s.width; x++ {
			cells[geometry.Position{X: x, Y: y}] = &Tile{}
		}
	}
	s.cells = cells
}

// Width returns the store's width.
func (s *Store) Width() int { return s.width }

// Height returns the store's height.
func (s *Store) Height() int { return s.height }

// Kind returns the adjacency kind used for Neighbors/OnBoundary.
func (s *Store) Kind() geometry.Kind { return s.kind }

// Get returns the tile at p, or nil if p is out of bounds.
func (s *Store) Get(p geometry.Position) *Tile {
	return s.cells[p]
}

// Positions returns every position on the board, row-major order.
func (s *Store) Positions() []geometry.Position {
	positions := make([]geometry.Position, 0, len(s.cells))
	for y := 0; y < s.height; y++ {
		for x := 0; x < s.width; x++ {
			positions = append(positions, geometry.Position{X: x, Y: y})
		}
	}
	return positions
}

// Neighbors returns p's in-bounds neighbors under the store's adjacency
// kind.
func (s *Store) Neighbors(p geometry.Position) []geometry.Position {
	return geometry.Neighbors(s.kind, s.width, s.height, p)
}

// OnBoundary reports whether p has at least one neighbor whose Revealed
// flag differs from p's own. Computed on demand, never cached.
func (s *Store) OnBoundary(p geometry.Position) bool {
	t := s.Get(p)
	if t == nil {
		return false
	}
	for _, n := range s.Neighbors(p) {
		nt := s.Get(n)
		if nt != nil && nt.Revealed != t.Revealed {
			return true
		}
	}
	return false
}

// FilterOptions selects a subset of tiles by Store.Filter. A nil field
// means "don't care"; a non-nil field requires the tile's corresponding
// property to equal *field.
type FilterOptions struct {
	Revealed   *bool
	Determined *bool
	Mine       *bool
	OnBoundary *bool
}

func boolPtr(b bool) *bool { return &b }

// Revealed builds FilterOptions matching the given Revealed value.
func Revealed(v bool) FilterOptions { return FilterOptions{Revealed: boolPtr(v)} }

// Determined builds FilterOptions matching the given Determined value.
func Determined(v bool) FilterOptions { return FilterOptions{Determined: boolPtr(v)} }

// And returns the conjunction of o and other wherever either constrains a
// field; if both constrain the same field, other wins.
func (o FilterOptions) And(other FilterOptions) FilterOptions {
	merged := o
	if other.Revealed != nil {
		merged.Revealed = other.Revealed
	}
	if other.Determined != nil {
		merged.Determined = other.Determined
	}
	if other.Mine != nil {
		merged.Mine = other.Mine
	}
	if other.OnBoundary != nil {
		merged.OnBoundary = other.OnBoundary
	}
	return merged
}

// WithMine sets the Mine constraint on o.
func (o FilterOptions) WithMine(v bool) FilterOptions {
	o.Mine = boolPtr(v)
	return o
}

// WithOnBoundary sets the OnBoundary constraint on o.
func (o FilterOptions) WithOnBoundary(v bool) FilterOptions {
	o.OnBoundary = boolPtr(v)
	return o
}

// Filter returns every position whose tile matches every non-nil field of
// opts, in row-major order; callers needing randomized order (the
// constraint builder) shuffle the result.
func (s *Store) Filter(opts FilterOptions) []geometry.Position {
	var matches []geometry.Position
	for _, p := range s.Positions() {
		t := s.cells[p]
		if opts.Revealed != nil && t.Revealed != *opts.Revealed {
			continue
		}
		if opts.Determined != nil && t.Determined != *opts.Determined {
			continue
		}
		if opts.Mine != nil && t.Mine != *opts.Mine {
			continue
		}
		if opts.OnBoundary != nil && s.OnBoundary(p) != *opts.OnBoundary {
			continue
		}
		matches = append(matches, p)
	}
	return matches
}

// Count returns the number of tiles matching opts.
func (s *Store) Count(opts FilterOptions) int {
	return len(s.Filter(opts))
}
