package constraint

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/pbmines/engine/pkg/geometry"
	"github.com/pbmines/engine/pkg/tile"
)

// System is a pseudo-boolean constraint system built from a board's
// current tile state. Its variables are the undetermined tiles, numbered
// 1..NbVars in the randomized order they were enumerated during Build.
type System struct {
	nbVars int
	varOf  map[geometry.Position]int
	posOf  []geometry.Position // index i holds the position of variable i+1
	lines  []string
}

// NbVars returns the number of boolean variables in the system (one per
// undetermined tile at build time).
func (s *System) NbVars() int { return s.nbVars }

// VarIndex returns the 1-indexed OPB variable number for pos, and whether
// pos was undetermined (and therefore a variable) at build time.
func (s *System) VarIndex(pos geometry.Position) (int, bool) {
	idx, ok := s.varOf[pos]
	return idx, ok
}

// PositionOf returns the position of the 1-indexed variable idx.
func (s *System) PositionOf(idx int) (geometry.Position, bool) {
	if idx < 1 || idx > len(s.posOf) {
		return geometry.Position{}, false
	}
	return s.posOf[idx-1], true
}

// OPB renders the system as pseudo-boolean competition format (OPB) text,
// suitable for github.com/crillab/gophersat/pb.ParseOPB.
func (s *System) OPB() string {
	var b strings.Builder
	fmt.Fprintf(&b, "* #variable= %d #constraint= %d\n", s.nbVars, len(s.lines))
	for _, line := range s.lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}

// term renders a single OPB term for variable idx with the given weight.
func term(weight, idx int) string {
	return fmt.Sprintf("%d x%d", weight, idx)
}

// Build translates store's current undetermined tiles and revealed
// boundary tiles into a System, per spec §4.3:
//
//   - a global constraint that the sum of undetermined mine-variables
//     equals totalMines minus the number of determined mines (omitted if
//     that remainder is zero);
//   - one adjacency constraint per revealed boundary tile that still has
//     at least one undetermined neighbor.
//
// The order undetermined variables and boundary tiles are enumerated in is
// shuffled by rng on every call — this randomized order is the mechanism
// by which repeated calls to the board's replaceMines produce varied mine
// layouts.
func Build(store *tile.Store, totalMines int, rng *rand.Rand) *System {
	undetermined := store.Filter(tile.Determined(false))
	rng.Shuffle(len(undetermined), func(i, j int) {
		undetermined[i], undetermined[j] = undetermined[j], undetermined[i]
	})

	sys := &System{
		nbVars: len(undetermined),
		varOf:  make(map[geometry.Position]int, len(undetermined)),
		posOf:  make([]geometry.Position, len(undetermined)),
	}
	for i, pos := range undetermined {
		sys.varOf[pos] = i + 1
		sys.posOf[i] = pos
	}

	numDeterminedMines := store.Count(tile.Determined(true).WithMine(true))
	numUndeterminedMines := totalMines - numDeterminedMines
	if numUndeterminedMines != 0 {
		terms := make([]string, len(undetermined))
		for i, pos := range undetermined {
			terms[i] = term(1, sys.varOf[pos])
		}
		sys.lines = append(sys.lines, fmt.Sprintf("%s = %d ;", strings.Join(terms, " +"), numUndeterminedMines))
	}

	revealedBoundary := store.Filter(tile.Revealed(true).WithOnBoundary(true))
	rng.Shuffle(len(revealedBoundary), func(i, j int) {
		revealedBoundary[i], revealedBoundary[j] = revealedBoundary[j], revealedBoundary[i]
	})

	for _, pos := range revealedBoundary {
		t := store.Get(pos)
		neighbors := store.Neighbors(pos)
		rng.Shuffle(len(neighbors), func(i, j int) {
			neighbors[i], neighbors[j] = neighbors[j], neighbors[i]
		})

		var undeterminedNeighbors []geometry.Position
		knownMineNeighbors := 0
		for _, n := range neighbors {
			nt := store.Get(n)
			if !nt.Determined {
				undeterminedNeighbors = append(undeterminedNeighbors, n)
				continue
			}
			if nt.Mine {
				knownMineNeighbors++
			}
		}
		if len(undeterminedNeighbors) == 0 {
			continue // every neighbor already locked: no constraint to add
		}

		terms := make([]string, len(undeterminedNeighbors))
		for i, n := range undeterminedNeighbors {
			terms[i] = term(1, sys.varOf[n])
		}
		rhs := *t.AdjacentMines - knownMineNeighbors
		sys.lines = append(sys.lines, fmt.Sprintf("%s = %d ;", strings.Join(terms, " +"), rhs))
	}

	return sys
}
