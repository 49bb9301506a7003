package board

import (
	"testing"

	"github.com/pbmines/engine/internal/constraint"
	"github.com/pbmines/engine/internal/satsolver"
	"github.com/pbmines/engine/pkg/geometry"
)

func TestFirstRevealIsAlwaysSafe(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		b, err := New(Config{Width: 3, Height: 3, TotalMines: 1, Niceness: Cruel, Seed: seed})
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		b.Reveal(geometry.Position{X: 1, Y: 1})
		if b.Status() == Lost {
			t.Fatalf("seed %d: first reveal must never lose", seed)
		}
		tl := b.Tile(geometry.Position{X: 1, Y: 1})
		if tl.Mine {
			t.Fatalf("seed %d: first-revealed tile must not be a mine", seed)
		}
		if tl.AdjacentMines == nil || *tl.AdjacentMines != 1 {
			t.Fatalf("seed %d: (1,1) touches all 8 other cells and exactly 1 mine remains, want adjacent_mines=1, got %v", seed, tl.AdjacentMines)
		}
	}
}

func TestNormalModeLocksEntireLayoutAfterFirstReveal(t *testing.T) {
	b, err := New(Config{Width: 4, Height: 4, TotalMines: 3, Niceness: Normal, Seed: 1})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for _, p := range b.AllTiles() {
		if b.Tile(p).Determined {
			t.Fatalf("Normal mode must not pre-determine tiles before the first reveal; %v already was", p)
		}
	}

	b.Reveal(geometry.Position{X: 0, Y: 0})

	for _, p := range b.AllTiles() {
		if !b.Tile(p).Determined {
			t.Fatalf("Normal mode must determine every tile once the first reveal resolves; %v was not", p)
		}
	}
}

func TestNormalModeNeverRelocatesAfterFirstClick(t *testing.T) {
	b, err := New(Config{Width: 3, Height: 3, TotalMines: 2, Niceness: Normal, Seed: 7})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	b.Reveal(geometry.Position{X: 0, Y: 0}) // layout is now sampled and fully locked
	if b.Status() == Lost {
		t.Fatal("first reveal must never lose")
	}

	before := make(map[geometry.Position]bool)
	for _, p := range b.AllTiles() {
		before[p] = b.Tile(p).Mine
	}

	b.Reveal(geometry.Position{X: 2, Y: 2})

	for _, p := range b.AllTiles() {
		if before[p] != b.Tile(p).Mine {
			t.Fatalf("Normal mode must never relocate mines after the first reveal; %v changed", p)
		}
	}
}

// newFullyDeterminedBoard builds a board whose every tile is already
// Determined, so further reveals never touch the solver at all — used
// to test pure cascade/win-check mechanics without depending on gophersat's
// arbitrary choice for variables no constraint mentions.
func newFullyDeterminedBoard(t *testing.T, width, height, totalMines int) *Board {
	t.Helper()
	b, err := New(Config{Width: width, Height: height, TotalMines: totalMines, Niceness: Normal, Seed: 1})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	b.status = InProgress
	for _, p := range b.AllTiles() {
		b.Tile(p).Determined = true
	}
	return b
}

func TestCascadeOpensZeroMineBoardToWin(t *testing.T) {
	b := newFullyDeterminedBoard(t, 3, 3, 0)
	for _, p := range b.AllTiles() {
		b.Tile(p).Mine = false
	}

	b.Reveal(geometry.Position{X: 1, Y: 1})
	if b.Status() != Won {
		t.Fatalf("expected Won after cascading a mine-free board, got %s", b.Status())
	}
	for _, p := range b.AllTiles() {
		if !b.Tile(p).Revealed {
			t.Errorf("tile %v should have been revealed by cascade", p)
		}
	}
}

func TestCascadeIdempotentOnAlreadyRevealedTile(t *testing.T) {
	b := newFullyDeterminedBoard(t, 3, 3, 0)
	for _, p := range b.AllTiles() {
		b.Tile(p).Mine = false
	}
	pos := geometry.Position{X: 1, Y: 1}
	b.Reveal(pos)
	movesAfterFirst := b.Moves()
	statusAfterFirst := b.Status()

	b.Reveal(pos) // already revealed: spec says no-op
	if b.Status() != statusAfterFirst {
		t.Errorf("status changed on a no-op reveal: %s -> %s", statusAfterFirst, b.Status())
	}
	_ = movesAfterFirst // move counter on reveal no-ops is implementation-defined per spec §8.6
}

func TestScenarioEightMinesOnThreeByThreeWinsImmediately(t *testing.T) {
	for seed := int64(1); seed <= 10; seed++ {
		b, err := New(Config{Width: 3, Height: 3, TotalMines: 8, Niceness: Cruel, Seed: seed})
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		// The center touches all 8 other cells, so every mine is adjacent.
		b.Reveal(geometry.Position{X: 1, Y: 1})
		if b.Status() != Won {
			t.Fatalf("seed %d: expected Won, got %s", seed, b.Status())
		}
		tl := b.Tile(geometry.Position{X: 1, Y: 1})
		if tl.AdjacentMines == nil || *tl.AdjacentMines != 8 {
			t.Fatalf("seed %d: expected adjacent_mines=8, got %v", seed, tl.AdjacentMines)
		}
	}
}

func TestMarkTogglesAndCountsUnmarkedMines(t *testing.T) {
	b, err := New(Config{Width: 3, Height: 3, TotalMines: 2, Niceness: Normal, Seed: 1})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	b.Reveal(geometry.Position{X: 0, Y: 0}) // enters InProgress; first click can never lose
	if b.Status() != InProgress {
		t.Skip("the whole board was won by cascade for this seed, nothing left to mark")
	}

	pos := geometry.Position{X: 2, Y: 2}
	if b.Tile(pos).Revealed {
		t.Skip("chosen mark target was revealed by cascade for this seed")
	}

	b.Mark(pos)
	if !b.Tile(pos).Marked {
		t.Fatal("expected tile to be marked after Mark")
	}
	if got, want := b.UnmarkedMines(), b.TotalMines()-1; got != want {
		t.Errorf("UnmarkedMines() = %d, want %d", got, want)
	}

	b.Mark(pos)
	if b.Tile(pos).Marked {
		t.Fatal("expected Mark to toggle the flag back off")
	}
}

func TestMarkNoOpOnRevealedTile(t *testing.T) {
	b, err := New(Config{Width: 3, Height: 3, TotalMines: 0, Niceness: Normal, Seed: 1})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	pos := geometry.Position{X: 1, Y: 1}
	b.Reveal(pos)
	b.Mark(pos)
	if b.Tile(pos).Marked {
		t.Error("marking a revealed tile must be a no-op")
	}
}

func TestMarkAllTogglesUnrevealedUnmarkedNeighbors(t *testing.T) {
	b, err := New(Config{Width: 3, Height: 3, TotalMines: 0, Niceness: Normal, Seed: 3})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	// Force InProgress without revealing the center whose neighbors we mark.
	b.status = InProgress
	center := geometry.Position{X: 1, Y: 1}
	b.MarkAll(center)
	for _, n := range b.Neighbors(center) {
		if !b.Tile(n).Marked {
			t.Errorf("expected neighbor %v to be marked", n)
		}
	}
}

func TestNewGameResetsState(t *testing.T) {
	b, err := New(Config{Width: 3, Height: 3, TotalMines: 1, Niceness: Cruel, Seed: 1})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	b.Reveal(geometry.Position{X: 1, Y: 1})
	movesBefore := b.Moves()

	b.New()

	if b.Status() != NotStarted {
		t.Errorf("expected NotStarted after New(), got %s", b.Status())
	}
	if b.Moves() != movesBefore+1 {
		t.Errorf("expected move counter to increment by New(), got %d want %d", b.Moves(), movesBefore+1)
	}
	for _, p := range b.AllTiles() {
		tl := b.Tile(p)
		if tl.Revealed || tl.Marked || tl.Determined {
			t.Fatalf("tile %v was not fully reset: %+v", p, tl)
		}
	}
}

func TestPlayDurationZeroBeforeStart(t *testing.T) {
	b, err := New(Config{Width: 3, Height: 3, TotalMines: 1, Niceness: Normal, Seed: 1})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if d := b.PlayDuration(); d != 0 {
		t.Errorf("expected zero duration before the first reveal, got %v", d)
	}
}

func TestCloneIsIndependentStructuralTwin(t *testing.T) {
	b, err := New(Config{Width: 3, Height: 3, TotalMines: 1, Niceness: Cruel, Seed: 1})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	b.Reveal(geometry.Position{X: 1, Y: 1})

	clone := b.Clone()
	if clone.Status() != b.Status() {
		t.Fatalf("clone status mismatch: %s vs %s", clone.Status(), b.Status())
	}
	for _, p := range b.AllTiles() {
		orig, dup := b.Tile(p), clone.Tile(p)
		if orig.Mine != dup.Mine || orig.Revealed != dup.Revealed || orig.Determined != dup.Determined {
			t.Fatalf("tile %v diverged between clone and original", p)
		}
	}

	// Mutating the clone must not affect the original.
	clonePos := geometry.Position{X: 0, Y: 0}
	if !clone.Tile(clonePos).Revealed {
		clone.Reveal(clonePos)
		if b.Tile(clonePos).Revealed {
			t.Fatal("revealing on the clone leaked into the original board")
		}
	}
}

// TestConstraintSystemStaysSatisfiableThroughoutPlay drives a
// deterministic sequence of reveals and asserts the universal invariant
// from spec §8: after every action, the constraint system built from the
// current tile state is satisfiable (unless the game has already ended
// in a loss, which legitimately fixes the layout to one with a revealed
// mine).
func TestConstraintSystemStaysSatisfiableThroughoutPlay(t *testing.T) {
	b, err := New(Config{Width: 4, Height: 4, TotalMines: 3, Niceness: Fair, Seed: 42})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	positions := b.AllTiles()
	for _, p := range positions {
		b.Reveal(p)
		if b.Status() == Lost {
			break
		}
		sys := constraint.Build(b.store, b.TotalMines(), b.rng)
		status, err := satsolver.Check(sys)
		if err != nil {
			t.Fatalf("Check error: %v", err)
		}
		if status != satsolver.Sat {
			t.Fatalf("constraint system became UNSAT after revealing %v", p)
		}
		if b.Status() == Won {
			break
		}
	}
}

func TestDeterminedIsMonotonic(t *testing.T) {
	b, err := New(Config{Width: 4, Height: 4, TotalMines: 3, Niceness: Fair, Seed: 9})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	determinedSoFar := map[geometry.Position]bool{}

	for _, p := range b.AllTiles() {
		if b.Status() == Won || b.Status() == Lost {
			break
		}
		b.Reveal(p)
		for _, q := range b.AllTiles() {
			wasDetermined := determinedSoFar[q]
			isDetermined := b.Tile(q).Determined
			if wasDetermined && !isDetermined {
				t.Fatalf("tile %v lost its determined flag after revealing %v", q, p)
			}
			determinedSoFar[q] = isDetermined
		}
	}
}
