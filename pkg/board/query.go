package board

import (
	"math/rand"
	"time"

	"github.com/pbmines/engine/pkg/geometry"
	"github.com/pbmines/engine/pkg/tile"
)

// Status returns the board's current lifecycle phase.
func (b *Board) Status() GameState { return b.status }

// Width returns the board's width.
func (b *Board) Width() int { return b.store.Width() }

// Height returns the board's height.
func (b *Board) Height() int { return b.store.Height() }

// TotalMines returns the configured mine count.
func (b *Board) TotalMines() int { return b.cfg.TotalMines }

// UnmarkedMines returns total_mines - count(marked), per spec §6. It may
// be negative if the player has over-marked.
func (b *Board) UnmarkedMines() int {
	marked := 0
	for _, p := range b.store.Positions() {
		if b.store.Get(p).Marked {
			marked++
		}
	}
	return b.cfg.TotalMines - marked
}

// Moves returns the number of mutating calls processed so far.
func (b *Board) Moves() int { return b.moves }

// PlayDuration returns end-start if the game has ended, now-start if it
// has started but not ended, or zero if it has not started.
func (b *Board) PlayDuration() time.Duration {
	if b.startTime.IsZero() {
		return 0
	}
	if !b.endTime.IsZero() {
		return b.endTime.Sub(b.startTime)
	}
	return time.Since(b.startTime)
}

// Tile returns the tile at pos, or nil if pos is out of bounds. The
// returned pointer aliases the board's own storage; callers must treat
// it as read-only.
func (b *Board) Tile(pos geometry.Position) *tile.Tile {
	return b.store.Get(pos)
}

// AllTiles returns every position on the board, row-major order.
func (b *Board) AllTiles() []geometry.Position {
	return b.store.Positions()
}

// Neighbors returns pos's in-bounds neighbors under the board's
// adjacency kind.
func (b *Board) Neighbors(pos geometry.Position) []geometry.Position {
	return b.store.Neighbors(pos)
}

// Cursor returns the externally tracked cursor position. The engine
// itself never moves the cursor; it is state front-ends may use.
func (b *Board) Cursor() geometry.Position { return b.cursor }

// SetCursor updates the externally tracked cursor position.
func (b *Board) SetCursor(pos geometry.Position) { b.cursor = pos }

// Clone returns a structural twin of b: an independent Board whose tile
// store, counters and timestamps are copied field by field, sharing no
// game state with the original. The logger and the Metrics instruments
// are shared, so reveals on the clone update the same counters. Used by
// callers implementing their
// own persistence/undo layer (spec §6 "Persistence boundary") and by the
// round-trip property test in board_test.go.
func (b *Board) Clone() *Board {
	clone := &Board{
		cfg:       b.cfg,
		store:     tile.NewStore(b.store.Width(), b.store.Height(), b.store.Kind()),
		status:    b.status,
		startTime: b.startTime,
		endTime:   b.endTime,
		moves:     b.moves,
		cursor:    b.cursor,
		rng:       rand.New(rand.NewSource(b.rng.Int63())),
		logger:    b.logger,
		metrics:   b.metrics,
	}
	for _, p := range b.store.Positions() {
		src := b.store.Get(p)
		dst := clone.store.Get(p)
		*dst = *src
		if src.AdjacentMines != nil {
			v := *src.AdjacentMines
			dst.AdjacentMines = &v
		}
	}
	return clone
}
