package board

import (
	"math/rand"
	"time"

	"github.com/go-logr/logr"
	"github.com/google/uuid"

	"github.com/pbmines/engine/internal/constraint"
	"github.com/pbmines/engine/internal/satsolver"
	"github.com/pbmines/engine/pkg/geometry"
	"github.com/pbmines/engine/pkg/tile"
)

// GameState is the lifecycle phase of a Board.
type GameState string

const (
	NotStarted GameState = "not_started"
	InProgress GameState = "in_progress"
	Won        GameState = "won"
	Lost       GameState = "lost"
)

// Board is the constraint-driven minesweeper engine. It owns a tile
// store exclusively; every mutation goes through its action-processor
// methods, which re-derive and re-solve the constraint system as needed.
// A Board is not safe for concurrent use — see spec §5.
type Board struct {
	cfg   Config
	store *tile.Store

	status    GameState
	startTime time.Time
	endTime   time.Time
	moves     int
	cursor    geometry.Position

	rng     *rand.Rand
	logger  logr.Logger
	metrics *Metrics
}

// New constructs a Board from cfg, validating it first. A freshly
// constructed board has every tile undetermined and is NotStarted — the
// first Reveal call both starts the clock and guarantees its own safety
// per spec §4.6 step 1.
//
// Normal mode locks its entire layout the moment the first reveal's
// safety override has resolved, not at construction: every tile starts
// undetermined like any other mode so the first-click override (which
// is unconditional, per spec §9) always has undetermined tiles left to
// redistribute its freed mine into. Locking any earlier would leave no
// undetermined tile to absorb that redistribution whenever the very
// first click happened to land on the sampled mine, driving the
// constraint system to a spurious UNSAT. See DESIGN.md.
func New(cfg Config) (*Board, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Adjacency == "" {
		cfg.Adjacency = geometry.Standard
	}
	if cfg.Niceness == "" {
		cfg.Niceness = Normal
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	logger := cfg.Logger
	if logger.GetSink() == nil {
		logger = logr.Discard()
	}

	b := &Board{
		cfg:     cfg,
		store:   tile.NewStore(cfg.Width, cfg.Height, cfg.Adjacency),
		status:  NotStarted,
		rng:     rand.New(rand.NewSource(seed)),
		logger:  logger,
		metrics: cfg.Metrics,
	}

	return b, nil
}

// New discards all tile state and starts a fresh game with the same
// configuration (spec §4.6 "New game").
func (b *Board) New() {
	b.status = NotStarted
	b.startTime = time.Time{}
	b.endTime = time.Time{}
	b.store.Reset()
	b.moves++
}

// buildID tags one build-check-model sequence for log correlation,
// mirroring the correlation IDs the teacher's controller attaches to a
// single reconcile pass.
func (b *Board) buildID() string { return uuid.NewString() }

// replaceMines samples a fresh, globally consistent mine layout: build
// the constraint system, require SAT, and copy the model onto every
// undetermined tile. Determined tiles are untouched. Panics with
// *InvariantViolation if the system is UNSAT, which can only happen if
// an invariant was already broken by a prior bug.
func (b *Board) replaceMines() error {
	id := b.buildID()
	log := b.logger.WithValues("buildID", id, "op", "replaceMines")
	b.incMetric(func(m *Metrics) { m.ReplaceMinesCalls.Inc() })

	start := time.Now()
	sys := constraint.Build(b.store, b.cfg.TotalMines, b.rng)
	model, err := satsolver.Model(sys)
	b.observeSolve(time.Since(start))
	if err != nil {
		log.Error(err, "constraint system unsatisfiable during replaceMines")
		panic(&InvariantViolation{Operation: "replaceMines", Detail: err.Error()})
	}

	for pos, isMine := range model {
		b.store.Get(pos).Mine = isMine
	}
	log.Info("replaced mines", "nbVars", sys.NbVars())
	return nil
}

// recalc locks every tile whose mine-ness is forced under every
// remaining model: for each undetermined tile, ask whether a model
// exists with it as a mine, then whether one exists with it safe; if
// either is impossible, the tile is determined. Per spec §4.5, scanning
// may be restricted to boundary tiles as a cost bound, but the two
// full-lock shortcuts (zero or all-remaining undetermined mines) must
// still lock every remaining tile.
func (b *Board) recalc() error {
	id := b.buildID()
	log := b.logger.WithValues("buildID", id, "op", "recalc")
	b.incMetric(func(m *Metrics) { m.RecalcCalls.Inc() })

	undetermined := b.store.Filter(tile.Determined(false))
	if len(undetermined) == 0 {
		return nil
	}

	numDeterminedMines := b.store.Count(tile.Determined(true).WithMine(true))
	numUndeterminedMines := b.cfg.TotalMines - numDeterminedMines
	if numUndeterminedMines == 0 || numUndeterminedMines == len(undetermined) {
		for _, p := range undetermined {
			b.store.Get(p).Determined = true
		}
		log.Info("recalc full-locked remaining tiles", "count", len(undetermined))
		return nil
	}

	scan := b.store.Filter(tile.Determined(false).WithOnBoundary(true))

	start := time.Now()
	sys := constraint.Build(b.store, b.cfg.TotalMines, b.rng)
	locked := 0
	for _, p := range scan {
		canBeMine, err := satsolver.CheckWith(sys, p, true)
		if err != nil {
			log.Error(err, "entailment check failed during recalc")
			panic(&InvariantViolation{Operation: "recalc", Detail: err.Error()})
		}
		if canBeMine == satsolver.Unsat {
			b.store.Get(p).Determined = true
			locked++
			continue
		}
		canBeSafe, err := satsolver.CheckWith(sys, p, false)
		if err != nil {
			log.Error(err, "entailment check failed during recalc")
			panic(&InvariantViolation{Operation: "recalc", Detail: err.Error()})
		}
		if canBeSafe == satsolver.Unsat {
			b.store.Get(p).Determined = true
			locked++
		}
	}
	b.observeSolve(time.Since(start))
	log.Info("recalc scan complete", "scanned", len(scan), "locked", locked)
	return nil
}

// Reveal opens the tile at pos, applying the niceness policy, first-click
// safety, cascading, and win/loss detection described in spec §4.6. It
// is a silent no-op if the game has ended or the tile is marked or
// already revealed.
func (b *Board) Reveal(pos geometry.Position) {
	b.reveal(pos, false)
}

// reveal is the shared implementation for Reveal and the per-neighbor
// calls RevealAll makes. cascade is true only for recursive reveals
// triggered by a zero-adjacency tile; cascade reveals bypass niceness
// entirely (spec §4.6 step 2, §9 "cascade re-entry").
func (b *Board) reveal(pos geometry.Position, cascade bool) {
	if b.status == Won || b.status == Lost {
		return
	}
	t := b.store.Get(pos)
	if t == nil || t.Marked || t.Revealed {
		return
	}

	b.moves++
	b.incMetric(func(m *Metrics) { m.Reveals.Inc() })
	if cascade {
		b.incMetric(func(m *Metrics) { m.CascadedReveals.Inc() })
	}

	changed := false
	wasFirstReveal := b.status == NotStarted

	switch {
	case b.status == NotStarted:
		// First reveal of the game: unconditional safety, independent
		// of niceness (spec §4.6 step 1, §9). changed is unconditionally
		// true here — the layout has not been sampled at all yet in
		// any mode, so replaceMines always needs to run.
		b.status = InProgress
		b.startTime = time.Now()
		t.Mine = false
		changed = true
		b.logger.Info("game started", "coords", pos, "niceness", b.cfg.Niceness)

	case !t.Determined && !cascade:
		changed = b.applyNiceness(t, pos)
	}

	t.Determined = true

	if changed {
		if err := b.replaceMines(); err != nil {
			panic(err)
		}
	}

	if wasFirstReveal && b.cfg.Niceness == Normal {
		// Traditional minesweeper: the layout is final the instant the
		// safe first click has resolved; no later reveal ever resamples it.
		for _, p := range b.store.Positions() {
			b.store.Get(p).Determined = true
		}
	}

	t.Revealed = true

	if t.Mine {
		b.status = Lost
		b.endTime = time.Now()
		b.logger.Info("mine hit, game over", "coords", pos, "moves", b.moves)
		return
	}

	count := 0
	for _, n := range b.store.Neighbors(pos) {
		if b.store.Get(n).Mine {
			count++
		}
	}
	t.AdjacentMines = &count

	if count == 0 {
		b.logger.Info("empty cell, triggering cascade", "coords", pos)
		b.revealAll(pos, true)
	}
	if !cascade {
		if err := b.recalc(); err != nil {
			panic(err)
		}
	}
	if b.isWin() {
		b.status = Won
		b.endTime = time.Now()
		b.logger.Info("game won", "moves", b.moves, "duration", b.PlayDuration())
	}
}

// applyNiceness implements the per-mode branching of spec §4.6 step 2.
// It mutates t.Mine in place when the policy forces a value and reports
// whether the flag actually flipped.
func (b *Board) applyNiceness(t *tile.Tile, pos geometry.Position) bool {
	safeMoves := b.store.Count(tile.Determined(true).WithMine(false).And(tile.Revealed(false))) > 0

	var boundaryMoves []geometry.Position
	for _, p := range b.store.Filter(tile.Revealed(false).WithOnBoundary(true)) {
		bt := b.store.Get(p)
		if bt.Determined && bt.Mine {
			continue
		}
		boundaryMoves = append(boundaryMoves, p)
	}
	isBoundaryMove := false
	for _, p := range boundaryMoves {
		if p == pos {
			isBoundaryMove = true
			break
		}
	}

	switch b.cfg.Niceness {
	case Nice:
		changed := t.Mine
		t.Mine = false
		return changed

	case Fair:
		if safeMoves {
			return false
		}
		if len(boundaryMoves) == 0 || isBoundaryMove {
			changed := t.Mine
			t.Mine = false
			return changed
		}
		return false

	case Cruel:
		if safeMoves {
			changed := !t.Mine
			t.Mine = true
			return changed
		}
		if len(boundaryMoves) == 0 || isBoundaryMove {
			changed := t.Mine
			t.Mine = false
			return changed
		}
		return false

	default: // Normal: every tile is Determined once the first reveal
		// resolves, so this branch is unreachable in practice; kept for safety.
		return false
	}
}

// Mark toggles the marked flag on pos if the game is in progress and the
// tile is unrevealed. It is a silent no-op otherwise.
func (b *Board) Mark(pos geometry.Position) {
	if b.status != InProgress {
		return
	}
	t := b.store.Get(pos)
	if t == nil || t.Revealed {
		return
	}
	t.Marked = !t.Marked
	b.moves++
}

// RevealAll reveals pos, then every unmarked neighbor of pos, each at
// the outermost (non-cascade) level — so niceness applies individually
// to every one of those reveals. It doubles as the cascade mechanism
// (invoked internally with cascade=true, which bypasses niceness for
// every neighbor) and as the front-end "chord" operation.
func (b *Board) RevealAll(pos geometry.Position) {
	b.revealAll(pos, false)
}

func (b *Board) revealAll(pos geometry.Position, cascade bool) {
	b.reveal(pos, false)
	for _, n := range b.store.Neighbors(pos) {
		if b.store.Get(n).Marked {
			continue
		}
		b.reveal(n, cascade)
	}
}

// MarkAll toggles the mark on every unrevealed, unmarked neighbor of pos.
func (b *Board) MarkAll(pos geometry.Position) {
	for _, n := range b.store.Neighbors(pos) {
		nt := b.store.Get(n)
		if !nt.Revealed && !nt.Marked {
			b.Mark(n)
		}
	}
}

func (b *Board) isWin() bool {
	for _, p := range b.store.Positions() {
		t := b.store.Get(p)
		if !t.Mine && !t.Revealed {
			return false
		}
	}
	return true
}
