// Package constraint translates a tile store's current state into a
// pseudo-boolean constraint system: one boolean variable per undetermined
// tile, a global mine-count constraint, and one adjacency constraint per
// revealed boundary tile. The system is emitted as OPB (pseudo-boolean
// competition format) text, the same textual shape gophersat's own solver
// produces when asked to describe itself — see internal/satsolver, which
// feeds this text back into gophersat.
package constraint
