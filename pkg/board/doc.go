// Package board implements the constraint-driven minesweeper engine: a
// Board whose tiles stay undetermined until player actions, a niceness
// policy, and a pseudo-boolean solver make their mine-ness forced. See
// internal/constraint and internal/satsolver for the constraint layer
// this package drives on every reveal.
package board
