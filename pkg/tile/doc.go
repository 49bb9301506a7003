// Package tile owns the per-cell mutable state of a board: the four
// boolean flags (mine, revealed, marked, determined), the adjacent-mine
// count, and a store that maps positions to tiles with filtered
// iteration.
package tile
