// Package geometry holds the board's coordinate system: positions, bounds
// checking, and the two adjacency kinds (Standard, Knight) the engine
// supports.
package geometry
