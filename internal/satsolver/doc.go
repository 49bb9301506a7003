// Package satsolver adapts a constraint.System to a pseudo-boolean SAT
// backend. It is the only package that knows gophersat exists; the rest
// of the engine sees only Check/Model/CheckWith, so the backend is
// replaceable per spec §4.4.
package satsolver
