package satsolver

import (
	"fmt"
	"strings"

	"github.com/crillab/gophersat/pb"
	"github.com/crillab/gophersat/solver"

	"github.com/pbmines/engine/internal/constraint"
	"github.com/pbmines/engine/pkg/geometry"
)

// Status is the outcome of a satisfiability check.
type Status int

const (
	// Unsat means no assignment satisfies the system.
	Unsat Status = iota
	// Sat means at least one assignment satisfies the system.
	Sat
)

func (s Status) String() string {
	if s == Sat {
		return "SAT"
	}
	return "UNSAT"
}

// Check reports whether sys is satisfiable.
func Check(sys *constraint.System) (Status, error) {
	_, status, err := solve(sys.OPB())
	return status, err
}

// Model extracts a satisfying assignment for every variable in sys. It
// returns an error if sys is not satisfiable.
func Model(sys *constraint.System) (map[geometry.Position]bool, error) {
	s, status, err := solve(sys.OPB())
	if err != nil {
		return nil, err
	}
	if status != Sat {
		return nil, fmt.Errorf("satsolver: Model called on an unsatisfiable system")
	}

	bits := s.Model()
	assignment := make(map[geometry.Position]bool, len(bits))
	for i, set := range bits {
		pos, ok := sys.PositionOf(i + 1) // gophersat vars are 0-indexed in Model()
		if !ok {
			continue
		}
		assignment[pos] = set
	}
	return assignment, nil
}

// CheckWith reports whether a satisfying assignment exists for sys in
// which pos is forced to value. It does not mutate sys: the forced
// literal is appended to a copy of sys's base OPB text and solved as a
// fresh problem, so the base constraint system is never lost.
func CheckWith(sys *constraint.System, pos geometry.Position, value bool) (Status, error) {
	idx, ok := sys.VarIndex(pos)
	if !ok {
		return Unsat, fmt.Errorf("satsolver: %v is not a variable of this constraint system", pos)
	}
	forced := 0
	if value {
		forced = 1
	}
	text := sys.OPB() + fmt.Sprintf("1 x%d = %d ;\n", idx, forced)
	_, status, err := solve(text)
	return status, err
}

// solve parses opb text into a gophersat pseudo-boolean problem and runs
// it to completion.
func solve(opb string) (*solver.Solver, Status, error) {
	problem, err := pb.ParseOPB(strings.NewReader(opb))
	if err != nil {
		return nil, Unsat, fmt.Errorf("satsolver: parse pseudo-boolean system: %w", err)
	}
	s := solver.New(problem)
	switch s.Solve() {
	case solver.Sat:
		return s, Sat, nil
	case solver.Unsat:
		return s, Unsat, nil
	default:
		return nil, Unsat, fmt.Errorf("satsolver: solver returned an indeterminate status")
	}
}
