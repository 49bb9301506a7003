package board

import "fmt"

// ConfigurationError reports invalid board construction parameters. It is
// returned by New, never panicked.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("board: invalid configuration: %s", e.Reason)
}

// InvariantViolation means the solver reported UNSAT where the engine
// requires SAT — the constraint system invariant (spec §3.3) has been
// corrupted. This is always a bug, never a reachable player-triggered
// state, so the engine panics with this type rather than threading an
// error return through every mutator.
type InvariantViolation struct {
	Operation string
	Detail    string
}

func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("board: invariant violation during %s: %s", e.Operation, e.Detail)
}
