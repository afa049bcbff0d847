package sat

import "errors"

// Status reports the solver state after an incremental operation. The values
// match the legacy in-process protocol so that thin bindings can pass them
// through unchanged.
type Status int8

const (
	// StatusInconsistent signals that an assumption literal contradicted an
	// already-forced value before any propagation took place.
	StatusInconsistent Status = -2

	// StatusConflict signals that propagation derived a falsified clause. The
	// trail is left as built; recover with Backtrack or LearnClause.
	StatusConflict Status = -1

	// StatusOpen means the operation completed and search may continue.
	StatusOpen Status = 0

	// StatusSat means every variable is assigned and no clause is falsified.
	StatusSat Status = 1
)

func (s Status) String() string {
	switch s {
	case StatusInconsistent:
		return "INCONSISTENT_ASSUMPTIONS"
	case StatusConflict:
		return "CONFLICT"
	case StatusOpen:
		return "OPEN"
	case StatusSat:
		return "SAT"
	default:
		return "UNKNOWN"
	}
}

// Result is the outcome of an autonomous Solve call.
type Result int8

const (
	ResultTimeout Result = iota
	ResultSat
	ResultUnsat
)

func (r Result) String() string {
	switch r {
	case ResultSat:
		return "SAT"
	case ResultUnsat:
		return "UNSAT"
	default:
		return "TIMEOUT"
	}
}

// TerminationReason explains why Enumerate stopped.
type TerminationReason int8

const (
	// Done means the search space is exhausted: every model was found.
	Done TerminationReason = iota

	// Limit means the requested maximum number of models was reached.
	Limit

	// Timeout means the wall-clock budget elapsed before exhaustion.
	Timeout
)

func (t TerminationReason) String() string {
	switch t {
	case Done:
		return "DONE"
	case Limit:
		return "LIMIT"
	default:
		return "TIMEOUT"
	}
}

var (
	// ErrClosed is returned by every operation on a closed solver.
	ErrClosed = errors.New("solver is closed")

	// ErrInvalidLevel is returned when a level argument falls outside
	// [0, DecisionLevel], e.g. backtracking below the root.
	ErrInvalidLevel = errors.New("level out of range")

	// ErrInvalidState is returned when an operation is called out of protocol
	// order, e.g. LearnClause without a pending conflict or Model without a
	// preceding SAT.
	ErrInvalidState = errors.New("operation invalid in current solver state")

	// ErrInvalidLiteral is returned when a signed literal cannot be decoded,
	// i.e. when it is zero in a context where zero is not the clause
	// terminator.
	ErrInvalidLiteral = errors.New("invalid literal")
)
