package sat

import "fmt"

// SwitchResult reports the outcome of a SwitchAssignment call.
type SwitchResult struct {
	Status Status

	// DecisionsExecuted is the number of assumptions processed after the
	// common prefix, including assumptions that were already implied and, on
	// inconsistency, the failing assumption itself.
	DecisionsExecuted int

	// PropagatedLiterals is the total number of literals added to the trail
	// while replaying, decisions included.
	PropagatedLiterals int
}

// AssignLiteral pushes the signed literal lit as a new decision and runs unit
// propagation. If lit is already assigned consistently the call is a no-op
// returning StatusOpen; if it is assigned inconsistently the call returns
// StatusConflict without touching the trail. The returned count is the number
// of literals this call added to the trail, the decision included.
//
// While a conflict from an earlier call is pending (neither learnt nor
// backtracked past), AssignLiteral refuses to decide and reports
// StatusConflict.
func (s *Solver) AssignLiteral(lit int) (Status, int, error) {
	if s.closed {
		return StatusOpen, 0, ErrClosed
	}
	if lit == 0 {
		return StatusOpen, 0, fmt.Errorf("%w: 0 is not a literal", ErrInvalidLiteral)
	}
	if s.conflict != nil {
		return StatusConflict, 0, nil
	}

	s.growTo(abs(lit) - 1)
	l := LitFromInt(lit)

	switch s.LitValue(l) {
	case True:
		return StatusOpen, 0, nil
	case False:
		return StatusConflict, 0, nil
	}

	mark := len(s.trail)
	s.assume(l)
	s.conflict = s.propagate()

	return s.statusAfterPropagate(), len(s.trail) - mark, nil
}

// SwitchAssignment replaces the current assumption sequence by the given one,
// reusing the work shared by both: the longest common prefix between the
// desired assumptions and the decision literals already on the trail is kept
// as-is, the remaining levels are backtracked, and only the suffix is
// replayed. If a replayed assumption is already forced to false, the call
// stops with StatusInconsistent without processing the remaining assumptions.
func (s *Solver) SwitchAssignment(assumptions []int) (SwitchResult, error) {
	if s.closed {
		return SwitchResult{}, ErrClosed
	}
	for _, a := range assumptions {
		if a == 0 {
			return SwitchResult{}, fmt.Errorf("%w: 0 is not a literal", ErrInvalidLiteral)
		}
	}

	// Longest common prefix between the desired assumptions and the decision
	// literals on the trail, compared in decision order.
	prefix := 0
	for prefix < len(assumptions) && prefix < s.DecisionLevel() {
		if s.trail[s.trailLim[prefix]].Int() != assumptions[prefix] {
			break
		}
		prefix++
	}

	if prefix == s.DecisionLevel() && s.conflict != nil {
		// Nothing to undo and the pending conflict still stands.
		return SwitchResult{Status: StatusConflict}, nil
	}

	s.cancelUntil(prefix)
	s.conflict = nil
	s.cursor = -1

	res := SwitchResult{}
	mark := len(s.trail)

	for _, a := range assumptions[prefix:] {
		s.growTo(abs(a) - 1)
		l := LitFromInt(a)
		res.DecisionsExecuted++

		switch s.LitValue(l) {
		case True:
			continue // already implied, nothing to replay
		case False:
			res.Status = StatusInconsistent
			res.PropagatedLiterals = len(s.trail) - mark
			return res, nil
		}

		s.assume(l)
		if s.conflict = s.propagate(); s.conflict != nil {
			res.Status = StatusConflict
			res.PropagatedLiterals = len(s.trail) - mark
			return res, nil
		}
	}

	res.Status = s.statusAfterPropagate()
	res.PropagatedLiterals = len(s.trail) - mark
	return res, nil
}

// Backtrack pops the given number of decision levels. It fails with
// ErrInvalidLevel when levels is negative or exceeds the current decision
// level -- most likely because the solver is already at level 0. A successful
// backtrack clears any pending conflict.
func (s *Solver) Backtrack(levels int) error {
	if s.closed {
		return ErrClosed
	}
	target := s.DecisionLevel() - levels
	if levels < 0 || target < 0 {
		return fmt.Errorf("%w: cannot backtrack %d levels from level %d", ErrInvalidLevel, levels, s.DecisionLevel())
	}

	s.cancelUntil(target)
	s.conflict = nil
	return nil
}

// LocationOfLevel returns the trail index of the first literal assigned at a
// level greater than the given one, i.e. the number of literals assigned at
// levels <= level.
func (s *Solver) LocationOfLevel(level int) (int, error) {
	if s.closed {
		return 0, ErrClosed
	}
	if level < 0 || level > s.DecisionLevel() {
		return 0, fmt.Errorf("%w: level %d not in [0, %d]", ErrInvalidLevel, level, s.DecisionLevel())
	}
	if level == s.DecisionLevel() {
		return len(s.trail), nil
	}
	return s.trailLim[level], nil
}

// RequestPropagationScope arms the propagation cursor at the start of the
// given decision level (0 covers the whole trail). Subsequent
// NextPropagatedLiteral calls yield the trail literals from there on, in
// assignment order. The cursor stays valid until the trail shrinks below it
// and can only be restarted by calling RequestPropagationScope again.
func (s *Solver) RequestPropagationScope(sinceLevel int) error {
	if s.closed {
		return ErrClosed
	}
	if sinceLevel < 0 || sinceLevel > s.DecisionLevel() {
		s.cursor = -1
		return fmt.Errorf("%w: level %d not in [0, %d]", ErrInvalidLevel, sinceLevel, s.DecisionLevel())
	}

	if sinceLevel == 0 {
		s.cursor = 0
	} else {
		s.cursor = s.trailLim[sinceLevel-1]
	}
	return nil
}

// NextPropagatedLiteral returns the next literal of the armed propagation
// scope in signed form, or 0 when the scope is exhausted (and on every call
// until a new scope is requested).
func (s *Solver) NextPropagatedLiteral() int {
	if s.closed {
		return 0
	}
	if s.cursor >= 0 && s.cursor < len(s.trail) {
		l := s.trail[s.cursor]
		s.cursor++
		return l.Int()
	}
	s.cursor = -1
	return 0
}

// TrailLocation returns the trail suffix starting at the given decision level
// (0 for the whole trail) in the solver's doubled literal encoding. This is
// the bulk counterpart of the propagation-scope cursor: callers index the
// returned slice directly instead of pulling literals one by one. The slice
// aliases the trail and is only valid until the next operation that changes
// the assignment.
func (s *Solver) TrailLocation(level int) ([]Literal, error) {
	if s.closed {
		return nil, ErrClosed
	}
	if level < 0 || level > s.DecisionLevel() {
		return nil, fmt.Errorf("%w: level %d not in [0, %d]", ErrInvalidLevel, level, s.DecisionLevel())
	}

	start := 0
	if level > 0 {
		start = s.trailLim[level-1]
	}
	return s.trail[start:len(s.trail):len(s.trail)], nil
}

// LearnClause derives a 1-UIP clause from the pending conflict, commits it to
// the clause database, backtracks to the asserting level, asserts the UIP
// literal, and re-propagates. The returned count is the number of literals
// the new clause implied, the asserted literal included. Calling LearnClause
// without a pending conflict fails with ErrInvalidState.
//
// A conflict at decision level 0 proves the formula unsatisfiable; in that
// case no clause is learnt and the call returns StatusConflict.
func (s *Solver) LearnClause() (Status, int, error) {
	if s.closed {
		return StatusOpen, 0, ErrClosed
	}
	if s.conflict == nil {
		return StatusOpen, 0, fmt.Errorf("%w: no pending conflict", ErrInvalidState)
	}

	if s.DecisionLevel() == 0 {
		s.unsat = true
		s.conflict = nil
		return StatusConflict, 0, nil
	}

	learnt, backtrackLevel := s.analyze(s.conflict)
	s.cancelUntil(backtrackLevel)
	s.conflict = nil
	s.cursor = -1

	mark := len(s.trail)
	s.record(learnt)
	s.conflict = s.propagate()

	return s.statusAfterPropagate(), len(s.trail) - mark, nil
}
