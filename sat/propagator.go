package sat

// Assignment is the read-only view of the solver's current assignment given
// to auxiliary propagators.
type Assignment interface {
	// NumVariables returns the number of variables in the formula.
	NumVariables() int

	// Value returns the value assigned to the given variable (1..N).
	Value(variable int) bool
}

// Propagator is a hook for secondary constraint checkers that cannot be
// expressed as clauses up front, e.g. structure-specific consistency rules
// over a designated range of variables. The search consults the propagator
// whenever it reaches a full assignment: Check either accepts it by returning
// nil, or vetoes it by returning a clause (in signed literal form) that the
// assignment falsifies. The veto clause is committed to the clause database
// at the root level, so the search can never produce that assignment again.
type Propagator interface {
	Check(a Assignment) []int
}

// AttachPropagator installs the auxiliary propagator. Passing nil detaches
// the current one.
func (s *Solver) AttachPropagator(p Propagator) {
	s.aux = p
}

type assignmentView struct {
	s *Solver
}

func (v assignmentView) NumVariables() int {
	return v.s.NumVariables()
}

func (v assignmentView) Value(variable int) bool {
	return v.s.VarValue(variable-1) == True
}

// checkAux consults the auxiliary propagator on a full assignment. It returns
// nil when the assignment is accepted, and otherwise the vetoing clause's
// literals ready to be committed.
func (s *Solver) checkAux() []Literal {
	if s.aux == nil {
		return nil
	}

	veto := s.aux.Check(assignmentView{s})
	if len(veto) == 0 {
		return nil
	}

	lits := make([]Literal, len(veto))
	for i, v := range veto {
		lits[i] = LitFromInt(v)
	}
	return lits
}
