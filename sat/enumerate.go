package sat

import (
	"fmt"
	"time"
)

// Model returns the last model found by Solve as signed literals: for each
// variable 1..N, the variable itself when true and its negation when false.
// It fails with ErrInvalidState when no model is stored.
func (s *Solver) Model() ([]int, error) {
	if s.closed {
		return nil, ErrClosed
	}
	if !s.hasModel {
		return nil, fmt.Errorf("%w: no model", ErrInvalidState)
	}

	m := make([]int, len(s.model))
	for i, b := range s.model {
		if b {
			m[i] = i + 1
		} else {
			m[i] = -(i + 1)
		}
	}
	return m, nil
}

// ModelValue returns true if the signed literal lit is satisfied by the last
// model.
func (s *Solver) ModelValue(lit int) (bool, error) {
	if s.closed {
		return false, ErrClosed
	}
	if !s.hasModel {
		return false, fmt.Errorf("%w: no model", ErrInvalidState)
	}
	v := abs(lit) - 1
	if lit == 0 || v >= len(s.model) {
		return false, fmt.Errorf("%w: %d", ErrInvalidLiteral, lit)
	}
	return s.model[v] == (lit > 0), nil
}

// Models returns the models stored by Enumerate, one []bool per model indexed
// by zero-based variable.
func (s *Solver) Models() [][]bool {
	return s.models
}

// BlockModel commits the blocking clause of the last model: the disjunction
// of every variable's negated value. Adding it forbids exactly that model, so
// a later Solve finds a different one. BlockModel can be called standalone to
// drive a caller-side enumeration loop.
func (s *Solver) BlockModel() error {
	if s.closed {
		return ErrClosed
	}
	if !s.hasModel {
		return fmt.Errorf("%w: no model to block", ErrInvalidState)
	}
	if s.DecisionLevel() != 0 {
		return fmt.Errorf("%w: clauses can only be added at level 0", ErrInvalidState)
	}

	// Literals are flipped: !(a ^ b ^ c) corresponds to (!a v !b v !c).
	clause := make([]Literal, len(s.model))
	for v, b := range s.model {
		if b {
			clause[v] = s.negativeLiteral(v)
		} else {
			clause[v] = s.positiveLiteral(v)
		}
	}
	return s.addClauseLits(clause)
}

// Enumerate searches for up to maxModels models (no limit when maxModels <=
// 0) within the given wall-clock budget (unbounded when negative), blocking
// each model found before continuing. When store is true every model is also
// recorded and can be read back with Models. It returns the number of models
// found together with the reason enumeration stopped.
func (s *Solver) Enumerate(budget time.Duration, store bool, maxModels int) (int, TerminationReason, error) {
	if s.closed {
		return 0, Done, ErrClosed
	}

	deadline := time.Now().Add(budget)
	count := 0

	for {
		remaining := time.Duration(-1)
		if budget >= 0 {
			if remaining = time.Until(deadline); remaining < 0 {
				return count, Timeout, nil
			}
		}

		result, err := s.Solve(remaining)
		if err != nil {
			return count, Done, err
		}

		switch result {
		case ResultSat:
			count++
			if store {
				m := make([]bool, len(s.model))
				copy(m, s.model)
				s.models = append(s.models, m)
			}
			if err := s.BlockModel(); err != nil {
				return count, Done, err
			}
			if maxModels > 0 && count >= maxModels {
				return count, Limit, nil
			}
		case ResultUnsat:
			return count, Done, nil
		default:
			return count, Timeout, nil
		}
	}
}
