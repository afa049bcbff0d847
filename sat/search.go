package sat

import "time"

// Solve runs an autonomous CDCL search under the given wall-clock budget. A
// negative budget means unbounded. It returns ResultSat when a model was
// found (retrievable with Model until the solver state changes), ResultUnsat
// when the formula has no model, and ResultTimeout when the budget elapsed
// first. The solver always ends at decision level 0 with its clause database
// and learnt clauses intact, so Solve can be called again -- typically after
// BlockModel -- to search for further models.
func (s *Solver) Solve(budget time.Duration) (Result, error) {
	if s.closed {
		return ResultTimeout, ErrClosed
	}

	s.startTime = time.Now()
	s.hasDeadline = budget >= 0
	s.deadline = s.startTime.Add(budget)

	// Open decisions from the incremental API are abandoned: the search owns
	// the full decision stack.
	s.cancelUntil(0)
	s.conflict = nil
	s.cursor = -1
	s.hasModel = false

	s.order = newVarOrder(s, s.NumVariables())
	s.order.phaseSaving = s.phaseSaving

	numConflicts := 100
	numLearnts := s.NumConstraints() / 3

	status := Unknown
	for status == Unknown {
		status = s.search(numConflicts, numLearnts)
		numConflicts += numConflicts / 10
		numLearnts += numLearnts / 20

		if s.shouldStop() {
			break
		}
	}

	s.cancelUntil(0)

	switch status {
	case True:
		return ResultSat, nil
	case False:
		return ResultUnsat, nil
	default:
		return ResultTimeout, nil
	}
}

func (s *Solver) shouldStop() bool {
	return s.hasDeadline && !time.Now().Before(s.deadline)
}

// search runs the conflict-driven search loop until a model is found, the
// formula is proven unsatisfiable, or nConflicts conflicts occurred (which
// triggers a restart). The learnt-clause database is reduced whenever it
// outgrows nLearnts.
func (s *Solver) search(nConflicts int, nLearnts int) LBool {
	if s.unsat {
		return False
	}

	s.TotalRestarts++
	conflictCount := 0

	for !s.shouldStop() {
		s.TotalIterations++

		if conflict := s.propagate(); conflict != nil {
			conflictCount++
			s.TotalConflicts++

			if s.DecisionLevel() == 0 {
				s.unsat = true
				return False
			}

			learntClause, backtrackLevel := s.analyze(conflict)
			s.cancelUntil(backtrackLevel)

			s.record(learntClause)

			s.decayClaActivity()
			s.decayVarActivity()

			continue
		}

		// No conflict.

		if s.DecisionLevel() == 0 {
			s.Simplify()
			if s.unsat {
				return False
			}
		}

		if len(s.learnts)-s.NumAssigns() >= nLearnts {
			s.reduceDB()
		}

		if s.NumAssigns() == s.NumVariables() {
			// Full assignment. Give the auxiliary propagator a chance to
			// veto it before declaring it a model. A veto clause is committed
			// at the root level so the search can never produce the vetoed
			// assignment again.
			if veto := s.checkAux(); veto != nil {
				s.cancelUntil(0)
				s.addClauseLits(veto)
				if s.unsat {
					return False
				}
				continue
			}

			s.saveModel()
			s.cancelUntil(0)
			return True
		}

		if conflictCount > nConflicts {
			s.cancelUntil(0)
			return Unknown
		}

		l := s.order.Select()
		s.assume(l)
	}

	return Unknown
}

func (s *Solver) saveModel() {
	if s.model == nil {
		s.model = make([]bool, s.NumVariables())
	}
	for s.NumVariables() > len(s.model) {
		s.model = append(s.model, false)
	}
	for i := range s.model {
		lb := s.VarValue(i)
		if lb == Unknown {
			panic("not a model")
		}
		s.model[i] = lb == True
	}
	s.hasModel = true
}
