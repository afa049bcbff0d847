package sat

import (
	"strings"
)

// Clause is a disjunction of literals stored in the clause database. Original
// and learned clauses share the same representation and propagate through the
// same watch lists.
type Clause struct {
	learnt   bool
	activity float64

	// The clause's literals. Must always contain at least two literals;
	// shorter clauses are handled at construction time.
	literals []Literal
}

// newClause builds a clause over the given literals and registers its
// watches. For original clauses it also removes duplicated and root-falsified
// literals and detects tautologies. The returned clause may be nil when the
// clause is absorbed (tautology, already satisfied, or unit); the boolean is
// false when the clause makes the formula unsatisfiable.
func newClause(s *Solver, literals []Literal, learnt bool) (*Clause, bool) {
	if !learnt {
		size := len(literals)
		seen := map[Literal]struct{}{}

		for i := size - 1; i >= 0; i-- {
			// If the opposite literal is in the clause, then the clause is
			// always true.
			if _, ok := seen[literals[i].Opposite()]; ok {
				return nil, true
			}

			// Remove the literal if it is already present.
			if _, ok := seen[literals[i]]; ok {
				size--
				literals[i], literals[size] = literals[size], literals[i]
			}

			seen[literals[i]] = struct{}{}

			switch s.LitValue(literals[i]) {
			case True:
				return nil, true // clause is always true
			case False:
				size--
				literals[i], literals[size] = literals[size], literals[i]
			}
		}

		literals = literals[:size]
	}

	switch len(literals) {
	case 0:
		// Empty clauses cannot be satisfied.
		return nil, false
	case 1:
		// Directly enqueue unit facts.
		return nil, s.enqueue(literals[0], nil)
	default:
		c := &Clause{literals: literals, learnt: learnt}

		if learnt {
			// Watch the literal assigned at the highest level so that the
			// clause wakes up as late as possible on backtracking.
			maxLevel := -1
			wl := -1
			for i := 1; i < len(c.literals); i++ {
				if level := s.level[c.literals[i].VarID()]; level > maxLevel {
					maxLevel = level
					wl = i
				}
			}
			c.literals[wl], c.literals[1] = c.literals[1], c.literals[wl]

			s.bumpClaActivity(c)
			for _, l := range c.literals {
				s.bumpVarActivity(l)
			}
		}

		s.watch(c, c.literals[0].Opposite(), c.literals[1])
		s.watch(c, c.literals[1].Opposite(), c.literals[0])

		return c, true
	}
}

// locked returns true if the clause is the reason of its first literal's
// assignment. Locked clauses must not be removed from the database.
func (c *Clause) locked(s *Solver) bool {
	return s.reason[c.literals[0].VarID()] == c
}

func (c *Clause) remove(s *Solver) {
	s.unwatch(c, c.literals[0].Opposite())
	s.unwatch(c, c.literals[1].Opposite())
}

// simplify returns true if the clause is satisfied at the root level. False
// literals are discarded in place.
func (c *Clause) simplify(s *Solver) bool {
	j := 0
	for i := 0; i < len(c.literals); i++ {
		switch s.LitValue(c.literals[i]) {
		case True:
			return true
		case False:
			// discard the literal
		case Unknown:
			c.literals[j] = c.literals[i]
			j++
		}
	}
	c.literals = c.literals[:j]
	return false
}

// propagate updates the clause's watches after literal l became true (i.e.
// one of the clause's literals became false). It returns false if the clause
// is conflicting under the current assignment.
func (c *Clause) propagate(s *Solver, l Literal) bool {
	// Make sure the false literal is c.literals[1].
	opp := l.Opposite()
	if c.literals[0] == opp {
		c.literals[0] = c.literals[1]
		c.literals[1] = opp
	}

	// If c.literals[0] is true, then the clause is already satisfied.
	if s.LitValue(c.literals[0]) == True {
		s.watch(c, l, c.literals[0])
		return true
	}

	// Look for a new literal to watch.
	for i := 2; i < len(c.literals); i++ {
		if s.LitValue(c.literals[i]) != False {
			c.literals[1] = c.literals[i]
			c.literals[i] = opp
			s.watch(c, c.literals[1].Opposite(), c.literals[0])
			return true
		}
	}

	// The first literal must be true if all other literals are false.
	s.watch(c, l, c.literals[0])
	return s.enqueue(c.literals[0], c)
}

// explainFailure returns the literals to resolve on when the clause is the
// conflicting clause.
func (c *Clause) explainFailure(s *Solver) []Literal {
	s.tmpReason = s.tmpReason[:0]
	for _, l := range c.literals {
		s.tmpReason = append(s.tmpReason, l.Opposite())
	}
	if c.learnt {
		s.bumpClaActivity(c)
	}
	return s.tmpReason
}

// explainAssign returns the literals that forced the clause's first literal.
func (c *Clause) explainAssign(s *Solver) []Literal {
	s.tmpReason = s.tmpReason[:0]
	for i := 1; i < len(c.literals); i++ {
		s.tmpReason = append(s.tmpReason, c.literals[i].Opposite())
	}
	if c.learnt {
		s.bumpClaActivity(c)
	}
	return s.tmpReason
}

func (c *Clause) String() string {
	if len(c.literals) == 0 {
		return "Clause[]"
	}
	sb := strings.Builder{}
	sb.WriteString("Clause[")
	sb.WriteString(c.literals[0].String())
	for _, l := range c.literals[1:] {
		sb.WriteByte(' ')
		sb.WriteString(l.String())
	}
	sb.WriteByte(']')
	return sb.String()
}
