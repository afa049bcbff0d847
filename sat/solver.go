// Package sat implements an incremental CDCL SAT solver designed to be
// driven interactively: callers can push single decisions, inspect the
// propagations they trigger, switch between assumption sets while reusing the
// shared trail prefix, learn clauses from conflicts, and enumerate models
// under a wall-clock budget. A thin binding layer can expose the package
// as-is: all literals cross the API as signed integers (variable 1..N,
// negative for negation, zero terminates a clause).
package sat

import (
	"fmt"
	"sort"
	"time"
)

// Solver holds the clause database, the trail, and the search state of one
// problem instance. A Solver is not safe for concurrent use; independent
// instances are fully isolated from each other.
type Solver struct {
	// Clause database.
	constraints []*Clause
	learnts     []*Clause
	clauseInc   float64
	clauseDecay float64

	// Clause under construction (AddLiteral buffer).
	building []Literal

	// Variable ordering.
	activities  []float64
	varInc      float64
	varDecay    float64
	order       *varOrder
	phaseSaving bool

	// Propagation and watchers.
	watchers  [][]watcher
	propQueue *queue[Literal]

	// Value assigned to each literal.
	assigns []LBool

	// Trail.
	trail    []Literal
	trailLim []int
	reason   []*Clause
	level    []int

	// Whether the problem has reached a top level conflict.
	unsat bool

	// Conflicting clause left by the last propagation, nil when none. Cleared
	// by Backtrack and consumed by LearnClause.
	conflict *Clause

	// Propagation-scope cursor into the trail, -1 when unarmed.
	cursor int

	// Last model found and stored models (see Enumerate).
	model    []bool
	hasModel bool
	models   [][]bool

	closed bool

	// Options the solver was constructed with.
	opts Options

	// Auxiliary propagator consulted on full assignments.
	aux Propagator

	// Search statistics.
	TotalConflicts  int64
	TotalRestarts   int64
	TotalIterations int64

	// Wall-clock budget of the current Solve call.
	startTime   time.Time
	deadline    time.Time
	hasDeadline bool

	// Shared by operations that need to put variables in a set and empty that
	// set efficiently.
	seenVar *resetSet

	// Temporary slices re-used across propagate and analyze calls to avoid
	// re-allocating them.
	tmpWatchers []watcher
	tmpLearnts  []Literal
	tmpReason   []Literal
}

// watcher represents a clause attached to the watch list of a literal.
type watcher struct {
	// The watching clause to be propagated when the watched literal becomes
	// true.
	clause *Clause

	// Guard is one of the clause's literals. If it is true, then there is
	// no need to propagate the clause. The guard literal must be different
	// from the watcher literal.
	guard Literal
}

// Options configures a Solver. The zero value is not usable; start from
// DefaultOptions.
type Options struct {
	// Variables is the number of variables created up front. More variables
	// are created on demand when clauses or assignments mention them.
	Variables int

	ClauseDecay   float64
	VariableDecay float64
	PhaseSaving   bool

	// Knobs forwarded to auxiliary propagators. The core itself does not
	// interpret them.
	Cutoff                     int
	Frequency                  int
	AssignmentCutoff           int
	AssignmentCutoffPrerunTime time.Duration
}

var DefaultOptions = Options{
	ClauseDecay:   0.999,
	VariableDecay: 0.95,
	PhaseSaving:   false,
}

// NewDefaultSolver returns a solver configured with default options. This is
// equivalent to calling NewSolver with DefaultOptions.
func NewDefaultSolver() *Solver {
	return NewSolver(DefaultOptions)
}

func NewSolver(opts Options) *Solver {
	s := &Solver{
		opts:        opts,
		clauseDecay: opts.ClauseDecay,
		varDecay:    opts.VariableDecay,
		clauseInc:   1,
		varInc:      1,
		propQueue:   newQueue[Literal](128),
		seenVar:     &resetSet{},
		phaseSaving: opts.PhaseSaving,
		cursor:      -1,
	}
	for i := 0; i < opts.Variables; i++ {
		s.addVariable()
	}
	return s
}

// Close releases the solver's state. It is idempotent; every operation on a
// closed solver fails with ErrClosed.
func (s *Solver) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.constraints = nil
	s.learnts = nil
	s.building = nil
	s.watchers = nil
	s.propQueue = nil
	s.assigns = nil
	s.trail = nil
	s.trailLim = nil
	s.reason = nil
	s.level = nil
	s.model = nil
	s.models = nil
	s.order = nil
	return nil
}

func (s *Solver) positiveLiteral(varID int) Literal {
	return Literal(varID * 2)
}

func (s *Solver) negativeLiteral(varID int) Literal {
	return s.positiveLiteral(varID).Opposite()
}

// NumVariables returns the number of variables known to the solver.
func (s *Solver) NumVariables() int {
	return len(s.assigns) / 2
}

// NumAssigns returns the number of literals on the trail.
func (s *Solver) NumAssigns() int {
	return len(s.trail)
}

func (s *Solver) NumConstraints() int {
	return len(s.constraints)
}

func (s *Solver) NumLearnts() int {
	return len(s.learnts)
}

// DecisionLevel returns the current decision level, 0 at the root.
func (s *Solver) DecisionLevel() int {
	return len(s.trailLim)
}

// VarValue returns the value of the zero-based variable x.
func (s *Solver) VarValue(x int) LBool {
	return s.assigns[s.positiveLiteral(x)]
}

// LitValue returns the value of literal l under the current assignment.
func (s *Solver) LitValue(l Literal) LBool {
	return s.assigns[l]
}

func (s *Solver) addVariable() int {
	index := s.NumVariables()
	s.watchers = append(s.watchers, nil)
	s.watchers = append(s.watchers, nil)
	s.reason = append(s.reason, nil)
	s.seenVar.Expand()

	// One for each literal.
	s.assigns = append(s.assigns, Unknown)
	s.assigns = append(s.assigns, Unknown)

	s.level = append(s.level, -1)
	s.activities = append(s.activities, 0)
	return index
}

// growTo creates variables until the zero-based variable varID exists.
func (s *Solver) growTo(varID int) {
	for s.NumVariables() <= varID {
		s.addVariable()
	}
}

// watch registers clause c to be woken up when literal w is assigned true.
func (s *Solver) watch(c *Clause, w Literal, guard Literal) {
	s.watchers[w] = append(s.watchers[w], watcher{clause: c, guard: guard})
}

// unwatch removes clause c from the watch list of literal w.
func (s *Solver) unwatch(c *Clause, w Literal) {
	j := 0
	for i := 0; i < len(s.watchers[w]); i++ {
		if s.watchers[w][i].clause != c {
			s.watchers[w][j] = s.watchers[w][i]
			j++
		}
	}
	s.watchers[w] = s.watchers[w][:j]
}

// AddLiteral appends a signed literal to the clause under construction. A
// zero literal commits the pending clause to the database; a commit with no
// pending literals adds the empty clause, which makes the formula
// unsatisfiable. Variables are created on demand. Clauses can only be
// committed at decision level 0.
func (s *Solver) AddLiteral(lit int) error {
	if s.closed {
		return ErrClosed
	}
	if lit == 0 {
		return s.commitClause()
	}

	v := abs(lit) - 1
	s.growTo(v)
	s.building = append(s.building, LitFromInt(lit))
	return nil
}

// AddClause adds a complete clause in signed form. It is equivalent to a
// sequence of AddLiteral calls followed by the zero terminator.
func (s *Solver) AddClause(lits []int) error {
	if s.closed {
		return ErrClosed
	}
	for _, lit := range lits {
		if lit == 0 {
			return fmt.Errorf("%w: clause contains 0", ErrInvalidLiteral)
		}
	}
	for _, lit := range lits {
		if err := s.AddLiteral(lit); err != nil {
			return err
		}
	}
	return s.AddLiteral(0)
}

func (s *Solver) commitClause() error {
	if s.DecisionLevel() != 0 {
		return fmt.Errorf("%w: clauses can only be added at level 0", ErrInvalidState)
	}

	lits := make([]Literal, len(s.building))
	copy(lits, s.building)
	s.building = s.building[:0]

	return s.addClauseLits(lits)
}

// addClauseLits commits an original clause. The literals slice is owned by
// the clause afterwards.
func (s *Solver) addClauseLits(lits []Literal) error {
	c, ok := newClause(s, lits, false)
	if c != nil {
		s.constraints = append(s.constraints, c)
	}
	if !ok {
		s.unsat = true
	}
	return nil
}

// enqueue records the assignment of literal l with the given reason clause
// (nil for decisions) and schedules it for propagation. It returns false if l
// is already false under the current assignment.
func (s *Solver) enqueue(l Literal, from *Clause) bool {
	switch s.LitValue(l) {
	case False:
		return false // conflicting assignment
	case True:
		return true // already assigned
	default:
		varID := l.VarID()
		s.assigns[l] = True
		s.assigns[l.Opposite()] = False
		s.level[varID] = s.DecisionLevel()
		s.reason[varID] = from
		s.trail = append(s.trail, l)
		s.propQueue.Push(l)
		return true
	}
}

// propagate processes the propagation queue exhaustively. It returns the
// first conflicting clause found, or nil. On conflict the trail is left as
// built; undoing it is the caller's responsibility.
func (s *Solver) propagate() *Clause {
	for s.propQueue.Size() > 0 {
		l := s.propQueue.Pop()

		s.tmpWatchers = s.tmpWatchers[:0]
		s.tmpWatchers = append(s.tmpWatchers, s.watchers[l]...)
		s.watchers[l] = s.watchers[l][:0]

		for i, w := range s.tmpWatchers {
			// No need to propagate the clause if its guard is true. This
			// avoids loading clauses that cannot propagate anything new. Note
			// that it alters the order in which clauses are propagated and
			// can thus yield different conflict analyses and learnt clauses.
			if s.LitValue(w.guard) == True {
				s.watchers[l] = append(s.watchers[l], w)
				continue
			}

			if w.clause.propagate(s, l) {
				continue
			}

			// Clause is conflicting: copy the remaining watchers back and
			// report it.
			s.watchers[l] = append(s.watchers[l], s.tmpWatchers[i+1:]...)
			s.propQueue.Clear()
			return s.tmpWatchers[i].clause
		}
	}

	return nil
}

func (s *Solver) explain(c *Clause, l Literal) []Literal {
	if l == -1 {
		return c.explainFailure(s)
	}
	return c.explainAssign(s)
}

// analyze derives a 1-UIP clause from the conflicting clause confl. It
// returns the learnt literals (first literal is the asserting UIP) and the
// level to backtrack to. The returned slice is a shared buffer that is only
// valid until the next analyze call.
func (s *Solver) analyze(confl *Clause) ([]Literal, int) {
	// Number of "implication" nodes of the current decision level still to
	// explore. A value of 0 indicates that the exploration has reached a
	// single implication point.
	nImplicationPoints := 0

	// The first literal is reserved for the UIP, set at the end.
	s.tmpLearnts = s.tmpLearnts[:0]
	s.tmpLearnts = append(s.tmpLearnts, -1)

	// Next literal to look at, iterating backward over the trail without
	// undoing assignments.
	nextLiteral := len(s.trail) - 1

	l := Literal(-1) // sentinel representing the conflict itself
	s.seenVar.Clear()
	backtrackLevel := 0

	for {
		for _, q := range s.explain(confl, l) {
			v := q.VarID()
			if s.seenVar.Contains(v) {
				continue
			}

			s.seenVar.Add(v)
			if s.level[v] == s.DecisionLevel() {
				nImplicationPoints++
				continue
			}

			s.tmpLearnts = append(s.tmpLearnts, q.Opposite())
			if level := s.level[v]; level > backtrackLevel {
				backtrackLevel = level
			}
		}

		// Select the next literal to look at.
		for {
			l = s.trail[nextLiteral]
			nextLiteral--
			v := l.VarID()
			confl = s.reason[v]
			if s.seenVar.Contains(v) {
				break
			}
		}

		nImplicationPoints--
		if nImplicationPoints <= 0 {
			break
		}
	}

	s.tmpLearnts[0] = l.Opposite()

	return s.tmpLearnts, backtrackLevel
}

// record commits a learnt clause and asserts its first literal. The literals
// are copied: callers may pass the shared analyze buffer.
func (s *Solver) record(clause []Literal) {
	lits := make([]Literal, len(clause))
	copy(lits, clause)

	c, _ := newClause(s, lits, true)
	s.enqueue(lits[0], c)
	if c != nil {
		s.learnts = append(s.learnts, c)
	}
}

func (s *Solver) undoOne() {
	l := s.trail[len(s.trail)-1]
	v := l.VarID()

	if s.order != nil {
		s.order.Undo(v)
	}
	s.assigns[l] = Unknown
	s.assigns[l.Opposite()] = Unknown
	s.reason[v] = nil
	s.level[v] = -1

	s.trail = s.trail[:len(s.trail)-1]
}

// assume opens a new decision level and assigns literal l as a decision.
func (s *Solver) assume(l Literal) bool {
	s.trailLim = append(s.trailLim, len(s.trail))
	return s.enqueue(l, nil)
}

func (s *Solver) cancel() {
	c := len(s.trail) - s.trailLim[len(s.trailLim)-1]
	for ; c != 0; c-- {
		s.undoOne()
	}
	s.trailLim = s.trailLim[:len(s.trailLim)-1]
}

// cancelUntil undoes decision levels until the solver is back at the given
// level. Backtracking removes a contiguous suffix of the trail; the prefix is
// never reordered.
func (s *Solver) cancelUntil(level int) {
	for s.DecisionLevel() > level {
		s.cancel()
	}
}

// statusAfterPropagate maps the current solver state to the protocol status.
func (s *Solver) statusAfterPropagate() Status {
	if s.conflict != nil {
		return StatusConflict
	}
	if s.NumAssigns() == s.NumVariables() {
		return StatusSat
	}
	return StatusOpen
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Options returns the options the solver was constructed with. Auxiliary
// propagators use them to read the knobs the core does not interpret.
func (s *Solver) Options() Options {
	return s.opts
}

// Simplify simplifies the clause database according to the root-level
// assignments. Clauses that are satisfied at the root level are removed.
func (s *Solver) Simplify() bool {
	if s.closed {
		return false
	}
	if s.DecisionLevel() != 0 {
		panic("Simplify called on a non root-level solver")
	}

	if s.unsat || s.propagate() != nil {
		s.unsat = true
		return false
	}

	s.simplifyPtr(&s.learnts)
	s.simplifyPtr(&s.constraints)

	return true
}

func (s *Solver) simplifyPtr(clausesPtr *[]*Clause) {
	clauses := *clausesPtr
	j := 0
	for i := 0; i < len(clauses); i++ {
		if clauses[i].simplify(s) {
			clauses[i].remove(s)
		} else {
			clauses[j] = clauses[i]
			j++
		}
	}
	*clausesPtr = clauses[:j]
}

// reduceDB removes half of the learnt clauses, sparing the most active ones
// and clauses that are the reason of a current assignment.
func (s *Solver) reduceDB() {
	if len(s.learnts) == 0 {
		return
	}
	lim := s.clauseInc / float64(len(s.learnts))

	sort.Slice(s.learnts, func(i, j int) bool {
		return s.learnts[i].activity < s.learnts[j].activity
	})

	i, j := 0, 0
	for ; i < len(s.learnts)/2; i++ {
		if s.learnts[i].locked(s) {
			s.learnts[j] = s.learnts[i]
			j++
		} else {
			s.learnts[i].remove(s)
		}
	}

	for ; i < len(s.learnts); i++ {
		if !s.learnts[i].locked(s) && s.learnts[i].activity < lim {
			s.learnts[i].remove(s)
		} else {
			s.learnts[j] = s.learnts[i]
			j++
		}
	}

	s.learnts = s.learnts[:j]
}

func (s *Solver) bumpClaActivity(c *Clause) {
	c.activity += s.clauseInc

	if c.activity > 1e100 {
		s.clauseInc *= 1e-100 // important to keep proportions
		for _, l := range s.learnts {
			l.activity *= 1e-100
		}
	}
}

func (s *Solver) bumpVarActivity(l Literal) {
	vid := l.VarID()
	s.activities[vid] += s.varInc

	if s.activities[vid] > 1e100 {
		s.varInc *= 1e-100 // important to keep proportions
		for i := range s.activities {
			s.activities[i] *= 1e-100
		}
	}

	if s.order != nil {
		s.order.Update(vid)
	}
}

func (s *Solver) decayClaActivity() {
	s.clauseInc *= s.clauseDecay
}

func (s *Solver) decayVarActivity() {
	s.varInc *= s.varDecay
}
