package sat

import (
	"github.com/rhartert/yagh"
)

// varOrder implements the activity-based variable ordering used by the
// autonomous search. Variables are kept in a heap keyed by negated activity
// so that the most active unassigned variable is selected first. Selection is
// deterministic for identical inputs: ties resolve by heap order on the
// variable index.
type varOrder struct {
	size        int
	solver      *Solver
	phase       []LBool
	phaseSaving bool
	heap        *yagh.IntMap[float64]
}

func newVarOrder(s *Solver, nVar int) *varOrder {
	vo := &varOrder{
		size:   nVar,
		solver: s,
		phase:  make([]LBool, nVar),
		heap:   yagh.New[float64](nVar),
	}

	vo.UpdateAll()
	return vo
}

// Update repositions varID in the heap after an activity bump. Variables
// created after the ordering was built are ignored; the ordering is rebuilt
// with the full variable set on the next Solve.
func (vo *varOrder) Update(varID int) {
	if varID < vo.size && vo.heap.Contains(varID) {
		vo.Undo(varID)
	}
}

func (vo *varOrder) UpdateAll() {
	for i := 0; i < vo.size; i++ {
		vo.Undo(i)
	}
}

// Undo makes varID selectable again after its assignment was undone.
func (vo *varOrder) Undo(varID int) {
	if varID >= vo.size {
		return
	}
	if vo.phaseSaving {
		vo.phase[varID] = vo.solver.VarValue(varID)
	}

	act := vo.solver.activities[varID]
	vo.heap.Put(varID, -act)
}

// Select returns the decision literal for the next unassigned variable.
func (vo *varOrder) Select() Literal {
	for {
		next, ok := vo.heap.Pop()
		if !ok {
			panic("select on a fully assigned solver")
		}
		if vo.solver.VarValue(next.Elem) != Unknown {
			continue // already assigned
		}

		if vo.phase[next.Elem] == True {
			return vo.solver.positiveLiteral(next.Elem)
		}
		return vo.solver.negativeLiteral(next.Elem)
	}
}
