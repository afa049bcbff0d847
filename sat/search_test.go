package sat

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pigeonhole returns the clauses stating that n+1 pigeons sit in n holes with
// at most one pigeon per hole. The formula is unsatisfiable for every n >= 1.
// Variable (i-1)*n + j is true when pigeon i sits in hole j.
func pigeonhole(n int) [][]int {
	v := func(pigeon, hole int) int {
		return (pigeon-1)*n + hole
	}

	clauses := [][]int{}
	for i := 1; i <= n+1; i++ {
		c := make([]int, n)
		for j := 1; j <= n; j++ {
			c[j-1] = v(i, j)
		}
		clauses = append(clauses, c)
	}
	for j := 1; j <= n; j++ {
		for i := 1; i <= n+1; i++ {
			for k := i + 1; k <= n+1; k++ {
				clauses = append(clauses, []int{-v(i, j), -v(k, j)})
			}
		}
	}
	return clauses
}

func TestSolve_pigeonholeUnsat(t *testing.T) {
	for n := 1; n <= 4; n++ {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			s := newTestSolver(t, pigeonhole(n))

			result, err := s.Solve(-1)

			require.NoError(t, err)
			assert.Equal(t, ResultUnsat, result)
		})
	}
}

func TestSolve_satisfiable(t *testing.T) {
	s := newTestSolver(t, chainFormula)

	result, err := s.Solve(-1)

	require.NoError(t, err)
	require.Equal(t, ResultSat, result)

	model, err := s.Model()
	require.NoError(t, err)
	require.Len(t, model, 4)

	for _, clause := range chainFormula {
		satisfied := false
		for _, lit := range clause {
			ok, err := s.ModelValue(lit)
			require.NoError(t, err)
			satisfied = satisfied || ok
		}
		assert.True(t, satisfied, "clause %v not satisfied by model %v", clause, model)
	}
}

func TestSolve_timeout(t *testing.T) {
	s := newTestSolver(t, pigeonhole(6))

	result, err := s.Solve(0)

	require.NoError(t, err)
	assert.Equal(t, ResultTimeout, result)

	// The solver must remain usable after a timeout.
	result, err = s.Solve(-1)
	require.NoError(t, err)
	assert.Equal(t, ResultUnsat, result)
}

func TestSolve_recallableAfterSat(t *testing.T) {
	s := newTestSolver(t, chainFormula)

	count := 0
	for {
		result, err := s.Solve(-1)
		require.NoError(t, err)
		if result != ResultSat {
			require.Equal(t, ResultUnsat, result)
			break
		}
		count++
		require.NoError(t, s.BlockModel())
		require.LessOrEqual(t, count, 16, "enumeration does not terminate")
	}

	assert.Equal(t, 4, count)
}

func TestModel_withoutSat(t *testing.T) {
	s := newTestSolver(t, chainFormula)

	_, err := s.Model()
	assert.ErrorIs(t, err, ErrInvalidState)

	_, err = s.ModelValue(1)
	assert.ErrorIs(t, err, ErrInvalidState)

	assert.ErrorIs(t, s.BlockModel(), ErrInvalidState)
}
