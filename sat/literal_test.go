package sat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLitFromInt(t *testing.T) {
	tests := []struct {
		signed int
		lit    Literal
	}{
		{1, 0},
		{-1, 1},
		{2, 2},
		{-2, 3},
		{42, 82},
		{-42, 83},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.lit, LitFromInt(tt.signed), "LitFromInt(%d)", tt.signed)
		assert.Equal(t, tt.signed, tt.lit.Int(), "(%d).Int()", tt.lit)
	}
}

func TestLiteral_Opposite(t *testing.T) {
	for _, v := range []int{1, -1, 7, -7} {
		l := LitFromInt(v)
		assert.Equal(t, -v, l.Opposite().Int())
		assert.Equal(t, l, l.Opposite().Opposite())
		assert.Equal(t, l.VarID(), l.Opposite().VarID())
	}
}

func TestLiteral_IsPositive(t *testing.T) {
	assert.True(t, LitFromInt(3).IsPositive())
	assert.False(t, LitFromInt(-3).IsPositive())
}
