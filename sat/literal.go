package sat

import "fmt"

// Literal represents a literal in the solver's internal doubled encoding:
// literal 2*v stands for variable v, literal 2*v+1 for its negation.
type Literal int

// LitFromInt converts a signed caller-side literal (variable 1..N, negative
// for negation) to the doubled encoding. Zero is not a literal and must be
// rejected by callers before converting.
func LitFromInt(v int) Literal {
	if v > 0 {
		return Literal((v - 1) * 2)
	}
	return Literal((-v-1)*2 + 1)
}

// Int converts the literal back to the signed caller-side form: its variable
// numbered from 1, negated when the literal is odd.
func (l Literal) Int() int {
	v := l.VarID() + 1
	if l.IsPositive() {
		return v
	}
	return -v
}

// VarID returns the zero-based ID of the literal's variable.
func (l Literal) VarID() int {
	return int(l) / 2
}

// IsPositive returns true if and only if the literal represents the value of
// its boolean variable (i.e. not its negation).
func (l Literal) IsPositive() bool {
	return l&1 == 0
}

// Opposite returns the opposite literal.
func (l Literal) Opposite() Literal {
	return l ^ 1
}

func (l Literal) String() string {
	return fmt.Sprintf("%d", l.Int())
}
