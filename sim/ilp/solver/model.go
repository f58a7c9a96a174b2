// Package solver implements a small mixed-integer linear program solver:
// branch-and-bound over a dense-tableau Big-M simplex relaxation, built on
// gonum.org/v1/gonum/mat. It exists because no production MILP package
// (good_lp/coin_cbc and friends) has a Go equivalent; this is in-repo
// application code, not a stand-in for a missing third-party dependency.
package solver

import "math"

// Kind is a variable's domain.
type Kind int

const (
	Continuous Kind = iota
	Integer
	Binary
)

// Variable is one decision variable, bounded in [Lower, Upper].
type Variable struct {
	Kind         Kind
	Lower, Upper float64
}

// Op is a constraint's relational operator.
type Op int

const (
	LE Op = iota
	GE
	EQ
)

// Constraint is a single linear constraint over a sparse coefficient map
// keyed by variable index.
type Constraint struct {
	Coeffs map[int]float64
	Op     Op
	RHS    float64
}

// Model is a minimize-objective MILP: Vars bounds/kinds, Constraints, and a
// sparse Objective coefficient map (variables absent from Objective have
// coefficient 0).
type Model struct {
	Vars        []Variable
	Constraints []Constraint
	Objective   map[int]float64
}

// NewModel returns an empty Model.
func NewModel() *Model {
	return &Model{Objective: make(map[int]float64)}
}

// AddVar appends a variable and returns its index.
func (m *Model) AddVar(kind Kind, lower, upper float64) int {
	if kind == Binary {
		lower, upper = 0, 1
	}
	idx := len(m.Vars)
	m.Vars = append(m.Vars, Variable{Kind: kind, Lower: lower, Upper: upper})
	return idx
}

// AddConstraint appends a linear constraint.
func (m *Model) AddConstraint(coeffs map[int]float64, op Op, rhs float64) {
	m.Constraints = append(m.Constraints, Constraint{Coeffs: coeffs, Op: op, RHS: rhs})
}

// SetObjective sets varIdx's minimize-objective coefficient.
func (m *Model) SetObjective(varIdx int, coeff float64) {
	m.Objective[varIdx] = coeff
}

// Unbounded is used in place of +/-Inf for variable bounds that genuinely
// have none; the simplex implementation substitutes a large finite value.
const Unbounded = math.MaxFloat64 / 4
