package solver

import (
	"context"
	"errors"
	"math"
)

// ErrInfeasible is returned by Solve when no assignment satisfies the
// model's constraints and integrality requirements.
var ErrInfeasible = errors.New("solver: model is infeasible")

// ErrTimeLimit is returned by Solve when ctx's deadline is hit before any
// integer-feasible solution was found. If an incumbent was already found
// when the deadline hits, Solve returns it instead of this error.
var ErrTimeLimit = errors.New("solver: time limit exceeded with no feasible solution")

// Solution is a variable assignment and its objective value.
type Solution struct {
	Values         []float64
	ObjectiveValue float64
}

type node struct {
	vars []Variable // current bounds, overriding m.Vars for branched variables
}

// Solve runs branch-and-bound on m's LP relaxation, branching on the most
// fractional Integer/Binary variable until every node is pruned, integral,
// or ctx's deadline passes. It returns the best incumbent found, favoring
// any feasible integral solution over returning ErrTimeLimit empty-handed.
func Solve(ctx context.Context, m *Model) (Solution, error) {
	var incumbent *Solution
	incumbentObj := math.Inf(1)

	stack := []node{{vars: append([]Variable(nil), m.Vars...)}}

	for len(stack) > 0 {
		select {
		case <-ctx.Done():
			if incumbent != nil {
				return *incumbent, nil
			}
			return Solution{}, ErrTimeLimit
		default:
		}

		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		relaxed := &Model{Vars: cur.vars, Constraints: m.Constraints, Objective: m.Objective}
		res := solveRelaxation(relaxed)
		if !res.feasible {
			continue
		}
		if res.obj >= incumbentObj-simplexEps {
			continue // bound: cannot beat the current incumbent
		}

		branchIdx, frac := mostFractional(m, cur.vars, res.values)
		if branchIdx == -1 {
			incumbent = &Solution{Values: res.values, ObjectiveValue: res.obj}
			incumbentObj = res.obj
			continue
		}

		floorVars := append([]Variable(nil), cur.vars...)
		floorVars[branchIdx].Upper = math.Floor(frac)
		if floorVars[branchIdx].Upper >= floorVars[branchIdx].Lower {
			stack = append(stack, node{vars: floorVars})
		}

		ceilVars := append([]Variable(nil), cur.vars...)
		ceilVars[branchIdx].Lower = math.Ceil(frac)
		if ceilVars[branchIdx].Lower <= ceilVars[branchIdx].Upper {
			stack = append(stack, node{vars: ceilVars})
		}
	}

	if incumbent == nil {
		return Solution{}, ErrInfeasible
	}
	return *incumbent, nil
}

// mostFractional returns the index of the Integer/Binary variable whose
// relaxed value is furthest from an integer, or -1 if all such variables
// are already integral within tolerance.
func mostFractional(m *Model, vars []Variable, values []float64) (int, float64) {
	best := -1
	bestDist := simplexEps
	for i := range vars {
		if m.Vars[i].Kind == Continuous {
			continue
		}
		val := values[i]
		dist := math.Abs(val - math.Round(val))
		if dist > bestDist {
			bestDist = dist
			best = i
		}
	}
	if best == -1 {
		return -1, 0
	}
	return best, values[best]
}
