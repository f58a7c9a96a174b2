package solver

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

const (
	bigM            = 1e7
	simplexEps      = 1e-7
	maxSimplexIters = 2000
)

// lpResult is the outcome of relaxing a Model's integrality and solving the
// resulting linear program with bounded variables shifted to start at 0.
type lpResult struct {
	feasible bool
	values   []float64 // one per original Model variable
	obj      float64
}

// solveRelaxation solves the LP relaxation of m (ignoring Kind, respecting
// Lower/Upper) via a Big-M dense-tableau simplex. Variable bounds are
// encoded as explicit constraints against a shifted non-negative variable:
// for original variable x in [lo, hi], it substitutes x = lo + x' with
// 0 <= x' <= hi-lo, and adds the constraint x' <= hi-lo directly.
func solveRelaxation(m *Model) lpResult {
	n := len(m.Vars)
	shift := make([]float64, n)
	width := make([]float64, n)
	for i, v := range m.Vars {
		lo, hi := v.Lower, v.Upper
		if lo <= -Unbounded {
			lo = 0 // degenerate fallback; callers always supply finite bounds
		}
		if hi >= Unbounded {
			hi = Unbounded
		}
		shift[i] = lo
		width[i] = math.Max(hi-lo, 0)
	}

	// Build standard-form rows: every constraint rewritten in terms of the
	// shifted variables, plus one upper-bound row per variable.
	type row struct {
		coeffs map[int]float64
		op     Op
		rhs    float64
	}
	rows := make([]row, 0, len(m.Constraints)+n)
	for _, c := range m.Constraints {
		rhs := c.RHS
		coeffs := make(map[int]float64, len(c.Coeffs))
		for idx, coeff := range c.Coeffs {
			rhs -= coeff * shift[idx]
			coeffs[idx] = coeff
		}
		rows = append(rows, row{coeffs: coeffs, op: c.Op, rhs: rhs})
	}
	for i := range m.Vars {
		if width[i] <= 0 {
			continue
		}
		rows = append(rows, row{coeffs: map[int]float64{i: 1}, op: LE, rhs: width[i]})
	}

	numRows := len(rows)
	// Count slack/surplus/artificial columns needed.
	extra := 0
	artificialRows := make([]int, 0)
	for ri, r := range rows {
		switch r.op {
		case LE:
			extra++
		case GE:
			extra++ // surplus
			if r.rhs > simplexEps {
				extra++ // + artificial
				artificialRows = append(artificialRows, ri)
			}
		case EQ:
			extra++ // artificial
			artificialRows = append(artificialRows, ri)
		}
	}

	totalCols := n + extra + 1 // +1 for RHS column
	tab := mat.NewDense(numRows+1, totalCols, nil)

	colCursor := n
	slackCol := make([]int, numRows)
	artificialCol := make([]int, numRows)
	for i := range artificialCol {
		artificialCol[i] = -1
	}
	basis := make([]int, numRows)

	for ri, r := range rows {
		for idx, coeff := range r.coeffs {
			tab.Set(ri, idx, coeff)
		}
		rhs := r.rhs
		sign := 1.0
		if rhs < 0 {
			// Normalize to a non-negative RHS by flipping the row and op.
			sign = -1.0
			rhs = -rhs
			for idx := 0; idx < n; idx++ {
				tab.Set(ri, idx, -tab.At(ri, idx))
			}
			if r.op == LE {
				r.op = GE
			} else if r.op == GE {
				r.op = LE
			}
		}
		_ = sign

		switch r.op {
		case LE:
			tab.Set(ri, colCursor, 1)
			slackCol[ri] = colCursor
			basis[ri] = colCursor
			colCursor++
		case GE:
			tab.Set(ri, colCursor, -1)
			colCursor++
			if rhs > simplexEps {
				tab.Set(ri, colCursor, 1)
				artificialCol[ri] = colCursor
				basis[ri] = colCursor
				colCursor++
			} else {
				// rhs == 0: surplus variable alone can serve as basis at 0.
				basis[ri] = colCursor - 1
			}
		case EQ:
			tab.Set(ri, colCursor, 1)
			artificialCol[ri] = colCursor
			basis[ri] = colCursor
			colCursor++
		}
		tab.Set(ri, totalCols-1, rhs)
	}

	// Objective row (to maximize -obj, i.e. minimize obj), with Big-M penalty
	// on artificial variables.
	objRow := numRows
	for idx, coeff := range m.Objective {
		tab.Set(objRow, idx, coeff)
	}
	for _, ac := range artificialCol {
		if ac >= 0 {
			tab.Set(objRow, ac, bigM)
		}
	}

	// Price out basic artificial/slack columns from the objective row so
	// reduced costs are consistent with the current basis.
	for ri := 0; ri < numRows; ri++ {
		cb := tab.At(objRow, basis[ri])
		if cb == 0 {
			continue
		}
		for c := 0; c < totalCols; c++ {
			tab.Set(objRow, c, tab.At(objRow, c)-cb*tab.At(ri, c))
		}
	}

	for iter := 0; iter < maxSimplexIters; iter++ {
		// Choose entering column: most negative reduced cost (minimize).
		enter := -1
		best := -simplexEps
		for c := 0; c < totalCols-1; c++ {
			v := tab.At(objRow, c)
			if v < best {
				best = v
				enter = c
			}
		}
		if enter == -1 {
			break // optimal
		}

		leave := -1
		bestRatio := math.Inf(1)
		for ri := 0; ri < numRows; ri++ {
			a := tab.At(ri, enter)
			if a <= simplexEps {
				continue
			}
			ratio := tab.At(ri, totalCols-1) / a
			if ratio < bestRatio-simplexEps {
				bestRatio = ratio
				leave = ri
			}
		}
		if leave == -1 {
			return lpResult{feasible: false} // unbounded
		}

		pivot := tab.At(leave, enter)
		for c := 0; c < totalCols; c++ {
			tab.Set(leave, c, tab.At(leave, c)/pivot)
		}
		for ri := 0; ri <= numRows; ri++ {
			if ri == leave {
				continue
			}
			factor := tab.At(ri, enter)
			if factor == 0 {
				continue
			}
			for c := 0; c < totalCols; c++ {
				tab.Set(ri, c, tab.At(ri, c)-factor*tab.At(leave, c))
			}
		}
		basis[leave] = enter
	}

	// Feasibility check: any artificial variable left in the basis at a
	// positive value means the original constraints were infeasible.
	for ri := 0; ri < numRows; ri++ {
		if artificialCol[ri] >= 0 && basis[ri] == artificialCol[ri] && tab.At(ri, totalCols-1) > 1e-4 {
			return lpResult{feasible: false}
		}
	}

	shiftedValues := make([]float64, n)
	for ri := 0; ri < numRows; ri++ {
		if basis[ri] < n {
			shiftedValues[basis[ri]] = tab.At(ri, totalCols-1)
		}
	}

	values := make([]float64, n)
	obj := 0.0
	for i := range values {
		values[i] = shift[i] + shiftedValues[i]
		obj += m.Objective[i] * values[i]
	}

	return lpResult{feasible: true, values: values, obj: obj}
}
