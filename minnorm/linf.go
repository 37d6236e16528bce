// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package minnorm

import (
	"errors"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

// solveLInf minimizes 𝚖𝚊𝚡|𝐳ᵢ| subject to 𝐀ₛ𝐳 = 𝐛ₛ as the linear program
//
//	𝚖𝚒𝚗 t  subject to  𝐀ₛ𝐳 = 𝐛ₛ,  -t ≤ 𝐳ᵢ ≤ t
//
// over the augmented variable vector 𝐯 = [𝐳; t]. The general-form program is
// converted to standard form and handed to the simplex solver; its
// infeasible/unbounded reports are propagated verbatim.
func solveLInf(as *mat.Dense, bs []float64) *Result {
	am, an := as.Dims()
	nv := an + 1 // [𝐳; t]

	c := make([]float64, nv)
	c[an] = 1

	// -t ≤ 𝐳ᵢ ≤ t as 𝐆𝐯 ≤ 0 with rows [±𝐞ᵢ, -1].
	g := mat.NewDense(2*an, nv, nil)
	for i := 0; i < an; i++ {
		g.Set(i, i, 1)
		g.Set(i, an, -1)
		g.Set(an+i, i, -1)
		g.Set(an+i, an, -1)
	}
	h := make([]float64, 2*an)

	// 𝐀ₛ𝐳 = 𝐛ₛ with a zero column for t.
	aeq := mat.NewDense(am, nv, nil)
	for i := 0; i < am; i++ {
		for j := 0; j < an; j++ {
			aeq.Set(i, j, as.At(i, j))
		}
	}

	cStd, aStd, bStd := lp.Convert(c, g, h, aeq, bs)
	opt, xStd, err := lp.Simplex(cStd, aStd, bStd, lpTol, nil)
	if err != nil {
		return lpFailure(err)
	}

	// Convert splits each free variable v into v⁺ - v⁻.
	z := make([]float64, an)
	for i := range z {
		z[i] = xStd[i] - xStd[nv+i]
	}
	return &Result{Status: Optimal, Value: opt, Z: z}
}

// lpFailure maps a simplex report onto the problem status, verbatim and
// without retry. Reports outside the infeasible/unbounded taxonomy, such as
// a singular basis, stay opaque solver failures.
func lpFailure(err error) *Result {
	switch {
	case errors.Is(err, lp.ErrInfeasible):
		return &Result{Status: Infeasible}
	case errors.Is(err, lp.ErrUnbounded):
		return &Result{Status: Unbounded}
	}
	return &Result{Status: SolverFailure, Message: err.Error()}
}
