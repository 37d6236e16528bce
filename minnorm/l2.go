// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package minnorm

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/curioloop/leastnorm/lsdist"
)

// solveLQ computes the minimum-norm solution of 𝐀ₛ𝐳 = 𝐛ₛ from an LQ
// factorization of the block matrix.
//
// The factorization yields a solution for any right side, so feasibility is
// established afterwards by checking ‖𝐀ₛ𝐳 - 𝐛ₛ‖∞ against tol. An exactly
// rank-deficient block matrix leaves the triangular solve non-finite and is
// surfaced as a solver anomaly rather than interpreted.
func solveLQ(as *mat.Dense, bs []float64, tol float64) *Result {
	am, _ := as.Dims()

	var lq mat.LQ
	lq.Factorize(as)

	var zv mat.VecDense
	if err := lq.SolveVecTo(&zv, false, mat.NewVecDense(am, bs)); err != nil {
		// A Condition error is a warning: the solve was still performed.
		if _, ok := err.(mat.Condition); !ok {
			return &Result{Status: SolverFailure, Message: err.Error()}
		}
	}

	resid := eqResidual(as, zv.RawVector().Data, bs)
	switch {
	case math.IsNaN(resid) || math.IsInf(resid, 0):
		return &Result{Status: SolverFailure, Message: "lq: solution is not finite"}
	case resid > tol:
		return &Result{Status: Infeasible}
	}
	return &Result{Status: Optimal, Value: mat.Norm(&zv, 2), Z: zv.RawVector().Data}
}

// solveLDP solves the same minimum-norm program through least-distance
// programming, stacking the equality as an inequality pair for the NNLS dual.
// Unlike the LQ route it detects contradictory equalities directly.
func solveLDP(as *mat.Dense, bs []float64, tol float64, maxIter int) *Result {
	am, an := as.Dims()

	// The kernel wants the block matrix column-major.
	a := make([]float64, am*an)
	for j := 0; j < an; j++ {
		for i := 0; i < am; i++ {
			a[i+am*j] = as.At(i, j)
		}
	}

	z, xnorm, err := lsdist.MinNormEq(am, an, a, am, bs, maxIter)
	switch {
	case errors.Is(err, lsdist.ErrIncompatible):
		return &Result{Status: Infeasible}
	case err != nil:
		return &Result{Status: SolverFailure, Message: err.Error()}
	}
	// The kernel's emptiness test is a floating-point guard; a returned
	// point must still satisfy the equality to count as a solution.
	if eqResidual(as, z, bs) > tol {
		return &Result{Status: Infeasible}
	}
	return &Result{Status: Optimal, Value: xnorm, Z: z}
}

// eqResidual computes the equality residual ‖𝐀ₛ𝐳 - 𝐛ₛ‖∞.
func eqResidual(as *mat.Dense, z, bs []float64) float64 {
	var r mat.VecDense
	r.MulVec(as, mat.NewVecDense(len(z), z))
	resid := 0.0
	for i := range bs {
		resid = math.Max(resid, math.Abs(r.AtVec(i)-bs[i]))
	}
	return resid
}
