// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package minnorm_test

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"

	"github.com/curioloop/leastnorm/blockreal"
	"github.com/curioloop/leastnorm/minnorm"
)

// residual computes ‖𝐀𝐱 - 𝐛‖∞ over the complex entries.
func residual(a *mat.CDense, x, b []complex128) float64 {
	m, n := a.Dims()
	worst := 0.0
	for i := 0; i < m; i++ {
		var sum complex128
		for j := 0; j < n; j++ {
			sum += a.At(i, j) * x[j]
		}
		worst = math.Max(worst, cmplx.Abs(sum-b[i]))
	}
	return worst
}

// The system x₁ + i·x₂ = 1+i has the unique minimum ℓ2-norm solution
// x = (0.5+0.5i, 0.5-0.5i) with optimal value 1.
func TestSolveL2Known(t *testing.T) {
	a := mat.NewCDense(1, 2, []complex128{1, 1i})
	b := []complex128{1 + 1i}

	for _, method := range []minnorm.Method{minnorm.MethodLQ, minnorm.MethodLDP} {
		res, err := minnorm.Solve(minnorm.Problem{A: a, B: b, Norm: minnorm.L2, Method: method})
		require.NoError(t, err)
		require.Equal(t, minnorm.Optimal, res.Status)
		require.InDelta(t, 1.0, res.Value, 1e-6)

		want := []complex128{0.5 + 0.5i, 0.5 - 0.5i}
		for i, w := range want {
			require.InDelta(t, real(w), real(res.X[i]), 1e-6, "method %v component %d", method, i)
			require.InDelta(t, imag(w), imag(res.X[i]), 1e-6, "method %v component %d", method, i)
		}
		require.LessOrEqual(t, residual(a, res.X, b), 1e-6)
	}
}

// For the same system the stacked ℓ∞ objective attains 0.5: the two real
// constraints each sum a pair of entries to 1.
func TestSolveLInfKnown(t *testing.T) {
	a := mat.NewCDense(1, 2, []complex128{1, 1i})
	b := []complex128{1 + 1i}

	res, err := minnorm.Solve(minnorm.Problem{A: a, B: b, Norm: minnorm.LInf})
	require.NoError(t, err)
	require.Equal(t, minnorm.Optimal, res.Status)
	require.InDelta(t, 0.5, res.Value, 1e-6)

	for i, z := range res.Z {
		require.LessOrEqual(t, math.Abs(z), res.Value+1e-7, "component %d exceeds the optimal bound", i)
	}
	require.LessOrEqual(t, residual(a, res.X, b), 1e-6)
}

func TestSolveRandomFeasible(t *testing.T) {
	const m, n = 3, 7

	for seed := uint64(1); seed <= 8; seed++ {
		a, b, x0 := minnorm.RandSystem(m, n, rand.NewSource(seed))

		norm0 := 0.0
		for _, v := range x0 {
			norm0 += real(v)*real(v) + imag(v)*imag(v)
		}
		norm0 = math.Sqrt(norm0)

		var values [2]float64
		for i, method := range []minnorm.Method{minnorm.MethodLQ, minnorm.MethodLDP} {
			res, err := minnorm.Solve(minnorm.Problem{A: a, B: b, Norm: minnorm.L2, Method: method})
			require.NoError(t, err)
			require.Equal(t, minnorm.Optimal, res.Status, "seed %d method %v", seed, method)
			require.LessOrEqual(t, residual(a, res.X, b), 1e-6, "seed %d method %v", seed, method)
			// The generator is feasible, so the optimum cannot beat it.
			require.LessOrEqual(t, res.Value, norm0+1e-6)
			values[i] = res.Value
		}
		require.InDelta(t, values[0], values[1], 1e-6, "seed %d: backends disagree", seed)

		res, err := minnorm.Solve(minnorm.Problem{A: a, B: b, Norm: minnorm.LInf})
		require.NoError(t, err)
		require.Equal(t, minnorm.Optimal, res.Status, "seed %d", seed)
		require.LessOrEqual(t, residual(a, res.X, b), 1e-6, "seed %d", seed)
		for i, z := range res.Z {
			require.LessOrEqual(t, math.Abs(z), res.Value+1e-7, "seed %d component %d", seed, i)
		}

		bound := 0.0
		for _, z := range blockreal.Stack(x0) {
			bound = math.Max(bound, math.Abs(z))
		}
		require.LessOrEqual(t, res.Value, bound+1e-6, "seed %d", seed)
	}
}

// Identical constraint rows with contradicting right sides must surface as
// infeasible, never as a silent answer, and must not be retried or recovered.
func TestSolveInfeasible(t *testing.T) {
	a := mat.NewCDense(2, 3, []complex128{
		1 + 1i, 2, 3 - 1i,
		1 + 1i, 2, 3 - 1i,
	})
	b := []complex128{1 + 1i, 2 + 2i}

	res, err := minnorm.Solve(minnorm.Problem{A: a, B: b, Norm: minnorm.L2, Method: minnorm.MethodLDP})
	require.NoError(t, err)
	require.Equal(t, minnorm.Infeasible, res.Status)

	// An inconsistent system necessarily has dependent constraint rows, which
	// the simplex backend may reject as singular before phase 1 can prove
	// infeasibility. Either report is propagated; success is not.
	res, err = minnorm.Solve(minnorm.Problem{A: a, B: b, Norm: minnorm.LInf})
	require.NoError(t, err)
	require.Contains(t, []minnorm.Status{minnorm.Infeasible, minnorm.SolverFailure}, res.Status)

	// The LQ route cannot distinguish an inconsistent system from a
	// rank-deficient one, but it must not report success.
	res, err = minnorm.Solve(minnorm.Problem{A: a, B: b, Norm: minnorm.L2, Method: minnorm.MethodLQ})
	require.NoError(t, err)
	require.NotEqual(t, minnorm.Optimal, res.Status)
}

func TestSolveValidation(t *testing.T) {
	a := mat.NewCDense(2, 3, nil)
	b := make([]complex128, 2)

	_, err := minnorm.Solve(minnorm.Problem{B: b})
	require.Error(t, err)

	var shape *blockreal.ShapeError
	_, err = minnorm.Solve(minnorm.Problem{A: a, B: b[:1]})
	require.ErrorAs(t, err, &shape)

	_, err = minnorm.Solve(minnorm.Problem{A: mat.NewCDense(3, 2, nil), B: make([]complex128, 3)})
	require.Error(t, err, "more rows than unknowns must be rejected")

	_, err = minnorm.Solve(minnorm.Problem{A: a, B: b, Norm: minnorm.Norm(9)})
	require.Error(t, err)

	_, err = minnorm.Solve(minnorm.Problem{A: a, B: b, Method: minnorm.Method(9)})
	require.Error(t, err)

	_, err = minnorm.Solve(minnorm.Problem{A: a, B: b, Tol: -1})
	require.Error(t, err)
}

func TestStatusString(t *testing.T) {
	require.Equal(t, "optimal", minnorm.Optimal.String())
	require.Equal(t, "infeasible", minnorm.Infeasible.String())
	require.Equal(t, "unbounded", minnorm.Unbounded.String())
	require.Equal(t, "solver failure", minnorm.SolverFailure.String())
	require.Equal(t, "unknown", minnorm.Status(42).String())
}
