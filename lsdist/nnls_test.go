// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lsdist

import (
	"math"
	"testing"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/blas/blas64"
)

func TestNNLSActiveBound(t *testing.T) {

	// With 𝐀 = 𝐈₂ and 𝐛 = (1, -1) the unconstrained solution violates x₂ ≥ 0,
	// so the optimum pins x₂ at zero with unit residual.
	a := []float64{
		1, 0,
		0, 1,
	}
	b := []float64{1, -1}

	x, dual, rnorm, err := NNLS(2, 2, a, 2, b, 0)
	if err != nil {
		t.Fatal("NNLS failed:", err)
	}
	if !closeAll(x, []float64{1, 0}, 1e-14) {
		t.Fatal("NNLS solution unexpected:", x)
	}
	if !closeTo(rnorm, 1, 1e-14) {
		t.Fatal("NNLS residual unexpected:", rnorm)
	}
	if dual[1] > 0 {
		t.Fatal("dual component of a pinned variable must not be positive:", dual)
	}
}

func TestNNLSInterior(t *testing.T) {

	a := []float64{
		2, 0,
		0, 3,
	}
	b := []float64{2, 3}

	x, _, rnorm, err := NNLS(2, 2, a, 2, b, 0)
	if err != nil {
		t.Fatal("NNLS failed:", err)
	}
	if !closeAll(x, []float64{1, 1}, 1e-14) {
		t.Fatal("NNLS solution unexpected:", x)
	}
	if !closeTo(rnorm, 0, 1e-14) {
		t.Fatal("NNLS residual unexpected:", rnorm)
	}
}

// Random consistent systems with a non-negative generator must be matched
// with vanishing residual and a non-negative solution.
func TestNNLSConsistent(t *testing.T) {

	rnd := rand.New(rand.NewSource(3))

	const m, n = 6, 4
	for trial := 0; trial < 10; trial++ {

		a := make([]float64, m*n)
		for i := range a {
			a[i] = rnd.NormFloat64()
		}
		xt := make([]float64, n)
		for i := range xt {
			xt[i] = math.Abs(rnd.NormFloat64())
		}

		b := make([]float64, m)
		for i := 0; i < m; i++ {
			b[i] = blas64.Dot(
				blas64.Vector{N: n, Data: a[i:], Inc: m},
				blas64.Vector{N: n, Data: xt, Inc: 1})
		}

		keepA := append([]float64(nil), a...)
		keepB := append([]float64(nil), b...)

		x, _, rnorm, err := NNLS(m, n, a, m, b, 0)
		if err != nil {
			t.Fatal("NNLS failed:", err)
		}
		if !closeTo(rnorm, 0, 1e-9) {
			t.Fatal("consistent system must have zero residual:", rnorm)
		}
		for i, v := range x {
			if v < 0 {
				t.Fatalf("solution component %d negative: %v", i, v)
			}
		}

		// Recheck ‖𝐀𝐱 - 𝐛‖₂ against the untouched copies.
		var sum float64
		for i := 0; i < m; i++ {
			r := blas64.Dot(
				blas64.Vector{N: n, Data: keepA[i:], Inc: m},
				blas64.Vector{N: n, Data: x, Inc: 1}) - keepB[i]
			sum += r * r
		}
		if !closeTo(math.Sqrt(sum), 0, 1e-9) {
			t.Fatalf("trial %d residual mismatch: %v", trial, math.Sqrt(sum))
		}
	}
}

func TestNNLSBadDimension(t *testing.T) {
	if _, _, _, err := NNLS(0, 1, nil, 1, nil, 0); err != ErrBadDimension {
		t.Fatal("want ErrBadDimension, got:", err)
	}
	if _, _, _, err := NNLS(2, 2, make([]float64, 3), 2, make([]float64, 2), 0); err != ErrBadDimension {
		t.Fatal("want ErrBadDimension, got:", err)
	}
}
