// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lsdist

import (
	"math"

	"gonum.org/v1/gonum/blas/blas64"
)

// LDP solves the least-distance problem 𝚖𝚒𝚗 ‖𝐱‖₂ subject to 𝐆𝐱 ≥ 𝐡 through its
// NNLS dual (Lawson-Hanson Algorithm 23.27). No assumption is made on 𝚛𝚊𝚗𝚔(𝐆).
//
// The dual problem is NNLS over the (n+1) × m matrix 𝐀 = [𝐆 : 𝐡]ᵀ with right
// side 𝐛 = [0 ··· 0 1]ᵀ. For a dual solution 𝐮 with residual 𝐫 = 𝐀𝐮 - 𝐛,
// a vanishing ‖𝐫‖₂ certifies that the constraint set is empty; otherwise the
// primal solution is 𝐱 = 𝐆ᵀ𝐮/(1 - 𝐡ᵀ𝐮) with multipliers 𝛌 = 𝐮/(1 - 𝐡ᵀ𝐮).
//
// The matrix g is m × n column-major with leading dimension ldg and is left
// untouched. The returned mult holds the Lagrange multipliers of the
// inequality constraints and xnorm is ‖𝐱‖₂. Constraints without a feasible
// point surface as ErrIncompatible.
func LDP(m, n int, g []float64, ldg int, h []float64, maxIter int) (x, mult []float64, xnorm float64, err error) {

	if n <= 0 {
		return nil, nil, math.NaN(), ErrBadDimension
	}
	if m <= 0 {
		// No constraints: the origin is optimal.
		return make([]float64, n), nil, 0, nil
	}
	if ldg < m || len(g) < ldg*n || len(h) < m {
		return nil, nil, math.NaN(), ErrBadDimension
	}

	// Dual system 𝐀 = [𝐆 : 𝐡]ᵀ, 𝐛 = [0 ··· 0 1]ᵀ.
	a := make([]float64, (n+1)*m)
	for j := 0; j < m; j++ {
		blas64.Copy(
			blas64.Vector{N: n, Data: g[j:], Inc: ldg},
			blas64.Vector{N: n, Data: a[j*(n+1):], Inc: 1})
		a[j*(n+1)+n] = h[j]
	}
	b := make([]float64, n+1)
	b[n] = one

	u, _, rnorm, err := NNLS(n+1, m, a, n+1, b, maxIter)
	if err != nil {
		return nil, nil, math.NaN(), err
	}
	// A vanishing dual residual certifies an empty constraint set. With
	// ‖𝐛‖₂ = 1 the triangularization leaves a residual of order ε on an
	// empty set, so the vanishing test is against √ε rather than zero.
	if rnorm <= math.Sqrt(eps) {
		return nil, nil, math.NaN(), ErrIncompatible
	}

	// -𝐫ₙ₊₁ = 1 - 𝐡ᵀ𝐮
	fac := one - blas64.Dot(
		blas64.Vector{N: m, Data: h, Inc: 1},
		blas64.Vector{N: m, Data: u, Inc: 1})
	if math.IsNaN(fac) || fac < eps {
		return nil, nil, math.NaN(), ErrIncompatible
	}
	fac = one / fac

	x = make([]float64, n)
	for j := range x {
		x[j] = fac * blas64.Dot(
			blas64.Vector{N: m, Data: g[ldg*j:], Inc: 1},
			blas64.Vector{N: m, Data: u, Inc: 1})
	}
	mult = make([]float64, m)
	for j := range mult {
		mult[j] = u[j] * fac
	}
	xnorm = blas64.Nrm2(blas64.Vector{N: n, Data: x, Inc: 1})
	return x, mult, xnorm, nil
}

// MinNormEq solves 𝚖𝚒𝚗 ‖𝐱‖₂ subject to 𝐀𝐱 = 𝐛 by stacking the equality as the
// inequality pair [𝐀; -𝐀]𝐱 ≥ [𝐛; -𝐛] and running LDP. The matrix a is m × n
// column-major with leading dimension lda and is left untouched.
// Contradictory equalities surface as ErrIncompatible.
func MinNormEq(m, n int, a []float64, lda int, b []float64, maxIter int) (x []float64, xnorm float64, err error) {

	if m <= 0 || n <= 0 || lda < m || len(a) < lda*n || len(b) < m {
		return nil, math.NaN(), ErrBadDimension
	}

	ldg := 2 * m
	g := make([]float64, ldg*n)
	for j := 0; j < n; j++ {
		for i := 0; i < m; i++ {
			v := a[i+lda*j]
			g[i+ldg*j] = v
			g[m+i+ldg*j] = -v
		}
	}
	h := make([]float64, 2*m)
	for i, v := range b {
		h[i] = v
		h[m+i] = -v
	}

	x, _, xnorm, err = LDP(2*m, n, g, ldg, h, maxIter)
	return x, xnorm, err
}
