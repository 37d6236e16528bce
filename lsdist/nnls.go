// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package lsdist provides the Lawson-Hanson least-distance kernels: NNLS
// (non-negative least squares), LDP (least distance programming) and the
// derived minimum-norm solve for linear equality constraints.
//
// All matrices are dense column-major with an explicit leading dimension,
// matching the Fortran heritage of the algorithms. The routines allocate
// their own workspace and are safe for concurrent use with distinct inputs.
package lsdist

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/blas/blas64"
)

const (
	zero = 0.0
	one  = 1.0
	eps  = float64(7)/3 - float64(4)/3 - 1.
)

var (
	// ErrBadDimension reports input slices inconsistent with the stated sizes.
	ErrBadDimension = errors.New("lsdist: dimension out of range")
	// ErrMaxIterations reports that the active-set iteration cap was reached.
	ErrMaxIterations = errors.New("lsdist: iteration limit reached")
	// ErrIncompatible reports constraints that admit no solution.
	ErrIncompatible = errors.New("lsdist: incompatible constraints")
)

// NNLS solves the least-squares problem 𝚖𝚒𝚗 ‖𝐀𝐱 - 𝐛‖₂ subject to 𝐱 ≥ 0 with
// the active-set method of Lawson and Hanson (Algorithm 23.10).
//
// The matrix 𝐀 is m × n column-major with leading dimension lda; either m ≥ n
// or m < n is permitted and no restriction is placed on 𝚛𝚊𝚗𝚔(𝐀). Indices move
// between a zero set ℤ (variables pinned at 0) and a passive set ℙ (variables
// free to take positive values); each passive candidate column is folded into
// an implicit QR factorization by Householder reflections, and blocking
// variables are rotated back out with Givens rotations.
//
// Both a and b are overwritten with the transformed products 𝐐𝐀 and 𝐐𝐛. The
// returned x is the solution, dual holds the vector 𝐰 = 𝐀ᵀ(𝐛 - 𝐀𝐱) whose
// non-positivity over ℤ certifies the Kuhn-Tucker conditions, and rnorm is the
// residual norm ‖𝐀𝐱 - 𝐛‖₂. A maxIter of 0 or less defaults to 3n.
func NNLS(m, n int, a []float64, lda int, b []float64, maxIter int) (x, dual []float64, rnorm float64, err error) {

	const factor = 0.01

	if m <= 0 || n <= 0 || lda < m || len(a) < lda*n || len(b) < m {
		return nil, nil, math.NaN(), ErrBadDimension
	}
	if maxIter <= 0 {
		maxIter = 3 * n
	}

	x = make([]float64, n)
	dual = make([]float64, n)
	z := make([]float64, m)
	index := make([]int, n)
	for i := range index {
		index[i] = i
	}

	// ℙ = index[:np], ℤ = index[np:]. Start from 𝐱 = 0 with every index in ℤ.
	np := 0
	iter := 0

	term := func() ([]float64, []float64, float64, error) {
		if np < m {
			rnorm = blas64.Nrm2(blas64.Vector{N: m - np, Data: b[np:], Inc: 1})
		} else {
			for i := range dual {
				dual[i] = zero
			}
		}
		if iter > maxIter {
			err = ErrMaxIterations
		}
		return x, dual, rnorm, err
	}

	for {
		// Quit once ℤ is empty or m columns have been triangularized.
		if np >= n || np >= m {
			return term()
		}

		// Dual vector 𝐰 = 𝐀ᵀ(𝐛 - 𝐀𝐱) over ℤ. With 𝐱ⱼ = 0 for j ∈ ℤ this
		// reduces to the untriangularized rows of (𝐐𝐀)ᵀ𝐐𝐛.
		for _, j := range index[np:] {
			dual[j] = blas64.Dot(
				blas64.Vector{N: m - np, Data: a[np+lda*j:], Inc: 1},
				blas64.Vector{N: m - np, Data: b[np:], Inc: 1})
		}

		for {
			// Find t ∈ ℤ with the largest dual component.
			wmax, izmax := zero, -1
			for i, j := range index[np:] {
				if dual[j] > wmax {
					wmax, izmax = dual[j], np+i
				}
			}

			// 𝐰ⱼ ≤ 0 ∀j ∈ ℤ certifies the Kuhn-Tucker conditions.
			if wmax <= zero {
				return term()
			}

			j := index[izmax]
			aj := a[lda*j : lda*j+m]

			// Candidate Householder pivot for column j.
			asave := aj[np]
			up := house(np, np+1, m, aj, 1)

			// Reject columns that are nearly linearly dependent on ℙ, and
			// candidates whose proposed coefficient would not be positive.
			accept := false
			unorm := blas64.Nrm2(blas64.Vector{N: np, Data: aj, Inc: 1})
			if math.Abs(aj[np])*factor >= unorm*eps {
				copy(z[:m], b[:m])
				applyHouse(np, np+1, m, aj, 1, up, z, 1, 1, 1)
				accept = z[np]/aj[np] > zero
			}
			if !accept {
				aj[np] = asave
				dual[j] = zero
				continue
			}

			// Adopt column j: update 𝐐𝐛, move j from ℤ to ℙ, sweep the
			// reflection through the remaining ℤ columns.
			copy(b[:m], z[:m])
			index[izmax] = index[np]
			index[np] = j
			np++

			for _, jj := range index[np:] {
				applyHouse(np-1, np, m, aj, 1, up, a[lda*jj:], 1, lda, 1)
			}
			for i := np; i < m; i++ {
				aj[i] = zero
			}
			dual[j] = zero
			break
		}

		// The unconstrained solution on ℙ may have turned some coefficients
		// negative; iterate until every violator is back in ℤ.
		for {
			// Back-substitute the triangular system for the candidate 𝐬.
			for ip, jj := np-1, -1; ip >= 0; ip-- {
				if jj >= 0 {
					blas64.Axpy(-z[ip+1],
						blas64.Vector{N: ip + 1, Data: a[lda*jj:], Inc: 1},
						blas64.Vector{N: ip + 1, Data: z, Inc: 1})
				}
				jj = index[ip]
				z[ip] /= a[ip+lda*jj]
			}

			if iter++; iter > maxIter {
				return term()
			}

			// Largest step α toward 𝐬 that keeps the iterate feasible:
			// α = 𝐱ₜ/(𝐱ₜ-𝐬ₜ) minimized over t ∈ ℙ with 𝐬ₜ ≤ 0.
			alpha, jj := 2.0, -1
			for ip, l := range index[:np] {
				if z[ip] <= zero {
					if t := -x[l] / (z[ip] - x[l]); alpha > t {
						alpha, jj = t, ip
					}
				}
			}

			// All coefficients feasible: adopt 𝐬 and return to the main loop.
			if jj < 0 {
				for ip, idx := range index[:np] {
					x[idx] = z[ip]
				}
				break
			}

			// Interpolate 𝐱 += α(𝐬 - 𝐱); the blocking coefficient lands on 0.
			for ip, l := range index[:np] {
				x[l] += alpha * (z[ip] - x[l])
			}

			for jj >= 0 {
				// Move the blocking index from ℙ to ℤ, restoring the
				// triangular factor with Givens rotations.
				i := index[jj]
				x[i] = zero
				for k := jj + 1; k < np; k++ {
					ii := index[k]
					ci := a[lda*ii:]
					index[k-1] = ii
					var cc, ss float64
					cc, ss, ci[k-1] = givens(ci[k-1], ci[k])
					ci[k] = zero
					for l := 0; l < n; l++ {
						if l != ii {
							cl := a[lda*l:]
							cl[k-1], cl[k] = rotate(cc, ss, cl[k-1], cl[k])
						}
					}
					b[k-1], b[k] = rotate(cc, ss, b[k-1], b[k])
				}
				np--
				index[np] = i

				// The remaining coefficients in ℙ should be feasible by the
				// choice of α; any that went non-positive through round-off
				// are removed as well.
				jj = -1
				for ip := 0; ip < np; ip++ {
					if x[index[ip]] <= zero {
						jj = ip
						break
					}
				}
			}

			// Solve again with the updated 𝐐𝐛.
			copy(z[:m], b[:m])
		}
	}
}
