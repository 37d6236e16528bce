// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package minnorm

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// RandSystem draws a random feasible constraint system: an m×n complex matrix
// 𝐀 with iid standard-normal real and imaginary parts (full row rank almost
// surely for m ≤ n), a generating vector 𝐱₀ drawn the same way, and
// 𝐛 = 𝐀𝐱₀ so that 𝐛 lies in the range of 𝐀 by construction.
//
// Randomness comes exclusively from the supplied source: a fixed seed
// reproduces the same system, and there is no package-level RNG state.
func RandSystem(m, n int, src rand.Source) (a *mat.CDense, b, x0 []complex128) {
	if m <= 0 || n <= 0 {
		panic("minnorm: system dimensions must be positive")
	}

	normal := distuv.Normal{Mu: 0, Sigma: 1, Src: src}

	a = mat.NewCDense(m, n, nil)
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			a.Set(i, j, complex(normal.Rand(), normal.Rand()))
		}
	}

	x0 = make([]complex128, n)
	for j := range x0 {
		x0[j] = complex(normal.Rand(), normal.Rand())
	}

	b = make([]complex128, m)
	for i := range b {
		var sum complex128
		for j, x := range x0 {
			sum += a.At(i, j) * x
		}
		b[i] = sum
	}
	return a, b, x0
}
