// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package blockreal rewrites complex linear systems as real ones of twice the dimension.
//
// Multiplication by a complex scalar a = α + βi acts on (𝚁𝚎 𝑥, 𝙸𝚖 𝑥) as the 2×2
// rotation-scaling block
//
//	⎡ α -β ⎤
//	⎣ β  α ⎦
//
// so a complex constraint 𝐀𝐱 = 𝐛 with 𝐀 ∈ ℂᵐˣⁿ is exactly equivalent to the real
// constraint 𝐀ₛ𝐳 = 𝐛ₛ where
//
//	𝐀ₛ = ⎡ 𝚁𝚎 𝐀  -𝙸𝚖 𝐀 ⎤   𝐛ₛ = ⎡ 𝚁𝚎 𝐛 ⎤   𝐳 = ⎡ 𝚁𝚎 𝐱 ⎤
//	     ⎣ 𝙸𝚖 𝐀   𝚁𝚎 𝐀 ⎦        ⎣ 𝙸𝚖 𝐛 ⎦       ⎣ 𝙸𝚖 𝐱 ⎦
//
// The substitution is linear and introduces no approximation, which lets a
// real-valued convex solver handle complex variables it cannot represent natively.
package blockreal

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// ShapeError reports input dimensions inconsistent with the stated m and n.
type ShapeError struct {
	Op   string
	Want string
	Got  string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("blockreal: %s: want %s, got %s", e.Op, e.Want, e.Got)
}

// Encode builds the real block system (𝐀ₛ, 𝐛ₛ) from the complex system (𝐀, 𝐛).
// The result is a (2m)×(2n) dense matrix and a 2m-vector laid out as
// 𝐀ₛ = [𝚁𝚎 𝐀, -𝙸𝚖 𝐀; 𝙸𝚖 𝐀, 𝚁𝚎 𝐀] and 𝐛ₛ = [𝚁𝚎 𝐛; 𝙸𝚖 𝐛].
// A ShapeError is returned before any encoding when a is empty or len(b)
// does not match the row count of a.
func Encode(a *mat.CDense, b []complex128) (*mat.Dense, []float64, error) {
	if a == nil {
		return nil, nil, &ShapeError{Op: "encode", Want: "m×n matrix", Got: "nil"}
	}
	m, n := a.Dims()
	if m == 0 || n == 0 {
		return nil, nil, &ShapeError{Op: "encode", Want: "m,n ≥ 1", Got: fmt.Sprintf("%d×%d", m, n)}
	}
	if len(b) != m {
		return nil, nil, &ShapeError{Op: "encode", Want: fmt.Sprintf("%d-vector", m), Got: fmt.Sprintf("%d-vector", len(b))}
	}

	as := mat.NewDense(2*m, 2*n, nil)
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			v := a.At(i, j)
			re, im := real(v), imag(v)
			as.Set(i, j, re)
			as.Set(i, n+j, -im)
			as.Set(m+i, j, im)
			as.Set(m+i, n+j, re)
		}
	}

	bs := make([]float64, 2*m)
	for i, v := range b {
		bs[i] = real(v)
		bs[m+i] = imag(v)
	}
	return as, bs, nil
}

// Stack returns the real 2n-vector [𝚁𝚎 𝐱; 𝙸𝚖 𝐱] for a complex n-vector 𝐱.
func Stack(x []complex128) []float64 {
	n := len(x)
	z := make([]float64, 2*n)
	for i, v := range x {
		z[i] = real(v)
		z[n+i] = imag(v)
	}
	return z
}

// Unstack reconstructs the complex n-vector 𝐱 from a stacked real 2n-vector,
// pairing zᵢ with zᵢ₊ₙ as (real, imag). A vector of odd length has no valid
// split point and fails with a ShapeError rather than truncating.
func Unstack(z []float64) ([]complex128, error) {
	if len(z)%2 != 0 {
		return nil, &ShapeError{Op: "unstack", Want: "even-length vector", Got: fmt.Sprintf("%d-vector", len(z))}
	}
	n := len(z) / 2
	x := make([]complex128, n)
	for i := range x {
		x[i] = complex(z[i], z[n+i])
	}
	return x, nil
}
