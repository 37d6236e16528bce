// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lsdist

import "math"

// house constructs the Householder reflection 𝐐 = 𝐈ₘ - 𝛃⁻¹𝐮𝐮ᵀ (𝛃 = s·𝐮ₚ) that
// zeros components l through m-1 of the pivot vector v, with pivot index p
// satisfying 0 ≤ p < l. If l ≥ m the transformation degenerates to identity.
//
// On return v holds the quantities defining 𝐮 with v[p·inc] replaced by the
// pivot image s; the pivot component 𝐮ₚ is returned separately.
//
// C.L. Lawson, R.J. Hanson, 'Solving least squares problems' Prentice Hall,
// 1974. (revised 1995 edition) Chapters 10.
func house(p, l, m int, v []float64, inc int) (up float64) {
	if p < 0 || p >= l || l >= m {
		return
	}

	lp := p * inc
	// Scale by the largest magnitude to avoid overflow in the norm.
	maxV := math.Abs(v[lp])
	for j := l; j < m; j++ {
		maxV = math.Max(math.Abs(v[j*inc]), maxV)
	}
	if maxV <= zero {
		return
	}

	inv := one / maxV
	sum := (v[lp] * inv) * (v[lp] * inv)
	for j := l; j < m; j++ {
		sum += (v[j*inc] * inv) * (v[j*inc] * inv)
	}

	// s = -𝚜𝚐𝚗(vₚ)·(vₚ² + ∑vᵢ²)¹ᐟ²
	s := maxV * math.Sqrt(sum)
	if v[lp] > zero {
		s = -s
	}

	up = v[lp] - s
	v[lp] = s
	return
}

// applyHouse applies the reflection built by house to ncv column vectors stored
// in c, each with element stride ice and vector stride icv:
//
//	𝐐𝐜 = 𝐜 + 𝛃⁻¹(𝐮ᵀ𝐜)𝐮
func applyHouse(p, l, m int, u []float64, incU int, up float64, c []float64, ice, icv, ncv int) {
	if p < 0 || p >= l || l >= m || ncv <= 0 {
		return
	}

	b := u[p*incU] * up // 𝛃 = s·𝐮ₚ
	if b >= zero {
		// 𝐐 = 𝐈ₘ
		return
	}
	b = one / b

	for j := 0; j < ncv; j++ {
		base := ice*p + icv*j
		// 𝐮ᵀ𝐜 = 𝐮ₚ𝐜ₚ + ∑𝐮ᵢ𝐜ᵢ (l ≤ i < m)
		sm := c[base] * up
		ic := base + ice*(l-p)
		for i := l; i < m; i++ {
			sm += c[ic] * u[i*incU]
			ic += ice
		}
		if sm == zero {
			continue
		}
		sm *= b
		c[base] += sm * up
		ic = base + ice*(l-p)
		for i := l; i < m; i++ {
			c[ic] += sm * u[i*incU]
			ic += ice
		}
	}
}

// givens computes the 2×2 rotation
//
//	⎡ c s⎤⎡x₁⎤ = ⎡(x₁²+x₂²)¹ᐟ²⎤
//	⎣-s c⎦⎣x₂⎦   ⎣     0      ⎦
//
// returning c, s and the rotated leading component.
//
// C.L. Lawson, R.J. Hanson, 'Solving least squares problems' Prentice Hall,
// 1974. (revised 1995 edition) Chapters 3.
func givens(a, b float64) (c, s, r float64) {
	if xa, xb := math.Abs(a), math.Abs(b); xa > xb {
		xr := b / a
		yr := math.Sqrt(1 + xr*xr)
		c = math.Copysign(1/yr, a)
		s = c * xr
		r = xa * yr
	} else if xb > 0 {
		xr := a / b
		yr := math.Sqrt(1 + xr*xr)
		s = math.Copysign(1/yr, b)
		c = s * xr
		r = xb * yr
	} else {
		s = 1
	}
	return
}

// rotate applies the rotation computed by givens to the pair (x, y).
func rotate(c, s, x, y float64) (xr, yr float64) {
	return c*x + s*y, -s*x + c*y
}
