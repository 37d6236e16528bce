// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command leastnorm generates a random feasible complex system 𝐀𝐱 = 𝐛 and
// prints the minimum ℓ2-norm and ℓ∞-norm solutions found through the
// block-real encoding.
package main

import (
	"flag"
	"fmt"
	"math/cmplx"
	"os"
	"strings"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"

	"github.com/curioloop/leastnorm/minnorm"
)

var (
	m      int
	n      int
	seed   uint64
	tol    float64
	method string
)

func init() {
	flag.IntVar(&m, "m", 3, "number of constraint rows")
	flag.IntVar(&n, "n", 8, "number of complex unknowns")
	flag.Uint64Var(&seed, "seed", 1, "random seed")
	flag.Float64Var(&tol, "tol", 0, "feasibility tolerance (0 for default)")
	flag.StringVar(&method, "method", "lq", "l2 backing routine: lq or ldp")
}

func main() {
	flag.Parse()

	if m <= 0 || n <= 0 || m > n {
		fmt.Fprintln(os.Stderr, "leastnorm: require 0 < m ≤ n")
		os.Exit(2)
	}

	var l2Method minnorm.Method
	switch method {
	case "lq":
		l2Method = minnorm.MethodLQ
	case "ldp":
		l2Method = minnorm.MethodLDP
	default:
		fmt.Fprintln(os.Stderr, "leastnorm: unknown method", method)
		os.Exit(2)
	}

	a, b, _ := minnorm.RandSystem(m, n, rand.NewSource(seed))

	fmt.Printf("A (%d×%d):\n%s", m, n, formatCMat(a))
	fmt.Printf("b:\n%s\n", formatCVec(b))

	for _, norm := range []minnorm.Norm{minnorm.L2, minnorm.LInf} {
		res, err := minnorm.Solve(minnorm.Problem{
			A: a, B: b,
			Norm:   norm,
			Method: l2Method,
			Tol:    tol,
		})
		if err != nil {
			fmt.Fprintln(os.Stderr, "leastnorm:", err)
			os.Exit(1)
		}

		name := "‖x‖₂"
		if norm == minnorm.LInf {
			name = "max|zᵢ|"
		}
		if res.Status != minnorm.Optimal {
			fmt.Printf("minimize %s: %s %s\n", name, res.Status, res.Message)
			continue
		}
		fmt.Printf("minimize %s = %.9f\n", name, res.Value)
		fmt.Printf("x:\n%s", formatCVec(res.X))
		fmt.Printf("residual ‖Ax-b‖∞ = %.3e\n\n", residual(a, res.X, b))
	}
}

// residual computes ‖𝐀𝐱 - 𝐛‖∞ over the complex entries.
func residual(a *mat.CDense, x, b []complex128) float64 {
	m, n := a.Dims()
	worst := 0.0
	for i := 0; i < m; i++ {
		var sum complex128
		for j := 0; j < n; j++ {
			sum += a.At(i, j) * x[j]
		}
		if r := cmplx.Abs(sum - b[i]); r > worst {
			worst = r
		}
	}
	return worst
}

func formatCMat(a *mat.CDense) string {
	m, n := a.Dims()
	rows := make([][]complex128, m)
	for i := range rows {
		rows[i] = make([]complex128, n)
		for j := range rows[i] {
			rows[i][j] = a.At(i, j)
		}
	}
	return formatRows(rows)
}

func formatCVec(v []complex128) string {
	rows := make([][]complex128, len(v))
	for i, x := range v {
		rows[i] = []complex128{x}
	}
	return formatRows(rows)
}

func formatRows(rows [][]complex128) string {
	var sb strings.Builder
	last := len(rows) - 1
	for i, row := range rows {
		switch {
		case last == 0:
			sb.WriteString("[")
		case i == 0:
			sb.WriteString("⎡")
		case i == last:
			sb.WriteString("⎣")
		default:
			sb.WriteString("⎢")
		}
		for j, v := range row {
			if j > 0 {
				sb.WriteString("  ")
			}
			sb.WriteString(fmt.Sprintf("%8.4f%+8.4fi", real(v), imag(v)))
		}
		switch {
		case last == 0:
			sb.WriteString(" ]\n")
		case i == 0:
			sb.WriteString(" ⎤\n")
		case i == last:
			sb.WriteString(" ⎦\n")
		default:
			sb.WriteString(" ⎥\n")
		}
	}
	return sb.String()
}
