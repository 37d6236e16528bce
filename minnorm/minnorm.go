// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package minnorm solves complex least-norm problems
//
//	𝚖𝚒𝚗 ‖𝐱‖ₚ subject to 𝐀𝐱 = 𝐛  (𝐀 ∈ ℂᵐˣⁿ, 𝐛 ∈ ℂᵐ, p ∈ {2, ∞})
//
// by encoding the complex constraint as a real block system with package
// blockreal, handing the resulting real program to generic real solvers, and
// reconstructing the complex solution from the real solution vector.
//
// The problem set is closed: exactly two norm objectives over one affine
// equality. For p = 2 the minimum-norm solution is computed either from an LQ
// factorization or by least-distance programming. For p = ∞ the objective
// 𝚖𝚊𝚡|𝐳ᵢ| over the stacked real and imaginary parts is bounded by a scalar t
// with -t ≤ 𝐳ᵢ ≤ t and minimized as a linear program.
//
// A solve is synchronous and allocates fresh intermediate state per call, so
// distinct goroutines may solve concurrently without coordination.
package minnorm

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/curioloop/leastnorm/blockreal"
)

const (
	// defaultTol is the feasibility tolerance for the equality residual.
	defaultTol = 1e-9
	// lpTol is the convergence tolerance handed to the simplex solver.
	lpTol = 1e-10
)

// Norm selects the objective ‖𝐱‖ₚ to minimize.
type Norm int

const (
	// L2 minimizes the Euclidean norm of 𝐱, equal to the Euclidean norm of
	// the stacked real vector [𝚁𝚎 𝐱; 𝙸𝚖 𝐱].
	L2 Norm = iota
	// LInf minimizes the maximum absolute entry of the stacked real vector,
	// i.e. the largest magnitude among all real and imaginary parts.
	LInf
)

// Method selects the backing routine for the L2 objective.
// The LInf objective always goes through the simplex solver.
type Method int

const (
	// MethodLQ computes the minimum-norm solution from an LQ factorization
	// of the block matrix and checks the equality residual afterwards.
	MethodLQ Method = iota
	// MethodLDP solves the equivalent least-distance program through the
	// Lawson-Hanson NNLS kernel.
	MethodLDP
)

// Status is the outcome reported by the backing solver, propagated verbatim.
type Status int

const (
	// Optimal means a solution was found; Result.X, Z and Value are valid.
	Optimal Status = iota
	// Infeasible means the constraints admit no solution. The feasibility
	// precondition is the caller's responsibility and is not re-validated;
	// the status is reported without retry.
	Infeasible
	// Unbounded is not expected for norm objectives, which are bounded below
	// by 0. It is surfaced as a solver-level anomaly, never masked.
	Unbounded
	// SolverFailure is an opaque failure of the backing solver;
	// Result.Message carries its diagnostic uninterpreted.
	SolverFailure
)

func (s Status) String() string {
	switch s {
	case Optimal:
		return "optimal"
	case Infeasible:
		return "infeasible"
	case Unbounded:
		return "unbounded"
	case SolverFailure:
		return "solver failure"
	}
	return "unknown"
}

// Problem specifies a complex least-norm problem over the constraint 𝐀𝐱 = 𝐛.
//
// The matrix is assumed to have full row rank with m < n; this invariant is
// not verified, only shape consistency is. A rank-deficient or inconsistent
// system surfaces through Result.Status.
type Problem struct {
	A *mat.CDense  // m×n complex constraint matrix
	B []complex128 // m-vector right side
	// Norm is the objective to minimize.
	Norm Norm
	// Method selects the L2 backing routine; ignored for LInf.
	Method Method
	// Tol is the equality-feasibility tolerance; 0 means 1e-9.
	Tol float64
	// MaxIter caps the NNLS active-set iterations for MethodLDP;
	// 0 or less picks the kernel default.
	MaxIter int
}

// Result is the tagged outcome of a solve.
type Result struct {
	Status Status
	// Value is the optimal objective ‖𝐱‖ₚ, valid only when Status is Optimal.
	Value float64
	// X is the reconstructed complex solution, valid only for Optimal.
	X []complex128
	// Z is the real solution vector [𝚁𝚎 𝐱; 𝙸𝚖 𝐱], valid only for Optimal.
	Z []float64
	// Message carries the backing solver diagnostic for SolverFailure.
	Message string
}

func (p *Problem) validate() error {
	var m, n int
	if p.A != nil {
		m, n = p.A.Dims()
	}
	switch {
	case p.A == nil:
		return errors.New("minnorm: constraint matrix is required")
	case m == 0 || n == 0:
		return &blockreal.ShapeError{Op: "solve", Want: "m,n ≥ 1", Got: "empty matrix"}
	case m > n:
		return errors.New("minnorm: constraint rows must not exceed unknowns")
	case len(p.B) != m:
		return &blockreal.ShapeError{Op: "solve", Want: fmt.Sprintf("%d-vector", m), Got: fmt.Sprintf("%d-vector", len(p.B))}
	case p.Norm != L2 && p.Norm != LInf:
		return errors.New("minnorm: unknown norm order")
	case p.Method != MethodLQ && p.Method != MethodLDP:
		return errors.New("minnorm: unknown solve method")
	case p.Tol < 0 || math.IsNaN(p.Tol):
		return errors.New("minnorm: tolerance must not be negative")
	}
	return nil
}

// Solve encodes the problem, runs the selected backing solver, and decodes the
// complex solution. The error return is reserved for precondition violations
// (shapes, options); solver outcomes are reported in Result.Status and are
// never retried.
func Solve(p Problem) (*Result, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}

	as, bs, err := blockreal.Encode(p.A, p.B)
	if err != nil {
		return nil, err
	}

	tol := p.Tol
	if tol == 0 {
		tol = defaultTol
	}

	var res *Result
	switch {
	case p.Norm == LInf:
		res = solveLInf(as, bs)
	case p.Method == MethodLDP:
		res = solveLDP(as, bs, tol, p.MaxIter)
	default:
		res = solveLQ(as, bs, tol)
	}

	if res.Status == Optimal {
		x, err := blockreal.Unstack(res.Z)
		if err != nil {
			return nil, err
		}
		res.X = x
	}
	return res, nil
}
