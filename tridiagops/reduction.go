// Copyright (c) 2023 Colin McRae

// Package tridiagops computes the tridiagonal decomposition A = Q T Q* of a
// symmetric or Hermitian matrix: Q unitary, T real symmetric tridiagonal.
// The reduction runs in place over a packed buffer; see ReduceInPlace for the
// packed format.
package tridiagops

import (
	"fmt"
	"math/cmplx"

	"tridiag/householder"
	"tridiag/matrix"
)

// ReduceInPlace reduces the symmetric matrix held in the lower triangle of
// mat to packed tridiagonal form by n-1 Householder similarity
// transformations. On return:
//
//   - the strict upper triangle of mat is untouched,
//   - the diagonal of mat is the diagonal of T,
//   - the first sub-diagonal of mat is the off-diagonal of T,
//   - below the first sub-diagonal, column i holds the essential part of
//     reflector vector u_i (whose leading 1 is implicit and never stored),
//   - hCoeffs[i] is the coefficient h_i of reflector H_i = I - h_i u_i u_i^T,
//
// so that Q = H_0 H_1 ... H_{n-2}. The cost is 4n^3/3 flops (Golub & Van
// Loan, algorithm 8.3.1). mat must be square of order n >= 1 and hCoeffs must
// have exactly n-1 entries; violations are programming errors and panic.
func ReduceInPlace(mat *matrix.Matrix, hCoeffs []float64) {
	n := checkReduction(mat.NumRows(), mat.NumCols(), len(hCoeffs), "ReduceInPlace")
	var scratch []float64
	if n > 1 {
		scratch = make([]float64, n-1)
	}
	for i := 0; i < n-1; i++ {
		rem := n - i - 1
		v := scratch[:rem]
		for k := 0; k < rem; k++ {
			v[k] = mat.At(i+1+k, i)
		}
		tau, beta := householder.MakeReflector(v)

		// The essential part of the reflector stays packed in the column it
		// came from; v keeps the implicit leading 1 so the similarity
		// transform below treats the whole vector uniformly.
		for k := 1; k < rem; k++ {
			mat.Put(i+1+k, i, v[k])
		}
		v[0] = 1

		// The tail of hCoeffs is free until hCoeffs[i] is written at the end
		// of the iteration, so it doubles as storage for p.
		p := hCoeffs[i:]
		if err := mat.SymmetricMulVector(i+1, v, p); err != nil {
			panic(fmt.Sprintf("tridiagops: ReduceInPlace: %s", err.Error()))
		}
		var pDotV float64
		for k := 0; k < rem; k++ {
			p[k] *= tau
			pDotV += p[k] * v[k]
		}

		// p -= (tau/2)(p.v) v makes the rank-2 update below the two-sided
		// similarity transform H S H rather than a one-sided product.
		alpha := -0.5 * tau * pDotV
		for k := 0; k < rem; k++ {
			p[k] += alpha * v[k]
		}
		if err := mat.SymmetricRank2Update(i+1, v, p, -1); err != nil {
			panic(fmt.Sprintf("tridiagops: ReduceInPlace: %s", err.Error()))
		}

		mat.Put(i+1, i, beta)
		hCoeffs[i] = tau
	}
}

// ReduceHermitianInPlace is the complex counterpart of ReduceInPlace: it
// reduces the Hermitian matrix held in the lower triangle of mat to packed
// tridiagonal form, with Q = H_0 H_1 ... H_{n-2} built from the reflectors
// H_i = I - conj(h_i) u_i u_i^H.
// The diagonal and sub-diagonal of the packed result are real. mat must be
// square of order n >= 1 and hCoeffs must have exactly n-1 entries;
// violations are programming errors and panic.
func ReduceHermitianInPlace(mat *matrix.ComplexMatrix, hCoeffs []complex128) {
	n := checkReduction(mat.NumRows(), mat.NumCols(), len(hCoeffs), "ReduceHermitianInPlace")
	var scratch []complex128
	if n > 1 {
		scratch = make([]complex128, n-1)
	}
	for i := 0; i < n-1; i++ {
		rem := n - i - 1
		v := scratch[:rem]
		for k := 0; k < rem; k++ {
			v[k] = mat.At(i+1+k, i)
		}
		tau, beta := householder.MakeComplexReflector(v)
		for k := 1; k < rem; k++ {
			mat.Put(i+1+k, i, v[k])
		}
		v[0] = 1

		p := hCoeffs[i:]
		if err := mat.HermitianMulVector(i+1, v, p); err != nil {
			panic(fmt.Sprintf("tridiagops: ReduceHermitianInPlace: %s", err.Error()))
		}
		tauConj := cmplx.Conj(tau)
		var pDotV complex128
		for k := 0; k < rem; k++ {
			p[k] *= tauConj
			pDotV += cmplx.Conj(p[k]) * v[k]
		}
		alpha := tauConj * complex(-0.5, 0) * pDotV
		for k := 0; k < rem; k++ {
			p[k] += alpha * v[k]
		}
		if err := mat.HermitianRank2Update(i+1, v, p, -1); err != nil {
			panic(fmt.Sprintf("tridiagops: ReduceHermitianInPlace: %s", err.Error()))
		}

		mat.Put(i+1, i, complex(beta, 0))
		hCoeffs[i] = tau
	}
}

func checkReduction(numRows, numCols, numCoeffs int, caller string) int {
	if numRows != numCols || numRows < 1 {
		panic(fmt.Sprintf(
			"tridiagops: %s requires a square matrix of positive order, got %d x %d",
			caller, numRows, numCols,
		))
	}
	if numCoeffs != numRows-1 {
		panic(fmt.Sprintf(
			"tridiagops: %s requires %d coefficients for order %d, got %d",
			caller, numRows-1, numRows, numCoeffs,
		))
	}
	return numRows
}
