// Copyright (c) 2023 Colin McRae

package tridiagops

import (
	"fmt"
	"math"

	"tridiag/householder"
	"tridiag/matrix"
)

// NegligibleThreshold is the scale against which the squared magnitude of
// A(2,0) is compared in the 3 x 3 fast path. A squared magnitude at or below
// it means the entry carries no off-band mass worth reducing and the matrix
// is treated as already tridiagonal. The value is the customary comparison
// precision for float64 arithmetic (much-smaller-than-one at double
// precision).
const NegligibleThreshold = 1e-12

// DecomposeInPlace computes the tridiagonal decomposition of the symmetric
// matrix held in the lower triangle of mat, dispatching on the order n:
// a trivial path for n == 1, a closed-form path for n == 3 and the general
// packed reduction otherwise. The diagonal of T is written to diag and its
// off-diagonal to subdiag; neither is resized. If extractQ is set, mat is
// destructively overwritten with the explicit orthogonal matrix Q; otherwise
// the lower triangle of mat is left in an unspecified reduced state.
//
// mat must be square of order n >= 1, len(diag) must be n and len(subdiag)
// must be n-1; violations are programming errors and panic.
func DecomposeInPlace(mat *matrix.Matrix, diag, subdiag []float64, extractQ bool) {
	n := checkDecomposition(mat.NumRows(), mat.NumCols(), len(diag), len(subdiag), "DecomposeInPlace")
	switch n {
	case 1:
		diag[0] = mat.At(0, 0)
		if extractQ {
			mat.Put(0, 0, 1)
		}
	case 3:
		decompose3(mat, diag, subdiag, extractQ)
	default:
		hCoeffs := make([]float64, n-1)
		ReduceInPlace(mat, hCoeffs)
		for i := 0; i < n; i++ {
			diag[i] = mat.At(i, i)
		}
		for i := 0; i < n-1; i++ {
			subdiag[i] = mat.At(i+1, i)
		}
		if extractQ {
			// One-way transition: materializing Q destroys the packed
			// encoding the sequence reads from, so expand first, then
			// overwrite.
			q := householder.NewSequence(mat, hCoeffs).Materialize()
			mat.Copy(q)
		}
	}
}

// DecomposeComplexInPlace is the Hermitian counterpart of DecomposeInPlace.
// The tridiagonal matrix T is real even for complex input; if extractQ is
// set, mat is destructively overwritten with the explicit unitary matrix Q.
// The closed-form 3 x 3 path exists for real scalars only: complex entries
// carry phases its fixed rotation block cannot express, so every order
// n > 1 runs the general packed reduction.
func DecomposeComplexInPlace(mat *matrix.ComplexMatrix, diag, subdiag []float64, extractQ bool) {
	n := checkDecomposition(mat.NumRows(), mat.NumCols(), len(diag), len(subdiag), "DecomposeComplexInPlace")
	switch n {
	case 1:
		diag[0] = real(mat.At(0, 0))
		if extractQ {
			mat.Put(0, 0, 1)
		}
	default:
		hCoeffs := make([]complex128, n-1)
		ReduceHermitianInPlace(mat, hCoeffs)
		for i := 0; i < n; i++ {
			diag[i] = real(mat.At(i, i))
		}
		for i := 0; i < n-1; i++ {
			subdiag[i] = real(mat.At(i+1, i))
		}
		if extractQ {
			q := householder.NewComplexSequence(mat, hCoeffs, true).Materialize()
			mat.Copy(q)
		}
	}
}

// decompose3 reduces a symmetric 3 x 3 matrix in closed form: a single
// reflector fixing e_0 and rotating the span of e_1, e_2 zeroes A(2,0).
// Within floating-point tolerance the diagonal matches the general
// algorithm's; the off-diagonal matches it up to the reflector sign
// convention.
func decompose3(mat *matrix.Matrix, diag, subdiag []float64, extractQ bool) {
	diag[0] = mat.At(0, 0)
	v1norm2 := mat.At(2, 0) * mat.At(2, 0)
	if v1norm2 <= NegligibleThreshold {
		// Already effectively tridiagonal.
		diag[1] = mat.At(1, 1)
		diag[2] = mat.At(2, 2)
		subdiag[0] = mat.At(1, 0)
		subdiag[1] = mat.At(2, 1)
		if extractQ {
			setIdentity3(mat)
		}
		return
	}
	beta := math.Sqrt(mat.At(1, 0)*mat.At(1, 0) + v1norm2)
	invBeta := 1 / beta
	m01 := mat.At(1, 0) * invBeta
	m02 := mat.At(2, 0) * invBeta
	q := 2*m01*mat.At(2, 1) + m02*(mat.At(2, 2)-mat.At(1, 1))
	diag[1] = mat.At(1, 1) + m02*q
	diag[2] = mat.At(2, 2) - m02*q
	subdiag[0] = beta
	subdiag[1] = mat.At(2, 1) - m01*q
	if extractQ {
		mat.Put(0, 0, 1)
		mat.Put(0, 1, 0)
		mat.Put(0, 2, 0)
		mat.Put(1, 0, 0)
		mat.Put(1, 1, m01)
		mat.Put(1, 2, m02)
		mat.Put(2, 0, 0)
		mat.Put(2, 1, m02)
		mat.Put(2, 2, -m01)
	}
}

func setIdentity3(mat *matrix.Matrix) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if i == j {
				mat.Put(i, j, 1)
			} else {
				mat.Put(i, j, 0)
			}
		}
	}
}

func checkDecomposition(numRows, numCols, diagLen, subdiagLen int, caller string) int {
	if numRows != numCols || numRows < 1 {
		panic(fmt.Sprintf(
			"tridiagops: %s requires a square matrix of positive order, got %d x %d",
			caller, numRows, numCols,
		))
	}
	if diagLen != numRows || subdiagLen != numRows-1 {
		panic(fmt.Sprintf(
			"tridiagops: %s requires len(diag) = %d and len(subdiag) = %d, got %d and %d",
			caller, numRows, numRows-1, diagLen, subdiagLen,
		))
	}
	return numRows
}
