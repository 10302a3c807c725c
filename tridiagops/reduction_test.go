// Copyright (c) 2023 Colin McRae

package tridiagops

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tridiag/householder"
	"tridiag/matrix"
	"tridiag/util"
)

const (
	testMaxEntry  = 10.0
	testTolerance = 1.e-10
)

// tridiagonalFromBands builds the explicit symmetric tridiagonal matrix with
// the given diagonal and off-diagonal.
func tridiagonalFromBands(diag, subdiag []float64) *matrix.Matrix {
	n := len(diag)
	retVal := matrix.NewEmpty(n, n)
	for i := 0; i < n; i++ {
		retVal.Put(i, i, diag[i])
	}
	for i := 0; i < n-1; i++ {
		retVal.Put(i+1, i, subdiag[i])
		retVal.Put(i, i+1, subdiag[i])
	}
	return retVal
}

func complexTridiagonalFromBands(diag, subdiag []float64) *matrix.ComplexMatrix {
	n := len(diag)
	retVal := matrix.NewComplexEmpty(n, n)
	for i := 0; i < n; i++ {
		retVal.Put(i, i, complex(diag[i], 0))
	}
	for i := 0; i < n-1; i++ {
		retVal.Put(i+1, i, complex(subdiag[i], 0))
		retVal.Put(i, i+1, complex(subdiag[i], 0))
	}
	return retVal
}

// reconstruct computes Q T Q^T from a materialized Q and explicit T.
func reconstruct(t *testing.T, q, matT *matrix.Matrix) *matrix.Matrix {
	qt, err := matrix.NewEmpty(0, 0).Mul(q, matT)
	assert.NoError(t, err)
	qTrans, err := matrix.NewEmpty(0, 0).Transpose(q)
	assert.NoError(t, err)
	retVal, err := matrix.NewEmpty(0, 0).Mul(qt, qTrans)
	assert.NoError(t, err)
	return retVal
}

func reconstructComplex(t *testing.T, q, matT *matrix.ComplexMatrix) *matrix.ComplexMatrix {
	qt, err := matrix.NewComplexEmpty(0, 0).Mul(q, matT)
	assert.NoError(t, err)
	qH, err := matrix.NewComplexEmpty(0, 0).ConjugateTranspose(q)
	assert.NoError(t, err)
	retVal, err := matrix.NewComplexEmpty(0, 0).Mul(qt, qH)
	assert.NoError(t, err)
	return retVal
}

func TestReduceInPlaceReconstruction(t *testing.T) {
	const minSeed = 91537
	const seedIncr = 419

	for testNbr, n := range []int{1, 2, 3, 4, 5, 8, 12} {
		entries := util.RandomSymmetricEntries(n, testMaxEntry, int64(minSeed+testNbr*seedIncr))
		a, err := matrix.NewFromFloat64Array(entries, n, n)
		assert.NoError(t, err)

		packed := matrix.NewEmpty(0, 0).Copy(a)
		hCoeffs := make([]float64, n-1)
		ReduceInPlace(packed, hCoeffs)

		diag := make([]float64, n)
		subdiag := make([]float64, n-1)
		for i := 0; i < n; i++ {
			diag[i] = packed.At(i, i)
		}
		for i := 0; i < n-1; i++ {
			subdiag[i] = packed.At(i+1, i)
		}

		q := householder.NewSequence(packed, hCoeffs).Materialize()
		reconstructed := reconstruct(t, q, tridiagonalFromBands(diag, subdiag))
		equals, err := reconstructed.Equals(a, testTolerance*float64(n)*testMaxEntry)
		assert.NoError(t, err)
		assert.Truef(
			t, equals,
			"n = %d: Q T Q^T does not reproduce A:\n%svs\n%s", n, reconstructed, a,
		)

		// Q^T Q = I
		qTrans, err := matrix.NewEmpty(0, 0).Transpose(q)
		assert.NoError(t, err)
		qtq, err := matrix.NewEmpty(0, 0).Mul(qTrans, q)
		assert.NoError(t, err)
		identity, err := matrix.NewIdentity(n)
		assert.NoError(t, err)
		equals, err = qtq.Equals(identity, testTolerance)
		assert.NoError(t, err)
		assert.Truef(t, equals, "n = %d: Q is not orthogonal", n)
	}
}

func TestReduceInPlacePreservesUpperTriangle(t *testing.T) {
	const n = 6
	const seed = 130649

	entries := util.RandomSymmetricEntries(n, testMaxEntry, seed)
	a, err := matrix.NewFromFloat64Array(entries, n, n)
	assert.NoError(t, err)
	packed := matrix.NewEmpty(0, 0).Copy(a)
	hCoeffs := make([]float64, n-1)
	ReduceInPlace(packed, hCoeffs)

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			assert.Equalf(
				t, a.At(i, j), packed.At(i, j),
				"strict upper triangle entry (%d, %d) was modified", i, j,
			)
		}
	}
}

func TestReduceHermitianInPlaceReconstruction(t *testing.T) {
	const minSeed = 175103
	const seedIncr = 631

	for testNbr, n := range []int{1, 2, 3, 5, 7} {
		entries := util.RandomHermitianEntries(n, testMaxEntry, int64(minSeed+testNbr*seedIncr))
		a, err := matrix.NewFromComplex128Array(entries, n, n)
		assert.NoError(t, err)

		packed := matrix.NewComplexEmpty(0, 0).Copy(a)
		hCoeffs := make([]complex128, n-1)
		ReduceHermitianInPlace(packed, hCoeffs)

		// The band of the packed buffer is real
		diag := make([]float64, n)
		subdiag := make([]float64, n-1)
		bandImag := make([]float64, 0, 2*n-1)
		for i := 0; i < n; i++ {
			diag[i] = real(packed.At(i, i))
			bandImag = append(bandImag, imag(packed.At(i, i)))
		}
		for i := 0; i < n-1; i++ {
			subdiag[i] = real(packed.At(i+1, i))
			bandImag = append(bandImag, imag(packed.At(i+1, i)))
		}
		assert.InDeltaf(
			t, 0, util.MaxAbs(bandImag), testTolerance,
			"n = %d: the packed band is not real", n,
		)

		q := householder.NewComplexSequence(packed, hCoeffs, true).Materialize()
		reconstructed := reconstructComplex(t, q, complexTridiagonalFromBands(diag, subdiag))
		equals, err := reconstructed.Equals(a, testTolerance*float64(n)*testMaxEntry)
		assert.NoError(t, err)
		assert.Truef(
			t, equals,
			"n = %d: Q T Q^H does not reproduce A:\n%svs\n%s", n, reconstructed, a,
		)

		// Q^H Q = I
		qH, err := matrix.NewComplexEmpty(0, 0).ConjugateTranspose(q)
		assert.NoError(t, err)
		qHq, err := matrix.NewComplexEmpty(0, 0).Mul(qH, q)
		assert.NoError(t, err)
		identity, err := matrix.NewComplexIdentity(n)
		assert.NoError(t, err)
		equals, err = qHq.Equals(identity, testTolerance)
		assert.NoError(t, err)
		assert.Truef(t, equals, "n = %d: Q is not unitary", n)
	}
}

func TestReduceInPlaceContracts(t *testing.T) {
	square := matrix.NewEmpty(4, 4)
	assert.Panics(t, func() { ReduceInPlace(matrix.NewEmpty(3, 4), make([]float64, 2)) })
	assert.Panics(t, func() { ReduceInPlace(square, make([]float64, 4)) })
	assert.Panics(t, func() { ReduceHermitianInPlace(matrix.NewComplexEmpty(2, 2), nil) })
}
