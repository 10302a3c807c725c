// Copyright (c) 2023 Colin McRae

package tridiagops

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"tridiag/matrix"
	"tridiag/util"
)

func TestDecomposeInPlaceOrder1(t *testing.T) {
	a, err := matrix.NewFromFloat64Array([]float64{7}, 1, 1)
	assert.NoError(t, err)
	diag := make([]float64, 1)
	DecomposeInPlace(a, diag, []float64{}, true)
	assert.Equal(t, 7.0, diag[0])
	assert.Equal(t, 1.0, a.At(0, 0))

	c, err := matrix.NewFromComplex128Array([]complex128{7}, 1, 1)
	assert.NoError(t, err)
	DecomposeComplexInPlace(c, diag, []float64{}, true)
	assert.Equal(t, 7.0, diag[0])
	assert.Equal(t, complex128(1), c.At(0, 0))
}

func TestDecomposeInPlaceOrder3(t *testing.T) {
	const tolerance = 1.e-12
	entries := []float64{
		4, 1, -2,
		1, 2, 0,
		-2, 0, 3,
	}

	a, err := matrix.NewFromFloat64Array(entries, 3, 3)
	assert.NoError(t, err)
	diag := make([]float64, 3)
	subdiag := make([]float64, 2)
	DecomposeInPlace(a, diag, subdiag, true)

	// v1norm2 = 4 is not negligible, so the reducing branch runs and the
	// off-diagonal starts with sqrt(1 + 4).
	assert.InDelta(t, math.Sqrt(5), subdiag[0], tolerance)

	// The general algorithm produces the same tridiagonal form, up to the
	// reflector sign convention on the off-diagonal.
	packed, err := matrix.NewFromFloat64Array(entries, 3, 3)
	assert.NoError(t, err)
	hCoeffs := make([]float64, 2)
	ReduceInPlace(packed, hCoeffs)
	for i := 0; i < 3; i++ {
		assert.InDeltaf(
			t, packed.At(i, i), diag[i], tolerance,
			"diag[%d]: fast path %f != general %f", i, diag[i], packed.At(i, i),
		)
	}
	for i := 0; i < 2; i++ {
		assert.InDeltaf(
			t, math.Abs(packed.At(i+1, i)), math.Abs(subdiag[i]), tolerance,
			"|subdiag[%d]|: fast path %f != general %f", i, subdiag[i], packed.At(i+1, i),
		)
	}

	// Q from the fast path is orthogonal and reconstructs A
	original, err := matrix.NewFromFloat64Array(entries, 3, 3)
	assert.NoError(t, err)
	qTrans, err := matrix.NewEmpty(0, 0).Transpose(a)
	assert.NoError(t, err)
	qtq, err := matrix.NewEmpty(0, 0).Mul(qTrans, a)
	assert.NoError(t, err)
	identity, err := matrix.NewIdentity(3)
	assert.NoError(t, err)
	equals, err := qtq.Equals(identity, tolerance)
	assert.NoError(t, err)
	assert.True(t, equals, "fast-path Q is not orthogonal")
	reconstructed := reconstruct(t, a, tridiagonalFromBands(diag, subdiag))
	equals, err = reconstructed.Equals(original, tolerance*10)
	assert.NoError(t, err)
	assert.Truef(t, equals, "fast-path Q T Q^T does not reproduce A:\n%s", reconstructed)
}

func TestDecomposeInPlaceOrder3AlreadyTridiagonal(t *testing.T) {
	entries := []float64{
		4, 1, 0,
		1, 2, 5,
		0, 5, 3,
	}

	a, err := matrix.NewFromFloat64Array(entries, 3, 3)
	assert.NoError(t, err)
	diag := make([]float64, 3)
	subdiag := make([]float64, 2)
	DecomposeInPlace(a, diag, subdiag, true)

	assert.Equal(t, []float64{4, 2, 3}, diag)
	assert.Equal(t, []float64{1, 5}, subdiag)
	identity, err := matrix.NewIdentity(3)
	assert.NoError(t, err)
	equals, err := a.Equals(identity, 0)
	assert.NoError(t, err)
	assert.True(t, equals, "Q should be the identity for an already-tridiagonal matrix")
}

func TestDecomposeInPlaceGeneralExtractQ(t *testing.T) {
	const n = 6
	const seed = 233417
	const tolerance = 1.e-10

	entries := util.RandomSymmetricEntries(n, testMaxEntry, seed)
	a, err := matrix.NewFromFloat64Array(entries, n, n)
	assert.NoError(t, err)
	original := matrix.NewEmpty(0, 0).Copy(a)
	diag := make([]float64, n)
	subdiag := make([]float64, n-1)
	DecomposeInPlace(a, diag, subdiag, true)

	// a now holds Q; materializing destroyed the packed encoding
	qTrans, err := matrix.NewEmpty(0, 0).Transpose(a)
	assert.NoError(t, err)
	qtq, err := matrix.NewEmpty(0, 0).Mul(qTrans, a)
	assert.NoError(t, err)
	identity, err := matrix.NewIdentity(n)
	assert.NoError(t, err)
	equals, err := qtq.Equals(identity, tolerance)
	assert.NoError(t, err)
	assert.True(t, equals, "extracted Q is not orthogonal")

	reconstructed := reconstruct(t, a, tridiagonalFromBands(diag, subdiag))
	equals, err = reconstructed.Equals(original, tolerance*float64(n)*testMaxEntry)
	assert.NoError(t, err)
	assert.True(t, equals, "Q T Q^T does not reproduce A after extractQ")
}

// Order 3 Hermitian input with genuinely complex phases takes the general
// reduction; a fixed real rotation block cannot zero A(2,0) when
// conj(A(1,0)) A(2,0) has nonzero imaginary part.
func TestDecomposeComplexInPlaceOrder3(t *testing.T) {
	const tolerance = 1.e-12
	entries := []complex128{
		4, 1 - 1i, -2 + 1i,
		1 + 1i, 2, 3i,
		-2 - 1i, -3i, 3,
	}

	a, err := matrix.NewFromComplex128Array(entries, 3, 3)
	assert.NoError(t, err)
	original, err := matrix.NewFromComplex128Array(entries, 3, 3)
	assert.NoError(t, err)
	diag := make([]float64, 3)
	subdiag := make([]float64, 2)
	DecomposeComplexInPlace(a, diag, subdiag, true)

	// |beta| = sqrt(|A(1,0)|^2 + |A(2,0)|^2) = sqrt(2 + 5), negated because
	// the reflector bends the column away from Re(A(1,0)) >= 0
	assert.InDelta(t, -math.Sqrt(7), subdiag[0], tolerance)

	// Results agree with the packed reduction run directly on the same input
	packed, err := matrix.NewFromComplex128Array(entries, 3, 3)
	assert.NoError(t, err)
	hCoeffs := make([]complex128, 2)
	ReduceHermitianInPlace(packed, hCoeffs)
	generalDiag := make([]float64, 3)
	generalSubdiag := make([]float64, 2)
	for i := 0; i < 3; i++ {
		generalDiag[i] = real(packed.At(i, i))
	}
	for i := 0; i < 2; i++ {
		generalSubdiag[i] = real(packed.At(i+1, i))
	}
	assert.Equal(t, 0.0, util.MaxAbsDiff(diag, generalDiag))
	assert.Equal(t, 0.0, util.MaxAbsDiff(subdiag, generalSubdiag))

	// Q is unitary and reconstructs A, phases included
	qH, err := matrix.NewComplexEmpty(0, 0).ConjugateTranspose(a)
	assert.NoError(t, err)
	qHq, err := matrix.NewComplexEmpty(0, 0).Mul(qH, a)
	assert.NoError(t, err)
	identity, err := matrix.NewComplexIdentity(3)
	assert.NoError(t, err)
	equals, err := qHq.Equals(identity, tolerance)
	assert.NoError(t, err)
	assert.True(t, equals, "Q is not unitary")
	reconstructed := reconstructComplex(t, a, complexTridiagonalFromBands(diag, subdiag))
	equals, err = reconstructed.Equals(original, tolerance*10)
	assert.NoError(t, err)
	assert.Truef(t, equals, "Q T Q^H does not reproduce A:\n%s", reconstructed)
}

func TestDecomposeComplexInPlaceOrder3AlreadyTridiagonal(t *testing.T) {
	entries := []complex128{
		4, 1, 0,
		1, 2, 5,
		0, 5, 3,
	}

	a, err := matrix.NewFromComplex128Array(entries, 3, 3)
	assert.NoError(t, err)
	diag := make([]float64, 3)
	subdiag := make([]float64, 2)
	DecomposeComplexInPlace(a, diag, subdiag, true)

	assert.Equal(t, []float64{4, 2, 3}, diag)
	assert.Equal(t, []float64{1, 5}, subdiag)
	identity, err := matrix.NewComplexIdentity(3)
	assert.NoError(t, err)
	equals, err := a.Equals(identity, 0)
	assert.NoError(t, err)
	assert.True(t, equals)
}

func TestDecomposeInPlaceContracts(t *testing.T) {
	a := matrix.NewEmpty(4, 4)
	assert.Panics(t, func() { DecomposeInPlace(a, make([]float64, 3), make([]float64, 3), false) })
	assert.Panics(t, func() { DecomposeInPlace(a, make([]float64, 4), make([]float64, 4), false) })
	assert.Panics(t, func() { DecomposeInPlace(matrix.NewEmpty(2, 3), make([]float64, 2), make([]float64, 1), false) })
	c := matrix.NewComplexEmpty(3, 3)
	assert.Panics(t, func() { DecomposeComplexInPlace(c, make([]float64, 3), make([]float64, 3), false) })
}
