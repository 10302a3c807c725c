// Copyright (c) 2023 Colin McRae

package tridiagops

import (
	"fmt"

	"tridiag/householder"
	"tridiag/matrix"
)

// Tridiagonalization owns the state of a tridiagonal decomposition of a real
// symmetric matrix: the packed buffer and the reflector coefficients. The
// buffers are allocated once and repopulated by each Compute call, resized
// only when the input order changes. All result accessors require a
// successful Compute first and panic otherwise. A Tridiagonalization is not
// safe for concurrent use; independent instances are.
type Tridiagonalization struct {
	matrix        *matrix.Matrix
	hCoeffs       []float64
	isInitialized bool
}

// New returns an empty Tridiagonalization whose buffers are pre-sized for
// matrices of order sizeHint. The hint is only a hint: a Compute call with a
// different order reallocates.
func New(sizeHint int) *Tridiagonalization {
	if sizeHint < 2 {
		sizeHint = 2
	}
	return &Tridiagonalization{
		matrix:  matrix.NewEmpty(sizeHint, sizeHint),
		hCoeffs: make([]float64, sizeHint-1),
	}
}

// NewFromMatrix returns the tridiagonal decomposition of a, computed at
// construction time.
func NewFromMatrix(a *matrix.Matrix) *Tridiagonalization {
	return New(a.NumRows()).Compute(a)
}

// Compute copies a into the owned buffer, reduces it in place to packed
// tridiagonal form and returns the receiver, so calls can be chained. Only
// the lower triangle of a is read; the caller guarantees logical symmetry.
// Compute always runs the general reduction, whatever the order; the
// fixed-size fast paths belong to DecomposeInPlace. a must be square of
// positive order or Compute panics.
func (t *Tridiagonalization) Compute(a *matrix.Matrix) *Tridiagonalization {
	numRows, numCols := a.Dimensions()
	if numRows != numCols || numRows < 1 {
		panic(fmt.Sprintf(
			"tridiagops: Compute requires a square matrix of positive order, got %d x %d",
			numRows, numCols,
		))
	}
	t.matrix.Copy(a)
	if len(t.hCoeffs) != numRows-1 {
		t.hCoeffs = make([]float64, numRows-1)
	}
	ReduceInPlace(t.matrix, t.hCoeffs)
	t.isInitialized = true
	return t
}

// HouseholderCoefficients returns the reflector coefficients h_0 ... h_{n-2}.
// Together with the packed matrix they determine Q = H_0 H_1 ... H_{n-2}.
func (t *Tridiagonalization) HouseholderCoefficients() []float64 {
	t.assertInitialized()
	return t.hCoeffs
}

// PackedMatrix returns the packed buffer: the strict upper triangle of the
// input, the band of T on the diagonal and first sub-diagonal, and the
// essential parts of the reflector vectors below that. The returned matrix
// is the decomposition's own storage; it is valid until the next Compute.
func (t *Tridiagonalization) PackedMatrix() *matrix.Matrix {
	t.assertInitialized()
	return t.matrix
}

// MatrixQ returns the orthogonal matrix Q as a lazy reflector sequence
// reading the packed buffer, avoiding the O(n^3) expansion until it is
// actually needed. The sequence is valid until the next Compute.
func (t *Tridiagonalization) MatrixQ() *householder.Sequence {
	t.assertInitialized()
	return householder.NewSequence(t.matrix, t.hCoeffs)
}

// MatrixT materializes the tridiagonal matrix T: the band is copied from the
// packed buffer, the sub-diagonal is mirrored into the super-diagonal, and
// everything outside the band is zero.
func (t *Tridiagonalization) MatrixT() *matrix.Matrix {
	t.assertInitialized()
	n := t.matrix.NumRows()
	matT := matrix.NewEmpty(n, n)
	for i := 0; i < n; i++ {
		matT.Put(i, i, t.matrix.At(i, i))
	}
	for i := 0; i < n-1; i++ {
		b := t.matrix.At(i+1, i)
		matT.Put(i+1, i, b)
		matT.Put(i, i+1, b)
	}
	return matT
}

// Diagonal returns the diagonal of T, extracted from the packed buffer.
func (t *Tridiagonalization) Diagonal() []float64 {
	t.assertInitialized()
	n := t.matrix.NumRows()
	diag := make([]float64, n)
	for i := 0; i < n; i++ {
		diag[i] = t.matrix.At(i, i)
	}
	return diag
}

// SubDiagonal returns the off-diagonal of T, extracted from the packed
// buffer.
func (t *Tridiagonalization) SubDiagonal() []float64 {
	t.assertInitialized()
	n := t.matrix.NumRows()
	subdiag := make([]float64, n-1)
	for i := 0; i < n-1; i++ {
		subdiag[i] = t.matrix.At(i+1, i)
	}
	return subdiag
}

func (t *Tridiagonalization) assertInitialized() {
	if !t.isInitialized {
		panic("tridiagops: Tridiagonalization is not initialized")
	}
}

// ComplexTridiagonalization owns the state of a tridiagonal decomposition of
// a Hermitian matrix. T stays real; Q is unitary. The same lifecycle and
// precondition rules as Tridiagonalization apply.
type ComplexTridiagonalization struct {
	matrix        *matrix.ComplexMatrix
	hCoeffs       []complex128
	isInitialized bool
}

// NewComplex returns an empty ComplexTridiagonalization whose buffers are
// pre-sized for matrices of order sizeHint.
func NewComplex(sizeHint int) *ComplexTridiagonalization {
	if sizeHint < 2 {
		sizeHint = 2
	}
	return &ComplexTridiagonalization{
		matrix:  matrix.NewComplexEmpty(sizeHint, sizeHint),
		hCoeffs: make([]complex128, sizeHint-1),
	}
}

// NewComplexFromMatrix returns the tridiagonal decomposition of a, computed
// at construction time.
func NewComplexFromMatrix(a *matrix.ComplexMatrix) *ComplexTridiagonalization {
	return NewComplex(a.NumRows()).Compute(a)
}

// Compute copies a into the owned buffer, reduces it in place to packed
// tridiagonal form and returns the receiver. Only the lower triangle of a is
// read; the caller guarantees the matrix is Hermitian. a must be square of
// positive order or Compute panics.
func (t *ComplexTridiagonalization) Compute(a *matrix.ComplexMatrix) *ComplexTridiagonalization {
	numRows, numCols := a.Dimensions()
	if numRows != numCols || numRows < 1 {
		panic(fmt.Sprintf(
			"tridiagops: Compute requires a square matrix of positive order, got %d x %d",
			numRows, numCols,
		))
	}
	t.matrix.Copy(a)
	if len(t.hCoeffs) != numRows-1 {
		t.hCoeffs = make([]complex128, numRows-1)
	}
	ReduceHermitianInPlace(t.matrix, t.hCoeffs)
	t.isInitialized = true
	return t
}

// HouseholderCoefficients returns the reflector coefficients h_0 ... h_{n-2}.
func (t *ComplexTridiagonalization) HouseholderCoefficients() []complex128 {
	t.assertInitialized()
	return t.hCoeffs
}

// PackedMatrix returns the packed buffer; see
// Tridiagonalization.PackedMatrix. Valid until the next Compute.
func (t *ComplexTridiagonalization) PackedMatrix() *matrix.ComplexMatrix {
	t.assertInitialized()
	return t.matrix
}

// MatrixQ returns the unitary matrix Q as a lazy reflector sequence over the
// packed buffer, built with conjugated coefficients. Valid until the next
// Compute.
func (t *ComplexTridiagonalization) MatrixQ() *householder.ComplexSequence {
	t.assertInitialized()
	return householder.NewComplexSequence(t.matrix, t.hCoeffs, true)
}

// MatrixT materializes the tridiagonal matrix T. Its band is real even for
// complex input: entries are the real parts of the packed band, with the
// sub-diagonal conjugate-mirrored into the super-diagonal.
func (t *ComplexTridiagonalization) MatrixT() *matrix.ComplexMatrix {
	t.assertInitialized()
	n := t.matrix.NumRows()
	matT := matrix.NewComplexEmpty(n, n)
	for i := 0; i < n; i++ {
		matT.Put(i, i, complex(real(t.matrix.At(i, i)), 0))
	}
	for i := 0; i < n-1; i++ {
		b := complex(real(t.matrix.At(i+1, i)), 0)
		matT.Put(i+1, i, b)
		matT.Put(i, i+1, b)
	}
	return matT
}

// Diagonal returns the (real) diagonal of T.
func (t *ComplexTridiagonalization) Diagonal() []float64 {
	t.assertInitialized()
	n := t.matrix.NumRows()
	diag := make([]float64, n)
	for i := 0; i < n; i++ {
		diag[i] = real(t.matrix.At(i, i))
	}
	return diag
}

// SubDiagonal returns the (real) off-diagonal of T.
func (t *ComplexTridiagonalization) SubDiagonal() []float64 {
	t.assertInitialized()
	n := t.matrix.NumRows()
	subdiag := make([]float64, n-1)
	for i := 0; i < n-1; i++ {
		subdiag[i] = real(t.matrix.At(i+1, i))
	}
	return subdiag
}

func (t *ComplexTridiagonalization) assertInitialized() {
	if !t.isInitialized {
		panic("tridiagops: ComplexTridiagonalization is not initialized")
	}
}
