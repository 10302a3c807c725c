// Copyright (c) 2023 Colin McRae

package householder

import (
	"fmt"
	"math/cmplx"

	"tridiag/matrix"
)

// Sequence is a lazy representation of the orthogonal matrix
//
//	Q = H_0 H_1 ... H_{n-2},   H_i = I - h_i u_i u_i^T
//
// where h_i = coeffs[i] and u_i is the reflector vector packed in column i of
// vectors: an implicit leading 1 in row i+1 followed by the entries of rows
// i+2 ... n-1. Reflector i therefore acts only on rows i+1 ... n-1. A
// Sequence reads the packed matrix on demand; it stays valid only while that
// matrix holds the packed encoding.
type Sequence struct {
	vectors *matrix.Matrix
	coeffs  []float64
}

// NewSequence returns the sequence of reflectors packed in vectors and
// coeffs. vectors must be square of order n >= 1 and coeffs must have n-1
// entries; anything else is a caller contract violation and panics.
func NewSequence(vectors *matrix.Matrix, coeffs []float64) *Sequence {
	numRows, numCols := vectors.Dimensions()
	if numRows != numCols {
		panic(fmt.Sprintf("householder: NewSequence requires a square matrix, got %d x %d", numRows, numCols))
	}
	checkSequence(numRows, len(coeffs), "NewSequence")
	return &Sequence{vectors: vectors, coeffs: coeffs}
}

// Order returns the order n of the matrix the sequence represents.
func (s *Sequence) Order() int {
	return s.vectors.NumRows()
}

// ApplyToTheLeft replaces m with Q m, applying the reflectors one at a time
// without materializing Q. m must have Order() rows; a mismatch panics.
func (s *Sequence) ApplyToTheLeft(m *matrix.Matrix) {
	n := s.Order()
	mRows, mCols := m.Dimensions()
	if mRows != n {
		panic(fmt.Sprintf("householder: ApplyToTheLeft requires %d rows, got %d", n, mRows))
	}
	// Q m = H_0 (... (H_{n-2} m)), so reflectors apply in descending order.
	for i := len(s.coeffs) - 1; i >= 0; i-- {
		h := s.coeffs[i]
		if h == 0 {
			continue
		}
		rem := n - i - 1
		for c := 0; c < mCols; c++ {
			// w = u_i^T (rows i+1 ... n-1 of column c)
			w := m.At(i+1, c)
			for k := 1; k < rem; k++ {
				w += s.vectors.At(i+1+k, i) * m.At(i+1+k, c)
			}
			w *= h
			m.Put(i+1, c, m.At(i+1, c)-w)
			for k := 1; k < rem; k++ {
				row := i + 1 + k
				m.Put(row, c, m.At(row, c)-s.vectors.At(row, i)*w)
			}
		}
	}
}

// Materialize performs the one-time O(n^3) expansion of the sequence into an
// explicit matrix by applying it to the identity.
func (s *Sequence) Materialize() *matrix.Matrix {
	n := s.Order()
	q := matrix.NewEmpty(n, n)
	for i := 0; i < n; i++ {
		q.Put(i, i, 1)
	}
	s.ApplyToTheLeft(q)
	return q
}

// ComplexSequence is the Hermitian counterpart of Sequence:
//
//	Q = H_0 H_1 ... H_{n-2},   H_i = I - h_i u_i u_i^H
//
// When conjugateCoeffs is set, the conjugates of the packed coefficients are
// used in place of the coefficients themselves, which is how the unitary Q of
// a tridiagonal decomposition is formed from the packed reduction output.
type ComplexSequence struct {
	vectors         *matrix.ComplexMatrix
	coeffs          []complex128
	conjugateCoeffs bool
}

// NewComplexSequence returns the sequence of reflectors packed in vectors and
// coeffs. vectors must be square of order n >= 1 and coeffs must have n-1
// entries; anything else is a caller contract violation and panics.
func NewComplexSequence(vectors *matrix.ComplexMatrix, coeffs []complex128, conjugateCoeffs bool) *ComplexSequence {
	numRows, numCols := vectors.Dimensions()
	if numRows != numCols {
		panic(fmt.Sprintf("householder: NewComplexSequence requires a square matrix, got %d x %d", numRows, numCols))
	}
	checkSequence(numRows, len(coeffs), "NewComplexSequence")
	return &ComplexSequence{vectors: vectors, coeffs: coeffs, conjugateCoeffs: conjugateCoeffs}
}

// Order returns the order n of the matrix the sequence represents.
func (s *ComplexSequence) Order() int {
	return s.vectors.NumRows()
}

// ApplyToTheLeft replaces m with Q m, applying the reflectors one at a time
// without materializing Q. m must have Order() rows; a mismatch panics.
func (s *ComplexSequence) ApplyToTheLeft(m *matrix.ComplexMatrix) {
	n := s.Order()
	mRows, mCols := m.Dimensions()
	if mRows != n {
		panic(fmt.Sprintf("householder: ApplyToTheLeft requires %d rows, got %d", n, mRows))
	}
	for i := len(s.coeffs) - 1; i >= 0; i-- {
		h := s.coeffs[i]
		if s.conjugateCoeffs {
			h = cmplx.Conj(h)
		}
		if h == 0 {
			continue
		}
		rem := n - i - 1
		for c := 0; c < mCols; c++ {
			// w = u_i^H (rows i+1 ... n-1 of column c)
			w := m.At(i+1, c)
			for k := 1; k < rem; k++ {
				w += cmplx.Conj(s.vectors.At(i+1+k, i)) * m.At(i+1+k, c)
			}
			w *= h
			m.Put(i+1, c, m.At(i+1, c)-w)
			for k := 1; k < rem; k++ {
				row := i + 1 + k
				m.Put(row, c, m.At(row, c)-s.vectors.At(row, i)*w)
			}
		}
	}
}

// Materialize performs the one-time O(n^3) expansion of the sequence into an
// explicit matrix by applying it to the identity.
func (s *ComplexSequence) Materialize() *matrix.ComplexMatrix {
	n := s.Order()
	q := matrix.NewComplexEmpty(n, n)
	for i := 0; i < n; i++ {
		q.Put(i, i, 1)
	}
	s.ApplyToTheLeft(q)
	return q
}
