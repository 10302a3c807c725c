// Copyright (c) 2023 Colin McRae

package matrix

import (
	"fmt"
	"math/cmplx"
	"strings"
)

// ComplexMatrix is a dense complex128 matrix stored row-major in a flat
// slice. It mirrors the Matrix surface, with conjugation where Hermitian
// semantics require it.
type ComplexMatrix struct {
	values  []complex128
	numRows int
	numCols int
}

// NewFromComplex128Array creates a matrix from input with dimensions
// numRowsIn x numColsIn. If the number of rows and columns are not
// positive and/or do not match the length of the input, an error is
// returned.
func NewFromComplex128Array(input []complex128, numRowsIn int, numColsIn int) (*ComplexMatrix, error) {
	if len(input) != numRowsIn*numColsIn {
		return nil, fmt.Errorf("ComplexMatrix.NewFromComplex128Array: length of input does not match dimensions")
	}
	if numRowsIn <= 0 || numColsIn <= 0 {
		return nil, fmt.Errorf(
			"ComplexMatrix.NewFromComplex128Array: illegal number of rows %d or columns %d",
			numRowsIn, numColsIn,
		)
	}
	retVal := &ComplexMatrix{
		values:  make([]complex128, numRowsIn*numColsIn),
		numRows: numRowsIn,
		numCols: numColsIn,
	}
	copy(retVal.values, input)
	return retVal, nil
}

// NewComplexEmpty returns a numRows x numCols matrix with 0s in each value.
// Negative numRows or numCols is interpreted as 0, and a 0 x n or n x 0
// matrix is interpreted as 0 x 0.
func NewComplexEmpty(numRows int, numCols int) *ComplexMatrix {
	if numRows < 0 {
		numRows = 0
	}
	if numCols < 0 {
		numCols = 0
	}
	if numRows == 0 || numCols == 0 {
		return &ComplexMatrix{
			values:  nil,
			numRows: 0,
			numCols: 0,
		}
	}
	return &ComplexMatrix{
		values:  make([]complex128, numRows*numCols),
		numRows: numRows,
		numCols: numCols,
	}
}

// NewComplexIdentity returns a dim x dim identity matrix. If dim < 1,
// an error is returned.
func NewComplexIdentity(dim int) (*ComplexMatrix, error) {
	if dim < 1 {
		return nil, fmt.Errorf("NewComplexIdentity: dimension %d < 1", dim)
	}
	retVal := NewComplexEmpty(dim, dim)
	for i := 0; i < dim; i++ {
		retVal.values[i*dim+i] = 1
	}
	return retVal, nil
}

// Set sets the value in row i, column j to x.
func (m *ComplexMatrix) Set(i int, j int, x complex128) error {
	if i < 0 || m.numRows <= i {
		return fmt.Errorf("ComplexMatrix.Set: index i = %d outside range {0, ... %d}", i, m.numRows-1)
	}
	if j < 0 || m.numCols <= j {
		return fmt.Errorf("ComplexMatrix.Set: index j = %d outside range {0, ... %d}", j, m.numCols-1)
	}
	m.values[i*m.numCols+j] = x
	return nil
}

// Get returns the value in row i, column j of m.
func (m *ComplexMatrix) Get(i int, j int) (complex128, error) {
	if i < 0 || m.numRows <= i {
		return 0, fmt.Errorf("ComplexMatrix.Get: index i = %d outside range {0, ... %d}", i, m.numRows-1)
	}
	if j < 0 || m.numCols <= j {
		return 0, fmt.Errorf("ComplexMatrix.Get: index j = %d outside range {0, ... %d}", j, m.numCols-1)
	}
	return m.values[i*m.numCols+j], nil
}

// At returns the value in row i, column j. At trusts its inputs; see
// Matrix.At.
func (m *ComplexMatrix) At(i int, j int) complex128 {
	return m.values[i*m.numCols+j]
}

// Put sets the value in row i, column j. Put trusts its inputs; see At.
func (m *ComplexMatrix) Put(i int, j int, x complex128) {
	m.values[i*m.numCols+j] = x
}

// Copy copies x to m and returns m. This is a deep copy.
func (m *ComplexMatrix) Copy(x *ComplexMatrix) *ComplexMatrix {
	if x.numRows <= 0 || x.numCols <= 0 {
		m.numRows = 0
		m.numCols = 0
		m.values = nil
		return m
	}
	if m.numRows != x.numRows || m.numCols != x.numCols {
		m.numRows = x.numRows
		m.numCols = x.numCols
		m.values = make([]complex128, x.numRows*x.numCols)
	}
	copy(m.values, x.values)
	return m
}

// Mul replaces the contents of m with the matrix xy and returns m. If
// dimensions of x and y are invalid or do not match, an error is returned.
func (m *ComplexMatrix) Mul(x *ComplexMatrix, y *ComplexMatrix) (*ComplexMatrix, error) {
	if x.numRows <= 0 || x.numCols <= 0 || len(x.values) != x.numRows*x.numCols {
		return nil, fmt.Errorf(
			"ComplexMatrix.Mul: malformed input matrix x[%d][%d] with %d entries",
			x.numRows, x.numCols, len(x.values),
		)
	}
	if y.numRows <= 0 || y.numCols <= 0 || len(y.values) != y.numRows*y.numCols {
		return nil, fmt.Errorf(
			"ComplexMatrix.Mul: malformed input matrix y[%d][%d] with %d entries",
			y.numRows, y.numCols, len(y.values),
		)
	}
	if x.numCols != y.numRows {
		return nil, fmt.Errorf(
			"ComplexMatrix.Mul: mismatched dimensions for operands x (%d x %d) and y (%d x %d)",
			x.numRows, x.numCols, y.numRows, y.numCols,
		)
	}
	retVal := NewComplexEmpty(x.numRows, y.numCols)
	for i := 0; i < x.numRows; i++ {
		for j := 0; j < y.numCols; j++ {
			var sum complex128
			for k := 0; k < x.numCols; k++ {
				sum += x.values[i*x.numCols+k] * y.values[k*y.numCols+j]
			}
			retVal.values[i*retVal.numCols+j] = sum
		}
	}
	m.Copy(retVal)
	return m, nil
}

// ConjugateTranspose replaces the contents of m with the conjugate transpose
// of matrix x. If dimensions of x are invalid, an error is returned.
func (m *ComplexMatrix) ConjugateTranspose(x *ComplexMatrix) (*ComplexMatrix, error) {
	if x.numRows <= 0 || x.numCols <= 0 || len(x.values) != x.numRows*x.numCols {
		return nil, fmt.Errorf(
			"ComplexMatrix.ConjugateTranspose: malformed input matrix x[%d][%d] with %d entries",
			x.numRows, x.numCols, len(x.values),
		)
	}
	retVal := NewComplexEmpty(x.numCols, x.numRows)
	for i := 0; i < retVal.numRows; i++ {
		for j := 0; j < retVal.numCols; j++ {
			retVal.values[i*retVal.numCols+j] = cmplx.Conj(x.values[j*x.numCols+i])
		}
	}
	m.Copy(retVal)
	return m, nil
}

// Equals returns whether all corresponding elements of m and x are within
// tolerance of each other in absolute value. If dimensions differ, an error
// is returned.
func (m *ComplexMatrix) Equals(x *ComplexMatrix, tolerance float64) (bool, error) {
	if (m.numRows != x.numRows) || (m.numCols != x.numCols) {
		return false, fmt.Errorf("ComplexMatrix.Equals: cannot compare m[%d][%d] to x[%d][%d]",
			m.numRows, m.numCols, x.numRows, x.numCols)
	}
	for i := 0; i < len(m.values); i++ {
		if cmplx.Abs(m.values[i]-x.values[i]) > tolerance {
			return false, nil
		}
	}
	return true, nil
}

// HermitianMulVector computes dst = S v, where S is the Hermitian trailing
// sub-block of m of order len(v) with upper-left corner at (corner, corner).
// Only the lower triangle of the sub-block (including its diagonal) is read;
// entries above the diagonal are taken as conjugates of their mirror images.
// If the sub-block does not fit inside m, or len(dst) != len(v), an error is
// returned.
func (m *ComplexMatrix) HermitianMulVector(corner int, v []complex128, dst []complex128) error {
	r := len(v)
	if err := m.checkSubBlock(corner, r, "HermitianMulVector"); err != nil {
		return err
	}
	if len(dst) != r {
		return fmt.Errorf("ComplexMatrix.HermitianMulVector: len(dst) = %d != %d = len(v)", len(dst), r)
	}
	for j := 0; j < r; j++ {
		rowBase := (corner + j) * m.numCols
		var sum complex128
		for k := 0; k <= j; k++ {
			sum += m.values[rowBase+corner+k] * v[k]
		}
		for k := j + 1; k < r; k++ {
			// S[j][k] = conj(S[k][j]), stored in the lower triangle
			sum += cmplx.Conj(m.values[(corner+k)*m.numCols+corner+j]) * v[k]
		}
		dst[j] = sum
	}
	return nil
}

// HermitianRank2Update applies S += alpha (u w^H + w u^H) to the Hermitian
// trailing sub-block of m of order len(u) with upper-left corner at
// (corner, corner). Only the lower triangle and the diagonal of the sub-block
// are written. If the sub-block does not fit inside m, or len(w) != len(u),
// an error is returned.
func (m *ComplexMatrix) HermitianRank2Update(corner int, u []complex128, w []complex128, alpha complex128) error {
	r := len(u)
	if err := m.checkSubBlock(corner, r, "HermitianRank2Update"); err != nil {
		return err
	}
	if len(w) != r {
		return fmt.Errorf("ComplexMatrix.HermitianRank2Update: len(w) = %d != %d = len(u)", len(w), r)
	}
	for j := 0; j < r; j++ {
		rowBase := (corner + j) * m.numCols
		for k := 0; k <= j; k++ {
			m.values[rowBase+corner+k] += alpha * (u[j]*cmplx.Conj(w[k]) + w[j]*cmplx.Conj(u[k]))
		}
	}
	return nil
}

// Dimensions returns the number of rows and columns in m, in that order.
func (m *ComplexMatrix) Dimensions() (int, int) {
	return m.numRows, m.numCols
}

// NumRows returns the number of rows in m
func (m *ComplexMatrix) NumRows() int {
	return m.numRows
}

// NumCols returns the number of columns in m
func (m *ComplexMatrix) NumCols() int {
	return m.numCols
}

// String returns a string representing m with rows separated by newlines.
func (m *ComplexMatrix) String() string {
	var sb strings.Builder
	for i := 0; i < m.numRows; i++ {
		for j := 0; j < m.numCols; j++ {
			sb.WriteString(fmt.Sprintf("%v, ", m.values[i*m.numCols+j]))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func (m *ComplexMatrix) checkSubBlock(corner, r int, caller string) error {
	if m.numRows != m.numCols {
		return fmt.Errorf("ComplexMatrix.%s: matrix is %d x %d, not square", caller, m.numRows, m.numCols)
	}
	if corner < 0 || r < 0 || corner+r > m.numRows {
		return fmt.Errorf(
			"ComplexMatrix.%s: sub-block of order %d at (%d, %d) does not fit in a %d x %d matrix",
			caller, r, corner, corner, m.numRows, m.numCols,
		)
	}
	return nil
}
