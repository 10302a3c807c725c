// Copyright (c) 2023 Colin McRae

// Package matrix provides the dense float64 and complex128 matrix
// containers and the symmetric/Hermitian sub-block kernels that the
// tridiagonal reduction operates on.
package matrix

import (
	"fmt"
	"strings"
)

// Matrix is a dense float64 matrix stored row-major in a flat slice.
type Matrix struct {
	values  []float64
	numRows int
	numCols int
}

// NewFromFloat64Array creates a matrix from input with dimensions
// numRowsIn x numColsIn. If the number of rows and columns are not
// positive and/or do not match the length of the input, an error is
// returned.
func NewFromFloat64Array(input []float64, numRowsIn int, numColsIn int) (*Matrix, error) {
	if len(input) != numRowsIn*numColsIn {
		return nil, fmt.Errorf("Matrix.NewFromFloat64Array: length of input does not match dimensions")
	}
	if numRowsIn <= 0 || numColsIn <= 0 {
		return nil, fmt.Errorf(
			"Matrix.NewFromFloat64Array: illegal number of rows %d or columns %d",
			numRowsIn, numColsIn,
		)
	}
	retVal := &Matrix{
		values:  make([]float64, numRowsIn*numColsIn),
		numRows: numRowsIn,
		numCols: numColsIn,
	}
	copy(retVal.values, input)
	return retVal, nil
}

// NewEmpty returns a numRows x numCols matrix with 0s in each value. Negative
// numRows or numCols is interpreted as 0, and a 0 x n or n x 0 matrix is
// interpreted as 0 x 0.
func NewEmpty(numRows int, numCols int) *Matrix {
	if numRows < 0 {
		numRows = 0
	}
	if numCols < 0 {
		numCols = 0
	}
	if numRows == 0 || numCols == 0 {
		return &Matrix{
			values:  nil,
			numRows: 0,
			numCols: 0,
		}
	}
	return &Matrix{
		values:  make([]float64, numRows*numCols),
		numRows: numRows,
		numCols: numCols,
	}
}

// NewIdentity returns a dim x dim identity matrix. If dim < 1,
// an error is returned.
func NewIdentity(dim int) (*Matrix, error) {
	if dim < 1 {
		return nil, fmt.Errorf("NewIdentity: dimension %d < 1", dim)
	}
	retVal := NewEmpty(dim, dim)
	for i := 0; i < dim; i++ {
		retVal.values[i*dim+i] = 1
	}
	return retVal, nil
}

// Set sets the value in row i, column j to x.
func (m *Matrix) Set(i int, j int, x float64) error {
	if i < 0 || m.numRows <= i {
		return fmt.Errorf("Matrix.Set: index i = %d outside range {0, ... %d}", i, m.numRows-1)
	}
	if j < 0 || m.numCols <= j {
		return fmt.Errorf("Matrix.Set: index j = %d outside range {0, ... %d}", j, m.numCols-1)
	}
	m.values[i*m.numCols+j] = x
	return nil
}

// Get returns the value in row i, column j of m.
func (m *Matrix) Get(i int, j int) (float64, error) {
	if i < 0 || m.numRows <= i {
		return 0, fmt.Errorf("Matrix.Get: index i = %d outside range {0, ... %d}", i, m.numRows-1)
	}
	if j < 0 || m.numCols <= j {
		return 0, fmt.Errorf("Matrix.Get: index j = %d outside range {0, ... %d}", j, m.numCols-1)
	}
	return m.values[i*m.numCols+j], nil
}

// At returns the value in row i, column j. At trusts its inputs, the way
// DotProduct trusts its inputs when trustXandY is set: indices must be in
// range. It exists so the O(n^3) reduction loops avoid per-element error
// plumbing.
func (m *Matrix) At(i int, j int) float64 {
	return m.values[i*m.numCols+j]
}

// Put sets the value in row i, column j. Put trusts its inputs; see At.
func (m *Matrix) Put(i int, j int, x float64) {
	m.values[i*m.numCols+j] = x
}

// Copy copies x to m and returns m. This is a deep copy.
func (m *Matrix) Copy(x *Matrix) *Matrix {
	if x.numRows <= 0 || x.numCols <= 0 {
		m.numRows = 0
		m.numCols = 0
		m.values = nil
		return m
	}
	if m.numRows != x.numRows || m.numCols != x.numCols {
		m.numRows = x.numRows
		m.numCols = x.numCols
		m.values = make([]float64, x.numRows*x.numCols)
	}
	copy(m.values, x.values)
	return m
}

// Mul replaces the contents of m with the matrix xy and returns m. If
// dimensions of x and y are invalid or do not match, an error is returned.
func (m *Matrix) Mul(x *Matrix, y *Matrix) (*Matrix, error) {
	if x.numRows <= 0 || x.numCols <= 0 || len(x.values) != x.numRows*x.numCols {
		return nil, fmt.Errorf(
			"Matrix.Mul: malformed input matrix x[%d][%d] with %d entries",
			x.numRows, x.numCols, len(x.values),
		)
	}
	if y.numRows <= 0 || y.numCols <= 0 || len(y.values) != y.numRows*y.numCols {
		return nil, fmt.Errorf(
			"Matrix.Mul: malformed input matrix y[%d][%d] with %d entries",
			y.numRows, y.numCols, len(y.values),
		)
	}
	if x.numCols != y.numRows {
		return nil, fmt.Errorf(
			"Matrix.Mul: mismatched dimensions for operands x (%d x %d) and y (%d x %d)",
			x.numRows, x.numCols, y.numRows, y.numCols,
		)
	}
	retVal := NewEmpty(x.numRows, y.numCols)
	for i := 0; i < x.numRows; i++ {
		for j := 0; j < y.numCols; j++ {
			var sum float64
			for k := 0; k < x.numCols; k++ {
				sum += x.values[i*x.numCols+k] * y.values[k*y.numCols+j]
			}
			retVal.values[i*retVal.numCols+j] = sum
		}
	}
	m.Copy(retVal)
	return m, nil
}

// Transpose replaces the contents of m with the transpose of matrix x. If
// dimensions of x are invalid, an error is returned.
func (m *Matrix) Transpose(x *Matrix) (*Matrix, error) {
	if x.numRows <= 0 || x.numCols <= 0 || len(x.values) != x.numRows*x.numCols {
		return nil, fmt.Errorf(
			"Matrix.Transpose: malformed input matrix x[%d][%d] with %d entries",
			x.numRows, x.numCols, len(x.values),
		)
	}
	retVal := NewEmpty(x.numCols, x.numRows)
	for i := 0; i < retVal.numRows; i++ {
		for j := 0; j < retVal.numCols; j++ {
			retVal.values[i*retVal.numCols+j] = x.values[j*x.numCols+i]
		}
	}
	m.Copy(retVal)
	return m, nil
}

// Equals returns whether all corresponding elements of m and x are within
// tolerance of each other. If dimensions differ, an error is returned.
func (m *Matrix) Equals(x *Matrix, tolerance float64) (bool, error) {
	if (m.numRows != x.numRows) || (m.numCols != x.numCols) {
		return false, fmt.Errorf("Matrix.Equals: cannot compare m[%d][%d] to x[%d][%d]",
			m.numRows, m.numCols, x.numRows, x.numCols)
	}
	for i := 0; i < len(m.values); i++ {
		diff := m.values[i] - x.values[i]
		if diff > tolerance || -diff > tolerance {
			return false, nil
		}
	}
	return true, nil
}

// SymmetricMulVector computes dst = S v, where S is the symmetric trailing
// sub-block of m of order len(v) with upper-left corner at (corner, corner).
// Only the lower triangle of the sub-block (including its diagonal) is read;
// entries above the diagonal are taken from their mirror images. If the
// sub-block does not fit inside m, or len(dst) != len(v), an error is
// returned.
func (m *Matrix) SymmetricMulVector(corner int, v []float64, dst []float64) error {
	r := len(v)
	if err := m.checkSubBlock(corner, r, "SymmetricMulVector"); err != nil {
		return err
	}
	if len(dst) != r {
		return fmt.Errorf("Matrix.SymmetricMulVector: len(dst) = %d != %d = len(v)", len(dst), r)
	}
	for j := 0; j < r; j++ {
		rowBase := (corner + j) * m.numCols
		sum := 0.0
		for k := 0; k <= j; k++ {
			sum += m.values[rowBase+corner+k] * v[k]
		}
		for k := j + 1; k < r; k++ {
			// S[j][k] = S[k][j], stored in the lower triangle
			sum += m.values[(corner+k)*m.numCols+corner+j] * v[k]
		}
		dst[j] = sum
	}
	return nil
}

// SymmetricRank2Update applies S += alpha (u w^T + w u^T) to the symmetric
// trailing sub-block of m of order len(u) with upper-left corner at
// (corner, corner). Only the lower triangle and the diagonal of the sub-block
// are written. If the sub-block does not fit inside m, or len(w) != len(u),
// an error is returned.
func (m *Matrix) SymmetricRank2Update(corner int, u []float64, w []float64, alpha float64) error {
	r := len(u)
	if err := m.checkSubBlock(corner, r, "SymmetricRank2Update"); err != nil {
		return err
	}
	if len(w) != r {
		return fmt.Errorf("Matrix.SymmetricRank2Update: len(w) = %d != %d = len(u)", len(w), r)
	}
	for j := 0; j < r; j++ {
		rowBase := (corner + j) * m.numCols
		for k := 0; k <= j; k++ {
			m.values[rowBase+corner+k] += alpha * (u[j]*w[k] + w[j]*u[k])
		}
	}
	return nil
}

// Dimensions returns the number of rows and columns in m, in that order.
func (m *Matrix) Dimensions() (int, int) {
	return m.numRows, m.numCols
}

// NumRows returns the number of rows in m
func (m *Matrix) NumRows() int {
	return m.numRows
}

// NumCols returns the number of columns in m
func (m *Matrix) NumCols() int {
	return m.numCols
}

// String returns a string representing m with rows separated by newlines.
func (m *Matrix) String() string {
	var sb strings.Builder
	for i := 0; i < m.numRows; i++ {
		for j := 0; j < m.numCols; j++ {
			sb.WriteString(fmt.Sprintf("%v, ", m.values[i*m.numCols+j]))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func (m *Matrix) checkSubBlock(corner, r int, caller string) error {
	if m.numRows != m.numCols {
		return fmt.Errorf("Matrix.%s: matrix is %d x %d, not square", caller, m.numRows, m.numCols)
	}
	if corner < 0 || r < 0 || corner+r > m.numRows {
		return fmt.Errorf(
			"Matrix.%s: sub-block of order %d at (%d, %d) does not fit in a %d x %d matrix",
			caller, r, corner, corner, m.numRows, m.numCols,
		)
	}
	return nil
}
