// Copyright (c) 2023 Colin McRae

// Package util holds test-support helpers: seeded generators for
// symmetric/Hermitian inputs and small flat-slice measures used to check
// decomposition output.
package util

import (
	"math"
	"math/cmplx"
	"math/rand"
)

// RandomSymmetricEntries returns the row-major entries of a dim x dim
// symmetric matrix with entries in [-maxEntry, maxEntry], generated from
// seed so tests are reproducible.
func RandomSymmetricEntries(dim int, maxEntry float64, seed int64) []float64 {
	rng := rand.New(rand.NewSource(seed))
	entries := make([]float64, dim*dim)
	for i := 0; i < dim; i++ {
		for j := 0; j <= i; j++ {
			v := (2*rng.Float64() - 1) * maxEntry
			entries[i*dim+j] = v
			entries[j*dim+i] = v
		}
	}
	return entries
}

// RandomHermitianEntries returns the row-major entries of a dim x dim
// Hermitian matrix with real and imaginary parts in [-maxEntry, maxEntry]
// and a real diagonal, generated from seed so tests are reproducible.
func RandomHermitianEntries(dim int, maxEntry float64, seed int64) []complex128 {
	rng := rand.New(rand.NewSource(seed))
	entries := make([]complex128, dim*dim)
	for i := 0; i < dim; i++ {
		entries[i*dim+i] = complex((2*rng.Float64()-1)*maxEntry, 0)
		for j := 0; j < i; j++ {
			v := complex((2*rng.Float64()-1)*maxEntry, (2*rng.Float64()-1)*maxEntry)
			entries[i*dim+j] = v
			entries[j*dim+i] = cmplx.Conj(v)
		}
	}
	return entries
}

// MaxAbsDiff returns the largest absolute difference between corresponding
// entries of x and y. Slices of different lengths compare at the shorter
// length.
func MaxAbsDiff(x, y []float64) float64 {
	n := len(x)
	if len(y) < n {
		n = len(y)
	}
	var retVal float64
	for i := 0; i < n; i++ {
		diff := math.Abs(x[i] - y[i])
		if diff > retVal {
			retVal = diff
		}
	}
	return retVal
}

// MaxAbsDiffComplex returns the largest absolute difference between
// corresponding entries of x and y. Slices of different lengths compare at
// the shorter length.
func MaxAbsDiffComplex(x, y []complex128) float64 {
	n := len(x)
	if len(y) < n {
		n = len(y)
	}
	var retVal float64
	for i := 0; i < n; i++ {
		diff := cmplx.Abs(x[i] - y[i])
		if diff > retVal {
			retVal = diff
		}
	}
	return retVal
}

// MaxAbs returns the largest absolute value among the entries of x.
func MaxAbs(x []float64) float64 {
	var retVal float64
	for i := 0; i < len(x); i++ {
		a := math.Abs(x[i])
		if a > retVal {
			retVal = a
		}
	}
	return retVal
}
