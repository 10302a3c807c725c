// Copyright (c) 2023 Colin McRae

// Package householder constructs Householder reflectors in place and applies
// sequences of packed reflectors, the two primitives the tridiagonal
// reduction is built from.
package householder

import (
	"fmt"
	"math"
	"math/cmplx"
)

// minPositiveNormal is the smallest positive normalized float64. Squared
// norms at or below it are treated as exactly zero when deciding whether a
// reflector degenerates to the identity.
const minPositiveNormal = 0x1p-1022

// MakeReflector computes, in place, the Householder reflector that maps v to
// a multiple of the first basis vector. On return, v[1:] holds the essential
// part of the reflector vector u = [1, v[1], ..., v[len(v)-1]], and
//
//	(I - tau u u^T) v_original = [beta, 0, ..., 0]^T
//
// v[0] is not written; the caller owns the packed slot it came from. A tail
// whose squared norm is at most minPositiveNormal degenerates to tau = 0,
// beta = v[0] and a zeroed essential part. MakeReflector panics if v is
// empty.
func MakeReflector(v []float64) (tau float64, beta float64) {
	if len(v) == 0 {
		panic("householder: MakeReflector requires a non-empty vector")
	}
	c0 := v[0]
	var tailSqNorm float64
	for k := 1; k < len(v); k++ {
		tailSqNorm += v[k] * v[k]
	}
	if tailSqNorm <= minPositiveNormal {
		for k := 1; k < len(v); k++ {
			v[k] = 0
		}
		return 0, c0
	}
	beta = math.Sqrt(c0*c0 + tailSqNorm)
	if c0 >= 0 {
		beta = -beta
	}
	invDenom := 1 / (c0 - beta)
	for k := 1; k < len(v); k++ {
		v[k] *= invDenom
	}
	tau = (beta - c0) / beta
	return tau, beta
}

// MakeComplexReflector is the Hermitian counterpart of MakeReflector:
//
//	(I - tau u u^H) v_original = [beta, 0, ..., 0]^T
//
// with beta always real. The reflector degenerates to the identity when both
// the tail squared norm and the squared imaginary part of v[0] are at most
// minPositiveNormal. MakeComplexReflector panics if v is empty.
func MakeComplexReflector(v []complex128) (tau complex128, beta float64) {
	if len(v) == 0 {
		panic("householder: MakeComplexReflector requires a non-empty vector")
	}
	c0 := v[0]
	var tailSqNorm float64
	for k := 1; k < len(v); k++ {
		tailSqNorm += real(v[k])*real(v[k]) + imag(v[k])*imag(v[k])
	}
	if tailSqNorm <= minPositiveNormal && imag(c0)*imag(c0) <= minPositiveNormal {
		for k := 1; k < len(v); k++ {
			v[k] = 0
		}
		return 0, real(c0)
	}
	beta = math.Sqrt(real(c0)*real(c0) + imag(c0)*imag(c0) + tailSqNorm)
	if real(c0) >= 0 {
		beta = -beta
	}
	invDenom := 1 / (c0 - complex(beta, 0))
	for k := 1; k < len(v); k++ {
		v[k] *= invDenom
	}
	tau = cmplx.Conj((complex(beta, 0) - c0) / complex(beta, 0))
	return tau, beta
}

func checkSequence(order, numCoeffs int, caller string) {
	if order < 1 || numCoeffs != order-1 {
		panic(fmt.Sprintf(
			"householder: %s requires a square packed matrix of order n >= 1 and n-1 coefficients, got order %d with %d coefficients",
			caller, order, numCoeffs,
		))
	}
}
