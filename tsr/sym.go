// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tsr

import "math"

// Sym is a symmetric second order tensor stored as {xx, yy, zz, xy, yz, xz}
type Sym [6]float64

// SymIdentity returns the identity tensor
func SymIdentity() Sym {
	return Sym{1, 1, 1, 0, 0, 0}
}

// Slice returns a copy of A as a slice
func (A Sym) Slice() []float64 {
	return A[:]
}

// At returns the (i,j) component
func (A Sym) At(i, j int) float64 {
	return A[voigt[i][j]]
}

// Mat3 returns the full representation of A
func (A Sym) Mat3() (M Mat3) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			M[i][j] = A[voigt[i][j]]
		}
	}
	return
}

// Tr returns the trace of A
func (A Sym) Tr() float64 {
	return A[0] + A[1] + A[2]
}

// Det returns the determinant of A
func (A Sym) Det() float64 {
	return A[0]*(A[1]*A[2]-A[4]*A[4]) - A[3]*(A[3]*A[2]-A[4]*A[5]) + A[5]*(A[3]*A[4]-A[1]*A[5])
}

// Dev returns the deviatoric part of A
func (A Sym) Dev() Sym {
	p := A.Tr() / 3.0
	return Sym{A[0] - p, A[1] - p, A[2] - p, A[3], A[4], A[5]}
}

// Dot returns the double contraction A:B
func (A Sym) Dot(B Sym) (s float64) {
	for I := 0; I < 6; I++ {
		s += wv[I] * A[I] * B[I]
	}
	return
}

// Norm returns sqrt(A:A)
func (A Sym) Norm() float64 {
	return math.Sqrt(A.Dot(A))
}

// Sqr returns A·A
func (A Sym) Sqr() (B Sym) {
	for I := 0; I < 6; I++ {
		i, j := vi[I], vj[I]
		for k := 0; k < 3; k++ {
			B[I] += A[voigt[i][k]] * A[voigt[k][j]]
		}
	}
	return
}

// Add returns A + s·B
func (A Sym) Add(s float64, B Sym) (C Sym) {
	for I := 0; I < 6; I++ {
		C[I] = A[I] + s*B[I]
	}
	return
}

// Scale returns s·A
func (A Sym) Scale(s float64) (C Sym) {
	for I := 0; I < 6; I++ {
		C[I] = s * A[I]
	}
	return
}

// Push returns F·A·Fᵀ
func (A Sym) Push(F Mat3) (B Sym) {
	M := A.Mat3()
	for I := 0; I < 6; I++ {
		i, j := vi[I], vj[I]
		for k := 0; k < 3; k++ {
			for l := 0; l < 3; l++ {
				B[I] += F[i][k] * M[k][l] * F[j][l]
			}
		}
	}
	return
}

// Pull returns Fᵀ·A·F
func (A Sym) Pull(F Mat3) Sym {
	return A.Push(F.T())
}

// MulVec returns A·v
func (A Sym) MulVec(v Vec3) Vec3 {
	return Vec3{
		A[0]*v[0] + A[3]*v[1] + A[5]*v[2],
		A[3]*v[0] + A[1]*v[1] + A[4]*v[2],
		A[5]*v[0] + A[4]*v[1] + A[2]*v[2],
	}
}

// MulSym returns the full product A·B (not symmetric in general)
func (A Sym) MulSym(B Sym) (C Mat3) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				C[i][j] += A[voigt[i][k]] * B[voigt[k][j]]
			}
		}
	}
	return
}

// MaxAbs returns the maximum absolute component
func (A Sym) MaxAbs() (m float64) {
	for I := 0; I < 6; I++ {
		m = math.Max(m, math.Abs(A[I]))
	}
	return
}

// IsFinite returns false if any component is NaN or Inf
func (A Sym) IsFinite() bool {
	for I := 0; I < 6; I++ {
		if math.IsNaN(A[I]) || math.IsInf(A[I], 0) {
			return false
		}
	}
	return true
}

// SymFromMat3 returns the symmetric part of A
func SymFromMat3(A Mat3) Sym {
	return A.SymPart()
}

// SymDyad returns sym(a⊗b) = (a⊗b + b⊗a)/2
func SymDyad(a, b Vec3) (S Sym) {
	for I := 0; I < 6; I++ {
		i, j := vi[I], vj[I]
		S[I] = 0.5 * (a[i]*b[j] + b[i]*a[j])
	}
	return
}
