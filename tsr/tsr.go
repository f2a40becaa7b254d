// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package tsr implements second and fourth order tensors in 3D used by material models
//
//  Symmetric second order tensors are stored with Voigt ordering:
//
//      index:   0    1    2    3    4    5
//      comp:   xx   yy   zz   xy   yz   xz
//
//  Fourth order tensors with minor symmetries are stored as 6×6 matrices D[I][J] = c_ijkl
//  with (i,j) → I and (k,l) → J using the same ordering. Major symmetry is not assumed.
//  Double contractions with symmetric tensors take into account that shear components
//  appear twice in the full sum.
package tsr

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Vec3 is a vector in 3D
type Vec3 [3]float64

// Mat3 is a full (non-symmetric) second order tensor
type Mat3 [3][3]float64

// voigt maps (i,j) indices to Voigt index
var voigt = [3][3]int{
	{0, 3, 5},
	{3, 1, 4},
	{5, 4, 2},
}

// vi and vj map Voigt indices to (i,j)
var vi = [6]int{0, 1, 2, 0, 1, 0}
var vj = [6]int{0, 1, 2, 1, 2, 2}

// wv holds the multiplicity of each Voigt component in full double contractions
var wv = [6]float64{1, 1, 1, 2, 2, 2}

// VoigtIndex returns the Voigt index corresponding to (i,j)
func VoigtIndex(i, j int) int {
	return voigt[i][j]
}

// VoigtPair returns the (i,j) pair corresponding to Voigt index I
func VoigtPair(I int) (i, j int) {
	return vi[I], vj[I]
}

// Vec3 /////////////////////////////////////////////////////////////////////////////////////////////

// Slice returns a copy of u as a slice
func (u Vec3) Slice() []float64 {
	return u[:]
}

// Dot returns u·v
func (u Vec3) Dot(v Vec3) float64 {
	return u[0]*v[0] + u[1]*v[1] + u[2]*v[2]
}

// Cross returns u × v
func (u Vec3) Cross(v Vec3) Vec3 {
	return Vec3{
		u[1]*v[2] - u[2]*v[1],
		u[2]*v[0] - u[0]*v[2],
		u[0]*v[1] - u[1]*v[0],
	}
}

// Norm returns |u|
func (u Vec3) Norm() float64 {
	return math.Sqrt(u.Dot(u))
}

// Unit returns u/|u|. Returns u if |u| is zero
func (u Vec3) Unit() Vec3 {
	n := u.Norm()
	if n == 0 {
		return u
	}
	return u.Scale(1.0 / n)
}

// Scale returns s·u
func (u Vec3) Scale(s float64) Vec3 {
	return Vec3{s * u[0], s * u[1], s * u[2]}
}

// Add returns u + v
func (u Vec3) Add(v Vec3) Vec3 {
	return Vec3{u[0] + v[0], u[1] + v[1], u[2] + v[2]}
}

// Sub returns u - v
func (u Vec3) Sub(v Vec3) Vec3 {
	return Vec3{u[0] - v[0], u[1] - v[1], u[2] - v[2]}
}

// Dyad returns the symmetric tensor u⊗u
func (u Vec3) Dyad() Sym {
	return Sym{u[0] * u[0], u[1] * u[1], u[2] * u[2], u[0] * u[1], u[1] * u[2], u[0] * u[2]}
}

// Mat3 /////////////////////////////////////////////////////////////////////////////////////////////

// Identity returns the second order identity tensor
func Identity() Mat3 {
	return Mat3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
}

// Diag returns a diagonal tensor
func Diag(a, b, c float64) Mat3 {
	return Mat3{{a, 0, 0}, {0, b, 0}, {0, 0, c}}
}

// Columns returns a tensor whose columns are a, b and c
func Columns(a, b, c Vec3) Mat3 {
	return Mat3{
		{a[0], b[0], c[0]},
		{a[1], b[1], c[1]},
		{a[2], b[2], c[2]},
	}
}

// Col returns the j-th column of A
func (A Mat3) Col(j int) Vec3 {
	return Vec3{A[0][j], A[1][j], A[2][j]}
}

// Det returns the determinant of A
func (A Mat3) Det() float64 {
	return A[0][0]*(A[1][1]*A[2][2]-A[1][2]*A[2][1]) -
		A[0][1]*(A[1][0]*A[2][2]-A[1][2]*A[2][0]) +
		A[0][2]*(A[1][0]*A[2][1]-A[1][1]*A[2][0])
}

// Tr returns the trace of A
func (A Mat3) Tr() float64 {
	return A[0][0] + A[1][1] + A[2][2]
}

// T returns the transpose of A
func (A Mat3) T() (B Mat3) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			B[i][j] = A[j][i]
		}
	}
	return
}

// Inv returns the inverse of A and its determinant. ok is false if A is singular
func (A Mat3) Inv() (B Mat3, det float64, ok bool) {
	a := A.dense()
	det = mat.Det(a)
	var ai mat.Dense
	if err := ai.Inverse(a); err != nil {
		return
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			B[i][j] = ai.At(i, j)
		}
	}
	return B, det, true
}

// dense returns a copy of A as a gonum matrix
func (A Mat3) dense() *mat.Dense {
	return mat.NewDense(3, 3, []float64{
		A[0][0], A[0][1], A[0][2],
		A[1][0], A[1][1], A[1][2],
		A[2][0], A[2][1], A[2][2],
	})
}

// Mul returns A·B
func (A Mat3) Mul(B Mat3) (C Mat3) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			C[i][j] = A[i][0]*B[0][j] + A[i][1]*B[1][j] + A[i][2]*B[2][j]
		}
	}
	return
}

// MulT returns A·Bᵀ
func (A Mat3) MulT(B Mat3) (C Mat3) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			C[i][j] = A[i][0]*B[j][0] + A[i][1]*B[j][1] + A[i][2]*B[j][2]
		}
	}
	return
}

// TMul returns Aᵀ·B
func (A Mat3) TMul(B Mat3) (C Mat3) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			C[i][j] = A[0][i]*B[0][j] + A[1][i]*B[1][j] + A[2][i]*B[2][j]
		}
	}
	return
}

// MulVec returns A·v
func (A Mat3) MulVec(v Vec3) Vec3 {
	return Vec3{
		A[0][0]*v[0] + A[0][1]*v[1] + A[0][2]*v[2],
		A[1][0]*v[0] + A[1][1]*v[1] + A[1][2]*v[2],
		A[2][0]*v[0] + A[2][1]*v[1] + A[2][2]*v[2],
	}
}

// TMulVec returns Aᵀ·v
func (A Mat3) TMulVec(v Vec3) Vec3 {
	return Vec3{
		A[0][0]*v[0] + A[1][0]*v[1] + A[2][0]*v[2],
		A[0][1]*v[0] + A[1][1]*v[1] + A[2][1]*v[2],
		A[0][2]*v[0] + A[1][2]*v[1] + A[2][2]*v[2],
	}
}

// Add returns A + s·B
func (A Mat3) Add(s float64, B Mat3) (C Mat3) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			C[i][j] = A[i][j] + s*B[i][j]
		}
	}
	return
}

// Scale returns s·A
func (A Mat3) Scale(s float64) (C Mat3) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			C[i][j] = s * A[i][j]
		}
	}
	return
}

// LeftCG returns the left Cauchy-Green tensor b = A·Aᵀ
func (A Mat3) LeftCG() (b Sym) {
	for I := 0; I < 6; I++ {
		i, j := vi[I], vj[I]
		b[I] = A[i][0]*A[j][0] + A[i][1]*A[j][1] + A[i][2]*A[j][2]
	}
	return
}

// RightCG returns the right Cauchy-Green tensor C = Aᵀ·A
func (A Mat3) RightCG() (C Sym) {
	for I := 0; I < 6; I++ {
		i, j := vi[I], vj[I]
		C[I] = A[0][i]*A[0][j] + A[1][i]*A[1][j] + A[2][i]*A[2][j]
	}
	return
}

// SymPart returns the symmetric part of A
func (A Mat3) SymPart() (S Sym) {
	for I := 0; I < 6; I++ {
		i, j := vi[I], vj[I]
		S[I] = 0.5 * (A[i][j] + A[j][i])
	}
	return
}

// MaxDiff returns the maximum absolute difference between components of A and B
func (A Mat3) MaxDiff(B Mat3) (d float64) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			d = math.Max(d, math.Abs(A[i][j]-B[i][j]))
		}
	}
	return
}

// IsOrthogonal checks whether Aᵀ·A = I within tol
func (A Mat3) IsOrthogonal(tol float64) bool {
	return A.T().Mul(A).MaxDiff(Identity()) <= tol
}

// Frame returns an orthonormal frame whose first axis is along a and second axis lies in
// the plane spanned by a and d. Returns false if a and d are parallel or a is zero
func Frame(a, d Vec3) (Q Mat3, ok bool) {
	if a.Norm() == 0 {
		return
	}
	e1 := a.Unit()
	e3 := e1.Cross(d)
	if e3.Norm() < 1e-12 {
		return
	}
	e3 = e3.Unit()
	e2 := e3.Cross(e1)
	return Columns(e1, e2, e3), true
}
