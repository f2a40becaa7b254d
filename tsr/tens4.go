// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tsr

import "math"

// Tens4 is a fourth order tensor with minor symmetries: D[I][J] = c_ijkl
type Tens4 [6][6]float64

// At returns the c_ijkl component
func (c *Tens4) At(i, j, k, l int) float64 {
	return c[voigt[i][j]][voigt[k][l]]
}

// Dot returns c:A
func (c *Tens4) Dot(A Sym) (B Sym) {
	for I := 0; I < 6; I++ {
		for J := 0; J < 6; J++ {
			B[I] += c[I][J] * wv[J] * A[J]
		}
	}
	return
}

// Add returns c + s·d
func (c Tens4) Add(s float64, d Tens4) (e Tens4) {
	for I := 0; I < 6; I++ {
		for J := 0; J < 6; J++ {
			e[I][J] = c[I][J] + s*d[I][J]
		}
	}
	return
}

// AddTo adds s·d to c in place
func (c *Tens4) AddTo(s float64, d *Tens4) {
	for I := 0; I < 6; I++ {
		for J := 0; J < 6; J++ {
			c[I][J] += s * d[I][J]
		}
	}
}

// Scale returns s·c
func (c Tens4) Scale(s float64) (e Tens4) {
	for I := 0; I < 6; I++ {
		for J := 0; J < 6; J++ {
			e[I][J] = s * c[I][J]
		}
	}
	return
}

// MaxAbs returns the maximum absolute component
func (c *Tens4) MaxAbs() (m float64) {
	for I := 0; I < 6; I++ {
		for J := 0; J < 6; J++ {
			m = math.Max(m, math.Abs(c[I][J]))
		}
	}
	return
}

// IsFinite returns false if any component is NaN or Inf
func (c *Tens4) IsFinite() bool {
	for I := 0; I < 6; I++ {
		for J := 0; J < 6; J++ {
			if math.IsNaN(c[I][J]) || math.IsInf(c[I][J], 0) {
				return false
			}
		}
	}
	return true
}

// IsMajorSym checks whether c_ijkl = c_klij within tol
func (c *Tens4) IsMajorSym(tol float64) bool {
	for I := 0; I < 6; I++ {
		for J := I + 1; J < 6; J++ {
			if math.Abs(c[I][J]-c[J][I]) > tol {
				return false
			}
		}
	}
	return true
}

// Slice returns a copy of c as [][]float64 (for printing and checking)
func (c Tens4) Slice() [][]float64 {
	res := make([][]float64, 6)
	for I := 0; I < 6; I++ {
		res[I] = make([]float64, 6)
		copy(res[I], c[I][:])
	}
	return res
}

// Dyad1 returns A⊗B
func Dyad1(A, B Sym) (c Tens4) {
	for I := 0; I < 6; I++ {
		for J := 0; J < 6; J++ {
			c[I][J] = A[I] * B[J]
		}
	}
	return
}

// Dyad1s returns A⊗B + B⊗A
func Dyad1s(A, B Sym) (c Tens4) {
	for I := 0; I < 6; I++ {
		for J := 0; J < 6; J++ {
			c[I][J] = A[I]*B[J] + B[I]*A[J]
		}
	}
	return
}

// Dyad4s returns the symmetrised product
//  (A⊙B)_ijkl = (A_ik B_jl + A_il B_jk + B_ik A_jl + B_il A_jk) / 4
func Dyad4s(A, B Sym) (c Tens4) {
	for I := 0; I < 6; I++ {
		i, j := vi[I], vj[I]
		for J := 0; J < 6; J++ {
			k, l := vi[J], vj[J]
			c[I][J] = 0.25 * (A[voigt[i][k]]*B[voigt[j][l]] + A[voigt[i][l]]*B[voigt[j][k]] +
				B[voigt[i][k]]*A[voigt[j][l]] + B[voigt[i][l]]*A[voigt[j][k]])
		}
	}
	return
}

// IxI returns I⊗I
func IxI() Tens4 {
	I := SymIdentity()
	return Dyad1(I, I)
}

// I4 returns the symmetric fourth order identity; I4:A = A for symmetric A
func I4() (c Tens4) {
	for I := 0; I < 3; I++ {
		c[I][I] = 1
	}
	for I := 3; I < 6; I++ {
		c[I][I] = 0.5
	}
	return
}

// Psd returns the deviatoric projector I4 - I⊗I/3
func Psd() Tens4 {
	return I4().Add(-1.0/3.0, IxI())
}
