// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tsr

import (
	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/mat"
)

// EigenSym computes the eigenvalues (ascending) and eigenvectors of S
//  Output:
//   vals -- λ0 ≤ λ1 ≤ λ2
//   vecs -- orthonormal eigenvectors stored as columns: S·vecs.Col(a) = vals[a]·vecs.Col(a)
func EigenSym(S Sym) (vals Vec3, vecs Mat3, err error) {
	data := make([]float64, 9)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			data[i*3+j] = S[voigt[i][j]]
		}
	}
	var eig mat.EigenSym
	if !eig.Factorize(mat.NewSymDense(3, data), true) {
		err = chk.Err("eigen-decomposition of symmetric tensor failed. S = %v", S)
		return
	}
	lam := eig.Values(nil)
	var V mat.Dense
	eig.VectorsTo(&V)
	for a := 0; a < 3; a++ {
		vals[a] = lam[a]
		for i := 0; i < 3; i++ {
			vecs[i][a] = V.At(i, a)
		}
	}
	return
}

// Spectral returns Σ vals[a] vecs.Col(a)⊗vecs.Col(a)
func Spectral(vals Vec3, vecs Mat3) (S Sym) {
	for a := 0; a < 3; a++ {
		S = S.Add(vals[a], vecs.Col(a).Dyad())
	}
	return
}
