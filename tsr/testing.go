// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tsr

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/mat"
)

// StressFcn computes the Cauchy stress corresponding to F
type StressFcn func(F Mat3) (Sym, error)

// NumTangent computes the spatial tangent by central differences of the Kirchhoff stress τ = J σ
//
//  The Kirchhoff stress is seen as a function of x ∈ R⁶ through F'(x) = (I + G(x)) F where
//  G(x) is symmetric with G_I = x_I on the diagonal and G_I = x_I/2 off the diagonal.
//  Column K of the Jacobian ∂τ/∂x at x = 0 then gives
//
//     c:G_K = [ ∂τ/∂x_K - (G_K·τ + τ·G_K) ] / J
//
func NumTangent(F Mat3, h float64, stress StressFcn) (D Tens4, err error) {
	sig0, err := stress(F)
	if err != nil {
		return
	}
	J := F.Det()
	tau0 := sig0.Scale(J)
	kirchhoff := func(y, x []float64) {
		if err != nil {
			return
		}
		var G Sym
		for I := 0; I < 6; I++ {
			G[I] = x[I] / wv[I]
		}
		Fp := Identity().Add(1, G.Mat3()).Mul(F)
		sig, e := stress(Fp)
		if e != nil {
			err = e
			return
		}
		copy(y, sig.Scale(Fp.Det()).Slice())
	}
	dtau := mat.NewDense(6, 6, nil)
	fd.Jacobian(dtau, kirchhoff, make([]float64, 6), &fd.JacobianSettings{
		Formula: fd.Central,
		Step:    h,
	})
	if err != nil {
		return
	}
	for K := 0; K < 6; K++ {
		var G Sym
		G[K] = 1.0 / wv[K]
		rot := G.MulSym(tau0).SymPart().Scale(2)
		for I := 0; I < 6; I++ {
			D[I][K] = (dtau.At(I, K) - rot[I]) / J
		}
	}
	return
}

// TangentError returns the largest difference between D and the numerical tangent computed at F
//  Note: components are scaled by max(1, max|D|)
func TangentError(F Mat3, h float64, D Tens4, stress StressFcn) (maxdiff float64, err error) {
	Dnum, err := NumTangent(F, h, stress)
	if err != nil {
		return
	}
	scale := D.MaxAbs()
	if scale < 1 {
		scale = 1
	}
	for I := 0; I < 6; I++ {
		for J := 0; J < 6; J++ {
			maxdiff = math.Max(maxdiff, math.Abs(D[I][J]-Dnum[I][J])/scale)
		}
	}
	return
}

// CheckTangent compares D with the numerical tangent computed at F
//  Note: components are scaled by max(1, max|D|) before comparison
func CheckTangent(tst *testing.T, msg string, tol, h float64, F Mat3, D Tens4, stress StressFcn, verbose bool) {
	Dnum, err := NumTangent(F, h, stress)
	if err != nil {
		tst.Errorf("%s: cannot compute numerical tangent: %v\n", msg, err)
		return
	}
	scale := D.MaxAbs()
	if scale < 1 {
		scale = 1
	}
	for I := 0; I < 6; I++ {
		for J := 0; J < 6; J++ {
			chk.AnaNum(tst, io.Sf("%s: D[%d][%d]", msg, I, J), tol, D[I][J]/scale, Dnum[I][J]/scale, verbose)
		}
	}
}

// SampleF returns a general deformation gradient with positive determinant used in tests
func SampleF() Mat3 {
	return Mat3{
		{1.10, 0.05, -0.02},
		{0.03, 0.95, 0.04},
		{-0.01, 0.06, 1.05},
	}
}
