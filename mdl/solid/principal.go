// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solid

import (
	"math"

	"github.com/cpmech/gomat/mdl/state"
	"github.com/cpmech/gomat/tsr"
)

// principalLaw defines isotropic laws written in terms of the principal stretches λa
//  Input:
//   b -- squared principal stretches λa² (eigenvalues of the left Cauchy-Green tensor)
//   J -- Jacobian
//  Output:
//   τ  -- principal Kirchhoff stresses τa = λa ∂W/∂λa
//   dτ -- dτ[a][b] = ∂τa/∂ln(λb)
type principalLaw interface {
	kirchhoff(b tsr.Vec3, J float64) (τ tsr.Vec3, dτ [3][3]float64)
	energy(b tsr.Vec3, J float64) float64
}

// spectral holds the spectral decomposition of the left Cauchy-Green tensor of a point
type spectral struct {
	J float64  // Jacobian
	b tsr.Vec3 // eigenvalues λa²
	n tsr.Mat3 // eigenvectors (columns)
}

// newSpectral computes the spectral decomposition of b = F·Fᵀ
func newSpectral(p *state.Point) (o *spectral, err error) {
	k, err := kinematics(p)
	if err != nil {
		return
	}
	o = &spectral{J: k.J}
	o.b, o.n, err = tsr.EigenSym(k.LeftCG())
	return
}

// principalStress computes σ = Σ τa/J na⊗na
func principalStress(w principalLaw, p *state.Point) (sig tsr.Sym, err error) {
	s, err := newSpectral(p)
	if err != nil {
		return
	}
	τ, _ := w.kirchhoff(s.b, s.J)
	for a := 0; a < 3; a++ {
		sig = sig.Add(τ[a]/s.J, s.n.Col(a).Dyad())
	}
	return
}

// principalTangent computes
//
//   J c = Σ_ab (∂τa/∂ln(λb) - 2 τa δab) Na⊗Nb + Σ_(a≠b) 2 βab Mab⊗Mab
//
//   Na = na⊗na    Mab = sym(na⊗nb)    βab = (τa λb² - τb λa²) / (λa² - λb²)
//
//  Note: the limit βab = (∂τa/∂ln(λa) - ∂τa/∂ln(λb))/2 - τa is used for repeated stretches
func principalTangent(w principalLaw, p *state.Point) (D tsr.Tens4, err error) {
	s, err := newSpectral(p)
	if err != nil {
		return
	}
	τ, dτ := w.kirchhoff(s.b, s.J)
	var N [3]tsr.Sym
	for a := 0; a < 3; a++ {
		N[a] = s.n.Col(a).Dyad()
	}
	for a := 0; a < 3; a++ {
		for b := 0; b < 3; b++ {
			coef := dτ[a][b]
			if a == b {
				coef -= 2 * τ[a]
			}
			D = D.Add(coef, tsr.Dyad1(N[a], N[b]))
			if a == b {
				continue
			}
			var β float64
			if math.Abs(s.b[a]-s.b[b]) > 1e-6*math.Max(s.b[a], s.b[b]) {
				β = (τ[a]*s.b[b] - τ[b]*s.b[a]) / (s.b[a] - s.b[b])
			} else {
				β = 0.5*(dτ[a][a]-dτ[a][b]) - τ[a]
			}
			M := tsr.SymDyad(s.n.Col(a), s.n.Col(b))
			D = D.Add(2*β, tsr.Dyad1(M, M))
		}
	}
	return D.Scale(1.0 / s.J), nil
}

// principalSED computes W
func principalSED(w principalLaw, p *state.Point) (W float64, err error) {
	s, err := newSpectral(p)
	if err != nil {
		return
	}
	return w.energy(s.b, s.J), nil
}
