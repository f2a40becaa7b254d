// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solid

import (
	"fmt"
	"math"

	"github.com/cpmech/gomat/mdl/state"
	"github.com/cpmech/gomat/tsr"
)

// Volumetric implements the bulk response shared by uncoupled models
//
//   U(J) = k/2 (ln J)²      p = dU/dJ = k ln(J)/J
//
type Volumetric struct {
	K float64 // bulk modulus
}

// Pressure returns p = k ln(J)/J
func (o Volumetric) Pressure(J float64) float64 {
	return o.K * math.Log(J) / J
}

// Stress returns σ = p I
func (o Volumetric) Stress(J float64) tsr.Sym {
	return tsr.SymIdentity().Scale(o.Pressure(J))
}

// Tangent returns c = (p + J dp/dJ) I⊗I - 2 p I4 = (k/J) I⊗I - 2 p I4
func (o Volumetric) Tangent(J float64) tsr.Tens4 {
	return tsr.IxI().Scale(o.K/J).Add(-2*o.Pressure(J), tsr.I4())
}

// SED returns U(J)
func (o Volumetric) SED(J float64) float64 {
	lnJ := math.Log(J)
	return o.K / 2 * lnJ * lnJ
}

// TotalStress computes the full Cauchy stress of m, adding the volumetric part of uncoupled models
func TotalStress(m Material, p *state.Point) (sig tsr.Sym, err error) {
	sig, err = m.Stress(p)
	if err != nil {
		return
	}
	if u, ok := m.(Uncoupled); ok {
		sig = sig.Add(1, Volumetric{u.BulkModulus()}.Stress(state.Kinematics(p).J))
	}
	if !sig.IsFinite() {
		return sig, fmt.Errorf("%w: σ = %v", ErrNotFinite, sig)
	}
	return
}

// TotalTangent computes the full tangent of m, adding the volumetric part of uncoupled models
func TotalTangent(m Material, p *state.Point) (D tsr.Tens4, err error) {
	D, err = m.Tangent(p)
	if err != nil {
		return
	}
	if u, ok := m.(Uncoupled); ok {
		Dvol := Volumetric{u.BulkModulus()}.Tangent(state.Kinematics(p).J)
		D.AddTo(1, &Dvol)
	}
	if !D.IsFinite() {
		return D, fmt.Errorf("%w: tangent has NaN or Inf components", ErrNotFinite)
	}
	return
}

// TotalSED computes the full strain energy density of m, adding the volumetric part of uncoupled models
func TotalSED(m Material, p *state.Point) (W float64, err error) {
	W, err = m.StrainEnergyDensity(p)
	if err != nil {
		return
	}
	if u, ok := m.(Uncoupled); ok {
		W += Volumetric{u.BulkModulus()}.SED(state.Kinematics(p).J)
	}
	if math.IsNaN(W) || math.IsInf(W, 0) {
		return W, fmt.Errorf("%w: W = %g", ErrNotFinite, W)
	}
	return
}
