// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solid

import (
	"math"
	"strings"

	"github.com/cpmech/gomat/mdl/state"
	"github.com/cpmech/gomat/tsr"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/utl"
)

// HolmesMow implements the Holmes-Mow model for hydrated soft tissues
//
//   W = c/2 (exp(Q) - 1)
//   Q = a1 (I1 - 3) + a2 (I2 - 3) - a3 ln(J²)
//
//   a1 = β (2μ - λ)/(λ + 2μ)    a2 = β λ/(λ + 2μ)    a3 = β    c = (λ + 2μ)/(2β)
//
type HolmesMow struct {
	E float64 // Young's modulus
	ν float64 // Poisson's coefficient
	β float64 // exponential stiffening coefficient

	// derived
	a1, a2, a3 float64 // coefficients of Q
	c          float64 // multiplier of W
}

// add model to factory
func init() {
	allocators["holmes-mow"] = func() Material { return new(HolmesMow) }
}

// Init initialises model
func (o *HolmesMow) Init(prms dbf.Params) (err error) {
	for _, p := range prms {
		switch strings.ToLower(p.N) {
		case "e":
			o.E = p.V
		case "nu":
			o.ν = p.V
		case "beta":
			o.β = p.V
		default:
			return chk.Err("holmes-mow: parameter named %q is incorrect\n", p.N)
		}
	}
	μ, λ := lame(o.E, o.ν)
	o.a1 = o.β * (2*μ - λ) / (λ + 2*μ)
	o.a2 = o.β * λ / (λ + 2*μ)
	o.a3 = o.β
	o.c = (λ + 2*μ) / (2 * o.β)
	return
}

// Validate checks parameters
func (o *HolmesMow) Validate() error {
	if err := checkEν("holmes-mow", o.E, o.ν); err != nil {
		return err
	}
	if o.β <= 0 {
		return chk.Err("holmes-mow: beta must be positive. beta = %g is invalid", o.β)
	}
	return nil
}

// GetPrms gets (an example) of parameters
func (o HolmesMow) GetPrms(example bool) dbf.Params {
	if example {
		return []*dbf.P{
			&dbf.P{N: "E", V: 1000},
			&dbf.P{N: "nu", V: 0.3},
			&dbf.P{N: "beta", V: 0.5},
		}
	}
	return []*dbf.P{
		&dbf.P{N: "E", V: o.E},
		&dbf.P{N: "nu", V: o.ν},
		&dbf.P{N: "beta", V: o.β},
	}
}

// CreatePoint allocates a new material point
func (o *HolmesMow) CreatePoint() *state.Point {
	return state.NewPoint("holmes-mow")
}

// invariants returns I1, I2 and exp(Q)
func (o *HolmesMow) invariants(b tsr.Vec3, J float64) (I1, I2, eQ float64) {
	I1 = b[0] + b[1] + b[2]
	I2 = b[0]*b[1] + b[1]*b[2] + b[2]*b[0]
	eQ = math.Exp(o.a1*(I1-3) + o.a2*(I2-3) - o.a3*math.Log(J*J))
	return
}

// kirchhoff computes the principal Kirchhoff stresses and their derivatives
func (o *HolmesMow) kirchhoff(b tsr.Vec3, J float64) (τ tsr.Vec3, dτ [3][3]float64) {
	I1, _, eQ := o.invariants(b, J)
	var T, Qb tsr.Vec3
	for a := 0; a < 3; a++ {
		T[a] = o.a1*b[a] + o.a2*b[a]*(I1-b[a]) - o.a3
		Qb[a] = o.a1 + o.a2*(I1-b[a]) - o.a3/b[a]
		τ[a] = o.c * eQ * T[a]
	}
	for a := 0; a < 3; a++ {
		for c := 0; c < 3; c++ {
			dT := o.a2 * b[a]
			if a == c {
				dT = o.a1 + o.a2*(I1-b[a])
			}
			dτ[a][c] = 2 * b[c] * o.c * eQ * (Qb[c]*T[a] + dT)
		}
	}
	return
}

// energy computes W
func (o *HolmesMow) energy(b tsr.Vec3, J float64) float64 {
	_, _, eQ := o.invariants(b, J)
	return o.c / 2 * (eQ - 1)
}

// Stress computes Cauchy stress
func (o *HolmesMow) Stress(p *state.Point) (tsr.Sym, error) { return principalStress(o, p) }

// Tangent computes spatial tangent
func (o *HolmesMow) Tangent(p *state.Point) (tsr.Tens4, error) { return principalTangent(o, p) }

// StrainEnergyDensity computes W
func (o *HolmesMow) StrainEnergyDensity(p *state.Point) (float64, error) {
	return principalSED(o, p)
}

// Encode encodes parameters
func (o *HolmesMow) Encode(enc utl.Encoder) error { return encodePrms(enc, o) }

// Decode decodes parameters
func (o *HolmesMow) Decode(dec utl.Decoder) error { return decodePrms(dec, o) }
