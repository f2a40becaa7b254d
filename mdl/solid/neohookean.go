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

// NeoHookean implements a compressible neo-Hookean model
//
//   W = μ/2 (I1 - 3) - μ ln J + λ/2 (ln J)²
//   σ = μ/J (b - I) + λ ln(J)/J I
//
type NeoHookean struct {
	E float64 // Young's modulus
	ν float64 // Poisson's coefficient
	μ float64 // shear modulus
	λ float64 // Lamé's first parameter
}

// add model to factory
func init() {
	allocators["neo-hookean"] = func() Material { return new(NeoHookean) }
}

// Init initialises model
func (o *NeoHookean) Init(prms dbf.Params) (err error) {
	for _, p := range prms {
		switch strings.ToLower(p.N) {
		case "e":
			o.E = p.V
		case "nu":
			o.ν = p.V
		default:
			return chk.Err("neo-hookean: parameter named %q is incorrect\n", p.N)
		}
	}
	o.μ, o.λ = lame(o.E, o.ν)
	return
}

// Validate checks parameters
func (o *NeoHookean) Validate() error {
	return checkEν("neo-hookean", o.E, o.ν)
}

// GetPrms gets (an example) of parameters
func (o NeoHookean) GetPrms(example bool) dbf.Params {
	if example {
		return []*dbf.P{
			&dbf.P{N: "E", V: 1000},
			&dbf.P{N: "nu", V: 0.3},
		}
	}
	return []*dbf.P{
		&dbf.P{N: "E", V: o.E},
		&dbf.P{N: "nu", V: o.ν},
	}
}

// CreatePoint allocates a new material point
func (o *NeoHookean) CreatePoint() *state.Point {
	return state.NewPoint("neo-hookean")
}

// Stress computes Cauchy stress
func (o *NeoHookean) Stress(p *state.Point) (sig tsr.Sym, err error) {
	k, err := kinematics(p)
	if err != nil {
		return
	}
	I := tsr.SymIdentity()
	return k.LeftCG().Add(-1, I).Scale(o.μ/k.J).Add(o.λ*math.Log(k.J)/k.J, I), nil
}

// Tangent computes c = λ/J I⊗I + 2 (μ - λ ln J)/J I4
func (o *NeoHookean) Tangent(p *state.Point) (D tsr.Tens4, err error) {
	k, err := kinematics(p)
	if err != nil {
		return
	}
	return tsr.IxI().Scale(o.λ/k.J).Add(2*(o.μ-o.λ*math.Log(k.J))/k.J, tsr.I4()), nil
}

// StrainEnergyDensity computes W
func (o *NeoHookean) StrainEnergyDensity(p *state.Point) (W float64, err error) {
	k, err := kinematics(p)
	if err != nil {
		return
	}
	lnJ := math.Log(k.J)
	return o.μ/2*(k.LeftCG().Tr()-3) - o.μ*lnJ + o.λ/2*lnJ*lnJ, nil
}

// Encode encodes parameters
func (o *NeoHookean) Encode(enc utl.Encoder) error { return encodePrms(enc, o) }

// Decode decodes parameters
func (o *NeoHookean) Decode(dec utl.Decoder) error { return decodePrms(dec, o) }

// lame computes Lamé's parameters from Young's modulus and Poisson's coefficient
func lame(E, ν float64) (μ, λ float64) {
	μ = E / (2 * (1 + ν))
	λ = E * ν / ((1 + ν) * (1 - 2*ν))
	return
}

// checkEν checks Young's modulus and Poisson's coefficient
func checkEν(model string, E, ν float64) error {
	if E <= 0 {
		return chk.Err("%s: Young's modulus must be positive. E = %g is invalid", model, E)
	}
	if ν <= -1 || ν >= 0.5 {
		return chk.Err("%s: Poisson's coefficient must be in (-1, 0.5). nu = %g is invalid", model, ν)
	}
	return nil
}
