// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package fiber implements fiber laws, orientation distributions and integration schemes over the
// unit hemisphere used by continuous fiber distribution materials
//
//  A fiber law gives the response of a single fiber family along the referential unit direction
//  n0. With a = F·n0 and In = a·a, the strain energy W(In) is active in tension only (In > 1):
//
//      σ = (2/J) W'(In) a⊗a          c = (4/J) W''(In) (a⊗a)⊗(a⊗a)
//
package fiber

import (
	"math"
	"strings"

	"github.com/cpmech/gomat/mdl/state"
	"github.com/cpmech/gomat/tsr"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// Law defines the response of a fiber family along a given referential direction
type Law interface {
	Init(prms dbf.Params) error                              // initialises law
	GetPrms(example bool) dbf.Params                         // gets (an example) of parameters
	Stress(p *state.Point, n0 tsr.Vec3) tsr.Sym              // Cauchy stress
	Tangent(p *state.Point, n0 tsr.Vec3) tsr.Tens4           // spatial tangent
	StrainEnergyDensity(p *state.Point, n0 tsr.Vec3) float64 // strain energy density
}

// potential defines W(In) and its derivatives
type potential interface {
	energy(In float64) (W, dW, ddW float64)
}

// laws holds all available fiber laws
var laws = map[string]func() Law{}

// NewLaw returns a new fiber law
func NewLaw(name string) (Law, error) {
	allocator, ok := laws[name]
	if !ok {
		return nil, chk.Err("fiber law %q is not available in 'fiber' database", name)
	}
	return allocator(), nil
}

// Laws returns the names of all available fiber laws
func Laws() []string {
	return sortedKeys(laws)
}

// stretched returns a = F·n0, In = a·a and the Jacobian
func stretched(p *state.Point, n0 tsr.Vec3) (a tsr.Vec3, In, J float64) {
	K := state.Kinematics(p)
	a = K.F.MulVec(n0)
	return a, a.Dot(a), K.J
}

// stress computes the stress of a fiber with potential w
func stress(w potential, p *state.Point, n0 tsr.Vec3) (sig tsr.Sym) {
	a, In, J := stretched(p, n0)
	if In <= 1 {
		return
	}
	_, dW, _ := w.energy(In)
	return a.Dyad().Scale(2.0 * dW / J)
}

// tangent computes the tangent of a fiber with potential w
func tangent(w potential, p *state.Point, n0 tsr.Vec3) (D tsr.Tens4) {
	a, In, J := stretched(p, n0)
	if In <= 1 {
		return
	}
	_, _, ddW := w.energy(In)
	N := a.Dyad()
	return tsr.Dyad1(N, N).Scale(4.0 * ddW / J)
}

// sed computes the strain energy density of a fiber with potential w
func sed(w potential, p *state.Point, n0 tsr.Vec3) float64 {
	_, In, _ := stretched(p, n0)
	if In <= 1 {
		return 0
	}
	W, _, _ := w.energy(In)
	return W
}

// ExpPow implements the exponential-power fiber law
//
//   W = ξ/(α β) [ exp(α (In-1)^β) - 1 ]    (α > 0)
//   W = ξ/β (In-1)^β                        (α = 0)
//
type ExpPow struct {
	ξ float64 // fiber modulus
	α float64 // exponential coefficient
	β float64 // power (≥ 2)
}

// add law to factory
func init() {
	laws["fiber-exp-pow"] = func() Law { return new(ExpPow) }
}

// Init initialises law
func (o *ExpPow) Init(prms dbf.Params) (err error) {
	o.β = 2
	for _, p := range prms {
		switch strings.ToLower(p.N) {
		case "ksi":
			o.ξ = p.V
		case "alpha":
			o.α = p.V
		case "beta":
			o.β = p.V
		default:
			return chk.Err("fiber-exp-pow: parameter named %q is incorrect\n", p.N)
		}
	}
	if o.ξ < 0 {
		return chk.Err("fiber-exp-pow: ksi must be non-negative. ksi = %g is invalid", o.ξ)
	}
	if o.α < 0 {
		return chk.Err("fiber-exp-pow: alpha must be non-negative. alpha = %g is invalid", o.α)
	}
	if o.β < 2 {
		return chk.Err("fiber-exp-pow: beta must be greater than or equal to 2. beta = %g is invalid", o.β)
	}
	return
}

// GetPrms gets (an example) of parameters
func (o ExpPow) GetPrms(example bool) dbf.Params {
	if example {
		return []*dbf.P{
			&dbf.P{N: "ksi", V: 5},
			&dbf.P{N: "alpha", V: 20},
			&dbf.P{N: "beta", V: 3},
		}
	}
	return []*dbf.P{
		&dbf.P{N: "ksi", V: o.ξ},
		&dbf.P{N: "alpha", V: o.α},
		&dbf.P{N: "beta", V: o.β},
	}
}

// energy computes W and its derivatives with respect to In
func (o ExpPow) energy(In float64) (W, dW, ddW float64) {
	x := In - 1
	xb := math.Pow(x, o.β)
	e := math.Exp(o.α * xb)
	if o.α > 0 {
		W = o.ξ / (o.α * o.β) * (e - 1)
	} else {
		W = o.ξ / o.β * xb
	}
	dW = o.ξ * math.Pow(x, o.β-1) * e
	ddW = o.ξ * math.Pow(x, o.β-2) * ((o.β - 1) + o.α*o.β*xb) * e
	return
}

// Stress computes the Cauchy stress
func (o *ExpPow) Stress(p *state.Point, n0 tsr.Vec3) tsr.Sym { return stress(o, p, n0) }

// Tangent computes the spatial tangent
func (o *ExpPow) Tangent(p *state.Point, n0 tsr.Vec3) tsr.Tens4 { return tangent(o, p, n0) }

// StrainEnergyDensity computes W
func (o *ExpPow) StrainEnergyDensity(p *state.Point, n0 tsr.Vec3) float64 { return sed(o, p, n0) }

// NeoHookean implements a neo-Hookean fiber: W = μ/4 (In-1)²
type NeoHookean struct {
	μ float64 // fiber modulus
}

// add law to factory
func init() {
	laws["fiber-neo-hookean"] = func() Law { return new(NeoHookean) }
}

// Init initialises law
func (o *NeoHookean) Init(prms dbf.Params) (err error) {
	for _, p := range prms {
		switch strings.ToLower(p.N) {
		case "mu":
			o.μ = p.V
		default:
			return chk.Err("fiber-neo-hookean: parameter named %q is incorrect\n", p.N)
		}
	}
	if o.μ < 0 {
		return chk.Err("fiber-neo-hookean: mu must be non-negative. mu = %g is invalid", o.μ)
	}
	return
}

// GetPrms gets (an example) of parameters
func (o NeoHookean) GetPrms(example bool) dbf.Params {
	if example {
		return []*dbf.P{
			&dbf.P{N: "mu", V: 10},
		}
	}
	return []*dbf.P{
		&dbf.P{N: "mu", V: o.μ},
	}
}

func (o NeoHookean) energy(In float64) (W, dW, ddW float64) {
	x := In - 1
	return o.μ / 4 * x * x, o.μ / 2 * x, o.μ / 2
}

// Stress computes the Cauchy stress
func (o *NeoHookean) Stress(p *state.Point, n0 tsr.Vec3) tsr.Sym { return stress(o, p, n0) }

// Tangent computes the spatial tangent
func (o *NeoHookean) Tangent(p *state.Point, n0 tsr.Vec3) tsr.Tens4 { return tangent(o, p, n0) }

// StrainEnergyDensity computes W
func (o *NeoHookean) StrainEnergyDensity(p *state.Point, n0 tsr.Vec3) float64 { return sed(o, p, n0) }
