// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ana implements analytical solutions
package ana

import (
	"math"
	"strings"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
)

// Isochoric computes the Cauchy stress of hyperelastic models under isochoric (J = 1)
// homogeneous deformations
//
//   uniaxial:  F = diag(λ, 1/√λ, 1/√λ)    gives  σxx - σyy
//   shear:     F = I + γ e1⊗e2             gives  σxy
//
//  neo-hookean:          σxx - σyy = μ (λ² - 1/λ)               σxy = μ γ
//  mooney-rivlin:        σxx - σyy = 2 (c1 + c2/λ) (λ² - 1/λ)   σxy = 2 (c1 + c2) γ
//  ogden-unconstrained:  σxx - σyy = Σ ci/mi (λ^mi - λ^(-mi/2))
//
//  Note: the pressure does not enter the differences, thus volumetric parameters are ignored
type Isochoric struct {
	Model string    // model name
	μ     float64   // shear modulus (neo-hookean)
	c1    float64   // Mooney-Rivlin coefficient
	c2    float64   // Mooney-Rivlin coefficient
	c     []float64 // Ogden coefficients
	m     []float64 // Ogden exponents
}

// Init initialises this structure
func (o *Isochoric) Init(model string, prms dbf.Params) (err error) {
	o.Model = model
	o.c, o.m = make([]float64, 3), make([]float64, 3)
	var E, ν float64
	for _, p := range prms {
		name := strings.ToLower(p.N)
		switch {
		case name == "e":
			E = p.V
		case name == "nu":
			ν = p.V
		case model == "mooney-rivlin" && name == "c1":
			o.c1 = p.V
		case model == "mooney-rivlin" && name == "c2":
			o.c2 = p.V
		case model == "ogden-unconstrained" && len(name) == 2 && name[0] == 'c' && name[1] >= '1' && name[1] <= '3':
			o.c[name[1]-'1'] = p.V
		case model == "ogden-unconstrained" && len(name) == 2 && name[0] == 'm' && name[1] >= '1' && name[1] <= '3':
			o.m[name[1]-'1'] = p.V
		}
	}
	switch model {
	case "neo-hookean":
		o.μ = E / (2 * (1 + ν))
	case "mooney-rivlin", "ogden-unconstrained":
	default:
		return chk.Err("isochoric solution of model %q is not available", model)
	}
	return
}

// ShearModulus returns the small strain shear modulus
func (o Isochoric) ShearModulus() float64 {
	switch o.Model {
	case "mooney-rivlin":
		return 2 * (o.c1 + o.c2)
	case "ogden-unconstrained":
		var sum float64
		for _, c := range o.c {
			sum += c
		}
		return sum / 2
	}
	return o.μ
}

// Sdiff returns σxx - σyy for the uniaxial stretch λ
func (o Isochoric) Sdiff(λ float64) (res float64) {
	switch o.Model {
	case "mooney-rivlin":
		return 2 * (o.c1 + o.c2/λ) * (λ*λ - 1/λ)
	case "ogden-unconstrained":
		for i, c := range o.c {
			if c != 0 {
				res += c / o.m[i] * (math.Pow(λ, o.m[i]) - math.Pow(λ, -o.m[i]/2))
			}
		}
		return
	}
	return o.μ * (λ*λ - 1/λ)
}

// Sxy returns σxy for the simple shear γ
func (o Isochoric) Sxy(γ float64) (res float64, err error) {
	switch o.Model {
	case "neo-hookean":
		return o.μ * γ, nil
	case "mooney-rivlin":
		return 2 * (o.c1 + o.c2) * γ, nil
	}
	return 0, chk.Err("simple shear solution of model %q is not available", o.Model)
}

// CheckUniaxial checks the stress σ = [σxx, σyy, σzz, ...] computed at the uniaxial stretch λ
func (o Isochoric) CheckUniaxial(tst *testing.T, msg string, tol, λ float64, σ []float64) {
	chk.Float64(tst, io.Sf("%s: σxx-σyy @ λ=%g", msg, λ), tol, σ[0]-σ[1], o.Sdiff(λ))
	chk.Float64(tst, io.Sf("%s: σyy-σzz @ λ=%g", msg, λ), tol, σ[1]-σ[2], 0)
}
