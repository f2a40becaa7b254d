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

// OgdenNterms is the number of terms of the Ogden model
const OgdenNterms = 3

// Ogden implements the unconstrained (compressible) Ogden model
//
//   W = Σ_i ci/mi² (λ1^mi + λ2^mi + λ3^mi - 3 - mi ln J) + cp/2 (J - 1)²
//
//  Note: terms with ci = 0 are skipped; the small strain shear modulus is Σ ci / 2
type Ogden struct {
	c  [OgdenNterms]float64 // coefficients
	m  [OgdenNterms]float64 // exponents
	cp float64              // bulk-like coefficient
}

// add model to factory
func init() {
	allocators["ogden-unconstrained"] = func() Material { return new(Ogden) }
}

// Init initialises model
func (o *Ogden) Init(prms dbf.Params) (err error) {
	for _, p := range prms {
		name := strings.ToLower(p.N)
		switch name {
		case "c1", "c2", "c3":
			o.c[name[1]-'1'] = p.V
		case "m1", "m2", "m3":
			o.m[name[1]-'1'] = p.V
		case "cp":
			o.cp = p.V
		default:
			return chk.Err("ogden-unconstrained: parameter named %q is incorrect\n", p.N)
		}
	}
	return
}

// Validate checks parameters
func (o *Ogden) Validate() error {
	var sum float64
	for i := 0; i < OgdenNterms; i++ {
		if o.c[i] != 0 && o.m[i] == 0 {
			return chk.Err("ogden-unconstrained: m%d must be non-zero since c%d = %g", i+1, i+1, o.c[i])
		}
		sum += o.c[i]
	}
	if sum <= 0 {
		return chk.Err("ogden-unconstrained: shear modulus Σci/2 must be positive. Σci = %g is invalid", sum)
	}
	if o.cp < 0 {
		return chk.Err("ogden-unconstrained: cp must be non-negative. cp = %g is invalid", o.cp)
	}
	return nil
}

// GetPrms gets (an example) of parameters
func (o Ogden) GetPrms(example bool) dbf.Params {
	if example {
		return []*dbf.P{
			&dbf.P{N: "c1", V: 1},
			&dbf.P{N: "c2", V: 2},
			&dbf.P{N: "c3", V: 0},
			&dbf.P{N: "m1", V: 2},
			&dbf.P{N: "m2", V: -2},
			&dbf.P{N: "m3", V: 1},
			&dbf.P{N: "cp", V: 50},
		}
	}
	return []*dbf.P{
		&dbf.P{N: "c1", V: o.c[0]},
		&dbf.P{N: "c2", V: o.c[1]},
		&dbf.P{N: "c3", V: o.c[2]},
		&dbf.P{N: "m1", V: o.m[0]},
		&dbf.P{N: "m2", V: o.m[1]},
		&dbf.P{N: "m3", V: o.m[2]},
		&dbf.P{N: "cp", V: o.cp},
	}
}

// CreatePoint allocates a new material point
func (o *Ogden) CreatePoint() *state.Point {
	return state.NewPoint("ogden-unconstrained")
}

// kirchhoff computes the principal Kirchhoff stresses and their derivatives
//
//   τa = Σ_i ci/mi (λa^mi - 1) + cp J (J - 1)
//   ∂τa/∂ln(λb) = δab Σ_i ci λa^mi + cp (2J² - J)
//
func (o *Ogden) kirchhoff(b tsr.Vec3, J float64) (τ tsr.Vec3, dτ [3][3]float64) {
	vol := o.cp * J * (J - 1)
	dvol := o.cp * (2*J*J - J)
	for a := 0; a < 3; a++ {
		τ[a] = vol
		for i := 0; i < OgdenNterms; i++ {
			if o.c[i] == 0 {
				continue
			}
			λm := math.Pow(b[a], o.m[i]/2)
			τ[a] += o.c[i] / o.m[i] * (λm - 1)
			dτ[a][a] += o.c[i] * λm
		}
		for c := 0; c < 3; c++ {
			dτ[a][c] += dvol
		}
	}
	return
}

// energy computes W
func (o *Ogden) energy(b tsr.Vec3, J float64) (W float64) {
	lnJ := math.Log(J)
	for i := 0; i < OgdenNterms; i++ {
		if o.c[i] == 0 {
			continue
		}
		var sum float64
		for a := 0; a < 3; a++ {
			sum += math.Pow(b[a], o.m[i]/2)
		}
		W += o.c[i] / (o.m[i] * o.m[i]) * (sum - 3 - o.m[i]*lnJ)
	}
	return W + o.cp/2*(J-1)*(J-1)
}

// Stress computes Cauchy stress
func (o *Ogden) Stress(p *state.Point) (tsr.Sym, error) { return principalStress(o, p) }

// Tangent computes spatial tangent
func (o *Ogden) Tangent(p *state.Point) (tsr.Tens4, error) { return principalTangent(o, p) }

// StrainEnergyDensity computes W
func (o *Ogden) StrainEnergyDensity(p *state.Point) (float64, error) { return principalSED(o, p) }

// Encode encodes parameters
func (o *Ogden) Encode(enc utl.Encoder) error { return encodePrms(enc, o) }

// Decode decodes parameters
func (o *Ogden) Decode(dec utl.Decoder) error { return decodePrms(dec, o) }
