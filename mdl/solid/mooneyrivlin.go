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

// MooneyRivlin implements the uncoupled Mooney-Rivlin model
//
//   W = c1 (Ĩ1 - 3) + c2 (Ĩ2 - 3) + k/2 (ln J)²
//
//  where Ĩ1 and Ĩ2 are the invariants of the isochoric tensor b̃ = J^(-2/3) b
type MooneyRivlin struct {
	c1 float64 // coefficient of Ĩ1
	c2 float64 // coefficient of Ĩ2
	k  float64 // bulk modulus
}

// add model to factory
func init() {
	allocators["mooney-rivlin"] = func() Material { return new(MooneyRivlin) }
}

// Init initialises model
func (o *MooneyRivlin) Init(prms dbf.Params) (err error) {
	for _, p := range prms {
		switch strings.ToLower(p.N) {
		case "c1":
			o.c1 = p.V
		case "c2":
			o.c2 = p.V
		case "k":
			o.k = p.V
		default:
			return chk.Err("mooney-rivlin: parameter named %q is incorrect\n", p.N)
		}
	}
	return
}

// Validate checks parameters
func (o *MooneyRivlin) Validate() error {
	if o.c1+o.c2 <= 0 {
		return chk.Err("mooney-rivlin: c1 + c2 must be positive. c1 = %g and c2 = %g are invalid", o.c1, o.c2)
	}
	if o.k <= 0 {
		return chk.Err("mooney-rivlin: bulk modulus must be positive. k = %g is invalid", o.k)
	}
	return nil
}

// GetPrms gets (an example) of parameters
func (o MooneyRivlin) GetPrms(example bool) dbf.Params {
	if example {
		return []*dbf.P{
			&dbf.P{N: "c1", V: 10},
			&dbf.P{N: "c2", V: 3},
			&dbf.P{N: "k", V: 100},
		}
	}
	return []*dbf.P{
		&dbf.P{N: "c1", V: o.c1},
		&dbf.P{N: "c2", V: o.c2},
		&dbf.P{N: "k", V: o.k},
	}
}

// BulkModulus returns k
func (o *MooneyRivlin) BulkModulus() float64 { return o.k }

// CreatePoint allocates a new material point
func (o *MooneyRivlin) CreatePoint() *state.Point {
	return state.NewPoint("mooney-rivlin")
}

// isochoric returns b̃, b̃², Ĩ1, Ĩ2 and J
func (o *MooneyRivlin) isochoric(p *state.Point) (B, B2 tsr.Sym, I1, I2, J float64, err error) {
	k, err := kinematics(p)
	if err != nil {
		return
	}
	J = k.J
	B = k.LeftCG().Scale(math.Pow(J, -2.0/3.0))
	B2 = B.Sqr()
	I1 = B.Tr()
	I2 = 0.5 * (I1*I1 - B2.Tr())
	return
}

// Stress computes the deviatoric Cauchy stress
//
//   σ = 2/J dev[ (c1 + c2 Ĩ1) b̃ - c2 b̃² ]
//
func (o *MooneyRivlin) Stress(p *state.Point) (sig tsr.Sym, err error) {
	B, B2, I1, _, J, err := o.isochoric(p)
	if err != nil {
		return
	}
	T := B.Scale(o.c1+o.c2*I1).Add(-o.c2, B2)
	return T.Dev().Scale(2 / J), nil
}

// Tangent computes the deviatoric spatial tangent
func (o *MooneyRivlin) Tangent(p *state.Point) (D tsr.Tens4, err error) {
	B, B2, I1, I2, J, err := o.isochoric(p)
	if err != nil {
		return
	}
	I := tsr.SymIdentity()
	sig := B.Scale(o.c1+o.c2*I1).Add(-o.c2, B2).Dev().Scale(2 / J)

	// auxiliary quantities
	WC := o.c1*I1 + 2*o.c2*I2                  // b̃:W_b̃
	CWWC := 2 * I2 * o.c2                      // b̃:W_b̃b̃:b̃
	WCCxC := B.Scale(o.c2 * I1).Add(-o.c2, B2) // W_b̃b̃:b̃

	// c = -2/3 (σ⊗I + I⊗σ) + 4/(3J) WC Psd + cw
	cw := tsr.Dyad1(B, B).Add(-1, tsr.Dyad4s(B, B)).Scale(4*o.c2/J)
	cw = cw.Add(-4/(3*J), tsr.Dyad1s(WCCxC, I)).Add(4/(9*J)*CWWC, tsr.IxI())
	D = tsr.Dyad1s(sig, I).Scale(-2.0/3.0).Add(4/(3*J)*WC, tsr.Psd()).Add(1, cw)
	return
}

// StrainEnergyDensity computes the deviatoric part of W
func (o *MooneyRivlin) StrainEnergyDensity(p *state.Point) (W float64, err error) {
	_, _, I1, I2, _, err := o.isochoric(p)
	if err != nil {
		return
	}
	return o.c1*(I1-3) + o.c2*(I2-3), nil
}

// Encode encodes parameters
func (o *MooneyRivlin) Encode(enc utl.Encoder) error { return encodePrms(enc, o) }

// Decode decodes parameters
func (o *MooneyRivlin) Decode(dec utl.Decoder) error { return decodePrms(dec, o) }
