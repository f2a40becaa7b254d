// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solid

import (
	"strings"

	"github.com/cpmech/gomat/mdl/damage"
	"github.com/cpmech/gomat/mdl/state"
	"github.com/cpmech/gomat/tsr"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/utl"
)

// ElasticDamage implements scalar damage of an elastic material
//
//   σ = (1 - D) σe     D = Dmax cdf(max(Ξtrial, Ξmax))
//
//  where σe is the stress of the undamaged material and Ξ is the damage criterion. When loading
//  (Ξtrial > Ξmax) the tangent includes -Dmax pdf(Ξ) σe⊗G where dΞ/dt = G:d
//
//  Components:
//   elastic   -- undamaged material
//   cdf       -- cumulative distribution function
//   criterion -- damage criterion
type ElasticDamage struct {
	elastic   Material         // undamaged material
	cdf       damage.CDF       // damage law
	criterion damage.Criterion // damage criterion
	Dmax      float64          // maximum damage
	parent    Material         // owner, if any
}

// add model to factory
func init() {
	allocators["elastic-damage"] = func() Material { return new(ElasticDamage) }
}

// SetSub allocates and initialises component
func (o *ElasticDamage) SetSub(role string, sub *Desc) (err error) {
	switch role {
	case "elastic":
		o.elastic, err = NewWith(sub)
		return
	case "cdf":
		o.cdf, err = damage.NewCDF(sub.Model)
		if err != nil {
			return
		}
		return o.cdf.Init(sub.Prms)
	case "criterion":
		o.criterion, err = damage.NewCriterion(sub.Model)
		if err != nil {
			return
		}
		return o.criterion.Init(sub.Prms)
	}
	return chk.Err("elastic-damage: component %q is invalid. Valid components are \"elastic\", \"cdf\" and \"criterion\"", role)
}

// Init initialises model
func (o *ElasticDamage) Init(prms dbf.Params) (err error) {
	o.Dmax = 1
	for _, p := range prms {
		switch strings.ToLower(p.N) {
		case "dmax":
			o.Dmax = p.V
		default:
			return chk.Err("elastic-damage: parameter named %q is incorrect\n", p.N)
		}
	}
	switch {
	case o.elastic == nil:
		return chk.Err("elastic-damage: component \"elastic\" is missing")
	case o.cdf == nil:
		return chk.Err("elastic-damage: component \"cdf\" is missing")
	case o.criterion == nil:
		return chk.Err("elastic-damage: component \"criterion\" is missing")
	}
	return o.share()
}

// share calls SetParent of the elastic material
func (o *ElasticDamage) share() error {
	if pa, ok := o.elastic.(ParentAware); ok {
		return pa.SetParent(o, "elastic")
	}
	return nil
}

// SetParent records the owner and passes its axes on to the elastic material
func (o *ElasticDamage) SetParent(parent Material, role string) error {
	o.parent = parent
	return o.share()
}

// Axes returns the axes of the owner
func (o *ElasticDamage) Axes() (tsr.Mat3, bool) { return ancestorAxes(o.parent) }

// Validate checks parameters
func (o *ElasticDamage) Validate() error {
	if o.Dmax < 0 || o.Dmax > 1 {
		return chk.Err("elastic-damage: Dmax must be in [0, 1]. Dmax = %g is invalid", o.Dmax)
	}
	return nil
}

// GetPrms gets (an example) of parameters
func (o *ElasticDamage) GetPrms(example bool) dbf.Params {
	if example {
		return []*dbf.P{&dbf.P{N: "Dmax", V: 0.9}}
	}
	return []*dbf.P{&dbf.P{N: "Dmax", V: o.Dmax}}
}

// CreatePoint allocates a new material point with the damage block
func (o *ElasticDamage) CreatePoint() *state.Point {
	p := state.NewPoint("elastic-damage")
	p.Merge("elastic", o.elastic.CreatePoint())
	p.Add(damage.Tag, new(damage.State))
	return p
}

// trial computes the undamaged response and updates the trial damage of p
func (o *ElasticDamage) trial(p *state.Point) (sigE tsr.Sym, W, Ξ float64, s *damage.State, err error) {
	sub := p.Scope("elastic")
	sigE, err = TotalStress(o.elastic, sub)
	if err != nil {
		return
	}
	W, err = TotalSED(o.elastic, sub)
	if err != nil {
		return
	}
	Ξ, err = o.criterion.Value(p, sigE, W)
	if err != nil {
		return
	}
	s = damage.Get(p)
	s.Etrial = Ξ
	s.D = damage.Damage(o.cdf, o.Dmax, s)
	return
}

// Stress computes Cauchy stress
func (o *ElasticDamage) Stress(p *state.Point) (sig tsr.Sym, err error) {
	sigE, _, _, s, err := o.trial(p)
	if err != nil {
		return
	}
	return sigE.Scale(1 - s.D), nil
}

// Tangent computes spatial tangent
func (o *ElasticDamage) Tangent(p *state.Point) (D tsr.Tens4, err error) {
	sigE, W, Ξ, s, err := o.trial(p)
	if err != nil {
		return
	}
	ce, err := TotalTangent(o.elastic, p.Scope("elastic"))
	if err != nil {
		return
	}
	D = ce.Scale(1 - s.D)
	if s.Loading() {
		G, e := o.criterion.Rate(p, sigE, W)
		if e != nil {
			return D, e
		}
		D = D.Add(-o.Dmax*o.cdf.Pdf(Ξ), tsr.Dyad1(sigE, G))
	}
	return
}

// StrainEnergyDensity computes (1 - D) We
func (o *ElasticDamage) StrainEnergyDensity(p *state.Point) (W float64, err error) {
	_, We, _, s, err := o.trial(p)
	if err != nil {
		return
	}
	return (1 - s.D) * We, nil
}

// Encode encodes the parameters of the elastic material, cdf, criterion and Dmax
func (o *ElasticDamage) Encode(enc utl.Encoder) (err error) {
	err = o.elastic.Encode(enc)
	if err != nil {
		return
	}
	for _, c := range []parametric{o.cdf, o.criterion, o} {
		err = encodePrms(enc, c)
		if err != nil {
			return
		}
	}
	return
}

// Decode decodes the parameters of the elastic material, cdf, criterion and Dmax
func (o *ElasticDamage) Decode(dec utl.Decoder) (err error) {
	err = o.elastic.Decode(dec)
	if err != nil {
		return
	}
	for _, c := range []parametric{o.cdf, o.criterion, o} {
		err = decodePrms(dec, c)
		if err != nil {
			return
		}
	}
	return
}
