// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solid

import (
	"sort"
	"strings"

	"github.com/cpmech/gomat/mdl/state"
	"github.com/cpmech/gomat/tsr"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/utl"
)

// axesProvider defines composites whose local material axes are shared with their components
//  Note: composites without own axes return the axes of their closest ancestor that has them
type axesProvider interface {
	Axes() (Q tsr.Mat3, ok bool) // returns the axes (columns); ok is false if not given
}

// ancestorAxes returns the axes of parent, if it provides them
func ancestorAxes(parent Material) (tsr.Mat3, bool) {
	if ap, ok := parent.(axesProvider); ok {
		return ap.Axes()
	}
	return tsr.Identity(), false
}

// matAxes holds optional local material axes given by vectors a = {a1,a2,a3} and d = {d1,d2,d3}
//  Note: e1 = a/|a|, e2 lies in the plane of a and d, e3 = e1 × e2
type matAxes struct {
	a, d tsr.Vec3 // defining vectors
	set  bool     // a or d has been given
	Q    tsr.Mat3 // axes (columns); identity if not given
}

// parse reads p if it is one of a1..a3 or d1..d3
func (o *matAxes) parse(p *dbf.P) bool {
	name := strings.ToLower(p.N)
	switch name {
	case "a1", "a2", "a3":
		o.a[name[1]-'1'] = p.V
	case "d1", "d2", "d3":
		o.d[name[1]-'1'] = p.V
	default:
		return false
	}
	o.set = true
	return true
}

// init computes Q
func (o *matAxes) init(model string) error {
	o.Q = tsr.Identity()
	if !o.set {
		return nil
	}
	Q, ok := tsr.Frame(o.a, o.d)
	if !ok {
		return chk.Err("%s: material axes cannot be defined by a = %v and d = %v", model, o.a, o.d)
	}
	o.Q = Q
	return nil
}

// prms returns the axes parameters, if given
func (o *matAxes) prms() (res dbf.Params) {
	if !o.set {
		return
	}
	for i, name := range []string{"a1", "a2", "a3"} {
		res = append(res, &dbf.P{N: name, V: o.a[i]})
	}
	for i, name := range []string{"d1", "d2", "d3"} {
		res = append(res, &dbf.P{N: name, V: o.d[i]})
	}
	return
}

// mixture holds the sub-materials of a mixture sorted by role
type mixture struct {
	model  string     // name of model
	roles  []string   // roles: solid1, solid2, ...
	subs   []Material // sub-materials
	axes   matAxes    // local material axes shared with components
	self   Material   // the model embedding this mixture
	parent Material   // owner of this mixture, if nested
}

// setSub allocates sub-material with given role
func (o *mixture) setSub(role string, d *Desc, uncoupled bool) (err error) {
	if !strings.HasPrefix(role, "solid") {
		return chk.Err("%s: role of sub-material must start with \"solid\". %q is invalid", o.model, role)
	}
	sub, err := NewWith(d)
	if err != nil {
		return
	}
	if _, ok := sub.(Uncoupled); uncoupled && !ok {
		return chk.Err("%s: sub-material %q (%s) must be uncoupled", o.model, role, d.Model)
	}
	i := sort.SearchStrings(o.roles, role)
	if i < len(o.roles) && o.roles[i] == role {
		return chk.Err("%s: sub-material %q has already been set", o.model, role)
	}
	o.roles = append(o.roles, "")
	o.subs = append(o.subs, nil)
	copy(o.roles[i+1:], o.roles[i:])
	copy(o.subs[i+1:], o.subs[i:])
	o.roles[i], o.subs[i] = role, sub
	return
}

// init parses the axes and shares them with the components
func (o *mixture) init(self Material, prms dbf.Params) (err error) {
	o.self = self
	o.axes = matAxes{}
	for _, p := range prms {
		if !o.axes.parse(p) {
			return chk.Err("%s: parameter named %q is incorrect\n", o.model, p.N)
		}
	}
	if len(o.subs) == 0 {
		return chk.Err("%s: at least one sub-material is required", o.model)
	}
	err = o.axes.init(o.model)
	if err != nil {
		return
	}
	return o.share()
}

// share calls SetParent of the components
func (o *mixture) share() (err error) {
	for i, sub := range o.subs {
		if pa, ok := sub.(ParentAware); ok {
			err = pa.SetParent(o.self, o.roles[i])
			if err != nil {
				return
			}
		}
	}
	return
}

// SetParent records the owner of a nested mixture and shares its axes with the components
func (o *mixture) SetParent(parent Material, role string) error {
	o.parent = parent
	return o.share()
}

// Axes returns the local material axes of the mixture or, if not given, of its ancestors
func (o *mixture) Axes() (tsr.Mat3, bool) {
	if o.axes.set {
		return o.axes.Q, true
	}
	return ancestorAxes(o.parent)
}

// Roles returns the roles of the sub-materials
func (o *mixture) Roles() []string { return append([]string{}, o.roles...) }

// Validate checks parameters
func (o *mixture) Validate() error { return nil }

// CreatePoint merges the points of all sub-materials
func (o *mixture) CreatePoint() *state.Point {
	p := state.NewPoint(o.model)
	for i, sub := range o.subs {
		p.Merge(o.roles[i], sub.CreatePoint())
	}
	return p
}

// stress adds the stresses of all sub-materials; total includes volumetric parts
func (o *mixture) stress(p *state.Point, total bool) (sig tsr.Sym, err error) {
	var s tsr.Sym
	for i, sub := range o.subs {
		q := p.Scope(o.roles[i])
		if total {
			s, err = TotalStress(sub, q)
		} else {
			s, err = sub.Stress(q)
		}
		if err != nil {
			return
		}
		sig = sig.Add(1, s)
	}
	return
}

// tangent adds the tangents of all sub-materials; total includes volumetric parts
func (o *mixture) tangent(p *state.Point, total bool) (D tsr.Tens4, err error) {
	var c tsr.Tens4
	for i, sub := range o.subs {
		q := p.Scope(o.roles[i])
		if total {
			c, err = TotalTangent(sub, q)
		} else {
			c, err = sub.Tangent(q)
		}
		if err != nil {
			return
		}
		D.AddTo(1, &c)
	}
	return
}

// sed adds the strain energy densities of all sub-materials; total includes volumetric parts
func (o *mixture) sed(p *state.Point, total bool) (W float64, err error) {
	var w float64
	for i, sub := range o.subs {
		q := p.Scope(o.roles[i])
		if total {
			w, err = TotalSED(sub, q)
		} else {
			w, err = sub.StrainEnergyDensity(q)
		}
		if err != nil {
			return
		}
		W += w
	}
	return
}

// encode encodes the parameters of the sub-materials followed by the axes
func (o *mixture) encode(enc utl.Encoder, self parametric) (err error) {
	for i, sub := range o.subs {
		err = sub.Encode(enc)
		if err != nil {
			return chk.Err("%s: cannot encode sub-material %q:\n%v", o.model, o.roles[i], err)
		}
	}
	return encodePrms(enc, self)
}

// decode decodes the parameters of the sub-materials followed by the axes
func (o *mixture) decode(dec utl.Decoder, self parametric) (err error) {
	for i, sub := range o.subs {
		err = sub.Decode(dec)
		if err != nil {
			return chk.Err("%s: cannot decode sub-material %q:\n%v", o.model, o.roles[i], err)
		}
	}
	return decodePrms(dec, self)
}

// SolidMixture implements a mixture of solids whose responses are added
//
//   σ = Σ σ_i    c = Σ c_i    W = Σ W_i
//
//  Note: sub-materials are given under the roles solid1, solid2, ...
type SolidMixture struct {
	mixture
}

// UncoupledMixture implements a mixture of uncoupled solids. The deviatoric responses are added
// and the bulk modulus is k = Σ k_i
type UncoupledMixture struct {
	mixture
}

// add models to factory
func init() {
	allocators["solid-mixture"] = func() Material { return &SolidMixture{mixture{model: "solid-mixture"}} }
	allocators["uncoupled-mixture"] = func() Material { return &UncoupledMixture{mixture{model: "uncoupled-mixture"}} }
}

// SetSub allocates sub-material
func (o *SolidMixture) SetSub(role string, sub *Desc) error { return o.setSub(role, sub, false) }

// Init initialises model
func (o *SolidMixture) Init(prms dbf.Params) error { return o.init(o, prms) }

// GetPrms gets (an example) of parameters
func (o *SolidMixture) GetPrms(example bool) dbf.Params {
	if example {
		return nil
	}
	return o.axes.prms()
}

// Stress computes Cauchy stress
func (o *SolidMixture) Stress(p *state.Point) (tsr.Sym, error) { return o.stress(p, true) }

// Tangent computes spatial tangent
func (o *SolidMixture) Tangent(p *state.Point) (tsr.Tens4, error) { return o.tangent(p, true) }

// StrainEnergyDensity computes W
func (o *SolidMixture) StrainEnergyDensity(p *state.Point) (float64, error) { return o.sed(p, true) }

// Encode encodes parameters
func (o *SolidMixture) Encode(enc utl.Encoder) error { return o.encode(enc, o) }

// Decode decodes parameters
func (o *SolidMixture) Decode(dec utl.Decoder) error { return o.decode(dec, o) }

// SetSub allocates sub-material
func (o *UncoupledMixture) SetSub(role string, sub *Desc) error { return o.setSub(role, sub, true) }

// Init initialises model
func (o *UncoupledMixture) Init(prms dbf.Params) error { return o.init(o, prms) }

// GetPrms gets (an example) of parameters
func (o *UncoupledMixture) GetPrms(example bool) dbf.Params {
	if example {
		return nil
	}
	return o.axes.prms()
}

// BulkModulus returns Σ k_i
func (o *UncoupledMixture) BulkModulus() (k float64) {
	for _, sub := range o.subs {
		k += sub.(Uncoupled).BulkModulus()
	}
	return
}

// Stress computes the deviatoric Cauchy stress
func (o *UncoupledMixture) Stress(p *state.Point) (tsr.Sym, error) { return o.stress(p, false) }

// Tangent computes the deviatoric spatial tangent
func (o *UncoupledMixture) Tangent(p *state.Point) (tsr.Tens4, error) { return o.tangent(p, false) }

// StrainEnergyDensity computes the deviatoric part of W
func (o *UncoupledMixture) StrainEnergyDensity(p *state.Point) (float64, error) {
	return o.sed(p, false)
}

// Encode encodes parameters
func (o *UncoupledMixture) Encode(enc utl.Encoder) error { return o.encode(enc, o) }

// Decode decodes parameters
func (o *UncoupledMixture) Decode(dec utl.Decoder) error { return o.decode(dec, o) }
