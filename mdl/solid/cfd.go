// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solid

import (
	"math"

	"github.com/cpmech/gomat/mdl/fiber"
	"github.com/cpmech/gomat/mdl/state"
	"github.com/cpmech/gomat/tsr"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/utl"
)

// CFD implements a continuous fiber distribution
//
//   σ = Σ_k R(a_k)/IFD w_k σf(n_k)     n_k = Q·A·a_k
//
//  where a_k and w_k are the local directions and weights of the integration scheme, A holds the
//  material axes and Q is the frame of the point. The integrated fiber density IFD is computed
//  once by Init (or SetParent) with R evaluated at A·a_k
//
//  Components:
//   fibers       -- fiber law
//   distribution -- orientation density R
//   scheme       -- integration scheme
type CFD struct {
	law    fiber.Law          // fiber law
	dist   fiber.Distribution // fiber density
	scheme fiber.Scheme       // integration scheme
	axes   matAxes            // own material axes
	A      tsr.Mat3           // material axes in use (own or inherited)
	ifd    float64            // integrated fiber density
	parent Material           // owner, if any
}

// add model to factory
func init() {
	allocators["continuous-fiber-distribution"] = func() Material { return new(CFD) }
}

// SetSub allocates and initialises component
func (o *CFD) SetSub(role string, sub *Desc) (err error) {
	switch role {
	case "fibers":
		o.law, err = fiber.NewLaw(sub.Model)
		if err != nil {
			return
		}
		return o.law.Init(sub.Prms)
	case "distribution":
		o.dist, err = fiber.NewDistribution(sub.Model)
		if err != nil {
			return
		}
		return o.dist.Init(sub.Prms)
	case "scheme":
		o.scheme, err = fiber.NewScheme(sub.Model)
		if err != nil {
			return
		}
		return o.scheme.Init(sub.Prms)
	}
	return chk.Err("continuous-fiber-distribution: component %q is invalid. Valid components are \"fibers\", \"distribution\" and \"scheme\"", role)
}

// Init initialises model and computes the integrated fiber density
func (o *CFD) Init(prms dbf.Params) (err error) {
	o.axes = matAxes{}
	for _, p := range prms {
		if !o.axes.parse(p) {
			return chk.Err("continuous-fiber-distribution: parameter named %q is incorrect\n", p.N)
		}
	}
	switch {
	case o.law == nil:
		return chk.Err("continuous-fiber-distribution: component \"fibers\" is missing")
	case o.dist == nil:
		return chk.Err("continuous-fiber-distribution: component \"distribution\" is missing")
	case o.scheme == nil:
		return chk.Err("continuous-fiber-distribution: component \"scheme\" is missing")
	}
	err = o.axes.init("continuous-fiber-distribution")
	if err != nil {
		return
	}
	o.setAxes(o.axesInUse())
	return
}

// axesInUse returns the own axes, if given, or the axes inherited from the ancestors
func (o *CFD) axesInUse() tsr.Mat3 {
	if !o.axes.set {
		if A, given := ancestorAxes(o.parent); given {
			return A
		}
	}
	return o.axes.Q
}

// setAxes sets the material axes in use and recomputes IFD
func (o *CFD) setAxes(A tsr.Mat3) {
	o.A = A
	o.ifd = fiber.IntegratedDensity(o.dist, o.scheme, A)
}

// SetParent inherits the material axes of the ancestors if no axes were given
//  Note: the parent is kept, thus Init and Decode inherit the axes again regardless of the
//  order in which owners are re-initialised
func (o *CFD) SetParent(parent Material, role string) error {
	o.parent = parent
	if A := o.axesInUse(); A != o.A {
		o.setAxes(A)
	}
	return nil
}

// Validate checks parameters
func (o *CFD) Validate() error {
	if o.ifd <= 0 || math.IsNaN(o.ifd) || math.IsInf(o.ifd, 0) {
		return chk.Err("continuous-fiber-distribution: integrated fiber density must be positive. IFD = %g is invalid", o.ifd)
	}
	return nil
}

// GetPrms gets (an example) of parameters
func (o *CFD) GetPrms(example bool) dbf.Params {
	if example {
		return []*dbf.P{
			&dbf.P{N: "a1", V: 1},
			&dbf.P{N: "a2", V: 0},
			&dbf.P{N: "a3", V: 0},
			&dbf.P{N: "d1", V: 0},
			&dbf.P{N: "d2", V: 1},
			&dbf.P{N: "d3", V: 0},
		}
	}
	return o.axes.prms()
}

// IFD returns the integrated fiber density
func (o *CFD) IFD() float64 { return o.ifd }

// CreatePoint allocates a new material point
func (o *CFD) CreatePoint() *state.Point {
	return state.NewPoint("continuous-fiber-distribution")
}

// Stress computes Cauchy stress
func (o *CFD) Stress(p *state.Point) (sig tsr.Sym, err error) {
	_, err = kinematics(p)
	if err != nil {
		return
	}
	it := o.scheme.GetIterator(p, o.A)
	defer it.Release()
	for it.Next() {
		R := o.dist.Density(it.Local()) / o.ifd * it.Weight()
		sig = sig.Add(R, o.law.Stress(p, it.Fiber()))
	}
	return
}

// Tangent computes spatial tangent
func (o *CFD) Tangent(p *state.Point) (D tsr.Tens4, err error) {
	_, err = kinematics(p)
	if err != nil {
		return
	}
	it := o.scheme.GetIterator(p, o.A)
	defer it.Release()
	for it.Next() {
		R := o.dist.Density(it.Local()) / o.ifd * it.Weight()
		c := o.law.Tangent(p, it.Fiber())
		D.AddTo(R, &c)
	}
	return
}

// StrainEnergyDensity computes W
func (o *CFD) StrainEnergyDensity(p *state.Point) (W float64, err error) {
	_, err = kinematics(p)
	if err != nil {
		return
	}
	it := o.scheme.GetIterator(p, o.A)
	defer it.Release()
	for it.Next() {
		R := o.dist.Density(it.Local()) / o.ifd * it.Weight()
		W += R * o.law.StrainEnergyDensity(p, it.Fiber())
	}
	return
}

// Encode encodes the parameters of the fiber law, distribution, scheme and axes
func (o *CFD) Encode(enc utl.Encoder) (err error) {
	for _, c := range []parametric{o.law, o.dist, o.scheme, o} {
		err = encodePrms(enc, c)
		if err != nil {
			return
		}
	}
	return
}

// Decode decodes the parameters of the fiber law, distribution, scheme and axes
func (o *CFD) Decode(dec utl.Decoder) (err error) {
	for _, c := range []parametric{o.law, o.dist, o.scheme, o} {
		err = decodePrms(dec, c)
		if err != nil {
			return
		}
	}
	return
}
