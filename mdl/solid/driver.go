// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solid

import (
	"testing"

	"github.com/cpmech/gomat/mdl/damage"
	"github.com/cpmech/gomat/mdl/state"
	"github.com/cpmech/gomat/tsr"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Result holds the response of a material point at one state along a path
type Result struct {
	F    tsr.Mat3 // deformation gradient
	Sig  tsr.Sym  // Cauchy stress
	W    float64  // strain energy density
	Work float64  // accumulated stress power per unit reference volume
	D    float64  // damage of the root damage block; zero if absent
	ErrD float64  // largest scaled difference between tangent and numerical tangent (if ChkD)
}

// Driver runs a single material point along a deformation path
type Driver struct {

	// input
	Mat Material // solid model

	// settings
	Silent bool    // do not show messages
	TolD   float64 // tolerance to check tangent
	HD     float64 // perturbation to compute numerical tangent
	VerD   bool    // verbose check of D

	// check D matrix
	TstD *testing.T // if != nil, do check consistent tangent
	ChkD bool       // compute ErrD of each result

	// results
	Res []*Result // results
}

// Init initialises driver
func (o *Driver) Init(mat Material) (err error) {
	if mat == nil {
		return chk.Err("driver requires a material")
	}
	o.Mat = mat
	o.TolD = 1e-6
	o.HD = 1e-6
	o.VerD = chk.Verbose
	return
}

// Run runs simulation. The point is updated (history committed) after each state
func (o *Driver) Run(pth *Path) (err error) {

	// check path
	if pth == nil || pth.Size() < 1 {
		return chk.Err("driver requires a path with at least one state")
	}

	// allocate point and results
	p := o.Mat.CreatePoint()
	p.Init()
	o.Res = make([]*Result, pth.Size())

	// run
	for i, F := range pth.F {

		// kinematics
		err = state.Kinematics(p).SetF(F)
		if err != nil {
			return chk.Err("driver: state %d: %v", i, err)
		}

		// response
		res := &Result{F: F}
		res.Sig, err = TotalStress(o.Mat, p)
		if err != nil {
			return chk.Err("driver: state %d: cannot compute stress:\n%v", i, err)
		}
		res.W, err = TotalSED(o.Mat, p)
		if err != nil {
			return chk.Err("driver: state %d: cannot compute strain energy density:\n%v", i, err)
		}
		if s, ok := state.Find[*damage.State](p, damage.Tag); ok {
			res.D = s.D
		}
		if i > 0 {
			prev := o.Res[i-1]
			res.Work = prev.Work + work(prev, res)
		}

		// check consistent tangent
		if o.TstD != nil || o.ChkD {
			var D tsr.Tens4
			D, err = TotalTangent(o.Mat, p)
			if err != nil {
				return chk.Err("driver: state %d: cannot compute tangent:\n%v", i, err)
			}
			stress := func(Fp tsr.Mat3) (tsr.Sym, error) {
				q := p.Copy()
				e := state.Kinematics(q).SetF(Fp)
				if e != nil {
					return tsr.Sym{}, e
				}
				return TotalStress(o.Mat, q)
			}
			if o.ChkD {
				res.ErrD, err = tsr.TangentError(F, o.HD, D, stress)
				if err != nil {
					return chk.Err("driver: state %d: cannot compute numerical tangent:\n%v", i, err)
				}
			}
			if o.TstD != nil {
				tsr.CheckTangent(o.TstD, io.Sf("D @ state %d", i), o.TolD, o.HD, F, D, stress, o.VerD)
			}
		}

		// commit history
		p.Update(float64(i))
		o.Res[i] = res
		if !o.Silent && io.Verbose {
			io.Pf("%4d : σ = %v  W = %g  D = %g\n", i, res.Sig, res.W, res.D)
		}
	}
	return
}

// work computes the stress power between states a and b by the trapezoidal rule
//
//   ΔWork = ½ (τa + τb) : sym(ΔF · Fm⁻¹)    Fm = ½ (Fa + Fb)
//
func work(a, b *Result) float64 {
	Fm := a.F.Add(1, b.F).Scale(0.5)
	Fi, _, ok := Fm.Inv()
	if !ok {
		return 0
	}
	d := b.F.Add(-1, a.F).Mul(Fi).SymPart()
	τ := a.Sig.Scale(a.F.Det()).Add(b.F.Det(), b.Sig).Scale(0.5)
	return τ.Dot(d)
}
