// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solid

import (
	"math"

	"github.com/cpmech/gomat/tsr"
	"github.com/cpmech/gosl/chk"
)

// Path holds a deformation path: a sequence of deformation gradients starting at the identity
type Path struct {
	F []tsr.Mat3 // deformation gradients; F[0] = I
}

// Size returns the number of states along the path, including the initial one
func (o Path) Size() int { return len(o.F) }

// SetPiecewise sets a path made of straight segments I → Fs[0] → Fs[1] → ... with nincs
// increments per segment
func (o *Path) SetPiecewise(nincs int, Fs ...tsr.Mat3) (err error) {
	if nincs < 1 {
		return chk.Err("number of increments must be at least 1. nincs = %d is invalid", nincs)
	}
	if len(Fs) == 0 {
		return chk.Err("at least one deformation gradient is required")
	}
	o.F = []tsr.Mat3{tsr.Identity()}
	for _, Fb := range Fs {
		Fa := o.F[len(o.F)-1]
		for i := 1; i <= nincs; i++ {
			t := float64(i) / float64(nincs)
			o.F = append(o.F, Fa.Scale(1-t).Add(t, Fb))
		}
	}
	for i, F := range o.F {
		if F.Det() <= 0 {
			return chk.Err("deformation gradient #%d along path has non-positive determinant", i)
		}
	}
	return
}

// SetStretches sets a path F = diag(λ1(t), λ2(t), λ3(t)) with λ(t) = 1 + t (λ - 1)
func (o *Path) SetStretches(nincs int, λ1, λ2, λ3 float64) error {
	if λ1 <= 0 || λ2 <= 0 || λ3 <= 0 {
		return chk.Err("stretches must be positive. λ = (%g, %g, %g) is invalid", λ1, λ2, λ3)
	}
	return o.SetPiecewise(nincs, tsr.Diag(λ1, λ2, λ3))
}

// SetUniaxial sets an isochoric uniaxial path F = diag(λ, 1/√λ, 1/√λ)
func (o *Path) SetUniaxial(nincs int, λ float64) (err error) {
	if λ <= 0 {
		return chk.Err("stretch must be positive. λ = %g is invalid", λ)
	}
	if nincs < 1 {
		return chk.Err("number of increments must be at least 1. nincs = %d is invalid", nincs)
	}
	o.F = []tsr.Mat3{tsr.Identity()}
	for i := 1; i <= nincs; i++ {
		l := 1 + float64(i)/float64(nincs)*(λ-1)
		o.F = append(o.F, tsr.Diag(l, 1/math.Sqrt(l), 1/math.Sqrt(l)))
	}
	return
}

// SetBiaxial sets an isochoric equibiaxial path F = diag(λ, λ, 1/λ²)
func (o *Path) SetBiaxial(nincs int, λ float64) (err error) {
	if λ <= 0 {
		return chk.Err("stretch must be positive. λ = %g is invalid", λ)
	}
	if nincs < 1 {
		return chk.Err("number of increments must be at least 1. nincs = %d is invalid", nincs)
	}
	o.F = []tsr.Mat3{tsr.Identity()}
	for i := 1; i <= nincs; i++ {
		l := 1 + float64(i)/float64(nincs)*(λ-1)
		o.F = append(o.F, tsr.Diag(l, l, 1/(l*l)))
	}
	return
}

// SetShear sets a simple shear path F = I + γ e1⊗e2
func (o *Path) SetShear(nincs int, γ float64) error {
	F := tsr.Identity()
	F[0][1] = γ
	return o.SetPiecewise(nincs, F)
}

// SetCycle sets a path going from I to F, back to I and then to F again (loading, unloading and
// reloading)
func (o *Path) SetCycle(nincs int, F tsr.Mat3) error {
	return o.SetPiecewise(nincs, F, tsr.Identity(), F)
}
