// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package damage

import (
	"math"

	"github.com/cpmech/gomat/mdl/state"
	"github.com/cpmech/gomat/tsr"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// Criterion defines a scalar measure Ξ driving damage
//  Rate returns G such that dΞ/dt = G:d where d is the rate of deformation
type Criterion interface {
	Init(prms dbf.Params) error                                    // initialises criterion
	GetPrms(example bool) dbf.Params                               // gets (an example) of parameters
	Value(p *state.Point, sig tsr.Sym, W float64) (float64, error) // computes Ξ
	Rate(p *state.Point, sig tsr.Sym, W float64) (tsr.Sym, error)  // computes G
}

// criteria holds all available criteria
var criteria = map[string]func() Criterion{}

// NewCriterion returns a new damage criterion
func NewCriterion(name string) (Criterion, error) {
	allocator, ok := criteria[name]
	if !ok {
		return nil, chk.Err("criterion %q is not available in 'damage' database", name)
	}
	return allocator(), nil
}

// Criteria returns the names of all available criteria
func Criteria() []string {
	return sortedKeys(criteria)
}

// add criteria to factory
func init() {
	criteria["sed"] = func() Criterion { return new(SED) }
	criteria["simo"] = func() Criterion { return new(SimoCrit) }
	criteria["max-lagrange-strain"] = func() Criterion { return new(MaxLagrange) }
}

// noPrms checks that no parameters are given
func noPrms(name string, prms dbf.Params) error {
	if len(prms) > 0 {
		return chk.Err("%s: criterion does not have parameters. %q is incorrect\n", name, prms[0].N)
	}
	return nil
}

// SED implements Ξ = W (strain energy density of the undamaged material)
type SED struct{}

// Init initialises criterion
func (o *SED) Init(prms dbf.Params) error { return noPrms("sed", prms) }

// GetPrms gets (an example) of parameters
func (o SED) GetPrms(example bool) dbf.Params { return nil }

// Value computes Ξ
func (o SED) Value(p *state.Point, sig tsr.Sym, W float64) (float64, error) { return W, nil }

// Rate computes G = J σ
func (o SED) Rate(p *state.Point, sig tsr.Sym, W float64) (tsr.Sym, error) {
	return sig.Scale(state.Kinematics(p).J), nil
}

// SimoCrit implements Ξ = sqrt(2 W)
type SimoCrit struct{}

// Init initialises criterion
func (o *SimoCrit) Init(prms dbf.Params) error { return noPrms("simo", prms) }

// GetPrms gets (an example) of parameters
func (o SimoCrit) GetPrms(example bool) dbf.Params { return nil }

// Value computes Ξ
func (o SimoCrit) Value(p *state.Point, sig tsr.Sym, W float64) (float64, error) {
	return math.Sqrt(2 * math.Max(W, 0)), nil
}

// Rate computes G = J σ / Ξ
func (o SimoCrit) Rate(p *state.Point, sig tsr.Sym, W float64) (G tsr.Sym, err error) {
	Ξ := math.Sqrt(2 * math.Max(W, 0))
	if Ξ == 0 {
		return
	}
	return sig.Scale(state.Kinematics(p).J / Ξ), nil
}

// MaxLagrange implements Ξ = largest principal value of the Green-Lagrange strain E = (C - I)/2
type MaxLagrange struct{}

// Init initialises criterion
func (o *MaxLagrange) Init(prms dbf.Params) error { return noPrms("max-lagrange-strain", prms) }

// GetPrms gets (an example) of parameters
func (o MaxLagrange) GetPrms(example bool) dbf.Params { return nil }

// principal returns the largest eigenvalue of E and the corresponding eigenvector
func (o MaxLagrange) principal(p *state.Point) (e float64, N tsr.Vec3, err error) {
	E := state.Kinematics(p).RightCG().Add(-1, tsr.SymIdentity()).Scale(0.5)
	vals, vecs, err := tsr.EigenSym(E)
	if err != nil {
		return
	}
	return vals[2], vecs.Col(2), nil
}

// Value computes Ξ
func (o MaxLagrange) Value(p *state.Point, sig tsr.Sym, W float64) (Ξ float64, err error) {
	Ξ, _, err = o.principal(p)
	return
}

// Rate computes G = (F·N)⊗(F·N) where N is the principal direction of E
func (o MaxLagrange) Rate(p *state.Point, sig tsr.Sym, W float64) (G tsr.Sym, err error) {
	_, N, err := o.principal(p)
	if err != nil {
		return
	}
	return state.Kinematics(p).F.MulVec(N).Dyad(), nil
}
