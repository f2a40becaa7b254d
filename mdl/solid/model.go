// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package solid implements constitutive models for solids at finite strains
/*
 *   Stress      σ = Cauchy stress at the current deformation F of the point
 *   Tangent     c = spatial elasticity tensor such that  L_v(τ) = J c:d
 *   SED         W = strain energy density per unit reference volume
 *
 *   Uncoupled models return the deviatoric parts only. The volumetric part
 *   U(J) = k/2 (ln J)² is added by TotalStress, TotalTangent and TotalSED.
 */
package solid

import (
	"errors"
	"fmt"
	"sort"

	"github.com/cpmech/gomat/mdl/state"
	"github.com/cpmech/gomat/tsr"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/utl"
)

// ErrNotFinite signals a NaN or infinite stress or tangent
var ErrNotFinite = errors.New("stress or tangent is not finite")

// Material defines the interface for solid models
type Material interface {
	Init(prms dbf.Params) error                          // initialises model
	Validate() error                                     // checks parameters; runs after Init
	GetPrms(example bool) dbf.Params                     // gets (an example) of parameters
	CreatePoint() *state.Point                           // allocates a new material point
	Stress(p *state.Point) (tsr.Sym, error)              // computes Cauchy stress
	Tangent(p *state.Point) (tsr.Tens4, error)           // computes spatial elasticity tensor
	StrainEnergyDensity(p *state.Point) (float64, error) // computes strain energy density
	Encode(enc utl.Encoder) error                        // encodes parameters
	Decode(dec utl.Decoder) error                        // decodes parameters and re-initialises model
}

// Uncoupled defines models with uncoupled deviatoric/volumetric response
type Uncoupled interface {
	Material
	BulkModulus() float64 // returns k
}

// Composite defines models owning sub-materials (or other components) under named roles
type Composite interface {
	Material
	SetSub(role string, sub *Desc) error // allocates and initialises the component with given role
}

// ParentAware defines sub-materials that read shared data from their owner
//  Note: SetParent is called by the owner's Init, before any evaluation
type ParentAware interface {
	SetParent(parent Material, role string) error
}

// Desc describes a material and, recursively, its components
type Desc struct {
	Name  string           // name of material (for messages)
	Model string           // name of model
	Prms  dbf.Params       // parameters
	Sub   map[string]*Desc // components; role => description
}

// allocators holds all available solid models; modelname => allocator
var allocators = map[string]func() Material{}

// New returns new solid model
func New(name string) (model Material, err error) {
	allocator, ok := allocators[name]
	if !ok {
		return nil, chk.Err("model %q is not available in 'solid' database", name)
	}
	return allocator(), nil
}

// Models returns the names of all available models
func Models() []string {
	return sortedKeys(allocators)
}

// Setup initialises and validates model
func Setup(model Material, prms dbf.Params) (err error) {
	err = model.Init(prms)
	if err != nil {
		return
	}
	return model.Validate()
}

// NewWith allocates, initialises and validates the material described by d, including its components
func NewWith(d *Desc) (model Material, err error) {
	if d == nil {
		return nil, chk.Err("material description is missing")
	}
	model, err = New(d.Model)
	if err != nil {
		return
	}
	if len(d.Sub) > 0 {
		c, ok := model.(Composite)
		if !ok {
			return nil, chk.Err("model %q does not have components. %d were given", d.Model, len(d.Sub))
		}
		for _, role := range sortedKeys(d.Sub) {
			err = c.SetSub(role, d.Sub[role])
			if err != nil {
				return nil, chk.Err("%s: cannot set component %q:\n%v", d.Model, role, err)
			}
		}
	}
	err = Setup(model, d.Prms)
	if err != nil {
		return nil, chk.Err("cannot setup material %q:\n%v", d.Name, err)
	}
	return
}

// kinematics returns the kinematics of p; ErrInverted if J ≤ 0
func kinematics(p *state.Point) (k *state.Elastic, err error) {
	k = state.Kinematics(p)
	if k.J <= 0 {
		return nil, fmt.Errorf("%w: J = %g", state.ErrInverted, k.J)
	}
	return
}

// parameters //////////////////////////////////////////////////////////////////////////////////////

// parametric defines components that can be re-initialised from their current parameters
type parametric interface {
	Init(prms dbf.Params) error
	GetPrms(example bool) dbf.Params
}

// encodePrms encodes the values of the current parameters of m
func encodePrms(enc utl.Encoder, m parametric) error {
	prms := m.GetPrms(false)
	vals := make([]float64, len(prms))
	for i, p := range prms {
		vals[i] = p.V
	}
	return enc.Encode(vals)
}

// decodePrms decodes values of parameters, re-initialises m and, if m is a Material, validates it
func decodePrms(dec utl.Decoder, m parametric) (err error) {
	var vals []float64
	err = dec.Decode(&vals)
	if err != nil {
		return
	}
	prms := m.GetPrms(false)
	if len(vals) != len(prms) {
		return chk.Err("number of encoded parameters (%d) does not match model (%d)", len(vals), len(prms))
	}
	for i, p := range prms {
		p.V = vals[i]
	}
	if model, ok := m.(Material); ok {
		return Setup(model, prms)
	}
	return m.Init(prms)
}

// sortedKeys returns the sorted keys of a map
func sortedKeys[T any](m map[string]T) (keys []string) {
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return
}
