// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fiber

import (
	"math"
	"sort"
	"strings"

	"github.com/cpmech/gomat/tsr"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// Distribution defines the (unnormalised) orientation density R(n) of fibers, where n is a
// unit direction given in local material coordinates
type Distribution interface {
	Init(prms dbf.Params) error      // initialises distribution
	GetPrms(example bool) dbf.Params // gets (an example) of parameters
	Density(n tsr.Vec3) float64      // computes R(n)
}

// distributions holds all available distributions
var distributions = map[string]func() Distribution{}

// NewDistribution returns a new orientation distribution
func NewDistribution(name string) (Distribution, error) {
	allocator, ok := distributions[name]
	if !ok {
		return nil, chk.Err("distribution %q is not available in 'fiber' database", name)
	}
	return allocator(), nil
}

// Distributions returns the names of all available distributions
func Distributions() []string {
	return sortedKeys(distributions)
}

// Spherical implements the uniform distribution R = 1
type Spherical struct{}

// Ellipsoidal implements R(n) = 1 / sqrt( Σ (n_i / a_i)² )
type Ellipsoidal struct {
	spa [3]float64 // semi-principal axes
}

// VonMises3D implements R(n) = exp( b (2 (n·e1)² - 1) )
type VonMises3D struct {
	b float64 // concentration
}

// add distributions to factory
func init() {
	distributions["spherical"] = func() Distribution { return new(Spherical) }
	distributions["ellipsoidal"] = func() Distribution { return new(Ellipsoidal) }
	distributions["von-mises-3d"] = func() Distribution { return new(VonMises3D) }
}

// Init initialises distribution
func (o *Spherical) Init(prms dbf.Params) (err error) {
	if len(prms) > 0 {
		return chk.Err("spherical: distribution does not have parameters. %q is incorrect\n", prms[0].N)
	}
	return
}

// GetPrms gets (an example) of parameters
func (o Spherical) GetPrms(example bool) dbf.Params { return nil }

// Density computes R(n)
func (o Spherical) Density(n tsr.Vec3) float64 { return 1 }

// Init initialises distribution
func (o *Ellipsoidal) Init(prms dbf.Params) (err error) {
	o.spa = [3]float64{1, 1, 1}
	for _, p := range prms {
		switch strings.ToLower(p.N) {
		case "spa1":
			o.spa[0] = p.V
		case "spa2":
			o.spa[1] = p.V
		case "spa3":
			o.spa[2] = p.V
		default:
			return chk.Err("ellipsoidal: parameter named %q is incorrect\n", p.N)
		}
	}
	for i, a := range o.spa {
		if a <= 0 {
			return chk.Err("ellipsoidal: spa%d must be positive. %g is invalid", i+1, a)
		}
	}
	return
}

// GetPrms gets (an example) of parameters
func (o Ellipsoidal) GetPrms(example bool) dbf.Params {
	if example {
		return []*dbf.P{
			&dbf.P{N: "spa1", V: 1},
			&dbf.P{N: "spa2", V: 0.5},
			&dbf.P{N: "spa3", V: 0.5},
		}
	}
	return []*dbf.P{
		&dbf.P{N: "spa1", V: o.spa[0]},
		&dbf.P{N: "spa2", V: o.spa[1]},
		&dbf.P{N: "spa3", V: o.spa[2]},
	}
}

// Density computes R(n)
func (o Ellipsoidal) Density(n tsr.Vec3) float64 {
	var s float64
	for i := 0; i < 3; i++ {
		x := n[i] / o.spa[i]
		s += x * x
	}
	return 1.0 / math.Sqrt(s)
}

// Init initialises distribution
func (o *VonMises3D) Init(prms dbf.Params) (err error) {
	for _, p := range prms {
		switch strings.ToLower(p.N) {
		case "b":
			o.b = p.V
		default:
			return chk.Err("von-mises-3d: parameter named %q is incorrect\n", p.N)
		}
	}
	if o.b < 0 {
		return chk.Err("von-mises-3d: b must be non-negative. b = %g is invalid", o.b)
	}
	return
}

// GetPrms gets (an example) of parameters
func (o VonMises3D) GetPrms(example bool) dbf.Params {
	if example {
		return []*dbf.P{
			&dbf.P{N: "b", V: 2},
		}
	}
	return []*dbf.P{
		&dbf.P{N: "b", V: o.b},
	}
}

// Density computes R(n)
func (o VonMises3D) Density(n tsr.Vec3) float64 {
	return math.Exp(o.b * (2*n[0]*n[0] - 1))
}

// sortedKeys returns the sorted keys of a factory
func sortedKeys[T any](m map[string]T) (keys []string) {
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return
}
