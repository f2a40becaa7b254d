// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package damage

import (
	"math"

	"github.com/cpmech/gomat/mdl/state"
	"github.com/cpmech/gosl/utl"
)

// Tag is the tag of the damage block
const Tag = "damage"

// State holds the damage history of a material point
type State struct {
	Etrial float64 // trial value of the criterion
	Emax   float64 // maximum committed value of the criterion (ratchet)
	D      float64 // damage
}

// Init zeroes history
func (o *State) Init() {
	o.Etrial, o.Emax, o.D = 0, 0, 0
}

// Update commits the history: Emax = max(Emax, Etrial)
func (o *State) Update(time float64) {
	o.Emax = math.Max(o.Emax, o.Etrial)
}

// Copy returns a copy
func (o *State) Copy() state.Block {
	c := *o
	return &c
}

// Encode encodes Etrial and D; Emax is skipped if shallow
func (o *State) Encode(enc utl.Encoder, shallow bool) (err error) {
	if err = enc.Encode(o.Etrial); err != nil {
		return
	}
	if err = enc.Encode(o.D); err != nil {
		return
	}
	if shallow {
		return
	}
	return enc.Encode(o.Emax)
}

// Decode decodes Etrial and D; Emax is skipped if shallow
func (o *State) Decode(dec utl.Decoder, shallow bool) (err error) {
	if err = dec.Decode(&o.Etrial); err != nil {
		return
	}
	if err = dec.Decode(&o.D); err != nil {
		return
	}
	if shallow {
		return
	}
	return dec.Decode(&o.Emax)
}

// Loading tells whether the trial value exceeds the committed maximum
func (o *State) Loading() bool {
	return o.Etrial > o.Emax
}

// Measure returns max(Etrial, Emax)
func (o *State) Measure() float64 {
	return math.Max(o.Etrial, o.Emax)
}

// Damage computes D = Dmax · cdf(max(Etrial, Emax))
func Damage(c CDF, Dmax float64, s *State) float64 {
	return Dmax * c.Cdf(s.Measure())
}

// Get returns the damage block of p
func Get(p *state.Point) *State {
	return state.Lookup[*State](p, Tag)
}
