// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package state

import (
	"errors"
	"fmt"

	"github.com/cpmech/gomat/tsr"
	"github.com/cpmech/gosl/utl"
)

// ElasticTag is the tag of the kinematics block shared by all scopes of a point
const ElasticTag = "elastic"

// ErrInverted signals a non-positive Jacobian
var ErrInverted = errors.New("inverted element: non-positive Jacobian")

// Elastic holds the kinematics of a material point
type Elastic struct {
	F   tsr.Mat3 // deformation gradient
	J   float64  // det(F)
	Q   tsr.Mat3 // local material axes (columns)
	X   tsr.Vec3 // reference position
	Sig tsr.Sym  // last computed Cauchy stress (scratch)
}

// NewElastic returns a new block at the undeformed configuration
func NewElastic() (o *Elastic) {
	o = &Elastic{Q: tsr.Identity()}
	o.Init()
	return
}

// SetF sets F and computes J. Returns ErrInverted if J ≤ 0
func (o *Elastic) SetF(F tsr.Mat3) error {
	o.F = F
	o.J = F.Det()
	if o.J <= 0 {
		return fmt.Errorf("%w: J = %g", ErrInverted, o.J)
	}
	return nil
}

// LeftCG returns b = F·Fᵀ
func (o *Elastic) LeftCG() tsr.Sym {
	return o.F.LeftCG()
}

// RightCG returns C = Fᵀ·F
func (o *Elastic) RightCG() tsr.Sym {
	return o.F.RightCG()
}

// Init resets kinematics; Q and X are kept
func (o *Elastic) Init() {
	o.F = tsr.Identity()
	o.J = 1
	o.Sig = tsr.Sym{}
}

// Update does nothing since kinematics is supplied by the solver
func (o *Elastic) Update(time float64) {}

// Copy returns a copy
func (o *Elastic) Copy() Block {
	c := *o
	return &c
}

// Encode encodes F and J; Q, X and Sig are skipped if shallow
func (o *Elastic) Encode(enc utl.Encoder, shallow bool) (err error) {
	if err = enc.Encode(o.F); err != nil {
		return
	}
	if err = enc.Encode(o.J); err != nil {
		return
	}
	if shallow {
		return
	}
	if err = enc.Encode(o.Q); err != nil {
		return
	}
	if err = enc.Encode(o.X); err != nil {
		return
	}
	return enc.Encode(o.Sig)
}

// Decode decodes F and J; Q, X and Sig are skipped if shallow
func (o *Elastic) Decode(dec utl.Decoder, shallow bool) (err error) {
	if err = dec.Decode(&o.F); err != nil {
		return
	}
	if err = dec.Decode(&o.J); err != nil {
		return
	}
	if shallow {
		return
	}
	if err = dec.Decode(&o.Q); err != nil {
		return
	}
	if err = dec.Decode(&o.X); err != nil {
		return
	}
	return dec.Decode(&o.Sig)
}

// Kinematics returns the elastic block of p
func Kinematics(p *Point) *Elastic {
	return Lookup[*Elastic](p, ElasticTag)
}
