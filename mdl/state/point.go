// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package state implements the material point state chain
//
//  A material point holds a set of heterogeneous blocks (elastic kinematics, damage, fiber
//  history, ...) indexed by stable string tags. Composite materials merge the points of their
//  sub-materials into a single chain where the blocks of each sub-material are tagged with the
//  sub-material role as prefix, e.g. "solid1/damage". The "elastic" block holding F, J and Q is
//  unique and shared by all scopes of the chain.
package state

import (
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
)

// Block defines a piece of state attached to a material point
type Block interface {
	Init()                                      // zeroes history
	Update(time float64)                        // commits converged history
	Copy() Block                                // returns a deep copy
	Encode(enc utl.Encoder, shallow bool) error // encodes variables; shallow skips history
	Decode(dec utl.Decoder, shallow bool) error // decodes variables; shallow skips history
}

// chain holds the blocks shared by all views of a point
type chain struct {
	blocks map[string]Block  // tag => block
	order  []string          // tags in insertion order
	names  map[string]string // prefix => name of merged sub-chain
}

// Point is a view of a material point chain restricted to a prefix (scope)
type Point struct {
	Name   string // name of chain (or merged sub-chain) seen by this view
	prefix string // prefix of tags in this scope
	c      *chain // shared chain
}

// NewPoint returns a new point with an elastic block
func NewPoint(name string) (o *Point) {
	o = &Point{Name: name, c: &chain{blocks: make(map[string]Block), names: map[string]string{"": name}}}
	o.c.add(ElasticTag, NewElastic())
	return
}

// add adds block with full tag
func (o *chain) add(tag string, b Block) {
	if _, ok := o.blocks[tag]; ok {
		chk.Panic("block %q has already been added to material point", tag)
	}
	o.blocks[tag] = b
	o.order = append(o.order, tag)
}

// full returns the full tag corresponding to a tag in this scope
func (o *Point) full(tag string) string {
	if tag == ElasticTag {
		return tag
	}
	return o.prefix + tag
}

// Add adds block to this scope
func (o *Point) Add(tag string, b Block) {
	o.c.add(o.full(tag), b)
}

// Has tells whether block tag exists in this scope
func (o *Point) Has(tag string) bool {
	_, ok := o.c.blocks[o.full(tag)]
	return ok
}

// Get returns block tag. Panics if absent
func (o *Point) Get(tag string) Block {
	b, ok := o.c.blocks[o.full(tag)]
	if !ok {
		chk.Panic("material point %q does not have block %q", o.Name, o.full(tag))
	}
	return b
}

// Tags returns the full tags of all blocks in insertion order
func (o *Point) Tags() []string {
	return append([]string{}, o.c.order...)
}

// Scope returns a view of the chain for sub-material with given role
func (o *Point) Scope(role string) *Point {
	prefix := o.prefix + role + "/"
	return &Point{Name: o.c.names[prefix], prefix: prefix, c: o.c}
}

// Root returns a view of the whole chain
func (o *Point) Root() *Point {
	return &Point{Name: o.c.names[""], c: o.c}
}

// Merge moves the blocks of sub (a freshly created point) into this chain under role.
// The elastic block of sub is discarded since the kinematics is shared
func (o *Point) Merge(role string, sub *Point) {
	prefix := o.prefix + role + "/"
	for p, name := range sub.c.names {
		o.c.names[prefix+p] = name
	}
	o.c.names[prefix] = sub.Name
	for _, tag := range sub.c.order {
		if tag == ElasticTag {
			continue
		}
		o.c.add(prefix+tag, sub.c.blocks[tag])
	}
}

// Init initialises all blocks
func (o *Point) Init() {
	for _, tag := range o.c.order {
		o.c.blocks[tag].Init()
	}
}

// Update commits the history of all blocks
func (o *Point) Update(time float64) {
	for _, tag := range o.c.order {
		o.c.blocks[tag].Update(time)
	}
}

// Copy returns a deep copy of the whole chain; the view keeps the same scope
func (o *Point) Copy() *Point {
	c := &chain{
		blocks: make(map[string]Block, len(o.c.blocks)),
		order:  append([]string{}, o.c.order...),
		names:  make(map[string]string, len(o.c.names)),
	}
	for _, tag := range o.c.order {
		c.blocks[tag] = o.c.blocks[tag].Copy()
	}
	for p, name := range o.c.names {
		c.names[p] = name
	}
	return &Point{Name: o.Name, prefix: o.prefix, c: c}
}

// Encode encodes the whole chain: list of tags followed by each block
func (o *Point) Encode(enc utl.Encoder, shallow bool) (err error) {
	err = enc.Encode(o.c.order)
	if err != nil {
		return chk.Err("cannot encode list of blocks:\n%v", err)
	}
	for _, tag := range o.c.order {
		err = o.c.blocks[tag].Encode(enc, shallow)
		if err != nil {
			return chk.Err("cannot encode block %q:\n%v", tag, err)
		}
	}
	return
}

// Decode decodes the whole chain. The chain must have the same layout as the encoded one
func (o *Point) Decode(dec utl.Decoder, shallow bool) (err error) {
	var order []string
	err = dec.Decode(&order)
	if err != nil {
		return chk.Err("cannot decode list of blocks:\n%v", err)
	}
	if strings.Join(order, ",") != strings.Join(o.c.order, ",") {
		return chk.Err("layout of material point does not match encoded data.\n  found:    %v\n  expected: %v", order, o.c.order)
	}
	for _, tag := range o.c.order {
		err = o.c.blocks[tag].Decode(dec, shallow)
		if err != nil {
			return chk.Err("cannot decode block %q:\n%v", tag, err)
		}
	}
	return
}

// Lookup returns block tag with type T. Panics if absent or of another type
func Lookup[T Block](p *Point, tag string) T {
	b, ok := p.Get(tag).(T)
	if !ok {
		chk.Panic("block %q of material point %q has type %T", p.full(tag), p.Name, p.Get(tag))
	}
	return b
}

// Find returns block tag with type T if present
func Find[T Block](p *Point, tag string) (b T, ok bool) {
	blk, found := p.c.blocks[p.full(tag)]
	if !found {
		return
	}
	b, ok = blk.(T)
	return
}
