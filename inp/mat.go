// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the input of material databases
package inp

import (
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/cpmech/gomat/mdl/solid"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
	"gopkg.in/yaml.v3"
)

// Prm holds one parameter of a material
type Prm struct {
	N string  `json:"n" yaml:"n"` // name
	V float64 `json:"v" yaml:"v"` // value
}

// Material holds material data
//  Note: a component may refer to another material of the database by name with "ref"
type Material struct {
	Name  string               `json:"name,omitempty" yaml:"name,omitempty"`   // name of material
	Model string               `json:"model,omitempty" yaml:"model,omitempty"` // name of model; e.g. "neo-hookean", "weibull"
	Ref   string               `json:"ref,omitempty" yaml:"ref,omitempty"`     // name of another material
	Extra string               `json:"extra,omitempty" yaml:"extra,omitempty"` // extra information about this material
	Prms  []*Prm               `json:"prms,omitempty" yaml:"prms,omitempty"`   // parameters
	Sub   map[string]*Material `json:"sub,omitempty" yaml:"sub,omitempty"`     // components; role => material
}

// MatsData holds materials
type MatsData []*Material

// MatDb implements a database of materials
type MatDb struct {
	Materials MatsData `json:"materials" yaml:"materials"` // all materials
}

// ReadMat reads all materials data from a JSON (.mat, .json) or YAML (.yaml, .yml) file
func ReadMat(dir, fn string) (mdb *MatDb, err error) {

	// read file
	b, err := readFile(filepath.Join(dir, fn))
	if err != nil {
		return nil, err
	}

	// decode
	mdb = new(MatDb)
	switch strings.ToLower(filepath.Ext(fn)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, mdb)
	default:
		err = json.Unmarshal(b, mdb)
	}
	if err != nil {
		return nil, chk.Err("cannot decode materials file %q:\n%v", fn, err)
	}

	// check
	names := make(map[string]bool)
	for i, m := range mdb.Materials {
		if m.Name == "" {
			return nil, chk.Err("material #%d in %q does not have a name", i, fn)
		}
		if names[m.Name] {
			return nil, chk.Err("material %q is repeated in %q", m.Name, fn)
		}
		if m.Model == "" && m.Ref == "" {
			return nil, chk.Err("material %q in %q does not have a model", m.Name, fn)
		}
		names[m.Name] = true
	}
	return
}

// Get returns a material
//  Note: returns nil if not found
func (o MatDb) Get(name string) *Material {
	for _, mat := range o.Materials {
		if mat.Name == name {
			return mat
		}
	}
	return nil
}

// Desc returns the description of material name with all references resolved
func (o MatDb) Desc(name string) (*solid.Desc, error) {
	m := o.Get(name)
	if m == nil {
		return nil, chk.Err("cannot find material named %q", name)
	}
	return o.desc(m, map[string]bool{})
}

// Build allocates, initialises and validates material name, including its components
func (o MatDb) Build(name string) (mdl solid.Material, err error) {
	d, err := o.Desc(name)
	if err != nil {
		return
	}
	return solid.NewWith(d)
}

// desc converts m into a description; visiting holds the references being resolved
func (o MatDb) desc(m *Material, visiting map[string]bool) (d *solid.Desc, err error) {
	if m.Ref != "" {
		if visiting[m.Ref] {
			return nil, chk.Err("material %q refers to itself", m.Ref)
		}
		ref := o.Get(m.Ref)
		if ref == nil {
			return nil, chk.Err("cannot find material named %q", m.Ref)
		}
		visiting[m.Ref] = true
		defer delete(visiting, m.Ref)
		return o.desc(ref, visiting)
	}
	if m.Name != "" {
		visiting[m.Name] = true
		defer delete(visiting, m.Name)
	}
	d = &solid.Desc{Name: m.Name, Model: m.Model, Prms: m.Params()}
	if len(m.Sub) > 0 {
		d.Sub = make(map[string]*solid.Desc, len(m.Sub))
	}
	for role, sub := range m.Sub {
		if sub == nil {
			return nil, chk.Err("component %q of material %q is empty", role, m.Name)
		}
		d.Sub[role], err = o.desc(sub, visiting)
		if err != nil {
			return nil, chk.Err("component %q of material %q:\n%v", role, m.Name, err)
		}
	}
	return
}

// Params returns the parameters of m
func (o *Material) Params() (prms dbf.Params) {
	for _, p := range o.Prms {
		prms = append(prms, &dbf.P{N: p.N, V: p.V})
	}
	return
}

// String prints one material
func (o *Material) String() string {
	b, err := json.MarshalIndent(o, "    ", "  ")
	if err != nil {
		return io.Sf("%q: %v", o.Name, err)
	}
	return "    " + string(b)
}

// String outputs all materials
func (o MatDb) String() string {
	l := "{\n  \"materials\" : [\n"
	for i, m := range o.Materials {
		if i > 0 {
			l += ",\n"
		}
		l += m.String()
	}
	return l + "\n  ]\n}"
}

// readFile reads a file with io.ReadFile converting its panic into an error
func readFile(fn string) (b []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = chk.Err("cannot read file %q:\n%v", fn, r)
		}
	}()
	return io.ReadFile(fn), nil
}
