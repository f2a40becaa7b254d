// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fiber

import (
	"math"
	"strings"
	"sync"

	"github.com/cpmech/gomat/mdl/state"
	"github.com/cpmech/gomat/tsr"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"gonum.org/v1/gonum/integrate/quad"
)

// resolution levels
const (
	LowResolution  = 0
	HighResolution = 1
)

// Scheme defines a quadrature rule over the unit hemisphere of fiber directions
//  Note: a scheme is uninitialised until Init succeeds; then its tables are read-only and it can
//        be shared by concurrent evaluations
type Scheme interface {
	Init(prms dbf.Params) error                          // computes tables for the given resolution
	GetPrms(example bool) dbf.Params                     // gets (an example) of parameters
	Len() int                                            // number of directions
	GetIterator(p *state.Point, axes tsr.Mat3) *Iterator // returns an iterator positioned before the first direction
}

// schemes holds all available schemes
var schemes = map[string]func() Scheme{}

// NewScheme returns a new (uninitialised) integration scheme
func NewScheme(name string) (Scheme, error) {
	allocator, ok := schemes[name]
	if !ok {
		return nil, chk.Err("integration scheme %q is not available in 'fiber' database", name)
	}
	return allocator(), nil
}

// Schemes returns the names of all available schemes
func Schemes() []string {
	return sortedKeys(schemes)
}

// Iterator runs over the directions of a scheme
//  Note: the caller owns the iterator and must call Release after the last Next
type Iterator struct {
	t     *table   // quadrature table
	frame tsr.Mat3 // local frame: global = frame · local
	i     int      // current position
}

// Next advances the iterator; returns false when there are no more directions
func (o *Iterator) Next() bool {
	if o.i < len(o.t.dirs) {
		o.i++
	}
	return o.i < len(o.t.dirs)
}

// Local returns the current direction in local coordinates
func (o *Iterator) Local() tsr.Vec3 { return o.t.dirs[o.i] }

// Fiber returns the current direction in global coordinates
func (o *Iterator) Fiber() tsr.Vec3 { return o.frame.MulVec(o.t.dirs[o.i]) }

// Weight returns the quadrature weight of the current direction
func (o *Iterator) Weight() float64 { return o.t.wts[o.i] }

// Frame returns the local frame of this iterator
func (o *Iterator) Frame() tsr.Mat3 { return o.frame }

// Reset moves the iterator before the first direction
func (o *Iterator) Reset() { o.i = -1 }

// Release returns the iterator to its scheme. The iterator must not be used afterwards
func (o *Iterator) Release() {
	t := o.t
	o.t = nil
	t.pool.Put(o)
}

// table holds directions and weights
type table struct {
	dirs  []tsr.Vec3 // unit directions on the hemisphere
	wts   []float64  // weights
	ready bool       // Init has been called successfully
	pool  sync.Pool  // iterators
}

// set sets tables
func (o *table) set(dirs []tsr.Vec3, wts []float64) {
	o.dirs, o.wts, o.ready = dirs, wts, true
	o.pool.New = func() interface{} { return new(Iterator) }
}

// Len returns the number of directions
func (o *table) Len() int { return len(o.dirs) }

// GetIterator returns an iterator for point p. The frame is Q·axes where Q is the point frame
func (o *table) GetIterator(p *state.Point, axes tsr.Mat3) *Iterator {
	if !o.ready {
		chk.Panic("integration scheme must be initialised before GetIterator is called")
	}
	it := o.pool.Get().(*Iterator)
	it.t = o
	it.frame = state.Kinematics(p).Q.Mul(axes)
	it.i = -1
	return it
}

// resolution parses the resolution parameter
func resolution(name string, prms dbf.Params) (res int, err error) {
	for _, p := range prms {
		switch strings.ToLower(p.N) {
		case "resolution":
			res = int(p.V)
			if float64(res) != p.V || (res != LowResolution && res != HighResolution) {
				return 0, chk.Err("%s: resolution must be either %d (low) or %d (high). %g is invalid", name, LowResolution, HighResolution, p.V)
			}
		default:
			return 0, chk.Err("%s: parameter named %q is incorrect\n", name, p.N)
		}
	}
	return
}

// Geodesic implements a scheme based on a subdivided icosahedron. Each vertex receives one third
// of the area of the adjacent spherical triangles; thus the weights sum to 2π
type Geodesic struct {
	table
	res int
}

// GaussTrapezoidal implements Gauss-Legendre in the polar angle and the trapezoidal rule in the
// azimuth angle over the hemisphere
type GaussTrapezoidal struct {
	table
	res int
}

// add schemes to factory
func init() {
	schemes["geodesic"] = func() Scheme { return new(Geodesic) }
	schemes["gauss-trapezoidal"] = func() Scheme { return new(GaussTrapezoidal) }
}

// Init initialises scheme
func (o *Geodesic) Init(prms dbf.Params) (err error) {
	o.res, err = resolution("geodesic", prms)
	if err != nil {
		return
	}
	freq := 2
	if o.res == HighResolution {
		freq = 4
	}
	o.set(geodesicTable(freq))
	return
}

// GetPrms gets (an example) of parameters
func (o *Geodesic) GetPrms(example bool) dbf.Params {
	return []*dbf.P{&dbf.P{N: "resolution", V: float64(o.res)}}
}

// Init initialises scheme
func (o *GaussTrapezoidal) Init(prms dbf.Params) (err error) {
	o.res, err = resolution("gauss-trapezoidal", prms)
	if err != nil {
		return
	}
	nph, nth := 2, 8
	if o.res == HighResolution {
		nph, nth = 6, 13
	}
	o.set(gaussTrapezoidalTable(nph, nth))
	return
}

// GetPrms gets (an example) of parameters
func (o *GaussTrapezoidal) GetPrms(example bool) dbf.Params {
	return []*dbf.P{&dbf.P{N: "resolution", V: float64(o.res)}}
}

// IntegratedDensity computes the integrated fiber density Σ R(n) w over the directions of the
// scheme, using a reference point (identity frame). The density is evaluated at the global
// direction axes·n, i.e. without rotating back to local coordinates
func IntegratedDensity(dist Distribution, scheme Scheme, axes tsr.Mat3) (ifd float64) {
	it := scheme.GetIterator(state.NewPoint("ifd"), axes)
	defer it.Release()
	for it.Next() {
		ifd += dist.Density(it.Fiber()) * it.Weight()
	}
	return
}

// geodesicTable computes the directions and weights on the hemisphere for an icosahedron
// whose edges are divided into freq segments
func geodesicTable(freq int) (dirs []tsr.Vec3, wts []float64) {

	// icosahedron
	φ := (1.0 + math.Sqrt(5.0)) / 2.0
	ico := []tsr.Vec3{
		{-1, φ, 0}, {1, φ, 0}, {-1, -φ, 0}, {1, -φ, 0},
		{0, -1, φ}, {0, 1, φ}, {0, -1, -φ}, {0, 1, -φ},
		{φ, 0, -1}, {φ, 0, 1}, {-φ, 0, -1}, {-φ, 0, 1},
	}
	var faces [][3]int
	for i := 0; i < 12; i++ {
		for j := i + 1; j < 12; j++ {
			for k := j + 1; k < 12; k++ {
				if isEdge(ico[i], ico[j]) && isEdge(ico[j], ico[k]) && isEdge(ico[k], ico[i]) {
					faces = append(faces, [3]int{i, j, k})
				}
			}
		}
	}

	// vertices of subdivided faces (full sphere)
	var verts []tsr.Vec3
	var areas []float64
	vertex := func(v tsr.Vec3) int {
		v = v.Unit()
		for id, u := range verts {
			if u.Sub(v).Norm() < 1e-9 {
				return id
			}
		}
		verts = append(verts, v)
		areas = append(areas, 0)
		return len(verts) - 1
	}
	n := float64(freq)
	for _, f := range faces {
		A, B, C := ico[f[0]], ico[f[1]], ico[f[2]]
		ids := make([][]int, freq+1)
		for i := 0; i <= freq; i++ {
			ids[i] = make([]int, freq+1-i)
			for j := 0; j <= freq-i; j++ {
				a, b, c := (n-float64(i+j))/n, float64(i)/n, float64(j)/n
				ids[i][j] = vertex(A.Scale(a).Add(B.Scale(b)).Add(C.Scale(c)))
			}
		}
		for i := 0; i < freq; i++ {
			for j := 0; j < freq-i; j++ {
				addTriangle(verts, areas, ids[i][j], ids[i+1][j], ids[i][j+1])
				if i+j < freq-1 {
					addTriangle(verts, areas, ids[i+1][j], ids[i+1][j+1], ids[i][j+1])
				}
			}
		}
	}

	// hemisphere
	const eps = 1e-9
	for k, v := range verts {
		if v[2] > eps || (math.Abs(v[2]) <= eps && (v[1] > eps || (math.Abs(v[1]) <= eps && v[0] > 0))) {
			dirs = append(dirs, v)
			wts = append(wts, areas[k])
		}
	}
	return
}

// isEdge tells whether two vertices of the icosahedron are connected
func isEdge(a, b tsr.Vec3) bool {
	return math.Abs(a.Sub(b).Norm()-2.0) < 1e-10
}

// addTriangle distributes the area of a spherical triangle to its vertices
func addTriangle(verts []tsr.Vec3, areas []float64, i, j, k int) {
	a, b, c := verts[i], verts[j], verts[k]
	E := 2.0 * math.Atan2(math.Abs(a.Dot(b.Cross(c))), 1.0+a.Dot(b)+b.Dot(c)+c.Dot(a))
	areas[i] += E / 3.0
	areas[j] += E / 3.0
	areas[k] += E / 3.0
}

// gaussTrapezoidalTable computes directions and weights using nph Gauss-Legendre points in the
// polar angle φ ∈ (0, π/2) and nth equally spaced azimuth angles
func gaussTrapezoidalTable(nph, nth int) (dirs []tsr.Vec3, wts []float64) {
	x := make([]float64, nph)
	w := make([]float64, nph)
	quad.Legendre{}.FixedLocations(x, w, 0, math.Pi/2)
	dθ := 2.0 * math.Pi / float64(nth)
	for i := 0; i < nph; i++ {
		sφ, cφ := math.Sin(x[i]), math.Cos(x[i])
		for j := 0; j < nth; j++ {
			θ := float64(j) * dθ
			dirs = append(dirs, tsr.Vec3{sφ * math.Cos(θ), sφ * math.Sin(θ), cφ})
			wts = append(wts, w[i]*sφ*dθ)
		}
	}
	return
}
