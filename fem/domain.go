// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"context"
	"fmt"
	"time"

	"github.com/cpmech/gomat/mdl/solid"
	"github.com/cpmech/gomat/mdl/state"
	"github.com/cpmech/gomat/tsr"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
	"golang.org/x/sync/errgroup"
)

// NumericalError signals a numerical failure at a material point. The solver should cut the
// step back
type NumericalError struct {
	Point int   // index of point
	Err   error // cause; e.g. state.ErrInverted or solid.ErrNotFinite
}

// Error returns the message
func (o *NumericalError) Error() string {
	return fmt.Sprintf("point %d: %v", o.Point, o.Err)
}

// Unwrap returns the cause
func (o *NumericalError) Unwrap() error { return o.Err }

// Domain holds material points sharing one material
type Domain struct {

	// input
	Mat solid.Material // material
	Cfg Config         // settings

	// state
	Points []*state.Point // material points
	Time   float64        // time of last committed update

	// results of Evaluate
	Sig []tsr.Sym   // Cauchy stresses
	D   []tsr.Tens4 // spatial tangents
	W   []float64   // strain energy densities

	// auxiliary
	metrics *Metrics       // counters
	bkp     []*state.Point // backup of points
	bkpTime float64        // backup of time
}

// NewDomain allocates a domain with npoints points at the undeformed state
//  Note: metrics may be nil
func NewDomain(mat solid.Material, npoints int, cfg Config, metrics *Metrics) (o *Domain, err error) {
	if mat == nil {
		return nil, chk.Err("domain requires a material")
	}
	if npoints < 1 {
		return nil, chk.Err("number of points must be at least 1. npoints = %d is invalid", npoints)
	}
	err = cfg.Check()
	if err != nil {
		return
	}
	if metrics == nil {
		metrics = NewMetrics(nil)
	}
	o = &Domain{Mat: mat, Cfg: cfg, metrics: metrics}
	template := mat.CreatePoint()
	template.Init()
	o.Points = make([]*state.Point, npoints)
	for i := range o.Points {
		o.Points[i] = template.Copy()
	}
	o.Sig = make([]tsr.Sym, npoints)
	o.D = make([]tsr.Tens4, npoints)
	o.W = make([]float64, npoints)
	return
}

// SetF sets the deformation gradient of point i
func (o *Domain) SetF(i int, F tsr.Mat3) error {
	if i < 0 || i >= len(o.Points) {
		chk.Panic("index of point %d is out of range [0, %d)", i, len(o.Points))
	}
	err := state.Kinematics(o.Points[i]).SetF(F)
	if err != nil {
		return &NumericalError{Point: i, Err: err}
	}
	return nil
}

// SetAllF sets the same deformation gradient at all points
func (o *Domain) SetAllF(F tsr.Mat3) error {
	for i := range o.Points {
		if err := o.SetF(i, F); err != nil {
			return err
		}
	}
	return nil
}

// Evaluate computes stresses, tangents and strain energy densities of all points concurrently.
// The first failure cancels the remaining evaluations and is returned as *NumericalError
func (o *Domain) Evaluate(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { o.metrics.Duration.Observe(time.Since(start).Seconds()) }()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.Cfg.Workers)
	for i := range o.Points {
		if gctx.Err() != nil {
			break
		}
		i := i
		g.Go(func() error {
			if e := gctx.Err(); e != nil {
				return e
			}
			return o.evaluate(i)
		})
	}
	err = g.Wait()
	if err == nil {
		err = ctx.Err()
	}
	if err != nil && o.Cfg.Verbose {
		io.PfRed("evaluation failed: %v\n", err)
	}
	return
}

// evaluate computes the response of point i
func (o *Domain) evaluate(i int) (err error) {
	p := o.Points[i]
	defer func() {
		o.metrics.Points.Inc()
		if err != nil {
			o.metrics.failure(err)
			err = &NumericalError{Point: i, Err: err}
		}
	}()
	sig, err := solid.TotalStress(o.Mat, p)
	if err != nil {
		return
	}
	D, err := solid.TotalTangent(o.Mat, p)
	if err != nil {
		return
	}
	W, err := solid.TotalSED(o.Mat, p)
	if err != nil {
		return
	}
	o.Sig[i], o.D[i], o.W[i] = sig, D, W
	return
}

// Update commits the history of all points
func (o *Domain) Update(t float64) {
	for _, p := range o.Points {
		p.Update(t)
	}
	o.Time = t
	if o.Cfg.Verbose {
		io.Pf("domain: %d points updated at t = %g\n", len(o.Points), t)
	}
}

// Backup saves a copy of all points
func (o *Domain) Backup() {
	if len(o.bkp) != len(o.Points) {
		o.bkp = make([]*state.Point, len(o.Points))
	}
	for i, p := range o.Points {
		o.bkp[i] = p.Copy()
	}
	o.bkpTime = o.Time
}

// Restore restores the points saved by the last Backup. The backup is kept
func (o *Domain) Restore() error {
	if len(o.bkp) != len(o.Points) {
		return chk.Err("domain does not have a backup")
	}
	for i, p := range o.bkp {
		o.Points[i] = p.Copy()
	}
	o.Time = o.bkpTime
	return nil
}

// Encode encodes the number of points, the time and the state of all points
func (o *Domain) Encode(enc utl.Encoder, shallow bool) (err error) {
	err = enc.Encode(len(o.Points))
	if err != nil {
		return chk.Err("cannot encode number of points:\n%v", err)
	}
	err = enc.Encode(o.Time)
	if err != nil {
		return chk.Err("cannot encode time:\n%v", err)
	}
	for i, p := range o.Points {
		err = p.Encode(enc, shallow)
		if err != nil {
			return chk.Err("cannot encode point %d:\n%v", i, err)
		}
	}
	return
}

// Decode decodes the state of all points. The domain must have the same number of points
func (o *Domain) Decode(dec utl.Decoder, shallow bool) (err error) {
	var npoints int
	err = dec.Decode(&npoints)
	if err != nil {
		return chk.Err("cannot decode number of points:\n%v", err)
	}
	if npoints != len(o.Points) {
		return chk.Err("number of encoded points (%d) does not match domain (%d)", npoints, len(o.Points))
	}
	err = dec.Decode(&o.Time)
	if err != nil {
		return chk.Err("cannot decode time:\n%v", err)
	}
	for i, p := range o.Points {
		err = p.Decode(dec, shallow)
		if err != nil {
			return chk.Err("cannot decode point %d:\n%v", i, err)
		}
	}
	return
}
