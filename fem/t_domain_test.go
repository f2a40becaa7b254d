// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"context"
	"errors"
	"testing"

	"github.com/cpmech/gomat/mdl/damage"
	"github.com/cpmech/gomat/mdl/solid"
	"github.com/cpmech/gomat/mdl/state"
	"github.com/cpmech/gomat/tsr"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

// newMaterial allocates a damaged neo-Hookean material
func newMaterial(t *testing.T) solid.Material {
	mat, err := solid.NewWith(&solid.Desc{Name: "damaged", Model: "elastic-damage", Prms: dbf.Params{{N: "Dmax", V: 0.8}}, Sub: map[string]*solid.Desc{
		"elastic":   {Model: "neo-hookean", Prms: dbf.Params{{N: "E", V: 1000}, {N: "nu", V: 0.3}}},
		"cdf":       {Model: "weibull", Prms: dbf.Params{{N: "alpha", V: 2}, {N: "mu", V: 20}}},
		"criterion": {Model: "sed"},
	}})
	require.NoError(t, err)
	return mat
}

func Test_domain01(t *testing.T) {

	chk.PrintTitle("domain01")

	mat := newMaterial(t)
	dom, err := NewDomain(mat, 64, Config{Workers: 4}, nil)
	require.NoError(t, err)
	require.Len(t, dom.Points, 64)

	// points do not share state
	require.NotSame(t, state.Kinematics(dom.Points[0]), state.Kinematics(dom.Points[1]))

	// reference response
	F := tsr.Diag(1.2, 0.95, 1.05)
	p := mat.CreatePoint()
	p.Init()
	require.NoError(t, state.Kinematics(p).SetF(F))
	sig, err := solid.TotalStress(mat, p)
	require.NoError(t, err)

	// parallel evaluation
	require.NoError(t, dom.SetAllF(F))
	require.NoError(t, dom.Evaluate(context.Background()))
	for i := range dom.Points {
		require.InDeltaSlice(t, sig.Slice(), dom.Sig[i].Slice(), 1e-12, "point %d", i)
		require.Greater(t, dom.W[i], 0.0)
	}
}

func Test_domain02(t *testing.T) {

	chk.PrintTitle("domain02")

	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)
	dom, err := NewDomain(newMaterial(t), 100, Config{Workers: 3}, metrics)
	require.NoError(t, err)
	require.NoError(t, dom.SetAllF(tsr.Diag(1.1, 1, 1)))

	// inverted point
	err = dom.SetF(37, tsr.Diag(1, 1, -1))
	var nerr *NumericalError
	require.ErrorAs(t, err, &nerr)
	require.Equal(t, 37, nerr.Point)

	err = dom.Evaluate(context.Background())
	require.Error(t, err)
	require.ErrorIs(t, err, state.ErrInverted)
	require.ErrorAs(t, err, &nerr)
	require.Equal(t, 37, nerr.Point)
	require.Equal(t, 1.0, testutil.ToFloat64(metrics.Failures.WithLabelValues("inverted")))

	// cancelled by caller
	require.NoError(t, dom.SetF(37, tsr.Identity()))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = dom.Evaluate(ctx)
	require.True(t, errors.Is(err, context.Canceled), "err = %v", err)

	// success
	require.NoError(t, dom.Evaluate(context.Background()))
	require.Equal(t, 1.0, testutil.ToFloat64(metrics.Failures.WithLabelValues("inverted")))
	require.GreaterOrEqual(t, testutil.ToFloat64(metrics.Points), 100.0)
}

func Test_domain03(t *testing.T) {

	chk.PrintTitle("domain03")

	dom, err := NewDomain(newMaterial(t), 8, Config{Workers: 2}, nil)
	require.NoError(t, err)
	require.Error(t, dom.Restore())

	// converged step
	require.NoError(t, dom.SetAllF(tsr.Diag(1.2, 1, 1)))
	require.NoError(t, dom.Evaluate(context.Background()))
	dom.Update(1)
	Dconv := damage.Get(dom.Points[0].Root()).D
	require.Greater(t, Dconv, 0.0)
	dom.Backup()

	// trial step with larger damage which is then discarded
	require.NoError(t, dom.SetAllF(tsr.Diag(1.5, 1, 1)))
	require.NoError(t, dom.Evaluate(context.Background()))
	dom.Update(2)
	require.Greater(t, damage.Get(dom.Points[0].Root()).Emax, 0.0)
	require.NoError(t, dom.Restore())
	require.Equal(t, 1.0, dom.Time)
	for _, p := range dom.Points {
		require.InDelta(t, Dconv, damage.Get(p.Root()).D, 1e-15)
	}
}
