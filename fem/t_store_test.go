// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"context"
	"testing"

	"github.com/cpmech/gomat/mdl/damage"
	"github.com/cpmech/gomat/tsr"
	"github.com/cpmech/gosl/chk"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func Test_store01(t *testing.T) {

	chk.PrintTitle("store01")

	for _, enctype := range []string{"gob", "json"} {
		store, err := OpenStore("", "", enctype)
		require.NoError(t, err)
		_, err = uuid.Parse(store.Run)
		require.NoError(t, err)

		// run two steps and save both
		mat := newMaterial(t)
		dom, err := NewDomain(mat, 5, Config{Workers: 2}, nil)
		require.NoError(t, err)
		for step, λ := range []float64{1.1, 1.3} {
			require.NoError(t, dom.SetAllF(tsr.Diag(λ, 1, 1)))
			require.NoError(t, dom.Evaluate(context.Background()))
			dom.Update(float64(step + 1))
			require.NoError(t, store.Save(step+1, dom))
		}
		steps, err := store.Steps()
		require.NoError(t, err)
		require.Equal(t, []int{1, 2}, steps)

		// load first step into a new domain
		other, err := NewDomain(mat, 5, Config{Workers: 2}, nil)
		require.NoError(t, err)
		require.NoError(t, store.Load(1, other))
		require.Equal(t, 1.0, other.Time)
		for i, p := range other.Points {
			s := damage.Get(p.Root())
			require.Greater(t, s.Emax, 0.0, "point %d", i)
			require.Less(t, s.Emax, damage.Get(dom.Points[i].Root()).Emax, "point %d", i)
		}

		// missing step and mismatched domain
		require.Error(t, store.Load(3, other))
		small, err := NewDomain(mat, 2, Config{}, nil)
		require.NoError(t, err)
		require.Error(t, store.Load(2, small))
		require.Error(t, store.Save(-1, dom))
		require.NoError(t, store.Close())
	}
}

func Test_store02(t *testing.T) {

	chk.PrintTitle("store02")

	// runs sharing one database are independent
	dir := t.TempDir()
	dom, err := NewDomain(newMaterial(t), 3, Config{}, nil)
	require.NoError(t, err)

	a, err := OpenStore(dir, "", "gob")
	require.NoError(t, err)
	require.NoError(t, a.Save(7, dom))
	require.NoError(t, a.Close())

	run := uuid.NewString()
	b, err := OpenStore(dir, run, "gob")
	require.NoError(t, err)
	steps, err := b.Steps()
	require.NoError(t, err)
	require.Empty(t, steps)
	require.NoError(t, b.Close())

	c, err := OpenStore(dir, a.Run, "gob")
	require.NoError(t, err)
	steps, err = c.Steps()
	require.NoError(t, err)
	require.Equal(t, []int{7}, steps)
	require.NoError(t, c.Load(7, dom))
	require.NoError(t, c.Close())

	_, err = OpenStore(dir, "not-a-uuid", "gob")
	require.Error(t, err)
}

func Test_config01(t *testing.T) {

	chk.PrintTitle("config01")

	t.Setenv("GOMAT_WORKERS", "3")
	t.Setenv("GOMAT_ENC", "json")
	t.Setenv("GOMAT_VERBOSE", "true")
	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, Config{Workers: 3, Verbose: true, Enc: "json"}, cfg)

	t.Setenv("GOMAT_WORKERS", "0")
	t.Setenv("GOMAT_ENC", "")
	cfg, err = LoadConfig()
	require.NoError(t, err)
	require.Greater(t, cfg.Workers, 0)
	require.Equal(t, "gob", cfg.Enc)

	t.Setenv("GOMAT_ENC", "xml")
	_, err = LoadConfig()
	require.Error(t, err)

	t.Setenv("GOMAT_ENC", "gob")
	t.Setenv("GOMAT_WORKERS", "many")
	_, err = LoadConfig()
	require.Error(t, err)
}
