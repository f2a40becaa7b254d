// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package damage

import (
	"bytes"
	"math"
	"testing"

	"github.com/cpmech/gomat/mdl/state"
	"github.com/cpmech/gomat/tsr"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
)

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

func newCDF(tst *testing.T, name string, prms dbf.Params) CDF {
	c, err := NewCDF(name)
	if err != nil {
		tst.Fatalf("%v\n", err)
	}
	if prms == nil {
		prms = c.GetPrms(true)
	}
	err = c.Init(prms)
	if err != nil {
		tst.Fatalf("%v\n", err)
	}
	return c
}

// neoHookean returns the Cauchy stress and strain energy density of a compressible neo-Hookean solid
func neoHookean(F tsr.Mat3) (sig tsr.Sym, W float64) {
	μ, λ := 1.0, 2.0
	J := F.Det()
	lnJ := math.Log(J)
	b := F.LeftCG()
	I := tsr.SymIdentity()
	sig = b.Add(-1, I).Scale(μ/J).Add(λ*lnJ/J, I)
	W = μ/2*(b.Tr()-3) - μ*lnJ + λ/2*lnJ*lnJ
	return
}

func Test_cdf01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("cdf01")

	chk.Strings(tst, "cdfs", CDFs(), []string{"gamma", "log-normal", "quintic", "simo", "step", "weibull"})

	for _, name := range CDFs() {
		c := newCDF(tst, name, nil)

		// floor and limit
		chk.Float64(tst, name+": cdf(0)", 1e-17, c.Cdf(0), 0)
		chk.Float64(tst, name+": cdf(-1)", 1e-17, c.Cdf(-1), 0)
		limit := 1.0
		if name == "simo" {
			limit = 0.9
		}
		chk.Float64(tst, name+": cdf(∞)", 1e-6, c.Cdf(1e7), limit)

		// monotonic and bounded
		prev := 0.0
		for i := 0; i <= 500; i++ {
			x := float64(i) * 0.01
			F := c.Cdf(x)
			if F < prev || F < 0 || F > 1 {
				tst.Errorf("%s: cdf(%g) = %g is not monotonic or out of [0,1] (previous = %g)\n", name, x, F, prev)
				return
			}
			if c.Pdf(x) < 0 {
				tst.Errorf("%s: pdf(%g) = %g is negative\n", name, x, c.Pdf(x))
				return
			}
			prev = F
		}

		// pdf is the derivative of cdf
		if name == "step" {
			continue
		}
		h := 1e-6
		for _, x := range []float64{0.05, 0.3, 0.7, 1.5} {
			num := (c.Cdf(x+h) - c.Cdf(x-h)) / (2 * h)
			chk.AnaNum(tst, io.Sf("%s: pdf(%g)", name, x), 1e-7, c.Pdf(x), num, chk.Verbose)
		}
	}
}

func Test_cdf02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("cdf02")

	// Weibull with α = 2 and μ = 1
	c := newCDF(tst, "weibull", []*dbf.P{&dbf.P{N: "alpha", V: 2}, &dbf.P{N: "mu", V: 1}})
	chk.Float64(tst, "weibull: cdf(1)", 1e-14, c.Cdf(1), 1-math.Exp(-1))
	chk.Float64(tst, "weibull: pdf(1)", 1e-14, c.Pdf(1), 2*math.Exp(-1))

	// Simo: both branches meet at x = 1e-3 α
	s := newCDF(tst, "simo", []*dbf.P{&dbf.P{N: "alpha", V: 2}, &dbf.P{N: "beta", V: 0}})
	x := 2e-3
	chk.Float64(tst, "simo: cdf continuity", 1e-12, s.Cdf(x*(1-1e-9)), s.Cdf(x*(1+1e-9)))
	chk.Float64(tst, "simo: pdf continuity", 1e-9, s.Pdf(x*(1-1e-9)), s.Pdf(x*(1+1e-9)))
	chk.Float64(tst, "simo: pdf(0)", 1e-15, s.Pdf(0), 0.25)

	// invalid parameters
	for _, prms := range []struct {
		name string
		prms dbf.Params
	}{
		{"simo", []*dbf.P{&dbf.P{N: "alpha", V: 0}}},
		{"simo", []*dbf.P{&dbf.P{N: "alpha", V: 1}, &dbf.P{N: "beta", V: 1}}},
		{"log-normal", []*dbf.P{&dbf.P{N: "mu", V: 1}, &dbf.P{N: "sigma", V: -1}}},
		{"weibull", []*dbf.P{&dbf.P{N: "alpha", V: 2}}},
		{"quintic", []*dbf.P{&dbf.P{N: "mumin", V: 0.5}, &dbf.P{N: "mumax", V: 0.5}}},
		{"gamma", []*dbf.P{&dbf.P{N: "alpha", V: 1}, &dbf.P{N: "theta", V: 1}}},
		{"step", []*dbf.P{&dbf.P{N: "mu", V: -1}}},
	} {
		c, err := NewCDF(prms.name)
		if err != nil {
			tst.Errorf("%v\n", err)
			return
		}
		if c.Init(prms.prms) == nil {
			tst.Errorf("%s: parameters %v must be rejected\n", prms.name, prms.prms)
		}
	}
	_, err := NewCDF("beta")
	if err == nil {
		tst.Errorf("unknown cdf must fail\n")
	}
}

func Test_solve01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("solve01")

	// median of Weibull
	α, μ := 2.0, 1.5
	c := newCDF(tst, "weibull", []*dbf.P{&dbf.P{N: "alpha", V: α}, &dbf.P{N: "mu", V: μ}})
	x, ok := SolveCDF(c, 0.5, 0.5)
	io.Pforan("x = %v\n", x)
	if !ok {
		tst.Errorf("SolveCDF failed to converge\n")
		return
	}
	chk.Float64(tst, "median", 1e-5, x, μ*math.Pow(math.Ln2, 1/α))

	// log-normal median is μ
	c = newCDF(tst, "log-normal", []*dbf.P{&dbf.P{N: "mu", V: 0.8}, &dbf.P{N: "sigma", V: 0.4}})
	x, ok = SolveCDF(c, 0.5, 0.7)
	if !ok {
		tst.Errorf("SolveCDF failed to converge\n")
		return
	}
	chk.Float64(tst, "log-normal median", 1e-5, x, 0.8)

	// zero slope
	c = newCDF(tst, "step", nil)
	_, ok = SolveCDF(c, 0.5, 0.1)
	if ok {
		tst.Errorf("step cdf cannot be inverted by Newton's method\n")
	}
	c = newCDF(tst, "quintic", nil)
	_, ok = SolveCDF(c, 0.5, 2)
	if ok {
		tst.Errorf("starting point outside the transition must fail\n")
	}
}

func Test_state01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("state01")

	c := newCDF(tst, "weibull", []*dbf.P{&dbf.P{N: "alpha", V: 2}, &dbf.P{N: "mu", V: 1}})
	p := state.NewPoint("damage")
	p.Add(Tag, new(State))
	s := Get(p)

	// loading
	s.Etrial = 0.3
	if !s.Loading() {
		tst.Errorf("Etrial > Emax must be loading\n")
	}
	s.D = Damage(c, 0.8, s)
	chk.Float64(tst, "D", 1e-15, s.D, 0.8*(1-math.Exp(-0.09)))
	p.Update(1)
	chk.Float64(tst, "Emax", 1e-15, s.Emax, 0.3)

	// unloading keeps the maximum
	s.Etrial = 0.1
	if s.Loading() {
		tst.Errorf("Etrial < Emax must be unloading\n")
	}
	chk.Float64(tst, "D after unloading", 1e-15, Damage(c, 0.8, s), 0.8*(1-math.Exp(-0.09)))
	p.Update(2)
	chk.Float64(tst, "Emax after unloading", 1e-15, s.Emax, 0.3)

	// reloading beyond the maximum
	s.Etrial = 0.5
	p.Update(3)
	chk.Float64(tst, "Emax after reloading", 1e-15, s.Emax, 0.5)
	s.D = Damage(c, 0.8, s)

	// shallow and deep round trips
	for _, shallow := range []bool{true, false} {
		var buf bytes.Buffer
		err := p.Encode(state.NewEncoder(&buf, "gob"), shallow)
		if err != nil {
			tst.Errorf("%v\n", err)
			return
		}
		q := state.NewPoint("damage")
		q.Add(Tag, new(State))
		err = q.Decode(state.NewDecoder(&buf, "gob"), shallow)
		if err != nil {
			tst.Errorf("%v\n", err)
			return
		}
		r := Get(q)
		chk.Float64(tst, "Etrial", 1e-17, r.Etrial, s.Etrial)
		chk.Float64(tst, "D", 1e-17, r.D, s.D)
		if shallow {
			chk.Float64(tst, "Emax (shallow)", 1e-17, r.Emax, 0)
		} else {
			chk.Float64(tst, "Emax (deep)", 1e-17, r.Emax, s.Emax)
		}
	}

	// init
	p.Init()
	chk.Array(tst, "history", 1e-17, []float64{s.Etrial, s.Emax, s.D}, []float64{0, 0, 0})
}

func Test_criterion01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("criterion01")

	chk.Strings(tst, "criteria", Criteria(), []string{"max-lagrange-strain", "sed", "simo"})

	F := tsr.SampleF()
	for _, name := range Criteria() {
		crit, err := NewCriterion(name)
		if err != nil {
			tst.Errorf("%v\n", err)
			return
		}
		err = crit.Init(crit.GetPrms(true))
		if err != nil {
			tst.Errorf("%v\n", err)
			return
		}

		value := func(F tsr.Mat3) float64 {
			p := state.NewPoint("fd")
			state.Kinematics(p).SetF(F)
			sig, W := neoHookean(F)
			Ξ, err := crit.Value(p, sig, W)
			if err != nil {
				tst.Fatalf("%v\n", err)
			}
			return Ξ
		}

		p := state.NewPoint("test")
		state.Kinematics(p).SetF(F)
		sig, W := neoHookean(F)
		G, err := crit.Rate(p, sig, W)
		if err != nil {
			tst.Errorf("%v\n", err)
			return
		}
		io.Pforan("%s: Ξ = %v  G = %v\n", name, value(F), G)

		// dΞ = G:d for F' = (I + h d) F
		h := 1e-6
		for K := 0; K < 6; K++ {
			var d tsr.Sym
			if K < 3 {
				d[K] = 1
			} else {
				d[K] = 0.5
			}
			Fp := tsr.Identity().Add(h, d.Mat3()).Mul(F)
			Fm := tsr.Identity().Add(-h, d.Mat3()).Mul(F)
			num := (value(Fp) - value(Fm)) / (2 * h)
			chk.AnaNum(tst, io.Sf("%s: G:d[%d]", name, K), 1e-7, G.Dot(d), num, chk.Verbose)
		}
	}

	// undeformed: simo has no direction
	var simo SimoCrit
	G, err := simo.Rate(state.NewPoint("zero"), tsr.Sym{}, 0)
	if err != nil {
		tst.Errorf("%v\n", err)
		return
	}
	chk.Float64(tst, "simo: G at Ξ = 0", 1e-17, G.MaxAbs(), 0)

	// parameters are not accepted
	var sed SED
	if sed.Init([]*dbf.P{&dbf.P{N: "k", V: 1}}) == nil {
		tst.Errorf("sed criterion does not take parameters\n")
	}
	_, err = NewCriterion("von-mises")
	if err == nil {
		tst.Errorf("unknown criterion must fail\n")
	}
}
