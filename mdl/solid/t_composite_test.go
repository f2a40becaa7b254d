// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solid

import (
	"bytes"
	"math"
	"testing"

	"github.com/cpmech/gomat/mdl/fiber"
	"github.com/cpmech/gomat/mdl/state"
	"github.com/cpmech/gomat/tsr"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
)

// fibersDesc returns the description of a continuous fiber distribution
func fibersDesc(dist, scheme string, resolution float64, axes dbf.Params) *Desc {
	d := &Desc{Name: "fibers", Model: "continuous-fiber-distribution", Prms: axes, Sub: map[string]*Desc{
		"fibers":       {Model: "fiber-exp-pow", Prms: dbf.Params{{N: "ksi", V: 5}, {N: "alpha", V: 20}, {N: "beta", V: 3}}},
		"distribution": {Model: dist},
		"scheme":       {Model: scheme, Prms: dbf.Params{{N: "resolution", V: resolution}}},
	}}
	switch dist {
	case "ellipsoidal":
		d.Sub["distribution"].Prms = dbf.Params{{N: "spa1", V: 1}, {N: "spa2", V: 0.5}, {N: "spa3", V: 0.3}}
	case "von-mises-3d":
		d.Sub["distribution"].Prms = dbf.Params{{N: "b", V: 2}}
	}
	return d
}

// axesPrms returns the parameters defining material axes with vectors a and d
func axesPrms(a, d tsr.Vec3) dbf.Params {
	return dbf.Params{
		{N: "a1", V: a[0]}, {N: "a2", V: a[1]}, {N: "a3", V: a[2]},
		{N: "d1", V: d[0]}, {N: "d2", V: d[1]}, {N: "d3", V: d[2]},
	}
}

// damageDesc returns the description of a damaged neo-Hookean material
func damageDesc(criterion string, mu, Dmax float64) *Desc {
	return &Desc{Name: "damaged", Model: "elastic-damage", Prms: dbf.Params{{N: "Dmax", V: Dmax}}, Sub: map[string]*Desc{
		"elastic":   {Model: "neo-hookean", Prms: dbf.Params{{N: "E", V: 1000}, {N: "nu", V: 0.3}}},
		"cdf":       {Model: "weibull", Prms: dbf.Params{{N: "alpha", V: 2}, {N: "mu", V: mu}}},
		"criterion": {Model: criterion},
	}}
}

func Test_cfd01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("cfd01")

	F := tsr.SampleF()
	for _, dist := range []string{"spherical", "ellipsoidal", "von-mises-3d"} {
		for _, scheme := range fiber.Schemes() {
			for _, res := range []float64{fiber.LowResolution, fiber.HighResolution} {
				msg := io.Sf("%s/%s/%g", dist, scheme, res)
				m := build(tst, fibersDesc(dist, scheme, res, nil))
				cfd := m.(*CFD)
				if cfd.IFD() <= 0 {
					tst.Errorf("%s: IFD must be positive. %g is invalid\n", msg, cfd.IFD())
					return
				}

				// fibers are inactive at the undeformed state
				sig, err := TotalStress(m, pointAt(tst, m, tsr.Identity()))
				if err != nil {
					tst.Errorf("%s: %v\n", msg, err)
					return
				}
				chk.Float64(tst, msg+": |σ(I)|", 1e-15, sig.Norm(), 0)

				// tangent
				checkTangent(tst, msg, m, F, 1e-6)
			}
		}
	}

	// missing components and invalid roles
	d := fibersDesc("spherical", "geodesic", 0, nil)
	delete(d.Sub, "scheme")
	_, err := NewWith(d)
	if err == nil {
		tst.Errorf("NewWith should have failed without scheme\n")
		return
	}
	io.Pforan("%v\n", err)
	d = fibersDesc("spherical", "geodesic", 0, nil)
	d.Sub["matrix"] = simple(tst, "neo-hookean")
	_, err = NewWith(d)
	if err == nil {
		tst.Errorf("NewWith should have failed with invalid role\n")
		return
	}
	io.Pforan("%v\n", err)

	// parallel axes
	_, err = NewWith(fibersDesc("spherical", "geodesic", 0, axesPrms(tsr.Vec3{1, 0, 0}, tsr.Vec3{2, 0, 0})))
	if err == nil {
		tst.Errorf("NewWith should have failed with parallel axes\n")
	}
}

func Test_cfd02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("cfd02")

	// fibers along x are stretched by uniaxial tension along x
	a, d := tsr.Vec3{0, 1, 0}, tsr.Vec3{1, 0, 0}
	own := build(tst, fibersDesc("ellipsoidal", "gauss-trapezoidal", 1, axesPrms(a, d)))
	def := build(tst, fibersDesc("ellipsoidal", "gauss-trapezoidal", 1, nil))

	// axes inherited from mixture
	mix := build(tst, &Desc{Model: "solid-mixture", Prms: axesPrms(a, d), Sub: map[string]*Desc{
		"solid1": fibersDesc("ellipsoidal", "gauss-trapezoidal", 1, nil),
	}})
	Q, _ := tsr.Frame(a, d)
	sub := mix.(*SolidMixture).subs[0].(*CFD)
	chk.Deep2(tst, "A", 1e-15, matSlice(sub.A), matSlice(Q))
	chk.Float64(tst, "IFD", 1e-14, sub.IFD(), own.(*CFD).IFD())

	F := tsr.Diag(1.2, 1/math.Sqrt(1.2), 1/math.Sqrt(1.2))
	sOwn, err := TotalStress(own, pointAt(tst, own, F))
	if err != nil {
		tst.Errorf("%v\n", err)
		return
	}
	sMix, err := TotalStress(mix, pointAt(tst, mix, F))
	if err != nil {
		tst.Errorf("%v\n", err)
		return
	}
	sDef, err := TotalStress(def, pointAt(tst, def, F))
	if err != nil {
		tst.Errorf("%v\n", err)
		return
	}
	io.Pforan("σ (own axes)     = %v\n", sOwn)
	io.Pforan("σ (default axes) = %v\n", sDef)
	chk.Array(tst, "σ: inherited axes", 1e-13, sMix.Slice(), sOwn.Slice())
	if math.Abs(sOwn[0]-sDef[0]) < 1e-8 {
		tst.Errorf("rotating the axes of an anisotropic distribution should change the stress\n")
	}

	// own axes are not overridden
	mix = build(tst, &Desc{Model: "solid-mixture", Prms: axesPrms(a, d), Sub: map[string]*Desc{
		"solid1": fibersDesc("ellipsoidal", "gauss-trapezoidal", 1, axesPrms(tsr.Vec3{1, 0, 0}, tsr.Vec3{0, 1, 0})),
	}})
	sMix, err = TotalStress(mix, pointAt(tst, mix, F))
	if err != nil {
		tst.Errorf("%v\n", err)
		return
	}
	chk.Array(tst, "σ: own axes kept", 1e-13, sMix.Slice(), sDef.Slice())
}

func Test_cfd03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("cfd03")

	// axes of a mixture reach fibers nested in other composites
	a, d := tsr.Vec3{0, 1, 0}, tsr.Vec3{1, 0, 0}
	Q, _ := tsr.Frame(a, d)
	fibers := func() *Desc { return fibersDesc("von-mises-3d", "geodesic", 0, nil) }
	undamaged := func() *Desc {
		return &Desc{Model: "elastic-damage", Sub: map[string]*Desc{
			"elastic":   fibers(),
			"cdf":       {Model: "weibull", Prms: dbf.Params{{N: "alpha", V: 2}, {N: "mu", V: 1e9}}},
			"criterion": {Model: "sed"},
		}}
	}
	direct := build(tst, &Desc{Model: "solid-mixture", Prms: axesPrms(a, d), Sub: map[string]*Desc{
		"solid1": fibers(),
	}})
	damaged := build(tst, &Desc{Model: "solid-mixture", Prms: axesPrms(a, d), Sub: map[string]*Desc{
		"solid1": undamaged(),
	}})
	nested := build(tst, &Desc{Model: "solid-mixture", Prms: axesPrms(a, d), Sub: map[string]*Desc{
		"solid1": {Model: "solid-mixture", Sub: map[string]*Desc{"solid1": fibers()}},
	}})
	inner := damaged.(*SolidMixture).subs[0].(*ElasticDamage).elastic.(*CFD)
	chk.Deep2(tst, "A: elastic-damage", 1e-15, matSlice(inner.A), matSlice(Q))
	inner = nested.(*SolidMixture).subs[0].(*SolidMixture).subs[0].(*CFD)
	chk.Deep2(tst, "A: nested mixture", 1e-15, matSlice(inner.A), matSlice(Q))

	F := tsr.Diag(1, 1.2, 1)
	sDirect, err := TotalStress(direct, pointAt(tst, direct, F))
	if err != nil {
		tst.Errorf("%v\n", err)
		return
	}
	for name, m := range map[string]Material{"elastic-damage": damaged, "nested mixture": nested} {
		sig, err := TotalStress(m, pointAt(tst, m, F))
		if err != nil {
			tst.Errorf("%s: %v\n", name, err)
			return
		}
		io.Pforan("%s: σyy = %g  direct: σyy = %g\n", name, sig[1], sDirect[1])
		chk.Array(tst, "σ: "+name, 1e-9*sDirect.MaxAbs(), sig.Slice(), sDirect.Slice())
	}

	// decoding a component alone keeps the inherited axes
	var buf bytes.Buffer
	inner = direct.(*SolidMixture).subs[0].(*CFD)
	err = inner.Encode(state.NewEncoder(&buf, "json"))
	if err != nil {
		tst.Errorf("%v\n", err)
		return
	}
	err = inner.Decode(state.NewDecoder(&buf, "json"))
	if err != nil {
		tst.Errorf("%v\n", err)
		return
	}
	chk.Deep2(tst, "A: after Decode", 1e-15, matSlice(inner.A), matSlice(Q))
	sig, err := TotalStress(direct, pointAt(tst, direct, F))
	if err != nil {
		tst.Errorf("%v\n", err)
		return
	}
	chk.Array(tst, "σ: after Decode", 1e-15, sig.Slice(), sDirect.Slice())

	// re-initialising the component alone keeps them too
	err = inner.Init(nil)
	if err != nil {
		tst.Errorf("%v\n", err)
		return
	}
	chk.Deep2(tst, "A: after Init", 1e-15, matSlice(inner.A), matSlice(Q))
}

func Test_cfd04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("cfd04")

	// at F = I every fiber is at In = 1 and belongs to the compressive side, thus the tangent
	// vanishes. Central differences straddle the switch and only converge linearly in h
	m := build(tst, fibersDesc("ellipsoidal", "gauss-trapezoidal", 0, nil))
	p := pointAt(tst, m, tsr.Identity())
	D, err := TotalTangent(m, p)
	if err != nil {
		tst.Errorf("%v\n", err)
		return
	}
	chk.Float64(tst, "max|D(I)|", 1e-12, D.MaxAbs(), 0)
	stress := func(Fp tsr.Mat3) (tsr.Sym, error) {
		q := p.Copy()
		if e := state.Kinematics(q).SetF(Fp); e != nil {
			return tsr.Sym{}, e
		}
		return TotalStress(m, q)
	}
	var diffs []float64
	for _, h := range []float64{1e-5, 1e-6} {
		diff, err := tsr.TangentError(tsr.Identity(), h, D, stress)
		if err != nil {
			tst.Errorf("%v\n", err)
			return
		}
		io.Pforan("h = %g  diff = %g\n", h, diff)
		diffs = append(diffs, diff)
	}
	if diffs[0] <= 0 || diffs[0] > 1e-3 {
		tst.Errorf("difference at F = I should be small and positive. %g is invalid\n", diffs[0])
	}
	chk.Float64(tst, "diff(h)/diff(h/10)", 1, diffs[0]/diffs[1], 10)

	// all fibers in tension
	checkTangent(tst, "F = diag(1.05, 1.02, 1.03)", m, tsr.Diag(1.05, 1.02, 1.03), 1e-6)
}

func Test_mixture01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("mixture01")

	// uncoupled mixture of two Mooney-Rivlin solids is a Mooney-Rivlin solid
	mr := func(c1, c2, k float64) *Desc {
		return &Desc{Model: "mooney-rivlin", Prms: dbf.Params{{N: "c1", V: c1}, {N: "c2", V: c2}, {N: "k", V: k}}}
	}
	mix := build(tst, &Desc{Model: "uncoupled-mixture", Sub: map[string]*Desc{
		"solid1": mr(10, 3, 100),
		"solid2": mr(2, 1, 50),
	}})
	one := build(tst, mr(12, 4, 150))
	chk.Float64(tst, "k", 1e-15, mix.(Uncoupled).BulkModulus(), 150)
	chk.Strings(tst, "roles", mix.(*UncoupledMixture).Roles(), []string{"solid1", "solid2"})

	F := tsr.SampleF()
	p, q := pointAt(tst, mix, F), pointAt(tst, one, F)
	s1, _ := TotalStress(mix, p)
	s2, _ := TotalStress(one, q)
	chk.Array(tst, "σ", 1e-12, s1.Slice(), s2.Slice())
	D1, _ := TotalTangent(mix, p)
	D2, _ := TotalTangent(one, q)
	chk.Deep2(tst, "D", 1e-11, D1.Slice(), D2.Slice())
	W1, _ := TotalSED(mix, p)
	W2, _ := TotalSED(one, q)
	chk.Float64(tst, "W", 1e-12, W1, W2)
	checkTangent(tst, "uncoupled-mixture", mix, F, 1e-6)

	// solid mixture of matrix and fibers
	mix = build(tst, &Desc{Model: "solid-mixture", Sub: map[string]*Desc{
		"solid1": simple(tst, "neo-hookean"),
		"solid2": fibersDesc("von-mises-3d", "geodesic", 0, nil),
	}})
	checkTangent(tst, "solid-mixture", mix, F, 1e-6)

	// errors
	bad := []*Desc{
		{Model: "uncoupled-mixture", Sub: map[string]*Desc{"solid1": simple(tst, "neo-hookean")}},
		{Model: "solid-mixture", Sub: map[string]*Desc{"fluid": simple(tst, "neo-hookean")}},
		{Model: "solid-mixture", Prms: dbf.Params{{N: "E", V: 1}}, Sub: map[string]*Desc{"solid1": simple(tst, "neo-hookean")}},
		{Model: "solid-mixture", Sub: map[string]*Desc{"solid1": {Model: "neo-hookean", Prms: dbf.Params{{N: "E", V: -1}}}}},
	}
	for i, d := range bad {
		_, err := NewWith(d)
		if err == nil {
			tst.Errorf("%d: NewWith should have failed\n", i)
			continue
		}
		io.Pforan("%d: %v\n", i, err)
	}
}

func Test_mixture02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("mixture02")

	desc := func(E, ksi float64) *Desc {
		fibers := fibersDesc("ellipsoidal", "geodesic", 1, nil)
		fibers.Sub["fibers"].Prms[0].V = ksi
		return &Desc{Model: "solid-mixture", Prms: axesPrms(tsr.Vec3{1, 1, 0}, tsr.Vec3{0, 0, 1}), Sub: map[string]*Desc{
			"solid1": {Model: "neo-hookean", Prms: dbf.Params{{N: "E", V: E}, {N: "nu", V: 0.25}}},
			"solid2": fibers,
		}}
	}
	a := build(tst, desc(500, 8))
	b := build(tst, desc(1000, 1))

	var buf bytes.Buffer
	err := a.Encode(state.NewEncoder(&buf, "gob"))
	if err != nil {
		tst.Errorf("%v\n", err)
		return
	}
	err = b.Decode(state.NewDecoder(&buf, "gob"))
	if err != nil {
		tst.Errorf("%v\n", err)
		return
	}
	F := tsr.SampleF()
	sa, _ := TotalStress(a, pointAt(tst, a, F))
	sb, _ := TotalStress(b, pointAt(tst, b, F))
	chk.Array(tst, "σ", 1e-13, sb.Slice(), sa.Slice())
}

func Test_damage01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("damage01")

	// scale of criterion: sed ~ 10², simo ~ 10, max-lagrange-strain ~ 10⁻¹
	scales := map[string]float64{"sed": 20, "simo": 6, "max-lagrange-strain": 0.15}
	F1 := tsr.Diag(1.25, 1/math.Sqrt(1.25), 1/math.Sqrt(1.25))
	F2 := tsr.Diag(1.4, 0.9, 0.9)
	nincs := 5
	for _, criterion := range []string{"sed", "simo", "max-lagrange-strain"} {
		m := build(tst, damageDesc(criterion, scales[criterion], 0.9))

		// loading, unloading and reloading beyond the previous maximum
		var pth Path
		err := pth.SetPiecewise(nincs, F1, tsr.Identity(), F2)
		if err != nil {
			tst.Errorf("%v\n", err)
			return
		}
		var drv Driver
		drv.Init(m)
		drv.TstD = tst
		err = drv.Run(&pth)
		if err != nil {
			tst.Errorf("%s: %v\n", criterion, err)
			return
		}

		// damage grows while loading and is kept while unloading
		peak := drv.Res[nincs].D
		io.Pforan("%s: D(peak) = %g  D(end) = %g\n", criterion, peak, drv.Res[len(drv.Res)-1].D)
		if peak <= 0 || peak >= 0.9 {
			tst.Errorf("%s: damage at peak should be in (0, Dmax). %g is invalid\n", criterion, peak)
			return
		}
		for i := 1; i <= nincs; i++ {
			if drv.Res[i].D < drv.Res[i-1].D {
				tst.Errorf("%s: damage must not decrease while loading\n", criterion)
				return
			}
			chk.Float64(tst, io.Sf("%s: D @ unloading %d", criterion, i), 1e-15, drv.Res[nincs+i].D, peak)
		}
		if drv.Res[len(drv.Res)-1].D <= peak {
			tst.Errorf("%s: damage should grow when reloading beyond the previous maximum\n", criterion)
		}
	}
}

func Test_damage02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("damage02")

	// Dmax = 0 recovers the elastic response
	m := build(tst, damageDesc("sed", 1, 0))
	e := build(tst, &Desc{Model: "neo-hookean", Prms: dbf.Params{{N: "E", V: 1000}, {N: "nu", V: 0.3}}})
	F := tsr.SampleF()
	sd, _ := TotalStress(m, pointAt(tst, m, F))
	se, _ := TotalStress(e, pointAt(tst, e, F))
	chk.Array(tst, "σ", 1e-15, sd.Slice(), se.Slice())

	// damage inside mixture
	mix := build(tst, &Desc{Model: "solid-mixture", Sub: map[string]*Desc{
		"solid1": damageDesc("sed", 20, 0.5),
		"solid2": fibersDesc("spherical", "geodesic", 0, nil),
	}})
	p := mix.CreatePoint()
	chk.Strings(tst, "tags", p.Tags(), []string{"elastic", "solid1/damage"})
	var pth Path
	err := pth.SetStretches(4, 1.3, 0.9, 1.1)
	if err != nil {
		tst.Errorf("%v\n", err)
		return
	}
	var drv Driver
	drv.Init(mix)
	drv.TstD = tst
	err = drv.Run(&pth)
	if err != nil {
		tst.Errorf("%v\n", err)
		return
	}

	// parameters round trip
	a := build(tst, damageDesc("simo", 5, 0.7))
	b := build(tst, damageDesc("simo", 8, 0.2))
	var buf bytes.Buffer
	err = a.Encode(state.NewEncoder(&buf, "json"))
	if err != nil {
		tst.Errorf("%v\n", err)
		return
	}
	err = b.Decode(state.NewDecoder(&buf, "json"))
	if err != nil {
		tst.Errorf("%v\n", err)
		return
	}
	chk.Float64(tst, "Dmax", 1e-17, b.(*ElasticDamage).Dmax, 0.7)
	sa, _ := TotalStress(a, pointAt(tst, a, F))
	sb, _ := TotalStress(b, pointAt(tst, b, F))
	chk.Array(tst, "σ", 1e-15, sb.Slice(), sa.Slice())

	// errors
	bad := []*Desc{
		damageDesc("sed", 1, 1.5),
		damageDesc("von-mises", 1, 0.5),
		{Model: "elastic-damage", Sub: map[string]*Desc{"elastic": simple(tst, "neo-hookean")}},
	}
	for i, d := range bad {
		_, err := NewWith(d)
		if err == nil {
			tst.Errorf("%d: NewWith should have failed\n", i)
			continue
		}
		io.Pforan("%d: %v\n", i, err)
	}
}

// matSlice converts a Mat3 to [][]float64
func matSlice(A tsr.Mat3) [][]float64 {
	return [][]float64{A[0][:], A[1][:], A[2][:]}
}
