// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package out implements the output of results of material point drivers
package out

import (
	"os"
	"path/filepath"

	"github.com/cpmech/gomat/mdl/solid"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// PltEntity stores all data for a plot entity (X vs Y)
type PltEntity struct {
	Alias string    // alias
	X     []float64 // x-values
	Y     []float64 // y-values
	Xlbl  string    // horizontal axis label (raw; e.g. "lam1")
	Ylbl  string    // vertical axis label (raw; e.g. "sxx")
}

// SplotDat stores all data for one subplot
type SplotDat struct {
	Id    string       // unique identifier; used in the filename
	Title string       // title of subplot
	Xunit string       // unit of x-axis
	Yunit string       // unit of y-axis
	Data  []*PltEntity // data to be plotted
}

// Extract returns the values of key along the results. Keys:
//
//   step                          -- index of state
//   lam1, lam2, lam3              -- diagonal of F
//   gam                           -- F[0][1]
//   sxx, syy, szz, sxy, syz, sxz  -- Cauchy stress components
//   W, work, D                    -- energy, accumulated work and damage
//
func Extract(res []*solid.Result, key string) (vals []float64, err error) {
	vals = make([]float64, len(res))
	for i, r := range res {
		switch key {
		case "step":
			vals[i] = float64(i)
		case "lam1":
			vals[i] = r.F[0][0]
		case "lam2":
			vals[i] = r.F[1][1]
		case "lam3":
			vals[i] = r.F[2][2]
		case "gam":
			vals[i] = r.F[0][1]
		case "sxx":
			vals[i] = r.Sig.At(0, 0)
		case "syy":
			vals[i] = r.Sig.At(1, 1)
		case "szz":
			vals[i] = r.Sig.At(2, 2)
		case "sxy":
			vals[i] = r.Sig.At(0, 1)
		case "syz":
			vals[i] = r.Sig.At(1, 2)
		case "sxz":
			vals[i] = r.Sig.At(0, 2)
		case "W":
			vals[i] = r.W
		case "work":
			vals[i] = r.Work
		case "D":
			vals[i] = r.D
		default:
			return nil, chk.Err("cannot extract %q from results", key)
		}
	}
	return
}

// NewEntity returns ykey versus xkey along the results
func NewEntity(res []*solid.Result, xkey, ykey, alias string) (o *PltEntity, err error) {
	o = &PltEntity{Alias: alias, Xlbl: xkey, Ylbl: ykey}
	o.X, err = Extract(res, xkey)
	if err != nil {
		return nil, err
	}
	o.Y, err = Extract(res, ykey)
	if err != nil {
		return nil, err
	}
	return
}

// DriverSplots returns the default set of subplots of one driver run with xkey on the
// horizontal axis: stresses, energies and damage
func DriverSplots(res []*solid.Result, xkey string) (splots []*SplotDat, err error) {
	if len(res) == 0 {
		return nil, chk.Err("there are no results to plot")
	}
	groups := []struct {
		id, title string
		keys      []string
	}{
		{"stress", "Cauchy stress", []string{"sxx", "syy", "szz", "sxy"}},
		{"energy", "energy", []string{"W", "work"}},
		{"damage", "damage", []string{"D"}},
	}
	for _, g := range groups {
		s := &SplotDat{Id: g.id, Title: g.title}
		for _, key := range g.keys {
			e, err := NewEntity(res, xkey, key, GetLabel(key, ""))
			if err != nil {
				return nil, err
			}
			s.Data = append(s.Data, e)
		}
		splots = append(splots, s)
	}
	return
}

// Draw saves one figure per subplot as dirout/fnkey_<id>.ext. ext is the format; e.g. ".png",
// ".svg", ".pdf". Returns the filenames
func Draw(dirout, fnkey, ext string, width, height float64, splots ...*SplotDat) (fns []string, err error) {
	if ext == "" {
		ext = ".png"
	}
	if width < 1 {
		width = 4
	}
	if height < 1 {
		height = 3
	}
	err = os.MkdirAll(dirout, 0777)
	if err != nil {
		return nil, chk.Err("cannot create directory %q:\n%v", dirout, err)
	}
	for _, s := range splots {
		p, err := s.plot()
		if err != nil {
			return nil, err
		}
		fn := filepath.Join(dirout, io.Sf("%s_%s%s", fnkey, s.Id, ext))
		err = p.Save(vg.Length(width)*vg.Inch, vg.Length(height)*vg.Inch, fn)
		if err != nil {
			return nil, chk.Err("cannot save figure %q:\n%v", fn, err)
		}
		fns = append(fns, fn)
	}
	return
}

// plot creates the figure of this subplot
func (o *SplotDat) plot() (p *plot.Plot, err error) {
	if len(o.Data) == 0 {
		return nil, chk.Err("subplot %q does not have data", o.Id)
	}
	p = plot.New()
	p.Title.Text = o.Title
	p.X.Label.Text = GetLabel(o.Data[0].Xlbl, o.Xunit)
	if len(o.Data) == 1 {
		p.Y.Label.Text = GetLabel(o.Data[0].Ylbl, o.Yunit)
	}
	p.Add(plotter.NewGrid())
	sty := GetDefaultStyles(len(o.Data))
	for i, e := range o.Data {
		if len(e.X) != len(e.Y) {
			return nil, chk.Err("entity %q of subplot %q has %d x-values and %d y-values", e.Alias, o.Id, len(e.X), len(e.Y))
		}
		xys := make(plotter.XYs, len(e.X))
		for j := range e.X {
			xys[j].X, xys[j].Y = e.X[j], e.Y[j]
		}
		l, err := plotter.NewLine(xys)
		if err != nil {
			return nil, chk.Err("cannot plot entity %q of subplot %q:\n%v", e.Alias, o.Id, err)
		}
		sty[i].apply(l)
		p.Add(l)
		if sty[i].Marker {
			s, err := plotter.NewScatter(xys)
			if err != nil {
				return nil, err
			}
			s.GlyphStyle.Color = l.Color
			p.Add(s)
		}
		if e.Alias != "" {
			p.Legend.Add(e.Alias, l)
		}
	}
	p.Legend.Top = true
	return
}
