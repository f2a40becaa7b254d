// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"github.com/cpmech/gosl/io"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// Style holds the style of one curve
type Style struct {
	Color  int     // index of colour in the default palette
	Dashes int     // index of dashes in the default set
	Width  float64 // line width [pt]
	Marker bool    // show glyphs
}

// GetDefaultStyles returns one style per entity
func GetDefaultStyles(n int) []Style {
	sty := make([]Style, n)
	for i := range sty {
		sty[i] = Style{Color: i, Dashes: i / len(plotutil.SoftColors), Width: 1.5}
	}
	return sty
}

// apply sets the line style of l
func (o Style) apply(l *plotter.Line) {
	l.Color = plotutil.Color(o.Color)
	l.Dashes = plotutil.Dashes(o.Dashes)
	l.Width = vg.Points(o.Width)
}

// GetLabel returns the label of key for axes
func GetLabel(key, unit string) string {
	var l string
	switch key {
	case "step":
		l = "step"
	case "lam1", "lam2", "lam3":
		l = "λ" + key[3:]
	case "gam":
		l = "γ"
	case "sxx", "syy", "szz", "sxy", "syz", "sxz":
		l = "σ" + key[1:]
	case "W":
		l = "W"
	case "work":
		l = "∫τ:d dt"
	case "D":
		l = "D"
	default:
		l = key
	}
	if unit != "" {
		l += io.Sf(" [%s]", unit)
	}
	return l
}
