// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package damage implements cumulative distribution functions (CDF) for scalar damage laws,
// damage criteria and the damage state of material points
//
//  The damage of a point is D = Dmax · cdf(Ξ) where Ξ = max(Ξtrial, Ξmax) and Ξmax is the
//  largest committed value of the damage criterion (a ratchet).
package damage

import (
	"math"
	"sort"
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"gonum.org/v1/gonum/stat/distuv"
)

// CDF defines a cumulative distribution function of a non-negative variable
type CDF interface {
	Init(prms dbf.Params) error      // initialises function
	GetPrms(example bool) dbf.Params // gets (an example) of parameters
	Cdf(x float64) float64           // cumulative distribution ∈ [0,1]
	Pdf(x float64) float64           // probability density = dcdf/dx ≥ 0
}

// cdfs holds all available CDFs
var cdfs = map[string]func() CDF{}

// NewCDF returns a new CDF
func NewCDF(name string) (CDF, error) {
	allocator, ok := cdfs[name]
	if !ok {
		return nil, chk.Err("cdf %q is not available in 'damage' database", name)
	}
	return allocator(), nil
}

// CDFs returns the names of all available CDFs
func CDFs() []string {
	return sortedKeys(cdfs)
}

// add functions to factory
func init() {
	cdfs["simo"] = func() CDF { return new(Simo) }
	cdfs["log-normal"] = func() CDF { return new(LogNormal) }
	cdfs["weibull"] = func() CDF { return new(Weibull) }
	cdfs["step"] = func() CDF { return new(Step) }
	cdfs["quintic"] = func() CDF { return new(Quintic) }
	cdfs["gamma"] = func() CDF { return new(Gamma) }
}

// Simo ////////////////////////////////////////////////////////////////////////////////////////////

// Simo implements Simo's damage function
//
//   cdf = (1-β) [ 1 - α (1 - exp(-x/α)) / x ]
//
//  Note: cdf → 1-β as x → ∞
type Simo struct {
	α float64 // characteristic value of x
	β float64 // residual fraction
}

// Init initialises function
func (o *Simo) Init(prms dbf.Params) (err error) {
	for _, p := range prms {
		switch strings.ToLower(p.N) {
		case "alpha":
			o.α = p.V
		case "beta":
			o.β = p.V
		default:
			return chk.Err("simo: parameter named %q is incorrect\n", p.N)
		}
	}
	if o.α <= 0 {
		return chk.Err("simo: alpha must be positive. alpha = %g is invalid", o.α)
	}
	if o.β < 0 || o.β >= 1 {
		return chk.Err("simo: beta must be in [0,1). beta = %g is invalid", o.β)
	}
	return
}

// GetPrms gets (an example) of parameters
func (o Simo) GetPrms(example bool) dbf.Params {
	if example {
		return []*dbf.P{
			&dbf.P{N: "alpha", V: 0.5},
			&dbf.P{N: "beta", V: 0.1},
		}
	}
	return []*dbf.P{
		&dbf.P{N: "alpha", V: o.α},
		&dbf.P{N: "beta", V: o.β},
	}
}

// Cdf computes cdf(x)
func (o Simo) Cdf(x float64) float64 {
	if x <= 0 {
		return 0
	}
	u := x / o.α
	if u < 1e-3 {
		return (1 - o.β) * u * (0.5 - u*(1.0/6.0-u*(1.0/24.0-u/120.0)))
	}
	return (1 - o.β) * (1 + math.Expm1(-u)/u)
}

// Pdf computes pdf(x)
func (o Simo) Pdf(x float64) float64 {
	if x < 0 {
		return 0
	}
	u := x / o.α
	if u < 1e-3 {
		return (1 - o.β) / o.α * (0.5 - u*(1.0/3.0-u*(1.0/8.0-u/30.0)))
	}
	e := math.Exp(-u)
	return (1 - o.β) / o.α * (-math.Expm1(-u) - u*e) / (u * u)
}

// log-normal //////////////////////////////////////////////////////////////////////////////////////

// LogNormal implements the log-normal distribution with median μ and log-standard deviation σ
type LogNormal struct {
	μ float64          // median
	σ float64          // standard deviation of ln(x)
	d distuv.LogNormal // distribution
}

// Init initialises function
func (o *LogNormal) Init(prms dbf.Params) (err error) {
	for _, p := range prms {
		switch strings.ToLower(p.N) {
		case "mu":
			o.μ = p.V
		case "sigma":
			o.σ = p.V
		default:
			return chk.Err("log-normal: parameter named %q is incorrect\n", p.N)
		}
	}
	if o.μ <= 0 {
		return chk.Err("log-normal: mu must be positive. mu = %g is invalid", o.μ)
	}
	if o.σ <= 0 {
		return chk.Err("log-normal: sigma must be positive. sigma = %g is invalid", o.σ)
	}
	o.d = distuv.LogNormal{Mu: math.Log(o.μ), Sigma: o.σ}
	return
}

// GetPrms gets (an example) of parameters
func (o LogNormal) GetPrms(example bool) dbf.Params {
	if example {
		return []*dbf.P{
			&dbf.P{N: "mu", V: 0.5},
			&dbf.P{N: "sigma", V: 0.3},
		}
	}
	return []*dbf.P{
		&dbf.P{N: "mu", V: o.μ},
		&dbf.P{N: "sigma", V: o.σ},
	}
}

// Cdf computes cdf(x)
func (o LogNormal) Cdf(x float64) float64 {
	if x <= 0 {
		return 0
	}
	return o.d.CDF(x)
}

// Pdf computes pdf(x)
func (o LogNormal) Pdf(x float64) float64 {
	if x <= 0 {
		return 0
	}
	return o.d.Prob(x)
}

// Weibull /////////////////////////////////////////////////////////////////////////////////////////

// Weibull implements cdf = 1 - exp(-(x/μ)^α)
type Weibull struct {
	α float64        // shape
	μ float64        // scale
	d distuv.Weibull // distribution
}

// Init initialises function
func (o *Weibull) Init(prms dbf.Params) (err error) {
	for _, p := range prms {
		switch strings.ToLower(p.N) {
		case "alpha":
			o.α = p.V
		case "mu":
			o.μ = p.V
		default:
			return chk.Err("weibull: parameter named %q is incorrect\n", p.N)
		}
	}
	if o.α <= 0 {
		return chk.Err("weibull: alpha must be positive. alpha = %g is invalid", o.α)
	}
	if o.μ <= 0 {
		return chk.Err("weibull: mu must be positive. mu = %g is invalid", o.μ)
	}
	o.d = distuv.Weibull{K: o.α, Lambda: o.μ}
	return
}

// GetPrms gets (an example) of parameters
func (o Weibull) GetPrms(example bool) dbf.Params {
	if example {
		return []*dbf.P{
			&dbf.P{N: "alpha", V: 2},
			&dbf.P{N: "mu", V: 1},
		}
	}
	return []*dbf.P{
		&dbf.P{N: "alpha", V: o.α},
		&dbf.P{N: "mu", V: o.μ},
	}
}

// Cdf computes cdf(x)
func (o Weibull) Cdf(x float64) float64 {
	if x <= 0 {
		return 0
	}
	return o.d.CDF(x)
}

// Pdf computes pdf(x)
func (o Weibull) Pdf(x float64) float64 {
	if x <= 0 {
		return 0
	}
	return o.d.Prob(x)
}

// step ////////////////////////////////////////////////////////////////////////////////////////////

// Step implements cdf = 1 if x ≥ μ; 0 otherwise
type Step struct {
	μ float64 // threshold
}

// Init initialises function
func (o *Step) Init(prms dbf.Params) (err error) {
	for _, p := range prms {
		switch strings.ToLower(p.N) {
		case "mu":
			o.μ = p.V
		default:
			return chk.Err("step: parameter named %q is incorrect\n", p.N)
		}
	}
	if o.μ < 0 {
		return chk.Err("step: mu must be non-negative. mu = %g is invalid", o.μ)
	}
	return
}

// GetPrms gets (an example) of parameters
func (o Step) GetPrms(example bool) dbf.Params {
	if example {
		return []*dbf.P{
			&dbf.P{N: "mu", V: 0.5},
		}
	}
	return []*dbf.P{
		&dbf.P{N: "mu", V: o.μ},
	}
}

// Cdf computes cdf(x)
func (o Step) Cdf(x float64) float64 {
	if x >= o.μ {
		return 1
	}
	return 0
}

// Pdf computes pdf(x); the jump is not represented
func (o Step) Pdf(x float64) float64 { return 0 }

// quintic /////////////////////////////////////////////////////////////////////////////////////////

// Quintic implements a smooth transition between μmin and μmax
//
//   cdf = t³ (10 - 15 t + 6 t²)    with   t = (x - μmin) / (μmax - μmin)
//
type Quintic struct {
	μmin float64 // start of transition
	μmax float64 // end of transition
}

// Init initialises function
func (o *Quintic) Init(prms dbf.Params) (err error) {
	for _, p := range prms {
		switch strings.ToLower(p.N) {
		case "mumin":
			o.μmin = p.V
		case "mumax":
			o.μmax = p.V
		default:
			return chk.Err("quintic: parameter named %q is incorrect\n", p.N)
		}
	}
	if o.μmin < 0 || o.μmax <= o.μmin {
		return chk.Err("quintic: 0 ≤ mumin < mumax is required. mumin = %g and mumax = %g are invalid", o.μmin, o.μmax)
	}
	return
}

// GetPrms gets (an example) of parameters
func (o Quintic) GetPrms(example bool) dbf.Params {
	if example {
		return []*dbf.P{
			&dbf.P{N: "mumin", V: 0.1},
			&dbf.P{N: "mumax", V: 0.6},
		}
	}
	return []*dbf.P{
		&dbf.P{N: "mumin", V: o.μmin},
		&dbf.P{N: "mumax", V: o.μmax},
	}
}

// Cdf computes cdf(x)
func (o Quintic) Cdf(x float64) float64 {
	if x <= o.μmin {
		return 0
	}
	if x >= o.μmax {
		return 1
	}
	t := (x - o.μmin) / (o.μmax - o.μmin)
	return t * t * t * (10 - 15*t + 6*t*t)
}

// Pdf computes pdf(x)
func (o Quintic) Pdf(x float64) float64 {
	if x <= o.μmin || x >= o.μmax {
		return 0
	}
	t := (x - o.μmin) / (o.μmax - o.μmin)
	return 30 * t * t * (1 - t) * (1 - t) / (o.μmax - o.μmin)
}

// gamma ///////////////////////////////////////////////////////////////////////////////////////////

// Gamma implements the gamma distribution with shape α and scale μ
//  Note: the regularised incomplete gamma function is computed by gonum
type Gamma struct {
	α float64      // shape
	μ float64      // scale
	d distuv.Gamma // distribution
}

// Init initialises function
func (o *Gamma) Init(prms dbf.Params) (err error) {
	for _, p := range prms {
		switch strings.ToLower(p.N) {
		case "alpha":
			o.α = p.V
		case "mu":
			o.μ = p.V
		default:
			return chk.Err("gamma: parameter named %q is incorrect\n", p.N)
		}
	}
	if o.α <= 0 {
		return chk.Err("gamma: alpha must be positive. alpha = %g is invalid", o.α)
	}
	if o.μ <= 0 {
		return chk.Err("gamma: mu must be positive. mu = %g is invalid", o.μ)
	}
	o.d = distuv.Gamma{Alpha: o.α, Beta: 1.0 / o.μ}
	return
}

// GetPrms gets (an example) of parameters
func (o Gamma) GetPrms(example bool) dbf.Params {
	if example {
		return []*dbf.P{
			&dbf.P{N: "alpha", V: 3},
			&dbf.P{N: "mu", V: 0.2},
		}
	}
	return []*dbf.P{
		&dbf.P{N: "alpha", V: o.α},
		&dbf.P{N: "mu", V: o.μ},
	}
}

// Cdf computes cdf(x)
func (o Gamma) Cdf(x float64) float64 {
	if x <= 0 {
		return 0
	}
	return o.d.CDF(x)
}

// Pdf computes pdf(x)
func (o Gamma) Pdf(x float64) float64 {
	if x <= 0 {
		return 0
	}
	return o.d.Prob(x)
}

// sortedKeys returns the sorted keys of a factory
func sortedKeys[T any](m map[string]T) (keys []string) {
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return
}
