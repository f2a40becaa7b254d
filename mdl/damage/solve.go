// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package damage

import "math"

// constants for SolveCDF
const (
	SolveMaxIt = 20   // maximum number of iterations
	SolveTol   = 1e-6 // tolerance on relative step or absolute residual
)

// SolveCDF finds x such that cdf(x) = target using Newton's method starting from x0
//  Output:
//   ok -- false if the method did not converge. The caller decides what to do then.
func SolveCDF(c CDF, target, x0 float64) (x float64, ok bool) {
	x = x0
	for it := 0; it < SolveMaxIt; it++ {
		f := target - c.Cdf(x)
		if math.Abs(f) <= SolveTol {
			return x, true
		}
		pdf := c.Pdf(x)
		if pdf <= 0 || math.IsNaN(pdf) {
			return x, false
		}
		dx := f / pdf
		x += dx
		if math.Abs(dx) <= SolveTol*math.Abs(x) {
			return x, true
		}
	}
	return x, false
}
