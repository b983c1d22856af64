// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package narmax

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// SyntheticNARX returns n samples of the benchmark single-input
// system
//
//	y[k] = 0.7·y[k-1] + 0.8·x[k-2] + e[k]
//
// with x drawn uniformly from [-1, 1] and e Gaussian with standard
// deviation sigma. The true structure is exactly the two terms
// y(k-1) and x1(k-2), which makes the system the canonical fixture
// for structure-recovery tests. rng is the explicit random source;
// equal sources produce equal series.
func SyntheticNARX(n int, sigma float64, rng *rand.Rand) (x, y []float64) {
	noise := distuv.Normal{Mu: 0, Sigma: sigma, Src: rng}
	x = make([]float64, n)
	y = make([]float64, n)
	for k := range x {
		x[k] = 2*rng.Float64() - 1
	}
	for k := 2; k < n; k++ {
		y[k] = 0.7*y[k-1] + 0.8*x[k-2]
		if sigma > 0 {
			y[k] += noise.Rand()
		}
	}
	return x, y
}
