// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package entreg

import (
	"fmt"
	"math"
)

// Config holds the selection parameters of a Selector. A Config is a
// plain immutable value; it is validated once by NewSelector and
// never mutated afterwards.
type Config struct {
	// K is the neighbor order of the KSG mutual-information
	// estimator. It must be at least 1, and at call time smaller
	// than the number of observations.
	K int

	// Q is the quantile of the permutation null distribution used
	// as the significance threshold. It must be in (0, 1].
	Q float64

	// P is the Minkowski exponent of the distance metric. It must
	// be positive; math.Inf(1) selects the Chebyshev distance.
	P float64

	// NPerm is the number of permutation trials behind each
	// significance threshold. It must be at least 1.
	NPerm int

	// SkipForward starts selection directly in the backward
	// pruning phase with the full candidate pool pre-selected.
	// This trades the speed of forward selection for the
	// robustness of pruning from the full pool, which suits
	// difficult and highly uncertain problems.
	SkipForward bool

	// Seed seeds the explicit random source used for permutation
	// shuffling. A given seed makes a selection run fully
	// reproducible. If Seed is zero the source is seeded
	// arbitrarily and the run is not reproducible.
	Seed uint64

	// Concurrency is the number of goroutines used for the
	// per-candidate mutual-information sweep of the forward
	// phase. Values below 2 select serial evaluation. The sweep
	// evaluations are independent, so the result does not depend
	// on this setting.
	Concurrency int
}

// DefaultConfig returns the customary entropic-regression defaults:
// 2 neighbors, the 0.99 null quantile, the Chebyshev metric and 200
// permutation trials.
func DefaultConfig() Config {
	return Config{
		K:     2,
		Q:     0.99,
		P:     math.Inf(1),
		NPerm: 200,
	}
}

func (c Config) validate() error {
	if c.K < 1 {
		return fmt.Errorf("entreg: k must be an integer >= 1; got %d", c.K)
	}
	if math.IsNaN(c.Q) || c.Q <= 0 || c.Q > 1 {
		return fmt.Errorf("entreg: q must be in (0, 1]; got %v", c.Q)
	}
	if math.IsNaN(c.P) || !(c.P > 0) {
		return fmt.Errorf("entreg: p must be positive or +Inf; got %v", c.P)
	}
	if c.NPerm < 1 {
		return fmt.Errorf("entreg: n_perm must be an integer >= 1; got %d", c.NPerm)
	}
	if c.Concurrency < 0 {
		return fmt.Errorf("entreg: concurrency must be non-negative; got %d", c.Concurrency)
	}
	return nil
}
