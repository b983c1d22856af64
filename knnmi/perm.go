// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package knnmi

import (
	"math"
	"sort"
	"sync"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// TrialWorkers sets the number of goroutines used to evaluate
// permutation trials in SignificanceThreshold. Values below 2 select
// serial evaluation. The trials are independent and their random
// sub-streams are derived before evaluation begins, so the result
// does not depend on this setting.
var TrialWorkers = 1

// SignificanceThreshold returns the q-quantile of the empirical null
// distribution of the mutual information between y and z under the
// hypothesis of independence. The null distribution is built from
// nperm trials; each trial estimates the MI between y and an
// independent uniform random permutation of the rows of z, with y
// held fixed. A genuine MI estimate must exceed the returned
// threshold to be judged significant at level q.
//
// rng is the explicit random source for the permutations. Each trial
// draws its own sub-stream seed from rng before any trial runs, so
// the result is reproducible for a given rng state regardless of the
// order (or concurrency) of trial evaluation.
//
// Trials whose MI estimate is not finite carry no evidence and are
// dropped before the quantile is taken, mirroring how EstimateMI
// drops non-finite digamma terms. If every trial is dropped the
// threshold is NaN, which no estimate compares greater than.
//
// This can fail with ErrPermCount if nperm < 1, ErrQuantile if q is
// outside (0, 1], or any failure EstimateMI reports for (y, z, k, p).
func SignificanceThreshold(y, z mat.Matrix, k int, p float64, nperm int, q float64, rng *rand.Rand) (float64, error) {
	if nperm < 1 {
		return 0, ErrPermCount
	}
	if math.IsNaN(q) || q <= 0 || q > 1 {
		return 0, ErrQuantile
	}
	n, c := z.Dims()
	ny, _ := y.Dims()
	if n != ny {
		return 0, ErrRowMismatch
	}
	if k < 1 || k >= n {
		return 0, ErrNeighborCount
	}

	seeds := make([]uint64, nperm)
	for i := range seeds {
		seeds[i] = rng.Uint64()
	}

	zrows := make([][]float64, n)
	for i := range zrows {
		zrows[i] = mat.Row(nil, i, z)
	}

	mis := make([]float64, nperm)
	errs := make([]error, nperm)
	trial := func(t int) {
		tr := rand.New(rand.NewSource(seeds[t]))
		zp := mat.NewDense(n, c, nil)
		for dst, src := range tr.Perm(n) {
			zp.SetRow(dst, zrows[src])
		}
		mis[t], errs[t] = EstimateMI(y, zp, k, p)
	}

	if TrialWorkers < 2 {
		for t := 0; t < nperm; t++ {
			trial(t)
		}
	} else {
		var wg sync.WaitGroup
		work := make(chan int)
		for w := 0; w < TrialWorkers; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for t := range work {
					trial(t)
				}
			}()
		}
		for t := 0; t < nperm; t++ {
			work <- t
		}
		close(work)
		wg.Wait()
	}

	for _, err := range errs {
		if err != nil {
			return 0, err
		}
	}

	finite := make([]float64, 0, nperm)
	for _, mi := range mis {
		if !math.IsNaN(mi) && !math.IsInf(mi, 0) {
			finite = append(finite, mi)
		}
	}
	if len(finite) == 0 {
		return math.NaN(), nil
	}
	sort.Float64s(finite)
	return stat.Quantile(q, stat.Empirical, finite, nil), nil
}
