// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package knnmi estimates the mutual information between batches of
// continuous observations using the Kraskov-Stögbauer-Grassberger
// (KSG) k-nearest-neighbor estimator, and derives permutation-test
// significance thresholds for it.
package knnmi // import "github.com/erfit/go-entreg/knnmi"

import (
	"errors"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/mathext"

	"github.com/erfit/go-entreg/metric"
)

var (
	// ErrRowMismatch indicates that the two batches do not have the
	// same number of observations.
	ErrRowMismatch = errors.New("knnmi: batches have different row counts")

	// ErrNeighborCount indicates a neighbor count outside 1 <= k < N.
	ErrNeighborCount = errors.New("knnmi: neighbor count must satisfy 1 <= k < N")

	// ErrPermCount indicates a non-positive permutation count.
	ErrPermCount = errors.New("knnmi: permutation count must be at least 1")

	// ErrQuantile indicates a quantile outside (0, 1].
	ErrQuantile = errors.New("knnmi: quantile must be in (0, 1]")
)

// EstimateMI returns the KSG estimate [1] of the mutual information
// between the observation batches y and z under the Minkowski metric
// with exponent p. The batches must have the same number of rows N;
// their column counts may differ. k is the neighbor order used in the
// joint space.
//
// The estimate is
//
//	ψ(k) + ψ(N) − mean_i[ψ(n_y(i)+1) + ψ(n_z(i)+1)]
//
// where n_y(i) counts the points whose marginal distance to point i
// in y is strictly less than the distance from i to its k-th nearest
// neighbor in the joint space (excluding i itself), and symmetrically
// for n_z. Terms where the digamma sum is not finite (a neighborhood
// count of -1 puts ψ at its pole) are dropped from the mean rather
// than treated as zero. If every term is dropped the estimate is NaN,
// which callers must treat as carrying no evidence of dependence.
//
// Equidistant neighbors at the k-th position are ordered by a full
// ascending sort of the distances, so the k-th neighbor distance is
// the k-th order statistic regardless of which of the tied points is
// nominally "the" k-th neighbor.
//
// The computation is deterministic: identical inputs produce
// bit-identical results.
//
// This can fail with ErrRowMismatch if the batches have different row
// counts, ErrNeighborCount if k < 1 or k >= N, or an error from
// metric.Pairwise.
//
// [1] Alexander Kraskov, Harald Stögbauer, and Peter Grassberger.
// Estimating mutual information. Physical Review E, 69:066138, 2004.
func EstimateMI(y, z mat.Matrix, k int, p float64) (float64, error) {
	n, _ := y.Dims()
	nz, _ := z.Dims()
	if n != nz {
		return 0, ErrRowMismatch
	}
	if k < 1 || k >= n {
		return 0, ErrNeighborCount
	}

	var joint mat.Dense
	joint.Augment(y, z)

	dj, err := metric.Pairwise(&joint, &joint, p)
	if err != nil {
		return 0, err
	}
	dy, err := metric.Pairwise(y, y, p)
	if err != nil {
		return 0, err
	}
	dz, err := metric.Pairwise(z, z, p)
	if err != nil {
		return 0, err
	}

	// Distance from each joint point to its k-th nearest neighbor,
	// excluding the point itself. The self-distance 0 occupies the
	// first position of the sorted row, so the k-th neighbor
	// distance is order statistic k.
	eps := make([]float64, n)
	row := make([]float64, n)
	for i := 0; i < n; i++ {
		copy(row, dj.RawRowView(i))
		sort.Float64s(row)
		eps[i] = row[k]
	}

	var sum float64
	var terms int
	for i := 0; i < n; i++ {
		// Count strictly-closer points in each marginal space.
		// The count starts at -1 to discount the comparison of
		// point i against itself; if eps[i] is zero not even
		// the self-comparison holds and the count stays -1,
		// putting the digamma argument at its pole below.
		cy, cz := -1, -1
		for j := 0; j < n; j++ {
			if dy.At(i, j) < eps[i] {
				cy++
			}
			if dz.At(i, j) < eps[i] {
				cz++
			}
		}
		t := mathext.Digamma(float64(cy+1)) + mathext.Digamma(float64(cz+1))
		if math.IsNaN(t) || math.IsInf(t, 0) {
			continue
		}
		sum += t
		terms++
	}
	if terms == 0 {
		return math.NaN(), nil
	}
	return mathext.Digamma(float64(k)) + mathext.Digamma(float64(n)) - sum/float64(terms), nil
}
