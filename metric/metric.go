// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package metric computes pairwise distances between observation
// batches under the Minkowski family of metrics.
package metric // import "github.com/erfit/go-entreg/metric"

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

var (
	// ErrColumnMismatch indicates that the two batches do not have
	// the same number of columns and hence their rows live in
	// different spaces.
	ErrColumnMismatch = errors.New("metric: batches have different column counts")

	// ErrEmptyBatch indicates that a batch has no rows.
	ErrEmptyBatch = errors.New("metric: empty observation batch")

	// ErrExponent indicates a non-positive Minkowski exponent.
	ErrExponent = errors.New("metric: exponent must be positive or +Inf")
)

// Pairwise returns the matrix of distances between every row of a and
// every row of b under the Minkowski metric with exponent p. Entry
// (i, j) of the result is the distance between row i of a and row j
// of b.
//
// p may be any positive exponent. p = math.Inf(1) selects the
// Chebyshev distance (maximum absolute coordinate difference); p = 2
// is the Euclidean distance and p = 1 the Manhattan distance.
//
// Self-distance (a and b the same matrix) and cross-distance share
// one code path, so the two cases have identical numeric semantics.
// A self-distance matrix is symmetric with a zero diagonal.
//
// This can fail with ErrEmptyBatch if either batch has no rows,
// ErrColumnMismatch if the batches have different column counts, or
// ErrExponent if p is not positive.
func Pairwise(a, b mat.Matrix, p float64) (*mat.Dense, error) {
	ra, ca := a.Dims()
	rb, cb := b.Dims()
	if ra == 0 || rb == 0 {
		return nil, ErrEmptyBatch
	}
	if ca != cb {
		return nil, ErrColumnMismatch
	}
	if math.IsNaN(p) || !(p > 0) {
		return nil, ErrExponent
	}

	arows := make([][]float64, ra)
	for i := range arows {
		arows[i] = mat.Row(nil, i, a)
	}
	brows := arows
	if a != b {
		brows = make([][]float64, rb)
		for j := range brows {
			brows[j] = mat.Row(nil, j, b)
		}
	}

	d := mat.NewDense(ra, rb, nil)
	for i := 0; i < ra; i++ {
		for j := 0; j < rb; j++ {
			d.Set(i, j, floats.Distance(arows[i], brows[j], p))
		}
	}
	return d, nil
}
