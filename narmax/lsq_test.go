// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package narmax

import (
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestLeastSquaresExact(t *testing.T) {
	// Overdetermined but consistent: target = 2*col0 - 0.5*col1.
	psi := mat.NewDense(4, 2, []float64{
		1, 2,
		3, 1,
		-1, 4,
		2, -2,
	})
	target := make([]float64, 4)
	for i := range target {
		target[i] = 2*psi.At(i, 0) - 0.5*psi.At(i, 1)
	}

	theta, err := LeastSquares(psi, target)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if len(theta) != 2 || !aeq(2, theta[0]) || !aeq(-0.5, theta[1]) {
		t.Errorf("theta = %v, want [2 -0.5]", theta)
	}
}

func TestLeastSquaresRankDeficient(t *testing.T) {
	// Exactly collinear columns make the system singular. The QR
	// solve still produces coefficients; the conditioning warning
	// must not turn into a failed fit.
	psi := mat.NewDense(4, 2, []float64{
		1, 1,
		2, 2,
		3, 3,
		4, 4,
	})
	theta, err := LeastSquares(psi, []float64{2, 4, 6, 8})
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if len(theta) != 2 {
		t.Errorf("got %d coefficients, want 2", len(theta))
	}
}

func TestLeastSquaresLengthMismatch(t *testing.T) {
	psi := mat.NewDense(3, 1, []float64{1, 2, 3})
	if _, err := LeastSquares(psi, make([]float64, 2)); err == nil {
		t.Errorf("length mismatch not rejected")
	}
}
