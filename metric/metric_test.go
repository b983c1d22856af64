// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package metric

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func aeq(expect, got float64) bool {
	return math.Abs(expect-got) < 0.00001
}

func TestPairwiseKnown(t *testing.T) {
	a := mat.NewDense(2, 2, []float64{
		0, 0,
		3, 4,
	})
	check := func(p, want float64) {
		t.Helper()
		d, err := Pairwise(a, a, p)
		if err != nil {
			t.Fatalf("p=%v: unexpected error %v", p, err)
		}
		if got := d.At(0, 1); !aeq(want, got) {
			t.Errorf("p=%v: want %v, got %v", p, want, got)
		}
	}

	check(1, 7)
	check(2, 5)
	check(3, math.Pow(91, 1.0/3))
	check(math.Inf(1), 4)
}

func TestPairwiseSelf(t *testing.T) {
	a := mat.NewDense(4, 3, []float64{
		0.5, -1.25, 2,
		3, 0.75, -0.5,
		-2, 1, 1.5,
		0.25, 0.25, 0.25,
	})
	for _, p := range []float64{0.5, 1, 2, 3, math.Inf(1)} {
		d, err := Pairwise(a, a, p)
		if err != nil {
			t.Fatalf("p=%v: unexpected error %v", p, err)
		}
		r, c := d.Dims()
		if r != 4 || c != 4 {
			t.Fatalf("p=%v: want 4x4 matrix, got %dx%d", p, r, c)
		}
		for i := 0; i < r; i++ {
			if d.At(i, i) != 0 {
				t.Errorf("p=%v: diagonal entry (%d,%d) = %v, want 0", p, i, i, d.At(i, i))
			}
			for j := 0; j < c; j++ {
				if d.At(i, j) < 0 {
					t.Errorf("p=%v: negative distance at (%d,%d)", p, i, j)
				}
				if d.At(i, j) != d.At(j, i) {
					t.Errorf("p=%v: asymmetry at (%d,%d): %v != %v", p, i, j, d.At(i, j), d.At(j, i))
				}
			}
		}
	}
}

func TestPairwiseCross(t *testing.T) {
	a := mat.NewDense(3, 2, []float64{1, 2, 3, 4, 5, 6})
	b := mat.NewDense(2, 2, []float64{0, 0, 1, 1})

	ab, err := Pairwise(a, b, 2)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	ba, err := Pairwise(b, a, 2)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 2; j++ {
			if ab.At(i, j) != ba.At(j, i) {
				t.Errorf("cross distance not transpose-consistent at (%d,%d)", i, j)
			}
		}
	}
	if want := math.Sqrt(5); !aeq(want, ab.At(0, 0)) {
		t.Errorf("want %v, got %v", want, ab.At(0, 0))
	}
}

func TestPairwiseErrors(t *testing.T) {
	a := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
	b := mat.NewDense(2, 3, []float64{1, 2, 3, 4, 5, 6})
	empty := &mat.Dense{}

	if _, err := Pairwise(a, b, 2); err != ErrColumnMismatch {
		t.Errorf("want ErrColumnMismatch, got %v", err)
	}
	if _, err := Pairwise(empty, a, 2); err != ErrEmptyBatch {
		t.Errorf("want ErrEmptyBatch, got %v", err)
	}
	if _, err := Pairwise(a, empty, 2); err != ErrEmptyBatch {
		t.Errorf("want ErrEmptyBatch, got %v", err)
	}
	if _, err := Pairwise(a, a, 0); err != ErrExponent {
		t.Errorf("want ErrExponent, got %v", err)
	}
	if _, err := Pairwise(a, a, -2); err != ErrExponent {
		t.Errorf("want ErrExponent, got %v", err)
	}
}
