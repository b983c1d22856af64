// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package entreg

import (
	"errors"

	"gonum.org/v1/gonum/mat"
)

// ErrLengthMismatch indicates that the candidate matrix and the
// target vector disagree on the number of observations.
var ErrLengthMismatch = errors.New("entreg: candidate matrix and target have different row counts")

// A Conditioner produces the target signal conditioned on a set of
// already-selected candidate columns. The Selector measures each
// candidate's mutual information against the conditioned target, so
// the Conditioner determines what "explained by the selected terms"
// means.
type Conditioner interface {
	// Condition returns the target conditioned on the selected
	// columns of psi. selected may be empty, in which case the
	// result is the target itself.
	Condition(psi mat.Matrix, target []float64, selected []int) ([]float64, error)
}

// Residualizer conditions by least-squares residualization: the
// conditioned target is target − Ψ_sel·θ̂ where θ̂ is the QR
// least-squares solution over the selected columns. This keeps every
// mutual-information call bivariate.
type Residualizer struct{}

// Condition implements Conditioner.
func (Residualizer) Condition(psi mat.Matrix, target []float64, selected []int) ([]float64, error) {
	n, _ := psi.Dims()
	if len(target) != n {
		return nil, ErrLengthMismatch
	}
	out := append([]float64(nil), target...)
	if len(selected) == 0 {
		return out, nil
	}

	sub := mat.NewDense(n, len(selected), nil)
	col := make([]float64, n)
	for j, idx := range selected {
		mat.Col(col, idx, psi)
		sub.SetCol(j, col)
	}

	// A mat.Condition error only warns that the selected columns
	// are ill-conditioned; the receiver still holds the computed
	// solution. A degenerate conditioning set must flow through as
	// NaN mutual information, not abort the run, so only hard
	// failures propagate.
	var theta mat.VecDense
	if err := theta.SolveVec(sub, mat.NewVecDense(n, out)); err != nil {
		if _, ok := err.(mat.Condition); !ok {
			return nil, err
		}
	}
	var fit mat.VecDense
	fit.MulVec(sub, &theta)
	for i := range out {
		out[i] -= fit.AtVec(i)
	}
	return out, nil
}
