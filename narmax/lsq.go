// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package narmax

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// LeastSquares fits coefficients for the realized regressor columns
// psi against the target by QR least squares. It returns one
// coefficient per column of psi.
func LeastSquares(psi mat.Matrix, target []float64) ([]float64, error) {
	n, c := psi.Dims()
	if len(target) != n {
		return nil, fmt.Errorf("narmax: regressor matrix has %d rows but target has %d values", n, len(target))
	}

	// A mat.Condition error only warns that the system is
	// ill-conditioned; the receiver still holds the computed
	// solution, so a rank-deficient term set yields its (possibly
	// poorly determined) coefficients rather than no fit at all.
	var theta mat.VecDense
	if err := theta.SolveVec(psi, mat.NewVecDense(n, target)); err != nil {
		if _, ok := err.(mat.Condition); !ok {
			return nil, err
		}
	}
	out := make([]float64, c)
	for i := range out {
		out[i] = theta.AtVec(i)
	}
	return out, nil
}
