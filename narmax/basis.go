// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package narmax

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/combin"
)

// A ModelType selects which measured histories contribute candidate
// regressors.
type ModelType int

const (
	// NARMAX models condition on both output and input history.
	NARMAX ModelType = iota
	// NAR models condition on output history only.
	NAR
	// NFIR models condition on input history only.
	NFIR
)

func (m ModelType) String() string {
	switch m {
	case NARMAX:
		return "NARMAX"
	case NAR:
		return "NAR"
	case NFIR:
		return "NFIR"
	}
	return fmt.Sprintf("ModelType(%d)", int(m))
}

// Lags returns the lag list 1..max. It is a convenience for the
// common "all lags up to a maximum" configuration.
func Lags(max int) []int {
	ls := make([]int, max)
	for i := range ls {
		ls[i] = i + 1
	}
	return ls
}

// A Basis is the fixed, enumerable pool of polynomial candidate
// terms: every monomial of degree at most Degree over the configured
// lagged variables, including the constant term. The enumeration
// order is deterministic and shared by every Build call.
type Basis struct {
	degree int
	model  ModelType
	vars   []Factor
	terms  []Term
	maxLag int
}

// NewBasis returns the polynomial basis of the given nonlinearity
// degree over the output lags ylag and input lags xlag, restricted by
// the model type: NAR ignores xlag and NFIR ignores ylag. It fails
// with a descriptive error for a non-positive degree or lag, an
// unknown model type, or a model type whose required lag list is
// empty.
func NewBasis(degree int, ylag, xlag []int, model ModelType) (*Basis, error) {
	if degree < 1 {
		return nil, fmt.Errorf("narmax: degree must be an integer >= 1; got %d", degree)
	}

	var vars []Factor
	maxLag := 0
	addLags := func(kind Kind, lags []int, name string) error {
		if len(lags) == 0 {
			return fmt.Errorf("narmax: %s must list at least one lag for model type %v", name, model)
		}
		for _, l := range lags {
			if l < 1 {
				return fmt.Errorf("narmax: %s lags must be integers >= 1; got %d", name, l)
			}
			vars = append(vars, Factor{Kind: kind, Lag: l})
			if l > maxLag {
				maxLag = l
			}
		}
		return nil
	}

	switch model {
	case NARMAX:
		if err := addLags(Output, ylag, "ylag"); err != nil {
			return nil, err
		}
		if err := addLags(Input, xlag, "xlag"); err != nil {
			return nil, err
		}
	case NAR:
		if err := addLags(Output, ylag, "ylag"); err != nil {
			return nil, err
		}
	case NFIR:
		if err := addLags(Input, xlag, "xlag"); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("narmax: model type must be NARMAX, NAR or NFIR; got %v", model)
	}

	b := &Basis{degree: degree, model: model, vars: vars, maxLag: maxLag}
	b.enumerate()
	return b, nil
}

// enumerate lists every monomial of degree at most b.degree as a
// size-b.degree multiset over the variables plus a constant slot.
// Multisets are drawn through the standard bijection with plain
// combinations: a combination c of size d from {0..m+d-1} maps to the
// multiset {c_j - j} over {0..m}, where slot 0 is the constant.
func (b *Basis) enumerate() {
	m := len(b.vars)
	for _, c := range combin.Combinations(m+b.degree, b.degree) {
		var t Term
		for j, cj := range c {
			slot := cj - j
			if slot > 0 {
				t.Factors = append(t.Factors, b.vars[slot-1])
			}
		}
		b.terms = append(b.terms, t)
	}
}

// Terms returns the candidate enumeration. Terms()[j] describes
// column j of the matrix returned by Build. The caller must not
// modify the result.
func (b *Basis) Terms() []Term { return b.terms }

// MaxLag returns the largest lag appearing in any variable.
func (b *Basis) MaxLag() int { return b.maxLag }

// Build realizes the information matrix and the aligned target from
// the measured series: one row per time step maxLag..len(y)-1, one
// column per candidate term, and target[i] = y[maxLag+i]. x is
// ignored (and may be nil) for NAR models.
//
// It fails with a descriptive error if y is too short to cover the
// lags or if x and y have different lengths when input history is
// used.
func (b *Basis) Build(x, y []float64) (*mat.Dense, []float64, error) {
	if err := b.checkSeries(x, y); err != nil {
		return nil, nil, err
	}
	psi := realize(b.terms, b.maxLag, x, y)
	target := append([]float64(nil), y[b.maxLag:]...)
	return psi, target, nil
}

func (b *Basis) checkSeries(x, y []float64) error {
	if len(y) <= b.maxLag {
		return fmt.Errorf("narmax: need more than %d observations to cover the lags; got %d", b.maxLag, len(y))
	}
	if b.model != NAR && len(x) != len(y) {
		return fmt.Errorf("narmax: input and output series must have equal length; got %d and %d", len(x), len(y))
	}
	return nil
}

// realize evaluates each term at every usable time step.
func realize(terms []Term, maxLag int, x, y []float64) *mat.Dense {
	rows := len(y) - maxLag
	psi := mat.NewDense(rows, len(terms), nil)
	for i := 0; i < rows; i++ {
		k := i + maxLag
		for j, t := range terms {
			v := 1.0
			for _, f := range t.Factors {
				if f.Kind == Output {
					v *= y[k-f.Lag]
				} else {
					v *= x[k-f.Lag]
				}
			}
			psi.Set(i, j, v)
		}
	}
	return psi
}
