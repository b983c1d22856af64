// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package narmax identifies polynomial NARMAX, NAR and NFIR model
// structures from measured input/output series. The candidate pool is
// the polynomial basis over the configured lags; structure selection
// is delegated to the entropic-regression engine in package entreg,
// and coefficients for the chosen structure come from a QR
// least-squares fit.
package narmax // import "github.com/erfit/go-entreg/narmax"

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/erfit/go-entreg/entreg"
)

// Config collects the model-structure and selection parameters of an
// ER estimator.
type Config struct {
	// YLag and XLag list the output and input lags that contribute
	// candidate variables. Lags(n) builds the common 1..n form.
	// NAR models ignore XLag and NFIR models ignore YLag.
	YLag, XLag []int

	// Degree is the polynomial nonlinearity degree of the
	// candidate pool.
	Degree int

	// Model chooses between NARMAX, NAR and NFIR candidate pools.
	Model ModelType

	// K, Q, P, NPerm, SkipForward, Seed and Concurrency configure
	// the selection engine; see entreg.Config.
	K           int
	Q           float64
	P           float64
	NPerm       int
	SkipForward bool
	Seed        uint64
	Concurrency int
}

// DefaultConfig returns the customary configuration: lags 1..2 on
// both series, degree 2, NARMAX pool, 2 neighbors, the 0.99 null
// quantile, the Chebyshev metric and 200 permutation trials.
func DefaultConfig() Config {
	sel := entreg.DefaultConfig()
	return Config{
		YLag:   Lags(2),
		XLag:   Lags(2),
		Degree: 2,
		Model:  NARMAX,
		K:      sel.K,
		Q:      sel.Q,
		P:      sel.P,
		NPerm:  sel.NPerm,
	}
}

// ER identifies model structure by entropic regression. It composes
// the polynomial basis (candidate generation), the entreg selection
// engine and the least-squares coefficient fit behind one Fit call.
type ER struct {
	basis *Basis
	sel   *entreg.Selector
}

// NewER returns an ER estimator for the given configuration. Every
// parameter is validated here; a configuration error is returned
// before any computation begins.
func NewER(cfg Config) (*ER, error) {
	basis, err := NewBasis(cfg.Degree, cfg.YLag, cfg.XLag, cfg.Model)
	if err != nil {
		return nil, err
	}
	sel, err := entreg.NewSelector(entreg.Config{
		K:           cfg.K,
		Q:           cfg.Q,
		P:           cfg.P,
		NPerm:       cfg.NPerm,
		SkipForward: cfg.SkipForward,
		Seed:        cfg.Seed,
		Concurrency: cfg.Concurrency,
	})
	if err != nil {
		return nil, err
	}
	return &ER{basis: basis, sel: sel}, nil
}

// Basis returns the candidate pool enumeration used by this
// estimator.
func (e *ER) Basis() *Basis { return e.basis }

// Fit selects the significant candidate terms for the measured
// series and fits their coefficients. x may be nil for NAR models.
//
// Successive Fit calls advance the estimator's random source, so two
// runs with the same data agree only if each uses a fresh estimator
// with the same seed.
func (e *ER) Fit(x, y []float64) (*Model, error) {
	psi, target, err := e.basis.Build(x, y)
	if err != nil {
		return nil, err
	}
	idx, err := e.sel.Select(psi, target)
	if err != nil {
		return nil, err
	}

	m := &Model{Indices: idx, maxLag: e.basis.maxLag, model: e.basis.model}
	for _, j := range idx {
		m.Terms = append(m.Terms, e.basis.terms[j])
	}
	if len(idx) > 0 {
		n, _ := psi.Dims()
		sub := mat.NewDense(n, len(idx), nil)
		col := make([]float64, n)
		for j, src := range idx {
			mat.Col(col, src, psi)
			sub.SetCol(j, col)
		}
		m.Theta, err = LeastSquares(sub, target)
		if err != nil {
			return nil, err
		}
	}
	return m, nil
}

// A Model is a frozen selected structure with fitted coefficients.
// Terms[i] has coefficient Theta[i]; Indices[i] is the term's
// position in the basis enumeration.
type Model struct {
	Terms   []Term
	Theta   []float64
	Indices []int

	maxLag int
	model  ModelType
}

// Predict returns the one-step-ahead predictions of the model over
// the measured series: one value per time step maxLag..len(y)-1, each
// computed from the measured (not predicted) histories. x may be nil
// for NAR models.
func (m *Model) Predict(x, y []float64) ([]float64, error) {
	if len(y) <= m.maxLag {
		return nil, fmt.Errorf("narmax: need more than %d observations to cover the lags; got %d", m.maxLag, len(y))
	}
	if m.model != NAR && len(x) != len(y) {
		return nil, fmt.Errorf("narmax: input and output series must have equal length; got %d and %d", len(x), len(y))
	}
	rows := len(y) - m.maxLag
	yhat := make([]float64, rows)
	if len(m.Terms) == 0 {
		return yhat, nil
	}
	psi := realize(m.Terms, m.maxLag, x, y)
	var v mat.VecDense
	v.MulVec(psi, mat.NewVecDense(len(m.Theta), m.Theta))
	for i := range yhat {
		yhat[i] = v.AtVec(i)
	}
	return yhat, nil
}

// RMSE returns the root-mean-square one-step-ahead prediction error
// of the model over the measured series.
func (m *Model) RMSE(x, y []float64) (float64, error) {
	yhat, err := m.Predict(x, y)
	if err != nil {
		return 0, err
	}
	var ss float64
	for i, v := range yhat {
		d := v - y[m.maxLag+i]
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(yhat))), nil
}

// String renders the model as one "coefficient*term" product per
// line, in selection order.
func (m *Model) String() string {
	if len(m.Terms) == 0 {
		return "<empty model>"
	}
	var b strings.Builder
	for i, t := range m.Terms {
		fmt.Fprintf(&b, "%+.4f*%v\n", m.Theta[i], t)
	}
	return b.String()
}
