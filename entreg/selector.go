// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package entreg

import (
	"math"
	"sync"
	"time"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"

	"github.com/erfit/go-entreg/knnmi"
)

// A Selector chooses, from a pool of realized candidate regressor
// columns, the minimal subset that explains a target signal. It runs
// greedy forward selection followed by backward pruning, using the
// KSG mutual-information estimator with a permutation significance
// test as the entry and exit criterion.
//
// A Selector is not safe for concurrent use; its random source
// advances across calls to Select.
type Selector struct {
	cfg Config
	rng *rand.Rand

	// Cond conditions the target on the selected terms between
	// iterations. It defaults to Residualizer. Replacing it after
	// NewSelector and before Select substitutes a different
	// conditioning strategy.
	Cond Conditioner
}

// NewSelector returns a Selector with the given configuration. It
// fails with a descriptive error if any parameter is outside its
// domain; no computation happens before validation.
func NewSelector(cfg Config) (*Selector, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &Selector{
		cfg:  cfg,
		rng:  rand.New(rand.NewSource(seed)),
		Cond: Residualizer{},
	}, nil
}

// Select runs forward selection and backward pruning over the
// candidate columns of psi against target and returns the indices of
// the significant columns, in selection order. The result is a
// duplicate-free subset of 0..m-1 where m is the column count of psi,
// and is frozen once Select returns.
//
// Forward phase: each iteration conditions the target on the selected
// set, estimates the mutual information between every remaining
// candidate column and the conditioned target, and takes the
// candidate with the largest estimate (ties go to the lower column
// index). The candidate enters the selected set only if its estimate
// exceeds the permutation significance threshold for the same pair;
// otherwise the phase ends. A NaN estimate never exceeds any
// threshold.
//
// Backward phase: each pass re-tests every selected column against
// the target conditioned on all other selected columns, permanently
// removing those that fail the significance test. Passes repeat until
// one removes nothing.
//
// With cfg.SkipForward the forward phase is skipped and the backward
// phase starts from the full candidate pool.
func (s *Selector) Select(psi mat.Matrix, target []float64) ([]int, error) {
	n, m := psi.Dims()
	if len(target) != n {
		return nil, ErrLengthMismatch
	}

	pool := NewPool(m)
	if s.cfg.SkipForward {
		for i := 0; i < m; i++ {
			pool.MarkSelected(i)
		}
	} else {
		if err := s.forward(psi, target, pool); err != nil {
			return nil, err
		}
	}
	if err := s.backward(psi, target, pool); err != nil {
		return nil, err
	}
	return pool.Selected(), nil
}

func (s *Selector) forward(psi mat.Matrix, target []float64, pool *Pool) error {
	n, _ := psi.Dims()
	for {
		rem := pool.Remaining()
		if len(rem) == 0 {
			return nil
		}
		cond, err := s.Cond.Condition(psi, target, pool.Selected())
		if err != nil {
			return err
		}
		condMat := mat.NewDense(n, 1, cond)

		mis, err := s.sweep(psi, condMat, rem)
		if err != nil {
			return err
		}

		// Largest finite estimate wins; the strict comparison
		// keeps the lower index on exact ties.
		best := -1
		for i, mi := range mis {
			if math.IsNaN(mi) {
				continue
			}
			if best == -1 || mi > mis[best] {
				best = i
			}
		}
		if best == -1 {
			return nil
		}

		thr, err := knnmi.SignificanceThreshold(column(psi, rem[best]), condMat,
			s.cfg.K, s.cfg.P, s.cfg.NPerm, s.cfg.Q, s.rng)
		if err != nil {
			return err
		}
		if !(mis[best] > thr) {
			return nil
		}
		pool.MarkSelected(rem[best])
	}
}

func (s *Selector) backward(psi mat.Matrix, target []float64, pool *Pool) error {
	n, _ := psi.Dims()
	for {
		removed := false
		for _, i := range pool.Selected() {
			others := make([]int, 0, len(pool.sel))
			for _, j := range pool.Selected() {
				if j != i {
					others = append(others, j)
				}
			}
			cond, err := s.Cond.Condition(psi, target, others)
			if err != nil {
				return err
			}
			condMat := mat.NewDense(n, 1, cond)

			ci := column(psi, i)
			mi, err := knnmi.EstimateMI(ci, condMat, s.cfg.K, s.cfg.P)
			if err != nil {
				return err
			}
			thr, err := knnmi.SignificanceThreshold(ci, condMat,
				s.cfg.K, s.cfg.P, s.cfg.NPerm, s.cfg.Q, s.rng)
			if err != nil {
				return err
			}
			if !(mi > thr) {
				pool.MarkRemoved(i)
				removed = true
			}
		}
		if !removed {
			return nil
		}
	}
}

// sweep estimates the mutual information between each listed
// candidate column and the conditioned target. The evaluations are
// independent and run on cfg.Concurrency goroutines when that is at
// least 2; results land in index-addressed slots, so the outcome does
// not depend on evaluation order.
func (s *Selector) sweep(psi mat.Matrix, cond *mat.Dense, rem []int) ([]float64, error) {
	mis := make([]float64, len(rem))
	errs := make([]error, len(rem))
	eval := func(i int) {
		mis[i], errs[i] = knnmi.EstimateMI(column(psi, rem[i]), cond, s.cfg.K, s.cfg.P)
	}

	if s.cfg.Concurrency < 2 {
		for i := range rem {
			eval(i)
		}
	} else {
		var wg sync.WaitGroup
		work := make(chan int)
		for w := 0; w < s.cfg.Concurrency; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := range work {
					eval(i)
				}
			}()
		}
		for i := range rem {
			work <- i
		}
		close(work)
		wg.Wait()
	}

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return mis, nil
}

func column(m mat.Matrix, j int) *mat.Dense {
	n, _ := m.Dims()
	return mat.NewDense(n, 1, mat.Col(nil, j, m))
}
