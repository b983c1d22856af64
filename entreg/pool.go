// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package entreg

import "fmt"

type termState uint8

const (
	stateCandidate termState = iota
	stateSelected
	stateRemoved
)

// A Pool partitions a fixed enumeration of candidate terms, indexed
// 0 through n-1, into still-candidate, selected and permanently
// removed terms. Every term starts as a candidate. Within one
// selection run the partition moves one way only: a removed term is
// never reconsidered, and a term is never selected and removed at
// the same time. The Pool panics on calls that would violate this.
type Pool struct {
	state []termState
	sel   []int // selected terms in selection order
}

// NewPool returns a Pool over n candidate terms, all still candidate.
func NewPool(n int) *Pool {
	return &Pool{state: make([]termState, n)}
}

// Len returns the size of the candidate enumeration.
func (p *Pool) Len() int { return len(p.state) }

// MarkSelected moves candidate term i into the selected set.
func (p *Pool) MarkSelected(i int) {
	if p.state[i] != stateCandidate {
		panic(fmt.Sprintf("entreg: term %d is not a candidate", i))
	}
	p.state[i] = stateSelected
	p.sel = append(p.sel, i)
}

// MarkRemoved permanently removes term i. The term may be a
// still-candidate term rejected by forward selection or a selected
// term pruned by backward elimination; either way it leaves the run
// for good.
func (p *Pool) MarkRemoved(i int) {
	switch p.state[i] {
	case stateRemoved:
		panic(fmt.Sprintf("entreg: term %d already removed", i))
	case stateSelected:
		for j, s := range p.sel {
			if s == i {
				p.sel = append(p.sel[:j], p.sel[j+1:]...)
				break
			}
		}
	}
	p.state[i] = stateRemoved
}

// Remaining returns the still-candidate terms in enumeration order.
func (p *Pool) Remaining() []int {
	var rem []int
	for i, s := range p.state {
		if s == stateCandidate {
			rem = append(rem, i)
		}
	}
	return rem
}

// Selected returns the selected terms in the order they were
// selected. The caller must not retain the slice across further Pool
// mutations.
func (p *Pool) Selected() []int {
	return append([]int(nil), p.sel...)
}

// IsSelected reports whether term i is currently selected.
func (p *Pool) IsSelected(i int) bool { return p.state[i] == stateSelected }
