// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package narmax

import (
	"fmt"
	"strings"
)

// A Kind identifies which measured series a lagged variable refers to.
type Kind uint8

const (
	// Output is the lagged system output y.
	Output Kind = iota
	// Input is the lagged system input x.
	Input
)

// A Factor is one lagged variable, y(k-Lag) or x1(k-Lag).
type Factor struct {
	Kind Kind
	Lag  int
}

func (f Factor) String() string {
	if f.Kind == Output {
		return fmt.Sprintf("y(k-%d)", f.Lag)
	}
	return fmt.Sprintf("x1(k-%d)", f.Lag)
}

// A Term is a polynomial candidate regressor: a monomial over lagged
// input and output variables. A Term with no factors is the constant
// regressor. Terms are created once by basis enumeration and hold a
// fixed position in it; they are never duplicated.
type Term struct {
	Factors []Factor
}

// Degree returns the monomial degree of the term. The constant term
// has degree 0.
func (t Term) Degree() int { return len(t.Factors) }

// String renders the term in the conventional display form, e.g.
// "y(k-1)x1(k-2)", "y(k-1)^2", or "1" for the constant term.
func (t Term) String() string {
	if len(t.Factors) == 0 {
		return "1"
	}
	var b strings.Builder
	for i := 0; i < len(t.Factors); {
		f := t.Factors[i]
		j := i
		for j < len(t.Factors) && t.Factors[j] == f {
			j++
		}
		b.WriteString(f.String())
		if j-i > 1 {
			fmt.Fprintf(&b, "^%d", j-i)
		}
		i = j
	}
	return b.String()
}
