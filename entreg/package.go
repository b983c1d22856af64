// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package entreg selects model structure by entropic regression: a
// greedy forward/backward search over candidate regressor columns
// that admits or removes terms according to a permutation
// significance test on a k-nearest-neighbor mutual-information
// estimate, rather than on least-squares residual reduction alone.
//
// The approach follows AlMomani, Sun and Bollt, "How Entropic
// Regression Beats the Outliers Problem in Nonlinear System
// Identification", Chaos 30, 013107 (2020).
package entreg // import "github.com/erfit/go-entreg/entreg"
