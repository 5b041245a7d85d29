// Copyright (c) 2014 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hmm

import (
	"math"

	narray "github.com/akualab/narray/na64"
)

// VarFloor is the minimum allowed diagonal covariance entry; estimated
// variances below it are clamped up, preventing a near-silent cluster
// from producing an unbounded emission probability.
const VarFloor = 0.1

// InfLoss represents an unreachable state or impossible transition: a
// +Inf loss that can be carried through arithmetic without a NaN: log of
// zero is +Inf, the toolkit's convention for emission underflow.
const InfLoss = math.MaxFloat64 / 2

// logDensity returns the log of the diagonal-covariance multivariate
// Gaussian density of x under (mean, variance), all represented as
// *narray.NArray, the vector type every feature vector flowing through
// this package uses.
func logDensity(x, mean, variance *narray.NArray) float64 {
	diff := narray.Sub(nil, x, mean)
	d := len(diff.Data)
	logDet := 0.0
	quad := 0.0
	for i := 0; i < d; i++ {
		v := variance.Data[i]
		logDet += math.Log(v)
		quad += diff.Data[i] * diff.Data[i] / v
	}
	return -0.5*(float64(d)*math.Log(2*math.Pi)+logDet) - 0.5*quad
}

// EmissionLoss returns state's per-frame emission loss for x: the
// min-over-mixture-components approximation, −log p_k(x) − log w_k
// minimized over k. An empty mixture set (a non-emitting state) is not a
// valid input and returns InfLoss.
func EmissionLoss(state *HMMState, x *narray.NArray) float64 {
	if len(state.Mixtures) == 0 {
		return InfLoss
	}
	best := math.Inf(1)
	for _, g := range state.Mixtures {
		if g.Weight <= 0 {
			continue
		}
		loss := -logDensity(x, g.Mean, g.Var) - math.Log(g.Weight)
		if loss < best {
			best = loss
		}
	}
	if math.IsInf(best, 1) {
		return InfLoss
	}
	return best
}
