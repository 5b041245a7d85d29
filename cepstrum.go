// Copyright (c) 2014 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dsp

import (
	"math"

	"github.com/gonum/floats"
)

const epsilon = 1e-10

// Cepstrum applies the DCT-II to log(melSpec), keeping the first nCep
// coefficients and scaling orthonormally: every coefficient is scaled by
// sqrt(2/K) except coefficient 0, which is additionally scaled by 1/sqrt(2).
func Cepstrum(melSpec []float64, nCep int) []float64 {
	k := len(melSpec)
	logMel := make([]float64, k)
	for i, m := range melSpec {
		if m < epsilon {
			m = epsilon
		}
		logMel[i] = math.Log(m)
	}

	scale := math.Sqrt(2.0 / float64(k))
	out := make([]float64, nCep)
	for i := 0; i < nCep; i++ {
		var sum float64
		for j := 0; j < k; j++ {
			sum += logMel[j] * math.Cos(float64(i)*(2.0*float64(j)+1.0)*math.Pi/(2.0*float64(k)))
		}
		s := scale
		if i == 0 {
			s *= 1.0 / math.Sqrt2
		}
		out[i] = sum * s
	}
	return out
}

// Boost appends first and second time-differences to a T x D matrix of
// cepstra using edge padding, producing a T x 3D matrix: delta[t] =
// c[t+1]-c[t-1], delta-delta similarly from delta.
func Boost(cepstra [][]float64) [][]float64 {
	t := len(cepstra)
	if t == 0 {
		return nil
	}
	d := len(cepstra[0])

	deltas := timeDiff(cepstra)
	deltaDeltas := timeDiff(deltas)

	out := make([][]float64, t)
	for i := 0; i < t; i++ {
		row := make([]float64, 3*d)
		copy(row[0:d], cepstra[i])
		copy(row[d:2*d], deltas[i])
		copy(row[2*d:3*d], deltaDeltas[i])
		out[i] = row
	}
	return out
}

// timeDiff computes δ[t] = m[t+1] - m[t-1] with edge padding (the first and
// last rows of m are repeated past the boundary).
func timeDiff(m [][]float64) [][]float64 {
	t := len(m)
	out := make([][]float64, t)
	for i := 0; i < t; i++ {
		prev := i - 1
		if prev < 0 {
			prev = 0
		}
		next := i + 1
		if next >= t {
			next = t - 1
		}
		row := make([]float64, len(m[i]))
		copy(row, m[next])
		floats.Sub(row, m[prev])
		out[i] = row
	}
	return out
}

// NormalizeMeanVariance subtracts the column means from m and divides by
// the column standard deviations, in place.
func NormalizeMeanVariance(m [][]float64) {
	t := len(m)
	if t == 0 {
		return
	}
	d := len(m[0])

	col := make([]float64, t)
	for j := 0; j < d; j++ {
		for i, row := range m {
			col[i] = row[j]
		}

		mean := floats.Sum(col) / float64(t)
		floats.AddConst(-mean, col)

		sd := math.Sqrt(floats.Dot(col, col) / float64(t))
		if sd < epsilon {
			sd = epsilon
		}
		floats.Scale(1/sd, col)

		for i, row := range m {
			row[j] = col[i]
		}
	}
}
