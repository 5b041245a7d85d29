// Copyright (c) 2014 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dsp

import "testing"

func TestTimeDiffInteriorMatchesCentralDifference(t *testing.T) {
	m := [][]float64{{0, 0}, {1, 2}, {3, 6}, {4, 8}}
	d := timeDiff(m)
	CompareFloats(t, 3.0, d[1][0], "delta[1][0] = m[2]-m[0]", 1e-9)
	CompareFloats(t, 6.0, d[1][1], "delta[1][1] = m[2]-m[0]", 1e-9)
}

func TestTimeDiffEdgePadding(t *testing.T) {
	m := [][]float64{{5, 0}, {9, 0}}
	d := timeDiff(m)
	CompareFloats(t, 4.0, d[0][0], "first row pads its own predecessor: m[1]-m[0]", 1e-9)
	CompareFloats(t, 4.0, d[1][0], "last row pads its own successor: m[1]-m[0]", 1e-9)
}

func TestNormalizeMeanVarianceZeroMeanUnitVariance(t *testing.T) {
	m := [][]float64{{1, 10}, {2, 20}, {3, 30}, {4, 40}}
	NormalizeMeanVariance(m)

	for col := 0; col < 2; col++ {
		var sum float64
		for _, row := range m {
			sum += row[col]
		}
		CompareFloats(t, 0.0, sum, "normalized column should sum to ~0", 1e-6)

		var sumsq float64
		for _, row := range m {
			sumsq += row[col] * row[col]
		}
		CompareFloats(t, float64(len(m)), sumsq, "normalized column should have unit variance", 1e-6)
	}
}
