// Copyright (c) 2014 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dsp

import (
	"math"
	"sync"
)

// Mel-scale break point: below 1 kHz the scale is linear, above it is
// logarithmic. f_sp is the linear-region slope (Hz per mel) and logstep is
// the per-mel ratio in the log region, chosen so that 6400 Hz sits 27 mels
// above the break point.
const (
	melBreakFreq = 1000.0
	melFSP       = 200.0 / 3.0
	melBreakPt   = melBreakFreq / melFSP
)

var melLogStep = math.Exp(math.Log(6.4) / 27.0)

// hzToMel converts a frequency in Hz to the Mel scale.
func hzToMel(hz float64) float64 {
	if hz < melBreakFreq {
		return hz / melFSP
	}
	return melBreakPt + math.Log(hz/melBreakFreq)/math.Log(melLogStep)
}

// melToHz converts a Mel value back to Hz.
func melToHz(mel float64) float64 {
	if mel < melBreakPt {
		return melFSP * mel
	}
	return melBreakFreq * math.Exp(math.Log(melLogStep)*(mel-melBreakPt))
}

// filterbankCache memoizes filter matrices keyed by (fftSize, sampleRate,
// numBanks): a process-lifetime immutable, same caching shape as the
// window cache in window.go.
var filterbankCache = struct {
	mu    sync.Mutex
	store map[[3]int][][]float64
}{store: map[[3]int][][]float64{}}

// MelFilterbank returns the K x (fftSize/2+1) triangular filter weight
// matrix for a filterbank of numBanks filters spanning 0..sampleRate/2,
// equally spaced on the Mel scale. Each row sums to 1. Results are cached
// by (fftSize, sampleRate, numBanks) since the matrix is a process-lifetime
// immutable.
func MelFilterbank(fftSize, sampleRate, numBanks int) [][]float64 {
	key := [3]int{fftSize, sampleRate, numBanks}

	filterbankCache.mu.Lock()
	if banks, ok := filterbankCache.store[key]; ok {
		filterbankCache.mu.Unlock()
		return banks
	}
	filterbankCache.mu.Unlock()

	nBins := fftSize/2 + 1
	minMel := hzToMel(0)
	maxMel := hzToMel(float64(sampleRate) / 2)

	// numBanks + 2 Mel-equally-spaced points bound numBanks triangles.
	points := make([]float64, numBanks+2)
	for i := range points {
		mel := minMel + float64(i)*(maxMel-minMel)/float64(numBanks+1)
		points[i] = melToHz(mel)
	}

	binHz := func(bin int) float64 {
		return float64(bin) * float64(sampleRate) / float64(fftSize)
	}

	banks := make([][]float64, numBanks)
	for k := 0; k < numBanks; k++ {
		left, center, right := points[k], points[k+1], points[k+2]
		row := make([]float64, nBins)
		var sum float64
		for b := 0; b < nBins; b++ {
			f := binHz(b)
			var w float64
			switch {
			case f >= left && f <= center && center > left:
				w = (f - left) / (center - left)
			case f > center && f <= right && right > center:
				w = (right - f) / (right - center)
			}
			if w < 0 {
				w = 0
			}
			row[b] = w
			sum += w
		}
		if sum > 0 {
			for b := range row {
				row[b] /= sum
			}
		}
		banks[k] = row
	}

	filterbankCache.mu.Lock()
	filterbankCache.store[key] = banks
	filterbankCache.mu.Unlock()
	return banks
}

// MelSpectrum applies a precomputed filterbank to a power spectrum,
// producing a numBanks-length vector of filter energies.
func MelSpectrum(power []float64, banks [][]float64) []float64 {
	out := make([]float64, len(banks))
	for k, row := range banks {
		var sum float64
		n := len(row)
		if len(power) < n {
			n = len(power)
		}
		for b := 0; b < n; b++ {
			sum += power[b] * row[b]
		}
		out[k] = sum
	}
	return out
}
