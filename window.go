// Copyright (c) 2014 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dsp

import (
	"fmt"
	"math"
)

const (
	// Rectangular window.
	Rectangular = iota
	// Hanning window.
	Hanning
	// Hamming window.
	Hamming
	// Blackman window.
	Blackman
)

// WindowSlice returns the coefficients of a window of winSize samples.
func WindowSlice(winType, winSize int) ([]float64, error) {
	switch winType {
	case Rectangular:
		s := make([]float64, winSize)
		for i := range s {
			s[i] = 1
		}
		return s, nil
	case Hanning:
		return HanningWindow(winSize), nil
	case Hamming:
		return HammingWindow(winSize), nil
	case Blackman:
		return BlackmanWindow(winSize), nil
	default:
		return nil, fmt.Errorf("dsp: unknown window type: %d", winType)
	}
}

// HanningWindow returns a Hanning window.
// w(t) = 0.5 - 0.5 * cos(2 pi t / T)
func HanningWindow(n int) []float64 {
	data := make([]float64, n)
	for i := 0; i < n; i++ {
		data[i] = 0.5 * (1.0 - math.Cos(2.0*math.Pi*float64(i)/float64(n)))
	}
	return data
}

var hannCache = newCache(8)

// CachedHannWindow returns the Hann window of n samples, computing it once
// per distinct n and reusing the result for the lifetime of the process;
// used by Frontend, which recomputes a window every 10 ms step otherwise.
func CachedHannWindow(n int) Value {
	if v, ok := hannCache.get(n); ok {
		return v
	}
	v := Value(HanningWindow(n))
	hannCache.set(n, v)
	return v
}

// HammingWindow returns a Hamming window.
// w(t) = 0.54 - 0.46 * cos(2 pi t / T)
func HammingWindow(n int) []float64 {
	data := make([]float64, n)
	for i := 0; i < n; i++ {
		data[i] = 0.54 - 0.46*math.Cos(2.0*math.Pi*float64(i)/float64(n))
	}
	return data
}

// BlackmanWindow returns a Blackman window.
// w(t) = 0.42 - 0.5 * cos(2 pi t / T) + 0.08 * cos(4 pi t / T)
func BlackmanWindow(n int) []float64 {
	data := make([]float64, n)
	for i := 0; i < n; i++ {
		data[i] = 0.42 - 0.5*math.Cos(2.0*math.Pi*float64(i)/float64(n)) +
			0.08*math.Cos(4.0*math.Pi*float64(i)/float64(n))
	}
	return data
}
