// Copyright (c) 2014 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dsp

import "fmt"

// FrontendConfig configures the synchronous MFCC pipeline.
type FrontendConfig struct {
	SampleRate int // Hz, default 16000.
	FrameSize  int // samples per frame, default 320 (20 ms at 16 kHz).
	HopSize    int // samples between frames, default 160 (10 ms at 16 kHz).
	NumBanks   int // Mel filter count, one of {25, 30, 40}; default 40.
	NumCeps    int // cepstral coefficients kept, default 13.
	PreEmph    float64
	WindowType int
}

// DefaultFrontendConfig returns the toolkit's default 16 kHz / 20 ms-frame
// / 40-bank / 13-cepstrum configuration.
func DefaultFrontendConfig() *FrontendConfig {
	return &FrontendConfig{
		SampleRate: 16000,
		FrameSize:  320,
		HopSize:    160,
		NumBanks:   40,
		NumCeps:    13,
		PreEmph:    0.95,
		WindowType: Hanning,
	}
}

// PreEmphasize returns y where y[0]=x[0] and y[n]=x[n]-alpha*x[n-1].
func PreEmphasize(x []float64, alpha float64) []float64 {
	y := make([]float64, len(x))
	if len(x) == 0 {
		return y
	}
	y[0] = x[0]
	for n := 1; n < len(x); n++ {
		y[n] = x[n] - alpha*x[n-1]
	}
	return y
}

// Segment splits samples into a sequence of window-length frames, 50%
// overlapping by default (hop = window/2), emitted only when a full frame
// is available; any trailing residual shorter than window is discarded.
func Segment(samples []float64, window, hop int) [][]float64 {
	if window <= 0 || hop <= 0 {
		panic(fmt.Errorf("dsp: window and hop must be positive, got window=%d hop=%d", window, hop))
	}
	var frames [][]float64
	for start := 0; start+window <= len(samples); start += hop {
		frame := make([]float64, window)
		copy(frame, samples[start:start+window])
		frames = append(frames, frame)
	}
	return frames
}

// nextPow2 returns the smallest power of two >= n.
func nextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// PowerSpectrum returns the first M/2+1 power-spectrum bins of frame, zero
// padded to the smallest power of two M >= len(frame). Bin i holds
// |FFT(frame)[i]|^2 / M.
func PowerSpectrum(frame []float64) []float64 {
	if len(frame) == 0 {
		panic(fmt.Errorf("dsp: zero-length frame"))
	}
	m := nextPow2(len(frame))
	data := make([]float64, m)
	copy(data, frame)

	RealFT(data, m, true)

	nyquist := data[1]
	energy := DFTEnergy(data) // M/2 bins (DC..M/2-1).
	out := make([]float64, m/2+1)
	for i, e := range energy {
		out[i] = e / float64(m)
	}
	out[m/2] = nyquist * nyquist / float64(m)
	return out
}

// Frontend runs the full feature pipeline over samples, returning a T x 39
// matrix of boosted, normalized MFCCs.
func Frontend(samples []float64, cfg *FrontendConfig) [][]float64 {
	pre := PreEmphasize(samples, cfg.PreEmph)
	frames := Segment(pre, cfg.FrameSize, cfg.HopSize)

	win := CachedHannWindow(cfg.FrameSize)
	if cfg.WindowType != Hanning {
		w, err := WindowSlice(cfg.WindowType, cfg.FrameSize)
		if err != nil {
			panic(err)
		}
		win = w
	}

	fftSize := nextPow2(cfg.FrameSize)
	banks := MelFilterbank(fftSize, cfg.SampleRate, cfg.NumBanks)

	cepstra := make([][]float64, len(frames))
	for i, frame := range frames {
		windowed := make([]float64, len(frame))
		for j := range frame {
			windowed[j] = frame[j] * win[j]
		}
		power := PowerSpectrum(windowed)
		mel := MelSpectrum(power, banks)
		cepstra[i] = Cepstrum(mel, cfg.NumCeps)
	}

	boosted := Boost(cepstra)
	NormalizeMeanVariance(boosted)
	return boosted
}
