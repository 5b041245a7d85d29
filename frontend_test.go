// Copyright (c) 2014 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dsp

import "testing"

func TestPreEmphasize(t *testing.T) {
	x := []float64{1, 1, 1, 1}
	y := PreEmphasize(x, 0.95)
	CompareFloats(t, 1.0, y[0], "first sample unchanged", 1e-9)
	CompareFloats(t, 0.05, y[1], "constant input steady state", 1e-9)
	CompareFloats(t, 0.05, y[3], "constant input steady state", 1e-9)
}

func TestPreEmphasizeZero(t *testing.T) {
	x := make([]float64, 10)
	y := PreEmphasize(x, 0.95)
	for _, v := range y {
		CompareFloats(t, 0.0, v, "zero input stays zero", 1e-9)
	}
}

func TestSegment(t *testing.T) {
	samples := make([]float64, 320+160+160)
	frames := Segment(samples, 320, 160)
	if len(frames) != 3 {
		t.Fatalf("expected 3 frames, got %d", len(frames))
	}
	for _, f := range frames {
		if len(f) != 320 {
			t.Fatalf("expected frame length 320, got %d", len(f))
		}
	}
}

func TestSegmentShapeDeterministic(t *testing.T) {
	const sampleLen = 320*5 + 160*3
	samples := make([]float64, sampleLen)
	frames := Segment(samples, 320, 160)
	expected := (sampleLen-320)/160 + 1
	if len(frames) != expected {
		t.Fatalf("expected %d frames, got %d", expected, len(frames))
	}
}

func TestMelRoundTrip(t *testing.T) {
	for _, hz := range []float64{0, 500, 1000, 4000, 8000} {
		mel := hzToMel(hz)
		back := melToHz(mel)
		CompareFloats(t, hz, back, "mel<->hz round trip", 1e-6)
	}
}

func TestMelFilterbankRowsSumToOne(t *testing.T) {
	banks := MelFilterbank(512, 16000, 40)
	if len(banks) != 40 {
		t.Fatalf("expected 40 filter banks, got %d", len(banks))
	}
	for i, row := range banks {
		var sum float64
		for _, w := range row {
			sum += w
		}
		if sum > 1e-6 {
			CompareFloats(t, 1.0, sum, "filterbank row should sum to 1", 1e-6)
		}
		_ = i
	}
}

func TestPowerSpectrumLength(t *testing.T) {
	frame := make([]float64, 320)
	for i := range frame {
		frame[i] = 1.0
	}
	p := PowerSpectrum(frame)
	expected := nextPow2(320)/2 + 1
	if len(p) != expected {
		t.Fatalf("expected %d power bins, got %d", expected, len(p))
	}
}

func TestBoostShape(t *testing.T) {
	cepstra := make([][]float64, 5)
	for i := range cepstra {
		cepstra[i] = make([]float64, 13)
	}
	boosted := Boost(cepstra)
	if len(boosted) != 5 {
		t.Fatalf("expected 5 rows, got %d", len(boosted))
	}
	for _, row := range boosted {
		if len(row) != 39 {
			t.Fatalf("expected 39 columns, got %d", len(row))
		}
	}
}

func TestFrontendShapeDeterministic(t *testing.T) {
	cfg := DefaultFrontendConfig()
	const sampleLen = 320*9 + 160
	samples := make([]float64, sampleLen)
	feats := Frontend(samples, cfg)
	expected := (sampleLen-320)/160 + 1
	if len(feats) != expected {
		t.Fatalf("expected %d frames, got %d", expected, len(feats))
	}
	for _, row := range feats {
		if len(row) != 39 {
			t.Fatalf("expected 39 dims, got %d", len(row))
		}
	}
}
