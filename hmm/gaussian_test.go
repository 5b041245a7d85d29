// Copyright (c) 2014 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hmm

import (
	"math"
	"testing"
)

func TestLogDensityStandardNormalAtMean(t *testing.T) {
	got := logDensity(vec(0, 0), vec(0, 0), vec(1, 1))
	want := -math.Log(2 * math.Pi)
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("expected %f, got %f", want, got)
	}
}

func TestEmissionLossPicksNearestComponent(t *testing.T) {
	state := &HMMState{
		Mixtures: []Gaussian{
			{Mean: vec(0), Var: vec(1), Weight: 0.5},
			{Mean: vec(10), Var: vec(1), Weight: 0.5},
		},
	}
	lossNear := EmissionLoss(state, vec(0.1))
	lossFar := EmissionLoss(state, vec(9.9))
	// Both frames are near one component; the loss should be small and
	// roughly symmetric regardless of which component is closest.
	if math.Abs(lossNear-lossFar) > 0.2 {
		t.Errorf("expected similar loss for symmetric frames, got %f vs %f", lossNear, lossFar)
	}
	if lossNear > 10 {
		t.Errorf("expected small loss for a frame at a component's mean, got %f", lossNear)
	}
}

func TestEmissionLossNonEmittingIsInf(t *testing.T) {
	state := NewNonEmitting()
	if got := EmissionLoss(state, vec(0)); got != InfLoss {
		t.Errorf("expected InfLoss for a non-emitting state, got %f", got)
	}
}
