// Copyright (c) 2014 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package decoder

import (
	"testing"

	narray "github.com/akualab/narray/na64"
	"github.com/sichanghe/digitrec/hmm"
)

// digitModel builds a trivial single-state digit model centered at mean,
// with a cheap self-loop and an exit loss low enough not to dominate.
func digitModel(label int, mean float64) *hmm.Model {
	states := hmm.NewChain(label, 1)
	states[0].Transitions[states[0]] = 0.1
	states[0].ExitLoss = 0.1
	states[0].Mixtures = []hmm.Gaussian{{Mean: narray.NewArray([]float64{mean}, 1), Var: narray.NewArray([]float64{1}, 1), Weight: 1}}
	return &hmm.Model{Label: label, States: states}
}

func frames(values ...float64) hmm.Frames {
	out := make(hmm.Frames, len(values))
	for i, v := range values {
		out[i] = narray.NewArray([]float64{v}, 1)
	}
	return out
}

func TestDecodeIsolatedPicksNearestDigit(t *testing.T) {
	digits := []*hmm.Model{digitModel(0, 0), digitModel(1, 10), digitModel(2, 20)}
	gr := hmm.ComposeIsolated(digits)

	result := Decode(gr, frames(10, 10, 10), 0)
	if !result.OK {
		t.Fatal("expected a path to be found")
	}
	if len(result.Labels) != 1 || result.Labels[0] != 1 {
		t.Errorf("expected recognition of digit 1, got %v", result.Labels)
	}
}

func TestDecodeEmptyInputIsEmptyRecognition(t *testing.T) {
	digits := []*hmm.Model{digitModel(0, 0), digitModel(1, 10)}
	gr := hmm.ComposeIsolated(digits)

	result := Decode(gr, nil, 0)
	if !result.OK {
		t.Fatal("expected empty input to succeed with an empty recognition")
	}
	if len(result.Labels) != 0 {
		t.Errorf("expected no labels, got %v", result.Labels)
	}
}

func TestDecodeUnrestrictedRecognizesDigitString(t *testing.T) {
	digits := []*hmm.Model{digitModel(0, 0), digitModel(1, 10), digitModel(2, 20)}
	gr := hmm.ComposeUnrestricted(digits, hmm.HalfLoss)

	seq := frames(0, 0, 10, 10, 20, 20)
	result := Decode(gr, seq, 0)
	if !result.OK {
		t.Fatal("expected a path to be found")
	}
	want := []int{0, 1, 2}
	if len(result.Labels) != len(want) {
		t.Fatalf("expected %v, got %v", want, result.Labels)
	}
	for i, l := range want {
		if result.Labels[i] != l {
			t.Errorf("position %d: expected label %d, got %d", i, l, result.Labels[i])
		}
	}
}

func TestDecodeFixedLengthRecognizesSevenDigits(t *testing.T) {
	digits := make([]*hmm.Model, 10)
	for i := range digits {
		digits[i] = digitModel(i, float64(i)*10)
	}
	silence := digitModel(hmm.NoLabel, -50)
	gr := hmm.ComposeFixedLength(digits, silence, 3)

	want := []int{2, 3, 4, 5, 6, 7, 8}
	var seq hmm.Frames
	for _, d := range want {
		seq = append(seq, narray.NewArray([]float64{float64(d) * 10}, 1))
	}
	result := Decode(gr, seq, 0)
	if !result.OK {
		t.Fatal("expected a path to be found")
	}
	if len(result.Labels) != len(want) {
		t.Fatalf("expected %d labels, got %v", len(want), result.Labels)
	}
	for i, l := range want {
		if result.Labels[i] != l {
			t.Errorf("position %d: expected label %d, got %d", i, l, result.Labels[i])
		}
	}
}

func TestDecodeNoPathOnOverPruning(t *testing.T) {
	// Digit 1 is a two-state chain whose first state matches the input
	// and whose exit state does not.
	states := hmm.NewChain(1, 2)
	states[0].Transitions[states[0]] = 0.1
	states[0].Transitions[states[1]] = 0.1
	states[1].Transitions[states[1]] = 0.1
	states[1].ExitLoss = 0.1
	states[0].Mixtures = []hmm.Gaussian{{Mean: narray.NewArray([]float64{1000}, 1), Var: narray.NewArray([]float64{1}, 1), Weight: 1}}
	states[1].Mixtures = []hmm.Gaussian{{Mean: narray.NewArray([]float64{0}, 1), Var: narray.NewArray([]float64{1}, 1), Weight: 1}}
	digits := []*hmm.Model{digitModel(0, 0), {Label: 1, States: states}}
	gr := hmm.ComposeIsolated(digits)

	// An absurdly tight beam prunes away the only path that could ever
	// reach the end state.
	result := Decode(gr, frames(1000, 1000, 1000), 1e-9)
	if result.OK {
		t.Error("expected over-pruning to report no path")
	}
}

func TestDecodeZeroBeamMatchesUnprunedMinimum(t *testing.T) {
	digits := []*hmm.Model{digitModel(0, 0), digitModel(1, 50)}
	gr := hmm.ComposeIsolated(digits)
	seq := frames(0, 0, 0)

	exact := Decode(gr, seq, 0)
	wide := Decode(gr, seq, 1e9)
	if !exact.OK || !wide.OK {
		t.Fatal("expected both decodes to find a path")
	}
	if exact.Loss != wide.Loss {
		t.Errorf("expected beam 0 to match the unpruned minimum: %f vs %f", exact.Loss, wide.Loss)
	}
}
