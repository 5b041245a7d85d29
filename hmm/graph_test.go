// Copyright (c) 2014 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hmm

import "testing"

func trivialModel(label int) *Model {
	states := NewChain(label, 2)
	states[0].Transitions[states[0]] = 1
	states[0].Transitions[states[1]] = 1
	states[1].Transitions[states[1]] = 1
	states[1].ExitLoss = 1
	states[0].Mixtures = []Gaussian{{Mean: vec(0), Var: vec(1), Weight: 1}}
	states[1].Mixtures = []Gaussian{{Mean: vec(1), Var: vec(1), Weight: 1}}
	return &Model{Label: label, States: states}
}

func TestComposeIsolatedWiresStartAndEnd(t *testing.T) {
	digits := []*Model{trivialModel(0), trivialModel(1)}
	gr := ComposeIsolated(digits)

	if len(gr.Start) != 1 {
		t.Fatalf("expected exactly one start state, got %d", len(gr.Start))
	}
	if len(gr.Start[0].Transitions) != 2 {
		t.Errorf("expected start to fan out to 2 digit starts, got %d", len(gr.Start[0].Transitions))
	}
	if len(gr.Emitting) != 4 {
		t.Errorf("expected 4 emitting states (2 digits x 2 states), got %d", len(gr.Emitting))
	}
	// Every digit's last state must transition into the shared end state.
	found := 0
	for _, s := range gr.Emitting {
		if _, ok := s.Transitions[gr.End]; ok {
			found++
		}
	}
	if found != 2 {
		t.Errorf("expected 2 states transitioning into the end state, got %d", found)
	}
}

func TestComposeIsolatedClonesDoNotShareState(t *testing.T) {
	source := trivialModel(0)
	gr := ComposeIsolated([]*Model{source})
	for _, s := range gr.Emitting {
		if s == source.States[0] || s == source.States[1] {
			t.Fatal("expected the composed grammar to use clones, not the source states")
		}
	}
}

func TestComposeUnrestrictedLoopsBackToJunction(t *testing.T) {
	digits := []*Model{trivialModel(0), trivialModel(1), trivialModel(2)}
	gr := ComposeUnrestricted(digits, HalfLoss)

	if len(gr.Start) != 1 || gr.Start[0] != gr.End {
		t.Error("expected the unrestricted grammar's single junction to be both start and end")
	}
	if len(gr.Start[0].Transitions) != 3 {
		t.Errorf("expected the junction to fan out to 3 digit starts, got %d", len(gr.Start[0].Transitions))
	}
}

func TestFixedLengthDigitSetExcludesZeroAndOneAtPositionZero(t *testing.T) {
	digits := make([]*Model, 10)
	for i := range digits {
		digits[i] = trivialModel(i)
	}
	set := FixedLengthDigitSet(0, digits)
	for _, m := range set {
		if m.Label <= 1 {
			t.Errorf("expected position 0 to exclude digit %d", m.Label)
		}
	}
	if len(set) != 8 {
		t.Errorf("expected 8 allowed digits at position 0, got %d", len(set))
	}
	if got := FixedLengthDigitSet(1, digits); len(got) != 10 {
		t.Errorf("expected all 10 digits at position 1, got %d", len(got))
	}
}

func TestComposeFixedLengthHasSilenceArm(t *testing.T) {
	digits := make([]*Model, 10)
	for i := range digits {
		digits[i] = trivialModel(i)
	}
	silence := trivialModel(NoLabel)
	gr := ComposeFixedLength(digits, silence, 3)

	// 8 digits at position 0 + 10 at each of positions 1-6 + 2 silence states.
	want := 8*2 + 10*6*2 + 2
	if len(gr.Emitting) != want {
		t.Errorf("expected %d emitting states, got %d", want, len(gr.Emitting))
	}
}
