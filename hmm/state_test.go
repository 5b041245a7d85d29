// Copyright (c) 2014 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hmm

import "testing"

func TestNewChainLinksParents(t *testing.T) {
	states := NewChain(3, 5)
	if len(states) != 5 {
		t.Fatalf("expected 5 states, got %d", len(states))
	}
	if states[0].Parent != nil {
		t.Error("expected first state to have no parent")
	}
	for i := 1; i < 5; i++ {
		if states[i].Parent != states[i-1] {
			t.Errorf("state %d: expected parent to be state %d", i, i-1)
		}
		if states[i].Label != 3 {
			t.Errorf("state %d: expected label 3, got %d", i, states[i].Label)
		}
	}
}

func TestCloneHMMStatesIndependence(t *testing.T) {
	states := NewChain(1, 3)
	states[0].Transitions[states[0]] = 0.1
	states[0].Transitions[states[1]] = 0.2
	states[1].Transitions[states[1]] = 0.3
	states[1].Transitions[states[2]] = 0.4

	clones := CloneHMMStates(states)
	if len(clones) != len(states) {
		t.Fatalf("expected %d clones, got %d", len(states), len(clones))
	}
	for i, c := range clones {
		if c == states[i] {
			t.Fatalf("state %d: clone reused the original pointer", i)
		}
	}
	// Internal topology is preserved, remapped to the clones.
	if _, ok := clones[0].Transitions[clones[1]]; !ok {
		t.Error("expected clone 0 -> clone 1 forward transition to be preserved")
	}
	if _, ok := clones[1].Transitions[clones[2]]; !ok {
		t.Error("expected clone 1 -> clone 2 forward transition to be preserved")
	}

	// Mutating a clone must not affect the original.
	clones[0].Transitions[clones[0]] = 99
	if states[0].Transitions[states[0]] != 0.1 {
		t.Error("expected mutating a clone's transitions to leave the source untouched")
	}
}

func TestCloneHMMStatesLeavesExternalTargetsAlone(t *testing.T) {
	external := NewNonEmitting()
	states := NewChain(1, 2)
	states[1].Transitions[external] = 0.5

	clones := CloneHMMStates(states)
	if clones[1].Transitions[external] != 0.5 {
		t.Error("expected a transition to a state outside the cloned slice to point at the original")
	}
}
