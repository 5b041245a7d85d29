// Copyright (c) 2014 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package hmm implements per-digit hidden Markov models trained by
// segmental K-means, and the graph primitives used to compose them into
// isolated-digit, fixed-length, unrestricted, and continuous-embedded
// recognition grammars.
package hmm

import narray "github.com/akualab/narray/na64"

// Gaussian is one diagonal-covariance mixture component.
type Gaussian struct {
	Mean   *narray.NArray
	Var    *narray.NArray // diagonal of the covariance matrix
	Weight float64
}

// NoLabel marks a non-emitting state (a graph junction with no acoustic
// model of its own).
const NoLabel = -1

// HMMState is one state in an HMM or a composed recognition graph.
// Transitions are costs in negative-log-probability space, keyed by
// pointer identity the same way the reference implementation keys a
// Python dict by object id.
type HMMState struct {
	Mixtures    []Gaussian
	Transitions map[*HMMState]float64
	Label       int // digit label this state belongs to; NoLabel if non-emitting
	ExitLoss    float64
	Parent      *HMMState // nil for the first state in a chain
}

// NewNonEmitting returns a state with no acoustic model, suitable as a
// graph junction (a grammar's start/end node).
func NewNonEmitting() *HMMState {
	return &HMMState{Transitions: map[*HMMState]float64{}, Label: NoLabel}
}

// IsNonEmitting reports whether s has no mixtures, i.e. is a graph
// junction rather than an acoustic state.
func (s *HMMState) IsNonEmitting() bool { return len(s.Mixtures) == 0 }

// NewChain returns n freshly allocated, left-to-right-linked emitting
// states for digit label, each state's Parent pointing to its
// predecessor (nil for the first). Transitions are left empty for the
// trainer to fill in.
func NewChain(label, n int) []*HMMState {
	states := make([]*HMMState, n)
	var parent *HMMState
	for i := 0; i < n; i++ {
		s := &HMMState{Transitions: map[*HMMState]float64{}, Label: label, Parent: parent}
		states[i] = s
		parent = s
	}
	return states
}

// CloneHMMStates clones states, preserving the transitions among
// clones of states actually present in the input slice while leaving
// transitions to any state outside the slice pointing at the original
// (un-cloned) target. Each clone gets a new state struct and a new
// Transitions map; its Mixtures slice, and the Gaussians' Mean and Var
// arrays, are shared with the source state, not copied. Graph
// composition clones a trained digit's states this way before wiring
// them into a shared grammar, so adding grammar edges never touches the
// source model's transitions.
func CloneHMMStates(states []*HMMState) []*HMMState {
	remap := make(map[*HMMState]*HMMState, len(states))
	clones := make([]*HMMState, len(states))
	for i, s := range states {
		c := &HMMState{
			Mixtures: s.Mixtures,
			Label:    s.Label,
			ExitLoss: s.ExitLoss,
			Parent:   s.Parent,
		}
		remap[s] = c
		clones[i] = c
	}
	for i, s := range states {
		c := clones[i]
		c.Transitions = make(map[*HMMState]float64, len(s.Transitions))
		for target, cost := range s.Transitions {
			if mapped, ok := remap[target]; ok {
				c.Transitions[mapped] = cost
			} else {
				c.Transitions[target] = cost
			}
		}
		if mapped, ok := remap[c.Parent]; ok {
			c.Parent = mapped
		}
	}
	return clones
}
