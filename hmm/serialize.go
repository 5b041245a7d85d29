// Copyright (c) 2014 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hmm

import narray "github.com/akualab/narray/na64"

// SavedGaussian is Gaussian flattened to plain slices for persistence.
type SavedGaussian struct {
	Mean   []float64 `msgpack:"mean"`
	Var    []float64 `msgpack:"var"`
	Weight float64   `msgpack:"weight"`
}

// SavedState is one chain position of a Model, flattened to the only
// transitions a trained chain ever has (a self-loop and a single
// forward edge, or an exit loss on the last state) so it can round-trip
// through an encoding that can't represent Go pointer identity.
type SavedState struct {
	Mixtures    []SavedGaussian `msgpack:"mixtures"`
	SelfCost    float64         `msgpack:"self_cost"`
	HasForward  bool            `msgpack:"has_forward"`
	ForwardCost float64         `msgpack:"forward_cost"`
	ExitLoss    float64         `msgpack:"exit_loss"`
}

// SavedModel is a Model flattened for persistence.
type SavedModel struct {
	Label  int          `msgpack:"label"`
	States []SavedState `msgpack:"states"`
}

// ToSaved flattens m into its persistable form.
func ToSaved(m *Model) SavedModel {
	states := make([]SavedState, len(m.States))
	for i, s := range m.States {
		ss := SavedState{ExitLoss: s.ExitLoss}
		if cost, ok := s.Transitions[s]; ok {
			ss.SelfCost = cost
		}
		if i+1 < len(m.States) {
			if cost, ok := s.Transitions[m.States[i+1]]; ok {
				ss.ForwardCost, ss.HasForward = cost, true
			}
		}
		for _, g := range s.Mixtures {
			ss.Mixtures = append(ss.Mixtures, SavedGaussian{
				Mean:   append([]float64(nil), g.Mean.Data...),
				Var:    append([]float64(nil), g.Var.Data...),
				Weight: g.Weight,
			})
		}
		states[i] = ss
	}
	return SavedModel{Label: m.Label, States: states}
}

// FromSaved rebuilds a Model from its persisted form.
func FromSaved(sm SavedModel) *Model {
	states := NewChain(sm.Label, len(sm.States))
	for i, ss := range sm.States {
		s := states[i]
		s.ExitLoss = ss.ExitLoss
		s.Transitions[s] = ss.SelfCost
		if ss.HasForward && i+1 < len(states) {
			s.Transitions[states[i+1]] = ss.ForwardCost
		}
		mixtures := make([]Gaussian, len(ss.Mixtures))
		for j, g := range ss.Mixtures {
			mixtures[j] = Gaussian{
				Mean:   narray.NewArray(append([]float64(nil), g.Mean...), len(g.Mean)),
				Var:    narray.NewArray(append([]float64(nil), g.Var...), len(g.Var)),
				Weight: g.Weight,
			}
		}
		s.Mixtures = mixtures
	}
	return &Model{Label: sm.Label, States: states}
}
