// Copyright (c) 2014 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hmm

import (
	"github.com/gonum/graph"
	concrete "github.com/gonum/graph/concrete"
)

// Grammar is a composed recognition graph: the decoder walks it starting
// from Start and finishes when a token reaches End. Emitting holds every
// acoustic state reachable in the grammar, for decoder initialization.
// Topology is mirrored into a gonum/graph.DirectedGraph (edge weights are
// transition costs) so the composed grammar can be inspected or traversed
// with gonum's graph algorithms independently of the HMMState.Transitions
// maps the decoder actually walks.
type Grammar struct {
	Start    []*HMMState
	End      *HMMState
	Emitting []*HMMState
	Topology *concrete.DirectedGraph
}

// topologyBuilder mirrors HMMState transitions into a gonum/graph as
// states are wired together.
type topologyBuilder struct {
	g      *concrete.DirectedGraph
	nodeOf map[*HMMState]graph.Node
}

func newTopologyBuilder() *topologyBuilder {
	return &topologyBuilder{g: concrete.NewDirectedGraph(), nodeOf: map[*HMMState]graph.Node{}}
}

func (b *topologyBuilder) node(s *HMMState) graph.Node {
	if n, ok := b.nodeOf[s]; ok {
		return n
	}
	n := b.g.NewNode()
	b.nodeOf[s] = n
	return n
}

// link records a cost-weighted transition from -> to both in the
// HMMState's own transition map (what the decoder walks) and in the
// mirrored gonum graph (what introspection tools walk).
func (b *topologyBuilder) link(from, to *HMMState, cost float64) {
	from.Transitions[to] = cost
	edge := concrete.Edge{T: b.node(from), H: b.node(to)}
	b.g.AddDirectedEdge(edge, cost)
}

// HalfLoss is −log(0.5), the default unrestricted-grammar transition
// penalty, discouraging spurious digit insertions without being as harsh
// as a full-probability cost.
var HalfLoss = 0.6931471805599453

// ComposeIsolated builds the isolated-digit grammar: one non-emitting
// start state with a zero-cost edge into every digit's first state, and
// one non-emitting end state each digit's last state reaches at its exit
// cost. Grounded on the fixed-length/unrestricted builders' shape, since
// the reference implementation does not show isolated-digit composition
// as a distinct function.
func ComposeIsolated(digits []*Model) *Grammar {
	tb := newTopologyBuilder()
	start := NewNonEmitting()
	end := NewNonEmitting()

	var emitting []*HMMState
	for _, m := range digits {
		states := CloneHMMStates(m.States)
		tb.link(start, states[0], 0)
		tb.link(states[len(states)-1], end, states[len(states)-1].ExitLoss)
		emitting = append(emitting, states...)
	}
	return &Grammar{Start: []*HMMState{start}, End: end, Emitting: emitting, Topology: tb.g}
}

// FixedLengthDigitSet returns the allowed digits for position pos (0-based)
// of a fixed-length telephone number: positions other than 0 allow every
// digit 0-9; position 0 excludes 0 and 1, since area codes never start
// with either.
func FixedLengthDigitSet(pos int, digits []*Model) []*Model {
	if pos != 0 {
		return digits
	}
	var out []*Model
	for _, m := range digits {
		if m.Label > 1 {
			out = append(out, m)
		}
	}
	return out
}

// ComposeFixedLength builds the 7-digit telephone grammar (the first
// three positions form the area code): a chain of 8 non-emitting
// junctions S0..S7, one parallel digit HMM per allowed digit between
// each pair, and a silence arm from junction areaCodeBoundary
// (conventionally 3) to the next junction, in parallel with that
// position's digit arms, allowing a pause before the remaining digits.
func ComposeFixedLength(digits []*Model, silence *Model, areaCodeBoundary int) *Grammar {
	n := 7
	tb := newTopologyBuilder()
	junctions := make([]*HMMState, n+1)
	for i := range junctions {
		junctions[i] = NewNonEmitting()
	}

	var emitting []*HMMState
	for pos := 0; pos < n; pos++ {
		for _, m := range FixedLengthDigitSet(pos, digits) {
			states := CloneHMMStates(m.States)
			tb.link(junctions[pos], states[0], 0)
			tb.link(states[len(states)-1], junctions[pos+1], states[len(states)-1].ExitLoss)
			emitting = append(emitting, states...)
		}
	}

	if silence != nil && areaCodeBoundary >= 0 && areaCodeBoundary < n {
		sil := CloneHMMStates(silence.States)
		tb.link(junctions[areaCodeBoundary], sil[0], 0)
		tb.link(sil[len(sil)-1], junctions[areaCodeBoundary+1], sil[len(sil)-1].ExitLoss)
		emitting = append(emitting, sil...)
	}

	return &Grammar{Start: []*HMMState{junctions[0]}, End: junctions[n], Emitting: emitting, Topology: tb.g}
}

// ComposeUnrestricted builds the unrestricted-digit-string grammar: a
// single non-emitting junction with a zero-cost edge into every digit's
// start, and from each digit's end back to the junction at cost
// exit-loss + insertionPenalty, the knob that trades off digit insertion
// against deletion errors.
func ComposeUnrestricted(digits []*Model, insertionPenalty float64) *Grammar {
	tb := newTopologyBuilder()
	junction := NewNonEmitting()

	var emitting []*HMMState
	for _, m := range digits {
		states := CloneHMMStates(m.States)
		tb.link(junction, states[0], 0)
		tb.link(states[len(states)-1], junction, states[len(states)-1].ExitLoss+insertionPenalty)
		emitting = append(emitting, states...)
	}
	return &Grammar{Start: []*HMMState{junction}, End: junction, Emitting: emitting, Topology: tb.g}
}
