// Copyright (c) 2014 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package decoder implements the token-passing beam search that
// recognizes a label sequence from a composed hmm.Grammar: the
// generalization of the reference implementation's single-chain
// align_sequence_new to an arbitrary multi-model graph with cycles
// through its non-emitting junctions.
package decoder

import (
	"math"

	"github.com/sichanghe/digitrec/hmm"
)

// DefaultBeamWidth is a mid-range pruning threshold (in log units),
// comfortably inside the 1500-4000 range that works well for this
// grammar's state count without letting a noisy utterance blow the
// search wide open.
const DefaultBeamWidth = 2500.0

// maxNonEmittingSweeps bounds the epsilon-closure fixed-point iteration
// per frame; composed grammars are small enough that convergence well
// within this many sweeps is expected, and a cycle that somehow never
// settles must not hang the decoder.
const maxNonEmittingSweeps = 64

// edge is a directed, cost-weighted transition read out of an
// hmm.HMMState's own Transitions map.
type edge struct {
	from *hmm.HMMState
	cost float64
}

// labelNode is one link in a token's emitted-label chain, most recent
// label first; walking prev reconstructs the recognized sequence.
type labelNode struct {
	label int
	prev  *labelNode
}

// token is the best path reaching a state so far: its accumulated loss
// and the label chain recording every digit boundary crossed.
type token struct {
	loss   float64
	labels *labelNode
}

// Result is one decode's outcome.
type Result struct {
	Labels []int
	Loss   float64
	OK     bool // false means the end state was never reached ("no path")
}

// Decode runs the token-passing beam search for frames over gr,
// returning the recognized label sequence. beamWidth <= 0 disables
// pruning, matching the decoder/trie invariant that beam 0 must return
// the exact trellis minimum.
func Decode(gr *hmm.Grammar, frames hmm.Frames, beamWidth float64) Result {
	if len(frames) == 0 {
		return Result{OK: true}
	}

	states := allStates(gr)
	incoming := buildIncoming(states)
	var nonEmitting []*hmm.HMMState
	for _, s := range states {
		if s.IsNonEmitting() {
			nonEmitting = append(nonEmitting, s)
		}
	}

	tokens := map[*hmm.HMMState]*token{}
	for _, s := range gr.Start {
		tokens[s] = &token{}
	}
	settleNonEmitting(tokens, incoming, nonEmitting)

	for _, frame := range frames {
		next := map[*hmm.HMMState]*token{}
		minLoss := math.Inf(1)
		for _, s := range states {
			if s.IsNonEmitting() {
				continue
			}
			best := math.Inf(1)
			var bestTok *token
			for _, e := range incoming[s] {
				pt, ok := tokens[e.from]
				if !ok {
					continue
				}
				if v := pt.loss + e.cost; v < best {
					best, bestTok = v, pt
				}
			}
			if bestTok == nil {
				continue
			}
			loss := best + hmm.EmissionLoss(s, frame)
			if loss < minLoss {
				minLoss = loss
			}
			next[s] = &token{loss: loss, labels: bestTok.labels}
		}

		tokens = pruneTokens(next, minLoss, beamWidth)
		settleNonEmitting(tokens, incoming, nonEmitting)
	}

	final, ok := tokens[gr.End]
	if !ok {
		return Result{OK: false, Loss: hmm.InfLoss}
	}
	var labels []int
	for n := final.labels; n != nil; n = n.prev {
		labels = append(labels, n.label)
	}
	for i, j := 0, len(labels)-1; i < j; i, j = i+1, j-1 {
		labels[i], labels[j] = labels[j], labels[i]
	}
	return Result{Labels: labels, Loss: final.loss, OK: true}
}

// pruneTokens keeps only tokens whose loss is within beamWidth of the
// frame's global minimum; beamWidth <= 0 disables pruning.
func pruneTokens(tokens map[*hmm.HMMState]*token, minLoss, beamWidth float64) map[*hmm.HMMState]*token {
	if beamWidth <= 0 {
		return tokens
	}
	threshold := minLoss + beamWidth
	out := make(map[*hmm.HMMState]*token, len(tokens))
	for s, t := range tokens {
		if t.loss <= threshold {
			out[s] = t
		}
	}
	return out
}

// settleNonEmitting applies non-emitting (epsilon) transitions to a
// fixed point: a token may cross several junctions in zero frame-time,
// including around a cycle (the unrestricted grammar's single junction
// both starts and ends every digit loop). Crossing an edge whose source
// is an emitting state (a digit's last state) records that digit's label
// onto the destination token's chain.
func settleNonEmitting(tokens map[*hmm.HMMState]*token, incoming map[*hmm.HMMState][]edge, nonEmitting []*hmm.HMMState) {
	for iter := 0; iter < maxNonEmittingSweeps; iter++ {
		changed := false
		for _, node := range nonEmitting {
			best := math.Inf(1)
			var bestEdge edge
			var bestTok *token
			for _, e := range incoming[node] {
				pt, ok := tokens[e.from]
				if !ok {
					continue
				}
				if v := pt.loss + e.cost; v < best {
					best, bestEdge, bestTok = v, e, pt
				}
			}
			if bestTok == nil {
				continue
			}
			if cur, ok := tokens[node]; ok && cur.loss <= best {
				continue
			}
			labels := bestTok.labels
			if bestEdge.from.Label != hmm.NoLabel {
				labels = &labelNode{label: bestEdge.from.Label, prev: bestTok.labels}
			}
			tokens[node] = &token{loss: best, labels: labels}
			changed = true
		}
		if !changed {
			break
		}
	}
}

// allStates collects every state reachable in gr: the start junctions,
// every emitting state, the end junction, and then any junction reached
// only through transitions (such as the fixed-length grammar's
// between-digit junctions), in order of discovery.
func allStates(gr *hmm.Grammar) []*hmm.HMMState {
	seen := map[*hmm.HMMState]bool{}
	var out []*hmm.HMMState
	add := func(s *hmm.HMMState) {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	for _, s := range gr.Start {
		add(s)
	}
	for _, s := range gr.Emitting {
		add(s)
	}
	add(gr.End)
	for i := 0; i < len(out); i++ {
		for to := range out[i].Transitions {
			add(to)
		}
	}
	return out
}

// buildIncoming inverts every state's forward Transitions map into a
// per-destination incoming-edge list. Because states is a deterministic
// slice and each source state contributes at most one edge to a given
// destination, a destination's edge list is ordered reproducibly by its
// sources' position in states -- giving the decoder's "ties favor the
// earliest-inserted predecessor" rule a concrete, run-to-run-stable
// meaning without depending on Go's randomized map iteration order.
func buildIncoming(states []*hmm.HMMState) map[*hmm.HMMState][]edge {
	incoming := map[*hmm.HMMState][]edge{}
	for _, s := range states {
		for to, cost := range s.Transitions {
			incoming[to] = append(incoming[to], edge{from: s, cost: cost})
		}
	}
	return incoming
}
