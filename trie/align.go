// Copyright (c) 2014 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package trie

import "math"

// AlignCosts parameterizes the DTW-style alignment used by
// MatchWordSingle and MatchWords.
type AlignCosts struct {
	// Left is the cost of an insertion in the dictionary word (same trie
	// node, next input character).
	Left float64
	// Diag is the cost of a substitution (parent node, next input
	// character, characters differ).
	Diag float64
	// Down is the cost of a deletion from the dictionary word (parent
	// node, same input position).
	Down float64
	// Transition is the cost charged at each word boundary in
	// MatchWords; ignored by MatchWordSingle.
	Transition float64
}

// DefaultCosts returns the spellcheck defaults: unit left/diag/down cost,
// zero transition cost.
func DefaultCosts() AlignCosts {
	return AlignCosts{Left: 1, Diag: 1, Down: 1, Transition: 0}
}

// SegmentationCosts returns the boosted costs recommended for
// connected-text segmentation, which significantly reduce over-splitting
// relative to DefaultCosts.
func SegmentationCosts() AlignCosts {
	return AlignCosts{Left: 16, Diag: 16, Down: 16, Transition: 8}
}

const inf = math.MaxFloat64 / 2

// wordEnd links a column where a word boundary was taken (after reaching
// leaf) back to the previous boundary, so the word sequence can be
// recovered by walking backward from the final column.
type wordEnd struct {
	leaf *TrieNode
	col  int
	prev *wordEnd
}

// column holds the DP state for every trie node at one input position.
type column struct {
	loss []float64
	end  []*wordEnd // word-end chain active at each node, multi-word mode only
}

func newColumn(n int) *column {
	c := &column{loss: make([]float64, n), end: make([]*wordEnd, n)}
	for i := range c.loss {
		c.loss[i] = inf
	}
	return c
}

// align runs the shared DTW sweep over t. If multiWord is true, leaf
// nodes spawn a virtual transition back to root at each column (word
// boundary), and the returned columns carry wordEnd chains usable to
// recover the segmentation; otherwise alignment stays within a single
// trie chain.
func align(nodes []*TrieNode, input []rune, costs AlignCosts, beam float64, multiWord bool) []*column {
	cols := make([]*column, len(input))
	prev := newColumn(len(nodes))
	prev.loss[nodes[0].id] = 0 // root, before any input consumed

	for t, c := range input {
		cur := newColumn(len(nodes))
		for _, n := range nodes {
			id := n.id
			best := inf
			var bestEnd *wordEnd

			if v := prev.loss[id] + costs.Left; v < best {
				best, bestEnd = v, prev.end[id]
			}
			if !n.IsRoot() {
				p := n.Parent
				sub := costs.Diag
				if n.Value == c {
					sub = 0
				}
				if v := prev.loss[p.id] + sub; v < best {
					best, bestEnd = v, prev.end[p.id]
				}
				if v := cur.loss[p.id] + costs.Down; v < best {
					best, bestEnd = v, cur.end[p.id]
				}
			}
			cur.loss[id] = best
			cur.end[id] = bestEnd
		}

		if multiWord {
			rootID := nodes[0].id
			for _, n := range nodes {
				if !n.IsLeaf() {
					continue
				}
				v := cur.loss[n.id] + costs.Transition
				if v < cur.loss[rootID] {
					cur.loss[rootID] = v
					cur.end[rootID] = &wordEnd{leaf: n, col: t, prev: cur.end[n.id]}
				}
			}
		}

		pruneColumn(cur, beam)
		cols[t] = cur
		prev = cur
	}
	return cols
}

// pruneColumn drops (sets to +inf) every entry whose loss exceeds the
// column minimum by more than beam. beam <= 0 disables pruning.
func pruneColumn(c *column, beam float64) {
	if beam <= 0 {
		return
	}
	min := inf
	for _, v := range c.loss {
		if v < min {
			min = v
		}
	}
	if min >= inf {
		return
	}
	threshold := min + beam
	for i, v := range c.loss {
		if v > threshold {
			c.loss[i] = inf
			c.end[i] = nil
		}
	}
}

// MatchWordSingle finds the trie word with minimum total edit cost
// against word under costs, pruning each column to beam (<=0 disables
// pruning). It returns the matched word and its loss. An empty trie or
// empty word returns ("", +Inf).
func (t *Trie) MatchWordSingle(word string, costs AlignCosts, beam float64) (string, float64) {
	runes := []rune(word)
	if len(runes) == 0 {
		return "", inf
	}
	nodes := t.flatten()
	cols := align(nodes, runes, costs, beam, false)
	last := cols[len(cols)-1]

	bestLoss := inf
	var bestNode *TrieNode
	for _, n := range nodes {
		if !n.IsLeaf() {
			continue
		}
		if v := last.loss[n.id]; v < bestLoss {
			bestLoss, bestNode = v, n
		}
	}
	if bestNode == nil {
		return "", inf
	}
	return bestNode.Word(), bestLoss
}

// MatchWords segments text into a sequence of trie words whose
// concatenation best aligns with text, charging costs.Transition at each
// word boundary. It returns the word sequence and the total loss.
func (t *Trie) MatchWords(text string, costs AlignCosts, beam float64) ([]string, float64) {
	runes := []rune(text)
	if len(runes) == 0 {
		return nil, 0
	}
	nodes := t.flatten()
	cols := align(nodes, runes, costs, beam, true)
	last := cols[len(cols)-1]
	root := nodes[0]

	loss := last.loss[root.id]
	end := last.end[root.id]
	if end == nil {
		// No word boundary ever reached root in the final column; no
		// segmentation was found.
		return nil, inf
	}

	var words []string
	for e := end; e != nil; e = e.prev {
		words = append(words, e.leaf.Word())
	}
	for i, j := 0, len(words)-1; i < j; i, j = i+1, j-1 {
		words[i], words[j] = words[j], words[i]
	}
	return words, loss
}
