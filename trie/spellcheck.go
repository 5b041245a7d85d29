// Copyright (c) 2014 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package trie

// Correction is one spellcheck result: the original token, the trie's
// best replacement, and the alignment loss between them.
type Correction struct {
	Word       string
	Suggestion string
	Loss       float64
}

// Spellcheck runs MatchWordSingle with DefaultCosts over every token in
// text (tokenized with Tokenize), returning one Correction per token.
func (t *Trie) Spellcheck(text string, beam float64) []Correction {
	tokens := Tokenize(text)
	out := make([]Correction, len(tokens))
	costs := DefaultCosts()
	for i, tok := range tokens {
		suggestion, loss := t.MatchWordSingle(tok, costs, beam)
		out[i] = Correction{Word: tok, Suggestion: suggestion, Loss: loss}
	}
	return out
}

// Segment runs MatchWords with SegmentationCosts over a run of
// whitespace-free text, recovering the most likely sequence of
// dictionary words.
func (t *Trie) Segment(text string, beam float64) ([]string, float64) {
	return t.MatchWords(text, SegmentationCosts(), beam)
}
