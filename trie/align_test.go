// Copyright (c) 2014 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package trie

import "testing"

func TestMatchWordSingleExactZeroLoss(t *testing.T) {
	tr := NewTrie()
	words := []string{"battle", "banana", "bat"}
	tr.InsertAll(words)

	for _, w := range words {
		got, loss := tr.MatchWordSingle(w, DefaultCosts(), 0)
		if got != w {
			t.Errorf("word %q: expected exact match, got %q", w, got)
		}
		if loss != 0 {
			t.Errorf("word %q: expected loss 0, got %f", w, loss)
		}
	}
}

// TestMatchWordSingleSpellcheck is the spellcheck scenario from the
// toolkit's testable-properties list: dictionary {battle, banana, bat},
// input "batle", beam 3, expect "battle" with loss 1.
func TestMatchWordSingleSpellcheck(t *testing.T) {
	tr := NewTrie()
	tr.InsertAll([]string{"battle", "banana", "bat"})

	got, loss := tr.MatchWordSingle("batle", DefaultCosts(), 3)
	if got != "battle" {
		t.Fatalf("expected %q, got %q", "battle", got)
	}
	if loss != 1 {
		t.Fatalf("expected loss 1, got %f", loss)
	}
}

// TestMatchWordsSegmentation is the segmentation scenario from the
// toolkit's testable-properties list: dictionary {a, an, and, apple},
// input "anapple", beam 5, transition_loss 0, expect ["an","apple"] loss 0.
func TestMatchWordsSegmentation(t *testing.T) {
	tr := NewTrie()
	tr.InsertAll([]string{"a", "an", "and", "apple"})

	costs := AlignCosts{Left: 1, Diag: 1, Down: 1, Transition: 0}
	words, loss := tr.MatchWords("anapple", costs, 5)
	if loss != 0 {
		t.Fatalf("expected loss 0, got %f", loss)
	}
	if len(words) != 2 || words[0] != "an" || words[1] != "apple" {
		t.Fatalf("expected [an apple], got %v", words)
	}
}

func TestMatchWordsEmptyInput(t *testing.T) {
	tr := NewTrie()
	tr.InsertAll([]string{"a", "an"})
	words, loss := tr.MatchWords("", DefaultCosts(), 5)
	if words != nil || loss != 0 {
		t.Fatalf("expected (nil, 0) for empty input, got (%v, %f)", words, loss)
	}
}

func TestMatchWordSingleUnmatchableOnEmptyTrie(t *testing.T) {
	tr := NewTrie()
	got, loss := tr.MatchWordSingle("anything", DefaultCosts(), 0)
	if got != "" || loss != inf {
		t.Fatalf("expected (\"\", +Inf) on empty trie, got (%q, %f)", got, loss)
	}
}

func TestBeamZeroDisablesPruning(t *testing.T) {
	tr := NewTrie()
	tr.InsertAll([]string{"battle", "banana", "bat", "cat", "dog", "elephant"})
	got, loss := tr.MatchWordSingle("bat", DefaultCosts(), 0)
	if got != "bat" || loss != 0 {
		t.Fatalf("expected exact match with beam 0, got (%q, %f)", got, loss)
	}
}
