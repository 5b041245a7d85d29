// Copyright (c) 2014 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package trie

import (
	"bufio"
	"os"
	"strings"
)

// LoadDictionary reads path as UTF-8 lines, one lowercase word per line,
// strips leading/trailing whitespace, skips empty lines, and inserts
// every remaining word into a fresh Trie.
func LoadDictionary(path string) (*Trie, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t := NewTrie()
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		word := strings.TrimSpace(scanner.Text())
		if word == "" {
			continue
		}
		t.Insert(strings.ToLower(word))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return t, nil
}

// Tokenize splits a "typos/story" line into lowercase tokens, stripping
// surrounding punctuation from each one, as used by spellcheck input.
func Tokenize(line string) []string {
	fields := strings.Fields(line)
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		tok := strings.Trim(strings.ToLower(f), ".,;:!?\"'()[]{}")
		if tok != "" {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}
