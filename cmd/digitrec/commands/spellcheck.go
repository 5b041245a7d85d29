// Copyright (c) 2014 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sichanghe/digitrec/internal/logging"
	"github.com/sichanghe/digitrec/trie"
)

var (
	dictionaryPath string
	trieBeam       float64
)

func init() {
	for _, c := range []*cobra.Command{spellcheckCmd, segmentCmd} {
		c.Flags().StringVar(&dictionaryPath, "dictionary", "", "path to a newline-delimited word list (default: config dictionary_path)")
		c.Flags().Float64Var(&trieBeam, "beam", 0, "trie alignment beam width (default: 0, unpruned)")
	}
}

func dictionary() (*trie.Trie, error) {
	path := dictionaryPath
	if path == "" {
		path = cfg.DictionaryPath
	}
	return trie.LoadDictionary(path)
}

var spellcheckCmd = &cobra.Command{
	Use:   "spellcheck <text>",
	Short: "Suggest the nearest dictionary word for each word of text",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := dictionary()
		if err != nil {
			return err
		}
		corrections := t.Spellcheck(args[0], trieBeam)

		var b strings.Builder
		for _, c := range corrections {
			if c.Word == c.Suggestion {
				fmt.Fprintf(&b, "%s\n", c.Word)
				continue
			}
			fmt.Fprintf(&b, "%s -> %s (loss %.2f)\n", c.Word, c.Suggestion, c.Loss)
		}
		logging.Log.Info("spellcheck", "words", len(corrections))
		return writeResult(strings.TrimRight(b.String(), "\n"))
	},
}

var segmentCmd = &cobra.Command{
	Use:   "segment <run-on-text>",
	Short: "Split whitespace-free text into the most likely sequence of dictionary words",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := dictionary()
		if err != nil {
			return err
		}
		words, loss := t.Segment(args[0], trieBeam)
		logging.Log.Info("segment", "words", len(words), "loss", loss)
		return writeResult(fmt.Sprintf("%s (loss %.2f)", strings.Join(words, " "), loss))
	},
}
