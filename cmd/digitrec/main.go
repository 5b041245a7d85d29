// Copyright (c) 2014 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command digitrec is the toolkit's CLI: it trains and retrains digit
// HMMs, recognizes isolated digits, fixed-length phone numbers, and
// unrestricted digit strings, and runs the lexical trie's spellcheck and
// segmentation over free text.
package main

import (
	"os"

	"github.com/sichanghe/digitrec/cmd/digitrec/commands"
	"github.com/sichanghe/digitrec/internal/logging"
)

func main() {
	logging.Init()
	if err := commands.Execute(); err != nil {
		logging.Log.Error("digitrec: command failed", "error", err)
		os.Exit(1)
	}
}
