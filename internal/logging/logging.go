// Copyright (c) 2014 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package logging configures the toolkit's single package-level
// structured logger, verbosity-controlled by the LOG_LEVEL environment
// variable, using charmbracelet/log's leveled key/value logger rather
// than the bare "log" package's unstructured Printf — a better fit for
// the level-filtered, field-tagged logging a training/decoding run wants.
package logging

import (
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// Log is the toolkit's shared logger. Call Init once at process startup
// (the cmd/digitrec entrypoint does this) to pick up LOG_LEVEL; every
// package below simply calls logging.Log.
var Log = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	Level:           log.InfoLevel,
})

// Init sets Log's level from the LOG_LEVEL environment variable
// (debug/info/warn/error, case-insensitive; default info) and reports an
// unrecognized value at warn level rather than failing startup.
func Init() {
	level := strings.ToLower(strings.TrimSpace(os.Getenv("LOG_LEVEL")))
	switch level {
	case "", "info":
		Log.SetLevel(log.InfoLevel)
	case "debug":
		Log.SetLevel(log.DebugLevel)
	case "warn", "warning":
		Log.SetLevel(log.WarnLevel)
	case "error":
		Log.SetLevel(log.ErrorLevel)
	default:
		Log.SetLevel(log.InfoLevel)
		Log.Warn("unrecognized LOG_LEVEL, defaulting to info", "value", level)
	}
}
