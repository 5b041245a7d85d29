// Copyright (c) 2014 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commands

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sichanghe/digitrec/decoder"
	"github.com/sichanghe/digitrec/hmm"
	"github.com/sichanghe/digitrec/internal/logging"
	"github.com/sichanghe/digitrec/internal/modelcache"
)

// silenceLabel is the model label trainIsolatedModels reserves for the
// silence model among the msgpack-persisted digit models; it never
// collides with a digit label (0-9).
const silenceLabel = 10

var modelsPath string

// loadDigitModels reads a cache, splitting its entries into the digit
// models (sorted by label) and the optional silence model.
func loadDigitModels() ([]*hmm.Model, *hmm.Model, error) {
	path := modelsPath
	if path == "" {
		path = filepath.Join(cfg.CacheDir, "models.msgpack")
	}
	models, err := modelcache.Load(path)
	if err != nil {
		return nil, nil, err
	}

	labels := make([]int, 0, len(models))
	for l := range models {
		labels = append(labels, l)
	}
	sort.Ints(labels)

	var digits []*hmm.Model
	var silence *hmm.Model
	for _, l := range labels {
		if l == silenceLabel {
			silence = models[l]
			continue
		}
		digits = append(digits, models[l])
	}
	if len(digits) == 0 {
		return nil, nil, fmt.Errorf("no digit models found in %s", path)
	}
	return digits, silence, nil
}

// decodeBeam returns the beam width a recognize-* command should use:
// zero (unpruned) under --hard-mode, otherwise the configured threshold.
func decodeBeam() float64 {
	if hardMode {
		return 0
	}
	return cfg.PruningThreshold
}

func formatResult(res decoder.Result) string {
	if !res.OK {
		return "(no path found within the beam)"
	}
	if len(res.Labels) == 0 {
		return "(empty)"
	}
	var b strings.Builder
	for _, l := range res.Labels {
		fmt.Fprintf(&b, "%d", l)
	}
	return b.String()
}

func init() {
	for _, c := range []*cobra.Command{recognizeDigitCmd, recognizePhoneCmd, recognizeUnrestrictedCmd} {
		c.Flags().StringVar(&modelsPath, "models", "", "path to a trained model cache (default: <cache-dir>/models.msgpack)")
	}
}

var recognizeDigitCmd = &cobra.Command{
	Use:   "recognize-digit <wav-file>",
	Short: "Recognize a single isolated spoken digit",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		digits, _, err := loadDigitModels()
		if err != nil {
			return err
		}
		frames, err := featurizeFile(args[0], true)
		if err != nil {
			return err
		}
		gr := hmm.ComposeIsolated(digits)
		res := decoder.Decode(gr, frames, decodeBeam())
		logging.Log.Info("recognize-digit", "file", args[0], "loss", res.Loss, "ok", res.OK)
		return writeResult(formatResult(res))
	},
}

var recognizePhoneCmd = &cobra.Command{
	Use:   "recognize-phone <wav-file>",
	Short: "Recognize a 7-digit telephone number (area code excludes 0/1 at position 0, with an optional pause after it)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		digits, silence, err := loadDigitModels()
		if err != nil {
			return err
		}
		frames, err := featurizeFile(args[0], true)
		if err != nil {
			return err
		}
		gr := hmm.ComposeFixedLength(digits, silence, 3)
		res := decoder.Decode(gr, frames, decodeBeam())
		logging.Log.Info("recognize-phone", "file", args[0], "loss", res.Loss, "ok", res.OK)
		return writeResult(formatResult(res))
	},
}

var recognizeUnrestrictedCmd = &cobra.Command{
	Use:   "recognize-unrestricted <wav-file>",
	Short: "Recognize a connected digit string of unknown length",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		digits, _, err := loadDigitModels()
		if err != nil {
			return err
		}
		frames, err := featurizeFile(args[0], true)
		if err != nil {
			return err
		}
		gr := hmm.ComposeUnrestricted(digits, hmm.HalfLoss)
		res := decoder.Decode(gr, frames, decodeBeam())
		logging.Log.Info("recognize-unrestricted", "file", args[0], "loss", res.Loss, "ok", res.OK)
		return writeResult(formatResult(res))
	},
}
