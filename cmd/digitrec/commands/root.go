// Copyright (c) 2014 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package commands implements the digitrec CLI surface: subcommands for
// training, retraining, digit/phone/unrestricted recognition, and
// dictionary spellcheck/segmentation, grounded on haivivi/giztoy's
// cobra-based cmd/geartest/commands and cmd/doubaospeech/commands.
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sichanghe/digitrec/internal/config"
	"github.com/sichanghe/digitrec/internal/logging"
)

var (
	cfgFile          string
	gui              bool
	outputPath       string
	pruningThreshold float64
	nGaussians       int
	hardMode         bool

	cfg config.Config
)

var rootCmd = &cobra.Command{
	Use:   "digitrec",
	Short: "Offline template-based digit recognition and spellcheck toolkit",
	Long: `digitrec trains and decodes per-digit hidden Markov models for
isolated-digit, fixed-length telephone-number, and unrestricted
digit-string recognition, and runs a lexical trie's DTW-style alignment
for spellcheck and text segmentation.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if gui {
			return fmt.Errorf("digitrec: -g/--gui is not supported in this build (plot rendering is out of scope)")
		}
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return err
		}
		// Re-read LOG_LEVEL now that a .env file may have set it.
		logging.Init()
		if pruningThreshold > 0 {
			cfg.PruningThreshold = pruningThreshold
		}
		if nGaussians > 0 {
			cfg.MaxGaussians = nGaussians
		}
		return nil
	},
}

// Execute runs the digitrec CLI, returning any error the chosen
// subcommand reports.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to a YAML config file (default: built-in defaults)")
	rootCmd.PersistentFlags().BoolVarP(&gui, "gui", "g", false, "render results in a GUI (unsupported; always rejected)")
	rootCmd.PersistentFlags().StringVarP(&outputPath, "output", "o", "", "output path (default: stdout)")
	rootCmd.PersistentFlags().Float64VarP(&pruningThreshold, "pruning-threshold", "t", 0, "decoder beam width in nats (default: config value, 2500)")
	rootCmd.PersistentFlags().IntVarP(&nGaussians, "n-gaussians", "n", 0, "mixture components per state at training convergence (default: config value, 4)")
	rootCmd.PersistentFlags().BoolVarP(&hardMode, "hard-mode", "m", false, "disable beam pruning for an exact (slower) decode, overriding --pruning-threshold")

	rootCmd.AddCommand(trainCmd, retrainCmd)
	rootCmd.AddCommand(recognizeDigitCmd, recognizePhoneCmd, recognizeUnrestrictedCmd)
	rootCmd.AddCommand(spellcheckCmd, segmentCmd)
}
