// Copyright (c) 2014 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/sichanghe/digitrec/hmm"
	"github.com/sichanghe/digitrec/internal/logging"
	"github.com/sichanghe/digitrec/internal/modelcache"
)

func sortedKeys(m map[int][]hmm.Frames) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// trainIsolatedModels fits one HMM per isolated digit label present in
// rec, plus a dedicated silence model under silenceLabel when silence
// recordings were supplied.
func trainIsolatedModels(rec *recordings, trainCfg hmm.TrainConfig) map[int]*hmm.Model {
	models := map[int]*hmm.Model{}
	for _, l := range sortedKeys(rec.Isolated) {
		models[l] = hmm.Train(l, rec.Isolated[l], trainCfg)
	}
	if len(rec.Silence) > 0 {
		models[silenceLabel] = hmm.Train(silenceLabel, rec.Silence, trainCfg)
	}
	return models
}

func defaultCachePath() string {
	if outputPath != "" {
		return outputPath
	}
	return filepath.Join(cfg.CacheDir, "models.msgpack")
}

func saveModels(models map[int]*hmm.Model) (string, string, error) {
	path := defaultCachePath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", "", err
	}
	id, err := modelcache.Save(path, models)
	return path, id, err
}

var trainCmd = &cobra.Command{
	Use:   "train <recordings-dir>",
	Short: "Train isolated-digit HMMs by segmental K-means over labeled WAV recordings",
	Long: `train scans <recordings-dir> for WAV files named "<digit>_<idx>.wav"
(isolated digit examples) and "sil_<idx>.wav" (silence examples), fits a
5-state, 4-Gaussian-per-state HMM to each digit by segmental K-means, and
writes the resulting models to a msgpack cache (-o/--output, default
<cache-dir>/models.msgpack).`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rec, err := loadRecordings(args[0])
		if err != nil {
			return err
		}
		if len(rec.Isolated) == 0 {
			return fmt.Errorf("train: no isolated digit recordings found in %s", args[0])
		}

		trainCfg := hmm.TrainConfig{NStates: cfg.NStates, MaxGaussians: cfg.MaxGaussians}
		models := trainIsolatedModels(rec, trainCfg)

		path, id, err := saveModels(models)
		if err != nil {
			return err
		}
		logging.Log.Info("trained digit models", "labels", len(models), "cache", path, "id", id)
		return writeResult(fmt.Sprintf("trained %d models -> %s (cache id %s)", len(models), path, id))
	},
}

var retrainCmd = &cobra.Command{
	Use:   "retrain <recordings-dir>",
	Short: "Retrain digit HMMs against connected-digit-string recordings via embedded Viterbi realignment",
	Long: `retrain bootstraps isolated-digit and silence models exactly as
train does, then alternates Viterbi-aligning every connected-digit-string
recording (named "seq_<digits>_<idx>.wav", e.g. "seq_4071_0.wav") against
a silence-padded embedded chain with re-estimating each digit from the
frames the alignment assigns to it, until fewer than 5% of the frames
change their assigned state between rounds (or 20 iterations pass).`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rec, err := loadRecordings(args[0])
		if err != nil {
			return err
		}
		if len(rec.Silence) == 0 {
			return fmt.Errorf("retrain: at least one silence recording (sil_<idx>.wav) is required")
		}
		if len(rec.Sequences) == 0 {
			return fmt.Errorf("retrain: no connected-digit-string recordings found (want seq_<digits>_<idx>.wav)")
		}

		trainCfg := hmm.TrainConfig{NStates: cfg.NStates, MaxGaussians: cfg.MaxGaussians}
		bootstrap := trainIsolatedModels(rec, trainCfg)
		silence, ok := bootstrap[silenceLabel]
		if !ok {
			return fmt.Errorf("retrain: silence model failed to train")
		}

		retrainCfg := hmm.DefaultRetrainConfig()
		retrainCfg.TrainConfig = trainCfg
		retrained := hmm.Retrain(rec.Isolated, rec.Sequences, silence, retrainCfg)
		retrained[silenceLabel] = silence

		path, id, err := saveModels(retrained)
		if err != nil {
			return err
		}
		logging.Log.Info("retrained digit models", "labels", len(retrained), "cache", path, "id", id)
		return writeResult(fmt.Sprintf("retrained %d models -> %s (cache id %s)", len(retrained), path, id))
	},
}
