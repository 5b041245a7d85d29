// Copyright (c) 2014 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config loads the toolkit's trainer/decoder hyperparameters
// from a YAML file whose path the caller supplies. Load first applies a
// .env file, if present, to the process environment, which is where the
// structured logger's LOG_LEVEL is read from. Grounded on Conceptual-Machines/magda-api's internal/config.Load and
// haivivi/giztoy's YAML-backed CLI request files.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds every knob the toolkit exposes: training shape, decoder
// pruning, front-end sampling, and where on disk the toolkit's
// recordings/dictionary/cache live.
type Config struct {
	// Training.
	NStates      int `yaml:"n_states"`
	MaxGaussians int `yaml:"max_gaussians"`

	// Decoding.
	PruningThreshold float64 `yaml:"pruning_threshold"`
	InsertionPenalty float64 `yaml:"insertion_penalty"`

	// Front end.
	SampleRate int `yaml:"sample_rate"`

	// Paths.
	RecordingsDir  string `yaml:"recordings_dir"`
	DictionaryPath string `yaml:"dictionary_path"`
	CacheDir       string `yaml:"cache_dir"`
}

// Default returns the toolkit's standard configuration: 5 states and 4
// Gaussians per digit model, a 2500 log-unit decoder beam, and 16kHz
// sampling.
func Default() Config {
	return Config{
		NStates:          5,
		MaxGaussians:     4,
		PruningThreshold: 2500,
		InsertionPenalty: 0.6931471805599453, // -log(0.5), hmm.HalfLoss
		SampleRate:       16000,
		RecordingsDir:    "recordings",
		DictionaryPath:   "dictionary.txt",
		CacheDir:         ".cache",
	}
}

// Load reads environment overrides from a .env file (if present, never
// fatal when absent) and then a YAML config file at path, falling back
// to Default for any field the file omits. An empty path skips the YAML
// read entirely and returns Default with only .env applied.
func Load(path string) (Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("config: loading .env: %w", err)
	}

	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("config: reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return cfg, nil
}
