// Copyright (c) 2014 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package modelcache persists a set of trained digit HMMs to a single
// msgpack-encoded file, stamped with a fresh uuid on every save so one
// training run's cache can be told apart from another's; Save overwrites
// any file already at the given path. A cache entry is a serialized
// tuple per digit.
package modelcache

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/sichanghe/digitrec/hmm"
)

// Entry is the on-disk shape of one cache file: a batch of digit models
// produced by a single train or retrain run, identified by a uuid so
// stale caches can be told apart from a fresh training run over the
// same --output path.
type Entry struct {
	ID     string          `msgpack:"id"`
	Models []hmm.SavedModel `msgpack:"models"`
}

// Save flattens models and writes them to path as a single msgpack
// Entry, returning the uuid stamped on this cache generation.
func Save(path string, models map[int]*hmm.Model) (string, error) {
	labels := make([]int, 0, len(models))
	for l := range models {
		labels = append(labels, l)
	}
	for i := 1; i < len(labels); i++ {
		for j := i; j > 0 && labels[j-1] > labels[j]; j-- {
			labels[j-1], labels[j] = labels[j], labels[j-1]
		}
	}

	entry := Entry{ID: uuid.NewString()}
	for _, l := range labels {
		entry.Models = append(entry.Models, hmm.ToSaved(models[l]))
	}

	data, err := msgpack.Marshal(entry)
	if err != nil {
		return "", fmt.Errorf("modelcache: encoding %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("modelcache: writing %s: %w", path, err)
	}
	return entry.ID, nil
}

// Load reads a msgpack Entry from path and rebuilds the digit models it
// holds, keyed by label.
func Load(path string) (map[int]*hmm.Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("modelcache: reading %s: %w", path, err)
	}
	var entry Entry
	if err := msgpack.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("modelcache: decoding %s: %w", path, err)
	}
	models := make(map[int]*hmm.Model, len(entry.Models))
	for _, sm := range entry.Models {
		models[sm.Label] = hmm.FromSaved(sm)
	}
	return models, nil
}
