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
	"strconv"
	"strings"

	narray "github.com/akualab/narray/na64"

	dsp "github.com/sichanghe/digitrec"
	"github.com/sichanghe/digitrec/endpoint"
	"github.com/sichanghe/digitrec/hmm"
	"github.com/sichanghe/digitrec/wav"
)

// chunkSource replays a slice of PCM samples to an endpoint.Endpointer
// in fixed-size chunks, letting a batch-mode WAV file drive the same
// streaming silence-trimming path a live microphone would.
type chunkSource struct {
	samples []int16
	pos     int
	size    int
}

func (c *chunkSource) Next() ([]int16, bool) {
	if c.pos >= len(c.samples) {
		return nil, false
	}
	end := c.pos + c.size
	if end > len(c.samples) {
		end = len(c.samples)
	}
	chunk := c.samples[c.pos:end]
	c.pos = end
	return chunk, true
}

func toInt16(samples []float64) []int16 {
	out := make([]int16, len(samples))
	for i, s := range samples {
		v := s * float64(1<<15)
		switch {
		case v > 32767:
			v = 32767
		case v < -32768:
			v = -32768
		}
		out[i] = int16(v)
	}
	return out
}

// featurizeWaveform extracts hmm.Frames from a waveform's samples,
// optionally running them through an Endpointer first to trim leading
// and trailing silence before MFCC extraction.
func featurizeWaveform(w *wav.Waveform, trim bool) hmm.Frames {
	samples := w.Samples
	if trim {
		src := &chunkSource{samples: toInt16(samples), size: 320}
		samples = endpoint.Capture(src)
	}

	fcfg := dsp.DefaultFrontendConfig()
	fcfg.SampleRate = w.SampleRate
	mfcc := dsp.Frontend(samples, fcfg)

	frames := make(hmm.Frames, len(mfcc))
	for i, row := range mfcc {
		frames[i] = narray.NewArray(append([]float64(nil), row...), len(row))
	}
	return frames
}

// featurizeFile reads path as a WAV file and featurizes it.
func featurizeFile(path string, trim bool) (hmm.Frames, error) {
	w, err := wav.Read(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return featurizeWaveform(w, trim), nil
}

// parseDigitString converts a string of decimal digits ("0123") into
// per-digit labels, the shape hmm.Sequence.Labels expects.
func parseDigitString(s string) ([]int, error) {
	if s == "" {
		return nil, fmt.Errorf("empty digit string")
	}
	labels := make([]int, len(s))
	for i, r := range s {
		if r < '0' || r > '9' {
			return nil, fmt.Errorf("%q: not a digit string", s)
		}
		labels[i] = int(r - '0')
	}
	return labels, nil
}

// recordings is what loadRecordings gathers from a training directory:
// isolated per-digit examples, silence examples, and connected-digit
// sequences grouped by their true label string.
type recordings struct {
	Isolated  map[int][]hmm.Frames
	Silence   []hmm.Frames
	Sequences []hmm.Sequence
}

// loadRecordings scans dir for WAV files and buckets them by filename
// convention: "<digit>_<idx>.wav" for an isolated digit (e.g. "0_3.wav"),
// "sil_<idx>.wav" for a silence example, and "seq_<digits>_<idx>.wav"
// (e.g. "seq_4071_0.wav") for one recording of a connected digit string.
// Multiple recordings of the same digit string are grouped into a single
// hmm.Sequence with multiple Examples.
func loadRecordings(dir string) (*recordings, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	out := &recordings{Isolated: map[int][]hmm.Frames{}}
	sequenceFrames := map[string][]hmm.Frames{}
	var sequenceOrder []string

	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(strings.ToLower(e.Name()), ".wav") {
			continue
		}
		name := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		path := filepath.Join(dir, e.Name())

		switch {
		case strings.HasPrefix(name, "seq_"):
			parts := strings.SplitN(name, "_", 3)
			if len(parts) < 2 {
				return nil, fmt.Errorf("%s: expected seq_<digits>_<idx>.wav", e.Name())
			}
			digits := parts[1]
			if _, err := parseDigitString(digits); err != nil {
				return nil, fmt.Errorf("%s: %w", e.Name(), err)
			}
			frames, err := featurizeFile(path, false)
			if err != nil {
				return nil, err
			}
			if _, ok := sequenceFrames[digits]; !ok {
				sequenceOrder = append(sequenceOrder, digits)
			}
			sequenceFrames[digits] = append(sequenceFrames[digits], frames)

		case strings.HasPrefix(name, "sil"):
			frames, err := featurizeFile(path, false)
			if err != nil {
				return nil, err
			}
			out.Silence = append(out.Silence, frames)

		default:
			parts := strings.SplitN(name, "_", 2)
			label, err := strconv.Atoi(parts[0])
			if err != nil {
				return nil, fmt.Errorf("%s: unrecognized recording name (want <digit>_<idx>.wav, sil_<idx>.wav, or seq_<digits>_<idx>.wav)", e.Name())
			}
			frames, err := featurizeFile(path, false)
			if err != nil {
				return nil, err
			}
			out.Isolated[label] = append(out.Isolated[label], frames)
		}
	}

	sort.Strings(sequenceOrder)
	for _, digits := range sequenceOrder {
		labels, _ := parseDigitString(digits)
		out.Sequences = append(out.Sequences, hmm.Sequence{Labels: labels, Examples: sequenceFrames[digits]})
	}
	return out, nil
}

// writeResult sends content to outputPath, or to stdout when outputPath
// is empty or "-".
func writeResult(content string) error {
	if outputPath == "" || outputPath == "-" {
		fmt.Println(content)
		return nil
	}
	return os.WriteFile(outputPath, []byte(content+"\n"), 0644)
}
