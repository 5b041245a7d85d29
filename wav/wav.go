// Copyright (c) 2015 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package wav reads and writes mono PCM waveforms used as input to the
// front end, endpointer and recognizer.
package wav

import (
	"fmt"
	"os"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"

	dsp "github.com/sichanghe/digitrec"
)

// Waveform is a single channel of PCM samples normalized to [-1, 1], along
// with the sample rate they were recorded at.
type Waveform struct {
	Samples    []float64
	SampleRate int

	sumx, sumxsq float64
}

// Read decodes a mono or multi-channel RIFF/WAVE file at path. A
// multi-channel source is downmixed to mono by averaging all of its
// channels.
func Read(path string) (*Waveform, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("wav: opening %s: %w", path, err)
	}
	defer f.Close()

	dec := gowav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("wav: %s is not a valid wav file", path)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("wav: decoding %s: %w", path, err)
	}

	w := &Waveform{SampleRate: int(dec.SampleRate)}
	nChans := buf.Format.NumChannels
	if nChans < 1 {
		nChans = 1
	}
	nFrames := len(buf.Data) / nChans
	scale := fullScaleFor(buf.SourceBitDepth)

	if nChans == 1 {
		w.Samples = make([]float64, nFrames)
		for i := range w.Samples {
			w.Samples[i] = float64(buf.Data[i]) / scale
		}
	} else {
		w.Samples = downmix(buf.Data, nChans, nFrames, scale)
	}
	w.stats()
	return w, nil
}

// downmix averages nChans interleaved channels of data into a single
// stream of nFrames samples. It runs the reduction through a dsp.App
// pipeline: one source stage per channel feeding a dsp.AddScaled combiner.
func downmix(data []int, nChans, nFrames int, scale float64) []float64 {
	app := dsp.NewApp("wav downmix", nFrames)

	ins := make([]dsp.FromChan, nChans)
	for c := 0; c < nChans; c++ {
		chanIdx := c
		src := dsp.ProcFunc(func(in dsp.In, out dsp.Out) error {
			for i := 0; i < nFrames; i++ {
				dsp.SendValue(dsp.Value{float64(data[i*nChans+chanIdx]) / scale}, out)
			}
			return nil
		})
		w := app.Wire()
		app.Connect(src, w)
		ins[c] = w
	}

	combo := dsp.AddScaled(1, 1.0/float64(nChans))
	out := app.Wire()
	app.Connect(combo, out, ins...)

	samples := make([]float64, 0, nFrames)
	for v := range out {
		samples = append(samples, v[0])
	}
	return samples
}

func fullScaleFor(bitDepth int) float64 {
	switch bitDepth {
	case 8:
		return 1 << 7
	case 24:
		return 1 << 23
	case 32:
		return 1 << 31
	default:
		return 1 << 15
	}
}

// Write encodes w as a 16-bit mono PCM RIFF/WAVE file at path.
func Write(path string, w *Waveform) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("wav: creating %s: %w", path, err)
	}
	defer f.Close()

	enc := gowav.NewEncoder(f, w.SampleRate, 16, 1, 1)
	ints := make([]int, len(w.Samples))
	for i, s := range w.Samples {
		ints[i] = int(s * (1<<15 - 1))
	}
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 1, SampleRate: w.SampleRate},
		Data:           ints,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("wav: writing %s: %w", path, err)
	}
	return enc.Close()
}

// NumSamples returns the number of samples in w.
func (w *Waveform) NumSamples() int { return len(w.Samples) }

// Duration returns the duration of w in seconds.
func (w *Waveform) Duration() float64 {
	if w.SampleRate == 0 {
		return 0
	}
	return float64(len(w.Samples)) / float64(w.SampleRate)
}
