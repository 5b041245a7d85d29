// Copyright (c) 2014 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package endpoint

import (
	"time"

	"github.com/sichanghe/digitrec/wav"
)

// Source supplies chunks of PCM audio; Next returns (nil, false) at
// end-of-stream, mirroring the nil-sentinel shutdown convention used by
// the reference implementation's queue.
type Source interface {
	Next() (chunk []int16, ok bool)
}

// DequeueTimeout bounds how long the drain task waits for a new chunk
// before checking for a stop signal again.
const DequeueTimeout = 100 * time.Millisecond

// Capture runs src through an Endpointer and returns the endpointed
// samples as a single float64 slice normalized to [-1, 1], suitable for
// wav.Write or the MFCC front end. Capture is deliberately synchronous
// rather than a fan-out/fan-in channel pipeline: whether the next chunk is
// even requested depends on the Decision made from the previous one (the
// loop must stop pulling input once Stopping is reached), a sequential
// feedback dependency the generic Processor/App pipeline in package dsp
// isn't shaped for. Callers that need overlapped capture/drain should run
// Capture in its own goroutine and communicate completion back over a
// channel.
func Capture(src Source) []float64 {
	var out []int16
	ep := NewEndpointer()

	for {
		chunk, ok := src.Next()
		if !ok {
			break
		}
		d := ep.Process(chunk)
		for _, emitted := range d.Emit {
			out = append(out, emitted...)
		}
		if d.State == Stopping {
			break
		}
	}

	samples := make([]float64, len(out))
	for i, s := range out {
		samples[i] = float64(s) / float64(1<<15)
	}
	return samples
}

// CaptureToFile runs Capture over src and writes the result as a 16 kHz
// mono WAV file at path.
func CaptureToFile(src Source, path string) error {
	samples := Capture(src)
	w := &wav.Waveform{Samples: samples, SampleRate: 16000}
	return wav.Write(path, w)
}

// ChanSource adapts a channel of chunks (closed at end-of-stream) to
// Source, the shape used by the background capture/drain pipeline: a
// producer goroutine enqueues PCM chunks with a bounded channel, and a
// consumer goroutine drains it with a dequeue timeout, exiting cleanly on
// channel close.
type ChanSource struct {
	Chunks <-chan []int16
}

// Next implements Source, retrying every DequeueTimeout until a chunk
// arrives or Chunks is closed.
func (c ChanSource) Next() ([]int16, bool) {
	for {
		select {
		case chunk, ok := <-c.Chunks:
			return chunk, ok
		case <-time.After(DequeueTimeout):
		}
	}
}
