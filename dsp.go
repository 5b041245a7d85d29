// Copyright (c) 2014 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package dsp provides processors that can be chained together to build
digital signal processing pipelines.

Digital signals are represented as a sequence of numbers where each number
is associated with a discrete time. Discrete time is represented as a
sequence of integers that correspond to physical time sampled at fixed
intervals.

Processors are chained together using channels. Processors send values of
type Value, a synonym for []float64. Vectors sent between processors should
be treated as read-only since they may be shared; call Value.Copy() before
mutating one in place.

A processor with multiple inputs receives values from other processors on
one channel per input. A processor with multiple outputs sends the same
value to every connected output channel.

While the operations performed by a single processor are synchronous, the
pipeline as a whole is asynchronous: each processor runs in its own
goroutine and processors block only when a channel is full or empty. Package
wav uses it to downmix a multi-channel WAV file to mono: one source stage
per channel feeding an AddScaled combiner.

The design is adapted from https://github.com/ghemawat/stream, which
chains filters over streams of text; this package chains filters over
streams of numeric vectors instead.
*/
package dsp

import (
	"fmt"
	"sync"
)

// Value is a single feature/sample vector flowing between processors.
type Value []float64

// Copy returns a defensive copy of v.
func (v Value) Copy() Value {
	cp := make(Value, len(v))
	copy(cp, v)
	return cp
}

// ToChan is a send-only Value channel.
type ToChan chan<- Value

// FromChan is a receive-only Value channel.
type FromChan <-chan Value

// Processor is implemented by every pipeline stage.
type Processor interface {
	RunProc(in In, out Out) error
}

// In is the set of input channels available to a processor.
type In struct {
	From []FromChan
}

// Out is the set of output channels a processor writes to.
type Out struct {
	To []ToChan
}

// Get returns the input channel at idx.
func (in In) Get(idx int) (FromChan, error) {
	if idx < 0 || idx >= len(in.From) {
		return nil, fmt.Errorf("dsp: no input with index [%d]", idx)
	}
	return in.From[idx], nil
}

// ProcFunc adapts an ordinary function to the Processor interface.
type ProcFunc func(In, Out) error

// RunProc implements Processor.
func (f ProcFunc) RunProc(in In, out Out) error { return f(in, out) }

// CloseOutputs closes every output channel in out.
func CloseOutputs(out Out) {
	for _, o := range out.To {
		close(o)
	}
}

// SendValue sends v to every output channel in out.
func SendValue(v Value, out Out) {
	for _, o := range out.To {
		o <- v
	}
}

func runProc(p Processor, in In, out Out, e *procErrors) {
	e.record(p.RunProc(in, out))
	CloseOutputs(out)
}

// App is a DSP pipeline: a name, a default channel buffer size, and an
// accumulator for the first error raised by any stage.
type App struct {
	Name       string
	BufferSize int
	e          *procErrors
}

// NewApp returns a new, empty pipeline.
func NewApp(name string, bufferSize int) *App {
	return &App{
		Name:       name,
		BufferSize: bufferSize,
		e:          &procErrors{},
	}
}

// Wire creates a channel sized to the app's default buffer size.
func (app *App) Wire() chan Value {
	return make(chan Value, app.BufferSize)
}

// Connect launches p in its own goroutine, wiring ins as its inputs and out
// as its single output.
func (app *App) Connect(p Processor, out ToChan, ins ...FromChan) {
	go runProc(p, In{From: ins}, Out{To: []ToChan{out}}, app.e)
}

// ConnectMulti launches p with multiple named outputs.
func (app *App) ConnectMulti(p Processor, in In, out Out) {
	go runProc(p, in, out, app.e)
}

// Error returns the first error raised by any processor, if any.
func (app *App) Error() error {
	return app.e.getError()
}

// Sequence chains procs so the output of one feeds the input of the next,
// returning a single composite Processor.
func (app *App) Sequence(procs ...Processor) Processor {
	if len(procs) == 1 {
		return procs[0]
	}
	return ProcFunc(func(in In, out Out) error {
		input, err := in.Get(0)
		if err != nil {
			return err
		}
		for _, p := range procs {
			c := app.Wire()
			app.Connect(p, c, input)
			input = c
		}
		for v := range input {
			SendValue(v, out)
		}
		return app.Error()
	})
}

// Run wires procs as a Sequence fed by a closed (empty) input and returns
// the resulting output channel.
func (app *App) Run(procs ...Processor) FromChan {
	p := app.Sequence(procs...)
	in := app.Wire()
	close(in)
	out := app.Wire()
	app.Connect(p, out, in)
	return out
}

// procErrors records the first error raised by any processor in an app.
type procErrors struct {
	mu  sync.Mutex
	err error
}

func (e *procErrors) record(err error) {
	if err == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.err == nil {
		e.err = err
	}
}

func (e *procErrors) getError() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.err
}
