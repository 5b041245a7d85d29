// Copyright (c) 2014 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package endpoint classifies 20ms audio frames as speech or silence and
// drives the start/stop state machine that turns a continuous PCM stream
// into endpointed utterances.
package endpoint

import "math"

const (
	forgetFactor  = 1.2
	startingDB    = 15.0
	continuingDB  = 2.0
	stoppingDB    = -20.0
	weakGain      = 0.05
	strongGain    = 0.8
)

// FrameEnergydB returns the energy of an int16 PCM frame in decibels,
// 10*log10(<x,x>/n), with overflow-safe accumulation in 64-bit integers.
// The mean power is floored at 1e-10, so an all-zero frame reads as
// -100 dB rather than -Inf and the trackers stay finite.
func FrameEnergydB(frame []int16) float64 {
	const minMeanPower = 1e-10
	n := len(frame)
	if n == 0 {
		return 0
	}
	var power int64
	for _, s := range frame {
		v := int64(s)
		power += v * v
	}
	mean := float64(power) / float64(n)
	if mean < minMeanPower {
		mean = minMeanPower
	}
	return 10.0 * math.Log10(mean)
}

// adjustTowards nudges original towards updated: strongGain is applied
// when moving in the direction the caller designates "with" the drift
// (increasing or decreasing), weakGain otherwise.
func adjustTowards(original, updated, gainIfInc, gainIfDec float64) float64 {
	delta := updated - original
	gain := gainIfDec
	if delta > 0 {
		gain = gainIfInc
	}
	return original + gain*delta
}

// Classifier tracks level/background/foreground energy and reports, frame
// by frame, whether the signal is currently speech.
type Classifier struct {
	level      float64
	background float64
	foreground float64
	speaking   bool
	primed     bool
}

// NewClassifier returns a classifier with no prior state; the first call
// to Classify seeds level and background directly from that frame's
// energy (spec's "latest variant" behavior).
func NewClassifier() *Classifier {
	return &Classifier{}
}

// Classify folds frame's energy into the tracker state and returns
// whether the frame is classified as speech.
func (c *Classifier) Classify(frame []int16) bool {
	current := FrameEnergydB(frame)
	return c.ClassifyEnergy(current)
}

// ClassifyEnergy is Classify's core, taking a precomputed dB energy value;
// exposed so callers with their own energy source (e.g. tests, or a
// feature pipeline that already computed it) can skip recomputing it.
func (c *Classifier) ClassifyEnergy(current float64) bool {
	if !c.primed {
		c.level = current
		c.background = current
		c.primed = true
	}

	c.level = (c.level*forgetFactor + current) / (forgetFactor + 1.0)

	if c.speaking {
		if c.level-c.background < continuingDB || c.level-c.foreground < stoppingDB {
			c.speaking = false
			if c.background > c.level {
				c.background = c.level
			}
		} else {
			c.foreground = adjustTowards(c.foreground, c.level, strongGain, weakGain)
		}
	}
	if !c.speaking {
		if c.level-c.background >= startingDB {
			c.speaking = true
			c.foreground = c.level
		} else {
			c.background = adjustTowards(c.background, c.level, weakGain, strongGain)
		}
	}
	return c.speaking
}

// Level, Background and Foreground expose the tracker's current values,
// mainly for diagnostics and tests.
func (c *Classifier) Level() float64      { return c.level }
func (c *Classifier) Background() float64 { return c.background }
func (c *Classifier) Foreground() float64 { return c.foreground }
