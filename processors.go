// Copyright (c) 2014 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dsp

import "github.com/gonum/floats"

// AddScaled sums frames from every input and scales the result by alpha.
// Blocks until a frame is available from every input; panics if input
// frame sizes differ.
func AddScaled(size int, alpha float64) Processor {
	return ProcFunc(func(in In, out Out) error {
		for {
			v := make(Value, size)
			for i := range in.From {
				w, ok := <-in.From[i]
				if !ok {
					return nil
				}
				floats.Add(v, w)
			}
			floats.Scale(alpha, v)
			SendValue(v, out)
		}
	})
}
