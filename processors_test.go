// Copyright (c) 2014 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dsp

import "testing"

func TestAddScaled(t *testing.T) {

	app := NewApp("Test AddScaled", 100)

	p1 := countTo(20)
	p2 := countTo(20)
	w1 := app.Wire()
	w2 := app.Wire()
	app.Connect(p1, w1)
	app.Connect(p2, w2)

	combo := AddScaled(1, 0.5)
	out := app.Wire()
	app.Connect(combo, out, w1, w2)

	var n int
	for v := range out {
		CompareFloats(t, float64(n), v[0], "averaged value", 0.0001)
		n++
	}
	if n != 20 {
		t.Fatalf("expected 20 frames, got %d", n)
	}

	if app.Error() != nil {
		t.Fatalf("error: %s", app.Error())
	}
}
