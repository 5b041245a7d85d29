// Copyright (c) 2015 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wav

import "testing"

func TestDownmixAveragesChannels(t *testing.T) {
	// Two interleaved channels, left = 1.0 full scale, right = -1.0 full
	// scale, every frame; the average should land on silence.
	const scale = float64(1 << 15)
	data := []int{1 << 15, -(1 << 15), 1 << 15, -(1 << 15)}

	got := downmix(data, 2, 2, scale)
	if len(got) != 2 {
		t.Fatalf("expected 2 frames, got %d", len(got))
	}
	for i, v := range got {
		if v < -1e-9 || v > 1e-9 {
			t.Errorf("frame %d: expected ~0, got %f", i, v)
		}
	}
}

func TestDownmixPreservesCommonSignal(t *testing.T) {
	const scale = float64(1 << 15)
	// Both channels carry the same signal; the average should equal it.
	data := []int{8000, 8000, -4000, -4000}

	got := downmix(data, 2, 2, scale)
	want := []float64{8000 / scale, -4000 / scale}
	for i, w := range want {
		if diff := got[i] - w; diff > 1e-9 || diff < -1e-9 {
			t.Errorf("frame %d: expected %f, got %f", i, w, got[i])
		}
	}
}
