// Copyright (c) 2014 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package endpoint

import "testing"

func silentChunk() []int16 { return make([]int16, 320) }

func loudChunk() []int16 {
	c := make([]int16, 320)
	for i := range c {
		c[i] = 20000
	}
	return c
}

func TestEndpointerWarmupDiscarded(t *testing.T) {
	ep := NewEndpointer()
	for i := 0; i < WarmupChunks; i++ {
		d := ep.Process(loudChunk())
		if !d.Discard {
			t.Fatalf("expected chunk %d to be discarded during warm-up", i)
		}
	}
	if ep.State() != Pending {
		t.Fatalf("expected Pending after warm-up, got %s", ep.State())
	}
}

func TestEndpointerTransitionsToGoing(t *testing.T) {
	ep := NewEndpointer()
	for i := 0; i < WarmupChunks; i++ {
		ep.Process(silentChunk())
	}
	for i := 0; i < 10; i++ {
		ep.Process(silentChunk())
	}

	var d Decision
	for i := 0; i < 5; i++ {
		d = ep.Process(loudChunk())
		if d.State == Going {
			break
		}
	}
	if d.State != Going {
		t.Fatalf("expected Going, got %s", d.State)
	}
	if len(d.Emit) == 0 {
		t.Fatal("expected emitted chunks on speech onset")
	}
}

func TestEndpointerStopsAfterMaxPause(t *testing.T) {
	ep := NewEndpointer()
	for i := 0; i < WarmupChunks; i++ {
		ep.Process(silentChunk())
	}
	for i := 0; i < 10; i++ {
		ep.Process(silentChunk())
	}
	for i := 0; i < 10; i++ {
		ep.Process(loudChunk())
	}

	// The smoothed level keeps the classifier reporting speech for a few
	// chunks into the silence before the pause count starts.
	var d Decision
	pauseChunks := MaxPauseMs/ChunkMs + 5
	for i := 0; i < pauseChunks; i++ {
		d = ep.Process(silentChunk())
		if d.State == Stopping {
			break
		}
	}
	if d.State != Stopping {
		t.Fatalf("expected Stopping after max pause, got %s", d.State)
	}
}
