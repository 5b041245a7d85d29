// Copyright (c) 2014 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hmm

import (
	"math"

	narray "github.com/akualab/narray/na64"
)

// Frames is one utterance's boosted-MFCC feature matrix: T frames of D
// dimensions each (T x 39 for the default front end), with each frame
// held as an *narray.NArray rather than a plain slice.
type Frames []*narray.NArray

// TrainConfig parameterizes segmental K-means training.
type TrainConfig struct {
	NStates      int // left-to-right states per digit model, default 5
	MaxGaussians int // mixture components at convergence, default 4
}

// DefaultTrainConfig returns the toolkit's standard 5-state,
// 4-Gaussian-per-state configuration.
func DefaultTrainConfig() TrainConfig {
	return TrainConfig{NStates: 5, MaxGaussians: 4}
}

// Model is a trained digit HMM: a left-to-right chain of NStates
// emitting states, owned by the HMM that trained them (graph composition
// works on a CloneHMMStates copy, never these states directly).
type Model struct {
	Label  int
	States []*HMMState
}

// maxItersPerMixtureCount bounds the re-alignment/re-estimation loop at
// each mixture count, guarding against an alignment that oscillates
// forever instead of converging.
const maxItersPerMixtureCount = 10

// Train fits one HMM to examples using segmental K-means: uniform
// initialization, iterative K-means mixture re-estimation (doubling
// 1→2→4→… once alignment stabilizes) interleaved with Viterbi
// re-alignment.
func Train(label int, examples []Frames, cfg TrainConfig) *Model {
	n := cfg.NStates
	states := NewChain(label, n)

	boundaries := make([][]int, len(examples))
	for i, ex := range examples {
		boundaries[i] = uniformBoundaries(len(ex), n)
	}

	for g := 1; g <= cfg.MaxGaussians; g *= 2 {
		for iter := 0; iter < maxItersPerMixtureCount; iter++ {
			reestimate(states, examples, boundaries, g)
			newBoundaries := realign(states, examples, n)
			converged := boundariesEqual(newBoundaries, boundaries)
			boundaries = newBoundaries
			if converged {
				break
			}
		}
	}
	return &Model{Label: label, States: states}
}

// uniformBoundaries partitions a length-L example into n equal slices,
// assigning every frame to a state before the first real alignment.
func uniformBoundaries(length, n int) []int {
	b := make([]int, n+1)
	for i := 0; i <= n; i++ {
		b[i] = int(math.Trunc(float64(i) * float64(length) / float64(n)))
	}
	return b
}

// boundariesFromPath converts a per-frame state assignment into n+1
// frame-index boundaries, padding with the sequence length if path never
// reaches every state (too few frames).
func boundariesFromPath(path []int, n int) []int {
	r := []int{0}
	prev := path[0]
	for idx, s := range path {
		if s != prev {
			r = append(r, idx)
			prev = s
		}
	}
	r = append(r, len(path))
	for len(r) < n+1 {
		r = append(r, len(path))
	}
	if len(r) > n+1 {
		r = r[:n+1]
	}
	return r
}

func boundariesEqual(a, b [][]int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if len(a[i]) != len(b[i]) {
			return false
		}
		for j := range a[i] {
			if a[i][j] != b[i][j] {
				return false
			}
		}
	}
	return true
}

// realign runs Viterbi alignment of every example against states and
// returns the resulting per-example state boundaries.
func realign(states []*HMMState, examples []Frames, n int) [][]int {
	out := make([][]int, len(examples))
	for i, ex := range examples {
		path, _ := viterbiAlign(ex, states)
		out[i] = boundariesFromPath(path, n)
	}
	return out
}

// reestimate recomputes every state's mixture parameters (via K-means
// clustering into g components, splitting prior means 1→2→4→…) and
// self-loop/forward transition costs from the current frame-to-state
// boundaries.
func reestimate(states []*HMMState, examples []Frames, boundaries [][]int, g int) {
	n := len(states)
	nSamples := len(examples)

	for s := 0; s < n; s++ {
		var stateData []*narray.NArray
		occupancy := 0
		for i, ex := range examples {
			from, to := boundaries[i][s], boundaries[i][s+1]
			stateData = append(stateData, ex[from:to]...)
			occupancy += to - from
		}
		if len(stateData) > 0 {
			seeds := seedMeans(states[s], g, stateData)
			_, res := kmeans(stateData, seeds, 20)
			mixtures := make([]Gaussian, g)
			total := float64(len(stateData))
			for c := 0; c < g; c++ {
				mixtures[c] = Gaussian{
					Mean:   res.means[c],
					Var:    res.vars[c],
					Weight: float64(res.count[c]) / total,
				}
			}
			states[s].Mixtures = mixtures
		}

		selfProb := 1.0
		if occupancy > 0 {
			selfProb = float64(occupancy-nSamples) / float64(occupancy)
			if selfProb < 0 {
				selfProb = 0
			}
		}
		transitions := map[*HMMState]float64{states[s]: -math.Log(math.Max(selfProb, minProb))}
		if s+1 < n {
			forwardProb := 1 - selfProb
			transitions[states[s+1]] = -math.Log(math.Max(forwardProb, minProb))
		} else {
			exitProb := 1 - selfProb
			states[s].ExitLoss = -math.Log(math.Max(exitProb, minProb))
		}
		states[s].Transitions = transitions
	}
}

// minProb floors a re-estimated transition probability so its negative
// log never overflows to +Inf for a legitimately observed transition.
const minProb = 1e-6

// seedMeans picks the K-means initialization for state's g-component
// fit: the pooled-data global mean for g==1; the existing g means if
// already fit at this mixture count (re-iterating after non-convergence);
// or each existing mean split ×0.9/×1.1 when doubling from g/2.
func seedMeans(state *HMMState, g int, fallbackData []*narray.NArray) []*narray.NArray {
	prev := make([]*narray.NArray, len(state.Mixtures))
	for i, m := range state.Mixtures {
		prev[i] = m.Mean
	}
	switch {
	case g == 1:
		return []*narray.NArray{globalMean(fallbackData)}
	case len(prev) == g:
		return prev
	default:
		return splitMeans(prev)
	}
}
