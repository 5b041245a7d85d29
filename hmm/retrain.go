// Copyright (c) 2014 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hmm

// Sequence is one connected-digit-string training utterance: the true
// digit labels spoken, in order, and one or more recordings of it.
type Sequence struct {
	Labels   []int
	Examples []Frames
}

// chainSegment marks the [start,end) range of a SequenceChain's States
// contributed by a single digit (or by the silence padding, labeled
// NoLabel).
type chainSegment struct {
	label int
	start int
	end   int
}

// SequenceChain is a single left-to-right state chain built by
// concatenating cloned digit models end to end and padding both ends
// with a silence model, grounded on hmm_states_from_sequence in
// original_source/speech/project6/trncontspch.py. Like any chain built
// from hmm.NewChain, every state only has a self-loop and a forward
// transition to its immediate successor, so the existing dense
// viterbiAlign applies to it unchanged.
type SequenceChain struct {
	States   []*HMMState
	Segments []chainSegment
}

// BuildSequenceChain wires clones of digitsByLabel[labels[i]] end to end
// (the previous digit's last state transitions into the next digit's
// first state at the previous digit's exit cost) and pads the result
// with a cloned silence model on each side.
func BuildSequenceChain(labels []int, digitsByLabel map[int]*Model, silence *Model) *SequenceChain {
	startSilence := CloneHMMStates(silence.States)
	endSilence := CloneHMMStates(silence.States)

	segmentStates := make([][]*HMMState, len(labels))
	for i, l := range labels {
		segmentStates[i] = CloneHMMStates(digitsByLabel[l].States)
	}
	for i := 1; i < len(segmentStates); i++ {
		prevLast := segmentStates[i-1][len(segmentStates[i-1])-1]
		nextFirst := segmentStates[i][0]
		prevLast.Transitions[nextFirst] = prevLast.ExitLoss
	}

	startLast := startSilence[len(startSilence)-1]
	if len(segmentStates) > 0 {
		startLast.Transitions[segmentStates[0][0]] = startLast.ExitLoss
		lastDigit := segmentStates[len(segmentStates)-1]
		lastState := lastDigit[len(lastDigit)-1]
		lastState.Transitions[endSilence[0]] = lastState.ExitLoss
	} else {
		startLast.Transitions[endSilence[0]] = startLast.ExitLoss
	}

	chain := &SequenceChain{}
	chain.States = append(chain.States, startSilence...)
	chain.Segments = append(chain.Segments, chainSegment{label: NoLabel, start: 0, end: len(startSilence)})
	offset := len(startSilence)
	for i, states := range segmentStates {
		chain.States = append(chain.States, states...)
		chain.Segments = append(chain.Segments, chainSegment{label: labels[i], start: offset, end: offset + len(states)})
		offset += len(states)
	}
	chain.States = append(chain.States, endSilence...)
	chain.Segments = append(chain.Segments, chainSegment{label: NoLabel, start: offset, end: offset + len(endSilence)})
	return chain
}

// FramesByLabel walks path (a state-index-per-frame Viterbi alignment
// against chain's States) and groups frames into contiguous per-digit
// runs, keyed by the digit label that run was aligned to. Silence runs
// are dropped. path must be non-decreasing over state indices, which
// every viterbiAlign result over a SequenceChain's States satisfies.
func FramesByLabel(chain *SequenceChain, frames Frames, path []int) map[int][]Frames {
	out := map[int][]Frames{}
	if len(path) == 0 {
		return out
	}
	segIdx := 0
	labelAt := func(stateIdx int) int {
		for segIdx < len(chain.Segments)-1 && stateIdx >= chain.Segments[segIdx].end {
			segIdx++
		}
		return chain.Segments[segIdx].label
	}

	runStart := 0
	curLabel := labelAt(path[0])
	for i := 1; i <= len(path); i++ {
		var lbl int
		if i < len(path) {
			lbl = labelAt(path[i])
		}
		if i == len(path) || lbl != curLabel {
			if curLabel != NoLabel {
				out[curLabel] = append(out[curLabel], frames[runStart:i])
			}
			runStart = i
			if i < len(path) {
				curLabel = lbl
			}
		}
	}
	return out
}

// RetrainConfig controls embedded retraining's convergence behavior, on
// top of the per-round segmental K-means training parameters.
type RetrainConfig struct {
	TrainConfig
	MaxIterations       int
	ConvergenceFraction float64
}

// DefaultRetrainConfig caps embedded retraining at 20 iterations and
// treats a round whose frame-label churn drops below 5% as converged.
func DefaultRetrainConfig() RetrainConfig {
	return RetrainConfig{
		TrainConfig:         DefaultTrainConfig(),
		MaxIterations:       20,
		ConvergenceFraction: 0.05,
	}
}

// Retrain bootstraps one model per label from isolated-digit examples,
// then alternates between (a) aligning every continuous-speech sequence
// against the current models wrapped in a SequenceChain and pooling the
// resulting per-digit frame runs back in with the isolated examples, and
// (b) retraining every model from the pooled pool. It stops once the
// frame-level state assignments barely move between rounds, or after
// MaxIterations, grounded on train_digit_sequences and
// tolerate_alignment_diff in
// original_source/speech/project6/trncontspch.py.
func Retrain(isolated map[int][]Frames, sequences []Sequence, silence *Model, cfg RetrainConfig) map[int]*Model {
	labels := sortedLabels(isolated)

	models := map[int]*Model{}
	digitFeatures := map[int][]Frames{}
	for _, l := range labels {
		digitFeatures[l] = isolated[l]
	}
	var prevFlat []int

	for iter := 0; iter < cfg.MaxIterations; iter++ {
		for _, l := range labels {
			models[l] = Train(l, digitFeatures[l], cfg.TrainConfig)
		}

		nextFeatures := map[int][]Frames{}
		for _, l := range labels {
			nextFeatures[l] = append([]Frames(nil), isolated[l]...)
		}

		var flat []int
		for _, seq := range sequences {
			chain := BuildSequenceChain(seq.Labels, models, silence)
			for _, ex := range seq.Examples {
				path, _ := viterbiAlign(ex, chain.States)
				flat = append(flat, path...)
				for l, fs := range FramesByLabel(chain, ex, path) {
					nextFeatures[l] = append(nextFeatures[l], fs...)
				}
			}
		}

		converged := prevFlat != nil && churnFraction(flat, prevFlat) < cfg.ConvergenceFraction
		prevFlat = flat
		digitFeatures = nextFeatures
		if converged {
			break
		}
	}

	return models
}

func churnFraction(a, b []int) float64 {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
		return 1
	}
	diff := 0
	for i := range a {
		if a[i] != b[i] {
			diff++
		}
	}
	return float64(diff) / float64(len(a))
}

func sortedLabels(m map[int][]Frames) []int {
	labels := make([]int, 0, len(m))
	for l := range m {
		labels = append(labels, l)
	}
	for i := 1; i < len(labels); i++ {
		for j := i; j > 0 && labels[j-1] > labels[j]; j-- {
			labels[j-1], labels[j] = labels[j], labels[j-1]
		}
	}
	return labels
}
