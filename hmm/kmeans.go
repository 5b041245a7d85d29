// Copyright (c) 2014 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hmm

import narray "github.com/akualab/narray/na64"

// No off-the-shelf clustering package fits this shape of problem, so the
// mixture-splitting K-means used by segmental re-estimation is
// implemented directly here on top of *narray.NArray arithmetic, the
// same vector type every hmm Frames entry uses. math.go hand-rolls its
// FFT the same way, rather than importing one.

// kmeansResult holds one K-means pass's output: per-cluster mean,
// diagonal covariance, and frame count.
type kmeansResult struct {
	means []*narray.NArray
	vars  []*narray.NArray
	count []int
}

// splitMeans produces 2*len(prev) seed means by perturbing every prior
// mean by ×0.9 and ×1.1, the standard LBG-style mixture-doubling policy.
func splitMeans(prev []*narray.NArray) []*narray.NArray {
	out := make([]*narray.NArray, 0, 2*len(prev))
	for _, m := range prev {
		lo := narray.Scale(nil, m, 0.9)
		hi := narray.Scale(nil, m, 1.1)
		out = append(out, lo, hi)
	}
	return out
}

// globalMean returns the arithmetic mean of every frame in data.
func globalMean(data []*narray.NArray) *narray.NArray {
	if len(data) == 0 {
		return nil
	}
	mean := narray.New(len(data[0].Data))
	for _, row := range data {
		narray.Add(mean, mean, row)
	}
	narray.Scale(mean, mean, 1/float64(len(data)))
	return mean
}

// kmeans clusters data into len(seeds) clusters, seeded with seeds, and
// runs until assignments stop changing or maxIters is reached.
func kmeans(data []*narray.NArray, seeds []*narray.NArray, maxIters int) ([]int, kmeansResult) {
	k := len(seeds)
	means := make([]*narray.NArray, k)
	for i, s := range seeds {
		means[i] = narray.Scale(nil, s, 1)
	}

	assign := make([]int, len(data))
	for iter := 0; iter < maxIters; iter++ {
		changed := false
		for i, row := range data {
			best, bestDist := 0, squaredDist(row, means[0])
			for c := 1; c < k; c++ {
				if dist := squaredDist(row, means[c]); dist < bestDist {
					best, bestDist = c, dist
				}
			}
			if assign[i] != best {
				changed = true
				assign[i] = best
			}
		}
		if iter > 0 && !changed {
			break
		}
		recomputeMeans(data, assign, means)
	}

	res := kmeansResult{means: means, vars: make([]*narray.NArray, k), count: make([]int, k)}
	groups := make([][]*narray.NArray, k)
	for i, c := range assign {
		groups[c] = append(groups[c], data[i])
		res.count[c]++
	}
	for c := range groups {
		res.vars[c] = diagCovariance(groups[c], means[c])
	}
	return assign, res
}

func squaredDist(a, b *narray.NArray) float64 {
	diff := narray.Sub(nil, a, b)
	return narray.Dot(diff, diff)
}

func recomputeMeans(data []*narray.NArray, assign []int, means []*narray.NArray) {
	d := len(means[0].Data)
	sums := make([]*narray.NArray, len(means))
	counts := make([]int, len(means))
	for c := range sums {
		sums[c] = narray.New(d)
	}
	for i, row := range data {
		c := assign[i]
		narray.Add(sums[c], sums[c], row)
		counts[c]++
	}
	for c, sum := range sums {
		if counts[c] == 0 {
			continue // keep the previous (seed) mean for an empty cluster
		}
		narray.Scale(sum, sum, 1/float64(counts[c]))
		means[c] = sum
	}
}

// diagCovariance returns the diagonal of the sample covariance of
// cluster (plus VarFloor on every entry), or an identity (all-ones)
// diagonal when the cluster has exactly one frame, the degeneracy
// fallback for a single-point variance estimate.
func diagCovariance(cluster []*narray.NArray, mean *narray.NArray) *narray.NArray {
	d := len(mean.Data)
	if len(cluster) <= 1 {
		v := narray.New(d)
		for i := range v.Data {
			v.Data[i] = 1
		}
		return v
	}
	v := narray.New(d)
	for _, row := range cluster {
		diff := narray.Sub(nil, row, mean)
		narray.Mul(diff, diff, diff)
		narray.Add(v, v, diff)
	}
	n := float64(len(cluster) - 1)
	for i := range v.Data {
		v.Data[i] = v.Data[i]/n + VarFloor
		if v.Data[i] < VarFloor {
			v.Data[i] = VarFloor
		}
	}
	return v
}
