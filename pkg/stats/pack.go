// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package stats

import (
	"fmt"

	"github.com/AleutianAI/uncertainty/pkg/validation"
)

// Grid enumeration order
//
// Pack and Unpack share one enumeration convention: grid point k selects
// index i_d from dimension d such that
//
//	k = i_0 + i_1*n_0 + i_2*n_0*n_1 + ...
//
// i.e. dimension 0 varies fastest. Both directions derive their indexing
// from this single formula, so round-tripping is an identity by
// construction rather than by convention.

// GridSize returns the number of joint grid points implied by the
// per-dimension point counts, i.e. their product.
//
// Returns ErrInvalidCounts when counts is empty or contains a
// non-positive entry.
func GridSize(counts []int) (int, error) {
	if len(counts) == 0 {
		return 0, fmt.Errorf("%w: counts is empty", ErrInvalidCounts)
	}
	total := 1
	for d, n := range counts {
		if n <= 0 {
			return 0, fmt.Errorf("%w: counts[%d] = %d", ErrInvalidCounts, d, n)
		}
		total *= n
	}
	return total, nil
}

// Pack enumerates the Cartesian product of the per-dimension sequences,
// returning one tuple per joint grid point in canonical order (dimension 0
// varies fastest).
//
// Pack([[1,2],[3,4]]) = [[1,3],[2,3],[1,4],[2,4]].
//
// An empty dims, or any empty dimension, yields an empty result.
func Pack(dims [][]float64) [][]float64 {
	if len(dims) == 0 {
		return nil
	}
	total := 1
	for _, dim := range dims {
		total *= len(dim)
	}
	if total == 0 {
		return nil
	}

	out := make([][]float64, total)
	for k := 0; k < total; k++ {
		tuple := make([]float64, len(dims))
		rem := k
		for d, dim := range dims {
			tuple[d] = dim[rem%len(dim)]
			rem /= len(dim)
		}
		out[k] = tuple
	}
	return out
}

// Unpack recovers the per-dimension sequences from a joint grid in
// canonical order, given each dimension's point count. It is the inverse
// of Pack for any sequence that actually is a product grid.
//
// Returns an error when counts is invalid, when the number of tuples does
// not equal the product of counts, or when a tuple's width does not equal
// the dimension count.
func Unpack(joint [][]float64, counts []int) ([][]float64, error) {
	total, err := GridSize(counts)
	if err != nil {
		return nil, err
	}
	if len(joint) != total {
		return nil, fmt.Errorf("%w: joint has %d tuples, counts imply %d",
			validation.ErrLengthMismatch, len(joint), total)
	}
	for k, tuple := range joint {
		if len(tuple) != len(counts) {
			return nil, fmt.Errorf("%w: joint[%d] has %d coordinates, want %d",
				validation.ErrLengthMismatch, k, len(tuple), len(counts))
		}
	}

	dims := make([][]float64, len(counts))
	stride := 1
	for d, n := range counts {
		dims[d] = make([]float64, n)
		for j := 0; j < n; j++ {
			// With dimension 0 fastest, support j of dimension d first
			// appears at grid index j*stride.
			dims[d][j] = joint[j*stride][d]
		}
		stride *= n
	}
	return dims, nil
}

// NestedSplit splits a flat parameter sequence into per-dimension weight
// and position sequences. The wire format emits, for each dimension in
// order, first its weights then its positions; NestedSplit is the inverse
// of that packing.
//
// Requires len(flat) == 2 * sum(counts).
func NestedSplit(flat []float64, counts []int) (weights, positions [][]float64, err error) {
	if _, err := GridSize(counts); err != nil {
		return nil, nil, err
	}
	sum := 0
	for _, n := range counts {
		sum += n
	}
	if len(flat) != 2*sum {
		return nil, nil, fmt.Errorf("%w: flat has %d elements, counts imply %d",
			validation.ErrLengthMismatch, len(flat), 2*sum)
	}

	weights = make([][]float64, len(counts))
	positions = make([][]float64, len(counts))
	off := 0
	for d, n := range counts {
		weights[d] = append([]float64(nil), flat[off:off+n]...)
		positions[d] = append([]float64(nil), flat[off+n:off+2*n]...)
		off += 2 * n
	}
	return weights, positions, nil
}
