// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package measures

import (
	"fmt"

	"github.com/AleutianAI/uncertainty/pkg/stats"
)

// Transform functions between a ProductMeasure and the nested/flat
// representations an external optimizer manipulates.
//
// The flat wire format emits, for each dimension in order, first the
// dimension's weights and then its positions, concatenated into one
// sequence. Flatten produces it, Unflatten inverts it, and Decompose
// routes through it to recover nested per-dimension sequences.

// Compose builds a ProductMeasure from nested per-dimension position and
// weight sequences: one DiracMeasure per dimension, zipping each
// position/weight pair into a point.
//
// Returns ErrDimensionMismatch when the outer lengths differ and
// ErrLengthMismatch when any dimension's inner lengths differ.
func Compose(samples, weights [][]float64, opts ...Option) (*ProductMeasure, error) {
	if len(samples) != len(weights) {
		return nil, fmt.Errorf("%w: %d position dimensions, %d weight dimensions",
			ErrDimensionMismatch, len(samples), len(weights))
	}
	dims := make([]*DiracMeasure, len(samples))
	for i := range samples {
		d, err := NewDiracMeasure(samples[i], weights[i], opts...)
		if err != nil {
			return nil, fmt.Errorf("dimension %d: %w", i, err)
		}
		dims[i] = d
	}
	return NewProductMeasure(dims, opts...)
}

// Decompose splits a ProductMeasure back into nested per-dimension
// position and weight sequences, one inner sequence per dimension. It is
// the inverse of Compose, routed through the flat wire format.
func Decompose(c *ProductMeasure) (positions, weights [][]float64, err error) {
	if c == nil {
		return nil, nil, ErrNilMeasure
	}
	w, x, err := stats.NestedSplit(Flatten(c), c.Counts())
	if err != nil {
		return nil, nil, err
	}
	return x, w, nil
}

// Flatten serializes a ProductMeasure into one flat sequence: for each
// dimension in order, its weights followed by its positions.
func Flatten(c *ProductMeasure) []float64 {
	var out []float64
	for _, d := range c.Measures() {
		out = append(out, d.Weights()...)
		out = append(out, d.Coords()...)
	}
	return out
}

// Unflatten rebuilds a ProductMeasure from a flat parameter sequence and
// the per-dimension point counts. It is the inverse of Flatten.
//
// Requires len(params) == 2 * sum(counts); a mismatch fails without
// constructing anything.
func Unflatten(params []float64, counts []int, opts ...Option) (*ProductMeasure, error) {
	w, x, err := stats.NestedSplit(params, counts)
	if err != nil {
		return nil, err
	}
	return Compose(x, w, opts...)
}
