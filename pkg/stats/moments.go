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
	"github.com/AleutianAI/uncertainty/pkg/validation"
)

// Mean returns the weighted mean of positions.
//
// A nil weights sequence means equal weighting. Otherwise weights must
// parallel positions; the mean is sum(w*x) / sum(w).
//
// Returns ErrZeroMass when the weights sum to zero.
func Mean(positions, weights []float64) (float64, error) {
	if err := validation.NotEmpty("positions", positions); err != nil {
		return 0, err
	}
	if weights == nil {
		total := 0.0
		for _, x := range positions {
			total += x
		}
		return total / float64(len(positions)), nil
	}
	if err := validation.SameLength("positions", positions, "weights", weights); err != nil {
		return 0, err
	}

	var mass, weighted float64
	for i, x := range positions {
		mass += weights[i]
		weighted += weights[i] * x
	}
	if mass == 0 {
		return 0, ErrZeroMass
	}
	return weighted / mass, nil
}

// Spread returns |max - min| over positions.
func Spread(positions []float64) (float64, error) {
	if err := validation.NotEmpty("positions", positions); err != nil {
		return 0, err
	}
	lo, hi := positions[0], positions[0]
	for _, x := range positions[1:] {
		if x < lo {
			lo = x
		}
		if x > hi {
			hi = x
		}
	}
	return hi - lo, nil
}

// ImposeMean returns a copy of positions shifted so that the weighted mean
// equals target. Weights are held fixed and the shape of the support is
// preserved exactly (every position moves by the same offset).
func ImposeMean(target float64, positions, weights []float64) ([]float64, error) {
	current, err := Mean(positions, weights)
	if err != nil {
		return nil, err
	}
	shift := target - current
	out := make([]float64, len(positions))
	for i, x := range positions {
		out[i] = x + shift
	}
	return out, nil
}

// ImposeSpread returns a copy of positions rescaled about the weighted mean
// so that the spread equals target. Weights are held fixed and the weighted
// mean is preserved by construction.
//
// Returns ErrZeroSpread when the current spread is zero: coincident
// positions carry no scale to stretch.
func ImposeSpread(target float64, positions, weights []float64) ([]float64, error) {
	current, err := Spread(positions)
	if err != nil {
		return nil, err
	}
	if current == 0 {
		return nil, ErrZeroSpread
	}
	center, err := Mean(positions, weights)
	if err != nil {
		return nil, err
	}
	scale := target / current
	out := make([]float64, len(positions))
	for i, x := range positions {
		out[i] = center + (x-center)*scale
	}
	return out, nil
}

// ImposeWeightNorm rescales weights so their sum is 1.0, adjusting
// positions so the weighted mean under the new weights matches the weighted
// mean under the old ones. Returns (new positions, new weights).
//
// Returns ErrZeroMass when the weights sum to zero.
func ImposeWeightNorm(positions, weights []float64) ([]float64, []float64, error) {
	if err := validation.SameLength("positions", positions, "weights", weights); err != nil {
		return nil, nil, err
	}
	center, err := Mean(positions, weights)
	if err != nil {
		return nil, nil, err
	}

	var mass float64
	for _, w := range weights {
		mass += w
	}
	normed := make([]float64, len(weights))
	for i, w := range weights {
		normed[i] = w / mass
	}

	adjusted, err := ImposeMean(center, positions, normed)
	if err != nil {
		return nil, nil, err
	}
	return adjusted, normed, nil
}
