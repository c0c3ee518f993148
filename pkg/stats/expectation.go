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
	"math"

	"github.com/AleutianAI/uncertainty/pkg/validation"
)

// Func is an objective over one joint grid point: it maps a coordinate
// tuple (one coordinate per dimension) to a real number.
type Func func(x []float64) float64

// ExpectTarget names the two halves of an expectation constraint: the
// desired expectation and the acceptable deviation around it. The
// constraint is satisfied when |E - Mean| <= Tolerance.
type ExpectTarget struct {
	Mean      float64
	Tolerance float64
}

// Bounds restricts each search coordinate of an expectation imposition.
// Lower and Upper parallel the flattened per-dimension support positions
// (length = sum of the per-dimension point counts).
type Bounds struct {
	Lower []float64
	Upper []float64
}

// validate checks that bounds cover nvars coordinates with finite,
// correctly ordered endpoints.
func (b *Bounds) validate(nvars int) error {
	if len(b.Lower) != nvars || len(b.Upper) != nvars {
		return fmt.Errorf("%w: got %d lower and %d upper bounds, want %d of each",
			ErrInvalidBounds, len(b.Lower), len(b.Upper), nvars)
	}
	if err := validation.Finite("lower bounds", b.Lower); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBounds, err)
	}
	if err := validation.Finite("upper bounds", b.Upper); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBounds, err)
	}
	for i := range b.Lower {
		if b.Lower[i] > b.Upper[i] {
			return fmt.Errorf("%w: lower[%d] = %g exceeds upper[%d] = %g",
				ErrInvalidBounds, i, b.Lower[i], i, b.Upper[i])
		}
	}
	return nil
}

// unitBounds returns the default search domain: [0, 1] per coordinate.
func unitBounds(nvars int) *Bounds {
	b := &Bounds{
		Lower: make([]float64, nvars),
		Upper: make([]float64, nvars),
	}
	for i := range b.Upper {
		b.Upper[i] = 1.0
	}
	return b
}

// Expectation returns the joint-weighted sum of f over the grid points:
// sum(weights[k] * f(coords[k])).
//
// The result is NOT renormalized by total mass. When the joint weights sum
// to 1.0 this is the expectation of f; otherwise interpreting the value is
// the caller's responsibility.
func Expectation(f Func, coords [][]float64, weights []float64) (float64, error) {
	if f == nil {
		return 0, ErrNilObjective
	}
	if len(coords) != len(weights) {
		return 0, fmt.Errorf("%w: coords has %d tuples, weights has %d elements",
			validation.ErrLengthMismatch, len(coords), len(weights))
	}
	var total float64
	for k, x := range coords {
		total += weights[k] * f(x)
	}
	return total, nil
}

// expectationOf is the unchecked inner loop shared with the solver.
func expectationOf(f Func, coords [][]float64, weights []float64) float64 {
	var total float64
	for k, x := range coords {
		total += weights[k] * f(x)
	}
	return total
}

// validateTarget rejects negative or non-finite tolerances and non-finite
// targets before a search starts.
func validateTarget(target ExpectTarget) error {
	if math.IsNaN(target.Mean) || math.IsInf(target.Mean, 0) {
		return fmt.Errorf("%w: target mean = %v", ErrInvalidTarget, target.Mean)
	}
	if target.Tolerance < 0 || math.IsNaN(target.Tolerance) || math.IsInf(target.Tolerance, 0) {
		return fmt.Errorf("%w: tolerance = %v", ErrInvalidTarget, target.Tolerance)
	}
	return nil
}
