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
	"context"

	"github.com/AleutianAI/uncertainty/pkg/stats"
)

// Statistics is the numeric backend a measure delegates to for derived
// quantities and constraint imposition. Implementations must be
// deterministic and side-effect free; impositions return new sequences
// rather than mutating their inputs.
//
// The default implementation delegates to the stats package. Supplying a
// custom implementation (via WithStatistics) is intended for testing and
// for swapping in alternative constraint solvers.
type Statistics interface {
	// Mean returns the weighted mean of positions.
	Mean(positions, weights []float64) (float64, error)

	// Spread returns |max - min| over positions.
	Spread(positions []float64) (float64, error)

	// ImposeMean returns positions shifted so their weighted mean
	// equals target, holding weights fixed.
	ImposeMean(target float64, positions, weights []float64) ([]float64, error)

	// ImposeSpread returns positions rescaled so their spread equals
	// target, holding weights fixed and preserving the weighted mean.
	ImposeSpread(target float64, positions, weights []float64) ([]float64, error)

	// ImposeWeightNorm rescales weights to total mass 1.0, adjusting
	// positions to preserve the weighted mean. Returns (positions,
	// weights).
	ImposeWeightNorm(positions, weights []float64) ([]float64, []float64, error)

	// Expectation returns the joint-weighted sum of f over the grid
	// points. Not renormalized by total mass.
	Expectation(f stats.Func, coords [][]float64, weights []float64) (float64, error)

	// ImposeExpectation searches for joint grid positions whose
	// expectation of f lands within target.Tolerance of target.Mean,
	// holding weights and per-dimension counts fixed. A nil bounds
	// leaves the search domain to the implementation's default.
	ImposeExpectation(ctx context.Context, target stats.ExpectTarget, f stats.Func, counts []int, bounds *stats.Bounds, weights []float64) ([][]float64, error)
}

// standardStatistics delegates every operation to the stats package.
type standardStatistics struct{}

func (standardStatistics) Mean(positions, weights []float64) (float64, error) {
	return stats.Mean(positions, weights)
}

func (standardStatistics) Spread(positions []float64) (float64, error) {
	return stats.Spread(positions)
}

func (standardStatistics) ImposeMean(target float64, positions, weights []float64) ([]float64, error) {
	return stats.ImposeMean(target, positions, weights)
}

func (standardStatistics) ImposeSpread(target float64, positions, weights []float64) ([]float64, error) {
	return stats.ImposeSpread(target, positions, weights)
}

func (standardStatistics) ImposeWeightNorm(positions, weights []float64) ([]float64, []float64, error) {
	return stats.ImposeWeightNorm(positions, weights)
}

func (standardStatistics) Expectation(f stats.Func, coords [][]float64, weights []float64) (float64, error) {
	return stats.Expectation(f, coords, weights)
}

func (standardStatistics) ImposeExpectation(ctx context.Context, target stats.ExpectTarget, f stats.Func, counts []int, bounds *stats.Bounds, weights []float64) ([][]float64, error) {
	return stats.ImposeExpectation(ctx, target, f, counts, bounds, weights)
}

// DefaultStatistics is the backend used by measures constructed without
// WithStatistics.
var DefaultStatistics Statistics = standardStatistics{}

// Option configures a measure at construction time.
type Option func(*config)

type config struct {
	stats Statistics
}

// WithStatistics sets the numeric backend for a measure and, through
// Compose and Unflatten, for every measure they construct.
func WithStatistics(s Statistics) Option {
	return func(c *config) { c.stats = s }
}

func newConfig(opts []Option) config {
	c := config{stats: DefaultStatistics}
	for _, opt := range opts {
		opt(&c)
	}
	if c.stats == nil {
		c.stats = DefaultStatistics
	}
	return c
}
