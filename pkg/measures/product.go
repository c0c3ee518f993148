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
	"fmt"
	"math/rand"

	"github.com/AleutianAI/uncertainty/pkg/stats"
)

// ProductMeasure is an ordered collection of mutually independent
// DiracMeasures, one per dimension. Order defines dimension identity.
//
// The joint distribution lives on the Cartesian grid of the per-dimension
// supports. Because the dimensions are independent, the weight a
// dimension assigns to one of its coordinates is identical no matter
// which points of the other dimensions it is paired with: joint weights
// factor exactly as a product, never as a general joint table.
//
// All joint views enumerate grid points in the canonical order defined by
// stats.Pack (dimension 0 varies fastest), so Weights()[k] and
// Coords()[k] always describe the same grid point.
//
// Thread Safety: Not safe for concurrent mutation; one exclusive owner
// per optimization evaluation.
type ProductMeasure struct {
	dims  []*DiracMeasure
	stats Statistics
}

// NewProductMeasure builds a joint measure that takes ownership of the
// given per-dimension measures. The slice is copied; the measures are
// not.
//
// Returns ErrNilMeasure when any entry is nil.
func NewProductMeasure(dims []*DiracMeasure, opts ...Option) (*ProductMeasure, error) {
	for i, d := range dims {
		if d == nil {
			return nil, fmt.Errorf("%w: dimension %d", ErrNilMeasure, i)
		}
	}
	owned := make([]*DiracMeasure, len(dims))
	copy(owned, dims)
	cfg := newConfig(opts)
	return &ProductMeasure{dims: owned, stats: cfg.stats}, nil
}

// Dimensions returns the number of independent dimensions.
func (c *ProductMeasure) Dimensions() int {
	return len(c.dims)
}

// Measures returns the per-dimension measures in order. The slice is a
// copy; the measures remain owned by the product.
func (c *ProductMeasure) Measures() []*DiracMeasure {
	out := make([]*DiracMeasure, len(c.dims))
	copy(out, c.dims)
	return out
}

// Counts returns each dimension's support point count, in order.
func (c *ProductMeasure) Counts() []int {
	out := make([]int, len(c.dims))
	for i, d := range c.dims {
		out[i] = d.NumPoints()
	}
	return out
}

// NumPoints returns the joint grid size: the product of the per-dimension
// point counts.
func (c *ProductMeasure) NumPoints() int {
	total := 1
	for _, d := range c.dims {
		total *= d.NumPoints()
	}
	return total
}

// Weights returns the joint weight of each grid point in canonical order:
// the product of the per-dimension weights selected for that point.
func (c *ProductMeasure) Weights() []float64 {
	perDim := make([][]float64, len(c.dims))
	for i, d := range c.dims {
		perDim[i] = d.Weights()
	}
	packed := stats.Pack(perDim)
	joint := make([]float64, len(packed))
	for k, tuple := range packed {
		w := 1.0
		for _, v := range tuple {
			w *= v
		}
		joint[k] = w
	}
	return joint
}

// Coords returns the joint position of each grid point in canonical
// order: a tuple collecting one coordinate per dimension.
func (c *ProductMeasure) Coords() [][]float64 {
	perDim := make([][]float64, len(c.dims))
	for i, d := range c.dims {
		perDim[i] = d.Coords()
	}
	return stats.Pack(perDim)
}

// SetCoords splits a joint position sequence back into per-dimension
// coordinate sequences and assigns each to the corresponding dimension.
//
// The sequence must carry NumPoints tuples of Dimensions coordinates
// each, in canonical order. Structural mismatches fail before any
// dimension is mutated.
func (c *ProductMeasure) SetCoords(coords [][]float64) error {
	if len(coords) != c.NumPoints() {
		return fmt.Errorf("%w: joint positions: got %d tuples, want %d",
			ErrLengthMismatch, len(coords), c.NumPoints())
	}
	for k, tuple := range coords {
		if len(tuple) != len(c.dims) {
			return fmt.Errorf("%w: joint positions[%d]: got %d coordinates, want %d",
				ErrDimensionMismatch, k, len(tuple), len(c.dims))
		}
	}
	perDim, err := stats.Unpack(coords, c.Counts())
	if err != nil {
		return err
	}
	for i, d := range c.dims {
		if err := d.SetCoords(perDim[i]); err != nil {
			return err
		}
	}
	return nil
}

// Mass returns each dimension's total weight, in order. Under the
// normalization invariant each entry should equal 1.0; the container does
// not enforce it.
func (c *ProductMeasure) Mass() []float64 {
	out := make([]float64, len(c.dims))
	for i, d := range c.dims {
		out[i] = d.Mass()
	}
	return out
}

// Expect returns the expectation of f over the joint grid: each output of
// f is weighted by the corresponding joint weight and the weighted sum is
// returned. The result is not renormalized by total mass.
func (c *ProductMeasure) Expect(f stats.Func) (float64, error) {
	return c.stats.Expectation(f, c.Coords(), c.Weights())
}

// SetExpect adjusts the joint positions, holding per-dimension point
// counts and weights fixed, so the expectation of f lands within
// target.Tolerance of target.Mean. The optional bounds restrict each
// search coordinate; nil leaves the domain to the Statistics
// implementation's default.
//
// Numerical failures from the imposition (infeasible targets, exhausted
// search budgets) propagate unchanged; the measure is only mutated on
// success.
func (c *ProductMeasure) SetExpect(ctx context.Context, target stats.ExpectTarget, f stats.Func, bounds *stats.Bounds) error {
	coords, err := c.stats.ImposeExpectation(ctx, target, f, c.Counts(), bounds, c.Weights())
	if err != nil {
		return err
	}
	return c.SetCoords(coords)
}

// POF returns the probability of failure of f over the joint grid: the
// sum of joint weights of every grid point where f(x) <= 0.0. An output
// above zero is success; the sign convention is load-bearing.
//
// The result is not renormalized. When the joint weights do not sum to
// 1.0 the value is not a true probability; that interpretation is the
// caller's responsibility.
func (c *ProductMeasure) POF(f stats.Func) (float64, error) {
	if f == nil {
		return 0, ErrNilObjective
	}
	coords := c.Coords()
	weights := c.Weights()
	var u float64
	for k, x := range coords {
		if f(x) <= 0.0 {
			u += weights[k]
		}
	}
	return u, nil
}

// Sample draws n joint coordinate tuples from the grid, each selected
// with probability proportional to its joint weight. Tuples are fresh
// copies; mutating them does not touch the measure.
//
// The caller supplies the random source so sampling stays reproducible
// under its control.
func (c *ProductMeasure) Sample(n int, src *rand.Rand) ([][]float64, error) {
	if src == nil {
		return nil, ErrNilSource
	}
	if n <= 0 {
		return nil, nil
	}
	coords := c.Coords()
	weights := c.Weights()

	// Cumulative weights with compensated summation, so tiny weights
	// late in a long grid still land in the right bucket.
	cum := make([]float64, len(weights))
	var sum, comp float64
	for k, w := range weights {
		y := w - comp
		t := sum + y
		comp = (t - sum) - y
		sum = t
		cum[k] = sum
	}
	if sum <= 0 {
		return nil, stats.ErrZeroMass
	}

	out := make([][]float64, n)
	for i := 0; i < n; i++ {
		u := src.Float64() * sum
		idx := len(cum) - 1
		for k, edge := range cum {
			if u <= edge {
				idx = k
				break
			}
		}
		out[i] = append([]float64(nil), coords[idx]...)
	}
	return out, nil
}
