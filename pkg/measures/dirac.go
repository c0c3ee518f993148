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
	"strings"
)

// DiracMeasure is an ordered collection of weighted support points
// approximating one 1-D discrete distribution. Order is significant: it
// defines the index correspondence with any external weight or position
// vector.
//
// Invariants:
//   - len(Weights()) == len(Coords()) == NumPoints() at all times. The
//     container is never resized after construction; setters mutate the
//     existing points element-wise.
//   - Mass() should equal 1.0 after Normalize(); this is enforced by the
//     imposition routine, not by the container.
//
// Thread Safety: Not safe for concurrent mutation; one exclusive owner
// per optimization evaluation.
type DiracMeasure struct {
	points []*Point
	stats  Statistics
}

// NewDiracMeasure builds a measure from parallel position and weight
// sequences, one point per pair.
//
// Returns ErrLengthMismatch when the sequences differ in length.
func NewDiracMeasure(positions, weights []float64, opts ...Option) (*DiracMeasure, error) {
	if len(positions) != len(weights) {
		return nil, fmt.Errorf("%w: %d positions, %d weights",
			ErrLengthMismatch, len(positions), len(weights))
	}
	points := make([]*Point, len(positions))
	for i := range positions {
		points[i] = NewPoint(positions[i], weights[i])
	}
	cfg := newConfig(opts)
	return &DiracMeasure{points: points, stats: cfg.stats}, nil
}

// FromPoints builds a measure that takes ownership of the given points.
// The slice is copied; the points are not.
//
// Returns ErrNilPoint when any entry is nil.
func FromPoints(points []*Point, opts ...Option) (*DiracMeasure, error) {
	for i, p := range points {
		if p == nil {
			return nil, fmt.Errorf("%w: index %d", ErrNilPoint, i)
		}
	}
	owned := make([]*Point, len(points))
	copy(owned, points)
	cfg := newConfig(opts)
	return &DiracMeasure{points: owned, stats: cfg.stats}, nil
}

// NumPoints returns the number of support points.
func (d *DiracMeasure) NumPoints() int {
	return len(d.points)
}

// Points returns the support points in order. The slice is a copy; the
// points are the measure's own and may be read through it, but resizing
// the measure is not possible.
func (d *DiracMeasure) Points() []*Point {
	out := make([]*Point, len(d.points))
	copy(out, d.points)
	return out
}

// Weights returns the ordered sequence of point weights.
func (d *DiracMeasure) Weights() []float64 {
	out := make([]float64, len(d.points))
	for i, p := range d.points {
		out[i] = p.Weight
	}
	return out
}

// Coords returns the ordered sequence of point positions.
func (d *DiracMeasure) Coords() []float64 {
	out := make([]float64, len(d.points))
	for i, p := range d.points {
		out[i] = p.Position
	}
	return out
}

// SetWeights assigns weights element-wise to the existing points.
//
// Returns ErrLengthMismatch, without mutating anything, when the sequence
// length does not equal NumPoints.
func (d *DiracMeasure) SetWeights(weights []float64) error {
	if len(weights) != len(d.points) {
		return fmt.Errorf("%w: weights: got %d, want %d",
			ErrLengthMismatch, len(weights), len(d.points))
	}
	for i, w := range weights {
		d.points[i].Weight = w
	}
	return nil
}

// SetCoords assigns positions element-wise to the existing points.
//
// Returns ErrLengthMismatch, without mutating anything, when the sequence
// length does not equal NumPoints.
func (d *DiracMeasure) SetCoords(positions []float64) error {
	if len(positions) != len(d.points) {
		return fmt.Errorf("%w: positions: got %d, want %d",
			ErrLengthMismatch, len(positions), len(d.points))
	}
	for i, x := range positions {
		d.points[i].Position = x
	}
	return nil
}

// Mass returns the sum of the point weights.
func (d *DiracMeasure) Mass() float64 {
	var total float64
	for _, p := range d.points {
		total += p.Weight
	}
	return total
}

// Mean returns the weighted mean of the point positions.
func (d *DiracMeasure) Mean() (float64, error) {
	return d.stats.Mean(d.Coords(), d.Weights())
}

// SetMean recomputes all positions so the weighted mean equals target,
// holding weights fixed. The whole position sequence is replaced from the
// imposition's output; point identity is preserved.
func (d *DiracMeasure) SetMean(target float64) error {
	positions, err := d.stats.ImposeMean(target, d.Coords(), d.Weights())
	if err != nil {
		return err
	}
	return d.SetCoords(positions)
}

// Range returns the spread |max - min| of the point positions.
func (d *DiracMeasure) Range() (float64, error) {
	return d.stats.Spread(d.Coords())
}

// SetRange recomputes all positions so the spread equals target, holding
// weights fixed.
func (d *DiracMeasure) SetRange(target float64) error {
	positions, err := d.stats.ImposeSpread(target, d.Coords(), d.Weights())
	if err != nil {
		return err
	}
	return d.SetCoords(positions)
}

// Normalize rescales the weights so Mass() becomes 1.0, adjusting
// positions to preserve the weighted mean. Both sequences are replaced
// from the imposition's output.
func (d *DiracMeasure) Normalize() error {
	positions, weights, err := d.stats.ImposeWeightNorm(d.Coords(), d.Weights())
	if err != nil {
		return err
	}
	if err := d.SetCoords(positions); err != nil {
		return err
	}
	return d.SetWeights(weights)
}

// String returns a debug representation listing every point.
func (d *DiracMeasure) String() string {
	parts := make([]string, len(d.points))
	for i, p := range d.points {
		parts[i] = p.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}
