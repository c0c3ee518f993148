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
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sumCoords(x []float64) float64 {
	total := 0.0
	for _, v := range x {
		total += v
	}
	return total
}

// uniformJointWeights builds equal joint weights summing to 1.0 for the
// given grid size.
func uniformJointWeights(t *testing.T, counts []int) []float64 {
	t.Helper()
	total, err := GridSize(counts)
	require.NoError(t, err)
	w := make([]float64, total)
	for i := range w {
		w[i] = 1.0 / float64(total)
	}
	return w
}

func TestExpectation_WeightedSum(t *testing.T) {
	coords := [][]float64{{0, 2}, {1, 2}}
	weights := []float64{0.5, 0.5}

	e, err := Expectation(sumCoords, coords, weights)
	require.NoError(t, err)
	assert.InDelta(t, 2.5, e, 1e-12)
}

func TestExpectation_NotRenormalized(t *testing.T) {
	coords := [][]float64{{1}, {1}}
	weights := []float64{2.0, 2.0} // mass 4, deliberately unnormalized

	e, err := Expectation(sumCoords, coords, weights)
	require.NoError(t, err)
	assert.InDelta(t, 4.0, e, 1e-12)
}

func TestExpectation_NilObjective(t *testing.T) {
	_, err := Expectation(nil, nil, nil)
	assert.ErrorIs(t, err, ErrNilObjective)
}

func TestImposeExpectation_LinearObjective(t *testing.T) {
	counts := []int{2, 2}
	weights := uniformJointWeights(t, counts)
	target := ExpectTarget{Mean: 1.0, Tolerance: 0.01}

	coords, err := ImposeExpectation(context.Background(), target, sumCoords, counts, nil, weights)
	require.NoError(t, err)
	require.Len(t, coords, 4)

	e, err := Expectation(sumCoords, coords, weights)
	require.NoError(t, err)
	assert.InDelta(t, target.Mean, e, target.Tolerance)

	// Default bounds are the unit hypercube.
	for _, tuple := range coords {
		for _, v := range tuple {
			assert.GreaterOrEqual(t, v, 0.0)
			assert.LessOrEqual(t, v, 1.0)
		}
	}
}

func TestImposeExpectation_RespectsBounds(t *testing.T) {
	counts := []int{3}
	weights := []float64{0.2, 0.3, 0.5}
	bounds := &Bounds{
		Lower: []float64{-2, -2, -2},
		Upper: []float64{2, 2, 2},
	}
	target := ExpectTarget{Mean: -0.5, Tolerance: 0.01}

	coords, err := ImposeExpectation(context.Background(), target, sumCoords, counts, bounds, weights)
	require.NoError(t, err)

	e, err := Expectation(sumCoords, coords, weights)
	require.NoError(t, err)
	assert.InDelta(t, target.Mean, e, target.Tolerance)

	for _, tuple := range coords {
		for _, v := range tuple {
			assert.GreaterOrEqual(t, v, -2.0)
			assert.LessOrEqual(t, v, 2.0)
		}
	}
}

func TestImposeExpectation_Deterministic(t *testing.T) {
	counts := []int{2, 2}
	weights := uniformJointWeights(t, counts)
	target := ExpectTarget{Mean: 1.2, Tolerance: 0.005}

	a, err := ImposeExpectation(context.Background(), target, sumCoords, counts, nil, weights, WithSeed(7))
	require.NoError(t, err)
	b, err := ImposeExpectation(context.Background(), target, sumCoords, counts, nil, weights, WithSeed(7))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestImposeExpectation_Parallel(t *testing.T) {
	counts := []int{2, 2}
	weights := uniformJointWeights(t, counts)
	target := ExpectTarget{Mean: 0.8, Tolerance: 0.01}

	coords, err := ImposeExpectation(context.Background(), target, sumCoords, counts, nil, weights,
		WithParallelism(4))
	require.NoError(t, err)

	e, err := Expectation(sumCoords, coords, weights)
	require.NoError(t, err)
	assert.InDelta(t, target.Mean, e, target.Tolerance)
}

func TestImposeExpectation_Infeasible(t *testing.T) {
	counts := []int{2}
	weights := []float64{0.5, 0.5}
	// The unit hypercube caps the expectation of sumCoords at 1.0.
	target := ExpectTarget{Mean: 10.0, Tolerance: 0.1}

	_, err := ImposeExpectation(context.Background(), target, sumCoords, counts, nil, weights,
		WithMaxGenerations(25))
	assert.ErrorIs(t, err, ErrInfeasible)
}

func TestImposeExpectation_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	counts := []int{2}
	weights := []float64{0.5, 0.5}
	// Unreachable target so the search cannot finish in generation zero.
	target := ExpectTarget{Mean: 5.0, Tolerance: 0.0001}

	_, err := ImposeExpectation(ctx, target, sumCoords, counts, nil, weights)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestImposeExpectation_InputErrors(t *testing.T) {
	weights := []float64{1.0}

	_, err := ImposeExpectation(context.Background(), ExpectTarget{}, nil, []int{1}, nil, weights)
	assert.ErrorIs(t, err, ErrNilObjective)

	_, err = ImposeExpectation(context.Background(), ExpectTarget{Tolerance: -1}, sumCoords, []int{1}, nil, weights)
	assert.ErrorIs(t, err, ErrInvalidTarget)

	_, err = ImposeExpectation(context.Background(), ExpectTarget{Mean: math.NaN()}, sumCoords, []int{1}, nil, weights)
	assert.ErrorIs(t, err, ErrInvalidTarget)

	_, err = ImposeExpectation(context.Background(), ExpectTarget{}, sumCoords, []int{2}, nil, weights)
	assert.ErrorIs(t, err, ErrInvalidCounts)

	badBounds := &Bounds{Lower: []float64{1}, Upper: []float64{0}}
	_, err = ImposeExpectation(context.Background(), ExpectTarget{}, sumCoords, []int{1}, badBounds, weights)
	assert.ErrorIs(t, err, ErrInvalidBounds)
}
