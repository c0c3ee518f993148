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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleutianAI/uncertainty/pkg/validation"
)

func TestMean_Weighted(t *testing.T) {
	m, err := Mean([]float64{0, 10}, []float64{1, 3})
	require.NoError(t, err)
	assert.InDelta(t, 7.5, m, 1e-12)
}

func TestMean_NilWeightsIsUnweighted(t *testing.T) {
	m, err := Mean([]float64{1, 2, 3, 4}, nil)
	require.NoError(t, err)
	assert.InDelta(t, 2.5, m, 1e-12)
}

func TestMean_Errors(t *testing.T) {
	_, err := Mean(nil, nil)
	assert.ErrorIs(t, err, validation.ErrEmpty)

	_, err = Mean([]float64{1, 2}, []float64{1})
	assert.ErrorIs(t, err, validation.ErrLengthMismatch)

	_, err = Mean([]float64{1, 2}, []float64{0, 0})
	assert.ErrorIs(t, err, ErrZeroMass)
}

func TestSpread(t *testing.T) {
	s, err := Spread([]float64{3, -1, 4, 1})
	require.NoError(t, err)
	assert.InDelta(t, 5.0, s, 1e-12)

	s, err = Spread([]float64{2})
	require.NoError(t, err)
	assert.Zero(t, s)

	_, err = Spread(nil)
	assert.ErrorIs(t, err, validation.ErrEmpty)
}

func TestImposeMean(t *testing.T) {
	x := []float64{0, 1, 2}
	w := []float64{0.25, 0.5, 0.25}

	out, err := ImposeMean(5.0, x, w)
	require.NoError(t, err)

	m, err := Mean(out, w)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, m, 1e-12)

	// Shape preserved: pairwise gaps unchanged.
	assert.InDelta(t, out[1]-out[0], x[1]-x[0], 1e-12)
	assert.InDelta(t, out[2]-out[1], x[2]-x[1], 1e-12)

	// Input untouched.
	assert.Equal(t, []float64{0, 1, 2}, x)
}

func TestImposeSpread(t *testing.T) {
	x := []float64{0, 1, 4}
	w := []float64{0.2, 0.3, 0.5}

	out, err := ImposeSpread(8.0, x, w)
	require.NoError(t, err)

	s, err := Spread(out)
	require.NoError(t, err)
	assert.InDelta(t, 8.0, s, 1e-12)

	// Weighted mean preserved.
	before, err := Mean(x, w)
	require.NoError(t, err)
	after, err := Mean(out, w)
	require.NoError(t, err)
	assert.InDelta(t, before, after, 1e-12)
}

func TestImposeSpread_ZeroSpread(t *testing.T) {
	_, err := ImposeSpread(2.0, []float64{1, 1, 1}, []float64{1, 1, 1})
	assert.ErrorIs(t, err, ErrZeroSpread)
}

func TestImposeWeightNorm(t *testing.T) {
	x := []float64{0, 2, 4}
	w := []float64{2, 4, 2}

	nx, nw, err := ImposeWeightNorm(x, w)
	require.NoError(t, err)

	var mass float64
	for _, v := range nw {
		mass += v
	}
	assert.InDelta(t, 1.0, mass, 1e-12)

	// The weighted mean survives the renormalization.
	before, err := Mean(x, w)
	require.NoError(t, err)
	after, err := Mean(nx, nw)
	require.NoError(t, err)
	assert.InDelta(t, before, after, 1e-12)
}

func TestImposeWeightNorm_ZeroMass(t *testing.T) {
	_, _, err := ImposeWeightNorm([]float64{1, 2}, []float64{0, 0})
	assert.ErrorIs(t, err, ErrZeroMass)
}
