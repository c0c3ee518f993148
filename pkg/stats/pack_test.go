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

func TestPack_CanonicalOrder(t *testing.T) {
	// Dimension 0 varies fastest.
	got := Pack([][]float64{{1, 2}, {3, 4}})
	want := [][]float64{{1, 3}, {2, 3}, {1, 4}, {2, 4}}
	assert.Equal(t, want, got)
}

func TestPack_ThreeDimensions(t *testing.T) {
	got := Pack([][]float64{{1, 2}, {10}, {100, 200}})
	want := [][]float64{
		{1, 10, 100}, {2, 10, 100},
		{1, 10, 200}, {2, 10, 200},
	}
	assert.Equal(t, want, got)
}

func TestPack_Empty(t *testing.T) {
	assert.Nil(t, Pack(nil))
	assert.Nil(t, Pack([][]float64{{1, 2}, {}}))
}

func TestUnpack_InvertsPack(t *testing.T) {
	dims := [][]float64{{1, 2, 3}, {4, 5}, {6, 7}}
	counts := []int{3, 2, 2}

	joint := Pack(dims)
	back, err := Unpack(joint, counts)
	require.NoError(t, err)
	assert.Equal(t, dims, back)

	// And the other direction: packing the unpacked grid reproduces it.
	assert.Equal(t, joint, Pack(back))
}

func TestUnpack_Errors(t *testing.T) {
	_, err := Unpack([][]float64{{1}}, []int{2})
	assert.ErrorIs(t, err, validation.ErrLengthMismatch)

	_, err = Unpack([][]float64{{1}, {2}}, []int{0, 2})
	assert.ErrorIs(t, err, ErrInvalidCounts)

	_, err = Unpack([][]float64{{1, 9}, {2}}, []int{2})
	assert.ErrorIs(t, err, validation.ErrLengthMismatch)
}

func TestGridSize(t *testing.T) {
	n, err := GridSize([]int{2, 3, 4})
	require.NoError(t, err)
	assert.Equal(t, 24, n)

	_, err = GridSize(nil)
	assert.ErrorIs(t, err, ErrInvalidCounts)

	_, err = GridSize([]int{2, -1})
	assert.ErrorIs(t, err, ErrInvalidCounts)
}

func TestNestedSplit(t *testing.T) {
	// Two dimensions with 2 and 1 points: per dimension, weights then
	// positions.
	flat := []float64{0.5, 0.5, 0.0, 1.0, 1.0, 2.0}
	w, x, err := NestedSplit(flat, []int{2, 1})
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{0.5, 0.5}, {1.0}}, w)
	assert.Equal(t, [][]float64{{0.0, 1.0}, {2.0}}, x)
}

func TestNestedSplit_LengthError(t *testing.T) {
	_, _, err := NestedSplit([]float64{1, 2, 3}, []int{2})
	assert.ErrorIs(t, err, validation.ErrLengthMismatch)
}
