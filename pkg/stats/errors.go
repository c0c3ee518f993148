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

import "errors"

// Sentinel errors for statistics routines.
var (
	// ErrZeroMass is returned when a weighted routine receives weights
	// that sum to zero, leaving the weighted mean undefined.
	ErrZeroMass = errors.New("total weight is zero")

	// ErrZeroSpread is returned when a spread is imposed on positions
	// that currently have zero spread; there is no scale to stretch.
	ErrZeroSpread = errors.New("positions have zero spread")

	// ErrNilObjective is returned when an objective function is nil.
	ErrNilObjective = errors.New("objective function must not be nil")

	// ErrInvalidCounts is returned when per-dimension point counts are
	// empty or contain a non-positive entry.
	ErrInvalidCounts = errors.New("invalid per-dimension point counts")

	// ErrInvalidBounds is returned when search bounds are malformed:
	// wrong length, non-finite, or lower above upper.
	ErrInvalidBounds = errors.New("invalid bounds")

	// ErrInvalidTarget is returned when an expectation target is
	// non-finite or its tolerance is negative or non-finite.
	ErrInvalidTarget = errors.New("invalid expectation target")

	// ErrInfeasible is returned when the expectation search exhausts its
	// generation budget without landing inside the requested tolerance.
	ErrInfeasible = errors.New("could not satisfy expectation constraint")
)
