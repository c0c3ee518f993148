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

import "errors"

// Sentinel errors for measure operations.
//
// Structural mismatches and precondition violations fail fast, before any
// mutation. Numerical failures from the Statistics implementation are
// propagated unchanged and do not appear here.
var (
	// ErrLengthMismatch is returned when a setter receives a sequence
	// whose length does not equal the current point count, or when a
	// constructor receives parallel sequences of unequal length.
	ErrLengthMismatch = errors.New("sequence length does not match point count")

	// ErrDimensionMismatch is returned when a joint sequence disagrees
	// with the measure's dimension count, or when nested per-dimension
	// inputs disagree in outer length.
	ErrDimensionMismatch = errors.New("sequence does not match dimension count")

	// ErrNilPoint is returned when a nil point is supplied to a measure
	// constructor.
	ErrNilPoint = errors.New("point must not be nil")

	// ErrNilMeasure is returned when a nil measure is supplied where an
	// owned measure is required.
	ErrNilMeasure = errors.New("measure must not be nil")

	// ErrNilObjective is returned when an objective function is nil.
	ErrNilObjective = errors.New("objective function must not be nil")

	// ErrNilSource is returned when sampling is requested without a
	// random source.
	ErrNilSource = errors.New("random source must not be nil")
)
