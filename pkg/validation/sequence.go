// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package validation provides input validation utilities for numeric routines.
//
// This package contains precondition checks for the numeric sequences that
// flow between the measure types and the statistics routines. Using these
// validators keeps length and finiteness failures descriptive and uniform:
// every error names the offending sequence so a caller can tell which input
// was malformed without re-deriving lengths at the call site.
package validation

import (
	"errors"
	"fmt"
	"math"
)

// Sentinel errors for sequence validation.
var (
	// ErrEmpty is returned when a sequence that must carry at least one
	// element is empty or nil.
	ErrEmpty = errors.New("sequence must not be empty")

	// ErrLengthMismatch is returned when two parallel sequences differ
	// in length.
	ErrLengthMismatch = errors.New("sequence lengths do not match")

	// ErrNotFinite is returned when a sequence contains NaN or an
	// infinity.
	ErrNotFinite = errors.New("sequence contains a non-finite value")
)

// NotEmpty validates that xs carries at least one element.
//
// The name is included in the error so callers can pass inputs through
// unchanged and still produce a useful message.
func NotEmpty(name string, xs []float64) error {
	if len(xs) == 0 {
		return fmt.Errorf("%w: %s", ErrEmpty, name)
	}
	return nil
}

// SameLength validates that two parallel sequences have equal length.
//
// Example:
//
//	if err := validation.SameLength("positions", x, "weights", w); err != nil {
//	    return 0, err
//	}
func SameLength(aName string, a []float64, bName string, b []float64) error {
	if len(a) != len(b) {
		return fmt.Errorf("%w: %s has %d elements, %s has %d",
			ErrLengthMismatch, aName, len(a), bName, len(b))
	}
	return nil
}

// Finite validates that every element of xs is a finite float64.
//
// NaN and infinities poison downstream weighted sums silently, so routines
// that search over a sequence (rather than merely copy it) should reject
// them up front.
func Finite(name string, xs []float64) error {
	for i, x := range xs {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return fmt.Errorf("%w: %s[%d] = %v", ErrNotFinite, name, i, x)
		}
	}
	return nil
}
