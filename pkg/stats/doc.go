// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package stats provides the numeric routines behind discrete measures.
//
// The package operates on plain float64 sequences so it carries no
// dependency on the measure types; the measures package consumes it through
// an interface and other callers can use it directly. Three groups of
// routines are provided:
//
//   - Moment queries and impositions: Mean, Spread, ImposeMean,
//     ImposeSpread, ImposeWeightNorm. Impositions return new sequences and
//     never mutate their inputs.
//
//   - Grid packing: Pack, Unpack, NestedSplit. These define the canonical
//     enumeration order of a Cartesian product grid (dimension 0 varies
//     fastest) and the flat wire format used to exchange measure data with
//     an external optimizer (per dimension: weights, then positions).
//
//   - Expectation: Expectation evaluates a weighted sum of an objective
//     over joint grid points; ImposeExpectation runs an internal
//     constrained search (differential evolution) to find joint positions
//     whose expectation lands within a tolerance of a target.
//
// # Determinism
//
// All routines are deterministic. ImposeExpectation draws from a seeded
// RNG (seed configurable via WithSeed) so repeated runs with the same
// inputs produce identical output.
//
// # Thread Safety
//
// Every function is safe for concurrent use; none retains state between
// calls. ImposeExpectation can evaluate objective candidates concurrently
// when WithParallelism is set, in which case the objective function must
// itself be safe for concurrent calls.
package stats
