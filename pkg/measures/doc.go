// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package measures models discrete probability distributions used to bound
// statistical quantities during optimization under uncertainty.
//
// A DiracMeasure is an ordered set of weighted support points approximating
// one 1-D distribution. A ProductMeasure composes several mutually
// independent DiracMeasures into a joint N-D distribution over the
// Cartesian grid of their supports: joint weight is the product of the
// per-dimension weights, joint position is the tuple of per-dimension
// positions. The transform functions (Compose, Decompose, Flatten,
// Unflatten) convert between the structured form and the flat parameter
// vector an external optimizer manipulates.
//
// # Ownership Model
//
// Ownership is strictly hierarchical: a ProductMeasure owns its
// DiracMeasures and each DiracMeasure owns its Points. No entity is shared
// between two owners and no entity outlives its owner. Accessors return
// copies of container slices so callers cannot resize a measure and break
// the parallel-length invariant; Points themselves are mutated in place by
// the owning measure's setters.
//
// # Grid Enumeration Order
//
// All joint views (Weights, Coords) enumerate the grid in one canonical
// order, defined by stats.Pack: dimension 0 varies fastest. Weights()[k]
// and Coords()[k] always describe the same grid point.
//
// # Derived Views
//
// Every query recomputes from current point state; nothing is cached, so
// repeated queries after a setter call always reflect the latest mutation.
// Numeric work (means, spreads, constraint imposition) is delegated to the
// Statistics interface; the default implementation is the stats package.
//
// # Thread Safety
//
// Measures are NOT safe for concurrent mutation. They are designed for a
// single exclusive owner per optimization evaluation; concurrent access to
// one instance requires external synchronization.
package measures
