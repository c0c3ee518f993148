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

import "fmt"

// Point is one weighted support point of a 1-D discrete measure. It holds
// a (position, weight) pair and nothing else; the owning measure mutates
// both fields in place.
type Point struct {
	Position float64
	Weight   float64
}

// NewPoint returns a point at the given position carrying the given
// weight.
func NewPoint(position, weight float64) *Point {
	return &Point{Position: position, Weight: weight}
}

// String returns a debug representation in "(weight @position)" form.
func (p *Point) String() string {
	return fmt.Sprintf("(%g @%g)", p.Weight, p.Position)
}
