// SPDX-License-Identifier: MIT
//
// nearest.go — NEAREST axis lookup: linear scan computing each column's
// distance to the key, returning the argmin. No default column is ever
// allowed on a NEAREST axis (enforced in mutate.go).
package axis

import (
	"github.com/katalvlaran/ncube/column"
	"github.com/katalvlaran/ncube/value"
)

// findNearest returns the column whose value minimizes distance to key:
// Euclidean for Point3D, great-circle for LatLon, absolute numeric
// difference otherwise; ties broken by first-encountered (insertion order).
//
// Complexity: O(n).
func (a *Axis) findNearest(key value.Value) (*column.Column, error) {
	var best *column.Column
	var bestDist float64
	for _, col := range a.columns {
		d, err := key.Distance(*col.Value)
		if err != nil {
			continue
		}
		if best == nil || d < bestDist {
			best = col
			bestDist = d
		}
	}
	if best == nil {
		return nil, nil
	}
	return best, nil
}
