// SPDX-License-Identifier: MIT
//
// discrete.go — DISCRETE axis lookup: binary search on the sorted column
// catalog, falling back to the default column on a miss.
package axis

import (
	"github.com/katalvlaran/ncube/column"
	"github.com/katalvlaran/ncube/value"
)

// findDiscrete locates the DISCRETE column equal to key: binary search,
// excluding the default column; miss returns the default column (or nil).
// Complexity: O(log n).
func (a *Axis) findDiscrete(key value.Value) (*column.Column, error) {
	idx, found := sortedSearch(a.columns, key)
	if found {
		return a.columns[idx], nil
	}
	return a.defaultCol, nil
}
