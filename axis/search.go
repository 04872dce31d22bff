// SPDX-License-Identifier: MIT
package axis

import (
	"github.com/katalvlaran/ncube/column"
	"github.com/katalvlaran/ncube/value"
)

// sortedSearch returns the index of the first column in cols whose Value is
// not less than probe (i.e. the sort-order insertion point), and whether
// that column's Value compares equal to probe. cols must already be sorted
// by Value.Compare — true for every DISCRETE/RANGE/SET axis's columns
// slice.
//
// Complexity: O(log n).
func sortedSearch(cols []*column.Column, probe value.Value) (int, bool) {
	lo, hi := 0, len(cols)
	for lo < hi {
		mid := (lo + hi) / 2
		c, err := cols[mid].Value.Compare(probe)
		if err != nil {
			// Incomparable kinds should not occur within one axis's
			// catalog; treat as "greater" so the probe inserts before it
			// rather than panicking on malformed input.
			hi = mid
			continue
		}
		switch {
		case c < 0:
			lo = mid + 1
		case c > 0:
			hi = mid
		default:
			return mid, true
		}
	}
	return lo, false
}
