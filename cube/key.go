// SPDX-License-Identifier: MIT
//
// key.go — cell key construction. Cell identity is a set of column ids, so
// a sorted fixed-length vector is the natural representation; we render
// that vector as a string (a comparable Go map key) rather than a
// fixed-size array, since the cube's axis count is only known at runtime.
package cube

import (
	"sort"
	"strconv"
	"strings"
)

// cellKey renders colIDs (one column id per axis, any order) into the
// canonical map key for c.cells: sorted ascending, joined by a separator
// that cannot appear in a formatted uint64. Set membership, not slice order,
// is what distinguishes cells, so sorting here makes key equality
// independent of which order the axes contributed their columns.
func cellKey(colIDs []uint64) string {
	sorted := make([]uint64, len(colIDs))
	copy(sorted, colIDs)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	parts := make([]string, len(sorted))
	for i, id := range sorted {
		parts[i] = strconv.FormatUint(id, 10)
	}
	return strings.Join(parts, ",")
}
