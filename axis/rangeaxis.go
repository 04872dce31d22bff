// SPDX-License-Identifier: MIT
//
// rangeaxis.go — RANGE axis lookup: binary search using the three-way
// range-containment comparator, and the overlap check that keeps inserted
// ranges non-overlapping.
package axis

import (
	"fmt"

	"github.com/katalvlaran/ncube/column"
	"github.com/katalvlaran/ncube/value"
)

// findRange locates the RANGE column containing key: ranges are half-open
// [low, high) and the catalog is sorted by Low, so binary search on the
// sign of Range.Contains converges on the single range (if any) containing
// key. Complexity: O(log n).
func (a *Axis) findRange(key value.Value) (*column.Column, error) {
	lo, hi := 0, len(a.columns)
	for lo < hi {
		mid := (lo + hi) / 2
		rng := a.columns[mid].Value.Range()
		c, err := rng.Contains(key)
		if err != nil {
			return nil, err
		}
		switch {
		case c < 0:
			hi = mid
		case c > 0:
			lo = mid + 1
		default:
			return a.columns[mid], nil
		}
	}
	return a.defaultCol, nil
}

// checkRangeOverlap reports ErrOverlap if newRng would overlap any range
// already on the axis. It locates the binary-search insertion point for
// newRng's Low, steps back one position to also cover a preceding range
// that might extend into newRng, then sweeps forward while the candidate's
// Low bound still leaves room for overlap with newRng.
//
// Complexity: O(log n + k) where k is the small number of neighboring
// ranges actually examined.
func (a *Axis) checkRangeOverlap(newRng *value.Range, excludeID uint64) error {
	probe := value.NewRangeValue(newRng)
	idx, _ := sortedSearch(a.columns, probe)
	start := idx - 1
	if start < 0 {
		start = 0
	}
	for i := start; i < len(a.columns); i++ {
		col := a.columns[i]
		if col.ID == excludeID {
			continue
		}
		sweep := col.Value.Range()
		// Once the candidate's Low is at or past newRng's High, sorted
		// order guarantees no further candidate can overlap.
		if c, err := sweep.Low.Compare(newRng.High); err == nil && c >= 0 {
			break
		}
		overlap, err := newRng.Overlaps(sweep)
		if err != nil {
			continue
		}
		if overlap {
			return fmt.Errorf("%w: [%s,%s) overlaps existing [%s,%s)",
				ErrOverlap, newRng.Low, newRng.High, sweep.Low, sweep.High)
		}
	}
	return nil
}
