// SPDX-License-Identifier: MIT
//
// set.go — SET axis lookup: a discrete-member index backed by a B-tree for
// O(log n)/O(1)-amortized exact matches, falling back to a B-tree over
// range members, falling back to the default column.
package axis

import (
	"fmt"

	"github.com/katalvlaran/ncube/column"
	"github.com/katalvlaran/ncube/value"
)

// findSet probes the discrete-member index first, then binary-searches the
// range-member index, then falls back to the default column.
func (a *Axis) findSet(key value.Value) (*column.Column, error) {
	if item, ok := a.discreteToCol.Get(setItem{key: key}); ok {
		return item.col, nil
	}
	if col, ok := a.findInRangeIndex(key); ok {
		return col, nil
	}
	return a.defaultCol, nil
}

// findInRangeIndex locates the range member (if any) containing key. A
// zero-width pivot range at key sorts after every range with Low < key but
// before a range [key, x), so the first range at or after the pivot is tried
// (it contains key only if its Low == key), then the closest range before
// it: since SET members never overlap across stored columns, no other
// candidate can contain key.
func (a *Axis) findInRangeIndex(key value.Value) (*column.Column, bool) {
	if a.rangeToCol.Len() == 0 {
		return nil, false
	}
	pivot := setItem{key: value.NewRangeValue(&value.Range{Low: key, High: key})}
	var found *column.Column
	check := func(item setItem) bool {
		rng := item.key.Range()
		if c, err := rng.Contains(key); err == nil && c == 0 {
			found = item.col
		}
		return false // only examine the single closest candidate
	}
	a.rangeToCol.AscendGreaterOrEqual(pivot, check)
	if found == nil {
		a.rangeToCol.DescendLessOrEqual(pivot, check)
	}
	return found, found != nil
}

// checkSetOverlap reports ErrOverlap if newRS overlaps any RangeSet already
// stored on the axis, via pairwise discrete-in-range and
// range-intersects-range checks. Complexity: O(n * |newRS.Members|).
func (a *Axis) checkSetOverlap(newRS *value.RangeSet, excludeID uint64) error {
	for _, col := range a.columns {
		if col.ID == excludeID {
			continue
		}
		existing := col.Value.RangeSet()
		overlap, err := newRS.Overlaps(existing)
		if err != nil {
			continue
		}
		if overlap {
			return fmt.Errorf("%w: %s overlaps existing %s", ErrOverlap, newRS, existing)
		}
	}
	return nil
}

// indexSetColumn inserts col's RangeSet members into discreteToCol and
// rangeToCol. Called after a successful overlap check.
func (a *Axis) indexSetColumn(col *column.Column) {
	for _, m := range col.Value.RangeSet().Members() {
		if m.Kind() == value.KindRange {
			a.rangeToCol.ReplaceOrInsert(setItem{key: m, col: col})
		} else {
			a.discreteToCol.ReplaceOrInsert(setItem{key: m, col: col})
		}
	}
}

// deindexSetColumn removes col's RangeSet members from both indices.
func (a *Axis) deindexSetColumn(col *column.Column) {
	for _, m := range col.Value.RangeSet().Members() {
		if m.Kind() == value.KindRange {
			a.rangeToCol.Delete(setItem{key: m})
		} else {
			a.discreteToCol.Delete(setItem{key: m})
		}
	}
}
