// SPDX-License-Identifier: MIT
//
// mutate.go — column catalog mutation: AddColumn, AddDefaultColumn,
// UpdateColumn, UpdateColumns (bulk), DeleteColumn, MoveColumn. Every
// mutator keeps the invariants documented on the Axis type intact; callers
// never touch the columns slice or the indices directly.
package axis

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/ncube/column"
	"github.com/katalvlaran/ncube/value"
)

// AddColumn standardizes raw to the axis's shape, checks the axis's
// uniqueness/overlap invariant, and inserts the resulting column. meta may
// be nil; a "name" entry (string) registers the column for ColumnByName
// lookups, which RULE axes require.
//
// NEAREST columns are appended in insertion order rather than sorted by
// value: Value.Compare has no meaningful order for LatLon/Point3D, so
// sorting would be arbitrary and findNearest never relies on order anyway.
// RULE columns are likewise appended; their execution order comes from
// DisplayOrder, not slice position.
func (a *Axis) AddColumn(raw interface{}, meta map[string]interface{}) (*column.Column, error) {
	v, err := a.Standardize(raw)
	if err != nil {
		return nil, err
	}

	id := column.NewID(a.ID, a.nextCounter())
	displayOrder := int32(a.counter)
	if meta != nil {
		if do, ok := meta["display_order"].(int32); ok {
			displayOrder = do
		}
	}
	col := column.New(id, v, displayOrder)
	for k, val := range meta {
		col.Meta[k] = val
	}

	var idx int
	switch a.Type {
	case Discrete:
		i, found := sortedSearch(a.columns, v)
		if found {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateColumn, v)
		}
		idx = i
	case Range:
		if err := a.checkRangeOverlap(v.Range(), 0); err != nil {
			return nil, err
		}
		idx, _ = sortedSearch(a.columns, v)
	case Set:
		if err := a.checkSetOverlap(v.RangeSet(), 0); err != nil {
			return nil, err
		}
		idx, _ = sortedSearch(a.columns, v)
		a.indexSetColumn(col)
	case Nearest:
		for _, existing := range a.columns {
			if existing.Value.Equal(v) {
				return nil, fmt.Errorf("%w: %s", ErrDuplicateColumn, v)
			}
		}
		idx = len(a.columns)
	case Rule:
		idx = len(a.columns)
	default:
		return nil, fmt.Errorf("%w: axis %q has unknown type", ErrWrongShape, a.Name)
	}

	a.columns = append(a.columns, nil)
	copy(a.columns[idx+1:], a.columns[idx:])
	a.columns[idx] = col

	a.idToCol[col.ID] = col
	if name, ok := col.Name(); ok {
		a.nameToCol[strings.ToLower(name)] = col
	}
	return col, nil
}

// AddDefaultColumn installs the axis's default column. NEAREST axes never
// carry a default: a NEAREST lookup always resolves to some real column via
// argmin. On a RULE axis the default column fires exactly when no other rule
// column on the axis has fired (see package cube's eval.go).
func (a *Axis) AddDefaultColumn(meta map[string]interface{}) (*column.Column, error) {
	if a.Type == Nearest {
		return nil, fmt.Errorf("%w: %s axes never have a default column", ErrInvalidOperation, a.Type)
	}
	if a.defaultCol != nil {
		return nil, fmt.Errorf("%w: axis %q already has a default column", ErrInvalidOperation, a.Name)
	}
	col := column.NewDefault(a.ID)
	for k, v := range meta {
		col.Meta[k] = v
	}
	a.defaultCol = col
	a.idToCol[col.ID] = col
	return col, nil
}

// UpdateColumn replaces the value of the column identified by id, re-running
// the axis's uniqueness/overlap check against every other column (the
// target excluded) before committing. The default column's value can never
// be changed (it has none); only its Meta is mutable via this call when raw
// is nil.
func (a *Axis) UpdateColumn(id uint64, raw interface{}, meta map[string]interface{}) (*column.Column, error) {
	col, ok := a.idToCol[id]
	if !ok {
		return nil, fmt.Errorf("%w: id %d", ErrColumnNotFound, id)
	}
	if col.IsDefault {
		if raw != nil {
			return nil, fmt.Errorf("%w: default column has no value to update", ErrInvalidOperation)
		}
		for k, v := range meta {
			col.Meta[k] = v
		}
		return col, nil
	}

	if raw == nil {
		for k, v := range meta {
			col.Meta[k] = v
		}
		return col, nil
	}

	v, err := a.Standardize(raw)
	if err != nil {
		return nil, err
	}

	switch a.Type {
	case Discrete:
		for _, existing := range a.columns {
			if existing.ID != id && existing.Value.Equal(v) {
				return nil, fmt.Errorf("%w: %s", ErrDuplicateColumn, v)
			}
		}
	case Range:
		if err := a.checkRangeOverlap(v.Range(), id); err != nil {
			return nil, err
		}
	case Set:
		a.deindexSetColumn(col)
		if err := a.checkSetOverlap(v.RangeSet(), id); err != nil {
			a.indexSetColumn(col) // restore original indexing on failure
			return nil, err
		}
	case Nearest:
		for _, existing := range a.columns {
			if existing.ID != id && existing.Value.Equal(v) {
				return nil, fmt.Errorf("%w: %s", ErrDuplicateColumn, v)
			}
		}
	}

	// Remove then re-insert at the sort-correct position: the new value may
	// no longer belong at the old slice index.
	a.removeFromSlice(id)
	col.Value = &v
	for k, val := range meta {
		col.Meta[k] = val
	}
	if name, ok := col.Name(); ok {
		a.nameToCol[strings.ToLower(name)] = col
	}

	var idx int
	switch a.Type {
	case Discrete, Range, Set:
		idx, _ = sortedSearch(a.columns, v)
	default:
		idx = len(a.columns)
	}
	a.columns = append(a.columns, nil)
	copy(a.columns[idx+1:], a.columns[idx:])
	a.columns[idx] = col

	if a.Type == Set {
		a.indexSetColumn(col)
	}
	return col, nil
}

// ColumnUpdate is one entry of a bulk UpdateColumns call.
type ColumnUpdate struct {
	ID   uint64
	Raw  interface{} // nil to leave the value untouched
	Meta map[string]interface{}
}

// UpdateColumns applies a batch of updates, validating every one against a
// simulated post-update catalog before committing any of them: either the
// whole batch lands or none of it does.
func (a *Axis) UpdateColumns(updates []ColumnUpdate) ([]*column.Column, error) {
	standardized := make(map[uint64]value.Value, len(updates))
	for _, u := range updates {
		col, ok := a.idToCol[u.ID]
		if !ok {
			return nil, fmt.Errorf("%w: id %d", ErrColumnNotFound, u.ID)
		}
		if u.Raw == nil {
			continue
		}
		if col.IsDefault {
			return nil, fmt.Errorf("%w: default column has no value to update", ErrInvalidOperation)
		}
		v, err := a.Standardize(u.Raw)
		if err != nil {
			return nil, fmt.Errorf("column %d: %w", u.ID, err)
		}
		standardized[u.ID] = v
	}

	if err := a.validateBulk(standardized); err != nil {
		return nil, err
	}

	// The batch is valid as a whole, so take every column whose value changes
	// out of the catalog (and the SET indices) before committing: each
	// UpdateColumn below is then checked only against columns that already
	// hold their final value.
	for id, v := range standardized {
		col := a.idToCol[id]
		if a.Type == Set {
			a.deindexSetColumn(col)
		}
		a.removeFromSlice(id)
		nv := v
		col.Value = &nv
	}

	out := make([]*column.Column, 0, len(updates))
	for _, u := range updates {
		col, err := a.UpdateColumn(u.ID, firstNonNil(u.Raw, standardized, u.ID), u.Meta)
		if err != nil {
			return nil, err
		}
		out = append(out, col)
	}
	return out, nil
}

// firstNonNil re-threads a pre-standardized value back through UpdateColumn
// so the bulk path does not re-run (and potentially re-fail) promotion.
func firstNonNil(raw interface{}, standardized map[uint64]value.Value, id uint64) interface{} {
	if raw == nil {
		return nil
	}
	if v, ok := standardized[id]; ok {
		return v
	}
	return raw
}

// validateBulk re-checks RANGE/SET overlap and DISCRETE/NEAREST uniqueness
// across the hypothetical final state (every existing column not in the
// update set, plus every update's new value), without mutating the axis.
func (a *Axis) validateBulk(standardized map[uint64]value.Value) error {
	final := make([]value.Value, 0, len(a.columns))
	for _, col := range a.columns {
		if v, updated := standardized[col.ID]; updated {
			final = append(final, v)
		} else {
			final = append(final, *col.Value)
		}
	}
	switch a.Type {
	case Discrete, Nearest:
		for i := 0; i < len(final); i++ {
			for j := i + 1; j < len(final); j++ {
				if final[i].Equal(final[j]) {
					return fmt.Errorf("%w: %s", ErrDuplicateColumn, final[i])
				}
			}
		}
	case Range:
		for i := 0; i < len(final); i++ {
			for j := i + 1; j < len(final); j++ {
				overlap, err := final[i].Range().Overlaps(final[j].Range())
				if err == nil && overlap {
					return fmt.Errorf("%w: bulk update would overlap ranges", ErrOverlap)
				}
			}
		}
	case Set:
		for i := 0; i < len(final); i++ {
			for j := i + 1; j < len(final); j++ {
				overlap, err := final[i].RangeSet().Overlaps(final[j].RangeSet())
				if err == nil && overlap {
					return fmt.Errorf("%w: bulk update would overlap sets", ErrOverlap)
				}
			}
		}
	}
	return nil
}

// DeleteColumn removes the column identified by id. Deleting the default
// column clears Axis.Default(). The caller (package cube) is responsible for
// deleting any cells keyed by this column.
func (a *Axis) DeleteColumn(id uint64) error {
	col, ok := a.idToCol[id]
	if !ok {
		return fmt.Errorf("%w: id %d", ErrColumnNotFound, id)
	}
	if col.IsDefault {
		a.defaultCol = nil
		delete(a.idToCol, id)
		return nil
	}
	if a.Type == Set {
		a.deindexSetColumn(col)
	}
	a.removeFromSlice(id)
	delete(a.idToCol, id)
	if name, ok := col.Name(); ok {
		if cur, exists := a.nameToCol[strings.ToLower(name)]; exists && cur.ID == id {
			delete(a.nameToCol, strings.ToLower(name))
		}
	}
	return nil
}

// MoveColumn reassigns a column's DisplayOrder. Valid on any axis (Columns()
// ignores DisplayOrder unless Order == Display), but most meaningful on
// RULE axes, where DisplayOrder also determines evaluation order. The
// default column's DisplayOrder is pinned to column.DisplayOrderMax and may
// not be moved.
func (a *Axis) MoveColumn(id uint64, newDisplayOrder int32) error {
	col, ok := a.idToCol[id]
	if !ok {
		return fmt.Errorf("%w: id %d", ErrColumnNotFound, id)
	}
	if col.IsDefault {
		return fmt.Errorf("%w: cannot move the default column", ErrInvalidOperation)
	}
	col.DisplayOrder = newDisplayOrder
	return nil
}

// removeFromSlice deletes the column with the given id from a.columns,
// preserving the relative order of the remaining elements.
func (a *Axis) removeFromSlice(id uint64) {
	for i, col := range a.columns {
		if col.ID == id {
			a.columns = append(a.columns[:i], a.columns[i+1:]...)
			return
		}
	}
}
