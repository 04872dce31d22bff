// SPDX-License-Identifier: MIT
//
// replace.go — ReplaceColumns: the bulk "incoming axis DTO" update,
// distinct from UpdateColumns' simpler per-id batch. The DTO
// carries columns in their desired display order with possibly-negative ids
// for newly added columns; any existing column id absent from the DTO is an
// orphan and is deleted, cascading to the cube's cells (the caller's job —
// ReplaceColumns itself only reports which ids were dropped).
package axis

import (
	"fmt"

	"github.com/katalvlaran/ncube/column"
	"github.com/katalvlaran/ncube/value"
)

// ColumnDTO is one entry of a ReplaceColumns call. A negative ID marks a new
// column to be created (Raw must be non-nil); a non-negative ID references
// an existing column, whose value is left unchanged when Raw is nil.
type ColumnDTO struct {
	ID   int64
	Raw  interface{}
	Meta map[string]interface{}
}

// ReplaceColumns validates the entire incoming catalog shape before
// committing any of it, matching UpdateColumns' all-or-nothing discipline.
// It returns the columns in their final DTO order and the set of ids
// deleted because they were orphaned (present on the axis, absent from the
// DTO) — the caller (package cube) uses that set to cascade cell deletion.
func (a *Axis) ReplaceColumns(dto []ColumnDTO) ([]*column.Column, []uint64, error) {
	keep := make(map[uint64]bool, len(dto))
	for _, d := range dto {
		if d.ID >= 0 {
			keep[uint64(d.ID)] = true
		}
	}

	// The default column is never part of the DTO's ordered list; it is
	// never a candidate for orphan deletion here, matching how
	// UpdateColumn treats it — update_columns never reassigns default-
	// column identity.
	var deleted []uint64
	for _, col := range a.columns {
		if !keep[col.ID] {
			deleted = append(deleted, col.ID)
		}
	}

	standardized := make(map[int64]value.Value, len(dto))
	for _, d := range dto {
		if d.ID >= 0 {
			if _, ok := a.idToCol[uint64(d.ID)]; !ok {
				return nil, nil, fmt.Errorf("%w: id %d", ErrColumnNotFound, d.ID)
			}
		}
		if d.Raw == nil {
			continue
		}
		v, err := a.Standardize(d.Raw)
		if err != nil {
			return nil, nil, fmt.Errorf("column %d: %w", d.ID, err)
		}
		standardized[d.ID] = v
	}

	if err := a.validateReplace(dto, standardized); err != nil {
		return nil, nil, err
	}

	for _, id := range deleted {
		if err := a.DeleteColumn(id); err != nil {
			return nil, nil, err
		}
	}

	// As in UpdateColumns: take every surviving column whose value changes
	// out of the catalog first, so each check below sees only final values.
	for id, v := range standardized {
		if id < 0 {
			continue
		}
		col := a.idToCol[uint64(id)]
		if a.Type == Set {
			a.deindexSetColumn(col)
		}
		a.removeFromSlice(uint64(id))
		nv := v
		col.Value = &nv
	}

	out := make([]*column.Column, 0, len(dto))
	for i, d := range dto {
		if d.ID < 0 {
			col, err := a.AddColumn(d.Raw, d.Meta)
			if err != nil {
				return nil, nil, err
			}
			col.DisplayOrder = int32(i)
			out = append(out, col)
			continue
		}
		var raw interface{}
		if v, ok := standardized[d.ID]; ok {
			raw = v
		}
		col, err := a.UpdateColumn(uint64(d.ID), raw, d.Meta)
		if err != nil {
			return nil, nil, err
		}
		col.DisplayOrder = int32(i)
		out = append(out, col)
	}
	return out, deleted, nil
}

// validateReplace re-checks the shape invariant (RANGE/SET overlap,
// DISCRETE/NEAREST uniqueness) against the hypothetical post-replace state
// without mutating the axis: every surviving existing column's (possibly
// updated) value, plus every new column's standardized value.
func (a *Axis) validateReplace(dto []ColumnDTO, standardized map[int64]value.Value) error {
	final := make([]value.Value, 0, len(dto))
	for _, d := range dto {
		if d.ID >= 0 {
			if v, updated := standardized[d.ID]; updated {
				final = append(final, v)
			} else if col, ok := a.idToCol[uint64(d.ID)]; ok && col.Value != nil {
				final = append(final, *col.Value)
			}
			continue
		}
		v, err := a.Standardize(d.Raw)
		if err != nil {
			return fmt.Errorf("column %d: %w", d.ID, err)
		}
		final = append(final, v)
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
					return fmt.Errorf("%w: replace would overlap ranges", ErrOverlap)
				}
			}
		}
	case Set:
		for i := 0; i < len(final); i++ {
			for j := i + 1; j < len(final); j++ {
				overlap, err := final[i].RangeSet().Overlaps(final[j].RangeSet())
				if err == nil && overlap {
					return fmt.Errorf("%w: replace would overlap sets", ErrOverlap)
				}
			}
		}
	}
	return nil
}
