// SPDX-License-Identifier: MIT
//
// cells.go — direct cell CRUD and the column-mutation cascade: deleting a
// column drops every cell that referenced it.
package cube

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/ncube/axis"
	"github.com/katalvlaran/ncube/column"
)

// SetCell stores val at the cell identified by colIDs, one column id per
// axis (any order). It validates that colIDs has exactly as many entries as
// the cube has axes and that every id resolves to some axis's column.
func (c *Cube) SetCell(colIDs []uint64, val interface{}) error {
	if err := c.validateCellShape(colIDs); err != nil {
		return err
	}
	key := cellKey(colIDs)

	c.muCells.Lock()
	c.cells[key] = &cellEntry{ColumnIDs: append([]uint64(nil), colIDs...), Value: val}
	c.sha1Valid = false
	c.muCells.Unlock()
	return nil
}

// GetCellRaw returns the stored value at colIDs without executing it, for
// diagnostics and export. The second return is false if no cell is stored.
func (c *Cube) GetCellRaw(colIDs []uint64) (interface{}, bool) {
	key := cellKey(colIDs)
	c.muCells.RLock()
	defer c.muCells.RUnlock()
	entry, ok := c.cells[key]
	if !ok {
		return nil, false
	}
	return entry.Value, true
}

// DeleteCell removes the cell identified by colIDs, if any.
func (c *Cube) DeleteCell(colIDs []uint64) {
	key := cellKey(colIDs)
	c.muCells.Lock()
	if _, ok := c.cells[key]; ok {
		delete(c.cells, key)
		c.sha1Valid = false
	}
	c.muCells.Unlock()
}

// CellCount returns the number of stored (non-default-miss) cells.
func (c *Cube) CellCount() int {
	c.muCells.RLock()
	defer c.muCells.RUnlock()
	return len(c.cells)
}

// CellSnapshot is one stored cell's column-id set and value, returned by
// Cells for enumeration by collaborators (JSON export, SHA-1 diagnostics)
// that must visit every cell rather than probe one coordinate at a time.
type CellSnapshot struct {
	ColumnIDs []uint64
	Value     interface{}
}

// Cells returns a snapshot of every stored cell, in no particular order
// (callers that need determinism, such as jsonio, sort it themselves).
func (c *Cube) Cells() []CellSnapshot {
	c.muCells.RLock()
	defer c.muCells.RUnlock()
	out := make([]CellSnapshot, 0, len(c.cells))
	for _, entry := range c.cells {
		out = append(out, CellSnapshot{
			ColumnIDs: append([]uint64(nil), entry.ColumnIDs...),
			Value:     entry.Value,
		})
	}
	return out
}

// validateCellShape checks colIDs against the cube's current axis count and
// that every id resolves through axis_of (column.AxisIDOf) to one of the
// cube's axes.
func (c *Cube) validateCellShape(colIDs []uint64) error {
	c.muCatalog.RLock()
	defer c.muCatalog.RUnlock()

	if len(colIDs) != len(c.axisOrder) {
		return fmt.Errorf("%w: cube %q has %d axes, got %d column ids", ErrCellShape, c.name, len(c.axisOrder), len(colIDs))
	}
	for _, id := range colIDs {
		axisID := column.AxisIDOf(id)
		found := false
		for _, a := range c.axesByName {
			if a.ID == axisID {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("%w: column id %d belongs to no axis of cube %q", ErrCellShape, id, c.name)
		}
	}
	return nil
}

// AddColumnTo standardizes raw against the named axis and inserts it,
// delegating entirely to axis.Axis.AddColumn. Column mutation never clears
// cells by itself (only axis add/remove does); the new column cannot yet be
// referenced by any existing cell key.
func (c *Cube) AddColumnTo(axisName string, raw interface{}, meta map[string]interface{}) (*column.Column, error) {
	c.muCatalog.Lock()
	defer c.muCatalog.Unlock()

	a, ok := c.axesByName[strings.ToLower(axisName)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrAxisNotFound, axisName)
	}
	col, err := a.AddColumn(raw, meta)
	if err != nil {
		return nil, err
	}
	c.invalidateCachesLocked()
	return col, nil
}

// AddDefaultColumnTo installs the named axis's default column.
func (c *Cube) AddDefaultColumnTo(axisName string, meta map[string]interface{}) (*column.Column, error) {
	c.muCatalog.Lock()
	defer c.muCatalog.Unlock()

	a, ok := c.axesByName[strings.ToLower(axisName)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrAxisNotFound, axisName)
	}
	col, err := a.AddDefaultColumn(meta)
	if err != nil {
		return nil, err
	}
	c.invalidateCachesLocked()
	return col, nil
}

// UpdateColumnOn updates a column's value/meta in place. The column id and
// display_order are preserved; since a cell key is a set of column ids, no
// cell needs to move.
func (c *Cube) UpdateColumnOn(axisName string, colID uint64, raw interface{}, meta map[string]interface{}) (*column.Column, error) {
	c.muCatalog.Lock()
	defer c.muCatalog.Unlock()

	a, ok := c.axesByName[strings.ToLower(axisName)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrAxisNotFound, axisName)
	}
	col, err := a.UpdateColumn(colID, raw, meta)
	if err != nil {
		return nil, err
	}
	c.invalidateCachesLocked()
	return col, nil
}

// DeleteColumnOn removes a column from the named axis and cascades: every
// cell key containing colID is dropped.
func (c *Cube) DeleteColumnOn(axisName string, colID uint64) error {
	c.muCatalog.Lock()
	defer c.muCatalog.Unlock()

	a, ok := c.axesByName[strings.ToLower(axisName)]
	if !ok {
		return fmt.Errorf("%w: %q", ErrAxisNotFound, axisName)
	}
	if err := a.DeleteColumn(colID); err != nil {
		return err
	}

	c.muCells.Lock()
	for key, entry := range c.cells {
		for _, id := range entry.ColumnIDs {
			if id == colID {
				delete(c.cells, key)
				break
			}
		}
	}
	c.sha1Valid = false
	c.scopeValid = false
	c.muCells.Unlock()

	c.Logger.WithFields(logrus.Fields{"cube": c.name, "axis": axisName, "column": colID}).Debug("column deleted, cells cascaded")
	return nil
}

// ReplaceColumnsOn applies a full DTO-based axis replace: existing columns
// absent from dto are deleted as orphans,
// negative-id entries are created fresh, survivors are updated in place, and
// every entry's DisplayOrder is reassigned from dto's ordering. Cells keyed
// by an orphaned column id are cascaded away, mirroring DeleteColumnOn.
func (c *Cube) ReplaceColumnsOn(axisName string, dto []axis.ColumnDTO) ([]*column.Column, []uint64, error) {
	c.muCatalog.Lock()
	defer c.muCatalog.Unlock()

	a, ok := c.axesByName[strings.ToLower(axisName)]
	if !ok {
		return nil, nil, fmt.Errorf("%w: %q", ErrAxisNotFound, axisName)
	}
	cols, deleted, err := a.ReplaceColumns(dto)
	if err != nil {
		return nil, nil, err
	}

	if len(deleted) > 0 {
		orphans := make(map[uint64]bool, len(deleted))
		for _, id := range deleted {
			orphans[id] = true
		}
		c.muCells.Lock()
		for key, entry := range c.cells {
			for _, id := range entry.ColumnIDs {
				if orphans[id] {
					delete(c.cells, key)
					break
				}
			}
		}
		c.muCells.Unlock()
	}

	c.invalidateCachesLocked()
	c.Logger.WithFields(logrus.Fields{"cube": c.name, "axis": axisName, "deleted": len(deleted)}).Debug("columns replaced, cells cascaded")
	return cols, deleted, nil
}

// MoveColumnOn reassigns a column's display order on a DISPLAY-ordered axis.
func (c *Cube) MoveColumnOn(axisName string, colID uint64, newDisplayOrder int32) error {
	c.muCatalog.Lock()
	defer c.muCatalog.Unlock()

	a, ok := c.axesByName[strings.ToLower(axisName)]
	if !ok {
		return fmt.Errorf("%w: %q", ErrAxisNotFound, axisName)
	}
	if a.Order != axis.Display {
		return fmt.Errorf("%w: move_column requires a DISPLAY-ordered axis", ErrInvalidOperation)
	}
	if err := a.MoveColumn(colID, newDisplayOrder); err != nil {
		return err
	}
	c.invalidateCachesLocked()
	return nil
}
