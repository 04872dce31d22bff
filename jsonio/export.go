// SPDX-License-Identifier: MIT
package jsonio

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/katalvlaran/ncube/axis"
	"github.com/katalvlaran/ncube/column"
	"github.com/katalvlaran/ncube/cube"
	"github.com/katalvlaran/ncube/exec"
	"github.com/katalvlaran/ncube/value"
)

// Export renders c as a CubeDoc, the wire shape Marshal encodes.
func Export(c *cube.Cube) (*CubeDoc, error) {
	doc := &CubeDoc{
		Name: c.Name(),
		Meta: c.Meta,
		SHA1: c.SHA1(),
	}
	if c.DefaultValue != nil {
		cd, err := cellValueToDoc(c.DefaultValue)
		if err != nil {
			return nil, fmt.Errorf("jsonio: cube %q default value: %w", c.Name(), err)
		}
		doc.DefaultValue = cd
	}

	// wireID maps a runtime column id to the small sequential id used
	// inside this document, so cells can cross-reference columns without
	// leaking the axisID*1e12 encoding into the wire format.
	wireID := make(map[uint64]int64)
	var nextWireID int64

	for _, a := range c.Axes() {
		ad, err := exportAxis(a, wireID, &nextWireID)
		if err != nil {
			return nil, fmt.Errorf("jsonio: axis %q: %w", a.Name, err)
		}
		doc.Axes = append(doc.Axes, ad)
	}

	cells := c.Cells()
	sort.Slice(cells, func(i, j int) bool {
		return cellSortKey(cells[i].ColumnIDs) < cellSortKey(cells[j].ColumnIDs)
	})
	for _, entry := range cells {
		cd, err := cellValueToDoc(entry.Value)
		if err != nil {
			return nil, fmt.Errorf("jsonio: cell: %w", err)
		}
		ids := make([]int64, 0, len(entry.ColumnIDs))
		for _, id := range entry.ColumnIDs {
			wid, ok := wireID[id]
			if !ok {
				return nil, fmt.Errorf("jsonio: cell references unknown column id %d", id)
			}
			ids = append(ids, wid)
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		cd.ColumnIDs = ids
		doc.Cells = append(doc.Cells, *cd)
	}

	return doc, nil
}

// Marshal renders c as indented JSON text, the format persisted by
// cmd/ncubectl and the persist package's content column.
func Marshal(c *cube.Cube) ([]byte, error) {
	doc, err := Export(c)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(doc, "", "  ")
}

func cellSortKey(ids []uint64) string {
	sorted := append([]uint64(nil), ids...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	return fmt.Sprint(sorted)
}

func exportAxis(a *axis.Axis, wireID map[uint64]int64, nextWireID *int64) (AxisDoc, error) {
	ad := AxisDoc{
		Name:           a.Name,
		Type:           a.Type.String(),
		ValueType:      a.ValueType.String(),
		HasDefault:     a.Default() != nil,
		PreferredOrder: orderToString(a.Order),
		FireAll:        a.FireAll,
		Meta:           a.Meta,
	}
	for _, col := range a.Columns() {
		cd, err := exportColumn(a, col, wireID, nextWireID)
		if err != nil {
			return AxisDoc{}, err
		}
		ad.Columns = append(ad.Columns, cd)
	}
	if def := a.Default(); def != nil {
		*nextWireID++
		wireID[def.ID] = *nextWireID
		ad.DefaultID = *nextWireID
		ad.DefaultMeta = def.Meta
	}
	return ad, nil
}

func exportColumn(a *axis.Axis, col *column.Column, wireID map[uint64]int64, nextWireID *int64) (ColumnDoc, error) {
	*nextWireID++
	wireID[col.ID] = *nextWireID

	cd := ColumnDoc{ID: *nextWireID, DisplayOrder: col.DisplayOrder, Meta: col.Meta}

	if a.Type == axis.Rule {
		if name, ok := col.Name(); ok {
			cd.Name = name
		}
		if provider, ok := col.Value.Expression().(exec.CmdProvider); ok {
			if src, ok := provider.Cmd(); ok {
				cd.Cmd = src
			}
		}
		return cd, nil
	}

	raw, err := valueToWire(a.Type, *col.Value)
	if err != nil {
		return ColumnDoc{}, err
	}
	cd.Value = raw
	return cd, nil
}

func orderToString(o axis.Order) string {
	if o == axis.Display {
		return "DISPLAY"
	}
	return "SORTED"
}

// valueToWire renders a standardized value.Value as the JSON payload for its
// owning axis's shape.
func valueToWire(axisType axis.Type, v value.Value) (json.RawMessage, error) {
	switch axisType {
	case axis.Range:
		rng := v.Range()
		low, err := scalarToRaw(rng.Low)
		if err != nil {
			return nil, err
		}
		high, err := scalarToRaw(rng.High)
		if err != nil {
			return nil, err
		}
		return json.Marshal(rangeDoc{Low: low, High: high})
	case axis.Set:
		rs := v.RangeSet()
		members := make([]json.RawMessage, 0, len(rs.Members()))
		for _, m := range rs.Members() {
			if m.Kind() == value.KindRange {
				rng := m.Range()
				low, err := scalarToRaw(rng.Low)
				if err != nil {
					return nil, err
				}
				high, err := scalarToRaw(rng.High)
				if err != nil {
					return nil, err
				}
				raw, err := json.Marshal(rangeDoc{Low: low, High: high})
				if err != nil {
					return nil, err
				}
				members = append(members, raw)
				continue
			}
			scalar, err := scalarToRaw(m)
			if err != nil {
				return nil, err
			}
			raw, err := json.Marshal(scalar)
			if err != nil {
				return nil, err
			}
			members = append(members, raw)
		}
		return json.Marshal(setDoc{Members: members})
	default:
		scalar, err := scalarToRaw(v)
		if err != nil {
			return nil, err
		}
		return json.Marshal(scalar)
	}
}

// scalarToRaw converts a scalar value.Value into a plain Go value suitable
// for json.Marshal and, on the way back in, suitable as value.Promote's raw
// input (see import.go).
func scalarToRaw(v value.Value) (interface{}, error) {
	switch v.Kind() {
	case value.KindString:
		return v.Str(), nil
	case value.KindLong:
		return v.Long(), nil
	case value.KindDouble:
		return v.Double(), nil
	case value.KindBigDecimal:
		return v.BigDecimal().String(), nil
	case value.KindDate:
		return v.Date().Format(time.RFC3339), nil
	case value.KindLatLon:
		return v.LatLon().String(), nil
	case value.KindPoint3D:
		return v.Point3D().String(), nil
	case value.KindComparable:
		return v.String(), nil
	default:
		return nil, fmt.Errorf("jsonio: kind %s has no scalar wire form", v.Kind())
	}
}

// cellValueToDoc renders a stored cell value (literal or exec.Executable)
// as a CellDoc's value/type/cmd/url/cache fields.
func cellValueToDoc(stored interface{}) (*CellDoc, error) {
	cd := &CellDoc{}
	if provider, ok := stored.(exec.CmdProvider); ok {
		if src, ok := provider.Cmd(); ok {
			cd.Type = "expr"
			cd.Cmd = src
			if up, ok := stored.(exec.URLProvider); ok {
				if u, ok := up.URL(); ok {
					cd.URL = u
				}
			}
			if cc, ok := stored.(exec.Cacheable); ok {
				cache := cc.IsCacheable()
				cd.Cache = &cache
			}
			return cd, nil
		}
	}
	raw, err := json.Marshal(stored)
	if err != nil {
		return nil, fmt.Errorf("jsonio: literal cell value: %w", err)
	}
	cd.Value = raw
	return cd, nil
}
