// SPDX-License-Identifier: MIT
package jsonio

import (
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/ncube/axis"
	"github.com/katalvlaran/ncube/cube"
	"github.com/katalvlaran/ncube/ruleengine"
	"github.com/katalvlaran/ncube/value"
)

// logger is used only for the sha1-mismatch warning Unmarshal emits; it is
// package-level because Import has no cube to hang a *logrus.Logger off of
// until construction completes.
var logger = logrus.New()

// Unmarshal parses JSON text into a CubeDoc and imports it via Import.
func Unmarshal(data []byte) (*cube.Cube, error) {
	var doc CubeDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("jsonio: invalid JSON: %w", err)
	}
	return Import(&doc)
}

// Import builds a *cube.Cube from doc. Columns of a DISCRETE, RANGE or SET
// axis are accepted in any order, since AddColumn inserts them at their
// sorted position; NEAREST and RULE columns keep the document's order. The
// incoming sha1 field, if present, is compared against the recomputed hash
// and only logged on mismatch — never trusted.
func Import(doc *CubeDoc) (*cube.Cube, error) {
	c := cube.New(doc.Name)
	if doc.Meta != nil {
		c.Meta = doc.Meta
	}

	// wireToRuntime maps each ColumnDoc.ID (and each axis's synthetic
	// default-column wire id) to the runtime column id AddColumn/
	// AddDefaultColumn actually assigned, so cells can be re-keyed.
	wireToRuntime := make(map[int64]uint64)

	for _, ad := range doc.Axes {
		if err := importAxis(c, ad, wireToRuntime); err != nil {
			return nil, fmt.Errorf("jsonio: axis %q: %w", ad.Name, err)
		}
	}

	for i, cd := range doc.Cells {
		ids := make([]uint64, 0, len(cd.ColumnIDs))
		for _, wid := range cd.ColumnIDs {
			rid, ok := wireToRuntime[wid]
			if !ok {
				return nil, fmt.Errorf("jsonio: cell %d references unknown column wire id %d", i, wid)
			}
			ids = append(ids, rid)
		}
		val, err := cellDocToValue(cd)
		if err != nil {
			return nil, fmt.Errorf("jsonio: cell %d: %w", i, err)
		}
		if err := c.SetCell(ids, val); err != nil {
			return nil, fmt.Errorf("jsonio: cell %d: %w", i, err)
		}
	}

	if doc.DefaultValue != nil {
		v, err := cellDocToValue(*doc.DefaultValue)
		if err != nil {
			return nil, fmt.Errorf("jsonio: cube default value: %w", err)
		}
		c.DefaultValue = v
	}

	computed := c.SHA1()
	if doc.SHA1 != "" && doc.SHA1 != computed {
		logger.WithFields(logrus.Fields{
			"cube": doc.Name, "stored_sha1": doc.SHA1, "computed_sha1": computed,
		}).Warn("jsonio: imported cube's stored sha1 does not match recomputed value; recomputed value is authoritative")
	}

	return c, nil
}

func importAxis(c *cube.Cube, ad AxisDoc, wireToRuntime map[int64]uint64) error {
	typ, err := axisTypeFromString(ad.Type)
	if err != nil {
		return err
	}
	vt, err := valueTypeFromString(ad.ValueType)
	if err != nil {
		return err
	}
	order := axis.Sorted
	if ad.PreferredOrder == "DISPLAY" {
		order = axis.Display
	}

	a, err := c.AddAxis(ad.Name, typ, vt, order, ad.FireAll)
	if err != nil {
		return err
	}
	if ad.Meta != nil {
		a.Meta = ad.Meta
	}

	for _, cd := range ad.Columns {
		raw, meta, err := columnDocToInput(typ, cd)
		if err != nil {
			return fmt.Errorf("column %d: %w", cd.ID, err)
		}
		col, err := c.AddColumnTo(ad.Name, raw, meta)
		if err != nil {
			return fmt.Errorf("column %d: %w", cd.ID, err)
		}
		wireToRuntime[cd.ID] = col.ID
	}

	if ad.HasDefault {
		col, err := c.AddDefaultColumnTo(ad.Name, ad.DefaultMeta)
		if err != nil {
			return err
		}
		wireToRuntime[ad.DefaultID] = col.ID
	}
	return nil
}

// columnDocToInput builds the raw value AddColumn expects, plus the meta
// map, for one ColumnDoc under the given axis type.
func columnDocToInput(typ axis.Type, cd ColumnDoc) (interface{}, map[string]interface{}, error) {
	meta := cd.Meta
	if typ == axis.Rule {
		expr, err := ruleengine.New(cd.Cmd)
		if err != nil {
			return nil, nil, err
		}
		if meta == nil {
			meta = make(map[string]interface{})
		}
		if cd.Name != "" {
			meta["name"] = cd.Name
		}
		return expr, meta, nil
	}

	switch typ {
	case axis.Range:
		var rd rangeDoc
		if err := json.Unmarshal(cd.Value, &rd); err != nil {
			return nil, meta, fmt.Errorf("range value: %w", err)
		}
		return axis.RangeInput{Low: rd.Low, High: rd.High}, meta, nil
	case axis.Set:
		var sd setDoc
		if err := json.Unmarshal(cd.Value, &sd); err != nil {
			return nil, meta, fmt.Errorf("set value: %w", err)
		}
		members := make([]interface{}, 0, len(sd.Members))
		for _, raw := range sd.Members {
			member, err := decodeSetMember(raw)
			if err != nil {
				return nil, meta, err
			}
			members = append(members, member)
		}
		return axis.SetInput{Members: members}, meta, nil
	default:
		var scalar interface{}
		if err := json.Unmarshal(cd.Value, &scalar); err != nil {
			return nil, meta, fmt.Errorf("scalar value: %w", err)
		}
		return scalar, meta, nil
	}
}

// decodeSetMember distinguishes a range member ({"low":...,"high":...})
// from a scalar member inside a SET axis column's "members" array.
func decodeSetMember(raw json.RawMessage) (interface{}, error) {
	var probe map[string]interface{}
	if err := json.Unmarshal(raw, &probe); err == nil {
		if _, hasLow := probe["low"]; hasLow {
			if _, hasHigh := probe["high"]; hasHigh {
				return axis.RangeInput{Low: probe["low"], High: probe["high"]}, nil
			}
		}
	}
	var scalar interface{}
	if err := json.Unmarshal(raw, &scalar); err != nil {
		return nil, fmt.Errorf("set member: %w", err)
	}
	return scalar, nil
}

func cellDocToValue(cd CellDoc) (interface{}, error) {
	if cd.Type == "expr" {
		return ruleengine.New(cd.Cmd)
	}
	if len(cd.Value) == 0 {
		return nil, nil
	}
	var v interface{}
	if err := json.Unmarshal(cd.Value, &v); err != nil {
		return nil, fmt.Errorf("cell value: %w", err)
	}
	return v, nil
}

func axisTypeFromString(s string) (axis.Type, error) {
	switch s {
	case "DISCRETE":
		return axis.Discrete, nil
	case "RANGE":
		return axis.Range, nil
	case "SET":
		return axis.Set, nil
	case "NEAREST":
		return axis.Nearest, nil
	case "RULE":
		return axis.Rule, nil
	default:
		return 0, fmt.Errorf("jsonio: unknown axis type %q", s)
	}
}

func valueTypeFromString(s string) (value.ValueType, error) {
	switch s {
	case "STRING":
		return value.TypeString, nil
	case "LONG":
		return value.TypeLong, nil
	case "DOUBLE":
		return value.TypeDouble, nil
	case "BIG_DECIMAL":
		return value.TypeBigDecimal, nil
	case "DATE":
		return value.TypeDate, nil
	case "LAT_LON":
		return value.TypeLatLon, nil
	case "POINT3D":
		return value.TypePoint3D, nil
	case "COMPARABLE":
		return value.TypeComparable, nil
	case "EXPRESSION":
		return value.TypeExpression, nil
	default:
		return 0, fmt.Errorf("jsonio: unknown value type %q", s)
	}
}
