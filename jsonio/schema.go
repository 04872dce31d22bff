// SPDX-License-Identifier: MIT
//
// schema.go — the wire document shapes for the cube JSON format.
package jsonio

import "encoding/json"

// CubeDoc is the top-level wire document for one cube.
type CubeDoc struct {
	Name         string                 `json:"ncube"`
	DefaultValue *CellDoc               `json:"defaultValue,omitempty"`
	Meta         map[string]interface{} `json:"meta,omitempty"`
	Axes         []AxisDoc              `json:"axes"`
	Cells        []CellDoc              `json:"cells"`
	SHA1         string                 `json:"sha1,omitempty"`
}

// AxisDoc is one axis: name, type, valueType, hasDefault, preferredOrder,
// fireAll, columns[].
type AxisDoc struct {
	Name           string                 `json:"name"`
	Type           string                 `json:"type"`
	ValueType      string                 `json:"valueType"`
	HasDefault     bool                   `json:"hasDefault"`
	PreferredOrder string                 `json:"preferredOrder"`
	FireAll        bool                   `json:"fireAll"`
	Meta           map[string]interface{} `json:"meta,omitempty"`
	Columns        []ColumnDoc            `json:"columns"`
	DefaultID      int64                  `json:"defaultId,omitempty"`
	DefaultMeta    map[string]interface{} `json:"defaultMeta,omitempty"`
}

// ColumnDoc is one column. Value holds the axis-shape-appropriate payload
// (scalar, {"low","high"}, or {"members":[...]}) for every axis type except
// RULE, which instead carries Name/Cmd (the rule's declared name and its
// ruleengine source text).
type ColumnDoc struct {
	ID           int64                  `json:"id"`
	Value        json.RawMessage        `json:"value,omitempty"`
	Name         string                 `json:"name,omitempty"`
	Cmd          string                 `json:"cmd,omitempty"`
	DisplayOrder int32                  `json:"displayOrder"`
	Meta         map[string]interface{} `json:"meta,omitempty"`
}

// CellDoc is one cell: the set of column ids identifying it (by wire-local
// ColumnDoc.ID, not the cube's runtime column id) and a value. Type "expr"
// means Cmd holds ruleengine source to compile into an executable cell;
// empty Type is a literal JSON value. URL/Cmd/Cache mirror the executable
// cell's optional capability set (URLProvider/CmdProvider/Cacheable).
type CellDoc struct {
	ColumnIDs []int64         `json:"columnIds,omitempty"`
	Value     json.RawMessage `json:"value,omitempty"`
	Type      string          `json:"type,omitempty"`
	Cmd       string          `json:"cmd,omitempty"`
	URL       string          `json:"url,omitempty"`
	Cache     *bool           `json:"cache,omitempty"`
}

// rangeDoc is the wire shape of a RANGE axis column's value, and of a range
// member inside a SET axis column's "members" array.
type rangeDoc struct {
	Low  interface{} `json:"low"`
	High interface{} `json:"high"`
}

// setDoc is the wire shape of a SET axis column's value.
type setDoc struct {
	Members []json.RawMessage `json:"members"`
}
