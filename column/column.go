// SPDX-License-Identifier: MIT
package column

import (
	"math"

	"github.com/katalvlaran/ncube/value"
)

// AxisIDScale is the multiplier embedding an axis's id in the high bits of
// every column id it owns (column.ID = axis.ID*AxisIDScale + counter). A
// value of 10^12 leaves ample room below it for per-axis monotonic counters;
// in a uint64 id it keeps axis ids below about 18.4 million (2^64 / 10^12).
const AxisIDScale = uint64(1_000_000_000_000)

// DefaultCounter is the column-id counter reserved for an axis's default
// column (axis.ID*AxisIDScale + DefaultCounter), and also the DisplayOrder
// every default column carries.
const DefaultCounter = uint64(math.MaxInt32)

// DisplayOrderMax is the DisplayOrder value reserved for the default column;
// it is numerically identical to DefaultCounter, so a default column is
// recognizable from either field.
const DisplayOrderMax = int32(math.MaxInt32)

// NewID derives a column id that embeds its owning axis in the high bits.
func NewID(axisID uint64, counter uint64) uint64 {
	return axisID*AxisIDScale + counter
}

// NewDefaultID derives the fixed id reserved for an axis's default column.
func NewDefaultID(axisID uint64) uint64 {
	return NewID(axisID, DefaultCounter)
}

// AxisIDOf recovers the owning axis id from a column id in O(1), the
// reverse-lookup the id encoding exists to make cheap.
func AxisIDOf(columnID uint64) uint64 {
	return columnID / AxisIDScale
}

// Column is a single matchable entity on an axis. Value is nil only for the
// axis's default column (at most one per axis); every other column carries a
// standardized value.Value (a scalar, a Range, a RangeSet, or an
// Expression, depending on the owning axis's type).
//
// Meta is shared, not deep-copied, by Clone.
type Column struct {
	ID           uint64
	Value        *value.Value
	DisplayOrder int32
	Meta         map[string]interface{}
	IsDefault    bool
}

// NewDefault builds the sentinel default column for axisID: no value,
// DisplayOrder pinned to DisplayOrderMax so it always sorts last in
// display order.
func NewDefault(axisID uint64) *Column {
	return &Column{
		ID:           NewDefaultID(axisID),
		Value:        nil,
		DisplayOrder: DisplayOrderMax,
		Meta:         make(map[string]interface{}),
		IsDefault:    true,
	}
}

// New builds a regular (non-default) column carrying v.
func New(id uint64, v value.Value, displayOrder int32) *Column {
	return &Column{
		ID:           id,
		Value:        &v,
		DisplayOrder: displayOrder,
		Meta:         make(map[string]interface{}),
	}
}

// Name returns the case-preserving "name" meta-property used by RULE axes
// to look a column up by name, and false if no name has been set.
func (c *Column) Name() (string, bool) {
	v, ok := c.Meta["name"]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Clone returns a shallow copy of c: the Meta map is shared, not
// deep-copied.
func (c *Column) Clone() *Column {
	cp := *c
	return &cp
}
