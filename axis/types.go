// SPDX-License-Identifier: MIT
package axis

import (
	"strings"
	"sync/atomic"

	"github.com/google/btree"
	"github.com/katalvlaran/ncube/column"
	"github.com/katalvlaran/ncube/value"
)

// Type is the matching discipline an axis declares.
type Type uint8

const (
	Discrete Type = iota
	Range
	Set
	Nearest
	Rule
)

func (t Type) String() string {
	switch t {
	case Discrete:
		return "DISCRETE"
	case Range:
		return "RANGE"
	case Set:
		return "SET"
	case Nearest:
		return "NEAREST"
	case Rule:
		return "RULE"
	default:
		return "UNKNOWN"
	}
}

// Order controls what order Columns() returns columns in: by value (for
// binary search, the default for every axis type except RULE) or by
// DisplayOrder (UI-facing output, and the only valid order for RULE axes,
// which execute in declared order).
type Order uint8

const (
	Sorted Order = iota
	Display
)

// setItem is the btree payload type backing both halves of a SET axis's
// dual index (discrete members and range members). Ordering is delegated to
// value.Value.Compare, so a single comparator covers both trees.
type setItem struct {
	key value.Value
	col *column.Column
}

func setItemLess(a, b setItem) bool {
	c, err := a.key.Compare(b.key)
	return err == nil && c < 0
}

// Axis is a typed, identified column sequence implementing one of the five
// matching disciplines, plus the auxiliary indices that keep lookups fast.
//
// Invariants (enforced by the constructors and mutators in this package,
// never by callers poking fields directly):
//   - Type == Rule  => ValueType == value.TypeExpression, Order == Display.
//   - Type == Nearest => no default column, all column values share a Kind.
//   - Type == Range => no two Range columns overlap.
//   - Type == Set => no two RangeSet columns overlap.
//   - Type == Discrete => all column values are distinct after promotion.
//   - columns is kept sorted by value for Discrete/Range/Set axes; Nearest
//     and Rule axes keep insertion order.
//   - defaultCol, if present, is always the logical last entry.
type Axis struct {
	ID        uint64
	Name      string
	Type      Type
	ValueType value.ValueType
	Order     Order
	FireAll   bool
	Meta      map[string]interface{}

	columns    []*column.Column
	defaultCol *column.Column
	counter    uint64 // monotonic column-id counter, scoped to this axis

	idToCol   map[uint64]*column.Column
	nameToCol map[string]*column.Column // case-insensitive, RULE name lookup

	discreteToCol *btree.BTreeG[setItem] // SET only
	rangeToCol    *btree.BTreeG[setItem] // SET only, key.Kind()==KindRange
}

// New constructs an empty Axis. id must be unique across the owning cube;
// Cube.AddAxis is responsible for allocating it.
//
// Rule axes are forced to ValueType=TypeExpression and Order=Display;
// passing a mismatched valueType/order for a Rule axis is corrected rather
// than rejected, since the invariant is definitional, not a caller choice.
func New(id uint64, name string, typ Type, valueType value.ValueType, order Order) *Axis {
	if typ == Rule {
		valueType = value.TypeExpression
		order = Display
	}
	a := &Axis{
		ID:        id,
		Name:      name,
		Type:      typ,
		ValueType: valueType,
		Order:     order,
		Meta:      make(map[string]interface{}),
		idToCol:   make(map[uint64]*column.Column),
		nameToCol: make(map[string]*column.Column),
	}
	if typ == Set {
		a.discreteToCol = btree.NewG(32, setItemLess)
		a.rangeToCol = btree.NewG(32, setItemLess)
	}
	return a
}

// nextCounter hands out the next monotonic per-axis column-id counter.
// Atomic because axes may, in principle, be inspected from a reader
// goroutine while the owning cube's writer goroutine mutates them; the
// counter itself still requires the cube's catalog lock for the
// read-modify-write of the columns slice.
func (a *Axis) nextCounter() uint64 {
	return atomic.AddUint64(&a.counter, 1)
}

// Columns returns the axis's non-default columns in the axis's declared
// Order: Sorted keeps catalog order (by value for DISCRETE/RANGE/SET,
// insertion order for NEAREST), Display sorts by DisplayOrder. The default
// column, if any, is never included; use Default.
func (a *Axis) Columns() []*column.Column {
	out := make([]*column.Column, len(a.columns))
	copy(out, a.columns)
	if a.Order == Display {
		sortByDisplayOrder(out)
	}
	return out
}

// Default returns the axis's default column, or nil if it has none.
func (a *Axis) Default() *column.Column { return a.defaultCol }

// ColumnByID returns the column with the given id in O(1).
func (a *Axis) ColumnByID(id uint64) (*column.Column, bool) {
	c, ok := a.idToCol[id]
	return c, ok
}

// ColumnByName returns the column whose "name" meta-property matches name,
// case-insensitively — the lookup RULE axes use to locate a named rule.
func (a *Axis) ColumnByName(name string) (*column.Column, bool) {
	c, ok := a.nameToCol[strings.ToLower(name)]
	return c, ok
}

// Len returns the number of non-default columns.
func (a *Axis) Len() int { return len(a.columns) }

func sortByDisplayOrder(cols []*column.Column) {
	// Insertion sort is adequate: Columns() is called for UI-facing output,
	// not on the evaluation hot path, and axis column counts are small
	// relative to cell counts in practice.
	for i := 1; i < len(cols); i++ {
		j := i
		for j > 0 && cols[j-1].DisplayOrder > cols[j].DisplayOrder {
			cols[j-1], cols[j] = cols[j], cols[j-1]
			j--
		}
	}
}
