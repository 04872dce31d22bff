// SPDX-License-Identifier: MIT
//
// find.go — the per-type dispatcher. Find is the single-match primitive used
// by cube evaluation for DISCRETE/RANGE/SET/NEAREST axes; FindMulti is the
// enumeration primitive the cube's variable-radix evaluation loop falls back
// to when an axis is configured to fire more than one column per pass.
package axis

import (
	"fmt"

	"github.com/katalvlaran/ncube/column"
	"github.com/katalvlaran/ncube/value"
)

// Find locates the single column key binds to under the axis's matching
// discipline, falling back to the default column (or nil) on a miss. key
// must already be promoted to the axis's ValueType (see value.Promote);
// Find does not promote it. For RANGE and SET axes key is a scalar probe,
// not a Range or RangeSet.
//
// RULE axes are the one exception: key must be KindString holding the rule
// column's name. The cube's own evaluation loop never calls Find for RULE
// axes — it enumerates every rule column's expression directly — this
// method exists for name-based lookups outside that loop.
func (a *Axis) Find(key value.Value) (*column.Column, error) {
	switch a.Type {
	case Discrete:
		return a.findDiscrete(key)
	case Range:
		return a.findRange(key)
	case Set:
		return a.findSet(key)
	case Nearest:
		return a.findNearest(key)
	case Rule:
		return a.findRule(key.Str())
	default:
		return nil, fmt.Errorf("axis: unknown type %v", a.Type)
	}
}

// FindMulti returns every column key binds to. For axes with FireAll unset,
// this is exactly the single Find result (or empty if there was none). With
// FireAll set on a RANGE or SET axis it scans every column for one
// containing key instead of stopping at the first; mutate.go enforces
// non-overlap on every insert and update, so this path also returns at most
// one column.
//
// Complexity: that of Find without FireAll; O(n) with FireAll on RANGE/SET.
func (a *Axis) FindMulti(key value.Value) ([]*column.Column, error) {
	if !a.FireAll || (a.Type != Range && a.Type != Set) {
		col, err := a.Find(key)
		if err != nil {
			return nil, err
		}
		if col == nil {
			return nil, nil
		}
		return []*column.Column{col}, nil
	}

	var out []*column.Column
	switch a.Type {
	case Range:
		for _, col := range a.columns {
			rng := col.Value.Range()
			if c, err := rng.Contains(key); err == nil && c == 0 {
				out = append(out, col)
			}
		}
	case Set:
		for _, col := range a.columns {
			rs := col.Value.RangeSet()
			if ok, err := rs.Contains(key); err == nil && ok {
				out = append(out, col)
			}
		}
	}
	if len(out) == 0 && a.defaultCol != nil {
		out = append(out, a.defaultCol)
	}
	return out, nil
}
