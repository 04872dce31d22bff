// SPDX-License-Identifier: MIT
package value

import "strings"

// RangeSet is an ordered sequence of discrete scalar Values and/or Ranges,
// the payload shape a SET axis column holds. Members are kept in the order
// they were supplied; Contains/Overlaps do not assume any internal ordering
// among members.
type RangeSet struct {
	members []Value // each element's Kind() is either a scalar kind or KindRange
}

// NewRangeSet builds a RangeSet from already-promoted members. Each member
// must be a scalar Value or a Value wrapping a *Range (see value.NewRange).
func NewRangeSet(members ...Value) *RangeSet {
	cp := make([]Value, len(members))
	copy(cp, members)
	return &RangeSet{members: cp}
}

// Members returns the RangeSet's members in insertion order. Callers must
// not mutate the returned slice.
func (rs *RangeSet) Members() []Value { return rs.members }

// Contains reports whether key matches any discrete member (by Equal) or
// falls inside any Range member (by Range.Contains returning 0).
func (rs *RangeSet) Contains(key Value) (bool, error) {
	for _, m := range rs.members {
		if m.Kind() == KindRange {
			c, err := m.Range().Contains(key)
			if err != nil {
				continue // member of a different scalar kind than key; skip
			}
			if c == 0 {
				return true, nil
			}
			continue
		}
		if m.Kind() != key.Kind() {
			continue
		}
		if m.Equal(key) {
			return true, nil
		}
	}
	return false, nil
}

// Overlaps performs the pairwise discrete-in-range and range-intersects-range
// checks backing SET axis insert/update validation: every member of rs is
// checked against every member of other.
func (rs *RangeSet) Overlaps(other *RangeSet) (bool, error) {
	for _, a := range rs.members {
		for _, b := range other.members {
			overlap, err := membersOverlap(a, b)
			if err != nil {
				continue
			}
			if overlap {
				return true, nil
			}
		}
	}
	return false, nil
}

// membersOverlap classifies a pair of RangeSet members (scalar-scalar,
// scalar-range, range-scalar, range-range) and applies the matching test.
func membersOverlap(a, b Value) (bool, error) {
	aIsRange := a.Kind() == KindRange
	bIsRange := b.Kind() == KindRange
	switch {
	case aIsRange && bIsRange:
		return a.Range().Overlaps(b.Range())
	case aIsRange && !bIsRange:
		c, err := a.Range().Contains(b)
		return err == nil && c == 0, nil
	case !aIsRange && bIsRange:
		c, err := b.Range().Contains(a)
		return err == nil && c == 0, nil
	default:
		return a.Kind() == b.Kind() && a.Equal(b), nil
	}
}

// compareKey orders two RangeSets by their first member's sort key, giving a
// SET axis a deterministic sort-by-value position. Empty RangeSets compare
// equal to each other and less than any non-empty RangeSet.
func (rs *RangeSet) compareKey(other *RangeSet) int {
	switch {
	case len(rs.members) == 0 && len(other.members) == 0:
		return 0
	case len(rs.members) == 0:
		return -1
	case len(other.members) == 0:
		return 1
	}
	a, b := rs.members[0], other.members[0]
	if a.Kind() == KindRange {
		a = a.Range().Low
	}
	if b.Kind() == KindRange {
		b = b.Range().Low
	}
	if c, err := a.Compare(b); err == nil {
		return c
	}
	return 0
}

func (rs *RangeSet) String() string {
	parts := make([]string, len(rs.members))
	for i, m := range rs.members {
		parts[i] = m.String()
	}
	return "{" + strings.Join(parts, ",") + "}"
}
