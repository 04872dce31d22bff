// SPDX-License-Identifier: MIT
package value

import (
	"errors"
	"fmt"
)

// ErrInvalidValue is raised when a null (absent) input is supplied where a
// value is required by axis-shape enforcement.
var ErrInvalidValue = errors.New("value: invalid (null) value")

// Range is a half-open interval [Low, High) over two scalar Values of the
// same Kind. Low must be <= High; constructors that receive Low > High swap
// the endpoints rather than reject them.
type Range struct {
	Low  Value
	High Value
}

// NewRange builds a Range from two already-promoted scalar endpoints,
// swapping them if low > high so the half-open invariant Low <= High always
// holds. Returns an error if low and high are not the same Kind or their
// Kind has no natural order.
func NewRange(low, high Value) (*Range, error) {
	c, err := low.Compare(high)
	if err != nil {
		return nil, fmt.Errorf("value: range endpoints: %w", err)
	}
	if c > 0 {
		low, high = high, low
	}
	return &Range{Low: low, High: high}, nil
}

// Contains is the three-way range comparator:
//
//	-1 if key <  Low
//	 0 if Low <= key < High
//	+1 if key >= High
//
// This is consumed directly by the RANGE axis binary-search comparator
// (compare(column, key) = -sign(Contains(key))).
func (r *Range) Contains(key Value) (int, error) {
	cLow, err := key.Compare(r.Low)
	if err != nil {
		return 0, err
	}
	if cLow < 0 {
		return -1, nil
	}
	cHigh, err := key.Compare(r.High)
	if err != nil {
		return 0, err
	}
	if cHigh >= 0 {
		return 1, nil
	}
	return 0, nil
}

// Overlaps reports whether r and other (as half-open intervals) intersect:
// new.low < sweep.high && sweep.low < new.high.
func (r *Range) Overlaps(other *Range) (bool, error) {
	c1, err := r.Low.Compare(other.High)
	if err != nil {
		return false, err
	}
	c2, err := other.Low.Compare(r.High)
	if err != nil {
		return false, err
	}
	return c1 < 0 && c2 < 0, nil
}

// compareKey orders two Ranges by Low, tie-broken by High; used to keep a
// RANGE axis's column catalog sorted by value.
func (r *Range) compareKey(other *Range) int {
	if c, err := r.Low.Compare(other.Low); err == nil && c != 0 {
		return c
	}
	if c, err := r.High.Compare(other.High); err == nil {
		return c
	}
	return 0
}

func (r *Range) String() string {
	return fmt.Sprintf("[%s,%s)", r.Low.String(), r.High.String())
}
