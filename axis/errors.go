// SPDX-License-Identifier: MIT
//
// errors.go — sentinel errors for the axis package.
//
// Error policy: only sentinel variables are exposed; callers use errors.Is
// to branch, and implementations attach call-specific context with %w
// wrapping.
package axis

import "errors"

// ErrOverlap indicates that an insert or update would violate a RANGE or SET
// axis's no-overlap invariant.
var ErrOverlap = errors.New("axis: overlap violates axis invariant")

// ErrDuplicateColumn indicates a DISCRETE or NEAREST axis already has a
// column with an equal value.
var ErrDuplicateColumn = errors.New("axis: duplicate column value")

// ErrInvalidOperation indicates an operation that is illegal given the
// axis's current configuration (e.g. moving the default column, adding a
// default column to a NEAREST axis).
var ErrInvalidOperation = errors.New("axis: invalid operation")

// ErrColumnNotFound indicates a reference to a column id or value the axis
// does not hold.
var ErrColumnNotFound = errors.New("axis: column not found")

// ErrWrongShape indicates standardize received a value whose shape does not
// match the axis's Type (e.g. a scalar for a RANGE axis).
var ErrWrongShape = errors.New("axis: value shape does not match axis type")
