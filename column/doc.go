// SPDX-License-Identifier: MIT
//
// Package column defines Column, the identified holder for a single
// matchable entity on an axis: a scalar value, a Range, a RangeSet, or an
// Expression, plus display/sort metadata and a meta-property bag.
//
// A Column's ID is stable for the lifetime of the process and encodes its
// owning axis in its high bits (see NewID), so reverse lookup from a column
// ID to its axis is a single arithmetic step rather than a scan.
package column
