// SPDX-License-Identifier: MIT
//
// Package value defines the closed set of scalar and composite shapes a
// decision-engine axis can hold, and the promotion rules that coerce an
// arbitrary incoming value to an axis's declared ValueType.
//
// A Value is a tagged union (Kind + payload) rather than an open interface
// hierarchy: the set of shapes is fixed by the domain (String, Long, Double,
// BigDecimal, Date, LatLon, Point3D, a polymorphic Comparable, an opaque
// Expression handle, a Range, and a RangeSet), so a closed representation
// lets every consumer switch on Kind exhaustively instead of relying on type
// assertions against an unbounded interface.
//
// Promotion (Promote) is total and deterministic: every supported Kind
// accepts a documented set of Go source types and fails with
// ErrValueConversion otherwise (a nil input fails with ErrInvalidValue).
// Promotion is idempotent: promoting an
// already-promoted Value of the same Kind returns it unchanged.
package value
