// SPDX-License-Identifier: MIT
package value

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Kind identifies which payload field of a Value is meaningful.
// Complexity: comparisons and switches on Kind are O(1).
type Kind uint8

const (
	KindString Kind = iota
	KindLong
	KindDouble
	KindBigDecimal
	KindDate
	KindLatLon
	KindPoint3D
	KindComparable
	KindExpression
	KindRange
	KindRangeSet
)

// String renders the Kind's canonical name, used in error messages and the
// JSON wire format's "valueType" field.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "STRING"
	case KindLong:
		return "LONG"
	case KindDouble:
		return "DOUBLE"
	case KindBigDecimal:
		return "BIG_DECIMAL"
	case KindDate:
		return "DATE"
	case KindLatLon:
		return "LAT_LON"
	case KindPoint3D:
		return "POINT3D"
	case KindComparable:
		return "COMPARABLE"
	case KindExpression:
		return "EXPRESSION"
	case KindRange:
		return "RANGE"
	case KindRangeSet:
		return "RANGE_SET"
	default:
		return "UNKNOWN"
	}
}

// Comparable is the polymorphic scalar escape hatch: any Go type wishing to
// participate in a COMPARABLE-typed axis implements this interface itself.
type Comparable interface {
	// CompareTo returns <0, 0, >0 as the receiver is less than, equal to, or
	// greater than other. other is guaranteed to be the same concrete type
	// by axis-level uniqueness enforcement upstream (promotion never mixes
	// concrete Comparable types on one axis).
	CompareTo(other Comparable) (int, error)
}

// LatLon is a geographic coordinate in decimal degrees.
type LatLon struct {
	Lat float64
	Lon float64
}

func (l LatLon) String() string { return fmt.Sprintf("%g,%g", l.Lat, l.Lon) }

// Point3D is a point in Euclidean 3-space.
type Point3D struct {
	X, Y, Z float64
}

func (p Point3D) String() string { return fmt.Sprintf("%g,%g,%g", p.X, p.Y, p.Z) }

// Expression is the opaque command handle a RULE-axis column or a cube cell
// holds. The core never dispatches it; it only asks whether the stored value
// satisfies this interface (see package exec.Executable) and, if so, invokes
// Execute through the collaborator contract.
type Expression interface {
	// Only fmt.Stringer is required here, so package value does not import
	// package exec. exec.Executable does not declare String, so an
	// Executable is accepted as an Expression only if it also implements
	// String (ruleengine.Expr does).
	fmt.Stringer
}

// Value is a closed tagged union over the decision-engine's scalar and
// composite value shapes. The zero Value is not meaningful on its own; use
// the New* constructors.
type Value struct {
	kind Kind

	str     string
	i64     int64
	f64     float64
	dec     decimal.Decimal
	date    time.Time
	latlon  LatLon
	point3d Point3D
	cmp     Comparable
	expr    Expression
	rng     *Range
	rangeS  *RangeSet
}

// Kind reports the payload shape held by v.
func (v Value) Kind() Kind { return v.kind }

func NewString(s string) Value              { return Value{kind: KindString, str: s} }
func NewLong(n int64) Value                 { return Value{kind: KindLong, i64: n} }
func NewDouble(f float64) Value             { return Value{kind: KindDouble, f64: f} }
func NewBigDecimal(d decimal.Decimal) Value { return Value{kind: KindBigDecimal, dec: d} }
func NewDate(t time.Time) Value             { return Value{kind: KindDate, date: t.UTC()} }
func NewLatLon(ll LatLon) Value             { return Value{kind: KindLatLon, latlon: ll} }
func NewPoint3D(p Point3D) Value            { return Value{kind: KindPoint3D, point3d: p} }
func NewComparable(c Comparable) Value      { return Value{kind: KindComparable, cmp: c} }
func NewExpression(e Expression) Value      { return Value{kind: KindExpression, expr: e} }
func NewRangeValue(r *Range) Value          { return Value{kind: KindRange, rng: r} }
func NewRangeSetValue(rs *RangeSet) Value   { return Value{kind: KindRangeSet, rangeS: rs} }

// Str returns the payload for KindString; callers must check Kind first.
func (v Value) Str() string { return v.str }

// Long returns the payload for KindLong.
func (v Value) Long() int64 { return v.i64 }

// Double returns the payload for KindDouble.
func (v Value) Double() float64 { return v.f64 }

// BigDecimal returns the payload for KindBigDecimal.
func (v Value) BigDecimal() decimal.Decimal { return v.dec }

// Date returns the payload for KindDate.
func (v Value) Date() time.Time { return v.date }

// LatLon returns the payload for KindLatLon.
func (v Value) LatLon() LatLon { return v.latlon }

// Point3D returns the payload for KindPoint3D.
func (v Value) Point3D() Point3D { return v.point3d }

// Comparable returns the payload for KindComparable.
func (v Value) Comparable() Comparable { return v.cmp }

// Expression returns the payload for KindExpression.
func (v Value) Expression() Expression { return v.expr }

// Range returns the payload for KindRange.
func (v Value) Range() *Range { return v.rng }

// RangeSet returns the payload for KindRangeSet.
func (v Value) RangeSet() *RangeSet { return v.rangeS }

// String renders a human-readable form of v, used in error messages, the
// JSON exporter, and column display fallbacks.
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindLong:
		return fmt.Sprintf("%d", v.i64)
	case KindDouble:
		return fmt.Sprintf("%g", v.f64)
	case KindBigDecimal:
		return v.dec.String()
	case KindDate:
		return v.date.Format(time.RFC3339)
	case KindLatLon:
		return v.latlon.String()
	case KindPoint3D:
		return v.point3d.String()
	case KindComparable:
		return fmt.Sprintf("%v", v.cmp)
	case KindExpression:
		if v.expr != nil {
			return v.expr.String()
		}
		return "<expression>"
	case KindRange:
		return v.rng.String()
	case KindRangeSet:
		return v.rangeS.String()
	default:
		return "<invalid value>"
	}
}

// numeric converts a scalar numeric-ish Kind to a float64 for distance and
// ordering purposes. Returns an error for non-numeric kinds.
func (v Value) numeric() (float64, error) {
	switch v.kind {
	case KindLong:
		return float64(v.i64), nil
	case KindDouble:
		return v.f64, nil
	case KindBigDecimal:
		f, _ := v.dec.Float64()
		return f, nil
	default:
		return 0, fmt.Errorf("value: kind %s is not numeric", v.kind)
	}
}

// Compare defines the total order used to keep an axis's column catalog
// sorted by value (DISCRETE/RANGE/SET binary search, deterministic RangeSet
// ordering). It returns <0, 0, >0, or an error if the two values are not of
// the same Kind or the Kind has no natural order (KindExpression).
//
// Complexity: O(1) for scalar kinds; O(len) for strings.
func (v Value) Compare(other Value) (int, error) {
	if v.kind != other.kind {
		return 0, fmt.Errorf("value: cannot compare %s with %s", v.kind, other.kind)
	}
	switch v.kind {
	case KindString:
		return strings.Compare(v.str, other.str), nil
	case KindLong:
		return cmpInt64(v.i64, other.i64), nil
	case KindDouble:
		return cmpFloat64(v.f64, other.f64), nil
	case KindBigDecimal:
		return v.dec.Cmp(other.dec), nil
	case KindDate:
		switch {
		case v.date.Before(other.date):
			return -1, nil
		case v.date.After(other.date):
			return 1, nil
		default:
			return 0, nil
		}
	case KindLatLon:
		if c := cmpFloat64(v.latlon.Lat, other.latlon.Lat); c != 0 {
			return c, nil
		}
		return cmpFloat64(v.latlon.Lon, other.latlon.Lon), nil
	case KindPoint3D:
		if c := cmpFloat64(v.point3d.X, other.point3d.X); c != 0 {
			return c, nil
		}
		if c := cmpFloat64(v.point3d.Y, other.point3d.Y); c != 0 {
			return c, nil
		}
		return cmpFloat64(v.point3d.Z, other.point3d.Z), nil
	case KindComparable:
		if v.cmp == nil || other.cmp == nil {
			return 0, fmt.Errorf("value: nil Comparable payload")
		}
		return v.cmp.CompareTo(other.cmp)
	case KindRange:
		return v.rng.compareKey(other.rng), nil
	case KindRangeSet:
		return v.rangeS.compareKey(other.rangeS), nil
	default:
		return 0, fmt.Errorf("value: kind %s has no natural order", v.kind)
	}
}

// Equal reports whether v and other compare equal; it is a convenience
// wrapper used by DISCRETE/NEAREST uniqueness checks.
func (v Value) Equal(other Value) bool {
	c, err := v.Compare(other)
	return err == nil && c == 0
}

// Distance implements the NEAREST axis's distance function: Euclidean for
// Point3D, great-circle (haversine, in kilometers) for LatLon, absolute
// numeric difference otherwise. Returns an error if v and other are not the
// same Kind or the Kind supports no distance metric.
func (v Value) Distance(other Value) (float64, error) {
	if v.kind != other.kind {
		return 0, fmt.Errorf("value: cannot measure distance between %s and %s", v.kind, other.kind)
	}
	switch v.kind {
	case KindPoint3D:
		dx := v.point3d.X - other.point3d.X
		dy := v.point3d.Y - other.point3d.Y
		dz := v.point3d.Z - other.point3d.Z
		return math.Sqrt(dx*dx + dy*dy + dz*dz), nil
	case KindLatLon:
		return haversineKM(v.latlon, other.latlon), nil
	default:
		a, err := v.numeric()
		if err != nil {
			return 0, fmt.Errorf("value: kind %s has no distance metric", v.kind)
		}
		b, err := other.numeric()
		if err != nil {
			return 0, fmt.Errorf("value: kind %s has no distance metric", v.kind)
		}
		return math.Abs(a - b), nil
	}
}

func cmpInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmpFloat64(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
