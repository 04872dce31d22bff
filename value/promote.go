// SPDX-License-Identifier: MIT
package value

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ErrValueConversion is raised by Promote when the source cannot be coerced
// to the declared ValueType.
var ErrValueConversion = errors.New("value: cannot convert to declared type")

// ValueType names the scalar shape an axis declares for its columns. It
// reuses Kind's constants but is never KindRange or KindRangeSet: those are
// axis-shape wrappers (RANGE/SET axis types) applied on top of a scalar
// ValueType, not value types in their own right.
type ValueType = Kind

const (
	TypeString     = KindString
	TypeLong       = KindLong
	TypeDouble     = KindDouble
	TypeBigDecimal = KindBigDecimal
	TypeDate       = KindDate
	TypeLatLon     = KindLatLon
	TypePoint3D    = KindPoint3D
	TypeComparable = KindComparable
	TypeExpression = KindExpression
)

// Promote maps an arbitrary incoming comparable to the canonical Value shape
// for the given declared ValueType. Promotion is total (every supported
// ValueType has a documented conversion table) and idempotent: promoting an
// already-promoted Value of the matching Kind returns it unchanged.
//
// Promotion fails with ErrValueConversion when raw cannot be coerced; raw ==
// nil always fails with ErrInvalidValue (null inputs are a standardize-level
// concern, but Promote rejects them too since no ValueType accepts nil).
func Promote(vt ValueType, raw interface{}) (Value, error) {
	if raw == nil {
		return Value{}, ErrInvalidValue
	}
	if v, ok := raw.(Value); ok {
		if v.Kind() == vt {
			return v, nil // idempotent: already promoted to this Kind
		}
		// A previously promoted Value of a different Kind is re-derived from
		// its canonical string form, mirroring how a raw string would be
		// promoted; this keeps cross-ValueType coercions (e.g. Long -> String)
		// total rather than rejecting outright.
		raw = v.String()
	}

	switch vt {
	case KindString:
		return promoteString(raw)
	case KindLong:
		return promoteLong(raw)
	case KindDouble:
		return promoteDouble(raw)
	case KindBigDecimal:
		return promoteBigDecimal(raw)
	case KindDate:
		return promoteDate(raw)
	case KindLatLon:
		return promoteLatLon(raw)
	case KindPoint3D:
		return promotePoint3D(raw)
	case KindComparable:
		return promoteComparable(raw)
	case KindExpression:
		return promoteExpression(raw)
	default:
		return Value{}, fmt.Errorf("%w: unknown ValueType %v", ErrValueConversion, vt)
	}
}

func promoteString(raw interface{}) (Value, error) {
	switch r := raw.(type) {
	case string:
		return NewString(r), nil
	case fmt.Stringer:
		return NewString(r.String()), nil
	default:
		return NewString(fmt.Sprint(r)), nil
	}
}

func promoteLong(raw interface{}) (Value, error) {
	switch r := raw.(type) {
	case int64:
		return NewLong(r), nil
	case int:
		return NewLong(int64(r)), nil
	case int32:
		return NewLong(int64(r)), nil
	case float64:
		if r != float64(int64(r)) {
			return Value{}, fmt.Errorf("%w: %v is not integral", ErrValueConversion, r)
		}
		return NewLong(int64(r)), nil
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(r), 10, 64)
		if err != nil {
			return Value{}, fmt.Errorf("%w: %q: %v", ErrValueConversion, r, err)
		}
		return NewLong(n), nil
	default:
		return Value{}, fmt.Errorf("%w: %T is not a LONG source", ErrValueConversion, raw)
	}
}

func promoteDouble(raw interface{}) (Value, error) {
	switch r := raw.(type) {
	case float64:
		return NewDouble(r), nil
	case float32:
		return NewDouble(float64(r)), nil
	case int64:
		return NewDouble(float64(r)), nil
	case int:
		return NewDouble(float64(r)), nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(r), 64)
		if err != nil {
			return Value{}, fmt.Errorf("%w: %q: %v", ErrValueConversion, r, err)
		}
		return NewDouble(f), nil
	default:
		return Value{}, fmt.Errorf("%w: %T is not a DOUBLE source", ErrValueConversion, raw)
	}
}

func promoteBigDecimal(raw interface{}) (Value, error) {
	switch r := raw.(type) {
	case decimal.Decimal:
		return NewBigDecimal(r), nil
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(r))
		if err != nil {
			return Value{}, fmt.Errorf("%w: %q: %v", ErrValueConversion, r, err)
		}
		return NewBigDecimal(d), nil
	case int64:
		return NewBigDecimal(decimal.NewFromInt(r)), nil
	case float64:
		return NewBigDecimal(decimal.NewFromFloat(r)), nil
	default:
		return Value{}, fmt.Errorf("%w: %T is not a BIG_DECIMAL source", ErrValueConversion, raw)
	}
}

// dateLayouts are attempted in order when promoting a string to KindDate.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006/01/02",
}

func promoteDate(raw interface{}) (Value, error) {
	switch r := raw.(type) {
	case time.Time:
		return NewDate(r), nil
	case int64:
		return NewDate(time.UnixMilli(r)), nil
	case string:
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, strings.TrimSpace(r)); err == nil {
				return NewDate(t), nil
			}
		}
		return Value{}, fmt.Errorf("%w: %q matches no known date layout", ErrValueConversion, r)
	default:
		return Value{}, fmt.Errorf("%w: %T is not a DATE source", ErrValueConversion, raw)
	}
}

func promoteLatLon(raw interface{}) (Value, error) {
	switch r := raw.(type) {
	case LatLon:
		return NewLatLon(r), nil
	case string:
		ll, err := parseLatLon(r)
		if err != nil {
			return Value{}, err
		}
		return NewLatLon(ll), nil
	default:
		return Value{}, fmt.Errorf("%w: %T is not a LAT_LON source", ErrValueConversion, raw)
	}
}

func promotePoint3D(raw interface{}) (Value, error) {
	switch r := raw.(type) {
	case Point3D:
		return NewPoint3D(r), nil
	case string:
		p, err := parsePoint3D(r)
		if err != nil {
			return Value{}, err
		}
		return NewPoint3D(p), nil
	default:
		return Value{}, fmt.Errorf("%w: %T is not a POINT3D source", ErrValueConversion, raw)
	}
}

// promoteComparable implements the polymorphic COMPARABLE ValueType: a
// "a,b" string becomes a LatLon, a "a,b,c" string becomes a Point3D, an
// existing Comparable implementation is wrapped directly (identity for an
// already-Comparable payload).
func promoteComparable(raw interface{}) (Value, error) {
	switch r := raw.(type) {
	case Comparable:
		return NewComparable(r), nil
	case string:
		parts := strings.Split(r, ",")
		switch len(parts) {
		case 2:
			ll, err := parseLatLon(r)
			if err != nil {
				return Value{}, err
			}
			return NewLatLon(ll), nil
		case 3:
			p, err := parsePoint3D(r)
			if err != nil {
				return Value{}, err
			}
			return NewPoint3D(p), nil
		default:
			return Value{}, fmt.Errorf("%w: %q is neither a 2-tuple nor a 3-tuple", ErrValueConversion, r)
		}
	default:
		return Value{}, fmt.Errorf("%w: %T does not implement Comparable", ErrValueConversion, raw)
	}
}

// promoteExpression is the identity conversion for EXPRESSION: raw must
// already implement Expression.
func promoteExpression(raw interface{}) (Value, error) {
	e, ok := raw.(Expression)
	if !ok {
		return Value{}, fmt.Errorf("%w: %T does not implement Expression", ErrValueConversion, raw)
	}
	return NewExpression(e), nil
}

func parseLatLon(s string) (LatLon, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return LatLon{}, fmt.Errorf("%w: %q is not a lat,lon pair", ErrValueConversion, s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return LatLon{}, fmt.Errorf("%w: %q: %v", ErrValueConversion, s, err)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return LatLon{}, fmt.Errorf("%w: %q: %v", ErrValueConversion, s, err)
	}
	return LatLon{Lat: lat, Lon: lon}, nil
}

func parsePoint3D(s string) (Point3D, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return Point3D{}, fmt.Errorf("%w: %q is not an x,y,z triple", ErrValueConversion, s)
	}
	vals := make([]float64, 3)
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return Point3D{}, fmt.Errorf("%w: %q: %v", ErrValueConversion, s, err)
		}
		vals[i] = f
	}
	return Point3D{X: vals[0], Y: vals[1], Z: vals[2]}, nil
}
