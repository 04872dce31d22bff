// SPDX-License-Identifier: MIT
package axis

import (
	"fmt"

	"github.com/katalvlaran/ncube/value"
)

// RangeInput is the ergonomic constructor shape Standardize accepts for a
// RANGE axis's value: raw, not-yet-promoted endpoints. Low/High are promoted
// to the axis's ValueType and swapped if Low > High.
type RangeInput struct {
	Low  interface{}
	High interface{}
}

// SetInput is the ergonomic constructor shape Standardize accepts for a SET
// axis's value: each Members element is either a scalar raw value or a
// RangeInput.
type SetInput struct {
	Members []interface{}
}

// Standardize adds axis-shape enforcement on top of value.Promote:
// DISCRETE/NEAREST promote to a scalar, RANGE requires a Range and
// promotes both endpoints, SET requires a RangeSet and promotes each
// member, RULE requires the value to implement value.Expression. Null
// inputs raise value.ErrInvalidValue.
func (a *Axis) Standardize(raw interface{}) (value.Value, error) {
	if raw == nil {
		return value.Value{}, value.ErrInvalidValue
	}
	switch a.Type {
	case Discrete, Nearest:
		return value.Promote(a.ValueType, raw)
	case Range:
		return a.standardizeRange(raw)
	case Set:
		return a.standardizeSet(raw)
	case Rule:
		return value.Promote(value.TypeExpression, raw)
	default:
		return value.Value{}, fmt.Errorf("%w: axis %q has unknown type", ErrWrongShape, a.Name)
	}
}

func (a *Axis) standardizeRange(raw interface{}) (value.Value, error) {
	switch r := raw.(type) {
	case value.Value:
		if r.Kind() == value.KindRange {
			return r, nil // idempotent
		}
		return value.Value{}, fmt.Errorf("%w: RANGE axis %q requires a Range value", ErrWrongShape, a.Name)
	case *value.Range:
		return a.promoteRange(r.Low, r.High)
	case RangeInput:
		return a.promoteRange(r.Low, r.High)
	default:
		return value.Value{}, fmt.Errorf("%w: RANGE axis %q requires a Range or RangeInput, got %T", ErrWrongShape, a.Name, raw)
	}
}

func (a *Axis) promoteRange(lowRaw, highRaw interface{}) (value.Value, error) {
	low, err := value.Promote(a.ValueType, lowRaw)
	if err != nil {
		return value.Value{}, fmt.Errorf("axis %q: range low bound: %w", a.Name, err)
	}
	high, err := value.Promote(a.ValueType, highRaw)
	if err != nil {
		return value.Value{}, fmt.Errorf("axis %q: range high bound: %w", a.Name, err)
	}
	rng, err := value.NewRange(low, high)
	if err != nil {
		return value.Value{}, fmt.Errorf("axis %q: %w", a.Name, err)
	}
	return value.NewRangeValue(rng), nil
}

func (a *Axis) standardizeSet(raw interface{}) (value.Value, error) {
	switch r := raw.(type) {
	case value.Value:
		if r.Kind() == value.KindRangeSet {
			return r, nil // idempotent
		}
		return value.Value{}, fmt.Errorf("%w: SET axis %q requires a RangeSet value", ErrWrongShape, a.Name)
	case SetInput:
		members := make([]value.Value, 0, len(r.Members))
		for _, m := range r.Members {
			switch mv := m.(type) {
			case RangeInput:
				rv, err := a.promoteRange(mv.Low, mv.High)
				if err != nil {
					return value.Value{}, err
				}
				members = append(members, rv)
			default:
				sv, err := value.Promote(a.ValueType, m)
				if err != nil {
					return value.Value{}, fmt.Errorf("axis %q: set member: %w", a.Name, err)
				}
				members = append(members, sv)
			}
		}
		return value.NewRangeSetValue(value.NewRangeSet(members...)), nil
	default:
		return value.Value{}, fmt.Errorf("%w: SET axis %q requires a SetInput, got %T", ErrWrongShape, a.Name, raw)
	}
}
