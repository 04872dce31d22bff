// SPDX-License-Identifier: MIT
package exec

import (
	"fmt"
	"reflect"
)

// RuleStop is returned by an Executable to halt the current rule-binding
// pass early. The cube's evaluation loop recognizes it with errors.As and
// exits the outer loop without treating it as a failure.
type RuleStop struct {
	// Reason is an optional human-readable note, surfaced in diagnostics.
	Reason string
}

func (e *RuleStop) Error() string {
	if e.Reason == "" {
		return "exec: rule stop"
	}
	return "exec: rule stop: " + e.Reason
}

// RuleJump is returned by an Executable to restart evaluation with a new
// input coordinate. NewInput replaces the evaluation's input map; the cube
// loop rebinds and replays from scratch.
type RuleJump struct {
	NewInput map[string]interface{}
}

func (e *RuleJump) Error() string {
	return "exec: rule jump"
}

// CoordinateNotFoundError is raised when no column binds on a non-default
// axis, when no rule fires on a rule axis, or explicitly by an Executable to
// abort a lookup path.
type CoordinateNotFoundError struct {
	Cube string
	Axis string // empty if not axis-specific
}

func (e *CoordinateNotFoundError) Error() string {
	if e.Axis == "" {
		return fmt.Sprintf("ncube: coordinate not found in cube %q", e.Cube)
	}
	return fmt.Sprintf("ncube: coordinate not found in cube %q on axis %q", e.Cube, e.Axis)
}

// IsTruthy is the engine's truthiness table, so rule cells and the
// evaluation loop agree on what counts as a "fired" condition:
//
//	null                         -> never
//	bool                         -> value itself
//	any numeric kind             -> value != 0
//	string                       -> len > 0
//	map/slice/array/chan (empty?)-> non-empty
//	anything else                -> always true
func IsTruthy(v interface{}) bool {
	if v == nil {
		return false
	}
	switch t := v.(type) {
	case bool:
		return t
	case int:
		return t != 0
	case int8:
		return t != 0
	case int16:
		return t != 0
	case int32:
		return t != 0
	case int64:
		return t != 0
	case uint:
		return t != 0
	case uint8:
		return t != 0
	case uint16:
		return t != 0
	case uint32:
		return t != 0
	case uint64:
		return t != 0
	case float32:
		return t != 0
	case float64:
		return t != 0
	case string:
		return len(t) > 0
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map, reflect.Slice, reflect.Array, reflect.Chan:
		return rv.Len() > 0
	case reflect.Ptr, reflect.Interface:
		if rv.IsNil() {
			return false
		}
		return IsTruthy(rv.Elem().Interface())
	default:
		return true
	}
}
