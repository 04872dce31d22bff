// SPDX-License-Identifier: MIT
package exec_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/ncube/exec"
)

func TestIsTruthyTable(t *testing.T) {
	cases := []struct {
		name string
		in   interface{}
		want bool
	}{
		{"nil", nil, false},
		{"false", false, false},
		{"true", true, true},
		{"zero int", 0, false},
		{"nonzero int", 5, true},
		{"zero float64", float64(0), false},
		{"nonzero float64", 3.14, true},
		{"empty string", "", false},
		{"nonempty string", "x", true},
		{"empty slice", []int{}, false},
		{"nonempty slice", []int{1}, true},
		{"empty map", map[string]int{}, false},
		{"nonempty map", map[string]int{"a": 1}, true},
		{"struct always true", struct{}{}, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			require.Equal(t, c.want, exec.IsTruthy(c.in))
		})
	}
}

func TestIsTruthyNilPointer(t *testing.T) {
	var p *int
	require.False(t, exec.IsTruthy(p))

	n := 5
	require.True(t, exec.IsTruthy(&n))
}

func TestStackPushPopDepth(t *testing.T) {
	s := exec.NewStack()
	require.Equal(t, 0, s.Depth())

	depth := s.Push("cubeA", map[string]interface{}{"k": 1})
	require.Equal(t, 0, depth)
	require.Equal(t, 1, s.Depth())
	require.True(t, s.Contains("cubeA"))
	require.False(t, s.Contains("cubeB"))

	s.Push("cubeB", nil)
	require.Equal(t, 2, s.Depth())

	s.Pop()
	require.Equal(t, 1, s.Depth())
	require.False(t, s.Contains("cubeB"))

	s.Pop()
	s.Pop() // no-op on empty stack
	require.Equal(t, 0, s.Depth())
}

func TestStackFramesIsDefensiveCopy(t *testing.T) {
	s := exec.NewStack()
	s.Push("cubeA", nil)
	frames := s.Frames()
	frames[0].CubeName = "mutated"
	require.True(t, s.Contains("cubeA"), "mutating the returned slice must not affect the stack")
}

func TestRuleStopAndRuleJumpErrors(t *testing.T) {
	stop := &exec.RuleStop{Reason: "budget exhausted"}
	require.Contains(t, stop.Error(), "budget exhausted")

	bareStop := &exec.RuleStop{}
	require.Equal(t, "exec: rule stop", bareStop.Error())

	jump := &exec.RuleJump{NewInput: map[string]interface{}{"k": "v"}}
	require.Equal(t, "exec: rule jump", jump.Error())
}

func TestCoordinateNotFoundError(t *testing.T) {
	err := &exec.CoordinateNotFoundError{Cube: "pricing"}
	require.Contains(t, err.Error(), "pricing")

	withAxis := &exec.CoordinateNotFoundError{Cube: "pricing", Axis: "tier"}
	require.Contains(t, withAxis.Error(), "tier")
}
