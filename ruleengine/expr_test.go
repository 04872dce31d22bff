// SPDX-License-Identifier: MIT
package ruleengine_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/ncube/exec"
	"github.com/katalvlaran/ncube/ruleengine"
)

func evalExpr(t *testing.T, src string, input map[string]interface{}) interface{} {
	t.Helper()
	e, err := ruleengine.New(src)
	require.NoError(t, err)
	v, err := e.Execute(&exec.Ctx{Input: input})
	require.NoError(t, err)
	return v
}

func TestExpr_Comparisons(t *testing.T) {
	require.Equal(t, true, evalExpr(t, "amount > 1000", map[string]interface{}{"amount": 5000.0}))
	require.Equal(t, false, evalExpr(t, "amount > 1000", map[string]interface{}{"amount": 50.0}))
	require.Equal(t, true, evalExpr(t, "amount >= 100 && amount < 1000", map[string]interface{}{"amount": 500.0}))
}

func TestExpr_LogicalShortCircuit(t *testing.T) {
	require.Equal(t, true, evalExpr(t, "true || missing_field", nil))
	require.Equal(t, false, evalExpr(t, "false && missing_field", nil))
}

func TestExpr_Arithmetic(t *testing.T) {
	require.Equal(t, 15.0, evalExpr(t, "a + b * 2", map[string]interface{}{"a": 5.0, "b": 5.0}))
	require.Equal(t, -3.0, evalExpr(t, "-3", nil))
}

func TestExpr_StringCompare(t *testing.T) {
	require.Equal(t, true, evalExpr(t, "status == \"gold\"", map[string]interface{}{"status": "gold"}))
	require.Equal(t, false, evalExpr(t, "status == \"gold\"", map[string]interface{}{"status": "silver"}))
}

func TestExpr_AlwaysTrueLiteral(t *testing.T) {
	require.Equal(t, true, evalExpr(t, "true", nil))
}

func TestExpr_MissingFieldIsFalsy(t *testing.T) {
	require.Equal(t, nil, evalExpr(t, "missing", nil))
	require.False(t, exec.IsTruthy(evalExpr(t, "missing", nil)))
}

func TestExpr_SyntaxError(t *testing.T) {
	_, err := ruleengine.New("amount >")
	require.Error(t, err)
}

func TestExpr_ScopeKeys(t *testing.T) {
	e, err := ruleengine.New("amount > 1000 && region == \"EU\"")
	require.NoError(t, err)
	out := make(map[string]struct{})
	e.ScopeKeys(out)
	require.Contains(t, out, "input.amount")
	require.Contains(t, out, "input.region")
}

func TestExpr_CmdAndCacheable(t *testing.T) {
	e := ruleengine.MustNew("amount > 1000")
	cmd, ok := e.Cmd()
	require.True(t, ok)
	require.Equal(t, "amount > 1000", cmd)
	require.True(t, e.IsCacheable())
}

func TestRedirect_RaisesRuleJump(t *testing.T) {
	r := &ruleengine.Redirect{NewInput: map[string]interface{}{"amount": 5000.0}}
	_, err := r.Execute(&exec.Ctx{})
	var jump *exec.RuleJump
	require.ErrorAs(t, err, &jump)
	require.Equal(t, 5000.0, jump.NewInput["amount"])
}

func TestStop_RaisesRuleStop(t *testing.T) {
	s := &ruleengine.Stop{Reason: "done"}
	_, err := s.Execute(&exec.Ctx{})
	var stop *exec.RuleStop
	require.ErrorAs(t, err, &stop)
}

func TestLiteral_ReturnsValue(t *testing.T) {
	l := &ruleengine.Literal{Value: "bronze"}
	v, err := l.Execute(&exec.Ctx{})
	require.NoError(t, err)
	require.Equal(t, "bronze", v)
}
