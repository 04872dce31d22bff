// SPDX-License-Identifier: MIT
package cube_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/ncube/axis"
	"github.com/katalvlaran/ncube/cube"
	"github.com/katalvlaran/ncube/exec"
	"github.com/katalvlaran/ncube/ruleengine"
	"github.com/katalvlaran/ncube/value"
)

func newCtx() *exec.Ctx {
	return &exec.Ctx{Output: make(map[string]interface{}), Stack: exec.NewStack()}
}

func TestGetCellDiscreteLookup(t *testing.T) {
	c := cube.New("pricing")
	a, err := c.AddAxis("tier", axis.Discrete, value.TypeString, axis.Sorted, false)
	require.NoError(t, err)
	gold, err := c.AddColumnTo(a.Name, "gold", nil)
	require.NoError(t, err)
	silver, err := c.AddColumnTo(a.Name, "silver", nil)
	require.NoError(t, err)

	require.NoError(t, c.SetCell([]uint64{gold.ID}, 100.0))
	require.NoError(t, c.SetCell([]uint64{silver.ID}, 50.0))

	v, err := c.GetCell(newCtx(), map[string]interface{}{"tier": "gold"})
	require.NoError(t, err)
	require.Equal(t, 100.0, v)

	v, err = c.GetCell(newCtx(), map[string]interface{}{"tier": "silver"})
	require.NoError(t, err)
	require.Equal(t, 50.0, v)
}

func TestGetCellMissingScopeIsError(t *testing.T) {
	c := cube.New("pricing")
	_, err := c.AddAxis("tier", axis.Discrete, value.TypeString, axis.Sorted, false)
	require.NoError(t, err)

	_, err = c.GetCell(newCtx(), map[string]interface{}{})
	require.ErrorIs(t, err, cube.ErrMissingScope)
}

func TestGetCellCoordinateNotFoundWithoutDefault(t *testing.T) {
	c := cube.New("pricing")
	a, err := c.AddAxis("tier", axis.Discrete, value.TypeString, axis.Sorted, false)
	require.NoError(t, err)
	_, err = c.AddColumnTo(a.Name, "gold", nil)
	require.NoError(t, err)

	_, err = c.GetCell(newCtx(), map[string]interface{}{"tier": "platinum"})
	var notFound *exec.CoordinateNotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestGetCellDefaultColumnFallback(t *testing.T) {
	c := cube.New("pricing")
	a, err := c.AddAxis("tier", axis.Discrete, value.TypeString, axis.Sorted, false)
	require.NoError(t, err)
	gold, err := c.AddColumnTo(a.Name, "gold", nil)
	require.NoError(t, err)
	def, err := c.AddDefaultColumnTo(a.Name, nil)
	require.NoError(t, err)

	require.NoError(t, c.SetCell([]uint64{gold.ID}, "gold-price"))
	require.NoError(t, c.SetCell([]uint64{def.ID}, "default-price"))

	v, err := c.GetCell(newCtx(), map[string]interface{}{"tier": "unknown"})
	require.NoError(t, err)
	require.Equal(t, "default-price", v)
}

func TestGetCellRangeLookup(t *testing.T) {
	c := cube.New("shipping")
	ageAxis, err := c.AddAxis("age", axis.Range, value.TypeLong, axis.Sorted, false)
	require.NoError(t, err)
	minor, err := c.AddColumnTo(ageAxis.Name, axis.RangeInput{Low: int64(0), High: int64(18)}, nil)
	require.NoError(t, err)
	adult, err := c.AddColumnTo(ageAxis.Name, axis.RangeInput{Low: int64(18), High: int64(200)}, nil)
	require.NoError(t, err)

	require.NoError(t, c.SetCell([]uint64{minor.ID}, "minor-rate"))
	require.NoError(t, c.SetCell([]uint64{adult.ID}, "adult-rate"))

	v, err := c.GetCell(newCtx(), map[string]interface{}{"age": int64(10)})
	require.NoError(t, err)
	require.Equal(t, "minor-rate", v)

	v, err = c.GetCell(newCtx(), map[string]interface{}{"age": int64(40)})
	require.NoError(t, err)
	require.Equal(t, "adult-rate", v)
}

func TestGetCellRuleAxisFirstMatchWins(t *testing.T) {
	c := cube.New("tiers")
	tierAxis, err := c.AddAxis("tier", axis.Rule, value.TypeExpression, axis.Display, false)
	require.NoError(t, err)

	goldExpr, err := ruleengine.New("amount > 1000")
	require.NoError(t, err)
	gold, err := c.AddColumnTo(tierAxis.Name, goldExpr, map[string]interface{}{"name": "gold"})
	require.NoError(t, err)

	silverExpr, err := ruleengine.New("amount > 100")
	require.NoError(t, err)
	silver, err := c.AddColumnTo(tierAxis.Name, silverExpr, map[string]interface{}{"name": "silver"})
	require.NoError(t, err)

	require.NoError(t, c.SetCell([]uint64{gold.ID}, "gold-tier"))
	require.NoError(t, c.SetCell([]uint64{silver.ID}, "silver-tier"))

	v, err := c.GetCell(newCtx(), map[string]interface{}{"amount": 5000.0})
	require.NoError(t, err)
	require.Equal(t, "gold-tier", v)

	v, err = c.GetCell(newCtx(), map[string]interface{}{"amount": 500.0})
	require.NoError(t, err)
	require.Equal(t, "silver-tier", v)
}

func TestGetCellRuleAxisNoFireWithoutDefaultIsNotFound(t *testing.T) {
	c := cube.New("tiers")
	tierAxis, err := c.AddAxis("tier", axis.Rule, value.TypeExpression, axis.Display, false)
	require.NoError(t, err)

	goldExpr, err := ruleengine.New("amount > 1000")
	require.NoError(t, err)
	gold, err := c.AddColumnTo(tierAxis.Name, goldExpr, map[string]interface{}{"name": "gold"})
	require.NoError(t, err)
	require.NoError(t, c.SetCell([]uint64{gold.ID}, "gold-tier"))

	_, err = c.GetCell(newCtx(), map[string]interface{}{"amount": 5.0})
	var notFound *exec.CoordinateNotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestGetCellRuleJumpRestartsEvaluation(t *testing.T) {
	c := cube.New("tiers")
	tierAxis, err := c.AddAxis("tier", axis.Rule, value.TypeExpression, axis.Display, false)
	require.NoError(t, err)

	redirectExpr, err := ruleengine.New("amount < 0")
	require.NoError(t, err)
	redirectCol, err := c.AddColumnTo(tierAxis.Name, redirectExpr, map[string]interface{}{"name": "negative"})
	require.NoError(t, err)
	require.NoError(t, c.SetCell([]uint64{redirectCol.ID}, &ruleengine.Redirect{NewInput: map[string]interface{}{"amount": 0.0}}))

	zeroExpr, err := ruleengine.New("amount == 0")
	require.NoError(t, err)
	zeroCol, err := c.AddColumnTo(tierAxis.Name, zeroExpr, map[string]interface{}{"name": "zero"})
	require.NoError(t, err)
	require.NoError(t, c.SetCell([]uint64{zeroCol.ID}, "zero-tier"))

	v, err := c.GetCell(newCtx(), map[string]interface{}{"amount": -5.0})
	require.NoError(t, err)
	require.Equal(t, "zero-tier", v)
}

func TestCubeSHA1StableAcrossAxisInsertionOrder(t *testing.T) {
	c1 := cube.New("mixed")
	a1, err := c1.AddAxis("color", axis.Discrete, value.TypeString, axis.Sorted, false)
	require.NoError(t, err)
	_, err = c1.AddColumnTo(a1.Name, "red", nil)
	require.NoError(t, err)
	a2, err := c1.AddAxis("size", axis.Discrete, value.TypeString, axis.Sorted, false)
	require.NoError(t, err)
	_, err = c1.AddColumnTo(a2.Name, "small", nil)
	require.NoError(t, err)

	c2 := cube.New("mixed")
	b2, err := c2.AddAxis("size", axis.Discrete, value.TypeString, axis.Sorted, false)
	require.NoError(t, err)
	_, err = c2.AddColumnTo(b2.Name, "small", nil)
	require.NoError(t, err)
	b1, err := c2.AddAxis("color", axis.Discrete, value.TypeString, axis.Sorted, false)
	require.NoError(t, err)
	_, err = c2.AddColumnTo(b1.Name, "red", nil)
	require.NoError(t, err)

	require.Equal(t, c1.SHA1(), c2.SHA1(), "axis insertion order must not affect content hash")
}

func TestCubeSHA1ChangesWithCellMutation(t *testing.T) {
	c := cube.New("pricing")
	a, err := c.AddAxis("tier", axis.Discrete, value.TypeString, axis.Sorted, false)
	require.NoError(t, err)
	gold, err := c.AddColumnTo(a.Name, "gold", nil)
	require.NoError(t, err)

	before := c.SHA1()
	require.NoError(t, c.SetCell([]uint64{gold.ID}, 1.0))
	after := c.SHA1()
	require.NotEqual(t, before, after)
}

func TestDeleteColumnCascadesCellRemoval(t *testing.T) {
	c := cube.New("pricing")
	a, err := c.AddAxis("tier", axis.Discrete, value.TypeString, axis.Sorted, false)
	require.NoError(t, err)
	gold, err := c.AddColumnTo(a.Name, "gold", nil)
	require.NoError(t, err)
	require.NoError(t, c.SetCell([]uint64{gold.ID}, 1.0))
	require.Equal(t, 1, c.CellCount())

	require.NoError(t, c.DeleteColumnOn(a.Name, gold.ID))
	require.Equal(t, 0, c.CellCount())
}

func TestAddAxisClearsExistingCells(t *testing.T) {
	c := cube.New("pricing")
	a, err := c.AddAxis("tier", axis.Discrete, value.TypeString, axis.Sorted, false)
	require.NoError(t, err)
	gold, err := c.AddColumnTo(a.Name, "gold", nil)
	require.NoError(t, err)
	require.NoError(t, c.SetCell([]uint64{gold.ID}, 1.0))
	require.Equal(t, 1, c.CellCount())

	_, err = c.AddAxis("size", axis.Discrete, value.TypeString, axis.Sorted, false)
	require.NoError(t, err)
	require.Equal(t, 0, c.CellCount(), "adding an axis changes cube shape and must drop every cell")
}
