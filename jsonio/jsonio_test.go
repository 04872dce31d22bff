// SPDX-License-Identifier: MIT
package jsonio_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/ncube/axis"
	"github.com/katalvlaran/ncube/cube"
	"github.com/katalvlaran/ncube/jsonio"
	"github.com/katalvlaran/ncube/ruleengine"
	"github.com/katalvlaran/ncube/value"
)

func buildColorCube(t *testing.T) *cube.Cube {
	t.Helper()
	c := cube.New("colors")
	colorAxis, err := c.AddAxis("color", axis.Discrete, value.TypeString, axis.Sorted, false)
	require.NoError(t, err)
	for _, name := range []string{"red", "green", "blue"} {
		_, err := c.AddColumnTo(colorAxis.Name, name, nil)
		require.NoError(t, err)
	}
	cols := colorAxis.Columns()
	require.Len(t, cols, 3)
	for i, col := range cols {
		require.NoError(t, c.SetCell([]uint64{col.ID}, float64(i+1)))
	}
	return c
}

func TestRoundTrip_Discrete(t *testing.T) {
	c := buildColorCube(t)
	wantSHA1 := c.SHA1()

	data, err := jsonio.Marshal(c)
	require.NoError(t, err)

	c2, err := jsonio.Unmarshal(data)
	require.NoError(t, err)
	require.Equal(t, wantSHA1, c2.SHA1())
}

func TestRoundTrip_RangeAndSet(t *testing.T) {
	c := cube.New("mixed")
	ageAxis, err := c.AddAxis("age", axis.Range, value.TypeLong, axis.Sorted, false)
	require.NoError(t, err)
	_, err = c.AddColumnTo(ageAxis.Name, axis.RangeInput{Low: int64(0), High: int64(18)}, nil)
	require.NoError(t, err)
	_, err = c.AddColumnTo(ageAxis.Name, axis.RangeInput{Low: int64(18), High: int64(65)}, nil)
	require.NoError(t, err)

	dayAxis, err := c.AddAxis("day", axis.Set, value.TypeString, axis.Sorted, false)
	require.NoError(t, err)
	_, err = c.AddColumnTo(dayAxis.Name, axis.SetInput{Members: []interface{}{"mon", "tue", "wed", "thu", "fri"}}, nil)
	require.NoError(t, err)
	_, err = c.AddColumnTo(dayAxis.Name, axis.SetInput{Members: []interface{}{"sat", "sun"}}, nil)
	require.NoError(t, err)

	for _, col := range ageAxis.Columns() {
		for _, dcol := range dayAxis.Columns() {
			require.NoError(t, c.SetCell([]uint64{col.ID, dcol.ID}, "x"))
		}
	}

	wantSHA1 := c.SHA1()
	data, err := jsonio.Marshal(c)
	require.NoError(t, err)
	c2, err := jsonio.Unmarshal(data)
	require.NoError(t, err)
	require.Equal(t, wantSHA1, c2.SHA1())
	require.Equal(t, 4, c2.CellCount())
}

func TestRoundTrip_RuleAxis(t *testing.T) {
	c := cube.New("tiers")
	tierAxis, err := c.AddAxis("tier", axis.Rule, value.TypeExpression, axis.Display, false)
	require.NoError(t, err)

	goldExpr, err := ruleengine.New("amount > 1000")
	require.NoError(t, err)
	_, err = c.AddColumnTo(tierAxis.Name, goldExpr, map[string]interface{}{"name": "A"})
	require.NoError(t, err)

	silverExpr, err := ruleengine.New("amount > 100")
	require.NoError(t, err)
	_, err = c.AddColumnTo(tierAxis.Name, silverExpr, map[string]interface{}{"name": "B"})
	require.NoError(t, err)

	cols := tierAxis.Columns()
	require.NoError(t, c.SetCell([]uint64{cols[0].ID}, "gold"))
	require.NoError(t, c.SetCell([]uint64{cols[1].ID}, "silver"))

	wantSHA1 := c.SHA1()
	data, err := jsonio.Marshal(c)
	require.NoError(t, err)
	c2, err := jsonio.Unmarshal(data)
	require.NoError(t, err)
	require.Equal(t, wantSHA1, c2.SHA1())
}

// TestImport_SHA1MismatchIsLoggedNotTrusted verifies that a forged "sha1"
// field in the incoming document is overridden by the recomputed value
// rather than trusted.
func TestImport_SHA1MismatchIsLoggedNotTrusted(t *testing.T) {
	c := buildColorCube(t)
	doc, err := jsonio.Export(c)
	require.NoError(t, err)

	doc.SHA1 = "not-a-real-hash"
	c2, err := jsonio.Import(doc)
	require.NoError(t, err)
	require.Equal(t, c.SHA1(), c2.SHA1())
	require.NotEqual(t, "not-a-real-hash", c2.SHA1())
}
