// SPDX-License-Identifier: MIT
package axis_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/ncube/axis"
	"github.com/katalvlaran/ncube/value"
)

func TestDiscreteAddFindAndDuplicateRejection(t *testing.T) {
	a := axis.New(1, "color", axis.Discrete, value.TypeString, axis.Sorted)

	red, err := a.AddColumn("red", nil)
	require.NoError(t, err)
	_, err = a.AddColumn("blue", nil)
	require.NoError(t, err)

	_, err = a.AddColumn("red", nil)
	require.ErrorIs(t, err, axis.ErrDuplicateColumn)

	key, err := a.Standardize("red")
	require.NoError(t, err)
	found, err := a.Find(key)
	require.NoError(t, err)
	require.Equal(t, red.ID, found.ID)

	missKey, err := a.Standardize("green")
	require.NoError(t, err)
	found, err = a.Find(missKey)
	require.NoError(t, err)
	require.Nil(t, found, "a miss with no default column returns nil, not an error")
}

func TestDiscreteDefaultColumnFallback(t *testing.T) {
	a := axis.New(1, "color", axis.Discrete, value.TypeString, axis.Sorted)
	_, err := a.AddColumn("red", nil)
	require.NoError(t, err)
	def, err := a.AddDefaultColumn(nil)
	require.NoError(t, err)

	missKey, err := a.Standardize("green")
	require.NoError(t, err)
	found, err := a.Find(missKey)
	require.NoError(t, err)
	require.Equal(t, def.ID, found.ID)
}

func TestRangeAxisOverlapRejected(t *testing.T) {
	a := axis.New(2, "age", axis.Range, value.TypeLong, axis.Sorted)
	_, err := a.AddColumn(axis.RangeInput{Low: int64(0), High: int64(18)}, nil)
	require.NoError(t, err)
	_, err = a.AddColumn(axis.RangeInput{Low: int64(10), High: int64(30)}, nil)
	require.ErrorIs(t, err, axis.ErrOverlap)
}

func TestRangeAxisFind(t *testing.T) {
	a := axis.New(2, "age", axis.Range, value.TypeLong, axis.Sorted)
	minor, err := a.AddColumn(axis.RangeInput{Low: int64(0), High: int64(18)}, nil)
	require.NoError(t, err)
	adult, err := a.AddColumn(axis.RangeInput{Low: int64(18), High: int64(200)}, nil)
	require.NoError(t, err)

	key, err := value.Promote(a.ValueType, int64(17))
	require.NoError(t, err)
	found, err := a.Find(key)
	require.NoError(t, err)
	require.Equal(t, minor.ID, found.ID)

	key, err = value.Promote(a.ValueType, int64(18))
	require.NoError(t, err)
	found, err = a.Find(key)
	require.NoError(t, err)
	require.Equal(t, adult.ID, found.ID)
}

func TestSetAxisOverlapRejected(t *testing.T) {
	a := axis.New(3, "day", axis.Set, value.TypeString, axis.Sorted)
	_, err := a.AddColumn(axis.SetInput{Members: []interface{}{"mon", "tue"}}, nil)
	require.NoError(t, err)
	_, err = a.AddColumn(axis.SetInput{Members: []interface{}{"tue", "wed"}}, nil)
	require.ErrorIs(t, err, axis.ErrOverlap)
}

func TestSetAxisFind(t *testing.T) {
	a := axis.New(3, "day", axis.Set, value.TypeString, axis.Sorted)
	weekday, err := a.AddColumn(axis.SetInput{Members: []interface{}{"mon", "tue", "wed", "thu", "fri"}}, nil)
	require.NoError(t, err)

	key, err := value.Promote(a.ValueType, "wed")
	require.NoError(t, err)
	found, err := a.Find(key)
	require.NoError(t, err)
	require.Equal(t, weekday.ID, found.ID)

	key, err = value.Promote(a.ValueType, "sat")
	require.NoError(t, err)
	found, err = a.Find(key)
	require.NoError(t, err)
	require.Nil(t, found)
}

func TestNearestAxisFindsClosest(t *testing.T) {
	a := axis.New(4, "temp", axis.Nearest, value.TypeDouble, axis.Sorted)
	cold, err := a.AddColumn(0.0, nil)
	require.NoError(t, err)
	hot, err := a.AddColumn(100.0, nil)
	require.NoError(t, err)

	key, err := a.Standardize(30.0)
	require.NoError(t, err)
	found, err := a.Find(key)
	require.NoError(t, err)
	require.Equal(t, cold.ID, found.ID)

	key, err = a.Standardize(80.0)
	require.NoError(t, err)
	found, err = a.Find(key)
	require.NoError(t, err)
	require.Equal(t, hot.ID, found.ID)
}

func TestNearestAxisRejectsDefaultColumn(t *testing.T) {
	a := axis.New(4, "temp", axis.Nearest, value.TypeDouble, axis.Sorted)
	_, err := a.AddDefaultColumn(nil)
	require.ErrorIs(t, err, axis.ErrInvalidOperation)
}

func TestRuleAxisForcesExpressionAndDisplayOrder(t *testing.T) {
	a := axis.New(5, "tier", axis.Rule, value.TypeString, axis.Sorted)
	require.Equal(t, value.TypeExpression, a.ValueType)
	require.Equal(t, axis.Display, a.Order)
}

func TestUpdateColumnsBulkAllOrNothing(t *testing.T) {
	a := axis.New(2, "age", axis.Range, value.TypeLong, axis.Sorted)
	c1, err := a.AddColumn(axis.RangeInput{Low: int64(0), High: int64(18)}, nil)
	require.NoError(t, err)
	c2, err := a.AddColumn(axis.RangeInput{Low: int64(18), High: int64(65)}, nil)
	require.NoError(t, err)

	// Moving c1 to [10,40) and c2 to [40,50) overlaps c2's old [18,65)
	// part-way through the batch, but the final state is valid, so the batch
	// lands as a whole.
	_, err = a.UpdateColumns([]axis.ColumnUpdate{
		{ID: c1.ID, Raw: axis.RangeInput{Low: int64(10), High: int64(40)}},
		{ID: c2.ID, Raw: axis.RangeInput{Low: int64(40), High: int64(50)}},
	})
	require.NoError(t, err)

	_, err = a.UpdateColumns([]axis.ColumnUpdate{
		{ID: c1.ID, Raw: axis.RangeInput{Low: int64(0), High: int64(45)}},
	})
	require.ErrorIs(t, err, axis.ErrOverlap)
}

func TestReplaceColumnsBulkDTORoundTrip(t *testing.T) {
	a := axis.New(1, "color", axis.Discrete, value.TypeString, axis.Sorted)
	red, err := a.AddColumn("red", nil)
	require.NoError(t, err)
	blue, err := a.AddColumn("blue", nil)
	require.NoError(t, err)
	green, err := a.AddColumn("green", nil)
	require.NoError(t, err)

	// DTO keeps red (unchanged), renames blue to "azure", drops green, and
	// adds a brand new "yellow" column — in that display order.
	cols, deleted, err := a.ReplaceColumns([]axis.ColumnDTO{
		{ID: int64(red.ID)},
		{ID: int64(blue.ID), Raw: "azure"},
		{ID: -1, Raw: "yellow"},
	})
	require.NoError(t, err)
	require.Equal(t, []uint64{green.ID}, deleted, "green was absent from the DTO and must be reported as deleted")

	require.Len(t, cols, 3)
	require.Equal(t, red.ID, cols[0].ID)
	require.Equal(t, int32(0), cols[0].DisplayOrder)
	require.Equal(t, blue.ID, cols[1].ID)
	require.Equal(t, int32(1), cols[1].DisplayOrder)
	require.NotEqual(t, blue.ID, cols[2].ID, "the new column must get a freshly assigned id")
	require.Equal(t, int32(2), cols[2].DisplayOrder)

	require.Equal(t, 3, a.Len())
	_, ok := a.ColumnByID(green.ID)
	require.False(t, ok, "the orphaned column must be gone from the catalog")

	azure, ok := a.ColumnByID(blue.ID)
	require.True(t, ok)
	azureKey, err := a.Standardize("azure")
	require.NoError(t, err)
	require.True(t, azure.Value.Equal(azureKey))
}

func TestReplaceColumnsRejectsWholeBatchOnOverlap(t *testing.T) {
	a := axis.New(2, "age", axis.Range, value.TypeLong, axis.Sorted)
	minor, err := a.AddColumn(axis.RangeInput{Low: int64(0), High: int64(18)}, nil)
	require.NoError(t, err)
	adult, err := a.AddColumn(axis.RangeInput{Low: int64(18), High: int64(65)}, nil)
	require.NoError(t, err)

	_, _, err = a.ReplaceColumns([]axis.ColumnDTO{
		{ID: int64(minor.ID), Raw: axis.RangeInput{Low: int64(0), High: int64(40)}},
		{ID: int64(adult.ID)},
	})
	require.ErrorIs(t, err, axis.ErrOverlap)
	require.Equal(t, 2, a.Len(), "a rejected replace must leave the catalog untouched")
}

func TestDeleteColumnRemovesFromCatalog(t *testing.T) {
	a := axis.New(1, "color", axis.Discrete, value.TypeString, axis.Sorted)
	red, err := a.AddColumn("red", nil)
	require.NoError(t, err)
	require.Equal(t, 1, a.Len())

	require.NoError(t, a.DeleteColumn(red.ID))
	require.Equal(t, 0, a.Len())
	_, ok := a.ColumnByID(red.ID)
	require.False(t, ok)
}

func TestMoveColumnRejectsDefault(t *testing.T) {
	a := axis.New(1, "color", axis.Discrete, value.TypeString, axis.Sorted)
	def, err := a.AddDefaultColumn(nil)
	require.NoError(t, err)
	err = a.MoveColumn(def.ID, 0)
	require.ErrorIs(t, err, axis.ErrInvalidOperation)
}
