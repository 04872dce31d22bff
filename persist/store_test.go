// SPDX-License-Identifier: MIT
package persist_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/ncube/axis"
	"github.com/katalvlaran/ncube/cube"
	"github.com/katalvlaran/ncube/persist"
	"github.com/katalvlaran/ncube/value"
)

func openTestStore(t *testing.T) *persist.SQLPersister {
	t.Helper()
	p, err := persist.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close() })
	return p
}

func buildTestCube(t *testing.T) *cube.Cube {
	t.Helper()
	c := cube.New("pricing")
	tierAxis, err := c.AddAxis("tier", axis.Discrete, value.TypeString, axis.Sorted, false)
	require.NoError(t, err)
	col, err := c.AddColumnTo(tierAxis.Name, "gold", nil)
	require.NoError(t, err)
	require.NoError(t, c.SetCell([]uint64{col.ID}, 42.0))
	return c
}

func TestCreateAndLoadByName(t *testing.T) {
	ctx := context.Background()
	p := openTestStore(t)
	c := buildTestCube(t)

	rec, err := p.Create(ctx, "app1", c)
	require.NoError(t, err)
	require.Equal(t, 1, rec.Version)
	require.Equal(t, c.SHA1(), rec.SHA1)

	loaded, err := p.LoadByName(ctx, "app1", "pricing")
	require.NoError(t, err)
	require.Equal(t, c.SHA1(), loaded.SHA1())
}

func TestCreateDuplicateFails(t *testing.T) {
	ctx := context.Background()
	p := openTestStore(t)
	c := buildTestCube(t)

	_, err := p.Create(ctx, "app1", c)
	require.NoError(t, err)
	_, err = p.Create(ctx, "app1", c)
	require.ErrorIs(t, err, persist.ErrAlreadyExists)
}

func TestUpdateBumpsVersion(t *testing.T) {
	ctx := context.Background()
	p := openTestStore(t)
	c := buildTestCube(t)
	_, err := p.Create(ctx, "app1", c)
	require.NoError(t, err)

	col, err := c.AddColumnTo("tier", "silver", nil)
	require.NoError(t, err)
	require.NoError(t, c.SetCell([]uint64{col.ID}, 7.0))

	rec, err := p.Update(ctx, "app1", "pricing", c)
	require.NoError(t, err)
	require.Equal(t, 2, rec.Version)

	loaded, err := p.LoadByName(ctx, "app1", "pricing")
	require.NoError(t, err)
	require.Equal(t, c.SHA1(), loaded.SHA1())
}

func TestUpdateMissingFails(t *testing.T) {
	ctx := context.Background()
	p := openTestStore(t)
	c := buildTestCube(t)
	_, err := p.Update(ctx, "app1", "pricing", c)
	require.ErrorIs(t, err, persist.ErrNotFound)
}

func TestListAndDelete(t *testing.T) {
	ctx := context.Background()
	p := openTestStore(t)
	c := buildTestCube(t)
	_, err := p.Create(ctx, "app1", c)
	require.NoError(t, err)

	recs, err := p.List(ctx, "app1")
	require.NoError(t, err)
	require.Len(t, recs, 1)
	require.Equal(t, "pricing", recs[0].Name)

	require.NoError(t, p.Delete(ctx, "app1", "pricing"))
	recs, err = p.List(ctx, "app1")
	require.NoError(t, err)
	require.Len(t, recs, 0)
}

func TestRename(t *testing.T) {
	ctx := context.Background()
	p := openTestStore(t)
	c := buildTestCube(t)
	_, err := p.Create(ctx, "app1", c)
	require.NoError(t, err)

	require.NoError(t, p.Rename(ctx, "app1", "pricing", "pricing-v2"))
	loaded, err := p.LoadByName(ctx, "app1", "pricing-v2")
	require.NoError(t, err)
	require.Equal(t, c.SHA1(), loaded.SHA1())

	_, err = p.LoadByName(ctx, "app1", "pricing")
	require.ErrorIs(t, err, persist.ErrNotFound)
}

func TestSnapshotAndRelease(t *testing.T) {
	ctx := context.Background()
	p := openTestStore(t)
	c := buildTestCube(t)
	_, err := p.Create(ctx, "app1", c)
	require.NoError(t, err)

	snap, err := p.CreateSnapshot(ctx, "app1", "pricing")
	require.NoError(t, err)
	require.Equal(t, c.SHA1(), snap.SHA1)

	col, err := c.AddColumnTo("tier", "bronze", nil)
	require.NoError(t, err)
	require.NoError(t, c.SetCell([]uint64{col.ID}, 1.0))
	_, err = p.Update(ctx, "app1", "pricing", c)
	require.NoError(t, err)

	require.NoError(t, p.Release(ctx, snap.ID))
	reverted, err := p.LoadByName(ctx, "app1", "pricing")
	require.NoError(t, err)
	require.Equal(t, snap.SHA1, reverted.SHA1())
}
