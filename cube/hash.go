// SPDX-License-Identifier: MIT
//
// hash.go — content-addressed, order-independent cube identity. The hash is
// cached and cleared on every mutation (see invalidateCachesLocked).
package cube

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"github.com/katalvlaran/ncube/axis"
	"github.com/katalvlaran/ncube/column"
)

// SHA1 returns the cube's content hash, computing and caching it on first
// call after any mutation. The hash is invariant under axis-insertion and
// cell-insertion reordering: axes are visited in name order and cell hashes
// are sorted before the final digest.
func (c *Cube) SHA1() string {
	c.muCells.RLock()
	if c.sha1Valid {
		cached := c.sha1Cache
		c.muCells.RUnlock()
		return cached
	}
	c.muCells.RUnlock()

	h := c.computeSHA1()

	c.muCells.Lock()
	c.sha1Cache = h
	c.sha1Valid = true
	c.muCells.Unlock()
	return h
}

func (c *Cube) computeSHA1() string {
	var b strings.Builder
	b.WriteString(c.name)
	b.WriteByte('|')
	fmt.Fprintf(&b, "%v|", c.DefaultValue)
	b.WriteString(sortedMeta(c.Meta))
	b.WriteByte('|')

	axes := c.Axes()
	sort.Slice(axes, func(i, j int) bool {
		return strings.ToLower(axes[i].Name) < strings.ToLower(axes[j].Name)
	})
	for _, a := range axes {
		fmt.Fprintf(&b, "AXIS(%s,%d,%s,%s,%v,%v,%s)",
			strings.ToLower(a.Name), a.Order, a.Type.String(), a.ValueType.String(),
			a.Default() != nil, a.FireAll, sortedMeta(a.Meta))
		for _, col := range columnsForHash(a) {
			fmt.Fprintf(&b, "COL(%s,%s)", col.Value.String(), sortedMeta(col.Meta))
		}
	}

	cellHashes := c.cellHashes()
	sort.Strings(cellHashes)
	b.WriteString(strings.Join(cellHashes, ""))

	return hashString(b.String())
}

// columnsForHash returns the columns in a.Columns() order: by value for
// SORTED DISCRETE/RANGE/SET axes, insertion order for SORTED NEAREST axes,
// and DisplayOrder for DISPLAY axes (always the case for RULE axes, where it
// is rule execution order). That order is part of the hash.
func columnsForHash(a *axis.Axis) []*column.Column {
	return a.Columns()
}

// cellHashes hashes each stored cell as hash(sorted column values joined by
// a separator) concatenated with hash(cell value). Hashing values rather
// than ids keeps the digest stable across deserialization, where runtime
// column ids are reassigned but the columns themselves are unchanged.
func (c *Cube) cellHashes() []string {
	axesByID := make(map[uint64]*axis.Axis)
	for _, a := range c.Axes() {
		axesByID[a.ID] = a
	}

	c.muCells.RLock()
	defer c.muCells.RUnlock()

	out := make([]string, 0, len(c.cells))
	for _, entry := range c.cells {
		vals := make([]string, 0, len(entry.ColumnIDs))
		for _, id := range entry.ColumnIDs {
			vals = append(vals, columnHashKey(axesByID, id))
		}
		sort.Strings(vals)
		keyPart := hashString(strings.Join(vals, "|"))
		valPart := hashString(fmt.Sprintf("%v", entry.Value))
		out = append(out, keyPart+valPart)
	}
	return out
}

// columnHashKey renders one cell-key column as a hash token: the axis name
// plus the column's value (or a default marker), so equal-valued columns on
// different axes never collide.
func columnHashKey(axesByID map[uint64]*axis.Axis, colID uint64) string {
	a, ok := axesByID[column.AxisIDOf(colID)]
	if !ok {
		return fmt.Sprintf("?:%d", colID)
	}
	col, ok := a.ColumnByID(colID)
	if !ok {
		return fmt.Sprintf("%s:?%d", strings.ToLower(a.Name), colID)
	}
	if col.IsDefault {
		return strings.ToLower(a.Name) + ":<default>"
	}
	return strings.ToLower(a.Name) + ":" + col.Value.String()
}

func sortedMeta(meta map[string]interface{}) string {
	keys := make([]string, 0, len(meta))
	for k := range meta {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "%s=%v;", k, meta[k])
	}
	return b.String()
}

func hashString(s string) string {
	sum := sha1.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}
