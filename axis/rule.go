// SPDX-License-Identifier: MIT
//
// rule.go — RULE axis lookup by name. The cube's evaluation loop does not
// call this: it instead evaluates every rule column's expression each pass
// (see package cube's eval.go), treating a truthy result as a binding. This
// method serves Find on a RULE axis: a direct lookup by rule name that falls
// back to the default column.
package axis

import "github.com/katalvlaran/ncube/column"

func (a *Axis) findRule(name string) (*column.Column, error) {
	if col, ok := a.ColumnByName(name); ok {
		return col, nil
	}
	return a.defaultCol, nil
}
