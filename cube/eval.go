// SPDX-License-Identifier: MIT
//
// eval.go — GetCell: the multi-pass evaluation loop. This is the heart of
// the engine; ordering and tie-breaks here are part of the engine's
// contract, not incidental, so this file stays close to the loop's
// canonical shape rather than being reorganized for brevity.
package cube

import (
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/ncube/axis"
	"github.com/katalvlaran/ncube/column"
	"github.com/katalvlaran/ncube/exec"
	"github.com/katalvlaran/ncube/value"
)

var _ exec.Cube = (*Cube)(nil)

// ruleInfoKey is the well-known Output key GetCell uses to stash per-call
// rule bookkeeping, mirroring the RuleInfo object the original engine threads
// through nested cube calls via the output map.
const ruleInfoKey = "~ruleInfo~"

// RuleInfo accumulates state across one top-level GetCell call, including
// calls that RuleJump restarts.
type RuleInfo struct {
	LastExecutedValue interface{}
}

func ensureRuleInfo(output map[string]interface{}) *RuleInfo {
	if ri, ok := output[ruleInfoKey].(*RuleInfo); ok {
		return ri
	}
	ri := &RuleInfo{}
	output[ruleInfoKey] = ri
	return ri
}

// GetCell resolves input to a cell value, executing it if it is a command
// cell. It satisfies exec.Cube so executable cells can recurse into their
// own enclosing cube.
func (c *Cube) GetCell(ctx *exec.Ctx, input map[string]interface{}) (interface{}, error) {
	if ctx.Stack == nil {
		ctx.Stack = exec.NewStack()
	}
	ctx.Stack.Push(c.name, input)
	defer ctx.Stack.Pop()

	if ctx.Output == nil {
		ctx.Output = make(map[string]interface{})
	}
	if ctx.Resolver == nil && c.Resolver != nil {
		ctx.Resolver = c.Resolver
		if ctx.AppID == "" {
			ctx.AppID = c.AppID
		}
	}
	ri := ensureRuleInfo(ctx.Output)

	if err := c.checkRequiredScope(input); err != nil {
		return nil, err
	}

	axes := c.Axes()

	for {
		ctx.Input = input
		ctx.Cube = c

		bindings, err := c.bindAll(axes, input)
		if err != nil {
			return nil, err
		}

		counters := make(map[string]int, len(axes))
		for _, a := range axes {
			counters[a.Name] = 1
		}
		cachedCondition := make(map[uint64]bool)
		conditionsFired := make(map[string]int)
		var lastValue interface{}
		var signal error

	repeat:
		for {
			binding := make(map[string]*column.Column, len(axes))
			complete := true

			for _, a := range axes {
				cols := bindings[a.Name]
				if len(cols) == 0 {
					complete = false
					break
				}
				idx := counters[a.Name] - 1
				if idx >= len(cols) {
					idx = len(cols) - 1
				}
				col := cols[idx]

				if a.Type == axis.Rule {
					if _, seen := cachedCondition[col.ID]; !seen {
						truthy, serr := c.evalRuleCondition(ctx, a, col, conditionsFired[a.Name])
						if serr != nil {
							signal = serr
							break repeat
						}
						cachedCondition[col.ID] = truthy
						if truthy {
							conditionsFired[a.Name]++
							if !a.FireAll {
								bindings[a.Name] = []*column.Column{col}
								counters[a.Name] = 1
							}
						}
					}
					if !cachedCondition[col.ID] {
						complete = false
						break
					}
				}
				binding[a.Name] = col
			}

			if complete {
				v, cerr := c.executeCellByBinding(ctx, axes, binding)
				if cerr != nil {
					signal = cerr
					break repeat
				}
				lastValue = v
			}

			if !advance(axes, counters, bindings) {
				break repeat
			}
		}

		var jump *exec.RuleJump
		var stop *exec.RuleStop
		isJump := errors.As(signal, &jump)
		isStop := errors.As(signal, &stop)

		if signal != nil && !isJump && !isStop {
			return nil, signal // a genuine error bypasses the post-pass check entirely
		}

		for _, a := range axes {
			if a.Type == axis.Rule && conditionsFired[a.Name] == 0 {
				return nil, &exec.CoordinateNotFoundError{Cube: c.name, Axis: a.Name}
			}
		}

		if isJump {
			input = jump.NewInput
			c.Logger.WithFields(logrus.Fields{"cube": c.name}).Debug("rule jump, restarting evaluation")
			continue
		}

		// isStop or normal completion both finalize with the last value
		// executed during this pass.
		ri.LastExecutedValue = lastValue
		ctx.Output["return"] = lastValue
		return lastValue, nil
	}
}

// bindAll computes, for each axis, the ordered candidate columns a single
// get_cell pass will enumerate over: find_multi(input) for non-rule axes,
// or the full rule-column sequence (display order, default last) for rule
// axes. A non-rule axis with zero candidates is an immediate
// CoordinateNotFoundError — there is nothing to enumerate.
func (c *Cube) bindAll(axes []*axis.Axis, input map[string]interface{}) (map[string][]*column.Column, error) {
	out := make(map[string][]*column.Column, len(axes))
	for _, a := range axes {
		if a.Type == axis.Rule {
			cols := append([]*column.Column(nil), a.Columns()...)
			if def := a.Default(); def != nil {
				cols = append(cols, def)
			}
			out[a.Name] = cols
			continue
		}

		raw, ok := lookupInput(input, a.Name)
		if !ok {
			if def := a.Default(); def != nil {
				out[a.Name] = []*column.Column{def}
				continue
			}
			return nil, &exec.CoordinateNotFoundError{Cube: c.name, Axis: a.Name}
		}

		key, err := value.Promote(a.ValueType, raw)
		if err != nil {
			return nil, err
		}
		cols, err := a.FindMulti(key)
		if err != nil {
			return nil, err
		}
		if len(cols) == 0 {
			return nil, &exec.CoordinateNotFoundError{Cube: c.name, Axis: a.Name}
		}
		out[a.Name] = cols
	}
	return out, nil
}

// evalRuleCondition executes a rule column's expression, or — for the
// default rule column, which carries no expression — reports whether no
// other column on this axis has fired yet (the default rule fires exactly
// when every named rule missed).
func (c *Cube) evalRuleCondition(ctx *exec.Ctx, a *axis.Axis, col *column.Column, firedSoFar int) (bool, error) {
	if col.IsDefault {
		return firedSoFar == 0, nil
	}
	execCell, ok := col.Value.Expression().(exec.Executable)
	if !ok {
		return false, wrapCellError(c.name, ctx.Stack, errNotExecutable(a.Name, col.ID))
	}
	v, err := execCell.Execute(ctx)
	if err != nil {
		return false, propagateOrWrap(c.name, ctx.Stack, err)
	}
	return exec.IsTruthy(v), nil
}

// executeCellByBinding builds the cell key from one completed binding,
// fetches the stored cell (or the cube's default_value on a miss), and
// executes it if it is a command cell.
func (c *Cube) executeCellByBinding(ctx *exec.Ctx, axes []*axis.Axis, binding map[string]*column.Column) (interface{}, error) {
	ids := make([]uint64, 0, len(axes))
	for _, a := range axes {
		ids = append(ids, binding[a.Name].ID)
	}

	c.muCells.RLock()
	entry, ok := c.cells[cellKey(ids)]
	c.muCells.RUnlock()

	var stored interface{}
	if ok {
		stored = entry.Value
	} else if c.DefaultValue != nil {
		stored = c.DefaultValue
	} else {
		return nil, &exec.CoordinateNotFoundError{Cube: c.name}
	}

	if execCell, isExec := stored.(exec.Executable); isExec {
		v, err := execCell.Execute(ctx)
		if err != nil {
			return nil, propagateOrWrap(c.name, ctx.Stack, err)
		}
		return v, nil
	}
	return stored, nil
}

// propagateOrWrap lets RuleStop, RuleJump, and CoordinateNotFoundError pass
// through unmodified, wrapping anything else into a CellExecutionError with
// the current stack.
func propagateOrWrap(cubeName string, stack *exec.Stack, err error) error {
	return wrapCellError(cubeName, stack, err)
}

// advance implements the variable-radix increment: axis names are the
// digits, most significant = first-inserted axis, least significant = last.
// Starting from the least-significant digit, increment and report "more to
// do" if it still has room; otherwise reset to 1 and carry into the next
// more-significant digit. Reports "done" once the most-significant digit
// would itself carry.
func advance(axes []*axis.Axis, counters map[string]int, bindings map[string][]*column.Column) bool {
	for i := len(axes) - 1; i >= 0; i-- {
		name := axes[i].Name
		base := len(bindings[name])
		if base == 0 {
			continue
		}
		if counters[name] < base {
			counters[name]++
			return true
		}
		counters[name] = 1
	}
	return false
}

// lookupInput fetches name from input, falling back to a case-insensitive
// scan (axis names are case-insensitive throughout the cube).
func lookupInput(input map[string]interface{}, name string) (interface{}, bool) {
	if v, ok := input[name]; ok {
		return v, true
	}
	for k, v := range input {
		if strings.EqualFold(k, name) {
			return v, true
		}
	}
	return nil, false
}
