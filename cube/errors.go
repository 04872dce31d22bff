// SPDX-License-Identifier: MIT
//
// errors.go — sentinel errors and the stack-carrying CellExecutionError.
//
// Error policy: sentinels are exposed for errors.Is branching;
// call-specific context is attached with %w wrapping at the call site,
// never baked into the sentinel text.
package cube

import (
	"errors"
	"fmt"

	pkgerrors "github.com/pkg/errors"

	"github.com/katalvlaran/ncube/exec"
)

// ErrAxisNotFound indicates a reference to an axis name the cube does not
// have.
var ErrAxisNotFound = errors.New("cube: axis not found")

// ErrAxisExists indicates AddAxis was called with a name already in use
// (case-insensitively).
var ErrAxisExists = errors.New("cube: axis already exists")

// ErrMissingScope indicates the input coordinate passed to GetCell omits a
// value for a required (non-default, non-rule) axis.
var ErrMissingScope = errors.New("cube: missing required scope key")

// ErrCellShape indicates a cell mutation supplied a column-id set whose size
// does not match the cube's axis count, or an id that does not belong to
// any axis.
var ErrCellShape = errors.New("cube: cell key does not match cube shape")

// ErrInvalidOperation indicates an operation illegal given the cube's
// current state (e.g. move_column on a SORTED axis).
var ErrInvalidOperation = errors.New("cube: invalid operation")

// CellExecutionError wraps a failure raised by an executable cell, attaching
// the cube name and the execution stack active at the point of failure.
// RuleStop, RuleJump, and CoordinateNotFoundError are never wrapped this
// way — they propagate as-is.
type CellExecutionError struct {
	CubeName string
	Stack    string
	Cause    error
}

func (e *CellExecutionError) Error() string {
	return fmt.Sprintf("cube %q: cell execution failed:\n%s%v", e.CubeName, e.Stack, e.Cause)
}

func (e *CellExecutionError) Unwrap() error { return e.Cause }

// errNotExecutable reports a rule column whose stored Expression does not
// implement exec.Executable, a configuration error rather than a control
// signal.
func errNotExecutable(axisName string, colID uint64) error {
	return fmt.Errorf("cube: rule column %d on axis %q does not implement exec.Executable", colID, axisName)
}

// wrapCellError applies the propagation policy: control signals and
// CoordinateNotFoundError pass through untouched; anything else is captured
// with a stack trace (via pkg/errors, so a later %+v also prints the
// Go-level stack of the wrap site) and attached to the evaluation stack.
func wrapCellError(cubeName string, stack *exec.Stack, err error) error {
	if err == nil {
		return nil
	}
	var stop *exec.RuleStop
	var jump *exec.RuleJump
	var notFound *exec.CoordinateNotFoundError
	if errors.As(err, &stop) || errors.As(err, &jump) || errors.As(err, &notFound) {
		return err
	}
	return &CellExecutionError{
		CubeName: cubeName,
		Stack:    stack.String(),
		Cause:    pkgerrors.WithStack(err),
	}
}
