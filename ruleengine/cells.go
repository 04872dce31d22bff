// SPDX-License-Identifier: MIT
//
// cells.go — small concrete exec.Executable cells beyond Expr, covering the
// literal-value case and the two control signals a cell can raise.
package ruleengine

import "github.com/katalvlaran/ncube/exec"

// Literal is a command cell that always returns a fixed value, never
// executing any expression. It exists so a cube cell can be wired as
// "always this constant" without going through the parser. It has no String
// method, so a RULE axis does not accept it as a column value.
type Literal struct {
	Value interface{}
}

func (l *Literal) Execute(ctx *exec.Ctx) (interface{}, error) { return l.Value, nil }
func (l *Literal) ReferencedCubeNames(out map[string]struct{}) {}
func (l *Literal) ScopeKeys(out map[string]struct{})           {}
func (l *Literal) IsCacheable() bool                           { return true }

var _ exec.Executable = (*Literal)(nil)
var _ exec.Cacheable = (*Literal)(nil)

// Redirect is a command cell that always raises exec.RuleJump with a fixed
// replacement input.
type Redirect struct {
	NewInput map[string]interface{}
	Reason   string
}

func (r *Redirect) Execute(ctx *exec.Ctx) (interface{}, error) {
	return nil, &exec.RuleJump{NewInput: r.NewInput}
}
func (r *Redirect) ReferencedCubeNames(out map[string]struct{}) {}
func (r *Redirect) ScopeKeys(out map[string]struct{})           {}

var _ exec.Executable = (*Redirect)(nil)

// Stop is a command cell that always raises exec.RuleStop, halting the
// current evaluation pass.
type Stop struct {
	Reason string
}

func (s *Stop) Execute(ctx *exec.Ctx) (interface{}, error) {
	return nil, &exec.RuleStop{Reason: s.Reason}
}
func (s *Stop) ReferencedCubeNames(out map[string]struct{}) {}
func (s *Stop) ScopeKeys(out map[string]struct{})           {}

var _ exec.Executable = (*Stop)(nil)
