// SPDX-License-Identifier: MIT
//
// errors.go — sentinel errors for the ruleengine package, following the same
// policy as axis/errors.go and cube/errors.go: sentinels for errors.Is,
// call-specific context attached with %w at the call site.
package ruleengine

import "errors"

// ErrSyntax indicates the source text could not be parsed by the grammar
// documented in doc.go.
var ErrSyntax = errors.New("ruleengine: syntax error")

// ErrUnknownOperator indicates a token was recognized by the lexer but does
// not correspond to any operator the parser understands at that position.
var ErrUnknownOperator = errors.New("ruleengine: unknown operator")

// ErrTypeMismatch indicates an operator was applied to operand kinds it does
// not support (e.g. arithmetic on strings, comparison between a number and a
// non-numeric string).
var ErrTypeMismatch = errors.New("ruleengine: type mismatch")
