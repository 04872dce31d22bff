// SPDX-License-Identifier: MIT
//
// Package exec defines the contract between the cube and executable cells:
// the Executable capability interface, the evaluation context it receives,
// the RuleStop/RuleJump control signals, and the per-goroutine call stack
// used for cycle detection and error context.
//
// RuleStop and RuleJump are modeled as ordinary error values rather than
// exceptions: an Executable returns them from Execute like any other error,
// and the cube's evaluation loop recognizes them with errors.As before
// treating anything else as a genuine failure. This keeps control flow in
// Go's normal error-return idiom instead of introducing a parallel
// signaling mechanism.
package exec
