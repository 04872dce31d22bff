// SPDX-License-Identifier: MIT
//
// Package axis implements the five column-matching disciplines a decision
// engine axis can declare — DISCRETE, RANGE, SET, NEAREST, RULE — plus the
// auxiliary indices that keep each discipline's lookup at O(log n) or O(1),
// value standardization, and the overlap checks that guard RANGE and SET
// invariants on every insert or update.
//
// An Axis owns no locking of its own: a Cube mutates and reads its axes
// under its own two-lock discipline (see package cube). Axis methods are
// therefore safe to call concurrently only insofar as their caller
// serializes mutation.
package axis
