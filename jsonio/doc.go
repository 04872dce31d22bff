// SPDX-License-Identifier: MIT
//
// Package jsonio implements the cube's JSON import/export: axes, columns,
// and cells rendered as `ncube`, `axes[]`, and `cells[]`.
//
// Import accepts arbitrary column ordering within each axis, because every
// column is added through axis.Axis.AddColumn, which maintains sort order
// itself. Import always recomputes the cube's SHA-1 rather than trusting a
// stored one: an incoming "sha1" field is compared and only logged on
// mismatch.
package jsonio
