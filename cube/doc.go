// SPDX-License-Identifier: MIT

// Package cube implements the sparse N-dimensional cell store: a named
// collection of axes plus a map from column-sets to cell values, and the
// multi-pass evaluation loop (GetCell) that binds an input coordinate to a
// cell through each axis's matching discipline.
package cube
