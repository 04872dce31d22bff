// Package ncube is a multi-dimensional decision engine: cubes of
// N-axis coordinates resolving to stored values or executable cells.
//
// Axes declare one of five matching disciplines — DISCRETE, RANGE, SET,
// NEAREST, RULE — and a cube's cells are addressed by one column id per
// axis. Lookups that miss fall back to a per-axis default column, or the
// cube's own default value, before raising a coordinate-not-found error.
//
// Everything is organized under focused subpackages:
//
//	value/      — the closed scalar/range value union and its promotion rules
//	column/     — the matchable entity on an axis, and its id encoding
//	axis/       — the five matching disciplines and their catalog mutators
//	cube/       — the sparse cell store and its multi-pass evaluation loop
//	exec/       — the Executable cell contract and RuleStop/RuleJump signals
//	ruleengine/ — a small guarded-expression Executable for RULE axes
//	jsonio/     — the cube's JSON wire format
//	persist/    — a SQL-backed cube store (sqlite3, mysql, postgres)
//	registry/   — an in-memory, process-local cube-by-name resolver
//	cmd/ncubectl/ — a CLI for importing, exporting, and querying cubes
package ncube
