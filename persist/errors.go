// SPDX-License-Identifier: MIT
package persist

import "errors"

// ErrNotFound indicates no row matched the requested app id / name (and
// version, where applicable).
var ErrNotFound = errors.New("persist: cube not found")

// ErrAlreadyExists indicates Create was called for an (app_id, name) pair
// that already has a row in the released (non-snapshot) slot.
var ErrAlreadyExists = errors.New("persist: cube already exists")

// ErrUnknownDriver indicates Open was called with a driver name this
// package does not register a schema dialect for.
var ErrUnknownDriver = errors.New("persist: unknown driver")
