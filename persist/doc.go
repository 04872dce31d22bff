// SPDX-License-Identifier: MIT
//
// Package persist implements the Cube Persister collaborator over
// database/sql: cube documents are serialized with package jsonio and
// stored as a BLOB column alongside bookkeeping fields (app id, name,
// version, status, sha1, timestamps). Three backends are registerable —
// mattn/go-sqlite3 (default, used by the package's own tests), the MySQL
// driver, and lib/pq — selected by the driver name passed to Open.
package persist
