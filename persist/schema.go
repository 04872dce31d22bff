// SPDX-License-Identifier: MIT
package persist

import "fmt"

// dialect abstracts the handful of things that differ between the three
// registerable backends: placeholder syntax and the CREATE TABLE DDL (text
// column names/types are otherwise ANSI-portable enough to share).
type dialect struct {
	name        string
	placeholder func(n int) string
	createTable string
}

func placeholderQuestion(int) string { return "?" }
func placeholderDollar(n int) string { return fmt.Sprintf("$%d", n) }

const sqliteCreate = `
CREATE TABLE IF NOT EXISTS ncubes (
	id         TEXT PRIMARY KEY,
	app_id     TEXT NOT NULL,
	name       TEXT NOT NULL,
	version    INTEGER NOT NULL,
	status     TEXT NOT NULL,
	content    BLOB NOT NULL,
	sha1       TEXT NOT NULL,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_ncubes_lookup ON ncubes (app_id, name, status);
`

const mysqlCreate = `
CREATE TABLE IF NOT EXISTS ncubes (
	id         VARCHAR(36) PRIMARY KEY,
	app_id     VARCHAR(255) NOT NULL,
	name       VARCHAR(255) NOT NULL,
	version    INT NOT NULL,
	status     VARCHAR(16) NOT NULL,
	content    LONGBLOB NOT NULL,
	sha1       VARCHAR(40) NOT NULL,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL,
	INDEX idx_ncubes_lookup (app_id, name, status)
);
`

const postgresCreate = `
CREATE TABLE IF NOT EXISTS ncubes (
	id         TEXT PRIMARY KEY,
	app_id     TEXT NOT NULL,
	name       TEXT NOT NULL,
	version    INTEGER NOT NULL,
	status     TEXT NOT NULL,
	content    BYTEA NOT NULL,
	sha1       TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_ncubes_lookup ON ncubes (app_id, name, status);
`

var dialects = map[string]dialect{
	"sqlite3":  {name: "sqlite3", placeholder: placeholderQuestion, createTable: sqliteCreate},
	"mysql":    {name: "mysql", placeholder: placeholderQuestion, createTable: mysqlCreate},
	"postgres": {name: "postgres", placeholder: placeholderDollar, createTable: postgresCreate},
}

func dialectFor(driverName string) (dialect, error) {
	d, ok := dialects[driverName]
	if !ok {
		return dialect{}, fmt.Errorf("%w: %q", ErrUnknownDriver, driverName)
	}
	return d, nil
}
