// SPDX-License-Identifier: MIT
//
// store.go — SQLPersister: the Cube Persister collaborator backed by
// database/sql. Every public method except Close opens exactly one *sql.Tx and either
// commits it on success or rolls it back on any error.
package persist

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/katalvlaran/ncube/cube"
	"github.com/katalvlaran/ncube/jsonio"
)

const (
	statusReleased = "released"
	statusSnapshot = "snapshot"
)

// Record is one row's bookkeeping fields, without the cube content — the
// shape List returns.
type Record struct {
	ID        string
	AppID     string
	Name      string
	Version   int
	Status    string
	SHA1      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SQLPersister is a Cube Persister over a database/sql handle. It is safe
// for concurrent use (database/sql pools connections internally).
type SQLPersister struct {
	db  *sql.DB
	dia dialect
}

// Open opens driverName/dsn (one of "sqlite3", "mysql", "postgres") and
// ensures the ncubes table exists.
func Open(driverName, dsn string) (*SQLPersister, error) {
	dia, err := dialectFor(driverName)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("persist: open %s: %w", driverName, err)
	}
	p := &SQLPersister{db: db, dia: dia}
	if err := p.migrate(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return p, nil
}

func (p *SQLPersister) migrate(ctx context.Context) error {
	_, err := p.db.ExecContext(ctx, p.dia.createTable)
	if err != nil {
		return fmt.Errorf("persist: migrate: %w", err)
	}
	return nil
}

// Close releases the underlying *sql.DB.
func (p *SQLPersister) Close() error { return p.db.Close() }

func (p *SQLPersister) ph(n int) string { return p.dia.placeholder(n) }

// withTx runs fn inside a transaction, committing on a nil return and
// rolling back otherwise.
func (p *SQLPersister) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("persist: begin: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("persist: commit: %w", err)
	}
	return nil
}

// Create inserts a new released row for (appID, c.Name()). It fails with
// ErrAlreadyExists if a released row already exists for that pair.
func (p *SQLPersister) Create(ctx context.Context, appID string, c *cube.Cube) (Record, error) {
	content, err := jsonio.Marshal(c)
	if err != nil {
		return Record{}, fmt.Errorf("persist: marshal: %w", err)
	}
	now := time.Now().UTC()
	rec := Record{
		ID: uuid.NewString(), AppID: appID, Name: c.Name(), Version: 1,
		Status: statusReleased, SHA1: c.SHA1(), CreatedAt: now, UpdatedAt: now,
	}

	err = p.withTx(ctx, func(tx *sql.Tx) error {
		var exists int
		q := fmt.Sprintf(`SELECT COUNT(*) FROM ncubes WHERE app_id = %s AND name = %s AND status = %s`,
			p.ph(1), p.ph(2), p.ph(3))
		if err := tx.QueryRowContext(ctx, q, appID, c.Name(), statusReleased).Scan(&exists); err != nil {
			return fmt.Errorf("persist: existence check: %w", err)
		}
		if exists > 0 {
			return fmt.Errorf("%w: app %q name %q", ErrAlreadyExists, appID, c.Name())
		}

		ins := fmt.Sprintf(`INSERT INTO ncubes (id, app_id, name, version, status, content, sha1, created_at, updated_at)
			VALUES (%s, %s, %s, %s, %s, %s, %s, %s, %s)`,
			p.ph(1), p.ph(2), p.ph(3), p.ph(4), p.ph(5), p.ph(6), p.ph(7), p.ph(8), p.ph(9))
		_, err := tx.ExecContext(ctx, ins, rec.ID, rec.AppID, rec.Name, rec.Version, rec.Status,
			content, rec.SHA1, rec.CreatedAt, rec.UpdatedAt)
		if err != nil {
			return fmt.Errorf("persist: insert: %w", err)
		}
		return nil
	})
	if err != nil {
		return Record{}, err
	}
	return rec, nil
}

// Update overwrites the released row's content for (appID, name), bumping
// its version. It fails with ErrNotFound if no released row exists.
func (p *SQLPersister) Update(ctx context.Context, appID, name string, c *cube.Cube) (Record, error) {
	content, err := jsonio.Marshal(c)
	if err != nil {
		return Record{}, fmt.Errorf("persist: marshal: %w", err)
	}
	var rec Record
	err = p.withTx(ctx, func(tx *sql.Tx) error {
		sel := fmt.Sprintf(`SELECT id, version, created_at FROM ncubes WHERE app_id = %s AND name = %s AND status = %s`,
			p.ph(1), p.ph(2), p.ph(3))
		var id string
		var version int
		var createdAt time.Time
		err := tx.QueryRowContext(ctx, sel, appID, name, statusReleased).Scan(&id, &version, &createdAt)
		if err == sql.ErrNoRows {
			return fmt.Errorf("%w: app %q name %q", ErrNotFound, appID, name)
		}
		if err != nil {
			return fmt.Errorf("persist: select: %w", err)
		}

		now := time.Now().UTC()
		upd := fmt.Sprintf(`UPDATE ncubes SET version = %s, content = %s, sha1 = %s, updated_at = %s WHERE id = %s`,
			p.ph(1), p.ph(2), p.ph(3), p.ph(4), p.ph(5))
		_, err = tx.ExecContext(ctx, upd, version+1, content, c.SHA1(), now, id)
		if err != nil {
			return fmt.Errorf("persist: update: %w", err)
		}
		rec = Record{ID: id, AppID: appID, Name: name, Version: version + 1, Status: statusReleased,
			SHA1: c.SHA1(), CreatedAt: createdAt, UpdatedAt: now}
		return nil
	})
	if err != nil {
		return Record{}, err
	}
	return rec, nil
}

// LoadByName loads and deserializes the released cube for (appID, name).
func (p *SQLPersister) LoadByName(ctx context.Context, appID, name string) (*cube.Cube, error) {
	var content []byte
	err := p.withTx(ctx, func(tx *sql.Tx) error {
		q := fmt.Sprintf(`SELECT content FROM ncubes WHERE app_id = %s AND name = %s AND status = %s`,
			p.ph(1), p.ph(2), p.ph(3))
		err := tx.QueryRowContext(ctx, q, appID, name, statusReleased).Scan(&content)
		if err == sql.ErrNoRows {
			return fmt.Errorf("%w: app %q name %q", ErrNotFound, appID, name)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	c, err := jsonio.Unmarshal(content)
	if err != nil {
		return nil, fmt.Errorf("persist: unmarshal: %w", err)
	}
	return c, nil
}

// List returns every released row's bookkeeping fields for appID, ordered
// by name.
func (p *SQLPersister) List(ctx context.Context, appID string) ([]Record, error) {
	var out []Record
	err := p.withTx(ctx, func(tx *sql.Tx) error {
		q := fmt.Sprintf(`SELECT id, app_id, name, version, status, sha1, created_at, updated_at
			FROM ncubes WHERE app_id = %s AND status = %s ORDER BY name`, p.ph(1), p.ph(2))
		rows, err := tx.QueryContext(ctx, q, appID, statusReleased)
		if err != nil {
			return fmt.Errorf("persist: list: %w", err)
		}
		defer rows.Close()
		for rows.Next() {
			var r Record
			if err := rows.Scan(&r.ID, &r.AppID, &r.Name, &r.Version, &r.Status, &r.SHA1, &r.CreatedAt, &r.UpdatedAt); err != nil {
				return fmt.Errorf("persist: scan: %w", err)
			}
			out = append(out, r)
		}
		return rows.Err()
	})
	return out, err
}

// Delete removes the released row for (appID, name). It is a no-op, not an
// error, if no such row exists.
func (p *SQLPersister) Delete(ctx context.Context, appID, name string) error {
	return p.withTx(ctx, func(tx *sql.Tx) error {
		q := fmt.Sprintf(`DELETE FROM ncubes WHERE app_id = %s AND name = %s AND status = %s`, p.ph(1), p.ph(2), p.ph(3))
		_, err := tx.ExecContext(ctx, q, appID, name, statusReleased)
		if err != nil {
			return fmt.Errorf("persist: delete: %w", err)
		}
		return nil
	})
}

// Rename changes the released row's name in place, preserving its id,
// version, and content.
func (p *SQLPersister) Rename(ctx context.Context, appID, oldName, newName string) error {
	return p.withTx(ctx, func(tx *sql.Tx) error {
		now := time.Now().UTC()
		q := fmt.Sprintf(`UPDATE ncubes SET name = %s, updated_at = %s WHERE app_id = %s AND name = %s AND status = %s`,
			p.ph(1), p.ph(2), p.ph(3), p.ph(4), p.ph(5))
		res, err := tx.ExecContext(ctx, q, newName, now, appID, oldName, statusReleased)
		if err != nil {
			return fmt.Errorf("persist: rename: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("persist: rename: %w", err)
		}
		if n == 0 {
			return fmt.Errorf("%w: app %q name %q", ErrNotFound, appID, oldName)
		}
		return nil
	})
}

// CreateSnapshot copies the released row's current content into a new row
// tagged status=snapshot, capturing its state at this point in time without
// disturbing the released row.
func (p *SQLPersister) CreateSnapshot(ctx context.Context, appID, name string) (Record, error) {
	var rec Record
	err := p.withTx(ctx, func(tx *sql.Tx) error {
		sel := fmt.Sprintf(`SELECT version, content, sha1 FROM ncubes WHERE app_id = %s AND name = %s AND status = %s`,
			p.ph(1), p.ph(2), p.ph(3))
		var version int
		var content []byte
		var sha1 string
		err := tx.QueryRowContext(ctx, sel, appID, name, statusReleased).Scan(&version, &content, &sha1)
		if err == sql.ErrNoRows {
			return fmt.Errorf("%w: app %q name %q", ErrNotFound, appID, name)
		}
		if err != nil {
			return fmt.Errorf("persist: select: %w", err)
		}

		now := time.Now().UTC()
		rec = Record{ID: uuid.NewString(), AppID: appID, Name: name, Version: version,
			Status: statusSnapshot, SHA1: sha1, CreatedAt: now, UpdatedAt: now}
		ins := fmt.Sprintf(`INSERT INTO ncubes (id, app_id, name, version, status, content, sha1, created_at, updated_at)
			VALUES (%s, %s, %s, %s, %s, %s, %s, %s, %s)`,
			p.ph(1), p.ph(2), p.ph(3), p.ph(4), p.ph(5), p.ph(6), p.ph(7), p.ph(8), p.ph(9))
		_, err = tx.ExecContext(ctx, ins, rec.ID, rec.AppID, rec.Name, rec.Version, rec.Status,
			content, rec.SHA1, rec.CreatedAt, rec.UpdatedAt)
		if err != nil {
			return fmt.Errorf("persist: snapshot insert: %w", err)
		}
		return nil
	})
	if err != nil {
		return Record{}, err
	}
	return rec, nil
}

// Release promotes a snapshot row (identified by its id) to be the released
// row for its (app_id, name): the prior released row is deleted and the
// snapshot's status is flipped to released.
func (p *SQLPersister) Release(ctx context.Context, snapshotID string) error {
	return p.withTx(ctx, func(tx *sql.Tx) error {
		sel := fmt.Sprintf(`SELECT app_id, name FROM ncubes WHERE id = %s AND status = %s`, p.ph(1), p.ph(2))
		var appID, name string
		err := tx.QueryRowContext(ctx, sel, snapshotID, statusSnapshot).Scan(&appID, &name)
		if err == sql.ErrNoRows {
			return fmt.Errorf("%w: snapshot %q", ErrNotFound, snapshotID)
		}
		if err != nil {
			return fmt.Errorf("persist: select snapshot: %w", err)
		}

		del := fmt.Sprintf(`DELETE FROM ncubes WHERE app_id = %s AND name = %s AND status = %s`,
			p.ph(1), p.ph(2), p.ph(3))
		if _, err := tx.ExecContext(ctx, del, appID, name, statusReleased); err != nil {
			return fmt.Errorf("persist: delete old released: %w", err)
		}

		now := time.Now().UTC()
		upd := fmt.Sprintf(`UPDATE ncubes SET status = %s, updated_at = %s WHERE id = %s`,
			p.ph(1), p.ph(2), p.ph(3))
		if _, err := tx.ExecContext(ctx, upd, statusReleased, now, snapshotID); err != nil {
			return fmt.Errorf("persist: promote snapshot: %w", err)
		}
		return nil
	})
}
