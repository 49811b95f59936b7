package assetdb

import (
	"database/sql"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// ============================================================
// SQLite Registry
// ============================================================

const schema = `
CREATE TABLE IF NOT EXISTS assets (
    path       TEXT PRIMARY KEY,
    state      TEXT NOT NULL,
    width      INTEGER NOT NULL DEFAULT 0,
    height     INTEGER NOT NULL DEFAULT 0,
    updated_at INTEGER NOT NULL DEFAULT 0
)`

// SQLiteRegistry keeps the registry in a SQLite database so committed
// assets survive across runs.
type SQLiteRegistry struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) a registry database at dbPath.
func OpenSQLite(dbPath string) (*SQLiteRegistry, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?mode=rwc&_pragma=busy_timeout(5000)", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init assets table: %w", err)
	}
	return &SQLiteRegistry{db: db}, nil
}

func (r *SQLiteRegistry) Refresh(paths ...string) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, p := range paths {
		_, err := tx.Exec(`
            INSERT INTO assets (path, state, updated_at) VALUES (?, ?, ?)
            ON CONFLICT(path) DO UPDATE SET state = excluded.state, updated_at = excluded.updated_at
        `, key(p), StatePending, time.Now().UnixNano())
		if err != nil {
			return fmt.Errorf("queue %s: %w", p, err)
		}
	}
	return tx.Commit()
}

func (r *SQLiteRegistry) Settle() (int, error) {
	rows, err := r.db.Query(`SELECT path FROM assets WHERE state = ? ORDER BY path`, StatePending)
	if err != nil {
		return 0, err
	}
	var paths []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			rows.Close()
			return 0, err
		}
		paths = append(paths, p)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return 0, err
	}

	var errs []error
	n := 0
	for _, p := range paths {
		asset, err := probe(p)
		if err != nil {
			errs = append(errs, err)
			if _, derr := r.db.Exec(`DELETE FROM assets WHERE path = ?`, p); derr != nil {
				errs = append(errs, derr)
			}
			continue
		}
		_, err = r.db.Exec(`
            UPDATE assets SET state = ?, width = ?, height = ?, updated_at = ? WHERE path = ?
        `, StateReady, asset.Width, asset.Height, asset.UpdatedAt.UnixNano(), p)
		if err != nil {
			errs = append(errs, fmt.Errorf("commit %s: %w", p, err))
			continue
		}
		n++
	}
	return n, stderrors.Join(errs...)
}

func (r *SQLiteRegistry) Load(path string) (Asset, error) {
	row := r.db.QueryRow(`
        SELECT state, width, height, updated_at FROM assets WHERE path = ?
    `, key(path))

	var (
		state   State
		a       = Asset{Path: key(path)}
		updated int64
	)
	if err := row.Scan(&state, &a.Width, &a.Height, &updated); err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return Asset{}, errUnknown(path)
		}
		return Asset{}, err
	}
	if state != StateReady {
		return Asset{}, errPending(path)
	}
	a.UpdatedAt = time.Unix(0, updated)
	return a, nil
}

// Assets lists every committed asset ordered by path.
func (r *SQLiteRegistry) Assets() ([]Asset, error) {
	rows, err := r.db.Query(`
        SELECT path, width, height, updated_at FROM assets WHERE state = ? ORDER BY path
    `, StateReady)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Asset
	for rows.Next() {
		var (
			a       Asset
			updated int64
		)
		if err := rows.Scan(&a.Path, &a.Width, &a.Height, &updated); err != nil {
			return nil, err
		}
		a.UpdatedAt = time.Unix(0, updated)
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *SQLiteRegistry) Close() error {
	return r.db.Close()
}

var _ Registry = (*SQLiteRegistry)(nil)
