package persist

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"rowloom/internal/domain"
)

// ErrNotFound is returned when a project id has no row.
var ErrNotFound = errors.New("project not found")

const schemaVersion = 1

// DB is the project database. All tracking state except settings lives
// here; settings are kept in the TOML config file.
type DB struct {
	sql *sql.DB
}

// Open opens (creating if needed) the project database at path and runs
// migrations.
func Open(ctx context.Context, path string) (*DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL enables one writer + many readers; busy_timeout helps avoid
	// "database is locked" flakiness.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &DB{sql: db}, nil
}

// Close closes the underlying database.
func (d *DB) Close() error {
	return d.sql.Close()
}

func migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS meta (
			k TEXT PRIMARY KEY,
			v TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS projects (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			source_path TEXT NOT NULL DEFAULT '',
			json TEXT NOT NULL,
			created_at_unixms INTEGER NOT NULL,
			updated_at_unixms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_projects_updated ON projects(updated_at_unixms);`,
	}
	for _, s := range stmts {
		if _, err := db.ExecContext(ctx, s); err != nil {
			return err
		}
	}
	_, err := db.ExecContext(ctx,
		`INSERT OR REPLACE INTO meta(k, v) VALUES(?, ?)`,
		"schema_version", fmt.Sprintf("%d", schemaVersion))
	return err
}

// SaveProject inserts p when its ID is zero, assigning one, and replaces
// the stored record otherwise. Timestamps are stamped here so reducers
// never have to read the clock. The stored project is returned.
func (d *DB) SaveProject(ctx context.Context, p domain.Project) (domain.Project, error) {
	now := time.Now().UTC()
	p.UpdatedAt = now
	if p.ID == 0 {
		p.CreatedAt = now
		raw, err := json.Marshal(p)
		if err != nil {
			return domain.Project{}, err
		}
		res, err := d.sql.ExecContext(ctx,
			`INSERT INTO projects(name, source_path, json, created_at_unixms, updated_at_unixms) VALUES(?, ?, ?, ?, ?)`,
			p.Name, p.SourcePath, string(raw), now.UnixMilli(), now.UnixMilli())
		if err != nil {
			return domain.Project{}, err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return domain.Project{}, err
		}
		p.ID = int(id)
		// Rewrite the JSON so it carries the assigned id.
		return p, d.rewriteJSON(ctx, p)
	}
	raw, err := json.Marshal(p)
	if err != nil {
		return domain.Project{}, err
	}
	res, err := d.sql.ExecContext(ctx,
		`UPDATE projects SET name = ?, source_path = ?, json = ?, updated_at_unixms = ? WHERE id = ?`,
		p.Name, p.SourcePath, string(raw), now.UnixMilli(), p.ID)
	if err != nil {
		return domain.Project{}, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return domain.Project{}, err
	}
	if n == 0 {
		return domain.Project{}, fmt.Errorf("save project %d: %w", p.ID, ErrNotFound)
	}
	return p, nil
}

func (d *DB) rewriteJSON(ctx context.Context, p domain.Project) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return err
	}
	_, err = d.sql.ExecContext(ctx, `UPDATE projects SET json = ? WHERE id = ?`, string(raw), p.ID)
	return err
}

// GetProject loads a single project by id.
func (d *DB) GetProject(ctx context.Context, id int) (domain.Project, error) {
	var raw string
	err := d.sql.QueryRowContext(ctx, `SELECT json FROM projects WHERE id = ?`, id).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Project{}, fmt.Errorf("get project %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return domain.Project{}, err
	}
	var p domain.Project
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return domain.Project{}, fmt.Errorf("decode project %d: %w", id, err)
	}
	return p, nil
}

// ListProjects returns every stored project, most recently updated first.
func (d *DB) ListProjects(ctx context.Context) ([]domain.Project, error) {
	rows, err := d.sql.QueryContext(ctx,
		`SELECT json FROM projects ORDER BY updated_at_unixms DESC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Project
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		var p domain.Project
		if err := json.Unmarshal([]byte(raw), &p); err != nil {
			return nil, fmt.Errorf("decode project: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// DeleteProject removes a project by id.
func (d *DB) DeleteProject(ctx context.Context, id int) error {
	res, err := d.sql.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("delete project %d: %w", id, ErrNotFound)
	}
	return nil
}

// SavePosition persists just the tracked position of a project. It
// read-modifies the stored record in a transaction so concurrent saves
// of other fields are not lost.
func (d *DB) SavePosition(ctx context.Context, id int, pos domain.Position) error {
	return d.updateProject(ctx, id, func(p *domain.Project) {
		p.Position = pos
	})
}

// SaveMarkedRows persists the set of rows flagged done.
func (d *DB) SaveMarkedRows(ctx context.Context, id int, marked []int) error {
	return d.updateProject(ctx, id, func(p *domain.Project) {
		p.MarkedRows = append([]int(nil), marked...)
	})
}

func (d *DB) updateProject(ctx context.Context, id int, mutate func(*domain.Project)) error {
	tx, err := d.sql.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var raw string
	err = tx.QueryRowContext(ctx, `SELECT json FROM projects WHERE id = ?`, id).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update project %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return err
	}
	var p domain.Project
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return fmt.Errorf("decode project %d: %w", id, err)
	}
	mutate(&p)
	p.UpdatedAt = time.Now().UTC()
	out, err := json.Marshal(p)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE projects SET json = ?, updated_at_unixms = ? WHERE id = ?`,
		string(out), p.UpdatedAt.UnixMilli(), id); err != nil {
		return err
	}
	return tx.Commit()
}
