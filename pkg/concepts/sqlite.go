// Package concepts stores finished tattoo designs in a local sqlite database.
package concepts

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/inkstudio/inkstudio/pkg/models"
)

// ErrNotFound is returned when no concept matches an id.
var ErrNotFound = errors.New("concept not found")

const schema = `
CREATE TABLE IF NOT EXISTS concepts (
    id         TEXT PRIMARY KEY,
    name       TEXT NOT NULL,
    summary    TEXT NOT NULL DEFAULT '',
    style      TEXT NOT NULL DEFAULT '',
    prompt     TEXT NOT NULL DEFAULT '',
    image      TEXT NOT NULL,
    placements TEXT NOT NULL DEFAULT '[]',
    created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_concepts_created_at ON concepts (created_at);
`

// Repository reads and writes concepts.
type Repository struct {
	db  *sql.DB
	now func() time.Time
}

// New wraps an open database. Call Init before use.
func New(db *sql.DB) *Repository {
	return &Repository{db: db, now: time.Now}
}

// OpenSQLite opens (and creates) the database file at dbPath.
func OpenSQLite(dbPath string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?cache=shared&mode=rwc&_pragma=busy_timeout=5000", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	return db, nil
}

// Init creates the schema when missing.
func (r *Repository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

// Save validates and inserts c, assigning its id and creation time.
func (r *Repository) Save(ctx context.Context, c *models.Concept) error {
	if err := c.Validate(); err != nil {
		return err
	}
	c.Name = strings.TrimSpace(c.Name)
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = r.now().UTC()
	}

	placements, err := json.Marshal(c.Placements)
	if err != nil {
		return fmt.Errorf("failed to encode placements: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
        INSERT INTO concepts (id, name, summary, style, prompt, image, placements, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)
    `,
		c.ID, c.Name, c.Summary, string(c.Style), c.Prompt, c.Image,
		string(placements), c.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("failed to save concept %q: %w", c.Name, err)
	}
	return nil
}

// Get returns the concept with id.
func (r *Repository) Get(ctx context.Context, id string) (*models.Concept, error) {
	row := r.db.QueryRowContext(ctx, `
        SELECT id, name, summary, style, prompt, image, placements, created_at
        FROM concepts
        WHERE id = ?
    `, id)

	c, err := scanConcept(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

// List returns every concept, newest first.
func (r *Repository) List(ctx context.Context) ([]*models.Concept, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT id, name, summary, style, prompt, image, placements, created_at
        FROM concepts
        ORDER BY created_at DESC, name
    `)
	if err != nil {
		return nil, fmt.Errorf("failed to list concepts: %w", err)
	}
	defer rows.Close()

	var out []*models.Concept
	for rows.Next() {
		c, err := scanConcept(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Remove deletes the concept with id.
func (r *Repository) Remove(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM concepts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete concept: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanConcept(s scanner) (*models.Concept, error) {
	var (
		c          models.Concept
		style      string
		placements string
		createdAt  string
	)
	if err := s.Scan(&c.ID, &c.Name, &c.Summary, &style, &c.Prompt, &c.Image, &placements, &createdAt); err != nil {
		return nil, err
	}
	c.Style = models.TattooStyle(style)

	if err := json.Unmarshal([]byte(placements), &c.Placements); err != nil {
		return nil, fmt.Errorf("concept %s: invalid placements: %w", c.ID, err)
	}
	t, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("concept %s: invalid created_at: %w", c.ID, err)
	}
	c.CreatedAt = t
	return &c, nil
}
