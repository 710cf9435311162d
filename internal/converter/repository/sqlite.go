package repository

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

var ErrNotFound = errors.New("conversion not found")

//go:embed schema.sql
var schema string

// ============================================================
// Conversion record
// ============================================================

// Conversion is one archived run: the summary columns plus the full
// result document as JSON.
type Conversion struct {
	ID              string          `json:"id"`
	ProjectID       int64           `json:"project_id"`
	ProjectName     string          `json:"project_name"`
	CommandCount    int             `json:"command_count"`
	DiagnosticCount int             `json:"diagnostic_count"`
	HasHighSeverity bool            `json:"has_high_severity"`
	CommandText     string          `json:"command_text"`
	Result          json.RawMessage `json:"result,omitempty"`
	CreatedAt       string          `json:"created_at"`
}

// ============================================================
// SQLite Repository
// ============================================================

type Repository struct {
	db *sql.DB
}

func New(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Init применяет схему.
func (r *Repository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

func (r *Repository) Save(ctx context.Context, c *Conversion) error {
	if len(c.Result) == 0 {
		c.Result = json.RawMessage("{}")
	}
	_, err := r.db.ExecContext(ctx, `
        INSERT INTO conversions (id, project_id, project_name, command_count, diagnostic_count, has_high_severity, command_text, result)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)
    `,
		c.ID,
		c.ProjectID,
		c.ProjectName,
		c.CommandCount,
		c.DiagnosticCount,
		c.HasHighSeverity,
		c.CommandText,
		string(c.Result),
	)
	if err != nil {
		return fmt.Errorf("insert conversion %s: %w", c.ID, err)
	}
	return nil
}

func (r *Repository) Get(ctx context.Context, id string) (*Conversion, error) {
	row := r.db.QueryRowContext(ctx, `
        SELECT id, project_id, project_name, command_count, diagnostic_count, has_high_severity, command_text, result, created_at
        FROM conversions
        WHERE id = ?
    `, id)

	var (
		c      Conversion
		result string
	)
	if err := row.Scan(&c.ID, &c.ProjectID, &c.ProjectName, &c.CommandCount, &c.DiagnosticCount,
		&c.HasHighSeverity, &c.CommandText, &result, &c.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	c.Result = json.RawMessage(result)
	return &c, nil
}

// List returns the newest runs first, without the result document.
// A non-zero projectID restricts the list to that project.
func (r *Repository) List(ctx context.Context, projectID int64, limit int) ([]Conversion, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.db.QueryContext(ctx, `
        SELECT id, project_id, project_name, command_count, diagnostic_count, has_high_severity, command_text, created_at
        FROM conversions
        WHERE ? = 0 OR project_id = ?
        ORDER BY created_at DESC, rowid DESC
        LIMIT ?
    `, projectID, projectID, limit)
	if err != nil {
		return nil, fmt.Errorf("list conversions: %w", err)
	}
	defer rows.Close()

	out := []Conversion{}
	for rows.Next() {
		var c Conversion
		if err := rows.Scan(&c.ID, &c.ProjectID, &c.ProjectName, &c.CommandCount, &c.DiagnosticCount,
			&c.HasHighSeverity, &c.CommandText, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// OpenSQLite открывает sqlite по указанному пути.
func OpenSQLite(dbPath string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?cache=shared&mode=rwc&_pragma=busy_timeout=5000", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	return db, nil
}

func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
