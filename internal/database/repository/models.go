package repository

import (
	"context"
	"database/sql"
	"time"
)

// DBTX is satisfied by *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// PanelRecord is a stored desktop panel. Data holds the JSON encoded panel.
type PanelRecord struct {
	ID        string
	Slug      string
	Position  int
	Data      string
	UpdatedAt time.Time
}

// Launch records one activation of a desktop icon.
type Launch struct {
	ID         string
	PanelSlug  string
	Via        string
	LaunchedAt time.Time
}
