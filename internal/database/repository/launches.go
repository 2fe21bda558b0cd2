package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// LaunchRepo records icon activations.
type LaunchRepo struct {
	db  DBTX
	now func() time.Time
}

func NewLaunchRepo(db DBTX) *LaunchRepo {
	return &LaunchRepo{db: db, now: func() time.Time { return time.Now().UTC().Truncate(time.Second) }}
}

// Record stores a launch of slug and returns it.
func (r *LaunchRepo) Record(ctx context.Context, slug, via string) (Launch, error) {
	l := Launch{ID: uuid.NewString(), PanelSlug: slug, Via: via, LaunchedAt: r.now()}
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO launches(id, panel_slug, via, launched_at) VALUES (?, ?, ?, ?);
	`, l.ID, l.PanelSlug, l.Via, l.LaunchedAt)
	if err != nil {
		return Launch{}, err
	}
	return l, nil
}

// Counts returns the number of launches per panel slug.
func (r *LaunchRepo) Counts(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT panel_slug, COUNT(*) FROM launches GROUP BY panel_slug`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make(map[string]int)
	for rows.Next() {
		var slug string
		var n int
		if err := rows.Scan(&slug, &n); err != nil {
			return nil, err
		}
		out[slug] = n
	}
	return out, rows.Err()
}

// Recent returns the latest launches, newest first.
func (r *LaunchRepo) Recent(ctx context.Context, limit int) ([]Launch, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, panel_slug, via, launched_at FROM launches
	ORDER BY launched_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Launch
	for rows.Next() {
		var l Launch
		if err := rows.Scan(&l.ID, &l.PanelSlug, &l.Via, &l.LaunchedAt); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
