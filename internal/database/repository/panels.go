package repository

import (
	"context"
	"database/sql"
	"errors"
)

// PanelRepo handles panels.
type PanelRepo struct {
	db DBTX
}

func NewPanelRepo(db DBTX) *PanelRepo { return &PanelRepo{db: db} }

func (r *PanelRepo) Upsert(ctx context.Context, p PanelRecord) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO panels(id, slug, position, data, updated_at)
	VALUES (?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
	 slug=excluded.slug,
	 position=excluded.position,
	 data=excluded.data,
	 updated_at=excluded.updated_at;
	`, p.ID, p.Slug, p.Position, p.Data, p.UpdatedAt)
	return err
}

func (r *PanelRepo) List(ctx context.Context) ([]PanelRecord, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, slug, position, data, updated_at FROM panels ORDER BY position, slug`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []PanelRecord
	for rows.Next() {
		var p PanelRecord
		if err := rows.Scan(&p.ID, &p.Slug, &p.Position, &p.Data, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// BySlug returns the panel stored under slug, or nil when there is none.
func (r *PanelRepo) BySlug(ctx context.Context, slug string) (*PanelRecord, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, slug, position, data, updated_at FROM panels WHERE slug = ?`, slug)
	var p PanelRecord
	if err := row.Scan(&p.ID, &p.Slug, &p.Position, &p.Data, &p.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// Prune removes panels whose slug is not in keep.
func (r *PanelRepo) Prune(ctx context.Context, keep []string) (int64, error) {
	if len(keep) == 0 {
		res, err := r.db.ExecContext(ctx, `DELETE FROM panels`)
		if err != nil {
			return 0, err
		}
		return res.RowsAffected()
	}
	query := `DELETE FROM panels WHERE slug NOT IN (?` + repeatPlaceholders(len(keep)-1) + `)`
	args := make([]any, len(keep))
	for i, s := range keep {
		args[i] = s
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func repeatPlaceholders(n int) string {
	out := make([]byte, 0, n*3)
	for i := 0; i < n; i++ {
		out = append(out, ", ?"...)
	}
	return string(out)
}
