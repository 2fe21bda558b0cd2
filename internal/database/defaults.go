package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/foxzinnx/deskfolio/internal/content"
	"github.com/foxzinnx/deskfolio/internal/database/repository"
)

// PanelID is the stable row id for a panel slug.
func PanelID(slug string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte("panel:"+slug)).String()
}

// SeedPanels makes the stored panels match panels, in order. It is
// idempotent and safe to run on every startup: unchanged rows are left
// alone, changed rows for the same slug are replaced and slugs no longer
// present are removed.
func SeedPanels(ctx context.Context, db *sql.DB, panels []content.Panel) error {
	return WithTx(ctx, db, func(tx *sql.Tx) error {
		repo := repository.NewPanelRepo(tx)
		keep := make([]string, 0, len(panels))
		for idx, p := range panels {
			keep = append(keep, p.Slug)
			data, err := json.Marshal(p)
			if err != nil {
				return fmt.Errorf("encode panel %s: %w", p.Slug, err)
			}
			stored, err := repo.BySlug(ctx, p.Slug)
			if err != nil {
				return fmt.Errorf("lookup panel %s: %w", p.Slug, err)
			}
			if stored != nil && stored.Position == idx && stored.Data == string(data) {
				continue
			}
			rec := repository.PanelRecord{
				ID:        PanelID(p.Slug),
				Slug:      p.Slug,
				Position:  idx,
				Data:      string(data),
				UpdatedAt: Now(),
			}
			if err := repo.Upsert(ctx, rec); err != nil {
				return fmt.Errorf("seed panel %s: %w", p.Slug, err)
			}
		}
		if _, err := repo.Prune(ctx, keep); err != nil {
			return fmt.Errorf("prune panels: %w", err)
		}
		return nil
	})
}

// LoadPanels returns stored panels in display order.
func LoadPanels(ctx context.Context, db *sql.DB) ([]content.Panel, error) {
	recs, err := repository.NewPanelRepo(db).List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]content.Panel, 0, len(recs))
	for _, rec := range recs {
		var p content.Panel
		if err := json.Unmarshal([]byte(rec.Data), &p); err != nil {
			return nil, fmt.Errorf("decode panel %s: %w", rec.Slug, err)
		}
		out = append(out, p)
	}
	return out, nil
}
