package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"infra-checklist/internal/domain"
	"github.com/uptrace/bun"
)

// SeedChecklists upserts checklist definitions and returns how many were written.
func SeedChecklists(ctx context.Context, db *bun.DB, checklists []domain.Checklist) (int, error) {
	n := 0
	err := db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		for _, c := range checklists {
			data, err := json.Marshal(c)
			if err != nil {
				return fmt.Errorf("marshal checklist %s: %w", c.ID, err)
			}
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO checklists (id, data, updated_at) VALUES (?, ?::jsonb, now())
				 ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data, updated_at = now()`,
				c.ID, string(data)); err != nil {
				return fmt.Errorf("upsert checklist %s: %w", c.ID, err)
			}
			n++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return n, nil
}
