package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"infra-checklist/internal/domain"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// ChecklistLoader loads checklist JSONB from Postgres.
type ChecklistLoader struct {
	pool *pgxpool.Pool
}

func NewChecklistLoader(pool *pgxpool.Pool) *ChecklistLoader {
	return &ChecklistLoader{pool: pool}
}

func (l *ChecklistLoader) LoadChecklist(ctx context.Context, checklistID string) (domain.Checklist, error) {
	var raw []byte
	err := l.pool.QueryRow(ctx, `SELECT data FROM checklists WHERE id=$1`, checklistID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Checklist{}, domain.ErrChecklistNotFound
	}
	if err != nil {
		return domain.Checklist{}, fmt.Errorf("load checklist: %w", err)
	}
	var checklist domain.Checklist
	if err := json.Unmarshal(raw, &checklist); err != nil {
		return domain.Checklist{}, fmt.Errorf("unmarshal checklist: %w", err)
	}
	if checklist.ID == "" {
		checklist.ID = checklistID
	}
	return checklist, nil
}
