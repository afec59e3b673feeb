package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"infra-checklist/internal/domain"
)

func TestChecklistRepositoryCaches(t *testing.T) {
	loader := &countingLoader{
		ChecklistLoader: NewStaticChecklistLoader(map[string]domain.Checklist{
			"infra": sampleChecklist(),
		}),
	}
	repo := NewChecklistRepository(loader, time.Minute)

	if _, err := repo.GetChecklist(context.Background(), "infra"); err != nil {
		t.Fatalf("get checklist: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected loader once, got %d", loader.calls)
	}

	if _, err := repo.GetChecklist(context.Background(), "infra"); err != nil {
		t.Fatalf("get checklist 2: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected cache hit, loader calls %d", loader.calls)
	}
}

func TestChecklistRepositoryExpires(t *testing.T) {
	loader := &countingLoader{
		ChecklistLoader: NewStaticChecklistLoader(map[string]domain.Checklist{
			"infra": sampleChecklist(),
		}),
	}
	repo := NewChecklistRepository(loader, time.Minute)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	repo.clock = func() time.Time { return now }

	_, _ = repo.GetChecklist(context.Background(), "infra")
	now = now.Add(2 * time.Minute)
	_, _ = repo.GetChecklist(context.Background(), "infra")

	if loader.calls != 2 {
		t.Fatalf("expected reload after ttl, loader calls %d", loader.calls)
	}
}

func TestChecklistRepositoryNotFound(t *testing.T) {
	repo := NewChecklistRepository(NewStaticChecklistLoader(nil), time.Minute)

	if _, err := repo.GetChecklist(context.Background(), "missing"); !errors.Is(err, domain.ErrChecklistNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestDefaultChecklists(t *testing.T) {
	checklists, err := DefaultChecklists()
	if err != nil {
		t.Fatalf("default checklists: %v", err)
	}
	c, ok := checklists[DefaultChecklistID]
	if !ok {
		t.Fatalf("expected %q in catalog", DefaultChecklistID)
	}
	if c.QuestionCount() == 0 {
		t.Fatalf("expected questions in default checklist")
	}
	if len(c.Controls()) != 2*c.QuestionCount() {
		t.Fatalf("expected two controls per question")
	}
}

type countingLoader struct {
	ChecklistLoader
	calls int
}

func (l *countingLoader) LoadChecklist(ctx context.Context, checklistID string) (domain.Checklist, error) {
	l.calls++
	return l.ChecklistLoader.LoadChecklist(ctx, checklistID)
}

func sampleChecklist() domain.Checklist {
	return domain.Checklist{
		ID:    "infra",
		Title: "Checklist",
		Sections: []domain.Section{
			{
				Title: "Backup",
				Questions: []domain.Question{
					{ID: "backup-daily", Prompt: "Os backups são diários?"},
				},
			},
		},
	}
}
