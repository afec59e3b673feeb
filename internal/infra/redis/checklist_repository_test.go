package redis

import (
	"context"
	"testing"
	"time"

	"infra-checklist/internal/app"
	"infra-checklist/internal/domain"
	"infra-checklist/internal/infra/memory"
	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestChecklistRepositoryCachesInRedis(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := newClient(mr)

	loader := &countingLoader{
		ChecklistLoader: memory.NewStaticChecklistLoader(map[string]domain.Checklist{
			"infra": sampleChecklist(),
		}),
	}
	repo := NewChecklistRepository(client, loader, time.Minute)

	got, err := repo.GetChecklist(context.Background(), "infra")
	if err != nil {
		t.Fatalf("get checklist: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected loader called once, got %d", loader.calls)
	}
	if !mr.Exists("checklist:def:infra") {
		t.Fatalf("expected checklist cached in redis")
	}

	// Second call should hit cache, loader not incremented.
	cached, err := repo.GetChecklist(context.Background(), "infra")
	if err != nil {
		t.Fatalf("get cached checklist: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected cache hit, loader calls=%d", loader.calls)
	}
	if cached.QuestionCount() != got.QuestionCount() || cached.Sections[0].Questions[0].Prompt != got.Sections[0].Questions[0].Prompt {
		t.Fatalf("cached checklist differs: %+v vs %+v", cached, got)
	}
}

func TestChecklistRepositoryInvalidate(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	loader := &countingLoader{
		ChecklistLoader: memory.NewStaticChecklistLoader(map[string]domain.Checklist{
			"infra": sampleChecklist(),
		}),
	}
	repo := NewChecklistRepository(newClient(mr), loader, time.Minute)

	_, _ = repo.GetChecklist(context.Background(), "infra")
	if err := repo.Invalidate(context.Background(), "infra"); err != nil {
		t.Fatalf("invalidate: %v", err)
	}
	_, _ = repo.GetChecklist(context.Background(), "infra")
	if loader.calls != 2 {
		t.Fatalf("expected reload after invalidate, loader calls=%d", loader.calls)
	}
}

func TestChecklistRepositoryMissNotCached(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	repo := NewChecklistRepository(newClient(mr), memory.NewStaticChecklistLoader(nil), time.Minute)
	if _, err := repo.GetChecklist(context.Background(), "missing"); err != domain.ErrChecklistNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
	if mr.Exists("checklist:def:missing") {
		t.Fatalf("expected misses to stay out of the cache")
	}
}

func TestChecklistKeysDoNotOverlapSessions(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := newClient(mr)
	sessions := NewSessionStore(client, time.Minute)

	odd := sampleChecklist()
	odd.ID = "session:s1"
	repo := NewChecklistRepository(client, memory.NewStaticChecklistLoader(map[string]domain.Checklist{odd.ID: odd}), time.Minute)
	if _, err := repo.GetChecklist(context.Background(), odd.ID); err != nil {
		t.Fatalf("get checklist: %v", err)
	}
	if !mr.Exists("checklist:def:session:s1") {
		t.Fatalf("expected checklist cached under its own prefix")
	}
	if mr.Exists("checklist:session:s1") {
		t.Fatalf("expected no session marker written by the cache")
	}

	sessions.Swap("s1", app.NewWidget(nil, app.Display{}))
	if err := repo.Invalidate(context.Background(), odd.ID); err != nil {
		t.Fatalf("invalidate: %v", err)
	}
	if !mr.Exists("checklist:session:s1") {
		t.Fatalf("expected invalidation to leave the session marker alone")
	}
}

type countingLoader struct {
	memory.ChecklistLoader
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
					{ID: "backup-offsite", Prompt: "Há cópia externa?"},
				},
			},
		},
	}
}

func newClient(mr *miniredis.Miniredis) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
}
