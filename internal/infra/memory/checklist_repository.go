package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"infra-checklist/internal/domain"
	"golang.org/x/sync/singleflight"
)

// ChecklistLoader fetches checklist content from a backing store (e.g., Postgres).
type ChecklistLoader interface {
	LoadChecklist(ctx context.Context, checklistID string) (domain.Checklist, error)
}

// ChecklistRepository caches checklists with TTL so page loads don't hit the store.
type ChecklistRepository struct {
	loader ChecklistLoader
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group

	mu    sync.RWMutex
	rnd   *rand.Rand
	cache map[string]cachedChecklist
}

type cachedChecklist struct {
	checklist domain.Checklist
	expiresAt time.Time
}

func NewChecklistRepository(loader ChecklistLoader, ttl time.Duration) *ChecklistRepository {
	return &ChecklistRepository{
		loader: loader,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
		cache:  make(map[string]cachedChecklist),
	}
}

func (r *ChecklistRepository) GetChecklist(ctx context.Context, checklistID string) (domain.Checklist, error) {
	if c, ok := r.cached(checklistID); ok {
		return c, nil
	}

	result, err, _ := r.sf.Do(checklistID, func() (interface{}, error) {
		if c, ok := r.cached(checklistID); ok {
			return c, nil
		}

		checklist, err := r.loader.LoadChecklist(ctx, checklistID)
		if err != nil {
			return domain.Checklist{}, err
		}

		r.mu.Lock()
		r.cache[checklistID] = cachedChecklist{
			checklist: checklist,
			expiresAt: r.clock().Add(r.ttlWithJitterLocked()),
		}
		r.mu.Unlock()
		return checklist, nil
	})
	if err != nil {
		return domain.Checklist{}, err
	}
	return result.(domain.Checklist), nil
}

func (r *ChecklistRepository) cached(checklistID string) (domain.Checklist, bool) {
	now := r.clock()
	r.mu.RLock()
	defer r.mu.RUnlock()
	if entry, ok := r.cache[checklistID]; ok && entry.expiresAt.After(now) {
		return entry.checklist, true
	}
	return domain.Checklist{}, false
}

// ttlWithJitterLocked adds up to 10% jitter to spread expirations. r.mu must be held.
func (r *ChecklistRepository) ttlWithJitterLocked() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}

// StaticChecklistLoader is a loader backed by an in-memory map (embedded catalog, tests).
type StaticChecklistLoader struct {
	checklists map[string]domain.Checklist
}

func NewStaticChecklistLoader(checklists map[string]domain.Checklist) *StaticChecklistLoader {
	return &StaticChecklistLoader{checklists: checklists}
}

func (l *StaticChecklistLoader) LoadChecklist(_ context.Context, checklistID string) (domain.Checklist, error) {
	if c, ok := l.checklists[checklistID]; ok {
		return c, nil
	}
	return domain.Checklist{}, domain.ErrChecklistNotFound
}
