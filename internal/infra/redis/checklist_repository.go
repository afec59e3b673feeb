package redis

import (
	"context"
	"encoding/json"
	"math/rand"
	"sync"
	"time"

	"infra-checklist/internal/domain"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// ChecklistLoader fetches checklist content from a backing store (e.g., Postgres).
type ChecklistLoader interface {
	LoadChecklist(ctx context.Context, checklistID string) (domain.Checklist, error)
}

// ChecklistRepository caches checklist definitions in Redis and falls back to
// a loader on cache miss. Each checklist is stored as JSON:
//
//	SET checklist:def:{checklistID} {json} EX ttl
type ChecklistRepository struct {
	client *redis.Client
	loader ChecklistLoader
	ttl    time.Duration
	sf     singleflight.Group

	mu  sync.Mutex
	rnd *rand.Rand
}

func NewChecklistRepository(client *redis.Client, loader ChecklistLoader, ttl time.Duration) *ChecklistRepository {
	return &ChecklistRepository{
		client: client,
		loader: loader,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *ChecklistRepository) GetChecklist(ctx context.Context, checklistID string) (domain.Checklist, error) {
	key := r.key(checklistID)

	if c, ok := r.fromCache(ctx, key); ok {
		return c, nil
	}

	result, err, _ := r.sf.Do(checklistID, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if c, ok := r.fromCache(ctx, key); ok {
			return c, nil
		}

		checklist, err := r.loader.LoadChecklist(ctx, checklistID)
		if err != nil {
			return domain.Checklist{}, err
		}

		if data, err := json.Marshal(checklist); err == nil {
			_ = r.client.Set(ctx, key, data, r.ttlWithJitter()).Err()
		}
		return checklist, nil
	})
	if err != nil {
		return domain.Checklist{}, err
	}
	return result.(domain.Checklist), nil
}

// Invalidate drops a cached checklist so the next read reloads it.
func (r *ChecklistRepository) Invalidate(ctx context.Context, checklistID string) error {
	return r.client.Del(ctx, r.key(checklistID)).Err()
}

func (r *ChecklistRepository) fromCache(ctx context.Context, key string) (domain.Checklist, bool) {
	raw, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		// redis.Nil and connection errors both fall through to the loader.
		return domain.Checklist{}, false
	}
	var c domain.Checklist
	if err := json.Unmarshal(raw, &c); err != nil {
		return domain.Checklist{}, false
	}
	return c, true
}

func (r *ChecklistRepository) key(checklistID string) string {
	return "checklist:def:" + checklistID
}

func (r *ChecklistRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}
