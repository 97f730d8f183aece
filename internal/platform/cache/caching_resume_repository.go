// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"resume_backend/internal/feature/resume/domain/entity"
	"resume_backend/internal/feature/resume/usecase"
)

// CachingResumeRepository decorates a ResumeRepository with Redis caching.
// Reads are served from the cache when possible; writes go to the inner repository
// and invalidate every cached entry of the owning user.
//
// Entries are keyed by a per-user generation that every write increments. A read that
// loaded stale rows before a concurrent write committed stores them under the old
// generation, where no later read looks.
type CachingResumeRepository struct {
	inner     usecase.ResumeRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.ResumeRepository = (*CachingResumeRepository)(nil)

// NewCachingResumeRepository decorates a ResumeRepository with Redis caching.
// If ttl is 0, it defaults to 10 minutes. If namespace is empty, it uses "resumes".
func NewCachingResumeRepository(rdb *redis.Client, ttl time.Duration, inner usecase.ResumeRepository, namespace string) *CachingResumeRepository {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	if namespace == "" {
		namespace = "resumes"
	}
	return &CachingResumeRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// Create persists the record and invalidates the owner's cached list.
func (c *CachingResumeRepository) Create(ctx context.Context, r *entity.ResumeRecord) error {
	if err := c.inner.Create(ctx, r); err != nil {
		return err
	}
	c.invalidate(ctx, r.UserID)
	return nil
}

// ListByUser returns the user's records, checking the cache first.
func (c *CachingResumeRepository) ListByUser(ctx context.Context, userID uint) ([]entity.ResumeRecord, error) {
	if c.rdb == nil {
		return c.inner.ListByUser(ctx, userID)
	}
	gen, ok := c.generation(ctx, userID)
	if !ok {
		return c.inner.ListByUser(ctx, userID)
	}

	key := c.listKey(userID, gen)
	var out []entity.ResumeRecord
	if c.get(ctx, key, &out) {
		return out, nil
	}

	out, err := c.inner.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	c.set(ctx, key, out)
	return out, nil
}

// FindByID returns one record, checking the cache first. Misses are not cached.
func (c *CachingResumeRepository) FindByID(ctx context.Context, userID uint, id string) (*entity.ResumeRecord, error) {
	if c.rdb == nil {
		return c.inner.FindByID(ctx, userID, id)
	}
	gen, ok := c.generation(ctx, userID)
	if !ok {
		return c.inner.FindByID(ctx, userID, id)
	}

	key := c.itemKey(userID, gen, id)
	var cached entity.ResumeRecord
	if c.get(ctx, key, &cached) {
		return &cached, nil
	}

	out, err := c.inner.FindByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	c.set(ctx, key, out)
	return out, nil
}

// Delete removes the record and invalidates the owner's cached entries.
func (c *CachingResumeRepository) Delete(ctx context.Context, userID uint, id string) error {
	if err := c.inner.Delete(ctx, userID, id); err != nil {
		return err
	}
	c.invalidate(ctx, userID)
	return nil
}

// get decodes a cached value into out. Corrupted entries are deleted.
func (c *CachingResumeRepository) get(ctx context.Context, key string, out any) bool {
	b, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil || len(b) == 0 {
		return false
	}
	if err := json.Unmarshal(b, out); err != nil {
		_ = c.rdb.Del(ctx, key).Err()
		return false
	}
	return true
}

// set stores a value (best effort).
func (c *CachingResumeRepository) set(ctx context.Context, key string, v any) {
	if b, err := json.Marshal(v); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}
}

// generation returns the user's current cache generation. ok is false when Redis fails,
// in which case the caller reads through.
func (c *CachingResumeRepository) generation(ctx context.Context, userID uint) (gen int64, ok bool) {
	gen, err := c.rdb.Get(ctx, c.genKey(userID)).Int64()
	switch {
	case err == nil:
		return gen, true
	case errors.Is(err, redis.Nil):
		return 0, true
	default:
		return 0, false
	}
}

// invalidate moves the user to a new generation and drops the previous one's entries.
func (c *CachingResumeRepository) invalidate(ctx context.Context, userID uint) {
	if c.rdb == nil {
		return
	}
	gen, err := c.rdb.Incr(ctx, c.genKey(userID)).Result()
	if err != nil {
		slog.Warn("failed to invalidate resume cache", "user_id", userID, "error", err)
		return
	}
	_ = c.deleteByPattern(ctx, c.genPrefix(userID, gen-1)+"*")
}

func (c *CachingResumeRepository) genKey(userID uint) string {
	return fmt.Sprintf("%s:user:%d:gen", c.namespace, userID)
}

func (c *CachingResumeRepository) genPrefix(userID uint, gen int64) string {
	return fmt.Sprintf("%s:user:%d:g%d:", c.namespace, userID, gen)
}

func (c *CachingResumeRepository) listKey(userID uint, gen int64) string {
	return c.genPrefix(userID, gen) + "list"
}

func (c *CachingResumeRepository) itemKey(userID uint, gen int64, id string) string {
	return c.genPrefix(userID, gen) + "item:" + id
}

// deleteByPattern deletes all cache keys matching a given pattern using SCAN.
func (c *CachingResumeRepository) deleteByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, cur, err := c.rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = cur
		if cursor == 0 {
			break
		}
	}
	return nil
}
