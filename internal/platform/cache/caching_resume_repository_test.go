package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume_backend/internal/feature/resume/domain/entity"
	"resume_backend/internal/feature/resume/usecase"
)

// mockResumeRepository counts calls to the inner repository.
type mockResumeRepository struct {
	records   map[string]entity.ResumeRecord
	listCalls int
	findCalls int
	createErr error

	// afterRead, when set, runs once after a read loaded its result and before it returns.
	afterRead func()
}

func (m *mockResumeRepository) runAfterRead() {
	if h := m.afterRead; h != nil {
		m.afterRead = nil
		h()
	}
}

func newMockResumeRepository() *mockResumeRepository {
	return &mockResumeRepository{records: map[string]entity.ResumeRecord{}}
}

func (m *mockResumeRepository) Create(ctx context.Context, r *entity.ResumeRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.records[r.ID] = *r
	return nil
}

func (m *mockResumeRepository) ListByUser(ctx context.Context, userID uint) ([]entity.ResumeRecord, error) {
	m.listCalls++
	out := []entity.ResumeRecord{}
	for _, r := range m.records {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	m.runAfterRead()
	return out, nil
}

func (m *mockResumeRepository) FindByID(ctx context.Context, userID uint, id string) (*entity.ResumeRecord, error) {
	m.findCalls++
	r, ok := m.records[id]
	if !ok || r.UserID != userID {
		return nil, usecase.ErrResumeNotFound
	}
	m.runAfterRead()
	return &r, nil
}

func (m *mockResumeRepository) Delete(ctx context.Context, userID uint, id string) error {
	r, ok := m.records[id]
	if !ok || r.UserID != userID {
		return usecase.ErrResumeNotFound
	}
	delete(m.records, id)
	return nil
}

func setupCache(t *testing.T) (*CachingResumeRepository, *mockResumeRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	inner := newMockResumeRepository()
	return NewCachingResumeRepository(rdb, time.Minute, inner, ""), inner, mr
}

func newRecord(id string, userID uint) *entity.ResumeRecord {
	return &entity.ResumeRecord{
		ID:        id,
		UserID:    userID,
		Filename:  "cv.pdf",
		Text:      "Jane Doe Software Engineer",
		Entities:  entity.Entities{Name: []string{"Jane Doe"}}.Normalized(),
		CreatedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestNewCachingResumeRepository_Defaults(t *testing.T) {
	t.Parallel()

	repo := NewCachingResumeRepository(nil, 0, newMockResumeRepository(), "")
	assert.Equal(t, 10*time.Minute, repo.ttl)
	assert.Equal(t, "resumes", repo.namespace)

	repo = NewCachingResumeRepository(nil, time.Second, newMockResumeRepository(), "custom")
	assert.Equal(t, time.Second, repo.ttl)
	assert.Equal(t, "custom", repo.namespace)
}

func TestCachingResumeRepository_ListByUserHitsCache(t *testing.T) {
	repo, inner, mr := setupCache(t)
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, newRecord("a", 1)))

	first, err := repo.ListByUser(ctx, 1)
	require.NoError(t, err)
	second, err := repo.ListByUser(ctx, 1)
	require.NoError(t, err)

	assert.Equal(t, 1, inner.listCalls)
	assert.Equal(t, first, second)
	assert.True(t, mr.Exists("resumes:user:1:g1:list"))
	assert.Equal(t, time.Minute, mr.TTL("resumes:user:1:g1:list"))
}

func TestCachingResumeRepository_CreateInvalidatesList(t *testing.T) {
	repo, inner, _ := setupCache(t)
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, newRecord("a", 1)))

	_, err := repo.ListByUser(ctx, 1)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, newRecord("b", 1)))

	list, err := repo.ListByUser(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, list, 2)
	assert.Equal(t, 2, inner.listCalls)
}

func TestCachingResumeRepository_CreateErrorKeepsCache(t *testing.T) {
	repo, inner, mr := setupCache(t)
	ctx := context.Background()

	_, err := repo.ListByUser(ctx, 1)
	require.NoError(t, err)

	inner.createErr = errors.New("db down")
	assert.ErrorIs(t, repo.Create(ctx, newRecord("a", 1)), inner.createErr)
	assert.True(t, mr.Exists("resumes:user:1:g0:list"))
	assert.False(t, mr.Exists("resumes:user:1:gen"))
}

func TestCachingResumeRepository_FindByID(t *testing.T) {
	repo, inner, _ := setupCache(t)
	ctx := context.Background()
	want := newRecord("a", 1)
	require.NoError(t, repo.Create(ctx, want))

	got, err := repo.FindByID(ctx, 1, "a")
	require.NoError(t, err)
	cached, err := repo.FindByID(ctx, 1, "a")
	require.NoError(t, err)

	assert.Equal(t, 1, inner.findCalls)
	assert.Equal(t, *want, *got)
	assert.Equal(t, want.ID, cached.ID)
	assert.Equal(t, want.Entities, cached.Entities)
	assert.True(t, want.CreatedAt.Equal(cached.CreatedAt))
}

func TestCachingResumeRepository_FindByIDMissIsNotCached(t *testing.T) {
	repo, inner, mr := setupCache(t)
	ctx := context.Background()

	_, err := repo.FindByID(ctx, 1, "missing")
	assert.ErrorIs(t, err, usecase.ErrResumeNotFound)
	_, err = repo.FindByID(ctx, 1, "missing")
	assert.ErrorIs(t, err, usecase.ErrResumeNotFound)

	assert.Equal(t, 2, inner.findCalls)
	assert.False(t, mr.Exists("resumes:user:1:g0:item:missing"))
}

func TestCachingResumeRepository_OwnerScopedKeys(t *testing.T) {
	repo, _, _ := setupCache(t)
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, newRecord("a", 1)))

	_, err := repo.FindByID(ctx, 1, "a")
	require.NoError(t, err)

	_, err = repo.FindByID(ctx, 2, "a")
	assert.ErrorIs(t, err, usecase.ErrResumeNotFound)
}

func TestCachingResumeRepository_DeleteInvalidates(t *testing.T) {
	repo, _, mr := setupCache(t)
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, newRecord("a", 1)))
	require.NoError(t, repo.Create(ctx, newRecord("b", 2)))

	_, err := repo.FindByID(ctx, 1, "a")
	require.NoError(t, err)
	_, err = repo.ListByUser(ctx, 1)
	require.NoError(t, err)
	_, err = repo.ListByUser(ctx, 2)
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, 1, "a"))
	assert.False(t, mr.Exists("resumes:user:1:g1:item:a"))
	assert.False(t, mr.Exists("resumes:user:1:g1:list"))
	assert.True(t, mr.Exists("resumes:user:2:g1:list"))

	_, err = repo.FindByID(ctx, 1, "a")
	assert.ErrorIs(t, err, usecase.ErrResumeNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, 1, "a"), usecase.ErrResumeNotFound)
}

func TestCachingResumeRepository_CorruptedEntry(t *testing.T) {
	repo, inner, mr := setupCache(t)
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, newRecord("a", 1)))
	require.NoError(t, mr.Set("resumes:user:1:g1:list", "{not json"))

	list, err := repo.ListByUser(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, 1, inner.listCalls)
}

func TestCachingResumeRepository_NilClientBypasses(t *testing.T) {
	inner := newMockResumeRepository()
	repo := NewCachingResumeRepository(nil, time.Minute, inner, "")
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, newRecord("a", 1)))

	_, err := repo.ListByUser(ctx, 1)
	require.NoError(t, err)
	_, err = repo.ListByUser(ctx, 1)
	require.NoError(t, err)
	_, err = repo.FindByID(ctx, 1, "a")
	require.NoError(t, err)
	require.NoError(t, repo.Delete(ctx, 1, "a"))

	assert.Equal(t, 2, inner.listCalls)
	assert.Equal(t, 1, inner.findCalls)
}

func TestCachingResumeRepository_StaleListAfterConcurrentCreate(t *testing.T) {
	repo, inner, _ := setupCache(t)
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, newRecord("a", 1)))

	// The list is loaded, then another request creates "b" before the stale list is cached.
	inner.afterRead = func() {
		require.NoError(t, repo.Create(ctx, newRecord("b", 1)))
	}
	stale, err := repo.ListByUser(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, stale, 1)

	list, err := repo.ListByUser(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, list, 2)
	assert.Equal(t, 2, inner.listCalls)
}

func TestCachingResumeRepository_StaleItemAfterConcurrentDelete(t *testing.T) {
	repo, inner, _ := setupCache(t)
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, newRecord("a", 1)))

	inner.afterRead = func() {
		require.NoError(t, repo.Delete(ctx, 1, "a"))
	}
	_, err := repo.FindByID(ctx, 1, "a")
	require.NoError(t, err)

	_, err = repo.FindByID(ctx, 1, "a")
	assert.ErrorIs(t, err, usecase.ErrResumeNotFound)
}

func TestCachingResumeRepository_RedisDownReadsThrough(t *testing.T) {
	repo, inner, mr := setupCache(t)
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, newRecord("a", 1)))
	mr.Close()

	list, err := repo.ListByUser(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, list, 1)
	require.NoError(t, repo.Delete(ctx, 1, "a"))
	assert.Equal(t, 1, inner.listCalls)
}
