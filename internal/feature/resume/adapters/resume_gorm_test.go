package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"resume_backend/internal/feature/resume/domain/entity"
	"resume_backend/internal/feature/resume/usecase"
)

// setupTestDB prepares an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to initialize test database")
	require.NoError(t, db.AutoMigrate(&ResumeModel{}), "failed to migrate tables")

	return db
}

func newRecord(id string, userID uint, createdAt time.Time) *entity.ResumeRecord {
	return &entity.ResumeRecord{
		ID:       id,
		UserID:   userID,
		Filename: "cv.pdf",
		Text:     "Jane Doe Senior Software Engineer",
		Entities: entity.Entities{
			Name:   []string{"Jane Doe"},
			Skills: []string{"Go", "SQL"},
		}.Normalized(),
		StorageKey: "users/1/2026-01-01/" + id + ".pdf",
		CreatedAt:  createdAt,
	}
}

func TestResumeGorm_CreateAndFind(t *testing.T) {
	repo := NewResumeRepository(setupTestDB(t))
	rec := newRecord("aaaaaaaa-0000-4000-8000-000000000001", 1, time.Now().UTC().Truncate(time.Second))

	require.NoError(t, repo.Create(context.Background(), rec))

	t.Run("owner reads record unchanged", func(t *testing.T) {
		got, err := repo.FindByID(context.Background(), 1, rec.ID)

		require.NoError(t, err)
		assert.Equal(t, rec.Entities, got.Entities)
		assert.Equal(t, rec.Text, got.Text)
		assert.Equal(t, rec.StorageKey, got.StorageKey)
		assert.True(t, rec.CreatedAt.Equal(got.CreatedAt))
	})

	t.Run("other user gets not found", func(t *testing.T) {
		got, err := repo.FindByID(context.Background(), 2, rec.ID)

		assert.ErrorIs(t, err, usecase.ErrResumeNotFound)
		assert.Nil(t, got)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := repo.FindByID(context.Background(), 1, "bbbbbbbb-0000-4000-8000-000000000001")

		assert.ErrorIs(t, err, usecase.ErrResumeNotFound)
	})

	t.Run("nil record", func(t *testing.T) {
		assert.Error(t, repo.Create(context.Background(), nil))
	})
}

func TestResumeGorm_ListByUserNewestFirst(t *testing.T) {
	repo := NewResumeRepository(setupTestDB(t))
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Create(context.Background(), newRecord("aaaaaaaa-0000-4000-8000-000000000001", 1, base)))
	require.NoError(t, repo.Create(context.Background(), newRecord("aaaaaaaa-0000-4000-8000-000000000002", 1, base.Add(2*time.Hour))))
	require.NoError(t, repo.Create(context.Background(), newRecord("aaaaaaaa-0000-4000-8000-000000000003", 1, base.Add(time.Hour))))
	require.NoError(t, repo.Create(context.Background(), newRecord("aaaaaaaa-0000-4000-8000-000000000004", 2, base.Add(3*time.Hour))))

	list, err := repo.ListByUser(context.Background(), 1)

	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "aaaaaaaa-0000-4000-8000-000000000002", list[0].ID)
	assert.Equal(t, "aaaaaaaa-0000-4000-8000-000000000003", list[1].ID)
	assert.Equal(t, "aaaaaaaa-0000-4000-8000-000000000001", list[2].ID)

	empty, err := repo.ListByUser(context.Background(), 99)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestResumeGorm_Delete(t *testing.T) {
	repo := NewResumeRepository(setupTestDB(t))
	rec := newRecord("aaaaaaaa-0000-4000-8000-000000000001", 1, time.Now().UTC())
	require.NoError(t, repo.Create(context.Background(), rec))

	assert.ErrorIs(t, repo.Delete(context.Background(), 2, rec.ID), usecase.ErrResumeNotFound)
	require.NoError(t, repo.Delete(context.Background(), 1, rec.ID))
	assert.ErrorIs(t, repo.Delete(context.Background(), 1, rec.ID), usecase.ErrResumeNotFound)

	_, err := repo.FindByID(context.Background(), 1, rec.ID)
	assert.ErrorIs(t, err, usecase.ErrResumeNotFound)
}
