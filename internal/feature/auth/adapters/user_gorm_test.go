package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"resume_backend/internal/feature/auth/domain/entity"
	"resume_backend/internal/feature/auth/usecase"
)

// setupTestDB prepares an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to initialize test database")

	err = db.AutoMigrate(&entity.User{}, &entity.VerificationCode{})
	require.NoError(t, err, "failed to migrate tables")

	return db
}

func TestNewUserRepository(t *testing.T) {
	db := setupTestDB(t)

	repo := NewUserRepository(db)

	assert.NotNil(t, repo, "repository is nil")
	assert.NotNil(t, repo.db, "database connection is nil")
}

func TestUserGorm_Create(t *testing.T) {
	t.Run("successful user creation", func(t *testing.T) {
		repo := NewUserRepository(setupTestDB(t))

		user := &entity.User{FullName: "Test User", Email: "test@example.com", Password: "hashed_password"}
		err := repo.Create(context.Background(), user)

		assert.NoError(t, err, "failed to create user")
		assert.NotZero(t, user.ID, "ID is not set")
		assert.False(t, user.IsVerified, "new users must be unverified")
		assert.False(t, user.CreatedAt.IsZero(), "CreatedAt is not set")
	})

	t.Run("duplicate email error", func(t *testing.T) {
		repo := NewUserRepository(setupTestDB(t))

		err := repo.Create(context.Background(), &entity.User{FullName: "A", Email: "duplicate@example.com", Password: "p1"})
		require.NoError(t, err, "failed to create first user")

		err = repo.Create(context.Background(), &entity.User{FullName: "B", Email: "duplicate@example.com", Password: "p2"})

		assert.ErrorIs(t, err, usecase.ErrDuplicateUser)
	})

	t.Run("nil user error", func(t *testing.T) {
		repo := NewUserRepository(setupTestDB(t))

		err := repo.Create(context.Background(), nil)

		assert.Error(t, err, "should return error for nil user")
	})
}

func TestUserGorm_Find(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))
	users := []*entity.User{
		{FullName: "One", Email: "user1@example.com", Password: "pass1"},
		{FullName: "Two", Email: "user2@example.com", Password: "pass2"},
		{FullName: "Three", Email: "user3@example.com", Password: "pass3"},
	}
	for _, u := range users {
		require.NoError(t, repo.Create(context.Background(), u), "failed to create test data")
	}

	t.Run("find by email", func(t *testing.T) {
		found, err := repo.FindByEmail(context.Background(), "user2@example.com")

		require.NoError(t, err)
		assert.Equal(t, users[1].ID, found.ID)
		assert.Equal(t, "Two", found.FullName)
	})

	t.Run("email not found", func(t *testing.T) {
		found, err := repo.FindByEmail(context.Background(), "notfound@example.com")

		assert.ErrorIs(t, err, usecase.ErrUserNotFound)
		assert.Nil(t, found)
	})

	t.Run("find by ID", func(t *testing.T) {
		found, err := repo.FindByID(context.Background(), users[2].ID)

		require.NoError(t, err)
		assert.Equal(t, "user3@example.com", found.Email)
	})

	t.Run("ID not found", func(t *testing.T) {
		found, err := repo.FindByID(context.Background(), 999)

		assert.ErrorIs(t, err, usecase.ErrUserNotFound)
		assert.Nil(t, found)
	})
}

func TestUserGorm_Timestamps(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))

	beforeCreate := time.Now()
	user := &entity.User{FullName: "T", Email: "timestamp@example.com", Password: "password"}
	require.NoError(t, repo.Create(context.Background(), user), "failed to create user")

	assert.False(t, user.CreatedAt.Before(beforeCreate), "CreatedAt is before creation time")

	found, err := repo.FindByID(context.Background(), user.ID)
	require.NoError(t, err, "failed to find user")
	assert.Equal(t, user.CreatedAt.Unix(), found.CreatedAt.Unix(), "CreatedAt does not match")
}
