package adapters

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"resume_backend/internal/feature/auth/domain/entity"
	"resume_backend/internal/feature/auth/usecase"
)

// verificationGorm is the GORM implementation of the VerificationRepository interface.
type verificationGorm struct {
	db  *gorm.DB
	now func() time.Time
}

var _ usecase.VerificationRepository = (*verificationGorm)(nil)

// NewVerificationRepository creates a verificationGorm bound to the given connection.
func NewVerificationRepository(db *gorm.DB) *verificationGorm {
	return &verificationGorm{db: db, now: time.Now}
}

// Issue supersedes every unused code of the same user and purpose and stores the new one.
// The owning user row is locked first so concurrent issues for one user run one after another
// and at most one unused code exists per user and purpose.
func (r *verificationGorm) Issue(ctx context.Context, code *entity.VerificationCode) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var owner entity.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			First(&owner, code.UserID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return usecase.ErrUserNotFound
			}
			return err
		}
		if err := tx.Model(&entity.VerificationCode{}).
			Where("user_id = ? AND purpose = ? AND used_at IS NULL", code.UserID, code.Purpose).
			Update("used_at", r.now()).Error; err != nil {
			return err
		}
		return tx.Create(code).Error
	})
}

// FindByHash returns the newest code matching the hash, or usecase.ErrCodeNotFound.
func (r *verificationGorm) FindByHash(ctx context.Context, userID uint, purpose, codeHash string) (*entity.VerificationCode, error) {
	var c entity.VerificationCode
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND purpose = ? AND code_hash = ?", userID, purpose, codeHash).
		Order("id DESC").
		First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrCodeNotFound
		}
		return nil, err
	}
	return &c, nil
}

// Consume marks the code used and its user verified.
// The conditional update makes a second consume of the same code fail with usecase.ErrCodeAlreadyUsed.
func (r *verificationGorm) Consume(ctx context.Context, code *entity.VerificationCode) error {
	now := r.now()
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&entity.VerificationCode{}).
			Where("id = ? AND used_at IS NULL", code.ID).
			Update("used_at", now)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return usecase.ErrCodeAlreadyUsed
		}
		return tx.Model(&entity.User{}).
			Where("id = ?", code.UserID).
			Update("is_verified", true).Error
	})
	if err != nil {
		return err
	}
	code.UsedAt = &now
	return nil
}
