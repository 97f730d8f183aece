// Package adapters provides the gorm repository for resume records.
package adapters

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"resume_backend/internal/feature/resume/domain/entity"
	"resume_backend/internal/feature/resume/usecase"
)

// resumeGorm is the GORM implementation of the ResumeRepository interface.
type resumeGorm struct {
	db *gorm.DB
}

var _ usecase.ResumeRepository = (*resumeGorm)(nil)

// NewResumeRepository creates a resumeGorm bound to the given connection.
func NewResumeRepository(db *gorm.DB) *resumeGorm {
	return &resumeGorm{db: db}
}

// ResumeModel is the resumes table row. Entities are stored as a JSON column.
type ResumeModel struct {
	ID         string          `gorm:"primaryKey;size:36"`
	UserID     uint            `gorm:"not null;index:idx_resumes_user_created,priority:1"`
	Filename   string          `gorm:"size:255;not null"`
	Text       string          `gorm:"type:text;not null"`
	Entities   entity.Entities `gorm:"serializer:json;type:text;not null"`
	StorageKey string          `gorm:"size:512"`
	CreatedAt  time.Time       `gorm:"not null;index:idx_resumes_user_created,priority:2"`
}

// TableName pins the table name to "resumes".
func (ResumeModel) TableName() string {
	return "resumes"
}

func toModel(e *entity.ResumeRecord) ResumeModel {
	return ResumeModel{
		ID:         e.ID,
		UserID:     e.UserID,
		Filename:   e.Filename,
		Text:       e.Text,
		Entities:   e.Entities,
		StorageKey: e.StorageKey,
		CreatedAt:  e.CreatedAt,
	}
}

func (m ResumeModel) toEntity() entity.ResumeRecord {
	return entity.ResumeRecord{
		ID:         m.ID,
		UserID:     m.UserID,
		Filename:   m.Filename,
		Text:       m.Text,
		Entities:   m.Entities.Normalized(),
		StorageKey: m.StorageKey,
		CreatedAt:  m.CreatedAt,
	}
}

// Create inserts the record and copies back the stored creation time.
func (r *resumeGorm) Create(ctx context.Context, rec *entity.ResumeRecord) error {
	if rec == nil {
		return errors.New("resume record is nil")
	}
	m := toModel(rec)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	rec.CreatedAt = m.CreatedAt
	return nil
}

// ListByUser returns the user's records, newest first.
func (r *resumeGorm) ListByUser(ctx context.Context, userID uint) ([]entity.ResumeRecord, error) {
	var rows []ResumeModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]entity.ResumeRecord, 0, len(rows))
	for _, m := range rows {
		out = append(out, m.toEntity())
	}
	return out, nil
}

// FindByID returns usecase.ErrResumeNotFound when the record is missing or owned by another user.
func (r *resumeGorm) FindByID(ctx context.Context, userID uint, id string) (*entity.ResumeRecord, error) {
	var m ResumeModel
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrResumeNotFound
		}
		return nil, err
	}
	rec := m.toEntity()
	return &rec, nil
}

// Delete removes the user's record or returns usecase.ErrResumeNotFound.
func (r *resumeGorm) Delete(ctx context.Context, userID uint, id string) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&ResumeModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrResumeNotFound
	}
	return nil
}
