package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"resume_backend/internal/feature/resume/domain/entity"
)

const (
	// DefaultMaxUploadBytes is the upload limit used when none is configured (5 MiB).
	DefaultMaxUploadBytes = 5 << 20

	// MinTextLength is the minimum number of characters of cleaned text required for tagging.
	MinTextLength = 50

	pdfMIME         = "application/pdf"
	maxFilenameLen  = 255
	defaultFilename = "resume.pdf"
)

// ResumeRepository persists resume records.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type ResumeRepository interface {
	Create(ctx context.Context, r *entity.ResumeRecord) error
	// ListByUser returns the user's records, newest first.
	ListByUser(ctx context.Context, userID uint) ([]entity.ResumeRecord, error)
	// FindByID returns ErrResumeNotFound unless the record exists and belongs to userID.
	FindByID(ctx context.Context, userID uint, id string) (*entity.ResumeRecord, error)
	// Delete returns ErrResumeNotFound unless the record exists and belongs to userID.
	Delete(ctx context.Context, userID uint, id string) error
}

// TextExtractor converts PDF bytes to cleaned plain text.
type TextExtractor interface {
	Extract(ctx context.Context, pdf []byte) (string, error)
}

// Tagger maps plain text to labeled spans.
type Tagger interface {
	Tag(ctx context.Context, text string) ([]entity.Span, error)
}

// DocumentStore keeps the original uploads.
type DocumentStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	Delete(ctx context.Context, key string) error
	PresignGet(ctx context.Context, key string) (string, error)
}

// resumeUsecase orchestrates upload, extraction, tagging and persistence.
type resumeUsecase struct {
	repo      ResumeRepository
	extractor TextExtractor
	tagger    Tagger
	docs      DocumentStore
	maxBytes  int

	now   func() time.Time
	newID func() string
}

// NewResumeUsecase creates a resumeUsecase. docs may be nil when no document store is configured.
// A non-positive maxBytes falls back to DefaultMaxUploadBytes.
func NewResumeUsecase(repo ResumeRepository, extractor TextExtractor, tagger Tagger, docs DocumentStore, maxBytes int) *resumeUsecase {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxUploadBytes
	}
	return &resumeUsecase{
		repo:      repo,
		extractor: extractor,
		tagger:    tagger,
		docs:      docs,
		maxBytes:  maxBytes,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// MaxUploadBytes returns the configured upload limit.
func (u *resumeUsecase) MaxUploadBytes() int {
	return u.maxBytes
}

// Ingest validates, extracts, tags, stores and persists an uploaded resume.
// Nothing is persisted unless every step succeeds.
func (u *resumeUsecase) Ingest(ctx context.Context, userID uint, filename string, data []byte) (*entity.ResumeRecord, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty upload", ErrUnreadablePDF)
	}
	if len(data) > u.maxBytes {
		return nil, fmt.Errorf("%w: %d bytes exceeds limit of %d", ErrFileTooLarge, len(data), u.maxBytes)
	}
	if mt := mimetype.Detect(data); !mt.Is(pdfMIME) {
		return nil, fmt.Errorf("%w: detected %s", ErrUnreadablePDF, mt.String())
	}

	text, err := u.extractor.Extract(ctx, data)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if errors.Is(err, ErrExtractorUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrUnreadablePDF, err)
	}
	text = strings.TrimSpace(text)
	if n := utf8.RuneCountInString(text); n < MinTextLength {
		return nil, fmt.Errorf("%w: got %d characters, need %d", ErrInsufficientText, n, MinTextLength)
	}

	spans, err := u.tagger.Tag(ctx, text)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %v", ErrTagging, err)
	}

	now := u.now().UTC()
	record := &entity.ResumeRecord{
		ID:        u.newID(),
		UserID:    userID,
		Filename:  sanitizeFilename(filename),
		Text:      text,
		Entities:  entity.GroupSpans(spans),
		CreatedAt: now,
	}

	if u.docs != nil {
		key := documentKey(userID, now, record.ID)
		if err := u.docs.Put(ctx, key, data, pdfMIME); err != nil {
			return nil, fmt.Errorf("failed to store document: %w", err)
		}
		record.StorageKey = key
	}

	if err := u.repo.Create(ctx, record); err != nil {
		if record.StorageKey != "" {
			if delErr := u.docs.Delete(context.WithoutCancel(ctx), record.StorageKey); delErr != nil {
				slog.Warn("failed to remove orphaned document", "error", delErr, "key", record.StorageKey)
			}
		}
		return nil, fmt.Errorf("failed to save resume: %w", err)
	}

	slog.Info("resume ingested",
		"resume_id", record.ID,
		"user_id", userID,
		"characters", utf8.RuneCountInString(text),
		"entities", record.Entities.Count(),
	)
	return record, nil
}

// List returns the user's resumes, newest first.
func (u *resumeUsecase) List(ctx context.Context, userID uint) ([]entity.ResumeRecord, error) {
	return u.repo.ListByUser(ctx, userID)
}

// Get returns one of the user's resumes and, when a document store is configured,
// a presigned download URL for the original PDF.
func (u *resumeUsecase) Get(ctx context.Context, userID uint, id string) (*entity.ResumeRecord, string, error) {
	if !validID(id) {
		return nil, "", ErrResumeNotFound
	}
	record, err := u.repo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, "", err
	}

	var url string
	if u.docs != nil && record.StorageKey != "" {
		url, err = u.docs.PresignGet(ctx, record.StorageKey)
		if err != nil {
			slog.Warn("failed to presign document url", "error", err, "resume_id", id)
			url = ""
		}
	}
	return record, url, nil
}

// Delete removes one of the user's resumes and its stored document.
func (u *resumeUsecase) Delete(ctx context.Context, userID uint, id string) error {
	if !validID(id) {
		return ErrResumeNotFound
	}
	record, err := u.repo.FindByID(ctx, userID, id)
	if err != nil {
		return err
	}
	if err := u.repo.Delete(ctx, userID, id); err != nil {
		return err
	}
	if u.docs != nil && record.StorageKey != "" {
		if err := u.docs.Delete(ctx, record.StorageKey); err != nil {
			slog.Warn("failed to delete stored document", "error", err, "key", record.StorageKey)
		}
	}
	slog.Info("resume deleted", "resume_id", id, "user_id", userID)
	return nil
}

func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// documentKey places uploads under users/<id>/<date>/<resume id>.pdf.
func documentKey(userID uint, at time.Time, id string) string {
	return fmt.Sprintf("users/%d/%s/%s.pdf", userID, at.Format("2006-01-02"), id)
}

// sanitizeFilename keeps the base name of an uploaded file.
func sanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = strings.TrimSpace(path.Base(name))
	name = strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, name)
	if name == "" || name == "." || name == ".." || name == "/" {
		return defaultFilename
	}
	if len(name) > maxFilenameLen {
		ext := path.Ext(name)
		if len(ext) > 16 {
			ext = ""
		}
		name = truncateUTF8(name, maxFilenameLen-len(ext)) + ext
	}
	return name
}

func truncateUTF8(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

// IsClientError reports whether err was caused by the upload itself.
func IsClientError(err error) bool {
	return errors.Is(err, ErrUnreadablePDF) || errors.Is(err, ErrFileTooLarge) ||
		errors.Is(err, ErrInsufficientText) || errors.Is(err, ErrTagging)
}
