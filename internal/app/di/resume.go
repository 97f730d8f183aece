package di

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	authentity "resume_backend/internal/feature/auth/domain/entity"
	resumeadapters "resume_backend/internal/feature/resume/adapters"
	"resume_backend/internal/feature/resume/adapters/extractor"
	"resume_backend/internal/feature/resume/adapters/tagger"
	resumehandler "resume_backend/internal/feature/resume/transport/handler"
	resumeusecase "resume_backend/internal/feature/resume/usecase"
	"resume_backend/internal/platform/cache"
	"resume_backend/internal/platform/objectstore"
)

// ResumeDeps are the optional backing services of the resume feature.
type ResumeDeps struct {
	DB       *gorm.DB
	Redis    *redis.Client
	CacheTTL time.Duration
}

// Resume holds the resume handler and what must be released on shutdown.
type Resume struct {
	Handler *resumehandler.ResumeHandler
	// Store is nil when no bucket is configured.
	Store   *objectstore.Store
	closers []func() error
}

// Close releases the clients opened by NewResume.
func (r *Resume) Close() {
	for _, c := range r.closers {
		if err := c(); err != nil {
			slog.Warn("failed to close client", "error", err)
		}
	}
}

// NewResume builds the resume feature from environment configuration.
func NewResume(ctx context.Context, deps ResumeDeps) (*Resume, error) {
	out := &Resume{}
	uc, err := out.build(ctx, deps)
	if err != nil {
		out.Close()
		return nil, err
	}
	out.Handler = resumehandler.NewResumeHandler(uc)
	return out, nil
}

// NewResumeUsecase builds the ingestion service alone, for batch jobs.
// The returned func releases its clients.
func NewResumeUsecase(ctx context.Context, deps ResumeDeps) (resumehandler.ResumeUsecase, func(), error) {
	r := &Resume{}
	uc, err := r.build(ctx, deps)
	if err != nil {
		r.Close()
		return nil, nil, err
	}
	return uc, r.Close, nil
}

func (r *Resume) build(ctx context.Context, deps ResumeDeps) (resumehandler.ResumeUsecase, error) {
	t, err := NewTagger(ctx)
	if err != nil {
		return nil, err
	}

	var ocr extractor.OCR
	if extractor.OCREnabled() {
		v, err := extractor.NewVisionOCR(ctx)
		if err != nil {
			return nil, err
		}
		r.closers = append(r.closers, v.Close)
		ocr = v
		slog.Info("vision OCR fallback enabled")
	}

	if err := extractor.CheckPDFTools(); err != nil {
		if ocr == nil {
			slog.Error("poppler-utils not installed; uploads will fail until pdftotext is on PATH", "error", err)
		} else {
			slog.Warn("poppler-utils not installed; every upload goes through OCR", "error", err)
		}
	}

	var docs resumeusecase.DocumentStore
	store, err := NewDocumentStore(ctx)
	if err != nil {
		return nil, err
	}
	if store != nil {
		docs = store
		r.Store = store
	}

	maxBytes, err := maxUploadBytesFromEnv()
	if err != nil {
		return nil, err
	}

	return resumeusecase.NewResumeUsecase(
		NewResumeRepository(deps.DB, deps.Redis, deps.CacheTTL),
		extractor.NewExtractor(ocr),
		t,
		docs,
		maxBytes,
	), nil
}

// NewTagger creates the tagger selected by TAGGER_BACKEND.
func NewTagger(ctx context.Context) (resumeusecase.Tagger, error) {
	cfg, err := tagger.LoadConfig()
	if err != nil {
		return nil, err
	}
	t, err := tagger.New(ctx, cfg)
	if err != nil {
		return nil, err
	}
	slog.Info("entity tagger configured", "backend", cfg.Backend)
	return t, nil
}

// NewDocumentStore returns the S3 store, or nil when S3_BUCKET is not set.
func NewDocumentStore(ctx context.Context) (*objectstore.Store, error) {
	cfg, err := objectstore.LoadConfig()
	if err != nil {
		return nil, err
	}
	if !cfg.Enabled() {
		slog.Info("S3_BUCKET not set; original PDFs are not stored")
		return nil, nil
	}
	store, err := objectstore.New(ctx, cfg)
	if err != nil {
		return nil, err
	}
	slog.Info("document store configured", "bucket", cfg.Bucket)
	return store, nil
}

// NewResumeRepository returns the gorm repository, wrapped in a Redis cache when rdb is set.
func NewResumeRepository(db *gorm.DB, rdb *redis.Client, ttl time.Duration) resumeusecase.ResumeRepository {
	repo := resumeadapters.NewResumeRepository(db)
	if rdb == nil {
		return repo
	}
	return cache.NewCachingResumeRepository(rdb, ttl, repo, "resumes")
}

// maxUploadBytesFromEnv reads MAX_UPLOAD_BYTES. Zero means the usecase default.
func maxUploadBytesFromEnv() (int, error) {
	v := os.Getenv("MAX_UPLOAD_BYTES")
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid MAX_UPLOAD_BYTES %q", v)
	}
	return n, nil
}

// Models lists the gorm models migrated at startup.
func Models() []any {
	return []any{&authentity.User{}, &authentity.VerificationCode{}, &resumeadapters.ResumeModel{}}
}
