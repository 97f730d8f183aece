// Package handler provides the HTTP handlers of the resume feature.
package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"resume_backend/internal/feature/resume/domain/entity"
	"resume_backend/internal/feature/resume/transport/http/dto"
	"resume_backend/internal/feature/resume/usecase"
	jwtmw "resume_backend/internal/platform/jwt"
)

// formField is the multipart field holding the uploaded PDF.
const formField = "file"

// multipartOverhead is allowed on top of the file size for headers and boundaries.
const multipartOverhead = 64 << 10

// ResumeUsecase defines the resume operations used by the handler.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type ResumeUsecase interface {
	Ingest(ctx context.Context, userID uint, filename string, data []byte) (*entity.ResumeRecord, error)
	List(ctx context.Context, userID uint) ([]entity.ResumeRecord, error)
	Get(ctx context.Context, userID uint, id string) (*entity.ResumeRecord, string, error)
	Delete(ctx context.Context, userID uint, id string) error
	MaxUploadBytes() int
}

// ResumeHandler handles HTTP requests for resumes.
type ResumeHandler struct {
	resumes ResumeUsecase
}

// NewResumeHandler creates a new ResumeHandler.
func NewResumeHandler(resumes ResumeUsecase) *ResumeHandler {
	return &ResumeHandler{resumes: resumes}
}

// Upload ingests a PDF from the "file" multipart field and returns the tagged entities.
func (h *ResumeHandler) Upload(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	limit := int64(h.resumes.MaxUploadBytes())
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit+multipartOverhead)

	fh, err := c.FormFile(formField)
	if err != nil {
		if isBodyTooLarge(err) {
			writeError(c, usecase.ErrFileTooLarge)
			return
		}
		slog.Warn("upload without file", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.ErrorRes{Error: "no file part in request"})
		return
	}
	if fh.Filename == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorRes{Error: "no selected file"})
		return
	}
	if !strings.EqualFold(filepath.Ext(fh.Filename), ".pdf") {
		c.JSON(http.StatusUnsupportedMediaType, dto.ErrorRes{Error: "only PDF files are allowed"})
		return
	}
	if fh.Size > limit {
		writeError(c, usecase.ErrFileTooLarge)
		return
	}

	data, err := readFile(fh, limit)
	if err != nil {
		slog.Error("failed to read upload", "error", err, "remote_addr", c.ClientIP())
		writeError(c, err)
		return
	}

	record, err := h.resumes.Ingest(c.Request.Context(), userID, fh.Filename, data)
	if err != nil {
		if usecase.IsClientError(err) {
			slog.Warn("resume rejected", "error", err, "user_id", userID, "remote_addr", c.ClientIP())
		} else {
			slog.Error("resume ingestion failed", "error", err, "user_id", userID, "remote_addr", c.ClientIP())
		}
		writeError(c, err)
		return
	}

	slog.Info("resume ingested", "resume_id", record.ID, "user_id", userID, "entities", record.Entities.Count(), "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, dto.NewIngestRes(record))
}

// List returns the caller's resumes, newest first.
func (h *ResumeHandler) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	records, err := h.resumes.List(c.Request.Context(), userID)
	if err != nil {
		slog.Error("failed to list resumes", "error", err, "user_id", userID, "remote_addr", c.ClientIP())
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewResumeListRes(records))
}

// Get returns one of the caller's resumes.
func (h *ResumeHandler) Get(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	record, url, err := h.resumes.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		if !errors.Is(err, usecase.ErrResumeNotFound) {
			slog.Error("failed to get resume", "error", err, "user_id", userID, "remote_addr", c.ClientIP())
		}
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewResumeDetailRes(record, url))
}

// Delete removes one of the caller's resumes.
func (h *ResumeHandler) Delete(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	id := c.Param("id")
	if err := h.resumes.Delete(c.Request.Context(), userID, id); err != nil {
		if !errors.Is(err, usecase.ErrResumeNotFound) {
			slog.Error("failed to delete resume", "error", err, "user_id", userID, "remote_addr", c.ClientIP())
		}
		writeError(c, err)
		return
	}
	slog.Info("resume deleted", "resume_id", id, "user_id", userID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, dto.MessageRes{Message: "Resume deleted successfully"})
}

func currentUser(c *gin.Context) (uint, bool) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorRes{Error: "unauthorized"})
		return 0, false
	}
	return userID, true
}

func isBodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr) || strings.Contains(err.Error(), "request body too large")
}

// readFile reads at most limit+1 bytes so oversized parts are detected by the usecase.
func readFile(fh *multipart.FileHeader, limit int64) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(io.LimitReader(f, limit+1))
}

// writeError maps usecase errors to status codes.
func writeError(c *gin.Context, err error) {
	status, msg := statusFor(err)
	c.JSON(status, dto.ErrorRes{Error: msg})
}

func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, usecase.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, "file exceeds the upload limit"
	case errors.Is(err, usecase.ErrUnreadablePDF):
		return http.StatusUnprocessableEntity, "could not read PDF"
	case errors.Is(err, usecase.ErrInsufficientText):
		return http.StatusUnprocessableEntity, "PDF is either empty or contains too little text"
	case errors.Is(err, usecase.ErrTagging):
		return http.StatusUnprocessableEntity, "could not extract entities from resume"
	case errors.Is(err, usecase.ErrExtractorUnavailable):
		return http.StatusServiceUnavailable, "PDF text extraction is unavailable"
	case errors.Is(err, usecase.ErrResumeNotFound):
		return http.StatusNotFound, "resume not found"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}
