// Package usecase implements resume ingestion and retrieval.
package usecase

import "errors"

var (
	// ErrUnreadablePDF is returned for empty, non-PDF or corrupted uploads.
	ErrUnreadablePDF = errors.New("unreadable pdf")

	// ErrFileTooLarge is returned when an upload exceeds the configured limit.
	ErrFileTooLarge = errors.New("file too large")

	// ErrInsufficientText is returned when too little text could be extracted.
	ErrInsufficientText = errors.New("insufficient text extracted from pdf")

	// ErrTagging is returned when the entity tagger fails.
	ErrTagging = errors.New("entity tagging failed")

	// ErrExtractorUnavailable is returned when the PDF text tools are not installed on the server.
	ErrExtractorUnavailable = errors.New("pdf text extractor unavailable")

	// ErrResumeNotFound is returned when a resume does not exist or belongs to another user.
	ErrResumeNotFound = errors.New("resume not found")
)
