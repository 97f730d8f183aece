// Package dto defines the request and response bodies of the resume API.
package dto

import (
	"time"

	"resume_backend/internal/feature/resume/domain/entity"
)

// IngestRes is returned after a successful upload.
type IngestRes struct {
	ResumeID  string          `json:"resume_id"`
	Filename  string          `json:"filename"`
	Entities  entity.Entities `json:"entities"`
	CreatedAt time.Time       `json:"created_at"`
}

// ResumeSummary is one entry of the resume list. It omits the extracted text.
type ResumeSummary struct {
	ID        string          `json:"id"`
	Filename  string          `json:"filename"`
	Entities  entity.Entities `json:"entities"`
	CreatedAt time.Time       `json:"created_at"`
}

// ResumeListRes wraps the user's resumes, newest first.
type ResumeListRes struct {
	Resumes []ResumeSummary `json:"resumes"`
	Count   int             `json:"count"`
}

// ResumeDetailRes is a single resume with its text and, when available, a download URL.
type ResumeDetailRes struct {
	ID          string          `json:"id"`
	Filename    string          `json:"filename"`
	Text        string          `json:"text"`
	Entities    entity.Entities `json:"entities"`
	CreatedAt   time.Time       `json:"created_at"`
	DownloadURL string          `json:"download_url,omitempty"`
}

// ErrorRes is the error body.
type ErrorRes struct {
	Error string `json:"error"`
}

// MessageRes is a plain acknowledgement.
type MessageRes struct {
	Message string `json:"message"`
}

// NewIngestRes converts a stored record.
func NewIngestRes(r *entity.ResumeRecord) IngestRes {
	return IngestRes{
		ResumeID:  r.ID,
		Filename:  r.Filename,
		Entities:  r.Entities.Normalized(),
		CreatedAt: r.CreatedAt,
	}
}

// NewResumeListRes converts the records of a list query.
func NewResumeListRes(records []entity.ResumeRecord) ResumeListRes {
	out := ResumeListRes{Resumes: make([]ResumeSummary, 0, len(records)), Count: len(records)}
	for _, r := range records {
		out.Resumes = append(out.Resumes, ResumeSummary{
			ID:        r.ID,
			Filename:  r.Filename,
			Entities:  r.Entities.Normalized(),
			CreatedAt: r.CreatedAt,
		})
	}
	return out
}

// NewResumeDetailRes converts a record and its optional download URL.
func NewResumeDetailRes(r *entity.ResumeRecord, downloadURL string) ResumeDetailRes {
	return ResumeDetailRes{
		ID:          r.ID,
		Filename:    r.Filename,
		Text:        r.Text,
		Entities:    r.Entities.Normalized(),
		CreatedAt:   r.CreatedAt,
		DownloadURL: downloadURL,
	}
}
