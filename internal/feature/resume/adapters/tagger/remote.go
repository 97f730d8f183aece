package tagger

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"resume_backend/internal/feature/resume/domain/entity"
	"resume_backend/internal/feature/resume/usecase"
	platformhttp "resume_backend/internal/platform/http"
)

// DefaultTimeout bounds a single call to the model server.
const DefaultTimeout = 60 * time.Second

// RemoteTagger calls a model-serving endpoint hosting the pretrained NER model.
type RemoteTagger struct {
	client *http.Client
	url    string
}

var _ usecase.Tagger = (*RemoteTagger)(nil)

// NewRemoteTagger creates a RemoteTagger posting to url.
func NewRemoteTagger(url string, timeout time.Duration) (*RemoteTagger, error) {
	if url == "" {
		return nil, errors.New("TAGGER_URL is required for the remote tagger")
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &RemoteTagger{client: platformhttp.NewHTTPClient(timeout), url: url}, nil
}

type remoteRequest struct {
	Text string `json:"text"`
}

// remoteResponse accepts either word-level BIO tokens or ready-made spans.
type remoteResponse struct {
	Tokens []Token       `json:"tokens"`
	Spans  []entity.Span `json:"spans"`
}

// Tag posts the text and decodes the model output into spans.
func (t *RemoteTagger) Tag(ctx context.Context, text string) ([]entity.Span, error) {
	var resp remoteResponse
	if err := platformhttp.PostJSON(ctx, t.client, t.url, remoteRequest{Text: text}, &resp); err != nil {
		return nil, fmt.Errorf("remote tagger: %w", err)
	}
	if len(resp.Spans) > 0 {
		return resp.Spans, nil
	}
	return DecodeBIO(resp.Tokens), nil
}
