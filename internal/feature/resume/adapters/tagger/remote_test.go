package tagger

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume_backend/internal/feature/resume/domain/entity"
	platformhttp "resume_backend/internal/platform/http"
)

func newModelServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req remoteRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, http.MethodPost, r.Method)
		assert.NotEmpty(t, req.Text)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestRemoteTagger_Tokens(t *testing.T) {
	srv := newModelServer(t, http.StatusOK,
		`{"tokens":[{"word":"Jane","label":"B-NAME"},{"word":"Doe","label":"I-NAME"},{"word":"at","label":"O"},{"word":"Acme","label":"B-COMPANY"}]}`)

	tagger, err := NewRemoteTagger(srv.URL, time.Second)
	require.NoError(t, err)

	spans, err := tagger.Tag(context.Background(), "Jane Doe at Acme")
	require.NoError(t, err)
	assert.Equal(t, []entity.Span{
		{Label: "NAME", Text: "Jane Doe"},
		{Label: "COMPANY", Text: "Acme"},
	}, spans)
}

func TestRemoteTagger_Spans(t *testing.T) {
	srv := newModelServer(t, http.StatusOK, `{"spans":[{"label":"EMAIL","text":"jane@example.com"}]}`)

	tagger, err := NewRemoteTagger(srv.URL, time.Second)
	require.NoError(t, err)

	spans, err := tagger.Tag(context.Background(), "contact jane@example.com")
	require.NoError(t, err)
	assert.Equal(t, []entity.Span{{Label: "EMAIL", Text: "jane@example.com"}}, spans)
}

func TestRemoteTagger_ServerError(t *testing.T) {
	srv := newModelServer(t, http.StatusInternalServerError, `{"error":"model not loaded"}`)

	tagger, err := NewRemoteTagger(srv.URL, time.Second)
	require.NoError(t, err)

	_, err = tagger.Tag(context.Background(), "text")
	var statusErr *platformhttp.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusInternalServerError, statusErr.StatusCode)
}

func TestNewRemoteTagger_RequiresURL(t *testing.T) {
	_, err := NewRemoteTagger("", time.Second)
	assert.Error(t, err)
}
