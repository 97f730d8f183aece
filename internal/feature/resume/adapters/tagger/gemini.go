package tagger

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"resume_backend/internal/feature/resume/domain/entity"
	"resume_backend/internal/feature/resume/usecase"
	"resume_backend/internal/shared/ratelimiter"
)

const (
	// DefaultGeminiModel is used when GEMINI_MODEL is not set.
	DefaultGeminiModel = "gemini-2.5-flash"

	// maxPromptChars caps the resume text sent in one request.
	maxPromptChars = 20000
)

const geminiPrompt = `Extract named entities from the resume below.
Return a JSON array of objects with "label" and "text".
Allowed labels: %s.
Copy entity text exactly as it appears. Do not invent values.

Resume:
%s`

// generateFunc sends a prompt and returns the raw model output.
type generateFunc func(ctx context.Context, prompt string) (string, error)

// GeminiTagger asks a Gemini model for labeled spans.
type GeminiTagger struct {
	generate generateFunc
	limiter  ratelimiter.RateLimiterInterface
}

var _ usecase.Tagger = (*GeminiTagger)(nil)

// NewGeminiTagger creates a GeminiTagger. The client reads GOOGLE_API_KEY or the
// GOOGLE_GENAI_USE_VERTEXAI / GOOGLE_CLOUD_PROJECT / GOOGLE_CLOUD_LOCATION variables.
func NewGeminiTagger(ctx context.Context, model string, limiter ratelimiter.RateLimiterInterface) (*GeminiTagger, error) {
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	if model == "" {
		model = DefaultGeminiModel
	}
	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   spanSchema(),
	}
	generate := func(ctx context.Context, prompt string) (string, error) {
		resp, err := client.Models.GenerateContent(ctx, model, genai.Text(prompt), config)
		if err != nil {
			return "", fmt.Errorf("gemini API request failed: %w", err)
		}
		return resp.Text(), nil
	}
	return newGeminiTagger(generate, limiter), nil
}

func newGeminiTagger(generate generateFunc, limiter ratelimiter.RateLimiterInterface) *GeminiTagger {
	return &GeminiTagger{generate: generate, limiter: limiter}
}

func spanSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeArray,
		Items: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"label": {Type: genai.TypeString, Enum: entity.Labels},
				"text":  {Type: genai.TypeString},
			},
			Required: []string{"label", "text"},
		},
	}
}

// Tag prompts the model and parses its JSON answer.
func (g *GeminiTagger) Tag(ctx context.Context, text string) ([]entity.Span, error) {
	if g.limiter != nil {
		if err := g.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	if len(text) > maxPromptChars {
		text = truncateRunes(text, maxPromptChars)
	}
	out, err := g.generate(ctx, fmt.Sprintf(geminiPrompt, strings.Join(entity.Labels, ", "), text))
	if err != nil {
		return nil, err
	}
	return parseSpans(out)
}

// parseSpans decodes a JSON span array, tolerating markdown code fences.
func parseSpans(raw string) ([]entity.Span, error) {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	var spans []entity.Span
	if err := json.Unmarshal([]byte(raw), &spans); err != nil {
		return nil, fmt.Errorf("invalid gemini response: %w", err)
	}
	return spans, nil
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
