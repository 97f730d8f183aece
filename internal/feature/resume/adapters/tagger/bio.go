// Package tagger provides the entity tagger backends.
package tagger

import (
	"strings"

	"resume_backend/internal/feature/resume/domain/entity"
)

// Token is a word with its BIO label, as returned by token classification models.
type Token struct {
	Word  string `json:"word"`
	Label string `json:"label"`
}

// DecodeBIO merges BIO-labeled tokens into spans.
// "O" closes the open span, "B-X" starts a span of type X, and "I-X" extends an open
// span of type X or starts a new one otherwise.
func DecodeBIO(tokens []Token) []entity.Span {
	var (
		spans   []entity.Span
		current string
		words   []string
	)
	flush := func() {
		if current != "" && len(words) > 0 {
			spans = append(spans, entity.Span{Label: current, Text: strings.Join(words, " ")})
		}
		current, words = "", nil
	}

	for _, tok := range tokens {
		label := strings.TrimSpace(tok.Label)
		switch {
		case strings.HasPrefix(label, "B-"):
			flush()
			current = label[2:]
			words = []string{tok.Word}
		case strings.HasPrefix(label, "I-"):
			if current == label[2:] {
				words = append(words, tok.Word)
				continue
			}
			flush()
			current = label[2:]
			words = []string{tok.Word}
		default:
			flush()
		}
	}
	flush()
	return spans
}
