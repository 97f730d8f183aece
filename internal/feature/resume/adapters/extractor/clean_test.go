package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClean(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "collapses whitespace",
			in:   "Jane   Doe\n\n\tEngineer at Acme",
			want: "Jane Doe Engineer at Acme",
		},
		{
			name: "joins hyphenated line breaks",
			in:   "experi-\n  enced developer",
			want: "experienced developer",
		},
		{
			name: "folds diacritics",
			in:   "José Müller from Zürich",
			want: "Jose Muller from Zurich",
		},
		{
			name: "drops page furniture",
			in:   "Skills Page 2 Go Confidential 01/02/2023 Docker",
			want: "Skills Go Docker",
		},
		{
			name: "replaces bullets and separators",
			in:   "• Go ===== ● Docker",
			want: "Go Docker",
		},
		{
			name: "keeps emails and strips urls",
			in:   "jane@example.com https://github.com/jane portfolio",
			want: "jane@example.com portfolio",
		},
		{
			name: "removes long digit runs",
			in:   "Call 9876543210 now",
			want: "Call now",
		},
		{
			name: "removes control characters",
			in:   "Jane\x00\x07 Doe",
			want: "Jane Doe",
		},
		{
			name: "short text mentioning resume is dropped",
			in:   "My Resume",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Clean(tt.in))
		})
	}
}

func TestClean_KeepsSkillSymbols(t *testing.T) {
	assert.Equal(t, "C++ and C# developer", Clean("C++ and C# developer"))
}
