package tagger

import (
	"context"
	"regexp"
	"strings"

	"resume_backend/internal/feature/resume/domain/entity"
	"resume_backend/internal/feature/resume/usecase"
)

// Common skill keywords matched on word boundaries.
var skillKeywords = []string{
	"Go", "Golang", "Python", "Java", "JavaScript", "TypeScript",
	"React", "Vue", "Angular", "Node.js", "Docker", "Kubernetes",
	"PostgreSQL", "MySQL", "MongoDB", "Redis", "AWS", "Azure", "GCP",
	"GraphQL", "REST", "Microservices", "Git", "CI/CD", "C++", "C#",
	"Machine Learning", "Deep Learning", "Data Science", "DevOps", "SQL",
	"HTML", "CSS", "Linux", "Spring", "Django", "Flask", "TensorFlow",
}

var (
	emailPattern       = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
	degreePattern      = regexp.MustCompile(`\b(?:Bachelor|Master|Doctor)(?:'s)? of [A-Z][A-Za-z]*(?: [A-Z][A-Za-z]*)*|\b(?:B\.?Tech|M\.?Tech|B\.?E|M\.?E|B\.?Sc|M\.?Sc|MBA|BCA|MCA|Ph\.?D)\b`)
	collegePattern     = regexp.MustCompile(`\b(?:[A-Z][A-Za-z&.]*\s){0,5}(?:University|College|Institute|School)(?: of(?: [A-Z][A-Za-z]*)+)?`)
	designationPattern = regexp.MustCompile(`(?i)\b(?:senior |junior |lead |principal |staff )?(?:software|backend|frontend|full stack|data|devops|qa|test|systems?|network|machine learning|web|mobile|cloud) (?:engineer|developer|analyst|scientist|architect|administrator)\b`)
	skillPatterns      = compileSkillPatterns(skillKeywords)
)

func compileSkillPatterns(skills []string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, len(skills))
	for i, s := range skills {
		patterns[i] = regexp.MustCompile(`(?i)(?:^|[^\w+#])` + regexp.QuoteMeta(s) + `(?:$|[^\w+#])`)
	}
	return patterns
}

// KeywordTagger finds entities with regular expressions and a skill list.
// It needs no model and serves local development and tests.
type KeywordTagger struct{}

var _ usecase.Tagger = KeywordTagger{}

// Tag scans text for well-known entity shapes.
func (KeywordTagger) Tag(ctx context.Context, text string) ([]entity.Span, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var spans []entity.Span
	add := func(label string, values []string) {
		for _, v := range values {
			spans = append(spans, entity.Span{Label: label, Text: strings.TrimSpace(v)})
		}
	}

	if name := guessName(text); name != "" {
		add(entity.LabelName, []string{name})
	}
	add(entity.LabelEmail, emailPattern.FindAllString(text, -1))
	add(entity.LabelDegree, degreePattern.FindAllString(text, -1))
	add(entity.LabelCollege, collegePattern.FindAllString(text, -1))
	add(entity.LabelDesignation, designationPattern.FindAllString(text, -1))
	for i, p := range skillPatterns {
		if p.MatchString(text) {
			add(entity.LabelSkills, []string{skillKeywords[i]})
		}
	}
	return spans, nil
}

// guessName returns the capitalized words that open the text, which is where resumes
// usually put the candidate's name. Cleaned text arrives as one line, so the run is capped
// by word count: runs longer than three words usually continue into a title and only the
// first two are kept. Raw text with line breaks is read from its first non-empty line.
func guessName(text string) string {
	for _, line := range strings.Split(text, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		var run []string
		for _, f := range fields {
			if !isCapitalized(f) {
				break
			}
			run = append(run, f)
		}
		switch {
		case len(run) < 2:
			return ""
		case len(run) > 3:
			run = run[:2]
		}
		return strings.Join(run, " ")
	}
	return ""
}

func isCapitalized(word string) bool {
	if len(word) < 2 || word[0] < 'A' || word[0] > 'Z' {
		return false
	}
	for _, r := range word[1:] {
		if (r < 'a' || r > 'z') && r != '-' && r != '\'' {
			return false
		}
	}
	return true
}
