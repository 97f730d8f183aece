package entity

import "strings"

// Entity labels produced by the tagger.
const (
	LabelName        = "NAME"
	LabelDesignation = "DESIGNATION"
	LabelEmail       = "EMAIL"
	LabelLocation    = "LOCATION"
	LabelDegree      = "DEGREE"
	LabelCollege     = "COLLEGE NAME"
	LabelCompany     = "COMPANY"
	LabelSkills      = "SKILLS"
)

// Labels lists every known label.
var Labels = []string{
	LabelCollege, LabelCompany, LabelDegree, LabelDesignation,
	LabelEmail, LabelLocation, LabelName, LabelSkills,
}

// Span is a labeled piece of resume text.
type Span struct {
	Label string `json:"label"`
	Text  string `json:"text"`
}

// NormalizeLabel upper-cases a label and maps common aliases to the canonical form.
// It returns "" for unknown labels.
func NormalizeLabel(label string) string {
	l := strings.ToUpper(strings.TrimSpace(label))
	l = strings.ReplaceAll(l, "_", " ")
	switch l {
	case "COLLEGE", "COLLEGE NAME", "UNIVERSITY":
		return LabelCollege
	case "SKILL", "SKILLS":
		return LabelSkills
	case LabelName, LabelDesignation, LabelEmail, LabelLocation, LabelDegree, LabelCompany:
		return l
	}
	return ""
}

// GroupSpans collects span texts per label. Values are trimmed and stripped of trailing
// commas; empty values are dropped; duplicates are removed case-insensitively keeping
// the first occurrence. Unknown labels are ignored.
func GroupSpans(spans []Span) Entities {
	var out Entities
	seen := map[string]map[string]struct{}{}

	for _, s := range spans {
		label := NormalizeLabel(s.Label)
		field := out.field(label)
		if field == nil {
			continue
		}
		v := strings.TrimRight(strings.TrimSpace(s.Text), ",")
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if seen[label] == nil {
			seen[label] = map[string]struct{}{}
		}
		key := strings.ToLower(v)
		if _, dup := seen[label][key]; dup {
			continue
		}
		seen[label][key] = struct{}{}
		*field = append(*field, v)
	}
	return out.Normalized()
}

func (e *Entities) field(label string) *[]string {
	switch label {
	case LabelName:
		return &e.Name
	case LabelDesignation:
		return &e.Designation
	case LabelEmail:
		return &e.Email
	case LabelLocation:
		return &e.Location
	case LabelDegree:
		return &e.Degree
	case LabelCollege:
		return &e.College
	case LabelCompany:
		return &e.Company
	case LabelSkills:
		return &e.Skills
	}
	return nil
}
