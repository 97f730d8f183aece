// Package entity holds the resume domain types.
package entity

import "time"

// ResumeRecord is a parsed resume owned by a user. It is immutable once stored.
type ResumeRecord struct {
	ID       string
	UserID   uint
	Filename string
	// Text is the cleaned text the entities were tagged from.
	Text     string
	Entities Entities
	// StorageKey locates the original PDF in the document store; empty when none is configured.
	StorageKey string
	CreatedAt  time.Time
}

// Entities groups tagged values by field.
type Entities struct {
	Name        []string `json:"name"`
	Designation []string `json:"designation"`
	Email       []string `json:"email"`
	Location    []string `json:"location"`
	Degree      []string `json:"degree"`
	College     []string `json:"college"`
	Company     []string `json:"company"`
	Skills      []string `json:"skills"`
}

// Count returns the total number of values across all fields.
func (e Entities) Count() int {
	return len(e.Name) + len(e.Designation) + len(e.Email) + len(e.Location) +
		len(e.Degree) + len(e.College) + len(e.Company) + len(e.Skills)
}

// Normalized replaces nil fields with empty slices so they encode as [].
func (e Entities) Normalized() Entities {
	for _, f := range []*[]string{&e.Name, &e.Designation, &e.Email, &e.Location, &e.Degree, &e.College, &e.Company, &e.Skills} {
		if *f == nil {
			*f = []string{}
		}
	}
	return e
}
