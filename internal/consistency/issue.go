package consistency

import (
	"specgen/internal/diagnostic"
)

//go:generate go tool stringer -type=Category -linecomment -output=category_string.go

// Category classifies a consistency issue.
type Category int

const (
	MissingField      Category = iota // MISSING_FIELD
	StructureMismatch                 // STRUCTURE_MISMATCH
	TypeMismatch                      // TYPE_MISMATCH
	TypeUnknown                       // TYPE_UNKNOWN
)

// Issue is one detected disagreement.
type Issue struct {
	Category    Category            `json:"category" yaml:"category"`
	Severity    diagnostic.Severity `json:"severity" yaml:"severity"`
	FieldPath   string              `json:"fieldPath" yaml:"fieldPath"`
	Message     string              `json:"message" yaml:"message"`
	Suggestions []string            `json:"suggestions,omitempty" yaml:"suggestions,omitempty"`
}

// MarshalText renders the category name.
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// Diagnostic converts the issue for shared reporting.
func (i Issue) Diagnostic() diagnostic.Diagnostic {
	return diagnostic.Diagnostic{
		Severity:    i.Severity,
		Code:        i.Category.String(),
		Message:     i.Message,
		FieldPath:   i.FieldPath,
		Suggestions: i.Suggestions,
	}
}

// Result is the outcome of one Check call.
type Result struct {
	// Artifacts lists the compared artifact names in sorted order.
	Artifacts []string `json:"artifacts" yaml:"artifacts"`
	// Issues in path order; never deduplicated.
	Issues []Issue `json:"issues" yaml:"issues"`
}

// Failed reports whether any issue has error severity.
func (r Result) Failed() bool {
	for _, i := range r.Issues {
		if i.Severity == diagnostic.SeverityError {
			return true
		}
	}

	return false
}

// Count returns how many issues fall in category c.
func (r Result) Count(c Category) int {
	n := 0

	for _, i := range r.Issues {
		if i.Category == c {
			n++
		}
	}

	return n
}

// Diagnostics converts every issue into a diagnostic.
func (r Result) Diagnostics() diagnostic.Diagnostics {
	var d diagnostic.Diagnostics
	for _, i := range r.Issues {
		d.Add(i.Diagnostic())
	}

	return d
}
