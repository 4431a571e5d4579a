package diagnostic

import (
	"errors"
	"fmt"
	"iter"
	"strings"

	"specgen/internal/common"
)

// Diagnostics collects findings of one pass, bucketed by severity.
// The zero value is ready to use.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic is one finding.
type Diagnostic struct {
	Severity Severity `json:"severity"`
	// Code is a stable identifier such as "depth_exceeded" or "MISSING_FIELD".
	Code    string `json:"code"`
	Message string `json:"message"`
	// Scope is the message scope ("request", ...), if any.
	Scope     string `json:"scope,omitempty"`
	FieldPath string `json:"fieldPath,omitempty"`
	// Suggestions are likely intended field paths.
	Suggestions []string `json:"suggestions,omitempty"`
}

// Severity orders findings from informational to fatal.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return common.UnknownStr
	}
}

// MarshalText renders the severity name.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Add files diag under its severity.
func (d *Diagnostics) Add(diag Diagnostic) {
	switch diag.Severity {
	case SeverityError:
		d.Errors = append(d.Errors, diag)
	case SeverityWarning:
		d.Warnings = append(d.Warnings, diag)
	default:
		d.Infos = append(d.Infos, diag)
	}
}

// Addf records a finding with a formatted message.
func (d *Diagnostics) Addf(sev Severity, code, scope, fieldPath, format string, args ...any) {
	d.Add(Diagnostic{
		Severity:  sev,
		Code:      code,
		Message:   fmt.Sprintf(format, args...),
		Scope:     scope,
		FieldPath: fieldPath,
	})
}

// Merge appends every finding of other.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
}

// HasErrors reports whether any error-severity finding was recorded.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// Len counts findings of every severity.
func (d *Diagnostics) Len() int {
	return len(d.Errors) + len(d.Warnings) + len(d.Infos)
}

// All yields errors, then warnings, then infos, each in insertion order.
func (d *Diagnostics) All() iter.Seq[Diagnostic] {
	return func(yield func(Diagnostic) bool) {
		for _, bucket := range [][]Diagnostic{d.Errors, d.Warnings, d.Infos} {
			for _, diag := range bucket {
				if !yield(diag) {
					return
				}
			}
		}
	}
}

// Err joins the error findings into one error, or returns nil.
func (d *Diagnostics) Err() error {
	errs := make([]error, 0, len(d.Errors))
	for _, e := range d.Errors {
		errs = append(errs, errors.New(e.String()))
	}

	return errors.Join(errs...)
}

// String renders "[scope] path: [code] message (did you mean x?)".
func (d Diagnostic) String() string {
	var b strings.Builder

	if d.Scope != "" {
		b.WriteString("[" + d.Scope + "]")
	}

	if d.FieldPath != "" {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}

		b.WriteString(d.FieldPath)
	}

	if b.Len() > 0 {
		b.WriteString(": ")
	}

	if d.Code != "" {
		fmt.Fprintf(&b, "[%s] ", d.Code)
	}

	b.WriteString(d.Message)

	if len(d.Suggestions) > 0 {
		b.WriteString(" (did you mean " + strings.Join(d.Suggestions, ", ") + "?)")
	}

	return b.String()
}
