package spec

import (
	"fmt"
	"strings"

	"specgen/internal/common"
)

// ErrorKind classifies a fatal structural defect.
type ErrorKind int

const (
	InvalidLevelJump ErrorKind = iota + 1
	InvalidContainerSyntax
	DuplicateFieldName
	InvalidOccurrenceFormat
	MissingLength
	NegativeLength
	NegativeOccurrence
	EmptyFieldName
	UnknownSection
	LengthOverflow
	LayoutTooLarge
)

// String returns the taxonomy name of the kind.
func (k ErrorKind) String() string {
	switch k {
	case InvalidLevelJump:
		return "InvalidLevelJump"
	case InvalidContainerSyntax:
		return "InvalidContainerSyntax"
	case DuplicateFieldName:
		return "DuplicateFieldName"
	case InvalidOccurrenceFormat:
		return "InvalidOccurrenceFormat"
	case MissingLength:
		return "MissingLength"
	case NegativeLength:
		return "NegativeLength"
	case NegativeOccurrence:
		return "NegativeOccurrence"
	case EmptyFieldName:
		return "EmptyFieldName"
	case UnknownSection:
		return "UnknownSection"
	case LengthOverflow:
		return "LengthOverflow"
	case LayoutTooLarge:
		return "LayoutTooLarge"
	default:
		return common.UnknownStr
	}
}

// Sentinels for errors.Is. Only the kind is compared.
var (
	ErrInvalidLevelJump        = &StructuralError{Kind: InvalidLevelJump}
	ErrInvalidContainerSyntax  = &StructuralError{Kind: InvalidContainerSyntax}
	ErrDuplicateFieldName      = &StructuralError{Kind: DuplicateFieldName}
	ErrInvalidOccurrenceFormat = &StructuralError{Kind: InvalidOccurrenceFormat}
	ErrMissingLength           = &StructuralError{Kind: MissingLength}
	ErrNegativeLength          = &StructuralError{Kind: NegativeLength}
	ErrNegativeOccurrence      = &StructuralError{Kind: NegativeOccurrence}
	ErrEmptyFieldName          = &StructuralError{Kind: EmptyFieldName}
	ErrUnknownSection          = &StructuralError{Kind: UnknownSection}
	ErrLengthOverflow          = &StructuralError{Kind: LengthOverflow}
	ErrLayoutTooLarge          = &StructuralError{Kind: LayoutTooLarge}
)

// StructuralError is a fatal defect found while building or laying out a tree.
type StructuralError struct {
	Kind ErrorKind
	// Provenance is the offending row.
	Provenance Provenance
	// Name is the normalized name involved, if any.
	Name string
	// Conflict is the earlier row for DuplicateFieldName.
	Conflict *Provenance
	// Detail is a free-form explanation.
	Detail string
}

// Error implements error.
func (e *StructuralError) Error() string {
	var b strings.Builder

	b.WriteString(e.Kind.String())

	if e.Provenance != (Provenance{}) {
		fmt.Fprintf(&b, " at %s", e.Provenance)
	}

	if e.Name != "" {
		fmt.Fprintf(&b, " (field %q)", e.Name)
	}

	if e.Conflict != nil {
		fmt.Fprintf(&b, ", conflicts with %s", *e.Conflict)
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	return b.String()
}

// Is matches any StructuralError of the same kind.
func (e *StructuralError) Is(target error) bool {
	t, ok := target.(*StructuralError)
	return ok && t.Kind == e.Kind
}

// String renders "section row N".
func (p Provenance) String() string {
	if p.Section == "" {
		return fmt.Sprintf("row %d", p.Row)
	}

	return fmt.Sprintf("%s row %d", p.Section, p.Row)
}

func newError(kind ErrorKind, at Provenance, name, detail string) *StructuralError {
	return &StructuralError{Kind: kind, Provenance: at, Name: name, Detail: detail}
}
