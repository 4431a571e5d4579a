package spec

import (
	"strings"
)

// Marker tokens recognized in the label column.
const (
	GroupTagToken   = "groupTag"
	OccurrenceToken = "occurrence"
	// OccurrenceTokenLegacy is a misspelling found in existing spec sheets.
	// It is accepted as-is.
	OccurrenceTokenLegacy = "occurence"
)

// MarkerNames lists every label that denotes a wire-only marker.
var MarkerNames = []string{GroupTagToken, OccurrenceToken, OccurrenceTokenLegacy}

// IsMarkerName reports whether name is a marker token, ignoring case.
func IsMarkerName(name string) bool {
	for _, m := range MarkerNames {
		if strings.EqualFold(name, m) {
			return true
		}
	}

	return false
}

// RowKind is the lexical class of a row.
type RowKind int

const (
	RowScalar RowKind = iota
	RowGroupMarker
	RowOccurrenceMarker
	RowContainerOpen
)

// String returns a human-readable row kind.
func (k RowKind) String() string {
	switch k {
	case RowScalar:
		return "scalar"
	case RowGroupMarker:
		return "group-marker"
	case RowOccurrenceMarker:
		return "occurrence-marker"
	case RowContainerOpen:
		return "container-open"
	default:
		return "unknown"
	}
}

// Classification is the result of classifying one row.
type Classification struct {
	Kind RowKind
	// Value is the group tag value or the occurrence range text.
	Value string
	// ChildName and ClassName are set for RowContainerOpen.
	ChildName string
	ClassName string
}

// Classify decides the kind of a single row. It never looks at nesting.
func Classify(row Row) (Classification, error) {
	label := strings.TrimSpace(row.RawLabel)

	switch {
	case strings.EqualFold(label, GroupTagToken):
		return Classification{Kind: RowGroupMarker, Value: strings.TrimSpace(row.SecondaryText)}, nil

	case strings.EqualFold(label, OccurrenceToken), strings.EqualFold(label, OccurrenceTokenLegacy):
		return Classification{Kind: RowOccurrenceMarker, Value: strings.TrimSpace(row.SecondaryText)}, nil

	case strings.Contains(label, ":") && isBlank(row.LengthText) && isBlank(row.SemanticTypeText):
		// Class names may contain colons themselves; split on the first only.
		child, class, _ := strings.Cut(label, ":")
		child = strings.TrimSpace(child)
		class = strings.TrimSpace(class)

		if child == "" || class == "" {
			return Classification{}, newError(InvalidContainerSyntax, row.Provenance, "",
				"container label "+quote(label)+" needs both a field name and a class name")
		}

		return Classification{Kind: RowContainerOpen, ChildName: child, ClassName: class}, nil

	default:
		return Classification{Kind: RowScalar}, nil
	}
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func quote(s string) string {
	return `"` + s + `"`
}
