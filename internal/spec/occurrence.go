package spec

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// occurrencePattern accepts "N", "min..max", "min-max", "min,max" and "min~max".
var occurrencePattern = regexp.MustCompile(`^(-?\d+)(?:\s*(?:\.\.|~|,|-)\s*(-?\d+))?$`)

// ParseOccurrence parses an occurrence marker's range text.
// A bare "N" means 0..N. Negative bounds parse here and are rejected at
// layout time, where the offending row is reported.
func ParseOccurrence(text string) (OccurrenceRange, error) {
	m := occurrencePattern.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return OccurrenceRange{}, fmt.Errorf("unrecognized occurrence %q", text)
	}

	first, err := strconv.Atoi(m[1])
	if err != nil {
		return OccurrenceRange{}, fmt.Errorf("occurrence %q: %w", text, err)
	}

	if m[2] == "" {
		return OccurrenceRange{Min: 0, Max: first}, nil
	}

	second, err := strconv.Atoi(m[2])
	if err != nil {
		return OccurrenceRange{}, fmt.Errorf("occurrence %q: %w", text, err)
	}

	if second >= 0 && first > second {
		return OccurrenceRange{}, fmt.Errorf("occurrence %q: min exceeds max", text)
	}

	return OccurrenceRange{Min: first, Max: second}, nil
}

// String renders the range as "min..max".
func (r OccurrenceRange) String() string {
	return fmt.Sprintf("%d..%d", r.Min, r.Max)
}
