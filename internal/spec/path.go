package spec

import (
	"strconv"
	"strings"
)

// FieldPath builds readable, dotted field paths.
// Examples:
//   - "customer" for a root field
//   - "customer.name" for a nested field
//   - "items[2].sku" for a field inside the third repetition
//   - "items[].sku" for a field inside any repetition
//
// A FieldPath is immutable; every method returns a new value.
type FieldPath struct {
	parts []string
}

// Field appends a field name to the path.
func (p FieldPath) Field(name string) FieldPath {
	return FieldPath{parts: append(append([]string{}, p.parts...), name)}
}

// Index suffixes the last segment with "[i]".
func (p FieldPath) Index(i int) FieldPath {
	return p.suffix("[" + strconv.Itoa(i) + "]")
}

// Repeated suffixes the last segment with "[]".
func (p FieldPath) Repeated() FieldPath {
	return p.suffix("[]")
}

func (p FieldPath) suffix(s string) FieldPath {
	if len(p.parts) == 0 {
		return FieldPath{parts: []string{s}}
	}

	parts := make([]string, len(p.parts))
	copy(parts, p.parts)
	parts[len(parts)-1] += s

	return FieldPath{parts: parts}
}

// String returns the full dotted path.
func (p FieldPath) String() string {
	return strings.Join(p.parts, ".")
}

// FirstSegment returns the first path segment with any index suffix removed.
func FirstSegment(path string) string {
	head, _, _ := strings.Cut(path, ".")
	if i := strings.IndexByte(head, '['); i >= 0 {
		head = head[:i]
	}

	return head
}
