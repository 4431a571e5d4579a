package layout

import (
	"errors"
	"fmt"
)

// ErrPayloadLength is returned when a payload does not match the table length.
var ErrPayloadLength = errors.New("payload length mismatch")

// Segment is one entry's view into a payload.
type Segment struct {
	Entry Entry
	Bytes []byte
}

// Slice splits a fixed-length payload along the table's entries.
// Segments alias payload; nothing is copied.
func (t *Table) Slice(payload []byte) ([]Segment, error) {
	if len(payload) != t.TotalLength {
		return nil, fmt.Errorf("%w: %s expects %d bytes, got %d",
			ErrPayloadLength, t.ScopeName, t.TotalLength, len(payload))
	}

	out := make([]Segment, 0, len(t.Entries))
	for _, e := range t.Entries {
		out = append(out, Segment{Entry: e, Bytes: payload[e.StartOffset:e.End():e.End()]})
	}

	return out, nil
}

// Lookup returns the entry with the given path.
func (t *Table) Lookup(path string) (Entry, bool) {
	for _, e := range t.Entries {
		if e.FieldPath == path {
			return e, true
		}
	}

	return Entry{}, false
}
