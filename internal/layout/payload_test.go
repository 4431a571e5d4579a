package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"specgen/internal/spec"
)

func TestTable_Slice(t *testing.T) {
	table, err := Calculate("request", []*spec.FieldDescriptor{leaf("a", 2, 1), leaf("b", 3, 1)})
	require.NoError(t, err)

	segs, err := table.Slice([]byte("abXYZ"))
	require.NoError(t, err)
	require.Len(t, segs, 2)
	assert.Equal(t, "ab", string(segs[0].Bytes))
	assert.Equal(t, "XYZ", string(segs[1].Bytes))

	_, err = table.Slice([]byte("short"[:3]))
	assert.ErrorIs(t, err, ErrPayloadLength)
}

func TestTable_Lookup(t *testing.T) {
	table, err := Calculate("request", []*spec.FieldDescriptor{leaf("a", 2, 1), leaf("b", 3, 1)})
	require.NoError(t, err)

	e, ok := table.Lookup("b")
	require.True(t, ok)
	assert.Equal(t, 2, e.StartOffset)

	_, ok = table.Lookup("missing")
	assert.False(t, ok)
}
