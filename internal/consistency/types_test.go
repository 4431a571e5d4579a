package consistency

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypeTable_Canonical(t *testing.T) {
	table := NewTypeTable(nil)

	tests := []struct {
		input string
		kind  string
		known bool
	}{
		{"text", KindString, true},
		{" VARCHAR ", KindString, true},
		{"java.lang.String", KindString, true},
		{"java.math.BigDecimal", KindDecimal, true},
		{"unsigned-integer", KindInteger, true},
		{"LocalDateTime", KindDateTime, true},
		{"byte[]", KindBinary, true},
		{"Frob", "frob", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			kind, known := table.Canonical(tt.input)
			assert.Equal(t, tt.kind, kind)
			assert.Equal(t, tt.known, known)
		})
	}
}

func TestTypeTable_ZeroValueUsesDefaults(t *testing.T) {
	var table TypeTable

	kind, ok := table.Canonical("amount")
	assert.True(t, ok)
	assert.Equal(t, KindDecimal, kind)
}
