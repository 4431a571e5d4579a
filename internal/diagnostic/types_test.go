package diagnostic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnostics_AddBySeverity(t *testing.T) {
	var d Diagnostics

	d.Addf(SeverityError, "dup", "request", "customerName", "duplicate field")
	d.Addf(SeverityWarning, "depth", "response", "", "level %d too deep", 51)
	d.Addf(SeverityInfo, "note", "", "", "fyi")

	require.Len(t, d.Errors, 1)
	require.Len(t, d.Warnings, 1)
	assert.Len(t, d.Infos, 1)
	assert.Equal(t, "level 51 too deep", d.Warnings[0].Message)
	assert.Equal(t, 3, d.Len())
	assert.True(t, d.HasErrors())
}

func TestDiagnostics_All(t *testing.T) {
	var d Diagnostics

	d.Addf(SeverityInfo, "i", "", "", "info")
	d.Addf(SeverityWarning, "w", "", "", "warn")
	d.Addf(SeverityError, "e1", "", "", "first")
	d.Addf(SeverityError, "e2", "", "", "second")

	var codes []string
	for diag := range d.All() {
		codes = append(codes, diag.Code)
	}

	assert.Equal(t, []string{"e1", "e2", "w", "i"}, codes)

	n := 0
	for range d.All() {
		n++
		break
	}

	assert.Equal(t, 1, n)
}

func TestDiagnostics_Err(t *testing.T) {
	var d Diagnostics
	require.NoError(t, d.Err())

	d.Addf(SeverityWarning, "w", "", "", "not fatal")
	require.NoError(t, d.Err())

	d.Addf(SeverityError, "a", "", "x", "first")
	d.Addf(SeverityError, "b", "request", "", "second")

	err := d.Err()
	require.Error(t, err)
	assert.Equal(t, "x: [a] first\n[request]: [b] second", err.Error())
}

func TestDiagnostics_Merge(t *testing.T) {
	var a, b Diagnostics
	a.Addf(SeverityWarning, "w", "", "", "warn")
	b.Addf(SeverityError, "e", "", "", "err")

	a.Merge(b)

	assert.Len(t, a.Errors, 1)
	assert.Len(t, a.Warnings, 1)
}

func TestDiagnostic_String(t *testing.T) {
	tests := []struct {
		name string
		diag Diagnostic
		want string
	}{
		{
			name: "suggestions",
			diag: Diagnostic{Code: "MISSING_FIELD", Message: "missing in api", FieldPath: "custName", Suggestions: []string{"custNme"}},
			want: "custName: [MISSING_FIELD] missing in api (did you mean custNme?)",
		},
		{
			name: "scope and path",
			diag: Diagnostic{Code: "depth_exceeded", Message: "too deep", Scope: "request", FieldPath: "a.b"},
			want: "[request] a.b: [depth_exceeded] too deep",
		},
		{
			name: "bare",
			diag: Diagnostic{Message: "plain"},
			want: "plain",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.diag.String())
		})
	}
}

func TestSeverity_String(t *testing.T) {
	assert.Equal(t, "info", SeverityInfo.String())
	assert.Equal(t, "warning", SeverityWarning.String())
	assert.Equal(t, "error", SeverityError.String())
	assert.Equal(t, "unknown", Severity(42).String())
}
