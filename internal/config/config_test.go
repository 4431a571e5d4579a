package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"specgen/internal/consistency"
	"specgen/internal/layout"
	"specgen/internal/naming"
	"specgen/internal/spec"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, naming.DefaultMaxLength, cfg.Naming.MaxLength)
	assert.Equal(t, spec.DefaultMaxDepth, cfg.Build.MaxDepth)
	assert.Equal(t, layout.DefaultMaxEntries, cfg.Build.MaxEntries)
	assert.Equal(t, layout.DefaultLimits(), cfg.LayoutLimits())
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, FormatConsole, cfg.Log.Format)
	assert.NoError(t, cfg.Validate())
}

func TestParseYAML(t *testing.T) {
	data := `
naming:
  max_length: 20
build:
  max_depth: 8
  max_entries: 500
  sections:
    Antwort: response
check:
  strict: true
  ignore: [traceId]
  types:
    Frob: string
log:
  format: json
`
	cfg, err := ParseYAML([]byte(data))
	require.NoError(t, err)

	assert.Equal(t, 20, cfg.Naming.MaxLength)
	assert.Equal(t, 8, cfg.Build.MaxDepth)
	assert.Equal(t, layout.Limits{MaxEntries: 500}, cfg.LayoutLimits())
	assert.True(t, cfg.Check.Strict)
	assert.Equal(t, []string{"traceId"}, cfg.Check.Ignore)
	assert.Equal(t, FormatJSON, cfg.Log.Format)
	assert.Equal(t, "info", cfg.Log.Level)

	bc := cfg.BuilderConfig()
	assert.Equal(t, 8, bc.MaxDepth)
	assert.Equal(t, 20, bc.Naming.MaxLength)

	scope, ok := bc.ResolveScope("ANTWORT")
	require.True(t, ok)
	assert.Equal(t, spec.ScopeResponse, scope)

	scope, ok = bc.ResolveScope("req")
	require.True(t, ok)
	assert.Equal(t, spec.ScopeRequest, scope)

	opts := cfg.CheckOptions()
	assert.True(t, opts.Strict)

	kind, known := opts.Types.Canonical("frob")
	assert.True(t, known)
	assert.Equal(t, consistency.KindString, kind)
}

func TestParseTOML(t *testing.T) {
	data := `
[naming]
max_length = 12

[check]
ignore = ["a", "b.c"]

[log]
level = "debug"
`
	cfg, err := ParseTOML([]byte(data))
	require.NoError(t, err)

	assert.Equal(t, 12, cfg.Naming.MaxLength)
	assert.Equal(t, spec.DefaultMaxDepth, cfg.Build.MaxDepth)
	assert.Equal(t, []string{"a", "b.c"}, cfg.Check.Ignore)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestCheckOptions_IgnoreIsACopy(t *testing.T) {
	cfg := Default()
	cfg.Check.Ignore = make([]string, 1, 4)
	cfg.Check.Ignore[0] = "traceId"

	opts := cfg.CheckOptions()
	opts.Ignore = append(opts.Ignore, "extra")
	opts.Ignore[0] = "changed"

	assert.Equal(t, []string{"traceId"}, cfg.Check.Ignore)
	// spare capacity in the config slice stays untouched
	assert.Empty(t, cfg.Check.Ignore[1:2][0])
}

func TestParseTOML_UnknownKey(t *testing.T) {
	_, err := ParseTOML([]byte("[naming]\nmax_len = 3\n"))
	assert.ErrorContains(t, err, "unknown config key")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr string
	}{
		{"max length too small", "naming:\n  max_length: 3\n", "naming.max_length"},
		{"negative depth", "build:\n  max_depth: -1\n", "build.max_depth"},
		{"negative entries", "build:\n  max_entries: -5\n", "build.max_entries"},
		{"bad scope", "build:\n  sections:\n    x: footer\n", "unknown scope"},
		{"bad format", "log:\n  format: xml\n", "log.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseYAML([]byte(tt.data))
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "specgen.yml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("naming:\n  max_length: 15\n"), 0o644))

	cfg, err := LoadFile(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, 15, cfg.Naming.MaxLength)

	tomlPath := filepath.Join(dir, "specgen.toml")
	require.NoError(t, os.WriteFile(tomlPath, []byte("[naming]\nmax_length = 16\n"), 0o644))

	cfg, err = LoadFile(tomlPath)
	require.NoError(t, err)
	assert.Equal(t, 16, cfg.Naming.MaxLength)

	iniPath := filepath.Join(dir, "specgen.ini")
	require.NoError(t, os.WriteFile(iniPath, []byte(""), 0o644))

	_, err = LoadFile(iniPath)
	assert.ErrorContains(t, err, "unsupported config format")

	_, err = LoadFile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
