package consistency

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"specgen/internal/spec"
)

func TestParseSet_YAML(t *testing.T) {
	data := `
artifact: api-schema
fields:
  - path: customer
    shape: object
  - path: customer.name
    type: string
    required: true
`
	ds, err := ParseSet([]byte(data))
	require.NoError(t, err)

	assert.Equal(t, "api-schema", ds.Artifact)
	require.Len(t, ds.Fields, 2)
	assert.Equal(t, spec.ShapeComposite, ds.Fields[0].Shape)
	assert.Equal(t, spec.ShapeScalar, ds.Fields[1].Shape)
	assert.True(t, ds.Fields[1].Required)
}

func TestParseSet_JSON(t *testing.T) {
	ds, err := ParseSet([]byte(`{"artifact":"records","fields":[{"path":"a","type":"String","shape":"Scalar","required":false}]}`))
	require.NoError(t, err)
	assert.Equal(t, "records", ds.Artifact)
	assert.Equal(t, "String", ds.Fields[0].Type)
}

func TestParseSet_Errors(t *testing.T) {
	_, err := ParseSet([]byte("fields:\n  - type: string\n"))
	assert.ErrorContains(t, err, "has no path")

	_, err = ParseSet([]byte("fields:\n  - path: a\n    colour: red\n"))
	assert.Error(t, err)

	_, err = ParseSet([]byte("fields:\n  - path: a\n    shape: blob\n"))
	assert.Error(t, err)
}

func TestLoadSets(t *testing.T) {
	dir := t.TempDir()

	beans := filepath.Join(dir, "beans.yaml")
	require.NoError(t, os.WriteFile(beans, []byte("fields:\n  - path: a\n    type: text\n"), 0o644))

	schema := filepath.Join(dir, "schema.json")
	require.NoError(t, os.WriteFile(schema, []byte(`{"artifact":"api","fields":[{"path":"a","type":"string"}]}`), 0o644))

	sets, err := LoadSets(beans, schema)
	require.NoError(t, err)
	assert.Len(t, sets, 2)
	assert.Contains(t, sets, "beans")
	assert.Contains(t, sets, "api")

	_, err = LoadSets(beans)
	assert.Error(t, err)

	_, err = LoadSets(beans, beans)
	assert.ErrorContains(t, err, "loaded twice")

	_, err = LoadSets(filepath.Join(dir, "nope.yaml"), beans)
	assert.Error(t, err)
}
