package consistency

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DescriptorSet is the on-disk form of one artifact's extracted fields.
// JSON files parse as well, being valid YAML.
//
//	artifact: api-schema
//	fields:
//	  - path: customer.name
//	    type: string
//	    shape: Scalar
//	    required: true
type DescriptorSet struct {
	Artifact string        `json:"artifact" yaml:"artifact"`
	Fields   []FieldRecord `json:"fields" yaml:"fields"`
}

// ParseSet parses a descriptor set document.
func ParseSet(data []byte) (*DescriptorSet, error) {
	var ds DescriptorSet

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(&ds); err != nil {
		return nil, fmt.Errorf("failed to parse descriptor set: %w", err)
	}

	for i, f := range ds.Fields {
		if strings.TrimSpace(f.Path) == "" {
			return nil, fmt.Errorf("descriptor set %q: field %d has no path", ds.Artifact, i)
		}
	}

	return &ds, nil
}

// LoadSet reads a descriptor set file. A missing artifact name falls back
// to the file name without extension.
func LoadSet(path string) (*DescriptorSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read descriptor set %s: %w", path, err)
	}

	ds, err := ParseSet(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	if ds.Artifact == "" {
		base := filepath.Base(path)
		ds.Artifact = strings.TrimSuffix(base, filepath.Ext(base))
	}

	return ds, nil
}

// LoadSets reads several descriptor set files keyed by artifact name.
func LoadSets(paths ...string) (map[string][]FieldRecord, error) {
	out := make(map[string][]FieldRecord, len(paths))

	for _, p := range paths {
		ds, err := LoadSet(p)
		if err != nil {
			return nil, err
		}

		if _, dup := out[ds.Artifact]; dup {
			return nil, fmt.Errorf("artifact %q loaded twice (%s)", ds.Artifact, p)
		}

		out[ds.Artifact] = ds.Fields
	}

	if len(out) < 2 {
		return nil, errors.New("at least two descriptor sets are needed for a comparison")
	}

	return out, nil
}
