package rowsource

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"specgen/internal/spec"
)

type yamlDocument struct {
	Sections []yamlSection `yaml:"sections"`
}

type yamlSection struct {
	Name string    `yaml:"name"`
	Rows []yamlRow `yaml:"rows"`
}

type yamlRow struct {
	Level       int    `yaml:"level"`
	Label       string `yaml:"label"`
	Description string `yaml:"description"`
	Length      string `yaml:"length"`
	Type        string `yaml:"type"`
	Optionality string `yaml:"optionality"`
	Default     string `yaml:"default"`
	HardCoded   string `yaml:"hardcoded"`
}

// ReadYAML reads rows from a YAML document of the form
//
//	sections:
//	  - name: request
//	    rows:
//	      - {level: 1, label: customerName, length: "20", type: text}
func ReadYAML(r io.Reader) ([]spec.Row, error) {
	var doc yamlDocument

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to parse rows YAML: %w", err)
	}

	var rows []spec.Row

	for i, s := range doc.Sections {
		if s.Name == "" {
			return nil, fmt.Errorf("section %d has no name", i+1)
		}

		for j, yr := range s.Rows {
			rows = append(rows, spec.Row{
				Level:            yr.Level,
				RawLabel:         yr.Label,
				SecondaryText:    yr.Description,
				LengthText:       yr.Length,
				SemanticTypeText: yr.Type,
				OptionalityText:  yr.Optionality,
				DefaultText:      yr.Default,
				HardCodedText:    yr.HardCoded,
				Provenance:       spec.Provenance{Section: s.Name, Row: j + 1},
			})
		}
	}

	return rows, nil
}
