package rowsource

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"specgen/internal/spec"
)

// Column names recognized in a CSV header.
const (
	ColSection     = "section"
	ColLevel       = "level"
	ColLabel       = "label"
	ColDescription = "description"
	ColLength      = "length"
	ColType        = "type"
	ColOptionality = "optionality"
	ColDefault     = "default"
	ColHardCoded   = "hardcoded"
)

// headerAliases maps alternative header spellings to column names.
var headerAliases = map[string]string{
	"scope":      ColSection,
	"sheet":      ColSection,
	"depth":      ColLevel,
	"name":       ColLabel,
	"field":      ColLabel,
	"desc":       ColDescription,
	"value":      ColDescription,
	"len":        ColLength,
	"datatype":   ColType,
	"data type":  ColType,
	"required":   ColOptionality,
	"mandatory":  ColOptionality,
	"hard coded": ColHardCoded,
	"hard-coded": ColHardCoded,
	"fixed":      ColHardCoded,
}

// ErrNoHeader is returned for an empty CSV input.
var ErrNoHeader = errors.New("csv input has no header row")

// Options tunes CSV reading.
type Options struct {
	// DefaultSection is used when the file has no section column
	// or a row leaves it blank.
	DefaultSection string
	// Comma is the field delimiter; zero means ','.
	Comma rune
}

// ReadCSV reads all rows from a header-driven CSV stream.
func ReadCSV(r io.Reader, opts Options) ([]spec.Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	if opts.Comma != 0 {
		cr.Comma = opts.Comma
	}

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrNoHeader
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}

	cols, err := mapHeader(header)
	if err != nil {
		return nil, err
	}

	if _, ok := cols[ColSection]; !ok && opts.DefaultSection == "" {
		return nil, errors.New("csv has no section column and no default section")
	}

	var (
		rows     []spec.Row
		counters = map[string]int{}
	)

	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("failed to read csv: %w", err)
		}

		if blankRecord(record) {
			continue
		}

		line, _ := cr.FieldPos(0)

		raw := func(col string) string {
			i, ok := cols[col]
			if !ok || i >= len(record) {
				return ""
			}

			return record[i]
		}
		get := func(col string) string { return strings.TrimSpace(raw(col)) }

		section := get(ColSection)
		if section == "" {
			section = opts.DefaultSection
		}

		if section == "" {
			return nil, fmt.Errorf("csv line %d: missing section", line)
		}

		level, err := parseLevel(get(ColLevel))
		if err != nil {
			return nil, fmt.Errorf("csv line %d: %w", line, err)
		}

		counters[section]++

		rows = append(rows, spec.Row{
			Level:            level,
			RawLabel:         raw(ColLabel),
			SecondaryText:    get(ColDescription),
			LengthText:       get(ColLength),
			SemanticTypeText: get(ColType),
			OptionalityText:  get(ColOptionality),
			DefaultText:      get(ColDefault),
			HardCodedText:    get(ColHardCoded),
			Provenance:       spec.Provenance{Section: section, Row: counters[section]},
		})
	}

	return rows, nil
}

func mapHeader(header []string) (map[string]int, error) {
	cols := make(map[string]int, len(header))

	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if alias, ok := headerAliases[key]; ok {
			key = alias
		}

		if key == "" {
			continue
		}

		if _, dup := cols[key]; dup {
			return nil, fmt.Errorf("csv header repeats column %q", key)
		}

		cols[key] = i
	}

	for _, required := range []string{ColLevel, ColLabel} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("csv header lacks required column %q", required)
		}
	}

	return cols, nil
}

func parseLevel(text string) (int, error) {
	if text == "" {
		return 0, errors.New("missing level")
	}

	level, err := strconv.Atoi(text)
	if err != nil {
		return 0, fmt.Errorf("level %q is not an integer", text)
	}

	return level, nil
}

func blankRecord(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}

	return true
}
