package rowsource

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"specgen/internal/spec"
)

// Open reads rows from a file, choosing the format by extension.
// A ".tsv" file is read as tab-separated CSV.
func Open(path string, opts Options) ([]spec.Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open rows file %s: %w", path, err)
	}
	defer f.Close()

	var rows []spec.Row

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		rows, err = ReadCSV(f, opts)
	case ".tsv":
		opts.Comma = '\t'
		rows, err = ReadCSV(f, opts)
	case ".yaml", ".yml":
		rows, err = ReadYAML(f)
	default:
		return nil, fmt.Errorf("unsupported rows format %q", filepath.Ext(path))
	}

	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return rows, nil
}
