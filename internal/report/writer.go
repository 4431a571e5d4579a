package report

import (
	"fmt"
	"os"
	"path/filepath"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// File is one report artifact to write.
type File struct {
	Name    string
	Content []byte
}

// WriteFiles writes files into dir, creating it if needed. Each file is
// written to a temporary name first and renamed into place, so readers
// never see a partial report.
func WriteFiles(files []File, dir string) error {
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	for _, f := range files {
		if err := writeAtomic(filepath.Join(dir, f.Name), f.Content); err != nil {
			return fmt.Errorf("writing file %s: %w", f.Name, err)
		}
	}

	return nil
}

func writeAtomic(path string, content []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}

	tmpName := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmpName)

		return err
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}

	if err := os.Chmod(tmpName, filePerm); err != nil {
		os.Remove(tmpName)
		return err
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}

	return nil
}
