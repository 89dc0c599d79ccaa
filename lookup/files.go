package lookup

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// SetFileName is the conventional name of an artifact holding a whole set.
const SetFileName = "lookup_tables" + FileExtension

// SaveDir writes every table of s to its own file in dir, named by FileName.
// It returns the paths written.
func SaveDir(dir string, s *Set) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	paths := make([]string, 0, len(Widths))
	for _, t := range s.Tables() {
		path := filepath.Join(dir, FileName(t.Width()))
		if err := writeFile(path, func(w io.Writer) error { return WriteTable(w, t) }); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// SaveSet writes s as a single artifact to path.
func SaveSet(path string, s *Set) error {
	return writeFile(path, func(w io.Writer) error { return WriteSet(w, s) })
}

// Load reads a set from path, which is either a directory written by SaveDir
// or a file written by SaveSet.
func Load(path string) (*Set, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		s, err := ReadSet(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return s, nil
	}

	tables := make([]*Table, 0, len(Widths))
	for _, w := range Widths {
		t, err := loadTable(filepath.Join(path, FileName(w)))
		if err != nil {
			return nil, err
		}
		if t.Width() != w {
			return nil, fmt.Errorf("%w: %s holds a %d-bit table", ErrCorruptArtifact, FileName(w), t.Width())
		}
		tables = append(tables, t)
	}
	return NewSetFromTables(tables...)
}

func loadTable(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	t, err := ReadTable(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

func writeFile(path string, write func(w io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
	}()
	return write(f)
}
