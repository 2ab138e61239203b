package metadata

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/spf13/afero"
)

// DirStore keeps the record and max marker as files inside the numbered
// directory.
type DirStore struct {
	fs    afero.Fs
	dir   string
	names Names
}

// NewDirStore creates a store rooted at dir. Empty names fall back to the defaults.
func NewDirStore(fsys afero.Fs, dir string, names Names) *DirStore {
	return &DirStore{fs: fsys, dir: dir, names: names.withDefaults()}
}

// RecordPath returns the path of the record file.
func (s *DirStore) RecordPath() string {
	return filepath.Join(s.dir, s.names.Record)
}

// MaxPath returns the path of the max marker file.
func (s *DirStore) MaxPath() string {
	return filepath.Join(s.dir, s.names.Max)
}

// LoadRecord reads and decodes the record file.
func (s *DirStore) LoadRecord(ctx context.Context) (*Record, error) {
	data, err := s.read(s.RecordPath())
	if err != nil {
		return nil, err
	}
	r, err := Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", s.RecordPath(), err)
	}
	return r, nil
}

// SaveRecord encodes r and replaces the record file.
func (s *DirStore) SaveRecord(ctx context.Context, r *Record) error {
	data, err := Marshal(r)
	if err != nil {
		return err
	}
	return writeAtomic(s.fs, s.RecordPath(), data)
}

// LoadMax reads the max marker file.
func (s *DirStore) LoadMax(ctx context.Context) (Max, error) {
	data, err := s.read(s.MaxPath())
	if err != nil {
		return Max{}, err
	}
	return ParseMax(string(data))
}

// SaveMax replaces the max marker file.
func (s *DirStore) SaveMax(ctx context.Context, m Max) error {
	return writeAtomic(s.fs, s.MaxPath(), []byte(m.String()+"\n"))
}

func (s *DirStore) read(path string) ([]byte, error) {
	data, err := afero.ReadFile(s.fs, path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

// writeAtomic writes data to a temporary file in the target directory and
// renames it over path, so readers never observe a partial file.
func writeAtomic(fsys afero.Fs, path string, data []byte) error {
	tmp, err := afero.TempFile(fsys, filepath.Dir(path), ".fnum-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", path, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = fsys.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = fsys.Remove(tmpName)
		return fmt.Errorf("failed to sync %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = fsys.Remove(tmpName)
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	if err := fsys.Chmod(tmpName, 0o644); err != nil {
		_ = fsys.Remove(tmpName)
		return fmt.Errorf("failed to chmod %s: %w", path, err)
	}
	if err := fsys.Rename(tmpName, path); err != nil {
		_ = fsys.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
