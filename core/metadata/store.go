package metadata

import (
	"context"
	"fmt"
	"io/fs"
)

// Default artifact names written next to numbered files.
const (
	DefaultRecordName = "fnum.metadata.yaml"
	DefaultMaxName    = "fnum.max.txt"
)

// ErrNotFound is returned by stores when the requested artifact does not exist.
var ErrNotFound = fmt.Errorf("metadata not found: %w", fs.ErrNotExist)

// Names configures the artifact names a store reads and writes.
type Names struct {
	Record string
	Max    string
}

// withDefaults fills empty names.
func (n Names) withDefaults() Names {
	if n.Record == "" {
		n.Record = DefaultRecordName
	}
	if n.Max == "" {
		n.Max = DefaultMaxName
	}
	return n
}

// Reserved lists the artifact names, which must never be numbered.
func (n Names) Reserved() []string {
	n = n.withDefaults()
	return []string{n.Record, n.Max}
}

// Store loads and saves the persisted state of one directory.
type Store interface {
	// LoadRecord returns the stored record or an error wrapping ErrNotFound.
	LoadRecord(ctx context.Context) (*Record, error)
	// SaveRecord replaces the stored record.
	SaveRecord(ctx context.Context, r *Record) error
	// LoadMax returns the stored max marker or an error wrapping ErrNotFound.
	LoadMax(ctx context.Context) (Max, error)
	// SaveMax replaces the stored max marker.
	SaveMax(ctx context.Context, m Max) error
}
