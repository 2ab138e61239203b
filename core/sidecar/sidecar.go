package sidecar

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Locator returns the sidecar path of a content file, or "" when none can exist.
type Locator func(contentPath string) string

// SuffixLocator locates sidecars next to the content file, replacing the
// content suffix with suffix. Content suffixes are tried longest first; when
// none matches, the last extension is replaced.
func SuffixLocator(suffix string, contentSuffixes ...string) Locator {
	if suffix != "" && !strings.HasPrefix(suffix, ".") {
		suffix = "." + suffix
	}
	return func(contentPath string) string {
		if suffix == "" {
			return ""
		}
		base := filepath.Base(contentPath)
		stem := strings.TrimSuffix(base, filepath.Ext(base))
		best := 0
		for _, s := range contentSuffixes {
			if len(s) > best && len(base) > len(s) && strings.HasSuffix(base, s) {
				stem = strings.TrimSuffix(base, s)
				best = len(s)
			}
		}
		return filepath.Join(filepath.Dir(contentPath), stem+suffix)
	}
}

// ErrOwned is returned when the destination sidecar belongs to another live
// content file.
var ErrOwned = errors.New("sidecar belongs to another content file")

// Renamer moves sidecars when their content file is renamed.
type Renamer struct {
	fs              afero.Fs
	locate          Locator
	logger          *zap.Logger
	contentSuffixes []string
}

// NewRenamer creates a Renamer. contentSuffixes are the recognised content
// suffixes, used to tell stale sidecars from sidecars of live files.
func NewRenamer(fsys afero.Fs, locate Locator, logger *zap.Logger, contentSuffixes ...string) *Renamer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Renamer{fs: fsys, locate: locate, logger: logger, contentSuffixes: contentSuffixes}
}

// Rename moves the sidecar of oldPath to the sidecar location of newPath.
// It returns an error wrapping fs.ErrNotExist when oldPath has no sidecar.
// A stale sidecar at the destination, whose content file is gone, is
// replaced. A destination owned by another live content file yields ErrOwned.
func (r *Renamer) Rename(oldPath, newPath string) error {
	src, dst := r.locate(oldPath), r.locate(newPath)
	if src == "" || dst == "" || src == oldPath || dst == newPath {
		return fmt.Errorf("no sidecar for %s: %w", oldPath, fs.ErrNotExist)
	}

	info, err := r.fs.Stat(src)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("no sidecar for %s: %w", oldPath, fs.ErrNotExist)
		}
		return fmt.Errorf("failed to stat sidecar %s: %w", src, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("no sidecar for %s: %w", oldPath, fs.ErrNotExist)
	}

	if existing, err := r.fs.Stat(dst); err == nil {
		if !existing.Mode().IsRegular() {
			return fmt.Errorf("sidecar destination %s is not a file", dst)
		}
		if owner := r.owner(newPath); owner != "" {
			return fmt.Errorf("%w: %s belongs to %s", ErrOwned, dst, owner)
		}
		r.logger.Warn("Replacing stale sidecar",
			zap.String("from", src),
			zap.String("to", dst),
		)
		if err := r.fs.Remove(dst); err != nil {
			return fmt.Errorf("failed to remove stale sidecar %s: %w", dst, err)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to stat sidecar %s: %w", dst, err)
	}

	if err := r.fs.Rename(src, dst); err != nil {
		return fmt.Errorf("failed to rename sidecar %s: %w", src, err)
	}
	r.logger.Debug("Renamed sidecar", zap.String("from", src), zap.String("to", dst))
	return nil
}

// owner returns a live content file other than contentPath that shares its
// stem, or "" when there is none.
func (r *Renamer) owner(contentPath string) string {
	dir, base := filepath.Split(contentPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	best := 0
	for _, s := range r.contentSuffixes {
		if len(s) > best && len(base) > len(s) && strings.HasSuffix(base, s) {
			stem = strings.TrimSuffix(base, s)
			best = len(s)
		}
	}

	for _, s := range r.contentSuffixes {
		candidate := filepath.Join(dir, stem+s)
		if candidate == contentPath {
			continue
		}
		if info, err := r.fs.Stat(candidate); err == nil && info.Mode().IsRegular() {
			return candidate
		}
	}
	return ""
}
