package reconcile

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fnum/core/metadata"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Reconciler renumbers one directory. It holds no per-run state, so Run may
// be called repeatedly.
type Reconciler struct {
	fs       afero.Fs
	store    metadata.Store
	logger   *zap.Logger
	opts     Options
	suffixes []string
	reserved map[string]struct{}
}

// New creates a Reconciler for opts.Dir on fsys.
func New(fsys afero.Fs, store metadata.Store, logger *zap.Logger, opts Options) (*Reconciler, error) {
	if opts.Dir == "" {
		return nil, errors.New("directory is required")
	}
	suffixes := NormalizeSuffixes(opts.Suffixes)
	if len(suffixes) == 0 {
		return nil, errors.New("at least one suffix is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(opts.Reserved) == 0 {
		opts.Reserved = metadata.Names{}.Reserved()
	}
	reserved := make(map[string]struct{}, len(opts.Reserved))
	for _, name := range opts.Reserved {
		reserved[name] = struct{}{}
	}

	opts.Suffixes = suffixes
	return &Reconciler{
		fs:       fsys,
		store:    store,
		logger:   logger.With(zap.String("dir", opts.Dir)),
		opts:     opts,
		suffixes: suffixes,
		reserved: reserved,
	}, nil
}

// Suffixes returns the normalized suffixes, longest first.
func (r *Reconciler) Suffixes() []string {
	return append([]string(nil), r.suffixes...)
}

// Run executes all phases against the directory and persists the requested
// artifacts. A *ConflictError is returned when the directory is ambiguous.
func (r *Reconciler) Run(ctx context.Context) (*Result, error) {
	info, err := r.fs.Stat(r.opts.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("not a directory: %s", r.opts.Dir)
	}

	record, regenerate, err := r.loadRecord(ctx)
	if err != nil {
		return nil, err
	}

	rn := newRun(r, record, regenerate)
	r.logger.Info("Renumbering directory",
		zap.Strings("suffixes", r.suffixes),
		zap.Bool("regenerate", regenerate),
	)

	if err := rn.findOrdered(); err != nil {
		return nil, err
	}
	if err := rn.findMovable(); err != nil {
		return nil, err
	}
	if err := rn.moveNumbered(); err != nil {
		return nil, err
	}
	if err := rn.moveNew(); err != nil {
		return nil, err
	}
	if err := rn.finalize(ctx); err != nil {
		return nil, err
	}

	result := rn.result()
	r.logger.Info("Renumbering complete",
		zap.Int("max", result.Summary.Max),
		zap.Int("renamed", result.Summary.Renamed),
		zap.Int("removed", result.Summary.Removed),
	)
	return result, nil
}

// Plan runs every phase against an in-memory copy of the directory's file
// names. Nothing is renamed or persisted; the returned actions are what Run
// would apply to an unchanged directory.
func (r *Reconciler) Plan(ctx context.Context) (*Result, error) {
	mirror, err := snapshot(r.fs, r.opts.Dir)
	if err != nil {
		return nil, err
	}

	opts := r.opts
	opts.WriteMax = false
	opts.WriteMetadata = false
	opts.Sidecar = nil

	planner := &Reconciler{
		fs:       mirror,
		store:    r.store,
		logger:   r.logger.With(zap.Bool("dry_run", true)),
		opts:     opts,
		suffixes: r.suffixes,
		reserved: r.reserved,
	}
	result, err := planner.Run(ctx)
	if err != nil {
		return nil, err
	}
	result.DryRun = true
	return result, nil
}

// loadRecord returns the persisted record, or a fresh one flagged for
// regeneration when none exists.
func (r *Reconciler) loadRecord(ctx context.Context) (*metadata.Record, bool, error) {
	record, err := r.store.LoadRecord(ctx)
	if errors.Is(err, metadata.ErrNotFound) {
		r.logger.Info("No ordering record found, regenerating")
		return metadata.NewRecord(), true, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to load ordering record: %w", err)
	}
	for _, name := range record.Duplicates() {
		r.logger.Warn("Ordering record maps several originals to one file", zap.String("name", name))
	}
	return record, false, nil
}

// split separates a filename into stem and recognised suffix.
func (r *Reconciler) split(name string) (stem, suffix string, ok bool) {
	if name == "" || strings.HasPrefix(name, ".") || filepath.Base(name) != name {
		return "", "", false
	}
	for _, s := range r.suffixes {
		if len(name) > len(s) && strings.HasSuffix(name, s) {
			return strings.TrimSuffix(name, s), s, true
		}
	}
	return "", "", false
}

func (r *Reconciler) isReserved(name string) bool {
	_, ok := r.reserved[name]
	return ok
}

func (r *Reconciler) path(name string) string {
	return filepath.Join(r.opts.Dir, name)
}

// isFile reports whether name is a regular file in the directory. Symlinks
// are not followed.
func (r *Reconciler) isFile(name string) bool {
	info, err := r.lstat(name)
	return err == nil && info.Mode().IsRegular()
}

// exists reports whether anything occupies name in the directory.
func (r *Reconciler) exists(name string) bool {
	_, err := r.lstat(name)
	return err == nil || !errors.Is(err, os.ErrNotExist)
}

func (r *Reconciler) lstat(name string) (os.FileInfo, error) {
	if l, ok := r.fs.(afero.Lstater); ok {
		info, _, err := l.LstatIfPossible(r.path(name))
		return info, err
	}
	return r.fs.Stat(r.path(name))
}

// snapshot copies the entry names of dir into an empty in-memory filesystem.
// Regular files become empty files; every other entry becomes a directory so
// it still blocks renames without being numbered.
func snapshot(src afero.Fs, dir string) (afero.Fs, error) {
	entries, err := afero.ReadDir(src, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list directory: %w", err)
	}

	mirror := afero.NewMemMapFs()
	if err := mirror.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to prepare dry run: %w", err)
	}
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if entry.Mode().IsRegular() {
			err = afero.WriteFile(mirror, path, nil, 0o644)
		} else {
			err = mirror.MkdirAll(path, 0o755)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to prepare dry run: %w", err)
		}
	}
	return mirror, nil
}
