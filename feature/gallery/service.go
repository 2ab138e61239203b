package gallery

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"strings"

	"fnum/core/config"
	"fnum/core/filelock"
	"fnum/core/journal"
	"fnum/core/metadata"
	"fnum/core/reconcile"
	"fnum/core/sidecar"
	"fnum/core/storage"

	"github.com/spf13/afero"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

var (
	// ErrInvalidName is returned for gallery names that are not a single path element.
	ErrInvalidName = errors.New("invalid gallery name")
	// ErrGalleryNotFound is returned when the gallery directory does not exist.
	ErrGalleryNotFound = fmt.Errorf("gallery not found: %w", fs.ErrNotExist)
	// ErrJournalDisabled is returned by History when no journal is configured.
	ErrJournalDisabled = errors.New("rename journal is disabled")
	// ErrPublishDisabled is returned when publishing is requested without a bucket.
	ErrPublishDisabled = errors.New("publishing is disabled")
)

// Publisher mirrors gallery artifacts to a bucket under Prefix/<gallery>.
type Publisher struct {
	Client storage.Client
	Bucket string
	Prefix string
}

// RunOptions controls one renumbering.
type RunOptions struct {
	// Suffixes override the configured suffixes when set.
	Suffixes []string
	// DryRun plans the renames without touching the directory.
	DryRun bool
	// WriteMax persists the max marker.
	WriteMax bool
	// WriteMetadata persists the ordering record.
	WriteMetadata bool
	// Sidecar renames sidecars with the configured suffix.
	Sidecar bool
	// Publish mirrors the written artifacts to the bucket.
	Publish bool
}

// key identifies runs that can share one result.
func (o RunOptions) key(dir string) string {
	return fmt.Sprintf("%s|%s|%t|%t|%t|%t|%t", dir, strings.Join(o.Suffixes, ","),
		o.DryRun, o.WriteMax, o.WriteMetadata, o.Sidecar, o.Publish)
}

// Overview is the persisted state of a gallery.
type Overview struct {
	Name      string            `json:"name"`
	Tracked   bool              `json:"tracked"`
	Max       *int              `json:"max"`
	Order     []string          `json:"order"`
	Originals map[string]string `json:"originals"`
	Extra     map[string]any    `json:"extra,omitempty"`
}

// Service handles gallery operations.
type Service struct {
	fs        afero.Fs
	numbering config.NumberingConfig
	publisher *Publisher
	journal   *journal.Journal
	logger    *zap.Logger
	group     singleflight.Group
	lockDirs  bool
}

// NewService creates a new gallery service. publisher and j may be nil.
func NewService(fsys afero.Fs, numbering config.NumberingConfig, publisher *Publisher, j *journal.Journal, logger *zap.Logger) *Service {
	_, onDisk := fsys.(*afero.OsFs)
	return &Service{
		fs:        fsys,
		numbering: numbering,
		publisher: publisher,
		journal:   j,
		logger:    logger,
		lockDirs:  onDisk,
	}
}

// Names returns the configured artifact names.
func (s *Service) Names() metadata.Names {
	return metadata.Names{Record: s.numbering.MetadataFile, Max: s.numbering.MaxFile}
}

// Resolve maps a gallery name to its directory under the numbering root.
func (s *Service) Resolve(name string) (string, error) {
	if name == "" || name == "." || name == ".." || strings.HasPrefix(name, ".") ||
		strings.ContainsAny(name, `/\`) || filepath.Base(name) != name {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}

	dir := filepath.Join(s.numbering.Root, name)
	info, err := s.fs.Stat(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrGalleryNotFound, name)
		}
		return "", fmt.Errorf("failed to open gallery %s: %w", name, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrGalleryNotFound, name)
	}
	return dir, nil
}

// Inspect returns the ordering record and max of a gallery.
func (s *Service) Inspect(ctx context.Context, name string) (*Overview, error) {
	dir, err := s.Resolve(name)
	if err != nil {
		return nil, err
	}

	store := metadata.NewDirStore(s.fs, dir, s.Names())
	record, err := store.LoadRecord(ctx)
	tracked := true
	if errors.Is(err, metadata.ErrNotFound) {
		record, tracked = metadata.NewRecord(), false
	} else if err != nil {
		return nil, err
	}

	overview := &Overview{
		Name:      name,
		Tracked:   tracked,
		Max:       record.Max,
		Order:     record.Order,
		Originals: record.Originals,
		Extra:     record.Extra,
	}
	if marker, err := store.LoadMax(ctx); err == nil {
		overview.Max = &marker.Value
	}
	return overview, nil
}

// Max returns the max marker of a gallery, falling back to the record's max.
func (s *Service) Max(ctx context.Context, name string) (metadata.Max, error) {
	dir, err := s.Resolve(name)
	if err != nil {
		return metadata.Max{}, err
	}
	return s.MaxDir(ctx, dir)
}

// MaxDir returns the max marker of any directory, falling back to the record's max.
func (s *Service) MaxDir(ctx context.Context, dir string) (metadata.Max, error) {
	store := metadata.NewDirStore(s.fs, dir, s.Names())
	marker, err := store.LoadMax(ctx)
	if err == nil || !errors.Is(err, metadata.ErrNotFound) {
		return marker, err
	}

	record, err := store.LoadRecord(ctx)
	if err != nil {
		return metadata.Max{}, err
	}
	if record.Max == nil {
		return metadata.Max{}, fmt.Errorf("%w: %s has no max", metadata.ErrNotFound, filepath.Base(dir))
	}
	return record.MaxMarker(), nil
}

// Renumber renumbers a gallery under the numbering root.
func (s *Service) Renumber(ctx context.Context, name string, opts RunOptions) (*reconcile.Result, error) {
	dir, err := s.Resolve(name)
	if err != nil {
		return nil, err
	}
	return s.RenumberDir(ctx, dir, opts)
}

// RenumberDir renumbers any directory. Identical concurrent calls share one run.
func (s *Service) RenumberDir(ctx context.Context, dir string, opts RunOptions) (*reconcile.Result, error) {
	v, err, shared := s.group.Do(opts.key(dir), func() (any, error) {
		return s.renumber(ctx, dir, opts)
	})
	if shared {
		s.logger.Debug("Joined in-flight renumbering", zap.String("dir", dir))
	}
	if err != nil {
		return nil, err
	}
	return v.(*reconcile.Result), nil
}

func (s *Service) renumber(ctx context.Context, dir string, opts RunOptions) (*reconcile.Result, error) {
	if opts.Publish && s.publisher == nil {
		return nil, ErrPublishDisabled
	}

	store, err := s.store(dir, opts.Publish && !opts.DryRun)
	if err != nil {
		return nil, err
	}

	suffixes := opts.Suffixes
	if len(suffixes) == 0 {
		suffixes = s.numbering.Suffixes
	}
	suffixes = reconcile.NormalizeSuffixes(suffixes)

	lockName := s.numbering.LockFile
	if lockName == "" {
		lockName = filelock.DefaultName
	}

	runOpts := reconcile.Options{
		Dir:           dir,
		Suffixes:      suffixes,
		WriteMax:      opts.WriteMax,
		WriteMetadata: opts.WriteMetadata,
		Reserved:      append(s.Names().Reserved(), lockName),
	}
	if opts.Sidecar && s.numbering.SidecarSuffix != "" {
		locate := sidecar.SuffixLocator(s.numbering.SidecarSuffix, suffixes...)
		runOpts.Sidecar = sidecar.NewRenamer(s.fs, locate, s.logger, suffixes...)
	}

	runID := journal.NewRunID()
	log := s.logger.With(zap.String("run_id", runID))

	rec, err := reconcile.New(s.fs, store, log, runOpts)
	if err != nil {
		return nil, err
	}
	if opts.DryRun {
		return rec.Plan(ctx)
	}

	if s.lockDirs {
		if _, err := s.fs.Stat(dir); err != nil {
			return nil, fmt.Errorf("failed to open directory: %w", err)
		}
		lock, err := filelock.Acquire(dir, lockName)
		if err != nil {
			return nil, err
		}
		defer func() {
			if err := lock.Unlock(); err != nil {
				log.Warn("Failed to release directory lock", zap.Error(err))
			}
		}()
	}

	result, err := rec.Run(ctx)
	if err != nil {
		return nil, err
	}

	if s.journal != nil {
		if err := s.journal.Record(ctx, runID, dir, result.Actions); err != nil {
			log.Warn("Failed to journal renames", zap.Error(err))
		}
	}
	return result, nil
}

// store returns the metadata store of dir, mirrored to the bucket when publishing.
func (s *Service) store(dir string, publish bool) (metadata.Store, error) {
	local := metadata.NewDirStore(s.fs, dir, s.Names())
	if !publish {
		return local, nil
	}

	prefix := path.Join(s.publisher.Prefix, filepath.Base(dir))
	remote := metadata.NewBucketStore(s.publisher.Client, s.publisher.Bucket, prefix, s.Names())
	return metadata.NewMirror(local, remote), nil
}

// History returns the journaled renames of a gallery, newest first.
func (s *Service) History(ctx context.Context, name string, limit int) ([]journal.Entry, error) {
	if s.journal == nil {
		return nil, ErrJournalDisabled
	}
	dir, err := s.Resolve(name)
	if err != nil {
		return nil, err
	}
	return s.journal.History(ctx, dir, limit)
}

// HistoryDir returns the journaled renames of any directory, newest first.
func (s *Service) HistoryDir(ctx context.Context, dir string, limit int) ([]journal.Entry, error) {
	if s.journal == nil {
		return nil, ErrJournalDisabled
	}
	return s.journal.History(ctx, dir, limit)
}
