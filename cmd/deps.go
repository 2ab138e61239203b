package cmd

import (
	"context"
	"fmt"

	"fnum/core/database"
	"fnum/core/journal"
	"fnum/core/storage"
	"fnum/feature/gallery"

	"go.uber.org/zap"
)

// openJournal connects the rename journal. The journal is optional, so
// failures are logged and nil is returned.
func openJournal(cfg database.Config, logg *zap.Logger) *journal.Journal {
	if !cfg.Enabled {
		return nil
	}

	db, err := database.Connect(cfg)
	if err != nil {
		logg.Warn("Optional database connection failed", zap.Error(err))
		return nil
	}
	j, err := journal.Open(db)
	if err != nil {
		logg.Warn("Rename journal unavailable", zap.Error(err))
		return nil
	}
	logg.Debug("Connected to rename journal", zap.String("driver", db.Dialector.Name()))
	return j
}

// openPublisher connects the bucket that artifacts are mirrored to.
func openPublisher(ctx context.Context, cfg storage.Config) (*gallery.Publisher, error) {
	if !cfg.Enabled {
		return nil, fmt.Errorf("%w: set STORAGE_ENABLED=true", gallery.ErrPublishDisabled)
	}

	client, err := storage.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	if err := storage.EnsureBucket(ctx, client, cfg.Bucket, cfg.Region); err != nil {
		return nil, err
	}
	return &gallery.Publisher{Client: client, Bucket: cfg.Bucket, Prefix: cfg.Prefix}, nil
}
