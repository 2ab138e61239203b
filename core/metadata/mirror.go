package metadata

import (
	"context"
	"fmt"
)

// Mirror reads from a primary store and writes to the primary followed by
// every replica. A replica failure is returned after the primary has been
// written.
type Mirror struct {
	primary  Store
	replicas []Store
}

// NewMirror creates a mirror over primary and replicas.
func NewMirror(primary Store, replicas ...Store) *Mirror {
	return &Mirror{primary: primary, replicas: replicas}
}

// LoadRecord reads the record from the primary store.
func (m *Mirror) LoadRecord(ctx context.Context) (*Record, error) {
	return m.primary.LoadRecord(ctx)
}

// LoadMax reads the max marker from the primary store.
func (m *Mirror) LoadMax(ctx context.Context) (Max, error) {
	return m.primary.LoadMax(ctx)
}

// SaveRecord writes the record to the primary, then to every replica.
func (m *Mirror) SaveRecord(ctx context.Context, r *Record) error {
	if err := m.primary.SaveRecord(ctx, r); err != nil {
		return err
	}
	for i, replica := range m.replicas {
		if err := replica.SaveRecord(ctx, r); err != nil {
			return fmt.Errorf("failed to publish record to replica %d: %w", i, err)
		}
	}
	return nil
}

// SaveMax writes the max marker to the primary, then to every replica.
func (m *Mirror) SaveMax(ctx context.Context, marker Max) error {
	if err := m.primary.SaveMax(ctx, marker); err != nil {
		return err
	}
	for i, replica := range m.replicas {
		if err := replica.SaveMax(ctx, marker); err != nil {
			return fmt.Errorf("failed to publish max to replica %d: %w", i, err)
		}
	}
	return nil
}
