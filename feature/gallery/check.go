package gallery

import (
	"context"
	"errors"

	"fnum/core/metadata"
	"fnum/core/reconcile"
)

// Report describes how far a gallery is from a dense numbering.
type Report struct {
	Name string `json:"name"`
	// Dense is set when a renumbering would not rename anything.
	Dense bool `json:"dense"`
	// Pending lists the renames a renumbering would apply.
	Pending []reconcile.Action `json:"pending"`
	// Conflict is the error a renumbering would stop with.
	Conflict string `json:"conflict,omitempty"`
	// Max is the max a renumbering would assign.
	Max       int  `json:"max"`
	MaxMarker *int `json:"max_marker"`
	RecordMax *int `json:"record_max"`
	// StaleMax is set when a persisted max differs from Max.
	StaleMax bool `json:"stale_max"`
	// Duplicates are record entries naming an already tracked file.
	Duplicates []string `json:"duplicates,omitempty"`
}

// Check plans a renumbering of a gallery and compares it with the persisted state.
func (s *Service) Check(ctx context.Context, name string) (*Report, error) {
	dir, err := s.Resolve(name)
	if err != nil {
		return nil, err
	}

	report := &Report{Name: name, Pending: []reconcile.Action{}}
	result, err := s.RenumberDir(ctx, dir, RunOptions{DryRun: true})
	var conflict *reconcile.ConflictError
	switch {
	case errors.As(err, &conflict):
		report.Conflict = conflict.Error()
	case err != nil:
		return nil, err
	default:
		report.Pending = result.Actions
		report.Max = result.Summary.Max
		report.Dense = len(result.Actions) == 0
	}

	store := metadata.NewDirStore(s.fs, dir, s.Names())
	marker, err := store.LoadMax(ctx)
	if err == nil {
		report.MaxMarker = &marker.Value
	} else if !errors.Is(err, metadata.ErrNotFound) {
		return nil, err
	}

	record, err := store.LoadRecord(ctx)
	if err == nil {
		report.RecordMax = record.Max
		report.Duplicates = record.Duplicates()
	} else if !errors.Is(err, metadata.ErrNotFound) {
		return nil, err
	}

	if report.Conflict == "" {
		report.StaleMax = differs(report.MaxMarker, report.Max) || differs(report.RecordMax, report.Max)
	}
	return report, nil
}

func differs(persisted *int, want int) bool {
	return persisted != nil && *persisted != want
}
