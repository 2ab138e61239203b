package reconcile

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strconv"

	"fnum/core/metadata"
	"fnum/core/rangeset"
	"fnum/core/utils"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// run holds the state of one reconciliation.
type run struct {
	*Reconciler
	record     *metadata.Record
	regenerate bool

	counter int
	settled int

	ordered        rangeset.Set
	unordered      rangeset.Set
	orderedFiles   map[int]string
	unorderedFiles map[int]string
	newFiles       []string
	queued         map[string]struct{}
	removedFiles   []string

	actions []Action
}

func newRun(r *Reconciler, record *metadata.Record, regenerate bool) *run {
	return &run{
		Reconciler:     r,
		record:         record,
		regenerate:     regenerate,
		counter:        1,
		orderedFiles:   map[int]string{},
		unorderedFiles: map[int]string{},
		queued:         map[string]struct{}{},
		actions:        []Action{},
	}
}

// findOrdered advances the counter over the settled prefix 1, 2, 3, ...
func (rn *run) findOrdered() error {
	for ; ; rn.counter++ {
		var found []string
		for _, suffix := range rn.suffixes {
			name := strconv.Itoa(rn.counter) + suffix
			if rn.isFile(name) {
				found = append(found, name)
			}
		}

		switch len(found) {
		case 0:
			rn.settled = rn.counter
			rn.logger.Debug("Settled prefix found", zap.String("phase", "find_ordered"), zap.Int("settled", rn.settled-1))
			return nil
		case 1:
			name := found[0]
			if rn.regenerate {
				rn.record.Track(name)
			} else if rn.record.IndexOf(name) < 0 {
				rn.logger.Warn("Settled file missing from ordering record, appending", zap.String("name", name))
				rn.record.Track(name)
			}
		default:
			return &ConflictError{
				Number: rn.counter,
				Names:  found,
				Reason: "multiple suffixes claim the same number",
			}
		}
	}
}

// findMovable partitions everything above the settled prefix into the
// ordered, unordered and new sets and purges vanished names from the record.
func (rn *run) findMovable() error {
	for _, name := range rn.record.Order {
		stem, _, ok := rn.split(name)
		if !ok || rn.isReserved(name) {
			continue
		}
		if !rn.isFile(name) {
			rn.removedFiles = append(rn.removedFiles, name)
			continue
		}

		n, numeric := utils.ParseNumber(stem)
		if !numeric {
			rn.queue(name)
			continue
		}
		if n < rn.settled {
			continue
		}
		if err := rn.claim(rn.orderedFiles, &rn.ordered, n, name); err != nil {
			return err
		}
	}

	entries, err := afero.ReadDir(rn.fs, rn.opts.Dir)
	if err != nil {
		return fmt.Errorf("failed to list directory: %w", err)
	}
	for _, entry := range entries {
		name := entry.Name()
		if !entry.Mode().IsRegular() || rn.isReserved(name) {
			continue
		}
		stem, _, ok := rn.split(name)
		if !ok {
			continue
		}

		n, numeric := utils.ParseNumber(stem)
		if !numeric {
			rn.queue(name)
			continue
		}
		if n < rn.settled {
			continue
		}
		if owner, claimed := rn.orderedFiles[n]; claimed {
			if owner == name {
				continue
			}
			return &ConflictError{Number: n, Names: []string{owner, name}, Reason: "number claimed by more than one file"}
		}
		if err := rn.claim(rn.unorderedFiles, &rn.unordered, n, name); err != nil {
			return err
		}
	}

	for _, name := range rn.removedFiles {
		rn.logger.Info("Dropping vanished file from ordering record", zap.String("name", name))
		rn.record.Remove(name)
	}

	rn.logger.Debug("Movable files found",
		zap.String("phase", "find_movable"),
		zap.Stringer("ordered", &rn.ordered),
		zap.Stringer("unordered", &rn.unordered),
		zap.Int("new", len(rn.newFiles)),
		zap.Int("removed", len(rn.removedFiles)),
	)
	return nil
}

// claim records name as the owner of n in files and set.
func (rn *run) claim(files map[int]string, set *rangeset.Set, n int, name string) error {
	if owner, claimed := files[n]; claimed {
		if owner == name {
			return nil
		}
		return &ConflictError{Number: n, Names: []string{owner, name}, Reason: "number claimed by more than one file"}
	}
	files[n] = name
	set.Add(n)
	return nil
}

func (rn *run) queue(name string) {
	if _, ok := rn.queued[name]; ok {
		return
	}
	rn.queued[name] = struct{}{}
	rn.newFiles = append(rn.newFiles, name)
}

// moveNumbered renames the ordered files ascending, then the unordered ones.
func (rn *run) moveNumbered() error {
	for n := range rn.ordered.All() {
		if err := rn.moveFile(rn.orderedFiles[n], "ordered"); err != nil {
			return err
		}
	}
	for n := range rn.unordered.All() {
		if err := rn.moveFile(rn.unorderedFiles[n], "unordered"); err != nil {
			return err
		}
	}
	return nil
}

// moveNew appends the new files in collection order.
func (rn *run) moveNew() error {
	for _, name := range rn.newFiles {
		if err := rn.moveFile(name, "new"); err != nil {
			return err
		}
	}
	return nil
}

// moveFile renames name to the current counter, keeping its suffix.
func (rn *run) moveFile(name, reason string) error {
	_, suffix, _ := rn.split(name)
	dest := strconv.Itoa(rn.counter) + suffix

	if dest == name {
		rn.record.Track(name)
		rn.counter++
		return nil
	}
	if rn.exists(dest) {
		return &ConflictError{Number: rn.counter, Names: []string{name, dest}, Reason: "rename destination already exists"}
	}

	from, to := rn.path(name), rn.path(dest)
	if err := rn.fs.Rename(from, to); err != nil {
		return fmt.Errorf("failed to rename %s to %s: %w", name, dest, err)
	}
	if rn.opts.Sidecar != nil {
		if err := rn.opts.Sidecar.Rename(from, to); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("failed to rename sidecar of %s: %w", name, err)
			}
			rn.logger.Debug("No sidecar to rename", zap.String("name", name))
		}
	}

	original := name
	if o, ok := rn.record.OriginalOf(name); ok {
		original = o
	}
	rn.record.Rename(name, dest)

	rn.actions = append(rn.actions, Action{
		Type:     ActionRename,
		From:     name,
		To:       dest,
		Original: original,
		Reason:   reason,
	})
	rn.logger.Debug("Renamed file",
		zap.String("phase", reason),
		zap.String("from", name),
		zap.String("to", dest),
		zap.Int("number", rn.counter),
	)
	rn.counter++
	return nil
}

// finalize stores the max and persists the requested artifacts.
func (rn *run) finalize(ctx context.Context) error {
	rn.record.SetMax(rn.counter - 1)

	if rn.opts.WriteMax {
		if err := rn.store.SaveMax(ctx, rn.record.MaxMarker()); err != nil {
			return fmt.Errorf("failed to write max marker: %w", err)
		}
	}
	if rn.opts.WriteMetadata {
		if err := rn.store.SaveRecord(ctx, rn.record); err != nil {
			return fmt.Errorf("failed to write ordering record: %w", err)
		}
	}
	return nil
}

func (rn *run) result() *Result {
	return &Result{
		Record:  rn.record,
		Actions: rn.actions,
		Summary: Summary{
			Settled:   rn.settled - 1,
			Ordered:   len(rn.orderedFiles),
			Unordered: len(rn.unorderedFiles),
			New:       len(rn.newFiles),
			Removed:   len(rn.removedFiles),
			Renamed:   len(rn.actions),
			Max:       rn.counter - 1,
		},
	}
}
