package reconcile

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"strconv"
	"strings"
	"testing"

	"fnum/core/metadata"
	"fnum/core/sidecar"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDir = "/gallery"

// newTestFs creates a directory whose files contain their own original names.
func newTestFs(t *testing.T, names ...string) afero.Fs {
	t.Helper()
	fsys := afero.NewMemMapFs()
	require.NoError(t, fsys.MkdirAll(testDir, 0o755))
	for _, name := range names {
		writeFile(t, fsys, name, strings.TrimSuffix(name, suffixOf(name)))
	}
	return fsys
}

func writeFile(t *testing.T, fsys afero.Fs, name, content string) {
	t.Helper()
	require.NoError(t, afero.WriteFile(fsys, testDir+"/"+name, []byte(content), 0o644))
}

func suffixOf(name string) string {
	if i := strings.Index(name, "."); i >= 0 {
		return name[i:]
	}
	return ""
}

// contents maps every file of the test directory, except reserved ones, to its content.
func contents(t *testing.T, fsys afero.Fs) map[string]string {
	t.Helper()
	entries, err := afero.ReadDir(fsys, testDir)
	require.NoError(t, err)

	out := map[string]string{}
	for _, e := range entries {
		if e.IsDir() || e.Name() == metadata.DefaultRecordName || e.Name() == metadata.DefaultMaxName {
			continue
		}
		data, err := afero.ReadFile(fsys, testDir+"/"+e.Name())
		require.NoError(t, err)
		out[e.Name()] = string(data)
	}
	return out
}

func newTestReconciler(t *testing.T, fsys afero.Fs, opts Options) (*Reconciler, *metadata.DirStore) {
	t.Helper()
	store := metadata.NewDirStore(fsys, testDir, metadata.Names{})
	opts.Dir = testDir
	if opts.Suffixes == nil {
		opts.Suffixes = []string{".txt"}
	}
	opts.Reserved = append(opts.Reserved, metadata.Names{}.Reserved()...)
	r, err := New(fsys, store, nil, opts)
	require.NoError(t, err)
	return r, store
}

func saveOrder(t *testing.T, store metadata.Store, order ...string) {
	t.Helper()
	rec := metadata.NewRecord()
	rec.Order = order
	require.NoError(t, store.SaveRecord(context.Background(), rec))
}

// assertDense checks that files 1..upTo exist once each for the given suffixes.
func assertDense(t *testing.T, fsys afero.Fs, upTo int, suffixes ...string) {
	t.Helper()
	got := contents(t, fsys)
	count := 0
	for n := 1; n <= upTo; n++ {
		hits := 0
		for _, s := range suffixes {
			if _, ok := got[fmt.Sprintf("%d%s", n, s)]; ok {
				hits++
			}
		}
		assert.Equal(t, 1, hits, "number %d", n)
		count += hits
	}
	assert.Len(t, got, count)
}

// TestRun_FreshDirectory tests that unnumbered files are numbered and tracked.
func TestRun_FreshDirectory(t *testing.T) {
	fsys := newTestFs(t, "a.txt", "b.txt", "c.txt", "d.txt", "e.txt")
	r, store := newTestReconciler(t, fsys, Options{WriteMax: true, WriteMetadata: true})

	result, err := r.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"1.txt": "a", "2.txt": "b", "3.txt": "c", "4.txt": "d", "5.txt": "e",
	}, contents(t, fsys))
	assert.Equal(t, 5, result.Summary.Max)
	assert.Equal(t, 5, result.Summary.New)
	assert.Equal(t, 5, result.Summary.Renamed)
	assert.Len(t, result.Actions, 5)
	assert.Equal(t, ActionRename, result.Actions[0].Type)
	assert.False(t, result.DryRun)

	rec, err := store.LoadRecord(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"1.txt", "2.txt", "3.txt", "4.txt", "5.txt"}, rec.Order)
	assert.Equal(t, "3.txt", rec.Originals["c.txt"])
	require.NotNil(t, rec.Max)
	assert.Equal(t, 5, *rec.Max)

	marker, err := store.LoadMax(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, marker.Value)
}

// TestRun_GapClosing tests that removing a middle file shifts the higher ones down.
func TestRun_GapClosing(t *testing.T) {
	fsys := newTestFs(t, "a.txt", "b.txt", "c.txt", "d.txt", "e.txt")
	r, store := newTestReconciler(t, fsys, Options{WriteMetadata: true})

	_, err := r.Run(context.Background())
	require.NoError(t, err)
	require.NoError(t, fsys.Remove(testDir+"/3.txt"))

	result, err := r.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"1.txt": "a", "2.txt": "b", "3.txt": "d", "4.txt": "e",
	}, contents(t, fsys))
	assert.Equal(t, 2, result.Summary.Settled)
	assert.Equal(t, 1, result.Summary.Removed)
	assert.Equal(t, 4, result.Summary.Max)

	rec, err := store.LoadRecord(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"1.txt", "2.txt", "3.txt", "4.txt"}, rec.Order)
	assert.Equal(t, map[string]string{
		"a.txt": "1.txt", "b.txt": "2.txt", "d.txt": "3.txt", "e.txt": "4.txt",
	}, rec.Originals)
}

// TestRun_ConflictingSuffixes tests that two suffixes on one number abort before any change.
func TestRun_ConflictingSuffixes(t *testing.T) {
	fsys := newTestFs(t, "1.txt", "1.text", "x.txt")
	r, _ := newTestReconciler(t, fsys, Options{Suffixes: []string{"txt", "text"}, WriteMetadata: true, WriteMax: true})

	before := contents(t, fsys)
	_, err := r.Run(context.Background())

	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, 1, conflict.Number)
	assert.ElementsMatch(t, []string{"1.txt", "1.text"}, conflict.Names)
	assert.Contains(t, err.Error(), "multiple suffixes claim the same number")

	assert.Equal(t, before, contents(t, fsys))
	ok, _ := afero.Exists(fsys, testDir+"/"+metadata.DefaultRecordName)
	assert.False(t, ok)
}

// TestRun_OrderPreservedVerbatim tests that a no-change run keeps the stored order as is.
func TestRun_OrderPreservedVerbatim(t *testing.T) {
	fsys := newTestFs(t, "1.txt", "2.txt", "3.txt", "4.txt", "5.txt")
	r, store := newTestReconciler(t, fsys, Options{WriteMetadata: true})
	saveOrder(t, store, "5.txt", "3.txt", "1.txt", "2.txt", "4.txt")

	result, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Empty(t, result.Actions)
	assert.Equal(t, 5, result.Summary.Settled)

	rec, err := store.LoadRecord(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"5.txt", "3.txt", "1.txt", "2.txt", "4.txt"}, rec.Order)
}

// TestRun_Idempotent tests that a second run without changes renames nothing.
func TestRun_Idempotent(t *testing.T) {
	fsys := newTestFs(t, "b.txt", "4.txt", "9.txt", "z.txt")
	r, _ := newTestReconciler(t, fsys, Options{WriteMetadata: true, WriteMax: true})

	_, err := r.Run(context.Background())
	require.NoError(t, err)
	firstFiles := contents(t, fsys)
	firstRecord, err := afero.ReadFile(fsys, testDir+"/"+metadata.DefaultRecordName)
	require.NoError(t, err)

	result, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Empty(t, result.Actions)
	assert.Equal(t, firstFiles, contents(t, fsys))

	secondRecord, err := afero.ReadFile(fsys, testDir+"/"+metadata.DefaultRecordName)
	require.NoError(t, err)
	assert.Equal(t, string(firstRecord), string(secondRecord))
}

// TestRun_NewFilesAppend tests that untracked files are numbered above the previous max.
func TestRun_NewFilesAppend(t *testing.T) {
	fsys := newTestFs(t, "a.txt", "b.txt", "c.txt")
	r, _ := newTestReconciler(t, fsys, Options{WriteMetadata: true})

	first, err := r.Run(context.Background())
	require.NoError(t, err)
	prevMax := first.Summary.Max

	writeFile(t, fsys, "y.txt", "y")
	writeFile(t, fsys, "x.txt", "x")

	result, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, result.Summary.New)
	require.Len(t, result.Actions, 2)

	for _, a := range result.Actions {
		num, err := strconv.Atoi(strings.TrimSuffix(a.To, ".txt"))
		require.NoError(t, err)
		assert.Greater(t, num, prevMax)
	}

	got := contents(t, fsys)
	assert.ElementsMatch(t, []string{"x", "y"}, []string{got["4.txt"], got["5.txt"]})
	assertDense(t, fsys, 5, ".txt")
}

// TestRun_RecordOrdersNewFiles tests that non-numeric names in the record are numbered first, in record order.
func TestRun_RecordOrdersNewFiles(t *testing.T) {
	fsys := newTestFs(t, "1.txt", "a.txt", "m.txt", "z.txt")
	r, store := newTestReconciler(t, fsys, Options{})
	saveOrder(t, store, "1.txt", "z.txt", "a.txt")

	result, err := r.Run(context.Background())
	require.NoError(t, err)

	got := contents(t, fsys)
	assert.Equal(t, "z", got["2.txt"])
	assert.Equal(t, "a", got["3.txt"])
	assert.Equal(t, "m", got["4.txt"])
	assert.Equal(t, []string{"1.txt", "2.txt", "3.txt", "4.txt"}, result.Record.Order)
}

// TestRun_OrderedBeforeUnordered tests that record-known numbers are placed before disk-only numbers.
func TestRun_OrderedBeforeUnordered(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, fsys.MkdirAll(testDir, 0o755))
	writeFile(t, fsys, "3.txt", "three")
	writeFile(t, fsys, "5.txt", "five")
	writeFile(t, fsys, "7.txt", "seven")

	r, store := newTestReconciler(t, fsys, Options{})
	saveOrder(t, store, "7.txt", "5.txt")

	result, err := r.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"1.txt": "five", "2.txt": "seven", "3.txt": "three"}, contents(t, fsys))
	assert.Equal(t, 2, result.Summary.Ordered)
	assert.Equal(t, 1, result.Summary.Unordered)
	assert.Equal(t, 2, result.Summary.Renamed)
	assert.Equal(t, []string{"2.txt", "1.txt", "3.txt"}, result.Record.Order)
	assert.Equal(t, map[string]string{"5.txt": "1.txt", "7.txt": "2.txt", "3.txt": "3.txt"}, result.Record.Originals)
}

// TestRun_DestinationConflict tests that an occupied destination aborts the run mid-way.
func TestRun_DestinationConflict(t *testing.T) {
	fsys := newTestFs(t, "2.txt", "4.txt", "5.txt")
	r, store := newTestReconciler(t, fsys, Options{WriteMetadata: true})
	saveOrder(t, store, "4.txt", "5.txt")

	_, err := r.Run(context.Background())

	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, 2, conflict.Number)
	assert.Equal(t, []string{"5.txt", "2.txt"}, conflict.Names)
	assert.Equal(t, "rename destination already exists", conflict.Reason)

	// renames applied before the conflict stay applied
	got := contents(t, fsys)
	assert.Equal(t, "4", got["1.txt"])
	assert.NotContains(t, got, "4.txt")

	rec, err := store.LoadRecord(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"4.txt", "5.txt"}, rec.Order)
}

// TestRun_DuplicateNumberOnDisk tests that two unsettled files with one number conflict.
func TestRun_DuplicateNumberOnDisk(t *testing.T) {
	tests := []struct {
		name  string
		order []string
	}{
		{"Unordered", nil},
		{"OrderedAndUnordered", []string{"2.txt"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := newTestFs(t, "2.txt", "2.text")
			r, store := newTestReconciler(t, fsys, Options{Suffixes: []string{".txt", ".text"}})
			if tt.order != nil {
				saveOrder(t, store, tt.order...)
			}

			_, err := r.Run(context.Background())
			var conflict *ConflictError
			require.ErrorAs(t, err, &conflict)
			assert.Equal(t, 2, conflict.Number)
			assert.ElementsMatch(t, []string{"2.txt", "2.text"}, conflict.Names)
		})
	}
}

// TestRun_IgnoredNames tests that reserved, hidden and non-canonical names are handled.
func TestRun_IgnoredNames(t *testing.T) {
	fsys := newTestFs(t, ".hidden.txt", "notes.md", "007.txt", "0.txt", "photo.jpg")
	writeFile(t, fsys, metadata.DefaultMaxName, "9")

	r, _ := newTestReconciler(t, fsys, Options{Suffixes: []string{".txt", ".md"}})
	result, err := r.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		".hidden.txt": "",
		"1.txt":       "0",
		"2.txt":       "007",
		"3.md":        "notes",
		"photo.jpg":   "photo",
	}, contents(t, fsys))
	assert.Equal(t, 3, result.Summary.New)

	data, err := afero.ReadFile(fsys, testDir+"/"+metadata.DefaultMaxName)
	require.NoError(t, err)
	assert.Equal(t, "9", string(data))
}

// TestRun_DirectoryAtDestination tests that a directory blocking a destination is a conflict.
func TestRun_DirectoryAtDestination(t *testing.T) {
	fsys := newTestFs(t, "a.txt")
	require.NoError(t, fsys.MkdirAll(testDir+"/1.txt", 0o755))
	r, _ := newTestReconciler(t, fsys, Options{})

	_, err := r.Run(context.Background())
	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, []string{"a.txt", "1.txt"}, conflict.Names)
}

// TestRun_RepairsUntrackedSettled tests that settled files missing from a loaded record are appended.
func TestRun_RepairsUntrackedSettled(t *testing.T) {
	fsys := newTestFs(t, "1.txt", "2.txt")
	r, store := newTestReconciler(t, fsys, Options{})
	saveOrder(t, store, "1.txt")

	result, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Empty(t, result.Actions)
	assert.Equal(t, []string{"1.txt", "2.txt"}, result.Record.Order)
	assert.Equal(t, "2.txt", result.Record.Originals["2.txt"])
	assert.NotContains(t, result.Record.Originals, "1.txt")
}

// TestRun_MultiDotSuffix tests that the longest matching suffix is kept on rename.
func TestRun_MultiDotSuffix(t *testing.T) {
	fsys := newTestFs(t, "a.tar.gz", "b.gz")
	r, _ := newTestReconciler(t, fsys, Options{Suffixes: []string{"gz", "tar.gz"}})

	result, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"1.tar.gz": "a", "2.gz": "b"}, contents(t, fsys))
	assert.Equal(t, 2, result.Summary.Max)
}

// TestRun_Sidecar tests that companion files follow their content file.
func TestRun_Sidecar(t *testing.T) {
	fsys := newTestFs(t, "a.jpg", "b.jpg", "a.yaml")
	hook := sidecar.NewRenamer(fsys, sidecar.SuffixLocator(".yaml", ".jpg"), nil, ".jpg")
	r, _ := newTestReconciler(t, fsys, Options{Suffixes: []string{".jpg"}, Sidecar: hook})

	_, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"1.jpg": "a", "2.jpg": "b", "1.yaml": "a"}, contents(t, fsys))
}

type failingHook struct{ err error }

func (h failingHook) Rename(oldPath, newPath string) error { return h.err }

// TestRun_SidecarErrors tests that only missing sidecars are tolerated.
func TestRun_SidecarErrors(t *testing.T) {
	t.Run("Missing", func(t *testing.T) {
		fsys := newTestFs(t, "a.txt")
		r, _ := newTestReconciler(t, fsys, Options{Sidecar: failingHook{err: fmt.Errorf("gone: %w", fs.ErrNotExist)}})

		_, err := r.Run(context.Background())
		assert.NoError(t, err)
	})

	t.Run("Failure", func(t *testing.T) {
		fsys := newTestFs(t, "a.txt")
		r, _ := newTestReconciler(t, fsys, Options{Sidecar: failingHook{err: errors.New("read-only")}})

		_, err := r.Run(context.Background())
		assert.ErrorContains(t, err, "failed to rename sidecar of a.txt")
	})
}

// TestRun_StaleSidecar tests that a sidecar left behind by a removed file is
// replaced by the sidecar of the file taking its number.
func TestRun_StaleSidecar(t *testing.T) {
	fsys := newTestFs(t, "1.txt", "3.txt")
	writeFile(t, fsys, "1.yaml", "meta-a")
	writeFile(t, fsys, "2.yaml", "meta-b-stale")
	writeFile(t, fsys, "3.yaml", "meta-c")
	hook := sidecar.NewRenamer(fsys, sidecar.SuffixLocator(".yaml", ".txt"), nil, ".txt")
	r, store := newTestReconciler(t, fsys, Options{Sidecar: hook})
	saveOrder(t, store, "1.txt", "2.txt", "3.txt")

	result, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Summary.Removed)
	assert.Equal(t, map[string]string{
		"1.txt": "1", "2.txt": "3",
		"1.yaml": "meta-a", "2.yaml": "meta-c",
	}, contents(t, fsys))
}

// TestRun_OwnedSidecar tests that a sidecar owned by a live file aborts the run.
func TestRun_OwnedSidecar(t *testing.T) {
	fsys := newTestFs(t, "a.txt")
	writeFile(t, fsys, "a.yaml", "meta-a")
	hook := sidecar.NewRenamer(fsys, sidecar.SuffixLocator(".yaml", ".txt", ".md"), nil, ".txt", ".md")
	r, _ := newTestReconciler(t, fsys, Options{Sidecar: hook})
	writeFile(t, fsys, "1.md", "notes")
	writeFile(t, fsys, "1.yaml", "meta-notes")

	_, err := r.Run(context.Background())
	assert.ErrorIs(t, err, sidecar.ErrOwned)

	data, err := afero.ReadFile(fsys, testDir+"/1.yaml")
	require.NoError(t, err)
	assert.Equal(t, "meta-notes", string(data))
}

// TestRun_HugeNumericStem tests stems at and beyond the int range.
func TestRun_HugeNumericStem(t *testing.T) {
	huge := strconv.Itoa(math.MaxInt) + ".txt"
	names := []string{huge, "a.txt", "99999999999999999999.txt"}

	t.Run("Run", func(t *testing.T) {
		fsys := newTestFs(t, names...)
		r, _ := newTestReconciler(t, fsys, Options{})

		result, err := r.Run(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, result.Summary.Unordered)
		assert.Equal(t, 2, result.Summary.New)
		assert.Equal(t, 3, result.Summary.Max)
		assertDense(t, fsys, 3, ".txt")

		got := contents(t, fsys)
		assert.Equal(t, strconv.Itoa(math.MaxInt), got["1.txt"])
		assert.ElementsMatch(t, []string{"a", "99999999999999999999"}, []string{got["2.txt"], got["3.txt"]})
	})

	t.Run("Plan", func(t *testing.T) {
		fsys := newTestFs(t, names...)
		r, _ := newTestReconciler(t, fsys, Options{})

		result, err := r.Plan(context.Background())
		require.NoError(t, err)
		require.Len(t, result.Actions, 3)
		assert.Equal(t, huge, result.Actions[0].From)
		assert.Equal(t, "1.txt", result.Actions[0].To)
	})
}

// TestRun_Density tests the dense 1..max layout over several starting layouts.
func TestRun_Density(t *testing.T) {
	layouts := [][]string{
		{},
		{"1.txt"},
		{"2.txt", "9.txt", "c.txt"},
		{"1.txt", "2.txt", "10.txt", "11.txt", "a.txt"},
		{"5.txt", "x.txt", "y.txt", "z.txt", "100.txt"},
	}

	for i, names := range layouts {
		t.Run(fmt.Sprintf("Layout%d", i), func(t *testing.T) {
			fsys := newTestFs(t, names...)
			r, _ := newTestReconciler(t, fsys, Options{})

			result, err := r.Run(context.Background())
			require.NoError(t, err)
			assert.Equal(t, len(names), result.Summary.Max)
			assertDense(t, fsys, len(names), ".txt")

			var want, got []string
			for _, n := range names {
				want = append(want, strings.TrimSuffix(n, ".txt"))
			}
			for _, c := range contents(t, fsys) {
				got = append(got, c)
			}
			assert.ElementsMatch(t, want, got)
		})
	}
}

// TestPlan tests that a dry run reports renames without touching disk.
func TestPlan(t *testing.T) {
	fsys := newTestFs(t, "a.txt", "b.txt", "4.txt")
	r, _ := newTestReconciler(t, fsys, Options{WriteMetadata: true, WriteMax: true})

	before := contents(t, fsys)
	result, err := r.Plan(context.Background())
	require.NoError(t, err)

	assert.True(t, result.DryRun)
	assert.Equal(t, []Action{
		{Type: ActionRename, From: "4.txt", To: "1.txt", Original: "4.txt", Reason: "unordered"},
		{Type: ActionRename, From: "a.txt", To: "2.txt", Original: "a.txt", Reason: "new"},
		{Type: ActionRename, From: "b.txt", To: "3.txt", Original: "b.txt", Reason: "new"},
	}, result.Actions)

	assert.Equal(t, before, contents(t, fsys))
	ok, _ := afero.Exists(fsys, testDir+"/"+metadata.DefaultRecordName)
	assert.False(t, ok)
}

// TestPlan_MatchesRun tests that a dry run reports what Run then does.
func TestPlan_MatchesRun(t *testing.T) {
	tests := []struct {
		name  string
		files []string
		dirs  []string
	}{
		{"DirectoryAtDestination", []string{"a.txt"}, []string{"1.txt"}},
		{"DirectoryAmongFiles", []string{"2.txt", "b.txt"}, []string{"sub", "3.txt.d"}},
		{"DirectoryWithRecognisedName", []string{"1.txt", "c.txt"}, []string{"2.txt"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := newTestFs(t, tt.files...)
			for _, d := range tt.dirs {
				require.NoError(t, fsys.MkdirAll(testDir+"/"+d, 0o755))
			}
			r, _ := newTestReconciler(t, fsys, Options{})

			planned, planErr := r.Plan(context.Background())
			applied, runErr := r.Run(context.Background())

			if runErr != nil {
				require.Error(t, planErr)
				assert.Equal(t, runErr.Error(), planErr.Error())
				return
			}
			require.NoError(t, planErr)
			assert.Equal(t, applied.Actions, planned.Actions)
			assert.Equal(t, applied.Summary, planned.Summary)
		})
	}
}

type brokenStore struct {
	metadata.Store
	loadErr error
	saveErr error
}

func (s brokenStore) LoadRecord(ctx context.Context) (*metadata.Record, error) {
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	return nil, metadata.ErrNotFound
}

func (s brokenStore) SaveRecord(ctx context.Context, r *metadata.Record) error {
	return s.saveErr
}

// TestRun_StoreErrors tests that persistence failures are reported.
func TestRun_StoreErrors(t *testing.T) {
	t.Run("Load", func(t *testing.T) {
		fsys := newTestFs(t, "a.txt")
		r, err := New(fsys, brokenStore{loadErr: errors.New("corrupt")}, nil, Options{Dir: testDir, Suffixes: []string{".txt"}})
		require.NoError(t, err)

		_, err = r.Run(context.Background())
		assert.ErrorContains(t, err, "failed to load ordering record: corrupt")
		assert.Contains(t, contents(t, fsys), "a.txt")
	})

	t.Run("Save", func(t *testing.T) {
		fsys := newTestFs(t, "a.txt")
		r, err := New(fsys, brokenStore{saveErr: errors.New("disk full")}, nil, Options{Dir: testDir, Suffixes: []string{".txt"}, WriteMetadata: true})
		require.NoError(t, err)

		_, err = r.Run(context.Background())
		assert.ErrorContains(t, err, "failed to write ordering record: disk full")
	})
}

func TestNew(t *testing.T) {
	store := metadata.NewDirStore(afero.NewMemMapFs(), testDir, metadata.Names{})

	_, err := New(afero.NewMemMapFs(), store, nil, Options{Suffixes: []string{".txt"}})
	assert.ErrorContains(t, err, "directory is required")

	_, err = New(afero.NewMemMapFs(), store, nil, Options{Dir: testDir, Suffixes: []string{" ", "."}})
	assert.ErrorContains(t, err, "at least one suffix is required")

	r, err := New(afero.NewMemMapFs(), store, nil, Options{Dir: testDir, Suffixes: []string{"txt"}})
	require.NoError(t, err)
	_, err = r.Run(context.Background())
	assert.ErrorContains(t, err, "failed to open directory")
}

// TestNew_DefaultReserved tests that the record and max marker are never
// numbered when no reserved names are given.
func TestNew_DefaultReserved(t *testing.T) {
	fsys := newTestFs(t, "a.yaml")
	store := metadata.NewDirStore(fsys, testDir, metadata.Names{})
	saveOrder(t, store, "a.yaml")
	require.NoError(t, store.SaveMax(context.Background(), metadata.Max{Value: 0}))

	r, err := New(fsys, store, nil, Options{Dir: testDir, Suffixes: []string{".yaml"}})
	require.NoError(t, err)

	result, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Summary.Max)
	assert.Equal(t, "a", contents(t, fsys)["1.yaml"])

	for _, name := range metadata.Names{}.Reserved() {
		ok, _ := afero.Exists(fsys, testDir+"/"+name)
		assert.True(t, ok, name)
	}
}

func TestNormalizeSuffixes(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{"AddsDot", []string{"txt", ".jpg"}, []string{".txt", ".jpg"}},
		{"Dedupes", []string{"txt", ".txt", " txt "}, []string{".txt"}},
		{"LongestFirst", []string{"gz", "tar.gz", "md"}, []string{".tar.gz", ".gz", ".md"}},
		{"DropsEmpty", []string{"", " ", "."}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeSuffixes(tt.input))
		})
	}

	assert.Equal(t, []string{".jpeg", ".jpg", ".png"}, ParseSuffixes("jpg,jpeg, png"))
}

func TestConflictError(t *testing.T) {
	err := error(&ConflictError{Number: 4, Names: []string{"4.txt", "4.text"}, Reason: "multiple suffixes claim the same number"})
	assert.Equal(t, "conflict on number 4 (4.txt, 4.text): multiple suffixes claim the same number", err.Error())
}
