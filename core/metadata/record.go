package metadata

import (
	"slices"
	"sort"
)

// Record is the logical ordering record of one directory.
type Record struct {
	// Order lists filenames in the order they were added.
	Order []string
	// Originals maps the first-seen filename to the current filename.
	Originals map[string]string
	// Max is the highest number assigned by the last run, nil if never computed.
	Max *int
	// Extra keeps unknown top-level keys of a loaded record so they survive a save.
	Extra map[string]any

	current    map[string]string
	duplicates []string
}

// NewRecord returns an empty record, used when no persisted record exists.
func NewRecord() *Record {
	return &Record{
		Order:     []string{},
		Originals: map[string]string{},
		Extra:     map[string]any{},
		current:   map[string]string{},
	}
}

// reindex rebuilds the current -> original index. When several originals
// claim the same current name, the lexically first key wins and the name is
// reported by Duplicates.
func (r *Record) reindex() {
	r.current = make(map[string]string, len(r.Originals))
	r.duplicates = nil

	keys := make([]string, 0, len(r.Originals))
	for k := range r.Originals {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		cur := r.Originals[k]
		if _, taken := r.current[cur]; taken {
			r.duplicates = append(r.duplicates, cur)
			continue
		}
		r.current[cur] = k
	}
}

// Duplicates returns current names claimed by more than one original when the
// record was loaded.
func (r *Record) Duplicates() []string {
	return slices.Clone(r.duplicates)
}

// Contains reports whether name appears in Order, as an original or as a
// current name.
func (r *Record) Contains(name string) bool {
	if r.IndexOf(name) >= 0 {
		return true
	}
	if _, ok := r.Originals[name]; ok {
		return true
	}
	_, ok := r.current[name]
	return ok
}

// IndexOf returns the position of name in Order, or -1.
func (r *Record) IndexOf(name string) int {
	return slices.Index(r.Order, name)
}

// OriginalOf returns the original filename of a current filename.
func (r *Record) OriginalOf(current string) (string, bool) {
	orig, ok := r.current[current]
	return orig, ok
}

// Track makes sure name is in Order and has an originals entry, using an
// identity mapping when the file has no known original.
func (r *Record) Track(name string) {
	if r.IndexOf(name) < 0 {
		r.Order = append(r.Order, name)
	}
	if _, ok := r.current[name]; ok {
		return
	}
	r.setOriginal(name, name)
}

// Rename records that from is now called to. The Order entry is replaced in
// place (or appended when absent) and the originals value is updated through
// the reverse index. A file without an original becomes its own original.
func (r *Record) Rename(from, to string) {
	if i := r.IndexOf(from); i >= 0 {
		r.Order[i] = to
	} else {
		r.Order = append(r.Order, to)
	}

	if orig, ok := r.current[from]; ok {
		delete(r.current, from)
		r.setOriginal(orig, to)
		return
	}
	r.setOriginal(from, to)
}

// setOriginal maps orig to cur, keeping the reverse index consistent. Any
// other original still pointing at cur refers to a file that no longer exists
// under that name and is dropped.
func (r *Record) setOriginal(orig, cur string) {
	if prev, ok := r.Originals[orig]; ok && r.current[prev] == orig {
		delete(r.current, prev)
	}
	if stale, ok := r.current[cur]; ok && stale != orig {
		delete(r.Originals, stale)
	}
	r.Originals[orig] = cur
	r.current[cur] = orig
}

// Remove deletes name from Order and drops the originals entry whose current
// name it is. Absent names are ignored.
func (r *Record) Remove(name string) {
	r.Order = slices.DeleteFunc(r.Order, func(s string) bool { return s == name })
	if orig, ok := r.current[name]; ok {
		delete(r.Originals, orig)
		delete(r.current, name)
	}
}

// SetMax stores the highest assigned number.
func (r *Record) SetMax(n int) {
	r.Max = &n
}

// MaxMarker returns the max marker for this record. It is zero when Max has
// never been computed.
func (r *Record) MaxMarker() Max {
	if r.Max == nil {
		return Max{}
	}
	return Max{Value: *r.Max}
}

// Clone returns a deep copy of the record.
func (r *Record) Clone() *Record {
	c := &Record{
		Order:     slices.Clone(r.Order),
		Originals: make(map[string]string, len(r.Originals)),
		Extra:     make(map[string]any, len(r.Extra)),
	}
	if c.Order == nil {
		c.Order = []string{}
	}
	for k, v := range r.Originals {
		c.Originals[k] = v
	}
	for k, v := range r.Extra {
		c.Extra[k] = v
	}
	if r.Max != nil {
		c.SetMax(*r.Max)
	}
	c.reindex()
	return c
}
