package reconcile

import (
	"slices"
	"strings"

	"fnum/core/metadata"
)

// SidecarHook renames the companion artifact of a content file. It returns an
// error wrapping fs.ErrNotExist when the content file has no sidecar.
type SidecarHook interface {
	Rename(oldPath, newPath string) error
}

// Options controls one Reconciler.
type Options struct {
	// Dir is the directory to renumber.
	Dir string

	// Suffixes are the recognised file suffixes, see NormalizeSuffixes.
	Suffixes []string

	// WriteMax persists the max marker after a successful run.
	WriteMax bool

	// WriteMetadata persists the ordering record after a successful run.
	WriteMetadata bool

	// Sidecar renames companion artifacts alongside content files. Nil disables it.
	Sidecar SidecarHook

	// Reserved names are never numbered (record, max marker, lock file).
	// Empty reserves the default record and max marker names.
	Reserved []string
}

// ActionType represents the type of change applied to the directory.
type ActionType string

const (
	// ActionRename renames a file to its new number.
	ActionRename ActionType = "rename"
)

// Action represents one change applied (or planned) during a run.
type Action struct {
	// Type specifies the action performed.
	Type ActionType `json:"type"`

	// From is the filename before the action.
	From string `json:"from"`

	// To is the filename after the action.
	To string `json:"to"`

	// Original is the first-seen filename of the file.
	Original string `json:"original"`

	// Reason names the set the file was moved from: ordered, unordered or new.
	Reason string `json:"reason"`
}

// Summary provides aggregate counts for a run.
type Summary struct {
	// Settled counts files of the untouched prefix 1..Settled.
	Settled int `json:"settled"`

	// Ordered counts numbered files placed by the record's order.
	Ordered int `json:"ordered"`

	// Unordered counts numbered files unknown to the record's order.
	Unordered int `json:"unordered"`

	// New counts files without a number.
	New int `json:"new"`

	// Removed counts record entries whose file vanished.
	Removed int `json:"removed"`

	// Renamed counts physical renames.
	Renamed int `json:"renamed"`

	// Max is the highest assigned number.
	Max int `json:"max"`
}

// Result is the outcome of a run.
type Result struct {
	// Record is the ordering record after the run.
	Record *metadata.Record `json:"-"`

	// Actions lists the renames in the order they were applied.
	Actions []Action `json:"actions"`

	// Summary provides aggregate counts.
	Summary Summary `json:"summary"`

	// DryRun is set when nothing was written to disk.
	DryRun bool `json:"dry_run"`
}

// ParseSuffixes splits a comma separated suffix list and normalizes it.
func ParseSuffixes(list string) []string {
	return NormalizeSuffixes(strings.Split(list, ","))
}

// NormalizeSuffixes trims each suffix, adds the leading dot when missing,
// drops empty entries and duplicates, and orders the result longest first so
// multi-dot suffixes win over their tails.
func NormalizeSuffixes(suffixes []string) []string {
	seen := make(map[string]struct{}, len(suffixes))
	out := make([]string, 0, len(suffixes))
	for _, s := range suffixes {
		s = strings.TrimSpace(s)
		if s == "" || s == "." {
			continue
		}
		if !strings.HasPrefix(s, ".") {
			s = "." + s
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	slices.SortStableFunc(out, func(a, b string) int {
		return len(b) - len(a)
	})
	return out
}
