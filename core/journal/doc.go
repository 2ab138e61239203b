// Package journal persists every rename applied by a run, so an operator can
// trace a numbered file back to its original name long after the ordering
// record has moved on.
//
// Entries are stored through GORM in the fnum_renames table, on sqlite by
// default or MySQL when several hosts share one journal. Each run gets a
// UUID; History returns the latest entries of a directory, newest first.
package journal
