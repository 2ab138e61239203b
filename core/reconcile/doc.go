// Package reconcile renumbers the files of one directory into a dense
// sequence 1..N, selected by suffix, while keeping the order recorded in the
// directory's ordering record.
//
// # Phases
//
// A Reconciler run executes four phases in strict sequence, followed by a
// finalize step:
//
// 1. findOrdered: walks 1, 2, 3, ... while a file {n}{suffix} exists. Those
// files form the settled prefix and are never touched. Two suffixes claiming
// the same number abort the run with a ConflictError.
//
// 2. findMovable: partitions everything above the settled prefix. Numbered
// files named in the record's order go to the ordered set, other numbered
// files to the unordered set, non-numeric names become new files. Names the
// record remembers but which are gone from disk are purged from the record.
//
// 3. moveNumbered: renames the ordered set ascending, then the unordered set
// ascending, into the next free numbers. Gaps close because the counter never
// skips.
//
// 4. moveNew: appends new files after everything else, in collection order.
//
// Finalize stores max = counter - 1 and, when requested, persists the max
// marker and the record through a metadata.Store.
//
// A run is not safe against concurrent modification of the directory.
// Callers take a filelock first. A conflict aborts the run without rolling
// back renames that were already applied.
//
// # Usage
//
//	rec, err := reconcile.New(afero.NewOsFs(), store, log, reconcile.Options{
//	    Dir:           "/srv/galleries/holiday",
//	    Suffixes:      reconcile.ParseSuffixes("jpg,png"),
//	    WriteMetadata: true,
//	})
//	result, err := rec.Run(ctx)
//
// Plan runs the same phases against an in-memory copy of the directory's
// names and reports the renames without touching disk.
package reconcile
