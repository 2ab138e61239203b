// Package metadata holds the persisted state of a numbered directory and the
// adapters that load and save it.
//
// # Ordering Record
//
// A Record tracks three things across runs:
//   - Order: filenames in the order they were added. Non-numeric names placed
//     here by hand are numbered in that order before any unknown file.
//   - Originals: original filename -> current filename. Keys never change for
//     a given file; values follow every rename.
//   - Max: the highest number assigned by the last run.
//
// A reverse index (current -> original) is maintained next to Originals so a
// rename updates the right key without scanning values.
//
// # Persistence
//
// Records are encoded as YAML (fnum.metadata.yaml) and the max marker as a
// bare integer (fnum.max.txt). The Store interface has three implementations:
//   - DirStore: files next to the numbered content, written atomically.
//   - BucketStore: objects in an S3/MinIO bucket, used to publish state for
//     static sites.
//   - Mirror: reads from a primary store and writes to it plus replicas.
package metadata
