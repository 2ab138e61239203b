// Package sidecar keeps companion metadata files in step with the content
// files they describe.
//
// A sidecar shares the stem of its content file and carries its own suffix:
// photo.jpg is described by photo.yaml. When the reconciler renames
// photo.jpg to 7.jpg, the Renamer moves photo.yaml to 7.yaml. A content file
// without a sidecar is reported with fs.ErrNotExist, which the reconciler
// ignores.
//
// A sidecar already sitting at the destination is stale when no other
// content file shares its stem; it is replaced. When a live content file owns
// it, Rename fails with ErrOwned.
package sidecar
