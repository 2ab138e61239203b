// Package gallery implements the gallery renumbering feature.
//
// A gallery is a directory under the configured numbering root whose files
// are kept in a dense 1..N sequence by the reconcile package. The feature
// serves the ordering record of each gallery and renumbers it on demand.
//
// # Components
//
//   - Service: resolves gallery names, locks directories, runs or plans the
//     reconciler, journals renames and publishes artifacts to the bucket.
//   - Handler: exposes the service over HTTP.
//   - Feature: registers the handler with the loader.
//
// Concurrent renumber requests for one gallery with identical options are
// coalesced with singleflight; a run from another process is refused
// through the directory lock.
//
// # HTTP Endpoints
//
//   - GET  /health
//   - GET  /galleries/:name           ordering record and max
//   - GET  /galleries/:name/max       max marker as text
//   - GET  /galleries/:name/check     pending renames and stale artifacts
//   - POST /galleries/:name/renumber  run (or ?dry_run=true plan) the renumbering
//   - GET  /galleries/:name/history   journaled renames
package gallery
