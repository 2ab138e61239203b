// Package storage wraps the MinIO client for the bucket that numbered galleries
// are published to.
//
// Static sites read the ordering record and max marker of a gallery from
// <bucket>/<prefix>/<gallery>/ instead of the local directory. The Client
// interface only exposes what publishing needs, which keeps the mock in
// core/storage/mocks small.
//
// # Usage
//
//	client, err := storage.NewClient(cfg)
//	err = storage.EnsureBucket(ctx, client, cfg.Bucket, cfg.Region)
package storage
