package metadata

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"

	"fnum/core/storage"

	"github.com/minio/minio-go/v7"
)

// BucketStore keeps the record and max marker as objects under a prefix of an
// S3 compatible bucket.
type BucketStore struct {
	client storage.Client
	bucket string
	prefix string
	names  Names
}

// NewBucketStore creates a store writing to bucket under prefix.
func NewBucketStore(client storage.Client, bucket, prefix string, names Names) *BucketStore {
	return &BucketStore{client: client, bucket: bucket, prefix: prefix, names: names.withDefaults()}
}

// RecordKey returns the object key of the record.
func (s *BucketStore) RecordKey() string {
	return path.Join(s.prefix, s.names.Record)
}

// MaxKey returns the object key of the max marker.
func (s *BucketStore) MaxKey() string {
	return path.Join(s.prefix, s.names.Max)
}

// LoadRecord reads and decodes the record object.
func (s *BucketStore) LoadRecord(ctx context.Context) (*Record, error) {
	data, err := s.get(ctx, s.RecordKey())
	if err != nil {
		return nil, err
	}
	r, err := Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s/%s: %w", s.bucket, s.RecordKey(), err)
	}
	return r, nil
}

// SaveRecord encodes r and replaces the record object.
func (s *BucketStore) SaveRecord(ctx context.Context, r *Record) error {
	data, err := Marshal(r)
	if err != nil {
		return err
	}
	return s.put(ctx, s.RecordKey(), data, "application/yaml")
}

// LoadMax reads the max marker object.
func (s *BucketStore) LoadMax(ctx context.Context) (Max, error) {
	data, err := s.get(ctx, s.MaxKey())
	if err != nil {
		return Max{}, err
	}
	return ParseMax(string(data))
}

// SaveMax replaces the max marker object.
func (s *BucketStore) SaveMax(ctx context.Context, m Max) error {
	return s.put(ctx, s.MaxKey(), []byte(m.String()+"\n"), "text/plain")
}

func (s *BucketStore) get(ctx context.Context, key string) ([]byte, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, s.wrap(key, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, s.wrap(key, err)
	}
	return data, nil
}

func (s *BucketStore) put(ctx context.Context, key string, data []byte, contentType string) error {
	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s/%s: %w", s.bucket, key, err)
	}
	return nil
}

func (s *BucketStore) wrap(key string, err error) error {
	if minio.ToErrorResponse(err).Code == "NoSuchKey" {
		return fmt.Errorf("%w: %s/%s", ErrNotFound, s.bucket, key)
	}
	return fmt.Errorf("failed to download %s/%s: %w", s.bucket, key, err)
}
