// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client. The catalog uses it to read remote snapshots
// that were dropped into a bucket and to publish rendered change reports.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it easier
// to mock storage interactions for unit testing (see core/storage/mocks).
//
// # Operations
//
//   - BucketExists / MakeBucket: back RequireBucket, checked before a snapshot
//     is read, and EnsureBucket, which creates the bucket before a report upload.
//   - PutObject: upload a rendered report.
//   - StatObject / GetObject: locate and stream a snapshot.
//   - ListObjects: list uploaded reports.
//
// # Usage
//
//	client, err := storage.NewClient(config)
//	err = storage.RequireBucket(ctx, client, "catalog")
package storage
