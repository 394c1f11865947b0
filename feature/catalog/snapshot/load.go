package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"asset-catalog/core/storage"

	"github.com/minio/minio-go/v7"
)

// ErrSnapshotNotFound is returned when the snapshot file or object does not exist.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// LoadFile reads a snapshot from the local filesystem.
func LoadFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrSnapshotNotFound, path)
		}
		return nil, fmt.Errorf("failed to open snapshot: %w", err)
	}
	defer f.Close()

	return Decode(f)
}

// LoadObject reads a snapshot from object storage.
func LoadObject(ctx context.Context, client storage.Client, bucket, object string) ([]Record, error) {
	if err := storage.RequireBucket(ctx, client, bucket); err != nil {
		return nil, err
	}
	if _, err := client.StatObject(ctx, bucket, object, minio.StatObjectOptions{}); err != nil {
		if storage.IsNotFound(err) {
			return nil, fmt.Errorf("%w: %s/%s", ErrSnapshotNotFound, bucket, object)
		}
		return nil, fmt.Errorf("failed to stat snapshot: %w", err)
	}

	obj, err := client.GetObject(ctx, bucket, object, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot: %w", err)
	}
	defer obj.Close()

	return Decode(obj)
}

// Decode reads one or more JSON arrays of records from r and concatenates them.
// A single array is the common case; one array per line is also accepted.
func Decode(r io.Reader) ([]Record, error) {
	dec := json.NewDecoder(r)

	var records []Record
	for {
		var page []Record
		err := dec.Decode(&page)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to decode snapshot: %w", err)
		}
		records = append(records, page...)
	}
	return records, nil
}
