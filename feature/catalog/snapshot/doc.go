// Package snapshot defines the remote asset record format and loads
// snapshots from a local file or from object storage.
//
// A snapshot is the JSON array written by the fetch step. Records are
// returned in file order.
package snapshot
