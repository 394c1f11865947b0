package report

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"asset-catalog/core/storage"

	"github.com/minio/minio-go/v7"
)

// TimestampLayout is appended to report file names.
const TimestampLayout = "20060102-150405"

// FileName inserts the timestamp between the stem and the extension of name:
// "Scan Report.txt" becomes "Scan Report_20240102-030405.txt".
func FileName(name string, now time.Time) string {
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	return fmt.Sprintf("%s_%s%s", stem, now.Format(TimestampLayout), ext)
}

// Options configures where reports are written.
type Options struct {
	Dir    string
	Name   string
	Upload bool
	Bucket string
	Prefix string
}

// Writer persists rendered reports to disk and optionally to object storage.
type Writer struct {
	opts   Options
	client storage.Client
	now    func() time.Time
}

// NewWriter creates a report writer. client may be nil when uploads are disabled.
func NewWriter(opts Options, client storage.Client) *Writer {
	return &Writer{opts: opts, client: client, now: time.Now}
}

// WithClock replaces the time source used for file names.
func (w *Writer) WithClock(now func() time.Time) *Writer {
	w.now = now
	return w
}

// Result describes where a report was written.
type Result struct {
	Path string
	Key  string
}

// Write renders r and stores it. Nothing is written for an empty report.
func (w *Writer) Write(ctx context.Context, r *Report) (*Result, error) {
	if r.Empty() {
		return nil, nil
	}

	name := FileName(w.opts.Name, w.now())
	dir := w.opts.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create report directory: %w", err)
	}

	body := r.Render()
	res := &Result{Path: filepath.Join(dir, name)}
	if err := os.WriteFile(res.Path, []byte(body), 0o644); err != nil {
		return nil, fmt.Errorf("failed to write report: %w", err)
	}

	if !w.opts.Upload {
		return res, nil
	}
	if w.client == nil {
		return res, fmt.Errorf("report upload enabled without a storage client")
	}

	if err := storage.EnsureBucket(ctx, w.client, w.opts.Bucket); err != nil {
		return res, err
	}

	res.Key = path.Join(w.opts.Prefix, name)
	_, err := w.client.PutObject(ctx, w.opts.Bucket, res.Key, strings.NewReader(body), int64(len(body)),
		minio.PutObjectOptions{ContentType: "text/plain; charset=utf-8"})
	if err != nil {
		return res, fmt.Errorf("failed to upload report: %w", err)
	}
	return res, nil
}
