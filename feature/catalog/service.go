package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"asset-catalog/core/logger"
	"asset-catalog/core/storage"
	"asset-catalog/feature/catalog/lookup"
	"asset-catalog/feature/catalog/models"
	"asset-catalog/feature/catalog/reconcile"
	"asset-catalog/feature/catalog/report"
	"asset-catalog/feature/catalog/snapshot"
	"asset-catalog/feature/catalog/store"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrAssetNotFound is returned when no asset has the requested original id.
var ErrAssetNotFound = errors.New("asset not found")

// errDryRun rolls back the dry-run transaction.
var errDryRun = errors.New("dry run")

// Service handles catalog reconciliation and read access.
type Service struct {
	client storage.Client
	bucket string
	logger *zap.Logger
	db     *gorm.DB
	cfg    Config
	now    func() time.Time
}

// NewService creates a new catalog service.
func NewService(client storage.Client, bucket string, logger *zap.Logger, db *gorm.DB, cfg Config) *Service {
	return &Service{
		client: client,
		bucket: bucket,
		logger: logger,
		db:     db,
		cfg:    cfg,
		now:    time.Now,
	}
}

// RunOptions selects the snapshot source and the side effects of a run.
type RunOptions struct {
	// SnapshotPath overrides Config.SnapshotPath.
	SnapshotPath string
	// FromStorage reads Config.SnapshotObject from the bucket instead of a local file.
	FromStorage bool
	// DryRun reconciles inside a transaction that is rolled back.
	DryRun bool
	// Upload uploads the report even when Config.UploadReports is off.
	Upload bool
}

// RunResult describes a finished reconciliation run.
type RunResult struct {
	RunID      string
	Source     string
	Records    int
	DryRun     bool
	Report     *report.Report
	ReportPath string
	ReportKey  string
}

// LoadSnapshot reads the snapshot selected by opts and returns its records and source.
func (s *Service) LoadSnapshot(ctx context.Context, opts RunOptions) ([]snapshot.Record, string, error) {
	if opts.FromStorage {
		source := fmt.Sprintf("s3://%s/%s", s.bucket, s.cfg.SnapshotObject)
		if s.client == nil {
			return nil, source, fmt.Errorf("storage client is not configured")
		}
		records, err := snapshot.LoadObject(ctx, s.client, s.bucket, s.cfg.SnapshotObject)
		return records, source, err
	}

	path := opts.SnapshotPath
	if path == "" {
		path = s.cfg.SnapshotPath
	}
	records, err := snapshot.LoadFile(path)
	return records, path, err
}

// Run loads the snapshot, reconciles it and, unless dry-running, writes the
// report and records the run.
func (s *Service) Run(ctx context.Context, opts RunOptions) (*RunResult, error) {
	records, source, err := s.LoadSnapshot(ctx, opts)
	if err != nil {
		return nil, err
	}

	res := &RunResult{
		RunID:   uuid.NewString(),
		Source:  source,
		Records: len(records),
		DryRun:  opts.DryRun,
	}
	l := logger.WithRunID(s.logger, res.RunID)
	l.Info("Reconciling snapshot", zap.String("source", source), zap.Int("records", len(records)))

	if opts.DryRun {
		err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			rep, err := reconcile.New(store.NewCatalog(store.New(tx)), l).Reconcile(ctx, records)
			if err != nil {
				return err
			}
			res.Report = rep
			return errDryRun
		})
		if !errors.Is(err, errDryRun) {
			return nil, err
		}
		l.Info("Dry run finished, changes rolled back")
		return res, nil
	}

	started := s.now()
	catalog := store.NewCatalog(store.New(s.db))
	rep, err := reconcile.New(catalog, l).Reconcile(ctx, records)
	if err != nil {
		return nil, err
	}
	res.Report = rep

	written, writeErr := report.NewWriter(s.reportOptions(opts.Upload), s.client).WithClock(s.now).Write(ctx, rep)
	if written != nil {
		res.ReportPath = written.Path
		res.ReportKey = written.Key
	}
	if writeErr != nil {
		l.Error("Failed to write report", zap.Error(writeErr))
	}

	run := models.ReconcileRun{
		RunID:      res.RunID,
		StartedAt:  started,
		FinishedAt: s.now(),
		Source:     source,
		Records:    res.Records,
		ReportPath: res.ReportPath,
		ReportKey:  res.ReportKey,
		Summary:    rep.Summary().Map(),
	}
	if err := catalog.InsertRun(ctx, &run); err != nil {
		return res, fmt.Errorf("failed to record run: %w", err)
	}
	return res, writeErr
}

func (s *Service) reportOptions(upload bool) report.Options {
	return report.Options{
		Dir:    s.cfg.ReportDir,
		Name:   s.cfg.ReportName,
		Upload: upload || s.cfg.UploadReports,
		Bucket: s.bucket,
		Prefix: s.cfg.ReportPrefix,
	}
}

// DownloadDetail is a download with its stored file revisions.
type DownloadDetail struct {
	models.Download
	Revisions []models.Revision `json:"revisions"`
}

// AssetDetail is the read model of one asset.
type AssetDetail struct {
	OriginalID string                `json:"original_id"`
	AssetID    int64                 `json:"asset_id"`
	Current    *models.AssetRevision `json:"current"`
	Revisions  int                   `json:"revisions"`
	Type       string                `json:"type"`
	Category   string                `json:"category"`
	Categories []string              `json:"categories"`
	Tags       []string              `json:"tags"`
	Previews   []models.Preview      `json:"previews"`
	Downloads  []DownloadDetail      `json:"downloads"`
}

// GetAssetDetail returns the current state of the asset with originalID.
func (s *Service) GetAssetDetail(ctx context.Context, originalID string) (*AssetDetail, error) {
	catalog := store.NewCatalog(store.New(s.db))

	asset, err := catalog.AssetByOriginalID(ctx, originalID)
	if err != nil {
		return nil, err
	}
	if asset == nil {
		return nil, fmt.Errorf("%w: %s", ErrAssetNotFound, originalID)
	}

	cache := lookup.New(catalog)
	if err := cache.Load(ctx); err != nil {
		return nil, err
	}

	revisions, err := catalog.AssetRevisions(ctx, asset.ID)
	if err != nil {
		return nil, err
	}
	detail := &AssetDetail{
		OriginalID: asset.OriginalID,
		AssetID:    asset.ID,
		Revisions:  len(revisions),
		Categories: []string{},
		Tags:       []string{},
		Previews:   []models.Preview{},
		Downloads:  []DownloadDetail{},
	}
	_, detail.Current, err = catalog.CurrentAssetRevision(ctx, originalID)
	if err != nil {
		return nil, err
	}
	if detail.Current != nil {
		detail.Type, _ = cache.Name(models.KindType, detail.Current.TypeID)
	}

	categories, err := catalog.AssetCategories(ctx, asset.ID)
	if err != nil {
		return nil, err
	}
	for _, row := range categories {
		name, _ := cache.Name(models.KindCategory, row.CategoryID)
		detail.Categories = append(detail.Categories, name)
		if row.IsActive {
			detail.Category = name
		}
	}

	tags, err := catalog.AssetTags(ctx, asset.ID)
	if err != nil {
		return nil, err
	}
	for _, t := range tags {
		name, _ := cache.Name(models.KindTag, t.TagID)
		detail.Tags = append(detail.Tags, name)
	}

	if err := s.attachPreviews(ctx, catalog, asset.ID, detail); err != nil {
		return nil, err
	}
	if err := s.attachDownloads(ctx, catalog, asset.ID, detail); err != nil {
		return nil, err
	}
	return detail, nil
}

func (s *Service) attachPreviews(ctx context.Context, catalog *store.Catalog, assetID int64, detail *AssetDetail) error {
	joins, err := catalog.AssetPreviews(ctx, assetID)
	if err != nil || len(joins) == 0 {
		return err
	}

	previews, err := catalog.Previews(ctx)
	if err != nil {
		return err
	}
	byID := make(map[int64]models.Preview, len(previews))
	for _, p := range previews {
		byID[p.ID] = p
	}
	for _, j := range joins {
		if p, ok := byID[j.PreviewID]; ok {
			detail.Previews = append(detail.Previews, p)
		}
	}
	return nil
}

func (s *Service) attachDownloads(ctx context.Context, catalog *store.Catalog, assetID int64, detail *AssetDetail) error {
	joins, err := catalog.AssetDownloads(ctx, assetID)
	if err != nil {
		return err
	}
	for _, j := range joins {
		d, err := catalog.DownloadByID(ctx, j.DownloadID)
		if err != nil {
			return err
		}
		if d == nil {
			continue
		}
		revisions, err := catalog.Revisions(ctx, d.ID)
		if err != nil {
			return err
		}
		detail.Downloads = append(detail.Downloads, DownloadDetail{Download: *d, Revisions: revisions})
	}
	return nil
}

// RecentRuns returns up to limit reconciliation runs, newest first.
func (s *Service) RecentRuns(ctx context.Context, limit int) ([]models.ReconcileRun, error) {
	return store.NewCatalog(store.New(s.db)).RecentRuns(ctx, limit)
}

// ReportObject is an uploaded report in the storage bucket.
type ReportObject struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"last_modified"`
}

// ListReports lists uploaded reports under the configured prefix.
func (s *Service) ListReports(ctx context.Context) ([]ReportObject, error) {
	if s.client == nil {
		return nil, fmt.Errorf("storage client is not configured")
	}

	objects := []ReportObject{}
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Prefix: s.cfg.ReportPrefix + "/", Recursive: true}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list reports: %w", obj.Err)
		}
		objects = append(objects, ReportObject{Key: obj.Key, Size: obj.Size, LastModified: obj.LastModified})
	}
	return objects, nil
}
