package reconcile

import (
	"context"
	"errors"
	"fmt"

	"asset-catalog/feature/catalog/lookup"
	"asset-catalog/feature/catalog/models"
	"asset-catalog/feature/catalog/report"
	"asset-catalog/feature/catalog/snapshot"
	"asset-catalog/feature/catalog/store"

	"go.uber.org/zap"
)

// ErrUnknownAttachment marks an attachment whose type is neither a preview nor a download.
var ErrUnknownAttachment = errors.New("unknown attachment type")

// Reconciler applies a snapshot of remote records to the catalog store.
type Reconciler struct {
	catalog *store.Catalog
	logger  *zap.Logger
}

// New creates a Reconciler writing through catalog.
func New(catalog *store.Catalog, logger *zap.Logger) *Reconciler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reconciler{catalog: catalog, logger: logger}
}

// pass carries the per-run state shared by every record.
type pass struct {
	cache  *lookup.Cache
	report *report.Report
}

// Reconcile processes records in order and returns the changes it applied.
// Store failures abort the run; records already processed stay applied.
func (r *Reconciler) Reconcile(ctx context.Context, records []snapshot.Record) (*report.Report, error) {
	cache := lookup.New(r.catalog)
	if err := cache.Load(ctx); err != nil {
		return nil, fmt.Errorf("failed to load lookup cache: %w", err)
	}

	p := &pass{cache: cache, report: report.New()}
	for i := range records {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := r.reconcileRecord(ctx, p, &records[i]); err != nil {
			return nil, fmt.Errorf("record %s: %w", records[i].ID, err)
		}
	}

	s := p.report.Summary()
	r.logger.Info("Reconciliation finished",
		zap.Int("records", len(records)),
		zap.Int("new_assets", s.NewAssets),
		zap.Int("updated_assets", s.UpdatedAssets),
		zap.Int("edited_assets", s.EditedAssets),
		zap.Int("changed_category", s.ChangedCategory),
	)
	return p.report, nil
}

func (r *Reconciler) reconcileRecord(ctx context.Context, p *pass, rec *snapshot.Record) error {
	r.logger.Debug("Reconciling record", zap.String("original_id", rec.ID), zap.String("title", rec.Title))

	previewIDs, downloadIDs, err := r.resolveAttachments(ctx, p, rec)
	if err != nil {
		return err
	}

	asset, err := r.reconcileAsset(ctx, p, rec)
	if err != nil {
		return err
	}

	for _, tag := range rec.Tags {
		tagID, err := p.cache.ResolveOrCreate(ctx, models.KindTag, tag)
		if err != nil {
			return err
		}
		if _, err := r.catalog.EnsureAssetTag(ctx, asset.ID, tagID); err != nil {
			return err
		}
	}

	if err := r.reconcileCategories(ctx, p, asset, rec); err != nil {
		return err
	}

	for _, id := range previewIDs {
		if _, err := r.catalog.EnsureAssetPreview(ctx, asset.ID, id); err != nil {
			return err
		}
	}
	for _, id := range downloadIDs {
		if _, err := r.catalog.EnsureAssetDownload(ctx, asset.ID, id); err != nil {
			return err
		}
	}
	return nil
}
