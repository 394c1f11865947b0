package store

import (
	"context"
	"errors"
	"fmt"

	"asset-catalog/feature/catalog/models"
)

// ErrMultipleActiveCategories is returned when an asset has more than one
// active category row. The store is inconsistent and reconciliation must stop.
var ErrMultipleActiveCategories = errors.New("asset has more than one active category")

// Catalog provides typed catalog operations on top of a Gateway.
type Catalog struct {
	gw Gateway
}

// NewCatalog creates a Catalog backed by gw.
func NewCatalog(gw Gateway) *Catalog {
	return &Catalog{gw: gw}
}

// References returns all rows of a reference table.
func (c *Catalog) References(ctx context.Context, kind models.ReferenceKind) ([]models.ReferenceItem, error) {
	var items []models.ReferenceItem
	if err := c.gw.GetAll(ctx, kind.Table(), &items); err != nil {
		return nil, err
	}
	return items, nil
}

// CreateReference inserts a reference row and returns its id.
func (c *Catalog) CreateReference(ctx context.Context, kind models.ReferenceKind, name string) (int64, error) {
	item := models.ReferenceItem{Name: name}
	if err := c.gw.Insert(ctx, kind.Table(), &item); err != nil {
		return 0, err
	}
	return item.ID, nil
}

// Previews returns every stored preview.
func (c *Catalog) Previews(ctx context.Context) ([]models.Preview, error) {
	var previews []models.Preview
	if err := c.gw.GetAll(ctx, models.TablePreview, &previews); err != nil {
		return nil, err
	}
	return previews, nil
}

// CreatePreview inserts p and sets its id.
func (c *Catalog) CreatePreview(ctx context.Context, p *models.Preview) error {
	return c.gw.Insert(ctx, models.TablePreview, p)
}

// DownloadByOriginalID returns the download with the given remote id, or nil.
func (c *Catalog) DownloadByOriginalID(ctx context.Context, originalID string) (*models.Download, error) {
	var downloads []models.Download
	if err := c.gw.GetBy(ctx, models.TableDownload, map[string]any{"original_id": originalID}, &downloads); err != nil {
		return nil, err
	}
	if len(downloads) == 0 {
		return nil, nil
	}
	return &downloads[0], nil
}

// DownloadByID returns the download with the given local id, or nil.
func (c *Catalog) DownloadByID(ctx context.Context, id int64) (*models.Download, error) {
	var downloads []models.Download
	if err := c.gw.GetBy(ctx, models.TableDownload, map[string]any{"id": id}, &downloads); err != nil {
		return nil, err
	}
	if len(downloads) == 0 {
		return nil, nil
	}
	return &downloads[0], nil
}

// CreateDownload inserts d and sets its id.
func (c *Catalog) CreateDownload(ctx context.Context, d *models.Download) error {
	return c.gw.Insert(ctx, models.TableDownload, d)
}

// Revisions returns every revision stored for a download.
func (c *Catalog) Revisions(ctx context.Context, downloadID int64) ([]models.Revision, error) {
	var revisions []models.Revision
	if err := c.gw.GetBy(ctx, models.TableRevision, map[string]any{"download_id": downloadID}, &revisions); err != nil {
		return nil, err
	}
	return revisions, nil
}

// RevisionsAt returns the revisions of a download stored under one revision ordinal.
func (c *Catalog) RevisionsAt(ctx context.Context, downloadID int64, revision int) ([]models.Revision, error) {
	var revisions []models.Revision
	where := map[string]any{"download_id": downloadID, "revision": revision}
	if err := c.gw.GetBy(ctx, models.TableRevision, where, &revisions); err != nil {
		return nil, err
	}
	return revisions, nil
}

// CreateRevision inserts r and sets its id.
func (c *Catalog) CreateRevision(ctx context.Context, r *models.Revision) error {
	return c.gw.Insert(ctx, models.TableRevision, r)
}

// AssetByOriginalID returns the asset with the given remote id, or nil.
func (c *Catalog) AssetByOriginalID(ctx context.Context, originalID string) (*models.Asset, error) {
	var assets []models.Asset
	if err := c.gw.GetBy(ctx, models.TableAsset, map[string]any{"original_id": originalID}, &assets); err != nil {
		return nil, err
	}
	if len(assets) == 0 {
		return nil, nil
	}
	return &assets[0], nil
}

// CreateAsset inserts a new asset anchor for originalID.
func (c *Catalog) CreateAsset(ctx context.Context, originalID string) (*models.Asset, error) {
	asset := models.Asset{OriginalID: originalID}
	if err := c.gw.Insert(ctx, models.TableAsset, &asset); err != nil {
		return nil, err
	}
	return &asset, nil
}

// AssetRevisions returns every metadata revision of an asset, ordered by id.
func (c *Catalog) AssetRevisions(ctx context.Context, assetID int64) ([]models.AssetRevision, error) {
	var revisions []models.AssetRevision
	if err := c.gw.GetBy(ctx, models.TableAssetRevision, map[string]any{"asset_id": assetID}, &revisions); err != nil {
		return nil, err
	}
	return revisions, nil
}

// CurrentAssetRevision returns the asset with originalID and its highest
// ordinal revision. Either may be nil when nothing is stored yet.
func (c *Catalog) CurrentAssetRevision(ctx context.Context, originalID string) (*models.Asset, *models.AssetRevision, error) {
	asset, err := c.AssetByOriginalID(ctx, originalID)
	if err != nil || asset == nil {
		return asset, nil, err
	}

	revisions, err := c.AssetRevisions(ctx, asset.ID)
	if err != nil {
		return nil, nil, err
	}
	return asset, latestRevision(revisions), nil
}

// latestRevision picks the highest ordinal. Ties keep the first row by id.
func latestRevision(revisions []models.AssetRevision) *models.AssetRevision {
	var current *models.AssetRevision
	for i := range revisions {
		if current == nil || revisions[i].Ordinal > current.Ordinal {
			current = &revisions[i]
		}
	}
	return current
}

// NextOrdinal returns one past the highest stored ordinal of an asset.
func (c *Catalog) NextOrdinal(ctx context.Context, assetID int64) (int, error) {
	revisions, err := c.AssetRevisions(ctx, assetID)
	if err != nil {
		return 0, err
	}
	if current := latestRevision(revisions); current != nil {
		return current.Ordinal + 1, nil
	}
	return 0, nil
}

// InsertAssetRevision inserts r and sets its id.
func (c *Catalog) InsertAssetRevision(ctx context.Context, r *models.AssetRevision) error {
	return c.gw.Insert(ctx, models.TableAssetRevision, r)
}

// UpdateAssetRevision writes the mutable columns of r in place.
func (c *Catalog) UpdateAssetRevision(ctx context.Context, r *models.AssetRevision) error {
	return c.gw.Update(ctx, models.TableAssetRevision, r.ID, map[string]any{
		"name":                            r.Name,
		"type_id":                         r.TypeID,
		"is_new":                          r.IsNew,
		"is_update":                       r.IsUpdate,
		"created_at":                      r.SourceCreatedAt,
		"thumbnail_id":                    r.ThumbnailID,
		"extra_data_author":               r.ExtraData.Author,
		"extra_data_physical_size":        r.ExtraData.PhysicalSize,
		"extra_data_ref":                  r.ExtraData.Ref,
		"extra_data_type":                 r.ExtraData.Type,
		"extra_data_style":                r.ExtraData.Style,
		"extra_data_quality":              r.ExtraData.Quality,
		"extra_data_meshes":               r.ExtraData.Meshes,
		"extra_data_counters_quads":       r.ExtraData.CountersQuads,
		"extra_data_substance_resolution": r.ExtraData.SubstanceResolution,
		"extra_data_preview_disp":         r.ExtraData.PreviewDisp,
	})
}

// AssetCategories returns every category row of an asset, active or not.
func (c *Catalog) AssetCategories(ctx context.Context, assetID int64) ([]models.AssetCategory, error) {
	var rows []models.AssetCategory
	if err := c.gw.GetBy(ctx, models.TableAssetCategory, map[string]any{"asset_id": assetID}, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// ActiveCategory returns the single active category row of an asset, or nil.
func (c *Catalog) ActiveCategory(ctx context.Context, assetID int64) (*models.AssetCategory, error) {
	rows, err := c.AssetCategories(ctx, assetID)
	if err != nil {
		return nil, err
	}
	return ActiveOf(assetID, rows)
}

// ActiveOf returns the active row among rows, failing when more than one is active.
func ActiveOf(assetID int64, rows []models.AssetCategory) (*models.AssetCategory, error) {
	var active *models.AssetCategory
	for i := range rows {
		if !rows[i].IsActive {
			continue
		}
		if active != nil {
			return nil, fmt.Errorf("%w: asset id %d", ErrMultipleActiveCategories, assetID)
		}
		active = &rows[i]
	}
	return active, nil
}

// CreateAssetCategory inserts a category membership row.
func (c *Catalog) CreateAssetCategory(ctx context.Context, row *models.AssetCategory) error {
	return c.gw.Insert(ctx, models.TableAssetCategory, row)
}

// SetCategoryActive flips the active flag of a category membership row.
func (c *Catalog) SetCategoryActive(ctx context.Context, id int64, active bool) error {
	return c.gw.Update(ctx, models.TableAssetCategory, id, map[string]any{"is_active": active})
}

// AssetTags returns the tag joins of an asset.
func (c *Catalog) AssetTags(ctx context.Context, assetID int64) ([]models.AssetTag, error) {
	var rows []models.AssetTag
	if err := c.gw.GetBy(ctx, models.TableAssetTag, map[string]any{"asset_id": assetID}, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// EnsureAssetTag links an asset and a tag once.
func (c *Catalog) EnsureAssetTag(ctx context.Context, assetID, tagID int64) (bool, error) {
	return ensure(ctx, c.gw, models.TableAssetTag,
		map[string]any{"asset_id": assetID, "tag_id": tagID},
		&models.AssetTag{AssetID: assetID, TagID: tagID})
}

// EnsureAssetPreview links an asset and a preview once.
func (c *Catalog) EnsureAssetPreview(ctx context.Context, assetID, previewID int64) (bool, error) {
	return ensure(ctx, c.gw, models.TableAssetPreview,
		map[string]any{"asset_id": assetID, "preview_id": previewID},
		&models.AssetPreview{AssetID: assetID, PreviewID: previewID})
}

// EnsureAssetDownload links an asset and a download once.
func (c *Catalog) EnsureAssetDownload(ctx context.Context, assetID, downloadID int64) (bool, error) {
	return ensure(ctx, c.gw, models.TableAssetDownload,
		map[string]any{"asset_id": assetID, "download_id": downloadID},
		&models.AssetDownload{AssetID: assetID, DownloadID: downloadID})
}

// EnsurePreviewTag links a preview and a preview tag once.
func (c *Catalog) EnsurePreviewTag(ctx context.Context, previewID, tagID int64) (bool, error) {
	return ensure(ctx, c.gw, models.TablePreviewPreviewTag,
		map[string]any{"preview_id": previewID, "preview_tag_id": tagID},
		&models.PreviewPreviewTag{PreviewID: previewID, PreviewTagID: tagID})
}

// EnsureDownloadTag links a download and a download tag once.
func (c *Catalog) EnsureDownloadTag(ctx context.Context, downloadID, tagID int64) (bool, error) {
	return ensure(ctx, c.gw, models.TableDownloadDownloadTag,
		map[string]any{"download_id": downloadID, "download_tag_id": tagID},
		&models.DownloadDownloadTag{DownloadID: downloadID, DownloadTagID: tagID})
}

// ensure inserts row unless a row matching where already exists.
// It reports whether a row was created.
func ensure[T any](ctx context.Context, gw Gateway, table string, where map[string]any, row *T) (bool, error) {
	var existing []T
	if err := gw.GetBy(ctx, table, where, &existing); err != nil {
		return false, err
	}
	if len(existing) > 0 {
		return false, nil
	}
	if err := gw.Insert(ctx, table, row); err != nil {
		return false, err
	}
	return true, nil
}

// AssetPreviews returns the preview joins of an asset.
func (c *Catalog) AssetPreviews(ctx context.Context, assetID int64) ([]models.AssetPreview, error) {
	var rows []models.AssetPreview
	if err := c.gw.GetBy(ctx, models.TableAssetPreview, map[string]any{"asset_id": assetID}, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// AssetDownloads returns the download joins of an asset.
func (c *Catalog) AssetDownloads(ctx context.Context, assetID int64) ([]models.AssetDownload, error) {
	var rows []models.AssetDownload
	if err := c.gw.GetBy(ctx, models.TableAssetDownload, map[string]any{"asset_id": assetID}, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// InsertRun records a reconciliation run.
func (c *Catalog) InsertRun(ctx context.Context, run *models.ReconcileRun) error {
	return c.gw.Insert(ctx, models.TableReconcileRun, run)
}

// RecentRuns returns up to limit runs, newest first. A limit of zero or less returns all.
func (c *Catalog) RecentRuns(ctx context.Context, limit int) ([]models.ReconcileRun, error) {
	var runs []models.ReconcileRun
	if err := c.gw.GetAll(ctx, models.TableReconcileRun, &runs); err != nil {
		return nil, err
	}

	out := make([]models.ReconcileRun, 0, len(runs))
	for i := len(runs) - 1; i >= 0; i-- {
		if limit > 0 && len(out) == limit {
			break
		}
		out = append(out, runs[i])
	}
	return out, nil
}
