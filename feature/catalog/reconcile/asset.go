package reconcile

import (
	"context"
	"fmt"
	"strings"

	"asset-catalog/core/utils"
	"asset-catalog/feature/catalog/models"
	"asset-catalog/feature/catalog/snapshot"

	"go.uber.org/zap"
)

// changeSet collects the field differences between a stored revision and a record.
type changeSet struct {
	major     []string
	minor     []string
	thumbnail bool
}

func (c *changeSet) add(major bool, label string, from, to any) {
	msg := fmt.Sprintf(`%s changed from "%s" to "%s"`, label, utils.ToString(from), utils.ToString(to))
	if major {
		c.major = append(c.major, msg)
	} else {
		c.minor = append(c.minor, msg)
	}
}

// majorDetails describes every change, major first.
func (c *changeSet) majorDetails() string {
	details := strings.Join(c.major, ".")
	if len(c.minor) > 0 {
		details += ". " + strings.Join(c.minor, ".")
	}
	return details
}

func (c *changeSet) minorDetails() string {
	return strings.Join(c.minor, ".")
}

// reconcileAsset creates the asset or applies changes to its current revision.
func (r *Reconciler) reconcileAsset(ctx context.Context, p *pass, rec *snapshot.Record) (*models.Asset, error) {
	asset, current, err := r.catalog.CurrentAssetRevision(ctx, rec.ID)
	if err != nil {
		return nil, err
	}

	typeID, err := p.cache.ResolveOrCreate(ctx, models.KindType, rec.Typename)
	if err != nil {
		return nil, err
	}
	thumbnailID := p.cache.PreviewID(rec.Thumbnail.ID)

	if current == nil {
		return r.createAsset(ctx, p, rec, asset, typeID, thumbnailID)
	}

	next, changes := r.diff(p, *current, rec, typeID, thumbnailID)
	category := rec.PrimaryCategory()

	switch {
	case len(changes.major) > 0:
		ordinal, err := r.catalog.NextOrdinal(ctx, asset.ID)
		if err != nil {
			return nil, err
		}
		next.ID = 0
		next.Ordinal = ordinal
		if err := r.catalog.InsertAssetRevision(ctx, &next); err != nil {
			return nil, err
		}
		p.report.AddUpdatedAsset(rec.Title, category, changes.majorDetails())
		r.logger.Debug("Asset updated", zap.String("original_id", rec.ID), zap.Int("revision", ordinal))
	case len(changes.minor) > 0:
		if err := r.catalog.UpdateAssetRevision(ctx, &next); err != nil {
			return nil, err
		}
		p.report.AddEditedAsset(rec.Title, category, changes.minorDetails())
		r.logger.Debug("Asset edited", zap.String("original_id", rec.ID))
	}

	if changes.thumbnail {
		p.report.AddNewPreviewImage(rec.Title, category)
	}
	return asset, nil
}

// createAsset stores the first revision of an asset. An asset row left without
// revisions by an interrupted run is reused.
func (r *Reconciler) createAsset(ctx context.Context, p *pass, rec *snapshot.Record, asset *models.Asset, typeID, thumbnailID int64) (*models.Asset, error) {
	if asset == nil {
		var err error
		if asset, err = r.catalog.CreateAsset(ctx, rec.ID); err != nil {
			return nil, err
		}
	}

	revision := models.AssetRevision{
		AssetID:         asset.ID,
		Name:            rec.Title,
		TypeID:          typeID,
		IsNew:           rec.New,
		IsUpdate:        rec.DownloadsRecentlyUpdated,
		SourceCreatedAt: rec.CreatedAt,
		ThumbnailID:     thumbnailID,
		ExtraData:       extraDataFrom(rec.ExtraData),
	}
	if err := r.catalog.InsertAssetRevision(ctx, &revision); err != nil {
		return nil, err
	}

	p.report.AddNewAsset(rec.Title, rec.PrimaryCategory())
	r.logger.Debug("Asset created", zap.String("original_id", rec.ID), zap.Int64("asset_id", asset.ID))
	return asset, nil
}

// diff applies rec onto a copy of current and reports what changed.
// Only extra-data keys present in the record are compared.
func (r *Reconciler) diff(p *pass, current models.AssetRevision, rec *snapshot.Record, typeID, thumbnailID int64) (models.AssetRevision, changeSet) {
	var c changeSet
	next := current

	if next.Name != rec.Title {
		c.add(true, "Title", next.Name, rec.Title)
		next.Name = rec.Title
	}
	if next.TypeID != typeID {
		oldType, ok := p.cache.Name(models.KindType, next.TypeID)
		if !ok {
			oldType = utils.ToString(next.TypeID)
		}
		c.add(true, "Type", oldType, rec.Typename)
		next.TypeID = typeID
	}
	if next.IsNew != rec.New {
		c.add(false, "New status", next.IsNew, rec.New)
		next.IsNew = rec.New
	}
	if next.IsUpdate != rec.DownloadsRecentlyUpdated {
		c.add(false, "Is Updated status", next.IsUpdate, rec.DownloadsRecentlyUpdated)
		next.IsUpdate = rec.DownloadsRecentlyUpdated
	}
	if next.SourceCreatedAt != rec.CreatedAt {
		c.add(true, "Created date", next.SourceCreatedAt, rec.CreatedAt)
		next.SourceCreatedAt = rec.CreatedAt
	}
	if next.ThumbnailID != thumbnailID {
		c.add(true, "Thumbnail id", next.ThumbnailID, thumbnailID)
		next.ThumbnailID = thumbnailID
		c.thumbnail = true
	}

	for _, e := range rec.ExtraData {
		f, ok := extraFieldsByKey[e.Key]
		if !ok {
			continue
		}
		stored := f.value(&next.ExtraData)
		if *stored != e.Value {
			c.add(f.major, f.label, *stored, e.Value)
			*stored = e.Value
		}
	}
	return next, c
}
