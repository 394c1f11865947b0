package reconcile

import (
	"context"

	"asset-catalog/feature/catalog/models"
	"asset-catalog/feature/catalog/snapshot"
	"asset-catalog/feature/catalog/store"

	"go.uber.org/zap"
)

// reconcileCategories makes the record's primary category the single active
// category of the asset. Other listed categories are kept as inactive rows and
// rows for categories no longer listed are deactivated, never deleted.
func (r *Reconciler) reconcileCategories(ctx context.Context, p *pass, asset *models.Asset, rec *snapshot.Record) error {
	rows, err := r.catalog.AssetCategories(ctx, asset.ID)
	if err != nil {
		return err
	}
	before, err := store.ActiveOf(asset.ID, rows)
	if err != nil {
		return err
	}

	active := make(map[int64]bool, len(rows))
	rowByCategory := make(map[int64]int64, len(rows))
	for _, row := range rows {
		if _, ok := rowByCategory[row.CategoryID]; !ok {
			rowByCategory[row.CategoryID] = row.ID
		}
	}

	var created []models.AssetCategory
	for i, name := range rec.Categories {
		categoryID, err := p.cache.ResolveOrCreate(ctx, models.KindCategory, name)
		if err != nil {
			return err
		}
		if rowID, ok := rowByCategory[categoryID]; ok {
			if i == 0 {
				active[rowID] = true
			}
			continue
		}
		created = append(created, models.AssetCategory{AssetID: asset.ID, CategoryID: categoryID, IsActive: i == 0})
		// a category listed twice is created once
		rowByCategory[categoryID] = 0
	}

	// deactivate first so at most one row is ever active
	for _, row := range rows {
		if row.IsActive && !active[row.ID] {
			if err := r.catalog.SetCategoryActive(ctx, row.ID, false); err != nil {
				return err
			}
		}
	}
	for _, row := range rows {
		if !row.IsActive && active[row.ID] {
			if err := r.catalog.SetCategoryActive(ctx, row.ID, true); err != nil {
				return err
			}
		}
	}
	for i := range created {
		if err := r.catalog.CreateAssetCategory(ctx, &created[i]); err != nil {
			return err
		}
	}

	after, err := r.catalog.ActiveCategory(ctx, asset.ID)
	if err != nil {
		return err
	}
	if before == nil || after == nil || before.CategoryID == after.CategoryID {
		return nil
	}

	oldName, _ := p.cache.Name(models.KindCategory, before.CategoryID)
	newName, _ := p.cache.Name(models.KindCategory, after.CategoryID)
	p.report.AddChangedCategory(rec.Title, oldName, newName)
	r.logger.Debug("Asset category changed",
		zap.String("original_id", rec.ID),
		zap.String("from", oldName),
		zap.String("to", newName),
	)
	return nil
}
