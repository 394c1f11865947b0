package store

import (
	"fmt"

	"asset-catalog/feature/catalog/models"

	"gorm.io/gorm"
)

// Tables lists every catalog table, reference tables first.
func Tables() []string {
	tables := make([]string, 0, len(models.ReferenceKinds)+12)
	for _, k := range models.ReferenceKinds {
		tables = append(tables, k.Table())
	}
	return append(tables,
		models.TablePreview,
		models.TablePreviewPreviewTag,
		models.TableDownload,
		models.TableDownloadDownloadTag,
		models.TableRevision,
		models.TableAsset,
		models.TableAssetRevision,
		models.TableAssetTag,
		models.TableAssetCategory,
		models.TableAssetPreview,
		models.TableAssetDownload,
		models.TableReconcileRun,
	)
}

// Migrate creates or updates the catalog schema.
func Migrate(db *gorm.DB) error {
	for _, k := range models.ReferenceKinds {
		if err := db.Table(k.Table()).AutoMigrate(&models.ReferenceItem{}); err != nil {
			return fmt.Errorf("migrate %s: %w", k.Table(), err)
		}
	}

	err := db.AutoMigrate(
		&models.Preview{},
		&models.PreviewPreviewTag{},
		&models.Download{},
		&models.DownloadDownloadTag{},
		&models.Revision{},
		&models.Asset{},
		&models.AssetRevision{},
		&models.AssetTag{},
		&models.AssetCategory{},
		&models.AssetPreview{},
		&models.AssetDownload{},
		&models.ReconcileRun{},
	)
	if err != nil {
		return fmt.Errorf("migrate catalog: %w", err)
	}
	return nil
}
