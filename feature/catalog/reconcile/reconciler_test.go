package reconcile_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"asset-catalog/core/database"
	"asset-catalog/feature/catalog/models"
	"asset-catalog/feature/catalog/reconcile"
	"asset-catalog/feature/catalog/report"
	"asset-catalog/feature/catalog/snapshot"
	"asset-catalog/feature/catalog/store"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setup(t *testing.T) (*reconcile.Reconciler, *store.Catalog) {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, store.Migrate(db))

	catalog := store.NewCatalog(store.New(db))
	return reconcile.New(catalog, zap.NewNop()), catalog
}

func rock() snapshot.Record {
	return snapshot.Record{
		ID:         "X1",
		Title:      "Rock01",
		Typename:   "SubstanceMaterial",
		Categories: []string{"Stone"},
		CreatedAt:  "2023-01-02T03:04:05.000Z",
	}
}

func run(t *testing.T, r *reconcile.Reconciler, records ...snapshot.Record) *report.Report {
	t.Helper()
	rep, err := r.Reconcile(context.Background(), records)
	require.NoError(t, err)
	return rep
}

func assetRevisions(t *testing.T, c *store.Catalog, originalID string) []models.AssetRevision {
	t.Helper()
	asset, err := c.AssetByOriginalID(context.Background(), originalID)
	require.NoError(t, err)
	require.NotNil(t, asset)
	revisions, err := c.AssetRevisions(context.Background(), asset.ID)
	require.NoError(t, err)
	return revisions
}

func categoryNames(t *testing.T, c *store.Catalog) map[int64]string {
	t.Helper()
	items, err := c.References(context.Background(), models.KindCategory)
	require.NoError(t, err)
	names := make(map[int64]string, len(items))
	for _, item := range items {
		names[item.ID] = item.Name
	}
	return names
}

// activeByName returns the activity flag of every category row of an asset.
func activeByName(t *testing.T, c *store.Catalog, originalID string) map[string]bool {
	t.Helper()
	ctx := context.Background()
	asset, err := c.AssetByOriginalID(ctx, originalID)
	require.NoError(t, err)
	rows, err := c.AssetCategories(ctx, asset.ID)
	require.NoError(t, err)

	names := categoryNames(t, c)
	out := make(map[string]bool, len(rows))
	for _, row := range rows {
		out[names[row.CategoryID]] = row.IsActive
	}
	return out
}

func TestReconcile_NewAsset(t *testing.T) {
	r, c := setup(t)

	rep := run(t, r, rock())

	assert.Equal(t, report.Summary{NewAssets: 1}, rep.Summary())
	assert.Equal(t, []report.Event{{Asset: "Rock01", Category: "Stone"}}, rep.Events(report.NewAsset))

	revisions := assetRevisions(t, c, "X1")
	require.Len(t, revisions, 1)
	assert.Equal(t, 0, revisions[0].Ordinal)
	assert.Equal(t, "Rock01", revisions[0].Name)
	assert.Equal(t, models.NoThumbnail, revisions[0].ThumbnailID)

	assert.Equal(t, map[string]bool{"Stone": true}, activeByName(t, c, "X1"))
}

func TestReconcile_UnchangedSnapshotIsNoop(t *testing.T) {
	r, c := setup(t)

	run(t, r, rock())
	rep := run(t, r, rock())

	assert.True(t, rep.Empty())
	assert.Len(t, assetRevisions(t, c, "X1"), 1)
}

func TestReconcile_TitleChangeCreatesRevision(t *testing.T) {
	r, c := setup(t)
	run(t, r, rock())

	changed := rock()
	changed.Title = "Rock01b"
	rep := run(t, r, changed)

	assert.Equal(t, report.Summary{UpdatedAssets: 1}, rep.Summary())
	events := rep.Events(report.UpdatedAsset)
	require.Len(t, events, 1)
	assert.Equal(t, "Rock01b", events[0].Asset)
	assert.Equal(t, `Title changed from "Rock01" to "Rock01b"`, events[0].Details)

	revisions := assetRevisions(t, c, "X1")
	require.Len(t, revisions, 2)
	assert.Equal(t, 1, revisions[1].Ordinal)
	assert.Equal(t, "Rock01b", revisions[1].Name)
	assert.Equal(t, "Rock01", revisions[0].Name)
}

func TestReconcile_CategoryChange(t *testing.T) {
	r, c := setup(t)
	run(t, r, rock())

	moved := rock()
	moved.Categories = []string{"Wood"}
	rep := run(t, r, moved)

	assert.Equal(t, report.Summary{ChangedCategory: 1}, rep.Summary())
	assert.Equal(t, []report.Event{{Asset: "Rock01", OldCategory: "Stone", NewCategory: "Wood"}},
		rep.Events(report.ChangedCategory))
	assert.Equal(t, map[string]bool{"Stone": false, "Wood": true}, activeByName(t, c, "X1"))

	// moving back reactivates the existing row
	rep = run(t, r, rock())
	assert.Equal(t, report.Summary{ChangedCategory: 1}, rep.Summary())
	assert.Equal(t, map[string]bool{"Stone": true, "Wood": false}, activeByName(t, c, "X1"))
}

func TestReconcile_OnlyPrimaryCategoryIsActive(t *testing.T) {
	r, c := setup(t)

	rec := rock()
	rec.Categories = []string{"Stone", "Ground", "Stone"}
	run(t, r, rec)

	assert.Equal(t, map[string]bool{"Stone": true, "Ground": false}, activeByName(t, c, "X1"))

	rec.Categories = []string{"Ground", "Stone"}
	rep := run(t, r, rec)
	assert.Equal(t, []report.Event{{Asset: "Rock01", OldCategory: "Stone", NewCategory: "Ground"}},
		rep.Events(report.ChangedCategory))
	assert.Equal(t, map[string]bool{"Stone": false, "Ground": true}, activeByName(t, c, "X1"))
}

func TestReconcile_EmptyCategoriesDeactivates(t *testing.T) {
	r, c := setup(t)
	run(t, r, rock())

	rec := rock()
	rec.Categories = nil
	rep := run(t, r, rec)

	assert.True(t, rep.Empty())
	assert.Equal(t, map[string]bool{"Stone": false}, activeByName(t, c, "X1"))
}

func TestReconcile_MinorChangeEditsInPlace(t *testing.T) {
	r, c := setup(t)
	base := rock()
	base.ExtraData = []snapshot.ExtraDataEntry{{Key: "author", Value: "bob"}, {Key: "ref", Value: "R-1"}}
	run(t, r, base)

	edited := base
	edited.New = true
	edited.ExtraData = []snapshot.ExtraDataEntry{{Key: "author", Value: "alice"}}
	rep := run(t, r, edited)

	assert.Equal(t, report.Summary{EditedAssets: 1}, rep.Summary())
	assert.Equal(t,
		`New status changed from "false" to "true".Extra Author changed from "bob" to "alice"`,
		rep.Events(report.EditedAsset)[0].Details)

	revisions := assetRevisions(t, c, "X1")
	require.Len(t, revisions, 1)
	assert.True(t, revisions[0].IsNew)
	assert.Equal(t, "alice", revisions[0].ExtraData.Author)
	// keys missing from the record are left alone
	assert.Equal(t, "R-1", revisions[0].ExtraData.Ref)
}

func TestReconcile_ReferenceChangeIsMajor(t *testing.T) {
	r, c := setup(t)
	base := rock()
	base.ExtraData = []snapshot.ExtraDataEntry{{Key: "ref", Value: "R-1"}}
	run(t, r, base)

	changed := rock()
	changed.DownloadsRecentlyUpdated = true
	changed.ExtraData = []snapshot.ExtraDataEntry{{Key: "ref", Value: "R-2"}, {Key: "unknown", Value: "x"}}
	rep := run(t, r, changed)

	assert.Equal(t, report.Summary{UpdatedAssets: 1}, rep.Summary())
	assert.Equal(t,
		`Extra Internal reference changed from "R-1" to "R-2". Is Updated status changed from "false" to "true"`,
		rep.Events(report.UpdatedAsset)[0].Details)

	revisions := assetRevisions(t, c, "X1")
	require.Len(t, revisions, 2)
	assert.Equal(t, "R-2", revisions[1].ExtraData.Ref)
	assert.True(t, revisions[1].IsUpdate)
	assert.False(t, revisions[0].IsUpdate)
}

func TestReconcile_TypeAndDateChanges(t *testing.T) {
	r, _ := setup(t)
	run(t, r, rock())

	changed := rock()
	changed.Typename = "SubstanceAtlas"
	changed.CreatedAt = "2024-01-01T00:00:00.000Z"
	rep := run(t, r, changed)

	assert.Equal(t,
		`Type changed from "SubstanceMaterial" to "SubstanceAtlas".Created date changed from "2023-01-02T03:04:05.000Z" to "2024-01-01T00:00:00.000Z"`,
		rep.Events(report.UpdatedAsset)[0].Details)
}

func TestReconcile_OrdinalsStayContiguous(t *testing.T) {
	r, c := setup(t)

	for _, title := range []string{"Rock01", "Rock02", "Rock03", "Rock03", "Rock04"} {
		rec := rock()
		rec.Title = title
		run(t, r, rec)
	}

	revisions := assetRevisions(t, c, "X1")
	require.Len(t, revisions, 4)
	for i, rev := range revisions {
		assert.Equal(t, i, rev.Ordinal)
	}
}

func withAttachments() snapshot.Record {
	rec := rock()
	rec.Thumbnail = snapshot.Thumbnail{ID: "P1"}
	rec.Attachments = []snapshot.Attachment{
		{Typename: snapshot.PreviewAttachment, ID: "P1", Kind: "image", URL: "https://cdn/p1.jpg", Tags: []string{"main", "front"}},
		{Typename: snapshot.DownloadAttachment, ID: "D1", URL: "https://cdn/d1", Tags: []string{"sbsar"},
			Revisions: []snapshot.RemoteRevision{{Filename: "rock.sbsar", Size: 10, Revision: 1}}},
	}
	return rec
}

func TestReconcile_AttachmentsAreIdempotent(t *testing.T) {
	r, c := setup(t)
	ctx := context.Background()

	run(t, r, withAttachments())
	rep := run(t, r, withAttachments())
	assert.True(t, rep.Empty())

	previews, err := c.Previews(ctx)
	require.NoError(t, err)
	require.Len(t, previews, 1)

	revisions := assetRevisions(t, c, "X1")
	assert.Equal(t, previews[0].ID, revisions[0].ThumbnailID)

	download, err := c.DownloadByOriginalID(ctx, "D1")
	require.NoError(t, err)
	require.NotNil(t, download)
	files, err := c.Revisions(ctx, download.ID)
	require.NoError(t, err)
	assert.Len(t, files, 1)
	assert.False(t, files[0].HaveFile)

	asset, err := c.AssetByOriginalID(ctx, "X1")
	require.NoError(t, err)
	joinsP, err := c.AssetPreviews(ctx, asset.ID)
	require.NoError(t, err)
	assert.Len(t, joinsP, 1)
	joinsD, err := c.AssetDownloads(ctx, asset.ID)
	require.NoError(t, err)
	assert.Len(t, joinsD, 1)

	previewTags, err := c.References(ctx, models.KindPreviewTag)
	require.NoError(t, err)
	assert.Len(t, previewTags, 2)
}

func TestReconcile_NewPreviewImage(t *testing.T) {
	r, c := setup(t)
	run(t, r, withAttachments())

	rec := withAttachments()
	rec.Thumbnail = snapshot.Thumbnail{ID: "P2"}
	rec.Attachments = append(rec.Attachments, snapshot.Attachment{
		Typename: snapshot.PreviewAttachment, ID: "P2", Kind: "image", URL: "https://cdn/p2.jpg",
	})
	rep := run(t, r, rec)

	assert.Equal(t, report.Summary{UpdatedAssets: 1, NewPreviewImages: 1}, rep.Summary())
	assert.Equal(t, []report.Event{{Asset: "Rock01", Category: "Stone"}}, rep.Events(report.NewPreviewImage))

	revisions := assetRevisions(t, c, "X1")
	require.Len(t, revisions, 2)
	assert.NotEqual(t, revisions[0].ThumbnailID, revisions[1].ThumbnailID)
}

func TestReconcile_NewFileVersion(t *testing.T) {
	r, c := setup(t)
	run(t, r, withAttachments())

	rec := withAttachments()
	rec.Attachments[1].Revisions = []snapshot.RemoteRevision{
		{Filename: "rock.sbsar", Size: 10, Revision: 1},
		{Filename: "rock_fixed.sbsar", Size: 12, Revision: 1},
		{Filename: "rock_v2.sbsar", Size: 20, Revision: 2},
	}
	rep := run(t, r, rec)

	assert.Equal(t, report.Summary{NewFileVersions: 1}, rep.Summary())
	assert.Equal(t, []report.Event{{Asset: "Rock01", Category: "Stone", Filename: "rock_fixed.sbsar", Revision: 1}},
		rep.Events(report.NewFileVersion))

	download, err := c.DownloadByOriginalID(context.Background(), "D1")
	require.NoError(t, err)
	files, err := c.Revisions(context.Background(), download.ID)
	require.NoError(t, err)
	assert.Len(t, files, 3)

	rep = run(t, r, rec)
	assert.True(t, rep.Empty())
}

func TestReconcile_UnknownAttachmentIsSkipped(t *testing.T) {
	_, c := setup(t)
	core, logs := observer.New(zapcore.WarnLevel)
	r := reconcile.New(c, zap.New(core))

	rec := rock()
	rec.Attachments = []snapshot.Attachment{{Typename: "ModelAttachment", ID: "M1"}}
	rep := run(t, r, rec)

	assert.Equal(t, report.Summary{NewAssets: 1}, rep.Summary())
	entries := logs.FilterMessage("Skipping attachment").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "M1", entries[0].ContextMap()["attachment_id"])
}

func TestReconcile_MultipleActiveCategoriesFails(t *testing.T) {
	r, c := setup(t)
	ctx := context.Background()
	run(t, r, rock())

	asset, err := c.AssetByOriginalID(ctx, "X1")
	require.NoError(t, err)
	require.NoError(t, c.CreateAssetCategory(ctx, &models.AssetCategory{AssetID: asset.ID, CategoryID: 99, IsActive: true}))

	_, err = r.Reconcile(ctx, []snapshot.Record{rock()})
	assert.ErrorIs(t, err, store.ErrMultipleActiveCategories)
}

func TestReconcile_RecordsKeepSnapshotOrder(t *testing.T) {
	r, _ := setup(t)

	second := rock()
	second.ID = "X2"
	second.Title = "Plank"
	second.Categories = []string{"Wood"}
	rep := run(t, r, rock(), second)

	assert.Equal(t, []report.Event{
		{Asset: "Rock01", Category: "Stone"},
		{Asset: "Plank", Category: "Wood"},
	}, rep.Events(report.NewAsset))
}

func TestReconcile_StoreErrorAborts(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `tag`")).
		WillReturnError(errors.New("connection refused"))

	r := reconcile.New(store.NewCatalog(store.New(db)), zap.NewNop())
	_, err = r.Reconcile(context.Background(), []snapshot.Record{rock()})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReconcile_CancelledContext(t *testing.T) {
	r, _ := setup(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Reconcile(ctx, []snapshot.Record{rock()})
	assert.Error(t, err)
}
