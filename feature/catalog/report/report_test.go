package report_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"asset-catalog/core/storage/mocks"
	"asset-catalog/feature/catalog/report"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func sampleReport() *report.Report {
	r := report.New()
	r.AddNewAsset("Rock01", "Stone")
	r.AddNewAsset("Plank", "Wood")
	r.AddEditedAsset("Moss", "Ground", `New status changed from "true" to "false"`)
	r.AddUpdatedAsset("Brick", "Stone", `Title changed from "Brik" to "Brick"`)
	r.AddChangedCategory("Log", "Stone", "Wood")
	r.AddNewPreviewImage("Brick", "Stone")
	r.AddNewFileVersion("Brick", "Stone", "brick_v2.sbsar", 2)
	return r
}

func TestRender(t *testing.T) {
	expected := "New assets: 2\n\n" +
		"Stone -- Rock01\n" +
		"Wood -- Plank\n" +
		"\n" +
		"Edited assets (small change): 1\n\n" +
		"Ground -- Moss (New status changed from \"true\" to \"false\")\n" +
		"\n" +
		"Updated assets (new revision): 1\n\n" +
		"Stone -- Brick (Title changed from \"Brik\" to \"Brick\")\n" +
		"\n" +
		"Changed Category: 1\n\n" +
		"Log -- *From* Stone *To* Wood\n" +
		"\n" +
		"New preview image: 1\n\n" +
		"Stone -- Brick\n" +
		"\n" +
		"New File Versions 1:\n\n" +
		"Stone -- Brick -- brick_v2.sbsar -- Revision 2\n" +
		"\n"

	assert.Equal(t, expected, sampleReport().Render())
}

func TestRender_OmitsEmptyBuckets(t *testing.T) {
	r := report.New()
	r.AddChangedCategory("Log", "Stone", "Wood")

	assert.Equal(t, "Changed Category: 1\n\nLog -- *From* Stone *To* Wood\n\n", r.Render())
	assert.Empty(t, report.New().Render())
}

func TestSummary(t *testing.T) {
	s := sampleReport().Summary()

	assert.Equal(t, 2, s.NewAssets)
	assert.Equal(t, 1, s.EditedAssets)
	assert.Equal(t, 1, s.UpdatedAssets)
	assert.Equal(t, 1, s.ChangedCategory)
	assert.Equal(t, 1, s.NewPreviewImages)
	assert.Equal(t, 1, s.NewFileVersions)

	assert.Equal(t, []string{
		"New elements - 2",
		"Updated elements - 1",
		"Edited elements - 1",
		"Changed category - 1",
		"File new versions - 1",
		"New preview images - 1",
	}, s.Lines())
	assert.Equal(t, 2, s.Map()["new_asset"])
}

func TestEmpty(t *testing.T) {
	r := report.New()
	assert.True(t, r.Empty())
	r.AddNewPreviewImage("Brick", "Stone")
	assert.False(t, r.Empty())
	assert.Len(t, r.Events(report.NewPreviewImage), 1)
}

func TestFileName(t *testing.T) {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	assert.Equal(t, "Scan Report_20240102-030405.txt", report.FileName("Scan Report.txt", now))
	assert.Equal(t, "report_20240102-030405", report.FileName("report", now))
}

func fixedClock() time.Time {
	return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
}

func TestWriter_WritesFile(t *testing.T) {
	dir := t.TempDir()
	w := report.NewWriter(report.Options{Dir: dir, Name: "Scan Report.txt"}, nil).WithClock(fixedClock)

	res, err := w.Write(context.Background(), sampleReport())
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, filepath.Join(dir, "Scan Report_20240102-030405.txt"), res.Path)
	assert.Empty(t, res.Key)

	content, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	assert.Equal(t, sampleReport().Render(), string(content))
}

func TestWriter_SkipsEmptyReport(t *testing.T) {
	dir := t.TempDir()
	w := report.NewWriter(report.Options{Dir: dir, Name: "Scan Report.txt"}, nil)

	res, err := w.Write(context.Background(), report.New())
	require.NoError(t, err)
	assert.Nil(t, res)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestWriter_Uploads(t *testing.T) {
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "catalog").Return(true, nil)
	client.On("PutObject", mock.Anything, "catalog", "reports/Scan Report_20240102-030405.txt",
		mock.Anything, mock.AnythingOfType("int64"), mock.Anything).
		Return(minio.UploadInfo{Key: "reports/Scan Report_20240102-030405.txt"}, nil)

	w := report.NewWriter(report.Options{
		Dir:    t.TempDir(),
		Name:   "Scan Report.txt",
		Upload: true,
		Bucket: "catalog",
		Prefix: "reports",
	}, client).WithClock(fixedClock)

	res, err := w.Write(context.Background(), sampleReport())
	require.NoError(t, err)
	assert.Equal(t, "reports/Scan Report_20240102-030405.txt", res.Key)
	client.AssertExpectations(t)
}

func TestWriter_UploadFailure(t *testing.T) {
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "catalog").Return(true, nil)
	client.On("PutObject", mock.Anything, "catalog", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, errors.New("access denied"))

	w := report.NewWriter(report.Options{
		Dir:    t.TempDir(),
		Name:   "Scan Report.txt",
		Upload: true,
		Bucket: "catalog",
		Prefix: "reports",
	}, client)

	res, err := w.Write(context.Background(), sampleReport())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "access denied")
	require.NotNil(t, res)
	assert.FileExists(t, res.Path)
}

func TestWriter_CreatesMissingBucket(t *testing.T) {
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "catalog").Return(false, nil).Once()
	client.On("MakeBucket", mock.Anything, "catalog", mock.Anything).Return(nil).Once()
	client.On("PutObject", mock.Anything, "catalog", "reports/Scan Report_20240102-030405.txt",
		mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, nil)

	w := report.NewWriter(report.Options{
		Dir:    t.TempDir(),
		Name:   "Scan Report.txt",
		Upload: true,
		Bucket: "catalog",
		Prefix: "reports",
	}, client).WithClock(fixedClock)

	res, err := w.Write(context.Background(), sampleReport())
	require.NoError(t, err)
	assert.Equal(t, "reports/Scan Report_20240102-030405.txt", res.Key)
	client.AssertExpectations(t)
}

func TestWriter_BucketCheckFails(t *testing.T) {
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "catalog").Return(false, errors.New("timeout"))

	w := report.NewWriter(report.Options{
		Dir:    t.TempDir(),
		Name:   "Scan Report.txt",
		Upload: true,
		Bucket: "catalog",
	}, client)

	res, err := w.Write(context.Background(), sampleReport())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timeout")
	require.NotNil(t, res)
	assert.Empty(t, res.Key)
	assert.FileExists(t, res.Path)
	client.AssertNotCalled(t, "PutObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
