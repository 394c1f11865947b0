package catalog_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"asset-catalog/core/loader"
	"asset-catalog/core/middleware/rayid"
	"asset-catalog/feature/catalog"
	"asset-catalog/feature/catalog/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newApp(t *testing.T, f *fixture) *fiber.App {
	t.Helper()
	app := fiber.New()
	app.Use(rayid.New())

	mgr := loader.NewManager()
	mgr.Register(catalog.NewFeature(nil, "catalog", zap.NewNop(), f.db, f.config))
	require.NoError(t, mgr.LoadAll(app))
	return app
}

func TestHandleGetAsset(t *testing.T) {
	f := newFixture(t)
	_, err := f.service(nil).Run(context.Background(), catalog.RunOptions{})
	require.NoError(t, err)
	app := newApp(t, f)

	resp, err := app.Test(httptest.NewRequest("GET", "/catalog/assets/X1", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var detail catalog.AssetDetail
	require.NoError(t, json.Unmarshal(body, &detail))
	assert.Equal(t, "Stone", detail.Category)
	require.NotNil(t, detail.Current)
	assert.Equal(t, "Rock01", detail.Current.Name)
}

func TestHandleGetAsset_NotFound(t *testing.T) {
	app := newApp(t, newFixture(t))

	resp, err := app.Test(httptest.NewRequest("GET", "/catalog/assets/nope", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestHandleListRuns(t *testing.T) {
	f := newFixture(t)
	svc := f.service(nil)
	for i := 0; i < 3; i++ {
		_, err := svc.Run(context.Background(), catalog.RunOptions{})
		require.NoError(t, err)
	}
	app := newApp(t, f)

	resp, err := app.Test(httptest.NewRequest("GET", "/catalog/runs?limit=2", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var runs []models.ReconcileRun
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&runs))
	assert.Len(t, runs, 2)

	resp, err = app.Test(httptest.NewRequest("GET", "/catalog/runs?limit=abc", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestHandleListReports_NoStorage(t *testing.T) {
	app := newApp(t, newFixture(t))

	resp, err := app.Test(httptest.NewRequest("GET", "/catalog/reports", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}

func TestFeature_DisabledWithoutDatabase(t *testing.T) {
	f := catalog.NewFeature(nil, "catalog", zap.NewNop(), nil, catalog.Config{})
	assert.Equal(t, "catalog", f.Name())
	assert.False(t, f.IsEnabled())
}
