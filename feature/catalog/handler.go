package catalog

import (
	"errors"
	"strconv"

	"asset-catalog/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const defaultRunLimit = 20

// Handler handles HTTP requests for the catalog.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the catalog routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/catalog")
	group.Get("/assets/:originalId", h.HandleGetAsset)
	group.Get("/runs", h.HandleListRuns)
	group.Get("/reports", h.HandleListReports)
}

// HandleGetAsset returns the current state of one asset.
func (h *Handler) HandleGetAsset(c *fiber.Ctx) error {
	originalID := c.Params("originalId")
	l := logger.WithRayID(h.service.logger, c)

	detail, err := h.service.GetAssetDetail(c.Context(), originalID)
	if errors.Is(err, ErrAssetNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	if err != nil {
		l.Error("Asset lookup failed", zap.String("original_id", originalID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(detail)
}

// HandleListRuns returns the most recent reconciliation runs.
func (h *Handler) HandleListRuns(c *fiber.Ctx) error {
	limit := defaultRunLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "limit must be a non-negative integer",
			})
		}
		limit = n
	}

	runs, err := h.service.RecentRuns(c.Context(), limit)
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Listing runs failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(runs)
}

// HandleListReports returns the reports uploaded to object storage.
func (h *Handler) HandleListReports(c *fiber.Ctx) error {
	reports, err := h.service.ListReports(c.Context())
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Listing reports failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(reports)
}
