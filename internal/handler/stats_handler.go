package handler

import (
	"go-catalog-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

type StatsHandler struct {
	service service.StatsService
}

func NewStatsHandler(s service.StatsService) *StatsHandler {
	return &StatsHandler{service: s}
}

// GetCatalogStats returns aggregate counts for the catalog
// GET /api/v1/catalog/stats
func (h *StatsHandler) GetCatalogStats(c *fiber.Ctx) error {
	stats, err := h.service.GetCatalogStats()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch catalog stats"})
	}
	return c.JSON(stats)
}
