package handlers

import (
	"log"

	"bakehouse/internal/services"

	"github.com/gofiber/fiber/v2"
)

// AnalyticsHandler serves the admin dashboard summary.
type AnalyticsHandler struct {
	service *services.AnalyticsService
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(service *services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{
		service: service,
	}
}

// RegisterAdminRoutes registers the analytics route.
func (h *AnalyticsHandler) RegisterAdminRoutes(router fiber.Router) {
	router.Get("/analytics", h.HandleGetSummary)
}

// HandleGetSummary computes the dashboard for the last ?days= days
// (default 30).
func (h *AnalyticsHandler) HandleGetSummary(c *fiber.Ctx) error {
	days := c.QueryInt("days", 30)

	summary, err := h.service.Summary(days)
	if err != nil {
		log.Printf("Error computing analytics summary: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not compute analytics",
			"error":   err.Error(),
		})
	}
	return c.JSON(summary)
}
