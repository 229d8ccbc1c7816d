package handlers

import (
	"budgethub/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type DashboardHandler struct {
	dashboardService *service.DashboardService
	logger           *zap.Logger
}

func NewDashboardHandler(dashboardService *service.DashboardService, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		logger:           logger,
	}
}

// Weekly godoc
// @Summary Weekly spending summary
// @Description This week's and last week's totals with the percent change
// @Tags dashboard
// @Produce json
// @Success 200 {object} dto.WeeklySummaryResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /dashboard/weekly [get]
func (h *DashboardHandler) Weekly(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	summary, err := h.dashboardService.WeeklySummary(c.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to build weekly summary", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to build weekly summary",
		})
	}

	return c.JSON(summary)
}
