package handlers

import (
	"github.com/clubstack/backend/internal/config"
	"github.com/clubstack/backend/internal/middleware"
	"github.com/clubstack/backend/internal/services"
	"github.com/clubstack/backend/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type DashboardHandler struct {
	dashboardService *services.DashboardService
	windowDays       int
}

func NewDashboardHandler(db *gorm.DB, cfg *config.Config) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: services.NewDashboardService(db),
		windowDays:       cfg.Reminders.WindowDays,
	}
}

// GetStats returns the club's dashboard counters and recent activity
// GET /api/dashboard/stats
func (h *DashboardHandler) GetStats(c *gin.Context) {
	stats, err := h.dashboardService.GetStats(middleware.GetScope(c), h.windowDays)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, stats)
}
