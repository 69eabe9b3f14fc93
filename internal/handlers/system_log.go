package handlers

import (
	"github.com/clubstack/backend/internal/services"
	"github.com/clubstack/backend/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SystemLogHandler exposes the audit trail. Superadmin only.
type SystemLogHandler struct {
	systemLogService *services.SystemLogService
}

func NewSystemLogHandler(db *gorm.DB) *SystemLogHandler {
	return &SystemLogHandler{
		systemLogService: services.NewSystemLogService(db),
	}
}

// List returns filtered audit log entries
// GET /api/system-logs
func (h *SystemLogHandler) List(c *gin.Context) {
	var req services.SystemLogListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.systemLogService.List(&req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, resp)
}

// GetModules returns the distinct modules seen in the audit trail
// GET /api/system-logs/modules
func (h *SystemLogHandler) GetModules(c *gin.Context) {
	modules, err := h.systemLogService.GetModules()
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, gin.H{"modules": modules})
}
