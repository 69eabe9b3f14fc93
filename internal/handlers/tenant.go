package handlers

import (
	"github.com/clubstack/backend/internal/services"
	"github.com/clubstack/backend/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// TenantHandler exposes platform administration of clubs. Superadmin only.
type TenantHandler struct {
	tenantService *services.TenantService
}

func NewTenantHandler(db *gorm.DB) *TenantHandler {
	return &TenantHandler{
		tenantService: services.NewTenantService(db),
	}
}

// List returns all clubs
// GET /api/tenants
func (h *TenantHandler) List(c *gin.Context) {
	tenants, err := h.tenantService.ListTenants()
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, tenants)
}

// GetByID returns one club
// GET /api/tenants/:id
func (h *TenantHandler) GetByID(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	tenant, err := h.tenantService.GetTenant(id)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, tenant)
}

// Create provisions a club with its default evaluation criteria
// POST /api/tenants
func (h *TenantHandler) Create(c *gin.Context) {
	var req services.CreateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	tenant, err := h.tenantService.CreateTenant(&req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Created(c, tenant)
}

// Update renames or (de)activates a club
// PUT /api/tenants/:id
func (h *TenantHandler) Update(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	tenant, err := h.tenantService.UpdateTenant(id, &req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, tenant)
}
