package handlers

import (
	"strconv"

	"github.com/clubstack/backend/internal/middleware"
	"github.com/clubstack/backend/internal/services"
	"github.com/clubstack/backend/internal/utils"
	"github.com/clubstack/backend/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// UserHandler administers memberships and invitations inside one club.
type UserHandler struct {
	tenantService *services.TenantService
}

func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{
		tenantService: services.NewTenantService(db),
	}
}

func parseUintParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}

// List returns the club's memberships
// GET /api/users
func (h *UserHandler) List(c *gin.Context) {
	var req services.MembershipListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.tenantService.ListMemberships(middleware.GetScope(c), &req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, resp)
}

// Create adds a user account with a membership in the club
// POST /api/users
func (h *UserHandler) Create(c *gin.Context) {
	var req services.CreateMembershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		response.ServerError(c, "failed to hash password")
		return
	}

	membership, err := h.tenantService.CreateMembership(middleware.GetScope(c), &req, hash)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Created(c, membership)
}

// Update changes a membership's role or player link
// PUT /api/users/:id
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdateMembershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	membership, err := h.tenantService.UpdateMembership(middleware.GetScope(c), id, &req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, membership)
}

// Delete removes a membership from the club
// DELETE /api/users/:id
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	if err := h.tenantService.DeleteMembership(middleware.GetScope(c), id); err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, gin.H{"message": "membership removed"})
}

// --- Invitations ---

// ListInvitations returns the club's pending and accepted invitations
// GET /api/users/invitations
func (h *UserHandler) ListInvitations(c *gin.Context) {
	invitations, err := h.tenantService.ListInvitations(middleware.GetScope(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, invitations)
}

// CreateInvitation invites an email address into the club
// POST /api/users/invitations
func (h *UserHandler) CreateInvitation(c *gin.Context) {
	var req services.CreateInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	invitation, err := h.tenantService.CreateInvitation(middleware.GetScope(c), &req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Created(c, invitation)
}

// DeleteInvitation withdraws a pending invitation
// DELETE /api/users/invitations/:id
func (h *UserHandler) DeleteInvitation(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	if err := h.tenantService.DeleteInvitation(middleware.GetScope(c), id); err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, gin.H{"message": "invitation deleted"})
}
