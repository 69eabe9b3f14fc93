package handlers

import (
	"github.com/clubstack/backend/internal/config"
	"github.com/clubstack/backend/internal/middleware"
	"github.com/clubstack/backend/internal/services"
	"github.com/clubstack/backend/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type PlayerHandler struct {
	playerService *services.PlayerService
	windowDays    int
}

func NewPlayerHandler(db *gorm.DB, cfg *config.Config) *PlayerHandler {
	return &PlayerHandler{
		playerService: services.NewPlayerService(db),
		windowDays:    cfg.Reminders.WindowDays,
	}
}

// List returns the club's roster
// GET /api/players
func (h *PlayerHandler) List(c *gin.Context) {
	var req services.PlayerListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	players, err := h.playerService.List(middleware.GetScope(c), &req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, players)
}

// GetByID returns one player
// GET /api/players/:id
func (h *PlayerHandler) GetByID(c *gin.Context) {
	player, err := h.playerService.Get(middleware.GetScope(c), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, player)
}

// Create adds a player to the roster
// POST /api/players
func (h *PlayerHandler) Create(c *gin.Context) {
	var req services.CreatePlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	player, err := h.playerService.Create(middleware.GetScope(c), &req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Created(c, player)
}

// Update patches a player
// PUT /api/players/:id
func (h *PlayerHandler) Update(c *gin.Context) {
	var req services.UpdatePlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	player, err := h.playerService.Update(middleware.GetScope(c), c.Param("id"), &req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, player)
}

// Delete removes a player
// DELETE /api/players/:id
func (h *PlayerHandler) Delete(c *gin.Context) {
	if err := h.playerService.Delete(middleware.GetScope(c), c.Param("id")); err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, gin.H{"message": "player deleted"})
}

// Expiring lists players with documents expiring inside the window
// GET /api/players/expiring
func (h *PlayerHandler) Expiring(c *gin.Context) {
	expiring, err := h.playerService.ListExpiringCredentials(middleware.GetScope(c), h.windowDays)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, expiring)
}
