package handlers

import (
	"github.com/clubstack/backend/internal/middleware"
	"github.com/clubstack/backend/internal/services"
	"github.com/clubstack/backend/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type MatchHandler struct {
	matchService *services.MatchService
}

func NewMatchHandler(db *gorm.DB) *MatchHandler {
	return &MatchHandler{
		matchService: services.NewMatchService(db),
	}
}

// List returns the club's matches
// GET /api/matches
func (h *MatchHandler) List(c *gin.Context) {
	var req services.MatchListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	matches, err := h.matchService.List(middleware.GetScope(c), &req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, matches)
}

// GetByID returns one match
// GET /api/matches/:id
func (h *MatchHandler) GetByID(c *gin.Context) {
	match, err := h.matchService.Get(middleware.GetScope(c), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, match)
}

// Create schedules a match
// POST /api/matches
func (h *MatchHandler) Create(c *gin.Context) {
	var req services.CreateMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	match, err := h.matchService.Create(middleware.GetScope(c), &req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Created(c, match)
}

// Update patches a match
// PUT /api/matches/:id
func (h *MatchHandler) Update(c *gin.Context) {
	var req services.UpdateMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	match, err := h.matchService.Update(middleware.GetScope(c), c.Param("id"), &req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, match)
}

// Delete removes a match with its stat lines
// DELETE /api/matches/:id
func (h *MatchHandler) Delete(c *gin.Context) {
	if err := h.matchService.Delete(middleware.GetScope(c), c.Param("id")); err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, gin.H{"message": "match deleted"})
}

// RecordScore sets the final result
// PUT /api/matches/:id/score
func (h *MatchHandler) RecordScore(c *gin.Context) {
	var req services.RecordScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	match, err := h.matchService.RecordScore(middleware.GetScope(c), c.Param("id"), &req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, match)
}

// ListStats returns the stat lines of one match
// GET /api/matches/:id/stats
func (h *MatchHandler) ListStats(c *gin.Context) {
	stats, err := h.matchService.ListStats(middleware.GetScope(c), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, stats)
}

// RecordStat records one player's stat line
// PUT /api/matches/:id/stats
func (h *MatchHandler) RecordStat(c *gin.Context) {
	var req services.RecordStatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	stat, err := h.matchService.RecordStat(middleware.GetScope(c), c.Param("id"), &req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, stat)
}

// DeleteStat removes one player's stat line
// DELETE /api/matches/:id/stats/:playerId
func (h *MatchHandler) DeleteStat(c *gin.Context) {
	if err := h.matchService.DeleteStat(middleware.GetScope(c), c.Param("id"), c.Param("playerId")); err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, gin.H{"message": "stat line deleted"})
}

// PlayerStats totals one player's appearances
// GET /api/players/:id/stats
func (h *MatchHandler) PlayerStats(c *gin.Context) {
	stats, err := h.matchService.PlayerStats(middleware.GetScope(c), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, stats)
}
