package handlers

import (
	"github.com/clubstack/backend/internal/middleware"
	"github.com/clubstack/backend/internal/services"
	"github.com/clubstack/backend/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type TrainingHandler struct {
	trainingService *services.TrainingService
}

func NewTrainingHandler(db *gorm.DB) *TrainingHandler {
	return &TrainingHandler{
		trainingService: services.NewTrainingService(db),
	}
}

// List returns the club's training sessions
// GET /api/trainings
func (h *TrainingHandler) List(c *gin.Context) {
	var req services.TrainingListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	trainings, err := h.trainingService.List(middleware.GetScope(c), &req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, trainings)
}

// GetByID returns one training with attendance/evaluation counts
// GET /api/trainings/:id
func (h *TrainingHandler) GetByID(c *gin.Context) {
	summary, err := h.trainingService.Summarize(middleware.GetScope(c), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, summary)
}

// Create schedules a training
// POST /api/trainings
func (h *TrainingHandler) Create(c *gin.Context) {
	var req services.CreateTrainingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	training, err := h.trainingService.Create(middleware.GetScope(c), &req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Created(c, training)
}

// Update patches a training
// PUT /api/trainings/:id
func (h *TrainingHandler) Update(c *gin.Context) {
	var req services.UpdateTrainingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	training, err := h.trainingService.Update(middleware.GetScope(c), c.Param("id"), &req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, training)
}

// Delete removes a training with its attendance and evaluations
// DELETE /api/trainings/:id
func (h *TrainingHandler) Delete(c *gin.Context) {
	if err := h.trainingService.Delete(middleware.GetScope(c), c.Param("id")); err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, gin.H{"message": "training deleted"})
}

// ListAttendance returns the attendance sheet
// GET /api/trainings/:id/attendance
func (h *TrainingHandler) ListAttendance(c *gin.Context) {
	items, err := h.trainingService.ListAttendance(middleware.GetScope(c), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, items)
}

// MarkAttendance records one player's attendance
// PUT /api/trainings/:id/attendance
func (h *TrainingHandler) MarkAttendance(c *gin.Context) {
	var req services.MarkAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	attendance, err := h.trainingService.MarkAttendance(middleware.GetScope(c), c.Param("id"), &req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, attendance)
}

// ListEvaluations returns the evaluations of one training
// GET /api/trainings/:id/evaluations
func (h *TrainingHandler) ListEvaluations(c *gin.Context) {
	items, err := h.trainingService.ListEvaluations(middleware.GetScope(c), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, items)
}

// EvaluatePlayer scores one characteristic for a present player
// POST /api/trainings/:id/evaluations
func (h *TrainingHandler) EvaluatePlayer(c *gin.Context) {
	var req services.EvaluatePlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	eval, err := h.trainingService.EvaluatePlayer(middleware.GetScope(c), c.Param("id"), &req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, eval)
}

// --- Characteristics ---

// ListCharacteristics returns the tenant's evaluation criteria
// GET /api/characteristics
func (h *TrainingHandler) ListCharacteristics(c *gin.Context) {
	items, err := h.trainingService.ListCharacteristics(middleware.GetScope(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, items)
}

// CreateCharacteristic adds an evaluation criterion
// POST /api/characteristics
func (h *TrainingHandler) CreateCharacteristic(c *gin.Context) {
	var req services.CharacteristicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	char, err := h.trainingService.CreateCharacteristic(middleware.GetScope(c), &req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Created(c, char)
}

// UpdateCharacteristic renames an evaluation criterion
// PUT /api/characteristics/:id
func (h *TrainingHandler) UpdateCharacteristic(c *gin.Context) {
	var req services.CharacteristicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	char, err := h.trainingService.UpdateCharacteristic(middleware.GetScope(c), c.Param("id"), &req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, char)
}

// DeleteCharacteristic removes an unused evaluation criterion
// DELETE /api/characteristics/:id
func (h *TrainingHandler) DeleteCharacteristic(c *gin.Context) {
	if err := h.trainingService.DeleteCharacteristic(middleware.GetScope(c), c.Param("id")); err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, gin.H{"message": "characteristic deleted"})
}
