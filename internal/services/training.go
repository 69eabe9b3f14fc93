package services

import (
	"errors"
	"fmt"

	"github.com/clubstack/backend/internal/models"
	"gorm.io/gorm"
)

// TrainingService manages sessions, attendance, and evaluations.
type TrainingService struct {
	db        *gorm.DB
	repo      *ScopedRepo[models.Training, *models.Training]
	charRepo  *ScopedRepo[models.TrainingCharacteristic, *models.TrainingCharacteristic]
	players   *ScopedRepo[models.Player, *models.Player]
}

func NewTrainingService(db *gorm.DB) *TrainingService {
	return &TrainingService{
		db:       db,
		repo:     NewScopedRepo[models.Training, *models.Training](db),
		charRepo: NewScopedRepo[models.TrainingCharacteristic, *models.TrainingCharacteristic](db),
		players:  NewScopedRepo[models.Player, *models.Player](db),
	}
}

type TrainingListRequest struct {
	From string `form:"from"` // YYYY-MM-DD
	To   string `form:"to"`
}

// List returns the tenant's trainings, newest first.
func (s *TrainingService) List(scope *Scope, req *TrainingListRequest) ([]models.Training, error) {
	opts := []QueryOption{WithOrder("date DESC")}
	if req != nil {
		if req.From != "" {
			from, err := parseDate(req.From)
			if err != nil {
				return nil, err
			}
			opts = append(opts, WithFilter("date >= ?", *from))
		}
		if req.To != "" {
			to, err := parseDate(req.To)
			if err != nil {
				return nil, err
			}
			opts = append(opts, WithFilter("date <= ?", *to))
		}
	}
	return s.repo.List(scope, opts...)
}

func (s *TrainingService) Get(scope *Scope, id string) (*models.Training, error) {
	return s.repo.Get(scope, id)
}

type CreateTrainingRequest struct {
	Date  string `json:"date" binding:"required"`
	Notes string `json:"notes"`
}

func (s *TrainingService) Create(scope *Scope, req *CreateTrainingRequest) (*models.Training, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}
	if date == nil {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	training := models.Training{
		Date:      *date,
		Notes:     req.Notes,
		CreatedBy: scope.UserID,
	}
	if err := s.repo.Create(scope, &training); err != nil {
		return nil, err
	}
	return &training, nil
}

type UpdateTrainingRequest struct {
	Date  *string `json:"date"`
	Notes *string `json:"notes"`
}

func (s *TrainingService) Update(scope *Scope, id string, req *UpdateTrainingRequest) (*models.Training, error) {
	fields := map[string]interface{}{}
	if req.Date != nil {
		d, err := parseDate(*req.Date)
		if err != nil {
			return nil, err
		}
		if d == nil {
			return nil, fmt.Errorf("%w: date cannot be empty", ErrInvalidInput)
		}
		fields["date"] = *d
	}
	if req.Notes != nil {
		fields["notes"] = *req.Notes
	}
	if len(fields) == 0 {
		return s.repo.Get(scope, id)
	}
	return s.repo.Update(scope, id, fields)
}

// Delete removes a training and its attendance/evaluation children.
func (s *TrainingService) Delete(scope *Scope, id string) error {
	if !scope.Valid() {
		return ErrNoTenant
	}

	if _, err := s.repo.Get(scope, id); err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("training_id = ? AND tenant_id = ?", id, scope.TenantID).
			Delete(&models.PlayerEvaluation{}).Error; err != nil {
			return err
		}
		if err := tx.Where("training_id = ? AND tenant_id = ?", id, scope.TenantID).
			Delete(&models.TrainingAttendance{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ? AND tenant_id = ?", id, scope.TenantID).
			Delete(&models.Training{}).Error
	})
}

// --- Attendance ---

type MarkAttendanceRequest struct {
	PlayerID string `json:"player_id" binding:"required"`
	Status   string `json:"status" binding:"required"`
	Notes    string `json:"notes"`
}

// MarkAttendance records or updates one player's attendance for a
// training. Both training and player must belong to the scope's tenant.
func (s *TrainingService) MarkAttendance(scope *Scope, trainingID string, req *MarkAttendanceRequest) (*models.TrainingAttendance, error) {
	if !scope.Valid() {
		return nil, ErrNoTenant
	}
	if !models.ValidAttendanceStatus(req.Status) {
		return nil, fmt.Errorf("%w: unknown attendance status %q", ErrInvalidInput, req.Status)
	}

	if _, err := s.repo.Get(scope, trainingID); err != nil {
		return nil, err
	}
	if _, err := s.players.Get(scope, req.PlayerID); err != nil {
		return nil, err
	}

	var attendance models.TrainingAttendance
	err := s.db.Where("training_id = ? AND player_id = ? AND tenant_id = ?", trainingID, req.PlayerID, scope.TenantID).
		First(&attendance).Error
	switch {
	case err == nil:
		updates := map[string]interface{}{
			"status":    req.Status,
			"notes":     req.Notes,
			"marked_by": scope.UserID,
		}
		if err := s.db.Model(&attendance).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		attendance = models.TrainingAttendance{
			TenantID:   scope.TenantID,
			TrainingID: trainingID,
			PlayerID:   req.PlayerID,
			Status:     req.Status,
			Notes:      req.Notes,
			MarkedBy:   scope.UserID,
		}
		if err := s.db.Create(&attendance).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, ErrConflict
			}
			return nil, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
		}
	default:
		return nil, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}

	return &attendance, nil
}

// ListAttendance returns the attendance sheet of one training.
// Player-role callers only see their own row.
func (s *TrainingService) ListAttendance(scope *Scope, trainingID string) ([]models.TrainingAttendance, error) {
	if !scope.Valid() {
		return nil, ErrNoTenant
	}
	if _, err := s.repo.Get(scope, trainingID); err != nil {
		return nil, err
	}

	query := s.db.Where("training_id = ? AND tenant_id = ?", trainingID, scope.TenantID)
	if OwnOnly(scope.Role, EntityTrainings) {
		if scope.PlayerID == nil {
			return []models.TrainingAttendance{}, nil
		}
		query = query.Where("player_id = ?", *scope.PlayerID)
	}

	var items []models.TrainingAttendance
	if err := query.Order("created_at ASC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	return items, nil
}

// --- Evaluations ---

type EvaluatePlayerRequest struct {
	PlayerID         string `json:"player_id" binding:"required"`
	CharacteristicID string `json:"characteristic_id" binding:"required"`
	Score            int    `json:"score" binding:"required,min=1,max=10"`
	Notes            string `json:"notes"`
}

// EvaluatePlayer scores one characteristic for one player at a training.
// The player must have been marked present first; evaluating an absent or
// excused player is rejected.
func (s *TrainingService) EvaluatePlayer(scope *Scope, trainingID string, req *EvaluatePlayerRequest) (*models.PlayerEvaluation, error) {
	if !scope.Valid() {
		return nil, ErrNoTenant
	}

	if _, err := s.repo.Get(scope, trainingID); err != nil {
		return nil, err
	}
	if _, err := s.charRepo.Get(scope, req.CharacteristicID); err != nil {
		return nil, err
	}

	var attendance models.TrainingAttendance
	err := s.db.Where("training_id = ? AND player_id = ? AND tenant_id = ?", trainingID, req.PlayerID, scope.TenantID).
		First(&attendance).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: player has no attendance record for this training", ErrInvalidInput)
		}
		return nil, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	if attendance.Status != models.AttendancePresent {
		return nil, fmt.Errorf("%w: cannot evaluate a player marked %q", ErrInvalidInput, attendance.Status)
	}

	var eval models.PlayerEvaluation
	err = s.db.Where("training_id = ? AND player_id = ? AND characteristic_id = ? AND tenant_id = ?",
		trainingID, req.PlayerID, req.CharacteristicID, scope.TenantID).
		First(&eval).Error
	switch {
	case err == nil:
		updates := map[string]interface{}{
			"score":        req.Score,
			"notes":        req.Notes,
			"evaluated_by": scope.UserID,
		}
		if err := s.db.Model(&eval).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		eval = models.PlayerEvaluation{
			TenantID:         scope.TenantID,
			TrainingID:       trainingID,
			PlayerID:         req.PlayerID,
			CharacteristicID: req.CharacteristicID,
			Score:            req.Score,
			Notes:            req.Notes,
			EvaluatedBy:      scope.UserID,
		}
		if err := s.db.Create(&eval).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, ErrConflict
			}
			return nil, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
		}
	default:
		return nil, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}

	return &eval, nil
}

// ListEvaluations returns the evaluations recorded for one training.
// Player-role callers only see their own scores.
func (s *TrainingService) ListEvaluations(scope *Scope, trainingID string) ([]models.PlayerEvaluation, error) {
	if !scope.Valid() {
		return nil, ErrNoTenant
	}
	if _, err := s.repo.Get(scope, trainingID); err != nil {
		return nil, err
	}

	query := s.db.Where("training_id = ? AND tenant_id = ?", trainingID, scope.TenantID)
	if OwnOnly(scope.Role, EntityTrainings) {
		if scope.PlayerID == nil {
			return []models.PlayerEvaluation{}, nil
		}
		query = query.Where("player_id = ?", *scope.PlayerID)
	}

	var items []models.PlayerEvaluation
	if err := query.Order("created_at ASC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	return items, nil
}

// --- Characteristics ---

func (s *TrainingService) ListCharacteristics(scope *Scope) ([]models.TrainingCharacteristic, error) {
	return s.charRepo.List(scope, WithOrder("name ASC"))
}

type CharacteristicRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

func (s *TrainingService) CreateCharacteristic(scope *Scope, req *CharacteristicRequest) (*models.TrainingCharacteristic, error) {
	char := models.TrainingCharacteristic{
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.charRepo.Create(scope, &char); err != nil {
		return nil, err
	}
	return &char, nil
}

func (s *TrainingService) UpdateCharacteristic(scope *Scope, id string, req *CharacteristicRequest) (*models.TrainingCharacteristic, error) {
	return s.charRepo.Update(scope, id, map[string]interface{}{
		"name":        req.Name,
		"description": req.Description,
	})
}

func (s *TrainingService) DeleteCharacteristic(scope *Scope, id string) error {
	if !scope.Valid() {
		return ErrNoTenant
	}

	var inUse int64
	s.db.Model(&models.PlayerEvaluation{}).
		Where("characteristic_id = ? AND tenant_id = ?", id, scope.TenantID).
		Count(&inUse)
	if inUse > 0 {
		return ErrConflict
	}

	return s.charRepo.Delete(scope, id)
}

// TrainingSummary aggregates one session for dashboards.
type TrainingSummary struct {
	Training     models.Training `json:"training"`
	PresentCount int64           `json:"present_count"`
	AbsentCount  int64           `json:"absent_count"`
	ExcusedCount int64           `json:"excused_count"`
	Evaluations  int64           `json:"evaluations"`
}

// Summarize returns attendance/evaluation counts for one training.
func (s *TrainingService) Summarize(scope *Scope, trainingID string) (*TrainingSummary, error) {
	training, err := s.repo.Get(scope, trainingID)
	if err != nil {
		return nil, err
	}

	summary := TrainingSummary{Training: *training}
	base := s.db.Model(&models.TrainingAttendance{}).
		Where("training_id = ? AND tenant_id = ?", trainingID, scope.TenantID)

	base.Session(&gorm.Session{}).Where("status = ?", models.AttendancePresent).Count(&summary.PresentCount)
	base.Session(&gorm.Session{}).Where("status = ?", models.AttendanceAbsent).Count(&summary.AbsentCount)
	base.Session(&gorm.Session{}).Where("status = ?", models.AttendanceExcused).Count(&summary.ExcusedCount)

	s.db.Model(&models.PlayerEvaluation{}).
		Where("training_id = ? AND tenant_id = ?", trainingID, scope.TenantID).
		Count(&summary.Evaluations)

	return &summary, nil
}
