package services

import (
	"errors"
	"fmt"

	"github.com/clubstack/backend/internal/models"
	"gorm.io/gorm"
)

// MatchService manages fixtures, results, and per-player statistics.
type MatchService struct {
	db      *gorm.DB
	repo    *ScopedRepo[models.Match, *models.Match]
	players *ScopedRepo[models.Player, *models.Player]
}

func NewMatchService(db *gorm.DB) *MatchService {
	return &MatchService{
		db:      db,
		repo:    NewScopedRepo[models.Match, *models.Match](db),
		players: NewScopedRepo[models.Player, *models.Player](db),
	}
}

type MatchListRequest struct {
	From     string `form:"from"` // YYYY-MM-DD
	To       string `form:"to"`
	Opponent string `form:"opponent"`
}

// List returns the tenant's matches, newest first.
func (s *MatchService) List(scope *Scope, req *MatchListRequest) ([]models.Match, error) {
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
		if req.Opponent != "" {
			opts = append(opts, WithFilter("opponent LIKE ?", "%"+req.Opponent+"%"))
		}
	}
	return s.repo.List(scope, opts...)
}

func (s *MatchService) Get(scope *Scope, id string) (*models.Match, error) {
	return s.repo.Get(scope, id)
}

type CreateMatchRequest struct {
	Date     string `json:"date" binding:"required"`
	Opponent string `json:"opponent" binding:"required"`
	Location string `json:"location"`
	IsHome   bool   `json:"is_home"`
	Notes    string `json:"notes"`
}

func (s *MatchService) Create(scope *Scope, req *CreateMatchRequest) (*models.Match, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}
	if date == nil {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	match := models.Match{
		Date:      *date,
		Opponent:  req.Opponent,
		Location:  req.Location,
		IsHome:    req.IsHome,
		Notes:     req.Notes,
		CreatedBy: scope.UserID,
	}
	if err := s.repo.Create(scope, &match); err != nil {
		return nil, err
	}
	return &match, nil
}

type UpdateMatchRequest struct {
	Date     *string `json:"date"`
	Opponent *string `json:"opponent"`
	Location *string `json:"location"`
	IsHome   *bool   `json:"is_home"`
	Notes    *string `json:"notes"`
}

func (s *MatchService) Update(scope *Scope, id string, req *UpdateMatchRequest) (*models.Match, error) {
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
	if req.Opponent != nil {
		fields["opponent"] = *req.Opponent
	}
	if req.Location != nil {
		fields["location"] = *req.Location
	}
	if req.Notes != nil {
		fields["notes"] = *req.Notes
	}
	if req.IsHome != nil {
		fields["is_home"] = *req.IsHome
	}
	if len(fields) == 0 {
		return s.repo.Get(scope, id)
	}
	return s.repo.Update(scope, id, fields)
}

// Delete removes a match and its stat lines.
func (s *MatchService) Delete(scope *Scope, id string) error {
	if !scope.Valid() {
		return ErrNoTenant
	}

	if _, err := s.repo.Get(scope, id); err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("match_id = ? AND tenant_id = ?", id, scope.TenantID).
			Delete(&models.MatchStat{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ? AND tenant_id = ?", id, scope.TenantID).
			Delete(&models.Match{}).Error
	})
}

type RecordScoreRequest struct {
	ScoreUs   int `json:"score_us" binding:"min=0"`
	ScoreThem int `json:"score_them" binding:"min=0"`
}

// RecordScore sets the final result of a match.
func (s *MatchService) RecordScore(scope *Scope, id string, req *RecordScoreRequest) (*models.Match, error) {
	return s.repo.Update(scope, id, map[string]interface{}{
		"score_us":   req.ScoreUs,
		"score_them": req.ScoreThem,
	})
}

// --- Player statistics ---

type RecordStatRequest struct {
	PlayerID      string `json:"player_id" binding:"required"`
	MinutesPlayed int    `json:"minutes_played" binding:"min=0,max=150"`
	Goals         int    `json:"goals" binding:"min=0"`
	Assists       int    `json:"assists" binding:"min=0"`
	YellowCards   int    `json:"yellow_cards" binding:"min=0,max=2"`
	RedCards      int    `json:"red_cards" binding:"min=0,max=1"`
	Position      string `json:"position"`
	Rating        *int   `json:"rating"`
	Notes         string `json:"notes"`
}

// RecordStat records or updates one player's stat line for a match. Both
// match and player must belong to the scope's tenant.
func (s *MatchService) RecordStat(scope *Scope, matchID string, req *RecordStatRequest) (*models.MatchStat, error) {
	if !scope.Valid() {
		return nil, ErrNoTenant
	}
	if req.Position != "" && !models.ValidPosition(req.Position) {
		return nil, fmt.Errorf("%w: unknown position %q", ErrInvalidInput, req.Position)
	}
	if req.Rating != nil && (*req.Rating < 1 || *req.Rating > 10) {
		return nil, fmt.Errorf("%w: rating must be between 1 and 10", ErrInvalidInput)
	}

	if _, err := s.repo.Get(scope, matchID); err != nil {
		return nil, err
	}
	if _, err := s.players.Get(scope, req.PlayerID); err != nil {
		return nil, err
	}

	var stat models.MatchStat
	err := s.db.Where("match_id = ? AND player_id = ? AND tenant_id = ?", matchID, req.PlayerID, scope.TenantID).
		First(&stat).Error
	switch {
	case err == nil:
		updates := map[string]interface{}{
			"minutes_played": req.MinutesPlayed,
			"goals":          req.Goals,
			"assists":        req.Assists,
			"yellow_cards":   req.YellowCards,
			"red_cards":      req.RedCards,
			"position":       req.Position,
			"rating":         req.Rating,
			"notes":          req.Notes,
			"recorded_by":    scope.UserID,
		}
		if err := s.db.Model(&stat).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		stat = models.MatchStat{
			TenantID:      scope.TenantID,
			MatchID:       matchID,
			PlayerID:      req.PlayerID,
			MinutesPlayed: req.MinutesPlayed,
			Goals:         req.Goals,
			Assists:       req.Assists,
			YellowCards:   req.YellowCards,
			RedCards:      req.RedCards,
			Position:      req.Position,
			Rating:        req.Rating,
			Notes:         req.Notes,
			RecordedBy:    scope.UserID,
		}
		if err := s.db.Create(&stat).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, ErrConflict
			}
			return nil, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
		}
	default:
		return nil, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}

	return &stat, nil
}

// ListStats returns the stat lines of one match.
func (s *MatchService) ListStats(scope *Scope, matchID string) ([]models.MatchStat, error) {
	if !scope.Valid() {
		return nil, ErrNoTenant
	}
	if _, err := s.repo.Get(scope, matchID); err != nil {
		return nil, err
	}

	var items []models.MatchStat
	err := s.db.Where("match_id = ? AND tenant_id = ?", matchID, scope.TenantID).
		Order("minutes_played DESC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	return items, nil
}

// DeleteStat removes one player's stat line from a match.
func (s *MatchService) DeleteStat(scope *Scope, matchID, playerID string) error {
	if !scope.Valid() {
		return ErrNoTenant
	}

	result := s.db.Where("match_id = ? AND player_id = ? AND tenant_id = ?", matchID, playerID, scope.TenantID).
		Delete(&models.MatchStat{})
	if result.Error != nil {
		return fmt.Errorf("%w: %v", ErrBackendUnavailable, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// PlayerSeasonStats aggregates one player's stat lines.
type PlayerSeasonStats struct {
	PlayerID      string `json:"player_id"`
	Matches       int64  `json:"matches"`
	MinutesPlayed int64  `json:"minutes_played"`
	Goals         int64  `json:"goals"`
	Assists       int64  `json:"assists"`
	YellowCards   int64  `json:"yellow_cards"`
	RedCards      int64  `json:"red_cards"`
}

// PlayerStats totals a player's appearances across all matches.
func (s *MatchService) PlayerStats(scope *Scope, playerID string) (*PlayerSeasonStats, error) {
	if !scope.Valid() {
		return nil, ErrNoTenant
	}
	if _, err := s.players.Get(scope, playerID); err != nil {
		return nil, err
	}

	stats := PlayerSeasonStats{PlayerID: playerID}
	row := s.db.Model(&models.MatchStat{}).
		Select("COUNT(*), COALESCE(SUM(minutes_played), 0), COALESCE(SUM(goals), 0), COALESCE(SUM(assists), 0), COALESCE(SUM(yellow_cards), 0), COALESCE(SUM(red_cards), 0)").
		Where("player_id = ? AND tenant_id = ?", playerID, scope.TenantID).
		Row()
	if err := row.Scan(&stats.Matches, &stats.MinutesPlayed, &stats.Goals, &stats.Assists,
		&stats.YellowCards, &stats.RedCards); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	return &stats, nil
}
