package services

import (
	"time"

	"github.com/clubstack/backend/internal/models"
	"gorm.io/gorm"
)

// DashboardService aggregates tenant-wide counters for the landing view.
type DashboardService struct {
	db *gorm.DB
}

func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db}
}

type DashboardStats struct {
	Players           int64 `json:"players"`
	Trainings         int64 `json:"trainings"`
	Matches           int64 `json:"matches"`
	MatchesPlayed     int64 `json:"matches_played"`
	UpcomingTrainings int64 `json:"upcoming_trainings"`
	UpcomingMatches   int64 `json:"upcoming_matches"`
	ExpiringDocuments int64 `json:"expiring_documents"`
}

type DashboardResponse struct {
	Stats           DashboardStats       `json:"stats"`
	RecentTrainings []models.Training    `json:"recent_trainings"`
	RecentMatches   []models.Match       `json:"recent_matches"`
	Expiring        []ExpiringCredential `json:"expiring"`
}

// GetStats returns the tenant's dashboard numbers. windowDays bounds the
// expiring-document lookahead.
func (s *DashboardService) GetStats(scope *Scope, windowDays int) (*DashboardResponse, error) {
	if !scope.Valid() {
		return nil, ErrNoTenant
	}

	now := time.Now()
	var stats DashboardStats

	s.db.Model(&models.Player{}).
		Where("tenant_id = ?", scope.TenantID).
		Count(&stats.Players)

	s.db.Model(&models.Training{}).
		Where("tenant_id = ?", scope.TenantID).
		Count(&stats.Trainings)

	s.db.Model(&models.Match{}).
		Where("tenant_id = ?", scope.TenantID).
		Count(&stats.Matches)

	s.db.Model(&models.Match{}).
		Where("tenant_id = ? AND score_us IS NOT NULL AND score_them IS NOT NULL", scope.TenantID).
		Count(&stats.MatchesPlayed)

	s.db.Model(&models.Training{}).
		Where("tenant_id = ? AND date >= ?", scope.TenantID, now).
		Count(&stats.UpcomingTrainings)

	s.db.Model(&models.Match{}).
		Where("tenant_id = ? AND date >= ?", scope.TenantID, now).
		Count(&stats.UpcomingMatches)

	playerSvc := NewPlayerService(s.db)
	expiring, err := playerSvc.ListExpiringCredentials(scope, windowDays)
	if err != nil {
		return nil, err
	}
	stats.ExpiringDocuments = int64(len(expiring))

	var recentTrainings []models.Training
	s.db.Where("tenant_id = ? AND date <= ?", scope.TenantID, now).
		Order("date DESC").
		Limit(5).
		Find(&recentTrainings)

	var recentMatches []models.Match
	s.db.Where("tenant_id = ? AND date <= ?", scope.TenantID, now).
		Order("date DESC").
		Limit(5).
		Find(&recentMatches)

	return &DashboardResponse{
		Stats:           stats,
		RecentTrainings: recentTrainings,
		RecentMatches:   recentMatches,
		Expiring:        expiring,
	}, nil
}
