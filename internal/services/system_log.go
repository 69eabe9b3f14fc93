package services

import (
	"encoding/json"
	"time"

	"github.com/clubstack/backend/internal/models"
	"github.com/clubstack/backend/pkg/logger"
	"gorm.io/gorm"
)

var globalDB *gorm.DB

func InitSystemLogger(db *gorm.DB) {
	globalDB = db
}

func LogInfo(module, action, message string, userID *uint, tenantID *uint, ip, userAgent string, extra interface{}) {
	writeLog("info", module, action, message, userID, tenantID, ip, userAgent, extra)
}

func LogWarning(module, action, message string, userID *uint, tenantID *uint, ip, userAgent string, extra interface{}) {
	writeLog("warning", module, action, message, userID, tenantID, ip, userAgent, extra)
}

func LogError(module, action, message string, userID *uint, tenantID *uint, ip, userAgent string, extra interface{}) {
	writeLog("error", module, action, message, userID, tenantID, ip, userAgent, extra)
}

func writeLog(level, module, action, message string, userID *uint, tenantID *uint, ip, userAgent string, extra interface{}) {
	if globalDB == nil {
		return
	}

	var extraStr string
	if extra != nil {
		if b, err := json.Marshal(extra); err == nil {
			extraStr = string(b)
		}
	}

	entry := &models.SystemLog{
		Level:     level,
		Module:    module,
		Action:    action,
		Message:   message,
		UserID:    userID,
		TenantID:  tenantID,
		IP:        ip,
		UserAgent: userAgent,
		Extra:     extraStr,
		CreatedAt: time.Now(),
	}
	globalDB.Create(entry)
}

type SystemLogService struct {
	db *gorm.DB
}

func NewSystemLogService(db *gorm.DB) *SystemLogService {
	return &SystemLogService{db: db}
}

type SystemLogListRequest struct {
	Page      int    `form:"page" binding:"min=1"`
	PageSize  int    `form:"page_size" binding:"min=1,max=100"`
	Level     string `form:"level"`
	Module    string `form:"module"`
	Action    string `form:"action"`
	TenantID  *uint  `form:"tenant_id"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
	Search    string `form:"search"`
}

type SystemLogListResponse struct {
	Total    int64              `json:"total"`
	Page     int                `json:"page"`
	PageSize int                `json:"page_size"`
	Items    []models.SystemLog `json:"items"`
}

func (s *SystemLogService) List(req *SystemLogListRequest) (*SystemLogListResponse, error) {
	if req.Page == 0 {
		req.Page = 1
	}
	if req.PageSize == 0 {
		req.PageSize = 20
	}

	var logs []models.SystemLog
	var total int64

	query := s.db.Model(&models.SystemLog{})

	if req.Level != "" {
		query = query.Where("level = ?", req.Level)
	}
	if req.Module != "" {
		query = query.Where("module = ?", req.Module)
	}
	if req.Action != "" {
		query = query.Where("action LIKE ?", "%"+req.Action+"%")
	}
	if req.TenantID != nil {
		query = query.Where("tenant_id = ?", *req.TenantID)
	}
	if req.StartDate != "" {
		query = query.Where("created_at >= ?", req.StartDate)
	}
	if req.EndDate != "" {
		query = query.Where("created_at <= ?", req.EndDate+" 23:59:59")
	}
	if req.Search != "" {
		query = query.Where("message LIKE ?", "%"+req.Search+"%")
	}

	query.Count(&total)

	offset := (req.Page - 1) * req.PageSize
	if err := query.Offset(offset).Limit(req.PageSize).Order("created_at DESC").Find(&logs).Error; err != nil {
		return nil, err
	}

	return &SystemLogListResponse{
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
		Items:    logs,
	}, nil
}

func (s *SystemLogService) GetModules() ([]string, error) {
	var modules []string
	if err := s.db.Model(&models.SystemLog{}).Distinct("module").Pluck("module", &modules).Error; err != nil {
		return nil, err
	}
	return modules, nil
}

func (s *SystemLogService) Create(entry *models.SystemLog) error {
	return s.db.Create(entry).Error
}

// CleanupOldLogs deletes logs older than the specified number of days
// Returns the number of deleted records
func (s *SystemLogService) CleanupOldLogs(retentionDays int) (int64, error) {
	if retentionDays <= 0 {
		return 0, nil
	}

	cutoffTime := time.Now().AddDate(0, 0, -retentionDays)
	result := s.db.Where("created_at < ?", cutoffTime).Delete(&models.SystemLog{})
	if result.Error != nil {
		return 0, result.Error
	}

	return result.RowsAffected, nil
}

// StartMaintenanceScheduler starts a goroutine that periodically cleans
// up old audit logs and expired refresh tokens.
func StartMaintenanceScheduler(db *gorm.DB, retentionDays int) {
	go func() {
		logSvc := NewSystemLogService(db)
		authSvc := NewAuthService(db, nil)

		// Run once on startup, then every 24 hours
		runMaintenance(logSvc, authSvc, retentionDays)

		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()

		for range ticker.C {
			runMaintenance(logSvc, authSvc, retentionDays)
		}
	}()
}

func runMaintenance(logSvc *SystemLogService, authSvc *AuthService, retentionDays int) {
	if retentionDays > 0 {
		deleted, err := logSvc.CleanupOldLogs(retentionDays)
		if err != nil {
			logger.Errorf("log cleanup failed: %v", err)
		} else if deleted > 0 {
			logger.Infof("cleaned up %d logs older than %d days", deleted, retentionDays)
		}
	}

	purged, err := authSvc.PurgeExpiredTokens()
	if err != nil {
		logger.Errorf("refresh token purge failed: %v", err)
	} else if purged > 0 {
		logger.Infof("purged %d expired refresh tokens", purged)
	}
}
