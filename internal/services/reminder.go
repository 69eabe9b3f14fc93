package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/clubstack/backend/internal/config"
	"github.com/clubstack/backend/internal/models"
	"github.com/clubstack/backend/pkg/logger"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// ReminderService scans every tenant for expiring player documents and
// queues a reminder email to the tenant's administrators.
type ReminderService struct {
	db            *gorm.DB
	cfg           *config.RemindersConfig
	email         *EmailService
	cronScheduler *cron.Cron
}

func NewReminderService(db *gorm.DB, cfg *config.RemindersConfig, email *EmailService) *ReminderService {
	return &ReminderService{db: db, cfg: cfg, email: email}
}

// StartScheduler runs the daily scan at the configured time.
func (s *ReminderService) StartScheduler() {
	if !s.cfg.Enabled {
		logger.Infof("[Reminder] Scheduler disabled")
		return
	}

	s.cronScheduler = cron.New()

	parts := strings.Split(s.cfg.Time, ":")
	hour := "7"
	minute := "0"
	if len(parts) == 2 {
		hour = parts[0]
		minute = parts[1]
	}

	cronExpr := fmt.Sprintf("%s %s * * *", minute, hour)
	if _, err := s.cronScheduler.AddFunc(cronExpr, func() {
		if err := s.RunScan(); err != nil {
			logger.Errorf("[Reminder] Scan failed: %v", err)
		}
	}); err != nil {
		logger.Errorf("[Reminder] Failed to add cron job: %v", err)
		return
	}

	s.cronScheduler.Start()
	logger.Infof("[Reminder] Scheduled daily at %s (cron: %s)", s.cfg.Time, cronExpr)
}

func (s *ReminderService) StopScheduler() {
	if s.cronScheduler != nil {
		s.cronScheduler.Stop()
	}
}

// RunScan walks all active tenants and enqueues one reminder task per
// expiring document.
func (s *ReminderService) RunScan() error {
	var tenants []models.Tenant
	if err := s.db.Where("is_active = ?", true).Find(&tenants).Error; err != nil {
		return fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}

	queue := GetTaskQueue()
	if queue == nil {
		return fmt.Errorf("task queue not initialized")
	}

	playerSvc := NewPlayerService(s.db)
	total := 0
	for _, tenant := range tenants {
		scope := &Scope{TenantID: tenant.ID, Role: models.RoleTenantAdmin}
		expiring, err := playerSvc.ListExpiringCredentials(scope, s.cfg.WindowDays)
		if err != nil {
			logger.Errorf("[Reminder] Scan failed for tenant %s: %v", tenant.Slug, err)
			continue
		}
		if len(expiring) == 0 {
			continue
		}

		recipients := s.adminEmails(tenant.ID)
		if len(recipients) == 0 {
			logger.Warnf("[Reminder] Tenant %s has expiring documents but no admins to notify", tenant.Slug)
			continue
		}

		for _, cred := range expiring {
			task := &ReminderTask{
				TenantID:   tenant.ID,
				TenantName: tenant.Name,
				PlayerID:   cred.Player.ID,
				PlayerName: cred.Player.FullName(),
				Credential: cred.Credential,
				ExpiresOn:  cred.ExpiresAt.Format("2006-01-02"),
				Recipients: recipients,
			}
			if err := queue.Enqueue(task); err != nil {
				logger.Errorf("[Reminder] Enqueue failed: %v", err)
				continue
			}
			total++
		}
	}

	if total > 0 {
		logger.Infof("[Reminder] Enqueued %d reminder tasks", total)
	}
	return nil
}

// ProcessTask delivers one reminder. Wired as the queue processor for
// both sync and async modes.
func (s *ReminderService) ProcessTask(ctx context.Context, task *ReminderTask) error {
	return s.email.SendExpiryReminder(task)
}

// adminEmails returns the notification recipients for a tenant. Trainers
// are included when the tenant has no dedicated admin.
func (s *ReminderService) adminEmails(tenantID uint) []string {
	var memberships []models.TenantUser
	s.db.Where("tenant_id = ? AND role = ?", tenantID, models.RoleTenantAdmin).Find(&memberships)
	if len(memberships) == 0 {
		s.db.Where("tenant_id = ? AND role = ?", tenantID, models.RoleTrainer).Find(&memberships)
	}

	emails := make([]string, 0, len(memberships))
	for _, m := range memberships {
		if m.Email != "" {
			emails = append(emails, m.Email)
		}
	}
	return emails
}
