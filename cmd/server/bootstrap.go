package main

import (
	"github.com/clubstack/backend/internal/config"
	"github.com/clubstack/backend/internal/handlers"
	"github.com/clubstack/backend/internal/models"
	"github.com/clubstack/backend/internal/services"
	"github.com/clubstack/backend/internal/utils"
	"github.com/clubstack/backend/pkg/logger"
)

// appServices holds all initialized services and handlers needed by the application.
type appServices struct {
	reminderService *services.ReminderService
	taskQueue       services.TaskQueue
	worker          *services.Worker
	authHandler     *handlers.AuthHandler
}

// bootstrap initializes all application dependencies: database, services, schedulers.
func bootstrap(cfg *config.Config) *appServices {
	utils.SetJWTSecret(cfg.JWT.Secret)

	// Initialize database
	if err := models.InitDB(&cfg.Database); err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto migrate database
	if err := models.AutoMigrate(); err != nil {
		logger.Fatalf("Failed to migrate database: %v", err)
	}

	// Initialize system logger
	services.InitSystemLogger(models.GetDB())

	// Audit log retention + refresh token purge
	services.StartMaintenanceScheduler(models.GetDB(), cfg.Log.RetentionDays)

	// Expiry reminder scheduler and its delivery pipeline
	emailService := services.NewEmailService(&cfg.SMTP)
	reminderService := services.NewReminderService(models.GetDB(), &cfg.Reminders, emailService)
	reminderService.StartScheduler()

	// Initialize task queue (uses Redis if enabled, otherwise sync mode)
	taskQueue := services.InitTaskQueue(cfg)
	if syncQueue, ok := taskQueue.(*services.SyncQueue); ok {
		syncQueue.SetProcessor(reminderService.ProcessTask)
	}

	// Start async worker if Redis is enabled
	var worker *services.Worker
	if cfg.Redis.Enabled {
		worker = services.InitWorker(&cfg.Redis)
		if worker != nil {
			worker.SetProcessor(reminderService.ProcessTask)
			worker.Start()
		}
	}

	return &appServices{
		reminderService: reminderService,
		taskQueue:       taskQueue,
		worker:          worker,
		authHandler:     handlers.NewAuthHandler(models.GetDB(), cfg),
	}
}

// shutdown gracefully stops all services.
func (s *appServices) shutdown() {
	s.reminderService.StopScheduler()
	logger.Info().Msg("Schedulers stopped")

	if s.worker != nil {
		s.worker.Stop()
	}
	if s.taskQueue != nil {
		s.taskQueue.Close()
	}
}
