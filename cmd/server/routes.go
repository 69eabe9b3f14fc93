package main

import (
	"github.com/clubstack/backend/internal/config"
	"github.com/clubstack/backend/internal/handlers"
	"github.com/clubstack/backend/internal/middleware"
	"github.com/clubstack/backend/internal/models"
	"github.com/clubstack/backend/internal/services"
	"github.com/clubstack/backend/pkg/logger"
	"github.com/gin-gonic/gin"
)

// registerRoutes sets up all HTTP routes on the given Gin engine.
func registerRoutes(r *gin.Engine, svc *appServices, cfg *config.Config) {
	// Middleware
	r.Use(logger.GinLogger(), logger.GinRecovery())
	r.RedirectTrailingSlash = false
	r.RedirectFixedPath = false
	r.Use(middleware.CORS())

	db := models.GetDB()
	tenantService := services.NewTenantService(db)

	// Rate limiter for credential endpoints
	loginLimiter := middleware.NewLoginLimiter(cfg.Server.LoginRPS, cfg.Server.LoginBurst)

	// Health check
	healthHandler := handlers.NewHealthHandler()
	r.GET("/health", healthHandler.CheckHealth)

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public, rate limited)
		auth := api.Group("/auth", loginLimiter.Middleware())
		{
			auth.POST("/login", svc.authHandler.Login)
			auth.POST("/refresh", svc.authHandler.Refresh)
		}

		// Authenticated routes without a tenant requirement
		authed := api.Group("")
		authed.Use(middleware.AuthRequired())
		{
			authed.GET("/auth/me", svc.authHandler.Me)
			authed.POST("/auth/logout", svc.authHandler.Logout)
			authed.POST("/auth/change-password", svc.authHandler.ChangePassword)
		}

		// Tenant-scoped routes: membership resolved per request, role
		// gates consulted from the policy table.
		scoped := api.Group("")
		scoped.Use(middleware.AuthRequired(), middleware.TenantRequired(tenantService), middleware.AuditLog())
		{
			// Dashboard
			dashboardHandler := handlers.NewDashboardHandler(db, cfg)
			scoped.GET("/dashboard/stats",
				middleware.RequirePermission(services.EntityDashboard, services.PermRead),
				dashboardHandler.GetStats)

			// Players
			playerHandler := handlers.NewPlayerHandler(db, cfg)
			matchHandler := handlers.NewMatchHandler(db)
			players := scoped.Group("/players")
			{
				players.GET("",
					middleware.RequirePermission(services.EntityPlayers, services.PermRead),
					playerHandler.List)
				players.GET("/expiring",
					middleware.RequirePermission(services.EntityPlayers, services.PermRead),
					playerHandler.Expiring)
				players.GET("/:id",
					middleware.RequirePermission(services.EntityPlayers, services.PermRead),
					playerHandler.GetByID)
				players.GET("/:id/stats",
					middleware.RequirePermission(services.EntityPlayers, services.PermRead),
					matchHandler.PlayerStats)
				players.POST("",
					middleware.RequirePermission(services.EntityPlayers, services.PermCreate),
					playerHandler.Create)
				players.PUT("/:id",
					middleware.RequirePermission(services.EntityPlayers, services.PermUpdate),
					playerHandler.Update)
				players.DELETE("/:id",
					middleware.RequirePermission(services.EntityPlayers, services.PermDelete),
					playerHandler.Delete)
			}

			// Trainings
			trainingHandler := handlers.NewTrainingHandler(db)
			trainings := scoped.Group("/trainings")
			{
				trainings.GET("",
					middleware.RequirePermission(services.EntityTrainings, services.PermRead),
					trainingHandler.List)
				trainings.GET("/:id",
					middleware.RequirePermission(services.EntityTrainings, services.PermRead),
					trainingHandler.GetByID)
				trainings.POST("",
					middleware.RequirePermission(services.EntityTrainings, services.PermCreate),
					trainingHandler.Create)
				trainings.PUT("/:id",
					middleware.RequirePermission(services.EntityTrainings, services.PermUpdate),
					trainingHandler.Update)
				trainings.DELETE("/:id",
					middleware.RequirePermission(services.EntityTrainings, services.PermDelete),
					trainingHandler.Delete)

				trainings.GET("/:id/attendance",
					middleware.RequirePermission(services.EntityTrainings, services.PermRead),
					trainingHandler.ListAttendance)
				trainings.PUT("/:id/attendance",
					middleware.RequirePermission(services.EntityTrainings, services.PermAttendance),
					trainingHandler.MarkAttendance)
				trainings.GET("/:id/evaluations",
					middleware.RequirePermission(services.EntityTrainings, services.PermRead),
					trainingHandler.ListEvaluations)
				trainings.POST("/:id/evaluations",
					middleware.RequirePermission(services.EntityTrainings, services.PermEvaluate),
					trainingHandler.EvaluatePlayer)
			}

			// Evaluation characteristics
			characteristics := scoped.Group("/characteristics")
			{
				characteristics.GET("",
					middleware.RequirePermission(services.EntityCharacteristics, services.PermRead),
					trainingHandler.ListCharacteristics)
				characteristics.POST("",
					middleware.RequirePermission(services.EntityCharacteristics, services.PermCreate),
					trainingHandler.CreateCharacteristic)
				characteristics.PUT("/:id",
					middleware.RequirePermission(services.EntityCharacteristics, services.PermUpdate),
					trainingHandler.UpdateCharacteristic)
				characteristics.DELETE("/:id",
					middleware.RequirePermission(services.EntityCharacteristics, services.PermDelete),
					trainingHandler.DeleteCharacteristic)
			}

			// Matches
			matches := scoped.Group("/matches")
			{
				matches.GET("",
					middleware.RequirePermission(services.EntityMatches, services.PermRead),
					matchHandler.List)
				matches.GET("/:id",
					middleware.RequirePermission(services.EntityMatches, services.PermRead),
					matchHandler.GetByID)
				matches.POST("",
					middleware.RequirePermission(services.EntityMatches, services.PermCreate),
					matchHandler.Create)
				matches.PUT("/:id",
					middleware.RequirePermission(services.EntityMatches, services.PermUpdate),
					matchHandler.Update)
				matches.DELETE("/:id",
					middleware.RequirePermission(services.EntityMatches, services.PermDelete),
					matchHandler.Delete)

				matches.PUT("/:id/score",
					middleware.RequirePermission(services.EntityMatches, services.PermStats),
					matchHandler.RecordScore)
				matches.GET("/:id/stats",
					middleware.RequirePermission(services.EntityMatches, services.PermRead),
					matchHandler.ListStats)
				matches.PUT("/:id/stats",
					middleware.RequirePermission(services.EntityMatches, services.PermStats),
					matchHandler.RecordStat)
				matches.DELETE("/:id/stats/:playerId",
					middleware.RequirePermission(services.EntityMatches, services.PermStats),
					matchHandler.DeleteStat)
			}

			// Memberships and invitations
			userHandler := handlers.NewUserHandler(db)
			users := scoped.Group("/users")
			{
				users.GET("",
					middleware.RequirePermission(services.EntityUsers, services.PermRead),
					userHandler.List)
				users.POST("",
					middleware.RequirePermission(services.EntityUsers, services.PermCreate),
					userHandler.Create)
				users.PUT("/:id",
					middleware.RequirePermission(services.EntityUsers, services.PermUpdate),
					userHandler.Update)
				users.DELETE("/:id",
					middleware.RequirePermission(services.EntityUsers, services.PermDelete),
					userHandler.Delete)

				users.GET("/invitations",
					middleware.RequirePermission(services.EntityUsers, services.PermRead),
					userHandler.ListInvitations)
				users.POST("/invitations",
					middleware.RequirePermission(services.EntityUsers, services.PermCreate),
					userHandler.CreateInvitation)
				users.DELETE("/invitations/:id",
					middleware.RequirePermission(services.EntityUsers, services.PermDelete),
					userHandler.DeleteInvitation)
			}

			// Platform administration
			tenantHandler := handlers.NewTenantHandler(db)
			systemLogHandler := handlers.NewSystemLogHandler(db)
			admin := scoped.Group("", middleware.SuperadminRequired())
			{
				admin.GET("/tenants", tenantHandler.List)
				admin.GET("/tenants/:id", tenantHandler.GetByID)
				admin.POST("/tenants", tenantHandler.Create)
				admin.PUT("/tenants/:id", tenantHandler.Update)

				admin.GET("/system-logs", systemLogHandler.List)
				admin.GET("/system-logs/modules", systemLogHandler.GetModules)
			}
		}
	}
}
