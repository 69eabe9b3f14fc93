package handlers

import (
	"errors"

	"github.com/clubstack/backend/internal/config"
	"github.com/clubstack/backend/internal/middleware"
	"github.com/clubstack/backend/internal/services"
	"github.com/clubstack/backend/internal/utils"
	"github.com/clubstack/backend/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AuthHandler struct {
	authService   *services.AuthService
	tenantService *services.TenantService
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService:   services.NewAuthService(db, &cfg.JWT),
		tenantService: services.NewTenantService(db),
	}
}

type tokenPairResponse struct {
	AccessToken     string `json:"access_token"`
	AccessExpireAt  int64  `json:"access_expire_at"`
	RefreshToken    string `json:"refresh_token"`
	RefreshExpireAt int64  `json:"refresh_expire_at"`
}

// Login handles user login
// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.authService.Login(&req, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			response.Unauthorized(c, "invalid email or password")
			return
		}
		writeServiceError(c, err)
		return
	}

	response.Success(c, gin.H{
		"tokens": tokenPairResponse{
			AccessToken:     result.AccessToken,
			AccessExpireAt:  result.AccessExpireAt.Unix(),
			RefreshToken:    result.RefreshToken,
			RefreshExpireAt: result.RefreshExpireAt.Unix(),
		},
		"user": result.User,
	})
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// Refresh rotates a refresh token and issues a new token pair
// POST /api/auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.authService.Refresh(req.RefreshToken, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		response.Unauthorized(c, "invalid or expired refresh token")
		return
	}

	response.Success(c, tokenPairResponse{
		AccessToken:     result.AccessToken,
		AccessExpireAt:  result.AccessExpireAt.Unix(),
		RefreshToken:    result.RefreshToken,
		RefreshExpireAt: result.RefreshExpireAt.Unix(),
	})
}

// Me returns the current user and their club membership
// GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	userID := middleware.GetUserID(c)

	membership, err := h.tenantService.Resolve(userID)
	if err != nil {
		if errors.Is(err, services.ErrNoTenant) {
			response.Success(c, gin.H{
				"user_id":    userID,
				"email":      middleware.GetEmail(c),
				"membership": nil,
			})
			return
		}
		writeServiceError(c, err)
		return
	}

	response.Success(c, gin.H{
		"user_id":    userID,
		"email":      middleware.GetEmail(c),
		"membership": membership,
	})
}

// Logout revokes the presented refresh token
// POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	var req refreshRequest
	// Body is optional; logout without a token is still a success.
	if err := c.ShouldBindJSON(&req); err == nil && req.RefreshToken != "" {
		_ = h.authService.RevokeRefreshToken(req.RefreshToken)
	}
	response.Success(c, gin.H{"message": "logged out"})
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

// ChangePassword updates the caller's password and revokes their sessions
// POST /api/auth/change-password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		response.ServerError(c, "failed to hash password")
		return
	}

	userID := middleware.GetUserID(c)
	if err := h.authService.ChangePassword(userID, req.CurrentPassword, hash); err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			response.Unauthorized(c, "current password is incorrect")
			return
		}
		writeServiceError(c, err)
		return
	}

	response.Success(c, gin.H{"message": "password changed"})
}
