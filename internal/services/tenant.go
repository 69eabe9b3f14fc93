package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/clubstack/backend/internal/models"
	"github.com/clubstack/backend/pkg/logger"
	"gorm.io/gorm"
)

// TenantService resolves principals to tenant memberships and manages
// memberships, invitations, and tenants.
type TenantService struct {
	db *gorm.DB
}

func NewTenantService(db *gorm.DB) *TenantService {
	return &TenantService{db: db}
}

// Resolve looks up the membership for an authenticated user. When none
// exists it attempts provisioning from a pending invitation; without an
// invitation the user stays tenantless (ErrNoTenant). It never invents a
// membership and never falls back to a fixed tenant.
func (s *TenantService) Resolve(userID uint) (*models.TenantUser, error) {
	if userID == 0 {
		return nil, ErrNoTenant
	}

	var membership models.TenantUser
	err := s.db.Preload("Tenant").Where("user_id = ?", userID).First(&membership).Error
	if err == nil {
		return &membership, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}

	return s.provisionFromInvitation(userID)
}

// provisionFromInvitation creates a membership from the oldest pending
// invitation matching the user's email. The unique (user_id, tenant_id)
// index makes a racing duplicate insert resolve to the existing row.
func (s *TenantService) provisionFromInvitation(userID uint) (*models.TenantUser, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoTenant
		}
		return nil, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}

	var invite models.Invitation
	err := s.db.Where("email = ? AND accepted_at IS NULL", user.Email).
		Order("created_at ASC").
		First(&invite).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoTenant
		}
		return nil, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}

	role := invite.Role
	if !role.Valid() {
		role = models.RoleUser
	}

	membership := models.TenantUser{
		UserID:   userID,
		TenantID: invite.TenantID,
		Role:     role,
		Email:    user.Email,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&membership).Error; err != nil {
			return err
		}
		now := time.Now()
		return tx.Model(&invite).Update("accepted_at", now).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost a provisioning race; the membership exists now.
			var existing models.TenantUser
			if rerr := s.db.Preload("Tenant").
				Where("user_id = ? AND tenant_id = ?", userID, invite.TenantID).
				First(&existing).Error; rerr == nil {
				return &existing, nil
			}
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}

	logger.Info().
		Uint("user_id", userID).
		Uint("tenant_id", invite.TenantID).
		Str("role", role.String()).
		Msg("membership provisioned from invitation")

	s.db.Preload("Tenant").First(&membership, membership.ID)
	return &membership, nil
}

// --- Membership administration ---

type MembershipListRequest struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	Role     string `form:"role"`
	Search   string `form:"search"`
}

type MembershipListResponse struct {
	Total    int64               `json:"total"`
	Page     int                 `json:"page"`
	PageSize int                 `json:"page_size"`
	Items    []models.TenantUser `json:"items"`
}

// ListMemberships returns the memberships of one tenant, paginated.
func (s *TenantService) ListMemberships(scope *Scope, req *MembershipListRequest) (*MembershipListResponse, error) {
	if !scope.Valid() {
		return nil, ErrNoTenant
	}
	if req.Page == 0 {
		req.Page = 1
	}
	if req.PageSize == 0 {
		req.PageSize = 20
	}

	query := s.db.Model(&models.TenantUser{}).Where("tenant_id = ?", scope.TenantID)
	if req.Role != "" {
		query = query.Where("role = ?", req.Role)
	}
	if req.Search != "" {
		query = query.Where("email LIKE ?", "%"+req.Search+"%")
	}

	var total int64
	query.Count(&total)

	var items []models.TenantUser
	offset := (req.Page - 1) * req.PageSize
	if err := query.Order("created_at ASC").Offset(offset).Limit(req.PageSize).Find(&items).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}

	return &MembershipListResponse{
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
		Items:    items,
	}, nil
}

type CreateMembershipRequest struct {
	Email    string  `json:"email" binding:"required,email"`
	Password string  `json:"password" binding:"required,min=8"`
	Role     string  `json:"role" binding:"required"`
	PlayerID *string `json:"player_id"`
}

// CreateMembership creates a user account plus its membership in the
// scope's tenant, in one transaction.
func (s *TenantService) CreateMembership(scope *Scope, req *CreateMembershipRequest, hashedPassword string) (*models.TenantUser, error) {
	if !scope.Valid() {
		return nil, ErrNoTenant
	}

	role := models.Role(req.Role)
	if !role.Valid() || role == models.RoleSuperadmin {
		return nil, fmt.Errorf("%w: invalid role %q", ErrInvalidInput, req.Role)
	}

	var membership models.TenantUser
	err := s.db.Transaction(func(tx *gorm.DB) error {
		user := models.User{
			Email:    req.Email,
			Password: hashedPassword,
			IsActive: true,
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		membership = models.TenantUser{
			UserID:   user.ID,
			TenantID: scope.TenantID,
			Role:     role,
			Email:    user.Email,
			PlayerID: req.PlayerID,
		}
		return tx.Create(&membership).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}

	return &membership, nil
}

type UpdateMembershipRequest struct {
	Role     *string `json:"role"`
	PlayerID *string `json:"player_id"`
}

// UpdateMembership changes the role or player link of a membership inside
// the scope's tenant.
func (s *TenantService) UpdateMembership(scope *Scope, id uint, req *UpdateMembershipRequest) (*models.TenantUser, error) {
	if !scope.Valid() {
		return nil, ErrNoTenant
	}

	var membership models.TenantUser
	err := s.db.Where("id = ? AND tenant_id = ?", id, scope.TenantID).First(&membership).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}

	updates := map[string]interface{}{}
	if req.Role != nil {
		role := models.Role(*req.Role)
		if !role.Valid() || role == models.RoleSuperadmin {
			return nil, fmt.Errorf("%w: invalid role %q", ErrInvalidInput, *req.Role)
		}
		updates["role"] = role
	}
	if req.PlayerID != nil {
		updates["player_id"] = *req.PlayerID
	}

	if len(updates) > 0 {
		if err := s.db.Model(&membership).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
		}
	}

	return &membership, nil
}

// DeleteMembership removes a membership and, when no other membership
// references the user, the user account itself. The membership row goes
// first so a failure never leaves an orphaned auth record reachable.
// Rows are hard-deleted: the (user_id, tenant_id) and email unique
// indexes must free up so the same person can be re-added later.
func (s *TenantService) DeleteMembership(scope *Scope, id uint) error {
	if !scope.Valid() {
		return ErrNoTenant
	}

	var membership models.TenantUser
	err := s.db.Where("id = ? AND tenant_id = ?", id, scope.TenantID).First(&membership).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}

	if membership.UserID == scope.UserID {
		return fmt.Errorf("%w: cannot remove your own membership", ErrInvalidInput)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Delete(&membership).Error; err != nil {
			return err
		}

		var remaining int64
		tx.Model(&models.TenantUser{}).Where("user_id = ?", membership.UserID).Count(&remaining)
		if remaining == 0 {
			if err := tx.Where("user_id = ?", membership.UserID).Delete(&models.RefreshToken{}).Error; err != nil {
				return err
			}
			if err := tx.Unscoped().Delete(&models.User{}, membership.UserID).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// --- Invitations ---

type CreateInvitationRequest struct {
	Email string `json:"email" binding:"required,email"`
	Role  string `json:"role" binding:"required"`
}

// CreateInvitation records a pending invitation into the scope's tenant.
func (s *TenantService) CreateInvitation(scope *Scope, req *CreateInvitationRequest) (*models.Invitation, error) {
	if !scope.Valid() {
		return nil, ErrNoTenant
	}

	role := models.Role(req.Role)
	if !role.Valid() || role == models.RoleSuperadmin {
		return nil, fmt.Errorf("%w: invalid role %q", ErrInvalidInput, req.Role)
	}

	var pending int64
	s.db.Model(&models.Invitation{}).
		Where("email = ? AND tenant_id = ? AND accepted_at IS NULL", req.Email, scope.TenantID).
		Count(&pending)
	if pending > 0 {
		return nil, ErrConflict
	}

	invite := models.Invitation{
		Email:     req.Email,
		TenantID:  scope.TenantID,
		Role:      role,
		InvitedBy: scope.UserID,
	}
	if err := s.db.Create(&invite).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	return &invite, nil
}

// ListInvitations returns the pending invitations of the scope's tenant.
func (s *TenantService) ListInvitations(scope *Scope) ([]models.Invitation, error) {
	if !scope.Valid() {
		return nil, ErrNoTenant
	}

	var invites []models.Invitation
	err := s.db.Where("tenant_id = ? AND accepted_at IS NULL", scope.TenantID).
		Order("created_at DESC").
		Find(&invites).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	return invites, nil
}

// DeleteInvitation withdraws a pending invitation.
func (s *TenantService) DeleteInvitation(scope *Scope, id uint) error {
	if !scope.Valid() {
		return ErrNoTenant
	}

	result := s.db.Where("id = ? AND tenant_id = ? AND accepted_at IS NULL", id, scope.TenantID).
		Delete(&models.Invitation{})
	if result.Error != nil {
		return fmt.Errorf("%w: %v", ErrBackendUnavailable, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// --- Tenant administration (superadmin only; gated by the caller) ---

type CreateTenantRequest struct {
	Slug string `json:"slug" binding:"required,min=3,max=50"`
	Name string `json:"name" binding:"required"`
}

func (s *TenantService) CreateTenant(req *CreateTenantRequest) (*models.Tenant, error) {
	tenant := models.Tenant{
		Slug:     req.Slug,
		Name:     req.Name,
		IsActive: true,
	}
	if err := s.db.Create(&tenant).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}

	if err := models.SeedTenantDefaults(s.db, tenant.ID); err != nil {
		logger.Warn().Err(err).Uint("tenant_id", tenant.ID).Msg("failed to seed tenant defaults")
	}

	return &tenant, nil
}

func (s *TenantService) ListTenants() ([]models.Tenant, error) {
	var tenants []models.Tenant
	if err := s.db.Order("id ASC").Find(&tenants).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	return tenants, nil
}

func (s *TenantService) GetTenant(id uint) (*models.Tenant, error) {
	var tenant models.Tenant
	if err := s.db.First(&tenant, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	return &tenant, nil
}

type UpdateTenantRequest struct {
	Name     *string `json:"name"`
	IsActive *bool   `json:"is_active"`
}

func (s *TenantService) UpdateTenant(id uint, req *UpdateTenantRequest) (*models.Tenant, error) {
	tenant, err := s.GetTenant(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if len(updates) > 0 {
		if err := s.db.Model(tenant).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
		}
	}
	return tenant, nil
}
