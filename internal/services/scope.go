package services

import (
	"errors"
	"fmt"

	"github.com/clubstack/backend/internal/models"
	"gorm.io/gorm"
)

// Scope is the resolved tenant binding for one request: who is acting,
// inside which tenant, with which role. It is built once by the tenant
// middleware and passed immutably into every repository call, so a
// repository can never observe a principal without its membership.
type Scope struct {
	UserID     uint
	TenantID   uint
	TenantSlug string
	Role       models.Role
	Email      string
	// PlayerID links player-role memberships to their roster entry for
	// own-only reads.
	PlayerID *string
}

// Valid reports whether the scope carries a resolved tenant.
func (s *Scope) Valid() bool {
	return s != nil && s.TenantID != 0
}

// ScopeFromMembership builds the request scope from a resolved
// membership row.
func ScopeFromMembership(m *models.TenantUser) *Scope {
	scope := &Scope{
		UserID:   m.UserID,
		TenantID: m.TenantID,
		Role:     m.Role,
		Email:    m.Email,
		PlayerID: m.PlayerID,
	}
	if m.Tenant != nil {
		scope.TenantSlug = m.Tenant.Slug
	}
	return scope
}

// TenantOwned is implemented by every tenant-scoped entity.
type TenantOwned interface {
	GetTenantID() uint
	SetTenantID(uint)
	GetID() string
}

// ScopedRepo is the generic tenant-scoped repository. Every query binds
// tenant_id as a parameter; the tenant is never spliced into SQL text and
// never trusted from caller-supplied values.
type ScopedRepo[T any, PT interface {
	*T
	TenantOwned
}] struct {
	db *gorm.DB
}

// NewScopedRepo creates a repository for one entity type.
func NewScopedRepo[T any, PT interface {
	*T
	TenantOwned
}](db *gorm.DB) *ScopedRepo[T, PT] {
	return &ScopedRepo[T, PT]{db: db}
}

// QueryOption refines a List query (filters, ordering).
type QueryOption func(*gorm.DB) *gorm.DB

// WithOrder appends an ORDER BY clause.
func WithOrder(order string) QueryOption {
	return func(q *gorm.DB) *gorm.DB { return q.Order(order) }
}

// WithFilter appends a bound-parameter WHERE clause.
func WithFilter(cond string, args ...interface{}) QueryOption {
	return func(q *gorm.DB) *gorm.DB { return q.Where(cond, args...) }
}

// scoped returns a query restricted to the scope's tenant.
func (r *ScopedRepo[T, PT]) scoped(scope *Scope) *gorm.DB {
	var zero T
	return r.db.Model(&zero).Where("tenant_id = ?", scope.TenantID)
}

// List returns all entities of the scope's tenant, applying any options.
func (r *ScopedRepo[T, PT]) List(scope *Scope, opts ...QueryOption) ([]T, error) {
	if !scope.Valid() {
		return nil, ErrNoTenant
	}

	query := r.scoped(scope)
	for _, opt := range opts {
		query = opt(query)
	}

	var items []T
	if err := query.Find(&items).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	return items, nil
}

// Get returns one entity by ID, or ErrNotFound if it is absent or belongs
// to another tenant.
func (r *ScopedRepo[T, PT]) Get(scope *Scope, id string) (PT, error) {
	if !scope.Valid() {
		return nil, ErrNoTenant
	}

	var item T
	err := r.scoped(scope).Where("id = ?", id).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	return &item, nil
}

// Create persists a new entity. The tenant ID is stamped from the scope;
// any caller-supplied value is overwritten.
func (r *ScopedRepo[T, PT]) Create(scope *Scope, entity PT) error {
	if !scope.Valid() {
		return ErrNoTenant
	}

	entity.SetTenantID(scope.TenantID)
	if err := r.db.Create(entity).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrConflict
		}
		return fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	return nil
}

// Update applies a partial update to one entity and returns the updated
// row. IDs outside the scope's tenant yield ErrNotFound.
func (r *ScopedRepo[T, PT]) Update(scope *Scope, id string, fields map[string]interface{}) (PT, error) {
	if !scope.Valid() {
		return nil, ErrNoTenant
	}

	// tenant_id is not updatable through the contract.
	delete(fields, "tenant_id")
	delete(fields, "id")

	result := r.scoped(scope).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("%w: %v", ErrBackendUnavailable, result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}

	return r.Get(scope, id)
}

// Delete removes one entity. Deleting an absent (or already-deleted) ID
// returns ErrNotFound, so retries stay harmless.
func (r *ScopedRepo[T, PT]) Delete(scope *Scope, id string) error {
	if !scope.Valid() {
		return ErrNoTenant
	}

	var zero T
	result := r.scoped(scope).Where("id = ?", id).Delete(&zero)
	if result.Error != nil {
		return fmt.Errorf("%w: %v", ErrBackendUnavailable, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Count returns the number of entities in the scope's tenant.
func (r *ScopedRepo[T, PT]) Count(scope *Scope, opts ...QueryOption) (int64, error) {
	if !scope.Valid() {
		return 0, ErrNoTenant
	}

	query := r.scoped(scope)
	for _, opt := range opts {
		query = opt(query)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return 0, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	return total, nil
}
