package models

import (
	"time"

	"gorm.io/gorm"
)

// TenantUser binds a user to one tenant with one role. The composite
// unique index makes membership provisioning idempotent: a duplicate
// insert surfaces as gorm.ErrDuplicatedKey, never a second row.
type TenantUser struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	UserID   uint    `gorm:"uniqueIndex:idx_tenant_user;not null" json:"user_id"`
	User     *User   `gorm:"foreignKey:UserID" json:"user,omitempty"`
	TenantID uint    `gorm:"uniqueIndex:idx_tenant_user;not null" json:"tenant_id"`
	Tenant   *Tenant `gorm:"foreignKey:TenantID" json:"tenant,omitempty"`
	Role     Role    `gorm:"size:50;not null;default:user" json:"role"`
	// Denormalized for user administration listings.
	Email string `gorm:"size:255" json:"email"`
	// Set when the membership belongs to a player account; own-only reads
	// resolve against this.
	PlayerID  *string        `gorm:"size:36" json:"player_id,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (TenantUser) TableName() string { return "tenant_users" }
