package models

import (
	"time"

	"gorm.io/gorm"
)

// Invitation is the data-driven tenant assignment policy: an admin invites
// an email address into a tenant with a role, and first sign-in provisions
// the membership from it. Unknown users without an invitation get nothing.
type Invitation struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	Email      string         `gorm:"index;size:255;not null" json:"email"`
	TenantID   uint           `gorm:"index;not null" json:"tenant_id"`
	Tenant     *Tenant        `gorm:"foreignKey:TenantID" json:"tenant,omitempty"`
	Role       Role           `gorm:"size:50;not null;default:user" json:"role"`
	InvitedBy  uint           `json:"invited_by"`
	AcceptedAt *time.Time     `json:"accepted_at,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Invitation) TableName() string { return "invitations" }

// Accepted reports whether the invitation has already been consumed.
func (i *Invitation) Accepted() bool { return i.AcceptedAt != nil }
