package models

import (
	"time"

	"gorm.io/gorm"
)

// Tenant is an isolated club. All club data carries the tenant's ID as a
// bound column; nothing is keyed by schema name.
type Tenant struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Slug      string         `gorm:"uniqueIndex;size:100;not null" json:"slug"`
	Name      string         `gorm:"size:200;not null" json:"name"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Tenant) TableName() string { return "tenants" }
