package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Attendance statuses.
const (
	AttendancePresent = "present"
	AttendanceAbsent  = "absent"
	AttendanceExcused = "excused"
)

// ValidAttendanceStatus reports whether s is a known attendance status.
func ValidAttendanceStatus(s string) bool {
	return s == AttendancePresent || s == AttendanceAbsent || s == AttendanceExcused
}

// Training is a tenant-scoped session.
type Training struct {
	ID        string         `gorm:"type:varchar(36);primaryKey" json:"id"`
	TenantID  uint           `gorm:"index;not null" json:"tenant_id"`
	Date      time.Time      `gorm:"index;not null" json:"date"`
	Notes     string         `gorm:"type:text" json:"notes"`
	CreatedBy uint           `json:"created_by"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Training) TableName() string { return "trainings" }

func (t *Training) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

func (t *Training) GetTenantID() uint   { return t.TenantID }
func (t *Training) SetTenantID(id uint) { t.TenantID = id }
func (t *Training) GetID() string       { return t.ID }

// TrainingAttendance records one player's attendance at one training.
type TrainingAttendance struct {
	ID         string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	TenantID   uint      `gorm:"index;not null" json:"tenant_id"`
	TrainingID string    `gorm:"uniqueIndex:idx_training_player;type:varchar(36);not null" json:"training_id"`
	PlayerID   string    `gorm:"uniqueIndex:idx_training_player;type:varchar(36);not null" json:"player_id"`
	Status     string    `gorm:"size:20;not null" json:"status"` // present, absent, excused
	Notes      string    `gorm:"size:500" json:"notes"`
	MarkedBy   uint      `json:"marked_by"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (TrainingAttendance) TableName() string { return "training_attendances" }

func (a *TrainingAttendance) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// TrainingCharacteristic is a tenant-scoped lookup evaluations reference.
type TrainingCharacteristic struct {
	ID          string         `gorm:"type:varchar(36);primaryKey" json:"id"`
	TenantID    uint           `gorm:"index;not null" json:"tenant_id"`
	Name        string         `gorm:"size:100;not null" json:"name"`
	Description string         `gorm:"size:500" json:"description"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (TrainingCharacteristic) TableName() string { return "training_characteristics" }

func (c *TrainingCharacteristic) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

func (c *TrainingCharacteristic) GetTenantID() uint   { return c.TenantID }
func (c *TrainingCharacteristic) SetTenantID(id uint) { c.TenantID = id }
func (c *TrainingCharacteristic) GetID() string       { return c.ID }

// PlayerEvaluation scores one characteristic for one player at one training.
// Only players marked present can be evaluated.
type PlayerEvaluation struct {
	ID               string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	TenantID         uint      `gorm:"index;not null" json:"tenant_id"`
	TrainingID       string    `gorm:"uniqueIndex:idx_eval_unique;type:varchar(36);not null" json:"training_id"`
	PlayerID         string    `gorm:"uniqueIndex:idx_eval_unique;type:varchar(36);not null" json:"player_id"`
	CharacteristicID string    `gorm:"uniqueIndex:idx_eval_unique;type:varchar(36);not null" json:"characteristic_id"`
	Score            int       `gorm:"not null" json:"score"` // 1-10
	Notes            string    `gorm:"size:500" json:"notes"`
	EvaluatedBy      uint      `json:"evaluated_by"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (PlayerEvaluation) TableName() string { return "player_evaluations" }

func (e *PlayerEvaluation) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}
