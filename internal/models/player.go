package models

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Position codes a player can occupy.
const (
	PositionGoalkeeper = "goalkeeper"
	PositionDefender   = "defender"
	PositionMidfielder = "midfielder"
	PositionForward    = "forward"
)

var knownPositions = map[string]bool{
	PositionGoalkeeper: true,
	PositionDefender:   true,
	PositionMidfielder: true,
	PositionForward:    true,
}

// ValidPosition reports whether code is a known position.
func ValidPosition(code string) bool { return knownPositions[code] }

// PositionList stores a set of position codes as a comma-joined string so
// it works across all supported database drivers.
type PositionList []string

func (p PositionList) Value() (driver.Value, error) {
	if len(p) == 0 {
		return "", nil
	}
	return strings.Join(p, ","), nil
}

func (p *PositionList) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*p = nil
	case string:
		if v == "" {
			*p = nil
		} else {
			*p = strings.Split(v, ",")
		}
	case []byte:
		return p.Scan(string(v))
	default:
		return fmt.Errorf("unsupported position list type %T", value)
	}
	return nil
}

// Player is a tenant-scoped roster entry.
type Player struct {
	ID              string       `gorm:"type:varchar(36);primaryKey" json:"id"`
	TenantID        uint         `gorm:"index;not null" json:"tenant_id"`
	FirstName       string       `gorm:"size:100;not null" json:"first_name"`
	LastName        string       `gorm:"size:100;not null" json:"last_name"`
	FatherName      string       `gorm:"size:100" json:"father_name"`
	MotherName      string       `gorm:"size:100" json:"mother_name"`
	NationalID      string       `gorm:"size:50" json:"national_id"`
	PassportNumber  string       `gorm:"size:50" json:"passport_number"`
	Nationality     string       `gorm:"size:100" json:"nationality"`
	PlaceOfBirth    string       `gorm:"size:200" json:"place_of_birth"`
	Birthday        *time.Time   `json:"birthday"`
	Positions       PositionList `gorm:"size:200" json:"positions"`
	Email           string       `gorm:"size:255" json:"email"`
	Phone           string       `gorm:"size:50" json:"phone"`
	EPORecordNumber string       `gorm:"size:50" json:"epo_record_number"`
	EPORecordExpiry *time.Time   `json:"epo_record_expiry"`
	HealthCardExpiry *time.Time  `json:"health_card_expiry"`
	ProfileImageURL string       `gorm:"size:500" json:"profile_image_url"`
	Comments        string       `gorm:"type:text" json:"comments"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Player) TableName() string { return "players" }

func (p *Player) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

func (p *Player) GetTenantID() uint      { return p.TenantID }
func (p *Player) SetTenantID(id uint)    { p.TenantID = id }
func (p *Player) GetID() string          { return p.ID }

// FullName is the display name used in listings and notifications.
func (p *Player) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}
