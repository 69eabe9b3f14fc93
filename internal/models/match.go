package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Match is a tenant-scoped fixture. Scores stay nil until the match has
// been played.
type Match struct {
	ID        string         `gorm:"type:varchar(36);primaryKey" json:"id"`
	TenantID  uint           `gorm:"index;not null" json:"tenant_id"`
	Date      time.Time      `gorm:"index;not null" json:"date"`
	Opponent  string         `gorm:"size:200;not null" json:"opponent"`
	Location  string         `gorm:"size:200" json:"location"`
	IsHome    bool           `gorm:"default:true" json:"is_home"`
	ScoreUs   *int           `json:"score_us"`
	ScoreThem *int           `json:"score_them"`
	Notes     string         `gorm:"type:text" json:"notes"`
	CreatedBy uint           `json:"created_by"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Match) TableName() string { return "matches" }

func (m *Match) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

func (m *Match) GetTenantID() uint   { return m.TenantID }
func (m *Match) SetTenantID(id uint) { m.TenantID = id }
func (m *Match) GetID() string       { return m.ID }

// Played reports whether both scores have been recorded.
func (m *Match) Played() bool { return m.ScoreUs != nil && m.ScoreThem != nil }

// MatchStat holds one player's statistics for one match.
type MatchStat struct {
	ID            string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	TenantID      uint      `gorm:"index;not null" json:"tenant_id"`
	MatchID       string    `gorm:"uniqueIndex:idx_match_player;type:varchar(36);not null" json:"match_id"`
	PlayerID      string    `gorm:"uniqueIndex:idx_match_player;type:varchar(36);not null" json:"player_id"`
	MinutesPlayed int       `json:"minutes_played"`
	Goals         int       `json:"goals"`
	Assists       int       `json:"assists"`
	YellowCards   int       `json:"yellow_cards"`
	RedCards      int       `json:"red_cards"`
	Position      string    `gorm:"size:20" json:"position"`
	Rating        *int      `json:"rating"` // 1-10, nil when unrated
	Notes         string    `gorm:"type:text" json:"notes"`
	RecordedBy    uint      `json:"recorded_by"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (MatchStat) TableName() string { return "match_stats" }

func (s *MatchStat) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
