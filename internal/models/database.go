package models

import (
	"fmt"

	"github.com/clubstack/backend/internal/config"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func InitDB(cfg *config.DatabaseConfig) error {
	var dialector gorm.Dialector

	switch cfg.Driver {
	case "sqlite":
		dialector = sqlite.Open(cfg.DSN)
	case "mysql":
		dialector = mysql.Open(cfg.DSN)
	case "postgres":
		dialector = postgres.Open(cfg.DSN)
	default:
		return fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
		// Dialect errors (unique violations etc.) become gorm.ErrDuplicatedKey
		// so services can map them to conflict errors uniformly.
		TranslateError: true,
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return fmt.Errorf("failed to connect database: %w", err)
	}

	DB = db
	return nil
}

func AutoMigrate() error {
	return DB.AutoMigrate(
		&User{},
		&RefreshToken{},
		&Tenant{},
		&TenantUser{},
		&Invitation{},
		&Player{},
		&Training{},
		&TrainingAttendance{},
		&TrainingCharacteristic{},
		&PlayerEvaluation{},
		&Match{},
		&MatchStat{},
		&SystemLog{},
	)
}

func GetDB() *gorm.DB {
	return DB
}

// DefaultCharacteristics seeded into every new tenant so evaluations have
// a baseline vocabulary.
var DefaultCharacteristics = []TrainingCharacteristic{
	{Name: "Passing", Description: "Ability to pass accurately"},
	{Name: "Shooting", Description: "Shooting technique and accuracy"},
	{Name: "Dribbling", Description: "Ball control while dribbling"},
	{Name: "Positioning", Description: "Tactical awareness and positioning"},
	{Name: "Physical", Description: "Strength, speed, and stamina"},
}

// SeedTenantDefaults creates the default characteristic set for a tenant.
// Safe to call more than once.
func SeedTenantDefaults(db *gorm.DB, tenantID uint) error {
	var count int64
	db.Model(&TrainingCharacteristic{}).Where("tenant_id = ?", tenantID).Count(&count)
	if count > 0 {
		return nil
	}

	for _, c := range DefaultCharacteristics {
		c.TenantID = tenantID
		if err := db.Create(&c).Error; err != nil {
			return err
		}
	}
	return nil
}
