package services

import (
	"testing"

	"github.com/clubstack/backend/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Tenant{},
		&models.TenantUser{},
		&models.Invitation{},
		&models.Player{},
		&models.Training{},
		&models.TrainingAttendance{},
		&models.TrainingCharacteristic{},
		&models.PlayerEvaluation{},
		&models.Match{},
		&models.MatchStat{},
		&models.SystemLog{},
	)
	if err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	return db
}

// seedTenant creates a tenant row and returns its id.
func seedTenant(t *testing.T, db *gorm.DB, slug string) uint {
	t.Helper()

	tenant := models.Tenant{Slug: slug, Name: slug, IsActive: true}
	if err := db.Create(&tenant).Error; err != nil {
		t.Fatalf("seed tenant %s: %v", slug, err)
	}
	return tenant.ID
}

// seedUser creates a user account and returns its id.
func seedUser(t *testing.T, db *gorm.DB, email, passwordHash string) uint {
	t.Helper()

	user := models.User{Email: email, Password: passwordHash, IsActive: true}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user %s: %v", email, err)
	}
	return user.ID
}

// seedMembership links a user into a tenant with the given role.
func seedMembership(t *testing.T, db *gorm.DB, userID, tenantID uint, role models.Role) *Scope {
	t.Helper()

	membership := models.TenantUser{UserID: userID, TenantID: tenantID, Role: role}
	if err := db.Create(&membership).Error; err != nil {
		t.Fatalf("seed membership: %v", err)
	}
	return &Scope{UserID: userID, TenantID: tenantID, Role: role}
}

// seedPlayer creates a roster entry and returns it.
func seedPlayer(t *testing.T, db *gorm.DB, svc *PlayerService, scope *Scope, first, last string) *models.Player {
	t.Helper()

	player, err := svc.Create(scope, &CreatePlayerRequest{
		FirstName: first,
		LastName:  last,
	})
	if err != nil {
		t.Fatalf("seed player %s %s: %v", first, last, err)
	}
	return player
}
