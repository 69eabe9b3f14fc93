package services

import (
	"errors"
	"testing"

	"github.com/clubstack/backend/internal/models"
)

func TestScopedRepoTenantIsolation(t *testing.T) {
	db := newTestDB(t)
	svc := NewPlayerService(db)

	lionsID := seedTenant(t, db, "lions")
	tigersID := seedTenant(t, db, "tigers")
	lions := &Scope{UserID: 1, TenantID: lionsID, Role: models.RoleTrainer}
	tigers := &Scope{UserID: 2, TenantID: tigersID, Role: models.RoleTrainer}

	lionsPlayer := seedPlayer(t, db, svc, lions, "Leo", "Lion")
	seedPlayer(t, db, svc, tigers, "Tom", "Tiger")

	lionsRoster, err := svc.List(lions, nil)
	if err != nil {
		t.Fatalf("list lions: %v", err)
	}
	if len(lionsRoster) != 1 {
		t.Fatalf("lions roster = %d players, want 1", len(lionsRoster))
	}
	if lionsRoster[0].FirstName != "Leo" {
		t.Errorf("lions roster contains %q, want Leo", lionsRoster[0].FirstName)
	}

	// A player id from another tenant must behave as missing.
	if _, err := svc.Get(tigers, lionsPlayer.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("cross-tenant get error = %v, want ErrNotFound", err)
	}
	if _, err := svc.Update(tigers, lionsPlayer.ID, &UpdatePlayerRequest{}); !errors.Is(err, ErrNotFound) {
		t.Errorf("cross-tenant update error = %v, want ErrNotFound", err)
	}
	if err := svc.Delete(tigers, lionsPlayer.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("cross-tenant delete error = %v, want ErrNotFound", err)
	}

	// The lions roster is untouched by the failed cross-tenant writes.
	if _, err := svc.Get(lions, lionsPlayer.ID); err != nil {
		t.Errorf("own get after cross-tenant attempts: %v", err)
	}
}

func TestScopedRepoCreateStampsTenant(t *testing.T) {
	db := newTestDB(t)
	svc := NewPlayerService(db)

	tenantID := seedTenant(t, db, "lions")
	scope := &Scope{UserID: 1, TenantID: tenantID, Role: models.RoleTenantAdmin}

	player := seedPlayer(t, db, svc, scope, "Leo", "Lion")
	if player.TenantID != tenantID {
		t.Errorf("player tenant = %d, want %d", player.TenantID, tenantID)
	}
	if player.ID == "" {
		t.Error("player id not generated")
	}
	if player.CreatedAt.IsZero() {
		t.Error("created_at not stamped")
	}
}

func TestScopedRepoUpdateCannotMoveTenant(t *testing.T) {
	db := newTestDB(t)
	repo := NewScopedRepo[models.Player, *models.Player](db)

	lionsID := seedTenant(t, db, "lions")
	tigersID := seedTenant(t, db, "tigers")
	scope := &Scope{UserID: 1, TenantID: lionsID, Role: models.RoleTenantAdmin}

	player := models.Player{FirstName: "Leo", LastName: "Lion"}
	if err := repo.Create(scope, &player); err != nil {
		t.Fatalf("create: %v", err)
	}

	// tenant_id and id keys in the patch are dropped, not applied.
	updated, err := repo.Update(scope, player.ID, map[string]interface{}{
		"first_name": "Leopold",
		"tenant_id":  tigersID,
		"id":         "fake-id",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.TenantID != lionsID {
		t.Errorf("tenant moved to %d, want %d", updated.TenantID, lionsID)
	}
	if updated.FirstName != "Leopold" {
		t.Errorf("first name = %q, want Leopold", updated.FirstName)
	}
}

func TestScopedRepoDeleteIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := NewPlayerService(db)

	tenantID := seedTenant(t, db, "lions")
	scope := &Scope{UserID: 1, TenantID: tenantID, Role: models.RoleTenantAdmin}

	player := seedPlayer(t, db, svc, scope, "Leo", "Lion")

	if err := svc.Delete(scope, player.ID); err != nil {
		t.Fatalf("first delete: %v", err)
	}
	if err := svc.Delete(scope, player.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete error = %v, want ErrNotFound", err)
	}
}

func TestScopedRepoRejectsEmptyScope(t *testing.T) {
	db := newTestDB(t)
	repo := NewScopedRepo[models.Player, *models.Player](db)

	for _, scope := range []*Scope{nil, {UserID: 7}} {
		if _, err := repo.List(scope); !errors.Is(err, ErrNoTenant) {
			t.Errorf("list with scope %+v error = %v, want ErrNoTenant", scope, err)
		}
		if err := repo.Create(scope, &models.Player{FirstName: "x"}); !errors.Is(err, ErrNoTenant) {
			t.Errorf("create with scope %+v error = %v, want ErrNoTenant", scope, err)
		}
	}
}
