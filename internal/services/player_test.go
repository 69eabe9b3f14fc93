package services

import (
	"errors"
	"testing"
	"time"

	"github.com/clubstack/backend/internal/models"
)

func TestPlayerCRUDRoundTrip(t *testing.T) {
	db := newTestDB(t)
	svc := NewPlayerService(db)

	tenantID := seedTenant(t, db, "lions")
	scope := &Scope{UserID: 1, TenantID: tenantID, Role: models.RoleTrainer}

	created, err := svc.Create(scope, &CreatePlayerRequest{
		FirstName: "Leo",
		LastName:  "Lion",
		Birthday:  "2010-04-02",
		Positions: []string{models.PositionMidfielder, models.PositionForward},
		Email:     "leo@lions.example",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := svc.Get(scope, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.FullName() != "Leo Lion" {
		t.Errorf("full name = %q, want Leo Lion", got.FullName())
	}
	if len(got.Positions) != 2 {
		t.Errorf("positions = %v, want 2 entries", got.Positions)
	}
	if got.Birthday == nil || got.Birthday.Format("2006-01-02") != "2010-04-02" {
		t.Errorf("birthday = %v, want 2010-04-02", got.Birthday)
	}

	newPhone := "555-0101"
	updated, err := svc.Update(scope, created.ID, &UpdatePlayerRequest{Phone: &newPhone})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Phone != newPhone {
		t.Errorf("phone = %q, want %q", updated.Phone, newPhone)
	}
	if updated.FirstName != "Leo" {
		t.Errorf("partial update touched first name: %q", updated.FirstName)
	}
	if !updated.UpdatedAt.After(updated.CreatedAt) && !updated.UpdatedAt.Equal(updated.CreatedAt) {
		t.Error("updated_at not maintained")
	}

	if err := svc.Delete(scope, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Get(scope, created.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("get after delete error = %v, want ErrNotFound", err)
	}
}

func TestPlayerCreateRejectsUnknownPosition(t *testing.T) {
	db := newTestDB(t)
	svc := NewPlayerService(db)

	tenantID := seedTenant(t, db, "lions")
	scope := &Scope{UserID: 1, TenantID: tenantID, Role: models.RoleTrainer}

	_, err := svc.Create(scope, &CreatePlayerRequest{
		FirstName: "Leo",
		LastName:  "Lion",
		Positions: []string{"libero"},
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("error = %v, want ErrInvalidInput", err)
	}
}

func TestPlayerSearchAndPositionFilter(t *testing.T) {
	db := newTestDB(t)
	svc := NewPlayerService(db)

	tenantID := seedTenant(t, db, "lions")
	scope := &Scope{UserID: 1, TenantID: tenantID, Role: models.RoleTrainer}

	if _, err := svc.Create(scope, &CreatePlayerRequest{
		FirstName: "Leo", LastName: "Lion", Positions: []string{models.PositionGoalkeeper},
	}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Create(scope, &CreatePlayerRequest{
		FirstName: "Max", LastName: "Mane", Positions: []string{models.PositionForward},
	}); err != nil {
		t.Fatal(err)
	}

	byName, err := svc.List(scope, &PlayerListRequest{Search: "Lio"})
	if err != nil {
		t.Fatal(err)
	}
	if len(byName) != 1 || byName[0].LastName != "Lion" {
		t.Errorf("search result = %v, want just Lion", byName)
	}

	byPosition, err := svc.List(scope, &PlayerListRequest{Position: models.PositionForward})
	if err != nil {
		t.Fatal(err)
	}
	if len(byPosition) != 1 || byPosition[0].FirstName != "Max" {
		t.Errorf("position filter = %v, want just Max", byPosition)
	}

	if _, err := svc.List(scope, &PlayerListRequest{Position: "libero"}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("bad position error = %v, want ErrInvalidInput", err)
	}
}

func TestPlayerRoleSeesOnlyItself(t *testing.T) {
	db := newTestDB(t)
	svc := NewPlayerService(db)

	tenantID := seedTenant(t, db, "lions")
	trainer := &Scope{UserID: 1, TenantID: tenantID, Role: models.RoleTrainer}

	self := seedPlayer(t, db, svc, trainer, "Leo", "Lion")
	other := seedPlayer(t, db, svc, trainer, "Max", "Mane")

	playerScope := &Scope{UserID: 2, TenantID: tenantID, Role: models.RolePlayer, PlayerID: &self.ID}

	roster, err := svc.List(playerScope, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(roster) != 1 || roster[0].ID != self.ID {
		t.Errorf("player-role roster = %v, want only own entry", roster)
	}

	if _, err := svc.Get(playerScope, self.ID); err != nil {
		t.Errorf("own get: %v", err)
	}
	if _, err := svc.Get(playerScope, other.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("foreign get error = %v, want ErrNotFound", err)
	}

	// A player-role membership without a linked roster entry sees nothing.
	unlinked := &Scope{UserID: 3, TenantID: tenantID, Role: models.RolePlayer}
	empty, err := svc.List(unlinked, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(empty) != 0 {
		t.Errorf("unlinked player roster = %d entries, want 0", len(empty))
	}
}

func TestListExpiringCredentials(t *testing.T) {
	db := newTestDB(t)
	svc := NewPlayerService(db)

	tenantID := seedTenant(t, db, "lions")
	scope := &Scope{UserID: 1, TenantID: tenantID, Role: models.RoleTenantAdmin}

	soon := time.Now().AddDate(0, 0, 10).Format("2006-01-02")
	far := time.Now().AddDate(1, 0, 0).Format("2006-01-02")

	if _, err := svc.Create(scope, &CreatePlayerRequest{
		FirstName: "Leo", LastName: "Lion",
		EPORecordExpiry:  soon,
		HealthCardExpiry: far,
	}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Create(scope, &CreatePlayerRequest{
		FirstName: "Max", LastName: "Mane",
		HealthCardExpiry: far,
	}); err != nil {
		t.Fatal(err)
	}

	expiring, err := svc.ListExpiringCredentials(scope, 30)
	if err != nil {
		t.Fatal(err)
	}
	if len(expiring) != 1 {
		t.Fatalf("expiring = %d entries, want 1", len(expiring))
	}
	if expiring[0].Credential != "epo_record" {
		t.Errorf("credential = %s, want epo_record", expiring[0].Credential)
	}
	if expiring[0].Player.FirstName != "Leo" {
		t.Errorf("player = %s, want Leo", expiring[0].Player.FirstName)
	}
}
