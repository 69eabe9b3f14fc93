package services

import (
	"testing"

	"github.com/clubstack/backend/internal/models"
)

func TestPolicyMatrix(t *testing.T) {
	tests := []struct {
		role    models.Role
		entity  Entity
		perm    Permission
		allowed bool
	}{
		{models.RoleTenantAdmin, EntityPlayers, PermCRUD, true},
		{models.RoleTenantAdmin, EntityUsers, PermCRUD, true},
		{models.RoleTenantAdmin, EntityTrainings, PermAttendance | PermEvaluate, true},
		{models.RoleTenantAdmin, EntityMatches, PermStats, true},

		{models.RoleTrainer, EntityPlayers, PermCRUD, true},
		{models.RoleTrainer, EntityTrainings, PermCRUD | PermAttendance | PermEvaluate, true},
		{models.RoleTrainer, EntityMatches, PermCRUD | PermStats, true},
		{models.RoleTrainer, EntityUsers, PermRead, true},
		{models.RoleTrainer, EntityUsers, PermCreate, false},

		{models.RoleTrainingSupervisor, EntityPlayers, PermRead, true},
		{models.RoleTrainingSupervisor, EntityPlayers, PermCreate, false},
		{models.RoleTrainingSupervisor, EntityTrainings, PermRead | PermAttendance, true},
		{models.RoleTrainingSupervisor, EntityTrainings, PermEvaluate, false},
		{models.RoleTrainingSupervisor, EntityMatches, PermRead, false},

		{models.RoleMatchSupervisor, EntityMatches, PermRead | PermStats, true},
		{models.RoleMatchSupervisor, EntityMatches, PermDelete, false},
		{models.RoleMatchSupervisor, EntityTrainings, PermRead, false},

		{models.RoleUser, EntityPlayers, PermRead, true},
		{models.RoleUser, EntityPlayers, PermUpdate, false},
		{models.RoleUser, EntityTrainings, PermRead, false},

		{models.RolePlayer, EntityPlayers, PermRead, true},
		{models.RolePlayer, EntityTrainings, PermRead, true},
		{models.RolePlayer, EntityMatches, PermRead, false},

		{models.RoleSuperadmin, EntityUsers, PermCRUD, true},
		{models.RoleSuperadmin, EntityLogs, PermRead, true},
		{models.RoleSuperadmin, EntityPlayers, PermRead, false},

		// Unknown roles carry no permissions.
		{models.Role("ghost"), EntityPlayers, PermRead, false},
	}

	for _, tt := range tests {
		if got := Allowed(tt.role, tt.entity, tt.perm); got != tt.allowed {
			t.Errorf("Allowed(%s, %s, %b) = %v, want %v", tt.role, tt.entity, tt.perm, got, tt.allowed)
		}
	}
}

func TestPlayerRoleIsOwnOnly(t *testing.T) {
	if !OwnOnly(models.RolePlayer, EntityPlayers) {
		t.Error("player role must be restricted to its own roster entry")
	}
	if !OwnOnly(models.RolePlayer, EntityTrainings) {
		t.Error("player role must be restricted to its own training rows")
	}
	if OwnOnly(models.RoleTrainer, EntityPlayers) {
		t.Error("trainer role must see the whole roster")
	}
	if OwnOnly(models.RoleTrainer, EntityTrainings) {
		t.Error("trainer role must see the full attendance sheet")
	}
}
