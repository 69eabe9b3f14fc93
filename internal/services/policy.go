package services

import "github.com/clubstack/backend/internal/models"

// Entity names used by the permission policy.
type Entity string

const (
	EntityPlayers         Entity = "players"
	EntityTrainings       Entity = "trainings"
	EntityMatches         Entity = "matches"
	EntityUsers           Entity = "users"
	EntityCharacteristics Entity = "characteristics"
	EntityDashboard       Entity = "dashboard"
	EntityLogs            Entity = "logs"
)

// Permission is a bitmask of allowed operations on an entity.
type Permission uint

const (
	PermRead Permission = 1 << iota
	PermCreate
	PermUpdate
	PermDelete
	// PermAttendance allows marking training attendance.
	PermAttendance
	// PermEvaluate allows scoring player evaluations.
	PermEvaluate
	// PermStats allows recording match statistics.
	PermStats
	// PermOwnOnly restricts reads to the caller's own linked records.
	PermOwnOnly

	PermNone Permission = 0
	PermCRUD            = PermRead | PermCreate | PermUpdate | PermDelete
)

// Has reports whether p includes all bits of required.
func (p Permission) Has(required Permission) bool {
	return p&required == required
}

// policyTable is the single source of truth for role gating. Nothing may
// infer permission from data shape; only the resolved role counts.
var policyTable = map[models.Role]map[Entity]Permission{
	models.RoleSuperadmin: {
		EntityUsers: PermCRUD,
		EntityLogs:  PermRead,
	},
	models.RoleTenantAdmin: {
		EntityPlayers:         PermCRUD,
		EntityTrainings:       PermCRUD | PermAttendance | PermEvaluate,
		EntityMatches:         PermCRUD | PermStats,
		EntityUsers:           PermCRUD,
		EntityCharacteristics: PermCRUD,
		EntityDashboard:       PermRead,
		EntityLogs:            PermRead,
	},
	models.RoleTrainer: {
		EntityPlayers:         PermCRUD,
		EntityTrainings:       PermCRUD | PermAttendance | PermEvaluate,
		EntityMatches:         PermCRUD | PermStats,
		EntityUsers:           PermRead,
		EntityCharacteristics: PermCRUD,
		EntityDashboard:       PermRead,
	},
	models.RoleTrainingSupervisor: {
		EntityPlayers:         PermRead,
		EntityTrainings:       PermRead | PermAttendance,
		EntityCharacteristics: PermRead,
		EntityDashboard:       PermRead,
	},
	models.RoleMatchSupervisor: {
		EntityPlayers:   PermRead,
		EntityMatches:   PermRead | PermStats,
		EntityDashboard: PermRead,
	},
	models.RoleUser: {
		EntityPlayers:   PermRead,
		EntityDashboard: PermRead,
	},
	models.RolePlayer: {
		EntityPlayers:   PermRead | PermOwnOnly,
		EntityTrainings: PermRead | PermOwnOnly,
		EntityDashboard: PermRead,
	},
}

// RolePermissions returns the permission set of role on entity.
func RolePermissions(role models.Role, entity Entity) Permission {
	perms, ok := policyTable[role]
	if !ok {
		return PermNone
	}
	return perms[entity]
}

// Allowed reports whether role may perform the given operations on entity.
func Allowed(role models.Role, entity Entity, required Permission) bool {
	return RolePermissions(role, entity).Has(required)
}

// OwnOnly reports whether role is restricted to its own records on entity.
func OwnOnly(role models.Role, entity Entity) bool {
	return RolePermissions(role, entity).Has(PermOwnOnly)
}
