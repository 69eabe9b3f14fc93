package models

// Role is the closed set of tenant roles. The string values are part of
// the persisted schema and must not change.
type Role string

const (
	RoleSuperadmin         Role = "superadmin"
	RoleTenantAdmin        Role = "tenantadmin"
	RoleTrainer            Role = "trainer"
	RoleTrainingSupervisor Role = "training_supervisor"
	RoleMatchSupervisor    Role = "match_supervisor"
	RoleUser               Role = "user"
	RolePlayer             Role = "player"
)

// Roles lists every valid role.
var Roles = []Role{
	RoleSuperadmin,
	RoleTenantAdmin,
	RoleTrainer,
	RoleTrainingSupervisor,
	RoleMatchSupervisor,
	RoleUser,
	RolePlayer,
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

func (r Role) String() string { return string(r) }
