package session

// Role is the user_type of an account
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleMaintainer Role = "maintainer"
	RoleUser       Role = "user"
)

// Permission is a capability a route can require
type Permission string

const (
	PermissionAdmin       Permission = "admin"
	PermissionMaintenance Permission = "maintenance"
	PermissionView        Permission = "view"
)

// Default views per role
const (
	PathLogin            = "/login"
	PathAdminDashboard   = "/admin-dashboard"
	PathSensorManagement = "/sensor-management"
	PathCampus           = "/campus"
)

// capabilities lists, for every permission, the roles that hold it
var capabilities = map[Permission][]Role{
	PermissionAdmin:       {RoleAdmin},
	PermissionMaintenance: {RoleAdmin, RoleMaintainer},
	PermissionView:        {RoleAdmin, RoleMaintainer, RoleUser},
}

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleMaintainer, RoleUser:
		return true
	}
	return false
}

// Has reports whether r holds permission p. Unknown permissions are never held.
func (r Role) Has(p Permission) bool {
	for _, holder := range capabilities[p] {
		if holder == r {
			return true
		}
	}
	return false
}

// HomePath is where r lands after login or when a route is denied
func (r Role) HomePath() string {
	switch r {
	case RoleAdmin:
		return PathAdminDashboard
	case RoleMaintainer:
		return PathSensorManagement
	default:
		return PathCampus
	}
}
