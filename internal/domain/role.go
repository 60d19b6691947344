package domain

import (
	"fmt"
	"strings"
)

// Role is the closed set of roles a user can hold
type Role string

const (
	RoleDepartmentUser Role = "department_user"  // Submits its own department's counts
	RoleHeadOfPlanning Role = "head_of_planning" // Read-only cross-department reporting and export
)

// legacyPlanningRole is the second spelling older clients and rows still carry.
const legacyPlanningRole = "planning_head"

// ParseRole maps a client supplied role name onto a Role.
// An empty string yields the default department_user role.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(RoleDepartmentUser):
		return RoleDepartmentUser, nil
	case string(RoleHeadOfPlanning), legacyPlanningRole:
		return RoleHeadOfPlanning, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// Valid reports whether r is one of the known roles
func (r Role) Valid() bool {
	switch r {
	case RoleDepartmentUser, RoleHeadOfPlanning:
		return true
	default:
		return false
	}
}

func (r Role) String() string { return string(r) }
