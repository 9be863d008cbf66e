package models

import (
	"fmt"
	"strings"
)

// Role is the closed set of identities a user can hold.
type Role string

const (
	RoleStudent       Role = "Student"
	RoleTeacher       Role = "Teacher"
	RoleAdministrator Role = "Administrator"
)

// Roles lists every role in display order.
var Roles = []Role{RoleStudent, RoleTeacher, RoleAdministrator}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleTeacher, RoleAdministrator:
		return true
	}
	return false
}

// ParseRole resolves a role name case-insensitively.
func ParseRole(value string) (Role, error) {
	for _, r := range Roles {
		if strings.EqualFold(string(r), strings.TrimSpace(value)) {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown role %q", value)
}

// MatchRole dispatches on role, requiring a branch for every role. Roles are validated
// on create, update, roster load and session lookup, so an unknown role here is a
// programming error.
func MatchRole[T any](role Role, onStudent, onTeacher, onAdministrator func() T) T {
	switch role {
	case RoleStudent:
		return onStudent()
	case RoleTeacher:
		return onTeacher()
	case RoleAdministrator:
		return onAdministrator()
	}
	panic(fmt.Sprintf("models: unhandled role %q", role))
}
