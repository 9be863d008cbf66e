package models

import "strings"

// User is a roster entry. Passwords are stored and compared in plaintext.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
}

// UserDetails carries a partial update; nil fields are left untouched.
type UserDetails struct {
	Username *string
	Password *string
	Role     *Role
}

// Empty reports whether the update changes nothing.
func (d UserDetails) Empty() bool {
	return d.Username == nil && d.Password == nil && d.Role == nil
}

// Apply merges the set fields into u.
func (d UserDetails) Apply(u User) User {
	if d.Username != nil {
		u.Username = *d.Username
	}
	if d.Password != nil {
		u.Password = *d.Password
	}
	if d.Role != nil {
		u.Role = *d.Role
	}
	return u
}

// SameUsername compares usernames case-insensitively.
func SameUsername(a, b string) bool {
	return strings.EqualFold(a, b)
}
