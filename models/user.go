// Package models defines data structures used across the application.
// File: models/user.go
package models

// ----------------------- role & status -----------------------

// Role controls access to the management surfaces.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin:
		return true
	}
	return false
}

// Status controls VIP content visibility. It is independent of Role:
// an account can be an admin and still be pending, at least in principle.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved:
		return true
	}
	return false
}

// ----------------------- user model -----------------------

// User is a registered account. Email is the unique key across the
// directory. Password holds a bcrypt hash, never the plain text.
type User struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
	Role     Role   `json:"role"`
	Status   Status `json:"status"`
}

// Sanitized returns a copy of the user safe to hand to a client:
// the password hash is stripped.
func (u User) Sanitized() User {
	u.Password = ""
	return u
}

// ----------------------- user patch -----------------------

// UserPatch lists exactly the mutable fields of a User. Nil pointers leave
// the corresponding field unchanged; the email key itself is not patchable.
type UserPatch struct {
	FullName *string `json:"fullName,omitempty"`
	Password *string `json:"password,omitempty"`
	Role     *Role   `json:"role,omitempty"`
	Status   *Status `json:"status,omitempty"`
}

// Apply merges the patch into u, field by field.
func (p UserPatch) Apply(u *User) {
	if p.FullName != nil {
		u.FullName = *p.FullName
	}
	if p.Password != nil {
		u.Password = *p.Password
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
	if p.Status != nil {
		u.Status = *p.Status
	}
}
