package domain

import "time"

// Roles a user can hold. Masters are field technicians using the worker
// app; admins are dispatchers.
const (
	RoleMaster = "master"
	RoleAdmin  = "admin"
)

// ValidRole reports whether r is a known role.
func ValidRole(r string) bool {
	return r == RoleMaster || r == RoleAdmin
}

type User struct {
	ID         string
	Phone      string // normalized, unique
	Name       *string
	Email      *string
	Role       string
	IsActive   bool
	IsVerified bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ProfileUpdate is what a user may change about themselves. Nil means keep.
type ProfileUpdate struct {
	Name  *string
	Email *string
}

// UserPatch is what a dispatcher may change about any user. Nil means keep.
type UserPatch struct {
	Name     *string
	Role     *string
	IsActive *bool
}

// Apply validates p and applies it to u.
func (p UserPatch) Apply(u *User) error {
	if p.Role != nil {
		if !ValidRole(*p.Role) {
			return &ValidationError{Field: "role", Reason: "must be master or admin"}
		}
		u.Role = *p.Role
	}
	if p.Name != nil {
		u.Name = p.Name
	}
	if p.IsActive != nil {
		u.IsActive = *p.IsActive
	}
	return nil
}
