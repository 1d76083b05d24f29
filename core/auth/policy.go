package auth

import (
	"github.com/trezcool/edutrack/core"
	"github.com/trezcool/edutrack/core/user"
)

// Policy is the access rule of an operation.
type Policy int

const (
	// Authenticated lets any valid session through.
	Authenticated Policy = iota
	// AdminOnly requires the administrator role.
	AdminOnly
	// SelfOrAdmin lets teachers reach their own data only; administrators reach anyone's.
	SelfOrAdmin
)

// Caller is the identity behind a request, looked up from its session.
type Caller struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

func (c Caller) IsAdmin() bool {
	return c.Role == user.RoleAdministrator
}

// Authorize evaluates `policy` for the caller; `targetID` is the user the operation is about (SelfOrAdmin only).
func (c Caller) Authorize(policy Policy, targetID int) error {
	switch policy {
	case Authenticated:
		return nil
	case AdminOnly:
		if c.IsAdmin() {
			return nil
		}
	case SelfOrAdmin:
		if c.IsAdmin() || c.ID == targetID {
			return nil
		}
	}
	return core.ErrForbidden
}
