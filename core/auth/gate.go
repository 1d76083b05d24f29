// Package auth resolves bearer tokens to callers and enforces the role & ownership policies.
package auth

import (
	"github.com/pkg/errors"

	"github.com/trezcool/edutrack/core"
	"github.com/trezcool/edutrack/core/user"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type (
	Sessions interface {
		Create(userID int) (string, error)
		Resolve(token string) (int, error)
		Revoke(token string)
		RevokeUser(userID int, keep string) int
	}

	Users interface {
		GetByID(id int) (user.User, error)
		GetByUsernameOrEmail(uname string) (user.User, error)
	}

	Gate struct {
		sessions Sessions
		users    Users
	}
)

func NewGate(sessions Sessions, users Users) *Gate {
	return &Gate{sessions: sessions, users: users}
}

// Login checks the credentials and opens a session for the matching User.
func (g *Gate) Login(uname, pwd string) (string, user.User, error) {
	usr, err := g.users.GetByUsernameOrEmail(uname)
	if err != nil {
		if errors.Cause(err) == user.ErrNotFound {
			return "", user.User{}, ErrInvalidCredentials
		}
		return "", user.User{}, errors.Wrap(err, "finding user by username or email")
	}
	if err = usr.CheckPassword(pwd); err != nil {
		return "", user.User{}, ErrInvalidCredentials
	}

	token, err := g.sessions.Create(usr.ID)
	if err != nil {
		return "", user.User{}, errors.Wrap(err, "creating session")
	}
	return token, usr, nil
}

// Logout revokes `token` if it is set.
func (g *Gate) Logout(token string) {
	if token != "" {
		g.sessions.Revoke(token)
	}
}

// LogoutOthers revokes every session of `userID` but `token`.
func (g *Gate) LogoutOthers(userID int, token string) int {
	return g.sessions.RevokeUser(userID, token)
}

// Authenticate resolves `token` to the Caller it was issued to.
// It fails with a session error or core.ErrUnauthenticated if the User no longer exists.
func (g *Gate) Authenticate(token string) (Caller, error) {
	uid, err := g.sessions.Resolve(token)
	if err != nil {
		return Caller{}, err
	}

	usr, err := g.users.GetByID(uid)
	if err != nil {
		if errors.Cause(err) == user.ErrNotFound {
			g.sessions.Revoke(token)
			return Caller{}, core.ErrUnauthenticated
		}
		return Caller{}, errors.Wrap(err, "finding session user")
	}
	return Caller{ID: usr.ID, Username: usr.Username, Role: usr.Role}, nil
}
