package user

import (
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"github.com/trezcool/edutrack/core"
)

// Roles
const (
	RoleTeacher       = "teacher"
	RoleAdministrator = "administrator"
)

var (
	AllRoles = []string{RoleTeacher, RoleAdministrator}

	Roles = []Role{
		{Name: "Teacher", Value: RoleTeacher},
		{Name: "Administrator", Value: RoleAdministrator},
	}
)

type Role struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type User struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Role         string    `json:"role"`
	SubjectAreas []string  `json:"subjectAreas"`
	GradeLevels  []string  `json:"gradeLevels"`
	PasswordHash []byte    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"` // UTC
	UpdatedAt    time.Time `json:"updatedAt"` // UTC
}

func (u *User) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

func (u *User) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(pwd))
}

func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdministrator
}

func (u User) IsTeacher() bool {
	return u.Role == RoleTeacher
}

// NewUser contains information needed to create a new User.
type NewUser struct {
	Username     string   `json:"username" validate:"required,min=3,alphanum_"`
	Email        string   `json:"email" validate:"required,email"`
	Password     string   `json:"password" validate:"required,max=72"`
	FirstName    string   `json:"firstName" validate:"required"`
	LastName     string   `json:"lastName" validate:"required"`
	Role         string   `json:"role" validate:"omitempty,oneof=teacher administrator"`
	SubjectAreas []string `json:"subjectAreas"`
	GradeLevels  []string `json:"gradeLevels"`
}

func (nu *NewUser) Validate(validate *validator.Validate) error {
	nu.Username = core.CleanString(nu.Username, true /* lower */)
	nu.Email = core.CleanString(nu.Email, true /* lower */)
	nu.FirstName = core.CleanString(nu.FirstName)
	nu.LastName = core.CleanString(nu.LastName)
	nu.Role = core.CleanString(nu.Role, true /* lower */)
	nu.SubjectAreas = core.CleanStringSet(nu.SubjectAreas)
	nu.GradeLevels = core.CleanStringSet(nu.GradeLevels)
	return validate.Struct(nu)
}

// UpdateUser defines what information may be provided to modify an existing User.
// Empty strings and nil slices keep the current values.
type UpdateUser struct {
	Username     string   `json:"username" validate:"required,min=3,alphanum_"`
	Email        string   `json:"email" validate:"required,email"`
	FirstName    string   `json:"firstName" validate:"required"`
	LastName     string   `json:"lastName" validate:"required"`
	Role         string   `json:"role" validate:"required,oneof=teacher administrator"`
	SubjectAreas []string `json:"subjectAreas"`
	GradeLevels  []string `json:"gradeLevels"`
}

// ChangesRole reports whether the update asks for a role other than `origUsr`'s.
func (uu UpdateUser) ChangesRole(origUsr User) bool {
	role := core.CleanString(uu.Role, true /* lower */)
	return role != "" && role != origUsr.Role
}

func (uu *UpdateUser) Validate(origUsr User, validate *validator.Validate) error {
	keep := func(val, orig string, lower bool) string {
		if v := core.CleanString(val, lower); v != "" {
			return v
		}
		return orig
	}
	uu.Username = keep(uu.Username, origUsr.Username, true)
	uu.Email = keep(uu.Email, origUsr.Email, true)
	uu.FirstName = keep(uu.FirstName, origUsr.FirstName, false)
	uu.LastName = keep(uu.LastName, origUsr.LastName, false)
	uu.Role = keep(uu.Role, origUsr.Role, true)

	if uu.SubjectAreas != nil {
		uu.SubjectAreas = core.CleanStringSet(uu.SubjectAreas)
	} else {
		uu.SubjectAreas = origUsr.SubjectAreas
	}
	if uu.GradeLevels != nil {
		uu.GradeLevels = core.CleanStringSet(uu.GradeLevels)
	} else {
		uu.GradeLevels = origUsr.GradeLevels
	}
	return validate.Struct(uu)
}

// ChangePassword is sent by a User to replace their own password.
// The user attributes are copied from the account before validation so the policy can compare against them.
type ChangePassword struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,max=72"`

	Username  string `json:"-"`
	Email     string `json:"-"`
	FirstName string `json:"-"`
	LastName  string `json:"-"`
}

func (cp *ChangePassword) Validate(usr User, validate *validator.Validate) error {
	cp.Username = usr.Username
	cp.Email = usr.Email
	cp.FirstName = usr.FirstName
	cp.LastName = usr.LastName
	return validate.Struct(cp)
}

type QueryFilter struct {
	Search string   `query:"search"`
	Roles  []string `query:"role"`
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.Search == "" && qf.Roles == nil
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
}
