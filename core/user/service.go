package user

import (
	"net/mail"
	"sort"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/edutrack/core"
)

var (
	// errors
	ErrNotFound        = core.NewNotFoundError("user not found")
	ErrEmailExists     = errors.New("a user with this email already exists")
	ErrUsernameExists  = errors.New("a user with this username already exists")
	ErrInvalidPassword = errors.New("current password is incorrect")
)

const (
	welcomeTitle   = "Welcome to EduTrack!"
	welcomeMessage = "Your account has been created. Start by exploring the standards and adding your first lesson."
)

type (
	// Repository stores Users. CreateUser and UpdateUser must check username & email uniqueness
	// atomically with the write, returning ErrUsernameExists or ErrEmailExists.
	Repository interface {
		CreateUser(usr User) (User, error)
		GetUserByID(id int) (User, error)
		GetUserByUsername(username string) (User, error)
		GetUserByUsernameOrEmail(username string) (User, error)
		// FilterUsers applies AND operation on available QueryFilter fields.
		// QueryFilter.Search does a case-insensitive match on one of the User names, Username or Email.
		FilterUsers(filter QueryFilter) ([]User, error)
		UpdateUser(usr User) (User, error)
	}

	// Notifier delivers in-app notifications.
	Notifier interface {
		Notify(userID int, title, message, kind string) error
	}

	Service struct {
		repo     Repository
		notifier Notifier
		mailSvc  core.EmailService
		logger   core.Logger
		appName  string
	}
)

func NewService(repo Repository, notifier Notifier, mailSvc core.EmailService, logger core.Logger, conf *core.Config) *Service {
	return &Service{
		repo:     repo,
		notifier: notifier,
		mailSvc:  mailSvc,
		logger:   logger,
		appName:  conf.AppName,
	}
}

// uniquenessError converts the repository uniqueness errors into field validation errors.
func uniquenessError(err error) error {
	var field string
	switch errors.Cause(err) {
	case ErrUsernameExists:
		field = "username"
	case ErrEmailExists:
		field = "email"
	default:
		return err
	}
	return core.NewValidationError(err, core.FieldError{Field: field, Error: errors.Cause(err).Error()})
}

// Create stores a new User from validated data. The role defaults to teacher.
func (svc *Service) Create(nu NewUser) (User, error) {
	now := time.Now().UTC()
	usr := User{
		Username:     nu.Username,
		Email:        nu.Email,
		FirstName:    nu.FirstName,
		LastName:     nu.LastName,
		Role:         nu.Role,
		SubjectAreas: core.CleanStringSet(nu.SubjectAreas),
		GradeLevels:  core.CleanStringSet(nu.GradeLevels),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if usr.Role == "" {
		usr.Role = RoleTeacher
	}
	if err := usr.SetPassword(nu.Password); err != nil {
		return User{}, errors.Wrap(err, "hashing password")
	}
	usr, err := svc.repo.CreateUser(usr)
	if err != nil {
		return User{}, uniquenessError(err)
	}
	return usr, nil
}

// CreateTeacher stores a new teacher account and onboards them with a welcome notification & email.
func (svc *Service) CreateTeacher(nu NewUser) (User, error) {
	nu.Role = RoleTeacher
	usr, err := svc.Create(nu)
	if err != nil {
		return User{}, err
	}

	if err = svc.notifier.Notify(usr.ID, welcomeTitle, welcomeMessage, "success"); err != nil {
		return User{}, errors.Wrap(err, "sending welcome notification")
	}
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:      []mail.Address{{Name: usr.FullName(), Address: usr.Email}},
		Subject: "Welcome to " + svc.appName,
		Body: "Hello " + usr.FirstName + ",\n\n" +
			"An account has been created for you with the username \"" + usr.Username + "\".\n" +
			welcomeMessage + "\n",
	})
	svc.logger.Info("teacher onboarded", map[string]interface{}{"id": usr.ID, "username": usr.Username})
	return usr, nil
}

func (svc *Service) GetByID(id int) (User, error) {
	return svc.repo.GetUserByID(id)
}

func (svc *Service) GetByUsername(uname string) (User, error) {
	return svc.repo.GetUserByUsername(core.CleanString(uname, true /* lower */))
}

func (svc *Service) GetByUsernameOrEmail(uname string) (User, error) {
	return svc.repo.GetUserByUsernameOrEmail(core.CleanString(uname, true /* lower */))
}

func (svc *Service) Query(filter QueryFilter) ([]User, error) {
	filter.Clean()
	users, err := svc.repo.FilterUsers(filter)
	if err != nil {
		return nil, err
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (svc *Service) QueryTeachers() ([]User, error) {
	return svc.Query(QueryFilter{Roles: []string{RoleTeacher}})
}

// Update applies validated UpdateUser data to the User `id`.
func (svc *Service) Update(id int, uu UpdateUser) (User, error) {
	usr, err := svc.repo.GetUserByID(id)
	if err != nil {
		return User{}, err
	}
	usr.Username = uu.Username
	usr.Email = uu.Email
	usr.FirstName = uu.FirstName
	usr.LastName = uu.LastName
	usr.Role = uu.Role
	usr.SubjectAreas = uu.SubjectAreas
	usr.GradeLevels = uu.GradeLevels
	usr.UpdatedAt = time.Now().UTC()

	usr, err = svc.repo.UpdateUser(usr)
	if err != nil {
		return User{}, uniquenessError(err)
	}
	return usr, nil
}

// ChangePassword replaces the password of `usr` once the current one is verified.
func (svc *Service) ChangePassword(usr User, cp ChangePassword) (User, error) {
	if err := usr.CheckPassword(cp.CurrentPassword); err != nil {
		return User{}, core.NewValidationError(
			ErrInvalidPassword,
			core.FieldError{Field: "currentPassword", Error: ErrInvalidPassword.Error()},
		)
	}
	if err := usr.SetPassword(cp.NewPassword); err != nil {
		return User{}, errors.Wrap(err, "hashing password")
	}
	usr.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateUser(usr)
}

// Ensure stores `usr` (password hash included) unless a User with the same username exists already,
// in which case the existing User is returned. It is used to seed accounts at start up.
func (svc *Service) Ensure(usr User) (User, bool, error) {
	if existing, err := svc.repo.GetUserByUsername(usr.Username); err == nil {
		return existing, false, nil
	} else if errors.Cause(err) != ErrNotFound {
		return User{}, false, err
	}

	now := time.Now().UTC()
	usr.SubjectAreas = core.CleanStringSet(usr.SubjectAreas)
	usr.GradeLevels = core.CleanStringSet(usr.GradeLevels)
	usr.CreatedAt = now
	usr.UpdatedAt = now
	usr, err := svc.repo.CreateUser(usr)
	if err != nil {
		return User{}, false, err
	}
	return usr, true, nil
}
