package main

import (
	"github.com/pkg/errors"

	"github.com/trezcool/edutrack/core"
	"github.com/trezcool/edutrack/core/notification"
	"github.com/trezcool/edutrack/core/user"
)

type demoNotification struct {
	title, message, kind string
}

type demoUser struct {
	usr    user.User
	notifs []demoNotification
}

// demoTeachers are created when `seed.demo` is on.
var demoTeachers = []demoUser{
	{
		usr: user.User{
			Username:     "msantos",
			Email:        "maria.santos@school.edu",
			FirstName:    "Maria",
			LastName:     "Santos",
			SubjectAreas: []string{"Mathematics", "Science", "English Language Arts"},
			GradeLevels:  []string{"3", "4", "5"},
		},
		notifs: []demoNotification{
			{
				title:   "Welcome to EduTrack!",
				message: "Start by adding your first lesson and mapping it to AERRO standards.",
				kind:    notification.KindInfo,
			},
			{
				title:   "Standards Progress",
				message: "You're making great progress! Keep adding lessons to track your standards coverage.",
				kind:    notification.KindSuccess,
			},
		},
	},
	{
		usr: user.User{
			Username:     "jdoe",
			Email:        "john.doe@school.edu",
			FirstName:    "John",
			LastName:     "Doe",
			SubjectAreas: []string{"Music", "Art"},
			GradeLevels:  []string{"K", "1", "2"},
		},
	},
	{
		usr: user.User{
			Username:     "asmith",
			Email:        "anne.smith@school.edu",
			FirstName:    "Anne",
			LastName:     "Smith",
			SubjectAreas: []string{"French", "Social Studies"},
			GradeLevels:  []string{"9", "10", "11", "12"},
		},
	},
}

var adminNotifs = []demoNotification{
	{
		title:   "System Update",
		message: "The platform has been updated with new features for teacher management.",
		kind:    notification.KindInfo,
	},
}

var errMissingAdminHash = errors.New("seed.adminPasswordHash must be set in PROD")

// seed ensures the administrator account exists, plus the demo teachers if enabled.
// Notifications are only added to accounts created by this call.
func seed(conf *core.Config, usrSvc *user.Service, notifier user.Notifier) error {
	if conf.Env == "PROD" && conf.Seed.AdminPasswordHash == "" {
		return errMissingAdminHash
	}

	admin := demoUser{
		usr: user.User{
			Username:     core.CleanString(conf.Seed.AdminUsername, true /* lower */),
			Email:        core.CleanString(conf.Seed.AdminEmail, true /* lower */),
			FirstName:    "Admin",
			LastName:     "User",
			Role:         user.RoleAdministrator,
			PasswordHash: []byte(conf.Seed.AdminPasswordHash),
		},
	}
	if conf.Seed.Demo {
		admin.notifs = adminNotifs
	}
	users := []demoUser{admin}
	if conf.Seed.Demo {
		users = append(users, demoTeachers...)
	}

	for _, du := range users {
		usr := du.usr
		if usr.Role == "" {
			usr.Role = user.RoleTeacher
		}
		if len(usr.PasswordHash) == 0 {
			if err := usr.SetPassword(conf.Seed.DemoPassword); err != nil {
				return errors.Wrapf(err, "hashing password of %s", usr.Username)
			}
		}

		usr, created, err := usrSvc.Ensure(usr)
		if err != nil {
			return errors.Wrapf(err, "ensuring user %s", du.usr.Username)
		}
		if !created {
			continue
		}
		for _, n := range du.notifs {
			if err = notifier.Notify(usr.ID, n.title, n.message, n.kind); err != nil {
				return errors.Wrapf(err, "notifying %s", usr.Username)
			}
		}
	}
	return nil
}
