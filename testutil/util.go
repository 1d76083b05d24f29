// Package testutil assembles in-memory services & fixtures for tests.
package testutil

import (
	"net/mail"
	"testing"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/edutrack/core"
	"github.com/trezcool/edutrack/core/auth"
	"github.com/trezcool/edutrack/core/lesson"
	"github.com/trezcool/edutrack/core/notification"
	"github.com/trezcool/edutrack/core/progress"
	"github.com/trezcool/edutrack/core/session"
	"github.com/trezcool/edutrack/core/standard"
	"github.com/trezcool/edutrack/core/user"
	"github.com/trezcool/edutrack/services/email"
	"github.com/trezcool/edutrack/services/logger"
	"github.com/trezcool/edutrack/storage/database/inmem"
)

// Password satisfies the password policy.
const Password = "Tr0ub4dor&3x"

func Config() *core.Config {
	conf := &core.Config{
		Env:              "TEST",
		TestMode:         true,
		AppName:          "EduTrack",
		Build:            "test",
		DefaultFromEmail: mail.Address{Name: "EduTrack", Address: "noreply@edutrack.test"},
	}
	conf.Server.SessionLifetime = session.DefaultLifetime
	conf.Server.ShutdownTimeout = time.Second
	conf.Server.DisableRequestLogs = true
	return conf
}

// Env is a fully wired in-memory application.
type Env struct {
	Conf       *core.Config
	Logger     core.Logger
	Mail       *emailsvc.ConsoleService
	Validate   *validator.Validate
	Translator ut.Translator

	UserRepo   user.Repository
	LessonRepo lesson.Repository

	UserSvc     *user.Service
	StandardSvc *standard.Service
	LessonSvc   *lesson.Service
	ProgressSvc *progress.Service
	NotifSvc    *notification.Service
	Sessions    *session.Registry
	Gate        *auth.Gate
}

// NewEnv wires the services over a fresh DB holding the default standards catalog.
// `configure` may adjust the Config before anything is wired.
func NewEnv(t testing.TB, configure ...func(conf *core.Config)) *Env {
	t.Helper()

	conf := Config()
	for _, fn := range configure {
		fn(conf)
	}

	db, err := inmemdb.Open()
	if err != nil {
		t.Fatalf("inmemdb.Open() failed: %v", err)
	}

	env := &Env{
		Conf:       conf,
		Logger:     logsvc.NewDiscardLogger(),
		Validate:   validator.New(),
		Translator: core.NewTranslator(),
		UserRepo:   inmemdb.NewUserRepository(db),
		LessonRepo: inmemdb.NewLessonRepository(db),
	}
	core.InitValidators(env.Validate, env.Translator)
	user.InitValidators(env.Validate, env.Translator)
	env.Mail = emailsvc.NewConsoleServiceMock(env.Conf)

	env.NotifSvc = notification.NewService(inmemdb.NewNotificationRepository(db))
	env.UserSvc = user.NewService(env.UserRepo, env.NotifSvc, env.Mail, env.Logger, env.Conf)
	env.StandardSvc = standard.NewService(inmemdb.NewStandardRepository(db))
	env.ProgressSvc = progress.NewService(inmemdb.NewProgressRepository(db), env.StandardSvc, env.LessonRepo, env.UserSvc)
	env.LessonSvc = lesson.NewService(env.LessonRepo, env.UserSvc, env.ProgressSvc, env.Logger)
	env.Sessions = session.NewRegistry(env.Conf.Server.SessionLifetime)
	env.Gate = auth.NewGate(env.Sessions, env.UserSvc)

	cat, err := standard.DefaultCatalog()
	if err != nil {
		t.Fatalf("standard.DefaultCatalog() failed: %v", err)
	}
	if _, err = env.StandardSvc.LoadCatalog(cat); err != nil {
		t.Fatalf("LoadCatalog() failed: %v", err)
	}
	return env
}

// CreateUser stores a User directly in `repo`, bypassing validation.
func CreateUser(t testing.TB, repo user.Repository, uname, pwd, role string, subjects ...string) user.User {
	t.Helper()

	now := time.Now().UTC()
	usr := user.User{
		Username:     uname,
		Email:        uname + "@school.test",
		FirstName:    uname,
		LastName:     "Test",
		Role:         role,
		SubjectAreas: core.CleanStringSet(subjects),
		GradeLevels:  []string{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if pwd != "" {
		if err := usr.SetPassword(pwd); err != nil {
			t.Fatalf("createUser() failed: %v", err)
		}
	}
	usr, err := repo.CreateUser(usr)
	if err != nil {
		t.Fatalf("createUser() failed: %v", err)
	}
	return usr
}

// CreateLesson stores a Lesson directly in `repo`, without deriving progress.
func CreateLesson(t testing.TB, repo lesson.Repository, teacherID int, taught time.Time, codes ...string) lesson.Lesson {
	t.Helper()

	l, err := repo.CreateLesson(lesson.Lesson{
		TeacherID:        teacherID,
		Title:            "Lesson",
		SubjectArea:      "Mathematics",
		GradeLevel:       "3",
		DateTaught:       taught,
		StandardsCovered: codes,
		CreatedAt:        time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("createLesson() failed: %v", err)
	}
	return l
}
