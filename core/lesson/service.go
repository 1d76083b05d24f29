package lesson

import (
	"sort"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/edutrack/core"
	"github.com/trezcool/edutrack/core/user"
)

var ErrNotFound = core.NewNotFoundError("lesson not found")

const unknownTeacher = "Unknown"

type (
	Repository interface {
		CreateLesson(l Lesson) (Lesson, error)
		GetLessonByID(id int) (Lesson, error)
		QueryAllLessons() ([]Lesson, error)
		FilterLessonsByTeacher(teacherID int) ([]Lesson, error)
	}

	UserGetter interface {
		GetByID(id int) (user.User, error)
	}

	// ProgressDeriver records the coverage events of a newly created Lesson.
	// Unknown codes are not errors. There is no rollback: on error the Lesson stays stored
	// together with the entries derived before the failure.
	ProgressDeriver interface {
		DeriveFromLesson(l Lesson) (int, error)
	}

	Service struct {
		repo     Repository
		users    UserGetter
		progress ProgressDeriver
		logger   core.Logger
	}
)

func NewService(repo Repository, users UserGetter, progress ProgressDeriver, logger core.Logger) *Service {
	return &Service{
		repo:     repo,
		users:    users,
		progress: progress,
		logger:   logger,
	}
}

// Create stores a validated NewLesson owned by `teacherID` then derives its progress entries
// before returning, so stats reflect the lesson as soon as Create returns.
// A derivation error is returned as is; see ProgressDeriver for what is left stored.
func (svc *Service) Create(teacherID int, nl NewLesson) (Lesson, error) {
	if _, err := svc.users.GetByID(teacherID); err != nil {
		return Lesson{}, errors.Wrap(err, "finding lesson teacher")
	}

	l := Lesson{
		TeacherID:        teacherID,
		Title:            nl.Title,
		SubjectArea:      nl.SubjectArea,
		GradeLevel:       nl.GradeLevel,
		DateTaught:       nl.TaughtAt(),
		StandardsCovered: nl.StandardsCovered,
		CreatedAt:        time.Now().UTC(),
	}
	if nl.Description != "" {
		desc := nl.Description
		l.Description = &desc
	}
	if l.StandardsCovered == nil {
		l.StandardsCovered = []string{}
	}

	l, err := svc.repo.CreateLesson(l)
	if err != nil {
		return Lesson{}, errors.Wrap(err, "creating lesson")
	}

	derived, err := svc.progress.DeriveFromLesson(l)
	if err != nil {
		svc.logger.Error("lesson stored with partial progress", err,
			map[string]interface{}{"lesson": l.ID, "derived": derived})
		return Lesson{}, errors.Wrap(err, "deriving progress")
	}
	if skipped := len(l.StandardsCovered) - derived; skipped > 0 {
		svc.logger.Debug("lesson references unknown standard codes",
			map[string]interface{}{"lesson": l.ID, "skipped": skipped})
	}
	return l, nil
}

func (svc *Service) GetByID(id int) (Lesson, error) {
	return svc.repo.GetLessonByID(id)
}

// QueryAll returns every Lesson annotated with its teacher name, most recently taught first.
func (svc *Service) QueryAll() ([]WithTeacher, error) {
	lessons, err := svc.repo.QueryAllLessons()
	if err != nil {
		return nil, err
	}
	return svc.annotate(lessons)
}

// QueryByTeacher returns the Lessons of `teacherID` annotated with their teacher name, most recently taught first.
func (svc *Service) QueryByTeacher(teacherID int) ([]WithTeacher, error) {
	lessons, err := svc.repo.FilterLessonsByTeacher(teacherID)
	if err != nil {
		return nil, err
	}
	return svc.annotate(lessons)
}

func (svc *Service) annotate(lessons []Lesson) ([]WithTeacher, error) {
	sort.Slice(lessons, func(i, j int) bool {
		if lessons[i].DateTaught.Equal(lessons[j].DateTaught) {
			return lessons[i].ID > lessons[j].ID
		}
		return lessons[i].DateTaught.After(lessons[j].DateTaught)
	})

	names := make(map[int]string)
	annotated := make([]WithTeacher, 0, len(lessons))
	for _, l := range lessons {
		name, ok := names[l.TeacherID]
		if !ok {
			usr, err := svc.users.GetByID(l.TeacherID)
			switch {
			case err == nil:
				name = usr.FullName()
			case errors.Cause(err) == user.ErrNotFound:
				name = unknownTeacher
			default:
				return nil, errors.Wrap(err, "finding lesson teacher")
			}
			names[l.TeacherID] = name
		}
		annotated = append(annotated, WithTeacher{Lesson: l, TeacherName: name})
	}
	return annotated, nil
}
