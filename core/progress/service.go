package progress

import (
	"sort"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/edutrack/core/lesson"
	"github.com/trezcool/edutrack/core/standard"
	"github.com/trezcool/edutrack/core/user"
)

type (
	Repository interface {
		CreateProgress(e Entry) (Entry, error)
		FilterProgressByTeacher(teacherID int) ([]Entry, error)
		CountProgress() (int, error)
	}

	StandardReader interface {
		GetByID(id int) (standard.Standard, error)
		GetByCode(code string) (standard.Standard, error)
		Count() (int, error)
	}

	LessonReader interface {
		QueryAllLessons() ([]lesson.Lesson, error)
		FilterLessonsByTeacher(teacherID int) ([]lesson.Lesson, error)
	}

	UserReader interface {
		GetByID(id int) (user.User, error)
		QueryTeachers() ([]user.User, error)
	}

	Service struct {
		repo      Repository
		standards StandardReader
		lessons   LessonReader
		users     UserReader
		now       func() time.Time
	}
)

func NewService(repo Repository, standards StandardReader, lessons LessonReader, users UserReader) *Service {
	return &Service{
		repo:      repo,
		standards: standards,
		lessons:   lessons,
		users:     users,
		now:       time.Now,
	}
}

// DeriveFromLesson records one Entry per covered code that resolves to a Standard.
// Unknown codes are skipped silently. It returns the number of Entries created.
func (svc *Service) DeriveFromLesson(l lesson.Lesson) (int, error) {
	var created int
	for _, code := range l.StandardsCovered {
		std, err := svc.standards.GetByCode(code)
		if err != nil {
			if errors.Cause(err) == standard.ErrNotFound {
				continue
			}
			return created, errors.Wrapf(err, "finding standard %q", code)
		}

		lessonID := l.ID
		if _, err = svc.repo.CreateProgress(Entry{
			TeacherID:   l.TeacherID,
			StandardID:  std.ID,
			CompletedAt: l.DateTaught,
			LessonID:    &lessonID,
		}); err != nil {
			return created, errors.Wrap(err, "creating progress entry")
		}
		created++
	}
	return created, nil
}

// QueryByTeacher returns the Entries of `teacherID` with their Standard, ordered by ID.
func (svc *Service) QueryByTeacher(teacherID int) ([]EntryWithStandard, error) {
	if _, err := svc.users.GetByID(teacherID); err != nil {
		return nil, err
	}
	entries, err := svc.repo.FilterProgressByTeacher(teacherID)
	if err != nil {
		return nil, err
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })

	result := make([]EntryWithStandard, 0, len(entries))
	for _, e := range entries {
		ews := EntryWithStandard{Entry: e}
		if std, err := svc.standards.GetByID(e.StandardID); err == nil {
			ews.Standard = &std
		} else if errors.Cause(err) != standard.ErrNotFound {
			return nil, errors.Wrap(err, "finding progress standard")
		}
		result = append(result, ews)
	}
	return result, nil
}

// TeacherStats computes the stats of `teacherID`.
// LessonsThisMonth counts the lessons taught in the current calendar month of the server's clock.
func (svc *Service) TeacherStats(teacherID int) (TeacherStats, error) {
	usr, err := svc.users.GetByID(teacherID)
	if err != nil {
		return TeacherStats{}, err
	}
	totalStds, err := svc.standards.Count()
	if err != nil {
		return TeacherStats{}, errors.Wrap(err, "counting standards")
	}
	return svc.teacherStats(usr, totalStds)
}

func (svc *Service) teacherStats(usr user.User, totalStds int) (TeacherStats, error) {
	entries, err := svc.repo.FilterProgressByTeacher(usr.ID)
	if err != nil {
		return TeacherStats{}, errors.Wrap(err, "filtering progress")
	}
	lessons, err := svc.lessons.FilterLessonsByTeacher(usr.ID)
	if err != nil {
		return TeacherStats{}, errors.Wrap(err, "filtering lessons")
	}

	now := svc.now()
	var thisMonth int
	for _, l := range lessons {
		taught := l.DateTaught.In(now.Location())
		if taught.Year() == now.Year() && taught.Month() == now.Month() {
			thisMonth++
		}
	}

	subjects := usr.SubjectAreas
	if subjects == nil {
		subjects = []string{}
	}
	return TeacherStats{
		CompletedStandards: len(entries),
		TotalStandards:     totalStds,
		LessonsThisMonth:   thisMonth,
		SubjectAreas:       subjects,
	}, nil
}

// SystemReport aggregates the stats of every teacher.
// AverageProgress is a ratio of sums (totalProgress / totalTeachers / totalStandards * 100) while each
// teacher's ProgressPercentage is their own ratio; both are 0 when a denominator is 0.
func (svc *Service) SystemReport() (SystemReport, error) {
	teachers, err := svc.users.QueryTeachers()
	if err != nil {
		return SystemReport{}, errors.Wrap(err, "querying teachers")
	}
	totalStds, err := svc.standards.Count()
	if err != nil {
		return SystemReport{}, errors.Wrap(err, "counting standards")
	}
	lessons, err := svc.lessons.QueryAllLessons()
	if err != nil {
		return SystemReport{}, errors.Wrap(err, "querying lessons")
	}
	totalProgress, err := svc.repo.CountProgress()
	if err != nil {
		return SystemReport{}, errors.Wrap(err, "counting progress")
	}

	report := SystemReport{
		TotalTeachers:   len(teachers),
		TotalStandards:  totalStds,
		TotalLessons:    len(lessons),
		TotalProgress:   totalProgress,
		AverageProgress: AverageProgress(totalProgress, len(teachers), totalStds),
		PerTeacherStats: make([]TeacherReport, 0, len(teachers)),
	}
	for _, t := range teachers {
		stats, err := svc.teacherStats(t, totalStds)
		if err != nil {
			return SystemReport{}, err
		}
		report.PerTeacherStats = append(report.PerTeacherStats, TeacherReport{
			Teacher: TeacherSummary{
				ID:           t.ID,
				Name:         t.FullName(),
				SubjectAreas: stats.SubjectAreas,
			},
			TeacherStats:       stats,
			ProgressPercentage: percentage(float64(stats.CompletedStandards), float64(stats.TotalStandards)),
		})
	}
	return report, nil
}

// AverageProgress is the system wide completion: totalProgress / totalTeachers / totalStandards * 100.
func AverageProgress(totalProgress, totalTeachers, totalStandards int) float64 {
	if totalTeachers == 0 {
		return 0
	}
	return percentage(float64(totalProgress)/float64(totalTeachers), float64(totalStandards))
}

func percentage(part, whole float64) float64 {
	if whole == 0 {
		return 0
	}
	return part / whole * 100
}
