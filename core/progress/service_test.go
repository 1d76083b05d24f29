package progress_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/edutrack/core"
	"github.com/trezcool/edutrack/core/lesson"
	"github.com/trezcool/edutrack/core/progress"
	"github.com/trezcool/edutrack/core/user"
	"github.com/trezcool/edutrack/testutil"
)

func TestAverageProgress(t *testing.T) {
	tests := []struct {
		name                               string
		totalProgress, teachers, totalStds int
		want                               float64
	}{
		{name: "regular", totalProgress: 50, teachers: 2, totalStds: 100, want: 25},
		{name: "no teachers", totalProgress: 50, teachers: 0, totalStds: 100, want: 0},
		{name: "no standards", totalProgress: 50, teachers: 2, totalStds: 0, want: 0},
		{name: "no progress", teachers: 3, totalStds: 99, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, progress.AverageProgress(tt.totalProgress, tt.teachers, tt.totalStds), 1e-9)
		})
	}
}

func createLesson(t *testing.T, env *testutil.Env, teacherID int, taught time.Time, codes ...string) lesson.Lesson {
	nl := lesson.NewLesson{
		Title:            "Lesson",
		SubjectArea:      "Mathematics",
		GradeLevel:       "3",
		DateTaught:       taught.Format(time.RFC3339),
		StandardsCovered: codes,
	}
	require.NoError(t, nl.Validate(env.Validate))
	l, err := env.LessonSvc.Create(teacherID, nl)
	require.NoError(t, err)
	return l
}

func TestService_DeriveFromLesson(t *testing.T) {
	env := testutil.NewEnv(t)
	teacher := testutil.CreateUser(t, env.UserRepo, "jdoe", testutil.Password, user.RoleTeacher)
	taught := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)

	// unknown codes are skipped
	createLesson(t, env, teacher.ID, taught, "BOGUS.CODE", "MA.3.NBT.1")
	entries, err := env.ProgressSvc.QueryByTeacher(teacher.ID)
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	// repeated coverage is not deduplicated
	createLesson(t, env, teacher.ID, taught, "MA.3.NBT.1", "MA.3.NBT.1")
	entries, err = env.ProgressSvc.QueryByTeacher(teacher.ID)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
	for i := 1; i < len(entries); i++ {
		assert.Less(t, entries[i-1].ID, entries[i].ID)
	}

	_, err = env.ProgressSvc.QueryByTeacher(999)
	assert.True(t, core.IsNotFound(err))
}

func TestService_TeacherStats(t *testing.T) {
	env := testutil.NewEnv(t)
	now := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	progress.SetClock(env.ProgressSvc, func() time.Time { return now })

	teacher := testutil.CreateUser(t, env.UserRepo, "jdoe", testutil.Password, user.RoleTeacher, "Mathematics", "Science")
	other := testutil.CreateUser(t, env.UserRepo, "asmith", testutil.Password, user.RoleTeacher)

	createLesson(t, env, teacher.ID, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), "MA.3.NBT.1")
	createLesson(t, env, teacher.ID, time.Date(2024, 3, 31, 23, 0, 0, 0, time.UTC))
	createLesson(t, env, teacher.ID, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), "MA.3.NBT.1", "SC.3.PS.2")
	createLesson(t, env, teacher.ID, time.Date(2023, 3, 10, 0, 0, 0, 0, time.UTC))
	createLesson(t, env, other.ID, time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC), "MA.3.NBT.1")

	stats, err := env.ProgressSvc.TeacherStats(teacher.ID)
	require.NoError(t, err)
	assert.Equal(t, progress.TeacherStats{
		CompletedStandards: 3,
		TotalStandards:     99,
		LessonsThisMonth:   2,
		SubjectAreas:       []string{"Mathematics", "Science"},
	}, stats)

	stats, err = env.ProgressSvc.TeacherStats(other.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.CompletedStandards)
	assert.Equal(t, []string{}, stats.SubjectAreas)

	_, err = env.ProgressSvc.TeacherStats(999)
	assert.True(t, core.IsNotFound(err))
}

func TestService_SystemReport(t *testing.T) {
	env := testutil.NewEnv(t)

	report, err := env.ProgressSvc.SystemReport()
	require.NoError(t, err)
	assert.Equal(t, 0, report.TotalTeachers)
	assert.Equal(t, 99, report.TotalStandards)
	assert.Zero(t, report.AverageProgress)
	assert.Equal(t, []progress.TeacherReport{}, report.PerTeacherStats)

	testutil.CreateUser(t, env.UserRepo, "admin", testutil.Password, user.RoleAdministrator)
	t1 := testutil.CreateUser(t, env.UserRepo, "jdoe", testutil.Password, user.RoleTeacher)
	t2 := testutil.CreateUser(t, env.UserRepo, "asmith", testutil.Password, user.RoleTeacher)
	taught := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	createLesson(t, env, t1.ID, taught, "MA.3.NBT.1", "SC.3.PS.2", "SS.3.H.1")
	createLesson(t, env, t2.ID, taught, "MA.3.NBT.1", "BOGUS.CODE")

	report, err = env.ProgressSvc.SystemReport()
	require.NoError(t, err)
	assert.Equal(t, 2, report.TotalTeachers, "administrators are not counted")
	assert.Equal(t, 2, report.TotalLessons)
	assert.Equal(t, 4, report.TotalProgress)
	assert.InDelta(t, 4.0/2/99*100, report.AverageProgress, 1e-9)

	if assert.Len(t, report.PerTeacherStats, 2) {
		tr := report.PerTeacherStats[0]
		assert.Equal(t, t1.ID, tr.Teacher.ID)
		assert.Equal(t, "jdoe Test", tr.Teacher.Name)
		assert.Equal(t, 3, tr.CompletedStandards)
		assert.InDelta(t, 3.0/99*100, tr.ProgressPercentage, 1e-9)
		assert.Equal(t, t2.ID, report.PerTeacherStats[1].Teacher.ID)
	}
}
