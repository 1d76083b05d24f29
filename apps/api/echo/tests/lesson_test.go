package tests

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/edutrack/core/lesson"
	"github.com/trezcool/edutrack/core/user"
	"github.com/trezcool/edutrack/testutil"
)

func Test_lessonApi_create(t *testing.T) {
	app, env := setup(t)
	teacher := testutil.CreateUser(t, env.UserRepo, "jdoe", testutil.Password, user.RoleTeacher)
	token := getToken(t, env, teacher)

	runHTTPTests(t, app, []httpTest{
		{
			name: "auth required", method: http.MethodPost, path: "/api/lessons",
			body:     []byte(`{"title": "Rounding"}`),
			wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken),
		},
		{
			name: "required fields", method: http.MethodPost, path: "/api/lessons", token: token,
			body:     []byte(`{"title": "  ", "standardsCovered": ["MA.3.NBT.1"]}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{
				Message: "invalid input",
				Errors: map[string]string{
					"title":       "this field is required",
					"subjectArea": "this field is required",
					"gradeLevel":  "this field is required",
					"dateTaught":  "this field is required",
				},
			}),
		},
		{
			name: "invalid date", method: http.MethodPost, path: "/api/lessons", token: token,
			body:     []byte(`{"title": "Rounding", "subjectArea": "Mathematics", "gradeLevel": "3", "dateTaught": "03/05/2024"}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{
				Message: "invalid input",
				Errors:  map[string]string{"dateTaught": "dateTaught must be a RFC 3339 timestamp or a YYYY-MM-DD date"},
			}),
		},
	})

	body := []byte(`{
		"title": "Rounding",
		"description": "Round to the nearest 10",
		"subjectArea": "Mathematics",
		"gradeLevel": "3",
		"dateTaught": "2024-03-05T09:30:00Z",
		"standardsCovered": ["MA.3.NBT.1", "BOGUS.CODE", "MA.3.NBT.1"]
	}`)
	req, rec := newAuthRequest(http.MethodPost, "/api/lessons", token, body)
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var got lesson.Lesson
	unmarshall(t, rec, &got)
	assert.Equal(t, teacher.ID, got.TeacherID)
	assert.Equal(t, []string{"MA.3.NBT.1", "BOGUS.CODE", "MA.3.NBT.1"}, got.StandardsCovered)
	assert.True(t, got.DateTaught.Equal(time.Date(2024, 3, 5, 9, 30, 0, 0, time.UTC)))

	// one entry per resolvable occurrence
	entries, err := env.ProgressSvc.QueryByTeacher(teacher.ID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	for _, e := range entries {
		assert.Equal(t, got.ID, *e.LessonID)
		assert.Equal(t, "MA.3.NBT.1", e.Standard.Code)
	}
}

func Test_lessonApi_query(t *testing.T) {
	app, env := setup(t)
	admin := testutil.CreateUser(t, env.UserRepo, "admin", testutil.Password, user.RoleAdministrator)
	jdoe := testutil.CreateUser(t, env.UserRepo, "jdoe", testutil.Password, user.RoleTeacher)
	asmith := testutil.CreateUser(t, env.UserRepo, "asmith", testutil.Password, user.RoleTeacher)
	idle := testutil.CreateUser(t, env.UserRepo, "idle", testutil.Password, user.RoleTeacher)

	day := func(d int) time.Time { return time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC) }
	l1 := testutil.CreateLesson(t, env.LessonRepo, jdoe.ID, day(1), "MA.3.NBT.1")
	l2 := testutil.CreateLesson(t, env.LessonRepo, asmith.ID, day(9))
	l3 := testutil.CreateLesson(t, env.LessonRepo, jdoe.ID, day(5))

	annotate := func(l lesson.Lesson, usr user.User) lesson.WithTeacher {
		return lesson.WithTeacher{Lesson: l, TeacherName: usr.FullName()}
	}

	runHTTPTests(t, app, []httpTest{
		{name: "auth required", path: "/api/lessons", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{
			name: "admin sees all", path: "/api/lessons", token: getToken(t, env, admin),
			wantData: marchallList(t, annotate(l2, asmith), annotate(l3, jdoe), annotate(l1, jdoe)),
		},
		{
			name: "teacher sees own", path: "/api/lessons", token: getToken(t, env, jdoe),
			wantData: marchallList(t, annotate(l3, jdoe), annotate(l1, jdoe)),
		},
		{name: "no lessons", path: "/api/lessons", token: getToken(t, env, idle), wantData: marchallList(t)},
	})
}
