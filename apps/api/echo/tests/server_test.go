package tests

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/edutrack/core/user"
	"github.com/trezcool/edutrack/testutil"
)

func Test_server(t *testing.T) {
	app, env := setup(t)
	usr := testutil.CreateUser(t, env.UserRepo, "jdoe", testutil.Password, user.RoleTeacher)

	runHTTPTests(t, app, []httpTest{
		{name: "unknown route", path: "/api/nope", wantCode: http.StatusNotFound},
		{name: "trailing slash", path: "/api/auth/me/", token: getToken(t, env, usr), wantData: marchallObj(t, usr)},
	})

	// a lesson shows up in the metrics
	req, rec := newAuthRequest(http.MethodPost, "/api/lessons", getToken(t, env, usr),
		[]byte(`{"title": "Rounding", "subjectArea": "Mathematics", "gradeLevel": "3", "dateTaught": "2024-03-05", "standardsCovered": ["MA.3.NBT.1"]}`))
	app.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	req, rec = newRequest(http.MethodGet, "/metrics")
	app.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "edutrack_lessons_created_total")
	assert.Contains(t, rec.Body.String(), "edutrack_standard_codes_submitted_total")
	assert.NotContains(t, rec.Body.String(), "edutrack_coverage_events_total")
	assert.Contains(t, rec.Body.String(), "edutrack_api_request_duration_seconds")
}
