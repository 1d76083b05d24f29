package tests

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/edutrack/core/user"
	"github.com/trezcool/edutrack/testutil"
)

var errPermissionDenied = httpErr{Message: "permission denied"}

func Test_userApi_queryTeachers(t *testing.T) {
	app, env := setup(t)
	admin := testutil.CreateUser(t, env.UserRepo, "admin", testutil.Password, user.RoleAdministrator)
	jdoe := testutil.CreateUser(t, env.UserRepo, "jdoe", testutil.Password, user.RoleTeacher, "Mathematics")
	asmith := testutil.CreateUser(t, env.UserRepo, "asmith", testutil.Password, user.RoleTeacher, "Music")
	adminToken := getToken(t, env, admin)

	runHTTPTests(t, app, []httpTest{
		{name: "auth required", path: "/api/users/teachers", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{
			name: "teacher forbidden", path: "/api/users/teachers", token: getToken(t, env, jdoe),
			wantCode: http.StatusForbidden, wantData: marchallObj(t, errPermissionDenied),
		},
		{name: "teachers", path: "/api/users/teachers", token: adminToken, wantData: marchallList(t, jdoe, asmith)},
		{name: "all users", path: "/api/users", token: adminToken, wantData: marchallList(t, admin, jdoe, asmith)},
		{name: "by role", path: "/api/users?role=administrator", token: adminToken, wantData: marchallList(t, admin)},
		{name: "search", path: "/api/users?search=SMITH", token: adminToken, wantData: marchallList(t, asmith)},
		{name: "no match", path: "/api/users?search=nobody", token: adminToken, wantData: marchallList(t)},
	})
}

func Test_userApi_queryRoles(t *testing.T) {
	app, env := setup(t)
	admin := testutil.CreateUser(t, env.UserRepo, "admin", testutil.Password, user.RoleAdministrator)
	teacher := testutil.CreateUser(t, env.UserRepo, "jdoe", testutil.Password, user.RoleTeacher)

	runHTTPTests(t, app, []httpTest{
		{
			name: "teacher forbidden", path: "/api/roles", token: getToken(t, env, teacher),
			wantCode: http.StatusForbidden, wantData: marchallObj(t, errPermissionDenied),
		},
		{name: "roles", path: "/api/roles", token: getToken(t, env, admin), wantData: marchallObj(t, user.Roles)},
	})
}

func Test_userApi_createTeacher(t *testing.T) {
	app, env := setup(t)
	admin := testutil.CreateUser(t, env.UserRepo, "admin", testutil.Password, user.RoleAdministrator)
	teacher := testutil.CreateUser(t, env.UserRepo, "jdoe", testutil.Password, user.RoleTeacher)
	adminToken := getToken(t, env, admin)

	newTeacher := func(uname, email, pwd string) []byte {
		return marchallObj(t, user.NewUser{
			Username:     uname,
			Email:        email,
			Password:     pwd,
			FirstName:    "Maria",
			LastName:     "Santos",
			Role:         user.RoleAdministrator,
			SubjectAreas: []string{"Mathematics", " Science ", "Mathematics"},
			GradeLevels:  []string{"3", "4"},
		})
	}
	invalid := func(field, msg string) []byte {
		return marchallObj(t, httpErr{Message: "invalid input", Errors: map[string]string{field: msg}})
	}

	tests := []httpTest{
		{
			name: "teacher forbidden", token: getToken(t, env, teacher),
			body:     newTeacher("msantos", "msantos@school.test", testutil.Password),
			wantCode: http.StatusForbidden, wantData: marchallObj(t, errPermissionDenied),
		},
		{
			name: "required fields", token: adminToken, body: []byte(`{}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{
				Message: "invalid input",
				Errors: map[string]string{
					"username":  "this field is required",
					"email":     "this field is required",
					"password":  "this field is required",
					"firstName": "this field is required",
					"lastName":  "this field is required",
				},
			}),
		},
		{
			name: "duplicate username", token: adminToken,
			body:     newTeacher("JDoe", "other@school.test", testutil.Password),
			wantCode: http.StatusBadRequest, wantData: invalid("username", user.ErrUsernameExists.Error()),
		},
		{
			name: "duplicate email", token: adminToken,
			body:     newTeacher("msantos", "jdoe@school.test", testutil.Password),
			wantCode: http.StatusBadRequest, wantData: invalid("email", user.ErrEmailExists.Error()),
		},
		{
			name: "weak password", token: adminToken,
			body:     newTeacher("msantos", "msantos@school.test", "password"),
			wantCode: http.StatusBadRequest,
			wantData: invalid("password", "password must contain at least 1 uppercase character, 1 lowercase character, 1 digit and 1 special character"),
		},
		{
			name: "password over 72 bytes", token: adminToken,
			body:     newTeacher("msantos", "msantos@school.test", "A1!"+strings.Repeat("é", 37)),
			wantCode: http.StatusBadRequest, wantData: invalid("password", "password must not exceed 72 bytes"),
		},
		{
			name: "invalid username", token: adminToken,
			body:     newTeacher("m.santos", "msantos@school.test", testutil.Password),
			wantCode: http.StatusBadRequest,
			wantData: invalid("username", "only alphanumeric characters and underscores are allowed"),
		},
	}
	for i := range tests {
		tests[i].method = http.MethodPost
		tests[i].path = "/api/users/teachers"
	}
	runHTTPTests(t, app, tests)

	req, rec := newAuthRequest(http.MethodPost, "/api/users/teachers", adminToken,
		newTeacher(" MSantos ", "MSantos@School.test", testutil.Password))
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var got user.User
	unmarshall(t, rec, &got)
	assert.Equal(t, "msantos", got.Username)
	assert.Equal(t, "msantos@school.test", got.Email)
	assert.Equal(t, user.RoleTeacher, got.Role)
	assert.Equal(t, []string{"Mathematics", "Science"}, got.SubjectAreas)
	assert.NotContains(t, rec.Body.String(), "password")

	// the new teacher is onboarded & can log in
	notifs, err := env.NotifSvc.QueryByUser(got.ID)
	require.NoError(t, err)
	require.Len(t, notifs, 1)
	assert.Equal(t, "success", notifs[0].Kind)
	require.Len(t, env.Mail.SentMessages(), 1)

	_, _, err = env.Gate.Login("msantos", testutil.Password)
	assert.NoError(t, err)
}

func Test_userApi_update(t *testing.T) {
	app, env := setup(t)
	admin := testutil.CreateUser(t, env.UserRepo, "admin", testutil.Password, user.RoleAdministrator)
	jdoe := testutil.CreateUser(t, env.UserRepo, "jdoe", testutil.Password, user.RoleTeacher)
	asmith := testutil.CreateUser(t, env.UserRepo, "asmith", testutil.Password, user.RoleTeacher)
	adminToken := getToken(t, env, admin)
	jdoeToken := getToken(t, env, jdoe)

	path := func(id int) string { return fmt.Sprintf("/api/users/%d", id) }

	tests := []httpTest{
		{
			name: "other teacher", path: path(asmith.ID), token: jdoeToken,
			body:     []byte(`{"firstName": "Hacked"}`),
			wantCode: http.StatusForbidden, wantData: marchallObj(t, errPermissionDenied),
		},
		{
			name: "own role", path: path(jdoe.ID), token: jdoeToken,
			body:     []byte(`{"role": "administrator"}`),
			wantCode: http.StatusForbidden, wantData: marchallObj(t, errPermissionDenied),
		},
		{
			name: "same role", path: path(jdoe.ID), token: jdoeToken,
			body: []byte(`{"role": "teacher", "lastName": "Doe"}`),
		},
		{
			name: "unknown user", path: path(9999), token: adminToken,
			body:     []byte(`{"firstName": "Ghost"}`),
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Message: "user not found"}),
		},
		{
			name: "malformed id", path: "/api/users/abc", token: adminToken,
			body:     []byte(`{"firstName": "Ghost"}`),
			wantCode: http.StatusNotFound,
		},
		{
			name: "invalid role", path: path(asmith.ID), token: adminToken,
			body:     []byte(`{"role": "principal"}`),
			wantCode: http.StatusBadRequest,
		},
		{
			name: "promote", path: path(asmith.ID), token: adminToken,
			body: []byte(`{"role": "administrator"}`),
		},
	}
	for i := range tests {
		tests[i].method = http.MethodPatch
	}
	runHTTPTests(t, app, tests)

	got, err := env.UserSvc.GetByID(jdoe.ID)
	require.NoError(t, err)
	assert.Equal(t, "Doe", got.LastName)
	assert.Equal(t, user.RoleTeacher, got.Role)

	got, err = env.UserSvc.GetByID(asmith.ID)
	require.NoError(t, err)
	assert.Equal(t, "asmith", got.FirstName)
	assert.Equal(t, user.RoleAdministrator, got.Role)
}
