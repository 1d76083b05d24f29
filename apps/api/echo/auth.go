package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/edutrack/core"
	"github.com/trezcool/edutrack/core/auth"
	"github.com/trezcool/edutrack/core/user"
)

type authApi struct {
	gate     *auth.Gate
	usrSvc   *user.Service
	validate *validator.Validate
	logger   core.Logger
}

func registerAuthAPI(g *echo.Group, authed echo.MiddlewareFunc, deps ServerDeps) {
	api := authApi{
		gate:     deps.Gate,
		usrSvc:   deps.UserSvc,
		validate: deps.Validate,
		logger:   deps.Logger,
	}

	ag := g.Group("/auth")

	// un-authed endpoints
	ag.POST("/login", api.login)
	ag.POST("/logout", api.logout)

	// authed endpoints
	ag.GET("/me", api.me, authed)
	ag.PATCH("/profile", api.updateProfile, authed)
	ag.PATCH("/password", api.changePassword, authed)
}

// Handlers

func (api *authApi) login(ctx echo.Context) error {
	var data LoginRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to LoginRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	token, usr, err := api.gate.Login(data.Username, data.Password)
	if err != nil {
		if errors.Cause(err) == auth.ErrInvalidCredentials {
			loginsTotal.WithLabelValues("failure").Inc()
		}
		return errors.Wrap(err, "logging in")
	}
	loginsTotal.WithLabelValues("success").Inc()
	api.logger.Info("user logged in", usr)

	return ctx.JSON(http.StatusOK, LoginResponse{Token: token, User: usr})
}

// logout revokes the bearer token if one is sent; it always succeeds.
func (api *authApi) logout(ctx echo.Context) error {
	api.gate.Logout(bearerToken(ctx))
	return ctx.JSON(http.StatusOK, MessageResponse{Message: "Logged out successfully"})
}

func (api *authApi) me(ctx echo.Context) error {
	usr, err := getContextUser(ctx, api.usrSvc)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, usr)
}

func (api *authApi) updateProfile(ctx echo.Context) error {
	usr, err := getContextUser(ctx, api.usrSvc)
	if err != nil {
		return err
	}

	var data user.UpdateUser
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateUser")
	}
	data.Role = "" // the role is not part of the profile
	if err = data.Validate(usr, api.validate); err != nil {
		return err
	}

	usr, err = api.usrSvc.Update(usr.ID, data)
	if err != nil {
		return errors.Wrap(err, "updating profile")
	}
	return ctx.JSON(http.StatusOK, usr)
}

func (api *authApi) changePassword(ctx echo.Context) error {
	usr, err := getContextUser(ctx, api.usrSvc)
	if err != nil {
		return err
	}

	var data user.ChangePassword
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ChangePassword")
	}
	if err = data.Validate(usr, api.validate); err != nil {
		return err
	}

	if _, err = api.usrSvc.ChangePassword(usr, data); err != nil {
		return errors.Wrap(err, "changing password")
	}
	// keep the current session only
	api.gate.LogoutOthers(usr.ID, getContextToken(ctx))
	return ctx.JSON(http.StatusOK, MessageResponse{Message: "Password has been changed."})
}

// getContextUser loads the caller's User record.
func getContextUser(ctx echo.Context, svc *user.Service) (user.User, error) {
	caller, err := getContextCaller(ctx)
	if err != nil {
		return user.User{}, err
	}
	usr, err := svc.GetByID(caller.ID)
	if err != nil {
		if errors.Cause(err) == user.ErrNotFound {
			return user.User{}, core.ErrUnauthenticated
		}
		return user.User{}, errors.Wrap(err, "finding user by ID")
	}
	return usr, nil
}

func getContextToken(ctx echo.Context) string {
	token, _ := ctx.Get(contextTokenKey).(string)
	return token
}

type (
	LoginRequest struct {
		Username string `json:"username" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		Token string    `json:"token"`
		User  user.User `json:"user"`
	}

	MessageResponse struct {
		Message string `json:"message"`
	}

	CountResponse struct {
		Count int `json:"count"`
	}
)

func (lr *LoginRequest) Validate(validate *validator.Validate) error {
	lr.Username = core.CleanString(lr.Username, true /* lower */)
	return validate.Struct(lr)
}
