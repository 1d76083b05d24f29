package echoapi

import (
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/edutrack/core/auth"
)

var (
	contextCallerKey = "caller"
	contextTokenKey  = "sessionToken"
	bearerPrefix     = "Bearer "
)

// bearerToken extracts the session token of the `Authorization: Bearer <token>` header.
func bearerToken(ctx echo.Context) string {
	hdr := ctx.Request().Header.Get(echo.HeaderAuthorization)
	if len(hdr) > len(bearerPrefix) && strings.EqualFold(hdr[:len(bearerPrefix)], bearerPrefix) {
		return strings.TrimSpace(hdr[len(bearerPrefix):])
	}
	return ""
}

// sessionMiddleware resolves the bearer token to an auth.Caller, or fails with 401.
func sessionMiddleware(gate *auth.Gate) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			token := bearerToken(ctx)
			if token == "" {
				return errMissingToken
			}
			caller, err := gate.Authenticate(token)
			if err != nil {
				return errors.Wrap(err, "authenticating session")
			}
			ctx.Set(contextCallerKey, caller)
			ctx.Set(contextTokenKey, token)
			return next(ctx)
		}
	}
}

func getContextCaller(ctx echo.Context) (auth.Caller, error) {
	if caller, ok := ctx.Get(contextCallerKey).(auth.Caller); ok {
		return caller, nil
	}
	return auth.Caller{}, errCallerMissing
}

func adminMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		caller, err := getContextCaller(ctx)
		if err != nil {
			return err
		}
		if err = caller.Authorize(auth.AdminOnly, 0); err != nil {
			return err
		}
		return next(ctx)
	}
}

// selfOrAdminMiddleware checks the caller may reach the user of the path `param`.
// An absent param targets the caller. The resolved id is stored under `param` in the echo.Context.
func selfOrAdminMiddleware(param string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			caller, err := getContextCaller(ctx)
			if err != nil {
				return err
			}

			targetID := caller.ID
			if raw := ctx.Param(param); raw != "" {
				if targetID, err = strconv.Atoi(raw); err != nil {
					return errHttpNotFound
				}
			}
			if err = caller.Authorize(auth.SelfOrAdmin, targetID); err != nil {
				return err
			}
			ctx.Set(param, targetID)
			return next(ctx)
		}
	}
}

func getContextTargetID(ctx echo.Context, param string) int {
	id, _ := ctx.Get(param).(int)
	return id
}

// pathID parses the integer path `param`; malformed ids are not found.
func pathID(ctx echo.Context, param string) (int, error) {
	id, err := strconv.Atoi(ctx.Param(param))
	if err != nil {
		return 0, errHttpNotFound
	}
	return id, nil
}
