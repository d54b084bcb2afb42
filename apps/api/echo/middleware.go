package echoapi

import (
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/shulehq/shule/core/access"
	"github.com/shulehq/shule/core/user"
)

// accessMiddleware gates a route on one app/action grant. The user's
// permissions are read fresh for the request; a deny is silent, it never
// reveals whether the app or action exists.
func accessMiddleware(svc user.Service, app access.App, action access.Action) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			usr, err := getContextUser(ctx, svc)
			if err != nil {
				return errors.Wrap(err, "getting context user")
			}
			if usr.IsActive != nil && !*usr.IsActive {
				return errAccountDeactivated
			}
			if usr.Can(app, action) {
				return next(ctx)
			}
			return errHttpForbidden
		}
	}
}

// selfOrAccessMiddleware guards user detail routes: the target user may be
// the authenticated user themselves, or anyone holding the given grant.
// The target is loaded and stashed in the context as "object".
func selfOrAccessMiddleware(svc user.Service, app access.App, action access.Action) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			ctxUsr, err := getContextUser(ctx, svc)
			if err != nil {
				return errors.Wrap(err, "getting context user")
			}

			if ctx.Param("id") == ctxUsr.ID || ctxUsr.Can(app, action) {
				if usr, err := svc.GetByID(ctx.Request().Context(), ctx.Param("id")); err == nil {
					ctx.Set("object", usr)
					return next(ctx)
				} else if errors.Cause(err) != user.ErrNotFound {
					return errors.Wrap(err, "finding user by ID")
				}
			}
			return errHttpNotFound
		}
	}
}
