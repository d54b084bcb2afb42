package echoapi

import (
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/shulehq/shule/core/access"
	"github.com/shulehq/shule/core/reception"
	"github.com/shulehq/shule/core/user"
)

type receptionApi struct {
	svc        reception.Service
	usrSvc     user.Service
	validate   *validator.Validate
	translator ut.Translator
}

func registerReceptionAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := receptionApi{
		svc:        deps.ReceptionSvc,
		usrSvc:     deps.UserSvc,
		validate:   deps.Validate,
		translator: deps.Translator,
	}

	vg := g.Group("/reception/visitors", jwt)
	vg.POST("", api.checkIn, accessMiddleware(api.usrSvc, access.AppReception, access.ActionCreate))
	vg.GET("", api.query, accessMiddleware(api.usrSvc, access.AppReception, access.ActionRead))
	vg.GET("/:id", api.retrieve, accessMiddleware(api.usrSvc, access.AppReception, access.ActionRead))
	vg.PUT("/:id/checkout", api.checkOut, accessMiddleware(api.usrSvc, access.AppReception, access.ActionUpdate))
	vg.DELETE("", api.destroyMultiple, accessMiddleware(api.usrSvc, access.AppReception, access.ActionDelete))
}

// Handlers

func (api *receptionApi) checkIn(ctx echo.Context) error {
	var data reception.NewVisitor
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewVisitor")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	vis, err := api.svc.CheckIn(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "checking visitor in")
	}
	return ctx.JSON(http.StatusCreated, vis)
}

func (api *receptionApi) query(ctx echo.Context) error {
	filter := new(reception.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []reception.Visitor{})
	}
	filter.Clean()
	ordering := new(Ordering)
	ordering.Bind(ctx)

	visitors, err := api.svc.Query(ctx.Request().Context(), filter, ordering.Orderings)
	if err != nil {
		return errors.Wrap(err, "querying visitors")
	}
	if visitors == nil {
		visitors = []reception.Visitor{}
	}
	return ctx.JSON(http.StatusOK, visitors)
}

func (api *receptionApi) retrieve(ctx echo.Context) error {
	vis, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == reception.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding visitor by ID")
	}
	return ctx.JSON(http.StatusOK, vis)
}

func (api *receptionApi) checkOut(ctx echo.Context) error {
	vis, err := api.svc.CheckOut(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == reception.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "checking visitor out")
	}
	return ctx.JSON(http.StatusOK, vis)
}

func (api *receptionApi) destroyMultiple(ctx echo.Context) error {
	var query DestroyMultipleRequest
	if err := ctx.Bind(&query); err != nil {
		return errors.Wrap(err, "binding to DestroyMultipleRequest")
	}
	if query.IDs == nil {
		return ctx.NoContent(http.StatusNoContent)
	}

	if err := api.svc.Delete(ctx.Request().Context(), query.IDs...); err != nil {
		return errors.Wrap(err, "deleting visitors")
	}
	return ctx.NoContent(http.StatusNoContent)
}
