// FILE: internal/controller/explore_controller.go
package controller

import (
	"errors"

	"bible-study-be/internal/dto"
	"bible-study-be/internal/mapper"
	"bible-study-be/internal/pkg/serverutils"
	"bible-study-be/internal/service"
	"bible-study-be/pkg/suggestion"

	"github.com/gofiber/fiber/v2"
)

type IExploreController interface {
	RegisterRoutes(r fiber.Router, guard fiber.Handler)
	View(ctx *fiber.Ctx) error
	Explore(ctx *fiber.Ctx) error
	PickSuggestion(ctx *fiber.Ctx) error
	Suggestions(ctx *fiber.Ctx) error
}

type exploreController struct {
	shell   service.IShellService
	mapper  *mapper.ViewMapper
	catalog *suggestion.Catalog
}

func NewExploreController(shell service.IShellService, mapper *mapper.ViewMapper, catalog *suggestion.Catalog) IExploreController {
	return &exploreController{shell: shell, mapper: mapper, catalog: catalog}
}

func (c *exploreController) RegisterRoutes(r fiber.Router, guard fiber.Handler) {
	r.Get("/view", c.View)
	r.Get("/suggestions", c.Suggestions)

	h := r.Group("/explore", guard)
	h.Post("/", c.Explore)
	h.Post("/suggestion", c.PickSuggestion)
}

func (c *exploreController) View(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Current view", c.mapper.ToResponse(c.shell.View())))
}

func (c *exploreController) Explore(ctx *fiber.Ctx) error {
	var req dto.ExploreRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	view, err := c.shell.SubmitQuery(ctx.UserContext(), *req.Query)
	if err != nil {
		return c.refuse(ctx, err)
	}
	return c.respond(ctx, view)
}

func (c *exploreController) PickSuggestion(ctx *fiber.Ctx) error {
	var req dto.ExploreRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	view, err := c.shell.PickSuggestion(ctx.UserContext(), *req.Query)
	if err != nil {
		return c.refuse(ctx, err)
	}
	return c.respond(ctx, view)
}

func (c *exploreController) Suggestions(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Suggestions", dto.SuggestionsResponse{
		Suggestions: c.catalog.Pick(suggestion.DefaultPickSize),
	}))
}

func (c *exploreController) respond(ctx *fiber.Ctx, view service.View) error {
	res := c.mapper.ToResponse(view)
	if view.State == service.StateError {
		return ctx.JSON(serverutils.BaseResponse[dto.ViewResponse]{
			Success: false,
			Code:    200,
			Message: view.Error,
			Data:    res,
		})
	}
	return ctx.JSON(serverutils.SuccessResponse("Exploration completed", res))
}

func (c *exploreController) refuse(ctx *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrBusy):
		return ctx.Status(fiber.StatusConflict).JSON(serverutils.ErrorResponse(409, "An exploration is already in progress"))
	case errors.Is(err, service.ErrNotSignedIn):
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Not signed in"))
	}
	return err
}
