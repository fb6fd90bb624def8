// FILE: internal/controller/auth_controller.go
package controller

import (
	"errors"

	"bible-study-be/internal/dto"
	"bible-study-be/internal/mapper"
	"bible-study-be/internal/pkg/serverutils"
	"bible-study-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAuthController interface {
	RegisterRoutes(r fiber.Router)
	Login(ctx *fiber.Ctx) error
	Logout(ctx *fiber.Ctx) error
}

type authController struct {
	shell  service.IShellService
	issuer *serverutils.TokenIssuer
	mapper *mapper.ViewMapper
}

func NewAuthController(shell service.IShellService, issuer *serverutils.TokenIssuer, mapper *mapper.ViewMapper) IAuthController {
	return &authController{shell: shell, issuer: issuer, mapper: mapper}
}

func (c *authController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/auth")
	h.Post("/login", c.Login)
	h.Post("/logout", c.Logout)
}

func (c *authController) Login(ctx *fiber.Ctx) error {
	view, err := c.shell.SignIn(ctx.UserContext())
	if errors.Is(err, service.ErrBusy) {
		return ctx.Status(fiber.StatusConflict).JSON(serverutils.ErrorResponse(409, "Sign-in already in progress"))
	}
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, view.Error))
	}
	if view.Session == nil {
		return errors.New("signed in without a session")
	}

	token, expiresAt, err := c.issuer.Issue(view.Session.Uid)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Login successful", dto.LoginResponse{
		AccessToken: token,
		ExpiresAt:   expiresAt,
		Session:     mapper.ToSession(view.Session),
		View:        c.mapper.ToResponse(view),
	}))
}

// Logout is public and repeated calls are harmless. It is refused only while
// a sign-in is still resolving.
func (c *authController) Logout(ctx *fiber.Ctx) error {
	view, err := c.shell.SignOut(ctx.UserContext())
	if errors.Is(err, service.ErrBusy) {
		return ctx.Status(fiber.StatusConflict).JSON(serverutils.ErrorResponse(409, "Sign-in already in progress"))
	}
	return ctx.JSON(serverutils.SuccessResponse("Logged out successfully", c.mapper.ToResponse(view)))
}
