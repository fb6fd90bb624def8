// FILE: internal/controller/session_controller.go
package controller

import (
	"bible-study-be/internal/mapper"
	"bible-study-be/internal/pkg/serverutils"
	"bible-study-be/internal/service"
	internalWS "bible-study-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

type ISessionController interface {
	RegisterRoutes(r fiber.Router)
	Current(ctx *fiber.Ctx) error
}

type sessionController struct {
	sessions service.ISessionService
	hub      *internalWS.Hub
}

func NewSessionController(sessions service.ISessionService, hub *internalWS.Hub) ISessionController {
	return &sessionController{sessions: sessions, hub: hub}
}

func (c *sessionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/session")
	h.Get("/", c.Current)
	h.Use("/ws", func(ctx *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(ctx) {
			return ctx.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	h.Get("/ws", websocket.New(func(conn *websocket.Conn) {
		internalWS.ServeWs(c.hub, conn)
	}))
}

func (c *sessionController) Current(ctx *fiber.Ctx) error {
	session := c.sessions.GetCurrentSession(ctx.UserContext())
	return ctx.JSON(serverutils.SuccessResponse("Current session", mapper.ToSession(session)))
}
