package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"

	"github.com/Windi-Fikriyansyah/serviceconnect/internal/currency"
	"github.com/Windi-Fikriyansyah/serviceconnect/internal/realtime"
)

// FormatCurrency lets a client format a typed amount the same way the server
// does: "valor" may be raw centavo digits or an already formatted value.
func FormatCurrency(c *fiber.Ctx) error {
	raw := currency.Unformat(c.Query("valor"))
	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"raw":     raw,
			"display": currency.Format(raw),
		},
	})
}

func NotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"success": false,
		"message": "Página não encontrada",
		"path":    c.Path(),
	})
}

// NoticeSocket streams realtime notices. RequireSession runs before the
// upgrade, so "userId" is already in the locals.
func NoticeSocket(hub *realtime.Hub) fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		uid, err := uuid.Parse(stringLocal(conn.Locals("userId")))
		if err != nil {
			_ = conn.Close()
			return
		}
		realtime.ServeNotices(hub, conn, uid)
	})
}

func stringLocal(v interface{}) string {
	s, _ := v.(string)
	return s
}

// UpgradeOnly rejects plain HTTP requests on websocket routes.
func UpgradeOnly(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}
