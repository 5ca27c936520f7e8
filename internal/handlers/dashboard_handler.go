package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/Windi-Fikriyansyah/serviceconnect/internal/dashboard"
	"github.com/Windi-Fikriyansyah/serviceconnect/internal/services/requests"
)

type DashboardHandler struct {
	Source   dashboard.Source
	Notifier requests.Notifier
}

func NewDashboardHandler(src dashboard.Source, n requests.Notifier) *DashboardHandler {
	return &DashboardHandler{Source: src, Notifier: n}
}

// Show builds the signed-in user's dashboard. A failed requests read still
// answers 200 with empty sections and a notice.
func (h *DashboardHandler) Show(c *fiber.Ctx) error {
	uid, err := getUserUUID(c)
	if err != nil {
		return respondError(c, fiber.StatusUnauthorized, "Faça login para continuar")
	}

	ctx := c.UserContext()
	view, err := dashboard.Build(ctx, h.Source, uid, dashboard.DefaultActivityLimit)
	if err != nil {
		log.Printf("[Dashboard] %s: %v", uid, err)
		return respondError(c, fiber.StatusInternalServerError, "Não foi possível carregar seu perfil")
	}

	if view.Notice != "" && h.Notifier != nil {
		h.Notifier.Notify(ctx, uid, "load_failed", view.Notice)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    view,
	})
}
