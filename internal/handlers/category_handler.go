package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Windi-Fikriyansyah/serviceconnect/internal/models"
	"github.com/Windi-Fikriyansyah/serviceconnect/internal/store"
)

type CategoryHandler struct {
	Requests store.ServiceRequestStore
}

func NewCategoryHandler(reqs store.ServiceRequestStore) *CategoryHandler {
	return &CategoryHandler{Requests: reqs}
}

// GetCategories lists every category in display order with its number of open
// requests.
func (h *CategoryHandler) GetCategories(c *fiber.Ctx) error {
	counts, err := h.Requests.CountOpenByCategory(c.UserContext())
	if err != nil {
		return fail(c, "Categories", err, "Categoria não encontrada")
	}

	out := make([]fiber.Map, 0, len(models.Categories))
	for _, cat := range models.Categories {
		out = append(out, fiber.Map{
			"name": cat,
			"open": counts[cat],
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    out,
	})
}
