package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Windi-Fikriyansyah/serviceconnect/internal/models"
	"github.com/Windi-Fikriyansyah/serviceconnect/internal/store"
)

const msgProfessionalNotFound = "Profissional não encontrado"

type ProfessionalHandler struct {
	Profiles  store.ProfileStore
	Proposals store.ProposalStore
}

func NewProfessionalHandler(profiles store.ProfileStore, proposals store.ProposalStore) *ProfessionalHandler {
	return &ProfessionalHandler{Profiles: profiles, Proposals: proposals}
}

func professionalJSON(p *models.UserProfile) fiber.Map {
	return fiber.Map{
		"id":           p.ID,
		"name":         p.DisplayName(),
		"member_since": p.CreatedAt,
	}
}

func (h *ProfessionalHandler) List(c *fiber.Ctx) error {
	list, err := h.Profiles.ListProfessionals(c.UserContext(), c.Query("q"))
	if err != nil {
		return fail(c, "Professionals", err, msgProfessionalNotFound)
	}

	items := make([]fiber.Map, 0, len(list))
	for i := range list {
		items = append(items, professionalJSON(&list[i]))
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    items,
	})
}

func (h *ProfessionalHandler) Detail(c *fiber.Ctx) error {
	id, ok := paramUUID(c, "id")
	if !ok {
		return respondError(c, fiber.StatusNotFound, msgProfessionalNotFound)
	}

	ctx := c.UserContext()
	p, err := h.Profiles.Get(ctx, id)
	if err != nil {
		return fail(c, "Professionals", err, msgProfessionalNotFound)
	}
	if p.UserType != models.UserTypeProfessional {
		return respondError(c, fiber.StatusNotFound, msgProfessionalNotFound)
	}

	sent, err := h.Proposals.CountByProfessional(ctx, id)
	if err != nil {
		return fail(c, "Professionals", err, msgProfessionalNotFound)
	}

	data := professionalJSON(p)
	data["proposals_sent"] = sent
	return c.JSON(fiber.Map{
		"success": true,
		"data":    data,
	})
}
