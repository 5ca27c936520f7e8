package handlers

import (
	"math"

	"github.com/gofiber/fiber/v2"

	"github.com/Windi-Fikriyansyah/serviceconnect/internal/currency"
	"github.com/Windi-Fikriyansyah/serviceconnect/internal/forms"
	"github.com/Windi-Fikriyansyah/serviceconnect/internal/listing"
	"github.com/Windi-Fikriyansyah/serviceconnect/internal/models"
	"github.com/Windi-Fikriyansyah/serviceconnect/internal/services/requests"
)

const (
	msgServiceNotFound  = "Serviço não encontrado"
	msgProposalNotFound = "Proposta não encontrada"
)

type ServiceHandler struct {
	Svc *requests.RequestService
}

func NewServiceHandler(svc *requests.RequestService) *ServiceHandler {
	return &ServiceHandler{Svc: svc}
}

// serviceJSON adds the display fields the screens show next to the record.
func serviceJSON(r *models.ServiceRequest) fiber.Map {
	return fiber.Map{
		"id":             r.ID,
		"title":          r.Title,
		"description":    r.Description,
		"category":       r.Category,
		"budget":         r.Budget,
		"budget_display": currency.FormatMoney(r.Budget),
		"location":       r.Location,
		"type":           r.Type,
		"delivery_date":  r.DeliveryDate,
		"status":         r.Status,
		"status_label":   r.Status.Label(),
		"client_id":      r.ClientID,
		"created_at":     r.CreatedAt,
	}
}

// List serves /servicos: text query "q", price range text "faixa", then
// page/limit over the filtered set.
func (h *ServiceHandler) List(c *fiber.Ctx) error {
	all, err := h.Svc.Requests.List(c.UserContext())
	if err != nil {
		return fail(c, "Services", err, msgServiceNotFound)
	}

	q := c.Query("q")
	faixa := c.Query("faixa")
	filtered := listing.Filter(all, q, faixa)
	page := listing.Paginate(filtered, c.QueryInt("page", 1), c.QueryInt("limit", 20))

	items := make([]fiber.Map, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, serviceJSON(&page.Items[i]))
	}

	bounds := listing.ParsePriceRange(faixa)
	rangeJSON := fiber.Map{"inverted": bounds.Inverted()}
	if !math.IsInf(bounds.Min, 0) {
		rangeJSON["min"] = bounds.Min
	}
	if !math.IsInf(bounds.Max, 0) {
		rangeJSON["max"] = bounds.Max
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"items": items,
			"pagination": fiber.Map{
				"page":        page.Page,
				"limit":       page.PageSize,
				"total":       page.Total,
				"total_pages": page.TotalPages(),
				"has_next":    page.HasNext,
				"has_prev":    page.HasPrev,
			},
			"filters": fiber.Map{
				"q":     q,
				"faixa": faixa,
				"range": rangeJSON,
			},
		},
	})
}

func (h *ServiceHandler) Detail(c *fiber.Ctx) error {
	id, ok := paramUUID(c, "id")
	if !ok {
		return respondError(c, fiber.StatusNotFound, msgServiceNotFound)
	}
	uid, _ := getUserUUID(c)

	r, err := h.Svc.Get(c.UserContext(), id)
	if err != nil {
		return fail(c, "Services", err, msgServiceNotFound)
	}

	data := serviceJSON(r)
	data["is_owner"] = r.OwnedBy(uid)
	data["client_name"] = ""
	if r.Client != nil {
		data["client_name"] = r.Client.DisplayName()
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    data,
	})
}

func (h *ServiceHandler) UpdateStatus(c *fiber.Ctx) error {
	id, ok := paramUUID(c, "id")
	if !ok {
		return respondError(c, fiber.StatusNotFound, msgServiceNotFound)
	}
	uid, err := getUserUUID(c)
	if err != nil {
		return respondError(c, fiber.StatusUnauthorized, "Faça login para continuar")
	}

	var req forms.StatusForm
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	status, errs := req.Normalize()
	if len(errs) > 0 {
		return validationFail(c, errs)
	}

	r, err := h.Svc.UpdateStatus(c.UserContext(), uid, id, status)
	if err != nil {
		return fail(c, "Services", err, msgServiceNotFound)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Status atualizado para " + r.Status.Label(),
		"data":    serviceJSON(r),
	})
}

func (h *ServiceHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramUUID(c, "id")
	if !ok {
		return respondError(c, fiber.StatusNotFound, msgServiceNotFound)
	}
	uid, err := getUserUUID(c)
	if err != nil {
		return respondError(c, fiber.StatusUnauthorized, "Faça login para continuar")
	}

	if err := h.Svc.Delete(c.UserContext(), uid, id); err != nil {
		return fail(c, "Services", err, msgServiceNotFound)
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"message":  "Serviço excluído com sucesso",
		"redirect": "/servicos",
	})
}

func proposalJSON(p *models.ServiceProposal) fiber.Map {
	m := fiber.Map{
		"id":              p.ID,
		"service_id":      p.ServiceID,
		"professional_id": p.ProfessionalID,
		"price":           p.Price,
		"price_display":   currency.FormatMoney(p.Price),
		"delivery_time":   p.DeliveryTime,
		"message":         p.Message,
		"status":          p.Status,
		"status_label":    p.Status.Label(),
		"created_at":      p.CreatedAt,
	}
	if p.Professional != nil {
		m["professional_name"] = p.Professional.DisplayName()
	}
	return m
}

func (h *ServiceHandler) SubmitProposal(c *fiber.Ctx) error {
	id, ok := paramUUID(c, "id")
	if !ok {
		return respondError(c, fiber.StatusNotFound, msgServiceNotFound)
	}
	uid, err := getUserUUID(c)
	if err != nil {
		return respondError(c, fiber.StatusUnauthorized, "Faça login para continuar")
	}

	var req forms.ProposalForm
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	p, err := h.Svc.SubmitProposal(c.UserContext(), uid, id, req)
	if err != nil {
		return fail(c, "Proposals", err, msgServiceNotFound)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Proposta enviada com sucesso",
		"data":    proposalJSON(p),
	})
}

func (h *ServiceHandler) ListProposals(c *fiber.Ctx) error {
	id, ok := paramUUID(c, "id")
	if !ok {
		return respondError(c, fiber.StatusNotFound, msgServiceNotFound)
	}
	uid, err := getUserUUID(c)
	if err != nil {
		return respondError(c, fiber.StatusUnauthorized, "Faça login para continuar")
	}

	list, err := h.Svc.ListProposals(c.UserContext(), uid, id)
	if err != nil {
		return fail(c, "Proposals", err, msgServiceNotFound)
	}

	items := make([]fiber.Map, 0, len(list))
	for i := range list {
		items = append(items, proposalJSON(&list[i]))
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    items,
	})
}

func (h *ServiceHandler) AcceptProposal(c *fiber.Ctx) error {
	id, ok := paramUUID(c, "id")
	if !ok {
		return respondError(c, fiber.StatusNotFound, msgProposalNotFound)
	}
	uid, err := getUserUUID(c)
	if err != nil {
		return respondError(c, fiber.StatusUnauthorized, "Faça login para continuar")
	}

	p, err := h.Svc.AcceptProposal(c.UserContext(), uid, id)
	if err != nil {
		return fail(c, "Proposals", err, msgProposalNotFound)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Proposta aceita. O serviço está em andamento.",
		"data":    proposalJSON(p),
	})
}

// PublishOptions feeds the selects of /publicar-servico.
func (h *ServiceHandler) PublishOptions(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
		"data":    forms.PublishOptions(),
	})
}

func (h *ServiceHandler) Publish(c *fiber.Ctx) error {
	uid, err := getUserUUID(c)
	if err != nil {
		return respondError(c, fiber.StatusUnauthorized, "Faça login para continuar")
	}

	var req forms.ServiceRequestForm
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	r, err := h.Svc.Publish(c.UserContext(), uid, req)
	if err != nil {
		return fail(c, "Publish", err, msgServiceNotFound)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":  true,
		"message":  "Serviço publicado com sucesso",
		"redirect": "/servicos/" + r.ID.String(),
		"data":     serviceJSON(r),
	})
}

// Latest serves the landing page: the newest requests.
func (h *ServiceHandler) Latest(c *fiber.Ctx) error {
	list, err := h.Svc.Requests.ListLatest(c.UserContext(), 6)
	if err != nil {
		return fail(c, "Home", err, msgServiceNotFound)
	}

	items := make([]fiber.Map, 0, len(list))
	for i := range list {
		items = append(items, serviceJSON(&list[i]))
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"latest":     items,
			"categories": models.Categories,
		},
	})
}
