package handlers

import (
	"errors"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/Windi-Fikriyansyah/serviceconnect/internal/forms"
	"github.com/Windi-Fikriyansyah/serviceconnect/internal/services/requests"
	"github.com/Windi-Fikriyansyah/serviceconnect/internal/store"
)

const msgServerError = "Ocorreu um erro inesperado. Tente novamente."

func getUserUUID(c *fiber.Ctx) (uuid.UUID, error) {
	v := c.Locals("userId")
	if v == nil {
		return uuid.Nil, fmt.Errorf("unauthorized")
	}

	switch t := v.(type) {
	case uuid.UUID:
		return t, nil
	case string:
		return uuid.Parse(t)
	default:
		return uuid.Nil, fmt.Errorf("invalid userId type: %T", v)
	}
}

func paramUUID(c *fiber.Ctx, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Params(name))
	return id, err == nil
}

func validationFail(c *fiber.Ctx, errs forms.FieldErrors) error {
	return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
		"success": false,
		"message": "Verifique os campos destacados",
		"errors":  errs,
	})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"message": "Corpo da requisição inválido",
	})
}

func respondError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"message": msg,
	})
}

// fail maps service and store errors to a status and a user-facing message.
// Unexpected errors are logged under tag.
func fail(c *fiber.Ctx, tag string, err error, notFound string) error {
	var verr *requests.ValidationError
	switch {
	case errors.As(err, &verr):
		return validationFail(c, verr.Fields)
	case errors.Is(err, store.ErrNotFound):
		return respondError(c, fiber.StatusNotFound, notFound)
	case errors.Is(err, requests.ErrForbidden):
		return respondError(c, fiber.StatusForbidden, "Apenas o dono do serviço pode realizar esta ação")
	case errors.Is(err, requests.ErrNotProfessional):
		return respondError(c, fiber.StatusForbidden, "Apenas profissionais podem enviar propostas")
	case errors.Is(err, requests.ErrNotOpen):
		return respondError(c, fiber.StatusConflict, "Este serviço não está mais aberto para propostas")
	case errors.Is(err, requests.ErrPartialDelete):
		log.Printf("[%s] %v", tag, err)
		return respondError(c, fiber.StatusInternalServerError, "As propostas foram removidas, mas o serviço não pôde ser excluído. Tente novamente.")
	default:
		log.Printf("[%s] %v", tag, err)
		return respondError(c, fiber.StatusInternalServerError, msgServerError)
	}
}
