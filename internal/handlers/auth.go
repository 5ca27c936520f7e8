package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/Windi-Fikriyansyah/serviceconnect/internal/forms"
	"github.com/Windi-Fikriyansyah/serviceconnect/internal/models"
	"github.com/Windi-Fikriyansyah/serviceconnect/internal/navigation"
	"github.com/Windi-Fikriyansyah/serviceconnect/internal/store"
	"github.com/Windi-Fikriyansyah/serviceconnect/internal/utils"
)

type AuthHandler struct {
	Profiles     store.ProfileStore
	JWTSecret    string
	Expires      int
	CookieSecure bool
}

func NewAuthHandler(profiles store.ProfileStore, secret string, expiresMin int, secure bool) *AuthHandler {
	return &AuthHandler{Profiles: profiles, JWTSecret: secret, Expires: expiresMin, CookieSecure: secure}
}

func (h *AuthHandler) setSession(c *fiber.Ctx, u *models.UserProfile) error {
	token, err := utils.SignJWT(h.JWTSecret, u.ID.String(), string(u.UserType), h.Expires)
	if err != nil {
		return err
	}
	setSessionCookie(c, token, h.Expires*60, h.CookieSecure)
	return nil
}

func setSessionCookie(c *fiber.Ctx, token string, maxAge int, secure bool) {
	c.Cookie(&fiber.Cookie{
		Name:     utils.SessionCookie,
		Value:    token,
		Path:     "/",
		HTTPOnly: true,
		Secure:   secure,
		SameSite: "Lax",
		MaxAge:   maxAge,
	})
}

func userJSON(u *models.UserProfile) fiber.Map {
	return fiber.Map{
		"id":        u.ID,
		"name":      u.Name,
		"email":     u.Email,
		"user_type": u.UserType,
	}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req forms.RegisterForm
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	form, errs := req.Normalize()
	if len(errs) > 0 {
		return validationFail(c, errs)
	}

	ctx := c.UserContext()
	if _, err := h.Profiles.GetByEmail(ctx, form.Email); err == nil {
		errs := forms.FieldErrors{}
		errs.Add("email", "Este e-mail já está cadastrado")
		return validationFail(c, errs)
	} else if !errors.Is(err, store.ErrNotFound) {
		log.Printf("[Auth] lookup %s: %v", form.Email, err)
		return respondError(c, fiber.StatusInternalServerError, msgServerError)
	}

	pw, err := utils.HashPassword(form.Password)
	if err != nil {
		return respondError(c, fiber.StatusInternalServerError, "Não foi possível processar a senha")
	}

	u := models.UserProfile{
		Name:         form.Name,
		Email:        form.Email,
		PasswordHash: pw,
		UserType:     form.Type(),
	}
	if err := h.Profiles.Create(ctx, &u); err != nil {
		log.Printf("[Auth] create %s: %v", form.Email, err)
		return respondError(c, fiber.StatusInternalServerError, "Não foi possível criar a conta")
	}

	if err := h.setSession(c, &u); err != nil {
		return respondError(c, fiber.StatusInternalServerError, "Não foi possível iniciar a sessão")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":  true,
		"message":  "Conta criada com sucesso",
		"redirect": navigation.DefaultPath,
		"data": fiber.Map{
			"user": userJSON(&u),
		},
	})
}

// Login answers with the redirect target: the "next" intent when it is a safe
// local path, otherwise the dashboard.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req forms.LoginForm
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	if req.Next == "" {
		req.Next = c.Query("next")
	}

	form, errs := req.Normalize()
	if len(errs) > 0 {
		return validationFail(c, errs)
	}

	u, err := h.Profiles.GetByEmail(c.UserContext(), form.Email)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		log.Printf("[Auth] lookup %s: %v", form.Email, err)
		return respondError(c, fiber.StatusInternalServerError, msgServerError)
	}
	if u == nil || !utils.CheckPassword(u.PasswordHash, form.Password) {
		return respondError(c, fiber.StatusUnauthorized, "E-mail ou senha inválidos")
	}

	if err := h.setSession(c, u); err != nil {
		return respondError(c, fiber.StatusInternalServerError, "Não foi possível iniciar a sessão")
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"message":  "Login realizado com sucesso",
		"redirect": navigation.Parse(form.Next).Target(),
		"data": fiber.Map{
			"user": userJSON(u),
		},
	})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	setSessionCookie(c, "", -1, h.CookieSecure)

	return c.JSON(fiber.Map{
		"success":  true,
		"message":  "Você saiu da sua conta",
		"redirect": "/",
	})
}
