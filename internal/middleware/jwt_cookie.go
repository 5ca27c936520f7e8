package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Windi-Fikriyansyah/serviceconnect/internal/navigation"
	"github.com/Windi-Fikriyansyah/serviceconnect/internal/utils"
)

// APIPrefix is stripped from the request path when building the login redirect,
// so the intent points at the screen and not at the endpoint.
const APIPrefix = "/api"

// RequireSession verifies the session cookie, stores the token under "user"
// and continues with AttachJWTLocals.
func RequireSession(secret string) fiber.Handler {
	attach := AttachJWTLocals()
	return func(c *fiber.Ctx) error {
		tokenStr := c.Cookies(utils.SessionCookie)
		if tokenStr == "" {
			return Unauthorized(c)
		}

		token, err := utils.ParseJWT(secret, tokenStr)
		if err != nil {
			return Unauthorized(c)
		}

		c.Locals("user", token)
		return attach(c)
	}
}

// Unauthorized answers 401 with the login path carrying the current screen as
// the post-login intent.
func Unauthorized(c *fiber.Ctx) error {
	from := strings.TrimPrefix(c.OriginalURL(), APIPrefix)
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"success":  false,
		"message":  "Faça login para continuar",
		"redirect": navigation.LoginURL(from),
	})
}
