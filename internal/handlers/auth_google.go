package handlers

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/Windi-Fikriyansyah/serviceconnect/internal/models"
	"github.com/Windi-Fikriyansyah/serviceconnect/internal/navigation"
	"github.com/Windi-Fikriyansyah/serviceconnect/internal/store"
	"github.com/Windi-Fikriyansyah/serviceconnect/internal/utils"
)

const (
	oauthStateCookie = "oauth_state"
	oauthNextCookie  = "oauth_next"
	oauthCookieAge   = 10 * 60

	googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"
)

type GoogleOAuthHandler struct {
	Profiles        store.ProfileStore
	JWTSecret       string
	Expires         int
	CookieSecure    bool
	GoogleClientID  string
	GoogleSecret    string
	GoogleRedirect  string
	FrontendBaseURL string
}

func (h *GoogleOAuthHandler) oauthCfg() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     h.GoogleClientID,
		ClientSecret: h.GoogleSecret,
		RedirectURL:  h.GoogleRedirect,
		Endpoint:     google.Endpoint,
		Scopes:       []string{"openid", "email", "profile"},
	}
}

func randomState(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)
}

func (h *GoogleOAuthHandler) flowCookie(c *fiber.Ctx, name, value string, maxAge int) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/api/auth/google",
		HTTPOnly: true,
		Secure:   h.CookieSecure,
		SameSite: "Lax",
		MaxAge:   maxAge,
	})
}

// GoogleStart records the state and the post-login intent for this flow only,
// then sends the browser to Google.
func (h *GoogleOAuthHandler) GoogleStart(c *fiber.Ctx) error {
	st := randomState(32)
	next := navigation.Parse(c.Query("next"))

	h.flowCookie(c, oauthStateCookie, st, oauthCookieAge)
	if !next.IsZero() {
		h.flowCookie(c, oauthNextCookie, next.String(), oauthCookieAge)
	}

	authURL := h.oauthCfg().AuthCodeURL(st, oauth2.AccessTypeOffline)
	return c.Redirect(authURL, http.StatusTemporaryRedirect)
}

type googleUserInfo struct {
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
}

func (h *GoogleOAuthHandler) loginError(c *fiber.Ctx, msg string) error {
	return c.Redirect(h.FrontendBaseURL+navigation.LoginPath+"?erro="+url.QueryEscape(msg), http.StatusTemporaryRedirect)
}

func (h *GoogleOAuthHandler) GoogleCallback(c *fiber.Ctx) error {
	code := c.Query("code")
	state := c.Query("state")
	stCookie := c.Cookies(oauthStateCookie)
	next := navigation.Parse(c.Cookies(oauthNextCookie))

	h.flowCookie(c, oauthStateCookie, "", -1)
	h.flowCookie(c, oauthNextCookie, "", -1)

	if code == "" || state == "" || stCookie == "" || stCookie != state {
		return h.loginError(c, "Sessão de login expirada. Tente novamente.")
	}

	ctx := c.UserContext()
	tok, err := h.oauthCfg().Exchange(ctx, code)
	if err != nil {
		log.Printf("[Google] exchange: %v", err)
		return h.loginError(c, "Não foi possível entrar com o Google")
	}

	resp, err := h.oauthCfg().Client(ctx, tok).Get(googleUserInfoURL)
	if err != nil {
		log.Printf("[Google] userinfo: %v", err)
		return h.loginError(c, "Não foi possível entrar com o Google")
	}
	defer resp.Body.Close()

	var gu googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&gu); err != nil {
		return h.loginError(c, "Não foi possível entrar com o Google")
	}

	email := strings.ToLower(strings.TrimSpace(gu.Email))
	if email == "" || !gu.VerifiedEmail {
		return h.loginError(c, "Sua conta Google não tem um e-mail verificado")
	}

	u, err := h.Profiles.GetByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		// Password login stays disabled until the user sets one.
		hashed, herr := utils.HashPassword(randomState(24))
		if herr != nil {
			return h.loginError(c, "Não foi possível criar a conta")
		}
		u = &models.UserProfile{
			Name:         strings.TrimSpace(gu.Name),
			Email:        email,
			PasswordHash: hashed,
			UserType:     models.UserTypeClient,
		}
		err = h.Profiles.Create(ctx, u)
	}
	if err != nil {
		log.Printf("[Google] profile %s: %v", email, err)
		return h.loginError(c, "Não foi possível criar a conta")
	}

	jwtToken, err := utils.SignJWT(h.JWTSecret, u.ID.String(), string(u.UserType), h.Expires)
	if err != nil {
		return h.loginError(c, "Não foi possível iniciar a sessão")
	}
	setSessionCookie(c, jwtToken, h.Expires*60, h.CookieSecure)

	return c.Redirect(h.FrontendBaseURL+next.Target(), http.StatusTemporaryRedirect)
}
