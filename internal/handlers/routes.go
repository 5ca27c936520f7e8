package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Windi-Fikriyansyah/serviceconnect/internal/config"
	"github.com/Windi-Fikriyansyah/serviceconnect/internal/middleware"
	"github.com/Windi-Fikriyansyah/serviceconnect/internal/models"
	"github.com/Windi-Fikriyansyah/serviceconnect/internal/realtime"
	"github.com/Windi-Fikriyansyah/serviceconnect/internal/services/requests"
	"github.com/Windi-Fikriyansyah/serviceconnect/internal/store"
)

// Deps is everything the routes need. Hub may be nil when the notice socket is
// not served.
type Deps struct {
	Config   config.Config
	Stores   store.Stores
	Service  *requests.RequestService
	Hub      *realtime.Hub
	Notifier requests.Notifier
}

// Register mounts one API endpoint per screen under /api, the notice socket and
// the 404 catch-all.
func Register(app *fiber.App, d Deps) {
	cfg := d.Config
	session := middleware.RequireSession(cfg.JWTSecret)
	clientOnly := middleware.RequireRoles(string(models.UserTypeClient))
	professionalOnly := middleware.RequireRoles(string(models.UserTypeProfessional))

	authH := NewAuthHandler(d.Stores.Profiles, cfg.JWTSecret, cfg.JWTExpiresMin, cfg.CookieSecure)
	serviceH := NewServiceHandler(d.Service)
	categoryH := NewCategoryHandler(d.Stores.Requests)
	proH := NewProfessionalHandler(d.Stores.Profiles, d.Stores.Proposals)
	dashH := NewDashboardHandler(store.DashboardSource{
		Profiles: d.Stores.Profiles,
		Requests: d.Stores.Requests,
	}, d.Notifier)

	api := app.Group(middleware.APIPrefix, middleware.RequestContext(cfg.RequestTimeout))

	// public
	api.Get("/", serviceH.Latest)
	api.Get("/profissionais", proH.List)
	api.Get("/profissionais/:id", proH.Detail)
	api.Get("/servicos", serviceH.List)
	api.Get("/categorias", categoryH.GetCategories)
	api.Get("/moeda", FormatCurrency)
	api.Post("/login", authH.Login)
	api.Post("/cadastro", authH.Register)
	api.Post("/logout", authH.Logout)

	if cfg.GoogleEnabled() {
		googleH := &GoogleOAuthHandler{
			Profiles:        d.Stores.Profiles,
			JWTSecret:       cfg.JWTSecret,
			Expires:         cfg.JWTExpiresMin,
			CookieSecure:    cfg.CookieSecure,
			GoogleClientID:  cfg.GoogleClientID,
			GoogleSecret:    cfg.GoogleSecret,
			GoogleRedirect:  cfg.GoogleRedirect,
			FrontendBaseURL: cfg.FrontendBaseURL,
		}
		api.Get("/auth/google/start", googleH.GoogleStart)
		api.Get("/auth/google/callback", googleH.GoogleCallback)
	}

	// session
	api.Get("/dashboard", session, dashH.Show)
	api.Get("/servicos/:id", session, serviceH.Detail)
	api.Patch("/servicos/:id/status", session, serviceH.UpdateStatus)
	api.Delete("/servicos/:id", session, serviceH.Delete)
	api.Get("/servicos/:id/propostas", session, serviceH.ListProposals)
	api.Post("/servicos/:id/propostas", session, professionalOnly, serviceH.SubmitProposal)
	api.Patch("/propostas/:id/aceitar", session, serviceH.AcceptProposal)
	api.Get("/publicar-servico", session, clientOnly, serviceH.PublishOptions)
	api.Post("/publicar-servico", session, clientOnly, serviceH.Publish)

	if d.Hub != nil {
		app.Get("/ws/avisos", UpgradeOnly, session, NoticeSocket(d.Hub))
	}

	app.Use(NotFound)
}
