package dashboard

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/Windi-Fikriyansyah/serviceconnect/internal/models"
)

// NoticeLoadFailed is shown when the owned requests could not be read.
const NoticeLoadFailed = "Não foi possível carregar seus serviços. Tente novamente em instantes."

// Source is what the dashboard reads from the store.
type Source interface {
	Profile(ctx context.Context, userID uuid.UUID) (*models.UserProfile, error)
	OwnedRequests(ctx context.Context, userID uuid.UUID) ([]models.ServiceRequest, error)
}

type QuickAction struct {
	Label string `json:"label"`
	Path  string `json:"path"`
}

type ProfileSection struct {
	Name     string          `json:"name"`
	Email    string          `json:"email"`
	UserType models.UserType `json:"user_type"`
	Greeting string          `json:"greeting"`
	Welcome  string          `json:"welcome"`
}

// View is the dashboard screen. Each section reports its own readiness so a
// partially loaded dashboard can still be shown.
type View struct {
	Profile       ProfileSection `json:"profile"`
	Actions       []QuickAction  `json:"actions"`
	Metrics       Metrics        `json:"metrics"`
	MetricsReady  bool           `json:"metrics_ready"`
	Activity      []Activity     `json:"activity"`
	ActivityReady bool           `json:"activity_ready"`
	Notice        string         `json:"notice,omitempty"`
}

// Build loads the profile first, then the owned requests. A profile failure is
// returned to the caller; a request failure degrades to an empty dashboard with
// a notice.
func Build(ctx context.Context, src Source, userID uuid.UUID, limit int) (View, error) {
	profile, err := src.Profile(ctx, userID)
	if err != nil {
		return View{}, fmt.Errorf("load profile: %w", err)
	}

	v := View{
		Profile: profileSection(profile),
		Actions: actionsFor(profile.UserType),
	}

	var summary Summary
	records, err := src.OwnedRequests(ctx, userID)
	if err != nil {
		log.Printf("[Dashboard] owned requests for %s: %v", userID, err)
		summary = Degraded(NoticeLoadFailed)
	} else {
		summary = Aggregate(records, limit)
		v.MetricsReady = true
		v.ActivityReady = true
	}

	v.Metrics = summary.Metrics
	v.Activity = summary.Activity
	v.Notice = summary.Notice
	return v, nil
}

func profileSection(p *models.UserProfile) ProfileSection {
	welcome := "Bem-vindo ao seu painel de cliente"
	if p.UserType == models.UserTypeProfessional {
		welcome = "Bem-vindo ao seu painel profissional"
	}
	name := p.Name
	if name == "" {
		name = "Usuário"
	}
	return ProfileSection{
		Name:     p.Name,
		Email:    p.Email,
		UserType: p.UserType,
		Greeting: "Olá, " + name + "!",
		Welcome:  welcome,
	}
}

func actionsFor(t models.UserType) []QuickAction {
	second := QuickAction{Label: "Publicar Serviço", Path: "/publicar-servico"}
	if t == models.UserTypeProfessional {
		second = QuickAction{Label: "Buscar Serviços", Path: "/servicos"}
	}
	return []QuickAction{
		{Label: "Meu Perfil", Path: "/dashboard"},
		second,
	}
}
