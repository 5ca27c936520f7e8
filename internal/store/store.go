// Package store is the data access layer for the marketplace tables. Each
// store is an interface with a gorm implementation so handlers and services
// can be tested against fakes.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Windi-Fikriyansyah/serviceconnect/internal/models"
)

var ErrNotFound = errors.New("store: record not found")

// wrap maps gorm's not-found error to ErrNotFound and annotates the rest.
func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// Stores bundles the gorm stores sharing one connection.
type Stores struct {
	Requests  ServiceRequestStore
	Proposals ProposalStore
	Profiles  ProfileStore
}

func New(db *gorm.DB) Stores {
	return Stores{
		Requests:  NewGormServiceRequestStore(db),
		Proposals: NewGormProposalStore(db),
		Profiles:  NewGormProfileStore(db),
	}
}

// DashboardSource reads the signed-in user's profile and owned requests for
// the dashboard.
type DashboardSource struct {
	Profiles ProfileStore
	Requests ServiceRequestStore
}

func (s DashboardSource) Profile(ctx context.Context, userID uuid.UUID) (*models.UserProfile, error) {
	return s.Profiles.Get(ctx, userID)
}

func (s DashboardSource) OwnedRequests(ctx context.Context, userID uuid.UUID) ([]models.ServiceRequest, error) {
	return s.Requests.ListByClient(ctx, userID)
}
