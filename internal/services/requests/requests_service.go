package requests

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/Windi-Fikriyansyah/serviceconnect/internal/forms"
	"github.com/Windi-Fikriyansyah/serviceconnect/internal/models"
	"github.com/Windi-Fikriyansyah/serviceconnect/internal/store"
)

var (
	ErrForbidden       = errors.New("requests: not the owner of this service request")
	ErrNotProfessional = errors.New("requests: only professionals can send proposals")
	ErrNotOpen         = errors.New("requests: service request is no longer accepting proposals")
	// ErrPartialDelete means the proposals were removed but the request row was
	// not. The proposal deletes are not rolled back.
	ErrPartialDelete = errors.New("requests: proposals deleted but service request remains")
)

// ValidationError carries per-field messages; the store was not touched.
type ValidationError struct {
	Fields forms.FieldErrors
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("requests: %d invalid field(s)", len(e.Fields))
}

// Notifier delivers short realtime notices to a user.
type Notifier interface {
	Notify(ctx context.Context, userID uuid.UUID, kind, message string)
}

type nopNotifier struct{}

func (nopNotifier) Notify(context.Context, uuid.UUID, string, string) {}

const (
	NoticeProposalReceived = "proposal_received"
	NoticeProposalAccepted = "proposal_accepted"
)

type RequestService struct {
	Requests  store.ServiceRequestStore
	Proposals store.ProposalStore
	Profiles  store.ProfileStore
	Notifier  Notifier
}

func NewRequestService(reqs store.ServiceRequestStore, props store.ProposalStore, profiles store.ProfileStore, n Notifier) *RequestService {
	if n == nil {
		n = nopNotifier{}
	}
	return &RequestService{Requests: reqs, Proposals: props, Profiles: profiles, Notifier: n}
}

// Publish validates the form and stores a new pending request owned by clientID.
func (s *RequestService) Publish(ctx context.Context, clientID uuid.UUID, form forms.ServiceRequestForm) (*models.ServiceRequest, error) {
	r, errs := form.Normalize()
	if len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}
	r.ClientID = clientID

	if err := s.Requests.Create(ctx, &r); err != nil {
		return nil, fmt.Errorf("publish: %w", err)
	}
	log.Printf("[Requests] published %s by %s", r.ID, clientID)
	return &r, nil
}

func (s *RequestService) Get(ctx context.Context, id uuid.UUID) (*models.ServiceRequest, error) {
	return s.Requests.Get(ctx, id)
}

// owned loads the request and checks that actorID is its client.
func (s *RequestService) owned(ctx context.Context, actorID, id uuid.UUID) (*models.ServiceRequest, error) {
	r, err := s.Requests.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !r.OwnedBy(actorID) {
		return nil, ErrForbidden
	}
	return r, nil
}

func (s *RequestService) UpdateStatus(ctx context.Context, actorID, id uuid.UUID, status models.Status) (*models.ServiceRequest, error) {
	if !status.Valid() {
		errs := forms.FieldErrors{}
		errs.Add("status", "Status inválido")
		return nil, &ValidationError{Fields: errs}
	}

	r, err := s.owned(ctx, actorID, id)
	if err != nil {
		return nil, err
	}
	if err := s.Requests.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	r.Status = status
	return r, nil
}

// Delete removes the linked proposals one by one and then the request. The
// first failing proposal delete aborts before the request is touched.
func (s *RequestService) Delete(ctx context.Context, actorID, id uuid.UUID) error {
	if _, err := s.owned(ctx, actorID, id); err != nil {
		return err
	}

	ids, err := s.Proposals.ListIDsByService(ctx, id)
	if err != nil {
		return fmt.Errorf("delete service %s: %w", id, err)
	}
	for _, pid := range ids {
		if err := s.Proposals.Delete(ctx, pid); err != nil {
			return fmt.Errorf("delete proposal %s: %w", pid, err)
		}
	}

	if err := s.Requests.Delete(ctx, id); err != nil {
		if len(ids) > 0 {
			log.Printf("[Requests] %d proposals of %s deleted, request delete failed: %v", len(ids), id, err)
			return fmt.Errorf("%w: %v", ErrPartialDelete, err)
		}
		return fmt.Errorf("delete service %s: %w", id, err)
	}
	return nil
}

func (s *RequestService) SubmitProposal(ctx context.Context, professionalID, serviceID uuid.UUID, form forms.ProposalForm) (*models.ServiceProposal, error) {
	pro, err := s.Profiles.Get(ctx, professionalID)
	if err != nil {
		return nil, err
	}
	if pro.UserType != models.UserTypeProfessional {
		return nil, ErrNotProfessional
	}

	p, errs := form.Normalize()
	if len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}

	r, err := s.Requests.Get(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	if r.Status != models.StatusPending {
		return nil, ErrNotOpen
	}

	p.ServiceID = serviceID
	p.ProfessionalID = professionalID
	if err := s.Proposals.Create(ctx, &p); err != nil {
		return nil, fmt.Errorf("submit proposal: %w", err)
	}

	s.Notifier.Notify(ctx, r.ClientID, NoticeProposalReceived,
		fmt.Sprintf("Nova proposta recebida para: %s", r.Title))
	return &p, nil
}

func (s *RequestService) ListProposals(ctx context.Context, actorID, serviceID uuid.UUID) ([]models.ServiceProposal, error) {
	if _, err := s.owned(ctx, actorID, serviceID); err != nil {
		return nil, err
	}
	return s.Proposals.ListByService(ctx, serviceID)
}

// AcceptProposal moves the proposal and its request to in_progress.
func (s *RequestService) AcceptProposal(ctx context.Context, actorID, proposalID uuid.UUID) (*models.ServiceProposal, error) {
	p, err := s.Proposals.Get(ctx, proposalID)
	if err != nil {
		return nil, err
	}
	r, err := s.owned(ctx, actorID, p.ServiceID)
	if err != nil {
		return nil, err
	}
	if r.Status != models.StatusPending {
		return nil, ErrNotOpen
	}

	if err := s.Proposals.UpdateStatus(ctx, p.ID, models.StatusInProgress); err != nil {
		return nil, err
	}
	if err := s.Requests.UpdateStatus(ctx, r.ID, models.StatusInProgress); err != nil {
		return nil, err
	}
	p.Status = models.StatusInProgress

	s.Notifier.Notify(ctx, p.ProfessionalID, NoticeProposalAccepted,
		fmt.Sprintf("Sua proposta para %s foi aceita", r.Title))
	return p, nil
}
