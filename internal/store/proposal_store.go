package store

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Windi-Fikriyansyah/serviceconnect/internal/models"
)

type ProposalStore interface {
	Create(ctx context.Context, p *models.ServiceProposal) error
	Get(ctx context.Context, id uuid.UUID) (*models.ServiceProposal, error)
	ListByService(ctx context.Context, serviceID uuid.UUID) ([]models.ServiceProposal, error)
	ListIDsByService(ctx context.Context, serviceID uuid.UUID) ([]uuid.UUID, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.Status) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountByProfessional(ctx context.Context, professionalID uuid.UUID) (int64, error)
}

type GormProposalStore struct {
	db *gorm.DB
}

func NewGormProposalStore(db *gorm.DB) *GormProposalStore {
	return &GormProposalStore{db: db}
}

func (s *GormProposalStore) Create(ctx context.Context, p *models.ServiceProposal) error {
	p.Status = models.StatusPending
	return wrap("create proposal", s.db.WithContext(ctx).Create(p).Error)
}

func (s *GormProposalStore) Get(ctx context.Context, id uuid.UUID) (*models.ServiceProposal, error) {
	var p models.ServiceProposal
	if err := s.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, wrap("get proposal", err)
	}
	return &p, nil
}

// ListByService returns the proposals of one request with their authors, newest first.
func (s *GormProposalStore) ListByService(ctx context.Context, serviceID uuid.UUID) ([]models.ServiceProposal, error) {
	var out []models.ServiceProposal
	err := s.db.WithContext(ctx).
		Preload("Professional").
		Where("service_id = ?", serviceID).
		Order("created_at DESC").
		Find(&out).Error
	return out, wrap("list proposals", err)
}

func (s *GormProposalStore) ListIDsByService(ctx context.Context, serviceID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := s.db.WithContext(ctx).
		Model(&models.ServiceProposal{}).
		Where("service_id = ?", serviceID).
		Pluck("id", &ids).Error
	return ids, wrap("list proposal ids", err)
}

func (s *GormProposalStore) UpdateStatus(ctx context.Context, id uuid.UUID, status models.Status) error {
	res := s.db.WithContext(ctx).
		Model(&models.ServiceProposal{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return wrap("update proposal status", res.Error)
	}
	if res.RowsAffected == 0 {
		return wrap("update proposal status", gorm.ErrRecordNotFound)
	}
	return nil
}

func (s *GormProposalStore) Delete(ctx context.Context, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Delete(&models.ServiceProposal{}, "id = ?", id)
	if res.Error != nil {
		return wrap("delete proposal", res.Error)
	}
	if res.RowsAffected == 0 {
		return wrap("delete proposal", gorm.ErrRecordNotFound)
	}
	return nil
}

func (s *GormProposalStore) CountByProfessional(ctx context.Context, professionalID uuid.UUID) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).
		Model(&models.ServiceProposal{}).
		Where("professional_id = ?", professionalID).
		Count(&n).Error
	return n, wrap("count proposals", err)
}
