package store

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Windi-Fikriyansyah/serviceconnect/internal/models"
)

type ProfileStore interface {
	Get(ctx context.Context, id uuid.UUID) (*models.UserProfile, error)
	GetByEmail(ctx context.Context, email string) (*models.UserProfile, error)
	Create(ctx context.Context, p *models.UserProfile) error
	ListProfessionals(ctx context.Context, query string) ([]models.UserProfile, error)
}

type GormProfileStore struct {
	db *gorm.DB
}

func NewGormProfileStore(db *gorm.DB) *GormProfileStore {
	return &GormProfileStore{db: db}
}

func (s *GormProfileStore) Get(ctx context.Context, id uuid.UUID) (*models.UserProfile, error) {
	var p models.UserProfile
	if err := s.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, wrap("get profile", err)
	}
	return &p, nil
}

func (s *GormProfileStore) GetByEmail(ctx context.Context, email string) (*models.UserProfile, error) {
	var p models.UserProfile
	if err := s.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&p).Error; err != nil {
		return nil, wrap("get profile by email", err)
	}
	return &p, nil
}

func (s *GormProfileStore) Create(ctx context.Context, p *models.UserProfile) error {
	return wrap("create profile", s.db.WithContext(ctx).Create(p).Error)
}

// ListProfessionals matches query against name and email, case-insensitive.
func (s *GormProfileStore) ListProfessionals(ctx context.Context, query string) ([]models.UserProfile, error) {
	q := s.db.WithContext(ctx).
		Where("user_type = ?", models.UserTypeProfessional)

	if query = strings.TrimSpace(query); query != "" {
		like := "%" + strings.ToLower(query) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", like, like)
	}

	var out []models.UserProfile
	err := q.Order("name ASC").Find(&out).Error
	return out, wrap("list professionals", err)
}
