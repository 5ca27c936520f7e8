package store

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Windi-Fikriyansyah/serviceconnect/internal/models"
)

type ServiceRequestStore interface {
	List(ctx context.Context) ([]models.ServiceRequest, error)
	ListLatest(ctx context.Context, limit int) ([]models.ServiceRequest, error)
	ListByClient(ctx context.Context, clientID uuid.UUID) ([]models.ServiceRequest, error)
	Get(ctx context.Context, id uuid.UUID) (*models.ServiceRequest, error)
	Create(ctx context.Context, r *models.ServiceRequest) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.Status) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountOpenByCategory(ctx context.Context) (map[models.Category]int64, error)
}

type GormServiceRequestStore struct {
	db *gorm.DB
}

func NewGormServiceRequestStore(db *gorm.DB) *GormServiceRequestStore {
	return &GormServiceRequestStore{db: db}
}

// List returns every request, newest first.
func (s *GormServiceRequestStore) List(ctx context.Context) ([]models.ServiceRequest, error) {
	var out []models.ServiceRequest
	err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&out).Error
	return out, wrap("list service requests", err)
}

func (s *GormServiceRequestStore) ListLatest(ctx context.Context, limit int) ([]models.ServiceRequest, error) {
	if limit <= 0 {
		limit = 6
	}
	var out []models.ServiceRequest
	err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&out).Error
	return out, wrap("list latest service requests", err)
}

func (s *GormServiceRequestStore) ListByClient(ctx context.Context, clientID uuid.UUID) ([]models.ServiceRequest, error) {
	var out []models.ServiceRequest
	err := s.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("created_at DESC").
		Find(&out).Error
	return out, wrap("list service requests by client", err)
}

// Get preloads the owning profile.
func (s *GormServiceRequestStore) Get(ctx context.Context, id uuid.UUID) (*models.ServiceRequest, error) {
	var r models.ServiceRequest
	if err := s.db.WithContext(ctx).
		Preload("Client").
		First(&r, "id = ?", id).Error; err != nil {
		return nil, wrap("get service request", err)
	}
	return &r, nil
}

// Create always inserts with status pending.
func (s *GormServiceRequestStore) Create(ctx context.Context, r *models.ServiceRequest) error {
	r.Status = models.StatusPending
	return wrap("create service request", s.db.WithContext(ctx).Create(r).Error)
}

func (s *GormServiceRequestStore) UpdateStatus(ctx context.Context, id uuid.UUID, status models.Status) error {
	res := s.db.WithContext(ctx).
		Model(&models.ServiceRequest{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return wrap("update service request status", res.Error)
	}
	if res.RowsAffected == 0 {
		return wrap("update service request status", gorm.ErrRecordNotFound)
	}
	return nil
}

// Delete removes only the request row. Linked proposals must be deleted first;
// the foreign key rejects the delete otherwise.
func (s *GormServiceRequestStore) Delete(ctx context.Context, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Delete(&models.ServiceRequest{}, "id = ?", id)
	if res.Error != nil {
		return wrap("delete service request", res.Error)
	}
	if res.RowsAffected == 0 {
		return wrap("delete service request", gorm.ErrRecordNotFound)
	}
	return nil
}

// CountOpenByCategory counts pending requests per category. Categories with no
// open request are absent from the map.
func (s *GormServiceRequestStore) CountOpenByCategory(ctx context.Context) (map[models.Category]int64, error) {
	var rows []struct {
		Category models.Category
		Total    int64
	}
	err := s.db.WithContext(ctx).
		Model(&models.ServiceRequest{}).
		Select("category, COUNT(*) AS total").
		Where("status = ?", models.StatusPending).
		Group("category").
		Scan(&rows).Error
	if err != nil {
		return nil, wrap("count open service requests", err)
	}

	out := make(map[models.Category]int64, len(rows))
	for _, r := range rows {
		out[r.Category] = r.Total
	}
	return out, nil
}
