package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ServiceRequest struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	Title       string       `gorm:"type:varchar(160);not null" json:"title"`
	Description string       `gorm:"type:text;not null" json:"description"`
	Category    Category     `gorm:"type:varchar(60);not null;index" json:"category"`
	Budget      Money        `gorm:"not null" json:"budget"` // centavos
	Location    City         `gorm:"type:varchar(60);not null" json:"location"`
	Type        DeliveryType `gorm:"type:varchar(20);not null;default:'presencial'" json:"type"`

	DeliveryDate *datatypes.Date `json:"delivery_date"`

	Status   Status    `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	ClientID uuid.UUID `gorm:"type:uuid;not null;index" json:"client_id"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Client *UserProfile `gorm:"foreignKey:ClientID" json:"client,omitempty"`
}

func (r *ServiceRequest) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.Status == "" {
		r.Status = StatusPending
	}
	return
}

// OwnedBy reports whether userID may mutate or delete the request.
func (r *ServiceRequest) OwnedBy(userID uuid.UUID) bool {
	return userID != uuid.Nil && r.ClientID == userID
}
