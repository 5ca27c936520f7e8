package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ServiceProposal is a professional's bid on a ServiceRequest. The foreign key
// has no ON DELETE CASCADE: proposals must be removed before their request.
type ServiceProposal struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ServiceID      uuid.UUID `gorm:"type:uuid;not null;index" json:"service_id"`
	ProfessionalID uuid.UUID `gorm:"type:uuid;not null;index" json:"professional_id"`

	Price        Money  `gorm:"not null" json:"price"`
	DeliveryTime string `gorm:"type:varchar(60);not null" json:"delivery_time"`
	Message      string `gorm:"type:text" json:"message"`

	Status Status `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Service      *ServiceRequest `gorm:"foreignKey:ServiceID;constraint:OnDelete:RESTRICT" json:"service,omitempty"`
	Professional *UserProfile    `gorm:"foreignKey:ProfessionalID" json:"professional,omitempty"`
}

func (p *ServiceProposal) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Status == "" {
		p.Status = StatusPending
	}
	return
}
