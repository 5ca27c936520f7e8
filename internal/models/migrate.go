package models

import "gorm.io/gorm"

// AutoMigrate creates or updates the marketplace tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&UserProfile{},
		&ServiceRequest{},
		&ServiceProposal{},
	)
}
