package models

import (
	"time"

	"gorm.io/datatypes"
)

// Plan represents a subscription tier in the static catalog.
type Plan struct {
	ID string `gorm:"type:text;primaryKey"` // Catalog identifier (free, pro, team).

	Name     string         `gorm:"type:varchar(255);not null"`       // Display name.
	Price    string         `gorm:"type:varchar(255);not null"`       // Display price.
	Features datatypes.JSON `gorm:"type:jsonb;not null;default:'[]'"` // Feature descriptions.

	SortOrder int `gorm:"not null;default:0"` // Display ordering weight.

	CreatedAt time.Time `gorm:"not null;autoCreateTime"` // Creation timestamp.
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"` // Last update timestamp.
}
