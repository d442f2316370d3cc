package models

import "time"

// User represents an end-user account held for the lifetime of the process.
type User struct {
	ID string `gorm:"type:text;primaryKey"` // Opaque user identifier.

	Email    string `gorm:"type:text;not null;uniqueIndex"` // Unique login email.
	Name     string `gorm:"type:text;not null"`             // Display name.
	Password string `gorm:"type:text;not null"`             // Hashed password; never verified on login.

	Plan string `gorm:"type:text;not null"` // Active plan id from the catalog.

	CreatedAt time.Time `gorm:"not null;autoCreateTime"` // Creation timestamp.
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"` // Last update timestamp.
}
