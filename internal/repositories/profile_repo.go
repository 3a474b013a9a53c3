package repositories

import (
	"northlink/internal/models"
)

// ProfileRepository defines the interface for profile data access.
type ProfileRepository interface {
	// Upsert creates the profile or updates it in place, conflict key = id.
	Upsert(profile *models.Profile) error
	GetByID(id string) (*models.Profile, error)
}
