package repositories

import (
	"northlink/internal/models"
)

// GroupRepository defines the interface for group and membership data access.
type GroupRepository interface {
	Create(group *models.Group) error
	GetByID(id string) (*models.Group, error)
	GetByName(name string) (*models.Group, error)

	CreateMembership(m *models.Membership) error
	// GetMembershipByUser returns the user's single membership, or a not
	// found error. Lookups take the first row; a user holds at most one.
	GetMembershipByUser(userID string) (*models.Membership, error)
	DeleteMembership(userID string) error
}
