package repositories

import (
	"time"

	"northlink/internal/models"
)

// ListRepository defines the interface for list and share data access.
type ListRepository interface {
	GetByOwner(ownerUserID string) ([]models.List, error)
	GetByID(id string) (*models.List, error)
	Create(list *models.List) error
	UpdateTitle(id, title string) error
	// UpdateLastViewed advances last_viewed_at, scoped to the owner and only
	// ever forward in time. A no-op match is not an error.
	UpdateLastViewed(id, ownerUserID string, at time.Time) error
	Delete(id string) error

	// GetAccessible returns every list the user may see: their own plus any
	// list shared to the given group, owner profile joined in. Callers dedupe.
	GetAccessible(userID, groupID string) ([]models.AccessibleList, error)

	CreateShare(share *models.Share) error
	DeleteShare(listID, groupID string) error
	GetShare(listID, groupID string) (*models.Share, error)
}
