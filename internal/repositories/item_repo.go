package repositories

import (
	"northlink/internal/models"
)

// ItemRepository defines the interface for item data access.
type ItemRepository interface {
	// GetByList returns a list's items in canonical order: created_at ascending.
	GetByList(listID string) ([]models.Item, error)
	GetByID(id string) (*models.Item, error)
	Create(item *models.Item) error
	// Update saves all fields, including cleared purchase fields, so a
	// purchase/unpurchase lands atomically in one write.
	Update(item *models.Item) error
	Delete(id string) error

	// GetPurchasedBy returns the "purchased items" projection for a user:
	// every item they purchased, joined to list and owner metadata.
	GetPurchasedBy(userID string) ([]models.PurchasedItem, error)
}
