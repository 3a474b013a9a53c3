package repositories

import (
	"fmt"

	"northlink/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMItemRepository is a GORM implementation of ItemRepository.
type GORMItemRepository struct {
	db *gorm.DB
}

// NewGORMItemRepository creates a new instance of GORMItemRepository.
func NewGORMItemRepository(db *gorm.DB) *GORMItemRepository {
	return &GORMItemRepository{
		db: db,
	}
}

// GetByList retrieves a list's items ordered by creation time ascending.
func (r *GORMItemRepository) GetByList(listID string) ([]models.Item, error) {
	var items []models.Item
	if err := r.db.Where("list_id = ?", listID).Order("created_at ASC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to get items for list %s: %w", listID, err)
	}
	return items, nil
}

// GetByID retrieves a single item by its ID from the database.
func (r *GORMItemRepository) GetByID(id string) (*models.Item, error) {
	var item models.Item
	if err := r.db.First(&item, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("item with ID %s not found", id)
		}
		return nil, fmt.Errorf("failed to get item by ID %s: %w", id, err)
	}
	return &item, nil
}

// Create creates a new item in the database.
func (r *GORMItemRepository) Create(item *models.Item) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if err := r.db.Create(item).Error; err != nil {
		return fmt.Errorf("failed to create item: %w", err)
	}
	return nil
}

// Update updates an existing item in the database.
func (r *GORMItemRepository) Update(item *models.Item) error {
	res := r.db.Save(item) // Save writes all fields, including cleared purchase fields
	if res.Error != nil {
		return fmt.Errorf("failed to update item: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("item with ID %s not found for update", item.ID)
	}
	return nil
}

// Delete deletes an item by its ID from the database.
func (r *GORMItemRepository) Delete(id string) error {
	res := r.db.Delete(&models.Item{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete item: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("item with ID %s not found for deletion", id)
	}
	return nil
}

// GetPurchasedBy retrieves items purchased by a user, joined with list and
// owner metadata.
func (r *GORMItemRepository) GetPurchasedBy(userID string) ([]models.PurchasedItem, error) {
	var rows []models.PurchasedItem
	err := r.db.Table("items").
		Select("items.id, items.title, items.price_cents, items.link, items.notes, items.list_id, "+
			"lists.title AS list_title, COALESCE(profiles.display_name, '') AS list_owner_name").
		Joins("INNER JOIN lists ON lists.id = items.list_id").
		Joins("LEFT JOIN profiles ON profiles.id = lists.owner_user_id").
		Where("items.purchased_by = ?", userID).
		Order("items.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get purchased items for user %s: %w", userID, err)
	}
	return rows, nil
}
