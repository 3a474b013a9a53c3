package repositories

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"northlink/internal/models"

	"github.com/google/uuid"
)

// MockItemRepository is an in-memory implementation of ItemRepository.
type MockItemRepository struct {
	items map[string]models.Item
	mu    sync.RWMutex
}

// NewMockItemRepository creates a new instance of MockItemRepository.
func NewMockItemRepository() *MockItemRepository {
	return &MockItemRepository{
		items: make(map[string]models.Item),
	}
}

// GetByList returns a list's items ordered by creation time ascending.
func (r *MockItemRepository) GetByList(listID string) ([]models.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Item, 0)
	for _, it := range r.items {
		if it.ListID == listID {
			out = append(out, it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// GetByID returns an item by its ID.
func (r *MockItemRepository) GetByID(id string) (*models.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	if !ok {
		return nil, fmt.Errorf("item with ID %s not found", id)
	}
	return &item, nil
}

// Create adds a new item.
func (r *MockItemRepository) Create(item *models.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now()
	}
	r.items[item.ID] = *item
	return nil
}

// Update modifies an existing item.
func (r *MockItemRepository) Update(item *models.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.items[item.ID]
	if !ok {
		return fmt.Errorf("item with ID %s not found for update", item.ID)
	}
	r.items[item.ID] = *item
	return nil
}

// Delete removes an item by its ID.
func (r *MockItemRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.items[id]
	if !ok {
		return fmt.Errorf("item with ID %s not found for deletion", id)
	}
	delete(r.items, id)
	return nil
}

// GetPurchasedBy returns items purchased by a user. The mock has no list or
// profile tables, so list metadata is left blank.
func (r *MockItemRepository) GetPurchasedBy(userID string) ([]models.PurchasedItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.PurchasedItem, 0)
	for _, it := range r.items {
		if it.PurchasedBy != nil && *it.PurchasedBy == userID {
			out = append(out, models.PurchasedItem{
				ID:         it.ID,
				Title:      it.Title,
				PriceCents: it.PriceCents,
				Link:       it.Link,
				Notes:      it.Notes,
				ListID:     it.ListID,
			})
		}
	}
	return out, nil
}
