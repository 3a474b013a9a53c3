package services

import (
	"fmt"
	"log"
	"strings"
	"time"

	"northlink/internal/access"
	"northlink/internal/models"
	"northlink/internal/repositories"
	"northlink/pkg/format"
	"northlink/pkg/realtime"
)

// AddItemInput carries the raw user-entered fields for a new item. Price and
// link arrive in UI form ("24.99", "amazon.com/x") and are normalized here.
type AddItemInput struct {
	Title string `json:"title" validate:"required"`
	Price string `json:"price"`
	Link  string `json:"link"`
	Notes string `json:"notes"`
}

// ItemPatch is a partial metadata update. Nil fields are untouched; Price
// and Link accept UI form like AddItemInput. Purchase state is never patched
// here — TogglePurchased owns those fields.
type ItemPatch struct {
	Title      *string `json:"title"`
	Price      *string `json:"price"`
	Link       *string `json:"link"`
	Notes      *string `json:"notes"`
	MostWanted *bool   `json:"most_wanted"`
	OnSale     *bool   `json:"on_sale"`
}

// ItemService handles business logic related to wish list items.
type ItemService struct {
	itemRepo  repositories.ItemRepository
	listRepo  repositories.ListRepository
	groupRepo repositories.GroupRepository
	publisher ChangePublisher
}

// NewItemService creates a new ItemService.
func NewItemService(itemRepo repositories.ItemRepository, listRepo repositories.ListRepository, groupRepo repositories.GroupRepository, publisher ChangePublisher) *ItemService {
	return &ItemService{
		itemRepo:  itemRepo,
		listRepo:  listRepo,
		groupRepo: groupRepo,
		publisher: publisher,
	}
}

// AddItem creates an item on the caller's own list.
func (s *ItemService) AddItem(callerID, listID string, input AddItemInput) (*models.Item, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, fmt.Errorf("item title is required")
	}
	list, err := s.listRepo.GetByID(listID)
	if err != nil {
		return nil, err
	}
	if !access.CanAddItem(callerID, list) {
		return nil, fmt.Errorf("list with ID %s not found", listID)
	}

	item := &models.Item{
		ListID:     listID,
		Title:      title,
		PriceCents: format.ToCents(input.Price),
		Link:       format.NormalizeURL(input.Link),
		Notes:      trimToNil(input.Notes),
	}
	if err := s.itemRepo.Create(item); err != nil {
		return nil, err
	}
	s.publish(realtime.EventInsert, item)
	return item, nil
}

// UpdateItem applies a metadata patch to an item on the caller's own list.
func (s *ItemService) UpdateItem(callerID, itemID string, patch ItemPatch) (*models.Item, error) {
	item, err := s.itemRepo.GetByID(itemID)
	if err != nil {
		return nil, err
	}
	list, err := s.listRepo.GetByID(item.ListID)
	if err != nil {
		return nil, err
	}
	if !access.CanMutateItemMetadata(callerID, list) {
		return nil, fmt.Errorf("item with ID %s not found", itemID)
	}

	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return nil, fmt.Errorf("item title cannot be empty")
		}
		item.Title = title
	}
	if patch.Price != nil {
		item.PriceCents = format.ToCents(*patch.Price)
	}
	if patch.Link != nil {
		item.Link = format.NormalizeURL(*patch.Link)
	}
	if patch.Notes != nil {
		item.Notes = trimToNil(*patch.Notes)
	}
	if patch.MostWanted != nil {
		item.MostWanted = *patch.MostWanted
	}
	if patch.OnSale != nil {
		item.OnSale = *patch.OnSale
	}

	if err := s.itemRepo.Update(item); err != nil {
		return nil, err
	}
	s.publish(realtime.EventUpdate, item)
	return item, nil
}

// TogglePurchased marks an item purchased or not on behalf of the caller.
// Any user who can see the list may toggle. The three purchase fields are
// written together in one update: set on purchase, all cleared on unpurchase.
func (s *ItemService) TogglePurchased(callerID, itemID string, next bool) (*models.Item, error) {
	item, err := s.itemRepo.GetByID(itemID)
	if err != nil {
		return nil, err
	}
	list, err := s.listRepo.GetByID(item.ListID)
	if err != nil {
		return nil, err
	}
	if !access.CanTogglePurchased(callerID, list, s.canSee(callerID, list)) {
		return nil, fmt.Errorf("item with ID %s not found", itemID)
	}

	if next {
		now := time.Now()
		item.Purchased = true
		item.PurchasedBy = &callerID
		item.PurchasedAt = &now
	} else {
		item.Purchased = false
		item.PurchasedBy = nil
		item.PurchasedAt = nil
	}
	if err := s.itemRepo.Update(item); err != nil {
		return nil, err
	}
	s.publish(realtime.EventUpdate, item)
	return item, nil
}

// DeleteItem removes an item from the caller's own list.
func (s *ItemService) DeleteItem(callerID, itemID string) error {
	item, err := s.itemRepo.GetByID(itemID)
	if err != nil {
		return err
	}
	list, err := s.listRepo.GetByID(item.ListID)
	if err != nil {
		return err
	}
	if !access.CanMutateItemMetadata(callerID, list) {
		return fmt.Errorf("item with ID %s not found", itemID)
	}
	if err := s.itemRepo.Delete(itemID); err != nil {
		return err
	}
	s.publish(realtime.EventDelete, item)
	return nil
}

// PurchasedItems returns everything the caller has purchased across lists.
func (s *ItemService) PurchasedItems(callerID string) ([]models.PurchasedItem, error) {
	return s.itemRepo.GetPurchasedBy(callerID)
}

// GetProgress returns the purchase progress for a list visible to the caller.
func (s *ItemService) GetProgress(callerID, listID string) (Progress, error) {
	list, err := s.listRepo.GetByID(listID)
	if err != nil {
		return Progress{}, err
	}
	if !access.CanEditList(callerID, list) && !s.canSee(callerID, list) {
		return Progress{}, fmt.Errorf("list with ID %s not found", listID)
	}
	items, err := s.itemRepo.GetByList(listID)
	if err != nil {
		return Progress{}, err
	}
	return ListProgress(items), nil
}

func (s *ItemService) canSee(callerID string, list *models.List) bool {
	if access.CanEditList(callerID, list) {
		return true
	}
	m, err := s.groupRepo.GetMembershipByUser(callerID)
	if err != nil || m == nil {
		return false
	}
	share, err := s.listRepo.GetShare(list.ID, m.GroupID)
	return err == nil && share != nil
}

func (s *ItemService) publish(kind realtime.EventKind, item *models.Item) {
	if s.publisher == nil {
		return
	}
	ev := realtime.ChangeEvent{Table: "items", Kind: kind, RowID: item.ID, ListID: item.ListID}
	if err := s.publisher.PublishChange(ev); err != nil {
		log.Printf("Failed to publish item change event: %v", err)
	}
}

func trimToNil(v string) *string {
	t := strings.TrimSpace(v)
	if t == "" {
		return nil
	}
	return &t
}
