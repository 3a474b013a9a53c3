package services

import (
	"fmt"
	"log"
	"strings"
	"time"

	"northlink/internal/access"
	"northlink/internal/models"
	"northlink/internal/repositories"
	"northlink/pkg/realtime"
)

// ChangePublisher pushes change-feed events after successful writes. A nil
// publisher disables the feed (tests, broker-less runs).
type ChangePublisher interface {
	PublishChange(ev realtime.ChangeEvent) error
}

// ListDetail is a list plus its items as one view. Items may be present
// while ItemsError is set: a failed items fetch degrades the view instead of
// failing it.
type ListDetail struct {
	List         *models.List  `json:"list"`
	Items        []models.Item `json:"items"`
	NewPurchases int           `json:"new_purchases"`
	IsOwner      bool          `json:"is_owner"`
	ItemsError   string        `json:"items_error,omitempty"`
}

// ListService handles business logic for lists and shares.
type ListService struct {
	listRepo  repositories.ListRepository
	itemRepo  repositories.ItemRepository
	groupRepo repositories.GroupRepository
	publisher ChangePublisher
}

// NewListService creates a new ListService.
func NewListService(listRepo repositories.ListRepository, itemRepo repositories.ItemRepository, groupRepo repositories.GroupRepository, publisher ChangePublisher) *ListService {
	return &ListService{
		listRepo:  listRepo,
		itemRepo:  itemRepo,
		groupRepo: groupRepo,
		publisher: publisher,
	}
}

// CreateList creates a list owned by the caller.
func (s *ListService) CreateList(callerID, title string) (*models.List, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("title is required")
	}
	list := &models.List{
		Title:       title,
		OwnerUserID: callerID,
	}
	if err := s.listRepo.Create(list); err != nil {
		return nil, err
	}
	s.publish(realtime.EventInsert, list.ID)
	return list, nil
}

// RenameList updates a list's title; owner only.
func (s *ListService) RenameList(listID, callerID, newTitle string) error {
	newTitle = strings.TrimSpace(newTitle)
	if newTitle == "" {
		return fmt.Errorf("title cannot be empty")
	}
	list, err := s.listRepo.GetByID(listID)
	if err != nil {
		return err
	}
	if !access.CanEditList(callerID, list) {
		return fmt.Errorf("list with ID %s not found", listID)
	}
	if err := s.listRepo.UpdateTitle(listID, newTitle); err != nil {
		return err
	}
	s.publish(realtime.EventUpdate, listID)
	return nil
}

// DeleteList removes a list with its items and shares; owner only.
func (s *ListService) DeleteList(listID, callerID string) error {
	list, err := s.listRepo.GetByID(listID)
	if err != nil {
		return err
	}
	if !access.CanEditList(callerID, list) {
		return fmt.Errorf("list with ID %s not found", listID)
	}
	if err := s.listRepo.Delete(listID); err != nil {
		return err
	}
	s.publish(realtime.EventDelete, listID)
	return nil
}

// OwnLists returns the caller's own lists, newest first.
func (s *ListService) OwnLists(callerID string) ([]models.List, error) {
	return s.listRepo.GetByOwner(callerID)
}

// SharedWithMe returns lists shared to the caller's group, own lists
// excluded and duplicates collapsed.
func (s *ListService) SharedWithMe(callerID string) ([]models.AccessibleList, error) {
	rows, err := s.accessibleRows(callerID)
	if err != nil {
		return nil, err
	}
	return access.SharedWithMe(rows, callerID), nil
}

// GetListDetail returns a list and its items for the caller, or not-found
// when the list is invisible to them.
//
// Owner reads carry side effects: the new-purchase count is computed against
// last_viewed_at, the view timestamp is advanced (best effort), and purchase
// state is redacted from the returned items so the owner's client never
// receives who bought what. The aggregate count is the one sanctioned leak.
func (s *ListService) GetListDetail(listID, callerID string) (*ListDetail, error) {
	list, err := s.listRepo.GetByID(listID)
	if err != nil {
		return nil, err
	}

	isOwner := access.CanEditList(callerID, list)
	if !isOwner && !s.sharedToCallerGroup(listID, callerID) {
		// Deny reads as not-found rather than revealing the list exists.
		return nil, fmt.Errorf("list with ID %s not found", listID)
	}

	detail := &ListDetail{List: list, IsOwner: isOwner}
	items, itemsErr := s.itemRepo.GetByList(listID)
	if itemsErr != nil {
		// Partial degradation: keep the list, surface the items failure.
		detail.Items = []models.Item{}
		detail.ItemsError = itemsErr.Error()
	} else {
		detail.Items = items
	}

	if isOwner {
		detail.NewPurchases = NewPurchaseCount(detail.Items, list.LastViewedAt)
		if err := s.listRepo.UpdateLastViewed(listID, callerID, time.Now()); err != nil {
			// Best effort; the banner just reappears next visit.
			log.Printf("Failed to update last_viewed_at for list %s: %v", listID, err)
		}
		detail.Items = RedactPurchases(detail.Items)
	}
	return detail, nil
}

// ShareToGroup shares the caller's list with their family group.
func (s *ListService) ShareToGroup(listID, callerID string) error {
	list, err := s.listRepo.GetByID(listID)
	if err != nil {
		return err
	}
	membership, _ := s.groupRepo.GetMembershipByUser(callerID)
	if !access.CanShareList(callerID, list, membership) {
		return fmt.Errorf("list with ID %s cannot be shared", listID)
	}
	if existing, err := s.listRepo.GetShare(listID, membership.GroupID); err == nil && existing != nil {
		return nil // already shared
	}
	share := &models.Share{ListID: listID, GroupID: membership.GroupID}
	if err := s.listRepo.CreateShare(share); err != nil {
		return err
	}
	s.publish(realtime.EventUpdate, listID)
	return nil
}

// UnshareFromGroup revokes the share of the caller's list to their group.
func (s *ListService) UnshareFromGroup(listID, callerID string) error {
	list, err := s.listRepo.GetByID(listID)
	if err != nil {
		return err
	}
	membership, _ := s.groupRepo.GetMembershipByUser(callerID)
	if !access.CanShareList(callerID, list, membership) {
		return fmt.Errorf("list with ID %s cannot be unshared", listID)
	}
	if err := s.listRepo.DeleteShare(listID, membership.GroupID); err != nil {
		return err
	}
	s.publish(realtime.EventUpdate, listID)
	return nil
}

// IsShared reports whether the caller's list is currently shared to their group.
func (s *ListService) IsShared(listID, callerID string) bool {
	membership, _ := s.groupRepo.GetMembershipByUser(callerID)
	if membership == nil {
		return false
	}
	share, err := s.listRepo.GetShare(listID, membership.GroupID)
	return err == nil && share != nil
}

// RedactPurchases strips purchase state from items headed to a list's owner.
// Client-side hiding of already-delivered rows is not confidentiality, so
// the redaction happens here.
func RedactPurchases(items []models.Item) []models.Item {
	out := make([]models.Item, len(items))
	copy(out, items)
	for i := range out {
		out[i].Purchased = false
		out[i].PurchasedBy = nil
		out[i].PurchasedAt = nil
	}
	return out
}

func (s *ListService) accessibleRows(callerID string) ([]models.AccessibleList, error) {
	groupID := ""
	if m, err := s.groupRepo.GetMembershipByUser(callerID); err == nil && m != nil {
		groupID = m.GroupID
	}
	return s.listRepo.GetAccessible(callerID, groupID)
}

func (s *ListService) sharedToCallerGroup(listID, callerID string) bool {
	m, err := s.groupRepo.GetMembershipByUser(callerID)
	if err != nil || m == nil {
		return false
	}
	share, err := s.listRepo.GetShare(listID, m.GroupID)
	return err == nil && share != nil
}

func (s *ListService) publish(kind realtime.EventKind, listID string) {
	if s.publisher == nil {
		return
	}
	ev := realtime.ChangeEvent{Table: "lists", Kind: kind, RowID: listID}
	if err := s.publisher.PublishChange(ev); err != nil {
		log.Printf("Failed to publish list change event: %v", err)
	}
}
