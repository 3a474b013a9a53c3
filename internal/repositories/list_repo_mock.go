package repositories

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"northlink/internal/models"

	"github.com/google/uuid"
)

// MockListRepository is an in-memory implementation of ListRepository.
type MockListRepository struct {
	lists    map[string]models.List
	shares   map[string]models.Share
	profiles map[string]models.Profile
	mu       sync.RWMutex
}

// NewMockListRepository creates a new instance of MockListRepository.
func NewMockListRepository() *MockListRepository {
	return &MockListRepository{
		lists:    make(map[string]models.List),
		shares:   make(map[string]models.Share),
		profiles: make(map[string]models.Profile),
	}
}

// SeedProfile registers an owner profile used by the accessible-lists join.
func (r *MockListRepository) SeedProfile(p models.Profile) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[p.ID] = p
}

// GetByOwner returns all lists owned by a user, newest first.
func (r *MockListRepository) GetByOwner(ownerUserID string) ([]models.List, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.List, 0)
	for _, l := range r.lists {
		if l.OwnerUserID == ownerUserID {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// GetByID returns a list by its ID.
func (r *MockListRepository) GetByID(id string) (*models.List, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list, ok := r.lists[id]
	if !ok {
		return nil, fmt.Errorf("list with ID %s not found", id)
	}
	return &list, nil
}

// Create adds a new list.
func (r *MockListRepository) Create(list *models.List) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if list.ID == "" {
		list.ID = uuid.New().String()
	}
	if list.CreatedAt.IsZero() {
		list.CreatedAt = time.Now()
	}
	r.lists[list.ID] = *list
	return nil
}

// UpdateTitle renames a list.
func (r *MockListRepository) UpdateTitle(id, title string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	list, ok := r.lists[id]
	if !ok {
		return fmt.Errorf("list with ID %s not found for update", id)
	}
	list.Title = title
	r.lists[id] = list
	return nil
}

// UpdateLastViewed advances last_viewed_at, owner-scoped and monotonic.
func (r *MockListRepository) UpdateLastViewed(id, ownerUserID string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	list, ok := r.lists[id]
	if !ok || list.OwnerUserID != ownerUserID {
		return nil
	}
	if list.LastViewedAt == nil || list.LastViewedAt.Before(at) {
		list.LastViewedAt = &at
		r.lists[id] = list
	}
	return nil
}

// Delete removes a list and its shares.
func (r *MockListRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.lists[id]; !ok {
		return fmt.Errorf("list with ID %s not found for deletion", id)
	}
	delete(r.lists, id)
	for sid, s := range r.shares {
		if s.ListID == id {
			delete(r.shares, sid)
		}
	}
	return nil
}

// GetAccessible returns own lists plus lists shared to the group, with
// possible duplicates, newest first.
func (r *MockListRepository) GetAccessible(userID, groupID string) ([]models.AccessibleList, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.AccessibleList, 0)
	appendRow := func(l models.List) {
		p := r.profiles[l.OwnerUserID]
		out = append(out, models.AccessibleList{
			ID:               l.ID,
			Title:            l.Title,
			OwnerUserID:      l.OwnerUserID,
			OwnerDisplayName: p.DisplayName,
			OwnerAvatarURL:   p.AvatarURL,
			CreatedAt:        l.CreatedAt,
		})
	}
	for _, l := range r.lists {
		if l.OwnerUserID == userID {
			appendRow(l)
			continue
		}
		if groupID == "" {
			continue
		}
		for _, s := range r.shares {
			if s.ListID == l.ID && s.GroupID == groupID {
				appendRow(l)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// CreateShare shares a list to a group.
func (r *MockListRepository) CreateShare(share *models.Share) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if share.ID == "" {
		share.ID = uuid.New().String()
	}
	r.shares[share.ID] = *share
	return nil
}

// DeleteShare removes a list's share to a group.
func (r *MockListRepository) DeleteShare(listID, groupID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for sid, s := range r.shares {
		if s.ListID == listID && s.GroupID == groupID {
			delete(r.shares, sid)
			return nil
		}
	}
	return fmt.Errorf("share for list %s and group %s not found for deletion", listID, groupID)
}

// GetShare returns the share row for a list and group, if any.
func (r *MockListRepository) GetShare(listID, groupID string) (*models.Share, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, s := range r.shares {
		if s.ListID == listID && s.GroupID == groupID {
			share := s
			return &share, nil
		}
	}
	return nil, fmt.Errorf("share for list %s and group %s not found", listID, groupID)
}
