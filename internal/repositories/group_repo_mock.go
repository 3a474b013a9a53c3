package repositories

import (
	"fmt"
	"sync"
	"time"

	"northlink/internal/models"

	"github.com/google/uuid"
)

// MockGroupRepository is an in-memory implementation of GroupRepository.
type MockGroupRepository struct {
	groups      map[string]models.Group
	memberships map[string]models.Membership // keyed by user ID
	mu          sync.RWMutex
}

// NewMockGroupRepository creates a new instance of MockGroupRepository.
func NewMockGroupRepository() *MockGroupRepository {
	return &MockGroupRepository{
		groups:      make(map[string]models.Group),
		memberships: make(map[string]models.Membership),
	}
}

// Create adds a new group.
func (r *MockGroupRepository) Create(group *models.Group) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if group.ID == "" {
		group.ID = uuid.New().String()
	}
	if group.CreatedAt.IsZero() {
		group.CreatedAt = time.Now()
	}
	r.groups[group.ID] = *group
	return nil
}

// GetByID returns a group by its ID.
func (r *MockGroupRepository) GetByID(id string) (*models.Group, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	group, ok := r.groups[id]
	if !ok {
		return nil, fmt.Errorf("group with ID %s not found", id)
	}
	return &group, nil
}

// GetByName returns a group by its name.
func (r *MockGroupRepository) GetByName(name string) (*models.Group, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, g := range r.groups {
		if g.Name == name {
			group := g
			return &group, nil
		}
	}
	return nil, fmt.Errorf("group with name %s not found", name)
}

// CreateMembership links a user to a group.
func (r *MockGroupRepository) CreateMembership(m *models.Membership) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	if m.JoinedAt.IsZero() {
		m.JoinedAt = time.Now()
	}
	if _, ok := r.memberships[m.UserID]; ok {
		return fmt.Errorf("membership for user %s already exists", m.UserID)
	}
	r.memberships[m.UserID] = *m
	return nil
}

// GetMembershipByUser returns the user's membership row.
func (r *MockGroupRepository) GetMembershipByUser(userID string) (*models.Membership, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.memberships[userID]
	if !ok {
		return nil, fmt.Errorf("membership for user %s not found", userID)
	}
	return &m, nil
}

// DeleteMembership removes a user's membership.
func (r *MockGroupRepository) DeleteMembership(userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.memberships[userID]; !ok {
		return fmt.Errorf("membership for user %s not found for deletion", userID)
	}
	delete(r.memberships, userID)
	return nil
}
