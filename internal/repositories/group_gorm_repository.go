package repositories

import (
	"fmt"
	"time"

	"northlink/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMGroupRepository is a GORM implementation of GroupRepository.
type GORMGroupRepository struct {
	db *gorm.DB
}

// NewGORMGroupRepository creates a new instance of GORMGroupRepository.
func NewGORMGroupRepository(db *gorm.DB) *GORMGroupRepository {
	return &GORMGroupRepository{
		db: db,
	}
}

// Create creates a new group in the database.
func (r *GORMGroupRepository) Create(group *models.Group) error {
	if group.ID == "" {
		group.ID = uuid.New().String()
	}
	if err := r.db.Create(group).Error; err != nil {
		return fmt.Errorf("failed to create group: %w", err)
	}
	return nil
}

// GetByID retrieves a group by its ID (which is also its invite code).
func (r *GORMGroupRepository) GetByID(id string) (*models.Group, error) {
	var group models.Group
	if err := r.db.First(&group, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("group with ID %s not found", id)
		}
		return nil, fmt.Errorf("failed to get group by ID %s: %w", id, err)
	}
	return &group, nil
}

// GetByName retrieves a group by its name.
func (r *GORMGroupRepository) GetByName(name string) (*models.Group, error) {
	var group models.Group
	if err := r.db.First(&group, "name = ?", name).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("group with name %s not found", name)
		}
		return nil, fmt.Errorf("failed to get group by name %s: %w", name, err)
	}
	return &group, nil
}

// CreateMembership links a user to a group.
func (r *GORMGroupRepository) CreateMembership(m *models.Membership) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	if m.JoinedAt.IsZero() {
		m.JoinedAt = time.Now()
	}
	if err := r.db.Create(m).Error; err != nil {
		return fmt.Errorf("failed to create membership: %w", err)
	}
	return nil
}

// GetMembershipByUser retrieves the user's membership row.
func (r *GORMGroupRepository) GetMembershipByUser(userID string) (*models.Membership, error) {
	var m models.Membership
	if err := r.db.First(&m, "user_id = ?", userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("membership for user %s not found", userID)
		}
		return nil, fmt.Errorf("failed to get membership for user %s: %w", userID, err)
	}
	return &m, nil
}

// DeleteMembership removes a user's membership.
func (r *GORMGroupRepository) DeleteMembership(userID string) error {
	res := r.db.Delete(&models.Membership{}, "user_id = ?", userID)
	if res.Error != nil {
		return fmt.Errorf("failed to delete membership: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("membership for user %s not found for deletion", userID)
	}
	return nil
}
