package repositories

import (
	"fmt"
	"time"

	"northlink/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMListRepository is a GORM implementation of ListRepository.
type GORMListRepository struct {
	db *gorm.DB
}

// NewGORMListRepository creates a new instance of GORMListRepository.
func NewGORMListRepository(db *gorm.DB) *GORMListRepository {
	return &GORMListRepository{
		db: db,
	}
}

// GetByOwner retrieves all lists owned by a user, newest first.
func (r *GORMListRepository) GetByOwner(ownerUserID string) ([]models.List, error) {
	var lists []models.List
	if err := r.db.Where("owner_user_id = ?", ownerUserID).Order("created_at DESC").Find(&lists).Error; err != nil {
		return nil, fmt.Errorf("failed to get lists for owner %s: %w", ownerUserID, err)
	}
	return lists, nil
}

// GetByID retrieves a single list by its ID from the database.
func (r *GORMListRepository) GetByID(id string) (*models.List, error) {
	var list models.List
	if err := r.db.First(&list, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("list with ID %s not found", id)
		}
		return nil, fmt.Errorf("failed to get list by ID %s: %w", id, err)
	}
	return &list, nil
}

// Create creates a new list in the database.
func (r *GORMListRepository) Create(list *models.List) error {
	if list.ID == "" {
		list.ID = uuid.New().String()
	}
	if err := r.db.Create(list).Error; err != nil {
		return fmt.Errorf("failed to create list: %w", err)
	}
	return nil
}

// UpdateTitle renames a list.
func (r *GORMListRepository) UpdateTitle(id, title string) error {
	res := r.db.Model(&models.List{}).Where("id = ?", id).Update("title", title)
	if res.Error != nil {
		return fmt.Errorf("failed to update list title: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("list with ID %s not found for update", id)
	}
	return nil
}

// UpdateLastViewed advances last_viewed_at for the owner's own view. The
// WHERE clause keeps the timestamp monotonically non-decreasing.
func (r *GORMListRepository) UpdateLastViewed(id, ownerUserID string, at time.Time) error {
	res := r.db.Model(&models.List{}).
		Where("id = ? AND owner_user_id = ?", id, ownerUserID).
		Where("last_viewed_at IS NULL OR last_viewed_at < ?", at).
		Update("last_viewed_at", at)
	if res.Error != nil {
		return fmt.Errorf("failed to update last_viewed_at for list %s: %w", id, res.Error)
	}
	return nil
}

// Delete deletes a list and its items and shares.
func (r *GORMListRepository) Delete(id string) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Item{}, "list_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Share{}, "list_id = ?", id).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.List{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("list with ID %s not found for deletion", id)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete list: %w", err)
	}
	return nil
}

// GetAccessible returns lists owned by the user or shared to their group,
// with the owner's profile joined in. Rows may repeat when a list is shared
// to several of the caller's groups; deduplication is a caller concern.
func (r *GORMListRepository) GetAccessible(userID, groupID string) ([]models.AccessibleList, error) {
	var rows []models.AccessibleList
	q := r.db.Table("lists").
		Select("lists.id, lists.title, lists.owner_user_id, lists.created_at, " +
			"COALESCE(profiles.display_name, '') AS owner_display_name, " +
			"COALESCE(profiles.avatar_url, '') AS owner_avatar_url").
		Joins("LEFT JOIN profiles ON profiles.id = lists.owner_user_id").
		Joins("LEFT JOIN shares ON shares.list_id = lists.id").
		Order("lists.created_at DESC")
	if groupID != "" {
		q = q.Where("lists.owner_user_id = ? OR shares.group_id = ?", userID, groupID)
	} else {
		q = q.Where("lists.owner_user_id = ?", userID)
	}
	if err := q.Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to get accessible lists for user %s: %w", userID, err)
	}
	return rows, nil
}

// CreateShare shares a list to a group.
func (r *GORMListRepository) CreateShare(share *models.Share) error {
	if share.ID == "" {
		share.ID = uuid.New().String()
	}
	if err := r.db.Create(share).Error; err != nil {
		return fmt.Errorf("failed to create share: %w", err)
	}
	return nil
}

// DeleteShare removes a list's share to a group.
func (r *GORMListRepository) DeleteShare(listID, groupID string) error {
	res := r.db.Delete(&models.Share{}, "list_id = ? AND group_id = ?", listID, groupID)
	if res.Error != nil {
		return fmt.Errorf("failed to delete share: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("share for list %s and group %s not found for deletion", listID, groupID)
	}
	return nil
}

// GetShare retrieves the share row for a list and group, if any.
func (r *GORMListRepository) GetShare(listID, groupID string) (*models.Share, error) {
	var share models.Share
	if err := r.db.First(&share, "list_id = ? AND group_id = ?", listID, groupID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("share for list %s and group %s not found", listID, groupID)
		}
		return nil, fmt.Errorf("failed to get share for list %s: %w", listID, err)
	}
	return &share, nil
}
