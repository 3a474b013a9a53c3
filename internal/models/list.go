package models

import "time"

// List represents a wish list owned by a single user.
type List struct {
	ID           string     `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Title        string     `json:"title" validate:"required,min=1,max=200"`
	OwnerUserID  string     `json:"owner_user_id" gorm:"index;type:varchar(36)" validate:"required"`
	LastViewedAt *time.Time `json:"last_viewed_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// Share grants visibility of a list to every member of a group.
type Share struct {
	ID      string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	ListID  string `json:"list_id" gorm:"uniqueIndex:idx_share_list_group;type:varchar(36)" validate:"required"`
	GroupID string `json:"group_id" gorm:"uniqueIndex:idx_share_list_group;type:varchar(36)" validate:"required"`
}

// AccessibleList is the "accessible lists" projection: a list the caller may
// see (own or shared to their group), joined with the owner's profile.
type AccessibleList struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	OwnerUserID      string    `json:"owner_user_id"`
	OwnerDisplayName string    `json:"owner_display_name"`
	OwnerAvatarURL   string    `json:"owner_avatar_url"`
	CreatedAt        time.Time `json:"created_at"`
}
