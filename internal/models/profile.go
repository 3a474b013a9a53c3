package models

import "time"

// Profile holds a user's display identity, 1:1 with User. It is upserted
// during onboarding.
type Profile struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"required"`
	DisplayName string    `json:"display_name" validate:"omitempty,max=100"`
	AvatarURL   string    `json:"avatar_url" validate:"omitempty,max=500"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// IsComplete reports whether onboarding produced a usable profile.
func (p *Profile) IsComplete() bool {
	return p != nil && p.DisplayName != "" && p.AvatarURL != ""
}
