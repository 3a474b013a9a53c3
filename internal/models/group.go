package models

import "time"

// Group represents a family group. The group's ID doubles as its invite code.
type Group struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name      string    `json:"name" validate:"required,min=1,max=100"`
	CreatedAt time.Time `json:"created_at"`
}

// InviteCode returns the code members use to join the group.
func (g *Group) InviteCode() string {
	return g.ID
}

// Membership links a user to a group. A user holds at most one membership.
type Membership struct {
	ID       string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	GroupID  string    `json:"group_id" gorm:"index;type:varchar(36)" validate:"required"`
	UserID   string    `json:"user_id" gorm:"uniqueIndex;type:varchar(36)" validate:"required"`
	Role     string    `json:"role" gorm:"type:varchar(20)"`
	JoinedAt time.Time `json:"joined_at"`
}
