package models

import "time"

// Item represents a single wishable product entry belonging to a list.
// Purchase fields travel together: purchased is true iff purchased_by and
// purchased_at are both set, and unpurchasing clears all three.
type Item struct {
	ID          string     `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	ListID      string     `json:"list_id" gorm:"index;type:varchar(36)" validate:"required"`
	Title       string     `json:"title" validate:"required,min=1,max=200"`
	PriceCents  *int64     `json:"price_cents"`
	Link        *string    `json:"link"`
	Notes       *string    `json:"notes"`
	Purchased   bool       `json:"purchased"`
	PurchasedBy *string    `json:"purchased_by,omitempty" gorm:"type:varchar(36)"`
	PurchasedAt *time.Time `json:"purchased_at,omitempty"`
	MostWanted  bool       `json:"most_wanted"`
	OnSale      bool       `json:"on_sale"`
	CreatedAt   time.Time  `json:"created_at"`
}

// PurchasedItem is the "purchased items" projection: an item the caller has
// purchased, joined with its list and owner metadata.
type PurchasedItem struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	PriceCents    *int64  `json:"price_cents"`
	Link          *string `json:"link"`
	Notes         *string `json:"notes"`
	ListID        string  `json:"list_id"`
	ListTitle     string  `json:"list_title"`
	ListOwnerName string  `json:"list_owner_name"`
}
