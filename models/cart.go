package models

import "time"

// Cart is keyed by an opaque client-generated session ID. One cart per
// session; items cascade when the cart is swept.
type Cart struct {
	CartID    uint       `gorm:"primaryKey" json:"cart_id"`
	SessionID string     `gorm:"uniqueIndex" json:"session_id"`
	Items     []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type CartItem struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CartID     uint      `gorm:"index" json:"cart_id"`
	ItemID     string    `gorm:"index" json:"item_id"` // caller-side identity for the line
	Title      string    `json:"title"`
	PriceCents int64     `json:"price_cents"`
	Quantity   int       `json:"quantity"`
	AddedAt    time.Time `json:"added_at"`
}
