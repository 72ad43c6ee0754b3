package models

import "time"

type OrderStatus string

const (
	OrderStatusPaid     OrderStatus = "paid"     // Payment confirmed by the provider
	OrderStatusRefunded OrderStatus = "refunded" // Money returned to customer
	OrderStatusFailed   OrderStatus = "failed"   // Payment attempt failed after confirmation
)

// Order is written exclusively by the Stripe webhook handler after payment
// confirmation. The unique index on StripeSessionID makes replayed webhook
// deliveries a no-op instead of a duplicate row.
type Order struct {
	ID               uint        `gorm:"primaryKey" json:"id"`
	OrganizationID   uint        `gorm:"index" json:"organization_id"`
	OrderRef         string      `gorm:"uniqueIndex" json:"order_ref"`
	StripeSessionID  string      `gorm:"uniqueIndex;not null" json:"stripe_session_id"`
	Items            []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	SubtotalCents    int64       `json:"subtotal_cents"`
	PlatformFeeCents int64       `json:"platform_fee_cents"`
	SellerPayoutCents int64      `json:"seller_payout_cents"`
	Currency         string      `gorm:"type:VARCHAR(3)" json:"currency"`
	CustomerEmail    string      `json:"customer_email"`
	Status           OrderStatus `gorm:"type:VARCHAR(20);default:'paid'" json:"status"`
	Demo             bool        `json:"demo"` // demo checkout, no Connect routing
	CreatedAt        time.Time   `json:"created_at"`
}

type OrderItem struct {
	ID               uint   `gorm:"primaryKey" json:"id"`
	OrderID          uint   `gorm:"index" json:"order_id"`
	Description      string `json:"description"`
	AmountTotalCents int64  `json:"amount_total_cents"` // line total as reported by the provider
	Quantity         int    `json:"quantity"`
}
