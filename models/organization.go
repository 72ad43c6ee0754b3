package models

import "time"

type SubscriptionStatus string

const (
	// Studio billing statuses, driven by Stripe subscription webhooks
	SubscriptionNone     SubscriptionStatus = "none"
	SubscriptionActive   SubscriptionStatus = "active"
	SubscriptionPastDue  SubscriptionStatus = "past_due"
	SubscriptionCanceled SubscriptionStatus = "canceled"
)

type Organization struct {
	ID                   uint               `gorm:"primaryKey" json:"id"`
	Slug                 string             `gorm:"uniqueIndex;not null" json:"slug"`
	OwnerID              string             `gorm:"uniqueIndex;not null" json:"owner_id"` // Enforces ONE organization per owner
	Name                 string             `json:"name"`
	Vertical             string             `json:"vertical"`
	CustomDomain         string             `json:"custom_domain"`
	StripeAccountID      string             `gorm:"index" json:"stripe_account_id"` // Connect sub-account for payouts
	StripeSubscriptionID string             `gorm:"index" json:"stripe_subscription_id"`
	SubscriptionStatus   SubscriptionStatus `gorm:"type:VARCHAR(20);default:'none'" json:"subscription_status"`
	Published            bool               `json:"published"`
	Slydes               []Slyde            `gorm:"foreignKey:OrganizationID;constraint:OnDelete:CASCADE" json:"slydes,omitempty"`
	CreatedAt            time.Time          `json:"created_at"`
	UpdatedAt            time.Time          `json:"updated_at"`
}
