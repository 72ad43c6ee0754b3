package stripeControllers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	cartControllers "github.com/lostmonster84/slydes-sub006/controllers/cart"
	"github.com/lostmonster84/slydes-sub006/middleware"
	"github.com/lostmonster84/slydes-sub006/models"
	"github.com/lostmonster84/slydes-sub006/services"
	"github.com/lostmonster84/slydes-sub006/utils"
)

type stripeEvent struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Account string `json:"account"` // Connect sub-account the event originated from
	Data    struct {
		Object json.RawMessage `json:"object"`
	} `json:"data"`
}

type checkoutSessionObject struct {
	ID              string `json:"id"`
	AmountTotal     int64  `json:"amount_total"`
	Currency        string `json:"currency"`
	CustomerDetails struct {
		Email string `json:"email"`
	} `json:"customer_details"`
	Metadata map[string]string `json:"metadata"`
}

type subscriptionObject struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// WebhookHandler dispatches verified Stripe events. The signature middleware
// has already rejected anything unsigned; unknown event types are logged and
// acknowledged.
func WebhookHandler(db *gorm.DB, stripe *services.StripeClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		payload := c.MustGet(middleware.StripePayloadKey).([]byte)

		var event stripeEvent
		if err := json.Unmarshal(payload, &event); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "malformed event payload"})
			return
		}

		switch event.Type {
		case "checkout.session.completed":
			if err := handleCheckoutCompleted(db, stripe, event); err != nil {
				log.Printf("❌ Failed to record order for event %s: %v", event.ID, err)
				// 500 so Stripe redelivers; the session-ID unique index makes
				// the retry safe.
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record order"})
				return
			}
		case "customer.subscription.updated", "customer.subscription.deleted":
			if err := handleSubscriptionEvent(db, event); err != nil {
				log.Printf("❌ Failed to sync subscription for event %s: %v", event.ID, err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to sync subscription"})
				return
			}
		case "payment_intent.payment_failed":
			log.Printf("⚠️ Payment failed event received: %s", event.ID)
		default:
			log.Printf("Ignoring unhandled Stripe event type: %s", event.Type)
		}

		c.JSON(http.StatusOK, gin.H{"received": true})
	}
}

func handleCheckoutCompleted(db *gorm.DB, stripe *services.StripeClient, event stripeEvent) error {
	var session checkoutSessionObject
	if err := json.Unmarshal(event.Data.Object, &session); err != nil {
		return fmt.Errorf("malformed checkout session object: %w", err)
	}
	if session.ID == "" {
		return fmt.Errorf("checkout session missing id")
	}

	demo := session.Metadata["mode"] == "demo"

	// Authoritative amounts come from the provider, not from metadata.
	var orderItems []models.OrderItem
	var subtotal int64
	if stripe.Enabled() {
		lines, err := stripe.ListSessionLineItems(session.ID)
		if err != nil {
			return err
		}
		orderItems, subtotal = orderLines(lines)
	} else {
		subtotal = session.AmountTotal
	}

	org, err := resolveOrganization(db, event, session, demo)
	if err != nil {
		return err
	}

	var fee, payout int64
	if demo {
		payout = subtotal
	} else {
		settings, err := models.GetPlatformSettings(db)
		if err != nil {
			return err
		}
		fee, payout = utils.SplitSubtotal(subtotal, settings.PlatformFeeBps)
	}

	order := models.Order{
		OrganizationID:    orgID(org),
		OrderRef:          time.Now().Format("20060102150405") + "-" + uuid.NewString(),
		StripeSessionID:   session.ID,
		Items:             orderItems,
		SubtotalCents:     subtotal,
		PlatformFeeCents:  fee,
		SellerPayoutCents: payout,
		Currency:          session.Currency,
		CustomerEmail:     session.CustomerDetails.Email,
		Status:            models.OrderStatusPaid,
		Demo:              demo,
		CreatedAt:         time.Now(),
	}

	result := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "stripe_session_id"}},
		DoNothing: true,
	}).Create(&order)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		// Redelivered webhook for a session already recorded
		log.Printf("Duplicate webhook delivery for session %s, skipping", session.ID)
		return nil
	}

	log.Printf("✅ Order recorded for session %s (subtotal %d, fee %d)", session.ID, subtotal, fee)

	if cartSession := session.Metadata["cart_session"]; cartSession != "" {
		if err := cartControllers.ClearCartSession(db, cartSession); err != nil {
			log.Printf("⚠️ Failed to clear cart %s after checkout: %v", cartSession, err)
		} else {
			cartControllers.CartHub.Broadcast(cartSession, "checkout.completed")
		}
	}
	return nil
}

// resolveOrganization finds the owning tenant: by Connect sub-account in
// marketplace mode, by metadata slug otherwise. Demo orders may have no org.
func resolveOrganization(db *gorm.DB, event stripeEvent, session checkoutSessionObject, demo bool) (*models.Organization, error) {
	var org models.Organization
	if event.Account != "" {
		if err := db.Where("stripe_account_id = ?", event.Account).First(&org).Error; err == nil {
			return &org, nil
		}
	}
	if slug := session.Metadata["org_slug"]; slug != "" {
		if err := db.Where("slug = ?", slug).First(&org).Error; err == nil {
			return &org, nil
		}
	}
	if demo {
		return nil, nil
	}
	return nil, fmt.Errorf("no organization matches session %s", session.ID)
}

func orgID(org *models.Organization) uint {
	if org == nil {
		return 0
	}
	return org.ID
}

// orderLines keeps each line's amount_total verbatim, so the items always
// sum to the session subtotal whatever the quantity.
func orderLines(lines []services.LineItem) ([]models.OrderItem, int64) {
	var items []models.OrderItem
	var subtotal int64
	for _, line := range lines {
		items = append(items, models.OrderItem{
			Description:      line.Description,
			AmountTotalCents: line.AmountTotal,
			Quantity:         line.Quantity,
		})
		subtotal += line.AmountTotal
	}
	return items, subtotal
}

func handleSubscriptionEvent(db *gorm.DB, event stripeEvent) error {
	var sub subscriptionObject
	if err := json.Unmarshal(event.Data.Object, &sub); err != nil {
		return fmt.Errorf("malformed subscription object: %w", err)
	}

	status := mapSubscriptionStatus(sub.Status, event.Type)
	result := db.Model(&models.Organization{}).
		Where("stripe_subscription_id = ?", sub.ID).
		Update("subscription_status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		log.Printf("No organization matches subscription %s, ignoring", sub.ID)
	}
	return nil
}

func mapSubscriptionStatus(providerStatus, eventType string) models.SubscriptionStatus {
	if eventType == "customer.subscription.deleted" {
		return models.SubscriptionCanceled
	}
	switch providerStatus {
	case "active", "trialing":
		return models.SubscriptionActive
	case "past_due", "unpaid":
		return models.SubscriptionPastDue
	case "canceled", "incomplete_expired":
		return models.SubscriptionCanceled
	default:
		return models.SubscriptionNone
	}
}
