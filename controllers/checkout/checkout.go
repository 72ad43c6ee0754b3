package checkoutControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lostmonster84/slydes-sub006/models"
	"github.com/lostmonster84/slydes-sub006/services"
	"github.com/lostmonster84/slydes-sub006/utils"
)

type CheckoutRequest struct {
	CartSession string `json:"cart_session" binding:"required"`
	OrgSlug     string `json:"org_slug"`
	SuccessURL  string `json:"success_url" binding:"required"`
	CancelURL   string `json:"cancel_url" binding:"required"`
	Currency    string `json:"currency"`
}

// buildLines maps cart rows onto provider line items and sums the subtotal.
func buildLines(items []models.CartItem) ([]services.CheckoutLine, int64) {
	var lines []services.CheckoutLine
	var subtotal int64
	for _, item := range items {
		lines = append(lines, services.CheckoutLine{
			Title:           item.Title,
			UnitAmountCents: item.PriceCents,
			Quantity:        item.Quantity,
		})
		subtotal += item.PriceCents * int64(item.Quantity)
	}
	return lines, subtotal
}

func loadCart(db *gorm.DB, session string) (*models.Cart, error) {
	var cart models.Cart
	if err := db.Preload("Items").Where("session_id = ?", session).First(&cart).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

// POST /api/stripe/checkout
// Marketplace mode: the payment routes to the organization's Connect account
// with the platform fee deducted as an application fee.
func CreateCheckout(db *gorm.DB, stripe *services.StripeClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CheckoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
			return
		}
		if req.OrgSlug == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "org_slug is required"})
			return
		}

		var org models.Organization
		if err := db.Where("slug = ?", utils.NormalizeSlug(req.OrgSlug)).First(&org).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "organization not found"})
			return
		}
		if org.StripeAccountID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "organization has no connected payout account"})
			return
		}

		cart, err := loadCart(db, req.CartSession)
		if err != nil || len(cart.Items) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "cart is empty"})
			return
		}

		settings, err := models.GetPlatformSettings(db)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load platform settings"})
			return
		}

		lines, subtotal := buildLines(cart.Items)
		fee, _ := utils.SplitSubtotal(subtotal, settings.PlatformFeeBps)

		if !stripe.Enabled() {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "payments are not configured"})
			return
		}

		session, err := stripe.CreateCheckoutSession(services.CheckoutParams{
			Lines:               lines,
			Currency:            currencyOrDefault(req.Currency),
			SuccessURL:          req.SuccessURL,
			CancelURL:           req.CancelURL,
			ConnectAccountID:    org.StripeAccountID,
			ApplicationFeeCents: fee,
			Metadata: map[string]string{
				"cart_session": req.CartSession,
				"org_slug":     org.Slug,
				"mode":         "marketplace",
			},
		})
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"url": session.URL, "session_id": session.ID})
	}
}

// POST /api/stripe/demo-checkout
// Demo mode: no seller routing, full amount to the platform account. With no
// Stripe key configured the route returns a mock redirect so the demo flow
// still completes locally.
func CreateDemoCheckout(db *gorm.DB, stripe *services.StripeClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CheckoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
			return
		}

		cart, err := loadCart(db, req.CartSession)
		if err != nil || len(cart.Items) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "cart is empty"})
			return
		}

		lines, _ := buildLines(cart.Items)

		if !stripe.Enabled() {
			mockID := "cs_mock_" + uuid.NewString()
			c.JSON(http.StatusOK, gin.H{
				"url":        req.SuccessURL + "?session_id=" + mockID,
				"session_id": mockID,
				"mock":       true,
			})
			return
		}

		session, err := stripe.CreateCheckoutSession(services.CheckoutParams{
			Lines:      lines,
			Currency:   currencyOrDefault(req.Currency),
			SuccessURL: req.SuccessURL,
			CancelURL:  req.CancelURL,
			Metadata: map[string]string{
				"cart_session": req.CartSession,
				"mode":         "demo",
			},
		})
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"url": session.URL, "session_id": session.ID})
	}
}

func currencyOrDefault(currency string) string {
	if currency == "" {
		return "gbp"
	}
	return currency
}
