package routes

import (
	"github.com/gin-gonic/gin"

	checkoutControllers "github.com/lostmonster84/slydes-sub006/controllers/checkout"
	stripeControllers "github.com/lostmonster84/slydes-sub006/controllers/stripe"
	"github.com/lostmonster84/slydes-sub006/middleware"
)

func SetupPaymentRoutes(r *gin.Engine, deps Deps) {
	payment := r.Group("/api/stripe")
	{
		payment.POST("/checkout", checkoutControllers.CreateCheckout(deps.DB, deps.Stripe))
		payment.POST("/demo-checkout", checkoutControllers.CreateDemoCheckout(deps.DB, deps.Stripe))

		// Webhook endpoint: middleware verifies the Stripe signature before
		// the handler sees the payload.
		payment.POST("/webhook",
			middleware.StripeWebhookAuth(),
			stripeControllers.WebhookHandler(deps.DB, deps.Stripe),
		)
	}
}
