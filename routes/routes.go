package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/lostmonster84/slydes-sub006/services"
)

// Deps carries the shared handler dependencies so route setup stays flat.
type Deps struct {
	DB         *gorm.DB
	Stripe     *services.StripeClient
	Cloudflare *services.CloudflareClient
	Resend     *services.ResendClient
}

// SetupRoutes is the single entry‐point that wires up all route groups.
func SetupRoutes(r *gin.Engine, deps Deps) {
	// 1️⃣ Public Auth routes (no middleware)
	SetupAuthRoutes(r, deps)

	// 2️⃣ Public site routes (microsites, leads, analytics)
	SetupPublicRoutes(r, deps)

	// 3️⃣ Session cart routes
	SetupCartRoutes(r, deps)

	// 4️⃣ Checkout + Stripe webhook
	SetupPaymentRoutes(r, deps)

	// 5️⃣ Studio routes (JWT‐protected)
	SetupStudioRoutes(r, deps)

	// 6️⃣ Admin routes (session‐cookie‐protected)
	SetupAdminRoutes(r, deps)
}
