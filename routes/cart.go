package routes

import (
	"github.com/gin-gonic/gin"

	cartControllers "github.com/lostmonster84/slydes-sub006/controllers/cart"
)

// SetupCartRoutes registers the session cart. Callers identify their cart via
// the X-Cart-Session header; no login is required.
func SetupCartRoutes(r *gin.Engine, deps Deps) {
	cartGroup := r.Group("/api/cart")
	{
		cartGroup.GET("", cartControllers.GetCart(deps.DB))
		cartGroup.POST("/items", cartControllers.AddCartItem(deps.DB))
		cartGroup.PUT("/items/:item_id", cartControllers.UpdateCartItem(deps.DB))
		cartGroup.DELETE("/items/:item_id", cartControllers.RemoveCartItem(deps.DB))
		cartGroup.DELETE("", cartControllers.ClearCart(deps.DB))

		// Per-session socket: pushes "cart.updated" so other open tabs re-read.
		cartGroup.GET("/ws", cartControllers.CartSocketHandler)
	}
}
