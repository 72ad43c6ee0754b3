package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/lostmonster84/slydes-sub006/auth"
)

// SetupAuthRoutes registers login/logout endpoints. Google sign-in backs both
// the studio (JWT) and the admin console (session cookie).
func SetupAuthRoutes(r *gin.Engine, deps Deps) {
	authGroup := r.Group("/api/auth")
	{
		authGroup.POST("/google", auth.GoogleLoginHandler(deps.DB))
		authGroup.POST("/admin/login", auth.AdminLoginHandler(deps.DB))
		authGroup.POST("/admin/logout", auth.AdminLogoutHandler())
	}
}
