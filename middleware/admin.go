package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lostmonster84/slydes-sub006/auth"
)

// AdminSession guards "/api/admin/*" with the signed admin cookie.
func AdminSession(c *gin.Context) {
	value, err := c.Cookie(auth.AdminCookieName)
	if err != nil || value == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Admin session required"})
		c.Abort()
		return
	}

	email, err := auth.ValidateAdminSession(value)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		c.Abort()
		return
	}

	c.Set("admin_email", email)
	c.Next()
}
