package auth

import (
	"errors"
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/lostmonster84/slydes-sub006/models"
)

// POST /auth/admin
// Platform staff sign in with Google. Unknown emails are registered as
// pending and must be approved by an existing admin; the super admin email
// from the environment always passes.
func AdminLoginHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			IDToken string `json:"idToken" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
			return
		}

		_, email, name, picture, err := verifyGoogleIDToken(c.Request.Context(), req.IDToken)
		if err != nil {
			if err.Error() == "firebase credentials not configured" {
				c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Sign-in is not configured"})
				return
			}
			log.Printf("❌ Admin ID token verification failed: %v", err)
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		if email == os.Getenv("SUPER_ADMIN_EMAIL") {
			setAdminCookie(c, email, name, picture, true)
			return
		}

		var admin models.Admin
		err = db.Where("email = ?", email).First(&admin).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			admin = models.Admin{Email: email, Name: name, Picture: picture, Approved: false}
			if err := db.Create(&admin).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register admin"})
				return
			}
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin access pending approval"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}
		if !admin.Approved {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin access pending approval"})
			return
		}

		setAdminCookie(c, email, name, picture, false)
	}
}

func setAdminCookie(c *gin.Context, email, name, picture string, super bool) {
	value, err := IssueAdminSession(email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Session generation failed"})
		return
	}

	// 7 days, HttpOnly; Secure unless explicitly running without TLS
	secure := os.Getenv("COOKIE_INSECURE") != "true"
	c.SetCookie(AdminCookieName, value, 7*24*3600, "/", "", secure, true)

	role := "admin"
	if super {
		role = "superadmin"
	}
	log.Printf("✅ Admin login: %s (%s)", email, role)
	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"email":   email,
		"name":    name,
		"picture": picture,
		"role":    role,
	})
}

// POST /auth/admin/logout
func AdminLogoutHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.SetCookie(AdminCookieName, "", -1, "/", "", false, true)
		c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
	}
}
