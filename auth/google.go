package auth

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/lostmonster84/slydes-sub006/models"
)

// POST /auth/google
// Verifies the Google ID token, upserts the studio user and returns a
// platform bearer token plus the user's organization if one exists.
func GoogleLoginHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			IDToken string `json:"idToken" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
			return
		}

		uid, email, name, picture, err := verifyGoogleIDToken(c.Request.Context(), req.IDToken)
		if err != nil {
			if err.Error() == "firebase credentials not configured" {
				c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Sign-in is not configured"})
				return
			}
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		var user models.User
		err = db.Where("id = ?", uid).First(&user).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			user = models.User{
				ID:       uid,
				Email:    email,
				Name:     name,
				Picture:  picture,
				Provider: "google",
			}
			if err := db.Create(&user).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
				return
			}
		case err == nil:
			// Refresh profile fields from Google on every login
			db.Model(&user).Updates(models.User{Name: name, Picture: picture})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}

		token, err := IssueUserToken(user.ID, user.Email, user.Name, user.Picture)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Token generation failed"})
			return
		}

		var org models.Organization
		resp := gin.H{
			"message": "Login successful",
			"user":    user,
			"token":   token,
		}
		if err := db.Where("owner_id = ?", user.ID).First(&org).Error; err == nil {
			resp["organization"] = org
		}

		log.Printf("✅ Studio login: %s", email)
		c.JSON(http.StatusOK, resp)
	}
}
