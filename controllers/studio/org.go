package studioControllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/lostmonster84/slydes-sub006/models"
	"github.com/lostmonster84/slydes-sub006/utils"
)

func callerID(c *gin.Context) (string, bool) {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	userID, _ := userIDVal.(string)
	return userID, userID != ""
}

func orgForOwner(db *gorm.DB, userID string) (*models.Organization, error) {
	var org models.Organization
	if err := db.Where("owner_id = ?", userID).First(&org).Error; err != nil {
		return nil, err
	}
	return &org, nil
}

type CreateOrgInput struct {
	Slug     string `json:"slug" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Vertical string `json:"vertical"`
}

// POST /api/studio/org
func CreateOrganization(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := callerID(c)
		if !ok {
			return
		}

		var input CreateOrgInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		slug := utils.NormalizeSlug(input.Slug)
		if err := utils.ValidateSlug(slug); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		org := models.Organization{
			Slug:               slug,
			OwnerID:            userID,
			Name:               input.Name,
			Vertical:           input.Vertical,
			SubscriptionStatus: models.SubscriptionNone,
		}
		if err := db.Create(&org).Error; err != nil {
			if strings.Contains(err.Error(), "duplicate") || strings.Contains(err.Error(), "unique") {
				c.JSON(http.StatusConflict, gin.H{"error": "Slug already taken or you already own an organization"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create organization"})
			return
		}

		c.JSON(http.StatusCreated, org)
	}
}

// GET /api/studio/org
func GetMyOrganization(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := callerID(c)
		if !ok {
			return
		}

		var org models.Organization
		err := db.Preload("Slydes", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("position ASC")
		}).Where("owner_id = ?", userID).First(&org).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No organization yet"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch organization"})
			return
		}
		c.JSON(http.StatusOK, org)
	}
}

type UpdateOrgInput struct {
	Name         *string `json:"name"`
	Vertical     *string `json:"vertical"`
	CustomDomain *string `json:"custom_domain"`
	Published    *bool   `json:"published"`
}

// PUT /api/studio/org
func UpdateOrganization(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := callerID(c)
		if !ok {
			return
		}

		var input UpdateOrgInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		org, err := orgForOwner(db, userID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "No organization yet"})
			return
		}

		updates := map[string]interface{}{}
		if input.Name != nil {
			updates["name"] = *input.Name
		}
		if input.Vertical != nil {
			updates["vertical"] = *input.Vertical
		}
		if input.CustomDomain != nil {
			updates["custom_domain"] = *input.CustomDomain
		}
		if input.Published != nil {
			updates["published"] = *input.Published
		}
		if len(updates) == 0 {
			c.JSON(http.StatusOK, org)
			return
		}

		if err := db.Model(org).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update organization"})
			return
		}
		c.JSON(http.StatusOK, org)
	}
}

// GET /api/studio/slug-available?slug=...
func CheckSlugAvailable(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		slug := utils.NormalizeSlug(c.Query("slug"))
		if err := utils.ValidateSlug(slug); err != nil {
			c.JSON(http.StatusOK, gin.H{"slug": slug, "available": false, "reason": err.Error()})
			return
		}

		var count int64
		if err := db.Model(&models.Organization{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check slug"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"slug": slug, "available": count == 0})
	}
}

type ConnectAccountInput struct {
	StripeAccountID string `json:"stripe_account_id" binding:"required"`
}

// PUT /api/studio/org/connect-account
// Records the Connect sub-account used to route marketplace payouts.
func SetConnectAccount(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := callerID(c)
		if !ok {
			return
		}

		var input ConnectAccountInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if !strings.HasPrefix(input.StripeAccountID, "acct_") {
			c.JSON(http.StatusBadRequest, gin.H{"error": "stripe_account_id must be a Connect account ID"})
			return
		}

		org, err := orgForOwner(db, userID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "No organization yet"})
			return
		}

		if err := db.Model(org).Update("stripe_account_id", input.StripeAccountID).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save Connect account"})
			return
		}
		c.JSON(http.StatusOK, org)
	}
}
