package adminController

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/lostmonster84/slydes-sub006/models"
)

// GET /api/admin/settings
func GetPlatformSettings(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		settings, err := models.GetPlatformSettings(db)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load settings"})
			return
		}
		c.JSON(http.StatusOK, settings)
	}
}

type SettingsInput struct {
	PlatformFeeBps   *int64  `json:"platform_fee_bps"`
	WaitlistOpen     *bool   `json:"waitlist_open"`
	MaintenanceMode  *bool   `json:"maintenance_mode"`
	AnnouncementText *string `json:"announcement_text"`
}

// PUT /api/admin/settings
// Partial update: only the fields present in the body change.
func UpdatePlatformSettings(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input SettingsInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		if input.PlatformFeeBps != nil && (*input.PlatformFeeBps < 0 || *input.PlatformFeeBps > 10000) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "platform_fee_bps must be between 0 and 10000"})
			return
		}

		settings, err := models.GetPlatformSettings(db)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load settings"})
			return
		}

		updates := map[string]interface{}{}
		if input.PlatformFeeBps != nil {
			updates["platform_fee_bps"] = *input.PlatformFeeBps
		}
		if input.WaitlistOpen != nil {
			updates["waitlist_open"] = *input.WaitlistOpen
		}
		if input.MaintenanceMode != nil {
			updates["maintenance_mode"] = *input.MaintenanceMode
		}
		if input.AnnouncementText != nil {
			updates["announcement_text"] = *input.AnnouncementText
		}
		if len(updates) == 0 {
			c.JSON(http.StatusOK, settings)
			return
		}

		if err := db.Model(settings).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update settings"})
			return
		}

		c.JSON(http.StatusOK, settings)
	}
}
