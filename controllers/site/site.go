package siteControllers

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/lostmonster84/slydes-sub006/models"
	"github.com/lostmonster84/slydes-sub006/services"
	"github.com/lostmonster84/slydes-sub006/utils"
)

// GET /api/sites/:slug
// Public payload for rendering a published microsite.
func GetSite(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		slug := utils.NormalizeSlug(c.Param("slug"))

		settings, err := models.GetPlatformSettings(db)
		if err == nil && settings.MaintenanceMode {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Down for maintenance"})
			return
		}

		var org models.Organization
		err = db.Preload("Slydes", func(tx *gorm.DB) *gorm.DB {
			return tx.Where("published = ?", true).Order("position ASC")
		}).Preload("Slydes.Frames", func(tx *gorm.DB) *gorm.DB {
			// Frames still transcoding (or failed) are not renderable
			return tx.Where("media_status = ?", models.MediaStatusReady).Order("position ASC")
		}).Where("slug = ? AND published = ?", slug, true).First(&org).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Site not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch site"})
			return
		}

		// Public payload only: payout and billing identifiers stay private.
		c.JSON(http.StatusOK, gin.H{
			"name":          org.Name,
			"slug":          org.Slug,
			"vertical":      org.Vertical,
			"custom_domain": org.CustomDomain,
			"slydes":        org.Slydes,
		})
	}
}

// GET /api/verticals
func ListVerticals(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var verticals []models.Vertical
		if err := db.Order("label ASC").Find(&verticals).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch verticals"})
			return
		}
		c.JSON(http.StatusOK, verticals)
	}
}

type TrackInput struct {
	Path    string `json:"path" binding:"required"`
	OrgSlug string `json:"org_slug"`
}

// visitorHash derives a stable, non-reversible daily visitor identity from
// the caller's IP and user agent.
func visitorHash(ip, userAgent string) string {
	sum := sha256.Sum256([]byte(ip + "|" + userAgent))
	return hex.EncodeToString(sum[:])
}

// POST /api/track
// Records one page view per hashed visitor per path per day. Always 202:
// analytics never blocks the page.
func TrackVisit(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input TrackInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "path is required"})
			return
		}

		var orgIDValue uint
		if input.OrgSlug != "" {
			var org models.Organization
			if err := db.Where("slug = ?", utils.NormalizeSlug(input.OrgSlug)).First(&org).Error; err == nil {
				orgIDValue = org.ID
			}
		}

		visit := models.SiteVisit{
			OrganizationID: orgIDValue,
			VisitorHash:    visitorHash(c.ClientIP(), c.Request.UserAgent()),
			Path:           input.Path,
			VisitDate:      time.Now().UTC().Format("2006-01-02"),
		}
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&visit).Error; err != nil {
			log.Printf("⚠️ Failed to record site visit: %v", err)
		}

		c.JSON(http.StatusAccepted, gin.H{"ok": true})
	}
}

type LeadInput struct {
	OrgSlug string `json:"org_slug" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Name    string `json:"name"`
	Message string `json:"message"`
	Source  string `json:"source"`
}

// POST /api/leads
// Stores the lead and notifies the organization owner by email. The email is
// best-effort: a send failure is logged, the lead is still recorded.
func CreateLead(db *gorm.DB, resend *services.ResendClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input LeadInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var org models.Organization
		if err := db.Where("slug = ?", utils.NormalizeSlug(input.OrgSlug)).First(&org).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Organization not found"})
			return
		}

		lead := models.Lead{
			OrganizationID: org.ID,
			Email:          input.Email,
			Name:           input.Name,
			Message:        input.Message,
			Source:         input.Source,
		}
		result := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&lead)
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record lead"})
			return
		}

		if result.RowsAffected > 0 {
			var owner models.User
			if err := db.Where("id = ?", org.OwnerID).First(&owner).Error; err == nil {
				go func() {
					if err := resend.SendLeadNotification(owner.Email, org.Name, input.Email, input.Name, input.Message); err != nil {
						log.Printf("⚠️ Lead notification failed for org %s: %v", org.Slug, err)
					}
				}()
			}
		}

		c.JSON(http.StatusCreated, gin.H{"message": "Lead recorded"})
	}
}

type WaitlistInput struct {
	Email string `json:"email" binding:"required,email"`
}

// POST /api/waitlist
func JoinWaitlist(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input WaitlistInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "A valid email is required"})
			return
		}

		settings, err := models.GetPlatformSettings(db)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load platform settings"})
			return
		}
		if !settings.WaitlistOpen {
			c.JSON(http.StatusForbidden, gin.H{"error": "The waitlist is currently closed"})
			return
		}

		entry := models.WaitlistEntry{Email: input.Email}
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&entry).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to join waitlist"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "You're on the list"})
	}
}
