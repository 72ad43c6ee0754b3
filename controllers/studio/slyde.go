package studioControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/lostmonster84/slydes-sub006/models"
	"github.com/lostmonster84/slydes-sub006/utils"
)

type SlydeInput struct {
	Title     string `json:"title" binding:"required"`
	Slug      string `json:"slug" binding:"required"`
	Published bool   `json:"published"`
}

// POST /api/studio/slydes
func CreateSlyde(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := callerID(c)
		if !ok {
			return
		}

		var input SlydeInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		slug := utils.NormalizeSlug(input.Slug)
		if err := utils.ValidateSlug(slug); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		org, err := orgForOwner(db, userID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "No organization yet"})
			return
		}

		var position int64
		db.Model(&models.Slyde{}).Where("organization_id = ?", org.ID).Count(&position)

		slyde := models.Slyde{
			OrganizationID: org.ID,
			Slug:           slug,
			Title:          input.Title,
			Position:       int(position),
			Published:      input.Published,
		}
		if err := db.Create(&slyde).Error; err != nil {
			c.JSON(http.StatusConflict, gin.H{"error": "A Slyde with that slug already exists"})
			return
		}
		c.JSON(http.StatusCreated, slyde)
	}
}

// GET /api/studio/slydes
func ListSlydes(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := callerID(c)
		if !ok {
			return
		}

		org, err := orgForOwner(db, userID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "No organization yet"})
			return
		}

		var slydes []models.Slyde
		if err := db.Preload("Frames", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("position ASC")
		}).Where("organization_id = ?", org.ID).Order("position ASC").Find(&slydes).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch slydes"})
			return
		}
		c.JSON(http.StatusOK, slydes)
	}
}

// slydeForOwner scopes a slyde lookup to the caller's organization.
func slydeForOwner(db *gorm.DB, slydeID, userID string) (*models.Slyde, error) {
	var slyde models.Slyde
	err := db.Joins("JOIN organizations ON organizations.id = slydes.organization_id").
		Where("slydes.id = ? AND organizations.owner_id = ?", slydeID, userID).
		First(&slyde).Error
	if err != nil {
		return nil, err
	}
	return &slyde, nil
}

type UpdateSlydeInput struct {
	Title     *string `json:"title"`
	Published *bool   `json:"published"`
}

// PUT /api/studio/slydes/:id
func UpdateSlyde(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := callerID(c)
		if !ok {
			return
		}

		var input UpdateSlydeInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		slyde, err := slydeForOwner(db, c.Param("id"), userID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Slyde not found"})
			return
		}

		updates := map[string]interface{}{}
		if input.Title != nil {
			updates["title"] = *input.Title
		}
		if input.Published != nil {
			updates["published"] = *input.Published
		}
		if len(updates) > 0 {
			if err := db.Model(slyde).Updates(updates).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update slyde"})
				return
			}
		}
		c.JSON(http.StatusOK, slyde)
	}
}

// DELETE /api/studio/slydes/:id
func DeleteSlyde(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := callerID(c)
		if !ok {
			return
		}

		slyde, err := slydeForOwner(db, c.Param("id"), userID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Slyde not found"})
			return
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("slyde_id = ?", slyde.ID).Delete(&models.Frame{}).Error; err != nil {
				return err
			}
			return tx.Delete(slyde).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete slyde"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Slyde deleted"})
	}
}

type FrameInput struct {
	Title    string `json:"title"`
	Body     string `json:"body"`
	CTALabel string `json:"cta_label"`
	CTAURL   string `json:"cta_url"`
	EmbedURL string `json:"embed_url"` // optional external video link
}

// POST /api/studio/slydes/:id/frames
func CreateFrame(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := callerID(c)
		if !ok {
			return
		}

		var input FrameInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		slyde, err := slydeForOwner(db, c.Param("id"), userID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Slyde not found"})
			return
		}

		var position int64
		db.Model(&models.Frame{}).Where("slyde_id = ?", slyde.ID).Count(&position)

		frame := models.Frame{
			SlydeID:     slyde.ID,
			Position:    int(position),
			Title:       input.Title,
			Body:        input.Body,
			CTALabel:    input.CTALabel,
			CTAURL:      input.CTAURL,
			MediaStatus: models.MediaStatusReady,
		}
		if input.EmbedURL != "" {
			embed := utils.ParseVideoURL(input.EmbedURL)
			if embed == nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Unrecognized video URL"})
				return
			}
			frame.MediaType = models.MediaTypeEmbed
			frame.EmbedType = embed.Type
			frame.EmbedURL = embed.EmbedURL
		}

		if err := db.Create(&frame).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create frame"})
			return
		}
		c.JSON(http.StatusCreated, frame)
	}
}

// PUT /api/studio/frames/:id
func UpdateFrame(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := callerID(c)
		if !ok {
			return
		}

		var input FrameInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var frame models.Frame
		err := db.Joins("JOIN slydes ON slydes.id = frames.slyde_id").
			Joins("JOIN organizations ON organizations.id = slydes.organization_id").
			Where("frames.id = ? AND organizations.owner_id = ?", c.Param("id"), userID).
			First(&frame).Error
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Frame not found"})
			return
		}

		updates := map[string]interface{}{
			"title":     input.Title,
			"body":      input.Body,
			"cta_label": input.CTALabel,
			"cta_url":   input.CTAURL,
		}
		if input.EmbedURL != "" {
			embed := utils.ParseVideoURL(input.EmbedURL)
			if embed == nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Unrecognized video URL"})
				return
			}
			updates["media_type"] = models.MediaTypeEmbed
			updates["embed_type"] = embed.Type
			updates["embed_url"] = embed.EmbedURL
		}

		if err := db.Model(&frame).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update frame"})
			return
		}
		c.JSON(http.StatusOK, frame)
	}
}

// DELETE /api/studio/frames/:id
func DeleteFrame(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := callerID(c)
		if !ok {
			return
		}

		result := db.Where(
			"id IN (SELECT frames.id FROM frames "+
				"JOIN slydes ON slydes.id = frames.slyde_id "+
				"JOIN organizations ON organizations.id = slydes.organization_id "+
				"WHERE frames.id = ? AND organizations.owner_id = ?)",
			c.Param("id"), userID,
		).Delete(&models.Frame{})
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete frame"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Frame not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Frame deleted"})
	}
}

type ReorderInput struct {
	FrameIDs []uint `json:"frame_ids" binding:"required"`
}

// PUT /api/studio/slydes/:id/frames/reorder
// Positions are rewritten to match the given order in one transaction.
func ReorderFrames(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := callerID(c)
		if !ok {
			return
		}

		var input ReorderInput
		if err := c.ShouldBindJSON(&input); err != nil || len(input.FrameIDs) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "frame_ids is required"})
			return
		}

		slyde, err := slydeForOwner(db, c.Param("id"), userID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Slyde not found"})
			return
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			for i, frameID := range input.FrameIDs {
				if err := tx.Model(&models.Frame{}).
					Where("id = ? AND slyde_id = ?", frameID, slyde.ID).
					Update("position", i).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reorder frames"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Frames reordered"})
	}
}
