package mediaControllers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/lostmonster84/slydes-sub006/models"
	"github.com/lostmonster84/slydes-sub006/services"
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

// frameForOwner loads a frame and verifies it belongs to the caller's
// organization (frame -> slyde -> organization.owner).
func frameForOwner(db *gorm.DB, frameID string, userID string) (*models.Frame, error) {
	var frame models.Frame
	err := db.Joins("JOIN slydes ON slydes.id = frames.slyde_id").
		Joins("JOIN organizations ON organizations.id = slydes.organization_id").
		Where("frames.id = ? AND organizations.owner_id = ?", frameID, userID).
		First(&frame).Error
	if err != nil {
		return nil, err
	}
	return &frame, nil
}

type createUploadInput struct {
	MaxDurationSeconds int `json:"max_duration_seconds"`
}

// POST /api/media/create-video-upload
// Phase 1 of the three-phase flow: mint a short-lived direct-upload URL bound
// to the caller. The client uploads the binary straight to the provider.
func CreateVideoUpload(cf *services.CloudflareClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := callerID(c)
		if !ok {
			return
		}

		var input createUploadInput
		_ = c.ShouldBindJSON(&input) // body is optional

		upload, err := cf.CreateVideoUpload(services.ClampVideoDuration(input.MaxDurationSeconds), userID)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, upload)
	}
}

// POST /api/media/create-image-upload
func CreateImageUpload(cf *services.CloudflareClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := callerID(c)
		if !ok {
			return
		}

		upload, err := cf.CreateImageUpload(userID)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, upload)
	}
}

// POST /api/media/upload-audio
// Audio skips the provider: the file lands on local disk and is served from
// /uploads.
func UploadAudio() gin.HandlerFunc {
	uploadDir := os.Getenv("UPLOADS_DIR")
	if uploadDir == "" {
		uploadDir = "./uploads"
	}
	baseURL := os.Getenv("PUBLIC_BASE_URL")

	return func(c *gin.Context) {
		if _, ok := callerID(c); !ok {
			return
		}

		file, fileHeader, err := c.Request.FormFile("audio")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No audio uploaded"})
			return
		}
		defer file.Close()

		ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
		switch ext {
		case ".mp3", ".m4a", ".wav", ".ogg":
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported audio format"})
			return
		}

		audioDir := filepath.Join(uploadDir, "audio")
		if err := os.MkdirAll(audioDir, 0755); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create upload folder"})
			return
		}

		baseName := strings.TrimSuffix(fileHeader.Filename, filepath.Ext(fileHeader.Filename))
		baseName = strings.ReplaceAll(baseName, " ", "_")
		newFileName := fmt.Sprintf("%d_%s%s", time.Now().Unix(), baseName, ext)
		savePath := filepath.Join(audioDir, newFileName)

		if err := c.SaveUploadedFile(fileHeader, savePath); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save file"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"url": fmt.Sprintf("%s/uploads/audio/%s", baseURL, newFileName)})
	}
}

type attachInput struct {
	FrameID  string `json:"frame_id" binding:"required"`
	VideoUID string `json:"video_uid"`
	ImageID  string `json:"image_id"`
}

// POST /api/media/attach-to-frame
// Phase 3: bind the provider-assigned asset ID to a frame. Videos start as
// processing until transcode finishes; images are ready immediately.
func AttachToFrame(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := callerID(c)
		if !ok {
			return
		}

		var input attachInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if input.VideoUID == "" && input.ImageID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "video_uid or image_id is required"})
			return
		}

		frame, err := frameForOwner(db, input.FrameID, userID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Frame not found"})
			return
		}

		updates := map[string]interface{}{}
		if input.VideoUID != "" {
			updates["video_uid"] = input.VideoUID
			updates["media_type"] = models.MediaTypeVideo
			updates["media_status"] = models.MediaStatusProcessing
		} else {
			updates["image_id"] = input.ImageID
			updates["media_type"] = models.MediaTypeImage
			updates["media_status"] = models.MediaStatusReady
		}

		if err := db.Model(frame).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to attach media"})
			return
		}
		c.JSON(http.StatusOK, frame)
	}
}

type attachAudioInput struct {
	FrameID  string `json:"frame_id" binding:"required"`
	AudioURL string `json:"audio_url" binding:"required"`
}

// POST /api/media/attach-audio
func AttachAudio(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := callerID(c)
		if !ok {
			return
		}

		var input attachAudioInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		frame, err := frameForOwner(db, input.FrameID, userID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Frame not found"})
			return
		}

		if err := db.Model(frame).Update("audio_url", input.AudioURL).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to attach audio"})
			return
		}
		c.JSON(http.StatusOK, frame)
	}
}

// GET /api/media/video-status?uid=...
// Polls the provider and pushes processing -> ready|failed onto every frame
// carrying the UID.
func VideoStatus(db *gorm.DB, cf *services.CloudflareClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := callerID(c); !ok {
			return
		}

		uid := c.Query("uid")
		if uid == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "uid is required"})
			return
		}

		status, err := cf.VideoStatus(uid)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}

		if status != "processing" {
			if err := db.Model(&models.Frame{}).
				Where("video_uid = ? AND media_status = ?", uid, models.MediaStatusProcessing).
				Update("media_status", status).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update frame status"})
				return
			}
		}

		c.JSON(http.StatusOK, gin.H{"uid": uid, "status": status})
	}
}

type videoLinkInput struct {
	URL string `json:"url" binding:"required"`
}

// POST /api/media/video-link
// Parses a pasted external video URL into an embeddable form.
func ParseVideoLink() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input videoLinkInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		embed := utils.ParseVideoURL(input.URL)
		if embed == nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Unrecognized video URL"})
			return
		}
		c.JSON(http.StatusOK, embed)
	}
}
