package routes

import (
	"github.com/gin-gonic/gin"

	mediaControllers "github.com/lostmonster84/slydes-sub006/controllers/media"
	studioControllers "github.com/lostmonster84/slydes-sub006/controllers/studio"
	"github.com/lostmonster84/slydes-sub006/middleware"
)

// SetupStudioRoutes registers all creator endpoints. Requires JWT middleware.
func SetupStudioRoutes(r *gin.Engine, deps Deps) {
	studio := r.Group("/api/studio")
	studio.Use(middleware.ValidateToken)
	{
		// ──────────────── Organization ────────────────
		studio.POST("/organization", studioControllers.CreateOrganization(deps.DB))
		studio.GET("/organization", studioControllers.GetMyOrganization(deps.DB))
		studio.PUT("/organization", studioControllers.UpdateOrganization(deps.DB))
		studio.GET("/slug-available", studioControllers.CheckSlugAvailable(deps.DB))
		studio.PUT("/organization/connect-account", studioControllers.SetConnectAccount(deps.DB))

		// ──────────────── Slydes & Frames ────────────────
		slydes := studio.Group("/slydes")
		{
			slydes.POST("", studioControllers.CreateSlyde(deps.DB))
			slydes.GET("", studioControllers.ListSlydes(deps.DB))
			slydes.PUT("/:id", studioControllers.UpdateSlyde(deps.DB))
			slydes.DELETE("/:id", studioControllers.DeleteSlyde(deps.DB))
			slydes.POST("/:id/frames", studioControllers.CreateFrame(deps.DB))
			slydes.PUT("/:id/frames/reorder", studioControllers.ReorderFrames(deps.DB))
		}
		frames := studio.Group("/frames")
		{
			frames.PUT("/:id", studioControllers.UpdateFrame(deps.DB))
			frames.DELETE("/:id", studioControllers.DeleteFrame(deps.DB))
		}

	}

	// ──────────────── Media ────────────────
	media := r.Group("/api/media")
	media.Use(middleware.ValidateToken)
	{
		media.POST("/create-video-upload", mediaControllers.CreateVideoUpload(deps.Cloudflare))
		media.POST("/create-image-upload", mediaControllers.CreateImageUpload(deps.Cloudflare))
		media.POST("/upload-audio", mediaControllers.UploadAudio())
		media.POST("/attach-to-frame", mediaControllers.AttachToFrame(deps.DB))
		media.POST("/attach-audio", mediaControllers.AttachAudio(deps.DB))
		media.GET("/video-status", mediaControllers.VideoStatus(deps.DB, deps.Cloudflare))
		media.POST("/video-link", mediaControllers.ParseVideoLink())
	}
}
