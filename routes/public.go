package routes

import (
	"github.com/gin-gonic/gin"

	siteControllers "github.com/lostmonster84/slydes-sub006/controllers/site"
)

// SetupPublicRoutes registers the unauthenticated visitor-facing endpoints.
func SetupPublicRoutes(r *gin.Engine, deps Deps) {
	api := r.Group("/api")
	{
		api.GET("/sites/:slug", siteControllers.GetSite(deps.DB))
		api.GET("/verticals", siteControllers.ListVerticals(deps.DB))
		api.POST("/track", siteControllers.TrackVisit(deps.DB))
		api.POST("/leads", siteControllers.CreateLead(deps.DB, deps.Resend))
		api.POST("/waitlist", siteControllers.JoinWaitlist(deps.DB))
	}
}
