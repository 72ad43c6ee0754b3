package routes

import (
	"github.com/gin-gonic/gin"

	adminController "github.com/lostmonster84/slydes-sub006/controllers/admin"
	"github.com/lostmonster84/slydes-sub006/middleware"
)

// SetupAdminRoutes registers all “/api/admin/*” endpoints. Requires the admin
// session cookie.
func SetupAdminRoutes(r *gin.Engine, deps Deps) {
	adminGroup := r.Group("/api/admin")
	adminGroup.Use(middleware.AdminSession)
	{
		// ─────────── Dashboard & Platform Settings ───────────
		adminGroup.GET("/dashboard", adminController.GetDashboard(deps.DB))
		adminGroup.GET("/platform-settings", adminController.GetPlatformSettings(deps.DB))
		adminGroup.PUT("/platform-settings", adminController.UpdatePlatformSettings(deps.DB))

		// ─────────── Platform Data ───────────
		adminGroup.GET("/organizations", adminController.ListOrganizations(deps.DB))
		adminGroup.GET("/orders", adminController.ListOrders(deps.DB))
		adminGroup.GET("/waitlist", adminController.ListWaitlist(deps.DB))
		adminGroup.GET("/export/orders.xlsx", adminController.ExportOrdersToExcel(deps.DB))
		adminGroup.GET("/export/leads.xlsx", adminController.ExportLeadsToExcel(deps.DB))

		// ─────────── Admin Approval Workflow ───────────
		adminMgmt := adminGroup.Group("/admin-management")
		{
			adminMgmt.GET("", adminController.GetAllAdmins(deps.DB))
			adminMgmt.GET("/pending", adminController.ListPendingAdmins(deps.DB))
			adminMgmt.POST("/approve", adminController.ApproveAdmin(deps.DB))
			adminMgmt.POST("/reject", adminController.RejectAdmin(deps.DB))
		}
	}
}
