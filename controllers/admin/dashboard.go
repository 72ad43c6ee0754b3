package adminController

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/lostmonster84/slydes-sub006/models"
)

type revenueTotals struct {
	SubtotalCents    int64 `json:"subtotal_cents"`
	PlatformFeeCents int64 `json:"platform_fee_cents"`
}

type visitBucket struct {
	VisitDate string `json:"visit_date"`
	Count     int64  `json:"count"`
}

// GET /api/admin/dashboard
// Platform-wide counts, revenue totals and a 30-day visit series.
func GetDashboard(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orgCount, slydeCount, leadCount, waitlistCount, orderCount int64
		db.Model(&models.Organization{}).Count(&orgCount)
		db.Model(&models.Slyde{}).Count(&slydeCount)
		db.Model(&models.Lead{}).Count(&leadCount)
		db.Model(&models.WaitlistEntry{}).Count(&waitlistCount)
		db.Model(&models.Order{}).Count(&orderCount)

		var revenue revenueTotals
		if err := db.Model(&models.Order{}).
			Select("COALESCE(SUM(subtotal_cents),0) AS subtotal_cents, COALESCE(SUM(platform_fee_cents),0) AS platform_fee_cents").
			Where("status = ?", models.OrderStatusPaid).
			Scan(&revenue).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to aggregate revenue"})
			return
		}

		since := time.Now().UTC().AddDate(0, 0, -30).Format("2006-01-02")
		var visits []visitBucket
		if err := db.Model(&models.SiteVisit{}).
			Select("visit_date, COUNT(*) AS count").
			Where("visit_date >= ?", since).
			Group("visit_date").
			Order("visit_date ASC").
			Scan(&visits).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to aggregate visits"})
			return
		}

		var recentOrders []models.Order
		if err := db.Preload("Items").Order("created_at DESC").Limit(10).Find(&recentOrders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recent orders"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"organizations": orgCount,
			"slydes":        slydeCount,
			"leads":         leadCount,
			"waitlist":      waitlistCount,
			"orders":        orderCount,
			"revenue":       revenue,
			"visits_by_day": visits,
			"recent_orders": recentOrders,
		})
	}
}

// GET /api/admin/organizations
func ListOrganizations(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orgs []models.Organization
		if err := db.Order("created_at DESC").Find(&orgs).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch organizations"})
			return
		}
		c.JSON(http.StatusOK, orgs)
	}
}

// GET /api/admin/orders
func ListOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		if err := db.Preload("Items").Order("created_at DESC").Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GET /api/admin/waitlist
func ListWaitlist(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var entries []models.WaitlistEntry
		if err := db.Order("created_at ASC").Find(&entries).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch waitlist"})
			return
		}
		c.JSON(http.StatusOK, entries)
	}
}
