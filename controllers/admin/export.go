package adminController

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"

	"github.com/lostmonster84/slydes-sub006/models"
)

func writeExcel(c *gin.Context, file *xlsx.File, filename string) {
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Transfer-Encoding", "binary")
	c.Header("Expires", "0")

	if err := file.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file"})
	}
}

// GET /api/admin/leads/export
func ExportLeadsToExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var leads []models.Lead
		query := db.Order("created_at DESC")
		if orgID := c.Query("organization_id"); orgID != "" {
			query = query.Where("organization_id = ?", orgID)
		}
		if err := query.Find(&leads).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch leads"})
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Leads")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel sheet"})
			return
		}

		headers := []string{"ID", "OrganizationID", "Email", "Name", "Message", "Source", "CreatedAt"}
		headerRow := sheet.AddRow()
		for _, h := range headers {
			headerRow.AddCell().SetValue(h)
		}

		for _, l := range leads {
			row := sheet.AddRow()
			row.AddCell().SetValue(l.ID)
			row.AddCell().SetValue(l.OrganizationID)
			row.AddCell().SetValue(l.Email)
			row.AddCell().SetValue(l.Name)
			row.AddCell().SetValue(l.Message)
			row.AddCell().SetValue(l.Source)
			row.AddCell().SetValue(l.CreatedAt.Format("2006-01-02 15:04:05"))
		}

		writeExcel(c, file, "leads.xlsx")
	}
}

// GET /api/admin/orders/export
func ExportOrdersToExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		if err := db.Preload("Items").Order("created_at DESC").Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Orders")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel sheet"})
			return
		}

		headers := []string{
			"ID", "OrderRef", "OrganizationID", "Status", "Currency",
			"SubtotalCents", "PlatformFeeCents", "SellerPayoutCents",
			"CustomerEmail", "Items", "Demo", "CreatedAt",
		}
		headerRow := sheet.AddRow()
		for _, h := range headers {
			headerRow.AddCell().SetValue(h)
		}

		for _, o := range orders {
			row := sheet.AddRow()
			row.AddCell().SetValue(o.ID)
			row.AddCell().SetValue(o.OrderRef)
			row.AddCell().SetValue(o.OrganizationID)
			row.AddCell().SetValue(string(o.Status))
			row.AddCell().SetValue(o.Currency)
			row.AddCell().SetValue(o.SubtotalCents)
			row.AddCell().SetValue(o.PlatformFeeCents)
			row.AddCell().SetValue(o.SellerPayoutCents)
			row.AddCell().SetValue(o.CustomerEmail)
			row.AddCell().SetValue(strconv.Itoa(len(o.Items)))
			row.AddCell().SetValue(strconv.FormatBool(o.Demo))
			row.AddCell().SetValue(o.CreatedAt.Format("2006-01-02 15:04:05"))
		}

		writeExcel(c, file, "orders.xlsx")
	}
}
