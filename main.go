package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/lostmonster84/slydes-sub006/models"
	"github.com/lostmonster84/slydes-sub006/routes"
	"github.com/lostmonster84/slydes-sub006/services"
)

func main() {
	log.Println("✅ Starting application...")

	// Load environment variables
	_ = godotenv.Load()

	// Init DB
	db := initDatabase()

	// Auto-migrate all tables
	if err := db.AutoMigrate(
		&models.User{},
		&models.Admin{},
		&models.Organization{},
		&models.Slyde{},
		&models.Frame{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Lead{},
		&models.WaitlistEntry{},
		&models.SiteVisit{},
		&models.PlatformSettings{},
		&models.Vertical{},
	); err != nil {
		log.Fatalf("❌ AutoMigrate failed: %v", err)
	}

	seedPlatformData(db)

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("❌ Failed to init logger: %v", err)
	}
	defer logger.Sync()

	deps := routes.Deps{
		DB:         db,
		Stripe:     services.NewStripeClient(logger),
		Cloudflare: services.NewCloudflareClient(logger),
		Resend:     services.NewResendClient(logger),
	}

	// Gin setup
	r := gin.Default()

	// Audio uploads top out well under this
	r.MaxMultipartMemory = 32 << 20 // 32MB

	// CORS settings
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Cart-Session", "Stripe-Signature"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Serve uploaded audio files
	uploadsDir := os.Getenv("UPLOADS_DIR")
	if uploadsDir == "" {
		uploadsDir = "./uploads"
	}
	r.Static("/uploads", uploadsDir)

	// Setup routes
	routes.SetupRoutes(r, deps)

	// Nightly retention sweep at 3 AM: old visit rows and abandoned carts
	go startDailySweepAtFixedTime(db, 3, 0)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("🚀 Server running on port %s...", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// initDatabase sets up the GORM DB connection
func initDatabase() *gorm.DB {
	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
		if err != nil {
			log.Fatalf("❌ DB connection failed: %v", err)
		}
		return db
	}

	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	user := os.Getenv("DB_USER")
	password := os.Getenv("DB_PASSWORD")
	dbname := os.Getenv("DB_NAME")

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		host, user, password, dbname, port,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("❌ Failed to connect DB: %v", err)
	}
	return db
}

// seedPlatformData makes sure the settings row exists and the vertical list
// is populated. Safe to run on every boot.
func seedPlatformData(db *gorm.DB) {
	if _, err := models.GetPlatformSettings(db); err != nil {
		log.Fatalf("❌ Failed to seed platform settings: %v", err)
	}

	verticals := []models.Vertical{
		{Slug: "restaurant", Label: "Restaurants & Food", Emoji: "🍽️"},
		{Slug: "fitness", Label: "Fitness & Wellness", Emoji: "💪"},
		{Slug: "beauty", Label: "Beauty & Salons", Emoji: "💇"},
		{Slug: "automotive", Label: "Automotive", Emoji: "🚗"},
		{Slug: "property", Label: "Property & Lettings", Emoji: "🏠"},
		{Slug: "events", Label: "Events & Entertainment", Emoji: "🎉"},
		{Slug: "retail", Label: "Retail & Boutiques", Emoji: "🛍️"},
		{Slug: "creative", Label: "Creators & Portfolios", Emoji: "🎨"},
	}
	for _, v := range verticals {
		var existing models.Vertical
		if err := db.Where("slug = ?", v.Slug).First(&existing).Error; err == gorm.ErrRecordNotFound {
			if err := db.Create(&v).Error; err != nil {
				log.Printf("⚠️ Failed to seed vertical %s: %v", v.Slug, err)
			}
		}
	}
}

// startDailySweepAtFixedTime prunes expired analytics and abandoned carts at
// a fixed hour every day.
func startDailySweepAtFixedTime(db *gorm.DB, hour, min int) {
	for {
		now := time.Now()
		next := time.Date(now.Year(), now.Month(), now.Day(), hour, min, 0, 0, now.Location())
		if !next.After(now) {
			next = next.Add(24 * time.Hour)
		}
		log.Printf("⏳ Next retention sweep scheduled at: %s", next.Format("2006-01-02 15:04:05"))
		time.Sleep(next.Sub(now))

		runRetentionSweep(db, time.Now())
	}
}

// runRetentionSweep drops site visits older than 90 days and carts idle for
// more than 30 days.
func runRetentionSweep(db *gorm.DB, now time.Time) {
	visitCutoff := now.UTC().AddDate(0, 0, -90).Format("2006-01-02")
	if err := db.Where("visit_date < ?", visitCutoff).Delete(&models.SiteVisit{}).Error; err != nil {
		log.Printf("❌ Failed to prune site visits: %v", err)
	}

	cartCutoff := now.AddDate(0, 0, -30)
	var stale []models.Cart
	if err := db.Where("updated_at < ?", cartCutoff).Find(&stale).Error; err != nil {
		log.Printf("❌ Failed to list stale carts: %v", err)
		return
	}
	for _, cart := range stale {
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("cart_id = ?", cart.CartID).Delete(&models.CartItem{}).Error; err != nil {
				return err
			}
			return tx.Delete(&cart).Error
		})
		if err != nil {
			log.Printf("❌ Failed to remove stale cart %d: %v", cart.CartID, err)
		}
	}
	if len(stale) > 0 {
		log.Printf("🗑️ Removed %d stale carts", len(stale))
	}
}
