package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/IvanTurizo/trigo-pan-expres/cart"
	orderControllers "github.com/IvanTurizo/trigo-pan-expres/controllers/order"
	"github.com/IvanTurizo/trigo-pan-expres/metrics"
	"github.com/IvanTurizo/trigo-pan-expres/models"
	"github.com/IvanTurizo/trigo-pan-expres/notify"
	"github.com/IvanTurizo/trigo-pan-expres/routes"
)

const sessionCartTTL = 24 * time.Hour

func main() {
	log.Println("✅ Starting application...")

	// Load environment variables
	_ = godotenv.Load()

	// Init DB
	db := initDatabase()

	// Auto-migrate all tables
	if err := db.AutoMigrate(
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.Admin{},
	); err != nil {
		log.Fatalf("❌ AutoMigrate failed: %v", err)
	}

	// Seed the default menu on first boot
	if err := seedProducts(db); err != nil {
		log.Fatalf("❌ Product seed failed: %v", err)
	}

	// Session carts live in memory only
	carts := cart.NewStore(sessionCartTTL)

	bakeryName := os.Getenv("BAKERY_NAME")
	if bakeryName == "" {
		bakeryName = "Trigo Pan Exprés"
	}
	dispatcher := notify.NewWhatsApp(os.Getenv("WHATSAPP_NUMBER"))
	submitter := orderControllers.NewSubmitter(carts, orderControllers.NewGormOrderStore(db), dispatcher, bakeryName)

	// Gin setup
	r := gin.Default()

	// CORS settings
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Prometheus scrape endpoint
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	// Setup routes
	routes.SetupRoutes(r, db, carts, submitter)

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

// seedProducts loads the bakery's default menu into an empty catalog so a
// fresh deployment has something to sell.
func seedProducts(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	menu := []models.Product{
		{Name: "Pan Francés", Price: 1000, Category: models.CategoryPan, Description: "Pan crujiente recién horneado"},
		{Name: "Pan Integral", Price: 2000, Category: models.CategoryPan, Description: "Saludable y nutritivo"},
		{Name: "Pan de Yuca", Price: 1500, Category: models.CategoryPan, Description: "Tradicional colombiano"},
		{Name: "Pan Mogolla", Price: 1200, Category: models.CategoryPan, Description: "Suave y esponjoso"},
		{Name: "Torta de Chocolate", Price: 35000, Category: models.CategoryPasteles, Description: "Deliciosa y húmeda"},
		{Name: "Torta de Vainilla", Price: 30000, Category: models.CategoryPasteles, Description: "Clásica y elegante"},
		{Name: "Torta de Zanahoria", Price: 32000, Category: models.CategoryPasteles, Description: "Con crema de queso"},
		{Name: "Torta Tres Leches", Price: 38000, Category: models.CategoryPasteles, Description: "Suave y cremosa"},
		{Name: "Pandebono", Price: 1500, Category: models.CategoryReposteria, Description: "Tradicional y delicioso"},
		{Name: "Buñuelos", Price: 1200, Category: models.CategoryReposteria, Description: "Crujientes por fuera"},
		{Name: "Almojábanas", Price: 1300, Category: models.CategoryReposteria, Description: "Suaves y esponjosas"},
		{Name: "Roscón", Price: 2500, Category: models.CategoryReposteria, Description: "Dulce y aromático"},
		{Name: "Café Americano", Price: 2500, Category: models.CategoryBebidas, Description: "Café de alta calidad"},
		{Name: "Café con Leche", Price: 3000, Category: models.CategoryBebidas, Description: "Cremoso y suave"},
		{Name: "Chocolate Caliente", Price: 3500, Category: models.CategoryBebidas, Description: "Rico y espeso"},
		{Name: "Jugo Natural", Price: 4000, Category: models.CategoryBebidas, Description: "Fresco y natural"},
	}
	for i := range menu {
		menu[i].ImageURL = "https://cdn.trigopan.co/products/placeholder.jpg"
		menu[i].IsActive = true
	}

	if err := db.Create(&menu).Error; err != nil {
		return err
	}
	log.Printf("✅ Seeded %d default products", len(menu))
	return nil
}
