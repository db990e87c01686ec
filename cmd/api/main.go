package main

import (
	"log"
	"os"
	"time"

	"github.com/DylanJDombrowski/restaurant-system-sub000/internal/cart"
	"github.com/DylanJDombrowski/restaurant-system-sub000/internal/catalog"
	"github.com/DylanJDombrowski/restaurant-system-sub000/internal/db"
	"github.com/DylanJDombrowski/restaurant-system-sub000/internal/priceapi"
	"github.com/DylanJDombrowski/restaurant-system-sub000/internal/pricing"
	"github.com/DylanJDombrowski/restaurant-system-sub000/internal/session"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {

	// ───────────────────────── ENV ─────────────────────────
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	catalogSource := os.Getenv("CATALOG_SOURCE")
	if catalogSource == "" {
		catalogSource = "postgres"
	}

	if catalogSource == "postgres" && os.Getenv("DATABASE_URL") == "" {
		log.Fatalf("❌ Missing env var: DATABASE_URL")
	}

	// ───────────────────────── CATALOG ─────────────────────────
	var repo catalog.Repository
	switch catalogSource {
	case "postgres":
		pgDB := db.ConnectPostgres()
		defer pgDB.Close()
		repo = catalog.NewPostgresRepository(pgDB)
	case "memory":
		repo = catalog.NewInMemoryRepository()
		log.Println("⚠️  Using in-memory catalog fixture")
	default:
		log.Fatalf("❌ Unknown CATALOG_SOURCE: %s", catalogSource)
	}

	catalogService := catalog.NewService(repo)

	// ───────────────────────── PRICE CALCULATION ─────────────────────────
	var calc priceapi.Calculator
	if url := os.Getenv("PRICE_CALC_URL"); url != "" {
		calc = priceapi.NewHTTPCalculator(url)
		log.Println("✅ External price calculation enabled")
	}

	mode := pricing.ModeFlat
	if os.Getenv("PRICING_MODE") == "size_scaled" {
		mode = pricing.ModeSizeScaled
	}

	restaurantID := os.Getenv("RESTAURANT_ID")
	if restaurantID == "" {
		restaurantID = "default"
	}

	// ───────────────────────── GIN ─────────────────────────
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "X-Session-ID"},
		ExposeHeaders:    []string{"X-Session-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// ───────────────────────── SERVICES ─────────────────────────
	manager := session.NewManager(
		catalogService,
		calc,
		mode,
		priceapi.DefaultQuiet,
		restaurantID,
	)

	// ───────────────────────── HANDLERS ─────────────────────────
	catalogHandler := catalog.NewHandler(catalogService)
	sessionHandler := session.NewHandler(manager)
	cartHandler := cart.NewHandler(manager)

	// ───────────────────────── CATALOG ROUTES ─────────────────────────
	catalogGroup := r.Group("/catalog")
	{
		catalogGroup.GET("/items", catalogHandler.ListItems)
		catalogGroup.GET("/toppings", catalogHandler.ListToppings)
	}

	// ───────────────────────── SESSION ROUTES ─────────────────────────
	sessionGroup := r.Group("/session")
	{
		sessionGroup.POST("/select-item", sessionHandler.SelectItem)
		sessionGroup.GET("/customizer", sessionHandler.CustomizerState)
		sessionGroup.POST("/customizer/selection", sessionHandler.ApplySelection)
		sessionGroup.POST("/customizer/retry", sessionHandler.RetryLoad)
		sessionGroup.POST("/customizer/complete", sessionHandler.Complete)
		sessionGroup.POST("/customizer/cancel", sessionHandler.Cancel)
	}

	// ───────────────────────── CART ROUTES ─────────────────────────
	cartGroup := r.Group("/cart")
	{
		cartGroup.GET("", cartHandler.GetCart)
		cartGroup.PATCH("/items/:id", cartHandler.UpdateItem)
		cartGroup.DELETE("/items/:id", cartHandler.RemoveItem)
	}

	// ───────────────────────── HEALTH ─────────────────────────
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ───────────────────────── START ─────────────────────────
	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}
	log.Printf("🚀 POS API running at http://localhost:%s", port)
	r.Run(":" + port)
}
