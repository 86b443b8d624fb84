package main

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yourusername/invoicer/config"
	"github.com/yourusername/invoicer/handlers"
	"github.com/yourusername/invoicer/logger"
	"github.com/yourusername/invoicer/middleware"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		l := zerolog.New(os.Stderr)
		l.Fatal().Err(err).Msg("Failed to load config")
	}

	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	// Initialize database
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}

	// Setup router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.RateLimit(cfg.RateLimitPerMinute))

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "invoice-api",
		})
	})

	// Root endpoint
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Invoice API is running",
			"endpoints": gin.H{
				"customers": "GET /customers",
				"items":     "GET /items",
				"invoices":  "POST /invoices",
			},
		})
	})

	// Customer endpoints
	customerHandler := handlers.NewCustomerHandler(db)
	customers := router.Group("/customers")
	{
		customers.POST("", customerHandler.CreateCustomer)
		customers.GET("", customerHandler.ListCustomers)
		customers.GET("/:id", customerHandler.GetCustomer)
		customers.PUT("/:id", customerHandler.UpdateCustomer)
		customers.DELETE("/:id", customerHandler.DeleteCustomer)
	}

	// Item endpoints
	itemHandler := handlers.NewItemHandler(db)
	items := router.Group("/items")
	{
		items.POST("", itemHandler.CreateItem)
		items.GET("", itemHandler.ListItems)
		items.GET("/:id", itemHandler.GetItem)
		items.PUT("/:id", itemHandler.UpdateItem)
		items.DELETE("/:id", itemHandler.DeleteItem)
	}

	// Invoice endpoints
	invoiceHandler := handlers.NewInvoiceHandler(db)
	invoices := router.Group("/invoices")
	{
		invoices.POST("", invoiceHandler.CreateInvoice)
		invoices.GET("", invoiceHandler.ListInvoices)
		invoices.GET("/:id", invoiceHandler.GetInvoice)
	}

	// Auth endpoints
	authHandler := handlers.NewAuthHandler(db, cfg)
	auth := router.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.Refresh)
		auth.GET("/profile", middleware.JwtAuthMiddleware(cfg), authHandler.Profile)
	}

	// Start server
	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	log.Info().Str("port", port).Msg("Starting invoice API server")
	if err := router.Run(":" + port); err != nil {
		log.Fatal().Err(err).Msg("Failed to start server")
	}
}
