package main

import (
	"context" // context package is needed for Redis operations
	"log"     // log package is needed for logging
	"net/http"

	"clicker_wallet/internal/api"        // Custom package for API handlers
	"clicker_wallet/internal/auth"       // Admin credential verification
	"clicker_wallet/internal/config"     // Custom package for configuration
	"clicker_wallet/internal/middleware" // Custom package for middleware

	// For loading .env files
	"github.com/gin-contrib/cors"  // CORS middleware
	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
	"gorm.io/driver/mysql"         // MySQL driver for GORM
	"gorm.io/gorm"                 // GORM ORM library
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Connect to the database
	db, err := gorm.Open(mysql.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}

	// Setup Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr, // Redis server address
		Password: cfg.RedisPass, // Redis password
		DB:       cfg.RedisDB,   // Redis database number
	})

	// Test Redis connection
	_, err = redisClient.Ping(context.Background()).Result()
	if err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup Gin
	r := gin.Default() // Gin router instance

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	// Only the configured client origins may call the API from a browser
	r.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowedOrigins,
		AllowMethods: []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowHeaders: []string{"Authorization", "Content-Type"},
	}))

	// Health route
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Clicker Game Wallet API is running!")
	})

	// Wallet routes (no auth: a wallet id is the only credential a player has)
	r.POST("/wallets", api.CreateWalletHandler(db))                                  // Create wallet endpoint
	r.GET("/wallets/:walletId", api.GetWalletHandler(db))                            // Accrue and fetch balance
	r.POST("/wallets/:walletId/click", api.ClickHandler(db))                         // Click endpoint
	r.GET("/wallets/:walletId/upgrades", api.ListOwnedUpgradesHandler(db, redisClient)) // Owned upgrade ids
	r.POST("/wallets/:walletId/upgrades", api.PurchaseUpgradeHandler(db, redisClient))  // Purchase endpoint
	r.POST("/wallets/:walletId/cashout", api.CashoutHandler(db, redisClient))        // Cashout endpoint
	r.GET("/wallets/:walletId/payouts", api.PayoutHistoryHandler(db, redisClient))   // Payout history

	// Catalog route
	r.GET("/upgrades", api.ListUpgradesHandler(db, redisClient)) // Upgrade catalog

	// Admin routes (protected by the shared-secret credential)
	verifier := auth.NewSharedSecretVerifier(cfg.AdminPassword)
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.AdminAuthMiddleware(verifier))
	adminGroup.GET("/payouts", api.ListPayoutsHandler(db))                                  // Filtered payout listing
	adminGroup.PATCH("/payouts/:requestId/status", api.UpdatePayoutStatusHandler(db, redisClient)) // Status transition

	log.Println("Server running on " + cfg.AppPort) // Log server start
	r.Run(":" + cfg.AppPort)                        // Start the server on port cfg.AppPort
}
