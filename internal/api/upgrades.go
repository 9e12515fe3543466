package api

import (
	"context"  // Context for Redis operations
	"net/http" // HTTP status codes
	"time"     // Cache TTLs

	"clicker_wallet/internal/domain" // Importing domain models
	"clicker_wallet/internal/ledger" // Core wallet operations
	"clicker_wallet/internal/utils"  // Cache helpers

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
	"gorm.io/gorm"                 // GORM ORM library
)

// catalogTTL is generous because the catalog is immutable after seeding.
const catalogTTL = 5 * time.Minute

// ownedTTL bounds staleness for the per-wallet ownership list; purchases
// invalidate the key anyway.
const ownedTTL = 60 * time.Second

// PurchaseRequest represents an upgrade purchase
type PurchaseRequest struct {
	UpgradeID uint `json:"upgradeId" binding:"required"` // Catalog id of the upgrade to buy
}

// ListUpgradesHandler returns the upgrade catalog, cheapest first
func ListUpgradesHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background()
		var cached []domain.Upgrade
		// Serve from cache when possible
		found, err := utils.GetCache(ctx, rdb, utils.CatalogKey, &cached)
		if err == nil && found {
			c.JSON(http.StatusOK, cached)
			return
		}
		upgrades, err := ledger.Catalog(db)
		if err != nil {
			respondLedgerError(c, "list_upgrades", err)
			return
		}
		_ = utils.SetCache(ctx, rdb, utils.CatalogKey, upgrades, catalogTTL)
		c.JSON(http.StatusOK, upgrades)
	}
}

// ListOwnedUpgradesHandler returns the ids of the upgrades a wallet owns,
// as a bare array
func ListOwnedUpgradesHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		walletID, ok := walletIDParam(c)
		if !ok {
			return
		}
		ctx := context.Background()
		cacheKey := utils.OwnedUpgradesKey(walletID)
		var cached []uint
		found, err := utils.GetCache(ctx, rdb, cacheKey, &cached)
		if err == nil && found {
			c.JSON(http.StatusOK, cached)
			return
		}
		ids, err := ledger.OwnedUpgradeIDs(db, walletID)
		if err != nil {
			respondLedgerError(c, "list_owned_upgrades", err)
			return
		}
		_ = utils.SetCache(ctx, rdb, cacheKey, ids, ownedTTL)
		c.JSON(http.StatusOK, ids)
	}
}

// PurchaseUpgradeHandler spends accrued coins on a catalog upgrade
func PurchaseUpgradeHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		walletID, ok := walletIDParam(c)
		if !ok {
			return
		}
		var req PurchaseRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or missing upgradeId"})
			return
		}
		newBalance, err := ledger.Purchase(db, walletID, req.UpgradeID)
		if err != nil {
			respondLedgerError(c, "purchase_upgrade", err)
			return
		}
		// Log successful purchase
		logrus.WithFields(logrus.Fields{
			"wallet_id":   walletID,
			"upgrade_id":  req.UpgradeID,
			"new_balance": newBalance,
			"type":        "purchase_upgrade",
		}).Info("Upgrade purchased")
		// The ownership list changed, drop its cached copy
		_ = utils.DeleteCache(context.Background(), rdb, utils.OwnedUpgradesKey(walletID))
		c.JSON(http.StatusOK, gin.H{
			"message":     "Upgrade purchased successfully!",
			"new_balance": newBalance,
		})
	}
}
