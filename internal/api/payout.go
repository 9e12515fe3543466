package api

import (
	"context"  // Context for Redis operations
	"fmt"      // Message formatting
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

// payoutHistoryTTL bounds staleness of the per-wallet payout listing;
// cashouts and admin transitions invalidate the key anyway.
const payoutHistoryTTL = 60 * time.Second

// CashoutHandler moves the full accrued balance into a Pending payout
// request and zeroes the wallet
func CashoutHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		walletID, ok := walletIDParam(c)
		if !ok {
			return
		}
		request, err := ledger.Cashout(db, walletID)
		if err != nil {
			respondLedgerError(c, "cashout", err)
			return
		}
		// Log the committed request for the audit trail
		logrus.WithFields(logrus.Fields{
			"wallet_id":    walletID,
			"request_id":   request.ID,
			"coin_amount":  request.CoinAmount,
			"dollar_value": request.DollarValue.String(),
			"type":         "cashout",
		}).Info("Cashout requested")
		// The wallet's payout history changed, drop its cached copy
		_ = utils.DeleteCache(context.Background(), rdb, utils.PayoutHistoryKey(walletID))
		c.JSON(http.StatusOK, gin.H{
			"message":     fmt.Sprintf("Cashout request for %d coins ($%s) submitted successfully.", request.CoinAmount, request.DollarValue.String()),
			"request_id":  request.ID,
			"new_balance": 0,
		})
	}
}

// PayoutHistoryHandler returns a wallet's payout requests, newest first
func PayoutHistoryHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		walletID, ok := walletIDParam(c)
		if !ok {
			return
		}
		ctx := context.Background()
		cacheKey := utils.PayoutHistoryKey(walletID)
		var cached []domain.PayoutRequest
		found, err := utils.GetCache(ctx, rdb, cacheKey, &cached)
		if err == nil && found {
			c.JSON(http.StatusOK, cached)
			return
		}
		requests, err := ledger.WalletPayouts(db, walletID)
		if err != nil {
			respondLedgerError(c, "payout_history", err)
			return
		}
		_ = utils.SetCache(ctx, rdb, cacheKey, requests, payoutHistoryTTL)
		c.JSON(http.StatusOK, requests)
	}
}
