package api

import (
	"context"  // Context for Redis operations
	"net/http" // HTTP status codes
	"strconv"  // String conversion

	"clicker_wallet/internal/ledger" // Core wallet operations
	"clicker_wallet/internal/utils"  // Cache helpers

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/google/uuid"       // Wallet identity validation
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
	"gorm.io/gorm"                 // GORM ORM library
)

// StatusUpdateRequest represents a payout status transition
type StatusUpdateRequest struct {
	NewStatus string `json:"newStatus" binding:"required"` // Target terminal status
}

// ListPayoutsHandler returns payout requests for the admin dashboard,
// optionally filtered by status and wallet id, newest first
func ListPayoutsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := ledger.PayoutFilter{Status: c.Query("status")}
		// A malformed wallet filter is dropped rather than rejected, so a
		// half-typed search box still returns the unfiltered listing
		if walletID := c.Query("walletId"); walletID != "" {
			if len(walletID) == 36 {
				if _, err := uuid.Parse(walletID); err == nil {
					filter.WalletID = walletID
				}
			}
			if filter.WalletID == "" {
				logrus.WithField("wallet_id", walletID).Warn("Ignoring malformed walletId filter in admin search")
			}
		}
		requests, err := ledger.ListPayouts(db, filter)
		if err != nil {
			respondLedgerError(c, "admin_list_payouts", err)
			return
		}
		c.JSON(http.StatusOK, requests)
	}
}

// UpdatePayoutStatusHandler moves one Pending payout request to Paid or
// Cancelled and returns the updated row
func UpdatePayoutStatusHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID, err := strconv.ParseUint(c.Param("requestId"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request ID format."})
			return
		}
		var req StatusUpdateRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": `Invalid newStatus provided. Use "Paid" or "Cancelled".`})
			return
		}
		updated, err := ledger.UpdatePayoutStatus(db, uint(requestID), req.NewStatus)
		if err != nil {
			respondLedgerError(c, "admin_update_payout", err)
			return
		}
		// Log the transition for the audit trail
		logrus.WithFields(logrus.Fields{
			"request_id": updated.ID,
			"wallet_id":  updated.WalletID,
			"status":     updated.Status,
			"type":       "payout_status_update",
		}).Info("Payout status updated")
		// The owning wallet's payout history changed, drop its cached copy
		_ = utils.DeleteCache(context.Background(), rdb, utils.PayoutHistoryKey(updated.WalletID))
		c.JSON(http.StatusOK, updated)
	}
}
