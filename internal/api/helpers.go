package api

import (
	"errors"   // Error matching
	"fmt"      // Message formatting
	"net/http" // HTTP status codes

	"clicker_wallet/internal/ledger" // Core wallet operations

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/google/uuid"     // Wallet identity validation
	"github.com/sirupsen/logrus" // Logging library
)

// walletIDParam validates the :walletId path parameter before storage is
// touched. Only the canonical 36-character UUID form is accepted; the
// shorter and urn-prefixed forms uuid.Parse tolerates are rejected by the
// length check. Writes the 400 response itself on failure.
func walletIDParam(c *gin.Context) (string, bool) {
	id := c.Param("walletId")
	if len(id) != 36 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid Wallet ID format"})
		return "", false
	}
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid Wallet ID format"})
		return "", false
	}
	return id, true
}

// respondLedgerError translates a ledger error into the response the client
// sees. Business-rule conflicts are 400, missing rows 404, a repeated payout
// transition 409; anything else is an unexpected storage failure, logged
// with context and answered with a generic 500.
func respondLedgerError(c *gin.Context, operation string, err error) {
	switch {
	case errors.Is(err, ledger.ErrWalletNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Wallet not found"})
	case errors.Is(err, ledger.ErrUpgradeNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Upgrade not found"})
	case errors.Is(err, ledger.ErrRequestNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Pending payout request not found"})
	case errors.Is(err, ledger.ErrAlreadyOwned):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Upgrade already owned"})
	case errors.Is(err, ledger.ErrInsufficientFunds):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Insufficient funds"})
	case errors.Is(err, ledger.ErrNothingToCashOut):
		c.JSON(http.StatusBadRequest, gin.H{"error": "No coins to cash out"})
	case errors.Is(err, ledger.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"error": `Invalid newStatus provided. Use "Paid" or "Cancelled".`})
	default:
		var processed *ledger.AlreadyProcessedError
		if errors.As(err, &processed) {
			c.JSON(http.StatusConflict, gin.H{"error": fmt.Sprintf("Request already processed (Status: %s)", processed.Status)})
			return
		}
		// Unexpected storage failure: log details, leak nothing
		logrus.WithFields(logrus.Fields{
			"operation": operation,
			"error":     err.Error(),
		}).Error("Storage operation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
