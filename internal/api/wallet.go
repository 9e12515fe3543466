package api

import (
	"net/http" // HTTP status codes

	"clicker_wallet/internal/ledger" // Core wallet operations

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// CreateWalletHandler creates a fresh wallet and returns its identity
func CreateWalletHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		wallet, err := ledger.CreateWallet(db)
		if err != nil {
			respondLedgerError(c, "create_wallet", err)
			return
		}
		// Log the new identity so support can correlate client reports
		logrus.WithFields(logrus.Fields{
			"wallet_id": wallet.ID,
			"type":      "create_wallet",
		}).Info("Wallet created")
		c.JSON(http.StatusCreated, gin.H{"wallet_id": wallet.ID})
	}
}

// GetWalletHandler accrues pending passive income and returns the balance.
// The balance is never cached: each read settles accrued income first, so a
// stale copy would immediately disagree with the ledger.
func GetWalletHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		walletID, ok := walletIDParam(c)
		if !ok {
			return
		}
		balance, err := ledger.Balance(db, walletID)
		if err != nil {
			respondLedgerError(c, "get_wallet", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"wallet_id":    walletID,
			"coin_balance": balance,
		})
	}
}

// ClickHandler registers one click: passive income first, then the click
// value, all in one atomic unit
func ClickHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		walletID, ok := walletIDParam(c)
		if !ok {
			return
		}
		balance, err := ledger.Click(db, walletID)
		if err != nil {
			respondLedgerError(c, "click", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"wallet_id":    walletID,
			"coin_balance": balance,
		})
	}
}
