package ledger

import (
	"errors"

	"clicker_wallet/internal/domain" // Importing domain models

	"gorm.io/gorm" // GORM ORM library
)

// PayoutFilter narrows an admin payout listing. Zero values mean "no
// filter"; the Status value "All" is equivalent to no status filter.
type PayoutFilter struct {
	Status   string // Concrete status, "All" or empty
	WalletID string // Well-formed wallet id or empty
}

// ListPayouts returns payout requests matching the filter, newest first.
func ListPayouts(db *gorm.DB, filter PayoutFilter) ([]domain.PayoutRequest, error) {
	query := db.Model(&domain.PayoutRequest{})
	if filter.Status != "" && filter.Status != "All" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.WalletID != "" {
		query = query.Where("wallet_id = ?", filter.WalletID)
	}
	requests := []domain.PayoutRequest{}
	if err := query.Order("requested_at DESC").Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// WalletPayouts returns the payout history of one wallet, newest first.
// Fails with ErrWalletNotFound for an unknown wallet.
func WalletPayouts(db *gorm.DB, walletID string) ([]domain.PayoutRequest, error) {
	if err := walletExists(db, walletID); err != nil {
		return nil, err
	}
	requests := []domain.PayoutRequest{}
	if err := db.Where("wallet_id = ?", walletID).
		Order("requested_at DESC").
		Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// UpdatePayoutStatus moves a Pending payout request to Paid or Cancelled and
// stamps processed_at. The guarded UPDATE only matches Pending rows, which
// makes the transition single-use; when it matches nothing the row is
// re-read to distinguish an already-terminal request from a missing one.
func UpdatePayoutStatus(db *gorm.DB, requestID uint, newStatus string) (*domain.PayoutRequest, error) {
	if newStatus != domain.PayoutPaid && newStatus != domain.PayoutCancelled {
		return nil, ErrInvalidStatus
	}

	var updated domain.PayoutRequest
	err := db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&domain.PayoutRequest{}).
			Where("request_id = ? AND status = ?", requestID, domain.PayoutPending).
			Updates(map[string]any{"status": newStatus, "processed_at": timeNow()})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			var existing domain.PayoutRequest
			if err := tx.Where("request_id = ?", requestID).First(&existing).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrRequestNotFound
				}
				return err
			}
			return &AlreadyProcessedError{Status: existing.Status}
		}
		return tx.Where("request_id = ?", requestID).First(&updated).Error
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}
