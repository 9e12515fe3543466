package ledger

import (
	"clicker_wallet/internal/domain" // Importing domain models

	"gorm.io/gorm" // GORM ORM library
)

// Catalog returns every upgrade definition, cheapest first.
func Catalog(db *gorm.DB) ([]domain.Upgrade, error) {
	var upgrades []domain.Upgrade
	if err := db.Order("cost ASC").Find(&upgrades).Error; err != nil {
		return nil, err
	}
	return upgrades, nil
}

// OwnedUpgradeIDs returns the ids of the upgrades a wallet owns. Fails with
// ErrWalletNotFound for an unknown wallet so the handler can 404 instead of
// reporting an empty collection.
func OwnedUpgradeIDs(db *gorm.DB, walletID string) ([]uint, error) {
	if err := walletExists(db, walletID); err != nil {
		return nil, err
	}
	ids := []uint{} // Non-nil so the empty case serializes as []
	if err := db.Model(&domain.WalletUpgrade{}).
		Where("wallet_id = ?", walletID).
		Order("upgrade_id ASC").
		Pluck("upgrade_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// walletExists reports ErrWalletNotFound when no wallet row matches.
func walletExists(db *gorm.DB, walletID string) error {
	var count int64
	if err := db.Model(&domain.Wallet{}).
		Where("wallet_id = ?", walletID).
		Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrWalletNotFound
	}
	return nil
}
