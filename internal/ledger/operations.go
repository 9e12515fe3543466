package ledger

import (
	"errors"

	"clicker_wallet/internal/domain" // Importing domain models

	"github.com/google/uuid"        // Wallet identity tokens
	"github.com/shopspring/decimal" // Exact arithmetic for effect values
	"gorm.io/gorm"                  // GORM ORM library
)

// CreateWallet inserts a fresh wallet with a zero balance and an accrual
// clock starting now.
func CreateWallet(db *gorm.DB) (*domain.Wallet, error) {
	now := timeNow()
	wallet := domain.Wallet{
		ID:                uuid.NewString(), // Opaque v4 identity
		CoinBalance:       0,
		CreatedAt:         now,
		LastPassiveUpdate: now,
	}
	if err := db.Create(&wallet).Error; err != nil {
		return nil, err
	}
	return &wallet, nil
}

// Balance accrues pending passive income and returns the up-to-date balance.
// Runs as its own atomic unit.
func Balance(db *gorm.DB, walletID string) (int64, error) {
	var balance int64
	err := db.Transaction(func(tx *gorm.DB) error {
		b, err := Accrue(tx, walletID)
		if err != nil {
			return err
		}
		balance = b
		return nil
	})
	if err != nil {
		return 0, err
	}
	return balance, nil
}

// Click accrues passive income, then adds the wallet's click value to the
// balance. The click value is the best owned CLICK_MULTIPLIER effect,
// defaulting to 1 when none is owned, so a click always earns at least one
// coin. The whole sequence commits or rolls back as one unit.
func Click(db *gorm.DB, walletID string) (int64, error) {
	var newBalance int64
	err := db.Transaction(func(tx *gorm.DB) error {
		balance, err := Accrue(tx, walletID)
		if err != nil {
			return err
		}
		value, err := clickValue(tx, walletID)
		if err != nil {
			return err
		}
		newBalance = balance + value
		return tx.Model(&domain.Wallet{}).
			Where("wallet_id = ?", walletID).
			Update("coin_balance", newBalance).Error
	})
	if err != nil {
		return 0, err
	}
	return newBalance, nil
}

// clickValue returns the highest CLICK_MULTIPLIER effect value among the
// wallet's owned upgrades, never less than 1.
func clickValue(tx *gorm.DB, walletID string) (int64, error) {
	var values []decimal.Decimal
	if err := tx.Table("upgrades").
		Joins("JOIN wallet_upgrades ON wallet_upgrades.upgrade_id = upgrades.upgrade_id").
		Where("wallet_upgrades.wallet_id = ? AND upgrades.effect_type = ?", walletID, domain.EffectClickMultiplier).
		Order("upgrades.effect_value DESC").
		Limit(1).
		Pluck("upgrades.effect_value", &values).Error; err != nil {
		return 0, err
	}
	if len(values) == 0 {
		return 1, nil
	}
	value := values[0].IntPart()
	if value < 1 {
		value = 1
	}
	return value, nil
}

// Purchase accrues passive income, then spends the accrued balance on an
// upgrade and records ownership. Fails without side effects when the upgrade
// does not exist, is already owned, or costs more than the balance.
func Purchase(db *gorm.DB, walletID string, upgradeID uint) (int64, error) {
	var newBalance int64
	err := db.Transaction(func(tx *gorm.DB) error {
		// The accrued balance is read under the wallet row lock, so it is
		// the authoritative amount for the affordability check below
		balance, err := Accrue(tx, walletID)
		if err != nil {
			return err
		}

		var upgrade domain.Upgrade
		if err := tx.Where("upgrade_id = ?", upgradeID).First(&upgrade).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUpgradeNotFound
			}
			return err
		}

		var owned int64
		if err := tx.Model(&domain.WalletUpgrade{}).
			Where("wallet_id = ? AND upgrade_id = ?", walletID, upgradeID).
			Count(&owned).Error; err != nil {
			return err
		}
		if owned > 0 {
			return ErrAlreadyOwned
		}

		if balance < upgrade.Cost {
			return ErrInsufficientFunds
		}

		newBalance = balance - upgrade.Cost
		if err := tx.Model(&domain.Wallet{}).
			Where("wallet_id = ?", walletID).
			Update("coin_balance", newBalance).Error; err != nil {
			return err
		}

		ownership := domain.WalletUpgrade{
			WalletID:    walletID,
			UpgradeID:   upgradeID,
			PurchasedAt: timeNow(),
		}
		return tx.Create(&ownership).Error
	})
	if err != nil {
		return 0, err
	}
	return newBalance, nil
}

// Cashout accrues passive income, zeroes the wallet and records exactly one
// Pending payout request for the full accrued balance. The coin amount and
// the 1:1 dollar value are both snapshots taken at commit time.
func Cashout(db *gorm.DB, walletID string) (*domain.PayoutRequest, error) {
	var request domain.PayoutRequest
	err := db.Transaction(func(tx *gorm.DB) error {
		balance, err := Accrue(tx, walletID)
		if err != nil {
			return err
		}
		if balance <= 0 {
			return ErrNothingToCashOut
		}

		if err := tx.Model(&domain.Wallet{}).
			Where("wallet_id = ?", walletID).
			Update("coin_balance", 0).Error; err != nil {
			return err
		}

		request = domain.PayoutRequest{
			WalletID:    walletID,
			CoinAmount:  balance,
			DollarValue: decimal.NewFromInt(balance), // Fixed 1 coin = $1 conversion
			Status:      domain.PayoutPending,
			RequestedAt: timeNow(),
		}
		return tx.Create(&request).Error
	})
	if err != nil {
		return nil, err
	}
	return &request, nil
}
