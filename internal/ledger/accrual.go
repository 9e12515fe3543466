package ledger

import (
	"errors"
	"time"

	"clicker_wallet/internal/domain" // Importing domain models

	"github.com/shopspring/decimal" // Exact arithmetic for fractional rates
	"gorm.io/gorm"                  // GORM ORM library
	"gorm.io/gorm/clause"           // Row-level locking clause
)

// timeNow is swapped out in tests to pin the accrual clock.
var timeNow = time.Now

// Accrue applies pending passive income to a wallet and returns the balance
// afterwards. It must be called inside an already-open transaction: the
// wallet row is read FOR UPDATE and the lock is held until that transaction
// commits, which serializes every balance mutation per wallet.
//
// Earnings are floor(elapsedSeconds * ratePerSecond). The clock only
// advances to now, so the sub-unit remainder is deferred to the next call
// rather than lost. When nothing was earned the clock still advances, to
// bound the next elapsed-time window.
func Accrue(tx *gorm.DB, walletID string) (int64, error) {
	var wallet domain.Wallet
	// Lock the wallet row for the remainder of the enclosing transaction
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("wallet_id = ?", walletID).
		First(&wallet).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrWalletNotFound
		}
		return 0, err
	}

	rate, err := passiveRate(tx, walletID)
	if err != nil {
		return 0, err
	}

	now := timeNow()
	earned := passiveEarnings(wallet.LastPassiveUpdate, now, rate)
	if earned > 0 {
		newBalance := wallet.CoinBalance + earned
		// Persist the earnings and advance the accrual clock together
		if err := tx.Model(&domain.Wallet{}).
			Where("wallet_id = ?", walletID).
			Updates(map[string]any{"coin_balance": newBalance, "last_passive_update": now}).Error; err != nil {
			return 0, err
		}
		return newBalance, nil
	}

	// Nothing earned: still advance the clock so tiny intervals are not
	// re-measured against a stale starting point
	if err := tx.Model(&domain.Wallet{}).
		Where("wallet_id = ?", walletID).
		Update("last_passive_update", now).Error; err != nil {
		return 0, err
	}
	return wallet.CoinBalance, nil
}

// passiveRate sums the effect values of the wallet's owned passive-income
// upgrades. Zero when none are owned.
func passiveRate(tx *gorm.DB, walletID string) (decimal.Decimal, error) {
	var values []decimal.Decimal
	if err := tx.Table("upgrades").
		Joins("JOIN wallet_upgrades ON wallet_upgrades.upgrade_id = upgrades.upgrade_id").
		Where("wallet_upgrades.wallet_id = ? AND upgrades.effect_type = ?", walletID, domain.EffectPassiveRatePerSecond).
		Pluck("upgrades.effect_value", &values).Error; err != nil {
		return decimal.Zero, err
	}
	rate := decimal.Zero
	for _, v := range values {
		rate = rate.Add(v)
	}
	return rate, nil
}

// passiveEarnings computes the whole coins earned between two points of the
// accrual clock, truncating toward zero. Negative elapsed time (clock skew)
// counts as zero.
func passiveEarnings(lastUpdate, now time.Time, ratePerSecond decimal.Decimal) int64 {
	elapsed := now.Sub(lastUpdate).Seconds()
	if elapsed < 0 {
		elapsed = 0
	}
	return decimal.NewFromFloat(elapsed).Mul(ratePerSecond).IntPart()
}
