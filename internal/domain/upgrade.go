package domain

import (
	"time"

	"github.com/shopspring/decimal" // Exact numeric type for fractional effect values
)

// Upgrade effect types
const (
	EffectPassiveRatePerSecond = "PASSIVE_RATE_PER_SECOND" // Adds coins per second while idle
	EffectClickMultiplier      = "CLICK_MULTIPLIER"        // Replaces the per-click coin value
)

// Upgrade Model (catalog row, immutable after seeding)
type Upgrade struct {
	ID          uint            `gorm:"primaryKey;column:upgrade_id" json:"upgrade_id"` // Primary key
	Name        string          `gorm:"not null" json:"name"`                           // Display name
	Description string          `json:"description"`                                    // Display description
	Cost        int64           `gorm:"not null" json:"cost"`                           // Purchase cost in coins
	EffectType  string          `gorm:"not null" json:"effect_type"`                    // One of the effect type constants
	EffectValue decimal.Decimal `gorm:"type:decimal(12,4);not null" json:"effect_value"` // Magnitude of the effect
}

// WalletUpgrade Model (ownership join row: a wallet owns an upgrade at most once)
type WalletUpgrade struct {
	WalletID    string    `gorm:"primaryKey;type:char(36)" json:"wallet_id"` // Owning wallet
	UpgradeID   uint      `gorm:"primaryKey" json:"upgrade_id"`              // Purchased upgrade
	PurchasedAt time.Time `gorm:"not null" json:"purchased_at"`              // Purchase timestamp
}
