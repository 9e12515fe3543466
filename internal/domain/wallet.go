package domain

import "time"

// Wallet Model
type Wallet struct {
	ID                string    `gorm:"primaryKey;column:wallet_id;type:char(36)" json:"wallet_id"` // Opaque UUID identity
	CoinBalance       int64     `gorm:"not null;default:0" json:"coin_balance"`                     // Coin balance, never negative
	CreatedAt         time.Time `json:"created_at"`                                                 // Creation timestamp, immutable
	LastPassiveUpdate time.Time `gorm:"not null" json:"last_passive_update"`                        // Accrual clock for passive income
}
