package domain

import (
	"time"

	"github.com/shopspring/decimal" // Exact numeric type for dollar values
)

// Payout request lifecycle statuses. Pending is the only initial state;
// Paid and Cancelled are terminal.
const (
	PayoutPending   = "Pending"
	PayoutPaid      = "Paid"
	PayoutCancelled = "Cancelled"
)

// PayoutRequest Model (append-only cashout ledger row)
type PayoutRequest struct {
	ID          uint            `gorm:"primaryKey;column:request_id" json:"request_id"`                 // Monotonic primary key
	WalletID    string          `gorm:"type:char(36);index;not null" json:"wallet_id"`                  // Owning wallet
	CoinAmount  int64           `gorm:"not null" json:"coin_amount"`                                    // Coins moved out of the wallet
	DollarValue decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"dollar_value"`                // Dollar value snapshot at request time
	Status      string          `gorm:"type:varchar(16);not null;default:Pending" json:"status"`        // Pending, Paid or Cancelled
	RequestedAt time.Time       `gorm:"not null" json:"requested_at"`                                   // Request timestamp, immutable
	ProcessedAt *time.Time      `json:"processed_at"`                                                   // Set once on the terminal transition
}
