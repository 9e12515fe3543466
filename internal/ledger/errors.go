package ledger

import (
	"errors"
	"fmt"
)

// Business-rule and not-found errors returned by ledger operations. Handlers
// match these with errors.Is to pick the HTTP status; any other error is an
// unexpected storage failure.
var (
	ErrWalletNotFound    = errors.New("wallet not found")
	ErrUpgradeNotFound   = errors.New("upgrade not found")
	ErrRequestNotFound   = errors.New("payout request not found")
	ErrAlreadyOwned      = errors.New("upgrade already owned")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrNothingToCashOut  = errors.New("no coins to cash out")
	ErrInvalidStatus     = errors.New("invalid payout status")
)

// AlreadyProcessedError reports a transition attempt against a payout request
// that already reached a terminal status. Matched with errors.As so the
// handler can report the current status.
type AlreadyProcessedError struct {
	Status string // Terminal status the request already holds
}

func (e *AlreadyProcessedError) Error() string {
	return fmt.Sprintf("payout request already processed (status: %s)", e.Status)
}
