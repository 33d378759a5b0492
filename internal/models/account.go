package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/fundstream/fundstream/internal/apperrors"
)

// Account is a virtual ledger account tied one-to-one to a user.
// Balance holds whole currency units only (scale 0) and never goes
// negative: it is mutated through Transfer or the charge path exclusively.
type Account struct {
	ID           int64
	Username     string
	ProjectID    *int64
	Balance      decimal.Decimal
	FundingBlock bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Transfer debits amount from one account and credits it to the other,
// both in memory. The caller commits the pair in a single storage unit of
// work, so no reader may observe the debit without the credit.
//
// On insufficient balance neither account is touched and the error carries
// the sender's current balance.
func Transfer(amount decimal.Decimal, from *Account, to *Account) error {
	if from.Balance.LessThan(amount) {
		return &apperrors.InsufficientBalanceError{Balance: from.Balance}
	}

	from.Balance = from.Balance.Sub(amount)
	to.Balance = to.Balance.Add(amount)

	return nil
}
