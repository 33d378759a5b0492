package apperrors

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrAccountNotFound     = errors.New("account not found")
	ErrProjectNotFound     = errors.New("project not found")
	ErrTransactionNotFound = errors.New("transaction not found")

	ErrFundingNotFound         = errors.New("funding not found")
	ErrFundingAlreadyCancelled = errors.New("funding already cancelled")

	ErrBalanceInsufficient = errors.New("insufficient balance")
)

// InsufficientBalanceError carries the balance the debited account actually
// had when a transfer was rejected. Matches ErrBalanceInsufficient with
// errors.Is, so callers may check either.
type InsufficientBalanceError struct {
	Balance decimal.Decimal
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance: current balance is %s", e.Balance.String())
}

func (e *InsufficientBalanceError) Is(target error) bool {
	return target == ErrBalanceInsufficient
}
