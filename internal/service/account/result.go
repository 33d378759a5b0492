package account

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentResult reports the outcome of a charge or payment from the payer's
// point of view.
type PaymentResult struct {
	AccountID     int64
	BalanceBefore decimal.Decimal
	Amount        decimal.Decimal
	BalanceAfter  decimal.Decimal
	TransactionID int64
	ProcessedAt   time.Time
}

// RefundResult reports a completed refund, keeping a reference to the
// original payment transaction next to the new REFUND record.
type RefundResult struct {
	AccountID             int64
	BalanceBefore         decimal.Decimal
	Amount                decimal.Decimal
	BalanceAfter          decimal.Decimal
	RefundTransactionID   int64
	OriginalTransactionID int64
	ProcessedAt           time.Time
}
