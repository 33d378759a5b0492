package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	// TransactionTypeRemittance covers charges and payments alike. A charge
	// is recorded with sender = receiver (external credit, no counterparty).
	TransactionTypeRemittance = "REMITTANCE"
	TransactionTypeRefund     = "REFUND"
)

// Transaction is an immutable audit record of a completed fund movement.
// Rows are never mutated after creation; a refund creates a new REFUND row
// referencing the cancelled funding instead of touching the original.
type Transaction struct {
	ID         int64
	FundingID  *int64 // nil for pure charges
	SenderID   int64
	ReceiverID int64
	Amount     decimal.Decimal
	Type       string
	CreatedAt  time.Time
}
