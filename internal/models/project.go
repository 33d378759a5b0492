package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Project carries the funding aggregate the ledger maintains.
// CurrentFunding equals the sum of all active fundings for the project and
// is adjusted incrementally on every payment and refund, never recomputed.
type Project struct {
	ID             int64
	Title          string
	FundingGoal    decimal.Decimal
	CurrentFunding decimal.Decimal
	CreatedAt      time.Time
}
