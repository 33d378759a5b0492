package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	FundingStatusActive    = "active"
	FundingStatusCancelled = "cancelled"
)

// Funding is a pledge linking a backer account, a project and an amount.
// The only allowed transition is active -> cancelled, exactly once; rows
// are kept after cancellation for auditability.
type Funding struct {
	ID        int64
	ProjectID int64
	BackerID  int64
	Amount    decimal.Decimal
	Status    string
	CreatedAt time.Time
}
