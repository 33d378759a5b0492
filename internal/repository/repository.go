package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/fundstream/fundstream/internal/models"
)

// Storage bundles the entity repositories with a unit-of-work wrapper.
// Every orchestration that mutates more than one entity must run inside
// a single InTx call: either the whole unit commits or none of it does.
type Storage interface {
	Account() AccountRepo
	Transaction() TransactionRepo
	Funding() FundingRepo
	Project() ProjectRepo

	// Run fn against a transactional view of the storage.
	// Returning an error rolls the whole unit back; no partial state may
	// be visible to readers outside the unit at any point.
	InTx(ctx context.Context, fn func(Storage) error) error
}

// Account repository interface
type AccountRepo interface {
	// Create account. ProjectID may be nil for backer accounts.
	Create(ctx context.Context, account models.Account) (models.Account, error)

	// Resolve account by id, owning username or backed project id.
	// Must return apperrors.ErrAccountNotFound when no match exists.
	// With forUpdate the row stays locked until the unit of work ends, so
	// a concurrent balance check cannot read it mid-flight.
	GetByID(ctx context.Context, id int64, forUpdate bool) (models.Account, error)
	GetByUsername(ctx context.Context, username string, forUpdate bool) (models.Account, error)
	GetByProjectID(ctx context.Context, projectID int64, forUpdate bool) (models.Account, error)

	// Resolve the account that received a past transaction.
	// Must return apperrors.ErrAccountNotFound if the transaction or the
	// account is absent.
	GetReceiverByTransactionID(ctx context.Context, transactionID int64, forUpdate bool) (models.Account, error)

	// Persist a new balance for the account and refresh its updated_at.
	SaveBalance(ctx context.Context, accountID int64, balance decimal.Decimal) (models.Account, error)
}

// Transaction repository interface
type TransactionRepo interface {
	// Create immutable transaction record
	Create(ctx context.Context, transaction models.Transaction) (models.Transaction, error)

	// Must return apperrors.ErrTransactionNotFound when absent
	GetByID(ctx context.Context, id int64) (models.Transaction, error)
}

// Funding repository interface
type FundingRepo interface {
	// Create funding row with status active
	Create(ctx context.Context, funding models.Funding) (models.Funding, error)

	// Must return apperrors.ErrFundingNotFound when absent
	GetByID(ctx context.Context, id int64) (models.Funding, error)

	// Flip status active -> cancelled and return the updated row.
	// Cancelling twice is an error, not a no-op: must return
	// apperrors.ErrFundingAlreadyCancelled for a non-active row
	// (protects against double refunds).
	Cancel(ctx context.Context, id int64) (models.Funding, error)
}

// Project repository interface
type ProjectRepo interface {
	Create(ctx context.Context, project models.Project) (models.Project, error)

	// Must return apperrors.ErrProjectNotFound when absent
	GetByID(ctx context.Context, id int64) (models.Project, error)

	// Resolve the project a past transaction funded, following the
	// transaction's funding reference.
	GetByTransactionID(ctx context.Context, transactionID int64) (models.Project, error)

	// Adjust current_funding by delta (negative on refund) and return the
	// updated project.
	AddCurrentFunding(ctx context.Context, projectID int64, delta decimal.Decimal) (models.Project, error)
}
