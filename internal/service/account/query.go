package account

import (
	"context"

	"github.com/fundstream/fundstream/internal/models"
	"github.com/fundstream/fundstream/internal/repository"
)

// QueryService resolves accounts. Every method returns
// apperrors.ErrAccountNotFound when no match exists.
//
// forUpdate keeps the resolved row locked until the surrounding unit of
// work commits; the orchestrations pass true so a concurrent balance check
// cannot read the row mid-mutation.
type QueryService struct {
	storage repository.Storage
}

func NewQueryService(storage repository.Storage) *QueryService {
	return &QueryService{storage: storage}
}

func (s *QueryService) GetAccount(ctx context.Context, id int64, forUpdate bool) (models.Account, error) {
	return s.storage.Account().GetByID(ctx, id, forUpdate)
}

func (s *QueryService) GetAccountByUsername(ctx context.Context, username string, forUpdate bool) (models.Account, error) {
	return s.storage.Account().GetByUsername(ctx, username, forUpdate)
}

// GetAccountByProjectID resolves the account that receives a project's
// pledges.
func (s *QueryService) GetAccountByProjectID(ctx context.Context, projectID int64, forUpdate bool) (models.Account, error) {
	return s.storage.Account().GetByProjectID(ctx, projectID, forUpdate)
}

// GetReceiverAccountByTransactionID resolves the account that originally
// received a payment; refunds use it to find the project account to debit.
func (s *QueryService) GetReceiverAccountByTransactionID(ctx context.Context, transactionID int64, forUpdate bool) (models.Account, error) {
	return s.storage.Account().GetReceiverByTransactionID(ctx, transactionID, forUpdate)
}
