package account

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/fundstream/fundstream/internal/models"
	"github.com/fundstream/fundstream/internal/repository"
	"github.com/fundstream/fundstream/internal/service/transaction"
)

// ChargeService credits an account from outside the ledger. A charge has
// no counterparty debit: the transaction is recorded with
// sender = receiver = the charged account.
type ChargeService struct {
	storage repository.Storage
}

func NewChargeService(storage repository.Storage) *ChargeService {
	return &ChargeService{storage: storage}
}

func (s *ChargeService) ChargeByAccountID(ctx context.Context, accountID int64, amount decimal.Decimal) (PaymentResult, error) {
	return s.charge(ctx, amount, func(ctx context.Context, queries *QueryService) (models.Account, error) {
		return queries.GetAccount(ctx, accountID, true)
	})
}

func (s *ChargeService) ChargeByUsername(ctx context.Context, username string, amount decimal.Decimal) (PaymentResult, error) {
	return s.charge(ctx, amount, func(ctx context.Context, queries *QueryService) (models.Account, error) {
		return queries.GetAccountByUsername(ctx, username, true)
	})
}

// charge runs the balance increase and the transaction record as one unit
// of work: a failure after the balance update rolls both back.
func (s *ChargeService) charge(
	ctx context.Context,
	amount decimal.Decimal,
	resolve func(context.Context, *QueryService) (models.Account, error),
) (PaymentResult, error) {
	var result PaymentResult

	err := s.storage.InTx(ctx, func(ts repository.Storage) error {
		queries := NewQueryService(ts)
		transactions := transaction.NewService(ts)

		charged, err := resolve(ctx, queries)
		if err != nil {
			return err
		}

		balanceBefore := charged.Balance

		charged, err = ts.Account().SaveBalance(ctx, charged.ID, balanceBefore.Add(amount))
		if err != nil {
			return err
		}

		created, err := transactions.CreateTransaction(ctx, nil, charged, charged, amount, models.TransactionTypeRemittance)
		if err != nil {
			return err
		}

		result = PaymentResult{
			AccountID:     charged.ID,
			BalanceBefore: balanceBefore,
			Amount:        amount,
			BalanceAfter:  charged.Balance,
			TransactionID: created.ID,
			ProcessedAt:   created.CreatedAt,
		}
		return nil
	})
	if err != nil {
		return result, fmt.Errorf("charge failed: %w", err)
	}

	return result, nil
}
