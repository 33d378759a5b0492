package account

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/fundstream/fundstream/internal/models"
	"github.com/fundstream/fundstream/internal/repository"
	"github.com/fundstream/fundstream/internal/service/funding"
	"github.com/fundstream/fundstream/internal/service/project"
	"github.com/fundstream/fundstream/internal/service/transaction"
)

// PaymentService moves money from a backer to a project: balance transfer,
// project aggregate increment, funding record and transaction record are
// committed together or not at all.
type PaymentService struct {
	storage repository.Storage
}

func NewPaymentService(storage repository.Storage) *PaymentService {
	return &PaymentService{storage: storage}
}

func (s *PaymentService) PayByAccountID(ctx context.Context, accountID int64, projectID int64, amount decimal.Decimal) (PaymentResult, error) {
	return s.pay(ctx, projectID, amount, func(ctx context.Context, queries *QueryService) (models.Account, error) {
		return queries.GetAccount(ctx, accountID, true)
	})
}

func (s *PaymentService) PayByUsername(ctx context.Context, username string, projectID int64, amount decimal.Decimal) (PaymentResult, error) {
	return s.pay(ctx, projectID, amount, func(ctx context.Context, queries *QueryService) (models.Account, error) {
		return queries.GetAccountByUsername(ctx, username, true)
	})
}

func (s *PaymentService) pay(
	ctx context.Context,
	projectID int64,
	amount decimal.Decimal,
	resolve func(context.Context, *QueryService) (models.Account, error),
) (PaymentResult, error) {
	var result PaymentResult

	err := s.storage.InTx(ctx, func(ts repository.Storage) error {
		queries := NewQueryService(ts)
		projects := project.NewService(ts)
		fundings := funding.NewService(ts)
		transactions := transaction.NewService(ts)

		target, err := projects.GetProject(ctx, projectID)
		if err != nil {
			return err
		}

		// Lock the payer before the project account; the refund path does
		// the same, so concurrent payment/refund pairs cannot deadlock.
		payer, err := resolve(ctx, queries)
		if err != nil {
			return err
		}
		projectAccount, err := queries.GetAccountByProjectID(ctx, target.ID, true)
		if err != nil {
			return err
		}

		balanceBefore := payer.Balance

		// A creator paying into their own project: both lookups hit one
		// row, so transfer within a single struct (the debit and credit
		// net to zero) and write the balance once.
		payee := &projectAccount
		if projectAccount.ID == payer.ID {
			payee = &payer
		}

		if err := models.Transfer(amount, &payer, payee); err != nil {
			return err
		}
		if payer, err = ts.Account().SaveBalance(ctx, payer.ID, payer.Balance); err != nil {
			return err
		}
		if payee != &payer {
			if _, err = ts.Account().SaveBalance(ctx, projectAccount.ID, projectAccount.Balance); err != nil {
				return err
			}
		}

		if _, err = projects.AdjustCurrentFunding(ctx, target.ID, amount); err != nil {
			return err
		}

		pledge, err := fundings.CreateFunding(ctx, target, payer, amount)
		if err != nil {
			return err
		}

		created, err := transactions.CreateTransaction(ctx, &pledge, payer, projectAccount, amount, models.TransactionTypeRemittance)
		if err != nil {
			return err
		}

		result = PaymentResult{
			AccountID:     payer.ID,
			BalanceBefore: balanceBefore,
			Amount:        amount,
			BalanceAfter:  payer.Balance,
			TransactionID: created.ID,
			ProcessedAt:   created.CreatedAt,
		}
		return nil
	})
	if err != nil {
		return result, fmt.Errorf("payment failed: %w", err)
	}

	return result, nil
}
