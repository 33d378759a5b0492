package account

import (
	"context"
	"fmt"

	"github.com/fundstream/fundstream/internal/apperrors"
	"github.com/fundstream/fundstream/internal/models"
	"github.com/fundstream/fundstream/internal/repository"
	"github.com/fundstream/fundstream/internal/service/funding"
	"github.com/fundstream/fundstream/internal/service/project"
	"github.com/fundstream/fundstream/internal/service/transaction"
)

// RefundService reverses a prior payment in full: project account pays the
// backer back, the pledge is cancelled, the project aggregate shrinks and a
// new REFUND transaction references the cancelled pledge. The original
// transaction is never mutated.
type RefundService struct {
	storage repository.Storage
}

func NewRefundService(storage repository.Storage) *RefundService {
	return &RefundService{storage: storage}
}

// Refund is always for the original transaction's full amount; partial
// refunds are not supported.
func (s *RefundService) Refund(ctx context.Context, payerAccountID int64, transactionID int64) (RefundResult, error) {
	var result RefundResult

	err := s.storage.InTx(ctx, func(ts repository.Storage) error {
		queries := NewQueryService(ts)
		projects := project.NewService(ts)
		fundings := funding.NewService(ts)
		transactions := transaction.NewService(ts)

		original, err := transactions.GetTransaction(ctx, transactionID)
		if err != nil {
			return err
		}

		// Same lock order as payment: payer account first.
		payer, err := queries.GetAccount(ctx, payerAccountID, true)
		if err != nil {
			return err
		}
		projectAccount, err := queries.GetReceiverAccountByTransactionID(ctx, transactionID, true)
		if err != nil {
			return err
		}

		balanceBefore := payer.Balance
		refundAmount := original.Amount

		// Refunding a self-payment: both lookups hit one row, so transfer
		// within a single struct (nets to zero) and write the balance once.
		source := &projectAccount
		if projectAccount.ID == payer.ID {
			source = &payer
		}

		if err := models.Transfer(refundAmount, source, &payer); err != nil {
			return err
		}
		if source != &payer {
			if _, err = ts.Account().SaveBalance(ctx, projectAccount.ID, projectAccount.Balance); err != nil {
				return err
			}
		}
		if payer, err = ts.Account().SaveBalance(ctx, payer.ID, payer.Balance); err != nil {
			return err
		}

		// A charge has no pledge to cancel, so it cannot be refunded.
		if original.FundingID == nil {
			return apperrors.ErrFundingNotFound
		}
		cancelled, err := fundings.CancelFunding(ctx, *original.FundingID)
		if err != nil {
			return err
		}

		created, err := transactions.CreateTransaction(ctx, &cancelled, projectAccount, payer, refundAmount, models.TransactionTypeRefund)
		if err != nil {
			return err
		}

		target, err := projects.GetProjectByTransactionID(ctx, transactionID)
		if err != nil {
			return err
		}
		if _, err = projects.AdjustCurrentFunding(ctx, target.ID, refundAmount.Neg()); err != nil {
			return err
		}

		result = RefundResult{
			AccountID:             payer.ID,
			BalanceBefore:         balanceBefore,
			Amount:                refundAmount,
			BalanceAfter:          payer.Balance,
			RefundTransactionID:   created.ID,
			OriginalTransactionID: original.ID,
			ProcessedAt:           created.CreatedAt,
		}
		return nil
	})
	if err != nil {
		return result, fmt.Errorf("refund failed: %w", err)
	}

	return result, nil
}
