package account

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/fundstream/fundstream/internal/apperrors"
	"github.com/fundstream/fundstream/internal/models"
)

func TestCharge(t *testing.T) {
	t.Run("charge by account id", func(t *testing.T) {
		f := newFixture(t, 0, 0, 0)
		s := NewChargeService(f.storage)

		result, err := s.ChargeByAccountID(t.Context(), f.backer.ID, decimal.NewFromInt(1500))

		require.NoError(t, err)
		require.Equal(t, f.backer.ID, result.AccountID)
		equalInt(t, 0, result.BalanceBefore)
		equalInt(t, 1500, result.Amount)
		equalInt(t, 1500, result.BalanceAfter)
		require.NotZero(t, result.TransactionID)
		require.NotZero(t, result.ProcessedAt)

		equalInt(t, 1500, f.account(t, f.backer.ID).Balance, "stored balance")
	})

	t.Run("charge by username", func(t *testing.T) {
		f := newFixture(t, 200, 0, 0)
		s := NewChargeService(f.storage)

		result, err := s.ChargeByUsername(t.Context(), "backer", decimal.NewFromInt(300))

		require.NoError(t, err)
		equalInt(t, 200, result.BalanceBefore)
		equalInt(t, 500, result.BalanceAfter)
	})

	t.Run("records a self transaction", func(t *testing.T) {
		f := newFixture(t, 0, 0, 0)
		s := NewChargeService(f.storage)

		result, err := s.ChargeByAccountID(t.Context(), f.backer.ID, decimal.NewFromInt(1500))
		require.NoError(t, err)

		created, err := f.storage.Transaction().GetByID(t.Context(), result.TransactionID)
		require.NoError(t, err)
		require.Equal(t, models.TransactionTypeRemittance, created.Type)
		require.Equal(t, f.backer.ID, created.SenderID, "external credit is recorded against the account itself")
		require.Equal(t, f.backer.ID, created.ReceiverID)
		require.Nil(t, created.FundingID, "a charge has no pledge")
		equalInt(t, 1500, created.Amount)
	})

	t.Run("unknown account fails", func(t *testing.T) {
		f := newFixture(t, 0, 0, 0)
		s := NewChargeService(f.storage)

		_, err := s.ChargeByAccountID(t.Context(), 999, decimal.NewFromInt(100))
		require.ErrorIs(t, err, apperrors.ErrAccountNotFound)

		_, err = s.ChargeByUsername(t.Context(), "nobody", decimal.NewFromInt(100))
		require.ErrorIs(t, err, apperrors.ErrAccountNotFound)
	})
}
