package postgres

import (
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/fundstream/fundstream/internal/apperrors"
	"github.com/fundstream/fundstream/internal/models"
	"github.com/fundstream/fundstream/internal/repository"
	"github.com/fundstream/fundstream/internal/testutil"
)

func TestProjectRepo(t *testing.T) {
	pg := testutil.StartPostgresContainer(t)
	t.Cleanup(pg.Terminate)

	inTx := func(t *testing.T, outerTx DBTX, fn func(pgx.Tx, repository.Storage)) {
		testutil.InTx(outerTx, t, func(innerTx pgx.Tx) {
			storage := NewStorage(innerTx)
			fn(innerTx, storage)
		})
	}

	t.Run("Create and Get", func(t *testing.T) {
		inTx(t, pg.Pool, func(tx pgx.Tx, storage repository.Storage) {
			created, err := storage.Project().Create(t.Context(), models.Project{
				Title:       "solar kettle",
				FundingGoal: decimal.NewFromInt(10000),
			})

			require.NoError(t, err)
			require.NotZero(t, created.ID)
			require.True(t, created.CurrentFunding.IsZero(), "new project starts unfunded")

			got, err := storage.Project().GetByID(t.Context(), created.ID)
			require.NoError(t, err)
			require.Equal(t, "solar kettle", got.Title)
			require.True(t, got.FundingGoal.Equal(decimal.NewFromInt(10000)))

			_, err = storage.Project().GetByID(t.Context(), 999999)
			require.ErrorIs(t, err, apperrors.ErrProjectNotFound)
		})
	})

	t.Run("AddCurrentFunding", func(t *testing.T) {
		inTx(t, pg.Pool, func(tx pgx.Tx, storage repository.Storage) {
			project, err := storage.Project().Create(t.Context(), models.Project{Title: "p", FundingGoal: decimal.NewFromInt(1000)})
			require.NoError(t, err)

			t.Run("accumulates", func(t *testing.T) {
				inTx(t, tx, func(ttx pgx.Tx, storage repository.Storage) {
					_, err := storage.Project().AddCurrentFunding(t.Context(), project.ID, decimal.NewFromInt(300))
					require.NoError(t, err)

					updated, err := storage.Project().AddCurrentFunding(t.Context(), project.ID, decimal.NewFromInt(200))
					require.NoError(t, err)
					require.True(t, updated.CurrentFunding.Equal(decimal.NewFromInt(500)))
				})
			})

			t.Run("negative delta reverses", func(t *testing.T) {
				inTx(t, tx, func(ttx pgx.Tx, storage repository.Storage) {
					_, err := storage.Project().AddCurrentFunding(t.Context(), project.ID, decimal.NewFromInt(300))
					require.NoError(t, err)

					updated, err := storage.Project().AddCurrentFunding(t.Context(), project.ID, decimal.NewFromInt(-300))
					require.NoError(t, err)
					require.True(t, updated.CurrentFunding.IsZero())
				})
			})

			t.Run("nonexistent project", func(t *testing.T) {
				inTx(t, tx, func(ttx pgx.Tx, storage repository.Storage) {
					_, err := storage.Project().AddCurrentFunding(t.Context(), 999999, decimal.NewFromInt(1))

					require.ErrorIs(t, err, apperrors.ErrProjectNotFound)
				})
			})
		})
	})

	t.Run("GetByTransactionID", func(t *testing.T) {
		inTx(t, pg.Pool, func(tx pgx.Tx, storage repository.Storage) {
			project, err := storage.Project().Create(t.Context(), models.Project{Title: "p", FundingGoal: decimal.NewFromInt(1000)})
			require.NoError(t, err)
			backer, err := storage.Account().Create(t.Context(), models.Account{Username: "backer", Balance: decimal.NewFromInt(500)})
			require.NoError(t, err)
			creator, err := storage.Account().Create(t.Context(), models.Account{Username: "creator", ProjectID: &project.ID})
			require.NoError(t, err)

			funding, err := storage.Funding().Create(t.Context(), models.Funding{
				ProjectID: project.ID,
				BackerID:  backer.ID,
				Amount:    decimal.NewFromInt(100),
			})
			require.NoError(t, err)

			pledged, err := storage.Transaction().Create(t.Context(), models.Transaction{
				FundingID:  &funding.ID,
				SenderID:   backer.ID,
				ReceiverID: creator.ID,
				Amount:     decimal.NewFromInt(100),
				Type:       models.TransactionTypeRemittance,
			})
			require.NoError(t, err)

			charged, err := storage.Transaction().Create(t.Context(), models.Transaction{
				SenderID:   backer.ID,
				ReceiverID: backer.ID,
				Amount:     decimal.NewFromInt(100),
				Type:       models.TransactionTypeRemittance,
			})
			require.NoError(t, err)

			t.Run("resolves through the funding", func(t *testing.T) {
				inTx(t, tx, func(ttx pgx.Tx, storage repository.Storage) {
					got, err := storage.Project().GetByTransactionID(t.Context(), pledged.ID)

					require.NoError(t, err)
					require.Equal(t, project.ID, got.ID)
				})
			})

			t.Run("transaction without funding", func(t *testing.T) {
				inTx(t, tx, func(ttx pgx.Tx, storage repository.Storage) {
					_, err := storage.Project().GetByTransactionID(t.Context(), charged.ID)

					require.ErrorIs(t, err, apperrors.ErrProjectNotFound)
				})
			})
		})
	})
}
