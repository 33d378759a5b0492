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

func TestAccountRepo(t *testing.T) {
	pg := testutil.StartPostgresContainer(t)
	t.Cleanup(pg.Terminate)

	inTx := func(t *testing.T, outerTx DBTX, fn func(pgx.Tx, repository.Storage)) {
		testutil.InTx(outerTx, t, func(innerTx pgx.Tx) {
			storage := NewStorage(innerTx)
			fn(innerTx, storage)
		})
	}

	t.Run("Create", func(t *testing.T) {
		inTx(t, pg.Pool, func(tx pgx.Tx, storage repository.Storage) {
			t.Run("create ok", func(t *testing.T) {
				inTx(t, tx, func(ttx pgx.Tx, storage repository.Storage) {
					created, err := storage.Account().Create(t.Context(), models.Account{
						Username: "backer",
						Balance:  decimal.NewFromInt(5000),
					})

					require.NoError(t, err, "account has to be created ok")
					require.NotZero(t, created.ID)
					require.Equal(t, "backer", created.Username)
					require.Nil(t, created.ProjectID, "plain account should not reference a project")
					require.True(t, created.Balance.Equal(decimal.NewFromInt(5000)))
					require.False(t, created.FundingBlock)
					require.False(t, created.CreatedAt.IsZero())
				})
			})

			t.Run("create duplicate username", func(t *testing.T) {
				inTx(t, tx, func(ttx pgx.Tx, storage repository.Storage) {
					_, err := storage.Account().Create(t.Context(), models.Account{Username: "dup"})
					require.NoError(t, err, "first account creation should be ok")

					_, err = storage.Account().Create(t.Context(), models.Account{Username: "dup"})

					require.Error(t, err, "creating account with same username should fail")
					require.Contains(t, err.Error(), "account already exists")
				})
			})

			t.Run("create second account for same project", func(t *testing.T) {
				inTx(t, tx, func(ttx pgx.Tx, storage repository.Storage) {
					project, err := storage.Project().Create(t.Context(), models.Project{Title: "p", FundingGoal: decimal.NewFromInt(100)})
					require.NoError(t, err)

					_, err = storage.Account().Create(t.Context(), models.Account{Username: "creator-1", ProjectID: &project.ID})
					require.NoError(t, err)

					_, err = storage.Account().Create(t.Context(), models.Account{Username: "creator-2", ProjectID: &project.ID})

					require.Error(t, err, "a project may have only one account")
					require.Contains(t, err.Error(), "account already exists")
				})
			})
		})
	})

	t.Run("Get", func(t *testing.T) {
		inTx(t, pg.Pool, func(tx pgx.Tx, storage repository.Storage) {
			project, err := storage.Project().Create(t.Context(), models.Project{Title: "p", FundingGoal: decimal.NewFromInt(100)})
			require.NoError(t, err)

			account, err := storage.Account().Create(t.Context(), models.Account{
				Username:  "creator",
				ProjectID: &project.ID,
				Balance:   decimal.NewFromInt(300),
			})
			require.NoError(t, err)

			t.Run("by id", func(t *testing.T) {
				inTx(t, tx, func(ttx pgx.Tx, storage repository.Storage) {
					got, err := storage.Account().GetByID(t.Context(), account.ID, false)

					require.NoError(t, err)
					require.Equal(t, account.ID, got.ID)
					require.Equal(t, "creator", got.Username)
				})
			})

			t.Run("by id for update", func(t *testing.T) {
				inTx(t, tx, func(ttx pgx.Tx, storage repository.Storage) {
					got, err := storage.Account().GetByID(t.Context(), account.ID, true)

					require.NoError(t, err)
					require.Equal(t, account.ID, got.ID)
				})
			})

			t.Run("by username", func(t *testing.T) {
				inTx(t, tx, func(ttx pgx.Tx, storage repository.Storage) {
					got, err := storage.Account().GetByUsername(t.Context(), "creator", false)

					require.NoError(t, err)
					require.Equal(t, account.ID, got.ID)
				})
			})

			t.Run("by project id", func(t *testing.T) {
				inTx(t, tx, func(ttx pgx.Tx, storage repository.Storage) {
					got, err := storage.Account().GetByProjectID(t.Context(), project.ID, false)

					require.NoError(t, err)
					require.Equal(t, account.ID, got.ID)
					require.NotNil(t, got.ProjectID)
					require.Equal(t, project.ID, *got.ProjectID)
				})
			})

			t.Run("nonexistent account", func(t *testing.T) {
				inTx(t, tx, func(ttx pgx.Tx, storage repository.Storage) {
					_, err := storage.Account().GetByID(t.Context(), 999999, false)

					require.Error(t, err)
					require.ErrorIs(t, err, apperrors.ErrAccountNotFound, "should return well known error")
				})
			})
		})
	})

	t.Run("GetReceiverByTransactionID", func(t *testing.T) {
		inTx(t, pg.Pool, func(tx pgx.Tx, storage repository.Storage) {
			sender, err := storage.Account().Create(t.Context(), models.Account{Username: "sender", Balance: decimal.NewFromInt(100)})
			require.NoError(t, err)
			receiver, err := storage.Account().Create(t.Context(), models.Account{Username: "receiver"})
			require.NoError(t, err)

			transaction, err := storage.Transaction().Create(t.Context(), models.Transaction{
				SenderID:   sender.ID,
				ReceiverID: receiver.ID,
				Amount:     decimal.NewFromInt(100),
				Type:       models.TransactionTypeRemittance,
			})
			require.NoError(t, err)

			t.Run("resolves receiver", func(t *testing.T) {
				inTx(t, tx, func(ttx pgx.Tx, storage repository.Storage) {
					got, err := storage.Account().GetReceiverByTransactionID(t.Context(), transaction.ID, true)

					require.NoError(t, err)
					require.Equal(t, receiver.ID, got.ID)
				})
			})

			t.Run("nonexistent transaction", func(t *testing.T) {
				inTx(t, tx, func(ttx pgx.Tx, storage repository.Storage) {
					_, err := storage.Account().GetReceiverByTransactionID(t.Context(), 999999, false)

					require.ErrorIs(t, err, apperrors.ErrAccountNotFound)
				})
			})
		})
	})

	t.Run("SaveBalance", func(t *testing.T) {
		inTx(t, pg.Pool, func(tx pgx.Tx, storage repository.Storage) {
			account, err := storage.Account().Create(t.Context(), models.Account{Username: "saver", Balance: decimal.NewFromInt(10)})
			require.NoError(t, err)

			t.Run("save ok", func(t *testing.T) {
				inTx(t, tx, func(ttx pgx.Tx, storage repository.Storage) {
					saved, err := storage.Account().SaveBalance(t.Context(), account.ID, decimal.NewFromInt(250))

					require.NoError(t, err)
					require.True(t, saved.Balance.Equal(decimal.NewFromInt(250)))

					stored, err := storage.Account().GetByID(t.Context(), account.ID, false)
					require.NoError(t, err)
					require.True(t, stored.Balance.Equal(decimal.NewFromInt(250)), "balance should persist")
				})
			})

			t.Run("negative balance rejected", func(t *testing.T) {
				inTx(t, tx, func(ttx pgx.Tx, storage repository.Storage) {
					_, err := storage.Account().SaveBalance(t.Context(), account.ID, decimal.NewFromInt(-1))

					require.Error(t, err, "schema should refuse negative balances")
				})
			})

			t.Run("nonexistent account", func(t *testing.T) {
				inTx(t, tx, func(ttx pgx.Tx, storage repository.Storage) {
					_, err := storage.Account().SaveBalance(t.Context(), 999999, decimal.NewFromInt(5))

					require.ErrorIs(t, err, apperrors.ErrAccountNotFound)
				})
			})
		})
	})
}
