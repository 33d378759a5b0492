package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/fundstream/fundstream/internal/apperrors"
	"github.com/fundstream/fundstream/internal/models"
)

type TransactionRepo struct {
	DB DBTX
}

const createTransaction = `-- name: CreateTransaction
INSERT INTO transactions (funding_id, sender_account_id, receiver_account_id, amount, type)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, funding_id, sender_account_id, receiver_account_id, amount, type, created_at
`

func (r *TransactionRepo) Create(ctx context.Context, transaction models.Transaction) (models.Transaction, error) {
	rows, _ := r.DB.Query(ctx, createTransaction,
		transaction.FundingID,
		transaction.SenderID,
		transaction.ReceiverID,
		transaction.Amount,
		transaction.Type,
	)

	created, err := pgx.CollectOneRow(rows, rowToTransaction)
	if err != nil {
		return created, fmt.Errorf("db error: %w", err)
	}

	return created, nil
}

const getTransactionByID = `-- name: GetTransactionByID
SELECT id, funding_id, sender_account_id, receiver_account_id, amount, type, created_at
FROM transactions
WHERE id = $1
`

func (r *TransactionRepo) GetByID(ctx context.Context, id int64) (models.Transaction, error) {
	rows, _ := r.DB.Query(ctx, getTransactionByID, id)
	transaction, err := pgx.CollectOneRow(rows, rowToTransaction)

	switch {
	case err == nil:
		return transaction, nil
	case errors.Is(err, pgx.ErrNoRows):
		return transaction, apperrors.ErrTransactionNotFound
	default:
		return transaction, fmt.Errorf("db error: %w", err)
	}
}

func rowToTransaction(row pgx.CollectableRow) (models.Transaction, error) {
	var t models.Transaction
	err := row.Scan(&t.ID, &t.FundingID, &t.SenderID, &t.ReceiverID, &t.Amount, &t.Type, &t.CreatedAt)
	return t, err
}
