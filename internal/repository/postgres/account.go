package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"github.com/fundstream/fundstream/internal/apperrors"
	"github.com/fundstream/fundstream/internal/models"
)

type AccountRepo struct {
	DB DBTX
}

const createAccount = `-- name: CreateAccount
INSERT INTO accounts (username, project_id, balance, funding_block)
VALUES ($1, $2, $3, $4)
RETURNING id, username, project_id, balance, funding_block, created_at, updated_at
`

func (r *AccountRepo) Create(ctx context.Context, account models.Account) (models.Account, error) {
	rows, _ := r.DB.Query(ctx, createAccount, account.Username, account.ProjectID, account.Balance, account.FundingBlock)
	created, err := pgx.CollectOneRow(rows, rowToAccount)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return created, fmt.Errorf("account already exists: %w", err)
		}

		return created, fmt.Errorf("db error: %w", err)
	}

	return created, nil
}

const getAccountByID = `-- name: GetAccountByID
SELECT id, username, project_id, balance, funding_block, created_at, updated_at
FROM accounts
WHERE id = $1
`

func (r *AccountRepo) GetByID(ctx context.Context, id int64, forUpdate bool) (models.Account, error) {
	return r.getOne(ctx, lockQuery(getAccountByID, forUpdate), id)
}

const getAccountByUsername = `-- name: GetAccountByUsername
SELECT id, username, project_id, balance, funding_block, created_at, updated_at
FROM accounts
WHERE username = $1
`

func (r *AccountRepo) GetByUsername(ctx context.Context, username string, forUpdate bool) (models.Account, error) {
	return r.getOne(ctx, lockQuery(getAccountByUsername, forUpdate), username)
}

const getAccountByProjectID = `-- name: GetAccountByProjectID
SELECT id, username, project_id, balance, funding_block, created_at, updated_at
FROM accounts
WHERE project_id = $1
`

func (r *AccountRepo) GetByProjectID(ctx context.Context, projectID int64, forUpdate bool) (models.Account, error) {
	return r.getOne(ctx, lockQuery(getAccountByProjectID, forUpdate), projectID)
}

// Locks the account row only, not the joined transaction row.
const getReceiverByTransactionID = `-- name: GetReceiverByTransactionID
SELECT a.id, a.username, a.project_id, a.balance, a.funding_block, a.created_at, a.updated_at
FROM accounts a
JOIN transactions t ON t.receiver_account_id = a.id
WHERE t.id = $1
`

func (r *AccountRepo) GetReceiverByTransactionID(ctx context.Context, transactionID int64, forUpdate bool) (models.Account, error) {
	query := getReceiverByTransactionID
	if forUpdate {
		query += " FOR UPDATE OF a"
	}

	return r.getOne(ctx, query, transactionID)
}

const saveBalance = `-- name: SaveBalance
UPDATE accounts
SET balance = $2, updated_at = now()
WHERE id = $1
RETURNING id, username, project_id, balance, funding_block, created_at, updated_at
`

func (r *AccountRepo) SaveBalance(ctx context.Context, accountID int64, balance decimal.Decimal) (models.Account, error) {
	return r.getOne(ctx, saveBalance, accountID, balance)
}

func (r *AccountRepo) getOne(ctx context.Context, query string, args ...any) (models.Account, error) {
	rows, _ := r.DB.Query(ctx, query, args...)
	account, err := pgx.CollectOneRow(rows, rowToAccount)

	switch {
	case err == nil:
		return account, nil
	case errors.Is(err, pgx.ErrNoRows):
		return account, apperrors.ErrAccountNotFound
	default:
		return account, fmt.Errorf("db error: %w", err)
	}
}

func lockQuery(query string, forUpdate bool) string {
	if forUpdate {
		return query + " FOR UPDATE"
	}
	return query
}

func rowToAccount(row pgx.CollectableRow) (models.Account, error) {
	var a models.Account
	err := row.Scan(&a.ID, &a.Username, &a.ProjectID, &a.Balance, &a.FundingBlock, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}
