package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/fundstream/fundstream/internal/apperrors"
	"github.com/fundstream/fundstream/internal/models"
)

type FundingRepo struct {
	DB DBTX
}

const createFunding = `-- name: CreateFunding
INSERT INTO fundings (project_id, backer_account_id, amount, status)
VALUES ($1, $2, $3, $4)
RETURNING id, project_id, backer_account_id, amount, status, created_at
`

func (r *FundingRepo) Create(ctx context.Context, funding models.Funding) (models.Funding, error) {
	if funding.Status == "" {
		funding.Status = models.FundingStatusActive
	}

	rows, _ := r.DB.Query(ctx, createFunding, funding.ProjectID, funding.BackerID, funding.Amount, funding.Status)
	created, err := pgx.CollectOneRow(rows, rowToFunding)
	if err != nil {
		return created, fmt.Errorf("db error: %w", err)
	}

	return created, nil
}

const getFundingByID = `-- name: GetFundingByID
SELECT id, project_id, backer_account_id, amount, status, created_at
FROM fundings
WHERE id = $1
`

func (r *FundingRepo) GetByID(ctx context.Context, id int64) (models.Funding, error) {
	rows, _ := r.DB.Query(ctx, getFundingByID, id)
	funding, err := pgx.CollectOneRow(rows, rowToFunding)

	switch {
	case err == nil:
		return funding, nil
	case errors.Is(err, pgx.ErrNoRows):
		return funding, apperrors.ErrFundingNotFound
	default:
		return funding, fmt.Errorf("db error: %w", err)
	}
}

// Cancel flips active -> cancelled in one statement, so two concurrent
// cancellations cannot both succeed.
const cancelFunding = `-- name: CancelFunding
UPDATE fundings
SET status = $2
WHERE id = $1 AND status = $3
RETURNING id, project_id, backer_account_id, amount, status, created_at
`

func (r *FundingRepo) Cancel(ctx context.Context, id int64) (models.Funding, error) {
	rows, _ := r.DB.Query(ctx, cancelFunding, id, models.FundingStatusCancelled, models.FundingStatusActive)
	funding, err := pgx.CollectOneRow(rows, rowToFunding)

	switch {
	case err == nil:
		return funding, nil
	case errors.Is(err, pgx.ErrNoRows):
		// Either the row never existed or it is no longer active;
		// look it up to tell the two apart.
		existing, getErr := r.GetByID(ctx, id)
		if getErr != nil {
			return existing, getErr
		}
		return existing, apperrors.ErrFundingAlreadyCancelled
	default:
		return funding, fmt.Errorf("db error: %w", err)
	}
}

func rowToFunding(row pgx.CollectableRow) (models.Funding, error) {
	var f models.Funding
	err := row.Scan(&f.ID, &f.ProjectID, &f.BackerID, &f.Amount, &f.Status, &f.CreatedAt)
	return f, err
}
