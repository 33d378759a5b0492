package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/fundstream/fundstream/internal/apperrors"
	"github.com/fundstream/fundstream/internal/models"
)

type ProjectRepo struct {
	DB DBTX
}

const createProject = `-- name: CreateProject
INSERT INTO projects (title, funding_goal, current_funding)
VALUES ($1, $2, $3)
RETURNING id, title, funding_goal, current_funding, created_at
`

func (r *ProjectRepo) Create(ctx context.Context, project models.Project) (models.Project, error) {
	rows, _ := r.DB.Query(ctx, createProject, project.Title, project.FundingGoal, project.CurrentFunding)
	created, err := pgx.CollectOneRow(rows, rowToProject)
	if err != nil {
		return created, fmt.Errorf("db error: %w", err)
	}

	return created, nil
}

const getProjectByID = `-- name: GetProjectByID
SELECT id, title, funding_goal, current_funding, created_at
FROM projects
WHERE id = $1
`

func (r *ProjectRepo) GetByID(ctx context.Context, id int64) (models.Project, error) {
	return r.getOne(ctx, getProjectByID, id)
}

const getProjectByTransactionID = `-- name: GetProjectByTransactionID
SELECT p.id, p.title, p.funding_goal, p.current_funding, p.created_at
FROM projects p
JOIN fundings f ON f.project_id = p.id
JOIN transactions t ON t.funding_id = f.id
WHERE t.id = $1
`

func (r *ProjectRepo) GetByTransactionID(ctx context.Context, transactionID int64) (models.Project, error) {
	return r.getOne(ctx, getProjectByTransactionID, transactionID)
}

const addCurrentFunding = `-- name: AddCurrentFunding
UPDATE projects
SET current_funding = current_funding + $2
WHERE id = $1
RETURNING id, title, funding_goal, current_funding, created_at
`

func (r *ProjectRepo) AddCurrentFunding(ctx context.Context, projectID int64, delta decimal.Decimal) (models.Project, error) {
	return r.getOne(ctx, addCurrentFunding, projectID, delta)
}

func (r *ProjectRepo) getOne(ctx context.Context, query string, args ...any) (models.Project, error) {
	rows, _ := r.DB.Query(ctx, query, args...)
	project, err := pgx.CollectOneRow(rows, rowToProject)

	switch {
	case err == nil:
		return project, nil
	case errors.Is(err, pgx.ErrNoRows):
		return project, apperrors.ErrProjectNotFound
	default:
		return project, fmt.Errorf("db error: %w", err)
	}
}

func rowToProject(row pgx.CollectableRow) (models.Project, error) {
	var p models.Project
	err := row.Scan(&p.ID, &p.Title, &p.FundingGoal, &p.CurrentFunding, &p.CreatedAt)
	return p, err
}
